// Copyright 2020, Square, Inc.

package builder

import (
	"fmt"

	"github.com/square/pnsynth/hierarchy"
	"github.com/square/pnsynth/model"
	"github.com/square/pnsynth/schedule"
	"github.com/square/pnsynth/spec"
)

// Stage makes a schedule.Stage from port refs. outputs are resolved from the
// network root, e.g. "stage/core/fir.out". inputs are "process.port" pairs
// on the level of the outputs.
func Stage(net *model.Network, outputs, inputs []string) (schedule.Stage, error) {
	var stage schedule.Stage
	for _, ref := range outputs {
		pt, err := ResolvePort(net, ref)
		if err != nil {
			return stage, fmt.Errorf("stage output %s: %w", ref, err)
		}
		stage.Outputs = append(stage.Outputs, pt)
	}
	for _, ref := range inputs {
		path, port, err := spec.ParseRef(ref)
		if err != nil {
			return stage, fmt.Errorf("stage input %s: %w", ref, err)
		}
		if len(path) != 1 || path[0] == spec.Self {
			return stage, fmt.Errorf("stage input %s: expected process.port on the stage level", ref)
		}
		stage.Inputs = append(stage.Inputs, schedule.Boundary{
			Process: hierarchy.Id(path[0]),
			Port:    hierarchy.Id(port),
		})
	}
	return stage, nil
}
