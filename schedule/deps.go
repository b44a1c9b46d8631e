// Copyright 2020, Square, Inc.

package schedule

import (
	"github.com/square/pnsynth/hierarchy"
	"github.com/square/pnsynth/model"
)

// dependencies finds the producer of an in-port. ok is false if the port is
// a boundary input or is not connected.
type dependencies interface {
	producer(pt model.PortRef) (p model.ProcessRef, ok bool, err error)
}

/* =========================================================================== */
// Whole network

type networkDeps struct {
	net    *model.Network
	inputs map[model.PortRef]bool
}

func newNetworkDeps(net *model.Network) networkDeps {
	d := networkDeps{net: net, inputs: map[model.PortRef]bool{}}
	for _, pt := range net.Inputs() {
		d.inputs[pt] = true
	}
	return d
}

// startingPoints returns the leaves driving outputs. An output on a
// composite is resolved through its inside slot.
func (d networkDeps) startingPoints(outputs []model.PortRef) ([]model.ProcessRef, error) {
	starts := make([]model.ProcessRef, 0, len(outputs))
	for _, pt := range outputs {
		if !d.net.PortExists(pt) {
			return nil, model.LookupMiss{What: "network output"}
		}
		if !d.net.IsBoundary(pt) {
			starts = append(starts, d.net.Owner(pt))
			continue
		}
		leaf, err := d.net.ConnectedLeafPort(pt.Inside())
		if err != nil {
			return nil, err
		}
		starts = append(starts, d.net.Owner(leaf))
	}
	return starts, nil
}

func (d networkDeps) producer(pt model.PortRef) (model.ProcessRef, bool, error) {
	if d.inputs[pt] || !d.net.IsConnected(d.net.Terminal(pt)) {
		return model.ProcessRef{}, false, nil
	}
	leaf, err := d.net.ConnectedLeafPort(d.net.Terminal(pt))
	if err != nil {
		return model.ProcessRef{}, false, err
	}
	if d.net.Direction(leaf) != model.Out {
		return model.ProcessRef{}, false, fedByInPort(d.net, pt, leaf)
	}
	return d.net.Owner(leaf), true, nil
}

/* =========================================================================== */
// Stage

// Stage is a region of one hierarchy level to be scheduled on its own. The
// walk starts at the owners of Outputs and stops at Inputs.
type Stage struct {
	Outputs []model.PortRef
	Inputs  []Boundary
}

// Boundary names an in-port of a process on the stage's level whose
// producer is outside the stage.
type Boundary struct {
	Process hierarchy.Id
	Port    hierarchy.Id
}

func (b Boundary) String() string {
	return string(b.Process) + "." + string(b.Port)
}

type stageDeps struct {
	net    *model.Network
	level  model.ProcessRef // composite containing the stage
	inputs map[model.PortRef]bool
}

func newStageDeps(net *model.Network, stage Stage) (stageDeps, error) {
	d := stageDeps{net: net, inputs: map[model.PortRef]bool{}}
	if len(stage.Outputs) == 0 {
		return d, model.StructuralError{From: "stage", Reason: "has no outputs"}
	}

	for i, pt := range stage.Outputs {
		if !net.PortExists(pt) {
			return d, model.LookupMiss{What: "stage output"}
		}
		if net.Direction(pt) != model.Out {
			return d, model.StructuralError{From: net.PortString(pt), Reason: "stage output is not an out port"}
		}
		parent, ok := net.Parent(net.Owner(pt))
		if !ok {
			return d, model.StructuralError{From: net.PortString(pt), Reason: "stage output is on the network itself"}
		}
		if i == 0 {
			d.level = parent
		} else if parent != d.level {
			return d, model.StructuralError{
				From:   net.PortString(pt),
				Reason: "stage outputs are not on one hierarchy level (expected " + net.Path(d.level).String() + ")",
			}
		}
	}

	for _, b := range stage.Inputs {
		p, ok := net.Child(d.level, b.Process)
		if !ok {
			return d, model.LookupMiss{What: "stage input process", Id: string(b.Process)}
		}
		pt, ok := net.InPort(p, b.Port)
		if !ok {
			return d, model.LookupMiss{What: "stage input port", Id: b.String()}
		}
		d.inputs[pt] = true
	}
	return d, nil
}

func (d stageDeps) startingPoints(outputs []model.PortRef) ([]model.ProcessRef, error) {
	starts := make([]model.ProcessRef, len(outputs))
	for i, pt := range outputs {
		starts[i] = d.net.Owner(pt)
	}
	return starts, nil
}

// producer returns the same-level process connected to pt. A connection to
// the enclosing composite leaves the stage and must be a declared boundary.
func (d stageDeps) producer(pt model.PortRef) (model.ProcessRef, bool, error) {
	if d.inputs[pt] {
		return model.ProcessRef{}, false, nil
	}
	far, ok := d.net.Connected(d.net.Terminal(pt))
	if !ok {
		return model.ProcessRef{}, false, nil
	}
	owner := d.net.Owner(far.Port)
	switch rel := d.net.Relation(d.net.Owner(pt), owner); rel {
	case hierarchy.Sibling:
		if d.net.Direction(far.Port) != model.Out {
			return model.ProcessRef{}, false, fedByInPort(d.net, pt, far.Port)
		}
		return owner, true, nil
	case hierarchy.FirstParent:
		return model.ProcessRef{}, false, model.StructuralError{
			From:     d.net.PortString(pt),
			To:       d.net.PortString(far.Port),
			Relation: rel,
			Reason:   "undeclared stage input",
		}
	default:
		return model.ProcessRef{}, false, model.ConsistencyError{
			Op:     "find producer of " + d.net.PortString(pt),
			Detail: "connected to " + d.net.TerminalString(far) + " (" + rel.String() + ")",
		}
	}
}

func fedByInPort(net *model.Network, pt, src model.PortRef) error {
	return model.StructuralError{
		From:     net.PortString(src),
		To:       net.PortString(pt),
		Relation: net.Relation(net.Owner(src), net.Owner(pt)),
		Reason:   "in port is fed by another in port",
	}
}
