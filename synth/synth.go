// Copyright 2020, Square, Inc.

// Package synth runs a description through the whole pipeline: parse, static
// checks, build, cycle validation and scheduling. The CLI and the API are
// thin wrappers around a Synthesizer.
package synth

import (
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/square/pnsynth/builder"
	serr "github.com/square/pnsynth/errors"
	"github.com/square/pnsynth/model"
	"github.com/square/pnsynth/proto"
	"github.com/square/pnsynth/schedule"
	"github.com/square/pnsynth/spec"
	"github.com/square/pnsynth/util"
)

// A Synthesizer checks descriptions and finds schedules.
type Synthesizer interface {
	// Lint runs the static checks on every network, then builds and validates
	// the cycles of every network that passed them. Results are keyed by
	// network name.
	Lint(spec.Specs) *spec.CheckResults

	// Schedule parses the YAML description in the request, checks and builds
	// the requested network, and returns its schedule. Problems with the
	// description are returned as errors.ErrInvalidScheduleRequest.
	Schedule(proto.ScheduleRequest) (proto.ScheduleResult, error)
}

type synthesizer struct {
	checker *spec.Checker
	strict  bool // warnings are errors
}

// NewSynthesizer makes a Synthesizer that runs the checks from factories. If
// strict is true, Schedule rejects descriptions with check warnings.
func NewSynthesizer(factories []spec.CheckFactory, strict bool) (Synthesizer, error) {
	checker, err := spec.NewChecker(factories)
	if err != nil {
		return nil, err
	}
	return &synthesizer{
		checker: checker,
		strict:  strict,
	}, nil
}

func (s *synthesizer) Lint(specs spec.Specs) *spec.CheckResults {
	results := s.checker.RunChecks(specs)
	b := builder.NewBuilder(specs)
	for name := range specs.Networks {
		if results.Failed(name) {
			continue
		}
		net, err := b.Build(name)
		if err != nil {
			results.AddError(name, err)
			continue
		}
		if err := schedule.NewFinder(net).ValidateCycles(); err != nil {
			results.AddError(name, err)
		}
	}
	return results
}

func (s *synthesizer) Schedule(req proto.ScheduleRequest) (proto.ScheduleResult, error) {
	var res proto.ScheduleResult
	var warnings []string
	logFunc := func(f string, args ...interface{}) {
		warnings = append(warnings, strings.TrimSpace(fmt.Sprintf(f, args...)))
	}

	specs, err := spec.ParseSpecBytes([]byte(req.Spec), logFunc)
	if err != nil {
		return res, invalid("cannot parse description: %s", err)
	}
	name, err := pickNetwork(specs, req.Network)
	if err != nil {
		return res, err
	}
	logger := log.WithFields(log.Fields{"network": name})

	// Check only the requested network.
	one := spec.Specs{Networks: map[string]*spec.Network{name: specs.Networks[name]}}
	results := s.checker.RunChecks(one)
	errs, warns := results.Lines(name)
	warnings = append(warnings, warns...)
	if len(errs) > 0 {
		return res, invalid("%s", strings.Join(errs, "; "))
	}
	if s.strict && len(warns) > 0 {
		return res, invalid("strict checks: %s", strings.Join(warns, "; "))
	}

	net, err := builder.NewBuilder(one).Build(name)
	if err != nil {
		return res, invalid("%s", err)
	}

	var stage *schedule.Stage
	if req.Stage != nil {
		st, err := builder.Stage(net, req.Stage.Outputs, req.Stage.Inputs)
		if err != nil {
			return res, invalid("%s", err)
		}
		stage = &st
	}

	removed, err := net.RemoveRedundantLeafs(stageEnds(net, stage))
	if err != nil {
		return res, err
	}
	if len(removed) > 0 {
		logger.Infof("removed %d redundant leaves: %v", len(removed), removed)
	}
	logger.Debugf("built network:\n%s", net)

	f := schedule.NewFinder(net)
	var sched schedule.Schedule
	if stage != nil {
		sched, err = f.FindStageSchedule(*stage)
	} else {
		sched, err = f.FindSchedule()
	}
	if err != nil {
		return res, scheduleError(err)
	}

	res = proto.ScheduleResult{
		Id:        util.XID().String(),
		Network:   name,
		Stage:     req.Stage,
		Schedule:  sched.Strings(),
		Warnings:  warnings,
		CreatedAt: time.Now().UTC(),
	}
	logger.Infof("scheduled %d processes as result %s", sched.Len(), res.Id)
	return res, nil
}

// stageEnds keeps the processes a stage starts or stops at, which the stage
// refers to by port or by Id.
func stageEnds(net *model.Network, stage *schedule.Stage) func(model.ProcessRef) bool {
	if stage == nil {
		return nil
	}
	return func(p model.ProcessRef) bool {
		for _, pt := range stage.Outputs {
			if net.Owner(pt) == p {
				return true
			}
		}
		for _, b := range stage.Inputs {
			if net.Id(p) == b.Process {
				return true
			}
		}
		return false
	}
}

// pickNetwork returns name if the description has it, or the only network if
// name is empty.
func pickNetwork(specs spec.Specs, name string) (string, error) {
	if name != "" {
		if _, ok := specs.Networks[name]; !ok {
			return "", invalid("network %s not found in description", name)
		}
		return name, nil
	}
	switch len(specs.Networks) {
	case 0:
		return "", invalid("description has no networks")
	case 1:
		for name := range specs.Networks {
			return name, nil
		}
	}
	names := make([]string, 0, len(specs.Networks))
	for name := range specs.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", invalid("description has networks %s, name one", strings.Join(names, ", "))
}

// scheduleError returns an internal error as is. Every other scheduler error
// is a problem with the description.
func scheduleError(err error) error {
	if _, ok := err.(model.ConsistencyError); ok {
		return err
	}
	return invalid("%s", err)
}

func invalid(f string, args ...interface{}) error {
	return serr.ErrInvalidScheduleRequest{Message: fmt.Sprintf(f, args...)}
}
