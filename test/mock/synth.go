// Copyright 2020, Square, Inc.

package mock

import (
	"errors"

	"github.com/square/pnsynth/proto"
	"github.com/square/pnsynth/spec"
)

var (
	ErrSynthesizer = errors.New("forced error in synthesizer")
)

type Synthesizer struct {
	LintFunc     func(spec.Specs) *spec.CheckResults
	ScheduleFunc func(proto.ScheduleRequest) (proto.ScheduleResult, error)
}

func (s *Synthesizer) Lint(specs spec.Specs) *spec.CheckResults {
	if s.LintFunc != nil {
		return s.LintFunc(specs)
	}
	return spec.NewCheckResults()
}

func (s *Synthesizer) Schedule(req proto.ScheduleRequest) (proto.ScheduleResult, error) {
	if s.ScheduleFunc != nil {
		return s.ScheduleFunc(req)
	}
	return proto.ScheduleResult{}, nil
}
