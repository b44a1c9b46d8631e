// Copyright 2020, Square, Inc.

package schedule

import (
	"github.com/square/pnsynth/hierarchy"
	"github.com/square/pnsynth/model"
)

// Schedule is an execution order of processes. Every process appears once,
// after the producers of all of its in-ports that are neither fed through a
// delay nor a boundary input.
type Schedule struct {
	net   *model.Network
	order []model.ProcessRef
}

func (s Schedule) Len() int {
	return len(s.order)
}

// Processes returns the scheduled processes in order.
func (s Schedule) Processes() []model.ProcessRef {
	return append([]model.ProcessRef(nil), s.order...)
}

// Ids returns the Id of every scheduled process in order. Ids are only
// unique within a composite; use Paths or Processes to tell processes on
// different levels apart.
func (s Schedule) Ids() []hierarchy.Id {
	ids := make([]hierarchy.Id, len(s.order))
	for i, p := range s.order {
		ids[i] = s.net.Id(p)
	}
	return ids
}

func (s Schedule) Paths() []hierarchy.Path {
	paths := make([]hierarchy.Path, len(s.order))
	for i, p := range s.order {
		paths[i] = s.net.Path(p)
	}
	return paths
}

// Strings returns the path of every scheduled process as a string.
func (s Schedule) Strings() []string {
	strs := make([]string, len(s.order))
	for i, p := range s.order {
		strs[i] = s.net.Path(p).String()
	}
	return strs
}

func (s Schedule) index(p model.ProcessRef) int {
	for i, q := range s.order {
		if q == p {
			return i
		}
	}
	return -1
}

// fragment is the partial order found by one backward walk.
type fragment struct {
	procs []model.ProcessRef
	// Already scheduled processes that procs depend on. The first one is the
	// insertion point a walk inherits from its children; procs must follow
	// all of them.
	after []model.ProcessRef
}

// splice inserts f into the schedule right after the latest of the processes
// it must follow, or at the front if there are none.
func (s *Schedule) splice(f fragment) error {
	pos := -1
	for _, p := range f.after {
		i := s.index(p)
		if i < 0 {
			return model.ConsistencyError{
				Op:     "splice partial schedule",
				Detail: "insertion point " + s.net.Path(p).String() + " not found in schedule",
			}
		}
		if i > pos {
			pos = i
		}
	}
	if len(f.procs) == 0 {
		return nil
	}

	order := make([]model.ProcessRef, 0, len(s.order)+len(f.procs))
	order = append(order, s.order[:pos+1]...)
	order = append(order, f.procs...)
	order = append(order, s.order[pos+1:]...)
	s.order = order
	return nil
}
