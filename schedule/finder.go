// Copyright 2020, Square, Inc.

// Package schedule finds a sequential execution order for a process network.
//
// The Finder walks backward from the processes driving the outputs, through
// the producer of every in-port, and emits each process after everything it
// depends on. Delays break the walk: a delay is emitted on its own and its
// producer becomes a new, independent starting point. Partial orders found
// from different starting points are spliced into one schedule.
package schedule

import (
	log "github.com/sirupsen/logrus"

	"github.com/square/pnsynth/model"
	"github.com/square/pnsynth/util"
)

// A Finder computes schedules for one network. The network must not be
// modified while a Find method runs.
type Finder struct {
	net *model.Network
}

func NewFinder(net *model.Network) *Finder {
	return &Finder{net: net}
}

// FindSchedule returns a schedule of every leaf process the network outputs
// depend on. Composites are transparent: producers are found by resolving
// connections down to leaf ports. Network inputs are boundaries.
func (f *Finder) FindSchedule() (Schedule, error) {
	deps := newNetworkDeps(f.net)
	starts, err := deps.startingPoints(f.net.Outputs())
	if err != nil {
		return Schedule{}, err
	}
	return f.find(deps, starts)
}

// FindStageSchedule returns a schedule of the processes on one hierarchy
// level, walking back from the stage outputs and stopping at its boundary
// inputs. Composites on that level are scheduled as a unit.
func (f *Finder) FindStageSchedule(stage Stage) (Schedule, error) {
	deps, err := newStageDeps(f.net, stage)
	if err != nil {
		return Schedule{}, err
	}
	starts, err := deps.startingPoints(stage.Outputs)
	if err != nil {
		return Schedule{}, err
	}
	return f.find(deps, starts)
}

// ValidateCycles returns a model.StructuralError naming the processes of the
// first cycle not broken by a delay, or nil if the whole network has none.
func (f *Finder) ValidateCycles() error {
	deps := newNetworkDeps(f.net)
	starts, err := deps.startingPoints(f.net.Outputs())
	if err != nil {
		return err
	}
	return findCycle(f.net, deps, starts)
}

func (f *Finder) find(deps dependencies, starts []model.ProcessRef) (Schedule, error) {
	if err := findCycle(f.net, deps, starts); err != nil {
		return Schedule{}, err
	}

	s := &search{
		net:     f.net,
		deps:    deps,
		visited: map[model.ProcessRef]bool{},
		logger: log.WithFields(log.Fields{
			"run":     util.XID().String(),
			"network": f.net.Name(),
		}),
	}
	for _, p := range starts {
		s.push(p)
	}

	sched := Schedule{net: f.net}
	for len(s.queue) > 0 {
		start := s.queue[0]
		s.queue = s.queue[1:]
		s.logger.Debugf("starting search at %s", f.net.Path(start))

		local := map[model.ProcessRef]bool{}
		frag, err := s.partial(start, local)
		if err != nil {
			return Schedule{}, err
		}
		if err := sched.splice(frag); err != nil {
			return Schedule{}, err
		}
		for p := range local {
			s.visited[p] = true
		}
	}
	s.logger.Debugf("schedule of %d processes found", sched.Len())
	return sched, nil
}

// search is the state of one scheduling run.
type search struct {
	net     *model.Network
	deps    dependencies
	queue   []model.ProcessRef
	visited map[model.ProcessRef]bool // global, merged after every walk
	logger  *log.Entry
}

func (s *search) push(p model.ProcessRef) {
	s.logger.Debugf("adding starting point %s", s.net.Path(p))
	s.queue = append(s.queue, p)
}

// partial walks backward from p and returns the fragment of not yet
// scheduled processes p depends on, p last.
func (s *search) partial(p model.ProcessRef, local map[model.ProcessRef]bool) (fragment, error) {
	if s.visited[p] {
		return fragment{after: []model.ProcessRef{p}}, nil
	}
	if local[p] {
		return fragment{}, nil
	}
	local[p] = true

	if s.net.Kind(p).IsDelay() {
		if ins := s.net.InPorts(p); len(ins) > 0 {
			prod, ok, err := s.deps.producer(ins[0])
			if err != nil {
				return fragment{}, err
			}
			if ok {
				s.push(prod)
			}
		}
		return fragment{procs: []model.ProcessRef{p}}, nil
	}

	s.logger.Debugf("analyzing %s", s.net.Path(p))
	var frag fragment
	for _, pt := range s.net.InPorts(p) {
		prod, ok, err := s.deps.producer(pt)
		if err != nil {
			return fragment{}, err
		}
		if !ok {
			s.logger.Debugf("in port %s has no producer", s.net.PortString(pt))
			continue
		}
		child, err := s.partial(prod, local)
		if err != nil {
			return fragment{}, err
		}
		frag.procs = append(frag.procs, child.procs...)
		frag.after = append(frag.after, child.after...)
	}
	frag.procs = append(frag.procs, p)
	return frag, nil
}
