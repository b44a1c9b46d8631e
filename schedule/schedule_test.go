// Copyright 2020, Square, Inc.

package schedule

import (
	"fmt"
	"testing"

	"github.com/go-test/deep"

	"github.com/square/pnsynth/hierarchy"
	"github.com/square/pnsynth/model"
)

type netBuilder struct {
	t *testing.T
	n *model.Network
}

func newNet(t *testing.T) netBuilder {
	return netBuilder{t: t, n: model.NewNetwork("top")}
}

func (b netBuilder) leaf(parent model.ProcessRef, id string, kind model.Kind, ins, outs int) model.ProcessRef {
	b.t.Helper()
	p, ok := b.n.AddProcess(parent, hierarchy.Id(id), kind)
	if !ok {
		b.t.Fatalf("AddProcess(%s) failed", id)
	}
	for i := 0; i < ins; i++ {
		b.n.AddInPort(p, hierarchy.Id(fmt.Sprintf("in%d", i)), model.DataType{Type: "int"})
	}
	for i := 0; i < outs; i++ {
		b.n.AddOutPort(p, hierarchy.Id(fmt.Sprintf("out%d", i)), model.DataType{Type: "int"})
	}
	return p
}

func (b netBuilder) composite(parent model.ProcessRef, id string) model.ProcessRef {
	b.t.Helper()
	p, ok := b.n.AddProcess(parent, hierarchy.Id(id), model.KindComposite)
	if !ok {
		b.t.Fatalf("AddProcess(%s) failed", id)
	}
	b.n.AddInPort(p, "i", model.DataType{})
	b.n.AddOutPort(p, "o", model.DataType{})
	return p
}

func (b netBuilder) in(p model.ProcessRef, id string) model.PortRef {
	b.t.Helper()
	pt, ok := b.n.InPort(p, hierarchy.Id(id))
	if !ok {
		b.t.Fatalf("no in port %s on %s", id, b.n.Path(p))
	}
	return pt
}

func (b netBuilder) out(p model.ProcessRef, id string) model.PortRef {
	b.t.Helper()
	pt, ok := b.n.OutPort(p, hierarchy.Id(id))
	if !ok {
		b.t.Fatalf("no out port %s on %s", id, b.n.Path(p))
	}
	return pt
}

func (b netBuilder) connect(from, to model.PortRef) {
	b.t.Helper()
	if err := b.n.Connect(from, to); err != nil {
		b.t.Fatal(err)
	}
}

// checkSchedule verifies that every process appears once, after the
// producers of its in-ports (delays and boundaries excepted), and that every
// process reachable from starts is scheduled.
func checkSchedule(t *testing.T, net *model.Network, deps dependencies, starts []model.ProcessRef, sched Schedule) {
	t.Helper()
	pos := map[model.ProcessRef]int{}
	for i, p := range sched.Processes() {
		if _, dup := pos[p]; dup {
			t.Errorf("%s scheduled twice", net.Path(p))
		}
		pos[p] = i
	}

	reachable := map[model.ProcessRef]bool{}
	queue := append([]model.ProcessRef(nil), starts...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if reachable[p] {
			continue
		}
		reachable[p] = true
		for _, pt := range net.InPorts(p) {
			prod, ok, err := deps.producer(pt)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				continue
			}
			queue = append(queue, prod)
			if net.Kind(p).IsDelay() {
				continue
			}
			if pos[prod] >= pos[p] {
				t.Errorf("%s scheduled at %d, not before its consumer %s at %d",
					net.Path(prod), pos[prod], net.Path(p), pos[p])
			}
		}
	}
	for p := range reachable {
		if _, ok := pos[p]; !ok {
			t.Errorf("%s is reachable but not scheduled", net.Path(p))
		}
	}
	for p := range pos {
		if !reachable[p] {
			t.Errorf("%s is scheduled but not reachable", net.Path(p))
		}
	}
}

func findAndCheck(t *testing.T, net *model.Network) Schedule {
	t.Helper()
	sched, err := NewFinder(net).FindSchedule()
	if err != nil {
		t.Fatal(err)
	}
	deps := newNetworkDeps(net)
	starts, err := deps.startingPoints(net.Outputs())
	if err != nil {
		t.Fatal(err)
	}
	checkSchedule(t, net, deps, starts, sched)
	return sched
}

func TestFindScheduleChain(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	a := b.leaf(root, "a", model.KindComb, 1, 1)
	bb := b.leaf(root, "b", model.KindComb, 1, 1)
	c := b.leaf(root, "c", model.KindComb, 1, 1)
	b.connect(b.out(a, "out0"), b.in(bb, "in0"))
	b.connect(b.out(bb, "out0"), b.in(c, "in0"))
	b.n.AddInput(b.in(a, "in0"))
	b.n.AddOutput(b.out(c, "out0"))

	sched := findAndCheck(t, b.n)
	if diff := deep.Equal(sched.Ids(), []hierarchy.Id{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleDiamond(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	a := b.leaf(root, "a", model.KindComb, 1, 1)
	f := b.leaf(root, "f", model.KindFanout, 1, 2)
	bb := b.leaf(root, "b", model.KindComb, 1, 1)
	d := b.leaf(root, "d", model.KindComb, 1, 1)
	c := b.leaf(root, "c", model.KindComb, 2, 1)
	b.connect(b.out(a, "out0"), b.in(f, "in0"))
	b.connect(b.out(f, "out0"), b.in(bb, "in0"))
	b.connect(b.out(f, "out1"), b.in(d, "in0"))
	b.connect(b.out(bb, "out0"), b.in(c, "in0"))
	b.connect(b.out(d, "out0"), b.in(c, "in1"))
	b.n.AddOutput(b.out(c, "out0"))

	sched := findAndCheck(t, b.n)
	if sched.Len() != 5 {
		t.Errorf("scheduled %d processes, expected 5: %v", sched.Len(), sched.Ids())
	}
	if diff := deep.Equal(sched.Ids(), []hierarchy.Id{"a", "f", "b", "d", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleFeedback(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	s := b.leaf(root, "s", model.KindComb, 1, 1)
	a := b.leaf(root, "a", model.KindComb, 2, 1)
	f := b.leaf(root, "f", model.KindFanout, 1, 2)
	delay := b.leaf(root, "delay", model.KindDelay, 1, 1)
	c := b.leaf(root, "c", model.KindComb, 1, 1)
	b.connect(b.out(s, "out0"), b.in(a, "in0"))
	b.connect(b.out(delay, "out0"), b.in(a, "in1"))
	b.connect(b.out(a, "out0"), b.in(f, "in0"))
	b.connect(b.out(f, "out0"), b.in(delay, "in0"))
	b.connect(b.out(f, "out1"), b.in(c, "in0"))
	b.n.AddInput(b.in(s, "in0"))
	b.n.AddOutput(b.out(c, "out0"))

	sched := findAndCheck(t, b.n)
	ids := sched.Ids()
	if diff := deep.Equal(ids, []hierarchy.Id{"s", "delay", "a", "f", "c"}); diff != nil {
		t.Error(diff)
	}
	if ids[len(ids)-1] != "c" {
		t.Errorf("last scheduled is %s, expected c", ids[len(ids)-1])
	}
}

func TestFindScheduleDelayFedByInput(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	delay := b.leaf(root, "delay", model.KindDelay, 1, 1)
	c := b.leaf(root, "c", model.KindComb, 1, 1)
	b.connect(b.out(delay, "out0"), b.in(c, "in0"))
	b.n.AddInput(b.in(delay, "in0"))
	b.n.AddOutput(b.out(c, "out0"))

	sched := findAndCheck(t, b.n)
	if diff := deep.Equal(sched.Ids(), []hierarchy.Id{"delay", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleThroughComposites(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	x := b.leaf(root, "x", model.KindComb, 1, 1)
	k := b.composite(root, "k")
	l := b.leaf(k, "l", model.KindComb, 1, 1)
	m := b.leaf(root, "m", model.KindComb, 1, 1)
	b.connect(b.out(x, "out0"), b.in(k, "i"))
	b.connect(b.in(k, "i"), b.in(l, "in0"))
	b.connect(b.out(l, "out0"), b.out(k, "o"))
	b.connect(b.out(k, "o"), b.in(m, "in0"))
	b.n.AddOutput(b.out(m, "out0"))

	// m's in-port resolves straight to l's out-port.
	leaf, err := b.n.ConnectedLeafPort(b.in(m, "in0").Leaf())
	if err != nil {
		t.Fatal(err)
	}
	if leaf != b.out(l, "out0") {
		t.Errorf("m.in0 resolved to %s, expected top/k/l.out0", b.n.PortString(leaf))
	}

	sched := findAndCheck(t, b.n)
	expect := []string{"top/x", "top/k/l", "top/m"}
	if diff := deep.Equal(sched.Strings(), expect); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleCompositeOutput(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	k := b.composite(root, "k")
	l := b.leaf(k, "l", model.KindComb, 1, 1)
	b.connect(b.out(l, "out0"), b.out(k, "o"))
	b.n.AddOutput(b.out(k, "o"))

	sched := findAndCheck(t, b.n)
	if diff := deep.Equal(sched.Strings(), []string{"top/k/l"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleSplicesAfterLatestProducer(t *testing.T) {
	// x and y are scheduled by earlier walks as [y, x]. c reads y first, so
	// splicing after its first producer would put c before x.
	b := newNet(t)
	root := b.n.Root()
	x := b.leaf(root, "x", model.KindComb, 0, 2)
	y := b.leaf(root, "y", model.KindComb, 0, 2)
	c := b.leaf(root, "c", model.KindComb, 2, 1)
	b.connect(b.out(y, "out1"), b.in(c, "in0"))
	b.connect(b.out(x, "out1"), b.in(c, "in1"))
	b.n.AddOutput(b.out(x, "out0"))
	b.n.AddOutput(b.out(y, "out0"))
	b.n.AddOutput(b.out(c, "out0"))

	sched := findAndCheck(t, b.n)
	if diff := deep.Equal(sched.Ids(), []hierarchy.Id{"y", "x", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleSharedProducerAcrossWalks(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	a := b.leaf(root, "a", model.KindFanout, 1, 2)
	p := b.leaf(root, "p", model.KindComb, 1, 1)
	q := b.leaf(root, "q", model.KindComb, 1, 1)
	b.connect(b.out(a, "out0"), b.in(p, "in0"))
	b.connect(b.out(a, "out1"), b.in(q, "in0"))
	b.n.AddInput(b.in(a, "in0"))
	b.n.AddOutput(b.out(p, "out0"))
	b.n.AddOutput(b.out(q, "out0"))

	// q's walk only depends on a, so q goes right after it.
	sched := findAndCheck(t, b.n)
	if diff := deep.Equal(sched.Ids(), []hierarchy.Id{"a", "q", "p"}); diff != nil {
		t.Error(diff)
	}
}

func TestFindScheduleNoOutputs(t *testing.T) {
	b := newNet(t)
	b.leaf(b.n.Root(), "a", model.KindComb, 1, 1)
	sched, err := NewFinder(b.n).FindSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if sched.Len() != 0 {
		t.Errorf("scheduled %v, expected nothing", sched.Ids())
	}
}

func TestFindScheduleDanglingComposite(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	k := b.composite(root, "k")
	b.leaf(k, "l", model.KindComb, 1, 1)
	m := b.leaf(root, "m", model.KindComb, 1, 1)
	b.connect(b.out(k, "o"), b.in(m, "in0"))
	b.n.AddOutput(b.out(m, "out0"))

	_, err := NewFinder(b.n).FindSchedule()
	if _, ok := err.(model.ConsistencyError); !ok {
		t.Errorf("error = %v (%T), expected ConsistencyError", err, err)
	}
}

func TestFindScheduleInPortFedByInPort(t *testing.T) {
	b := newNet(t)
	root := b.n.Root()
	a := b.leaf(root, "a", model.KindComb, 1, 1)
	c := b.leaf(root, "c", model.KindComb, 1, 1)
	b.connect(b.in(a, "in0"), b.in(c, "in0"))
	b.n.AddOutput(b.out(c, "out0"))

	_, err := NewFinder(b.n).FindSchedule()
	if _, ok := err.(model.StructuralError); !ok {
		t.Errorf("error = %v (%T), expected StructuralError", err, err)
	}
}

func TestSpliceMissingInsertionPoint(t *testing.T) {
	b := newNet(t)
	a := b.leaf(b.n.Root(), "a", model.KindComb, 1, 1)
	s := Schedule{net: b.n}
	err := s.splice(fragment{procs: nil, after: []model.ProcessRef{a}})
	if _, ok := err.(model.ConsistencyError); !ok {
		t.Errorf("error = %v (%T), expected ConsistencyError for a missing insertion point", err, err)
	}
}
