// Copyright 2020, Square, Inc.

package model

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/square/pnsynth/hierarchy"
)

// top contains leaves a, b, c and composite k; k contains leaf l.
type fixture struct {
	n          *Network
	a, b, c, k ProcessRef
	l          ProcessRef
}

func newFixture(t *testing.T) fixture {
	n := NewNetwork("top")
	f := fixture{n: n}
	f.a = addLeaf(t, n, n.Root(), "a", KindComb, 1, 1)
	f.b = addLeaf(t, n, n.Root(), "b", KindComb, 1, 1)
	f.c = addLeaf(t, n, n.Root(), "c", KindComb, 1, 1)
	f.k = addComposite(t, n, n.Root(), "k")
	f.l = addLeaf(t, n, f.k, "l", KindComb, 1, 1)
	return f
}

func TestConnectSiblings(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, bIn := out(t, n, f.a, "out0"), in(t, n, f.b, "in0")
	connect(t, n, aOut, bIn)

	if got, ok := n.ConnectedPort(aOut); !ok || got != bIn {
		t.Errorf("ConnectedPort(a.out0) = %s, %t", n.PortString(got), ok)
	}
	if got, ok := n.ConnectedPort(bIn); !ok || got != aOut {
		t.Errorf("ConnectedPort(b.in0) = %s, %t", n.PortString(got), ok)
	}
	if n.NumConnections() != 1 {
		t.Errorf("NumConnections = %d, expected 1", n.NumConnections())
	}
	checkSymmetric(t, n)
}

func TestConnectReplacesOldConnection(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, bIn, cOut := out(t, n, f.a, "out0"), in(t, n, f.b, "in0"), out(t, n, f.c, "out0")
	connect(t, n, aOut, bIn)
	connect(t, n, cOut, bIn)

	if n.IsConnected(aOut.Leaf()) {
		t.Error("a.out0 still connected after b.in0 was reconnected")
	}
	if got, _ := n.ConnectedPort(bIn); got != cOut {
		t.Errorf("b.in0 connected to %s, expected top/c.out0", n.PortString(got))
	}
	if n.NumConnections() != 1 {
		t.Errorf("NumConnections = %d, expected 1", n.NumConnections())
	}
	checkSymmetric(t, n)
}

func TestConnectRoundTrip(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, bIn := out(t, n, f.a, "out0"), in(t, n, f.b, "in0")
	connect(t, n, aOut, bIn)
	connect(t, n, aOut, PortRef{})

	if n.IsConnected(aOut.Leaf()) || n.IsConnected(bIn.Leaf()) {
		t.Error("ports still connected after connecting to the zero port")
	}
	if n.NumConnections() != 0 {
		t.Errorf("NumConnections = %d, expected 0", n.NumConnections())
	}
}

func TestConnectToSelfIsNoop(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut := out(t, n, f.a, "out0")
	connect(t, n, aOut, aOut)
	if n.NumConnections() != 0 {
		t.Errorf("NumConnections = %d, expected 0", n.NumConnections())
	}
}

func TestConnectIOPortSlots(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, ki, lIn := out(t, n, f.a, "out0"), in(t, n, f.k, "i"), in(t, n, f.l, "in0")
	connect(t, n, aOut, ki)
	connect(t, n, ki, lIn)

	if far, _ := n.Connected(aOut.Leaf()); far != ki.Outside() {
		t.Errorf("a.out0 connected to %s, expected top/k.i(outside)", n.TerminalString(far))
	}
	if far, _ := n.Connected(ki.Inside()); far != lIn.Leaf() {
		t.Errorf("k.i(inside) connected to %s, expected top/k/l.in0", n.TerminalString(far))
	}
	if n.NumConnections() != 2 {
		t.Errorf("NumConnections = %d, expected 2", n.NumConnections())
	}

	// Connecting from the inner side picks k.i's inside slot as well.
	lOut, ko := out(t, n, f.l, "out0"), out(t, n, f.k, "o")
	connect(t, n, lOut, ko)
	if far, _ := n.Connected(lOut.Leaf()); far != ko.Inside() {
		t.Errorf("l.out0 connected to %s, expected top/k.o(inside)", n.TerminalString(far))
	}
	checkSymmetric(t, n)
}

func TestConnectIllegalRelation(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, bIn, lIn := out(t, n, f.a, "out0"), in(t, n, f.b, "in0"), in(t, n, f.l, "in0")
	connect(t, n, aOut, bIn)

	err := n.Connect(aOut, lIn)
	serr, ok := err.(StructuralError)
	if !ok {
		t.Fatalf("Connect(a.out0, k/l.in0) error = %v (%T), expected StructuralError", err, err)
	}
	if serr.Relation != hierarchy.SiblingsChild {
		t.Errorf("relation = %s, expected %s", serr.Relation, hierarchy.SiblingsChild)
	}
	if got, _ := n.ConnectedPort(aOut); got != bIn {
		t.Error("a failed connect changed the existing connection")
	}

	ki := in(t, n, f.k, "i")
	err = n.ConnectTerminal(ki.Inside(), bIn)
	if _, ok := err.(StructuralError); !ok {
		t.Errorf("ConnectTerminal(k.i(inside), b.in0) error = %v (%T), expected StructuralError", err, err)
	}
	if n.NumConnections() != 1 {
		t.Errorf("NumConnections = %d, expected 1", n.NumConnections())
	}
}

func TestConnectTerminalWrongSlot(t *testing.T) {
	f := newFixture(t)
	n := f.n
	err := n.ConnectTerminal(out(t, n, f.a, "out0").Inside(), in(t, n, f.b, "in0"))
	if _, ok := err.(ConsistencyError); !ok {
		t.Errorf("error = %v (%T), expected ConsistencyError", err, err)
	}
	err = n.ConnectTerminal(in(t, n, f.k, "i").Leaf(), in(t, n, f.b, "in0"))
	if _, ok := err.(ConsistencyError); !ok {
		t.Errorf("error = %v (%T), expected ConsistencyError", err, err)
	}
}

func TestDeletePortDisconnects(t *testing.T) {
	f := newFixture(t)
	n := f.n
	aOut, bIn := out(t, n, f.a, "out0"), in(t, n, f.b, "in0")
	connect(t, n, aOut, bIn)
	if err := n.DeletePort(bIn); err != nil {
		t.Fatal(err)
	}
	if n.IsConnected(aOut.Leaf()) {
		t.Error("a.out0 still connected to a deleted port")
	}
	if n.PortExists(bIn) {
		t.Error("deleted port still exists")
	}
	if _, ok := n.InPort(f.b, "in0"); ok {
		t.Error("deleted port still listed on its owner")
	}
}

func TestConnectionSymmetryProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("every connection has its reverse", prop.ForAll(
		func(ops []int) bool {
			f := newFixture(t)
			n := f.n
			var ports []PortRef
			for _, p := range []ProcessRef{f.a, f.b, f.k, f.l} {
				ports = append(ports, n.InPorts(p)...)
				ports = append(ports, n.OutPorts(p)...)
			}
			for _, v := range ops {
				a, b := ports[(v/4)%len(ports)], ports[(v/32)%len(ports)]
				before := copyLinks(n.links)
				var err error
				switch v % 4 {
				case 0:
					err = n.Connect(a, b)
				case 1:
					n.UnconnectPort(a)
				case 2:
					if n.IsBoundary(a) {
						err = n.ConnectTerminal(a.Inside(), b)
					}
				case 3:
					err = n.Connect(a, PortRef{})
				}
				if err != nil && !sameLinks(before, n.links) {
					return false
				}
				if symmetryViolation(n) != "" {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(40, gen.IntRange(0, 1<<12)),
	))

	properties.TestingRun(t)
}

func copyLinks(links map[Terminal]Terminal) map[Terminal]Terminal {
	c := make(map[Terminal]Terminal, len(links))
	for k, v := range links {
		c[k] = v
	}
	return c
}

func sameLinks(a, b map[Terminal]Terminal) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
