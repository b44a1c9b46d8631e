// Copyright 2020, Square, Inc.

package model

import (
	"fmt"
	"testing"

	"github.com/square/pnsynth/hierarchy"
)

var intType = DataType{Type: "int"}

// addLeaf adds a leaf with ports in0..in<ins-1> and out0..out<outs-1>.
func addLeaf(t *testing.T, n *Network, parent ProcessRef, id string, kind Kind, ins, outs int) ProcessRef {
	t.Helper()
	p, ok := n.AddProcess(parent, hierarchy.Id(id), kind)
	if !ok {
		t.Fatalf("AddProcess(%s) failed", id)
	}
	for i := 0; i < ins; i++ {
		if _, ok := n.AddInPort(p, hierarchy.Id(fmt.Sprintf("in%d", i)), intType); !ok {
			t.Fatalf("AddInPort on %s failed", id)
		}
	}
	for i := 0; i < outs; i++ {
		if _, ok := n.AddOutPort(p, hierarchy.Id(fmt.Sprintf("out%d", i)), intType); !ok {
			t.Fatalf("AddOutPort on %s failed", id)
		}
	}
	return p
}

// addComposite adds a composite with one in IOPort "i" and one out IOPort "o".
func addComposite(t *testing.T, n *Network, parent ProcessRef, id string) ProcessRef {
	t.Helper()
	p, ok := n.AddProcess(parent, hierarchy.Id(id), KindComposite)
	if !ok {
		t.Fatalf("AddProcess(%s) failed", id)
	}
	if _, ok := n.AddInPort(p, "i", DataType{}); !ok {
		t.Fatalf("AddInPort on %s failed", id)
	}
	if _, ok := n.AddOutPort(p, "o", DataType{}); !ok {
		t.Fatalf("AddOutPort on %s failed", id)
	}
	return p
}

func in(t *testing.T, n *Network, p ProcessRef, id string) PortRef {
	t.Helper()
	pt, ok := n.InPort(p, hierarchy.Id(id))
	if !ok {
		t.Fatalf("%s has no in port %s", n.Path(p), id)
	}
	return pt
}

func out(t *testing.T, n *Network, p ProcessRef, id string) PortRef {
	t.Helper()
	pt, ok := n.OutPort(p, hierarchy.Id(id))
	if !ok {
		t.Fatalf("%s has no out port %s", n.Path(p), id)
	}
	return pt
}

func connect(t *testing.T, n *Network, a, b PortRef) {
	t.Helper()
	if err := n.Connect(a, b); err != nil {
		t.Fatalf("Connect(%s, %s): %s", n.PortString(a), n.PortString(b), err)
	}
}

// checkSymmetric fails the test if any connection lacks its reverse.
func checkSymmetric(t *testing.T, n *Network) {
	t.Helper()
	if msg := symmetryViolation(n); msg != "" {
		t.Error(msg)
	}
}

func symmetryViolation(n *Network) string {
	for a, b := range n.links {
		back, ok := n.links[b]
		if !ok || back != a {
			return fmt.Sprintf("%s -> %s has no reverse link", n.TerminalString(a), n.TerminalString(b))
		}
		if !n.PortExists(a.Port) || !n.PortExists(b.Port) {
			return fmt.Sprintf("%s -> %s references a deleted port", n.TerminalString(a), n.TerminalString(b))
		}
	}
	return ""
}
