// Copyright 2020, Square, Inc.

package model

import (
	"fmt"
	"strings"
)

// String returns a multi-line description of the whole network: every
// process with its ports and where they are connected.
func (n *Network) String() string {
	var b strings.Builder
	n.Walk(func(p ProcessRef) bool {
		n.dumpProcess(&b, p)
		return true
	})
	if len(n.inputs) > 0 {
		fmt.Fprintf(&b, "inputs: %s\n", n.portList(n.inputs))
	}
	if len(n.outputs) > 0 {
		fmt.Fprintf(&b, "outputs: %s\n", n.portList(n.outputs))
	}
	return b.String()
}

func (n *Network) portList(ports []PortRef) string {
	s := make([]string, len(ports))
	for i, pt := range ports {
		s[i] = n.PortString(pt)
	}
	return strings.Join(s, ", ")
}

func (n *Network) dumpProcess(b *strings.Builder, p ProcessRef) {
	e, _ := n.proc(p)
	indent := strings.Repeat("  ", e.path.Depth())
	fmt.Fprintf(b, "%s%s %s", indent, e.kind, e.path)
	if e.attrs.Cost != 0 {
		fmt.Fprintf(b, " cost=%d", e.attrs.Cost)
	}
	if e.attrs.Function != "" {
		fmt.Fprintf(b, " function=%s", e.attrs.Function)
	}
	if e.kind.IsDelay() {
		fmt.Fprintf(b, " initial=%q", e.attrs.InitialValue)
	}
	b.WriteString("\n")

	for _, pt := range e.allPorts() {
		pe, _ := n.port(pt)
		fmt.Fprintf(b, "%s  %s %s", indent, pe.dir, pe.id)
		if pe.boundary {
			fmt.Fprintf(b, " outside=%s inside=%s\n", n.peer(pt.Outside()), n.peer(pt.Inside()))
			continue
		}
		fmt.Fprintf(b, " %s -> %s\n", pe.dataType, n.peer(pt.Leaf()))
	}
}

func (n *Network) peer(t Terminal) string {
	far, ok := n.links[t]
	if !ok {
		return "-"
	}
	return n.TerminalString(far)
}
