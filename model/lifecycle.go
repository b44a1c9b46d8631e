// Copyright 2020, Square, Inc.

package model

import (
	"fmt"

	"github.com/square/pnsynth/hierarchy"
)

// DeleteProcess destroys a process: its ports are disconnected and destroyed
// and, for a composite, every contained process is destroyed first.
func (n *Network) DeleteProcess(p ProcessRef) error {
	e, ok := n.proc(p)
	if !ok {
		return LookupMiss{What: "process"}
	}
	if p == n.root {
		return ErrRootProcess
	}
	if parent, ok := n.proc(e.parent); ok {
		delete(parent.children, e.path.Id())
	}
	n.destroy(p)
	return nil
}

func (n *Network) destroy(p ProcessRef) {
	for _, c := range n.Children(p) {
		n.destroy(c)
	}
	e, _ := n.proc(p)
	for _, pt := range e.allPorts() {
		n.UnconnectPort(pt)
		n.inputs, _ = removePort(n.inputs, pt)
		n.outputs, _ = removePort(n.outputs, pt)
		n.freePort(pt)
	}
	gen := e.gen + 1
	if gen == 0 {
		gen = 1
	}
	n.processes[p.index] = process{gen: gen}
	n.freeProcesses = append(n.freeProcesses, p.index)
}

// Move re-parents p under the composite newParent. Connections from p to its
// old level are broken (leaf ports and IOPort outside slots); connections
// inside a moved composite are kept. The hierarchy path of p and of every
// process it contains is rewritten.
func (n *Network) Move(p, newParent ProcessRef) error {
	e, ok := n.proc(p)
	if !ok {
		return LookupMiss{What: "process"}
	}
	if p == n.root {
		return ErrRootProcess
	}
	np, ok := n.proc(newParent)
	if !ok {
		return LookupMiss{What: "process"}
	}
	if !np.kind.IsComposite() {
		return ErrNotComposite
	}
	oldPath := e.path
	if np.path.HasPrefix(oldPath) {
		return StructuralError{
			From:   oldPath.String(),
			Reason: fmt.Sprintf("cannot move into itself or its own descendant %s", np.path),
		}
	}
	id := oldPath.Id()
	if _, exists := np.children[id]; exists {
		return StructuralError{
			From:   oldPath.String(),
			Reason: fmt.Sprintf("%s already contains a process named %s", np.path, id),
		}
	}

	for _, pt := range e.allPorts() {
		n.Unconnect(pt.Leaf())
		n.Unconnect(pt.Outside())
	}

	if old, ok := n.proc(e.parent); ok {
		delete(old.children, id)
	}
	np.children[id] = p
	e.parent = newParent

	newPath := oldPath.Reparent(np.path)
	n.walk(p, func(q ProcessRef) bool {
		qe, _ := n.proc(q)
		suffix := qe.path[len(oldPath):]
		qe.path = append(hierarchy.NewPath(newPath...), suffix...)
		return true
	})
	return nil
}
