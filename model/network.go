// Copyright 2020, Square, Inc.

package model

import (
	"sort"

	"github.com/square/pnsynth/hierarchy"
)

// ProcessRef addresses a process in a Network. The zero value addresses
// nothing.
type ProcessRef struct {
	index int
	gen   uint32
}

func (r ProcessRef) Valid() bool {
	return r.gen != 0
}

type process struct {
	gen      uint32
	live     bool
	path     hierarchy.Path
	kind     Kind
	parent   ProcessRef
	in       []PortRef
	out      []PortRef
	children map[hierarchy.Id]ProcessRef // composites only
	attrs    Attributes
}

// Network is the root composite of a process network plus the ports that are
// the network's overall inputs and outputs. It owns every process, port and
// connection. A Network is not safe for concurrent use.
type Network struct {
	processes     []process
	ports         []port
	freeProcesses []int
	freePorts     []int
	links         map[Terminal]Terminal
	root          ProcessRef
	inputs        []PortRef
	outputs       []PortRef
}

// NewNetwork returns an empty network whose root composite is named id.
func NewNetwork(id hierarchy.Id) *Network {
	n := &Network{
		links: map[Terminal]Terminal{},
	}
	n.root = n.newProcess(hierarchy.NewPath(id), KindComposite, ProcessRef{})
	return n
}

func (n *Network) Root() ProcessRef {
	return n.root
}

func (n *Network) Name() hierarchy.Id {
	return n.Id(n.root)
}

func (n *Network) newProcess(path hierarchy.Path, kind Kind, parent ProcessRef) ProcessRef {
	e := process{
		live:   true,
		path:   path,
		kind:   kind,
		parent: parent,
	}
	if kind.IsComposite() {
		e.children = map[hierarchy.Id]ProcessRef{}
	}

	var idx int
	if last := len(n.freeProcesses) - 1; last >= 0 {
		idx = n.freeProcesses[last]
		n.freeProcesses = n.freeProcesses[:last]
		e.gen = n.processes[idx].gen
		n.processes[idx] = e
	} else {
		e.gen = 1
		idx = len(n.processes)
		n.processes = append(n.processes, e)
	}
	return ProcessRef{index: idx, gen: e.gen}
}

func (n *Network) proc(r ProcessRef) (*process, bool) {
	if !r.Valid() || r.index < 0 || r.index >= len(n.processes) {
		return nil, false
	}
	e := &n.processes[r.index]
	if !e.live || e.gen != r.gen {
		return nil, false
	}
	return e, true
}

// AddProcess creates a process named id inside the composite parent. It
// returns false if parent is not a live composite, kind is unknown, or parent
// already contains a process named id.
func (n *Network) AddProcess(parent ProcessRef, id hierarchy.Id, kind Kind) (ProcessRef, bool) {
	pe, ok := n.proc(parent)
	if !ok || !pe.kind.IsComposite() || !kind.Valid() || id == "" {
		return ProcessRef{}, false
	}
	if _, exists := pe.children[id]; exists {
		return ProcessRef{}, false
	}
	path := pe.path.Child(id)
	r := n.newProcess(path, kind, parent)
	n.processes[parent.index].children[id] = r // pe may be stale after newProcess
	return r, true
}

// Exists returns true if p addresses a live process.
func (n *Network) Exists(p ProcessRef) bool {
	_, ok := n.proc(p)
	return ok
}

func (n *Network) Id(p ProcessRef) hierarchy.Id {
	if e, ok := n.proc(p); ok {
		return e.path.Id()
	}
	return ""
}

// Path returns a copy of the process's hierarchy path.
func (n *Network) Path(p ProcessRef) hierarchy.Path {
	if e, ok := n.proc(p); ok {
		return hierarchy.NewPath(e.path...)
	}
	return nil
}

func (n *Network) Kind(p ProcessRef) Kind {
	if e, ok := n.proc(p); ok {
		return e.kind
	}
	return ""
}

// Parent returns the composite directly containing p. The root has none.
func (n *Network) Parent(p ProcessRef) (ProcessRef, bool) {
	e, ok := n.proc(p)
	if !ok || !e.parent.Valid() {
		return ProcessRef{}, false
	}
	return e.parent, true
}

func (n *Network) Attributes(p ProcessRef) Attributes {
	if e, ok := n.proc(p); ok {
		return e.attrs
	}
	return Attributes{}
}

func (n *Network) SetAttributes(p ProcessRef, attrs Attributes) error {
	e, ok := n.proc(p)
	if !ok {
		return LookupMiss{What: "process"}
	}
	e.attrs = attrs
	return nil
}

// Cost returns the cost of a leaf, or the summed cost of everything a
// composite contains.
func (n *Network) Cost(p ProcessRef) int {
	e, ok := n.proc(p)
	if !ok {
		return 0
	}
	if !e.kind.IsComposite() {
		return e.attrs.Cost
	}
	sum := e.attrs.Cost
	for _, c := range e.children {
		sum += n.Cost(c)
	}
	return sum
}

// Relation returns how other relates to self in the containment tree.
func (n *Network) Relation(self, other ProcessRef) hierarchy.Relation {
	a, ok := n.proc(self)
	if !ok {
		return hierarchy.Other
	}
	b, ok := n.proc(other)
	if !ok {
		return hierarchy.Other
	}
	return hierarchy.FindRelation(a.path, b.path)
}

// Child returns the process named id directly contained in composite parent.
func (n *Network) Child(parent ProcessRef, id hierarchy.Id) (ProcessRef, bool) {
	e, ok := n.proc(parent)
	if !ok || e.children == nil {
		return ProcessRef{}, false
	}
	r, ok := e.children[id]
	return r, ok
}

// Children returns the processes directly contained in p, sorted by Id.
func (n *Network) Children(p ProcessRef) []ProcessRef {
	e, ok := n.proc(p)
	if !ok || len(e.children) == 0 {
		return nil
	}
	ids := make([]string, 0, len(e.children))
	for id := range e.children {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	refs := make([]ProcessRef, len(ids))
	for i, id := range ids {
		refs[i] = e.children[hierarchy.Id(id)]
	}
	return refs
}

// Walk calls fn for every process in the network, parents before children
// and children in Id order, until fn returns false.
func (n *Network) Walk(fn func(ProcessRef) bool) {
	n.walk(n.root, fn)
}

func (n *Network) walk(p ProcessRef, fn func(ProcessRef) bool) bool {
	if !fn(p) {
		return false
	}
	for _, c := range n.Children(p) {
		if !n.walk(c, fn) {
			return false
		}
	}
	return true
}

// Processes returns every process in Walk order, the root included.
func (n *Network) Processes() []ProcessRef {
	var all []ProcessRef
	n.Walk(func(p ProcessRef) bool {
		all = append(all, p)
		return true
	})
	return all
}

// Find returns the first process named id in Walk order. Ids are only unique
// within one composite, so Lookup is preferred when the path is known.
func (n *Network) Find(id hierarchy.Id) (ProcessRef, bool) {
	var found ProcessRef
	n.Walk(func(p ProcessRef) bool {
		if n.Id(p) == id {
			found = p
			return false
		}
		return true
	})
	return found, found.Valid()
}

// Lookup returns the process at path. The path must start with the root's Id.
func (n *Network) Lookup(path hierarchy.Path) (ProcessRef, bool) {
	if len(path) == 0 || path[0] != n.Name() {
		return ProcessRef{}, false
	}
	cur := n.root
	for _, id := range path[1:] {
		next, ok := n.Child(cur, id)
		if !ok {
			return ProcessRef{}, false
		}
		cur = next
	}
	return cur, true
}

// MustLookup is Lookup for callers that require the process to exist.
func (n *Network) MustLookup(path hierarchy.Path) (ProcessRef, error) {
	p, ok := n.Lookup(path)
	if !ok {
		return ProcessRef{}, LookupMiss{What: "process", Id: path.String()}
	}
	return p, nil
}

/* =========================================================================== */
// Network inputs and outputs

// AddInput declares pt as an overall input of the network. It returns false
// if pt is not a live port or is already an input.
func (n *Network) AddInput(pt PortRef) bool {
	if _, ok := n.port(pt); !ok || indexOfPort(n.inputs, pt) >= 0 {
		return false
	}
	n.inputs = append(n.inputs, pt)
	return true
}

// AddOutput declares pt as an overall output of the network. It returns false
// if pt is not a live port or is already an output.
func (n *Network) AddOutput(pt PortRef) bool {
	if _, ok := n.port(pt); !ok || indexOfPort(n.outputs, pt) >= 0 {
		return false
	}
	n.outputs = append(n.outputs, pt)
	return true
}

func (n *Network) DeleteInput(pt PortRef) bool {
	var ok bool
	n.inputs, ok = removePort(n.inputs, pt)
	return ok
}

func (n *Network) DeleteOutput(pt PortRef) bool {
	var ok bool
	n.outputs, ok = removePort(n.outputs, pt)
	return ok
}

func (n *Network) Inputs() []PortRef {
	return append([]PortRef(nil), n.inputs...)
}

func (n *Network) Outputs() []PortRef {
	return append([]PortRef(nil), n.outputs...)
}

func indexOfPort(ports []PortRef, pt PortRef) int {
	for i, p := range ports {
		if p == pt {
			return i
		}
	}
	return -1
}

func removePort(ports []PortRef, pt PortRef) ([]PortRef, bool) {
	i := indexOfPort(ports, pt)
	if i < 0 {
		return ports, false
	}
	return append(ports[:i], ports[i+1:]...), true
}

// allPorts returns a fresh slice of the in ports followed by the out ports.
func (e *process) allPorts() []PortRef {
	all := make([]PortRef, 0, len(e.in)+len(e.out))
	all = append(all, e.in...)
	return append(all, e.out...)
}
