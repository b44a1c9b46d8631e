// Copyright 2020, Square, Inc.

package model

import (
	"fmt"

	"github.com/square/pnsynth/hierarchy"
)

// PortRef addresses a port in a Network. The zero value addresses nothing
// and is used as "no port", e.g. Connect(a, PortRef{}) disconnects a.
type PortRef struct {
	index int
	gen   uint32
}

func (r PortRef) Valid() bool {
	return r.gen != 0
}

// Outside is the outside slot of a composite IOPort.
func (r PortRef) Outside() Terminal {
	return Terminal{Port: r, Slot: SlotOutside}
}

// Inside is the inside slot of a composite IOPort.
func (r PortRef) Inside() Terminal {
	return Terminal{Port: r, Slot: SlotInside}
}

// Leaf is the single slot of a leaf port.
func (r PortRef) Leaf() Terminal {
	return Terminal{Port: r, Slot: SlotPort}
}

type Direction uint8

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Slot is one connection point of a port.
type Slot uint8

const (
	SlotPort    Slot = iota // leaf port
	SlotOutside             // IOPort, toward the composite's own level
	SlotInside              // IOPort, toward a directly contained process
)

func (s Slot) String() string {
	switch s {
	case SlotOutside:
		return "outside"
	case SlotInside:
		return "inside"
	}
	return "port"
}

// Opposite returns the other slot of an IOPort.
func (s Slot) Opposite() Slot {
	switch s {
	case SlotOutside:
		return SlotInside
	case SlotInside:
		return SlotOutside
	}
	return s
}

// Terminal is one end of a connection.
type Terminal struct {
	Port PortRef
	Slot Slot
}

type port struct {
	gen      uint32
	live     bool
	id       hierarchy.Id
	owner    ProcessRef
	dir      Direction
	boundary bool // composite IOPort
	dataType DataType
}

func (n *Network) port(r PortRef) (*port, bool) {
	if !r.Valid() || r.index < 0 || r.index >= len(n.ports) {
		return nil, false
	}
	e := &n.ports[r.index]
	if !e.live || e.gen != r.gen {
		return nil, false
	}
	return e, true
}

// AddInPort adds an in port to p: a leaf port for a leaf, an IOPort for a
// composite (dt is ignored). It returns false if p is not live or already has
// a port named id.
func (n *Network) AddInPort(p ProcessRef, id hierarchy.Id, dt DataType) (PortRef, bool) {
	return n.addPort(p, id, In, dt)
}

// AddOutPort adds an out port to p. See AddInPort.
func (n *Network) AddOutPort(p ProcessRef, id hierarchy.Id, dt DataType) (PortRef, bool) {
	return n.addPort(p, id, Out, dt)
}

func (n *Network) addPort(p ProcessRef, id hierarchy.Id, dir Direction, dt DataType) (PortRef, bool) {
	e, ok := n.proc(p)
	if !ok || id == "" {
		return PortRef{}, false
	}
	if _, exists := n.findPort(e.in, id); exists {
		return PortRef{}, false
	}
	if _, exists := n.findPort(e.out, id); exists {
		return PortRef{}, false
	}

	pe := port{
		live:     true,
		id:       id,
		owner:    p,
		dir:      dir,
		boundary: e.kind.IsComposite(),
	}
	if !pe.boundary {
		pe.dataType = dt
	}

	var idx int
	if last := len(n.freePorts) - 1; last >= 0 {
		idx = n.freePorts[last]
		n.freePorts = n.freePorts[:last]
		pe.gen = n.ports[idx].gen
		n.ports[idx] = pe
	} else {
		pe.gen = 1
		idx = len(n.ports)
		n.ports = append(n.ports, pe)
	}
	r := PortRef{index: idx, gen: pe.gen}

	if dir == In {
		e.in = append(e.in, r)
	} else {
		e.out = append(e.out, r)
	}
	return r, true
}

func (n *Network) findPort(ports []PortRef, id hierarchy.Id) (PortRef, bool) {
	for _, r := range ports {
		if e, ok := n.port(r); ok && e.id == id {
			return r, true
		}
	}
	return PortRef{}, false
}

// InPort returns p's in port named id.
func (n *Network) InPort(p ProcessRef, id hierarchy.Id) (PortRef, bool) {
	e, ok := n.proc(p)
	if !ok {
		return PortRef{}, false
	}
	return n.findPort(e.in, id)
}

// OutPort returns p's out port named id.
func (n *Network) OutPort(p ProcessRef, id hierarchy.Id) (PortRef, bool) {
	e, ok := n.proc(p)
	if !ok {
		return PortRef{}, false
	}
	return n.findPort(e.out, id)
}

// Port returns p's in or out port named id.
func (n *Network) Port(p ProcessRef, id hierarchy.Id) (PortRef, bool) {
	if r, ok := n.InPort(p, id); ok {
		return r, true
	}
	return n.OutPort(p, id)
}

// InPorts returns p's in ports in the order they were added.
func (n *Network) InPorts(p ProcessRef) []PortRef {
	if e, ok := n.proc(p); ok {
		return append([]PortRef(nil), e.in...)
	}
	return nil
}

// OutPorts returns p's out ports in the order they were added.
func (n *Network) OutPorts(p ProcessRef) []PortRef {
	if e, ok := n.proc(p); ok {
		return append([]PortRef(nil), e.out...)
	}
	return nil
}

// DeletePort disconnects and destroys a port.
func (n *Network) DeletePort(pt PortRef) error {
	e, ok := n.port(pt)
	if !ok {
		return LookupMiss{What: "port"}
	}
	n.UnconnectPort(pt)
	if pe, ok := n.proc(e.owner); ok {
		if e.dir == In {
			pe.in, _ = removePort(pe.in, pt)
		} else {
			pe.out, _ = removePort(pe.out, pt)
		}
	}
	n.inputs, _ = removePort(n.inputs, pt)
	n.outputs, _ = removePort(n.outputs, pt)
	n.freePort(pt)
	return nil
}

func (n *Network) freePort(pt PortRef) {
	e := &n.ports[pt.index]
	e.live = false
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	n.freePorts = append(n.freePorts, pt.index)
}

func (n *Network) PortExists(pt PortRef) bool {
	_, ok := n.port(pt)
	return ok
}

func (n *Network) PortId(pt PortRef) hierarchy.Id {
	if e, ok := n.port(pt); ok {
		return e.id
	}
	return ""
}

// Owner returns the process a port belongs to.
func (n *Network) Owner(pt PortRef) ProcessRef {
	if e, ok := n.port(pt); ok {
		return e.owner
	}
	return ProcessRef{}
}

func (n *Network) Direction(pt PortRef) Direction {
	if e, ok := n.port(pt); ok {
		return e.dir
	}
	return In
}

// IsBoundary returns true if pt is a composite IOPort.
func (n *Network) IsBoundary(pt PortRef) bool {
	if e, ok := n.port(pt); ok {
		return e.boundary
	}
	return false
}

func (n *Network) DataType(pt PortRef) DataType {
	if e, ok := n.port(pt); ok {
		return e.dataType
	}
	return DataType{}
}

// Terminal returns the default terminal of a port: the leaf slot of a leaf
// port, the outside slot of an IOPort.
func (n *Network) Terminal(pt PortRef) Terminal {
	if n.IsBoundary(pt) {
		return pt.Outside()
	}
	return pt.Leaf()
}

// PortString formats a port as "path.port", e.g. "top/k/gain.out".
func (n *Network) PortString(pt PortRef) string {
	e, ok := n.port(pt)
	if !ok {
		return "<deleted port>"
	}
	return fmt.Sprintf("%s.%s", n.Path(e.owner), e.id)
}

// TerminalString formats a terminal; IOPort slots get a suffix.
func (n *Network) TerminalString(t Terminal) string {
	if t.Slot == SlotPort {
		return n.PortString(t.Port)
	}
	return fmt.Sprintf("%s(%s)", n.PortString(t.Port), t.Slot)
}
