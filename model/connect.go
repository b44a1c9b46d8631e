// Copyright 2020, Square, Inc.

package model

import (
	"github.com/square/pnsynth/hierarchy"
)

// Connect connects port a to port b. If a is an IOPort, the slot is chosen
// from the relation of the owners: inside when b's owner is directly
// contained in a's owner, outside otherwise. Connecting a port to itself is a
// no-op and connecting to the zero PortRef disconnects a.
func (n *Network) Connect(a, b PortRef) error {
	pa, ok := n.port(a)
	if !ok {
		return LookupMiss{What: "port"}
	}
	if !b.Valid() {
		n.UnconnectPort(a)
		return nil
	}
	if a == b {
		return nil
	}
	pb, ok := n.port(b)
	if !ok {
		return LookupMiss{What: "port"}
	}

	t := a.Leaf()
	if pa.boundary {
		t = a.Outside()
		if n.Relation(pa.owner, pb.owner) == hierarchy.FirstChild {
			t = a.Inside()
		}
	}
	return n.ConnectTerminal(t, b)
}

// ConnectTerminal connects a given slot of a port to port b. The slot on b's
// side is derived from the relation between the two owners; if the relation
// is not legal for a's slot a StructuralError is returned and nothing
// changes. Any connection already occupying either slot is broken first.
func (n *Network) ConnectTerminal(a Terminal, b PortRef) error {
	pa, ok := n.port(a.Port)
	if !ok {
		return LookupMiss{What: "port"}
	}
	if (a.Slot == SlotPort) == pa.boundary {
		return ConsistencyError{Op: "connect", Detail: "slot " + a.Slot.String() + " does not exist on " + n.PortString(a.Port)}
	}
	if !b.Valid() {
		n.Unconnect(a)
		return nil
	}
	if b == a.Port {
		return nil
	}
	pb, ok := n.port(b)
	if !ok {
		return LookupMiss{What: "port"}
	}

	rel := n.Relation(pa.owner, pb.owner)
	far, reason := farSlot(a.Slot, pb.boundary, rel)
	if reason != "" {
		return StructuralError{
			From:     n.TerminalString(a),
			To:       n.PortString(b),
			Relation: rel,
			Reason:   reason,
		}
	}

	bt := Terminal{Port: b, Slot: far}
	n.Unconnect(a)
	n.Unconnect(bt)
	n.links[a] = bt
	n.links[bt] = a
	return nil
}

// farSlot returns the slot of the far port that a connection from near uses,
// or a reason why the connection is illegal.
func farSlot(near Slot, farIsBoundary bool, rel hierarchy.Relation) (Slot, string) {
	switch near {
	case SlotPort, SlotOutside:
		switch rel {
		case hierarchy.Sibling:
			if farIsBoundary {
				return SlotOutside, ""
			}
			return SlotPort, ""
		case hierarchy.FirstParent:
			if farIsBoundary {
				return SlotInside, ""
			}
			return 0, "the containing process is not a composite"
		}
		return 0, "only a sibling or the directly containing composite can be connected"
	case SlotInside:
		if rel != hierarchy.FirstChild {
			return 0, "the inside of an IOPort only connects to a directly contained process"
		}
		if farIsBoundary {
			return SlotOutside, ""
		}
		return SlotPort, ""
	}
	return 0, "unknown slot"
}

// Unconnect breaks the connection on terminal t, if any, on both ends.
func (n *Network) Unconnect(t Terminal) {
	far, ok := n.links[t]
	if !ok {
		return
	}
	delete(n.links, t)
	delete(n.links, far)
}

// UnconnectPort breaks every connection of a port: the single slot of a leaf
// port, both slots of an IOPort.
func (n *Network) UnconnectPort(pt PortRef) {
	n.Unconnect(pt.Leaf())
	n.Unconnect(pt.Outside())
	n.Unconnect(pt.Inside())
}

// Connected returns the terminal at the other end of t.
func (n *Network) Connected(t Terminal) (Terminal, bool) {
	far, ok := n.links[t]
	return far, ok
}

func (n *Network) IsConnected(t Terminal) bool {
	_, ok := n.links[t]
	return ok
}

// ConnectedPort returns the port directly connected to pt's default
// terminal: the leaf slot of a leaf port, the outside slot of an IOPort.
func (n *Network) ConnectedPort(pt PortRef) (PortRef, bool) {
	far, ok := n.links[n.Terminal(pt)]
	return far.Port, ok
}

// NumConnections returns the number of live connections.
func (n *Network) NumConnections() int {
	return len(n.links) / 2
}
