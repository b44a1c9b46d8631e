// Copyright 2020, Square, Inc.

package model

import (
	"fmt"

	"github.com/square/pnsynth/hierarchy"
)

// ConnectedLeafPort follows the connection on t through any number of
// composite IOPorts and returns the leaf port at the end of the chain. It
// returns a ConsistencyError if the chain reaches a disconnected slot; callers
// that can meet dangling ports must check IsConnected first.
func (n *Network) ConnectedLeafPort(t Terminal) (PortRef, error) {
	if _, ok := n.port(t.Port); !ok {
		return PortRef{}, LookupMiss{What: "port"}
	}

	cur := t
	for hops := 0; hops <= len(n.ports); hops++ {
		next, ok := n.links[cur]
		if !ok {
			return PortRef{}, ConsistencyError{
				Op:     "resolve leaf port from " + n.TerminalString(t),
				Detail: n.TerminalString(cur) + " is not connected",
			}
		}
		if next.Slot == SlotPort {
			return next.Port, nil
		}
		exit, err := n.exitSlot(cur, next)
		if err != nil {
			return PortRef{}, err
		}
		cur = Terminal{Port: next.Port, Slot: exit}
	}
	return PortRef{}, ConsistencyError{
		Op:     "resolve leaf port from " + n.TerminalString(t),
		Detail: "connection chain does not end",
	}
}

// IsConnectedToLeaf returns true if the chain starting at t ends in a leaf
// port, i.e. ConnectedLeafPort(t) succeeds.
func (n *Network) IsConnectedToLeaf(t Terminal) bool {
	_, err := n.ConnectedLeafPort(t)
	return err == nil
}

// exitSlot returns the slot through which a chain that entered IOPort next
// from cur continues.
func (n *Network) exitSlot(cur, next Terminal) (Slot, error) {
	rel := n.Relation(n.Owner(cur.Port), n.Owner(next.Port))
	var exit Slot
	switch rel {
	case hierarchy.Sibling:
		exit = SlotInside
	case hierarchy.FirstParent:
		exit = SlotOutside
	case hierarchy.FirstChild:
		exit = SlotInside
	default:
		return 0, ConsistencyError{
			Op:     "resolve leaf port",
			Detail: fmt.Sprintf("%s is connected to %s (%s)", n.TerminalString(cur), n.TerminalString(next), rel),
		}
	}
	if exit != next.Slot.Opposite() {
		return 0, ConsistencyError{
			Op:     "resolve leaf port",
			Detail: fmt.Sprintf("%s entered %s through the wrong slot", n.TerminalString(cur), n.TerminalString(next)),
		}
	}
	return exit, nil
}

// UnconnectFromLeaf breaks every connection of the chain starting at t, up to
// and including the link to the leaf port at its far end. The far leaf port
// keeps no connection but is otherwise untouched. A chain that ends early in a
// disconnected slot is torn down as far as it goes.
func (n *Network) UnconnectFromLeaf(t Terminal) error {
	if _, ok := n.port(t.Port); !ok {
		return LookupMiss{What: "port"}
	}
	cur := t
	for hops := 0; hops <= len(n.ports); hops++ {
		next, ok := n.links[cur]
		if !ok {
			return nil
		}
		n.Unconnect(cur)
		if next.Slot == SlotPort {
			return nil
		}
		cur = Terminal{Port: next.Port, Slot: next.Slot.Opposite()}
	}
	return ConsistencyError{Op: "unconnect from leaf " + n.TerminalString(t), Detail: "connection chain does not end"}
}
