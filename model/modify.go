// Copyright 2020, Square, Inc.

package model

import (
	"fmt"

	"github.com/square/pnsynth/hierarchy"
)

// passThrough kinds only move values between ports. With a single in and a
// single out port they copy their input unchanged.
var passThrough = map[Kind]bool{
	KindFanout: true,
	KindZipx:   true,
	KindUnzipx: true,
}

// RemoveRedundantLeafs deletes every fanout, zipx and unzipx leaf that has
// exactly one in port and one out port and joins its producer directly to
// its consumer. If the leaf's in port is a network input (or its out port a
// network output) and has no producer (consumer), the port across the leaf
// takes its place in the network inputs (outputs).
//
// A leaf is kept if keep returns true for it, if it feeds itself, or if both
// of its ends are inside slots of the containing composite, which cannot be
// joined to each other. The paths of the removed leaves are returned in Walk
// order.
func (n *Network) RemoveRedundantLeafs(keep func(ProcessRef) bool) ([]hierarchy.Path, error) {
	var removed []hierarchy.Path
	for _, p := range n.Processes() {
		e, ok := n.proc(p)
		if !ok || !passThrough[e.kind] || len(e.in) != 1 || len(e.out) != 1 {
			continue
		}
		if keep != nil && keep(p) {
			continue
		}
		inPt, outPt := e.in[0], e.out[0]
		src, hasSrc := n.links[inPt.Leaf()]
		dst, hasDst := n.links[outPt.Leaf()]
		path := n.Path(p)

		switch {
		case hasSrc && hasDst:
			if src.Port == outPt || (src.Slot == SlotInside && dst.Slot == SlotInside) {
				continue
			}
			n.Unconnect(inPt.Leaf())
			n.Unconnect(outPt.Leaf())
			if err := n.ConnectTerminal(src, dst.Port); err != nil {
				return removed, fmt.Errorf("removing %s: %w", path, err)
			}
		case hasDst:
			if !n.replaceBoundary(n.inputs, inPt, dst) {
				continue
			}
		case hasSrc:
			if !n.replaceBoundary(n.outputs, outPt, src) {
				continue
			}
		default:
			continue
		}

		if err := n.DeleteProcess(p); err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// replaceBoundary puts the leaf port at far in place of pt in ports, a
// network input or output list. If far's port is already listed, pt is left
// to be dropped when its process is deleted.
func (n *Network) replaceBoundary(ports []PortRef, pt PortRef, far Terminal) bool {
	i := indexOfPort(ports, pt)
	if i < 0 || far.Slot != SlotPort {
		return false
	}
	n.Unconnect(far)
	if indexOfPort(ports, far.Port) < 0 {
		ports[i] = far.Port
	}
	return true
}
