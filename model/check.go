// Copyright 2020, Square, Inc.

package model

import (
	"fmt"
)

// arity bounds the number of in and out ports of a leaf kind. A max of -1
// means unbounded.
type arity struct {
	minIn, maxIn   int
	minOut, maxOut int
}

var arities = map[Kind]arity{
	KindComb:        {1, -1, 1, 1},
	KindDelay:       {1, 1, 1, 1},
	KindZipx:        {1, -1, 1, 1},
	KindUnzipx:      {1, 1, 1, -1},
	KindFanout:      {1, 1, 1, -1},
	KindParallelMap: {1, 1, 1, 1},
	KindZipWithN:    {1, -1, 1, 1},
}

// leafCheck is a kind-specific validation hook run after the arity check.
type leafCheck func(attrs Attributes) string

var leafChecks = map[Kind]leafCheck{
	KindComb: func(attrs Attributes) string {
		if attrs.Function == "" {
			return "no function"
		}
		return ""
	},
	KindParallelMap: func(attrs Attributes) string {
		if attrs.Function == "" {
			return "no function"
		}
		if attrs.NumProcesses < 1 {
			return fmt.Sprintf("must run at least one (1) process, has %d", attrs.NumProcesses)
		}
		return ""
	},
	KindZipWithN: func(attrs Attributes) string {
		if attrs.Function == "" {
			return "no function"
		}
		return ""
	},
}

func checkCount(what string, n, min, max int) string {
	switch {
	case min == max && n != min:
		return fmt.Sprintf("must have exactly %d %s port(s), has %d", min, what, n)
	case n < min:
		return fmt.Sprintf("must have at least %d %s port(s), has %d", min, what, n)
	case max >= 0 && n > max:
		return fmt.Sprintf("must have at most %d %s port(s), has %d", max, what, n)
	}
	return ""
}

// Check validates a single process: port arity and attributes for a leaf,
// and for a composite at least one in IOPort, one out IOPort and one
// contained process. The root network only needs contained processes.
func (n *Network) Check(p ProcessRef) error {
	e, ok := n.proc(p)
	if !ok {
		return LookupMiss{What: "process"}
	}
	fail := func(reason string) error {
		return ValidationError{Process: n.Path(p), Kind: e.kind, Reason: reason}
	}

	if e.attrs.Cost < 0 {
		return fail(fmt.Sprintf("negative cost %d", e.attrs.Cost))
	}

	if e.kind.IsComposite() {
		if p != n.root {
			if len(e.in) < 1 {
				return fail("must have at least one (1) in port")
			}
			if len(e.out) < 1 {
				return fail("must have at least one (1) out port")
			}
		}
		if len(e.children) < 1 {
			return fail("must contain at least one (1) process")
		}
		if p != n.root {
			for _, pt := range append(append([]PortRef{}, e.in...), e.out...) {
				if reason := n.checkIOPort(pt); reason != "" {
					return fail(reason)
				}
			}
		}
		return nil
	}

	a, ok := arities[e.kind]
	if !ok {
		return fail("unknown kind")
	}
	if reason := checkCount("in", len(e.in), a.minIn, a.maxIn); reason != "" {
		return fail(reason)
	}
	if reason := checkCount("out", len(e.out), a.minOut, a.maxOut); reason != "" {
		return fail(reason)
	}
	if hook, ok := leafChecks[e.kind]; ok {
		if reason := hook(e.attrs); reason != "" {
			return fail(reason)
		}
	}
	return nil
}

// checkIOPort returns why data cannot pass through IOPort pt: one slot leads
// to a leaf and the other does not. An unused IOPort is fine, and so is a
// network output with nothing outside.
func (n *Network) checkIOPort(pt PortRef) string {
	inside, outside := n.IsConnected(pt.Inside()), n.IsConnected(pt.Outside())
	if !inside && !outside {
		return ""
	}
	id := n.PortId(pt)
	if !n.IsConnectedToLeaf(pt.Inside()) {
		return fmt.Sprintf("port %s does not reach a leaf inside", id)
	}
	if !outside && indexOfPort(n.outputs, pt) >= 0 {
		return ""
	}
	if !n.IsConnectedToLeaf(pt.Outside()) {
		return fmt.Sprintf("port %s does not reach a leaf outside", id)
	}
	return ""
}

// CheckAll runs Check on every process in the network, depth first, and
// returns every error found.
func (n *Network) CheckAll() []error {
	var errs []error
	n.Walk(func(p ProcessRef) bool {
		if err := n.Check(p); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errs
}
