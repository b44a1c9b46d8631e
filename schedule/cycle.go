// Copyright 2020, Square, Inc.

package schedule

import (
	"github.com/square/pnsynth/model"
)

const (
	unvisited = iota
	onStack
	done
)

// findCycle runs a depth-first search over producers, starting at starts. A
// delay's in-port is not followed; its producer becomes another root instead.
// The first cycle found is returned as a StructuralError listing its
// processes in data-flow order.
func findCycle(net *model.Network, deps dependencies, starts []model.ProcessRef) error {
	state := map[model.ProcessRef]int{}
	roots := append([]model.ProcessRef(nil), starts...)
	var stack []model.ProcessRef

	var visit func(p model.ProcessRef) error
	visit = func(p model.ProcessRef) error {
		switch state[p] {
		case done:
			return nil
		case onStack:
			return cycleError(net, stack, p)
		}
		state[p] = onStack
		stack = append(stack, p)

		ins := net.InPorts(p)
		if net.Kind(p).IsDelay() {
			if len(ins) > 0 {
				prod, ok, err := deps.producer(ins[0])
				if err != nil {
					return err
				}
				if ok {
					roots = append(roots, prod)
				}
			}
		} else {
			for _, pt := range ins {
				prod, ok, err := deps.producer(pt)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if err := visit(prod); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[p] = done
		return nil
	}

	for i := 0; i < len(roots); i++ {
		if err := visit(roots[i]); err != nil {
			return err
		}
	}
	return nil
}

// cycleError reports the part of stack from p to its top. The stack holds
// consumers before their producers, so it is reversed.
func cycleError(net *model.Network, stack []model.ProcessRef, p model.ProcessRef) error {
	i := len(stack) - 1
	for i >= 0 && stack[i] != p {
		i--
	}
	loop := stack[i:]
	names := make([]string, 0, len(loop)+1)
	for j := len(loop) - 1; j >= 0; j-- {
		names = append(names, net.Path(loop[j]).String())
	}
	names = append(names, names[0])
	return model.StructuralError{
		From:   names[0],
		Cycle:  names,
		Reason: "cycle without a delay",
	}
}
