// Copyright 2020, Square, Inc.

package spec

import (
	"fmt"
	"sort"

	"github.com/square/pnsynth/model"
)

type NetworkCheck interface {
	CheckNetwork(Network) error
}

/* ========================================================================== */
type HasProcessesNetworkCheck struct{}

/* Networks must contain at least one process. */
func (check HasProcessesNetworkCheck) CheckNetwork(network Network) error {
	if len(network.Processes) == 0 {
		return MissingValueError{
			Network:     network.Name,
			Field:       "processes",
			Explanation: "at least one (1) process required",
		}
	}
	return nil
}

/* ========================================================================== */
type ValidInputsNetworkCheck struct{}

/* `inputs` name in-ports of leaf processes. */
func (check ValidInputsNetworkCheck) CheckNetwork(network Network) error {
	root := rootScope(network)
	var values []string
	for _, ref := range network.Inputs {
		po, err := root.resolve(ref)
		if err != nil || po.owner.IsComposite() || po.dir != model.In {
			values = append(values, ref)
		}
	}
	if len(values) > 0 {
		return InvalidValueError{
			Network:  network.Name,
			Field:    "inputs",
			Values:   values,
			Expected: "in port(s) of leaf processes, as process.port",
		}
	}
	return nil
}

/* ========================================================================== */
type ValidOutputsNetworkCheck struct{}

/* `outputs` name out-ports of processes. */
func (check ValidOutputsNetworkCheck) CheckNetwork(network Network) error {
	root := rootScope(network)
	var values []string
	for _, ref := range network.Outputs {
		po, err := root.resolve(ref)
		if err != nil || po.dir != model.Out {
			values = append(values, ref)
		}
	}
	if len(values) > 0 {
		return InvalidValueError{
			Network:  network.Name,
			Field:    "outputs",
			Values:   values,
			Expected: "out port(s), as process.port",
		}
	}
	return nil
}

/* ========================================================================== */
type NoDuplicateIOsNetworkCheck struct{}

/* A port is declared as a network input or output at most once. */
func (check NoDuplicateIOsNetworkCheck) CheckNetwork(network Network) error {
	for _, field := range []struct {
		name string
		refs []string
	}{{"inputs", network.Inputs}, {"outputs", network.Outputs}} {
		seen := map[string]bool{}
		values := map[string]bool{}
		for _, ref := range field.refs {
			if seen[ref] {
				values[ref] = true
			}
			seen[ref] = true
		}
		if len(values) > 0 {
			return DuplicateValueError{
				Network: network.Name,
				Field:   field.name,
				Values:  stringSetToArray(values),
			}
		}
	}
	return nil
}

/* ========================================================================== */
type ValidConnectionsNetworkCheck struct{}

/* Root-level connections join existing ports. */
func (check ValidConnectionsNetworkCheck) CheckNetwork(network Network) error {
	return checkConnections(rootScope(network))
}

// checkConnections returns an InvalidValueError listing every connection in s
// with an endpoint that does not resolve, or that joins a port to itself.
func checkConnections(s scope) error {
	var values, reasons []string
	for _, c := range s.conns {
		from, err := s.resolve(c.From)
		if err != nil {
			values = append(values, c.String())
			reasons = append(reasons, err.Error())
			continue
		}
		to, err := s.resolve(c.To)
		if err != nil {
			values = append(values, c.String())
			reasons = append(reasons, err.Error())
			continue
		}
		if from.port == to.port {
			values = append(values, c.String())
			reasons = append(reasons, "port connected to itself")
		}
	}
	if len(values) > 0 {
		return InvalidValueError{
			Network:  s.network,
			Process:  s.process,
			Field:    "connections",
			Values:   values,
			Expected: fmt.Sprintf("existing ports as process.port (%v)", reasons),
		}
	}
	return nil
}

/* ========================================================================== */
type PortsConnectedOnceNetworkCheck struct{}

/* A leaf port has a single connection; a composite port one on each side. */
func (check PortsConnectedOnceNetworkCheck) CheckNetwork(network Network) error {
	used := portUsage(network)
	values := map[string]bool{}
	forEachPort(network, func(p *Process, port *Port) {
		max := 1
		if p.IsComposite() {
			max = 2
		}
		if used[port] > max {
			values[p.Path+"."+*port.Name] = true
		}
	})
	if len(values) > 0 {
		return DuplicateValueError{
			Network:     network.Name,
			Field:       "connections",
			Values:      stringSetToArray(values),
			Explanation: "a leaf port takes one connection, a composite port one inside and one outside",
		}
	}
	return nil
}

/* ========================================================================== */
type CompositePortsBothSidesNetworkCheck struct{}

/* A composite port passes data through, so it needs both of its sides or neither. */
func (check CompositePortsBothSidesNetworkCheck) CheckNetwork(network Network) error {
	inside, outside := portSides(network)
	var values []string
	forEachPort(network, func(p *Process, port *Port) {
		if p.IsComposite() && inside[port] != outside[port] {
			values = append(values, p.Path+"."+*port.Name)
		}
	})
	if len(values) > 0 {
		sort.Strings(values)
		return InvalidValueError{
			Network:  network.Name,
			Field:    "connections",
			Values:   values,
			Expected: "composite ports connected both inside (self) and outside, or not at all",
		}
	}
	return nil
}

/* ========================================================================== */
type AllPortsConnectedNetworkCheck struct{}

/* Unconnected ports are usually a mistake in the description. */
func (check AllPortsConnectedNetworkCheck) CheckNetwork(network Network) error {
	used := portUsage(network)
	var values []string
	forEachPort(network, func(p *Process, port *Port) {
		if used[port] == 0 {
			values = append(values, p.Path+"."+*port.Name)
		}
	})
	if len(values) > 0 {
		sort.Strings(values)
		return InvalidValueError{
			Network:  network.Name,
			Field:    "connections",
			Values:   values,
			Expected: "every port to be connected, or declared as a network input or output",
		}
	}
	return nil
}

// forEachPort calls fn for every named port of every process, in name order.
func forEachPort(network Network, fn func(*Process, *Port)) {
	var walk func(procs map[string]*Process)
	walk = func(procs map[string]*Process) {
		for _, name := range sortedNames(procs) {
			p := procs[name]
			for _, port := range p.Ports() {
				if port != nil && port.Name != nil {
					fn(p, port)
				}
			}
			walk(p.Processes)
		}
	}
	walk(network.Processes)
}
