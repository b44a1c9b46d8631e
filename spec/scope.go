// Copyright 2020, Square, Inc.

package spec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/square/pnsynth/model"
)

// scope is one level of a network: the root, or the inside of a composite.
// Port refs in connections are resolved relative to a scope.
type scope struct {
	network string
	process *string  // path of the composite, nil at the root
	self    *Process // the composite, nil at the root
	procs   map[string]*Process
	conns   []Connection
}

func rootScope(n Network) scope {
	return scope{network: n.Name, procs: n.Processes, conns: n.Connections}
}

func compositeScope(network string, p *Process) scope {
	return scope{network: network, process: &p.Path, self: p, procs: p.Processes, conns: p.Connections}
}

// walkScopes calls fn for the root scope and then every composite scope,
// in name order.
func walkScopes(n Network, fn func(scope)) {
	fn(rootScope(n))
	var walk func(procs map[string]*Process)
	walk = func(procs map[string]*Process) {
		for _, name := range sortedNames(procs) {
			p := procs[name]
			if p.IsComposite() {
				fn(compositeScope(n.Name, p))
			}
			walk(p.Processes)
		}
	}
	walk(n.Processes)
}

func sortedNames(procs map[string]*Process) []string {
	names := make([]string, 0, len(procs))
	for name := range procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// portOwner is a port found by resolving a ref.
type portOwner struct {
	port  *Port
	owner *Process
	dir   model.Direction
}

func (s scope) resolve(ref string) (portOwner, error) {
	path, portName, err := ParseRef(ref)
	if err != nil {
		return portOwner{}, err
	}

	var owner *Process
	if path[0] == Self {
		if s.self == nil {
			return portOwner{}, fmt.Errorf("%s used at the network root", Self)
		}
		owner = s.self
	} else {
		procs := s.procs
		for i, name := range path {
			p, ok := procs[name]
			if !ok {
				return portOwner{}, fmt.Errorf("no process %s", strings.Join(path[:i+1], "/"))
			}
			owner = p
			procs = p.Processes
		}
	}

	if port := findPort(owner.In, portName); port != nil {
		return portOwner{port: port, owner: owner, dir: model.In}, nil
	}
	if port := findPort(owner.Out, portName); port != nil {
		return portOwner{port: port, owner: owner, dir: model.Out}, nil
	}
	return portOwner{}, fmt.Errorf("process %s has no port %s", owner.Path, portName)
}

func findPort(ports []*Port, name string) *Port {
	for _, p := range ports {
		if p != nil && p.Name != nil && *p.Name == name {
			return p
		}
	}
	return nil
}

// portUsage counts how often every port is used by a connection, network
// input or network output. Unresolvable refs are skipped; other checks
// report them.
func portUsage(n Network) map[*Port]int {
	used := map[*Port]int{}
	walkScopes(n, func(s scope) {
		for _, c := range s.conns {
			for _, ref := range []string{c.From, c.To} {
				if po, err := s.resolve(ref); err == nil {
					used[po.port]++
				}
			}
		}
	})
	root := rootScope(n)
	for _, ref := range append(append([]string{}, n.Inputs...), n.Outputs...) {
		if po, err := root.resolve(ref); err == nil {
			used[po.port]++
		}
	}
	return used
}

// portSides records which side of its owner every used port is connected on:
// inside means a self ref in the owner's own connections, outside is every
// other connection plus network inputs and outputs.
func portSides(n Network) (inside, outside map[*Port]bool) {
	inside, outside = map[*Port]bool{}, map[*Port]bool{}
	walkScopes(n, func(s scope) {
		for _, c := range s.conns {
			for _, ref := range []string{c.From, c.To} {
				po, err := s.resolve(ref)
				if err != nil {
					continue
				}
				if s.self != nil && po.owner == s.self {
					inside[po.port] = true
				} else {
					outside[po.port] = true
				}
			}
		}
	})
	root := rootScope(n)
	for _, ref := range append(append([]string{}, n.Inputs...), n.Outputs...) {
		if po, err := root.resolve(ref); err == nil {
			outside[po.port] = true
		}
	}
	return inside, outside
}
