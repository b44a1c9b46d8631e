// Copyright 2020, Square, Inc.

// Package builder builds model networks from parsed descriptions.
package builder

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/square/pnsynth/hierarchy"
	"github.com/square/pnsynth/model"
	"github.com/square/pnsynth/spec"
)

// Builder builds networks from descriptions. Descriptions are expected to
// have passed the description checks; anything the model still rejects
// aborts the build of that network.
type Builder struct {
	allNetworks map[string]*spec.Network
}

func NewBuilder(specs spec.Specs) *Builder {
	return &Builder{
		allNetworks: specs.Networks,
	}
}

// BuildAll builds every network. A network that fails to build is reported
// in errs and left out of nets.
func (b *Builder) BuildAll() (nets map[string]*model.Network, errs map[string]error) {
	nets = map[string]*model.Network{}
	errs = map[string]error{}
	for name := range b.allNetworks {
		net, err := b.Build(name)
		if err != nil {
			errs[name] = err
			continue
		}
		nets[name] = net
	}
	return nets, errs
}

// Build builds the named network: processes and ports top-down, then the
// connections of every composite bottom-up, then the network inputs and
// outputs. Every process is checked last.
func (b *Builder) Build(name string) (*model.Network, error) {
	ns, ok := b.allNetworks[name]
	if !ok {
		return nil, model.LookupMiss{What: "network", Id: name}
	}
	logger := log.WithFields(log.Fields{"network": name})

	net := model.NewNetwork(hierarchy.Id(name))
	if err := addProcesses(net, net.Root(), ns.Processes, logger); err != nil {
		return nil, fmt.Errorf("network %s: %w", name, err)
	}
	if err := connectScope(net, net.Root(), ns.Processes, ns.Connections, logger); err != nil {
		return nil, fmt.Errorf("network %s: %w", name, err)
	}

	for _, ref := range ns.Inputs {
		pt, err := ResolvePort(net, ref)
		if err != nil {
			return nil, fmt.Errorf("network %s: input %s: %w", name, ref, err)
		}
		net.AddInput(pt)
	}
	for _, ref := range ns.Outputs {
		pt, err := ResolvePort(net, ref)
		if err != nil {
			return nil, fmt.Errorf("network %s: output %s: %w", name, ref, err)
		}
		net.AddOutput(pt)
	}

	if errs := net.CheckAll(); len(errs) > 0 {
		return nil, fmt.Errorf("network %s: %w", name, CheckError{Errors: errs})
	}
	logger.Debugf("built %d processes, %d connections", len(net.Processes()), net.NumConnections())
	return net, nil
}

func addProcesses(net *model.Network, parent model.ProcessRef, procs map[string]*spec.Process, logger *log.Entry) error {
	for _, name := range sortedNames(procs) {
		ps := procs[name]
		if ps.Kind == nil {
			return spec.MissingValueError{Network: string(net.Name()), Process: &ps.Path, Field: "kind"}
		}
		kind := model.Kind(*ps.Kind)
		p, ok := net.AddProcess(parent, hierarchy.Id(name), kind)
		if !ok {
			return fmt.Errorf("cannot add process %s of kind %s to %s", name, kind, net.Path(parent))
		}
		logger.Debugf("added %s %s", kind, net.Path(p))

		attrs := model.Attributes{Cost: ps.Cost, Function: ps.Function}
		if ps.Initial != nil {
			attrs.InitialValue = *ps.Initial
		}
		if ps.Count != nil {
			attrs.NumProcesses = *ps.Count
		}
		if err := net.SetAttributes(p, attrs); err != nil {
			return err
		}

		for _, port := range ps.In {
			if port == nil || port.Name == nil {
				return spec.MissingValueError{Network: string(net.Name()), Process: &ps.Path, Field: "in -> name"}
			}
			if _, ok := net.AddInPort(p, hierarchy.Id(*port.Name), port.DataType()); !ok {
				return duplicatePort(net, ps, *port.Name)
			}
		}
		for _, port := range ps.Out {
			if port == nil || port.Name == nil {
				return spec.MissingValueError{Network: string(net.Name()), Process: &ps.Path, Field: "out -> name"}
			}
			if _, ok := net.AddOutPort(p, hierarchy.Id(*port.Name), port.DataType()); !ok {
				return duplicatePort(net, ps, *port.Name)
			}
		}

		if kind.IsComposite() {
			if err := addProcesses(net, p, ps.Processes, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func duplicatePort(net *model.Network, ps *spec.Process, port string) error {
	return spec.DuplicateValueError{
		Network: string(net.Name()),
		Process: &ps.Path,
		Field:   "in, out",
		Values:  []string{port},
	}
}

// connectScope connects the composites below scope first, then scope's own
// connections.
func connectScope(net *model.Network, scope model.ProcessRef, procs map[string]*spec.Process, conns []spec.Connection, logger *log.Entry) error {
	for _, name := range sortedNames(procs) {
		ps := procs[name]
		if !ps.IsComposite() {
			continue
		}
		child, ok := net.Child(scope, hierarchy.Id(name))
		if !ok {
			return model.LookupMiss{What: "process", Id: ps.Path}
		}
		if err := connectScope(net, child, ps.Processes, ps.Connections, logger); err != nil {
			return err
		}
	}

	for _, c := range conns {
		from, err := resolve(net, scope, c.From)
		if err != nil {
			return fmt.Errorf("connection %s in %s: %w", c, net.Path(scope), err)
		}
		to, err := resolve(net, scope, c.To)
		if err != nil {
			return fmt.Errorf("connection %s in %s: %w", c, net.Path(scope), err)
		}
		if err := inScope(net, scope, from, to); err != nil {
			return fmt.Errorf("connection %s in %s: %w", c, net.Path(scope), err)
		}
		if err := net.Connect(from, to); err != nil {
			return fmt.Errorf("connection %s in %s: %w", c, net.Path(scope), err)
		}
		logger.Debugf("connected %s to %s", net.PortString(from), net.PortString(to))
	}
	return nil
}

// inScope requires both ends of a connection made in scope to belong to
// scope itself or to a process directly contained in it.
func inScope(net *model.Network, scope model.ProcessRef, from, to model.PortRef) error {
	for _, pt := range []model.PortRef{from, to} {
		owner := net.Owner(pt)
		if owner == scope {
			continue
		}
		if parent, ok := net.Parent(owner); ok && parent == scope {
			continue
		}
		return model.StructuralError{
			From:     net.PortString(from),
			To:       net.PortString(to),
			Relation: net.Relation(net.Owner(from), net.Owner(to)),
			Reason:   fmt.Sprintf("%s is not %s or directly contained in it", net.PortString(pt), net.Path(scope)),
		}
	}
	return nil
}

// ResolvePort returns the port named by ref, relative to the network root.
func ResolvePort(net *model.Network, ref string) (model.PortRef, error) {
	return resolve(net, net.Root(), ref)
}

func resolve(net *model.Network, scope model.ProcessRef, ref string) (model.PortRef, error) {
	path, port, err := spec.ParseRef(ref)
	if err != nil {
		return model.PortRef{}, err
	}

	p := scope
	if path[0] == spec.Self {
		if scope == net.Root() {
			return model.PortRef{}, fmt.Errorf("port ref %s: %s used at the network root", ref, spec.Self)
		}
	} else {
		for i, id := range path {
			child, ok := net.Child(p, hierarchy.Id(id))
			if !ok {
				return model.PortRef{}, model.LookupMiss{What: "process", Id: strings.Join(path[:i+1], "/")}
			}
			p = child
		}
	}

	pt, ok := net.Port(p, hierarchy.Id(port))
	if !ok {
		return model.PortRef{}, model.LookupMiss{What: "port", Id: ref}
	}
	return pt, nil
}

// CheckError holds every problem model checks found on a built network.
type CheckError struct {
	Errors []error
}

func (e CheckError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d check(s) failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}
