// Copyright 2020, Square, Inc.

package spec

import (
	"fmt"
	"strings"

	"github.com/square/pnsynth/model"
)

type ProcessCheck interface {
	CheckProcess(string, Process) error
}

/* ========================================================================== */
type HasKindProcessCheck struct{}

/* Processes must specify a kind. */
func (check HasKindProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Kind == nil {
		return MissingValueError{
			Network: networkName,
			Process: &p.Path,
			Field:   "kind",
		}
	}
	return nil
}

/* ========================================================================== */
type ValidKindProcessCheck struct{}

/* `kind: (composite | comb | delay | ...)` */
func (check ValidKindProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Kind == nil || model.Kind(*p.Kind).Valid() {
		return nil
	}
	kinds := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		kinds[i] = string(k)
	}
	return InvalidValueError{
		Network:  networkName,
		Process:  &p.Path,
		Field:    "kind",
		Values:   []string{*p.Kind},
		Expected: "(" + strings.Join(kinds, " | ") + ")",
	}
}

/* ========================================================================== */
type PortsNamedProcessCheck struct{}

/* Ports must be named, i.e. include a `name` field. */
func (check PortsNamedProcessCheck) CheckProcess(networkName string, p Process) error {
	for _, field := range []struct {
		name  string
		ports []*Port
	}{{"in", p.In}, {"out", p.Out}} {
		for _, port := range field.ports {
			if port == nil || port.Name == nil || *port.Name == "" {
				return MissingValueError{
					Network:     networkName,
					Process:     &p.Path,
					Field:       field.name + " -> name",
					Explanation: "required for ports",
				}
			}
		}
	}
	return nil
}

/* ========================================================================== */
type PortNamesUniqueProcessCheck struct{}

/* A port name is used once per process, across in and out ports. */
func (check PortNamesUniqueProcessCheck) CheckProcess(networkName string, p Process) error {
	seen := map[string]bool{}
	values := map[string]bool{}
	for _, port := range p.Ports() {
		if port == nil || port.Name == nil {
			continue
		}
		if seen[*port.Name] {
			values[*port.Name] = true
		}
		seen[*port.Name] = true
	}
	if len(values) > 0 {
		return DuplicateValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "in, out",
			Values:      stringSetToArray(values),
			Explanation: "port names must be unique within a process",
		}
	}
	return nil
}

/* ========================================================================== */
type CompositeHasProcessesProcessCheck struct{}

/* Composites must contain at least one process. */
func (check CompositeHasProcessesProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.IsComposite() && len(p.Processes) == 0 {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "processes",
			Explanation: "required for composites",
		}
	}
	return nil
}

/* ========================================================================== */
type CompositeHasPortsProcessCheck struct{}

/* Composites must have at least one in and one out port. */
func (check CompositeHasPortsProcessCheck) CheckProcess(networkName string, p Process) error {
	if !p.IsComposite() {
		return nil
	}
	if len(p.In) == 0 {
		return MissingValueError{networkName, &p.Path, "in", "composites need at least one (1) in port"}
	}
	if len(p.Out) == 0 {
		return MissingValueError{networkName, &p.Path, "out", "composites need at least one (1) out port"}
	}
	return nil
}

/* ========================================================================== */
type LeafHasNoChildrenProcessCheck struct{}

/* Only composites contain processes and connections. */
func (check LeafHasNoChildrenProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Kind == nil || p.IsComposite() {
		return nil
	}
	var fields []string
	if len(p.Processes) > 0 {
		fields = append(fields, "processes")
	}
	if len(p.Connections) > 0 {
		fields = append(fields, "connections")
	}
	if len(fields) > 0 {
		return InvalidValueError{
			Network:  networkName,
			Process:  &p.Path,
			Field:    "kind",
			Values:   []string{*p.Kind},
			Expected: fmt.Sprintf("composite, since %s are set", strings.Join(fields, " and ")),
		}
	}
	return nil
}

/* ========================================================================== */
type DelayHasInitialProcessCheck struct{}

/* Delays need the value they output in the first cycle. */
func (check DelayHasInitialProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.KindIs(model.KindDelay) && p.Initial == nil {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "initial",
			Explanation: "required for delays",
		}
	}
	return nil
}

/* ========================================================================== */
type ValidCountProcessCheck struct{}

/* `count` >= 1 for parallelmap. */
func (check ValidCountProcessCheck) CheckProcess(networkName string, p Process) error {
	if !p.KindIs(model.KindParallelMap) {
		return nil
	}
	if p.Count == nil {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "count",
			Explanation: "required for parallelmap",
		}
	}
	if *p.Count < 1 {
		return InvalidValueError{
			Network:  networkName,
			Process:  &p.Path,
			Field:    "count",
			Values:   []string{fmt.Sprintf("%d", *p.Count)},
			Expected: "integer >= 1",
		}
	}
	return nil
}

/* ========================================================================== */
type HasFunctionProcessCheck struct{}

/* comb, parallelmap and zipwithn apply a function. */
func (check HasFunctionProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Function != "" {
		return nil
	}
	if p.KindIs(model.KindComb) || p.KindIs(model.KindParallelMap) || p.KindIs(model.KindZipWithN) {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "function",
			Explanation: "required for " + *p.Kind,
		}
	}
	return nil
}

/* ========================================================================== */
type NonNegativeCostProcessCheck struct{}

func (check NonNegativeCostProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Cost < 0 {
		return InvalidValueError{
			Network:  networkName,
			Process:  &p.Path,
			Field:    "cost",
			Values:   []string{fmt.Sprintf("%d", p.Cost)},
			Expected: "integer >= 0",
		}
	}
	return nil
}

/* ========================================================================== */
type ValidConnectionsProcessCheck struct{}

/* Connections inside a composite join existing ports. */
func (check ValidConnectionsProcessCheck) CheckProcess(networkName string, p Process) error {
	if !p.IsComposite() {
		return nil
	}
	return checkConnections(compositeScope(networkName, &p))
}

/* ========================================================================== */
type PortsTypedProcessCheck struct{}

/* Leaf ports should say what type of value they carry. */
func (check PortsTypedProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.IsComposite() {
		return nil
	}
	var values []string
	for _, port := range p.Ports() {
		if port != nil && port.Name != nil && port.Type == nil {
			values = append(values, *port.Name)
		}
	}
	if len(values) > 0 {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "type",
			Explanation: "not set on port(s) " + strings.Join(values, ", "),
		}
	}
	return nil
}

/* ========================================================================== */
type KnownTypeProcessCheck struct{}

/* Port types should be base types of the target language. */
func (check KnownTypeProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.IsComposite() {
		return nil
	}
	var values []string
	for _, port := range p.Ports() {
		if port != nil && port.Type != nil && !model.BaseTypes[*port.Type] {
			values = append(values, *port.Type)
		}
	}
	if len(values) > 0 {
		return InvalidValueError{
			Network:  networkName,
			Process:  &p.Path,
			Field:    "type",
			Values:   values,
			Expected: "a base type (char, int, float, double, ...)",
		}
	}
	return nil
}

/* ========================================================================== */
type CostSetProcessCheck struct{}

/* A leaf without a cost is probably missing one. */
func (check CostSetProcessCheck) CheckProcess(networkName string, p Process) error {
	if p.Kind != nil && !p.IsComposite() && p.Cost == 0 {
		return MissingValueError{
			Network:     networkName,
			Process:     &p.Path,
			Field:       "cost",
			Explanation: "leaf cost is zero",
		}
	}
	return nil
}
