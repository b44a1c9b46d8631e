// Copyright 2017-2020, Square, Inc.

// Package spec reads YAML process network descriptions and runs static
// checks on them before a network is built.
package spec

import (
	"fmt"
	"strings"

	"github.com/square/pnsynth/model"
)

// Specs holds every network read from one or more description files.
type Specs struct {
	Networks map[string]*Network `yaml:"networks"`
}

// Network is a top-level process network description.
type Network struct {
	Name        string              `yaml:"-"`           // key in Specs.Networks
	Inputs      []string            `yaml:"inputs"`      // in-ports fed from outside, as port refs
	Outputs     []string            `yaml:"outputs"`     // out-ports read from outside, as port refs
	Processes   map[string]*Process `yaml:"processes"`   // processes at the root level
	Connections []Connection        `yaml:"connections"` // connections at the root level
}

// Process describes a leaf or a composite. Composites have nested processes
// and connections; leaves have a function, initial value or count depending
// on their kind.
type Process struct {
	Name        string              `yaml:"-"`        // key in the parent's processes
	Path        string              `yaml:"-"`        // location below the network root, e.g. "k/l"
	Kind        *string             `yaml:"kind"`     // model.Kind
	Function    string              `yaml:"function"` // comb, parallelmap, zipwithn
	Initial     *string             `yaml:"initial"`  // delay initial value
	Count       *int                `yaml:"count"`    // parallelmap process count
	Cost        int                 `yaml:"cost"`
	In          []*Port             `yaml:"in"`
	Out         []*Port             `yaml:"out"`
	Processes   map[string]*Process `yaml:"processes"`   // composite only
	Connections []Connection        `yaml:"connections"` // composite only
}

// Port describes one in or out port. Type, Size and Pointer are ignored on
// composite ports.
type Port struct {
	Name    *string `yaml:"name"`
	Type    *string `yaml:"type"`
	Size    int     `yaml:"size"`
	Pointer bool    `yaml:"pointer"`
}

// Connection joins two port refs. Direction is not significant to the model
// but from is conventionally the producer.
type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func (c Connection) String() string {
	return c.From + " -> " + c.To
}

// Self is the process name that refers to the enclosing composite in a
// port ref.
const Self = "self"

// ParseRef splits a port ref of the form "proc.port", "self.port" or
// "k/l.port" into the process path and the port name.
func ParseRef(ref string) ([]string, string, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return nil, "", fmt.Errorf("port ref %q is not of the form process.port", ref)
	}
	path := strings.Split(ref[:i], "/")
	for _, p := range path {
		if p == "" {
			return nil, "", fmt.Errorf("port ref %q has an empty process name", ref)
		}
	}
	if len(path) > 1 && path[0] == Self {
		return nil, "", fmt.Errorf("port ref %q: %s cannot be followed by a path", ref, Self)
	}
	return path, ref[i+1:], nil
}

func (p *Process) KindIs(k model.Kind) bool {
	return p.Kind != nil && model.Kind(*p.Kind) == k
}

func (p *Process) IsComposite() bool {
	return p.KindIs(model.KindComposite)
}

// Ports returns the in then out ports.
func (p *Process) Ports() []*Port {
	return append(append([]*Port{}, p.In...), p.Out...)
}

// DataType returns the model data type of a leaf port.
func (p *Port) DataType() model.DataType {
	dt := model.DataType{ArraySize: p.Size, Pointer: p.Pointer}
	if p.Type != nil {
		dt.Type = *p.Type
	}
	return dt
}
