// Copyright 2020, Square, Inc.

package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/square/pnsynth/hierarchy"
)

var (
	ErrRootProcess  = errors.New("the root network cannot be deleted or moved")
	ErrNotComposite = errors.New("process is not a composite")
)

/* =========================================================================== */

var _ error = StructuralError{}

// StructuralError is returned when a requested connection, or the network as
// a whole, has a shape that is not allowed. A rejected connection leaves the
// network unchanged.
type StructuralError struct {
	From     string             // port or process
	To       string             // far end of a rejected connection, if any
	Relation hierarchy.Relation // relation between the owners, if To is set
	Cycle    []string           // processes on a cycle without delay, in order
	Reason   string
}

func (e StructuralError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Cycle, " -> "))
	}
	if e.To == "" {
		return fmt.Sprintf("%s: %s", e.From, e.Reason)
	}
	return fmt.Sprintf("cannot connect %s to %s (%s): %s", e.From, e.To, e.Relation, e.Reason)
}

/* =========================================================================== */

var _ error = ConsistencyError{}

// ConsistencyError reports a violated internal invariant, for example a chain
// of IOPorts that ends in a disconnected slot. It indicates a defect in the
// caller or in this package, not bad user input.
type ConsistencyError struct {
	Op     string
	Detail string
}

func (e ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

/* =========================================================================== */

var _ error = LookupMiss{}

// LookupMiss is returned where a caller requires a process or port to exist.
// Lookups that expect absence return (ref, false) instead.
type LookupMiss struct {
	What string // "process", "port", ...
	Id   string
}

func (e LookupMiss) Error() string {
	if e.Id == "" {
		return fmt.Sprintf("%s not found (stale reference)", e.What)
	}
	return fmt.Sprintf("%s %s not found", e.What, e.Id)
}

/* =========================================================================== */

var _ error = ValidationError{}

// ValidationError is a port arity or attribute violation found by Check.
type ValidationError struct {
	Process hierarchy.Path
	Kind    Kind
	Reason  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("process %s of kind %s: %s", e.Process, e.Kind, e.Reason)
}
