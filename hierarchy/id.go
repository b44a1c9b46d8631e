// Copyright 2020, Square, Inc.

// Package hierarchy provides process identifiers and their location in the
// containment tree of a process network. A Path lists the Ids from the root
// network down to the process itself; FindRelation compares two paths and is
// the only place where relative-hierarchy reasoning is done.
package hierarchy

// Id names a process or a port. Ids are compared by value.
type Id string

func (id Id) String() string {
	return string(id)
}
