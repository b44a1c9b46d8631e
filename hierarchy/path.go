// Copyright 2020, Square, Inc.

package hierarchy

import (
	"strings"
)

// Separator joins the Ids of a Path in its string form: "top/filter/gain".
const Separator = "/"

// Path is the root-to-self sequence of Ids locating a process in the
// containment tree. The last Id is always the process's own Id. A Path is
// never modified in place; every method that changes it returns a copy.
type Path []Id

// NewPath returns a Path made of ids, root first.
func NewPath(ids ...Id) Path {
	p := make(Path, len(ids))
	copy(p, ids)
	return p
}

// ParsePath parses the string form of a Path. Empty elements are dropped.
func ParsePath(s string) Path {
	var p Path
	for _, e := range strings.Split(s, Separator) {
		if e == "" {
			continue
		}
		p = append(p, Id(e))
	}
	return p
}

// Id returns the last element of the path, or "" for an empty path.
func (p Path) Id() Id {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// FirstParent returns the second-to-last element of the path, i.e. the Id of
// the composite directly containing the process. The root has no parent.
func (p Path) FirstParent() (Id, bool) {
	if len(p) < 2 {
		return "", false
	}
	return p[len(p)-2], true
}

// Parent returns the path of the directly containing composite.
func (p Path) Parent() Path {
	if len(p) < 2 {
		return nil
	}
	return NewPath(p[:len(p)-1]...)
}

// Child returns a new path for a process with the given id created inside
// the process located at p.
func (p Path) Child(id Id) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, id)
}

// Reparent replaces every element before the own Id with prefix and
// re-appends the own Id.
func (p Path) Reparent(prefix Path) Path {
	return prefix.Child(p.Id())
}

// Contains returns true if id occurs anywhere in the path, own Id included.
func (p Path) Contains(id Id) bool {
	for _, e := range p {
		if e == id {
			return true
		}
	}
	return false
}

// HasPrefix returns true if prefix is p or one of p's ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Depth is the number of composites above the process; the root has depth 0.
func (p Path) Depth() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

func (p Path) Equal(o Path) bool {
	return len(p) == len(o) && p.HasPrefix(o)
}

func (p Path) String() string {
	s := make([]string, len(p))
	for i, id := range p {
		s[i] = string(id)
	}
	return strings.Join(s, Separator)
}
