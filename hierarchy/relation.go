// Copyright 2020, Square, Inc.

package hierarchy

// Relation describes where a process sits relative to another one in the
// containment tree.
type Relation int

const (
	Sibling       Relation = iota // same directly containing composite
	FirstChild                    // directly contained in self
	FirstParent                   // directly contains self
	Child                         // contained in self, at any depth
	Parent                        // contains self, at any depth
	SiblingsChild                 // contained in one of self's siblings
	Other
)

var relationName = map[Relation]string{
	Sibling:       "sibling",
	FirstChild:    "first child",
	FirstParent:   "first parent",
	Child:         "child",
	Parent:        "parent",
	SiblingsChild: "sibling's child",
	Other:         "other",
}

func (r Relation) String() string {
	if s, ok := relationName[r]; ok {
		return s
	}
	return "unknown"
}

// FindRelation returns how other relates to self. The rules are evaluated in
// order and the first match wins, so a pair that is both Sibling and Child
// by the later rules is a Sibling.
func FindRelation(self, other Path) Relation {
	selfParent, selfHasParent := self.FirstParent()
	otherParent, otherHasParent := other.FirstParent()

	switch {
	case otherHasParent == selfHasParent && otherParent == selfParent:
		return Sibling
	case otherHasParent && otherParent == self.Id():
		return FirstChild
	case selfHasParent && other.Id() == selfParent:
		return FirstParent
	case other.Contains(self.Id()):
		return Child
	case selfHasParent && other.Contains(selfParent):
		return SiblingsChild
	case self.Contains(other.Id()):
		return Parent
	}
	return Other
}

// Inverse returns the relation of self seen from other for the relations
// that have one: FindRelation(a, b).Inverse() == FindRelation(b, a) for
// Sibling, FirstChild, FirstParent, Child and Parent in a tree of unique Ids.
func (r Relation) Inverse() Relation {
	switch r {
	case FirstChild:
		return FirstParent
	case FirstParent:
		return FirstChild
	case Child:
		return Parent
	case Parent:
		return Child
	}
	return r
}
