package typesystem

import (
	"sort"
	"strings"
)

// TypeClass is one of the five built-in constraint classes. Classes are
// identified, compared and ordered solely by name; membership is decided by
// the Accepts dispatch below.
type TypeClass string

const (
	ClassNum  TypeClass = "Num"
	ClassEq   TypeClass = "Eq"
	ClassOrd  TypeClass = "Ord"
	ClassShow TypeClass = "Show"
	ClassBi   TypeClass = "Bi"
)

// Accepts reports whether t is a member of the class. Concrete types are
// decided structurally; a type variable is decided by whether the class
// appears in its attached constraint set.
func (c TypeClass) Accepts(t Type) bool {
	if tv, ok := t.(TVar); ok {
		return tv.Classes.Has(c)
	}

	switch c {
	case ClassNum:
		return acceptsNum(t)
	case ClassEq:
		return acceptsEq(t)
	case ClassOrd:
		return acceptsOrd(t)
	case ClassShow:
		return acceptsShow(t)
	case ClassBi:
		return acceptsBi(t)
	}
	return false
}

func acceptsNum(t Type) bool {
	switch t := t.(type) {
	case TCon:
		return t.Name == IntType.Name || t.Name == FloatType.Name || t.Name == CharType.Name
	case TUnique:
		return acceptsNum(t.Inner)
	}
	return false
}

func acceptsEq(t Type) bool {
	switch t := t.(type) {
	case TCon:
		return true
	case TTuple:
		for _, el := range t.Elements {
			if !ClassEq.Accepts(el) {
				return false
			}
		}
		return true
	case TList:
		return ClassEq.Accepts(t.Element)
	case TData:
		for _, a := range t.Args {
			if !ClassEq.Accepts(a) {
				return false
			}
		}
		return true
	case TUnique:
		return ClassEq.Accepts(t.Inner)
	}
	return false
}

func acceptsOrd(t Type) bool {
	switch t := t.(type) {
	case TCon:
		return t.Name == IntType.Name || t.Name == FloatType.Name || t.Name == CharType.Name
	case TList:
		return ClassOrd.Accepts(t.Element)
	case TUnique:
		return ClassOrd.Accepts(t.Inner)
	}
	return false
}

func acceptsShow(t Type) bool {
	switch t := t.(type) {
	case TCon:
		return true
	case TTuple:
		for _, el := range t.Elements {
			if !ClassShow.Accepts(el) {
				return false
			}
		}
		return true
	case TList:
		// Historical quirk: the list case delegates to Eq, not Show.
		// Preserved as-is; see the classes test.
		return ClassEq.Accepts(t.Element)
	case TData:
		for _, a := range t.Args {
			if !ClassShow.Accepts(a) {
				return false
			}
		}
		return true
	case TUnique:
		return ClassShow.Accepts(t.Inner)
	}
	return false
}

func acceptsBi(t Type) bool {
	switch t := t.(type) {
	case TCon:
		return t.Name == IntType.Name || t.Name == CharType.Name
	case TUnique:
		return acceptsBi(t.Inner)
	}
	return false
}

// ClassSet is an ordered set of typeclass constraints attached to a type
// variable. The zero value is the empty set.
type ClassSet []TypeClass

func NewClassSet(classes ...TypeClass) ClassSet {
	var set ClassSet
	for _, c := range classes {
		set = set.Add(c)
	}
	return set
}

func (s ClassSet) Has(c TypeClass) bool {
	for _, have := range s {
		if have == c {
			return true
		}
	}
	return false
}

// Add returns a set containing c; the receiver is not modified.
func (s ClassSet) Add(c TypeClass) ClassSet {
	if s.Has(c) {
		return s
	}
	out := make(ClassSet, len(s)+1)
	copy(out, s)
	out[len(s)] = c
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns the name-wise union of both sets.
func (s ClassSet) Union(other ClassSet) ClassSet {
	out := s
	for _, c := range other {
		out = out.Add(c)
	}
	return out
}

// Equal compares sets by class name only.
func (s ClassSet) Equal(other ClassSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if other[i] != c {
			return false
		}
	}
	return true
}

// SatisfiedBy reports whether t is a member of every class in the set.
// On failure it also returns the first class t does not satisfy.
func (s ClassSet) SatisfiedBy(t Type) (TypeClass, bool) {
	for _, c := range s {
		if !c.Accepts(t) {
			return c, false
		}
	}
	return "", true
}

func (s ClassSet) String() string {
	if len(s) == 0 {
		return "{}"
	}
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
