package typesystem

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/internal/config"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
	Equal(Type) bool
}

// TCon represents a primitive type constant (Int, Float, Bool, Char, File, System).
type TCon struct {
	Name string
}

var (
	IntType    = TCon{Name: config.IntTypeName}
	FloatType  = TCon{Name: config.FloatTypeName}
	BoolType   = TCon{Name: config.BoolTypeName}
	CharType   = TCon{Name: config.CharTypeName}
	FileType   = TCon{Name: config.FileTypeName}
	SystemType = TCon{Name: config.SystemTypeName}
)

// IsPrimitiveName reports whether name denotes a built-in primitive type.
func IsPrimitiveName(name string) bool {
	switch name {
	case config.IntTypeName, config.FloatTypeName, config.BoolTypeName,
		config.CharTypeName, config.FileTypeName, config.SystemTypeName:
		return true
	}
	return false
}

func (t TCon) String() string          { return t.Name }
func (t TCon) Apply(s Subst) Type      { return t }
func (t TCon) FreeTypeVariables() []TVar { return nil }

func (t TCon) Equal(o Type) bool {
	oc, ok := o.(TCon)
	return ok && oc.Name == t.Name
}

// TVar represents a polymorphic type variable together with the typeclass
// constraints it must satisfy.
type TVar struct {
	Name    string
	Classes ClassSet
}

func (t TVar) String() string {
	if len(t.Classes) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s: %s", t.Name, t.Classes)
}

func (t TVar) Apply(s Subst) Type {
	if replacement, ok := s[t.Name]; ok {
		// A same-name replacement cannot recurse; it stands for the same
		// variable carrying a merged constraint set, so take it as-is.
		if tv, ok := replacement.(TVar); ok && tv.Name == t.Name {
			return tv
		}
		return replacement.Apply(s)
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// Equal on variables compares the name and the constraint set by class name
// only; the membership predicates behind the classes never participate.
func (t TVar) Equal(o Type) bool {
	ov, ok := o.(TVar)
	return ok && ov.Name == t.Name && ov.Classes.Equal(t.Classes)
}

// TFunc represents a function type with a single (curried) parameter.
type TFunc struct {
	Param  Type
	Return Type
}

func (t TFunc) String() string {
	return fmt.Sprintf("(%s -> %s)", t.Param, t.Return)
}

func (t TFunc) Apply(s Subst) Type {
	return TFunc{Param: t.Param.Apply(s), Return: t.Return.Apply(s)}
}

func (t TFunc) FreeTypeVariables() []TVar {
	return uniqueTVars(append(t.Param.FreeTypeVariables(), t.Return.FreeTypeVariables()...))
}

func (t TFunc) Equal(o Type) bool {
	of, ok := o.(TFunc)
	return ok && t.Param.Equal(of.Param) && t.Return.Equal(of.Return)
}

// TTuple represents a tuple type (e.g. (Int, Bool)).
// The source grammar only produces arity >= 2, but the model tolerates any length.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t TTuple) Apply(s Subst) Type {
	elems := make([]Type, len(t.Elements))
	for i, el := range t.Elements {
		elems[i] = el.Apply(s)
	}
	return TTuple{Elements: elems}
}

func (t TTuple) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, el := range t.Elements {
		vars = append(vars, el.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

func (t TTuple) Equal(o Type) bool {
	ot, ok := o.(TTuple)
	if !ok || len(ot.Elements) != len(t.Elements) {
		return false
	}
	for i, el := range t.Elements {
		if !el.Equal(ot.Elements[i]) {
			return false
		}
	}
	return true
}

// TList represents a homogeneous list type.
type TList struct {
	Element Type
}

func (t TList) String() string { return fmt.Sprintf("[%s]", t.Element) }

func (t TList) Apply(s Subst) Type { return TList{Element: t.Element.Apply(s)} }

func (t TList) FreeTypeVariables() []TVar { return t.Element.FreeTypeVariables() }

func (t TList) Equal(o Type) bool {
	ol, ok := o.(TList)
	return ok && t.Element.Equal(ol.Element)
}

// TData represents a user-declared algebraic type, instantiated with zero or
// more type arguments.
type TData struct {
	Name string
	Args []Type
}

func (t TData) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s %s)", t.Name, strings.Join(parts, " "))
}

func (t TData) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Apply(s)
	}
	return TData{Name: t.Name, Args: args}
}

func (t TData) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

func (t TData) Equal(o Type) bool {
	od, ok := o.(TData)
	if !ok || od.Name != t.Name || len(od.Args) != len(t.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.Equal(od.Args[i]) {
			return false
		}
	}
	return true
}

// TUnique wraps a type with single-use (linear) semantics. Valid is true
// while the value has not been consumed and false once it has been spent.
type TUnique struct {
	Inner Type
	Valid bool
}

func (t TUnique) String() string {
	if !t.Valid {
		return fmt.Sprintf("%s! (spent)", t.Inner)
	}
	return fmt.Sprintf("%s!", t.Inner)
}

// Apply preserves the validity flag unchanged.
func (t TUnique) Apply(s Subst) Type {
	return TUnique{Inner: t.Inner.Apply(s), Valid: t.Valid}
}

func (t TUnique) FreeTypeVariables() []TVar { return t.Inner.FreeTypeVariables() }

// Equal includes the validity flag: a spent resource is not equal to a
// live one even when the wrapped types match.
func (t TUnique) Equal(o Type) bool {
	ou, ok := o.(TUnique)
	return ok && ou.Valid == t.Valid && t.Inner.Equal(ou.Inner)
}

// Subst is a mapping from type variable names to Types.
type Subst map[string]Type

// Merge applies other into the range of s and then unions the two maps.
// The engine always substitutes-then-unions; it never composes
// substitutions through chained lookup.
func (s Subst) Merge(other Subst) Subst {
	merged := make(Subst, len(s)+len(other))
	for k, v := range s {
		merged[k] = v.Apply(other)
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

func uniqueTVars(vars []TVar) []TVar {
	var unique []TVar
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}
