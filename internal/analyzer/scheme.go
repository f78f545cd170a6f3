package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Scheme is what a type environment binds a name to: either a generalized
// polymorphic type, or a Lazy placeholder wrapping a not-yet-inferred
// expression. Top-level and let bindings are Lazy; their bodies are
// re-inferred at every reference site.
type Scheme interface {
	schemeNode()
}

// ForAll is a polymorphic type with the given variables bound.
type ForAll struct {
	Vars []typesystem.TVar
	Body typesystem.Type
}

func (f *ForAll) schemeNode() {}

// Apply substitutes over the free variables of the scheme only; bound
// variables are shielded.
func (f *ForAll) Apply(s typesystem.Subst) *ForAll {
	shielded := make(typesystem.Subst, len(s))
	for k, v := range s {
		shielded[k] = v
	}
	for _, v := range f.Vars {
		delete(shielded, v.Name)
	}
	return &ForAll{Vars: f.Vars, Body: f.Body.Apply(shielded)}
}

// Lazy wraps an expression whose type has not been inferred yet. Each
// reference re-runs inference of the expression, minting fresh variables.
type Lazy struct {
	Expr ast.Expression
}

func (l *Lazy) schemeNode() {}

// Instantiate replaces every bound variable of the scheme with a fresh
// variable carrying the same constraint set.
func (ctx *InferenceContext) Instantiate(f *ForAll) typesystem.Type {
	if len(f.Vars) == 0 {
		return f.Body
	}
	s := make(typesystem.Subst, len(f.Vars))
	for _, v := range f.Vars {
		s[v.Name] = ctx.FreshVar(v.Classes)
	}
	return f.Body.Apply(s)
}

// Generalize quantifies the variables of t that are not already free in the
// ambient environment.
func Generalize(env *TypeEnv, t typesystem.Type) *ForAll {
	envFree := map[string]bool{}
	for _, v := range env.FreeTypeVariables() {
		envFree[v.Name] = true
	}
	var bound []typesystem.TVar
	for _, v := range t.FreeTypeVariables() {
		if !envFree[v.Name] {
			bound = append(bound, v)
		}
	}
	return &ForAll{Vars: bound, Body: t}
}
