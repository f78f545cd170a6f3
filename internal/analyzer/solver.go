package analyzer

import (
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Solve drains the deferred constraint queue. It runs once, after the whole
// program has been traversed. Structural pairs decompose by appending
// component constraints to the queue rather than recursing, which keeps the
// solver iterative and preserves left-to-right error locality. Every
// substitution produced is applied immediately to the remaining queue and
// merged into the accumulated result. The first failure aborts the run.
func (ctx *InferenceContext) Solve() (typesystem.Subst, *diagnostics.DiagnosticError) {
	queue := ctx.constraints
	result := typesystem.Subst{}

	for i := 0; i < len(queue); i++ {
		c := queue[i]
		s, children, err := ctx.solveOne(c)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
		if len(s) == 0 {
			continue
		}
		for j := i + 1; j < len(queue); j++ {
			queue[j].Left = queue[j].Left.Apply(s)
			queue[j].Right = queue[j].Right.Apply(s)
		}
		result = result.Merge(s)
	}
	ctx.constraints = nil
	return result, nil
}

func (ctx *InferenceContext) solveOne(c Constraint) (typesystem.Subst, []Constraint, *diagnostics.DiagnosticError) {
	left, right := c.Left, c.Right

	if lv, ok := left.(typesystem.TVar); ok {
		if rv, ok := right.(typesystem.TVar); ok {
			return ctx.solveVarVar(c, lv, rv)
		}
		return ctx.solveVarConcrete(c, lv, right)
	}
	if rv, ok := right.(typesystem.TVar); ok {
		return ctx.solveVarConcrete(c, rv, left)
	}

	switch l := left.(type) {
	case typesystem.TCon:
		if r, ok := right.(typesystem.TCon); ok && r.Name == l.Name {
			return nil, nil, nil
		}

	case typesystem.TFunc:
		if r, ok := right.(typesystem.TFunc); ok {
			return nil, []Constraint{
				{Left: l.Param, Right: r.Param, Token: c.Token},
				{Left: l.Return, Right: r.Return, Token: c.Token},
			}, nil
		}

	case typesystem.TTuple:
		if r, ok := right.(typesystem.TTuple); ok && len(r.Elements) == len(l.Elements) {
			pairs := make([]Constraint, len(l.Elements))
			for i := range l.Elements {
				pairs[i] = Constraint{Left: l.Elements[i], Right: r.Elements[i], Token: c.Token}
			}
			return nil, pairs, nil
		}

	case typesystem.TList:
		if r, ok := right.(typesystem.TList); ok {
			return nil, []Constraint{{Left: l.Element, Right: r.Element, Token: c.Token}}, nil
		}

	case typesystem.TData:
		r, ok := right.(typesystem.TData)
		if ok && r.Name == l.Name && len(r.Args) == len(l.Args) && ctx.sig.HasType(l.Name) {
			pairs := make([]Constraint, len(l.Args))
			for i := range l.Args {
				pairs[i] = Constraint{Left: l.Args[i], Right: r.Args[i], Token: c.Token}
			}
			return nil, pairs, nil
		}

	case typesystem.TUnique:
		r, ok := right.(typesystem.TUnique)
		if !ok {
			break
		}
		if l.Valid != r.Valid {
			spent := l
			if !r.Valid {
				spent = r
			}
			return nil, nil, diagnostics.NewError(diagnostics.CodeLinearViolation, c.Token,
				"unique value of type %s has already been used", spent.Inner)
		}
		return nil, []Constraint{{Left: l.Inner, Right: r.Inner, Token: c.Token}}, nil
	}

	return nil, nil, diagnostics.NewError(diagnostics.CodeTypeMismatch, c.Token,
		"type mismatch: expected %s, got %s", left, right)
}

// solveVarVar unifies two variables by the union of their constraint sets.
// Both names map to the surviving variable carrying the merged set, so every
// remaining occurrence of either is canonicalized by the propagation loop;
// an occurrence left with a thinner set would let a later concrete binding
// slip past the class check.
func (ctx *InferenceContext) solveVarVar(c Constraint, a, b typesystem.TVar) (typesystem.Subst, []Constraint, *diagnostics.DiagnosticError) {
	if a.Name == b.Name {
		if a.Classes.Equal(b.Classes) {
			return nil, nil, nil
		}
		merged := typesystem.TVar{Name: a.Name, Classes: a.Classes.Union(b.Classes)}
		return typesystem.Subst{a.Name: merged}, nil, nil
	}
	merged := typesystem.TVar{Name: b.Name, Classes: a.Classes.Union(b.Classes)}
	s := typesystem.Subst{a.Name: merged}
	if !merged.Classes.Equal(b.Classes) {
		s[b.Name] = merged
	}
	return s, nil, nil
}

// solveVarConcrete binds a variable to a concrete type, gated on the type
// satisfying every class in the variable's constraint set.
func (ctx *InferenceContext) solveVarConcrete(c Constraint, v typesystem.TVar, concrete typesystem.Type) (typesystem.Subst, []Constraint, *diagnostics.DiagnosticError) {
	if occursIn(v.Name, concrete) {
		return nil, nil, diagnostics.NewError(diagnostics.CodeTypeMismatch, c.Token,
			"type mismatch: %s occurs in %s", v.Name, concrete)
	}
	if cls, ok := v.Classes.SatisfiedBy(concrete); !ok {
		return nil, nil, diagnostics.NewError(diagnostics.CodeClassMismatch, c.Token,
			"type %s does not satisfy constraint %s (required: %s)", concrete, cls, v.Classes)
	}
	return typesystem.Subst{v.Name: concrete}, nil, nil
}

func occursIn(name string, t typesystem.Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.Name == name {
			return true
		}
	}
	return false
}
