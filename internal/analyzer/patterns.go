package analyzer

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/prettyprinter"
	"github.com/quill-lang/quill/internal/typesystem"
)

// MatchPattern is the type-level mirror of the evaluator's value-level
// matcher. It checks a pattern against the scrutinee's type and returns the
// bindings the pattern introduces for its branch body.
func (ctx *InferenceContext) MatchPattern(pattern ast.Expression, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	if v, ok := scrutinee.(typesystem.TVar); ok {
		return ctx.matchAgainstVar(pattern, v)
	}

	switch p := pattern.(type) {
	case *ast.Wildcard:
		return nil, nil

	case *ast.IntegerLiteral:
		return nil, ctx.matchConstant(p, typesystem.IntType, scrutinee)

	case *ast.FloatLiteral:
		return nil, ctx.matchConstant(p, typesystem.FloatType, scrutinee)

	case *ast.CharLiteral:
		return nil, ctx.matchConstant(p, typesystem.CharType, scrutinee)

	case *ast.BooleanLiteral:
		return nil, ctx.matchConstant(p, typesystem.BoolType, scrutinee)

	case *ast.Identifier:
		if p.IsConstructor() {
			return ctx.matchNullaryConstructor(p, scrutinee)
		}
		// A variable pattern always succeeds and binds the scrutinee type.
		return []Binding{{Name: p.Value, Scheme: &ForAll{Body: scrutinee}}}, nil

	case *ast.CallExpression:
		return ctx.matchConstructorApplication(p, scrutinee)

	case *ast.InfixExpression:
		return ctx.matchCons(p, scrutinee)

	case *ast.TupleLiteral:
		return ctx.matchTuple(p, scrutinee)

	case *ast.ListLiteral:
		return ctx.matchList(p, scrutinee)
	}

	return nil, ctx.patternMismatch(pattern, scrutinee)
}

func (ctx *InferenceContext) matchConstant(pattern ast.Expression, want typesystem.TCon, scrutinee typesystem.Type) *diagnostics.DiagnosticError {
	if con, ok := scrutinee.(typesystem.TCon); ok && con.Name == want.Name {
		return nil
	}
	return ctx.patternMismatch(pattern, scrutinee)
}

func (ctx *InferenceContext) matchNullaryConstructor(id *ast.Identifier, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	ctor, ok := ctx.sig.Constructor(id.Value)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.CodeUndefinedConstructor, id.Token,
			"undefined constructor %s", id.Value)
	}
	if _, unary := ctor.Signature.(typesystem.TFunc); unary {
		return nil, diagnostics.NewError(diagnostics.CodeCtorPatternMisuse, id.Token,
			"constructor %s takes an argument and cannot be used as a bare pattern", id.Value)
	}
	data, ok := scrutinee.(typesystem.TData)
	if !ok || data.Name != ctor.Owner.Name {
		return nil, ctx.patternMismatch(id, scrutinee)
	}
	return nil, nil
}

// matchConstructorApplication recovers the constructor's declared argument
// type, instantiates it fresh, aligns the owner's declared parameters
// against the scrutinee's actual instantiations by direct positional
// substitution, and recurses into the sub-pattern.
func (ctx *InferenceContext) matchConstructorApplication(call *ast.CallExpression, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	id, ok := call.Fn.(*ast.Identifier)
	if !ok || !id.IsConstructor() {
		return nil, ctx.patternMismatch(call, scrutinee)
	}
	ctor, ok := ctx.sig.Constructor(id.Value)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.CodeUndefinedConstructor, id.Token,
			"undefined constructor %s", id.Value)
	}
	sig, owner := ctx.instantiateConstructor(ctor)
	fn, unary := sig.(typesystem.TFunc)
	if !unary {
		return nil, diagnostics.NewError(diagnostics.CodeCtorPatternMisuse, id.Token,
			"constructor %s takes no argument", id.Value)
	}

	data, ok := scrutinee.(typesystem.TData)
	if !ok || data.Name != owner.Name {
		return nil, ctx.patternMismatch(call, scrutinee)
	}
	// The registry guarantees arity; a mismatch here means the registry and
	// the inferred scrutinee went out of sync, which is unrecoverable.
	if len(data.Args) != len(owner.Args) {
		panic(fmt.Sprintf("constructor %s: parameter arity out of sync (%d vs %d)",
			ctor.Name, len(owner.Args), len(data.Args)))
	}

	s := make(typesystem.Subst, len(owner.Args))
	for i, arg := range owner.Args {
		if v, ok := arg.(typesystem.TVar); ok {
			s[v.Name] = data.Args[i]
		}
	}
	return ctx.MatchPattern(call.Arg, fn.Param.Apply(s))
}

// matchCons decomposes a list type: the head sub-pattern matches the
// element type, the tail sub-pattern the list re-wrapped.
func (ctx *InferenceContext) matchCons(infix *ast.InfixExpression, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	if infix.Operator != ":" {
		return nil, ctx.patternMismatch(infix, scrutinee)
	}
	list, ok := scrutinee.(typesystem.TList)
	if !ok {
		return nil, ctx.patternMismatch(infix, scrutinee)
	}
	headBindings, err := ctx.MatchPattern(infix.Left, list.Element)
	if err != nil {
		return nil, err
	}
	tailBindings, err := ctx.MatchPattern(infix.Right, typesystem.TList{Element: list.Element})
	if err != nil {
		return nil, err
	}
	return append(headBindings, tailBindings...), nil
}

func (ctx *InferenceContext) matchTuple(tup *ast.TupleLiteral, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	t, ok := scrutinee.(typesystem.TTuple)
	if !ok {
		return nil, ctx.patternMismatch(tup, scrutinee)
	}
	if len(t.Elements) != len(tup.Elements) {
		return nil, diagnostics.NewError(diagnostics.CodeLengthMismatch, tup.Token,
			"tuple pattern has %d elements but %s has %d", len(tup.Elements), t, len(t.Elements))
	}
	var bindings []Binding
	for i, el := range tup.Elements {
		bs, err := ctx.MatchPattern(el, t.Elements[i])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, bs...)
	}
	return bindings, nil
}

func (ctx *InferenceContext) matchList(list *ast.ListLiteral, scrutinee typesystem.Type) ([]Binding, *diagnostics.DiagnosticError) {
	t, ok := scrutinee.(typesystem.TList)
	if !ok {
		return nil, ctx.patternMismatch(list, scrutinee)
	}
	var bindings []Binding
	for _, el := range list.Elements {
		bs, err := ctx.MatchPattern(el, t.Element)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, bs...)
	}
	return bindings, nil
}

// matchAgainstVar handles a polymorphic scrutinee: the pattern is checked
// independently, the candidate type it implies must satisfy every class
// attached to the variable, and the variable is then constrained to the
// candidate so all branches agree.
func (ctx *InferenceContext) matchAgainstVar(pattern ast.Expression, v typesystem.TVar) ([]Binding, *diagnostics.DiagnosticError) {
	switch p := pattern.(type) {
	case *ast.Wildcard:
		return nil, nil

	case *ast.Identifier:
		if !p.IsConstructor() {
			return []Binding{{Name: p.Value, Scheme: &ForAll{Body: v}}}, nil
		}
		ctor, ok := ctx.sig.Constructor(p.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.CodeUndefinedConstructor, p.Token,
				"undefined constructor %s", p.Value)
		}
		if _, unary := ctor.Signature.(typesystem.TFunc); unary {
			return nil, diagnostics.NewError(diagnostics.CodeCtorPatternMisuse, p.Token,
				"constructor %s takes an argument and cannot be used as a bare pattern", p.Value)
		}
		_, owner := ctx.instantiateConstructor(ctor)
		return nil, ctx.narrowVar(pattern, v, owner)

	case *ast.IntegerLiteral:
		return nil, ctx.narrowVar(pattern, v, typesystem.IntType)

	case *ast.FloatLiteral:
		return nil, ctx.narrowVar(pattern, v, typesystem.FloatType)

	case *ast.CharLiteral:
		return nil, ctx.narrowVar(pattern, v, typesystem.CharType)

	case *ast.BooleanLiteral:
		return nil, ctx.narrowVar(pattern, v, typesystem.BoolType)

	case *ast.CallExpression:
		id, ok := p.Fn.(*ast.Identifier)
		if !ok || !id.IsConstructor() {
			return nil, ctx.patternMismatch(p, v)
		}
		ctor, ok := ctx.sig.Constructor(id.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.CodeUndefinedConstructor, id.Token,
				"undefined constructor %s", id.Value)
		}
		sig, owner := ctx.instantiateConstructor(ctor)
		fn, unary := sig.(typesystem.TFunc)
		if !unary {
			return nil, diagnostics.NewError(diagnostics.CodeCtorPatternMisuse, id.Token,
				"constructor %s takes no argument", id.Value)
		}
		if err := ctx.narrowVar(p, v, owner); err != nil {
			return nil, err
		}
		return ctx.MatchPattern(p.Arg, fn.Param)

	case *ast.InfixExpression:
		if p.Operator != ":" {
			return nil, ctx.patternMismatch(p, v)
		}
		elem := ctx.FreshVar(nil)
		if err := ctx.narrowVar(p, v, typesystem.TList{Element: elem}); err != nil {
			return nil, err
		}
		headBindings, err := ctx.MatchPattern(p.Left, elem)
		if err != nil {
			return nil, err
		}
		tailBindings, err := ctx.MatchPattern(p.Right, typesystem.TList{Element: elem})
		if err != nil {
			return nil, err
		}
		return append(headBindings, tailBindings...), nil

	case *ast.TupleLiteral:
		elems := make([]typesystem.Type, len(p.Elements))
		var bindings []Binding
		for i, el := range p.Elements {
			ev := ctx.FreshVar(nil)
			elems[i] = ev
			bs, err := ctx.MatchPattern(el, ev)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, bs...)
		}
		if err := ctx.narrowVar(p, v, typesystem.TTuple{Elements: elems}); err != nil {
			return nil, err
		}
		return bindings, nil

	case *ast.ListLiteral:
		elem := ctx.FreshVar(nil)
		var bindings []Binding
		for _, el := range p.Elements {
			bs, err := ctx.MatchPattern(el, elem)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, bs...)
		}
		if err := ctx.narrowVar(p, v, typesystem.TList{Element: elem}); err != nil {
			return nil, err
		}
		return bindings, nil
	}

	return nil, ctx.patternMismatch(pattern, v)
}

// narrowVar checks the candidate against the variable's constraint set and
// defers the equality so every branch sees the same narrowed scrutinee.
func (ctx *InferenceContext) narrowVar(pattern ast.Expression, v typesystem.TVar, candidate typesystem.Type) *diagnostics.DiagnosticError {
	if cls, ok := v.Classes.SatisfiedBy(candidate); !ok {
		return diagnostics.NewError(diagnostics.CodePatternMismatch, tokenFor(pattern),
			"pattern %s implies type %s, which does not satisfy %s",
			prettyprinter.Print(pattern), candidate, cls)
	}
	ctx.Defer(v, candidate, tokenFor(pattern))
	return nil
}

func (ctx *InferenceContext) patternMismatch(pattern ast.Expression, scrutinee typesystem.Type) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.CodePatternMismatch, tokenFor(pattern),
		"pattern %s does not match type %s", prettyprinter.Print(pattern), scrutinee)
}
