package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// InferExpression walks an expression, returning its type together with the
// bindings it produced. Bindings are not written into env; the caller
// threads them to subsequent siblings in left-to-right order within the
// same scope. Unification is never performed here; every equality
// obligation is deferred onto the constraint queue.
func (ctx *InferenceContext) InferExpression(env *TypeEnv, expr ast.Expression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return typesystem.IntType, nil, nil

	case *ast.FloatLiteral:
		return typesystem.FloatType, nil, nil

	case *ast.CharLiteral:
		return typesystem.CharType, nil, nil

	case *ast.BooleanLiteral:
		return typesystem.BoolType, nil, nil

	case *ast.Identifier:
		return ctx.inferIdentifier(env, e)

	case *ast.LambdaExpression:
		return ctx.inferLambda(env, e)

	case *ast.CallExpression:
		return ctx.inferCall(env, e)

	case *ast.InfixExpression:
		return ctx.inferInfix(env, e)

	case *ast.LetExpression:
		return ctx.inferLet(env, e)

	case *ast.TupleLiteral:
		return ctx.inferTuple(env, e)

	case *ast.ListLiteral:
		return ctx.inferList(env, e)

	case *ast.CaseExpression:
		return ctx.inferCase(env, e)

	case *ast.MatchExpression:
		return ctx.inferMatch(env, e)
	}

	return nil, nil, diagnostics.NewError(diagnostics.CodeTypeMismatch, tokenFor(expr),
		"cannot infer a type for %s", expr.String())
}

func (ctx *InferenceContext) inferIdentifier(env *TypeEnv, id *ast.Identifier) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	if id.IsConstructor() {
		ctor, ok := ctx.sig.Constructor(id.Value)
		if !ok {
			return nil, nil, diagnostics.NewError(diagnostics.CodeUndefinedConstructor, id.Token,
				"undefined constructor %s", id.Value)
		}
		sig, _ := ctx.instantiateConstructor(ctor)
		return sig, nil, nil
	}

	scheme, ok := env.Lookup(id.Value)
	if !ok {
		return nil, nil, diagnostics.NewError(diagnostics.CodeUnboundVariable, id.Token,
			"unbound variable %s", id.Value)
	}

	switch s := scheme.(type) {
	case *Lazy:
		return ctx.forceLazy(env, id.Value, s.Expr, id.Token)

	case *ForAll:
		t := ctx.Instantiate(s)
		// One use of a unique resource has now occurred: the binding
		// threaded back to the caller is the spent form.
		if u, ok := t.(typesystem.TUnique); ok && u.Valid {
			spent := typesystem.TUnique{Inner: u.Inner, Valid: false}
			return t, []Binding{{Name: id.Value, Scheme: &ForAll{Body: spent}}}, nil
		}
		return t, nil, nil
	}

	return nil, nil, diagnostics.NewError(diagnostics.CodeUnboundVariable, id.Token,
		"unbound variable %s", id.Value)
}

// forceLazy re-runs inference of a lazily bound expression. A fresh variable
// standing for the not-yet-known type is bound under the same name first, so
// direct and mutual recursion resolve to that variable instead of looping.
// Every call site forces independently; nothing is memoized, each forcing
// mints fresh variables.
func (ctx *InferenceContext) forceLazy(env *TypeEnv, name string, expr ast.Expression, tok token.Token) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	self := ctx.FreshVar(nil)
	inner := env.Extend(name, &ForAll{Body: self})

	t, bindings, err := ctx.InferExpression(inner, expr)
	if err != nil {
		return nil, nil, err
	}
	ctx.Defer(self, t, tok)

	if u, ok := t.(typesystem.TUnique); ok && u.Valid {
		spent := typesystem.TUnique{Inner: u.Inner, Valid: false}
		bindings = append(bindings, Binding{Name: name, Scheme: &ForAll{Body: spent}})
	}
	return t, bindings, nil
}

func (ctx *InferenceContext) inferLambda(env *TypeEnv, lam *ast.LambdaExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	param := ctx.FreshVar(nil)
	inner := env.Extend(lam.Param, &ForAll{Body: param})

	body, bindings, err := ctx.InferExpression(inner, lam.Body)
	if err != nil {
		return nil, nil, err
	}

	// Bindings for the parameter die with the lambda scope; uses of outer
	// unique resources still propagate out.
	var out []Binding
	for _, b := range bindings {
		if b.Name != lam.Param {
			out = append(out, b)
		}
	}
	return typesystem.TFunc{Param: param, Return: body}, out, nil
}

func (ctx *InferenceContext) inferCall(env *TypeEnv, call *ast.CallExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	fnType, bindings, err := ctx.InferExpression(env, call.Fn)
	if err != nil {
		return nil, nil, err
	}

	argType, argBindings, err := ctx.InferExpression(env.ExtendAll(bindings), call.Arg)
	if err != nil {
		return nil, nil, err
	}
	bindings = append(bindings, argBindings...)

	result := typesystem.Type(ctx.FreshVar(nil))
	ctx.Defer(fnType, typesystem.TFunc{Param: argType, Return: result}, call.Token)
	// When the operator type is already structurally a function, report its
	// codomain instead of the fresh variable: a unique result type stays
	// visible to the caller, so the use-downgrade of linear resources can
	// happen at generation time.
	if fn, ok := fnType.(typesystem.TFunc); ok {
		result = fn.Return
	}
	return result, bindings, nil
}

// inferInfix treats an infix operator as the curried application of the
// pre-bound operator identifier.
func (ctx *InferenceContext) inferInfix(env *TypeEnv, infix *ast.InfixExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	scheme, ok := env.Lookup(infix.Operator)
	if !ok {
		return nil, nil, diagnostics.NewError(diagnostics.CodeUnboundVariable, infix.Token,
			"unbound operator %s", infix.Operator)
	}
	forAll, ok := scheme.(*ForAll)
	if !ok {
		return nil, nil, diagnostics.NewError(diagnostics.CodeUnboundVariable, infix.Token,
			"unbound operator %s", infix.Operator)
	}
	opType := ctx.Instantiate(forAll)

	leftType, bindings, err := ctx.InferExpression(env, infix.Left)
	if err != nil {
		return nil, nil, err
	}
	rightType, rightBindings, err := ctx.InferExpression(env.ExtendAll(bindings), infix.Right)
	if err != nil {
		return nil, nil, err
	}
	bindings = append(bindings, rightBindings...)

	result := ctx.FreshVar(nil)
	want := typesystem.TFunc{
		Param:  leftType,
		Return: typesystem.TFunc{Param: rightType, Return: result},
	}
	ctx.Defer(opType, want, infix.Token)
	return result, bindings, nil
}

// inferLet binds the name to a fresh variable while inferring the bound
// expression (self-recursive lets resolve to it), then re-binds the name to
// a Lazy scheme for the body: every use site in the body re-infers the
// bound expression independently instead of sharing one generalized type.
func (ctx *InferenceContext) inferLet(env *TypeEnv, let *ast.LetExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	self := ctx.FreshVar(nil)
	valueEnv := env.Extend(let.Name, &ForAll{Body: self})

	valueType, bindings, err := ctx.InferExpression(valueEnv, let.Value)
	if err != nil {
		return nil, nil, err
	}
	ctx.Defer(self, valueType, let.Token)

	bodyEnv := env.ExtendAll(bindings).Extend(let.Name, &Lazy{Expr: let.Value})
	bodyType, bodyBindings, err := ctx.InferExpression(bodyEnv, let.Body)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range bodyBindings {
		if b.Name != let.Name {
			bindings = append(bindings, b)
		}
	}
	return bodyType, bindings, nil
}

func (ctx *InferenceContext) inferTuple(env *TypeEnv, tup *ast.TupleLiteral) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	var bindings []Binding
	elems := make([]typesystem.Type, len(tup.Elements))
	for i, el := range tup.Elements {
		t, bs, err := ctx.InferExpression(env.ExtendAll(bindings), el)
		if err != nil {
			return nil, nil, err
		}
		elems[i] = t
		bindings = append(bindings, bs...)
	}
	return typesystem.TTuple{Elements: elems}, bindings, nil
}

func (ctx *InferenceContext) inferList(env *TypeEnv, list *ast.ListLiteral) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	if len(list.Elements) == 0 {
		return typesystem.TList{Element: ctx.FreshVar(nil)}, nil, nil
	}

	pivot, bindings, err := ctx.InferExpression(env, list.Elements[0])
	if err != nil {
		return nil, nil, err
	}
	for _, el := range list.Elements[1:] {
		t, bs, err := ctx.InferExpression(env.ExtendAll(bindings), el)
		if err != nil {
			return nil, nil, err
		}
		ctx.Defer(pivot, t, tokenFor(el))
		bindings = append(bindings, bs...)
	}
	return typesystem.TList{Element: pivot}, bindings, nil
}

// inferCase constrains every guard to Bool and every branch result to the
// first branch's result. The parser guarantees a non-empty branch list.
func (ctx *InferenceContext) inferCase(env *TypeEnv, c *ast.CaseExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	// Guards evaluate top to bottom until one holds, so their bindings
	// thread left to right like any sibling expressions and flow out to the
	// caller. Bodies are alternatives; exactly one runs, so body bindings
	// stay local to their branch.
	branchEnv := env
	var out []Binding
	var resultType typesystem.Type
	for _, branch := range c.Branches {
		guardType, guardBindings, err := ctx.InferExpression(branchEnv, branch.Guard)
		if err != nil {
			return nil, nil, err
		}
		ctx.Defer(guardType, typesystem.BoolType, tokenFor(branch.Guard))
		branchEnv = branchEnv.ExtendAll(guardBindings)
		out = append(out, guardBindings...)

		bodyType, _, err := ctx.InferExpression(branchEnv, branch.Body)
		if err != nil {
			return nil, nil, err
		}
		if resultType == nil {
			resultType = bodyType
		} else {
			ctx.Defer(resultType, bodyType, tokenFor(branch.Body))
		}
	}
	return resultType, out, nil
}

// inferMatch infers the scrutinee once, then runs the type-level pattern
// matcher per branch; pattern bindings are scoped to that branch's body.
func (ctx *InferenceContext) inferMatch(env *TypeEnv, m *ast.MatchExpression) (typesystem.Type, []Binding, *diagnostics.DiagnosticError) {
	scrutinee, bindings, err := ctx.InferExpression(env, m.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	branchEnv := env.ExtendAll(bindings)

	var resultType typesystem.Type
	for _, branch := range m.Branches {
		patBindings, err := ctx.MatchPattern(branch.Pattern, scrutinee)
		if err != nil {
			return nil, nil, err
		}
		bodyType, _, err := ctx.InferExpression(branchEnv.ExtendAll(patBindings), branch.Body)
		if err != nil {
			return nil, nil, err
		}
		if resultType == nil {
			resultType = bodyType
		} else {
			ctx.Defer(resultType, bodyType, tokenFor(branch.Body))
		}
	}
	return resultType, bindings, nil
}

// instantiateConstructor renames the owner's declared parameter variables to
// fresh ones, consistently through signature and owner, so each occurrence
// gets independent type variables.
func (ctx *InferenceContext) instantiateConstructor(ctor TermConstructor) (typesystem.Type, typesystem.TData) {
	if len(ctor.Owner.Args) == 0 {
		return ctor.Signature, ctor.Owner
	}
	s := make(typesystem.Subst, len(ctor.Owner.Args))
	for _, arg := range ctor.Owner.Args {
		if v, ok := arg.(typesystem.TVar); ok {
			s[v.Name] = ctx.FreshVar(v.Classes)
		}
	}
	owner := ctor.Owner.Apply(s).(typesystem.TData)
	return ctor.Signature.Apply(s), owner
}

func tokenFor(expr ast.Expression) token.Token {
	return expr.GetToken()
}
