package evaluator

import (
	"io"
	"os"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/config"
)

// Evaluator is a tree-walking interpreter over the parsed program. It runs
// only code the analyzer has accepted, so it checks object shapes with
// runtime errors instead of re-doing inference.
type Evaluator struct {
	Out io.Writer
	In  io.Reader
}

func New() *Evaluator {
	return &Evaluator{Out: os.Stdout, In: os.Stdin}
}

// Run installs the program's constructors and top-level bindings into a
// fresh global environment and evaluates the main binding.
func (e *Evaluator) Run(program *ast.Program) Object {
	env := NewEnvironment()
	RegisterBuiltins(env)

	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.TypeDeclaration:
			e.registerConstructors(d, env)
		case *ast.VarDeclaration:
			env.Set(d.Name, &Thunk{Name: d.Name, Expr: d.Value, Env: env})
		}
	}

	main, ok := env.Get(config.EntryPointName)
	if !ok {
		return newError("program has no %s binding", config.EntryPointName)
	}
	return e.force(main)
}

func (e *Evaluator) registerConstructors(decl *ast.TypeDeclaration, env *Environment) {
	for _, ctor := range decl.Constructors {
		if ctor.Arg == nil {
			env.Set(ctor.Name, &DataInstance{Ctor: ctor.Name})
			continue
		}
		name := ctor.Name
		env.Set(name, &Builtin{
			Name:  name,
			Arity: 1,
			Fn: func(_ *Evaluator, args ...Object) Object {
				return &DataInstance{Ctor: name, Arg: args[0]}
			},
		})
	}
}

// force evaluates a thunk. Thunks are deliberately not memoized: each
// reference to a top-level binding re-runs its body, which is what makes a
// second use of a spent resource impossible to reach (the analyzer already
// rejected it) and keeps recursion straightforward.
func (e *Evaluator) force(obj Object) Object {
	for {
		t, ok := obj.(*Thunk)
		if !ok {
			return obj
		}
		obj = e.Eval(t.Expr, t.Env)
	}
}

// Eval evaluates a single expression in env.
func (e *Evaluator) Eval(expr ast.Expression, env *Environment) Object {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.CharLiteral:
		return &Char{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBool(node.Value)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.LambdaExpression:
		return &Function{Param: node.Param, Body: node.Body, Env: env}
	case *ast.CallExpression:
		return e.evalCall(node, env)
	case *ast.InfixExpression:
		return e.evalInfix(node, env)
	case *ast.LetExpression:
		return e.evalLet(node, env)
	case *ast.TupleLiteral:
		elements, err := e.evalExpressions(node.Elements, env)
		if err != nil {
			return err
		}
		return &Tuple{Elements: elements}
	case *ast.ListLiteral:
		elements, err := e.evalExpressions(node.Elements, env)
		if err != nil {
			return err
		}
		return &List{Elements: elements}
	case *ast.CaseExpression:
		return e.evalCase(node, env)
	case *ast.MatchExpression:
		return e.evalMatch(node, env)
	}
	tok := expr.GetToken()
	return newErrorAt(tok.Line, tok.Column, "cannot evaluate %T", expr)
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if obj, ok := env.Get(node.Value); ok {
		return e.force(obj)
	}
	return newErrorAt(node.Token.Line, node.Token.Column, "unbound variable: %s", node.Value)
}

func (e *Evaluator) evalCall(node *ast.CallExpression, env *Environment) Object {
	fn := e.Eval(node.Fn, env)
	if isError(fn) {
		return fn
	}
	arg := e.Eval(node.Arg, env)
	if isError(arg) {
		return arg
	}
	result := e.apply(fn, arg)
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line = node.Token.Line
		err.Column = node.Token.Column
	}
	return result
}

// apply performs one step of curried application.
func (e *Evaluator) apply(fn, arg Object) Object {
	switch callee := fn.(type) {
	case *Function:
		inner := NewEnclosedEnvironment(callee.Env)
		inner.Set(callee.Param, arg)
		return e.Eval(callee.Body, inner)
	case *Builtin:
		args := append(append([]Object{}, callee.args...), arg)
		if len(args) < callee.Arity {
			return &Builtin{Name: callee.Name, Arity: callee.Arity, Fn: callee.Fn, args: args}
		}
		return callee.Fn(e, args...)
	default:
		return newError("not a function: %s", fn.Type())
	}
}

func (e *Evaluator) evalLet(node *ast.LetExpression, env *Environment) Object {
	value := e.Eval(node.Value, env)
	if isError(value) {
		return value
	}
	inner := NewEnclosedEnvironment(env)
	inner.Set(node.Name, value)
	return e.Eval(node.Body, inner)
}

func (e *Evaluator) evalCase(node *ast.CaseExpression, env *Environment) Object {
	for _, branch := range node.Branches {
		guard := e.Eval(branch.Guard, env)
		if isError(guard) {
			return guard
		}
		b, ok := guard.(*Boolean)
		if !ok {
			return newErrorAt(branch.Token.Line, branch.Token.Column,
				"case guard is not a boolean: %s", guard.Type())
		}
		if b.Value {
			return e.Eval(branch.Body, env)
		}
	}
	return newErrorAt(node.Token.Line, node.Token.Column, "no case guard held")
}

func (e *Evaluator) evalMatch(node *ast.MatchExpression, env *Environment) Object {
	scrutinee := e.Eval(node.Scrutinee, env)
	if isError(scrutinee) {
		return scrutinee
	}
	for _, branch := range node.Branches {
		inner := NewEnclosedEnvironment(env)
		if e.matchPattern(branch.Pattern, scrutinee, inner) {
			return e.Eval(branch.Body, inner)
		}
	}
	return newErrorAt(node.Token.Line, node.Token.Column,
		"no pattern matched %s", scrutinee.Inspect())
}

func (e *Evaluator) evalExpressions(exprs []ast.Expression, env *Environment) ([]Object, *Error) {
	results := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		obj := e.Eval(expr, env)
		if err, ok := obj.(*Error); ok {
			return nil, err
		}
		results = append(results, obj)
	}
	return results, nil
}
