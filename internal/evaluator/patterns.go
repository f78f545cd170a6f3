package evaluator

import "github.com/quill-lang/quill/internal/ast"

// matchPattern reports whether value matches pattern, installing pattern
// bindings into env as it goes. It is the value-level twin of the type
// checker's pattern analysis: the same pattern grammar, decided on runtime
// shapes instead of types. Bindings made before a failed tail are left in
// env; the caller discards the branch environment on failure.
func (e *Evaluator) matchPattern(pattern ast.Expression, value Object, env *Environment) bool {
	switch p := pattern.(type) {
	case *ast.Wildcard:
		return true

	case *ast.Identifier:
		if p.IsConstructor() {
			data, ok := value.(*DataInstance)
			return ok && data.Ctor == p.Value && data.Arg == nil
		}
		env.Set(p.Value, value)
		return true

	case *ast.IntegerLiteral:
		v, ok := value.(*Integer)
		return ok && v.Value == p.Value

	case *ast.FloatLiteral:
		v, ok := value.(*Float)
		return ok && v.Value == p.Value

	case *ast.CharLiteral:
		v, ok := value.(*Char)
		return ok && v.Value == p.Value

	case *ast.BooleanLiteral:
		v, ok := value.(*Boolean)
		return ok && v.Value == p.Value

	case *ast.CallExpression:
		ctor, ok := p.Fn.(*ast.Identifier)
		if !ok {
			return false
		}
		data, ok := value.(*DataInstance)
		if !ok || data.Ctor != ctor.Value || data.Arg == nil {
			return false
		}
		return e.matchPattern(p.Arg, data.Arg, env)

	case *ast.InfixExpression:
		if p.Operator != ":" {
			return false
		}
		list, ok := value.(*List)
		if !ok || len(list.Elements) == 0 {
			return false
		}
		if !e.matchPattern(p.Left, list.Elements[0], env) {
			return false
		}
		return e.matchPattern(p.Right, &List{Elements: list.Elements[1:]}, env)

	case *ast.TupleLiteral:
		tuple, ok := value.(*Tuple)
		if !ok || len(tuple.Elements) != len(p.Elements) {
			return false
		}
		return e.matchElements(p.Elements, tuple.Elements, env)

	case *ast.ListLiteral:
		list, ok := value.(*List)
		if !ok || len(list.Elements) != len(p.Elements) {
			return false
		}
		return e.matchElements(p.Elements, list.Elements, env)
	}
	return false
}

func (e *Evaluator) matchElements(patterns []ast.Expression, values []Object, env *Environment) bool {
	for i, sub := range patterns {
		if !e.matchPattern(sub, values[i], env) {
			return false
		}
	}
	return true
}
