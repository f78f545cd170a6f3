package evaluator

import "github.com/quill-lang/quill/internal/ast"

// evalInfix interprets the built-in operators directly instead of going
// through the curried operator bindings the type checker sees. Short-circuit
// behavior for && and || falls out of evaluating the right side lazily.
func (e *Evaluator) evalInfix(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}

	switch node.Operator {
	case "&&":
		if b, ok := left.(*Boolean); ok && !b.Value {
			return FALSE
		}
		return e.evalBoolOperand(node.Right, env)
	case "||":
		if b, ok := left.(*Boolean); ok && b.Value {
			return TRUE
		}
		return e.evalBoolOperand(node.Right, env)
	}

	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	result := evalBinaryOp(node.Operator, left, right)
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line = node.Token.Line
		err.Column = node.Token.Column
	}
	return result
}

func (e *Evaluator) evalBoolOperand(expr ast.Expression, env *Environment) Object {
	obj := e.Eval(expr, env)
	if isError(obj) {
		return obj
	}
	if b, ok := obj.(*Boolean); ok {
		return b
	}
	return newError("operand is not a boolean: %s", obj.Type())
}

func evalBinaryOp(op string, left, right Object) Object {
	switch op {
	case "+", "-", "*", "/":
		return evalArithmetic(op, left, right)
	case "==":
		return nativeBool(objectsEqual(left, right))
	case "!=":
		return nativeBool(!objectsEqual(left, right))
	case "<", ">", "<=", ">=":
		return evalComparison(op, left, right)
	case ".&.", ".|.", ".^.":
		return evalBitwise(op, left, right)
	case ":":
		tail, ok := right.(*List)
		if !ok {
			return newError("cons tail is not a list: %s", right.Type())
		}
		elements := make([]Object, 0, len(tail.Elements)+1)
		elements = append(elements, left)
		elements = append(elements, tail.Elements...)
		return &List{Elements: elements}
	case "++":
		l, lok := left.(*List)
		r, rok := right.(*List)
		if !lok || !rok {
			return newError("cannot concatenate %s and %s", left.Type(), right.Type())
		}
		elements := make([]Object, 0, len(l.Elements)+len(r.Elements))
		elements = append(elements, l.Elements...)
		elements = append(elements, r.Elements...)
		return &List{Elements: elements}
	}
	return newError("unknown operator: %s", op)
}

func evalArithmetic(op string, left, right Object) Object {
	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return intArithmetic(op, l.Value, r.Value)
		}
	case *Float:
		if r, ok := right.(*Float); ok {
			return floatArithmetic(op, l.Value, r.Value)
		}
	case *Char:
		// Chars are Num members; arithmetic runs over their code points.
		if r, ok := right.(*Char); ok {
			result := intArithmetic(op, int64(l.Value), int64(r.Value))
			if i, ok := result.(*Integer); ok {
				return &Char{Value: rune(i.Value)}
			}
			return result
		}
	}
	return newError("cannot apply %s to %s and %s", op, left.Type(), right.Type())
}

func intArithmetic(op string, l, r int64) Object {
	switch op {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	default:
		if r == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: l / r}
	}
}

func floatArithmetic(op string, l, r float64) Object {
	switch op {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	default:
		if r == 0 {
			return newError("division by zero")
		}
		return &Float{Value: l / r}
	}
}

func evalComparison(op string, left, right Object) Object {
	cmp, err := compareObjects(left, right)
	if err != nil {
		return err
	}
	switch op {
	case "<":
		return nativeBool(cmp < 0)
	case ">":
		return nativeBool(cmp > 0)
	case "<=":
		return nativeBool(cmp <= 0)
	default:
		return nativeBool(cmp >= 0)
	}
}

func compareObjects(left, right Object) (int, *Error) {
	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return compareOrdered(l.Value, r.Value), nil
		}
	case *Float:
		if r, ok := right.(*Float); ok {
			return compareOrdered(l.Value, r.Value), nil
		}
	case *Char:
		if r, ok := right.(*Char); ok {
			return compareOrdered(l.Value, r.Value), nil
		}
	case *List:
		if r, ok := right.(*List); ok {
			for i := 0; i < len(l.Elements) && i < len(r.Elements); i++ {
				cmp, err := compareObjects(l.Elements[i], r.Elements[i])
				if err != nil || cmp != 0 {
					return cmp, err
				}
			}
			return compareOrdered(len(l.Elements), len(r.Elements)), nil
		}
	}
	return 0, newError("cannot order %s and %s", left.Type(), right.Type())
}

func compareOrdered[T int | int64 | float64 | rune](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func evalBitwise(op string, left, right Object) Object {
	li, lok := bitwiseOperand(left)
	ri, rok := bitwiseOperand(right)
	if !lok || !rok {
		return newError("cannot apply %s to %s and %s", op, left.Type(), right.Type())
	}
	var result int64
	switch op {
	case ".&.":
		result = li & ri
	case ".|.":
		result = li | ri
	default:
		result = li ^ ri
	}
	if _, isChar := left.(*Char); isChar {
		return &Char{Value: rune(result)}
	}
	return &Integer{Value: result}
}

func bitwiseOperand(obj Object) (int64, bool) {
	switch o := obj.(type) {
	case *Integer:
		return o.Value, true
	case *Char:
		return int64(o.Value), true
	}
	return 0, false
}

// objectsEqual is structural equality over the Eq-capable object kinds.
func objectsEqual(left, right Object) bool {
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		return ok && l.Value == r.Value
	case *Float:
		r, ok := right.(*Float)
		return ok && l.Value == r.Value
	case *Char:
		r, ok := right.(*Char)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	case *List:
		r, ok := right.(*List)
		return ok && elementsEqual(l.Elements, r.Elements)
	case *Tuple:
		r, ok := right.(*Tuple)
		return ok && elementsEqual(l.Elements, r.Elements)
	case *DataInstance:
		r, ok := right.(*DataInstance)
		if !ok || l.Ctor != r.Ctor {
			return false
		}
		if l.Arg == nil || r.Arg == nil {
			return l.Arg == nil && r.Arg == nil
		}
		return objectsEqual(l.Arg, r.Arg)
	}
	return false
}

func elementsEqual(left, right []Object) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !objectsEqual(left[i], right[i]) {
			return false
		}
	}
	return true
}
