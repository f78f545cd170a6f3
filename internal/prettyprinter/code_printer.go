// Package prettyprinter renders expressions and patterns back to surface
// syntax. It exists for diagnostics only: the rendered form is meant for
// humans reading an error message, not for round-tripping.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
)

// Operator precedence (higher = binds tighter); mirrors the parser table.
var operatorPrecedence = map[string]int{
	"||":  1,
	"&&":  2,
	"==":  3,
	"!=":  3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	":":   5,
	"++":  5,
	".&.": 6,
	".|.": 6,
	".^.": 6,
	"+":   7,
	"-":   7,
	"*":   8,
	"/":   8,
}

const applyPrecedence = 9

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	":": true,
}

type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders expr with minimal parentheses.
func Print(expr ast.Expression) string {
	p := NewCodePrinter()
	p.printExpr(expr, 0, false)
	return p.String()
}

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }

// printExpr prints an expression, adding parentheses only if needed.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// For same precedence, check associativity
		if prec == parentPrec {
			if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}

	case *ast.CallExpression:
		needParens := applyPrecedence < parentPrec || (applyPrecedence == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Fn, applyPrecedence, false)
		p.write(" ")
		p.printExpr(e.Arg, applyPrecedence, true)
		if needParens {
			p.write(")")
		}

	case *ast.TupleLiteral:
		p.write("(")
		for i, el := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(el, 0, false)
		}
		p.write(")")

	case *ast.ListLiteral:
		p.write("[")
		for i, el := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(el, 0, false)
		}
		p.write("]")

	case *ast.CharLiteral:
		p.write(fmt.Sprintf("%q", e.Value))

	case *ast.LambdaExpression:
		if parentPrec > 0 {
			p.write("(")
		}
		p.write("\\" + e.Param + " -> ")
		p.printExpr(e.Body, 0, false)
		if parentPrec > 0 {
			p.write(")")
		}

	default:
		p.write(expr.String())
	}
}
