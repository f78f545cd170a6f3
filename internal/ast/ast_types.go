package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// TypeName references a type by name inside a constructor signature:
// a primitive, a declared algebraic type, or a declared type parameter
// (lowercase). A trailing '!' in the source marks the Unique form.
type TypeName struct {
	Token  token.Token
	Name   string
	Unique bool
}

func (tn *TypeName) typeExpressionNode() {}
func (tn *TypeName) TokenLiteral() string { return tn.Token.Lexeme }
func (tn *TypeName) GetToken() token.Token {
	if tn == nil {
		return token.Token{}
	}
	return tn.Token
}

func (tn *TypeName) String() string {
	if tn.Unique {
		return tn.Name + "!"
	}
	return tn.Name
}

// TypeApp applies type arguments to a named type: (Tree a), (Pair Int b).
type TypeApp struct {
	Token  token.Token
	Name   string
	Args   []TypeExpression
	Unique bool
}

func (ta *TypeApp) typeExpressionNode() {}
func (ta *TypeApp) TokenLiteral() string { return ta.Token.Lexeme }
func (ta *TypeApp) GetToken() token.Token {
	if ta == nil {
		return token.Token{}
	}
	return ta.Token
}

func (ta *TypeApp) String() string {
	parts := make([]string, 0, len(ta.Args)+1)
	parts = append(parts, ta.Name)
	for _, a := range ta.Args {
		parts = append(parts, a.String())
	}
	s := "(" + strings.Join(parts, " ") + ")"
	if ta.Unique {
		s += "!"
	}
	return s
}

// TupleType is a tuple of component types: (Int, Bool).
type TupleType struct {
	Token    token.Token
	Elements []TypeExpression
}

func (tt *TupleType) typeExpressionNode() {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}

func (tt *TupleType) String() string {
	parts := make([]string, len(tt.Elements))
	for i, el := range tt.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ListType is a homogeneous list type: [Int].
type ListType struct {
	Token   token.Token
	Element TypeExpression
}

func (lt *ListType) typeExpressionNode() {}
func (lt *ListType) TokenLiteral() string { return lt.Token.Lexeme }
func (lt *ListType) GetToken() token.Token {
	if lt == nil {
		return token.Token{}
	}
	return lt.Token
}

func (lt *ListType) String() string { return "[" + lt.Element.String() + "]" }

// FuncType is a function type inside a signature: (Int -> Bool).
type FuncType struct {
	Token  token.Token
	Param  TypeExpression
	Return TypeExpression
}

func (ft *FuncType) typeExpressionNode() {}
func (ft *FuncType) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FuncType) GetToken() token.Token {
	if ft == nil {
		return token.Token{}
	}
	return ft.Token
}

func (ft *FuncType) String() string {
	return "(" + ft.Param.String() + " -> " + ft.Return.String() + ")"
}
