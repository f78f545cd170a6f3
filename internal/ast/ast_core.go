package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
}

// Declaration is a top-level program element.
type Declaration interface {
	Node
	declarationNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression. Patterns reuse
// expression nodes: the pattern grammar is a subset of the expression
// grammar, and the matchers (both type-level and value-level) interpret
// the shared shapes.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// TypeExpression is a syntactic type reference inside a constructor
// signature.
type TypeExpression interface {
	Node
	typeExpressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File         string // Source file path
	Source       string // Full source text, kept for caret diagnostics
	Declarations []Declaration
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, d := range p.Declarations {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// TypeDeclaration represents an algebraic type declaration:
//
//	type Tree a = Leaf | Node (Tree a)
type TypeDeclaration struct {
	Token        token.Token // The 'type' token
	Name         string
	Params       []string // declared type parameter names, in order
	Constructors []*ConstructorDef
}

func (td *TypeDeclaration) declarationNode()     {}
func (td *TypeDeclaration) TokenLiteral() string { return td.Token.Lexeme }
func (td *TypeDeclaration) GetToken() token.Token {
	if td == nil {
		return token.Token{}
	}
	return td.Token
}

func (td *TypeDeclaration) String() string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(td.Name)
	for _, p := range td.Params {
		sb.WriteString(" ")
		sb.WriteString(p)
	}
	sb.WriteString(" =")
	for i, c := range td.Constructors {
		if i > 0 {
			sb.WriteString(" |")
		}
		sb.WriteString(" ")
		sb.WriteString(c.String())
	}
	return sb.String()
}

// ConstructorDef is a single term-constructor alternative: nullary, or
// taking exactly one argument type.
type ConstructorDef struct {
	Token token.Token // The constructor name token
	Name  string
	Arg   TypeExpression // nil for nullary constructors
}

func (cd *ConstructorDef) String() string {
	if cd.Arg == nil {
		return cd.Name
	}
	return cd.Name + " " + cd.Arg.String()
}

// VarDeclaration represents a top-level binding: name = expr.
type VarDeclaration struct {
	Token token.Token // The name token
	Name  string
	Value Expression
}

func (vd *VarDeclaration) declarationNode()     {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Lexeme }
func (vd *VarDeclaration) GetToken() token.Token {
	if vd == nil {
		return token.Token{}
	}
	return vd.Token
}

func (vd *VarDeclaration) String() string {
	return vd.Name + " = " + vd.Value.String()
}
