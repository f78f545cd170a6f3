package ast

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// IntegerLiteral represents an Int literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) String() string       { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral represents a Float literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) String() string       { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// CharLiteral represents a Char literal.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharLiteral) String() string       { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token {
	if cl == nil {
		return token.Token{}
	}
	return cl.Token
}

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BooleanLiteral) String() string       { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}

// Identifier references a variable (lowercase) or a term constructor
// (uppercase). In pattern position a lowercase identifier binds.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// IsConstructor reports whether the identifier names a term constructor
// (constructor names start with an uppercase letter).
func (i *Identifier) IsConstructor() bool {
	return len(i.Value) > 0 && i.Value[0] >= 'A' && i.Value[0] <= 'Z'
}

// Wildcard is the `_` pattern. It only occurs in pattern position.
type Wildcard struct {
	Token token.Token
}

func (w *Wildcard) expressionNode()      {}
func (w *Wildcard) TokenLiteral() string { return w.Token.Lexeme }
func (w *Wildcard) String() string       { return "_" }
func (w *Wildcard) GetToken() token.Token {
	if w == nil {
		return token.Token{}
	}
	return w.Token
}

// LambdaExpression is a single-parameter function literal: \x -> body.
type LambdaExpression struct {
	Token token.Token // The '\' token
	Param string
	Body  Expression
}

func (le *LambdaExpression) expressionNode()      {}
func (le *LambdaExpression) TokenLiteral() string { return le.Token.Lexeme }
func (le *LambdaExpression) String() string {
	return fmt.Sprintf("\\%s -> %s", le.Param, le.Body.String())
}
func (le *LambdaExpression) GetToken() token.Token {
	if le == nil {
		return token.Token{}
	}
	return le.Token
}

// CallExpression is curried application by juxtaposition: fn arg.
// In pattern position it is a unary constructor application.
type CallExpression struct {
	Token token.Token
	Fn    Expression
	Arg   Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) String() string {
	return fmt.Sprintf("(%s %s)", ce.Fn.String(), ce.Arg.String())
}
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// InfixExpression is a binary operator application. The analyzer treats it
// as the curried application of a pre-bound operator identifier; the
// evaluator interprets the operator directly. `h : t` in pattern position
// is list decomposition.
type InfixExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", ie.Left.String(), ie.Operator, ie.Right.String())
}
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// LetExpression is a local binding: let x = value in body.
type LetExpression struct {
	Token token.Token // The 'let' token
	Name  string
	Value Expression
	Body  Expression
}

func (le *LetExpression) expressionNode()      {}
func (le *LetExpression) TokenLiteral() string { return le.Token.Lexeme }
func (le *LetExpression) String() string {
	return fmt.Sprintf("let %s = %s in %s", le.Name, le.Value.String(), le.Body.String())
}
func (le *LetExpression) GetToken() token.Token {
	if le == nil {
		return token.Token{}
	}
	return le.Token
}

// TupleLiteral is a fixed-length tuple: (a, b). In pattern position its
// elements are sub-patterns.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Lexeme }
func (tl *TupleLiteral) String() string {
	parts := make([]string, len(tl.Elements))
	for i, el := range tl.Elements {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (tl *TupleLiteral) GetToken() token.Token {
	if tl == nil {
		return token.Token{}
	}
	return tl.Token
}

// ListLiteral is a list literal: [a, b]. In pattern position it matches
// lists of exactly that length.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Lexeme }
func (ll *ListLiteral) String() string {
	parts := make([]string, len(ll.Elements))
	for i, el := range ll.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (ll *ListLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}

// GuardedBranch is one `| guard -> body` alternative of a case expression.
type GuardedBranch struct {
	Token token.Token
	Guard Expression
	Body  Expression
}

// CaseExpression selects the first branch whose boolean guard holds:
//
//	case | x < 0 -> 0 | true -> 1
//
// The parser guarantees at least one branch.
type CaseExpression struct {
	Token    token.Token // The 'case' token
	Branches []*GuardedBranch
}

func (ce *CaseExpression) expressionNode()      {}
func (ce *CaseExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CaseExpression) String() string {
	var sb strings.Builder
	sb.WriteString("case")
	for _, b := range ce.Branches {
		sb.WriteString(fmt.Sprintf(" | %s -> %s", b.Guard.String(), b.Body.String()))
	}
	return sb.String()
}
func (ce *CaseExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// MatchBranch is one `| pattern -> body` alternative of a match expression.
type MatchBranch struct {
	Token   token.Token
	Pattern Expression
	Body    Expression
}

// MatchExpression matches a scrutinee against patterns:
//
//	match t | Leaf -> 0 | Node x -> x
//
// The parser guarantees at least one branch.
type MatchExpression struct {
	Token     token.Token // The 'match' token
	Scrutinee Expression
	Branches  []*MatchBranch
}

func (me *MatchExpression) expressionNode()      {}
func (me *MatchExpression) TokenLiteral() string { return me.Token.Lexeme }
func (me *MatchExpression) String() string {
	var sb strings.Builder
	sb.WriteString("match ")
	sb.WriteString(me.Scrutinee.String())
	for _, b := range me.Branches {
		sb.WriteString(fmt.Sprintf(" | %s -> %s", b.Pattern.String(), b.Body.String()))
	}
	return sb.String()
}
func (me *MatchExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}
