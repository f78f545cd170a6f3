package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

// parseTypeDeclaration parses
//
//	type Name a b = Ctor | Ctor ArgType | ...
//
// Constructors are nullary or take exactly one argument type.
func (p *Parser) parseTypeDeclaration() *ast.TypeDeclaration {
	decl := &ast.TypeDeclaration{Token: p.curToken}
	if !p.expectPeek(token.TYPE_IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	for p.peekIs(token.IDENT) {
		p.nextToken()
		decl.Params = append(decl.Params, p.curToken.Literal)
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	// Constructors may start on the following line.
	for p.peekIs(token.NEWLINE) {
		p.nextToken()
	}
	if p.peekIs(token.BAR) {
		p.nextToken() // optional leading '|'
	}
	for {
		ctor := p.parseConstructorDef()
		if ctor == nil {
			return nil
		}
		decl.Constructors = append(decl.Constructors, ctor)

		p.skipNewlinesBeforeBar()
		if !p.peekIs(token.BAR) {
			break
		}
		p.nextToken() // '|'
	}
	return decl
}

func (p *Parser) parseConstructorDef() *ast.ConstructorDef {
	if !p.expectPeek(token.TYPE_IDENT) {
		return nil
	}
	ctor := &ast.ConstructorDef{Token: p.curToken, Name: p.curToken.Literal}
	if p.peekStartsType() {
		p.nextToken()
		ctor.Arg = p.parseTypeAtom()
		if ctor.Arg == nil {
			return nil
		}
	}
	return ctor
}

func (p *Parser) peekStartsType() bool {
	switch p.peekToken.Type {
	case token.TYPE_IDENT, token.IDENT, token.LPAREN, token.LBRACKET:
		return true
	}
	return false
}

// parseTypeAtom parses a single type reference: a (possibly unique) name,
// a list type, or a parenthesized application/tuple/function type.
func (p *Parser) parseTypeAtom() ast.TypeExpression {
	switch p.curToken.Type {
	case token.TYPE_IDENT, token.IDENT:
		name := &ast.TypeName{Token: p.curToken, Name: p.curToken.Literal}
		if p.peekIs(token.BANG) {
			p.nextToken()
			name.Unique = true
		}
		return name

	case token.LBRACKET:
		lt := &ast.ListType{Token: p.curToken}
		p.nextToken()
		lt.Element = p.parseTypeExpr()
		if lt.Element == nil {
			return nil
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return lt

	case token.LPAREN:
		return p.parseParenType()

	default:
		p.errorf(p.curToken, "expected a type, got %q", p.curToken.Lexeme)
		return nil
	}
}

// parseParenType handles (Tree a), (Int, Bool) and (Int -> Bool).
func (p *Parser) parseParenType() ast.TypeExpression {
	lparen := p.curToken

	// Type application: an uppercase name directly followed by a type atom.
	if p.peekIs(token.TYPE_IDENT) {
		// Look one further: application or a lone parenthesized name?
		nameTok := p.peekToken
		p.nextToken()
		if p.peekStartsType() {
			app := &ast.TypeApp{Token: nameTok, Name: nameTok.Literal}
			for p.peekStartsType() {
				p.nextToken()
				arg := p.parseTypeAtom()
				if arg == nil {
					return nil
				}
				app.Args = append(app.Args, arg)
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			if p.peekIs(token.BANG) {
				p.nextToken()
				app.Unique = true
			}
			return app
		}
		// Fall through with the name as the first inner type.
		return p.finishParenType(lparen, p.finishTypeName())
	}

	p.nextToken()
	inner := p.parseTypeExpr()
	if inner == nil {
		return nil
	}
	return p.finishParenType(lparen, inner)
}

// finishTypeName builds a TypeName for the current token, honoring a
// trailing unique marker, and continues an arrow chain if present.
func (p *Parser) finishTypeName() ast.TypeExpression {
	name := &ast.TypeName{Token: p.curToken, Name: p.curToken.Literal}
	if p.peekIs(token.BANG) {
		p.nextToken()
		name.Unique = true
	}
	if p.peekIs(token.ARROW) {
		p.nextToken() // '->'
		p.nextToken()
		ret := p.parseTypeExpr()
		if ret == nil {
			return nil
		}
		return &ast.FuncType{Token: name.Token, Param: name, Return: ret}
	}
	return name
}

func (p *Parser) finishParenType(lparen token.Token, inner ast.TypeExpression) ast.TypeExpression {
	if inner == nil {
		return nil
	}

	if p.peekIs(token.COMMA) {
		tuple := &ast.TupleType{Token: lparen, Elements: []ast.TypeExpression{inner}}
		for p.peekIs(token.COMMA) {
			p.nextToken() // ','
			p.nextToken()
			el := p.parseTypeExpr()
			if el == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, el)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return tuple
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return inner
}

// parseTypeExpr parses an atom optionally followed by an arrow chain
// (right-associative).
func (p *Parser) parseTypeExpr() ast.TypeExpression {
	left := p.parseTypeAtom()
	if left == nil {
		return nil
	}
	if p.peekIs(token.ARROW) {
		p.nextToken() // '->'
		p.nextToken()
		right := p.parseTypeExpr()
		if right == nil {
			return nil
		}
		return &ast.FuncType{Token: left.GetToken(), Param: left, Return: right}
	}
	return left
}
