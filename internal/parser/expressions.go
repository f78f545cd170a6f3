package parser

import (
	"strconv"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

// parseExpression is the Pratt core. Application is not a token: whenever
// the next token can begin an atom and the current level allows it, the
// parsed expression so far is applied to the following atom (curried,
// left-associative, binding tighter than every operator).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected token %q in expression", p.curToken.Lexeme)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for {
		switch {
		case precedence < CALL && p.peekStartsAtom():
			tok := p.peekToken
			p.nextToken()
			arg := p.parseAtom()
			if arg == nil {
				return nil
			}
			left = &ast.CallExpression{Token: tok, Fn: left, Arg: arg}

		case p.peekIsInfix() && precedence < p.peekPrecedence():
			p.nextToken()
			left = p.parseInfixExpression(left)
			if left == nil {
				return nil
			}

		default:
			return left
		}
	}
}

// parseAtom parses a single application operand: a prefix unit with no
// trailing operators or juxtaposition.
func (p *Parser) parseAtom() ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected token %q in expression", p.curToken.Lexeme)
		return nil
	}
	return prefix()
}

// peekStartsAtom reports whether the next token can begin an application
// operand. Keyword forms (let, case, match, lambda) are excluded: they
// extend to the right and must be parenthesized in argument position.
func (p *Parser) peekStartsAtom() bool {
	switch p.peekToken.Type {
	case token.INT, token.FLOAT, token.CHAR, token.STRING, token.TRUE, token.FALSE,
		token.IDENT, token.TYPE_IDENT, token.UNDERSCORE, token.LPAREN, token.LBRACKET:
		return true
	}
	return false
}

func (p *Parser) peekIsInfix() bool {
	_, ok := precedences[p.peekToken.Type]
	return ok
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	if rightAssoc[p.curToken.Type] {
		precedence--
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(p.curToken, "invalid integer literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken, "invalid float literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	runes := []rune(p.curToken.Literal)
	if len(runes) != 1 {
		p.errorf(p.curToken, "invalid char literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.CharLiteral{Token: p.curToken, Value: runes[0]}
}

// parseStringLiteral lowers "abc" to ['a', 'b', 'c']: strings are Char
// lists, there is no separate string type.
func (p *Parser) parseStringLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	for _, r := range p.curToken.Literal {
		list.Elements = append(list.Elements, &ast.CharLiteral{Token: p.curToken, Value: r})
	}
	return list
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curIs(token.TRUE)}
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseWildcard() ast.Expression {
	return &ast.Wildcard{Token: p.curToken}
}

// parseLambda parses \x -> body and the multi-parameter sugar
// \x y -> body, which nests into \x -> \y -> body.
func (p *Parser) parseLambda() ast.Expression {
	lamTok := p.curToken
	var params []string
	for p.peekIs(token.IDENT) {
		p.nextToken()
		params = append(params, p.curToken.Literal)
	}
	if len(params) == 0 {
		p.errorf(p.peekToken, "expected parameter name after \\, got %q", p.peekToken.Lexeme)
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.LambdaExpression{Token: lamTok, Param: params[i], Body: body}
	}
	return body
}

// parseGroupOrTuple handles (expr) and (a, b, ...).
func (p *Parser) parseGroupOrTuple() ast.Expression {
	lparen := p.curToken
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if !p.peekIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	tuple := &ast.TupleLiteral{Token: lparen, Elements: []ast.Expression{first}}
	for p.peekIs(token.COMMA) {
		p.nextToken() // ','
		p.nextToken()
		el := p.parseExpression(LOWEST)
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

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return list
	}
	for {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		list.Elements = append(list.Elements, el)
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken() // ','
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return list
}

func (p *Parser) parseLet() ast.Expression {
	let := &ast.LetExpression{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	let.Name = p.curToken.Literal
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	let.Value = p.parseExpression(LOWEST)
	if let.Value == nil {
		return nil
	}
	for p.peekIs(token.NEWLINE) {
		p.nextToken()
	}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	if p.curIs(token.NEWLINE) {
		p.skipNewlines()
	}
	let.Body = p.parseExpression(LOWEST)
	if let.Body == nil {
		return nil
	}
	return let
}

// parseCase parses `case | guard -> body | guard -> body ...`.
// The grammar requires at least one branch, so the analyzer never sees an
// empty branch list.
func (p *Parser) parseCase() ast.Expression {
	caseExpr := &ast.CaseExpression{Token: p.curToken}
	p.skipNewlinesBeforeBar()
	for p.peekIs(token.BAR) {
		p.nextToken() // '|'
		branch := &ast.GuardedBranch{Token: p.curToken}
		p.nextToken()
		branch.Guard = p.parseExpression(LOWEST)
		if branch.Guard == nil {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		branch.Body = p.parseExpression(LOWEST)
		if branch.Body == nil {
			return nil
		}
		caseExpr.Branches = append(caseExpr.Branches, branch)
		p.skipNewlinesBeforeBar()
	}
	if len(caseExpr.Branches) == 0 {
		p.errorf(p.curToken, "case needs at least one branch")
		return nil
	}
	return caseExpr
}

// parseMatch parses `match scrutinee | pattern -> body ...`. Patterns
// reuse the expression grammar.
func (p *Parser) parseMatch() ast.Expression {
	matchExpr := &ast.MatchExpression{Token: p.curToken}
	p.nextToken()
	matchExpr.Scrutinee = p.parseExpression(LOWEST)
	if matchExpr.Scrutinee == nil {
		return nil
	}
	p.skipNewlinesBeforeBar()
	for p.peekIs(token.BAR) {
		p.nextToken() // '|'
		branch := &ast.MatchBranch{Token: p.curToken}
		p.nextToken()
		branch.Pattern = p.parseExpression(LOWEST)
		if branch.Pattern == nil {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		branch.Body = p.parseExpression(LOWEST)
		if branch.Body == nil {
			return nil
		}
		matchExpr.Branches = append(matchExpr.Branches, branch)
		p.skipNewlinesBeforeBar()
	}
	if len(matchExpr.Branches) == 0 {
		p.errorf(p.curToken, "match needs at least one branch")
		return nil
	}
	return matchExpr
}
