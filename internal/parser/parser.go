package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

// Operator precedence levels (higher binds tighter).
const (
	LOWEST = iota
	OR     // ||
	AND    // &&
	EQUALS // == !=
	COMPARE // < > <= >=
	CONS    // : ++ (cons is right-associative)
	BITWISE // .&. .|. .^.
	SUM     // + -
	PRODUCT // * /
	CALL    // juxtaposition application
)

var precedences = map[token.TokenType]int{
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NOT_EQ:  EQUALS,
	token.LT:      COMPARE,
	token.GT:      COMPARE,
	token.LT_EQ:   COMPARE,
	token.GT_EQ:   COMPARE,
	token.COLON:   CONS,
	token.CONCAT:  CONS,
	token.BIT_AND: BITWISE,
	token.BIT_OR:  BITWISE,
	token.BIT_XOR: BITWISE,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

// rightAssoc marks the right-associative infix operators.
var rightAssoc = map[token.TokenType]bool{
	token.COLON: true,
}

type prefixParseFn func() ast.Expression

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.DiagnosticError

	prefixParseFns map[token.TokenType]prefixParseFn
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.INT:        p.parseIntegerLiteral,
		token.FLOAT:      p.parseFloatLiteral,
		token.CHAR:       p.parseCharLiteral,
		token.STRING:     p.parseStringLiteral,
		token.TRUE:       p.parseBooleanLiteral,
		token.FALSE:      p.parseBooleanLiteral,
		token.IDENT:      p.parseIdentifier,
		token.TYPE_IDENT: p.parseIdentifier,
		token.UNDERSCORE: p.parseWildcard,
		token.LAMBDA:     p.parseLambda,
		token.LPAREN:     p.parseGroupOrTuple,
		token.LBRACKET:   p.parseListLiteral,
		token.LET:        p.parseLet,
		token.CASE:       p.parseCase,
		token.MATCH:      p.parseMatch,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token has the wanted type and records a
// parse error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken, "expected %s, got %q", t, p.peekToken.Lexeme)
	return false
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.CodeParse, tok, format, args...))
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError { return p.errors }

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// skipNewlinesBeforeBar consumes newline tokens only when the next
// significant token is a `|`, so that branch and constructor alternatives
// may continue on the following line.
func (p *Parser) skipNewlinesBeforeBar() {
	if !p.peekIs(token.NEWLINE) {
		return
	}
	// Look ahead past the newline run.
	i := p.pos - 1 // index of peekToken in p.tokens
	for i < len(p.tokens) && p.tokens[i].Type == token.NEWLINE {
		i++
	}
	if i < len(p.tokens) && p.tokens[i].Type == token.BAR {
		for p.peekIs(token.NEWLINE) {
			p.nextToken()
		}
	}
}

// ParseProgram parses a whole source file. Parsing stops at the first
// error; downstream stages assume a structurally valid tree.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		decl := p.parseDeclaration()
		if decl == nil || len(p.errors) > 0 {
			return program
		}
		program.Declarations = append(program.Declarations, decl)
		p.nextToken()
	}
	return program
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch {
	case p.curIs(token.TYPE):
		return p.parseTypeDeclaration()
	case p.curIs(token.IDENT) && p.peekIs(token.ASSIGN):
		return p.parseVarDeclaration()
	default:
		p.errorf(p.curToken, "expected a declaration, got %q", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) parseVarDeclaration() *ast.VarDeclaration {
	decl := &ast.VarDeclaration{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // '='
	p.nextToken()
	// The bound expression may start on the following line.
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
	decl.Value = p.parseExpression(LOWEST)
	if decl.Value == nil {
		return nil
	}
	return decl
}
