package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/quill-lang/quill/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() token.Token {
	l.skipSpacesAndComments()

	line, column, offset := l.line, l.column, l.position

	var tok token.Token
	switch l.ch {
	case '\n':
		tok = l.newToken(token.NEWLINE, "\\n", line, column, offset)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.EQ, "==", line, column, offset)
		} else {
			tok = l.newToken(token.ASSIGN, "=", line, column, offset)
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = l.newToken(token.CONCAT, "++", line, column, offset)
		} else {
			tok = l.newToken(token.PLUS, "+", line, column, offset)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.newToken(token.ARROW, "->", line, column, offset)
		} else {
			tok = l.newToken(token.MINUS, "-", line, column, offset)
		}
	case '*':
		tok = l.newToken(token.ASTERISK, "*", line, column, offset)
	case '/':
		tok = l.newToken(token.SLASH, "/", line, column, offset)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LT_EQ, "<=", line, column, offset)
		} else {
			tok = l.newToken(token.LT, "<", line, column, offset)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GT_EQ, ">=", line, column, offset)
		} else {
			tok = l.newToken(token.GT, ">", line, column, offset)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "!=", line, column, offset)
		} else {
			tok = l.newToken(token.BANG, "!", line, column, offset)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.newToken(token.AND, "&&", line, column, offset)
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch), line, column, offset)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.newToken(token.OR, "||", line, column, offset)
		} else {
			tok = l.newToken(token.BAR, "|", line, column, offset)
		}
	case '.':
		// Bitwise operators are spelled .&. .|. .^. so that | stays free
		// for constructor and branch alternatives.
		return l.readBitwiseOp(line, column, offset)
	case ':':
		tok = l.newToken(token.COLON, ":", line, column, offset)
	case '\\':
		tok = l.newToken(token.LAMBDA, "\\", line, column, offset)
	case ',':
		tok = l.newToken(token.COMMA, ",", line, column, offset)
	case '(':
		tok = l.newToken(token.LPAREN, "(", line, column, offset)
	case ')':
		tok = l.newToken(token.RPAREN, ")", line, column, offset)
	case '[':
		tok = l.newToken(token.LBRACKET, "[", line, column, offset)
	case ']':
		tok = l.newToken(token.RBRACKET, "]", line, column, offset)
	case '\'':
		return l.readCharLiteral(line, column, offset)
	case '"':
		return l.readStringLiteral(line, column, offset)
	case 0:
		tok = token.Token{Type: token.EOF, Line: line, Column: column, Offset: offset}
	default:
		if l.ch == '_' && !isIdentPart(l.peekChar()) {
			tok = l.newToken(token.UNDERSCORE, "_", line, column, offset)
		} else if isIdentStart(l.ch) {
			return l.readIdentifier(line, column, offset)
		} else if unicode.IsDigit(l.ch) {
			return l.readNumber(line, column, offset)
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch), line, column, offset)
		}
	}

	l.readChar()
	return tok
}

// Tokenize consumes the entire input, including the trailing EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) newToken(t token.TokenType, lexeme string, line, column, offset int) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column, Offset: offset}
}

func (l *Lexer) skipSpacesAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		// -- line comment (but not the -> arrow or minus)
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

func (l *Lexer) readIdentifier(line, column, offset int) token.Token {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]

	var tt token.TokenType
	first, _ := utf8.DecodeRuneInString(lexeme)
	if unicode.IsUpper(first) {
		tt = token.TYPE_IDENT
	} else {
		tt = token.LookupIdent(lexeme)
	}
	return token.Token{Type: tt, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column, Offset: offset}
}

func (l *Lexer) readNumber(line, column, offset int) token.Token {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	tt := token.INT
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		tt = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: tt, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column, Offset: offset}
}

func (l *Lexer) readBitwiseOp(line, column, offset int) token.Token {
	// l.ch == '.'; expect one of & | ^ followed by '.'
	op := l.peekChar()
	var tt token.TokenType
	switch op {
	case '&':
		tt = token.BIT_AND
	case '|':
		tt = token.BIT_OR
	case '^':
		tt = token.BIT_XOR
	default:
		tok := l.newToken(token.ILLEGAL, ".", line, column, offset)
		l.readChar()
		return tok
	}
	l.readChar() // consume operator char
	if l.peekChar() != '.' {
		tok := l.newToken(token.ILLEGAL, "."+string(op), line, column, offset)
		l.readChar()
		return tok
	}
	l.readChar() // consume closing '.'
	l.readChar()
	lexeme := "." + string(op) + "."
	return token.Token{Type: tt, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column, Offset: offset}
}

func (l *Lexer) readCharLiteral(line, column, offset int) token.Token {
	l.readChar() // consume opening quote
	var value rune
	switch l.ch {
	case 0, '\n':
		return token.Token{Type: token.ILLEGAL, Lexeme: "'", Line: line, Column: column, Offset: offset}
	case '\\':
		l.readChar()
		value = unescape(l.ch)
	default:
		value = l.ch
	}
	l.readChar()
	if l.ch != '\'' {
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[offset:l.position], Line: line, Column: column, Offset: offset}
	}
	l.readChar() // consume closing quote
	lexeme := l.input[offset:l.position]
	return token.Token{Type: token.CHAR, Lexeme: lexeme, Literal: string(value), Line: line, Column: column, Offset: offset}
}

// readStringLiteral lexes a double-quoted string. Strings are sugar: the
// parser lowers them to Char lists.
func (l *Lexer) readStringLiteral(line, column, offset int) token.Token {
	l.readChar() // consume opening quote
	var sb []rune
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[offset:l.position], Line: line, Column: column, Offset: offset}
		}
		if l.ch == '\\' {
			l.readChar()
			sb = append(sb, unescape(l.ch))
		} else {
			sb = append(sb, l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	lexeme := l.input[offset:l.position]
	return token.Token{Type: token.STRING, Lexeme: lexeme, Literal: string(sb), Line: line, Column: column, Offset: offset}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || ch == '\'' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
