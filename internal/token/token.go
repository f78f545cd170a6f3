package token

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT      TokenType = "IDENT"      // lowercase: variables, type parameters
	TYPE_IDENT TokenType = "TYPE_IDENT" // uppercase: type and constructor names
	INT        TokenType = "INT"
	FLOAT      TokenType = "FLOAT"
	CHAR       TokenType = "CHAR"
	STRING     TokenType = "STRING" // sugar for a Char list

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	GT       TokenType = ">"
	LT_EQ    TokenType = "<="
	GT_EQ    TokenType = ">="
	AND      TokenType = "&&"
	OR       TokenType = "||"
	BIT_AND  TokenType = ".&."
	BIT_OR   TokenType = ".|."
	BIT_XOR  TokenType = ".^."
	CONCAT   TokenType = "++"
	COLON    TokenType = ":"
	ARROW    TokenType = "->"
	LAMBDA   TokenType = "\\"
	BAR      TokenType = "|"
	BANG     TokenType = "!" // unique type marker

	// Delimiters
	COMMA      TokenType = ","
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	LBRACKET   TokenType = "["
	RBRACKET   TokenType = "]"
	UNDERSCORE TokenType = "_"

	// Keywords
	TYPE  TokenType = "TYPE"
	LET   TokenType = "LET"
	IN    TokenType = "IN"
	CASE  TokenType = "CASE"
	MATCH TokenType = "MATCH"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
)

// Token is a single lexeme with its source position.
// Line and Column are 1-based; Offset is the byte offset into the source.
type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal string // interpreted value (e.g. unescaped char)
	Line    int
	Column  int
	Offset  int
}

var keywords = map[string]TokenType{
	"type":  TYPE,
	"let":   LET,
	"in":    IN,
	"case":  CASE,
	"match": MATCH,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
