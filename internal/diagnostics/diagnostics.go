package diagnostics

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// Diagnostic codes, grouped by the stage that emits them.
const (
	// Lexer/parser
	CodeLex   = "P001"
	CodeParse = "P002"

	// Declaration phase
	CodeTypeRedefined        = "T001"
	CodeConstructorRedefined = "T002"
	CodeVariableRedefined    = "T003"
	CodeUndefinedType        = "T004"
	CodeParamMisuse          = "T005"
	CodeNonAlgebraicApplied  = "T006"

	// Inference
	CodeUnboundVariable      = "T010"
	CodeUndefinedConstructor = "T011"
	CodeCtorPatternMisuse    = "T012"
	CodeTypeMismatch         = "T020"
	CodeClassMismatch        = "T021"
	CodePatternMismatch      = "T022"
	CodeLengthMismatch       = "T023"
	CodeLinearViolation      = "T024"

	// Runtime
	CodeRuntime = "E001"
)

// DiagnosticError is a positioned error produced by any pipeline stage.
type DiagnosticError struct {
	File    string
	Token   token.Token
	Code    string
	Message string
}

func NewError(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Token:   tok,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error: %s", e.File, e.Token.Line, e.Token.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: error: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Format renders the full diagnostic against the program source:
//
//	path:line:column: error: message in:
//	<source line>
//	<caret indicator>
//
// Tabs in the source line are preserved in the indicator so the caret
// stays aligned in terminals.
func (e *DiagnosticError) Format(source string) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	line := sourceLine(source, e.Token.Line)
	if line == "" {
		return sb.String()
	}

	sb.WriteString(" in:\n")
	sb.WriteString(line)
	sb.WriteString("\n")
	col := e.Token.Column
	if col < 1 {
		col = 1
	}
	for i, r := range line {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("^")
	return sb.String()
}

func sourceLine(source string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
