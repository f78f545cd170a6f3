package diagnostics

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/token"
)

func TestErrorIncludesPosition(t *testing.T) {
	err := NewError(CodeTypeMismatch, token.Token{Line: 3, Column: 7}, "type mismatch: expected %s, got %s", "Int", "Bool")
	err.File = "main.ql"
	want := "main.ql:3:7: error: type mismatch: expected Int, got Bool"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorWithoutFile(t *testing.T) {
	err := NewError(CodeUnboundVariable, token.Token{Line: 1, Column: 1}, "unbound variable: x")
	if got := err.Error(); got != "1:1: error: unbound variable: x" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormatCaretAlignment(t *testing.T) {
	source := "x = 1\ny = nope + 1\n"
	err := NewError(CodeUnboundVariable, token.Token{Line: 2, Column: 5}, "unbound variable: nope")
	err.File = "main.ql"

	got := err.Format(source)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Format produced %d lines: %q", len(lines), got)
	}
	if lines[1] != "y = nope + 1" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "    ^" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestFormatPreservesTabs(t *testing.T) {
	source := "\t\tnope"
	err := NewError(CodeUnboundVariable, token.Token{Line: 1, Column: 3}, "unbound variable: nope")

	got := err.Format(source)
	lines := strings.Split(got, "\n")
	if lines[len(lines)-1] != "\t\t^" {
		t.Errorf("caret line = %q", lines[len(lines)-1])
	}
}

func TestFormatOutOfRangeLine(t *testing.T) {
	err := NewError(CodeRuntime, token.Token{Line: 99, Column: 1}, "boom")
	got := err.Format("only one line")
	if strings.Contains(got, "in:") {
		t.Errorf("out-of-range line should fall back to the bare error, got %q", got)
	}
}
