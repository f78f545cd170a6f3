package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := parser.New(toks)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse error: %v", p.Errors()[0])
	}
	return prog
}

func run(t *testing.T, src string) (Object, string) {
	t.Helper()
	prog := parseProgram(t, src)
	var out bytes.Buffer
	e := New()
	e.Out = &out
	e.In = strings.NewReader("")
	result := e.Run(prog)
	return result, out.String()
}

func runValue(t *testing.T, src string) Object {
	t.Helper()
	result, _ := run(t, src)
	if isError(result) {
		t.Fatalf("unexpected runtime error: %s", result.Inspect())
	}
	return result
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic precedence", "main = 1 + 2 * 3", "7"},
		{"integer division", "main = 7 / 2", "3"},
		{"float arithmetic", "main = 1.5 + 2.25", "3.75"},
		{"float keeps decimal point", "main = 2.5 * 2.0", "5.0"},
		{"char arithmetic", "main = 'a' + 'b' - 'a'", "'b'"},
		{"comparison", "main = (1 < 2, 2 <= 2, 3 > 4)", "(True, True, False)"},
		{"equality on tuples", "main = (1, 'a') == (1, 'a')", "True"},
		{"inequality", "main = [1, 2] != [1, 3]", "True"},
		{"list ordering", "main = [1, 2] < [1, 3]", "True"},
		{"bitwise and", "main = 12 .&. 10", "8"},
		{"bitwise or", "main = 12 .|. 10", "14"},
		{"bitwise xor on chars", "main = 'a' .^. ' '", "'A'"},
		{"bool operators", "main = true && (false || true)", "True"},
		{"cons", "main = 1 : 2 : []", "[1, 2]"},
		{"append", "main = [1] ++ [2, 3]", "[1, 2, 3]"},
		{"string literal is char list", "main = \"ab\" ++ ['c']", "\"abc\""},
		{"lambda application", "main = (\\x -> x + 1) 41", "42"},
		{"curried application", "main = (\\x -> \\y -> x * y) 6 7", "42"},
		{"let binding", "main = let x = 5 in x + x", "10"},
		{"let shadows", "main = let x = 1 in let x = 2 in x", "2"},
		{"closure captures", "main = let add = \\x -> \\y -> x + y in let inc = add 1 in inc 41", "42"},
		{"case picks first true guard", "main = let x = 5 in case | x < 0 -> 0 | x < 10 -> 1 | true -> 2", "1"},
		{"show integer", "main = show 42", "\"42\""},
		{"show boolean", "main = show false", "\"False\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runValue(t, tt.src)
			if got.Inspect() != tt.want {
				t.Errorf("Inspect() = %s, want %s", got.Inspect(), tt.want)
			}
		})
	}
}

func TestEvalDataAndMatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"nullary constructor match",
			"type Color = Red | Green | Blue\nmain = match Green | Red -> 1 | Green -> 2 | Blue -> 3",
			"2",
		},
		{
			"unary constructor binds",
			"type Box = Empty | Full Int\nmain = match Full 3 | Full x -> x + 1 | Empty -> 0",
			"4",
		},
		{
			"wildcard",
			"type Color = Red | Green | Blue\nmain = match Blue | Red -> 1 | _ -> 0",
			"0",
		},
		{
			"nested constructor pattern",
			"type Maybe a = None | Some a\nmain = match Some (Some 5) | Some (Some x) -> x | _ -> 0",
			"5",
		},
		{
			"cons pattern",
			"main = match [1, 2, 3] | h : t -> (h, t) | _ -> (0, [])",
			"(1, [2, 3])",
		},
		{
			"empty list pattern",
			"main = match [] | h : t -> 1 | [] -> 2",
			"2",
		},
		{
			"tuple pattern",
			"main = match (1, 'a') | (x, y) -> y : show x | _ -> \"\"",
			"\"a1\"",
		},
		{
			"literal pattern falls through",
			"main = match 3 | 1 -> 'a' | 2 -> 'b' | _ -> 'z'",
			"'z'",
		},
		{
			"constructor value renders",
			"type Maybe a = None | Some a\nmain = Some (Some 1)",
			"Some (Some 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runValue(t, tt.src)
			if got.Inspect() != tt.want {
				t.Errorf("Inspect() = %s, want %s", got.Inspect(), tt.want)
			}
		})
	}
}

func TestEvalTopLevelRecursion(t *testing.T) {
	src := `
len = \l -> match l
	| [] -> 0
	| h : t -> 1 + len t
main = len [10, 20, 30]
`
	got := runValue(t, src)
	if got.Inspect() != "3" {
		t.Errorf("len = %s, want 3", got.Inspect())
	}
}

func TestEvalMutualRecursion(t *testing.T) {
	src := `
isEven = \n -> case | n == 0 -> true | true -> isOdd (n - 1)
isOdd = \n -> case | n == 0 -> false | true -> isEven (n - 1)
main = (isEven 10, isOdd 10)
`
	got := runValue(t, src)
	if got.Inspect() != "(True, False)" {
		t.Errorf("got %s, want (True, False)", got.Inspect())
	}
}

func TestEvalForwardReference(t *testing.T) {
	src := "main = double 21\ndouble = \\x -> x * 2"
	got := runValue(t, src)
	if got.Inspect() != "42" {
		t.Errorf("got %s, want 42", got.Inspect())
	}
}

func TestPrintWritesToOut(t *testing.T) {
	result, out := run(t, `main = print "hello"`)
	if isError(result) {
		t.Fatalf("unexpected error: %s", result.Inspect())
	}
	if out != "hello\n" {
		t.Errorf("output = %q, want %q", out, "hello\n")
	}
	if result != TRUE {
		t.Errorf("print should evaluate to True, got %s", result.Inspect())
	}
}

func TestPrintNonString(t *testing.T) {
	_, out := run(t, "main = print (1, [2, 3])")
	if out != "(1, [2, 3])\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"division by zero", "main = 1 / 0", "division by zero"},
		{"no main", "x = 1", "program has no main binding"},
		{"unbound variable", "main = nope", "unbound variable: nope"},
		{"non-exhaustive match", "main = match 1 | 2 -> 0", "no pattern matched 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := run(t, tt.src)
			err, ok := result.(*Error)
			if !ok {
				t.Fatalf("expected runtime error, got %s", result.Inspect())
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("message = %q, want it to contain %q", err.Message, tt.want)
			}
		})
	}
}

func TestThunksRerunPerReference(t *testing.T) {
	// Top-level bindings behave like the analyzer's lazy schemes: each
	// reference re-evaluates the body.
	src := `
greet = print "hi"
main = let a = greet in let b = greet in a && b
`
	result, out := run(t, src)
	if isError(result) {
		t.Fatalf("unexpected error: %s", result.Inspect())
	}
	if out != "hi\nhi\n" {
		t.Errorf("output = %q, want two lines", out)
	}
}
