package analyzer

import (
	"testing"

	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
)

func analyze(t *testing.T, src string) *diagnostics.DiagnosticError {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	p := parser.New(toks)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse error: %v", p.Errors()[0])
	}
	return New().Analyze(prog)
}

func TestWellTypedPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arithmetic", "main = 1 + 2 * 3"},
		{"lambda application", "main = (\\x -> x + 1) 41"},
		{"let binding", "main = let x = 5 in x + x"},
		{"comparison", "main = 1 < 2"},
		{"bitwise", "main = 3 .&. 5"},
		{"bool operators", "main = true && (1 == 1)"},
		{"cons", "main = 1 : 2 : []"},
		{"append", "main = [1] ++ [2, 3]"},
		{"tuple", "main = (1, true, 'c')"},
		{"show then print", "main = print (show 42)"},
		{"string is char list", "main = \"ab\" ++ ['c']"},
		{"nullary constructors", "type Color = Red | Green | Blue\nmain = match Red | Red -> 1 | _ -> 0"},
		{"unary constructor", "type Box = Empty | Full Int\nmain = match Full 3 | Full x -> x + 1 | Empty -> 0"},
		{"parametric constructor", "type Maybe a = None | Some a\nmain = match Some 3 | Some x -> x | None -> 0"},
		{"list decomposition", "main = match [1, 2] | h : t -> h | [] -> 0"},
		{"case guards", "main = case | 1 < 2 -> 10 | true -> 20"},
		{"self recursion", "fact = \\n -> case | n == 0 -> 1 | true -> n * fact (n - 1)\nmain = fact 5"},
		{"mutual recursion", "isEven = \\n -> case | n == 0 -> true | true -> isOdd (n - 1)\nisOdd = \\n -> case | n == 0 -> false | true -> isEven (n - 1)\nmain = isEven 4"},
		{"forward reference", "main = helper 1\nhelper = \\x -> x + 1"},
		{"nested match", "type Pair a b = P (a, b)\nmain = match P (1, true) | P (x, y) -> x"},
		{"single file use", "main = readLine (openFile \"data\")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := analyze(t, tt.src); err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}

func TestDiagnosticTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"type redefined", "type T = A\ntype T = B", diagnostics.CodeTypeRedefined},
		{"primitive redefined", "type Int = A", diagnostics.CodeTypeRedefined},
		{"constructor redefined", "type T = A\ntype U = A", diagnostics.CodeConstructorRedefined},
		{"variable redefined", "main = 1\nmain = 2", diagnostics.CodeVariableRedefined},
		{"undefined type", "type T = A Missing", diagnostics.CodeUndefinedType},
		{"type arity", "type M a = J\ntype U = K M", diagnostics.CodeUndefinedType},
		{"param misuse", "type T = A b", diagnostics.CodeParamMisuse},
		{"non-algebraic applied", "type T = A (Int b)", diagnostics.CodeNonAlgebraicApplied},
		{"unbound variable", "main = nope", diagnostics.CodeUnboundVariable},
		{"undefined constructor", "main = Nope", diagnostics.CodeUndefinedConstructor},
		{"undefined constructor pattern", "main = match 1 | Nope -> 0", diagnostics.CodeUndefinedConstructor},
		{"bare unary pattern", "type Box = Full Int\nmain = match Full 1 | Full -> 0", diagnostics.CodeCtorPatternMisuse},
		{"applied nullary pattern", "type Color = Red\nmain = match Red | Red 1 -> 0", diagnostics.CodeCtorPatternMisuse},
		{"type mismatch", "main = 1 + true", diagnostics.CodeTypeMismatch},
		{"branch mismatch", "main = case | true -> 1 | true -> false", diagnostics.CodeTypeMismatch},
		{"class mismatch", "main = true + false", diagnostics.CodeClassMismatch},
		{"bitwise needs Bi", "main = 1.5 .&. 2.5", diagnostics.CodeClassMismatch},
		{"pattern mismatch", "type Color = Red\nmain = match 1 | Red -> 0", diagnostics.CodePatternMismatch},
		{"length mismatch", "main = match (1, 2) | (a, b, c) -> 0", diagnostics.CodeLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analyze(t, tt.src)
			if err == nil {
				t.Fatalf("expected %s, got success", tt.code)
			}
			if err.Code != tt.code {
				t.Errorf("expected %s, got %s (%v)", tt.code, err.Code, err)
			}
		})
	}
}

// A lazily bound function is re-inferred at every reference, so one binding
// can be used at several unrelated types in the same program.
func TestPerReferenceReinference(t *testing.T) {
	src := "f = \\x -> x\nmain = (f 1, f true)"
	if err := analyze(t, src); err != nil {
		t.Fatalf("expected both uses to type independently, got %v", err)
	}
}

func TestLetReinference(t *testing.T) {
	src := "main = let f = \\x -> x in (f 1, f true)"
	if err := analyze(t, src); err != nil {
		t.Fatalf("expected both uses to type independently, got %v", err)
	}
}

// Reading a handle after it has been closed is a linear violation, not a
// plain type mismatch.
func TestLinearViolationAfterClose(t *testing.T) {
	src := "main = let h = openFile \"log\" in let x = closeFile h in readLine h"
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a linear violation, got success")
	}
	if err.Code != diagnostics.CodeLinearViolation {
		t.Fatalf("expected %s, got %s (%v)", diagnostics.CodeLinearViolation, err.Code, err)
	}
}

func TestStdinSpentBySecondUse(t *testing.T) {
	src := "a = readLine stdin\nb = readLine stdin"
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a linear violation, got success")
	}
	if err.Code != diagnostics.CodeLinearViolation {
		t.Fatalf("expected %s, got %s (%v)", diagnostics.CodeLinearViolation, err.Code, err)
	}
}

// Two type declarations referencing each other must both register; the
// lazy first pass resolves the names before constructor bodies exist.
func TestMutuallyRecursiveTypes(t *testing.T) {
	src := "type Forest = Leaf | Trees Tree\ntype Tree = Node Forest\nmain = 0"
	if err := analyze(t, src); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

// Matching T against `B x` recovers the constructor's declared argument
// type for x.
func TestConstructorPatternBindsArgumentType(t *testing.T) {
	src := "type T = A | B Int\nmain = match B 1 | B x -> x + 1 | A -> 0"
	if err := analyze(t, src); err != nil {
		t.Fatalf("expected x to infer as Int, got %v", err)
	}

	// Using x at a non-Int type must fail.
	bad := "type T = A | B Int\nmain = match B 1 | B x -> x && true | A -> false"
	err := analyze(t, bad)
	if err == nil {
		t.Fatal("expected a type mismatch, got success")
	}
}

// The Num obligation on the operator variable must survive the hop through
// the lambda parameter; the offending type only arrives at the application
// site.
func TestClassConstraintFlowsThroughApplication(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"direct application", "main = (\\x -> x + x) true"},
		{"through let", "main = let f = \\x -> x + x in f true"},
		{"through top level", "f = \\x -> x + x\nmain = f true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analyze(t, tt.src)
			if err == nil {
				t.Fatal("expected a class mismatch, got success")
			}
			if err.Code != diagnostics.CodeClassMismatch {
				t.Errorf("expected %s, got %s (%v)", diagnostics.CodeClassMismatch, err.Code, err)
			}
		})
	}
}

// Guards run top to bottom until one holds, so a unique resource consumed
// by an earlier guard is spent for the later ones.
func TestCaseGuardsThreadUniqueUses(t *testing.T) {
	src := "main = case | isTTY stdin -> 1 | isTTY stdin -> 2"
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a linear violation, got success")
	}
	if err.Code != diagnostics.CodeLinearViolation {
		t.Fatalf("expected %s, got %s (%v)", diagnostics.CodeLinearViolation, err.Code, err)
	}
}

// A guard's consumption is visible past the whole case expression.
func TestCaseGuardUseEscapes(t *testing.T) {
	src := "main = let x = case | isTTY stdin -> 1 | true -> 2 in isTTY stdin"
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a linear violation, got success")
	}
	if err.Code != diagnostics.CodeLinearViolation {
		t.Fatalf("expected %s, got %s (%v)", diagnostics.CodeLinearViolation, err.Code, err)
	}
}
