package parser

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input).Tokenize())
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors()[0])
	}
	return program
}

func TestVarDeclaration(t *testing.T) {
	program := parseProgram(t, "x = 1 + 2 * 3")
	if len(program.Declarations) != 1 {
		t.Fatalf("declarations = %d, want 1", len(program.Declarations))
	}
	decl, ok := program.Declarations[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("declaration is %T, want *ast.VarDeclaration", program.Declarations[0])
	}
	if got := decl.String(); got != "x = (1 + (2 * 3))" {
		t.Errorf("decl = %q", got)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x = 1 + 2 + 3", "x = ((1 + 2) + 3)"},
		{"x = a || b && c", "x = (a || (b && c))"},
		{"x = 1 < 2 == true", "x = ((1 < 2) == true)"},
		{"x = 1 : 2 : []", "x = (1 : (2 : []))"},
		{"x = 3 .&. 5 + 1", "x = (3 .&. (5 + 1))"},
		{"x = f y + 1", "x = ((f y) + 1)"},
		{"x = f (y + 1)", "x = (f (y + 1))"},
		{"x = f a b", "x = ((f a) b)"},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if got := program.Declarations[0].String(); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLambdaSugar(t *testing.T) {
	program := parseProgram(t, `f = \x y -> x`)
	want := `f = \x -> \y -> x`
	if got := program.Declarations[0].String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLetExpression(t *testing.T) {
	program := parseProgram(t, "r = let y = 2 in y + 1")
	decl := program.Declarations[0].(*ast.VarDeclaration)
	let, ok := decl.Value.(*ast.LetExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.LetExpression", decl.Value)
	}
	if let.Name != "y" {
		t.Errorf("let name = %q, want y", let.Name)
	}
}

func TestCaseExpression(t *testing.T) {
	program := parseProgram(t, `sign = \x -> case
	| x < 0 -> 0
	| true -> 1`)
	decl := program.Declarations[0].(*ast.VarDeclaration)
	lam := decl.Value.(*ast.LambdaExpression)
	caseExpr, ok := lam.Body.(*ast.CaseExpression)
	if !ok {
		t.Fatalf("body is %T, want *ast.CaseExpression", lam.Body)
	}
	if len(caseExpr.Branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(caseExpr.Branches))
	}
}

func TestMatchExpression(t *testing.T) {
	program := parseProgram(t, `depth = \t -> match t
	| Leaf -> 0
	| Node x -> x
	| (a, b) -> a
	| h : rest -> h
	| [x, y] -> x
	| _ -> 9`)
	decl := program.Declarations[0].(*ast.VarDeclaration)
	lam := decl.Value.(*ast.LambdaExpression)
	m, ok := lam.Body.(*ast.MatchExpression)
	if !ok {
		t.Fatalf("body is %T, want *ast.MatchExpression", lam.Body)
	}
	if len(m.Branches) != 6 {
		t.Fatalf("branches = %d, want 6", len(m.Branches))
	}
	if _, ok := m.Branches[1].Pattern.(*ast.CallExpression); !ok {
		t.Errorf("branch 1 pattern is %T, want constructor application", m.Branches[1].Pattern)
	}
	if _, ok := m.Branches[3].Pattern.(*ast.InfixExpression); !ok {
		t.Errorf("branch 3 pattern is %T, want cons decomposition", m.Branches[3].Pattern)
	}
	if _, ok := m.Branches[5].Pattern.(*ast.Wildcard); !ok {
		t.Errorf("branch 5 pattern is %T, want wildcard", m.Branches[5].Pattern)
	}
}

func TestTypeDeclaration(t *testing.T) {
	program := parseProgram(t, "type Tree a = Leaf | Node (Tree a)")
	decl, ok := program.Declarations[0].(*ast.TypeDeclaration)
	if !ok {
		t.Fatalf("declaration is %T, want *ast.TypeDeclaration", program.Declarations[0])
	}
	if decl.Name != "Tree" || len(decl.Params) != 1 || decl.Params[0] != "a" {
		t.Fatalf("decl = %s", decl.String())
	}
	if len(decl.Constructors) != 2 {
		t.Fatalf("constructors = %d, want 2", len(decl.Constructors))
	}
	if decl.Constructors[0].Arg != nil {
		t.Errorf("Leaf should be nullary")
	}
	app, ok := decl.Constructors[1].Arg.(*ast.TypeApp)
	if !ok {
		t.Fatalf("Node arg is %T, want *ast.TypeApp", decl.Constructors[1].Arg)
	}
	if app.Name != "Tree" || len(app.Args) != 1 {
		t.Errorf("Node arg = %s", app.String())
	}
}

func TestTypeDeclarationShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"type Color = Red | Green | Blue", "type Color = Red | Green | Blue"},
		{"type Box a = Box a", "type Box a = Box a"},
		{"type Handle = Open File!", "type Handle = Open File!"},
		{"type Pair = P (Int, Bool)", "type Pair = P (Int, Bool)"},
		{"type Ints = Wrap [Int]", "type Ints = Wrap [Int]"},
		{"type Fn = F (Int -> Bool)", "type Fn = F (Int -> Bool)"},
	}
	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if got := program.Declarations[0].String(); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMultilineTypeDeclaration(t *testing.T) {
	program := parseProgram(t, `type Shape =
	Circle Float
	| Square Float`)
	decl := program.Declarations[0].(*ast.TypeDeclaration)
	if len(decl.Constructors) != 2 {
		t.Fatalf("constructors = %d, want 2", len(decl.Constructors))
	}
}

func TestStringSugar(t *testing.T) {
	program := parseProgram(t, `s = "hi"`)
	decl := program.Declarations[0].(*ast.VarDeclaration)
	list, ok := decl.Value.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.ListLiteral", decl.Value)
	}
	if len(list.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(list.Elements))
	}
}

func TestParseErrorPosition(t *testing.T) {
	p := New(lexer.New("x = )").Tokenize())
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error")
	}
	if errs[0].Token.Line != 1 || errs[0].Token.Column != 5 {
		t.Errorf("error position = %d:%d, want 1:5", errs[0].Token.Line, errs[0].Token.Column)
	}
}
