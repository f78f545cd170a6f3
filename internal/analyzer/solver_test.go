package analyzer

import (
	"testing"

	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

func newTestContext() *InferenceContext {
	return NewInferenceContext(NewRegistry())
}

func TestSelfUnificationIsTrivial(t *testing.T) {
	types := []typesystem.Type{
		typesystem.IntType,
		typesystem.TVar{Name: "a"},
		typesystem.TFunc{Param: typesystem.IntType, Return: typesystem.TList{Element: typesystem.CharType}},
		typesystem.TTuple{Elements: []typesystem.Type{typesystem.BoolType, typesystem.FloatType}},
		typesystem.TUnique{Inner: typesystem.FileType, Valid: true},
	}

	for _, ty := range types {
		ctx := newTestContext()
		ctx.Defer(ty, ty, token.Token{})
		s, err := ctx.Solve()
		if err != nil {
			t.Errorf("unifying %s with itself: %v", ty, err)
			continue
		}
		if len(s) != 0 {
			t.Errorf("unifying %s with itself produced subst %v, want empty", ty, s)
		}
	}
}

func TestSolverSubstitutionIsIdempotent(t *testing.T) {
	ctx := newTestContext()
	a := typesystem.TVar{Name: "a"}
	b := typesystem.TVar{Name: "b"}
	ctx.Defer(a, typesystem.IntType, token.Token{})
	ctx.Defer(b, typesystem.TList{Element: a}, token.Token{})

	s, err := ctx.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	probe := typesystem.TTuple{Elements: []typesystem.Type{a, b}}
	once := probe.Apply(s)
	twice := once.Apply(s)
	if !once.Equal(twice) {
		t.Errorf("applying the solver substitution twice changed the result: %s vs %s", once, twice)
	}
	want := typesystem.TTuple{Elements: []typesystem.Type{
		typesystem.IntType,
		typesystem.TList{Element: typesystem.IntType},
	}}
	if !once.Equal(want) {
		t.Errorf("got %s, want %s", once, want)
	}
}

func TestVarVarUnionMergesConstraintSets(t *testing.T) {
	ctx := newTestContext()
	a := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
	b := typesystem.TVar{Name: "b", Classes: typesystem.NewClassSet(typesystem.ClassEq)}
	ctx.Defer(a, b, token.Token{})

	s, err := ctx.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	merged, ok := s["a"].(typesystem.TVar)
	if !ok {
		t.Fatalf("expected a to map to a variable, got %v", s["a"])
	}
	if merged.Name != "b" {
		t.Errorf("expected a to be renamed to b, got %s", merged.Name)
	}
	if !merged.Classes.Has(typesystem.ClassNum) || !merged.Classes.Has(typesystem.ClassEq) {
		t.Errorf("expected merged constraint set, got %s", merged.Classes)
	}
}

func TestVarVarCanonicalizesBothNames(t *testing.T) {
	ctx := newTestContext()
	a := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
	b := typesystem.TVar{Name: "b"}
	ctx.Defer(a, b, token.Token{})

	s, err := ctx.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for _, name := range []string{"a", "b"} {
		merged, ok := s[name].(typesystem.TVar)
		if !ok {
			t.Fatalf("expected %s to map to the surviving variable, got %v", name, s[name])
		}
		if merged.Name != "b" || !merged.Classes.Has(typesystem.ClassNum) {
			t.Errorf("%s maps to %s, want b carrying Num", name, merged)
		}
	}
}

// A class obligation picked up through a var/var unification must still gate
// the eventual concrete binding, whichever side the concrete type reaches
// first.
func TestClassObligationSurvivesVarVarStep(t *testing.T) {
	orders := []struct {
		name string
		load func(ctx *InferenceContext, a, b typesystem.TVar)
	}{
		{"var pair first", func(ctx *InferenceContext, a, b typesystem.TVar) {
			ctx.Defer(a, b, token.Token{})
			ctx.Defer(b, typesystem.BoolType, token.Token{})
		}},
		{"concrete first", func(ctx *InferenceContext, a, b typesystem.TVar) {
			ctx.Defer(b, typesystem.BoolType, token.Token{})
			ctx.Defer(a, b, token.Token{})
		}},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			a := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
			b := typesystem.TVar{Name: "b"}
			tt.load(ctx, a, b)

			_, err := ctx.Solve()
			if err == nil {
				t.Fatal("expected a class mismatch, got success")
			}
			if err.Code != diagnostics.CodeClassMismatch {
				t.Errorf("expected %s, got %s", diagnostics.CodeClassMismatch, err.Code)
			}
		})
	}
}

func TestSameNameVarsMergeClasses(t *testing.T) {
	ctx := newTestContext()
	withNum := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
	bare := typesystem.TVar{Name: "a"}
	ctx.Defer(withNum, bare, token.Token{})
	ctx.Defer(bare, typesystem.BoolType, token.Token{})

	_, err := ctx.Solve()
	if err == nil {
		t.Fatal("expected a class mismatch, got success")
	}
	if err.Code != diagnostics.CodeClassMismatch {
		t.Errorf("expected %s, got %s", diagnostics.CodeClassMismatch, err.Code)
	}
}

func TestVarConcreteGatedOnClasses(t *testing.T) {
	ctx := newTestContext()
	a := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
	ctx.Defer(a, typesystem.BoolType, token.Token{})

	_, err := ctx.Solve()
	if err == nil {
		t.Fatal("expected a class mismatch, got success")
	}
	if err.Code != diagnostics.CodeClassMismatch {
		t.Errorf("expected %s, got %s", diagnostics.CodeClassMismatch, err.Code)
	}
}

// A spent unique type never unifies with a live occurrence of the same
// inner type.
func TestSpentUniqueFailsAgainstLive(t *testing.T) {
	ctx := newTestContext()
	live := typesystem.TUnique{Inner: typesystem.FileType, Valid: true}
	spent := typesystem.TUnique{Inner: typesystem.FileType, Valid: false}
	ctx.Defer(live, spent, token.Token{})

	_, err := ctx.Solve()
	if err == nil {
		t.Fatal("expected a linear violation, got success")
	}
	if err.Code != diagnostics.CodeLinearViolation {
		t.Errorf("expected %s, got %s", diagnostics.CodeLinearViolation, err.Code)
	}
}

func TestBothSpentUniqueDecomposes(t *testing.T) {
	ctx := newTestContext()
	spent := typesystem.TUnique{Inner: typesystem.FileType, Valid: false}
	ctx.Defer(spent, spent, token.Token{})

	if _, err := ctx.Solve(); err != nil {
		t.Errorf("two spent uniques should unify on the inner type, got %v", err)
	}
}

func TestStructuralDecompositionMismatch(t *testing.T) {
	tests := []struct {
		name        string
		left, right typesystem.Type
	}{
		{"primitive", typesystem.IntType, typesystem.BoolType},
		{"tuple arity", typesystem.TTuple{Elements: []typesystem.Type{typesystem.IntType}},
			typesystem.TTuple{Elements: []typesystem.Type{typesystem.IntType, typesystem.IntType}}},
		{"func vs list", typesystem.TFunc{Param: typesystem.IntType, Return: typesystem.IntType},
			typesystem.TList{Element: typesystem.IntType}},
		{"unique vs bare", typesystem.TUnique{Inner: typesystem.FileType, Valid: true}, typesystem.FileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			ctx.Defer(tt.left, tt.right, token.Token{})
			_, err := ctx.Solve()
			if err == nil {
				t.Fatal("expected a type mismatch, got success")
			}
			if err.Code != diagnostics.CodeTypeMismatch {
				t.Errorf("expected %s, got %s", diagnostics.CodeTypeMismatch, err.Code)
			}
		})
	}
}

func TestAlgebraicDecompositionRequiresRegistration(t *testing.T) {
	ctx := newTestContext()
	left := typesystem.TData{Name: "Ghost", Args: []typesystem.Type{typesystem.IntType}}
	ctx.Defer(left, left, token.Token{})

	_, err := ctx.Solve()
	if err == nil {
		t.Fatal("expected a mismatch for an unregistered algebraic type")
	}
	if err.Code != diagnostics.CodeTypeMismatch {
		t.Errorf("expected %s, got %s", diagnostics.CodeTypeMismatch, err.Code)
	}
}
