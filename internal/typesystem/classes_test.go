package typesystem

import "testing"

func TestClassMembership(t *testing.T) {
	tests := []struct {
		name  string
		class TypeClass
		typ   Type
		want  bool
	}{
		{"Num Int", ClassNum, IntType, true},
		{"Num Float", ClassNum, FloatType, true},
		{"Num Char", ClassNum, CharType, true},
		{"Num Bool", ClassNum, BoolType, false},
		{"Num unique Int", ClassNum, TUnique{Inner: IntType, Valid: true}, true},
		{"Num unique Bool", ClassNum, TUnique{Inner: BoolType, Valid: true}, false},

		{"Eq primitive", ClassEq, FileType, true},
		{"Eq tuple of Eq", ClassEq, TTuple{Elements: []Type{IntType, BoolType}}, true},
		{"Eq list of Eq", ClassEq, TList{Element: CharType}, true},
		{"Eq algebraic of Eq", ClassEq, TData{Name: "Pair", Args: []Type{IntType, IntType}}, true},
		{"Eq function", ClassEq, TFunc{Param: IntType, Return: IntType}, false},
		{"Eq tuple containing function", ClassEq, TTuple{Elements: []Type{IntType, TFunc{Param: IntType, Return: IntType}}}, false},

		{"Ord Int", ClassOrd, IntType, true},
		{"Ord Float", ClassOrd, FloatType, true},
		{"Ord Char", ClassOrd, CharType, true},
		{"Ord Bool", ClassOrd, BoolType, false},
		{"Ord list of Ord", ClassOrd, TList{Element: IntType}, true},
		{"Ord unique Char", ClassOrd, TUnique{Inner: CharType, Valid: true}, true},
		{"Ord tuple", ClassOrd, TTuple{Elements: []Type{IntType, IntType}}, false},

		{"Show primitive", ClassShow, SystemType, true},
		{"Show tuple of Show", ClassShow, TTuple{Elements: []Type{IntType, CharType}}, true},
		{"Show algebraic of Show", ClassShow, TData{Name: "Box", Args: []Type{IntType}}, true},
		{"Show function", ClassShow, TFunc{Param: IntType, Return: IntType}, false},

		{"Bi Int", ClassBi, IntType, true},
		{"Bi Char", ClassBi, CharType, true},
		{"Bi Float", ClassBi, FloatType, false},
		{"Bi unique Char", ClassBi, TUnique{Inner: CharType, Valid: true}, true},
	}

	for _, tt := range tests {
		if got := tt.class.Accepts(tt.typ); got != tt.want {
			t.Errorf("%s: Accepts(%s) = %v, want %v", tt.name, tt.typ, got, tt.want)
		}
	}
}

// Known quirk, preserved on purpose: the Show predicate decides list types
// through Eq instead of recursing through Show. A list of functions is
// rejected either way, but a list of tuples-of-functions shows the
// difference only through Eq's rules. Do not "fix" this without revisiting
// the documented behavior.
func TestShowListDelegatesToEq(t *testing.T) {
	fn := TFunc{Param: IntType, Return: IntType}
	if ClassShow.Accepts(TList{Element: fn}) {
		t.Errorf("list of functions must not be Show (via Eq)")
	}
	// Eq and Show agree on this input because Show's list case asks Eq.
	if ClassShow.Accepts(TList{Element: IntType}) != ClassEq.Accepts(TList{Element: IntType}) {
		t.Errorf("Show on lists must follow Eq")
	}
}

func TestVarMembershipByConstraintSet(t *testing.T) {
	v := TVar{Name: "$t1", Classes: NewClassSet(ClassNum, ClassShow)}
	if !ClassNum.Accepts(v) || !ClassShow.Accepts(v) {
		t.Errorf("variable must satisfy its attached classes")
	}
	if ClassOrd.Accepts(v) {
		t.Errorf("variable must not satisfy classes outside its set")
	}
}

func TestClassSetOps(t *testing.T) {
	s1 := NewClassSet(ClassNum)
	s2 := NewClassSet(ClassEq, ClassNum)

	union := s1.Union(s2)
	if !union.Has(ClassNum) || !union.Has(ClassEq) || len(union) != 2 {
		t.Errorf("union = %s, want {Eq, Num}", union)
	}

	if cls, ok := NewClassSet(ClassBi).SatisfiedBy(FloatType); ok || cls != ClassBi {
		t.Errorf("SatisfiedBy(Float) = %s/%v, want Bi/false", cls, ok)
	}
	if _, ok := NewClassSet(ClassNum, ClassOrd).SatisfiedBy(IntType); !ok {
		t.Errorf("Int must satisfy {Num, Ord}")
	}
}
