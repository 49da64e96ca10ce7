package types

import "testing"

func TestEqualsReflexiveSymmetricTransitive(t *testing.T) {
	a := &Array{Element: Int}
	b := &Array{Element: Int}
	c := &Array{Element: Int}

	if !Equals(a, a) {
		t.Fatalf("Equals not reflexive")
	}
	if Equals(a, b) != Equals(b, a) {
		t.Fatalf("Equals not symmetric")
	}
	if Equals(a, b) && Equals(b, c) && !Equals(a, c) {
		t.Fatalf("Equals not transitive")
	}
}

func TestEqualsNilIsAlwaysFalse(t *testing.T) {
	if Equals(nil, Int) {
		t.Fatalf("Equals(nil, x) must be false")
	}
	if Equals(Int, nil) {
		t.Fatalf("Equals(x, nil) must be false")
	}
	if Equals(nil, nil) {
		t.Fatalf("Equals(nil, nil) must be false, even though both sides are Go nil")
	}
}

func TestSizeTable(t *testing.T) {
	cases := []struct {
		t    Type
		want int
	}{
		{Int, 8}, {Long, 8}, {Double, 8}, {String, 8},
		{&Array{Element: Int}, 8}, {&Pointer{Pointee: Int}, 8},
		{Bool, 1}, {Char, 1}, {Byte, 1},
		{Void, 0},
	}
	for _, c := range cases {
		if got := c.t.Size(); got != c.want {
			t.Errorf("Size(%s) = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestCoercionLattice(t *testing.T) {
	must := []struct{ from, to Type }{
		{Int, Double}, {Byte, Int}, {Char, Int},
	}
	for _, m := range must {
		if !CoercibleTo(m.from, m.to) {
			t.Errorf("expected %s coercible to %s", m.from, m.to)
		}
	}
	mustNot := []struct{ from, to Type }{
		{Double, Int}, {Int, Byte}, {Int, Char}, {Bool, Int}, {String, Int}, {Int, String}, {Int, Bool},
		// Nothing beyond the three edges above: no int→long, no
		// int→float, no byte/char→long, and no int32 edges at all.
		{Int, Long}, {Int, Float}, {Byte, Long}, {Byte, Double}, {Char, Long}, {Char, Double},
		{Int32, Int}, {Int32, Long}, {Int32, Double},
	}
	for _, m := range mustNot {
		if CoercibleTo(m.from, m.to) {
			t.Errorf("expected %s NOT coercible to %s", m.from, m.to)
		}
	}
}

func TestNilCoercesToPointerAndArray(t *testing.T) {
	if !CoercibleTo(Nil, &Pointer{Pointee: Int}) {
		t.Fatalf("nil should coerce to pointer(int)")
	}
	if !CoercibleTo(Nil, &Array{Element: Int}) {
		t.Fatalf("nil should coerce to array(int)")
	}
	if CoercibleTo(Nil, Int) {
		t.Fatalf("nil should not coerce to a non-pointer, non-array primitive")
	}
}

func TestJoinArrayElementUniform(t *testing.T) {
	got := JoinArrayElement([]Type{Int, Int, Int})
	if !Equals(got, Int) {
		t.Fatalf("uniform int array literal should join to int, got %s", got)
	}
}

func TestJoinArrayElementMixedIntDoublePromotes(t *testing.T) {
	got := JoinArrayElement([]Type{Int, Double, Int})
	if !Equals(got, Double) {
		t.Fatalf("mixed int/double array literal should join to double, got %s", got)
	}
}

func TestJoinArrayElementIncompatibleFallsBackToAny(t *testing.T) {
	got := JoinArrayElement([]Type{Int, String, Bool})
	if !Equals(got, Any) {
		t.Fatalf("heterogeneous array literal should join to any, got %s", got)
	}
}

func TestResultOfArithmetic(t *testing.T) {
	if r, ok := ResultOfArithmetic(Int, Int); !ok || !Equals(r, Int) {
		t.Fatalf("int+int should be int, got %v ok=%v", r, ok)
	}
	if r, ok := ResultOfArithmetic(Int, Double); !ok || !Equals(r, Double) {
		t.Fatalf("int+double should be double, got %v ok=%v", r, ok)
	}
	if r, ok := ResultOfArithmetic(Long, Int); !ok || !Equals(r, Long) {
		t.Fatalf("long+int should be long, got %v ok=%v", r, ok)
	}
	if _, ok := ResultOfArithmetic(Bool, Int); ok {
		t.Fatalf("bool+int should not be a valid arithmetic pair")
	}
	if _, ok := ResultOfArithmetic(String, Int); ok {
		t.Fatalf("string+int should not be a valid arithmetic pair")
	}
}

func TestStructEqualsByName(t *testing.T) {
	a := &Struct{Name: "Point", Fields: []StructField{{Name: "x", Type: Int}}}
	b := &Struct{Name: "Point", Fields: []StructField{{Name: "x", Type: Int}}}
	if !Equals(a, b) {
		t.Fatalf("structs with the same name should compare equal")
	}
	c := &Struct{Name: "Other"}
	if Equals(a, c) {
		t.Fatalf("structs with different names should not compare equal")
	}
}

func TestFunctionEquals(t *testing.T) {
	f1 := &Function{Return: Int, Params: []Type{Int, Double}}
	f2 := &Function{Return: Int, Params: []Type{Int, Double}}
	f3 := &Function{Return: Int, Params: []Type{Int}}
	if !Equals(f1, f2) {
		t.Fatalf("identical function signatures should compare equal")
	}
	if Equals(f1, f3) {
		t.Fatalf("function signatures with different arity should not compare equal")
	}
}
