package checker

import (
	"testing"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/symbols"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

func tok(typ token.Type, lex string) token.Token {
	return token.Token{Type: typ, Lexeme: lex}
}

func containsCode(c *Checker, code string) bool {
	for _, e := range c.Errors() {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestUnknownIdentifierIsError(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	id := ast.NewIdentifier(a, tok(token.IDENT, "nope"), "nope")
	got := c.checkExpr(id)
	if got != nil {
		t.Fatalf("expected nil type for unknown identifier")
	}
	if !containsCode(c, "E001") {
		t.Fatalf("expected E001 unknown identifier error, got %v", c.Errors())
	}
}

func TestBinaryArithmeticPromotesToDouble(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	i := ast.NewIntLiteral(a, tok(token.INT, "1"), 1)
	d := ast.NewDoubleLiteral(a, tok(token.DOUBLE, "2.0"), 2.0)
	bin := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, i, d)

	got := c.checkExpr(bin)
	if !types.Equals(got, types.Double) {
		t.Fatalf("expected int+double to be double, got %s", got)
	}
	if len(c.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", c.Errors())
	}
}

func TestLogicalRequiresBool(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	i := ast.NewIntLiteral(a, tok(token.INT, "1"), 1)
	b := ast.NewBoolLiteral(a, tok(token.TRUE, "true"), true)
	bin := ast.NewBinaryExpr(a, tok(token.AND, "&&"), token.AND, i, b)

	c.checkExpr(bin)
	if !containsCode(c, "E131") {
		t.Fatalf("expected E131 for non-bool && operand, got %v", c.Errors())
	}
}

func TestPointerVarOutsideNativeFunctionRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	c := New(syms, "t.sin")
	decl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "p", nil)
	decl.DeclaredType = &types.Pointer{Pointee: types.Int}

	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{decl})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "main", nil, body, false)
	c.checkFuncDecl(fn)

	if !containsCode(c, "E301") {
		t.Fatalf("expected E301 pointer-outside-native error, got %v", c.Errors())
	}
}

func TestPointerVarInsideNativeFunctionAccepted(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	c := New(syms, "t.sin")
	decl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "p", nil)
	decl.DeclaredType = &types.Pointer{Pointee: types.Int}

	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{decl})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "main", nil, body, true)
	c.checkFuncDecl(fn)

	if containsCode(c, "E301") {
		t.Fatalf("pointer var inside a native function should be accepted, got %v", c.Errors())
	}
}

// `var x: int = get_ptr()` where get_ptr is native and returns *int is
// rejected without `as val`; with `as val` it is accepted.
func TestNativePointerReturnRequiresAsVal(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "get_ptr"), "get_ptr", &types.Function{Return: ptrInt}, symbols.KindFunction)

	c := New(syms, "t.sin")
	callee := ast.NewIdentifier(a, tok(token.IDENT, "get_ptr"), "get_ptr")
	call := ast.NewCallExpr(a, tok(token.IDENT, "get_ptr"), callee, nil)

	decl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", call)
	decl.DeclaredType = types.Int

	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{decl})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "main", nil, body, false)
	c.checkFuncDecl(fn)

	if !containsCode(c, "E321") {
		t.Fatalf("expected E321 missing `as val` error, got %v", c.Errors())
	}
}

func TestNativePointerReturnWithAsValAccepted(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "get_ptr"), "get_ptr", &types.Function{Return: ptrInt}, symbols.KindFunction)

	c := New(syms, "t.sin")
	callee := ast.NewIdentifier(a, tok(token.IDENT, "get_ptr"), "get_ptr")
	call := ast.NewCallExpr(a, tok(token.IDENT, "get_ptr"), callee, nil)
	asVal := ast.NewAsValExpr(a, tok(token.AS, "as"), call)

	decl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", asVal)
	decl.DeclaredType = types.Int

	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{decl})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "main", nil, body, false)
	c.checkFuncDecl(fn)

	if containsCode(c, "E321") || containsCode(c, "E100") {
		t.Fatalf("`get_ptr() as val` assigned to int should be accepted, got %v", c.Errors())
	}
}

// Scenario 7: pointer arithmetic is rejected for every arithmetic
// operator; pointer equality with another pointer or nil is accepted.
func TestPointerArithmeticRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "p"), "p", ptrInt, symbols.KindVariable)

	ops := []token.Type{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT}
	for _, op := range ops {
		c := New(syms, "t.sin")
		p := ast.NewIdentifier(a, tok(token.IDENT, "p"), "p")
		one := ast.NewIntLiteral(a, tok(token.INT, "1"), 1)
		bin := ast.NewBinaryExpr(a, tok(op, "op"), op, p, one)
		c.checkExpr(bin)
		if !containsCode(c, "E303") {
			t.Errorf("expected E303 pointer arithmetic error for op %v, got %v", op, c.Errors())
		}
	}
}

func TestPointerEqualityAccepted(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "p1"), "p1", ptrInt, symbols.KindVariable)
	syms.Declare(tok(token.IDENT, "p2"), "p2", ptrInt, symbols.KindVariable)

	c := New(syms, "t.sin")
	p1 := ast.NewIdentifier(a, tok(token.IDENT, "p1"), "p1")
	p2 := ast.NewIdentifier(a, tok(token.IDENT, "p2"), "p2")
	eq := ast.NewBinaryExpr(a, tok(token.EQ, "=="), token.EQ, p1, p2)
	got := c.checkExpr(eq)
	if !types.Equals(got, types.Bool) || len(c.Errors()) != 0 {
		t.Fatalf("p1 == p2 should type-check to bool with no errors, got %s errs=%v", got, c.Errors())
	}

	c2 := New(syms, "t.sin")
	p3 := ast.NewIdentifier(a, tok(token.IDENT, "p1"), "p1")
	nilLit := ast.NewNilLiteral(a, tok(token.NIL, "nil"))
	eqNil := ast.NewBinaryExpr(a, tok(token.EQ, "=="), token.EQ, p3, nilLit)
	got2 := c2.checkExpr(eqNil)
	if !types.Equals(got2, types.Bool) || len(c2.Errors()) != 0 {
		t.Fatalf("p == nil should type-check to bool with no errors, got %s errs=%v", got2, c2.Errors())
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	c := New(symbols.New(), "t.sin")
	c.checkStmt(&ast.BreakStmt{Tok: tok(token.BREAK, "break")})
	if !containsCode(c, "E220") {
		t.Fatalf("expected E220 break-outside-loop error, got %v", c.Errors())
	}
}

func TestBreakInsideLoopAccepted(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	cond := ast.NewBoolLiteral(a, tok(token.TRUE, "true"), true)
	brk := ast.NewBreakStmt(a, tok(token.BREAK, "break"))
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{brk})
	loop := ast.NewWhileStmt(a, tok(token.WHILE, "while"), cond, body)
	c.checkStmt(loop)
	if containsCode(c, "E220") {
		t.Fatalf("break inside a loop should be accepted, got %v", c.Errors())
	}
}

func TestDuplicateStructFieldIsError(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	sd := ast.NewStructDeclStmt(a, tok(token.STRUCT, "struct"), "Point", false)
	sd.Fields = []types.StructField{{Name: "x", Type: types.Int}, {Name: "x", Type: types.Double}}
	mod := ast.NewModule(a, "t.sin", []ast.Statement{sd})
	c.Check(mod)

	if !containsCode(c, "E210") {
		t.Fatalf("expected E210 duplicate field error, got %v", c.Errors())
	}
}

func TestAsRefOnArrayParameterRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), nil)
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "f",
		[]ast.Param{{Name: "arr", Type: &types.Array{Element: types.Int}, Qual: types.QualAsRef}},
		body, false)
	c.checkFuncDecl(fn)

	if !containsCode(c, "E310") {
		t.Fatalf("expected E310 as_ref-on-array error, got %v", c.Errors())
	}
}

func TestAsRefOnPrimitiveParameterAccepted(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), nil)
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "f",
		[]ast.Param{{Name: "n", Type: types.Int, Qual: types.QualAsRef}},
		body, false)
	c.checkFuncDecl(fn)

	if containsCode(c, "E310") {
		t.Fatalf("as_ref on a primitive scalar parameter should be accepted, got %v", c.Errors())
	}
}

func TestEqualityOfIncompatibleTypesRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	i := ast.NewIntLiteral(a, tok(token.INT, "1"), 1)
	s := ast.NewStringLiteral(a, tok(token.STRING, `"x"`), "x")
	eq := ast.NewBinaryExpr(a, tok(token.EQ, "=="), token.EQ, i, s)
	c.checkExpr(eq)
	if !containsCode(c, "E133") {
		t.Fatalf("expected E133 for int == string, got %v", c.Errors())
	}
}

func TestPointerOrderingRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "p1"), "p1", ptrInt, symbols.KindVariable)
	syms.Declare(tok(token.IDENT, "p2"), "p2", ptrInt, symbols.KindVariable)

	c := New(syms, "t.sin")
	p1 := ast.NewIdentifier(a, tok(token.IDENT, "p1"), "p1")
	p2 := ast.NewIdentifier(a, tok(token.IDENT, "p2"), "p2")
	lt := ast.NewBinaryExpr(a, tok(token.LT, "<"), token.LT, p1, p2)
	c.checkExpr(lt)
	if !containsCode(c, "E134") {
		t.Fatalf("expected E134 for p1 < p2, got %v", c.Errors())
	}
}

func TestDuplicateVarDeclarationRejected(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	c := New(symbols.New(), "t.sin")
	first := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", ast.NewIntLiteral(a, tok(token.INT, "1"), 1))
	second := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", ast.NewIntLiteral(a, tok(token.INT, "2"), 2))
	c.checkStmt(first)
	c.checkStmt(second)
	if !containsCode(c, "E002") {
		t.Fatalf("expected E002 duplicate declaration error, got %v", c.Errors())
	}
}

// Type inference must not open a hole in the native-boundary rules:
// `var p = get_ptr()` with no declared type is still a pointer variable
// in a regular function.
func TestInferredPointerTypeStillRejectedOutsideNative(t *testing.T) {
	a := arena.NewArena("checker-test")
	defer a.Free()

	syms := symbols.New()
	ptrInt := &types.Pointer{Pointee: types.Int}
	syms.Declare(tok(token.IDENT, "get_ptr"), "get_ptr", &types.Function{Return: ptrInt}, symbols.KindFunction)

	c := New(syms, "t.sin")
	callee := ast.NewIdentifier(a, tok(token.IDENT, "get_ptr"), "get_ptr")
	call := ast.NewCallExpr(a, tok(token.IDENT, "get_ptr"), callee, nil)
	decl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "p", call)

	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{decl})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "main", nil, body, false)
	c.checkFuncDecl(fn)

	if !containsCode(c, "E301") && !containsCode(c, "E321") {
		t.Fatalf("expected a native-boundary error for an inferred pointer var, got %v", c.Errors())
	}
}
