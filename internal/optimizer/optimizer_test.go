package optimizer

import (
	"testing"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

func tok(typ token.Type, lex string) token.Token {
	return token.Token{Type: typ, Lexeme: lex}
}

func intLit(a *arena.Arena, v int64) *ast.IntLiteral {
	lit := ast.NewIntLiteral(a, tok(token.INT, "n"), v)
	lit.SetExprType(types.Int)
	return lit
}

func oneFuncModule(a *arena.Arena, name string, stmts []ast.Statement) *ast.Module {
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), stmts)
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), name, nil, body, false)
	return ast.NewModule(a, "test.sin", []ast.Statement{fn})
}

// 5 + 3 folds to the single literal 8.
func TestConstantFoldAddition(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	sum := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, intLit(a, 5), intLit(a, 3))
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), sum)
	mod := oneFuncModule(a, "f", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	got := fn.Body.Statements[0].(*ast.ReturnStmt).Value
	lit, ok := got.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected folded literal, got %T", got)
	}
	if lit.Value != 8 {
		t.Fatalf("expected 8, got %d", lit.Value)
	}
	if !types.Equals(lit.ExprType(), types.Int) {
		t.Fatalf("expected folded literal to keep type int, got %s", lit.ExprType())
	}
}

// Scenario 2: 10 / 0 is never folded — division/modulo by a literal
// zero must survive optimization unchanged for runtime diagnosis.
func TestDivByZeroNotFolded(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	div := ast.NewBinaryExpr(a, tok(token.SLASH, "/"), token.SLASH, intLit(a, 10), intLit(a, 0))
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), div)
	mod := oneFuncModule(a, "f", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	got := fn.Body.Statements[0].(*ast.ReturnStmt).Value
	if _, ok := got.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected division by literal zero to remain a binary expression, got %T", got)
	}
}

// Scenario 3: unreachable statements after the first terminator are
// removed.
func TestUnreachableRemoval(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), intLit(a, 0))
	x := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", intLit(a, 5))
	y := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "y", intLit(a, 6))
	mod := oneFuncModule(a, "f", []ast.Statement{ret, x, y})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected body to shrink to just the return, got %d statements", len(fn.Body.Statements))
	}
	if o.Stats.StatementsRemoved < 2 {
		t.Fatalf("expected at least 2 statements removed, got %d", o.Stats.StatementsRemoved)
	}
}

// Scenario 4: an unused variable is eliminated, a used one survives.
func TestUnusedVariableElimination(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	unused := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "unused", intLit(a, 0))
	xDecl := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "x", intLit(a, 5))
	xRef := ast.NewIdentifier(a, tok(token.IDENT, "x"), "x")
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), xRef)
	dead := ast.NewVarDeclStmt(a, tok(token.VAR, "var"), "dead", intLit(a, 0))
	mod := oneFuncModule(a, "f", []ast.Statement{unused, xDecl, ret, dead})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected [var x=5; return x], got %d statements", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.VarDeclStmt); !ok {
		t.Fatalf("expected first surviving statement to be the x decl")
	}
	if o.Stats.VariablesRemoved < 1 {
		t.Fatalf("expected at least 1 variable removed, got %d", o.Stats.VariablesRemoved)
	}
}

// Scenario 5: adjacent string literal parts in an interpolated string
// merge into a single literal.
func TestStringLiteralMerging(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	hello := ast.NewStringLiteral(a, tok(token.STRING, `"Hello "`), "Hello ")
	hello.SetExprType(types.String)
	world := ast.NewStringLiteral(a, tok(token.STRING, `"World"`), "World")
	world.SetExprType(types.String)
	bang := ast.NewStringLiteral(a, tok(token.STRING, `"!"`), "!")
	bang.SetExprType(types.String)

	interp := ast.NewInterpolatedStringExpr(a, tok(token.STRING, "interp"), []ast.Expression{hello, world, bang})
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), interp)
	mod := oneFuncModule(a, "f", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	got := fn.Body.Statements[0].(*ast.ReturnStmt).Value
	lit, ok := got.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected a single merged string literal, got %T", got)
	}
	if lit.Value != "Hello World!" {
		t.Fatalf(`expected "Hello World!", got %q`, lit.Value)
	}
	if o.Stats.StringsMerged != 2 {
		t.Fatalf("expected 2 merges, got %d", o.Stats.StringsMerged)
	}
}

func TestPureStringConcatenationFolds(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	l := ast.NewStringLiteral(a, tok(token.STRING, `"a"`), "a")
	l.SetExprType(types.String)
	r := ast.NewStringLiteral(a, tok(token.STRING, `"b"`), "b")
	r.SetExprType(types.String)
	concat := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, l, r)
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), concat)
	mod := oneFuncModule(a, "f", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	got := fn.Body.Statements[0].(*ast.ReturnStmt).Value
	lit, ok := got.(*ast.StringLiteral)
	if !ok || lit.Value != "ab" {
		t.Fatalf(`expected folded literal "ab", got %#v`, got)
	}
}

// Algebraic no-ops: x+0, x*1, !!x fold away; x*0 is left alone since the
// operand may have side effects.
func TestAlgebraicNoOps(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	x := func() *ast.Identifier {
		id := ast.NewIdentifier(a, tok(token.IDENT, "x"), "x")
		id.SetExprType(types.Int)
		return id
	}

	addZero := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, x(), intLit(a, 0))
	ret1 := ast.NewReturnStmt(a, tok(token.RETURN, "return"), addZero)
	mod1 := oneFuncModule(a, "f", []ast.Statement{ret1})
	New(a).Run(mod1)
	got1 := mod1.Statements[0].(*ast.FuncDeclStmt).Body.Statements[0].(*ast.ReturnStmt).Value
	if id, ok := got1.(*ast.Identifier); !ok || id.Name != "x" {
		t.Fatalf("expected x+0 to simplify to x, got %#v", got1)
	}

	mulZero := ast.NewBinaryExpr(a, tok(token.ASTERISK, "*"), token.ASTERISK, x(), intLit(a, 0))
	ret2 := ast.NewReturnStmt(a, tok(token.RETURN, "return"), mulZero)
	mod2 := oneFuncModule(a, "g", []ast.Statement{ret2})
	New(a).Run(mod2)
	got2 := mod2.Statements[0].(*ast.FuncDeclStmt).Body.Statements[0].(*ast.ReturnStmt).Value
	if _, ok := got2.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected x*0 to be left unsimplified (operand may have side effects), got %#v", got2)
	}
}

// Tail-call marking: a return whose direct value is a call to the
// enclosing function by name gets IsTailCall set.
func TestTailCallMarking(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	selfCall := ast.NewCallExpr(a, tok(token.IDENT, "fact"),
		ast.NewIdentifier(a, tok(token.IDENT, "fact"), "fact"), nil)
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), selfCall)
	mod := oneFuncModule(a, "fact", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	if !selfCall.IsTailCall {
		t.Fatalf("expected self-recursive return call to be marked as a tail call")
	}
	if o.Stats.TailCallsMarked != 1 {
		t.Fatalf("expected 1 tail call marked, got %d", o.Stats.TailCallsMarked)
	}
}

func TestTailCallNotMarkedWhenWrapped(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	selfCall := ast.NewCallExpr(a, tok(token.IDENT, "fact"),
		ast.NewIdentifier(a, tok(token.IDENT, "fact"), "fact"), nil)
	wrapped := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, selfCall, intLit(a, 1))
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), wrapped)
	mod := oneFuncModule(a, "fact", []ast.Statement{ret})

	o := New(a)
	o.Run(mod)

	if selfCall.IsTailCall {
		t.Fatalf("a call combined with arithmetic before the return is not a tail call")
	}
}

// Optimizer idempotence: running it twice over the same module
// produces the same result the second time as the first.
func TestOptimizerIdempotent(t *testing.T) {
	a := arena.NewArena("opt-test")
	defer a.Free()

	sum := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, intLit(a, 5), intLit(a, 3))
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), sum)
	mod := oneFuncModule(a, "f", []ast.Statement{ret})

	New(a).Run(mod)
	fn := mod.Statements[0].(*ast.FuncDeclStmt)
	firstPass := fn.Body.Statements[0].(*ast.ReturnStmt).Value.(*ast.IntLiteral).Value

	o2 := New(a)
	o2.Run(mod)
	secondPass := fn.Body.Statements[0].(*ast.ReturnStmt).Value.(*ast.IntLiteral).Value

	if firstPass != secondPass {
		t.Fatalf("optimizer is not idempotent: %d != %d", firstPass, secondPass)
	}
	if o2.Stats.NoOpsSimplified != 0 {
		t.Fatalf("second pass over an already-folded tree should find nothing left to fold, got %d", o2.Stats.NoOpsSimplified)
	}
}
