package pipeline

import (
	"strings"
	"testing"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/codegen"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

func tok(typ token.Type, lex string) token.Token {
	return token.Token{Type: typ, Lexeme: lex}
}

func buildAddModule(a *arena.Arena) *ast.Module {
	left := ast.NewIdentifier(a, tok(token.IDENT, "a"), "a")
	right := ast.NewIdentifier(a, tok(token.IDENT, "b"), "b")
	sum := ast.NewBinaryExpr(a, tok(token.PLUS, "+"), token.PLUS, left, right)
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), sum)
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{ret})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "add",
		[]ast.Param{
			{Name: "a", Type: types.Int, Tok: tok(token.IDENT, "a")},
			{Name: "b", Type: types.Int, Tok: tok(token.IDENT, "b")},
		}, body, false)
	fn.ReturnType = types.Int
	return ast.NewModule(a, "add.sin", []ast.Statement{fn})
}

func TestPipelineRunsCheckerOptimizerCodegen(t *testing.T) {
	a := arena.NewArena("pipeline-test")
	defer a.Free()

	mod := buildAddModule(a)
	ctx := NewContext("add.sin", mod, a, codegen.Checked)

	p := New(CheckerProcessor{}, OptimizerProcessor{}, CodegenProcessor{})
	result := p.Run(ctx)

	if result.HadError() {
		t.Fatalf("expected a clean check, got errors: %v", result.Errors)
	}
	if !strings.Contains(result.Output, "int64_t add(int64_t a, int64_t b)") {
		t.Fatalf("expected generated signature, got:\n%s", result.Output)
	}
}

func TestPipelineSkipsCodegenAfterCheckError(t *testing.T) {
	a := arena.NewArena("pipeline-test")
	defer a.Free()

	// An undeclared identifier should fail the checker and prevent
	// codegen from running at all.
	missing := ast.NewIdentifier(a, tok(token.IDENT, "nope"), "nope")
	ret := ast.NewReturnStmt(a, tok(token.RETURN, "return"), missing)
	body := ast.NewBlockStmt(a, tok(token.LBRACE, "{"), []ast.Statement{ret})
	fn := ast.NewFuncDeclStmt(a, tok(token.FUNC, "func"), "broken", nil, body, false)
	fn.ReturnType = types.Int
	mod := ast.NewModule(a, "broken.sin", []ast.Statement{fn})

	ctx := NewContext("broken.sin", mod, a, codegen.Checked)
	p := New(CheckerProcessor{}, OptimizerProcessor{}, CodegenProcessor{})
	result := p.Run(ctx)

	if !result.HadError() {
		t.Fatal("expected an undeclared identifier to be reported")
	}
	if result.Output != "" {
		t.Fatalf("codegen should not run after a check error, got:\n%s", result.Output)
	}
}
