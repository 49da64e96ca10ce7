package ast

import (
	"testing"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

func tok(typ token.Type, lex string) token.Token {
	return token.Token{Type: typ, Lexeme: lex, Line: 1, Column: 1}
}

func TestIsTerminator(t *testing.T) {
	a := arena.NewArena("ast-test")
	defer a.Free()

	terminators := []Statement{
		NewReturnStmt(a, tok(token.RETURN, "return"), nil),
		NewBreakStmt(a, tok(token.BREAK, "break")),
		NewContinueStmt(a, tok(token.CONTINUE, "continue")),
	}
	for _, s := range terminators {
		if !IsTerminator(s) {
			t.Errorf("%T should be a terminator", s)
		}
	}

	others := []Statement{
		NewVarDeclStmt(a, tok(token.VAR, "var"), "x", nil),
		NewExprStmt(a, tok(token.INT, "1"), NewIntLiteral(a, tok(token.INT, "1"), 1)),
		NewBlockStmt(a, tok(token.LBRACE, "{"), nil),
	}
	for _, s := range others {
		if IsTerminator(s) {
			t.Errorf("%T should not be a terminator", s)
		}
	}
}

func TestNilReceiverGetTokenIsSafe(t *testing.T) {
	var id *Identifier
	if !id.GetToken().Zero() {
		t.Fatal("a nil node should return the zero token rather than panic")
	}
	var ret *ReturnStmt
	if !ret.GetToken().Zero() {
		t.Fatal("a nil statement should return the zero token rather than panic")
	}
}

func TestExprTypeUnsetUntilAnnotated(t *testing.T) {
	a := arena.NewArena("ast-test")
	defer a.Free()

	lit := NewIntLiteral(a, tok(token.INT, "7"), 7)
	if lit.ExprType() != nil {
		t.Fatal("a freshly built expression should carry no type annotation")
	}
}

func TestDupTokenCopiesBackingText(t *testing.T) {
	a := arena.NewArena("ast-test")
	defer a.Free()

	orig := token.Token{Type: token.IDENT, Lexeme: "name", File: "m.sin", Line: 3}
	dup := DupToken(a, orig)
	if dup.Lexeme != orig.Lexeme || dup.File != orig.File || dup.Line != orig.Line {
		t.Fatalf("DupToken should preserve the token's content, got %+v", dup)
	}
}
