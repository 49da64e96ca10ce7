package pipeline

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/codegen"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/diagnostics"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/symbols"
)

// Context threads a module through the compiler stages, the same way a
// lex/parse/analyze pipeline threads source text through its stages.
// Module and Arena are expected to already exist
// when the pipeline starts — this repository's narrow interface to the
// (externally supplied) lexer and parser is exactly that they hand it
// a *ast.Module built from an *arena.Arena.
type Context struct {
	File   string
	Module *ast.Module
	Arena  *arena.Arena
	Syms   *symbols.SymbolTable

	Arith codegen.ArithMode

	Errors []*diagnostics.DiagnosticError
	Output string
}

// NewContext returns a Context ready for the checker stage: a fresh
// symbol table and no diagnostics yet.
func NewContext(file string, module *ast.Module, a *arena.Arena, arith codegen.ArithMode) *Context {
	return &Context{
		File:   file,
		Module: module,
		Arena:  a,
		Syms:   symbols.New(),
		Arith:  arith,
	}
}

// HadError reports whether any non-warning diagnostic was recorded.
func (c *Context) HadError() bool {
	for _, d := range c.Errors {
		if d.Severity != diagnostics.SeverityWarning {
			return true
		}
	}
	return false
}
