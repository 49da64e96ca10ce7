// Package checker implements Sindarin's type checker: a single-pass
// walker that annotates every expression's ExprType and enforces the
// language's coercion, memory-qualifier, and native-boundary rules.
//
// Sindarin has no generics, traits, or cross-module forward
// declarations, so this walker makes one top-down pass rather than
// separate naming/header/instance/body passes. It holds the symbol
// table plus a dedup-by-position error set, an `addError` helper, and
// continues checking siblings after an error rather than stopping at
// the first one.
package checker

import (
	"fmt"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/diagnostics"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/symbols"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// Checker walks a Module and annotates it in place.
type Checker struct {
	syms       *symbols.SymbolTable
	mem        symbols.MemoryContext
	errorSet   map[string]*diagnostics.DiagnosticError
	errors     []*diagnostics.DiagnosticError
	file       string
	loopDepth  int
	curFunc    *ast.FuncDeclStmt
	structs    map[string]*types.Struct
}

// New returns a Checker backed by the given symbol table, which should
// already have its module scope open (depth 0).
func New(syms *symbols.SymbolTable, file string) *Checker {
	return &Checker{
		syms:     syms,
		errorSet: make(map[string]*diagnostics.DiagnosticError),
		file:     file,
		structs:  make(map[string]*types.Struct),
	}
}

// addError records a diagnostic, deduplicating by (line, column, code)
// so a single ill-typed expression doesn't produce repeated diagnostics.
func (c *Checker) addError(tok token.Token, code, format string, args ...any) {
	d := diagnostics.NewError(tok, code, fmt.Sprintf(format, args...))
	d.File = c.file
	key := fmt.Sprintf("%d:%d:%s", tok.Line, tok.Column, code)
	if _, dup := c.errorSet[key]; dup {
		return
	}
	c.errorSet[key] = d
	c.errors = append(c.errors, d)
}

// Errors returns every diagnostic recorded during Check.
func (c *Checker) Errors() []*diagnostics.DiagnosticError { return c.errors }

// OK reports whether the module checked clean: a failure records an
// error and leaves the module in a falsy verdict.
func (c *Checker) OK() bool { return len(c.errors) == 0 }

// Check walks every top-level statement of m. It never returns early:
// checking continues where possible to surface multiple diagnostics,
// though AST mutation (ExprType assignment) stops on the statement
// subtree that failed.
func (c *Checker) Check(m *ast.Module) {
	c.collectStructDecls(m.Statements)
	for _, s := range m.Statements {
		c.checkStmt(s)
	}
}

// collectStructDecls pre-registers every struct so forward references
// between sibling declarations (a function using a struct declared
// later in the same module) resolve without a second pass.
func (c *Checker) collectStructDecls(stmts []ast.Statement) {
	for _, s := range stmts {
		sd, ok := s.(*ast.StructDeclStmt)
		if !ok {
			continue
		}
		c.checkStructFields(sd)
		st := &types.Struct{Name: sd.Name, Fields: sd.Fields, IsNative: sd.IsNative}
		c.structs[sd.Name] = st
		if _, err := c.syms.Declare(sd.Tok, sd.Name, st, symbols.KindStruct); err != nil {
			c.addError(sd.Tok, "E002", "%q already declared in this scope", sd.Name)
		}
	}
}

// checkStructFields flags duplicate or shadowed field names within one
// struct declaration as a name-resolution error, applying the symbol
// table's "duplicate at the same depth" rule to a synthetic per-struct
// scope.
func (c *Checker) checkStructFields(sd *ast.StructDeclStmt) {
	seen := make(map[string]bool)
	for _, f := range sd.Fields {
		if seen[f.Name] {
			c.addError(sd.Tok, "E210", "duplicate field %q in struct %q", f.Name, sd.Name)
			continue
		}
		seen[f.Name] = true
	}
}

func (c *Checker) lookupStruct(name string) (*types.Struct, bool) {
	st, ok := c.structs[name]
	return st, ok
}

// resolveDeclaredType swaps a parser-built struct placeholder (name
// only, no fields) for the registered declaration of the same name, so
// field accesses through the declared variable see the full field
// list. Array and pointer shapes are resolved through their element.
func (c *Checker) resolveDeclaredType(t types.Type) types.Type {
	switch n := t.(type) {
	case *types.Struct:
		if st, ok := c.lookupStruct(n.Name); ok {
			return st
		}
		return n
	case *types.Array:
		return &types.Array{Element: c.resolveDeclaredType(n.Element)}
	case *types.Pointer:
		return &types.Pointer{Pointee: c.resolveDeclaredType(n.Pointee)}
	default:
		return t
	}
}
