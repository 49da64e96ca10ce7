package main

import (
	"fmt"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
)

// ParseSource turns source text into a Module allocated from a. Lexing
// and parsing are deliberately out of this module's scope — they are
// external collaborators: the lexer emits Token, the parser constructs
// AST nodes via the factories in internal/ast/factory.go — this
// package only defines the narrow seam a real frontend plugs into.
// ParseSource is nil until something links one in; sindac reports a
// clear diagnostic rather than panicking when no frontend is
// registered.
var ParseSource func(a *arena.Arena, path string, src []byte) (*ast.Module, error)

// errNoFrontend describes the state where ParseSource has not been
// wired to an actual lexer/parser implementation: compileFile reports
// its message as a fatal diagnostic and runFormat returns it.
var errNoFrontend = fmt.Errorf("no lexer/parser frontend is linked into this binary; ParseSource is nil")
