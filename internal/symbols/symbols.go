// Package symbols implements Sindarin's lexically scoped name binding:
// open/close scope, declare-with-duplicate-detection, innermost-first
// lookup, and namespaces.
//
// The scope-stack shape is an outer-linked chain of maps: lookup walks
// up the chain, while a local-only check only consults the innermost
// map. Sindarin's is narrow since there are no traits, generics, or
// module aliasing to track.
package symbols

import (
	"fmt"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// ScopeKind distinguishes the two lexical scope shapes (block,
// function) plus the namespace scope added for qualified lookup.
type ScopeKind int

const (
	ScopeBlock ScopeKind = iota
	ScopeFunction
	ScopeNamespace
)

// SymbolKind tags what a Symbol denotes.
type SymbolKind int

const (
	KindVariable SymbolKind = iota
	KindParameter
	KindFunction
	KindStruct
	KindNamespace
)

// Symbol is `{name, type, kind, scope_depth, offset_within_scope}`.
type Symbol struct {
	Name        string
	Type        types.Type
	Kind        SymbolKind
	ScopeDepth  int
	Offset      int
	DeclaredAt  token.Token
}

// DuplicateError reports that name was already declared at the same
// depth: a duplicate name at the same depth is an error, but shadowing
// an outer scope is legal.
type DuplicateError struct {
	Name     string
	Existing token.Token
	New      token.Token
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q already declared at %d:%d", e.Name, e.Existing.Line, e.Existing.Column)
}

// scope is one entry in the stack. A namespace scope additionally owns
// a name visible in its parent's table (so it can be found by a
// qualified lookup from outside).
type scope struct {
	kind    ScopeKind
	outer   *scope
	symbols map[string]Symbol
	offset  int
	name    string // only set for ScopeNamespace
}

// SymbolTable is the scope stack. The zero value is not usable;
// construct with New.
type SymbolTable struct {
	cur   *scope
	depth int
}

// New returns a SymbolTable with a single module scope open at depth 0:
// depth-0 is always the module scope.
func New() *SymbolTable {
	return &SymbolTable{
		cur: &scope{kind: ScopeBlock, symbols: make(map[string]Symbol)},
	}
}

// Depth reports the number of currently open scopes.
func (s *SymbolTable) Depth() int { return s.depth }

// OpenScope pushes a new scope of the given kind. A function scope
// resets its own parameter-offset counter; a block scope starts its
// own counter too but inherits visibility of everything outer (via the
// outer chain walked by Lookup).
func (s *SymbolTable) OpenScope(kind ScopeKind) {
	s.cur = &scope{kind: kind, outer: s.cur, symbols: make(map[string]Symbol)}
	s.depth++
}

// CloseScope pops the innermost scope. Its storage becomes unreachable
// and is released to the arena/GC as a whole, not symbol by symbol —
// released via the arena's lifetime, not individually.
func (s *SymbolTable) CloseScope() {
	if s.cur.outer == nil {
		return
	}
	s.cur = s.cur.outer
	if s.depth > 0 {
		s.depth--
	}
}

// Declare introduces a symbol in the innermost scope. A duplicate name
// at the same depth is rejected; shadowing an outer scope is legal.
func (s *SymbolTable) Declare(tok token.Token, name string, t types.Type, kind SymbolKind) (Symbol, error) {
	if existing, ok := s.cur.symbols[name]; ok {
		return Symbol{}, &DuplicateError{Name: name, Existing: existing.DeclaredAt, New: tok}
	}
	sym := Symbol{
		Name:       name,
		Type:       t,
		Kind:       kind,
		ScopeDepth: s.depth,
		Offset:     s.cur.offset,
		DeclaredAt: tok,
	}
	s.cur.symbols[name] = sym
	s.cur.offset++
	return sym, nil
}

// Lookup scans innermost-first, case-sensitive, full-identifier match
// (no prefix matching).
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	for sc := s.cur; sc != nil; sc = sc.outer {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupCurrent only checks the innermost scope.
func (s *SymbolTable) LookupCurrent(name string) (Symbol, bool) {
	sym, ok := s.cur.symbols[name]
	return sym, ok
}

// IsDefinedLocally reports whether name is declared in the innermost
// scope (shallow check), used by the struct-field duplicate rule
// applied to a synthetic per-struct scope.
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.cur.symbols[name]
	return ok
}

// OpenNamespace opens a named scope reachable by qualified lookup and
// declares the namespace's own name as a symbol in the parent scope.
func (s *SymbolTable) OpenNamespace(tok token.Token, name string) (Symbol, error) {
	sym, err := s.Declare(tok, name, nil, KindNamespace)
	if err != nil {
		return Symbol{}, err
	}
	s.cur = &scope{kind: ScopeNamespace, outer: s.cur, symbols: make(map[string]Symbol), name: name}
	s.depth++
	return sym, nil
}

// CloseNamespace closes the innermost namespace scope.
func (s *SymbolTable) CloseNamespace() {
	s.CloseScope()
}

// InFunctionScope reports whether the innermost scope, or any enclosing
// scope up to the nearest namespace/module boundary, is a function
// scope — used by the checker to validate break/continue nesting and
// native-boundary placement.
func (s *SymbolTable) InFunctionScope() bool {
	for sc := s.cur; sc != nil; sc = sc.outer {
		if sc.kind == ScopeFunction {
			return true
		}
	}
	return false
}

// MemoryContext tracks per-function state the checker and generator
// both consult: block nesting depth and source-language private-region
// nesting depth. Both counters are bounded at zero on
// underflow — a stray Leave without a matching Enter never goes
// negative.
type MemoryContext struct {
	ScopeDepth   int
	PrivateDepth int
}

func (m *MemoryContext) EnterScope() { m.ScopeDepth++ }

func (m *MemoryContext) LeaveScope() {
	if m.ScopeDepth > 0 {
		m.ScopeDepth--
	}
}

func (m *MemoryContext) EnterPrivate() { m.PrivateDepth++ }

func (m *MemoryContext) LeavePrivate() {
	if m.PrivateDepth > 0 {
		m.PrivateDepth--
	}
}
