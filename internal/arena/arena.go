// Package arena implements the bump-allocated lifetime scope that owns
// every AST node, token text duplicate, type, and symbol record created
// during one compilation. All allocations from one Arena are released
// together via Reset/Free; no individual node is freed on its own.
//
// Go already garbage-collects the underlying structs, so this arena's
// job is not to manage raw memory the way a C arena does — it is to
// enforce the ownership discipline the rest of the pipeline assumes
// (bulk reset, explicit duplication, a single shared lifetime scope per
// compilation) and to give the pipeline a concrete handle to thread
// through the code generator.
package arena

import "github.com/dustin/go-humanize"

const initialBlockObjects = 256

// block is one contiguously allocated slab of object slots.
type block struct {
	objs []any
}

// Arena is a bump-pointer lifetime scope. The zero value is not usable;
// construct with NewArena.
type Arena struct {
	label      string
	blocks     []*block
	cur        *block
	allocated  int
	highWater  int
	strBytes   int
	stringPool map[string]string
}

// NewArena creates an empty Arena tagged with label (used only in
// Stats() debug output, e.g. a compilation's session UUID).
func NewArena(label string) *Arena {
	a := &Arena{label: label, stringPool: make(map[string]string)}
	a.grow()
	return a
}

func (a *Arena) grow() {
	cap := initialBlockObjects
	if n := len(a.blocks); n > 0 {
		cap = len(a.blocks[n-1].objs) * 2
	}
	b := &block{objs: make([]any, 0, cap)}
	a.blocks = append(a.blocks, b)
	a.cur = b
}

// New allocates a value of type T from the arena and returns a pointer
// to the arena-owned copy. This is the Go analog of the C arena's
// `arena_alloc_for(T)`: the caller never calls free on the result.
func New[T any](a *Arena, v T) *T {
	if len(a.cur.objs) == cap(a.cur.objs) {
		a.grow()
	}
	p := new(T)
	*p = v
	a.cur.objs = append(a.cur.objs, p)
	a.allocated++
	if a.allocated > a.highWater {
		a.highWater = a.allocated
	}
	return p
}

// NewSlice allocates a slice of n zero-valued T from the arena.
func NewSlice[T any](a *Arena, n int) []T {
	s := make([]T, n)
	a.allocated += n
	if a.allocated > a.highWater {
		a.highWater = a.allocated
	}
	return s
}

// Dup copies s into arena-owned storage. Duplicating a string or token
// into the arena is always explicit — callers that need a string to
// outlive its original owner (e.g. a token's lexeme sourced from a
// reused lexer buffer) must call Dup rather than relying on Go's string
// immutability to save them from an aliasing bug in spirit.
func (a *Arena) Dup(s string) string {
	if cached, ok := a.stringPool[s]; ok {
		return cached
	}
	dup := string([]byte(s))
	a.stringPool[s] = dup
	a.strBytes += len(dup)
	return dup
}

// Reset releases every allocation made from the arena back to a fresh
// empty state, mirroring the C arena's `arena_reset`. The first block
// is kept for reuse; every later block is dropped.
func (a *Arena) Reset() {
	for _, b := range a.blocks {
		b.objs = b.objs[:0]
	}
	if len(a.blocks) > 0 {
		a.cur = a.blocks[0]
		a.blocks = a.blocks[:1]
	}
	a.allocated = 0
	a.stringPool = make(map[string]string)
	a.strBytes = 0
}

// Free drops all references held by the arena so the GC can reclaim
// them. After Free, no pointer previously returned by New may be used —
// no AST node may outlive its arena; violating that is a use-after-free
// in spirit even though Go won't fault on it directly.
func (a *Arena) Free() {
	a.blocks = nil
	a.cur = nil
	a.stringPool = nil
	a.allocated = 0
}

// Stats returns a human-readable summary of the arena's usage, used by
// the CLI's verbose/debug mode.
func (a *Arena) Stats() string {
	return humanize.Comma(int64(a.highWater)) + " objects (high water), " +
		humanize.Bytes(uint64(a.strBytes)) + " of interned string data, label=" + a.label
}

// Label returns the arena's debug label.
func (a *Arena) Label() string { return a.label }
