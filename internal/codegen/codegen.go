// Package codegen emits C source implementing a checked, optimized
// Sindarin module, delegating arrays, strings, and concurrency
// coordination to the embedded runtime ABI whose C sources live in
// internal/codegen/runtime and are shipped alongside generated output
// via go:embed.
//
// The state machine — current arena variable, handle-vs-pinned
// expression mode, the arena temp stack, the loop-counter stack —
// mirrors the runtime's own temp-hoisting and loop-optimization
// behavior.
package codegen

import (
	"embed"
	"fmt"
	"strings"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

//go:embed runtime/safepoint.c runtime/safepoint.h runtime/runtime.h
var runtimeFS embed.FS

// RuntimeFiles returns the embedded runtime C sources that the caller
// should write alongside any generated .c file, keyed by filename.
func RuntimeFiles() (map[string][]byte, error) {
	names := []string{"runtime/safepoint.c", "runtime/safepoint.h", "runtime/runtime.h"}
	out := make(map[string][]byte, len(names))
	for _, name := range names {
		b, err := runtimeFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(name, "runtime/")] = b
	}
	return out, nil
}

// ArithMode selects how binary arithmetic is lowered: checked routes
// every operator through a runtime helper, unchecked emits the native
// C operator inline wherever the runtime doesn't need to intervene.
// Division and modulo always call the runtime regardless of mode,
// since it performs the zero-check and diagnostic.
type ArithMode int

const (
	Checked ArithMode = iota
	Unchecked
)

// Generator lowers a checked, optimized *ast.Module to C source text.
// One Generator is used per module; it is not safe for concurrent use.
type Generator struct {
	out    *strings.Builder
	indent int

	arith ArithMode

	// currentFunction/currentArenaVar track the C-level arena handle
	// name threaded through the function currently being generated.
	currentFunction *ast.FuncDeclStmt
	currentArenaVar string
	needsArena      bool

	// exprAsHandle toggles between emitting a pinned raw C pointer and
	// a runtime handle for the current subexpression; restored around
	// each subexpression so siblings see a consistent mode.
	exprAsHandle bool

	// arena temp hoisting.
	arenaTemps      []string
	arenaTempSerial int

	// loop counter tracking.
	loopCounters []string

	structs map[string]*types.Struct
}

// New returns a Generator ready to lower a module in the given
// arithmetic mode.
func New(mode ArithMode) *Generator {
	return &Generator{arith: mode, structs: make(map[string]*types.Struct), out: &strings.Builder{}}
}

// Generate lowers m to a complete C translation unit.
func (g *Generator) Generate(m *ast.Module) (string, error) {
	g.out.Reset()
	g.writeLine(`#include "runtime.h"`)
	g.writeLine("")
	g.collectStructs(m)
	for _, s := range m.Statements {
		g.genTopLevel(s)
	}
	return g.out.String(), nil
}

func (g *Generator) collectStructs(m *ast.Module) {
	for _, s := range m.Statements {
		if sd, ok := s.(*ast.StructDeclStmt); ok {
			g.structs[sd.Name] = &types.Struct{Name: sd.Name, Fields: sd.Fields, IsNative: sd.IsNative}
		}
	}
}

func (g *Generator) genTopLevel(s ast.Statement) {
	switch n := s.(type) {
	case *ast.FuncDeclStmt:
		g.genFuncDecl(n)
	case *ast.StructDeclStmt:
		g.genStructDecl(n)
	case *ast.NamespaceDeclStmt:
		for _, inner := range n.Body {
			g.genTopLevel(inner)
		}
	}
}

func (g *Generator) genStructDecl(n *ast.StructDeclStmt) {
	g.writeLine(fmt.Sprintf("typedef struct %s {", n.Name))
	g.indent++
	for _, f := range n.Fields {
		g.writeLine(fmt.Sprintf("%s %s;", cType(f.Type), f.Name))
	}
	g.indent--
	g.writeLine(fmt.Sprintf("} %s;", n.Name))
	g.writeLine("")
}

// functionNeedsArena reports whether fn's return type, any parameter
// type, or any statement in its body mentions an allocating type
// (array, string, struct, interpolated literal, lambda, slice).
func functionNeedsArena(fn *ast.FuncDeclStmt) bool {
	if typeNeedsArena(fn.ReturnType) {
		return true
	}
	for _, p := range fn.Params {
		if typeNeedsArena(p.Type) {
			return true
		}
	}
	return blockNeedsArena(fn.Body)
}

// typeIsHandle reports whether t lowers to an RtHandleV2* in C, which
// decides the handle mode a consumer of that type evaluates its value
// expression under.
func typeIsHandle(t types.Type) bool {
	switch t.(type) {
	case *types.Array:
		return true
	case *types.Primitive:
		return types.Equals(t, types.String)
	default:
		return false
	}
}

func typeNeedsArena(t types.Type) bool {
	switch t.(type) {
	case *types.Array, *types.Struct:
		return true
	case *types.Primitive:
		return types.Equals(t, types.String)
	default:
		return false
	}
}

// blockNeedsArena walks b's statements and expressions, by type
// switch rather than the Visitor interface (the same choice the
// checker and optimizer packages make, since this walk only needs a
// single accumulated bool rather than per-node return values).
func blockNeedsArena(b *ast.BlockStmt) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Statements {
		if stmtNeedsArena(s) {
			return true
		}
	}
	return false
}

func stmtNeedsArena(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		if n.DeclaredType != nil && typeNeedsArena(n.DeclaredType) {
			return true
		}
		return n.Init != nil && exprNeedsArena(n.Init)
	case *ast.ExprStmt:
		return exprNeedsArena(n.X)
	case *ast.ReturnStmt:
		return n.Value != nil && exprNeedsArena(n.Value)
	case *ast.IfStmt:
		if exprNeedsArena(n.Cond) || blockNeedsArena(n.Then) {
			return true
		}
		if blk, ok := n.ElseBranch.(*ast.BlockStmt); ok {
			return blockNeedsArena(blk)
		}
		if n.ElseBranch != nil {
			return stmtNeedsArena(n.ElseBranch)
		}
		return false
	case *ast.WhileStmt:
		return exprNeedsArena(n.Cond) || blockNeedsArena(n.Body)
	case *ast.ForEachStmt:
		return exprNeedsArena(n.Iterable) || blockNeedsArena(n.Body)
	case *ast.BlockStmt:
		return blockNeedsArena(n)
	default:
		return false
	}
}

func exprNeedsArena(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.StringLiteral, *ast.ArrayLiteralExpr, *ast.InterpolatedStringExpr,
		*ast.LambdaExpr, *ast.ArraySliceExpr, *ast.MethodCallExpr:
		return true
	case *ast.BinaryExpr:
		return exprNeedsArena(n.Left) || exprNeedsArena(n.Right)
	case *ast.UnaryExpr:
		return exprNeedsArena(n.Operand)
	case *ast.AssignExpr:
		return exprNeedsArena(n.Target) || exprNeedsArena(n.Value)
	case *ast.IndexAssignExpr:
		return exprNeedsArena(n.Array) || exprNeedsArena(n.Index) || exprNeedsArena(n.Value)
	case *ast.CompoundAssignExpr:
		return exprNeedsArena(n.Target) || exprNeedsArena(n.Value)
	case *ast.CallExpr:
		for _, a := range n.Args {
			if exprNeedsArena(a) {
				return true
			}
		}
		return false
	case *ast.FieldAccessExpr:
		return exprNeedsArena(n.Receiver)
	case *ast.ArrayAccessExpr:
		return exprNeedsArena(n.Array) || exprNeedsArena(n.Index)
	case *ast.AsValExpr:
		return exprNeedsArena(n.Inner)
	default:
		return false
	}
}

func (g *Generator) genFuncDecl(fn *ast.FuncDeclStmt) {
	outerFn, outerArena, outerNeeds := g.currentFunction, g.currentArenaVar, g.needsArena
	g.currentFunction = fn
	g.needsArena = functionNeedsArena(fn)
	if g.needsArena {
		g.currentArenaVar = "__arena__"
	} else {
		g.currentArenaVar = ""
	}

	ret := "void"
	if fn.ReturnType != nil {
		ret = cType(fn.ReturnType)
	}
	params := g.genParamList(fn)
	g.writeLine(fmt.Sprintf("%s %s(%s) {", ret, fn.Name, params))
	g.indent++
	for _, s := range fn.Body.Statements {
		g.genStmt(s)
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.currentFunction, g.currentArenaVar, g.needsArena = outerFn, outerArena, outerNeeds
}

func (g *Generator) genParamList(fn *ast.FuncDeclStmt) string {
	parts := make([]string, 0, len(fn.Params)+1)
	if g.needsArena {
		parts = append(parts, "RtArenaV2 *__arena__")
	}
	for _, p := range fn.Params {
		ty := cType(p.Type)
		if p.Qual == types.QualAsRef {
			ty += " *"
		}
		parts = append(parts, fmt.Sprintf("%s %s", ty, p.Name))
	}
	return strings.Join(parts, ", ")
}

// cType maps a checked Sindarin type to its C representation.
func cType(t types.Type) string {
	switch n := t.(type) {
	case *types.Primitive:
		switch n.Kind() {
		case types.KindInt, types.KindLong:
			return "int64_t"
		case types.KindInt32:
			return "int32_t"
		case types.KindUint:
			return "uint64_t"
		case types.KindUint32:
			return "uint32_t"
		case types.KindDouble:
			return "double"
		case types.KindFloat:
			return "float"
		case types.KindBool:
			return "bool"
		case types.KindChar, types.KindByte:
			return "unsigned char"
		case types.KindString:
			return "RtHandleV2 *"
		case types.KindVoid:
			return "void"
		default:
			return "void *"
		}
	case *types.Array:
		return "RtHandleV2 *"
	case *types.Pointer:
		return cType(n.Pointee) + " *"
	case *types.Struct:
		return n.Name
	case *types.Function:
		return "void *"
	default:
		return "void *"
	}
}

func (g *Generator) writeLine(s string) {
	if s == "" {
		g.out.WriteString("\n")
		return
	}
	g.out.WriteString(strings.Repeat("    ", g.indent))
	g.out.WriteString(s)
	g.out.WriteString("\n")
}

func opSymbol(op token.Type) string {
	switch op {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.ASTERISK:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	case token.EQ:
		return "=="
	case token.NOT_EQ:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	case token.AND:
		return "&&"
	case token.OR:
		return "||"
	case token.BANG:
		return "!"
	default:
		return "?"
	}
}
