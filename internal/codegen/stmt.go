package codegen

import (
	"fmt"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// genStmt lowers one statement, implementing the enter_stmt /
// flush_temps / adopt_temps state machine: every statement saves the
// arena-temp count on entry and either flushes or adopts the temps
// appended while generating it.
func (g *Generator) genStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		g.genVarDecl(n)
	case *ast.ExprStmt:
		saved := g.enterStmt()
		expr := g.genExpr(n.X)
		g.writeLine(expr + ";")
		if assignAdoptsTemps(n.X) {
			g.adoptTemps(saved)
		} else {
			g.flushTemps(saved)
		}
	case *ast.ReturnStmt:
		g.genReturn(n)
	case *ast.IfStmt:
		g.genIf(n)
	case *ast.BreakStmt:
		g.writeLine("break;")
	case *ast.ContinueStmt:
		g.writeLine("continue;")
	case *ast.WhileStmt:
		g.genWhile(n)
	case *ast.ForEachStmt:
		g.genForEach(n)
	case *ast.BlockStmt:
		g.writeLine("{")
		g.indent++
		for _, inner := range n.Statements {
			g.genStmt(inner)
		}
		g.indent--
		g.writeLine("}")
	}
}

// assignAdoptsTemps reports whether the statement expression stores a
// handle into a named location, making the assignment — not the
// statement boundary — the consumer of any temps its RHS hoisted.
func assignAdoptsTemps(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.AssignExpr:
		return typeIsHandle(n.Target.ExprType())
	case *ast.IndexAssignExpr:
		return typeIsHandle(n.Value.ExprType())
	default:
		return false
	}
}

// enterStmt saves the current arena-temp count, per the enter_stmt
// step of the handle-lifetime state machine.
func (g *Generator) enterStmt() int {
	return len(g.arenaTemps)
}

// flushTemps emits rt_arena_v2_free for every temp appended since
// saved and truncates the stack; adoptTemps instead truncates without
// freeing, because a consumer took ownership of those handles.
func (g *Generator) flushTemps(saved int) {
	if g.currentArenaVar == "" {
		g.arenaTemps = g.arenaTemps[:saved]
		return
	}
	for i := saved; i < len(g.arenaTemps); i++ {
		g.writeLine(fmt.Sprintf("rt_arena_v2_free(%s);", g.arenaTemps[i]))
	}
	g.arenaTemps = g.arenaTemps[:saved]
}

func (g *Generator) adoptTemps(saved int) {
	g.arenaTemps = g.arenaTemps[:saved]
}

func (g *Generator) genVarDecl(n *ast.VarDeclStmt) {
	saved := g.enterStmt()
	ty := "void *"
	if n.DeclaredType != nil {
		ty = cType(n.DeclaredType)
	}
	if n.Init == nil {
		g.writeLine(fmt.Sprintf("%s %s;", ty, n.Name))
		g.flushTemps(saved)
		return
	}
	savedMode := g.exprAsHandle
	g.exprAsHandle = typeIsHandle(n.DeclaredType)
	init := g.genExpr(n.Init)
	g.exprAsHandle = savedMode
	g.writeLine(fmt.Sprintf("%s %s = %s;", ty, n.Name, init))
	// The var decl is itself the consumer: it adopts whatever temp the
	// top-level init expression produced.
	g.adoptTemps(saved)
}

func (g *Generator) genReturn(n *ast.ReturnStmt) {
	saved := g.enterStmt()
	if n.Value == nil {
		g.writeLine("return;")
		g.flushTemps(saved)
		return
	}
	savedMode := g.exprAsHandle
	if g.currentFunction != nil {
		g.exprAsHandle = typeIsHandle(g.currentFunction.ReturnType)
	}
	val := g.genExpr(n.Value)
	g.exprAsHandle = savedMode
	g.writeLine(fmt.Sprintf("return %s;", val))
	g.adoptTemps(saved)
}

func (g *Generator) genIf(n *ast.IfStmt) {
	saved := g.enterStmt()
	cond := g.genExpr(n.Cond)
	g.flushTemps(saved)
	g.writeLine(fmt.Sprintf("if (%s) {", cond))
	g.indent++
	for _, s := range n.Then.Statements {
		g.genStmt(s)
	}
	g.indent--
	if n.ElseBranch == nil {
		g.writeLine("}")
		return
	}
	g.writeLine("} else {")
	g.indent++
	if blk, ok := n.ElseBranch.(*ast.BlockStmt); ok {
		for _, s := range blk.Statements {
			g.genStmt(s)
		}
	} else {
		g.genStmt(n.ElseBranch)
	}
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genWhile(n *ast.WhileStmt) {
	saved := g.enterStmt()
	cond := g.genExpr(n.Cond)
	g.flushTemps(saved)
	g.writeLine(fmt.Sprintf("while (%s) {", cond))
	g.indent++
	if g.currentArenaVar != "" {
		g.writeLine("rt_safepoint_poll();")
	}
	for _, s := range n.Body.Statements {
		g.genStmt(s)
	}
	g.indent--
	g.writeLine("}")
}

// genForEach lowers `for v in arr { body }` to a counted C loop,
// tracking the generated index variable on the loop-counter stack so
// index-using code in the body knows __idx_N__ refers to a managed
// counter.
func (g *Generator) genForEach(n *ast.ForEachStmt) {
	saved := g.enterStmt()
	iterable := g.genExpr(n.Iterable)
	g.flushTemps(saved)

	idx := g.pushLoopCounter()
	defer g.popLoopCounter()

	elemType := "void *"
	if arr, ok := n.Iterable.ExprType().(*types.Array); ok {
		elemType = cType(arr.Element)
	}
	g.writeLine(fmt.Sprintf("for (long %s = 0; %s < rt_handle_v2_len(%s); %s++) {", idx, idx, iterable, idx))
	g.indent++
	if g.currentArenaVar != "" {
		g.writeLine("rt_safepoint_poll();")
	}
	g.writeLine(fmt.Sprintf("%s %s = *(%s *)rt_array_at(%s, %s);", elemType, n.VarName, elemType, iterable, idx))
	for _, s := range n.Body.Statements {
		g.genStmt(s)
	}
	g.indent--
	g.writeLine("}")
}

// pushLoopCounter allocates the next __idx_N__ name and tracks it;
// popLoopCounter removes the innermost one on loop exit. A pop on an
// empty stack is a safe no-op.
func (g *Generator) pushLoopCounter() string {
	name := fmt.Sprintf("__idx_%d__", len(g.loopCounters))
	g.loopCounters = append(g.loopCounters, name)
	return name
}

func (g *Generator) popLoopCounter() {
	if len(g.loopCounters) == 0 {
		return
	}
	g.loopCounters = g.loopCounters[:len(g.loopCounters)-1]
}

// isTrackedLoopCounter reports whether name is a currently live
// generated loop counter.
func (g *Generator) isTrackedLoopCounter(name string) bool {
	for _, c := range g.loopCounters {
		if c == name {
			return true
		}
	}
	return false
}
