package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// genExpr lowers e to a C expression string. Callers that need a
// value to outlive the current expression (var decl init, return
// value, assignment RHS) are responsible for adopting any arena temp
// this appends via Generator.adoptTemps; all other callers flush.
func (g *Generator) genExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.LongLiteral:
		return strconv.FormatInt(n.Value, 10) + "L"
	case *ast.DoubleLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(float64(n.Value), 'g', -1, 32) + "f"
	case *ast.BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.CharLiteral:
		return fmt.Sprintf("'\\x%02x'", n.Value)
	case *ast.ByteLiteral:
		return fmt.Sprintf("0x%02x", n.Value)
	case *ast.StringLiteral:
		return g.genStringLiteral(n)
	case *ast.NilLiteral:
		return "NULL"
	case *ast.Identifier:
		return n.Name
	case *ast.BinaryExpr:
		return g.genBinary(n)
	case *ast.UnaryExpr:
		return g.genUnary(n)
	case *ast.AssignExpr:
		return g.genAssign(n)
	case *ast.IndexAssignExpr:
		return g.genIndexAssign(n)
	case *ast.CompoundAssignExpr:
		return fmt.Sprintf("(%s %s= %s)", g.genExpr(n.Target), opSymbol(n.Op), g.genExpr(n.Value))
	case *ast.IncrementExpr:
		return g.genIncDec(n.Operand, n.Prefix, "++")
	case *ast.DecrementExpr:
		return g.genIncDec(n.Operand, n.Prefix, "--")
	case *ast.CallExpr:
		return g.genCall(n)
	case *ast.MethodCallExpr:
		return g.genMethodCall(n)
	case *ast.FieldAccessExpr:
		return g.genFieldAccess(n)
	case *ast.ArrayLiteralExpr:
		return g.genArrayLiteral(n)
	case *ast.ArrayAccessExpr:
		return g.genArrayAccess(n)
	case *ast.ArraySliceExpr:
		return g.genArraySlice(n)
	case *ast.InterpolatedStringExpr:
		return g.genInterpolatedString(n)
	case *ast.LambdaExpr:
		return g.genLambda(n)
	case *ast.AsValExpr:
		// `as val` is purely a checker-time gate; once past the checker
		// it generates identically to its operand.
		return g.genExpr(n.Inner)
	default:
		return "/* unsupported expression */"
	}
}

func (g *Generator) genStringLiteral(n *ast.StringLiteral) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(n.Value)
	raw := fmt.Sprintf("rt_arena_v2_strdup(%s, \"%s\")", g.currentArenaVar, escaped)
	if g.exprAsHandle {
		return g.emitArenaTemp(raw)
	}
	return fmt.Sprintf("((char *)rt_handle_v2_pin(%s))", g.emitArenaTemp(raw))
}

// genBinary lowers an arithmetic or comparison expression according to
// the generator's arithmetic mode: division and modulo always call the
// runtime, everything else is the native C operator inline in
// unchecked mode, or a checked runtime call in checked mode.
func (g *Generator) genBinary(n *ast.BinaryExpr) string {
	left := g.genExpr(n.Left)
	right := g.genExpr(n.Right)

	if n.Op == token.SLASH || n.Op == token.PERCENT {
		if types.IsFloating(n.ExprType()) {
			if n.Op == token.SLASH {
				return fmt.Sprintf("rt_checked_fdiv(%s, %s)", left, right)
			}
			return fmt.Sprintf("rt_checked_fmod(%s, %s)", left, right)
		}
		if n.Op == token.SLASH {
			return fmt.Sprintf("rt_checked_div(%s, %s)", left, right)
		}
		return fmt.Sprintf("rt_checked_mod(%s, %s)", left, right)
	}
	if g.arith == Checked && isArithOp(n.Op) {
		return fmt.Sprintf("rt_checked_%s(%s, %s)", checkedOpName(n.Op), left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, opSymbol(n.Op), right)
}

func isArithOp(op token.Type) bool {
	switch op {
	case token.PLUS, token.MINUS, token.ASTERISK:
		return true
	default:
		return false
	}
}

func checkedOpName(op token.Type) string {
	switch op {
	case token.PLUS:
		return "add"
	case token.MINUS:
		return "sub"
	case token.ASTERISK:
		return "mul"
	default:
		return "op"
	}
}

func (g *Generator) genUnary(n *ast.UnaryExpr) string {
	operand := g.genExpr(n.Operand)
	return fmt.Sprintf("(%s%s)", opSymbol(n.Op), operand)
}

func (g *Generator) genIncDec(operand ast.Expression, prefix bool, op string) string {
	target := g.genExpr(operand)
	if prefix {
		return fmt.Sprintf("(%s%s)", op, target)
	}
	return fmt.Sprintf("(%s%s)", target, op)
}

// genAssign evaluates the RHS under the handle mode the target's type
// calls for, so a string/array store receives a handle rather than a
// pinned raw pointer.
func (g *Generator) genAssign(n *ast.AssignExpr) string {
	target := g.genExpr(n.Target)
	saved := g.exprAsHandle
	g.exprAsHandle = typeIsHandle(n.Target.ExprType())
	value := g.genExpr(n.Value)
	g.exprAsHandle = saved
	return fmt.Sprintf("(%s = %s)", target, value)
}

// genFieldAccess picks the C member operator from the receiver's
// shape: pointer receivers and native structs (raw heap records) go
// through ->, value structs through dot.
func (g *Generator) genFieldAccess(n *ast.FieldAccessExpr) string {
	recv := g.genExpr(n.Receiver)
	switch rt := n.Receiver.ExprType().(type) {
	case *types.Pointer:
		return fmt.Sprintf("%s->%s", recv, n.Field)
	case *types.Struct:
		if decl, ok := g.structs[rt.Name]; ok && decl.IsNative {
			return fmt.Sprintf("%s->%s", recv, n.Field)
		}
	}
	return fmt.Sprintf("%s.%s", recv, n.Field)
}

func (g *Generator) genIndexAssign(n *ast.IndexAssignExpr) string {
	array := g.genExpr(n.Array)
	index := g.genExpr(n.Index)
	value := g.genExpr(n.Value)
	elemType := "void *"
	if arr, ok := n.Array.ExprType().(*types.Array); ok {
		elemType = cType(arr.Element)
	}
	return fmt.Sprintf("(*(%s *)rt_array_at(%s, %s) = %s)", elemType, array, index, value)
}

func (g *Generator) genCall(n *ast.CallExpr) string {
	args := make([]string, 0, len(n.Args)+1)
	if g.needsArena {
		if id, ok := n.Callee.(*ast.Identifier); ok && g.calleeNeedsArena(id.Name) {
			args = append(args, g.currentArenaVar)
		}
	}
	for _, a := range n.Args {
		args = append(args, g.genExpr(a))
	}
	callee := g.genExpr(n.Callee)
	call := fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	if n.IsTailCall {
		// Marked by the optimizer's tail-call pass; the generator
		// simply documents the call site so a future
		// platform-specific backend can choose to lower it specially.
		return "/* tail call */ " + call
	}
	return call
}

// calleeNeedsArena reports whether a called function's own signature
// needs an arena argument threaded through; conservatively true, since
// the generator only has the callee's name at a call site and not its
// full declaration in every context. It always returns true.
func (g *Generator) calleeNeedsArena(name string) bool {
	return true
}

func (g *Generator) genArrayLiteral(n *ast.ArrayLiteralExpr) string {
	elemType := "void *"
	if arr, ok := n.ExprType().(*types.Array); ok {
		elemType = cType(arr.Element)
	}
	elems := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = g.genExpr(el)
	}
	raw := fmt.Sprintf("rt_array_from_literal(%s, sizeof(%s), %d, (%s[]){%s})",
		g.currentArenaVar, elemType, len(elems), elemType, strings.Join(elems, ", "))
	return g.emitArenaTemp(raw)
}

func (g *Generator) genArrayAccess(n *ast.ArrayAccessExpr) string {
	array := g.genExpr(n.Array)
	index := g.genExpr(n.Index)
	elemType := "void *"
	if arr, ok := n.Array.ExprType().(*types.Array); ok {
		elemType = cType(arr.Element)
	}
	return fmt.Sprintf("(*(%s *)rt_array_at(%s, %s))", elemType, array, index)
}

func (g *Generator) genArraySlice(n *ast.ArraySliceExpr) string {
	array := g.genExpr(n.Array)
	start := "0"
	if n.Start != nil {
		start = g.genExpr(n.Start)
	}
	end := fmt.Sprintf("rt_handle_v2_len(%s)", array)
	if n.End != nil {
		end = g.genExpr(n.End)
	}
	elemType := "void *"
	if arr, ok := n.Array.ExprType().(*types.Array); ok {
		elemType = cType(arr.Element)
	}
	raw := fmt.Sprintf("rt_array_slice(%s, %s, sizeof(%s), %s, %s)",
		g.currentArenaVar, array, elemType, start, end)
	return g.emitArenaTemp(raw)
}

// genInterpolatedString concatenates the already string-merged parts
// (the string-merge optimizer pass runs before codegen) into one
// runtime string build.
func (g *Generator) genInterpolatedString(n *ast.InterpolatedStringExpr) string {
	if len(n.Parts) == 1 {
		if s, ok := n.Parts[0].(*ast.StringLiteral); ok {
			return g.genStringLiteral(s)
		}
	}
	parts := make([]string, len(n.Parts))
	for i, p := range n.Parts {
		savedHandle := g.exprAsHandle
		g.exprAsHandle = false
		parts[i] = g.genExpr(p)
		g.exprAsHandle = savedHandle
	}
	raw := fmt.Sprintf("rt_string_concat_all(%s, %d, (const char*[]){%s})",
		g.currentArenaVar, len(parts), strings.Join(parts, ", "))
	return g.emitArenaTemp(raw)
}

func (g *Generator) genLambda(n *ast.LambdaExpr) string {
	// Lambdas are emitted as nested, arena-qualified closures; capture
	// analysis beyond the enclosing arena is out of scope — the
	// generator targets plain C source text, not a native-code backend.
	params := make([]string, 0, len(n.Params)+1)
	if g.currentArenaVar != "" {
		params = append(params, "RtArenaV2 *"+g.currentArenaVar)
	}
	for _, p := range n.Params {
		params = append(params, fmt.Sprintf("%s %s", cType(p.Type), p.Name))
	}
	ret := "void"
	if n.ReturnType != nil {
		ret = cType(n.ReturnType)
	}
	savedOut := g.out
	g.out = &strings.Builder{}
	g.indent++
	for _, s := range n.Body.Statements {
		g.genStmt(s)
	}
	g.indent--
	lambdaBody := g.out.String()
	g.out = savedOut
	return fmt.Sprintf("^%s(%s) { %s }", ret, strings.Join(params, ", "), lambdaBody)
}
