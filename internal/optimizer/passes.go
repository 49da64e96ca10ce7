package optimizer

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

// --- pass 3: algebraic no-ops ------------------------------------------

// simplifyNoOpsBlock rewrites algebraic no-op patterns: x+0→x, 0+x→x,
// x-0→x, x*1→x, 1*x→x, x/1→x, !!x→x, -(-x)→x. x*0 is deliberately left
// alone since the operand may have side effects.
func (o *Optimizer) simplifyNoOpsBlock(b *ast.BlockStmt) {
	for i, s := range b.Statements {
		b.Statements[i] = o.simplifyNoOpsStmt(s)
	}
}

func (o *Optimizer) simplifyNoOpsStmt(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.ExprStmt:
		n.X = o.simplifyNoOpsExpr(n.X)
		return n
	case *ast.VarDeclStmt:
		if n.Init != nil {
			n.Init = o.simplifyNoOpsExpr(n.Init)
		}
		return n
	case *ast.ReturnStmt:
		if n.Value != nil {
			n.Value = o.simplifyNoOpsExpr(n.Value)
		}
		return n
	case *ast.IfStmt:
		n.Cond = o.simplifyNoOpsExpr(n.Cond)
		o.simplifyNoOpsBlock(n.Then)
		if blk, ok := n.ElseBranch.(*ast.BlockStmt); ok {
			o.simplifyNoOpsBlock(blk)
		} else if n.ElseBranch != nil {
			n.ElseBranch = o.simplifyNoOpsStmt(n.ElseBranch)
		}
		return n
	case *ast.WhileStmt:
		n.Cond = o.simplifyNoOpsExpr(n.Cond)
		o.simplifyNoOpsBlock(n.Body)
		return n
	case *ast.ForEachStmt:
		o.simplifyNoOpsBlock(n.Body)
		return n
	case *ast.BlockStmt:
		o.simplifyNoOpsBlock(n)
		return n
	default:
		return s
	}
}

func (o *Optimizer) simplifyNoOpsExpr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.BinaryExpr:
		n.Left = o.simplifyNoOpsExpr(n.Left)
		n.Right = o.simplifyNoOpsExpr(n.Right)
		if simplified, ok := exprNoOp(n); ok {
			o.Stats.NoOpsSimplified++
			return o.simplifyNoOpsExpr(simplified)
		}
		return n
	case *ast.UnaryExpr:
		n.Operand = o.simplifyNoOpsExpr(n.Operand)
		if simplified, ok := unaryNoOp(n); ok {
			o.Stats.NoOpsSimplified++
			return o.simplifyNoOpsExpr(simplified)
		}
		return n
	case *ast.CallExpr:
		for i := range n.Args {
			n.Args[i] = o.simplifyNoOpsExpr(n.Args[i])
		}
		return n
	case *ast.AssignExpr:
		n.Value = o.simplifyNoOpsExpr(n.Value)
		return n
	case *ast.ArrayLiteralExpr:
		for i := range n.Elements {
			n.Elements[i] = o.simplifyNoOpsExpr(n.Elements[i])
		}
		return n
	default:
		return e
	}
}

// exprNoOp detects a binary expression that reduces to its operand.
func exprNoOp(n *ast.BinaryExpr) (ast.Expression, bool) {
	switch n.Op {
	case token.PLUS:
		if isLiteralZero(n.Right) {
			return n.Left, true
		}
		if isLiteralZero(n.Left) {
			return n.Right, true
		}
	case token.MINUS:
		if isLiteralZero(n.Right) {
			return n.Left, true
		}
	case token.ASTERISK:
		if isLiteralOne(n.Right) {
			return n.Left, true
		}
		if isLiteralOne(n.Left) {
			return n.Right, true
		}
		// x*0 is intentionally not simplified: the operand may have
		// side effects.
	case token.SLASH:
		if isLiteralOne(n.Right) {
			return n.Left, true
		}
	}
	return nil, false
}

// unaryNoOp mirrors expr_is_noop's EXPR_UNARY case: double negation,
// boolean or numeric.
func unaryNoOp(n *ast.UnaryExpr) (ast.Expression, bool) {
	inner, ok := n.Operand.(*ast.UnaryExpr)
	if !ok || inner.Op != n.Op {
		return nil, false
	}
	if n.Op == token.BANG || n.Op == token.MINUS {
		return inner.Operand, true
	}
	return nil, false
}

// --- pass 4: unreachable-statement removal ------------------------------

// removeUnreachable drops, inside every block, any statement following
// the first terminator.
func (o *Optimizer) removeUnreachable(b *ast.BlockStmt) {
	for i, s := range b.Statements {
		o.removeUnreachableIn(s)
		if ast.IsTerminator(s) && i+1 < len(b.Statements) {
			o.Stats.StatementsRemoved += len(b.Statements) - (i + 1)
			b.Statements = b.Statements[:i+1]
			return
		}
	}
}

func (o *Optimizer) removeUnreachableIn(s ast.Statement) {
	switch n := s.(type) {
	case *ast.IfStmt:
		o.removeUnreachable(n.Then)
		if n.ElseBranch != nil {
			o.removeUnreachableIn(n.ElseBranch)
		}
	case *ast.WhileStmt:
		o.removeUnreachable(n.Body)
	case *ast.ForEachStmt:
		o.removeUnreachable(n.Body)
	case *ast.BlockStmt:
		o.removeUnreachable(n)
	}
}

// --- pass 5: unused-variable elimination ---------------------------------

// eliminateUnusedVars removes a var declaration if no later expression
// within the function mentions it by name. Uses are collected
// conservatively across the entire function body (all branches).
func (o *Optimizer) eliminateUnusedVars(body *ast.BlockStmt) {
	used := make(map[string]bool)
	collectIdentUses(body, used)
	o.pruneUnusedIn(body, used)
}

func (o *Optimizer) pruneUnusedIn(b *ast.BlockStmt, used map[string]bool) {
	kept := b.Statements[:0]
	for _, s := range b.Statements {
		if vd, ok := s.(*ast.VarDeclStmt); ok && !used[vd.Name] {
			o.Stats.VariablesRemoved++
			o.Stats.StatementsRemoved++
			continue
		}
		o.pruneUnusedNested(s, used)
		kept = append(kept, s)
	}
	b.Statements = kept
}

func (o *Optimizer) pruneUnusedNested(s ast.Statement, used map[string]bool) {
	switch n := s.(type) {
	case *ast.IfStmt:
		o.pruneUnusedIn(n.Then, used)
		if n.ElseBranch != nil {
			o.pruneUnusedNested(n.ElseBranch, used)
		}
	case *ast.WhileStmt:
		o.pruneUnusedIn(n.Body, used)
	case *ast.ForEachStmt:
		o.pruneUnusedIn(n.Body, used)
	case *ast.BlockStmt:
		o.pruneUnusedIn(n, used)
	}
}

// collectIdentUses walks every statement and expression in the subtree
// rooted at s, recording every Identifier name it finds anywhere other
// than the declared-name slot of a VarDeclStmt itself.
func collectIdentUses(s ast.Statement, used map[string]bool) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		if n.Init != nil {
			collectIdentUsesExpr(n.Init, used)
		}
	case *ast.ExprStmt:
		collectIdentUsesExpr(n.X, used)
	case *ast.ReturnStmt:
		if n.Value != nil {
			collectIdentUsesExpr(n.Value, used)
		}
	case *ast.IfStmt:
		collectIdentUsesExpr(n.Cond, used)
		collectIdentUses(n.Then, used)
		if n.ElseBranch != nil {
			collectIdentUses(n.ElseBranch, used)
		}
	case *ast.WhileStmt:
		collectIdentUsesExpr(n.Cond, used)
		collectIdentUses(n.Body, used)
	case *ast.ForEachStmt:
		collectIdentUsesExpr(n.Iterable, used)
		collectIdentUses(n.Body, used)
	case *ast.BlockStmt:
		for _, inner := range n.Statements {
			collectIdentUses(inner, used)
		}
	}
}

func collectIdentUsesExpr(e ast.Expression, used map[string]bool) {
	switch n := e.(type) {
	case *ast.Identifier:
		used[n.Name] = true
	case *ast.BinaryExpr:
		collectIdentUsesExpr(n.Left, used)
		collectIdentUsesExpr(n.Right, used)
	case *ast.UnaryExpr:
		collectIdentUsesExpr(n.Operand, used)
	case *ast.AssignExpr:
		collectIdentUsesExpr(n.Target, used)
		collectIdentUsesExpr(n.Value, used)
	case *ast.IndexAssignExpr:
		collectIdentUsesExpr(n.Array, used)
		collectIdentUsesExpr(n.Index, used)
		collectIdentUsesExpr(n.Value, used)
	case *ast.CompoundAssignExpr:
		collectIdentUsesExpr(n.Target, used)
		collectIdentUsesExpr(n.Value, used)
	case *ast.IncrementExpr:
		collectIdentUsesExpr(n.Operand, used)
	case *ast.DecrementExpr:
		collectIdentUsesExpr(n.Operand, used)
	case *ast.CallExpr:
		collectIdentUsesExpr(n.Callee, used)
		for _, a := range n.Args {
			collectIdentUsesExpr(a, used)
		}
	case *ast.MethodCallExpr:
		collectIdentUsesExpr(n.Receiver, used)
		for _, a := range n.Args {
			collectIdentUsesExpr(a, used)
		}
	case *ast.FieldAccessExpr:
		collectIdentUsesExpr(n.Receiver, used)
	case *ast.ArrayLiteralExpr:
		for _, el := range n.Elements {
			collectIdentUsesExpr(el, used)
		}
	case *ast.ArrayAccessExpr:
		collectIdentUsesExpr(n.Array, used)
		collectIdentUsesExpr(n.Index, used)
	case *ast.ArraySliceExpr:
		collectIdentUsesExpr(n.Array, used)
		if n.Start != nil {
			collectIdentUsesExpr(n.Start, used)
		}
		if n.End != nil {
			collectIdentUsesExpr(n.End, used)
		}
	case *ast.InterpolatedStringExpr:
		for _, p := range n.Parts {
			collectIdentUsesExpr(p, used)
		}
	case *ast.LambdaExpr:
		if n.Body != nil {
			collectIdentUses(n.Body, used)
		}
	case *ast.AsValExpr:
		collectIdentUsesExpr(n.Inner, used)
	}
}

// --- pass 6: string-literal merging ---------------------------------------

// mergeStringsBlock collapses any run of adjacent string-typed literal
// parts in an interpolated-string or +-concatenation expression into a
// single literal.
func (o *Optimizer) mergeStringsBlock(b *ast.BlockStmt) {
	for i, s := range b.Statements {
		b.Statements[i] = o.mergeStringsStmt(s)
	}
}

func (o *Optimizer) mergeStringsStmt(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.ExprStmt:
		n.X = o.mergeStringsExpr(n.X)
		return n
	case *ast.VarDeclStmt:
		if n.Init != nil {
			n.Init = o.mergeStringsExpr(n.Init)
		}
		return n
	case *ast.ReturnStmt:
		if n.Value != nil {
			n.Value = o.mergeStringsExpr(n.Value)
		}
		return n
	case *ast.IfStmt:
		n.Cond = o.mergeStringsExpr(n.Cond)
		o.mergeStringsBlock(n.Then)
		if n.ElseBranch != nil {
			n.ElseBranch = o.mergeStringsStmt(n.ElseBranch)
		}
		return n
	case *ast.WhileStmt:
		o.mergeStringsBlock(n.Body)
		return n
	case *ast.ForEachStmt:
		o.mergeStringsBlock(n.Body)
		return n
	case *ast.BlockStmt:
		o.mergeStringsBlock(n)
		return n
	default:
		return s
	}
}

func (o *Optimizer) mergeStringsExpr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.InterpolatedStringExpr:
		n.Parts = o.mergeAdjacentStringLiterals(n.Parts)
		if len(n.Parts) == 1 {
			if lit, ok := n.Parts[0].(*ast.StringLiteral); ok {
				return lit
			}
		}
		return n
	case *ast.BinaryExpr:
		n.Left = o.mergeStringsExpr(n.Left)
		n.Right = o.mergeStringsExpr(n.Right)
		if n.Op == token.PLUS {
			if l, ok := n.Left.(*ast.StringLiteral); ok {
				if r, ok := n.Right.(*ast.StringLiteral); ok {
					o.Stats.StringsMerged++
					merged := ast.NewStringLiteral(o.arena, n.Tok, l.Value+r.Value)
					merged.SetExprType(l.ExprType())
					return merged
				}
			}
		}
		return n
	default:
		return e
	}
}

// mergeAdjacentStringLiterals collapses runs of adjacent
// *ast.StringLiteral parts into one, leaving non-string parts (and
// runs of length 1) untouched.
func (o *Optimizer) mergeAdjacentStringLiterals(parts []ast.Expression) []ast.Expression {
	out := make([]ast.Expression, 0, len(parts))
	i := 0
	for i < len(parts) {
		lit, ok := parts[i].(*ast.StringLiteral)
		if !ok {
			out = append(out, parts[i])
			i++
			continue
		}
		merged := lit.Value
		j := i + 1
		for j < len(parts) {
			next, ok := parts[j].(*ast.StringLiteral)
			if !ok {
				break
			}
			merged += next.Value
			j++
		}
		if j-i > 1 {
			o.Stats.StringsMerged += j - i - 1
			newLit := ast.NewStringLiteral(o.arena, lit.Tok, merged)
			newLit.SetExprType(lit.ExprType())
			out = append(out, newLit)
		} else {
			out = append(out, lit)
		}
		i = j
	}
	return out
}

// --- pass 7: tail-call marking --------------------------------------------

// markTailCalls sets IsTailCall on every call expression that is the
// direct value of a return statement in fn's body and calls fn by
// name, with nothing else combined between the return and the call.
func (o *Optimizer) markTailCalls(fn *ast.FuncDeclStmt) {
	markTailCallsIn(fn.Body, fn.Name, &o.Stats)
}

func markTailCallsIn(b *ast.BlockStmt, fnName string, stats *Stats) {
	for _, s := range b.Statements {
		markTailCallsStmt(s, fnName, stats)
	}
}

func markTailCallsStmt(s ast.Statement, fnName string, stats *Stats) {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		if call, ok := n.Value.(*ast.CallExpr); ok {
			if id, ok := call.Callee.(*ast.Identifier); ok && id.Name == fnName {
				call.IsTailCall = true
				stats.TailCallsMarked++
			}
		}
	case *ast.IfStmt:
		markTailCallsIn(n.Then, fnName, stats)
		if n.ElseBranch != nil {
			markTailCallsStmt(n.ElseBranch, fnName, stats)
		}
	case *ast.WhileStmt:
		markTailCallsIn(n.Body, fnName, stats)
	case *ast.ForEachStmt:
		markTailCallsIn(n.Body, fnName, stats)
	case *ast.BlockStmt:
		markTailCallsIn(n, fnName, stats)
	}
}
