package checker

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/symbols"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// checkStmt dispatches on the statement's concrete type, applying the
// type-checking rules plus the break/continue loop-nesting check.
func (c *Checker) checkStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		c.checkVarDecl(n)
	case *ast.ExprStmt:
		c.checkExpr(n.X)
	case *ast.ReturnStmt:
		c.checkReturn(n)
	case *ast.IfStmt:
		c.checkIf(n)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.addError(n.Tok, "E220", "break outside a loop")
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.addError(n.Tok, "E221", "continue outside a loop")
		}
	case *ast.WhileStmt:
		c.checkWhile(n)
	case *ast.ForEachStmt:
		c.checkForEach(n)
	case *ast.BlockStmt:
		c.checkBlock(n)
	case *ast.FuncDeclStmt:
		c.checkFuncDecl(n)
	case *ast.StructDeclStmt:
		// Already registered and field-checked in collectStructDecls.
	case *ast.NamespaceDeclStmt:
		c.checkNamespace(n)
	}
}

// checkBlock walks a block's statements in order. It does not itself
// implement unreachable-statement removal — that is the optimizer's
// job — but it does open/close a block scope.
func (c *Checker) checkBlock(b *ast.BlockStmt) {
	c.syms.OpenScope(symbols.ScopeBlock)
	c.mem.EnterScope()
	for _, s := range b.Statements {
		c.checkStmt(s)
	}
	c.mem.LeaveScope()
	c.syms.CloseScope()
}

func (c *Checker) checkVarDecl(n *ast.VarDeclStmt) {
	if n.DeclaredType != nil {
		n.DeclaredType = c.resolveDeclaredType(n.DeclaredType)
	}
	if n.Init != nil {
		initType := c.checkExpr(n.Init)
		if call, ok := n.Init.(*ast.CallExpr); ok {
			c.checkNativePointerReturn(call, initType, n.Tok)
		}
		if n.DeclaredType == nil {
			n.DeclaredType = initType
		} else if initType != nil && !types.CoercibleTo(initType, n.DeclaredType) {
			c.addError(n.Tok, "E100", "cannot assign %s to %s %q", initType, n.DeclaredType, n.Name)
		}
	}
	if _, isPtr := n.DeclaredType.(*types.Pointer); isPtr && !c.inNativeFunc() {
		c.addError(n.Tok, "E301", "pointer variable %q declared outside a native function", n.Name)
	}
	if n.DeclaredType == nil {
		// Arrays (and other types) may be declared without an
		// initializer; fall back to any rather than leaving it nil, so
		// later lookups still get a well-formed type.
		n.DeclaredType = types.Any
	}
	if _, err := c.syms.Declare(n.Tok, n.Name, n.DeclaredType, symbols.KindVariable); err != nil {
		c.addError(n.Tok, "E002", "%q already declared in this scope", n.Name)
	}
}

func (c *Checker) checkReturn(n *ast.ReturnStmt) {
	var retType types.Type = types.Void
	if c.curFunc != nil && c.curFunc.ReturnType != nil {
		retType = c.curFunc.ReturnType
	}
	if n.Value == nil {
		if !types.Equals(retType, types.Void) {
			c.addError(n.Tok, "E110", "missing return value for non-void function")
		}
		return
	}
	if types.Equals(retType, types.Void) {
		c.addError(n.Tok, "E111", "unexpected return value in void function")
		return
	}
	valType := c.checkExpr(n.Value)
	if valType != nil && !types.CoercibleTo(valType, retType) {
		c.addError(n.Tok, "E112", "return type %s not coercible to %s", valType, retType)
	}
}

func (c *Checker) checkIf(n *ast.IfStmt) {
	condType := c.checkExpr(n.Cond)
	if condType != nil && !types.Equals(condType, types.Bool) {
		c.addError(n.Tok, "E120", "if condition must be bool, got %s", condType)
	}
	c.checkBlock(n.Then)
	if n.ElseBranch != nil {
		c.checkStmt(n.ElseBranch)
	}
}

func (c *Checker) checkWhile(n *ast.WhileStmt) {
	condType := c.checkExpr(n.Cond)
	if condType != nil && !types.Equals(condType, types.Bool) {
		c.addError(n.Tok, "E121", "while condition must be bool, got %s", condType)
	}
	c.loopDepth++
	c.checkBlock(n.Body)
	c.loopDepth--
}

func (c *Checker) checkForEach(n *ast.ForEachStmt) {
	iterType := c.checkExpr(n.Iterable)
	var elemType types.Type = types.Any
	if arr, ok := iterType.(*types.Array); ok {
		elemType = arr.Element
	} else if iterType != nil {
		c.addError(n.Tok, "E122", "for-each requires an array, got %s", iterType)
	}
	c.syms.OpenScope(symbols.ScopeBlock)
	c.syms.Declare(n.Tok, n.VarName, elemType, symbols.KindVariable)
	c.loopDepth++
	for _, s := range n.Body.Statements {
		c.checkStmt(s)
	}
	c.loopDepth--
	c.syms.CloseScope()
}

func (c *Checker) checkFuncDecl(n *ast.FuncDeclStmt) {
	paramTypes := make([]types.Type, len(n.Params))
	paramQuals := make([]types.MemoryQualifier, len(n.Params))
	for i, p := range n.Params {
		paramTypes[i] = c.resolveDeclaredType(p.Type)
		paramQuals[i] = p.Qual
		if p.Qual == types.QualAsRef && !isPrimitiveScalar(p.Type) {
			c.addError(p.Tok, "E310", "as_ref only legal on a primitive scalar parameter, got %s", p.Type)
		}
		if _, isPtr := p.Type.(*types.Pointer); isPtr && !n.IsNative {
			c.addError(p.Tok, "E302", "pointer parameter %q declared outside a native function", p.Name)
		}
	}
	retType := n.ReturnType
	if retType == nil {
		retType = types.Void
	}
	fnType := &types.Function{Return: retType, Params: paramTypes, ParamQuals: paramQuals}
	if _, err := c.syms.Declare(n.Tok, n.Name, fnType, symbols.KindFunction); err != nil {
		c.addError(n.Tok, "E002", "%q already declared in this scope", n.Name)
	}

	outerFunc := c.curFunc
	c.curFunc = n
	c.syms.OpenScope(symbols.ScopeFunction)
	for i, p := range n.Params {
		if _, err := c.syms.Declare(p.Tok, p.Name, paramTypes[i], symbols.KindParameter); err != nil {
			c.addError(p.Tok, "E002", "duplicate parameter %q", p.Name)
		}
	}
	for _, s := range n.Body.Statements {
		c.checkStmt(s)
	}
	c.syms.CloseScope()
	c.curFunc = outerFunc
}

func (c *Checker) checkNamespace(n *ast.NamespaceDeclStmt) {
	if _, err := c.syms.OpenNamespace(n.Tok, n.Name); err != nil {
		c.addError(n.Tok, "E002", "%q already declared in this scope", n.Name)
		return
	}
	for _, s := range n.Body {
		c.checkStmt(s)
	}
	c.syms.CloseNamespace()
}

func (c *Checker) inNativeFunc() bool {
	return c.curFunc != nil && c.curFunc.IsNative
}

// isPrimitiveScalar reports whether t is one of the primitive kinds
// eligible for an as_ref parameter — any Primitive except the
// placeholder kinds void/nil/any, which are never valid parameter
// types to begin with.
func isPrimitiveScalar(t types.Type) bool {
	p, ok := t.(*types.Primitive)
	if !ok {
		return false
	}
	switch p.Kind() {
	case types.KindVoid, types.KindNil, types.KindAny:
		return false
	default:
		return true
	}
}
