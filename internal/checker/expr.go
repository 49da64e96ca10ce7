package checker

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/symbols"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// checkExpr applies the type-checking rules to e, writes the resolved
// Type onto e via SetExprType, and returns it. A nil return means the
// subtree is unrecoverably ill-typed and callers should not propagate
// it into a further coercion check (an error has already been
// recorded).
func (c *Checker) checkExpr(e ast.Expression) types.Type {
	if e == nil {
		return nil
	}
	t := c.resolveExpr(e)
	if t != nil {
		e.SetExprType(t)
	}
	return t
}

func (c *Checker) resolveExpr(e ast.Expression) types.Type {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return types.Int
	case *ast.LongLiteral:
		return types.Long
	case *ast.DoubleLiteral:
		return types.Double
	case *ast.FloatLiteral:
		return types.Float
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.CharLiteral:
		return types.Char
	case *ast.ByteLiteral:
		return types.Byte
	case *ast.StringLiteral:
		return types.String
	case *ast.NilLiteral:
		return types.Nil
	case *ast.Identifier:
		return c.checkIdentifier(n)
	case *ast.BinaryExpr:
		return c.checkBinary(n)
	case *ast.UnaryExpr:
		return c.checkUnary(n)
	case *ast.AssignExpr:
		return c.checkAssign(n)
	case *ast.IndexAssignExpr:
		return c.checkIndexAssign(n)
	case *ast.CompoundAssignExpr:
		return c.checkCompoundAssign(n)
	case *ast.IncrementExpr:
		return c.checkIncDec(n.Tok, n.Operand)
	case *ast.DecrementExpr:
		return c.checkIncDec(n.Tok, n.Operand)
	case *ast.CallExpr:
		return c.checkCall(n)
	case *ast.MethodCallExpr:
		return c.checkMethodCall(n)
	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(n)
	case *ast.ArrayLiteralExpr:
		return c.checkArrayLiteral(n)
	case *ast.ArrayAccessExpr:
		return c.checkArrayAccess(n)
	case *ast.ArraySliceExpr:
		return c.checkArraySlice(n)
	case *ast.InterpolatedStringExpr:
		return c.checkInterpolatedString(n)
	case *ast.LambdaExpr:
		return c.checkLambda(n)
	case *ast.AsValExpr:
		return c.checkAsVal(n)
	default:
		return nil
	}
}

func (c *Checker) checkIdentifier(n *ast.Identifier) types.Type {
	sym, ok := c.syms.Lookup(n.Name)
	if !ok {
		c.addError(n.Tok, "E001", "unknown identifier %q", n.Name)
		return nil
	}
	return sym.Type
}

func (c *Checker) checkBinary(n *ast.BinaryExpr) types.Type {
	lt := c.checkExpr(n.Left)
	rt := c.checkExpr(n.Right)
	if lt == nil || rt == nil {
		return nil
	}
	switch n.Op {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT:
		return c.checkArithmetic(n.Tok, n.Op, lt, rt)
	case token.EQ, token.NOT_EQ:
		return c.checkEquality(n.Tok, lt, rt)
	case token.LT, token.GT, token.LTE, token.GTE:
		if isPointerType(lt) || isPointerType(rt) {
			c.addError(n.Tok, "E134", "pointers only support == and != comparison")
			return nil
		}
		if !compatibleForOrdering(lt, rt) {
			c.addError(n.Tok, "E130", "operands of %s not comparable: %s, %s", n.Op, lt, rt)
			return nil
		}
		return types.Bool
	case token.AND, token.OR:
		if !types.Equals(lt, types.Bool) || !types.Equals(rt, types.Bool) {
			c.addError(n.Tok, "E131", "operands of %s must be bool", n.Op)
			return nil
		}
		return types.Bool
	default:
		c.addError(n.Tok, "E132", "unsupported binary operator %s", n.Op)
		return nil
	}
}

func (c *Checker) checkArithmetic(tok token.Token, op token.Type, lt, rt types.Type) types.Type {
	if isPointerType(lt) || isPointerType(rt) {
		c.addError(tok, "E303", "pointer arithmetic is not permitted")
		return nil
	}
	result, ok := types.ResultOfArithmetic(lt, rt)
	if !ok {
		c.addError(tok, "E101", "operands of %s must be numeric: %s, %s", op, lt, rt)
		return nil
	}
	// Division/modulo by a literal zero is a runtime concern (the
	// optimizer's constant-fold pass explicitly leaves it alone); the
	// checker only validates operand types here.
	return result
}

func (c *Checker) checkEquality(tok token.Token, lt, rt types.Type) types.Type {
	if isPointerType(lt) || isPointerType(rt) {
		lOK := isPointerType(lt) || isNilType(lt)
		rOK := isPointerType(rt) || isNilType(rt)
		if lOK && rOK {
			return types.Bool
		}
		c.addError(tok, "E133", "cannot compare %s with %s", lt, rt)
		return nil
	}
	if types.Equals(lt, rt) || (types.IsNumeric(lt) && types.IsNumeric(rt)) {
		return types.Bool
	}
	c.addError(tok, "E133", "cannot compare %s with %s", lt, rt)
	return nil
}

func compatibleForOrdering(lt, rt types.Type) bool {
	if types.IsNumeric(lt) && types.IsNumeric(rt) {
		return true
	}
	return types.Equals(lt, rt)
}

func (c *Checker) checkUnary(n *ast.UnaryExpr) types.Type {
	ot := c.checkExpr(n.Operand)
	if ot == nil {
		return nil
	}
	switch n.Op {
	case token.BANG:
		if !types.Equals(ot, types.Bool) {
			c.addError(n.Tok, "E140", "! requires bool, got %s", ot)
			return nil
		}
		return types.Bool
	case token.MINUS:
		if !types.IsNumeric(ot) {
			c.addError(n.Tok, "E141", "unary - requires numeric, got %s", ot)
			return nil
		}
		return ot
	default:
		c.addError(n.Tok, "E142", "unsupported unary operator %s", n.Op)
		return nil
	}
}

// addressableTarget reports whether e is a legal assignment target /
// as_ref argument: a variable, a field access, or an index access.
func addressableTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.FieldAccessExpr, *ast.ArrayAccessExpr:
		return true
	default:
		return false
	}
}

func (c *Checker) checkAssign(n *ast.AssignExpr) types.Type {
	if !addressableTarget(n.Target) {
		c.addError(n.Tok, "E150", "assignment target is not addressable")
	}
	targetType := c.checkExpr(n.Target)
	c.checkValueForTarget(n.Value, targetType, n.Tok)
	return targetType
}

// checkValueForTarget checks value (handling the array-literal
// join-typing special case) and validates coercion to target, plus the
// native-boundary "as val" gate on pointer-returning native calls.
func (c *Checker) checkValueForTarget(value ast.Expression, target types.Type, tok token.Token) types.Type {
	valueType := c.checkExpr(value)
	if valueType == nil || target == nil {
		return valueType
	}
	if call, ok := value.(*ast.CallExpr); ok {
		c.checkNativePointerReturn(call, valueType, tok)
	}
	if !types.CoercibleTo(valueType, target) {
		c.addError(tok, "E100", "cannot assign %s to %s", valueType, target)
	}
	return valueType
}

func (c *Checker) checkIndexAssign(n *ast.IndexAssignExpr) types.Type {
	arrType := c.checkExpr(n.Array)
	idxType := c.checkExpr(n.Index)
	if idxType != nil && !types.IsIntegral(idxType) {
		c.addError(n.Tok, "E160", "array index must be integer-compatible, got %s", idxType)
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		if arrType != nil {
			c.addError(n.Tok, "E161", "indexed assignment target is not an array: %s", arrType)
		}
		c.checkExpr(n.Value)
		return nil
	}
	c.checkValueForTarget(n.Value, arr.Element, n.Tok)
	return arr.Element
}

func (c *Checker) checkCompoundAssign(n *ast.CompoundAssignExpr) types.Type {
	if !addressableTarget(n.Target) {
		c.addError(n.Tok, "E151", "compound-assignment target is not addressable")
	}
	targetType := c.checkExpr(n.Target)
	valueType := c.checkExpr(n.Value)
	if targetType == nil || valueType == nil {
		return targetType
	}
	// `x op= e` type-checks as `x = x op e`.
	result := c.checkArithmetic(n.Tok, n.Op, targetType, valueType)
	if result != nil && !types.CoercibleTo(result, targetType) {
		c.addError(n.Tok, "E102", "cannot assign %s to %s via %s=", result, targetType, n.Op)
	}
	return targetType
}

func (c *Checker) checkIncDec(tok token.Token, operand ast.Expression) types.Type {
	if !addressableTarget(operand) {
		c.addError(tok, "E152", "++/-- operand is not addressable")
	}
	ot := c.checkExpr(operand)
	if ot != nil && !types.Equals(ot, types.Int) && !types.Equals(ot, types.Long) {
		c.addError(tok, "E153", "++/-- requires an int or long storage location, got %s", ot)
	}
	return ot
}

func (c *Checker) checkArrayLiteral(n *ast.ArrayLiteralExpr) types.Type {
	elemTypes := make([]types.Type, 0, len(n.Elements))
	for _, el := range n.Elements {
		if t := c.checkExpr(el); t != nil {
			elemTypes = append(elemTypes, t)
		}
	}
	return &types.Array{Element: types.JoinArrayElement(elemTypes)}
}

func (c *Checker) checkArrayAccess(n *ast.ArrayAccessExpr) types.Type {
	arrType := c.checkExpr(n.Array)
	idxType := c.checkExpr(n.Index)
	if idxType != nil && !types.IsIntegral(idxType) {
		c.addError(n.Tok, "E160", "array index must be integer-compatible, got %s", idxType)
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		if arrType != nil {
			c.addError(n.Tok, "E162", "not an array: %s", arrType)
		}
		return nil
	}
	return arr.Element
}

func (c *Checker) checkArraySlice(n *ast.ArraySliceExpr) types.Type {
	arrType := c.checkExpr(n.Array)
	if n.Start != nil {
		c.checkExpr(n.Start)
	}
	if n.End != nil {
		c.checkExpr(n.End)
	}
	if _, ok := arrType.(*types.Array); !ok {
		if arrType != nil {
			c.addError(n.Tok, "E163", "slice target is not an array: %s", arrType)
		}
		return nil
	}
	return arrType
}

func (c *Checker) checkInterpolatedString(n *ast.InterpolatedStringExpr) types.Type {
	for _, p := range n.Parts {
		c.checkExpr(p)
	}
	return types.String
}

func (c *Checker) checkLambda(n *ast.LambdaExpr) types.Type {
	c.syms.OpenScope(symbols.ScopeFunction)
	paramTypes := make([]types.Type, len(n.Params))
	quals := make([]types.MemoryQualifier, len(n.Params))
	for i, p := range n.Params {
		paramTypes[i] = p.Type
		quals[i] = p.Qual
		c.syms.Declare(p.Tok, p.Name, p.Type, symbols.KindParameter)
	}
	for _, s := range n.Body.Statements {
		c.checkStmt(s)
	}
	c.syms.CloseScope()
	ret := n.ReturnType
	if ret == nil {
		ret = types.Void
	}
	return &types.Function{Return: ret, Params: paramTypes, ParamQuals: quals}
}

func (c *Checker) checkAsVal(n *ast.AsValExpr) types.Type {
	inner := c.checkExpr(n.Inner)
	ptr, ok := inner.(*types.Pointer)
	if !ok {
		c.addError(n.Tok, "E320", "as val applied to a non-pointer-returning expression")
		return inner
	}
	return ptr.Pointee
}

func isPointerType(t types.Type) bool {
	_, ok := t.(*types.Pointer)
	return ok
}

func isNilType(t types.Type) bool {
	p, ok := t.(*types.Primitive)
	return ok && p.Kind() == types.KindNil
}
