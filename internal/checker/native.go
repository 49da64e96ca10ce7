// Native-boundary rules: the language distinguishes native functions
// (may hold raw pointers) from regular (managed) functions. This file
// implements the five rules governing where pointer types and pointer
// arithmetic may appear, and when a native pointer-returning call must
// be wrapped in `as val` before flowing into managed code.
package checker

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// checkCall implements the call rule (exact arity, each argument
// coercible subject to its parameter's memory qualifier) plus the
// as_ref addressability requirement at call sites.
func (c *Checker) checkCall(n *ast.CallExpr) types.Type {
	calleeType := c.checkExpr(n.Callee)
	fn, ok := calleeType.(*types.Function)
	if !ok {
		if calleeType != nil {
			id, _ := n.Callee.(*ast.Identifier)
			name := "<expr>"
			if id != nil {
				name = id.Name
			}
			c.addError(n.Tok, "E170", "%q is not callable", name)
		}
		for _, a := range n.Args {
			c.checkExpr(a)
		}
		return nil
	}
	if len(n.Args) != len(fn.Params) {
		c.addError(n.Tok, "E171", "arity mismatch: expected %d arguments, got %d", len(fn.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		argType := c.checkExpr(arg)
		if i >= len(fn.Params) {
			continue
		}
		paramType := fn.Params[i]
		qual := types.QualDefault
		if i < len(fn.ParamQuals) {
			qual = fn.ParamQuals[i]
		}
		if qual == types.QualAsRef && !addressableTarget(arg) {
			c.addError(n.Tok, "E172", "argument %d to as_ref parameter must be an addressable storage location", i+1)
		}
		if argType != nil && paramType != nil && !types.CoercibleTo(argType, paramType) {
			c.addError(n.Tok, "E173", "argument %d: cannot coerce %s to %s", i+1, argType, paramType)
		}
	}
	return fn.Return
}

func (c *Checker) checkMethodCall(n *ast.MethodCallExpr) types.Type {
	recvType := c.checkExpr(n.Receiver)
	for _, a := range n.Args {
		c.checkExpr(a)
	}
	arr, ok := recvType.(*types.Array)
	if !ok {
		if recvType != nil {
			c.addError(n.Tok, "E180", "method %q is only defined on arrays, receiver is %s", n.Method, recvType)
		}
		return nil
	}
	switch n.Method {
	case "push", "insert", "clear", "reverse", "remove":
		return types.Void
	case "pop":
		return arr.Element
	case "concat", "clone":
		return arr
	case "indexOf":
		return types.Long
	case "contains":
		return types.Bool
	case "join":
		return types.String
	case "toString", "toStringLatin1", "toHex", "toBase64":
		if byteEl, ok := arr.Element.(*types.Primitive); !ok || byteEl.Kind() != types.KindByte {
			c.addError(n.Tok, "E181", "method %q is only defined on byte arrays", n.Method)
		}
		return types.String
	default:
		c.addError(n.Tok, "E182", "unknown array method %q", n.Method)
		return nil
	}
}

func (c *Checker) checkFieldAccess(n *ast.FieldAccessExpr) types.Type {
	recvType := c.checkExpr(n.Receiver)
	st, ok := recvType.(*types.Struct)
	if !ok {
		if recvType != nil {
			c.addError(n.Tok, "E190", "%q is not a struct field access target (%s)", n.Field, recvType)
		}
		return nil
	}
	ft, ok := st.FieldType(n.Field)
	if !ok {
		c.addError(n.Tok, "E191", "struct %q has no field %q", st.Name, n.Field)
		return nil
	}
	return ft
}

// checkNativePointerReturn rejects a call to a native function
// returning pointer(T), used as the value assigned to a
// regular-function location, unless wrapped in `as val` — except when
// the enclosing function is itself native, in which case it may
// receive the pointer directly.
func (c *Checker) checkNativePointerReturn(call *ast.CallExpr, callType types.Type, tok token.Token) {
	if _, isPtr := callType.(*types.Pointer); !isPtr {
		return
	}
	if c.inNativeFunc() {
		return
	}
	c.addError(tok, "E321", "assigning a native pointer-returning call outside a native function requires `as val`")
}
