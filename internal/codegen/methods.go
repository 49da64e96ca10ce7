// Method dispatch for array and byte-array built-ins: evaluate the
// receiver in non-handle mode, match (element type, method name,
// arity) against the known table, then pin or wrap the result
// depending on the saved handle mode.
package codegen

import (
	"fmt"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/ast"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

func (g *Generator) genMethodCall(n *ast.MethodCallExpr) string {
	savedHandleMode := g.exprAsHandle
	g.exprAsHandle = false
	receiver := g.genExpr(n.Receiver)
	g.exprAsHandle = savedHandleMode

	var elemType types.Type = types.Any
	if arr, ok := n.Receiver.ExprType().(*types.Array); ok {
		elemType = arr.Element
	}
	isByte := false
	if p, ok := elemType.(*types.Primitive); ok && p.Kind() == types.KindByte {
		isByte = true
	}
	ctyp := cType(elemType)

	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}

	arity := map[string]int{
		"push": 1, "clear": 0, "pop": 0, "concat": 1, "indexOf": 1, "contains": 1,
		"clone": 0, "join": 1, "reverse": 0, "insert": 2, "remove": 1,
	}
	if isByte && isByteStringMethodName(n.Method) {
		arity[n.Method] = 0
	}
	if want, ok := arity[n.Method]; !ok || want != len(args) {
		return fmt.Sprintf("/* unknown method %s */", n.Method)
	}

	var result string
	switch n.Method {
	case "push":
		result = fmt.Sprintf("rt_array_push(%s, %s, &(%s){%s}, sizeof(%s))",
			g.currentArenaVar, receiver, ctyp, args[0], ctyp)
	case "clear":
		result = fmt.Sprintf("rt_array_clear(%s)", receiver)
	case "pop":
		result = fmt.Sprintf("({ %s __out; rt_array_pop(%s, &__out, sizeof(%s)); __out; })", ctyp, receiver, ctyp)
	case "concat":
		result = fmt.Sprintf("rt_array_concat(%s, %s, %s, sizeof(%s))", g.currentArenaVar, receiver, args[0], ctyp)
	case "indexOf":
		result = fmt.Sprintf("rt_array_indexof(%s, &(%s){%s}, sizeof(%s))", receiver, ctyp, args[0], ctyp)
	case "contains":
		result = fmt.Sprintf("rt_array_contains(%s, &(%s){%s}, sizeof(%s))", receiver, ctyp, args[0], ctyp)
	case "clone":
		result = fmt.Sprintf("rt_array_clone(%s, %s, sizeof(%s))", g.currentArenaVar, receiver, ctyp)
	case "join":
		result = fmt.Sprintf("rt_array_join(%s, %s, %s)", g.currentArenaVar, receiver, args[0])
	case "reverse":
		result = fmt.Sprintf("rt_array_reverse(%s, sizeof(%s))", receiver, ctyp)
	case "insert":
		result = fmt.Sprintf("rt_array_insert(%s, %s, &(%s){%s}, %s, sizeof(%s))",
			g.currentArenaVar, receiver, ctyp, args[0], args[1], ctyp)
	case "remove":
		result = fmt.Sprintf("rt_array_remove(%s, %s, sizeof(%s))", receiver, args[0], ctyp)
	default:
		if isByte {
			result = g.genByteArrayMethod(n.Method, receiver)
		}
	}
	if result == "" {
		return fmt.Sprintf("/* unknown method %s */", n.Method)
	}

	isByteStringMethod := isByte && isByteStringMethodName(n.Method)
	if isByteStringMethod {
		if !savedHandleMode {
			return fmt.Sprintf("((char *)rt_handle_v2_pin(%s))", result)
		}
		return result
	}
	if savedHandleMode && n.Method == "join" {
		return fmt.Sprintf("rt_arena_v2_strdup(%s, %s)", g.currentArenaVar, result)
	}
	return result
}

func (g *Generator) genByteArrayMethod(method, receiver string) string {
	switch method {
	case "toString":
		return fmt.Sprintf("rt_byte_array_to_string(%s, %s)", g.currentArenaVar, receiver)
	case "toStringLatin1":
		return fmt.Sprintf("rt_byte_array_to_string_latin1(%s, %s)", g.currentArenaVar, receiver)
	case "toHex":
		return fmt.Sprintf("rt_byte_array_to_hex(%s, %s)", g.currentArenaVar, receiver)
	case "toBase64":
		return fmt.Sprintf("rt_byte_array_to_base64(%s, %s)", g.currentArenaVar, receiver)
	default:
		return ""
	}
}

func isByteStringMethodName(method string) bool {
	switch method {
	case "toString", "toStringLatin1", "toHex", "toBase64":
		return true
	default:
		return false
	}
}

