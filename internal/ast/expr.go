package ast

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

func (*exprBase) expressionNode() {}

// --- Literals ---------------------------------------------------------

type IntLiteral struct {
	exprBase
	Tok   token.Token
	Value int64
}

func (n *IntLiteral) Accept(v Visitor)      { v.VisitIntLiteral(n) }
func (n *IntLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IntLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type LongLiteral struct {
	exprBase
	Tok   token.Token
	Value int64
}

func (n *LongLiteral) Accept(v Visitor)      { v.VisitLongLiteral(n) }
func (n *LongLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *LongLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type DoubleLiteral struct {
	exprBase
	Tok   token.Token
	Value float64
}

func (n *DoubleLiteral) Accept(v Visitor)      { v.VisitDoubleLiteral(n) }
func (n *DoubleLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *DoubleLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type FloatLiteral struct {
	exprBase
	Tok   token.Token
	Value float32
}

func (n *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(n) }
func (n *FloatLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FloatLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type BoolLiteral struct {
	exprBase
	Tok   token.Token
	Value bool
}

func (n *BoolLiteral) Accept(v Visitor)      { v.VisitBoolLiteral(n) }
func (n *BoolLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BoolLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type CharLiteral struct {
	exprBase
	Tok   token.Token
	Value byte
}

func (n *CharLiteral) Accept(v Visitor)      { v.VisitCharLiteral(n) }
func (n *CharLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CharLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type ByteLiteral struct {
	exprBase
	Tok   token.Token
	Value byte
}

func (n *ByteLiteral) Accept(v Visitor)      { v.VisitByteLiteral(n) }
func (n *ByteLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ByteLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type StringLiteral struct {
	exprBase
	Tok   token.Token
	Value string
}

func (n *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(n) }
func (n *StringLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *StringLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type NilLiteral struct {
	exprBase
	Tok token.Token
}

func (n *NilLiteral) Accept(v Visitor)      { v.VisitNilLiteral(n) }
func (n *NilLiteral) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *NilLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// --- Names and composite expressions -----------------------------------

// Identifier is a variable reference.
type Identifier struct {
	exprBase
	Tok  token.Token
	Name string
}

func (n *Identifier) Accept(v Visitor)      { v.VisitIdentifier(n) }
func (n *Identifier) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *Identifier) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// BinaryExpr is `left op right`: arithmetic, comparison, or logical.
type BinaryExpr struct {
	exprBase
	Tok   token.Token
	Op    token.Type
	Left  Expression
	Right Expression
}

func (n *BinaryExpr) Accept(v Visitor)      { v.VisitBinaryExpr(n) }
func (n *BinaryExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BinaryExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// UnaryExpr is `!x` or `-x`.
type UnaryExpr struct {
	exprBase
	Tok     token.Token
	Op      token.Type
	Operand Expression
}

func (n *UnaryExpr) Accept(v Visitor)      { v.VisitUnaryExpr(n) }
func (n *UnaryExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *UnaryExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// AssignExpr is `target = value`. Target must resolve to an
// addressable storage location (Identifier, FieldAccess, ArrayAccess).
type AssignExpr struct {
	exprBase
	Tok    token.Token
	Target Expression
	Value  Expression
}

func (n *AssignExpr) Accept(v Visitor)      { v.VisitAssignExpr(n) }
func (n *AssignExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AssignExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// IndexAssignExpr is `array[index] = value`, kept distinct from
// AssignExpr since the code generator lowers it through
// a dedicated runtime array-store helper rather than the generic
// assignment path.
type IndexAssignExpr struct {
	exprBase
	Tok   token.Token
	Array Expression
	Index Expression
	Value Expression
}

func (n *IndexAssignExpr) Accept(v Visitor)      { v.VisitIndexAssignExpr(n) }
func (n *IndexAssignExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IndexAssignExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// CompoundAssignExpr is `target op= value`; it type-checks it as `target = target op value`.
type CompoundAssignExpr struct {
	exprBase
	Tok    token.Token
	Op     token.Type // underlying arithmetic operator, e.g. PLUS for PLUS_ASSIGN
	Target Expression
	Value  Expression
}

func (n *CompoundAssignExpr) Accept(v Visitor)      { v.VisitCompoundAssignExpr(n) }
func (n *CompoundAssignExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CompoundAssignExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// IncrementExpr / DecrementExpr are `++x`/`x++` and `--x`/`x--` on an
// addressable int/long location.
type IncrementExpr struct {
	exprBase
	Tok     token.Token
	Operand Expression
	Prefix  bool
}

func (n *IncrementExpr) Accept(v Visitor)      { v.VisitIncrementExpr(n) }
func (n *IncrementExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IncrementExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

type DecrementExpr struct {
	exprBase
	Tok     token.Token
	Operand Expression
	Prefix  bool
}

func (n *DecrementExpr) Accept(v Visitor)      { v.VisitDecrementExpr(n) }
func (n *DecrementExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *DecrementExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// CallExpr is `callee(args)`. IsTailCall is set by the optimizer's
// tail-call-marking pass, never by the parser.
type CallExpr struct {
	exprBase
	Tok        token.Token
	Callee     Expression
	Args       []Expression
	IsTailCall bool
}

func (n *CallExpr) Accept(v Visitor)      { v.VisitCallExpr(n) }
func (n *CallExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *CallExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// MethodCallExpr is `receiver.method(args)`, lowered by the generator's
// method dispatcher against the array/byte-array method table.
type MethodCallExpr struct {
	exprBase
	Tok      token.Token
	Receiver Expression
	Method   string
	Args     []Expression
}

func (n *MethodCallExpr) Accept(v Visitor)      { v.VisitMethodCallExpr(n) }
func (n *MethodCallExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *MethodCallExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// FieldAccessExpr is `receiver.field`, an addressable storage location
// eligible as an as_ref call argument.
type FieldAccessExpr struct {
	exprBase
	Tok      token.Token
	Receiver Expression
	Field    string
}

func (n *FieldAccessExpr) Accept(v Visitor)      { v.VisitFieldAccessExpr(n) }
func (n *FieldAccessExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FieldAccessExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ArrayLiteralExpr is `[e1, e2, ...]`.
type ArrayLiteralExpr struct {
	exprBase
	Tok      token.Token
	Elements []Expression
}

func (n *ArrayLiteralExpr) Accept(v Visitor)      { v.VisitArrayLiteralExpr(n) }
func (n *ArrayLiteralExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ArrayLiteralExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ArrayAccessExpr is `a[i]`, an addressable storage location.
type ArrayAccessExpr struct {
	exprBase
	Tok   token.Token
	Array Expression
	Index Expression
}

func (n *ArrayAccessExpr) Accept(v Visitor)      { v.VisitArrayAccessExpr(n) }
func (n *ArrayAccessExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ArrayAccessExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ArraySliceExpr is `a[start..end]`; Start/End are nil when the
// corresponding bound is omitted.
type ArraySliceExpr struct {
	exprBase
	Tok   token.Token
	Array Expression
	Start Expression
	End   Expression
}

func (n *ArraySliceExpr) Accept(v Visitor)      { v.VisitArraySliceExpr(n) }
func (n *ArraySliceExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ArraySliceExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// InterpolatedStringExpr holds the ordered parts of a `"... ${e} ..."`
// literal; string-typed literal Parts may be adjacent before the
// optimizer's string-merge pass collapses runs of them.
type InterpolatedStringExpr struct {
	exprBase
	Tok   token.Token
	Parts []Expression
}

func (n *InterpolatedStringExpr) Accept(v Visitor)      { v.VisitInterpolatedStringExpr(n) }
func (n *InterpolatedStringExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *InterpolatedStringExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// Param is one function or lambda parameter.
type Param struct {
	Tok  token.Token
	Name string
	Type types.Type
	Qual types.MemoryQualifier
}

// LambdaExpr is an anonymous function value.
type LambdaExpr struct {
	exprBase
	Tok        token.Token
	Params     []Param
	ReturnType types.Type
	Body       *BlockStmt
}

func (n *LambdaExpr) Accept(v Visitor)      { v.VisitLambdaExpr(n) }
func (n *LambdaExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *LambdaExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// AsValExpr is the explicit `expr as val` gate for assigning a native
// pointer-returning call's result inside a regular function.
type AsValExpr struct {
	exprBase
	Tok   token.Token
	Inner Expression
}

func (n *AsValExpr) Accept(v Visitor)      { v.VisitAsValExpr(n) }
func (n *AsValExpr) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *AsValExpr) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}
