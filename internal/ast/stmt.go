package ast

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// stmtBase marks a type as a Statement; it carries no state of its own
// because every statement already has its own Tok field for GetToken.
type stmtBase struct{}

func (stmtBase) statementNode() {}

// VarDeclStmt is `var name: Type = init` (init optional).
type VarDeclStmt struct {
	stmtBase
	Tok          token.Token
	Name         string
	DeclaredType types.Type
	Init         Expression
}

func (n *VarDeclStmt) Accept(v Visitor)      { v.VisitVarDeclStmt(n) }
func (n *VarDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *VarDeclStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ExprStmt wraps an expression evaluated for its side effect.
type ExprStmt struct {
	stmtBase
	Tok token.Token
	X   Expression
}

func (n *ExprStmt) Accept(v Visitor)      { v.VisitExprStmt(n) }
func (n *ExprStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ExprStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ReturnStmt is `return [value]`; a terminator statement.
type ReturnStmt struct {
	stmtBase
	Tok   token.Token
	Value Expression
}

func (n *ReturnStmt) Accept(v Visitor)      { v.VisitReturnStmt(n) }
func (n *ReturnStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ReturnStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// IfStmt is `if cond { then } [else elseBranch]`. ElseBranch may be nil,
// a *BlockStmt, or another *IfStmt (else-if chaining).
type IfStmt struct {
	stmtBase
	Tok        token.Token
	Cond       Expression
	Then       *BlockStmt
	ElseBranch Statement
}

func (n *IfStmt) Accept(v Visitor)      { v.VisitIfStmt(n) }
func (n *IfStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *IfStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// BreakStmt is a terminator statement; the checker rejects one found
// outside a loop body.
type BreakStmt struct {
	stmtBase
	Tok token.Token
}

func (n *BreakStmt) Accept(v Visitor)      { v.VisitBreakStmt(n) }
func (n *BreakStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BreakStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ContinueStmt is a terminator statement; same outside-loop rule as
// BreakStmt.
type ContinueStmt struct {
	stmtBase
	Tok token.Token
}

func (n *ContinueStmt) Accept(v Visitor)      { v.VisitContinueStmt(n) }
func (n *ContinueStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ContinueStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	stmtBase
	Tok  token.Token
	Cond Expression
	Body *BlockStmt
}

func (n *WhileStmt) Accept(v Visitor)      { v.VisitWhileStmt(n) }
func (n *WhileStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *WhileStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// ForEachStmt is `for varName in iterable { body }`.
type ForEachStmt struct {
	stmtBase
	Tok      token.Token
	VarName  string
	Iterable Expression
	Body     *BlockStmt
}

func (n *ForEachStmt) Accept(v Visitor)      { v.VisitForEachStmt(n) }
func (n *ForEachStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *ForEachStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// BlockStmt is a braced statement sequence; the unit the optimizer's
// unreachable-statement removal pass operates over.
type BlockStmt struct {
	stmtBase
	Tok        token.Token
	Statements []Statement
}

func (n *BlockStmt) Accept(v Visitor)      { v.VisitBlockStmt(n) }
func (n *BlockStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *BlockStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// FuncDeclStmt is a function declaration: parameters with memory
// qualifiers, a return type, a body, and the native/regular flag the
// native-boundary rules key off of.
type FuncDeclStmt struct {
	stmtBase
	Tok        token.Token
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *BlockStmt
	IsNative   bool
}

func (n *FuncDeclStmt) Accept(v Visitor)      { v.VisitFuncDeclStmt(n) }
func (n *FuncDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *FuncDeclStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// StructDeclStmt declares a struct type; field duplicate/shadow
// detection runs over Fields at checker time.
type StructDeclStmt struct {
	stmtBase
	Tok      token.Token
	Name     string
	Fields   []types.StructField
	IsNative bool
}

func (n *StructDeclStmt) Accept(v Visitor)      { v.VisitStructDeclStmt(n) }
func (n *StructDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *StructDeclStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// NamespaceDeclStmt introduces a named nested scope reachable by
// qualified lookup (open_namespace/close_namespace).
type NamespaceDeclStmt struct {
	stmtBase
	Tok   token.Token
	Name  string
	Body  []Statement
}

func (n *NamespaceDeclStmt) Accept(v Visitor)      { v.VisitNamespaceDeclStmt(n) }
func (n *NamespaceDeclStmt) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *NamespaceDeclStmt) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Tok
}

// IsTerminator reports whether s is return, break, or continue — the
// three terminator statement kinds; nothing following one in the same
// block is reachable.
func IsTerminator(s Statement) bool {
	switch s.(type) {
	case *ReturnStmt, *BreakStmt, *ContinueStmt:
		return true
	default:
		return false
	}
}
