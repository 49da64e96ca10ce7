// Package ast defines the AST node set the parser builds, the checker
// annotates, the optimizer rewrites in place, and the code generator
// walks. Every node is allocated from an *arena.Arena via the New*
// factories in factory.go; nothing here calls new/make for a node
// directly, so every node shares the module's single arena lifetime and
// implements no independent destruction.
package ast

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in an expression position. ExprType
// is unset (nil) until the type checker annotates it; every expression
// accepted by the checker ends up with a non-nil, well-formed ExprType.
type Expression interface {
	Node
	expressionNode()
	ExprType() types.Type
	SetExprType(types.Type)
}

// exprBase is embedded by every Expression to supply the ExprType
// storage and accessor pair, instead of repeating it per node.
type exprBase struct {
	Type types.Type
}

func (e *exprBase) ExprType() types.Type     { return e.Type }
func (e *exprBase) SetExprType(t types.Type) { e.Type = t }

// Module is a named translation unit: a source filename and an ordered
// list of top-level statements.
type Module struct {
	File       string
	Statements []Statement
}

func (m *Module) Accept(v Visitor) { v.VisitModule(m) }
func (m *Module) TokenLiteral() string {
	if len(m.Statements) > 0 {
		return m.Statements[0].TokenLiteral()
	}
	return ""
}
func (m *Module) GetToken() token.Token {
	if m == nil || len(m.Statements) == 0 {
		return token.Token{}
	}
	return m.Statements[0].GetToken()
}
