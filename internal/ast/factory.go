package ast

import (
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

// Factory functions are the only legal way to construct a node: every
// one allocates from the supplied arena, so no node ever implements
// independent destruction. The parser (an external collaborator, out
// of core scope) is the only intended caller.

func NewModule(a *arena.Arena, file string, stmts []Statement) *Module {
	return arena.New(a, Module{File: file, Statements: stmts})
}

// DupToken copies a token's backing text into the arena. Tokens are
// values and copy freely, but their Lexeme/Literal strings may alias a
// lexer-owned buffer; a caller that stores a token beyond the lexer's
// lifetime duplicates it explicitly.
func DupToken(a *arena.Arena, t token.Token) token.Token {
	t.Lexeme = a.Dup(t.Lexeme)
	t.Literal = a.Dup(t.Literal)
	t.File = a.Dup(t.File)
	return t
}

func NewIntLiteral(a *arena.Arena, tok token.Token, value int64) *IntLiteral {
	return arena.New(a, IntLiteral{Tok: tok, Value: value})
}

func NewLongLiteral(a *arena.Arena, tok token.Token, value int64) *LongLiteral {
	return arena.New(a, LongLiteral{Tok: tok, Value: value})
}

func NewDoubleLiteral(a *arena.Arena, tok token.Token, value float64) *DoubleLiteral {
	return arena.New(a, DoubleLiteral{Tok: tok, Value: value})
}

func NewFloatLiteral(a *arena.Arena, tok token.Token, value float32) *FloatLiteral {
	return arena.New(a, FloatLiteral{Tok: tok, Value: value})
}

func NewBoolLiteral(a *arena.Arena, tok token.Token, value bool) *BoolLiteral {
	return arena.New(a, BoolLiteral{Tok: tok, Value: value})
}

func NewCharLiteral(a *arena.Arena, tok token.Token, value byte) *CharLiteral {
	return arena.New(a, CharLiteral{Tok: tok, Value: value})
}

func NewByteLiteral(a *arena.Arena, tok token.Token, value byte) *ByteLiteral {
	return arena.New(a, ByteLiteral{Tok: tok, Value: value})
}

func NewStringLiteral(a *arena.Arena, tok token.Token, value string) *StringLiteral {
	return arena.New(a, StringLiteral{Tok: tok, Value: a.Dup(value)})
}

func NewNilLiteral(a *arena.Arena, tok token.Token) *NilLiteral {
	return arena.New(a, NilLiteral{Tok: tok})
}

func NewIdentifier(a *arena.Arena, tok token.Token, name string) *Identifier {
	return arena.New(a, Identifier{Tok: tok, Name: name})
}

func NewBinaryExpr(a *arena.Arena, tok token.Token, op token.Type, left, right Expression) *BinaryExpr {
	return arena.New(a, BinaryExpr{Tok: tok, Op: op, Left: left, Right: right})
}

func NewUnaryExpr(a *arena.Arena, tok token.Token, op token.Type, operand Expression) *UnaryExpr {
	return arena.New(a, UnaryExpr{Tok: tok, Op: op, Operand: operand})
}

func NewAssignExpr(a *arena.Arena, tok token.Token, target, value Expression) *AssignExpr {
	return arena.New(a, AssignExpr{Tok: tok, Target: target, Value: value})
}

func NewIndexAssignExpr(a *arena.Arena, tok token.Token, array, index, value Expression) *IndexAssignExpr {
	return arena.New(a, IndexAssignExpr{Tok: tok, Array: array, Index: index, Value: value})
}

func NewCompoundAssignExpr(a *arena.Arena, tok token.Token, op token.Type, target, value Expression) *CompoundAssignExpr {
	return arena.New(a, CompoundAssignExpr{Tok: tok, Op: op, Target: target, Value: value})
}

func NewIncrementExpr(a *arena.Arena, tok token.Token, operand Expression, prefix bool) *IncrementExpr {
	return arena.New(a, IncrementExpr{Tok: tok, Operand: operand, Prefix: prefix})
}

func NewDecrementExpr(a *arena.Arena, tok token.Token, operand Expression, prefix bool) *DecrementExpr {
	return arena.New(a, DecrementExpr{Tok: tok, Operand: operand, Prefix: prefix})
}

func NewCallExpr(a *arena.Arena, tok token.Token, callee Expression, args []Expression) *CallExpr {
	return arena.New(a, CallExpr{Tok: tok, Callee: callee, Args: args})
}

func NewMethodCallExpr(a *arena.Arena, tok token.Token, receiver Expression, method string, args []Expression) *MethodCallExpr {
	return arena.New(a, MethodCallExpr{Tok: tok, Receiver: receiver, Method: method, Args: args})
}

func NewFieldAccessExpr(a *arena.Arena, tok token.Token, receiver Expression, field string) *FieldAccessExpr {
	return arena.New(a, FieldAccessExpr{Tok: tok, Receiver: receiver, Field: field})
}

func NewArrayLiteralExpr(a *arena.Arena, tok token.Token, elements []Expression) *ArrayLiteralExpr {
	return arena.New(a, ArrayLiteralExpr{Tok: tok, Elements: elements})
}

func NewArrayAccessExpr(a *arena.Arena, tok token.Token, array, index Expression) *ArrayAccessExpr {
	return arena.New(a, ArrayAccessExpr{Tok: tok, Array: array, Index: index})
}

func NewArraySliceExpr(a *arena.Arena, tok token.Token, array, start, end Expression) *ArraySliceExpr {
	return arena.New(a, ArraySliceExpr{Tok: tok, Array: array, Start: start, End: end})
}

func NewInterpolatedStringExpr(a *arena.Arena, tok token.Token, parts []Expression) *InterpolatedStringExpr {
	return arena.New(a, InterpolatedStringExpr{Tok: tok, Parts: parts})
}

func NewLambdaExpr(a *arena.Arena, tok token.Token, params []Param, body *BlockStmt) *LambdaExpr {
	return arena.New(a, LambdaExpr{Tok: tok, Params: params, Body: body})
}

func NewAsValExpr(a *arena.Arena, tok token.Token, inner Expression) *AsValExpr {
	return arena.New(a, AsValExpr{Tok: tok, Inner: inner})
}

func NewVarDeclStmt(a *arena.Arena, tok token.Token, name string, init Expression) *VarDeclStmt {
	return arena.New(a, VarDeclStmt{Tok: tok, Name: name, Init: init})
}

func NewExprStmt(a *arena.Arena, tok token.Token, x Expression) *ExprStmt {
	return arena.New(a, ExprStmt{Tok: tok, X: x})
}

func NewReturnStmt(a *arena.Arena, tok token.Token, value Expression) *ReturnStmt {
	return arena.New(a, ReturnStmt{Tok: tok, Value: value})
}

func NewIfStmt(a *arena.Arena, tok token.Token, cond Expression, then *BlockStmt, elseBranch Statement) *IfStmt {
	return arena.New(a, IfStmt{Tok: tok, Cond: cond, Then: then, ElseBranch: elseBranch})
}

func NewBreakStmt(a *arena.Arena, tok token.Token) *BreakStmt {
	return arena.New(a, BreakStmt{Tok: tok})
}

func NewContinueStmt(a *arena.Arena, tok token.Token) *ContinueStmt {
	return arena.New(a, ContinueStmt{Tok: tok})
}

func NewWhileStmt(a *arena.Arena, tok token.Token, cond Expression, body *BlockStmt) *WhileStmt {
	return arena.New(a, WhileStmt{Tok: tok, Cond: cond, Body: body})
}

func NewForEachStmt(a *arena.Arena, tok token.Token, varName string, iterable Expression, body *BlockStmt) *ForEachStmt {
	return arena.New(a, ForEachStmt{Tok: tok, VarName: varName, Iterable: iterable, Body: body})
}

func NewBlockStmt(a *arena.Arena, tok token.Token, statements []Statement) *BlockStmt {
	return arena.New(a, BlockStmt{Tok: tok, Statements: statements})
}

func NewFuncDeclStmt(a *arena.Arena, tok token.Token, name string, params []Param, body *BlockStmt, isNative bool) *FuncDeclStmt {
	return arena.New(a, FuncDeclStmt{Tok: tok, Name: name, Params: params, Body: body, IsNative: isNative})
}

func NewStructDeclStmt(a *arena.Arena, tok token.Token, name string, isNative bool) *StructDeclStmt {
	return arena.New(a, StructDeclStmt{Tok: tok, Name: name, IsNative: isNative})
}

func NewNamespaceDeclStmt(a *arena.Arena, tok token.Token, name string, body []Statement) *NamespaceDeclStmt {
	return arena.New(a, NamespaceDeclStmt{Tok: tok, Name: name, Body: body})
}
