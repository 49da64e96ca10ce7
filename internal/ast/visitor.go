package ast

// Visitor is implemented by every AST pass (checker, optimizer,
// generator). Each node's Accept calls exactly one method here. Passes
// that only care about a subset of node kinds embed a no-op base and
// override the methods they need.
type Visitor interface {
	VisitModule(n *Module)

	VisitIntLiteral(n *IntLiteral)
	VisitLongLiteral(n *LongLiteral)
	VisitDoubleLiteral(n *DoubleLiteral)
	VisitFloatLiteral(n *FloatLiteral)
	VisitBoolLiteral(n *BoolLiteral)
	VisitCharLiteral(n *CharLiteral)
	VisitByteLiteral(n *ByteLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitIdentifier(n *Identifier)
	VisitBinaryExpr(n *BinaryExpr)
	VisitUnaryExpr(n *UnaryExpr)
	VisitAssignExpr(n *AssignExpr)
	VisitIndexAssignExpr(n *IndexAssignExpr)
	VisitCompoundAssignExpr(n *CompoundAssignExpr)
	VisitIncrementExpr(n *IncrementExpr)
	VisitDecrementExpr(n *DecrementExpr)
	VisitCallExpr(n *CallExpr)
	VisitMethodCallExpr(n *MethodCallExpr)
	VisitFieldAccessExpr(n *FieldAccessExpr)
	VisitArrayLiteralExpr(n *ArrayLiteralExpr)
	VisitArrayAccessExpr(n *ArrayAccessExpr)
	VisitArraySliceExpr(n *ArraySliceExpr)
	VisitInterpolatedStringExpr(n *InterpolatedStringExpr)
	VisitLambdaExpr(n *LambdaExpr)
	VisitAsValExpr(n *AsValExpr)

	VisitVarDeclStmt(n *VarDeclStmt)
	VisitExprStmt(n *ExprStmt)
	VisitReturnStmt(n *ReturnStmt)
	VisitIfStmt(n *IfStmt)
	VisitBreakStmt(n *BreakStmt)
	VisitContinueStmt(n *ContinueStmt)
	VisitWhileStmt(n *WhileStmt)
	VisitForEachStmt(n *ForEachStmt)
	VisitBlockStmt(n *BlockStmt)
	VisitFuncDeclStmt(n *FuncDeclStmt)
	VisitStructDeclStmt(n *StructDeclStmt)
	VisitNamespaceDeclStmt(n *NamespaceDeclStmt)
}

// BaseVisitor implements Visitor with every method a no-op, so a pass
// that only cares about a handful of node kinds can embed BaseVisitor
// and override just those methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitModule(n *Module) {}

func (BaseVisitor) VisitIntLiteral(n *IntLiteral)                       {}
func (BaseVisitor) VisitLongLiteral(n *LongLiteral)                     {}
func (BaseVisitor) VisitDoubleLiteral(n *DoubleLiteral)                 {}
func (BaseVisitor) VisitFloatLiteral(n *FloatLiteral)                   {}
func (BaseVisitor) VisitBoolLiteral(n *BoolLiteral)                     {}
func (BaseVisitor) VisitCharLiteral(n *CharLiteral)                     {}
func (BaseVisitor) VisitByteLiteral(n *ByteLiteral)                     {}
func (BaseVisitor) VisitStringLiteral(n *StringLiteral)                 {}
func (BaseVisitor) VisitNilLiteral(n *NilLiteral)                       {}
func (BaseVisitor) VisitIdentifier(n *Identifier)                       {}
func (BaseVisitor) VisitBinaryExpr(n *BinaryExpr)                       {}
func (BaseVisitor) VisitUnaryExpr(n *UnaryExpr)                         {}
func (BaseVisitor) VisitAssignExpr(n *AssignExpr)                       {}
func (BaseVisitor) VisitIndexAssignExpr(n *IndexAssignExpr)             {}
func (BaseVisitor) VisitCompoundAssignExpr(n *CompoundAssignExpr)       {}
func (BaseVisitor) VisitIncrementExpr(n *IncrementExpr)                 {}
func (BaseVisitor) VisitDecrementExpr(n *DecrementExpr)                 {}
func (BaseVisitor) VisitCallExpr(n *CallExpr)                           {}
func (BaseVisitor) VisitMethodCallExpr(n *MethodCallExpr)               {}
func (BaseVisitor) VisitFieldAccessExpr(n *FieldAccessExpr)             {}
func (BaseVisitor) VisitArrayLiteralExpr(n *ArrayLiteralExpr)           {}
func (BaseVisitor) VisitArrayAccessExpr(n *ArrayAccessExpr)             {}
func (BaseVisitor) VisitArraySliceExpr(n *ArraySliceExpr)               {}
func (BaseVisitor) VisitInterpolatedStringExpr(n *InterpolatedStringExpr) {}
func (BaseVisitor) VisitLambdaExpr(n *LambdaExpr)                       {}
func (BaseVisitor) VisitAsValExpr(n *AsValExpr)                         {}

func (BaseVisitor) VisitVarDeclStmt(n *VarDeclStmt)             {}
func (BaseVisitor) VisitExprStmt(n *ExprStmt)                   {}
func (BaseVisitor) VisitReturnStmt(n *ReturnStmt)               {}
func (BaseVisitor) VisitIfStmt(n *IfStmt)                       {}
func (BaseVisitor) VisitBreakStmt(n *BreakStmt)                 {}
func (BaseVisitor) VisitContinueStmt(n *ContinueStmt)           {}
func (BaseVisitor) VisitWhileStmt(n *WhileStmt)                 {}
func (BaseVisitor) VisitForEachStmt(n *ForEachStmt)             {}
func (BaseVisitor) VisitBlockStmt(n *BlockStmt)                 {}
func (BaseVisitor) VisitFuncDeclStmt(n *FuncDeclStmt)           {}
func (BaseVisitor) VisitStructDeclStmt(n *StructDeclStmt)       {}
func (BaseVisitor) VisitNamespaceDeclStmt(n *NamespaceDeclStmt) {}
