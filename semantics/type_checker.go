package semantics

import (
	"pminus/ast"
	"pminus/internals"
	"pminus/lexer"
)

// TypeChecker annotates the tree bottom-up and reports every mismatch, it
// never stops at the first one.
type TypeChecker struct {
	collector *internals.ErrorCollector
}

func NewTypeChecker(errCollector *internals.ErrorCollector) *TypeChecker {
	if errCollector == nil {
		errCollector = internals.NewErrorCollector()
	}
	return &TypeChecker{
		collector: errCollector,
	}
}

func (tc *TypeChecker) Check(tree *ast.TreeNode) {
	ast.Traverse(tree, nil, tc.checkNode)
}

func (tc *TypeChecker) typeError(node *ast.TreeNode, msg string) {
	tc.collector.Report(internals.TypeError, node.Line, 0, msg)
}

func (tc *TypeChecker) checkNode(node *ast.TreeNode) {
	if node.NodeKind == ast.ExpNode {
		tc.checkExpression(node)
		return
	}

	switch node.Stmt {
	case ast.IfStmt:
		tc.checkCondition(node.Child[0], "if test is not Boolean")
	case ast.WhileStmt:
		tc.checkCondition(node.Child[0], "while test is not Boolean")
	case ast.RepeatStmt:
		tc.checkCondition(node.Child[1], "repeat test is not Boolean")
	case ast.AssignStmt:
		value := node.Child[0]
		if value == nil {
			return
		}
		if !value.Type.IsArithmetic() {
			tc.typeError(value, "assignment of non-integer or non-real value")
			return
		}
		node.Type = value.Type
	case ast.WriteStmt:
		value := node.Child[0]
		if value == nil {
			return
		}
		if !value.Type.IsArithmetic() {
			tc.typeError(value, "write of non-integer or non-real value")
		}
	}
}

// checkCondition accepts any arithmetic test; only a comparison result or an
// untyped test is flagged.
func (tc *TypeChecker) checkCondition(test *ast.TreeNode, msg string) {
	if test == nil {
		return
	}
	if !test.Type.IsArithmetic() {
		tc.typeError(test, msg)
	}
}

func (tc *TypeChecker) checkExpression(node *ast.TreeNode) {
	switch node.Exp {
	case ast.IdExp:
		node.Type = ast.Integer
	case ast.ConstExp:
		// keeps the literal type set by the parser
		if node.Type == ast.Void {
			node.Type = ast.Integer
		}
	case ast.OpExp:
		if _, ok := lexer.RelOperators[node.Op]; ok {
			node.Type = ast.Boolean
			return
		}
		left, right := node.Child[0], node.Child[1]
		if left == nil || right == nil {
			return
		}
		switch {
		case left.Type == ast.Integer && right.Type == ast.Integer:
			node.Type = ast.Integer
		case left.Type.IsArithmetic() && right.Type.IsArithmetic():
			node.Type = ast.Real
		default:
			tc.typeError(node, "Op applied to non-integer or non-real")
		}
	}
}
