package semantics

import (
	"pminus/ast"
)

type Analyzer struct {
	Symbols *SymbolTable
}

func NewAnalyzer(symbols *SymbolTable) *Analyzer {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Analyzer{
		Symbols: symbols,
	}
}

// BuildSymbolTable walks the tree in pre-order and records every assigned,
// read or referenced name. A declaration registers nothing by itself, its
// identifier list is reached as ordinary identifier expressions.
func (a *Analyzer) BuildSymbolTable(tree *ast.TreeNode) *SymbolTable {
	ast.Traverse(tree, a.insertNode, nil)
	return a.Symbols
}

func (a *Analyzer) insertNode(node *ast.TreeNode) {
	switch {
	case node.IsStmt(ast.AssignStmt), node.IsStmt(ast.ReadStmt):
		if node.Name == "" {
			return
		}
		a.Symbols.Insert(node.Name, node.Line, node.Type)
	case node.IsExp(ast.IdExp):
		a.Symbols.Insert(node.Name, node.Line, node.Type)
	}
}
