package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the indented listing of the forest rooted at tree, two
// spaces per level, one line per node.
func Fprint(w io.Writer, tree *TreeNode) {
	printTree(w, tree, 1)
}

func printTree(w io.Writer, tree *TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for ; tree != nil; tree = tree.Sibling {
		fmt.Fprintf(w, "%s%s\n", indent, label(tree))
		for _, child := range tree.Child {
			printTree(w, child, depth+1)
		}
	}
}

func label(t *TreeNode) string {
	if t.NodeKind == StmtNode {
		switch t.Stmt {
		case DeclareStmt:
			if t.Type == Real {
				return "Real:"
			}
			return "Inteiro:"
		case IfStmt:
			return "Se:"
		case WhileStmt:
			return "Enquanto:"
		case RepeatStmt:
			return "Repita:"
		case AssignStmt:
			return "Atribui para: " + t.Name
		case ReadStmt:
			return "Leia: " + t.Name
		case WriteStmt:
			return "Mostrar:"
		}
		return "Unknown StmtNode kind"
	}

	switch t.Exp {
	case OpExp:
		return "Op: " + t.Op
	case ConstExp:
		if t.Type == Real {
			return fmt.Sprintf("Const: %f", t.RealVal)
		}
		return fmt.Sprintf("Const: %d", t.IntVal)
	case IdExp:
		return "Id: " + t.Name
	}
	return "Unknown ExpNode kind"
}
