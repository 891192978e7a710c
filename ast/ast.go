package ast

import (
	"bytes"
	"pminus/lexer"
	"strconv"
	"strings"
)

const MaxChildren = 3

type NodeKind int

const (
	StmtNode NodeKind = iota
	ExpNode
)

type StmtKind int

const (
	DeclareStmt StmtKind = iota
	IfStmt
	WhileStmt
	RepeatStmt
	AssignStmt
	ReadStmt
	WriteStmt
)

func (k StmtKind) String() string {
	switch k {
	case DeclareStmt:
		return "Declare"
	case IfStmt:
		return "If"
	case WhileStmt:
		return "While"
	case RepeatStmt:
		return "Repeat"
	case AssignStmt:
		return "Assign"
	case ReadStmt:
		return "Read"
	case WriteStmt:
		return "Write"
	default:
		return "Unknown"
	}
}

type ExpKind int

const (
	OpExp ExpKind = iota
	ConstExp
	IdExp
)

func (k ExpKind) String() string {
	switch k {
	case OpExp:
		return "BinaryOp"
	case ConstExp:
		return "Constant"
	case IdExp:
		return "Identifier"
	default:
		return "Unknown"
	}
}

// ExpType is filled in by the type checker; Void until then.
type ExpType int

const (
	Void ExpType = iota
	Integer
	Real
	Boolean
)

func (t ExpType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	default:
		return "void"
	}
}

// IsArithmetic reports whether t is Integer or Real.
func (t ExpType) IsArithmetic() bool {
	return t == Integer || t == Real
}

// TreeNode is one node of the syntax tree. Statements in a sequence, and the
// identifiers of a declaration, are chained through Sibling.
type TreeNode struct {
	Child    [MaxChildren]*TreeNode
	Sibling  *TreeNode
	Line     int
	NodeKind NodeKind
	Stmt     StmtKind
	Exp      ExpKind

	// attributes, which one is meaningful depends on the kind
	Op      lexer.TokenKind
	IntVal  int64
	RealVal float64
	Name    string

	Type ExpType
}

func NewStmtNode(kind StmtKind, line int) *TreeNode {
	return &TreeNode{NodeKind: StmtNode, Stmt: kind, Line: line}
}

func NewExpNode(kind ExpKind, line int) *TreeNode {
	return &TreeNode{NodeKind: ExpNode, Exp: kind, Line: line, Type: Void}
}

func (t *TreeNode) IsStmt(kind StmtKind) bool {
	return t != nil && t.NodeKind == StmtNode && t.Stmt == kind
}

func (t *TreeNode) IsExp(kind ExpKind) bool {
	return t != nil && t.NodeKind == ExpNode && t.Exp == kind
}

// Len counts the nodes of the sibling chain starting at t.
func (t *TreeNode) Len() int {
	n := 0
	for ; t != nil; t = t.Sibling {
		n++
	}
	return n
}

// Traverse walks the forest rooted at t: pre on the way down, then every
// child slot in order, then post, then the sibling chain.
func Traverse(t *TreeNode, pre, post func(*TreeNode)) {
	for ; t != nil; t = t.Sibling {
		if pre != nil {
			pre(t)
		}
		for _, child := range t.Child {
			Traverse(child, pre, post)
		}
		if post != nil {
			post(t)
		}
	}
}

// String renders the node alone, not its siblings, close to source form with
// every binary operation parenthesised.
func (t *TreeNode) String() string {
	if t == nil {
		return ""
	}
	var out bytes.Buffer
	if t.NodeKind == ExpNode {
		switch t.Exp {
		case OpExp:
			out.WriteString("(")
			out.WriteString(t.Child[0].String())
			out.WriteString(" " + t.Op + " ")
			out.WriteString(t.Child[1].String())
			out.WriteString(")")
		case ConstExp:
			out.WriteString(t.ValueString())
		case IdExp:
			out.WriteString(t.Name)
		}
		return out.String()
	}

	switch t.Stmt {
	case DeclareStmt:
		out.WriteString(t.Name + " ")
		out.WriteString(join(t.Child[0], ", "))
	case IfStmt:
		out.WriteString("se ")
		out.WriteString(t.Child[0].String())
		out.WriteString(" entao { ")
		out.WriteString(Sequence(t.Child[1]))
		out.WriteString(" }")
		if t.Child[2] != nil {
			out.WriteString(" senao { ")
			out.WriteString(Sequence(t.Child[2]))
			out.WriteString(" }")
		}
	case WhileStmt:
		out.WriteString("enquanto ")
		out.WriteString(t.Child[0].String())
		out.WriteString(" { ")
		out.WriteString(Sequence(t.Child[1]))
		out.WriteString(" }")
	case RepeatStmt:
		out.WriteString("repita { ")
		out.WriteString(Sequence(t.Child[0]))
		out.WriteString(" } ate ")
		out.WriteString(t.Child[1].String())
	case AssignStmt:
		out.WriteString(t.Name + " = ")
		out.WriteString(t.Child[0].String())
	case ReadStmt:
		out.WriteString("ler(" + t.Name + ")")
	case WriteStmt:
		out.WriteString("mostrar(")
		out.WriteString(t.Child[0].String())
		out.WriteString(")")
	}
	return out.String()
}

// ValueString formats a constant according to its literal type.
func (t *TreeNode) ValueString() string {
	if t.Type == Real {
		text := strconv.FormatFloat(t.RealVal, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text
	}
	return strconv.FormatInt(t.IntVal, 10)
}

// Sequence renders a statement list separated by "; ".
func Sequence(t *TreeNode) string {
	return join(t, "; ")
}

func join(t *TreeNode, sep string) string {
	parts := []string{}
	for ; t != nil; t = t.Sibling {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, sep)
}
