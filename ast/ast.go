// Package ast defines the abstract syntax tree representation of a script.
//
// The node set is closed: every node type is declared in this package and
// the marker methods are unexported. Composite nodes own their children. The
// tree holds no parent pointers; use an Index for parent lookups.
package ast

// Node represents a portion of the syntax tree.
type Node interface {
	// Pos returns the 0-indexed source line the node starts on.
	Pos() int

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string

	node()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value.
type Expr interface {
	Node
	exprNode()
}

// Operator is an arithmetic, comparison or logical operator.
type Operator string

const (
	Plus     Operator = "+"
	Minus    Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"
	Mod      Operator = "%"

	Eq  Operator = "=="
	Ne  Operator = "!="
	Lt  Operator = "<"
	Le  Operator = "<="
	Gt  Operator = ">"
	Ge  Operator = ">="
	And Operator = "and"
	Or  Operator = "or"
)

// IsArithmetic returns true for the operators of a math expression.
func (op Operator) IsArithmetic() bool {
	switch op {
	case Plus, Minus, Multiply, Divide, Mod:
		return true
	}
	return false
}

// IsLogical returns true for "and" and "or".
func (op Operator) IsLogical() bool {
	return op == And || op == Or
}
