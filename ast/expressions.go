package ast

import (
	"strings"
)

// Identifier refers to a variable by name, with an optional subscript.
type Identifier struct {
	Line      int
	Name      string
	Subscript Expr // optional
}

func (x *Identifier) node()     {}
func (x *Identifier) exprNode() {}

func (x *Identifier) Pos() int { return x.Line }

func (x *Identifier) String() string {
	if x.Subscript != nil {
		return x.Name + "[" + x.Subscript.String() + "]"
	}
	return x.Name
}

// BinaryOp is an arithmetic operation. Chains lean right: "a + b + c" is
// Plus(a, Plus(b, c)).
type BinaryOp struct {
	Line int
	Op   Operator
	X    Expr
	Y    Expr
}

func (x *BinaryOp) node()     {}
func (x *BinaryOp) exprNode() {}

func (x *BinaryOp) Pos() int { return x.Line }

func (x *BinaryOp) String() string {
	return "(" + x.X.String() + " " + string(x.Op) + " " + x.Y.String() + ")"
}

// Compare is a logical expression with exactly one comparison or boolean
// operator.
type Compare struct {
	Line int
	Op   Operator
	X    Expr
	Y    Expr
}

func (x *Compare) node()     {}
func (x *Compare) exprNode() {}

func (x *Compare) Pos() int { return x.Line }

func (x *Compare) String() string {
	return "(" + x.X.String() + " " + string(x.Op) + " " + x.Y.String() + ")"
}

// Not negates its operand.
type Not struct {
	Line int
	X    Expr
}

func (x *Not) node()     {}
func (x *Not) exprNode() {}

func (x *Not) Pos() int { return x.Line }

func (x *Not) String() string { return "(not " + x.X.String() + ")" }

// MethodCall invokes a built-in by name. It is both a statement and an
// expression.
type MethodCall struct {
	Line int
	Name string
	Args []Expr
}

func (x *MethodCall) node()     {}
func (x *MethodCall) exprNode() {}
func (x *MethodCall) stmtNode() {}

func (x *MethodCall) Pos() int { return x.Line }

func (x *MethodCall) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return x.Name + "(" + strings.Join(args, ", ") + ")"
}
