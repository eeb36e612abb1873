package ast

import (
	"strings"
)

// Block is an ordered sequence of statements.
type Block struct {
	Line  int
	Stmts []Stmt
}

func (b *Block) node() {}

func (b *Block) Pos() int { return b.Line }

func (b *Block) String() string {
	var out strings.Builder
	out.WriteString("{\n")
	for _, s := range b.Stmts {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// Cast is an "as <Type>" clause. The type name is validated by the checker.
type Cast struct {
	Line     int
	TypeName string
}

func (c *Cast) node() {}

func (c *Cast) Pos() int { return c.Line }

func (c *Cast) String() string { return "as " + c.TypeName }

// Property is an assignment target. The path currently always holds a single
// identifier.
type Property struct {
	Path []*Identifier
}

func (p *Property) node() {}

func (p *Property) Pos() int { return p.Path[0].Line }

// Name returns the name the property is stored under.
func (p *Property) Name() string { return p.Path[0].Name }

func (p *Property) String() string {
	names := make([]string, 0, len(p.Path))
	for _, id := range p.Path {
		names = append(names, id.String())
	}
	return strings.Join(names, ".")
}

// Assignment stores a value, optionally cast, under the target name.
type Assignment struct {
	Target *Property
	Value  Expr
	Cast   *Cast // optional
}

func (s *Assignment) node()     {}
func (s *Assignment) stmtNode() {}

func (s *Assignment) Pos() int { return s.Target.Pos() }

func (s *Assignment) String() string {
	var out strings.Builder
	out.WriteString(s.Target.String())
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	if s.Cast != nil {
		out.WriteString(" ")
		out.WriteString(s.Cast.String())
	}
	return out.String()
}

// ForLoop runs its body once per element of an array, binding the element to
// the loop identifier.
type ForLoop struct {
	Line   int
	Binder *Identifier
	Cast   *Cast // optional
	Source Expr
	Body   *Block
}

func (s *ForLoop) node()     {}
func (s *ForLoop) stmtNode() {}

func (s *ForLoop) Pos() int { return s.Line }

func (s *ForLoop) String() string {
	var out strings.Builder
	out.WriteString("for ")
	out.WriteString(s.Binder.String())
	if s.Cast != nil {
		out.WriteString(" ")
		out.WriteString(s.Cast.String())
	}
	out.WriteString(" in ")
	out.WriteString(s.Source.String())
	out.WriteString(" ")
	out.WriteString(s.Body.String())
	return out.String()
}

// WhileLoop runs its body until its condition is false.
type WhileLoop struct {
	Line int
	Cond Expr
	Body *Block
}

func (s *WhileLoop) node()     {}
func (s *WhileLoop) stmtNode() {}

func (s *WhileLoop) Pos() int { return s.Line }

func (s *WhileLoop) String() string {
	return "while " + s.Cond.String() + " " + s.Body.String()
}

// IfStatement runs its body when its condition is true.
type IfStatement struct {
	Line int
	Cond Expr
	Body *Block
}

func (s *IfStatement) node()     {}
func (s *IfStatement) stmtNode() {}

func (s *IfStatement) Pos() int { return s.Line }

func (s *IfStatement) String() string {
	return "if " + s.Cond.String() + " " + s.Body.String()
}

// ReturnStatement stops the program with a value.
type ReturnStatement struct {
	Line  int
	Value Expr
}

func (s *ReturnStatement) node()     {}
func (s *ReturnStatement) stmtNode() {}

func (s *ReturnStatement) Pos() int { return s.Line }

func (s *ReturnStatement) String() string {
	return "return " + s.Value.String()
}
