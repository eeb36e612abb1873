package ast

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// IntegerLit is an integer literal.
type IntegerLit struct {
	Line  int
	Value int64
}

func (x *IntegerLit) node()     {}
func (x *IntegerLit) exprNode() {}

func (x *IntegerLit) Pos() int { return x.Line }

func (x *IntegerLit) String() string { return strconv.FormatInt(x.Value, 10) }

// FloatLit is a floating point literal.
type FloatLit struct {
	Line  int
	Value float64
}

func (x *FloatLit) node()     {}
func (x *FloatLit) exprNode() {}

func (x *FloatLit) Pos() int { return x.Line }

func (x *FloatLit) String() string { return strconv.FormatFloat(x.Value, 'g', -1, 64) }

// StringLit is a string literal, without its quotes.
type StringLit struct {
	Line  int
	Value string
}

func (x *StringLit) node()     {}
func (x *StringLit) exprNode() {}

func (x *StringLit) Pos() int { return x.Line }

func (x *StringLit) String() string { return strconv.Quote(x.Value) }

// BoolLit is true or false.
type BoolLit struct {
	Line  int
	Value bool
}

func (x *BoolLit) node()     {}
func (x *BoolLit) exprNode() {}

func (x *BoolLit) Pos() int { return x.Line }

func (x *BoolLit) String() string { return strconv.FormatBool(x.Value) }

// ColorLit is a #RRGGBB or #RRGGBBAA literal.
type ColorLit struct {
	Line  int
	Value color.RGBA
}

func (x *ColorLit) node()     {}
func (x *ColorLit) exprNode() {}

func (x *ColorLit) Pos() int { return x.Line }

func (x *ColorLit) String() string {
	c := x.Value
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Array is an array literal with an optional subscript.
type Array struct {
	Line      int
	Items     []Expr
	Subscript Expr // optional
}

func (x *Array) node()     {}
func (x *Array) exprNode() {}

func (x *Array) Pos() int { return x.Line }

func (x *Array) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	s := "[" + strings.Join(items, ", ") + "]"
	if x.Subscript != nil {
		s += "[" + x.Subscript.String() + "]"
	}
	return s
}

// Pair is one key-value entry of a dictionary literal.
type Pair struct {
	Key   Expr
	Value Expr
}

// Dictionary is a dictionary literal with an optional subscript.
type Dictionary struct {
	Line      int
	Pairs     []Pair
	Subscript Expr // optional
}

func (x *Dictionary) node()     {}
func (x *Dictionary) exprNode() {}

func (x *Dictionary) Pos() int { return x.Line }

func (x *Dictionary) String() string {
	pairs := make([]string, 0, len(x.Pairs))
	for _, p := range x.Pairs {
		pairs = append(pairs, p.Key.String()+": "+p.Value.String())
	}
	s := "{" + strings.Join(pairs, ", ") + "}"
	if x.Subscript != nil {
		s += "[" + x.Subscript.String() + "]"
	}
	return s
}
