package ast

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sample builds:
//
//	a = 2 + 3
//	if a > 4 {
//	    print(a)
//	}
func sample() (*Block, *IfStatement, *MethodCall) {
	call := &MethodCall{Line: 2, Name: "print", Args: []Expr{&Identifier{Line: 2, Name: "a"}}}
	ifStmt := &IfStatement{
		Line: 1,
		Cond: &Compare{Line: 1, Op: Gt, X: &Identifier{Line: 1, Name: "a"}, Y: &IntegerLit{Line: 1, Value: 4}},
		Body: &Block{Line: 1, Stmts: []Stmt{call}},
	}
	root := &Block{Stmts: []Stmt{
		&Assignment{
			Target: &Property{Path: []*Identifier{{Name: "a"}}},
			Value:  &BinaryOp{Op: Plus, X: &IntegerLit{Value: 2}, Y: &IntegerLit{Value: 3}},
		},
		ifStmt,
	}}
	return root, ifStmt, call
}

func TestString(t *testing.T) {
	root, _, _ := sample()
	require.Equal(t, "a = (2 + 3)", root.Stmts[0].String())
	require.Equal(t, "if (a > 4) {\nprint(a)\n}", root.Stmts[1].String())

	arr := &Array{Items: []Expr{&StringLit{Value: "x"}, &BoolLit{Value: true}}, Subscript: &IntegerLit{Value: 0}}
	require.Equal(t, `["x", true][0]`, arr.String())

	dict := &Dictionary{Pairs: []Pair{{Key: &StringLit{Value: "c"}, Value: &ColorLit{Value: color.RGBA{R: 255, A: 255}}}}}
	require.Equal(t, `{"c": #FF0000FF}`, dict.String())

	loop := &ForLoop{
		Binder: &Identifier{Name: "x"},
		Cast:   &Cast{TypeName: "String"},
		Source: &Identifier{Name: "xs"},
		Body:   &Block{},
	}
	require.Equal(t, "for x as String in xs {\n}", loop.String())
}

func TestInspectOrder(t *testing.T) {
	root, _, _ := sample()
	var labels []string
	Inspect(root, func(n Node) bool {
		labels = append(labels, Label(n))
		return true
	})
	require.Equal(t, []string{
		"Block",
		"Assignment", "Property", "Identifier a",
		"BinaryOp +", "IntegerLit 2", "IntegerLit 3",
		"IfStatement", "Compare >", "Identifier a", "IntegerLit 4",
		"Block", "MethodCall print", "Identifier a",
	}, labels)
}

func TestInspectSkipsChildren(t *testing.T) {
	root, _, _ := sample()
	var count int
	Inspect(root, func(n Node) bool {
		count++
		_, isIf := n.(*IfStatement)
		return !isIf
	})
	require.Equal(t, 8, count)
}

func TestPreorderStops(t *testing.T) {
	root, _, _ := sample()
	var seen int
	for range Preorder(root) {
		seen++
		if seen == 3 {
			break
		}
	}
	require.Equal(t, 3, seen)
}

func TestIndex(t *testing.T) {
	root, ifStmt, call := sample()
	ix := NewIndex(root)
	require.Equal(t, 14, ix.Len())

	rootID, ok := ix.ID(root)
	require.True(t, ok)
	require.Equal(t, 0, rootID)
	require.Equal(t, NoParent, ix.Parent(rootID))

	parent, ok := ix.ParentOf(call)
	require.True(t, ok)
	require.Same(t, ifStmt.Body, parent)

	ancestors := ix.Ancestors(call)
	require.Len(t, ancestors, 3)
	require.Same(t, ifStmt, ancestors[1])
	require.Same(t, root, ancestors[2])

	enclosing := ix.Enclosing(2)
	require.Len(t, enclosing, 4)
	require.Same(t, call, enclosing[0])

	require.Nil(t, ix.Enclosing(10))
	require.Nil(t, ix.Node(99))
}

func TestDump(t *testing.T) {
	root, _, call := sample()
	var buf bytes.Buffer
	err := DumpWith(&buf, root, DumpOptions{Highlight: map[Node]bool{call: true}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 14)
	require.Equal(t, "Block  (line 1)", lines[0])
	require.Equal(t, "  Assignment  (line 1)", lines[1])
	require.Equal(t, "      > MethodCall print  (line 3)", lines[12])
}
