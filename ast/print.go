package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Highlight marks the given nodes in the output.
	Highlight map[Node]bool

	// Mark decorates the label of a highlighted node. Defaults to prefixing
	// it with "> ".
	Mark func(label string) string
}

// Label returns the variant name of a node followed by its scalar payload.
func Label(node Node) string {
	switch n := node.(type) {
	case *Block:
		return "Block"
	case *Assignment:
		return "Assignment"
	case *Property:
		return "Property"
	case *Cast:
		return "Cast " + n.TypeName
	case *ForLoop:
		return "ForLoop"
	case *WhileLoop:
		return "WhileLoop"
	case *IfStatement:
		return "IfStatement"
	case *ReturnStatement:
		return "ReturnStatement"
	case *MethodCall:
		return "MethodCall " + n.Name
	case *Identifier:
		return "Identifier " + n.Name
	case *BinaryOp:
		return "BinaryOp " + string(n.Op)
	case *Compare:
		return "Compare " + string(n.Op)
	case *Not:
		return "Not"
	case *IntegerLit:
		return "IntegerLit " + strconv.FormatInt(n.Value, 10)
	case *FloatLit:
		return "FloatLit " + strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringLit:
		return "StringLit " + strconv.Quote(n.Value)
	case *BoolLit:
		return "BoolLit " + strconv.FormatBool(n.Value)
	case *ColorLit:
		return "ColorLit " + n.String()
	case *Array:
		return fmt.Sprintf("Array (%d items)", len(n.Items))
	case *Dictionary:
		return fmt.Sprintf("Dictionary (%d pairs)", len(n.Pairs))
	default:
		return fmt.Sprintf("%T", node)
	}
}

// Dump writes an indented tree of the nodes rooted at root.
func Dump(w io.Writer, root Node) error {
	return DumpWith(w, root, DumpOptions{})
}

// DumpWith writes an indented tree of the nodes rooted at root, using the
// given options.
func DumpWith(w io.Writer, root Node, opts DumpOptions) error {
	mark := opts.Mark
	if mark == nil {
		mark = func(label string) string { return "> " + label }
	}
	var dump func(n Node, depth int) error
	dump = func(n Node, depth int) error {
		label := Label(n)
		if opts.Highlight[n] {
			label = mark(label)
		}
		line := fmt.Sprintf("%s%s  (line %d)\n", strings.Repeat("  ", depth), label, n.Pos()+1)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		for _, child := range Children(n) {
			if err := dump(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if root == nil {
		return nil
	}
	return dump(root, 0)
}
