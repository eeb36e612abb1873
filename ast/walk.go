package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Children returns the direct, non-nil children of a node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Assignment:
		add(n.Target)
		add(n.Value)
		if n.Cast != nil {
			add(n.Cast)
		}
	case *Property:
		for _, id := range n.Path {
			add(id)
		}
	case *ForLoop:
		add(n.Binder)
		if n.Cast != nil {
			add(n.Cast)
		}
		add(n.Source)
		add(n.Body)
	case *WhileLoop:
		add(n.Cond)
		add(n.Body)
	case *IfStatement:
		add(n.Cond)
		add(n.Body)
	case *ReturnStatement:
		add(n.Value)
	case *MethodCall:
		for _, a := range n.Args {
			add(a)
		}
	case *Identifier:
		if n.Subscript != nil {
			add(n.Subscript)
		}
	case *BinaryOp:
		add(n.X)
		add(n.Y)
	case *Compare:
		add(n.X)
		add(n.Y)
	case *Not:
		add(n.X)
	case *Array:
		for _, item := range n.Items {
			add(item)
		}
		if n.Subscript != nil {
			add(n.Subscript)
		}
	case *Dictionary:
		for _, p := range n.Pairs {
			add(p.Key)
			add(p.Value)
		}
		if n.Subscript != nil {
			add(n.Subscript)
		}
	}
	return out
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Preorder returns an iterator over all nodes of the tree rooted at root,
// parents before children.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(n Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}
