package ast

// NoParent is the parent ID of the root node.
const NoParent = -1

// Index is an arena view of a finished tree. Each node gets an ID in
// preorder and records its parent's ID, so parent lookups never need
// references from a child back to its owner. It is used for diagnostics
// only.
type Index struct {
	nodes   []Node
	parents []int
	ids     map[Node]int
}

// NewIndex builds an Index for the tree rooted at root.
func NewIndex(root Node) *Index {
	ix := &Index{ids: map[Node]int{}}
	if root != nil {
		ix.add(root, NoParent)
	}
	return ix
}

func (ix *Index) add(n Node, parent int) {
	id := len(ix.nodes)
	ix.nodes = append(ix.nodes, n)
	ix.parents = append(ix.parents, parent)
	ix.ids[n] = id
	for _, child := range Children(n) {
		ix.add(child, id)
	}
}

// Len returns the number of nodes in the tree.
func (ix *Index) Len() int { return len(ix.nodes) }

// ID returns the ID of a node in the tree.
func (ix *Index) ID(n Node) (int, bool) {
	id, ok := ix.ids[n]
	return id, ok
}

// Node returns the node with the given ID.
func (ix *Index) Node(id int) Node {
	if id < 0 || id >= len(ix.nodes) {
		return nil
	}
	return ix.nodes[id]
}

// Parent returns the parent ID of the given node ID, or NoParent.
func (ix *Index) Parent(id int) int {
	if id < 0 || id >= len(ix.parents) {
		return NoParent
	}
	return ix.parents[id]
}

// ParentOf returns the parent of n, if n is in the tree and is not the root.
func (ix *Index) ParentOf(n Node) (Node, bool) {
	id, ok := ix.ids[n]
	if !ok {
		return nil, false
	}
	p := ix.parents[id]
	if p == NoParent {
		return nil, false
	}
	return ix.nodes[p], true
}

// Ancestors returns the nodes enclosing n, nearest first.
func (ix *Index) Ancestors(n Node) []Node {
	var out []Node
	for p, ok := ix.ParentOf(n); ok; p, ok = ix.ParentOf(p) {
		out = append(out, p)
	}
	return out
}

// StmtAt returns the first statement that starts on the given 0-indexed
// line.
func (ix *Index) StmtAt(line int) (Stmt, bool) {
	for _, n := range ix.nodes {
		if s, ok := n.(Stmt); ok && s.Pos() == line {
			return s, true
		}
	}
	return nil, false
}

// Enclosing returns the statement on the given line followed by every node
// enclosing it, nearest first.
func (ix *Index) Enclosing(line int) []Node {
	s, ok := ix.StmtAt(line)
	if !ok {
		return nil
	}
	return append([]Node{s}, ix.Ancestors(s)...)
}
