// Package checker holds the scope chain used while parsing and the
// semantic pass run over a finished tree.
package checker

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/types"
)

// NotDeclaredError is returned when a name is used before it was declared.
type NotDeclaredError struct {
	Name string
}

func (e *NotDeclaredError) Error() string {
	return fmt.Sprintf("%q was used before it was declared", e.Name)
}

// MismatchError is returned when a name bound to a concrete type is
// assigned a value of a different concrete type.
type MismatchError struct {
	Name     string
	Declared types.Type
	Assigned types.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %q is %s but was assigned %s", e.Name, e.Declared, e.Assigned)
}

// Scope is one level of the scope chain.
type Scope struct {
	id      string
	parent  *Scope
	symbols map[string]types.Type
}

// ID returns a dotted identifier of the scope, e.g. "root.0.1".
func (s *Scope) ID() string { return s.id }

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Get returns the type bound to name in this scope only.
func (s *Scope) Get(name string) (types.Type, bool) {
	t, ok := s.symbols[name]
	return t, ok
}

// Names returns the names bound in this scope in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type changeKind int

const (
	declared changeKind = iota
	refined
	pushed
	popped
)

type change struct {
	kind  changeKind
	scope *Scope
	name  string
	old   types.Type
}

// Mark is a position in a Table's change journal.
type Mark int

// Table is a chain of nested scopes mapping names to types. Every change is
// journaled so that a failed parse attempt can be rolled back to a Mark.
//
// A Table belongs to a single parse run and must not be shared.
type Table struct {
	root     *Scope
	current  *Scope
	depth    int
	children int
	journal  []change
}

// NewTable returns a Table whose root scope holds the built-in methods
// bound to their return types.
func NewTable() *Table {
	root := &Scope{id: "root", symbols: map[string]types.Type{}}
	for _, name := range builtins.Names() {
		sig, _ := builtins.Lookup(name)
		root.symbols[name] = sig.Returns
	}
	return &Table{root: root, current: root}
}

// Root returns the outermost scope.
func (t *Table) Root() *Scope { return t.root }

// Current returns the innermost scope.
func (t *Table) Current() *Scope { return t.current }

// Depth returns the number of scopes pushed on top of the root.
func (t *Table) Depth() int { return t.depth }

// Push appends a new innermost scope.
func (t *Table) Push() *Scope {
	s := &Scope{
		id:      fmt.Sprintf("%s.%d", t.current.id, t.children),
		parent:  t.current,
		symbols: map[string]types.Type{},
	}
	t.children++
	t.current = s
	t.depth++
	t.journal = append(t.journal, change{kind: pushed, scope: s})
	return s
}

// Pop removes the innermost scope. The root scope is never removed.
func (t *Table) Pop() {
	if t.current.parent == nil {
		return
	}
	t.journal = append(t.journal, change{kind: popped, scope: t.current})
	t.current = t.current.parent
	t.depth--
}

// Declare binds name in the innermost scope. Re-declaring a name that is
// already bound in the innermost scope is a no-op; shadowing a name bound
// in an enclosing scope is allowed. It returns true if a binding was added.
func (t *Table) Declare(name string, typ types.Type) bool {
	if _, ok := t.current.symbols[name]; ok {
		return false
	}
	t.current.symbols[name] = typ
	t.journal = append(t.journal, change{kind: declared, scope: t.current, name: name})
	return true
}

// Lookup finds name, searching from the innermost scope outward.
func (t *Table) Lookup(name string) (types.Type, *Scope, bool) {
	for s := t.current; s != nil; s = s.parent {
		if typ, ok := s.symbols[name]; ok {
			return typ, s, true
		}
	}
	return "", nil, false
}

// Resolve returns the type bound to name anywhere in the active chain.
func (t *Table) Resolve(name string) (types.Type, error) {
	typ, _, ok := t.Lookup(name)
	if !ok {
		return "", &NotDeclaredError{Name: name}
	}
	return typ, nil
}

// Unify checks an assignment of typ to an existing binding. A binding to
// Unknown (or Any) is refined to typ; a binding to a different concrete
// type is an error.
func (t *Table) Unify(name string, typ types.Type) error {
	bound, scope, ok := t.Lookup(name)
	if !ok {
		return &NotDeclaredError{Name: name}
	}
	if !typ.IsConcrete() || bound == typ {
		return nil
	}
	if !bound.IsConcrete() {
		scope.symbols[name] = typ
		t.journal = append(t.journal, change{kind: refined, scope: scope, name: name, old: bound})
		return nil
	}
	return &MismatchError{Name: name, Declared: bound, Assigned: typ}
}

// Assign records an assignment to name: an existing binding is unified,
// otherwise the name is declared in the innermost scope.
func (t *Table) Assign(name string, typ types.Type) error {
	if _, _, ok := t.Lookup(name); ok {
		return t.Unify(name, typ)
	}
	if typ == types.Any {
		typ = types.Unknown
	}
	t.Declare(name, typ)
	return nil
}

// Mark returns the current journal position.
func (t *Table) Mark() Mark {
	return Mark(len(t.journal))
}

// Rollback undoes every change made after the given mark.
func (t *Table) Rollback(m Mark) {
	for i := len(t.journal) - 1; i >= int(m); i-- {
		c := t.journal[i]
		switch c.kind {
		case declared:
			delete(c.scope.symbols, c.name)
		case refined:
			c.scope.symbols[c.name] = c.old
		case pushed:
			t.current = c.scope.parent
			t.depth--
		case popped:
			t.current = c.scope
			t.depth++
		}
	}
	if int(m) < len(t.journal) {
		t.journal = t.journal[:m]
	}
}
