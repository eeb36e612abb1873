package interp

import (
	"sort"

	"github.com/deepnoodle-ai/screenscript/object"
)

// Memory is the flat variable store of a run, plus a scratch stack used to
// hold intermediate values while composing arguments and literals.
type Memory struct {
	vars  map[string]object.Object
	stack []object.Object
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{vars: map[string]object.Object{}}
}

// Get returns the value bound to name.
func (m *Memory) Get(name string) (object.Object, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Set binds a copy of value to name.
func (m *Memory) Set(name string, value object.Object) {
	m.vars[name] = object.Copy(value)
}

// Names returns the bound names in sorted order.
func (m *Memory) Names() []string {
	names := make([]string, 0, len(m.vars))
	for name := range m.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vars returns a copy of all bindings.
func (m *Memory) Vars() map[string]object.Object {
	out := make(map[string]object.Object, len(m.vars))
	for name, value := range m.vars {
		out[name] = object.Copy(value)
	}
	return out
}

// Push adds a value to the scratch stack.
func (m *Memory) Push(value object.Object) {
	m.stack = append(m.stack, value)
}

// PopN removes the top n values from the scratch stack and returns them in
// the order they were pushed.
func (m *Memory) PopN(n int) []object.Object {
	top := len(m.stack) - n
	out := make([]object.Object, n)
	copy(out, m.stack[top:])
	clear(m.stack[top:])
	m.stack = m.stack[:top]
	return out
}

// StackDepth returns the number of values on the scratch stack.
func (m *Memory) StackDepth() int {
	return len(m.stack)
}

// truncate drops scratch values above depth, after a failed evaluation.
func (m *Memory) truncate(depth int) {
	if depth < len(m.stack) {
		clear(m.stack[depth:])
		m.stack = m.stack[:depth]
	}
}
