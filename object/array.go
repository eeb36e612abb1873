package object

import (
	"strings"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Array is an ordered sequence of values.
type Array struct {
	items []Object
}

// NewArray returns an Array holding copies of the given items.
func NewArray(items []Object) *Array {
	copied := make([]Object, len(items))
	for i, item := range items {
		copied[i] = Copy(item)
	}
	return &Array{items: copied}
}

func (a *Array) Type() types.Type { return types.Array }

// Items returns the items of the array. The slice must not be modified.
func (a *Array) Items() []Object { return a.items }

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// Get returns the item at index.
func (a *Array) Get(index int64) (Object, error) {
	if index < 0 || index >= int64(len(a.items)) {
		return nil, ErrIndexOutOfRange
	}
	return a.items[index], nil
}

// Append returns a new array with item added at the end.
func (a *Array) Append(item Object) *Array {
	items := make([]Object, 0, len(a.items)+1)
	items = append(items, a.items...)
	items = append(items, item)
	return NewArray(items)
}

// Copy returns an independent copy of the array.
func (a *Array) Copy() *Array {
	return NewArray(a.items)
}

func (a *Array) Inspect() string {
	items := make([]string, 0, len(a.items))
	for _, item := range a.items {
		items = append(items, item.Inspect())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (a *Array) String() string { return a.Inspect() }

func (a *Array) Interface() any {
	out := make([]any, 0, len(a.items))
	for _, item := range a.items {
		out = append(out, item.Interface())
	}
	return out
}

func (a *Array) Equals(other Object) bool {
	o, ok := other.(*Array)
	if !ok || len(a.items) != len(o.items) {
		return false
	}
	for i, item := range a.items {
		if !item.Equals(o.items[i]) {
			return false
		}
	}
	return true
}
