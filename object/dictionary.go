package object

import (
	"strings"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Dictionary maps scalar keys to values and remembers insertion order.
type Dictionary struct {
	keys   []Object
	values []Object
	index  map[HashKey]int
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: map[HashKey]int{}}
}

func (d *Dictionary) Type() types.Type { return types.Dictionary }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order. The slice must not be modified.
func (d *Dictionary) Keys() []Object { return d.keys }

func hashKey(key Object) (HashKey, error) {
	h, ok := key.(Hashable)
	if !ok {
		return HashKey{}, TypeErrorf("%s is not a valid dictionary key", key.Type())
	}
	return h.HashKey(), nil
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key Object) (Object, error) {
	h, err := hashKey(key)
	if err != nil {
		return nil, err
	}
	i, ok := d.index[h]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return d.values[i], nil
}

// Set stores a copy of value under key. An existing key keeps its position.
func (d *Dictionary) Set(key, value Object) error {
	h, err := hashKey(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[h]; ok {
		d.values[i] = Copy(value)
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, Copy(value))
	return nil
}

// Delete removes key. It returns false if the key was not present.
func (d *Dictionary) Delete(key Object) (bool, error) {
	h, err := hashKey(key)
	if err != nil {
		return false, err
	}
	i, ok := d.index[h]
	if !ok {
		return false, nil
	}
	d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
	d.values = append(d.values[:i:i], d.values[i+1:]...)
	delete(d.index, h)
	for j := i; j < len(d.keys); j++ {
		d.index[d.keys[j].(Hashable).HashKey()] = j
	}
	return true, nil
}

// Each calls fn for each entry in insertion order until fn returns false.
func (d *Dictionary) Each(fn func(key, value Object) bool) {
	for i, key := range d.keys {
		if !fn(key, d.values[i]) {
			return
		}
	}
}

// Copy returns an independent copy of the dictionary.
func (d *Dictionary) Copy() *Dictionary {
	out := NewDictionary()
	for i, key := range d.keys {
		out.Set(key, d.values[i])
	}
	return out
}

func (d *Dictionary) Inspect() string {
	pairs := make([]string, 0, len(d.keys))
	for i, key := range d.keys {
		pairs = append(pairs, key.Inspect()+": "+d.values[i].Inspect())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func (d *Dictionary) String() string { return d.Inspect() }

// Interface returns a map keyed by the display form of each key.
func (d *Dictionary) Interface() any {
	out := make(map[string]any, len(d.keys))
	for i, key := range d.keys {
		out[key.String()] = d.values[i].Interface()
	}
	return out
}

func (d *Dictionary) Equals(other Object) bool {
	o, ok := other.(*Dictionary)
	if !ok || len(d.keys) != len(o.keys) {
		return false
	}
	for i, key := range d.keys {
		v, err := o.Get(key)
		if err != nil || !d.values[i].Equals(v) {
			return false
		}
	}
	return true
}
