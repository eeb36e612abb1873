// Package object provides the runtime values of the script language.
//
// A value is one of a closed set of types. Code consuming values usually type
// switches on the concrete type:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Float:
//		// do something with obj.Value()
//	}
//
// Arrays and dictionaries are values, not references: Copy returns an
// independent copy, and every operation that "modifies" a container returns a
// new one.
package object

import (
	"github.com/deepnoodle-ai/screenscript/types"
)

// Object is the interface that all runtime values implement.
type Object interface {
	// Type of the object.
	Type() types.Type

	// Inspect returns a string representation of the object as it would
	// appear inside a container, with strings quoted.
	Inspect() string

	// String returns the display form of the object, as printed.
	String() string

	// Interface converts the object to a native Go value.
	Interface() any

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool
}

var (
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Comparable is implemented by objects that can be ordered.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

// Hashable is implemented by objects usable as dictionary keys.
type Hashable interface {
	HashKey() HashKey
}

// HashKey identifies a dictionary key.
type HashKey struct {
	Type  types.Type
	Value string
}

// Copy returns an independent copy of a container. Scalars are immutable and
// are returned as is.
func Copy(obj Object) Object {
	switch obj := obj.(type) {
	case *Array:
		return obj.Copy()
	case *Dictionary:
		return obj.Copy()
	}
	return obj
}
