package object

import (
	"strconv"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Int wraps int64.
type Int struct {
	value int64
}

// NewInt returns an Int.
func NewInt(value int64) *Int {
	return &Int{value: value}
}

func (i *Int) Type() types.Type { return types.Integer }

func (i *Int) Value() int64 { return i.value }

func (i *Int) Inspect() string { return strconv.FormatInt(i.value, 10) }

func (i *Int) String() string { return i.Inspect() }

func (i *Int) Interface() any { return i.value }

func (i *Int) HashKey() HashKey {
	return HashKey{Type: types.Integer, Value: i.Inspect()}
}

func (i *Int) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return i.value == other.value
	case *Float:
		return float64(i.value) == other.value
	}
	return false
}

func (i *Int) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Int:
		return compareOrdered(i.value, other.value), nil
	case *Float:
		return compareOrdered(float64(i.value), other.value), nil
	}
	return 0, TypeErrorf("unable to compare Integer and %s", other.Type())
}

// Float wraps float64.
type Float struct {
	value float64
}

// NewFloat returns a Float.
func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func (f *Float) Type() types.Type { return types.Float }

func (f *Float) Value() float64 { return f.value }

func (f *Float) Inspect() string { return strconv.FormatFloat(f.value, 'f', -1, 64) }

func (f *Float) String() string { return f.Inspect() }

func (f *Float) Interface() any { return f.value }

func (f *Float) HashKey() HashKey {
	return HashKey{Type: types.Float, Value: f.Inspect()}
}

func (f *Float) Equals(other Object) bool {
	switch other := other.(type) {
	case *Float:
		return f.value == other.value
	case *Int:
		return f.value == float64(other.value)
	}
	return false
}

func (f *Float) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Float:
		return compareOrdered(f.value, other.value), nil
	case *Int:
		return compareOrdered(f.value, float64(other.value)), nil
	}
	return 0, TypeErrorf("unable to compare Float and %s", other.Type())
}

// Bool wraps bool.
type Bool struct {
	value bool
}

// NewBool returns the shared True or False object.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}

func (b *Bool) Type() types.Type { return types.Boolean }

func (b *Bool) Value() bool { return b.value }

func (b *Bool) Inspect() string { return strconv.FormatBool(b.value) }

func (b *Bool) String() string { return b.Inspect() }

func (b *Bool) Interface() any { return b.value }

func (b *Bool) HashKey() HashKey {
	return HashKey{Type: types.Boolean, Value: b.Inspect()}
}

func (b *Bool) Equals(other Object) bool {
	o, ok := other.(*Bool)
	return ok && b.value == o.value
}

// String wraps string.
type String struct {
	value string
}

// NewString returns a String.
func NewString(value string) *String {
	return &String{value: value}
}

func (s *String) Type() types.Type { return types.String }

func (s *String) Value() string { return s.value }

func (s *String) Inspect() string { return strconv.Quote(s.value) }

func (s *String) String() string { return s.value }

func (s *String) Interface() any { return s.value }

func (s *String) HashKey() HashKey {
	return HashKey{Type: types.String, Value: s.value}
}

func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && s.value == o.value
}

func (s *String) Compare(other Object) (int, error) {
	o, ok := other.(*String)
	if !ok {
		return 0, TypeErrorf("unable to compare String and %s", other.Type())
	}
	return compareOrdered(s.value, o.value), nil
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
