package object

import (
	"math"

	"github.com/deepnoodle-ai/screenscript/ast"
)

// BinaryOp performs an arithmetic operation on two objects.
//
// Integer operands produce an Integer, with truncating division. If either
// operand is a Float both are treated as floats. Plus with a String operand
// concatenates display forms.
func BinaryOp(op ast.Operator, a, b Object) (Object, error) {
	if !op.IsArithmetic() {
		return nil, TypeErrorf("unknown arithmetic operator %q", op)
	}
	_, aStr := a.(*String)
	_, bStr := b.(*String)
	if aStr || bStr {
		if op != ast.Plus || !isScalar(a) || !isScalar(b) {
			return nil, unsupported(op, a, b)
		}
		return NewString(a.String() + b.String()), nil
	}
	if x, ok := a.(*Int); ok {
		if y, ok := b.(*Int); ok {
			return intOp(op, x.value, y.value)
		}
	}
	x, okA := asNumber(a)
	y, okB := asNumber(b)
	if !okA || !okB {
		return nil, unsupported(op, a, b)
	}
	return floatOp(op, x, y)
}

func intOp(op ast.Operator, x, y int64) (Object, error) {
	switch op {
	case ast.Plus:
		r := x + y
		if (x >= 0) == (y >= 0) && (r >= 0) != (x >= 0) {
			return nil, ErrIntegerOverflow
		}
		return NewInt(r), nil
	case ast.Minus:
		r := x - y
		if (x >= 0) != (y >= 0) && (r >= 0) != (x >= 0) {
			return nil, ErrIntegerOverflow
		}
		return NewInt(r), nil
	case ast.Multiply:
		if x == 0 || y == 0 {
			return NewInt(0), nil
		}
		r := x * y
		if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return nil, ErrIntegerOverflow
		}
		return NewInt(r), nil
	case ast.Divide:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		if x == math.MinInt64 && y == -1 {
			return nil, ErrIntegerOverflow
		}
		return NewInt(x / y), nil
	default:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return NewInt(x % y), nil
	}
}

func floatOp(op ast.Operator, x, y float64) (Object, error) {
	switch op {
	case ast.Plus:
		return NewFloat(x + y), nil
	case ast.Minus:
		return NewFloat(x - y), nil
	case ast.Multiply:
		return NewFloat(x * y), nil
	case ast.Divide:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return NewFloat(x / y), nil
	default:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return NewFloat(math.Mod(x, y)), nil
	}
}

// Compare evaluates a comparison or boolean operator.
//
// Equality is defined for any pair of objects. Ordering is defined for
// numbers and for strings. "and" and "or" require two Booleans.
func Compare(op ast.Operator, a, b Object) (*Bool, error) {
	switch op {
	case ast.Eq:
		return NewBool(a.Equals(b)), nil
	case ast.Ne:
		return NewBool(!a.Equals(b)), nil
	case ast.And, ast.Or:
		x, okA := a.(*Bool)
		y, okB := b.(*Bool)
		if !okA || !okB {
			return nil, unsupported(op, a, b)
		}
		if op == ast.And {
			return NewBool(x.value && y.value), nil
		}
		return NewBool(x.value || y.value), nil
	}
	comparable, ok := a.(Comparable)
	if !ok {
		return nil, unsupported(op, a, b)
	}
	value, err := comparable.Compare(b)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.Lt:
		return NewBool(value < 0), nil
	case ast.Le:
		return NewBool(value <= 0), nil
	case ast.Gt:
		return NewBool(value > 0), nil
	case ast.Ge:
		return NewBool(value >= 0), nil
	}
	return nil, TypeErrorf("unknown comparison operator %q", op)
}

// Not negates a Boolean.
func Not(obj Object) (*Bool, error) {
	b, ok := obj.(*Bool)
	if !ok {
		return nil, TypeErrorf("not requires a Boolean (got %s)", obj.Type())
	}
	return NewBool(!b.value), nil
}

// Subscript looks up an index in an Array or a key in a Dictionary.
func Subscript(container, key Object) (Object, error) {
	switch c := container.(type) {
	case *Array:
		index, ok := key.(*Int)
		if !ok {
			return nil, TypeErrorf("array index must be an Integer (got %s)", key.Type())
		}
		return c.Get(index.value)
	case *Dictionary:
		return c.Get(key)
	}
	return nil, TypeErrorf("%s is not subscriptable", container.Type())
}

func asNumber(obj Object) (float64, bool) {
	switch obj := obj.(type) {
	case *Int:
		return float64(obj.value), true
	case *Float:
		return obj.value, true
	}
	return 0, false
}

func isScalar(obj Object) bool {
	switch obj.(type) {
	case *Int, *Float, *Bool, *String, *Color:
		return true
	}
	return false
}

func unsupported(op ast.Operator, a, b Object) error {
	return TypeErrorf("unsupported operation: %s %s %s", a.Type(), op, b.Type())
}
