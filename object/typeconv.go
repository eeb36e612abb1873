package object

import (
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Cast converts obj to the target type.
func Cast(obj Object, target types.Type) (Object, error) {
	switch target {
	case types.Integer:
		return castInt(obj)
	case types.Float:
		return castFloat(obj)
	case types.String:
		if !isScalar(obj) {
			return nil, castError(obj, target)
		}
		return NewString(obj.String()), nil
	case types.Boolean:
		return castBool(obj)
	case types.Array, types.Dictionary:
		if obj.Type() != target {
			return nil, castError(obj, target)
		}
		return Copy(obj), nil
	}
	return nil, TypeErrorf("invalid cast target %q", target)
}

func castInt(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Int:
		return obj, nil
	case *Float:
		return NewInt(int64(obj.value)), nil
	case *Bool:
		if obj.value {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case *String:
		s := strings.TrimSpace(obj.value)
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return NewInt(v), nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return NewInt(int64(v)), nil
		}
		return nil, TypeErrorf("cannot convert %q to Integer", obj.value)
	}
	return nil, castError(obj, types.Integer)
}

func castFloat(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Float:
		return obj, nil
	case *Int:
		return NewFloat(float64(obj.value)), nil
	case *String:
		v, err := strconv.ParseFloat(strings.TrimSpace(obj.value), 64)
		if err != nil {
			return nil, TypeErrorf("cannot convert %q to Float", obj.value)
		}
		return NewFloat(v), nil
	}
	return nil, castError(obj, types.Float)
}

func castBool(obj Object) (Object, error) {
	switch obj := obj.(type) {
	case *Bool:
		return obj, nil
	case *Int:
		return NewBool(obj.value != 0), nil
	case *Float:
		return NewBool(obj.value != 0), nil
	case *String:
		switch strings.TrimSpace(obj.value) {
		case "true":
			return True, nil
		case "false":
			return False, nil
		}
		return nil, TypeErrorf("cannot convert %q to Boolean", obj.value)
	}
	return nil, castError(obj, types.Boolean)
}

func castError(obj Object, target types.Type) error {
	return TypeErrorf("cannot cast %s to %s", obj.Type(), target)
}

// AsString returns the value of a String object.
func AsString(obj Object) (string, error) {
	s, ok := obj.(*String)
	if !ok {
		return "", TypeErrorf("expected a String (%s given)", obj.Type())
	}
	return s.value, nil
}

// AsArray returns obj as an Array.
func AsArray(obj Object) (*Array, error) {
	a, ok := obj.(*Array)
	if !ok {
		return nil, TypeErrorf("expected an Array (%s given)", obj.Type())
	}
	return a, nil
}

// AsDictionary returns obj as a Dictionary.
func AsDictionary(obj Object) (*Dictionary, error) {
	d, ok := obj.(*Dictionary)
	if !ok {
		return nil, TypeErrorf("expected a Dictionary (%s given)", obj.Type())
	}
	return d, nil
}

// AsBool returns the value of a Boolean object.
func AsBool(obj Object) (bool, error) {
	b, ok := obj.(*Bool)
	if !ok {
		return false, TypeErrorf("expected a Boolean (%s given)", obj.Type())
	}
	return b.value, nil
}
