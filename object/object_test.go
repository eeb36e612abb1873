package object

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/types"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op       ast.Operator
		a, b     Object
		expected Object
	}{
		{ast.Plus, NewInt(2), NewInt(5), NewInt(7)},
		{ast.Minus, NewInt(2), NewInt(5), NewInt(-3)},
		{ast.Multiply, NewInt(3), NewInt(4), NewInt(12)},
		{ast.Divide, NewInt(7), NewInt(2), NewInt(3)},
		{ast.Mod, NewInt(7), NewInt(2), NewInt(1)},
		{ast.Divide, NewInt(-7), NewInt(2), NewInt(-3)},
		{ast.Plus, NewInt(1), NewFloat(0.5), NewFloat(1.5)},
		{ast.Divide, NewFloat(7), NewInt(2), NewFloat(3.5)},
		{ast.Mod, NewFloat(7.5), NewInt(2), NewFloat(1.5)},
		{ast.Plus, NewString("a"), NewString("b"), NewString("ab")},
		{ast.Plus, NewString("n="), NewInt(3), NewString("n=3")},
	}
	for _, tt := range tests {
		t.Run(tt.a.Inspect()+string(tt.op)+tt.b.Inspect(), func(t *testing.T) {
			result, err := BinaryOp(tt.op, tt.a, tt.b)
			require.NoError(t, err)
			require.Equal(t, tt.expected.Type(), result.Type())
			require.True(t, tt.expected.Equals(result), result.Inspect())
		})
	}
}

func TestIntegerOverflow(t *testing.T) {
	tests := []struct {
		op   ast.Operator
		x, y int64
	}{
		{ast.Plus, math.MaxInt64, 1},
		{ast.Plus, math.MinInt64, -1},
		{ast.Minus, math.MinInt64, 1},
		{ast.Minus, 0, math.MinInt64},
		{ast.Multiply, math.MaxInt64, 2},
		{ast.Multiply, math.MinInt64, -1},
		{ast.Multiply, -1, math.MinInt64},
		{ast.Divide, math.MinInt64, -1},
	}
	for _, tt := range tests {
		_, err := BinaryOp(tt.op, NewInt(tt.x), NewInt(tt.y))
		require.ErrorIs(t, err, ErrIntegerOverflow, "%d %s %d", tt.x, tt.op, tt.y)
	}

	ok := []struct {
		op        ast.Operator
		x, y, out int64
	}{
		{ast.Plus, math.MaxInt64 - 1, 1, math.MaxInt64},
		{ast.Minus, math.MinInt64 + 1, 1, math.MinInt64},
		{ast.Minus, -1, math.MinInt64, math.MaxInt64},
		{ast.Multiply, math.MinInt64, 1, math.MinInt64},
		{ast.Multiply, -3, 4, -12},
		{ast.Multiply, 0, math.MinInt64, 0},
		{ast.Mod, math.MinInt64, -1, 0},
	}
	for _, tt := range ok {
		got, err := BinaryOp(tt.op, NewInt(tt.x), NewInt(tt.y))
		require.NoError(t, err)
		require.Equal(t, tt.out, got.(*Int).Value())
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := BinaryOp(ast.Divide, NewInt(1), NewInt(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = BinaryOp(ast.Mod, NewInt(1), NewInt(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = BinaryOp(ast.Divide, NewFloat(1), NewFloat(0))
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = BinaryOp(ast.Minus, NewString("a"), NewString("b"))
	require.EqualError(t, err, "type error: unsupported operation: String - String")
	_, err = BinaryOp(ast.Plus, NewInt(1), True)
	require.Error(t, err)
	_, err = BinaryOp(ast.Plus, NewString("a"), NewArray(nil))
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		op       ast.Operator
		a, b     Object
		expected bool
	}{
		{ast.Eq, NewInt(1), NewInt(1), true},
		{ast.Eq, NewInt(1), NewFloat(1), true},
		{ast.Eq, NewString("1"), NewInt(1), false},
		{ast.Ne, True, False, true},
		{ast.Lt, NewInt(1), NewFloat(1.5), true},
		{ast.Ge, NewString("b"), NewString("a"), true},
		{ast.Le, NewInt(2), NewInt(2), true},
		{ast.Gt, NewInt(2), NewInt(3), false},
		{ast.And, True, False, false},
		{ast.Or, True, False, true},
		{ast.Eq, NewArray([]Object{NewInt(1)}), NewArray([]Object{NewInt(1)}), true},
		{ast.Eq, NewColor(color.RGBA{R: 1, A: 255}), NewColor(color.RGBA{R: 1, A: 255}), true},
	}
	for _, tt := range tests {
		result, err := Compare(tt.op, tt.a, tt.b)
		require.NoError(t, err)
		require.Equal(t, tt.expected, result.Value(), "%s %s %s", tt.a.Inspect(), tt.op, tt.b.Inspect())
	}

	_, err := Compare(ast.Lt, NewString("a"), NewInt(1))
	require.Error(t, err)
	_, err = Compare(ast.And, NewInt(1), True)
	require.Error(t, err)
	_, err = Compare(ast.Lt, True, False)
	require.Error(t, err)
}

func TestNot(t *testing.T) {
	result, err := Not(True)
	require.NoError(t, err)
	require.False(t, result.Value())
	_, err = Not(NewInt(0))
	require.Error(t, err)
}

func TestCast(t *testing.T) {
	tests := []struct {
		input    Object
		target   types.Type
		expected Object
	}{
		{NewFloat(3.9), types.Integer, NewInt(3)},
		{NewString(" 42 "), types.Integer, NewInt(42)},
		{NewString("2.5"), types.Integer, NewInt(2)},
		{True, types.Integer, NewInt(1)},
		{NewInt(2), types.Float, NewFloat(2)},
		{NewString("2.5"), types.Float, NewFloat(2.5)},
		{NewInt(5), types.String, NewString("5")},
		{NewFloat(1.25), types.String, NewString("1.25")},
		{False, types.String, NewString("false")},
		{NewColor(color.RGBA{R: 255, A: 255}), types.String, NewString("#FF0000FF")},
		{NewInt(0), types.Boolean, False},
		{NewFloat(0.1), types.Boolean, True},
		{NewString("true"), types.Boolean, True},
	}
	for _, tt := range tests {
		result, err := Cast(tt.input, tt.target)
		require.NoError(t, err, "%s as %s", tt.input.Inspect(), tt.target)
		require.Equal(t, tt.target, result.Type())
		require.True(t, tt.expected.Equals(result), "%s as %s = %s", tt.input.Inspect(), tt.target, result.Inspect())
	}

	bad := []struct {
		input  Object
		target types.Type
	}{
		{NewString("abc"), types.Integer},
		{NewString("yes"), types.Boolean},
		{True, types.Float},
		{NewArray(nil), types.String},
		{NewInt(1), types.Array},
		{NewArray(nil), types.Dictionary},
		{NewInt(1), types.Image},
	}
	for _, tt := range bad {
		_, err := Cast(tt.input, tt.target)
		require.Error(t, err, "%s as %s", tt.input.Inspect(), tt.target)
	}
}

func TestContainersAreValues(t *testing.T) {
	inner := NewArray([]Object{NewInt(1)})
	outer := NewArray([]Object{inner})
	appended := inner.Append(NewInt(2))
	require.Equal(t, 1, inner.Len())
	require.Equal(t, 2, appended.Len())

	first, err := outer.Get(0)
	require.NoError(t, err)
	require.NotSame(t, inner, first)
	require.True(t, inner.Equals(first))

	dict := NewDictionary()
	require.NoError(t, dict.Set(NewString("k"), inner))
	stored, err := dict.Get(NewString("k"))
	require.NoError(t, err)
	require.NotSame(t, inner, stored)

	copied := dict.Copy()
	require.NoError(t, copied.Set(NewString("x"), NewInt(1)))
	require.Equal(t, 1, dict.Len())
	require.Equal(t, 2, copied.Len())
}

func TestDictionaryOrder(t *testing.T) {
	dict := NewDictionary()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, dict.Set(NewString(k), NewInt(int64(len(k)))))
	}
	require.NoError(t, dict.Set(NewString("a"), NewInt(9)))
	require.Equal(t, `{"c": 1, "a": 9, "b": 1}`, dict.Inspect())

	ok, err := dict.Delete(NewString("c"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = dict.Delete(NewString("c"))
	require.NoError(t, err)
	require.False(t, ok)

	v, err := dict.Get(NewString("b"))
	require.NoError(t, err)
	require.Equal(t, int64(1), v.(*Int).Value())
	require.Equal(t, `{"a": 9, "b": 1}`, dict.Inspect())

	_, err = dict.Get(NewString("zz"))
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Error(t, dict.Set(NewArray(nil), NewInt(1)))
}

func TestSubscript(t *testing.T) {
	arr := NewArray([]Object{NewString("a"), NewString("b")})
	v, err := Subscript(arr, NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "b", v.String())

	_, err = Subscript(arr, NewInt(2))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Subscript(arr, NewInt(-1))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Subscript(arr, NewString("0"))
	require.Error(t, err)
	_, err = Subscript(NewInt(1), NewInt(0))
	require.Error(t, err)

	dict := NewDictionary()
	dict.Set(NewInt(1), NewString("one"))
	v, err = Subscript(dict, NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "one", v.String())
	_, err = Subscript(dict, NewFloat(2))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestJSON(t *testing.T) {
	obj, err := FromJSON([]byte(`{"z": 1, "a": [1.5, "x", true], "n": {"k": 2}}`))
	require.NoError(t, err)
	dict, ok := obj.(*Dictionary)
	require.True(t, ok)
	require.Equal(t, 3, dict.Len())
	require.Equal(t, "z", dict.Keys()[0].String())

	z, _ := dict.Get(NewString("z"))
	require.Equal(t, types.Integer, z.Type())
	a, _ := dict.Get(NewString("a"))
	require.Equal(t, `[1.5, "x", true]`, a.Inspect())

	data, err := ToJSON(dict)
	require.NoError(t, err)
	require.JSONEq(t, `{"z": 1, "a": [1.5, "x", true], "n": {"k": 2}}`, string(data))
	require.Equal(t, `{"z":1,"a":[1.5,"x",true],"n":{"k":2}}`, string(data))

	_, err = FromJSON([]byte(`[1, null]`))
	require.Error(t, err)
	_, err = FromJSON([]byte(`[1] 2`))
	require.Error(t, err)
	_, err = FromJSON([]byte(`{"a":`))
	require.Error(t, err)
}

func TestImageAndColor(t *testing.T) {
	img := NewImage(image.NewRGBA(image.Rect(0, 0, 4, 2)), "test.png")
	require.Equal(t, "image(4x2)", img.Inspect())
	require.Equal(t, types.Image, img.Type())
	require.True(t, img.Equals(img))

	c := NewColor(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	require.Equal(t, "#123456FF", c.String())
	data, err := ToJSON(NewArray([]Object{c}))
	require.NoError(t, err)
	require.Equal(t, `["#123456FF"]`, string(data))
}
