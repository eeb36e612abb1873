package interp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/deepnoodle-ai/screenscript/parser"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	out   strings.Builder
	calls []string
}

func (h *fakeHost) Invoke(ctx context.Context, name string, args []object.Object) (object.Object, error) {
	h.calls = append(h.calls, name)
	switch name {
	case "print":
		h.out.WriteString(args[0].String())
		h.out.WriteString("\n")
		return object.NewString(args[0].String()), nil
	case "countArray":
		arr, err := object.AsArray(args[0])
		if err != nil {
			return nil, err
		}
		return object.NewInt(int64(arr.Len())), nil
	case "addItemToArray":
		arr, err := object.AsArray(args[0])
		if err != nil {
			return nil, err
		}
		return arr.Append(args[1]), nil
	case "getAppVariable":
		return nil, errors.New("not found")
	}
	return nil, errors.New("unsupported")
}

func run(t *testing.T, source string, options ...Option) (*Interpreter, *fakeHost, object.Object, error) {
	t.Helper()
	reporter := errz.NewReporter(nil)
	prog, err := parser.Parse(context.Background(), source, reporter)
	require.NoError(t, err)
	require.Nil(t, reporter.Err(), "unexpected error: %v", reporter.Err())
	host := &fakeHost{}
	options = append([]Option{WithHost(host), WithReporter(reporter)}, options...)
	in := New(options...)
	result, err := in.Run(context.Background(), prog.Root)
	return in, host, result, err
}

func requireInt(t *testing.T, in *Interpreter, name string, expected int64) {
	t.Helper()
	value, ok := in.Memory().Get(name)
	require.True(t, ok, name)
	i, ok := value.(*object.Int)
	require.True(t, ok, "%s is %s", name, value.Type())
	require.Equal(t, expected, i.Value())
}

func TestArithmetic(t *testing.T) {
	in, _, _, err := run(t, "a = 2 + 2 + 3\nb = 2 * 3 + 1\nc = 7 / 2\nd = 7.0 / 2\n")
	require.NoError(t, err)
	requireInt(t, in, "a", 7)
	requireInt(t, in, "b", 8)
	requireInt(t, in, "c", 3)
	d, _ := in.Memory().Get("d")
	require.Equal(t, 3.5, d.(*object.Float).Value())
}

func TestForLoopLeavesLastElement(t *testing.T) {
	in, _, _, err := run(t, "for item in [1,2,3] { }\n")
	require.NoError(t, err)
	requireInt(t, in, "item", 3)
}

func TestForLoopBody(t *testing.T) {
	in, host, _, err := run(t, "total = 0\nfor n in [1, 2, 3, 4] {\n\ttotal = total + n\n\tprint(total)\n}\n")
	require.NoError(t, err)
	requireInt(t, in, "total", 10)
	require.Equal(t, "1\n3\n6\n10\n", host.out.String())
}

func TestForLoopCast(t *testing.T) {
	in, _, _, err := run(t, "sum = 0\nfor s as Integer in [\"1\", \"2\"] {\nsum = sum + s\n}\n")
	require.NoError(t, err)
	requireInt(t, in, "sum", 3)
}

func TestWhileLoop(t *testing.T) {
	in, _, _, err := run(t, "i = 0\nwhile i < 5 {\ni = i + 1\n}\n")
	require.NoError(t, err)
	requireInt(t, in, "i", 5)
}

func TestIfStatement(t *testing.T) {
	_, host, _, err := run(t, "x = 3\nif x > 2 {\nprint(\"big\")\n}\nif x == 1 {\nprint(\"one\")\n}\n")
	require.NoError(t, err)
	require.Equal(t, "big\n", host.out.String())
}

func TestReturnStopsProgram(t *testing.T) {
	in, host, result, err := run(t, "a = 1\nfor x in [1, 2, 3] {\nif x == 2 {\nreturn x\n}\nprint(x)\n}\na = 5\n")
	require.NoError(t, err)
	require.Equal(t, int64(2), result.(*object.Int).Value())
	require.Equal(t, "1\n", host.out.String())
	requireInt(t, in, "a", 1)
}

func TestContainersAreCopied(t *testing.T) {
	in, _, _, err := run(t, "a = [1]\nb = a\nb = addItemToArray(b, 2)\nc = countArray(a)\nd = countArray(b)\n")
	require.NoError(t, err)
	requireInt(t, in, "c", 1)
	requireInt(t, in, "d", 2)
}

func TestSubscripts(t *testing.T) {
	in, _, _, err := run(t, "a = [10, 20, 30]\nb = a[1]\nd = {\"k\": 5, 2: 6}\ne = d[\"k\"]\nf = d[2]\ng = [1, 2][0]\n")
	require.NoError(t, err)
	requireInt(t, in, "b", 20)
	requireInt(t, in, "e", 5)
	requireInt(t, in, "f", 6)
	requireInt(t, in, "g", 1)
}

func TestCasts(t *testing.T) {
	in, _, _, err := run(t, "a = \"42\" as Integer\nb = 3.9 as Integer\nc = 1 as Boolean\n")
	require.NoError(t, err)
	requireInt(t, in, "a", 42)
	requireInt(t, in, "b", 3)
	c, _ := in.Memory().Get("c")
	require.Equal(t, object.True, c)
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
		line    int
	}{
		{"a = 1 / 0\n", "division by zero", 0},
		{"a = [1]\nb = a[3]\n", "subscript 3: index out of range", 1},
		{"d = {\"a\": 1}\nb = d[\"z\"]\n", `subscript "z": key not found`, 1},
		{"x = \"abc\" as Integer\n", `type error: cannot convert "abc" to Integer`, 0},
		{"v = getAppVariable(\"k\")\n", "getAppVariable: not found", 0},
		{"a = 1\nif true {\n\tb = a % 0\n}\n", "division by zero", 2},
		{"if 1 + 1 {\n}\n", "condition must be a Boolean (got Integer)", 0},
		{"n = 1\nfor x in n {\n}\n", "for loop source must be an Array (got Integer)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			in, _, _, err := run(t, tt.source)
			require.Error(t, err)
			e, ok := errz.As(err)
			require.True(t, ok)
			require.Equal(t, errz.ErrRuntime, e.Kind)
			require.Equal(t, tt.message, e.Message)
			require.Equal(t, tt.line, e.Line)
			require.Equal(t, e, in.reporter.Err())
		})
	}
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	in, host, _, err := run(t, "print(\"a\")\nx = 1 / 0\nprint(\"b\")\n")
	require.Error(t, err)
	require.Equal(t, "a\n", host.out.String())
	_, ok := in.Memory().Get("x")
	require.False(t, ok)
}

func TestUndefinedAtRuntime(t *testing.T) {
	root := &ast.Block{Stmts: []ast.Stmt{
		&ast.Assignment{
			Target: &ast.Property{Path: []*ast.Identifier{{Name: "x"}}},
			Value:  &ast.Identifier{Line: 0, Name: "y"},
		},
	}}
	_, err := New().Run(context.Background(), root)
	require.EqualError(t, err, `runtime error: "y" is not defined on line 1`)
}

func TestCanceledLoop(t *testing.T) {
	reporter := errz.NewReporter(nil)
	prog, err := parser.Parse(context.Background(), "i = 0\nwhile true {\ni = i + 1\n}\n", reporter)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	observer := &countingObserver{limit: 50, cancel: cancel}
	in := New(WithHost(&fakeHost{}), WithObserver(observer))
	_, err = in.Run(ctx, prog.Root)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	e, _ := errz.As(err)
	require.Equal(t, errz.ErrRuntime, e.Kind)
	require.Equal(t, 1, e.Line)
}

type countingObserver struct {
	NoOpObserver
	steps  int
	limit  int
	cancel func()
}

func (o *countingObserver) OnStep(StepEvent) bool {
	o.steps++
	if o.steps == o.limit {
		o.cancel()
	}
	return true
}

type haltingObserver struct {
	NoOpObserver
	calls []string
}

func (o *haltingObserver) OnCall(event CallEvent) bool {
	o.calls = append(o.calls, event.Name)
	return event.Name != "countArray"
}

func TestObserverHalts(t *testing.T) {
	observer := &haltingObserver{}
	_, host, _, err := run(t, "print(1)\nn = countArray([1])\nprint(2)\n", WithObserver(observer))
	require.ErrorIs(t, err, ErrHalted)
	require.Equal(t, []string{"print", "countArray"}, observer.calls)
	require.Equal(t, []string{"print"}, host.calls)
}

func TestNoHost(t *testing.T) {
	prog, err := parser.Parse(context.Background(), "print(1)\n", nil)
	require.NoError(t, err)
	_, err = New().Run(context.Background(), prog.Root)
	require.EqualError(t, err, "runtime error: print: no host configured on line 1")
}

func TestMemoryStack(t *testing.T) {
	m := NewMemory()
	m.Push(object.NewInt(1))
	m.Push(object.NewInt(2))
	m.Push(object.NewInt(3))
	values := m.PopN(2)
	require.Equal(t, int64(2), values[0].(*object.Int).Value())
	require.Equal(t, int64(3), values[1].(*object.Int).Value())
	require.Equal(t, 1, m.StackDepth())
	m.truncate(0)
	require.Equal(t, 0, m.StackDepth())

	arr := object.NewArray([]object.Object{object.NewInt(1)})
	m.Set("a", arr)
	stored, _ := m.Get("a")
	require.NotSame(t, arr, stored)
	require.Equal(t, []string{"a"}, m.Names())
	require.Len(t, m.Vars(), 1)
}
