package checker

import (
	"testing"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/types"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsInRoot(t *testing.T) {
	table := NewTable()
	typ, err := table.Resolve("countArray")
	require.NoError(t, err)
	require.Equal(t, types.Integer, typ)

	typ, err = table.Resolve("getAppVariable")
	require.NoError(t, err)
	require.Equal(t, types.Any, typ)
	require.Equal(t, "root", table.Root().ID())
}

func TestDeclareAndResolve(t *testing.T) {
	table := NewTable()
	require.True(t, table.Declare("a", types.Integer))
	require.False(t, table.Declare("a", types.String), "re-declaration in the same scope is a no-op")

	typ, err := table.Resolve("a")
	require.NoError(t, err)
	require.Equal(t, types.Integer, typ)

	_, err = table.Resolve("missing")
	var notDeclared *NotDeclaredError
	require.ErrorAs(t, err, &notDeclared)
	require.Equal(t, `"missing" was used before it was declared`, err.Error())
}

func TestShadowingInnermostFirst(t *testing.T) {
	table := NewTable()
	table.Declare("x", types.Integer)
	inner := table.Push()
	require.Equal(t, "root.0", inner.ID())
	require.Equal(t, 1, table.Depth())

	require.True(t, table.Declare("x", types.String))
	typ, scope, ok := table.Lookup("x")
	require.True(t, ok)
	require.Equal(t, types.String, typ)
	require.Same(t, inner, scope)

	table.Pop()
	typ, err := table.Resolve("x")
	require.NoError(t, err)
	require.Equal(t, types.Integer, typ)

	table.Pop()
	require.Equal(t, 0, table.Depth(), "root is never popped")
}

func TestUnify(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Assign("x", types.Integer))
	require.NoError(t, table.Assign("x", types.Integer))
	require.NoError(t, table.Assign("x", types.Unknown))

	err := table.Assign("x", types.Float)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, types.Integer, mismatch.Declared)
	require.Equal(t, types.Float, mismatch.Assigned)
	require.Equal(t, `type mismatch: "x" is Integer but was assigned Float`, err.Error())
}

func TestUnknownRefinedOnce(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Assign("v", types.Any))
	typ, _ := table.Resolve("v")
	require.Equal(t, types.Unknown, typ)

	require.NoError(t, table.Assign("v", types.String))
	typ, _ = table.Resolve("v")
	require.Equal(t, types.String, typ)

	require.Error(t, table.Assign("v", types.Array))
	require.Error(t, table.Unify("nope", types.Array))
}

func TestAssignInNestedScopeUpdatesOuterBinding(t *testing.T) {
	table := NewTable()
	table.Assign("count", types.Unknown)
	table.Push()
	require.NoError(t, table.Assign("count", types.Integer))
	require.Empty(t, table.Current().Names())
	table.Pop()
	typ, _ := table.Resolve("count")
	require.Equal(t, types.Integer, typ)
}

func TestRollback(t *testing.T) {
	table := NewTable()
	table.Assign("kept", types.Unknown)
	mark := table.Mark()

	table.Assign("kept", types.Integer)
	table.Push()
	table.Declare("inner", types.String)
	table.Pop()
	table.Push()
	table.Declare("dropped", types.Boolean)

	table.Rollback(mark)
	require.Equal(t, 0, table.Depth())
	require.Same(t, table.Root(), table.Current())

	typ, err := table.Resolve("kept")
	require.NoError(t, err)
	require.Equal(t, types.Unknown, typ)
	_, err = table.Resolve("dropped")
	require.Error(t, err)
	require.Equal(t, mark, table.Mark())
}

func TestRollbackAcrossPop(t *testing.T) {
	table := NewTable()
	table.Push()
	mark := table.Mark()
	table.Pop()
	require.Equal(t, 0, table.Depth())
	table.Rollback(mark)
	require.Equal(t, 1, table.Depth())
}

func call(name string, args ...ast.Expr) *ast.MethodCall {
	return &ast.MethodCall{Line: 3, Name: name, Args: args}
}

func TestCheck(t *testing.T) {
	info := NewInfo()
	str := &ast.StringLit{Value: "k"}
	num := &ast.IntegerLit{Value: 1}
	arr := &ast.Array{}
	info.Record(str, types.String)
	info.Record(num, types.Integer)
	info.Record(arr, types.Array)

	tests := []struct {
		name string
		stmt ast.Stmt
		err  string
	}{
		{"valid", call("countArray", arr), ""},
		{"any accepts", call("print", num), ""},
		{"unknown accepted", call("countArray", &ast.Identifier{Name: "x"}), ""},
		{"unknown method", call("len", arr), `unknown method "len"`},
		{"arity", call("getAppVariable"), `method "getAppVariable" expects 1 argument(s), got 0`},
		{"arg type", call("countArray", str), `argument 1 of "countArray" must be Array, got String`},
		{"bad cast", &ast.Assignment{
			Target: &ast.Property{Path: []*ast.Identifier{{Name: "a"}}},
			Value:  num,
			Cast:   &ast.Cast{Line: 4, TypeName: "Image"},
		}, `invalid cast target "Image"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(&ast.Block{Stmts: []ast.Stmt{tt.stmt}}, info)
			if tt.err == "" {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, errz.ErrSemantic, err.Kind)
			require.Equal(t, tt.err, err.Message)
		})
	}
}

func TestCheckStopsAtFirstViolation(t *testing.T) {
	root := &ast.Block{Stmts: []ast.Stmt{
		&ast.IfStatement{
			Line: 1,
			Cond: &ast.BoolLit{Value: true},
			Body: &ast.Block{Stmts: []ast.Stmt{call("first")}},
		},
		call("second"),
	}}
	err := Check(root, nil)
	require.NotNil(t, err)
	require.Equal(t, `unknown method "first"`, err.Message)
	require.Equal(t, 3, err.Line)
}
