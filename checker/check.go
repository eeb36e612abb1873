package checker

import (
	"fmt"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/types"
)

// Info holds the static type of each expression, recorded while parsing.
type Info struct {
	Types map[ast.Expr]types.Type
}

// NewInfo returns an empty Info.
func NewInfo() *Info {
	return &Info{Types: map[ast.Expr]types.Type{}}
}

// Record sets the static type of an expression.
func (i *Info) Record(e ast.Expr, t types.Type) {
	i.Types[e] = t
}

// TypeOf returns the static type of an expression, or Unknown.
func (i *Info) TypeOf(e ast.Expr) types.Type {
	if t, ok := i.Types[e]; ok {
		return t
	}
	return types.Unknown
}

// Check walks a finished tree once and returns the first semantic
// violation: a call to an unknown built-in, a wrong argument count or type,
// or an invalid cast target. It returns nil if the tree is valid.
func Check(root *ast.Block, info *Info) *errz.Error {
	if info == nil {
		info = NewInfo()
	}
	var err *errz.Error
	ast.Inspect(root, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.MethodCall:
			err = checkCall(n, info)
		case *ast.Cast:
			if _, ok := types.ParseCastTarget(n.TypeName); !ok {
				err = errz.New(errz.ErrSemantic, n.Line, "invalid cast target %q", n.TypeName)
			}
		}
		return err == nil
	})
	return err
}

// UnknownMethodError is returned for a call to a name that is not a
// built-in.
type UnknownMethodError struct {
	Name string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method %q", e.Name)
}

func checkCall(call *ast.MethodCall, info *Info) *errz.Error {
	sig, ok := builtins.Lookup(call.Name)
	if !ok {
		return errz.New(errz.ErrSemantic, call.Line, "%w", &UnknownMethodError{Name: call.Name})
	}
	if len(call.Args) != sig.Arity() {
		return errz.New(errz.ErrSemantic, call.Line, "method %q expects %d argument(s), got %d",
			call.Name, sig.Arity(), len(call.Args))
	}
	for i, arg := range call.Args {
		got := info.TypeOf(arg)
		if !sig.Params[i].Accepts(got) {
			return errz.New(errz.ErrSemantic, call.Line, "argument %d of %q must be %s, got %s",
				i+1, call.Name, sig.Params[i], got)
		}
	}
	return nil
}
