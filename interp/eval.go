package interp

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/object"
)

func (in *Interpreter) eval(ctx context.Context, expr ast.Expr) (object.Object, error) {
	switch x := expr.(type) {
	case *ast.IntegerLit:
		return object.NewInt(x.Value), nil
	case *ast.FloatLit:
		return object.NewFloat(x.Value), nil
	case *ast.StringLit:
		return object.NewString(x.Value), nil
	case *ast.BoolLit:
		return object.NewBool(x.Value), nil
	case *ast.ColorLit:
		return object.NewColor(x.Value), nil
	case *ast.Identifier:
		value, ok := in.memory.Get(x.Name)
		if !ok {
			return nil, fmt.Errorf("%q is not defined", x.Name)
		}
		return in.subscript(ctx, value, x.Subscript)
	case *ast.BinaryOp:
		a, b, err := in.evalPair(ctx, x.X, x.Y)
		if err != nil {
			return nil, err
		}
		return object.BinaryOp(x.Op, a, b)
	case *ast.Compare:
		a, b, err := in.evalPair(ctx, x.X, x.Y)
		if err != nil {
			return nil, err
		}
		return object.Compare(x.Op, a, b)
	case *ast.Not:
		value, err := in.eval(ctx, x.X)
		if err != nil {
			return nil, err
		}
		return object.Not(value)
	case *ast.MethodCall:
		return in.call(ctx, x)
	case *ast.Array:
		items, err := in.evalAll(ctx, x.Items)
		if err != nil {
			return nil, err
		}
		return in.subscript(ctx, object.NewArray(items), x.Subscript)
	case *ast.Dictionary:
		dict, err := in.evalDictionary(ctx, x)
		if err != nil {
			return nil, err
		}
		return in.subscript(ctx, dict, x.Subscript)
	}
	return nil, fmt.Errorf("unknown expression type %T", expr)
}

func (in *Interpreter) evalPair(ctx context.Context, x, y ast.Expr) (object.Object, object.Object, error) {
	values, err := in.evalAll(ctx, []ast.Expr{x, y})
	if err != nil {
		return nil, nil, err
	}
	return values[0], values[1], nil
}

// evalAll evaluates expressions left to right, holding the results on the
// scratch stack until all of them succeeded.
func (in *Interpreter) evalAll(ctx context.Context, exprs []ast.Expr) ([]object.Object, error) {
	depth := in.memory.StackDepth()
	for _, expr := range exprs {
		value, err := in.eval(ctx, expr)
		if err != nil {
			in.memory.truncate(depth)
			return nil, err
		}
		in.memory.Push(value)
	}
	return in.memory.PopN(len(exprs)), nil
}

func (in *Interpreter) evalDictionary(ctx context.Context, x *ast.Dictionary) (*object.Dictionary, error) {
	exprs := make([]ast.Expr, 0, 2*len(x.Pairs))
	for _, p := range x.Pairs {
		exprs = append(exprs, p.Key, p.Value)
	}
	values, err := in.evalAll(ctx, exprs)
	if err != nil {
		return nil, err
	}
	dict := object.NewDictionary()
	for i := 0; i < len(values); i += 2 {
		if err := dict.Set(values[i], values[i+1]); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

func (in *Interpreter) subscript(ctx context.Context, value object.Object, key ast.Expr) (object.Object, error) {
	if key == nil {
		return value, nil
	}
	k, err := in.eval(ctx, key)
	if err != nil {
		return nil, err
	}
	result, err := object.Subscript(value, k)
	if err != nil {
		return nil, fmt.Errorf("subscript %s: %w", k.Inspect(), err)
	}
	return result, nil
}

func (in *Interpreter) call(ctx context.Context, x *ast.MethodCall) (object.Object, error) {
	if in.host == nil {
		return nil, fmt.Errorf("%s: no host configured", x.Name)
	}
	args, err := in.evalAll(ctx, x.Args)
	if err != nil {
		return nil, err
	}
	if in.observer != nil && !in.observer.OnCall(CallEvent{Line: x.Line, Name: x.Name, Args: args}) {
		return nil, ErrHalted
	}
	in.logger.Trace().Str("method", x.Name).Int("args", len(args)).Msg("call")

	result, err := in.host.Invoke(ctx, x.Name, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", x.Name, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%s: no value returned", x.Name)
	}
	if in.observer != nil && !in.observer.OnReturn(ReturnEvent{Line: x.Line, Name: x.Name, Result: result}) {
		return nil, ErrHalted
	}
	return result, nil
}
