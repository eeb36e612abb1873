// Package interp executes a parsed script by walking its tree.
//
// Statements run in source order against a flat Memory. Built-in calls are
// dispatched by name to a Host, which owns every side effect: output,
// fetching, and persisted variables. Execution stops at the first runtime
// error or at a return statement.
package interp

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/deepnoodle-ai/screenscript/types"
	"github.com/rs/zerolog"
)

// Host is the capability table built-in calls are dispatched to. A call is
// atomic: it either returns a single value or fails with no partial effect.
type Host interface {
	Invoke(ctx context.Context, name string, args []object.Object) (object.Object, error)
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(ctx context.Context, name string, args []object.Object) (object.Object, error)

func (f HostFunc) Invoke(ctx context.Context, name string, args []object.Object) (object.Object, error) {
	return f(ctx, name, args)
}

// ErrHalted is returned when an observer stops execution.
var ErrHalted = errors.New("execution halted by observer")

// Interpreter executes a program. It must not be used by more than one
// goroutine at a time.
type Interpreter struct {
	host     Host
	memory   *Memory
	reporter *errz.Reporter
	logger   zerolog.Logger
	observer Observer
}

// New returns an Interpreter configured with the given options.
func New(options ...Option) *Interpreter {
	in := &Interpreter{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(in)
	}
	if in.memory == nil {
		in.memory = NewMemory()
	}
	if in.reporter == nil {
		in.reporter = errz.NewReporter(nil)
	}
	return in
}

// Memory returns the interpreter's variable store.
func (in *Interpreter) Memory() *Memory {
	return in.memory
}

// returned carries the value of a return statement up through the blocks.
type returned struct {
	value object.Object
}

// Run executes the block. It returns the value of the return statement that
// stopped the program, or nil if the program ran to completion. A runtime
// error is latched into the reporter and returned.
func (in *Interpreter) Run(ctx context.Context, root *ast.Block) (object.Object, error) {
	ret, err := in.execBlock(ctx, root)
	if err != nil {
		e, ok := errz.As(err)
		if !ok {
			e = errz.New(errz.ErrRuntime, errz.NoLine, "%w", err)
		}
		in.reporter.Latch(e)
		in.logger.Debug().Err(e).Msg("execution failed")
		return nil, e
	}
	if ret != nil {
		return ret.value, nil
	}
	return nil, nil
}

func (in *Interpreter) execBlock(ctx context.Context, block *ast.Block) (*returned, error) {
	for _, stmt := range block.Stmts {
		ret, err := in.execStmt(ctx, stmt)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

func (in *Interpreter) execStmt(ctx context.Context, stmt ast.Stmt) (*returned, error) {
	line := stmt.Pos()
	if in.observer != nil {
		if !in.observer.OnStep(StepEvent{Line: line, Stmt: stmt, StackDepth: in.memory.StackDepth()}) {
			return nil, runtimeError(line, ErrHalted)
		}
	}
	in.logger.Debug().Int("line", line+1).Str("stmt", fmt.Sprintf("%T", stmt)).Msg("exec")

	ret, err := in.dispatch(ctx, stmt)
	if err != nil {
		if _, ok := errz.As(err); ok {
			return nil, err
		}
		return nil, runtimeError(line, err)
	}
	return ret, nil
}

func (in *Interpreter) dispatch(ctx context.Context, stmt ast.Stmt) (*returned, error) {
	switch stmt := stmt.(type) {
	case *ast.Assignment:
		return nil, in.execAssignment(ctx, stmt)
	case *ast.IfStatement:
		ok, err := in.condition(ctx, stmt.Cond)
		if err != nil || !ok {
			return nil, err
		}
		return in.execBlock(ctx, stmt.Body)
	case *ast.WhileLoop:
		return in.execWhile(ctx, stmt)
	case *ast.ForLoop:
		return in.execFor(ctx, stmt)
	case *ast.MethodCall:
		_, err := in.eval(ctx, stmt)
		return nil, err
	case *ast.ReturnStatement:
		value, err := in.eval(ctx, stmt.Value)
		if err != nil {
			return nil, err
		}
		return &returned{value: value}, nil
	}
	return nil, fmt.Errorf("unknown statement type %T", stmt)
}

func (in *Interpreter) execAssignment(ctx context.Context, stmt *ast.Assignment) error {
	value, err := in.eval(ctx, stmt.Value)
	if err != nil {
		return err
	}
	if value, err = applyCast(value, stmt.Cast); err != nil {
		return err
	}
	in.memory.Set(stmt.Target.Name(), value)
	return nil
}

func (in *Interpreter) execWhile(ctx context.Context, stmt *ast.WhileLoop) (*returned, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("execution canceled: %w", err)
		}
		ok, err := in.condition(ctx, stmt.Cond)
		if err != nil || !ok {
			return nil, err
		}
		ret, err := in.execBlock(ctx, stmt.Body)
		if err != nil || ret != nil {
			return ret, err
		}
	}
}

// execFor binds each element to the loop identifier in turn. The binder is
// scoped to the body, so a binding that existed before the loop is restored
// once it ends.
func (in *Interpreter) execFor(ctx context.Context, stmt *ast.ForLoop) (*returned, error) {
	source, err := in.eval(ctx, stmt.Source)
	if err != nil {
		return nil, err
	}
	arr, ok := source.(*object.Array)
	if !ok {
		return nil, fmt.Errorf("for loop source must be an Array (got %s)", source.Type())
	}
	if outer, ok := in.memory.Get(stmt.Binder.Name); ok {
		defer in.memory.Set(stmt.Binder.Name, outer)
	}
	for _, item := range arr.Items() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("execution canceled: %w", err)
		}
		if item, err = applyCast(item, stmt.Cast); err != nil {
			return nil, err
		}
		in.memory.Set(stmt.Binder.Name, item)
		ret, err := in.execBlock(ctx, stmt.Body)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

// condition evaluates the condition of an if or while statement.
func (in *Interpreter) condition(ctx context.Context, cond ast.Expr) (bool, error) {
	value, err := in.eval(ctx, cond)
	if err != nil {
		return false, err
	}
	b, ok := value.(*object.Bool)
	if !ok {
		return false, fmt.Errorf("condition must be a Boolean (got %s)", value.Type())
	}
	return b.Value(), nil
}

func applyCast(value object.Object, cast *ast.Cast) (object.Object, error) {
	if cast == nil {
		return value, nil
	}
	target, ok := types.ParseCastTarget(cast.TypeName)
	if !ok {
		return nil, fmt.Errorf("invalid cast target %q", cast.TypeName)
	}
	return object.Cast(value, target)
}

func runtimeError(line int, err error) *errz.Error {
	return errz.New(errz.ErrRuntime, line, "%w", err)
}
