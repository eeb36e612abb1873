package interp

import (
	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/object"
)

// Observer is an interface for observing execution events. It can be used
// for tracing, coverage or debugging without modifying the interpreter.
//
// Observer methods are called synchronously during execution. Returning false
// from any method halts execution with a runtime error.
type Observer interface {
	// OnStep is called before each statement is executed.
	OnStep(event StepEvent) bool

	// OnCall is called before a built-in is invoked.
	OnCall(event CallEvent) bool

	// OnReturn is called after a built-in returns successfully.
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes a statement about to be executed.
type StepEvent struct {
	// Line is the 0-indexed source line of the statement.
	Line int

	// Stmt is the statement.
	Stmt ast.Stmt

	// StackDepth is the current depth of the scratch stack.
	StackDepth int
}

// CallEvent describes a built-in call.
type CallEvent struct {
	Line int
	Name string
	Args []object.Object
}

// ReturnEvent describes the result of a built-in call.
type ReturnEvent struct {
	Line   int
	Name   string
	Result object.Object
}

// NoOpObserver implements Observer and continues on every event. Embed it to
// implement only the methods you need.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool     { return true }
func (NoOpObserver) OnCall(CallEvent) bool     { return true }
func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }
