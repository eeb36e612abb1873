package interp

import (
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/rs/zerolog"
)

// Option is a configuration function for an Interpreter.
type Option func(*Interpreter)

// WithHost sets the capability table built-in calls are dispatched to.
func WithHost(host Host) Option {
	return func(in *Interpreter) {
		in.host = host
	}
}

// WithMemory sets the variable store. By default each interpreter creates
// its own.
func WithMemory(memory *Memory) Option {
	return func(in *Interpreter) {
		in.memory = memory
	}
}

// WithReporter sets the reporter runtime errors are latched into.
func WithReporter(reporter *errz.Reporter) Option {
	return func(in *Interpreter) {
		in.reporter = reporter
	}
}

// WithLogger sets the logger. Statements are logged at debug level and
// built-in calls at trace level.
func WithLogger(logger zerolog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer Observer) Option {
	return func(in *Interpreter) {
		in.observer = observer
	}
}
