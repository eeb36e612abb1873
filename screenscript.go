// Package screenscript runs scripts written in a small, statically checked
// language for app screens.
//
// A run tokenizes, parses and checks the source, then executes it only if
// no error was reported. Every run owns its error reporter, symbol table and
// memory:
//
//	res, err := screenscript.Run(ctx, "total = 1 + 2\nprint(total)\n")
package screenscript

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/deepnoodle-ai/screenscript/checker"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/host"
	"github.com/deepnoodle-ai/screenscript/interp"
	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/deepnoodle-ai/screenscript/parser"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// ErrContextUsed is returned when Run is called twice on the same Context.
var ErrContextUsed = errors.New("context has already run a program")

// Result describes a finished run.
type Result struct {
	// Output holds everything printed by the default host.
	Output string

	// Value is the value of the return statement that stopped the program,
	// or nil.
	Value object.Object

	// Vars holds the variables in memory when the run ended.
	Vars map[string]object.Object

	// Err is the run's first error, or nil.
	Err *errz.Error
}

// Context holds the state of a single run.
type Context struct {
	ID uuid.UUID

	reporter *errz.Reporter
	table    *checker.Table
	memory   *interp.Memory
	output   bytes.Buffer
	logger   zerolog.Logger
	opts     *options
	used     bool
}

// NewContext returns a Context with a fresh reporter, symbol table, memory
// and run ID.
func NewContext(opts ...Option) *Context {
	o := collectOptions(opts...)
	id := uuid.Must(uuid.NewV4())
	return &Context{
		ID:       id,
		reporter: errz.NewReporter(o.errCallback),
		table:    checker.NewTable(),
		memory:   interp.NewMemory(),
		logger:   o.logger.With().Str("run_id", id.String()).Logger(),
		opts:     o,
	}
}

// Reporter returns the run's error reporter.
func (c *Context) Reporter() *errz.Reporter {
	return c.reporter
}

func (c *Context) parserOpts() []parser.Option {
	opts := []parser.Option{parser.WithTable(c.table)}
	if c.opts.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.opts.maxDepth))
	}
	return opts
}

func (c *Context) host() interp.Host {
	if c.opts.host != nil {
		return c.opts.host
	}
	var out io.Writer = &c.output
	if c.opts.output != nil {
		out = io.MultiWriter(&c.output, c.opts.output)
	}
	opts := append([]host.Option{host.WithOutput(out), host.WithLogger(c.logger)}, c.opts.hostOpts...)
	return host.New(opts...)
}

// compile parses and checks the source. A nil program with a nil error
// means an error was latched into the reporter.
func (c *Context) compile(ctx context.Context, source string) (*parser.Program, error) {
	prog, err := parser.Parse(ctx, source, c.reporter, c.parserOpts()...)
	if err != nil {
		if _, ok := errz.As(err); !ok {
			return nil, err
		}
		return nil, nil
	}
	if c.reporter.HasError() {
		return nil, nil
	}
	if e := checker.Check(prog.Root, prog.Info); e != nil {
		c.reporter.Latch(e)
		return nil, nil
	}
	return prog, nil
}

// Run tokenizes, parses and checks the source, and executes it if no error
// was reported. The returned error is the run's first error, if any; it is
// also available as Result.Err.
func (c *Context) Run(ctx context.Context, source string) (*Result, error) {
	if c.used {
		return nil, ErrContextUsed
	}
	c.used = true
	c.logger.Debug().Int("bytes", len(source)).Msg("run started")

	prog, err := c.compile(ctx, source)
	if err != nil {
		return nil, err
	}
	var value object.Object
	if prog != nil {
		in := interp.New(
			interp.WithHost(c.host()),
			interp.WithMemory(c.memory),
			interp.WithReporter(c.reporter),
			interp.WithLogger(c.logger),
			interp.WithObserver(c.opts.observer),
		)
		value, _ = in.Run(ctx, prog.Root)
	}

	res := &Result{
		Output: c.output.String(),
		Value:  value,
		Vars:   c.memory.Vars(),
		Err:    c.reporter.Err(),
	}
	if res.Err != nil {
		c.logger.Debug().Err(res.Err).Msg("run failed")
		return res, res.Err
	}
	c.logger.Debug().Int("vars", len(res.Vars)).Msg("run finished")
	return res, nil
}

// Run is shorthand for NewContext(opts...).Run(ctx, source).
func Run(ctx context.Context, source string, opts ...Option) (*Result, error) {
	return NewContext(opts...).Run(ctx, source)
}

// Parse parses the source and returns the program with its symbol table and
// expression types. It does not run the semantic pass.
func Parse(ctx context.Context, source string, opts ...Option) (*parser.Program, error) {
	c := NewContext(opts...)
	prog, err := parser.Parse(ctx, source, c.reporter, c.parserOpts()...)
	if e := c.reporter.Err(); e != nil {
		return nil, e
	}
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// Check parses the source and runs the semantic pass without executing it.
// It returns the first error found.
func Check(ctx context.Context, source string, opts ...Option) error {
	c := NewContext(opts...)
	prog, err := c.compile(ctx, source)
	if err != nil {
		return err
	}
	if prog == nil {
		return c.reporter.Err()
	}
	return nil
}
