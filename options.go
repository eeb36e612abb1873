package screenscript

import (
	"io"

	"github.com/deepnoodle-ai/screenscript/host"
	"github.com/deepnoodle-ai/screenscript/interp"
	"github.com/rs/zerolog"
)

// Option configures a Context.
type Option func(*options)

type options struct {
	host        interp.Host
	hostOpts    []host.Option
	output      io.Writer
	logger      zerolog.Logger
	observer    interp.Observer
	maxDepth    int
	errCallback func(string)
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithHost replaces the default host. Output written by a custom host is
// not captured in Result.Output.
func WithHost(h interp.Host) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithStore sets the store backing app and screen variables of the default
// host.
func WithStore(store host.Store) Option {
	return func(o *options) {
		o.hostOpts = append(o.hostOpts, host.WithStore(store))
	}
}

// WithFetcher sets how the default host reads JSON documents and images.
func WithFetcher(fetcher host.Fetcher) Option {
	return func(o *options) {
		o.hostOpts = append(o.hostOpts, host.WithFetcher(fetcher))
	}
}

// WithScreen names the screen the script runs on.
func WithScreen(name string) Option {
	return func(o *options) {
		o.hostOpts = append(o.hostOpts, host.WithScreen(name))
	}
}

// WithOutput copies everything the script prints to w, in addition to
// Result.Output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithLogger sets the logger. Each run logs with a run_id field.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer interp.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMaxDepth sets the maximum nesting depth accepted by the parser.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithErrorCallback registers a function called once, with the formatted
// message, when the run's first error is reported.
func WithErrorCallback(fn func(string)) Option {
	return func(o *options) {
		o.errCallback = fn
	}
}
