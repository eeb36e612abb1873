// Package host provides the reference capability table that built-in method
// calls are dispatched to: printing, fetching JSON and images, base64
// encoding, container helpers and persisted app and screen variables.
package host

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/rs/zerolog"
)

// Func implements one built-in. Arguments have already been checked against
// the built-in's arity.
type Func func(ctx context.Context, args []object.Object) (object.Object, error)

// Registry implements interp.Host for the built-ins named in package
// builtins.
type Registry struct {
	funcs   map[string]Func
	output  io.Writer
	store   Store
	fetcher Fetcher
	screen  string
	logger  zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithOutput sets the writer print writes to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Registry) {
		r.output = w
	}
}

// WithStore sets the store backing app and screen variables. Defaults to a
// fresh MemoryStore.
func WithStore(store Store) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithFetcher sets how documents and images are read. Defaults to a
// SourceFetcher.
func WithFetcher(fetcher Fetcher) Option {
	return func(r *Registry) {
		r.fetcher = fetcher
	}
}

// WithScreen names the screen whose variables getScreenVariable and
// setScreenVariable address.
func WithScreen(name string) Option {
	return func(r *Registry) {
		r.screen = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithFunc overrides or adds a built-in implementation.
func WithFunc(name string, fn Func) Option {
	return func(r *Registry) {
		r.funcs[name] = fn
	}
}

// New returns a Registry with every built-in registered.
func New(options ...Option) *Registry {
	r := &Registry{
		output: os.Stdout,
		screen: "main",
		logger: zerolog.Nop(),
	}
	r.funcs = map[string]Func{
		builtins.Print:                    r.print,
		builtins.GetJSONArray:             r.getJSONArray,
		builtins.GetJSONDictionary:        r.getJSONDictionary,
		builtins.GetImage:                 r.getImage,
		builtins.EncodeBase64:             encodeBase64,
		builtins.CountArray:               countArray,
		builtins.CountDictionary:          countDictionary,
		builtins.GetDictionaryKeys:        getDictionaryKeys,
		builtins.AddItemToDictionary:      addItemToDictionary,
		builtins.RemoveItemFromDictionary: removeItemFromDictionary,
		builtins.AddItemToArray:           addItemToArray,
		builtins.SetAppVariable:           r.setVariable(func() Scope { return AppScope }),
		builtins.GetAppVariable:           r.getVariable(func() Scope { return AppScope }),
		builtins.SetScreenVariable:        r.setVariable(func() Scope { return ScreenScope(r.screen) }),
		builtins.GetScreenVariable:        r.getVariable(func() Scope { return ScreenScope(r.screen) }),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.store == nil {
		r.store = NewMemoryStore()
	}
	if r.fetcher == nil {
		r.fetcher = NewSourceFetcher()
	}
	return r
}

// Store returns the store backing app and screen variables.
func (r *Registry) Store() Store {
	return r.store
}

// Invoke calls the named built-in.
func (r *Registry) Invoke(ctx context.Context, name string, args []object.Object) (object.Object, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", name)
	}
	if sig, ok := builtins.Lookup(name); ok && sig.Arity() != len(args) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", sig.Arity(), len(args))
	}
	result, err := fn(ctx, args)
	if err != nil {
		r.logger.Debug().Str("method", name).Err(err).Msg("builtin failed")
		return nil, err
	}
	return result, nil
}

func (r *Registry) print(ctx context.Context, args []object.Object) (object.Object, error) {
	text := args[0].String()
	if _, err := fmt.Fprintln(r.output, text); err != nil {
		return nil, err
	}
	return object.NewString(text), nil
}
