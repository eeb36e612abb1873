package host

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/screenscript/object"
)

func (r *Registry) getJSONArray(ctx context.Context, args []object.Object) (object.Object, error) {
	value, err := r.loadJSON(ctx, args[0])
	if err != nil {
		return nil, err
	}
	arr, ok := value.(*object.Array)
	if !ok {
		return nil, object.TypeErrorf("expected a JSON array (%s given)", value.Type())
	}
	return arr, nil
}

func (r *Registry) getJSONDictionary(ctx context.Context, args []object.Object) (object.Object, error) {
	value, err := r.loadJSON(ctx, args[0])
	if err != nil {
		return nil, err
	}
	dict, ok := value.(*object.Dictionary)
	if !ok {
		return nil, object.TypeErrorf("expected a JSON object (%s given)", value.Type())
	}
	return dict, nil
}

// loadJSON decodes the source as an inline JSON document when it starts
// with a bracket, otherwise as the location of one.
func (r *Registry) loadJSON(ctx context.Context, arg object.Object) (object.Object, error) {
	source, err := object.AsString(arg)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(source)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return object.FromJSON([]byte(trimmed))
	}
	data, err := r.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	return object.FromJSON(data)
}

func countArray(ctx context.Context, args []object.Object) (object.Object, error) {
	arr, err := object.AsArray(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewInt(int64(arr.Len())), nil
}

func countDictionary(ctx context.Context, args []object.Object) (object.Object, error) {
	dict, err := object.AsDictionary(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewInt(int64(dict.Len())), nil
}

func getDictionaryKeys(ctx context.Context, args []object.Object) (object.Object, error) {
	dict, err := object.AsDictionary(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewArray(dict.Keys()), nil
}

func addItemToDictionary(ctx context.Context, args []object.Object) (object.Object, error) {
	dict, err := object.AsDictionary(args[0])
	if err != nil {
		return nil, err
	}
	result := dict.Copy()
	if err := result.Set(args[1], args[2]); err != nil {
		return nil, err
	}
	return result, nil
}

// removeItemFromDictionary returns a copy without the key. A missing key
// leaves the copy unchanged.
func removeItemFromDictionary(ctx context.Context, args []object.Object) (object.Object, error) {
	dict, err := object.AsDictionary(args[0])
	if err != nil {
		return nil, err
	}
	result := dict.Copy()
	if _, err := result.Delete(args[1]); err != nil {
		return nil, err
	}
	return result, nil
}

func addItemToArray(ctx context.Context, args []object.Object) (object.Object, error) {
	arr, err := object.AsArray(args[0])
	if err != nil {
		return nil, err
	}
	return arr.Append(args[1]), nil
}

func (r *Registry) setVariable(scope func() Scope) Func {
	return func(ctx context.Context, args []object.Object) (object.Object, error) {
		name, err := object.AsString(args[0])
		if err != nil {
			return nil, err
		}
		if err := r.store.Set(ctx, scope(), name, args[1]); err != nil {
			return nil, err
		}
		r.logger.Debug().Str("scope", string(scope())).Str("name", name).Msg("variable set")
		return object.True, nil
	}
}

func (r *Registry) getVariable(scope func() Scope) Func {
	return func(ctx context.Context, args []object.Object) (object.Object, error) {
		name, err := object.AsString(args[0])
		if err != nil {
			return nil, err
		}
		value, err := r.store.Get(ctx, scope(), name)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return nil, err
		}
		return value, nil
	}
}
