package host

import (
	"context"
	"errors"
	"sync"

	"github.com/deepnoodle-ai/screenscript/object"
)

// ErrNotFound is returned by a Store when a variable was never set.
var ErrNotFound = errors.New("variable not found")

// Scope namespaces persisted variables.
type Scope string

// AppScope holds variables shared by every screen of an app.
const AppScope Scope = "app"

// ScreenScope returns the scope of variables private to one screen.
func ScreenScope(screen string) Scope {
	return Scope("screen:" + screen)
}

// Store persists app and screen variables between runs.
type Store interface {
	Get(ctx context.Context, scope Scope, name string) (object.Object, error)
	Set(ctx context.Context, scope Scope, name string, value object.Object) error
}

type storeKey struct {
	scope Scope
	name  string
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[storeKey]object.Object
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[storeKey]object.Object{}}
}

func (s *MemoryStore) Get(ctx context.Context, scope Scope, name string) (object.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[storeKey{scope, name}]
	if !ok {
		return nil, ErrNotFound
	}
	return object.Copy(value), nil
}

func (s *MemoryStore) Set(ctx context.Context, scope Scope, name string, value object.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[storeKey{scope, name}] = object.Copy(value)
	return nil
}
