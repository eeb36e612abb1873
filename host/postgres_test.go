package host

import (
	"context"
	"os"
	"testing"

	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func postgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("SCREENSCRIPT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SCREENSCRIPT_TEST_POSTGRES_DSN is not set")
	}
	store, err := NewPostgresStore(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestPostgresStore(t *testing.T) {
	store := postgresStore(t)
	ctx := context.Background()
	name := "var-" + uuid.Must(uuid.NewV4()).String()

	_, err := store.Get(ctx, AppScope, name)
	require.ErrorIs(t, err, ErrNotFound)

	dict := object.NewDictionary()
	require.NoError(t, dict.Set(object.NewString("title"), object.NewString("Home")))
	require.NoError(t, store.Set(ctx, AppScope, name, dict))
	require.NoError(t, store.Set(ctx, ScreenScope("main"), name, object.NewInt(1)))

	got, err := store.Get(ctx, AppScope, name)
	require.NoError(t, err)
	require.Equal(t, `{"title": "Home"}`, got.Inspect())

	require.NoError(t, store.Set(ctx, ScreenScope("main"), name, object.NewInt(2)))
	got, err = store.Get(ctx, ScreenScope("main"), name)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.(*object.Int).Value())
}
