package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the table PostgresStore keeps variables in.
const DefaultTable = "screenscript_variables"

// PostgresStore persists variables as JSON in a Postgres table keyed by
// scope and name.
//
// Colors and images are stored by their display form.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresStore connects to the database and creates the variables table
// if it does not exist.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	s := &PostgresStore{pool: pool, table: pgx.Identifier{DefaultTable}.Sanitize()}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
		scope      TEXT        NOT NULL,
		name       TEXT        NOT NULL,
		value      JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (scope, name)
	)`)
	if err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, scope Scope, name string) (object.Object, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM `+s.table+` WHERE scope = $1 AND name = $2`,
		string(scope), name,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return object.FromJSON(data)
}

func (s *PostgresStore) Set(ctx context.Context, scope Scope, name string, value object.Object) error {
	data, err := object.ToJSON(value)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table+` (scope, name, value) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (scope, name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		string(scope), name, string(data),
	)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
