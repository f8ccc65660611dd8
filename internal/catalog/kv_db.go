package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS catalog_kv (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	db, err := sql.Open("pgx", stdlib.RegisterConnConfig(connConfig))
	if err != nil {
		return nil, err
	}

	if err := withTimeout(ctx, pingTimeout, db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database is unavailable: %w", err)
	}
	return db, nil
}

func (s *PostgresKV) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, kvSchema)
		return err
	})
}

func (s *PostgresKV) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT value
			FROM catalog_kv
			WHERE key = $1
		`, key).Scan(&v)
	})

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *PostgresKV) Write(ctx context.Context, key string, value []byte) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO catalog_kv (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`, key, value)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
