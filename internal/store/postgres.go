package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fluxbank/demo-bank/internal/models"

	// Import postgres driver for registration with database/sql
	_ "github.com/lib/pq"
)

// PostgresStore is a KV backend that keeps each collection as a single JSONB
// row, preserving the flat collection layout of the file store.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenPostgres connects to Postgres, verifies the connection and ensures the
// backing table exists.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure collections table: %w", err)
	}

	logger.Info("connected to postgres store")

	return &PostgresStore{db: db, logger: logger}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT data FROM collections WHERE name = $1`

	var data []byte
	err := p.db.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %q: %w", key, err)
	}

	return data, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = $2, updated_at = NOW()
	`

	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write collection %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM collections WHERE name = $1`

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete collection %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.logger.Info("closing postgres store")
	return p.db.Close()
}

var _ KV = (*PostgresStore)(nil)
