package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixil98/go-arcana/internal/storage"
)

// Compile-time check.
var _ storage.Sink = (*PostgresSink)(nil)

// PostgresSink stores snapshot documents as rows of the documents table, one
// row per document name.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a sink over the pool.
func New(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}

// Read returns the stored document body. A document that was never written
// reads as nil data and no error.
func (s *PostgresSink) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE name = $1`, name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying document %q: %w", name, err)
	}
	return body, nil
}

// Write upserts the whole document.
func (s *PostgresSink) Write(ctx context.Context, name string, data []byte) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO documents (name, body, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing document %q: %w", name, err)
	}
	slog.Debug("document written", "name", name, "bytes", len(data), "rows", tag.RowsAffected())
	return nil
}
