package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps the whole document in a single jsonb row. The aggregate is
// always read and written whole, so one row is the entire schema.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	query := `
		CREATE TABLE IF NOT EXISTS chatbin_document (
			id         int PRIMARY KEY CHECK (id = 1),
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, query); err != nil {
		return nil, fmt.Errorf("creating document table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) FetchLatest(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM chatbin_document WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	return doc, nil
}

func (p *Postgres) Upsert(ctx context.Context, doc []byte) error {
	query := `
		INSERT INTO chatbin_document (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := p.pool.Exec(ctx, query, doc); err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}
