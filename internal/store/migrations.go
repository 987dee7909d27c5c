package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are applied in order on startup. Statements are idempotent so
// the server can restart against an already-migrated database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		age INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS shows (
		id UUID PRIMARY KEY,
		show_id TEXT UNIQUE NOT NULL,
		type SMALLINT NOT NULL,
		title TEXT NOT NULL,
		director TEXT NOT NULL DEFAULT '',
		cast_members TEXT[],
		countries TEXT[],
		date_added DATE,
		release_year TEXT NOT NULL DEFAULT '',
		rating TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		categories JSONB NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_shows_title ON shows (title)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_type ON shows (type)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_rating ON shows (rating)`,
}

// Migrate applies the schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
