package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// showColumns is the select list shared by every show query. Categories are
// stored as a JSONB array of {_id, name} snapshots, preserving the order
// and duplicates the import produced.
const showColumns = `id, show_id, type, title, director, cast_members, countries,
	date_added, release_year, rating, duration, categories, description`

// Shows is the PostgreSQL-backed catalog.ShowStore.
type Shows struct {
	pool *pgxpool.Pool
}

// NewShows creates the show store.
func NewShows(pool *pgxpool.Pool) *Shows {
	return &Shows{pool: pool}
}

// Upsert inserts the show or fully replaces the existing row with the same
// external show_id. Re-importing a file is therefore idempotent: the row
// keeps its storage id while every content column is overwritten.
func (s *Shows) Upsert(ctx context.Context, show *catalog.Show) error {
	catsJSON, err := json.Marshal(show.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	const q = `
		INSERT INTO shows (
			id, show_id, type, title, director, cast_members, countries,
			date_added, release_year, rating, duration, categories, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (show_id) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			director = EXCLUDED.director,
			cast_members = EXCLUDED.cast_members,
			countries = EXCLUDED.countries,
			date_added = EXCLUDED.date_added,
			release_year = EXCLUDED.release_year,
			rating = EXCLUDED.rating,
			duration = EXCLUDED.duration,
			categories = EXCLUDED.categories,
			description = EXCLUDED.description,
			updated_at = now()`

	_, err = s.pool.Exec(ctx, q,
		show.ID,
		show.ShowID,
		int16(show.Type),
		show.Title,
		show.Director,
		show.Cast,
		show.Countries,
		show.DateAdded,
		show.ReleaseYear,
		show.Rating,
		show.Duration,
		catsJSON,
		show.Description,
	)
	if err != nil {
		return fmt.Errorf("upsert show: %w", err)
	}
	return nil
}

// GetByID fetches one show by its storage identifier.
func (s *Shows) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Show, error) {
	q := fmt.Sprintf(`SELECT %s FROM shows WHERE id = $1`, showColumns)

	show, err := scanShow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

// List returns one page of shows matching the filter.
func (s *Shows) List(ctx context.Context, filter catalog.ShowFilter, sort catalog.ShowSort, limit, offset int) ([]catalog.Show, error) {
	where, args := buildWhere(filter)

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	// sort.Field has already passed the service allow-list; quoting keeps
	// the identifier inert regardless.
	q := fmt.Sprintf(
		`SELECT %s FROM shows%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		showColumns,
		where,
		quoteIdentifier(sort.Field),
		dir,
		len(args)+1,
		len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	var shows []catalog.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, *show)
	}
	return shows, rows.Err()
}

// Count returns the number of shows matching the filter.
func (s *Shows) Count(ctx context.Context, filter catalog.ShowFilter) (int64, error) {
	where, args := buildWhere(filter)

	var total int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM shows`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count shows: %w", err)
	}
	return total, nil
}

// buildWhere composes the ANDed predicate for a show filter, returning the
// WHERE clause (empty when unfiltered) and its positional arguments.
func buildWhere(filter catalog.ShowFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.Type != nil {
		args = append(args, int16(*filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}

	if filter.ExcludeRating != "" {
		args = append(args, filter.ExcludeRating)
		conds = append(conds, fmt.Sprintf("rating <> $%d", len(args)))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR array_to_string(cast_members, ', ') ILIKE $%d)",
			len(args)-1, len(args),
		))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShow(row rowScanner) (*catalog.Show, error) {
	var (
		show      catalog.Show
		typ       int16
		dateAdded *time.Time
		catsJSON  []byte
	)

	err := row.Scan(
		&show.ID,
		&show.ShowID,
		&typ,
		&show.Title,
		&show.Director,
		&show.Cast,
		&show.Countries,
		&dateAdded,
		&show.ReleaseYear,
		&show.Rating,
		&show.Duration,
		&catsJSON,
		&show.Description,
	)
	if err != nil {
		return nil, err
	}

	show.Type = catalog.ShowType(typ)
	show.DateAdded = dateAdded
	if err := json.Unmarshal(catsJSON, &show.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	// A stored document that no longer satisfies the schema fails the
	// whole request rather than being skipped.
	if err := show.Validate(); err != nil {
		return nil, fmt.Errorf("stored show %s: %w", show.ID, err)
	}

	return &show, nil
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
