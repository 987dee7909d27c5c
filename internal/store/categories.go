package store

import (
	"context"
	"fmt"

	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Categories is the PostgreSQL-backed catalog.CategoryStore.
type Categories struct {
	pool *pgxpool.Pool
}

// NewCategories creates the category store.
func NewCategories(pool *pgxpool.Pool) *Categories {
	return &Categories{pool: pool}
}

// All returns every category, ordered by name.
func (s *Categories) All(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a category by name. When the name already exists the
// stored record is returned unchanged, so concurrent importers racing on
// the same name converge on a single row. The no-op DO UPDATE makes
// RETURNING yield the surviving row in both cases.
func (s *Categories) Create(ctx context.Context, name string) (catalog.Category, error) {
	const q = `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var c catalog.Category
	err := s.pool.QueryRow(ctx, q, uuid.New(), name).Scan(&c.ID, &c.Name)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}
