package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShowFilter is the predicate for listing shows. All set fields are ANDed.
type ShowFilter struct {
	// Type restricts results to one show type when non-nil.
	Type *ShowType

	// ExcludeRating drops entries whose rating matches exactly.
	// Used by the age gate to hide "R" titles from underage viewers.
	ExcludeRating string

	// Search matches case-insensitively against title or cast.
	Search string
}

// ShowSort names a sortable column and direction. Field values are validated
// against the sortable-column allow-list before reaching the store.
type ShowSort struct {
	Field string
	Desc  bool
}

// ShowStore is the persistence surface for catalog entries.
type ShowStore interface {
	// Upsert inserts or fully replaces a show keyed by its identifier.
	Upsert(ctx context.Context, show *Show) error

	// GetByID fetches one show, returning ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)

	// List returns one page of shows matching the filter.
	List(ctx context.Context, filter ShowFilter, sort ShowSort, limit, offset int) ([]Show, error)

	// Count returns the total number of shows matching the filter.
	Count(ctx context.Context, filter ShowFilter) (int64, error)
}

// CategoryStore is the persistence surface for the category dimension.
type CategoryStore interface {
	// All returns every persisted category.
	All(ctx context.Context) ([]Category, error)

	// Create persists a category by name, returning the stored record.
	// Creating an existing name returns the existing record unchanged.
	Create(ctx context.Context, name string) (Category, error)
}
