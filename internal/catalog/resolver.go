package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CategoryResolver maps category names to persisted identifiers, creating
// categories on first encounter. The name match is case-sensitive and exact.
//
// The cache is scoped to one import run and seeded with the full category
// set up front, so steady-state lookups cost no round-trips. The resolver is
// not safe for concurrent use; an import processes rows sequentially, and
// each run builds its own resolver. Two simultaneous imports can still race
// to create the same name, which the store's unique constraint collapses
// into a single record.
type CategoryResolver struct {
	store CategoryStore
	cache map[string]uuid.UUID
}

// NewCategoryResolver builds a resolver seeded with every existing category.
func NewCategoryResolver(ctx context.Context, store CategoryStore) (*CategoryResolver, error) {
	existing, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	cache := make(map[string]uuid.UUID, len(existing))
	for _, c := range existing {
		cache[c.Name] = c.ID
	}

	return &CategoryResolver{store: store, cache: cache}, nil
}

// Resolve returns the identifier for name, persisting a new category first
// if none exists. The cache is updated only after a successful save.
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (uuid.UUID, error) {
	if id, ok := r.cache[name]; ok {
		return id, nil
	}

	created, err := r.store.Create(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create category %q: %w", name, err)
	}

	r.cache[created.Name] = created.ID
	return created.ID, nil
}

// Known reports whether name is already in the run's cache.
func (r *CategoryResolver) Known(name string) bool {
	_, ok := r.cache[name]
	return ok
}
