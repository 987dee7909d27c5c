package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestCategoryResolver_SeedsExisting(t *testing.T) {
	existing := Category{ID: uuid.New(), Name: "Drama"}
	store := &fakeCategoryStore{categories: []Category{existing}}

	resolver, err := NewCategoryResolver(context.Background(), store)
	if err != nil {
		t.Fatalf("NewCategoryResolver() error = %v", err)
	}

	id, err := resolver.Resolve(context.Background(), "Drama")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != existing.ID {
		t.Errorf("Resolve() = %v, want seeded id %v", id, existing.ID)
	}
	if store.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0 for a seeded name", store.createCalls)
	}
}

func TestCategoryResolver_CreatesOncePerName(t *testing.T) {
	store := &fakeCategoryStore{}
	resolver, err := NewCategoryResolver(context.Background(), store)
	if err != nil {
		t.Fatalf("NewCategoryResolver() error = %v", err)
	}

	first, err := resolver.Resolve(context.Background(), "Comedy")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(context.Background(), "Comedy")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first != second {
		t.Errorf("repeated Resolve returned different ids: %v, %v", first, second)
	}
	if store.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", store.createCalls)
	}
}

func TestCategoryResolver_CaseSensitive(t *testing.T) {
	store := &fakeCategoryStore{}
	resolver, err := NewCategoryResolver(context.Background(), store)
	if err != nil {
		t.Fatalf("NewCategoryResolver() error = %v", err)
	}

	a, err := resolver.Resolve(context.Background(), "Drama")
	if err != nil {
		t.Fatalf("Resolve(Drama) error = %v", err)
	}
	b, err := resolver.Resolve(context.Background(), "drama")
	if err != nil {
		t.Fatalf("Resolve(drama) error = %v", err)
	}

	if a == b {
		t.Error("names differing only in case should resolve to distinct categories")
	}
	if store.createCalls != 2 {
		t.Errorf("createCalls = %d, want 2", store.createCalls)
	}
}

func TestCategoryResolver_CreateFailureLeavesCacheUnchanged(t *testing.T) {
	store := &fakeCategoryStore{createErr: errStoreDown}
	resolver, err := NewCategoryResolver(context.Background(), store)
	if err != nil {
		t.Fatalf("NewCategoryResolver() error = %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), "Horror"); err == nil {
		t.Fatal("Resolve() expected error when create fails")
	}
	if resolver.Known("Horror") {
		t.Error("failed create must not populate the cache")
	}
}

func TestCategoryResolver_LoadFailure(t *testing.T) {
	store := &fakeCategoryStore{allErr: errStoreDown}

	if _, err := NewCategoryResolver(context.Background(), store); err == nil {
		t.Fatal("NewCategoryResolver() expected error when seed load fails")
	}
}
