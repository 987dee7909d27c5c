package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// fakeCategoryStore is an in-memory CategoryStore for tests.
type fakeCategoryStore struct {
	mu          sync.Mutex
	categories  []Category
	allErr      error
	createErr   error
	createCalls int
}

func (f *fakeCategoryStore) All(ctx context.Context) ([]Category, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategoryStore) Create(ctx context.Context, name string) (Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return Category{}, f.createErr
	}
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	c := Category{ID: uuid.New(), Name: name}
	f.categories = append(f.categories, c)
	return c, nil
}

// fakeShowStore records upserts and replays canned list results.
type fakeShowStore struct {
	mu        sync.Mutex
	saved     []*Show
	upsertErr func(*Show) error

	byID map[uuid.UUID]*Show

	listItems  []Show
	total      int64
	lastFilter ShowFilter
	lastSort   ShowSort
	lastLimit  int
	lastOffset int
}

func (f *fakeShowStore) Upsert(ctx context.Context, show *Show) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		if err := f.upsertErr(show); err != nil {
			return err
		}
	}
	f.saved = append(f.saved, show)
	return nil
}

func (f *fakeShowStore) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	if show, ok := f.byID[id]; ok {
		return show, nil
	}
	return nil, ErrNotFound
}

func (f *fakeShowStore) List(ctx context.Context, filter ShowFilter, sort ShowSort, limit, offset int) ([]Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	f.lastSort = sort
	f.lastLimit = limit
	f.lastOffset = offset
	return f.listItems, nil
}

func (f *fakeShowStore) Count(ctx context.Context, filter ShowFilter) (int64, error) {
	return f.total, nil
}

var errStoreDown = errors.New("store unavailable")
