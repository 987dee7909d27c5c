package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/flexnit/flexnit/internal/csvio"
	"github.com/flexnit/flexnit/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ImportSuccessMessage is the fixed top-level message of a completed run.
// Per-row failures are reported alongside it, not instead of it.
const ImportSuccessMessage = "Imported successfully"

// DefaultPageSize is the list page size when the caller supplies none.
const DefaultPageSize = 15

// sortableColumns is the allow-list for caller-supplied sort fields.
// Anything outside it falls back to the default title sort.
var sortableColumns = map[string]bool{
	"title":        true,
	"type":         true,
	"release_year": true,
	"rating":       true,
	"duration":     true,
	"date_added":   true,
}

// Service implements catalog imports and queries on top of the store
// interfaces. Construct it once at startup and share across requests.
type Service struct {
	shows      ShowStore
	categories CategoryStore
	limiter    *ImportLimiter
}

// NewService creates a catalog service. limiter may be nil to disable
// concurrency limiting (used by tests).
func NewService(shows ShowStore, categories CategoryStore, limiter *ImportLimiter) *Service {
	return &Service{
		shows:      shows,
		categories: categories,
		limiter:    limiter,
	}
}

// Limiter exposes the import limiter for shutdown draining.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// Import runs the bulk-import pipeline over one uploaded CSV buffer.
//
// Rows are processed strictly in source order, one at a time: the category
// cache must observe each row's writes before the next row resolves its
// names. A row that fails to normalize or persist is recorded as a 1-based
// (row, message) entry and never blocks later rows. Failures outside the
// per-row loop, such as an unparseable file or a failed category load,
// abort the whole run.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportReport, error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
		defer s.limiter.Release()
	}

	rows, err := csvio.Read(data, csvio.Options{})
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: err.Error()}
	}

	resolver, err := NewCategoryResolver(ctx, s.categories)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	info := RowsInfo{Errors: []RowError{}}

	for i, row := range rows {
		if err := s.importRow(ctx, row, resolver); err != nil {
			info.Failed++
			info.Errors = append(info.Errors, RowError{Row: i + 1, Message: err.Error()})
			logger.Debug("import row failed", "row", i+1, "error", err.Error())
			continue
		}
		info.Success++
	}

	logger.Info("import completed",
		"rows", len(rows),
		"success", info.Success,
		"failed", info.Failed,
	)

	return &ImportReport{Message: ImportSuccessMessage, Rows: info}, nil
}

func (s *Service) importRow(ctx context.Context, row csvio.Row, resolver *CategoryResolver) error {
	show, err := buildShow(ctx, row, resolver)
	if err != nil {
		return err
	}
	if err := s.shows.Upsert(ctx, show); err != nil {
		return fmt.Errorf("save show: %w", err)
	}
	return nil
}

// ListParams are the caller-supplied criteria for one list request.
type ListParams struct {
	// ViewerAge drives the age gate: viewers under 18 never see "R" titles.
	ViewerAge int

	Page  int
	Limit int

	Search  string
	Type    *ShowType
	SortBy  string
	SortDir string
}

// List returns one page of shows matching the params, plus totals computed
// over the full filtered set. The page fetch and the count run concurrently
// against the same predicate.
func (s *Service) List(ctx context.Context, p ListParams) (*ShowPage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}

	filter := ShowFilter{
		Type:   p.Type,
		Search: p.Search,
	}
	if p.ViewerAge < 18 {
		filter.ExcludeRating = "R"
	}

	sort := ShowSort{Field: "title"}
	if sortableColumns[p.SortBy] {
		sort.Field = p.SortBy
	}
	sort.Desc = strings.EqualFold(p.SortDir, "desc")

	offset := (p.Page - 1) * p.Limit

	var (
		items []Show
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.shows.List(gctx, filter, sort, p.Limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.shows.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	if items == nil {
		items = []Show{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}

	return &ShowPage{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		TotalPages: totalPages,
	}, nil
}

// Get fetches one show by its identifier string.
func (s *Service) Get(ctx context.Context, id string) (*Show, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, &ValidationError{Field: "id", Message: "invalid id"}
	}
	return s.shows.GetByID(ctx, parsed)
}
