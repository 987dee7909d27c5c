// Package catalog implements the media catalog: bulk CSV import of shows
// with per-row failure accounting, category find-or-create resolution, and
// paginated, filtered listing with an age gate on content ratings.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ShowType enumerates the two kinds of catalog entries.
type ShowType int

const (
	Movie  ShowType = 1
	TVShow ShowType = 2
)

// String returns the display name for the type.
func (t ShowType) String() string {
	switch t {
	case Movie:
		return "Movie"
	case TVShow:
		return "TV Show"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the defined show types.
func (t ShowType) Valid() bool {
	return t == Movie || t == TVShow
}

// CategoryRef is a denormalized snapshot of a category embedded in a show.
// Renaming the category later does not update snapshots taken at import time.
type CategoryRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// Category is a named dimension value attached to shows. Names are unique.
type Category struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// Show is one catalog entry, either a movie or a TV show.
//
// ReleaseYear stays a string because the source data is not numeric-safe
// (values like "2021" and "" both occur). Duration is free text such as
// "90 min" or "2 Seasons".
type Show struct {
	ID          uuid.UUID     `json:"_id"`
	ShowID      string        `json:"show_id"`
	Type        ShowType      `json:"type"`
	Title       string        `json:"title"`
	Director    string        `json:"director,omitempty"`
	Cast        []string      `json:"cast,omitempty"`
	Countries   []string      `json:"countries,omitempty"`
	DateAdded   *time.Time    `json:"date_added,omitempty"`
	ReleaseYear string        `json:"release_year"`
	Rating      string        `json:"rating"`
	Duration    string        `json:"duration"`
	Categories  []CategoryRef `json:"categories"`
	Description string        `json:"description"`
}

// Validate checks the assembled show against the schema constraints.
// It returns a *ValidationError naming the first failing field.
func (s *Show) Validate() error {
	if s.ShowID == "" {
		return &ValidationError{Field: "show_id", Message: "must not be empty"}
	}
	if !s.Type.Valid() {
		return &ValidationError{Field: "type", Message: "must be a valid show type"}
	}
	if s.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if len(s.Categories) == 0 {
		return &ValidationError{Field: "categories", Message: "must not be empty"}
	}
	for _, ref := range s.Categories {
		if ref.ID == uuid.Nil {
			return &ValidationError{Field: "categories", Message: "must reference persisted categories"}
		}
		if ref.Name == "" {
			return &ValidationError{Field: "categories", Message: "category name must not be empty"}
		}
	}
	return nil
}

// RowError records one failed import row. Row numbers are 1-based and count
// data rows, excluding the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// RowsInfo aggregates per-row outcomes of one import run.
type RowsInfo struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// ImportReport is the result of one import run. It is never persisted.
type ImportReport struct {
	Message string   `json:"message"`
	Rows    RowsInfo `json:"rows"`
}

// ShowPage is one page of list results plus totals over the full filtered set.
type ShowPage struct {
	Items      []Show `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}
