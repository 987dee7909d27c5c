package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/flexnit/flexnit/internal/csvio"
	"github.com/google/uuid"
)

// listSeparator is the literal separator used by the source data for
// multi-valued cells (cast, countries, listed_in).
const listSeparator = ", "

// dateLayouts are the accepted date_added formats, tried in order.
// The dataset mostly carries "September 25, 2021" style dates.
var dateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, listSeparator)
}

// buildShow normalizes one raw CSV row into a validated show.
//
// An empty date_added leaves DateAdded unset; a non-empty value that fails
// to parse fails the row. The type cell maps "Movie" exactly to Movie and
// anything else to TVShow, matching the source dataset's two-value column.
// Category names from listed_in are resolved in order of appearance,
// creating unseen categories through the resolver; the resulting reference
// list preserves source order, including repeats.
func buildShow(ctx context.Context, row csvio.Row, resolver *CategoryResolver) (*Show, error) {
	show := &Show{
		ID:          uuid.New(),
		ShowID:      row["show_id"],
		Title:       row["title"],
		Director:    row["director"],
		Cast:        splitList(row["cast"]),
		Countries:   splitList(row["country"]),
		ReleaseYear: row["release_year"],
		Rating:      row["rating"],
		Duration:    row["duration"],
		Description: row["description"],
	}

	if raw := row["date_added"]; raw != "" {
		added, err := parseDate(raw)
		if err != nil {
			return nil, &ValidationError{Field: "date_added", Message: "invalid date: " + raw}
		}
		show.DateAdded = &added
	}

	if row["type"] == "Movie" {
		show.Type = Movie
	} else {
		show.Type = TVShow
	}

	for _, name := range splitList(row["listed_in"]) {
		id, err := resolver.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		show.Categories = append(show.Categories, CategoryRef{ID: id, Name: name})
	}

	if err := show.Validate(); err != nil {
		return nil, err
	}

	return show, nil
}
