package store

import (
	"strings"
	"testing"

	"github.com/flexnit/flexnit/internal/catalog"
)

func TestBuildWhere_Empty(t *testing.T) {
	where, args := buildWhere(catalog.ShowFilter{})
	if where != "" {
		t.Errorf("where = %q, want empty", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildWhere_TypeOnly(t *testing.T) {
	movie := catalog.Movie
	where, args := buildWhere(catalog.ShowFilter{Type: &movie})

	if where != " WHERE type = $1" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 1 || args[0] != int16(1) {
		t.Errorf("args = %v, want [1]", args)
	}
}

func TestBuildWhere_AllConditions(t *testing.T) {
	tv := catalog.TVShow
	where, args := buildWhere(catalog.ShowFilter{
		Type:          &tv,
		ExcludeRating: "R",
		Search:        "voyage",
	})

	for _, want := range []string{
		"type = $1",
		"rating <> $2",
		"title ILIKE $3",
		"array_to_string(cast_members, ', ') ILIKE $4",
	} {
		if !strings.Contains(where, want) {
			t.Errorf("where %q missing %q", where, want)
		}
	}
	if strings.Count(where, " AND ") != 2 {
		t.Errorf("conditions should be ANDed: %q", where)
	}

	if len(args) != 4 {
		t.Fatalf("args = %v, want 4", args)
	}
	if args[2] != "%voyage%" || args[3] != "%voyage%" {
		t.Errorf("search args = %v, want wrapped patterns", args[2:])
	}
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"title", `"title"`},
		{`weird"name`, `"weird""name"`},
	}
	for _, tt := range tests {
		if got := quoteIdentifier(tt.in); got != tt.want {
			t.Errorf("quoteIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
