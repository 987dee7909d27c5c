package web

import (
	"context"
	"io"
	"net/http"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		respondError(w, r, &catalog.ValidationError{Field: "file", Message: "file too large or malformed upload"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, &catalog.ValidationError{Field: "file", Message: "no file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// The import keeps running under its own deadline even if the client
	// request times out first; there is no mid-file cancellation.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.cfg.Import.Timeout)
	defer cancel()

	report, err := s.catalog.Import(ctx, data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, report)
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, r, auth.ErrNoSession)
		return
	}

	params := catalog.ListParams{
		ViewerAge: claims.Age,
		Page:      parseIntParam(r, "page", 1),
		Limit:     parseIntParam(r, "limit", catalog.DefaultPageSize),
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortDir:   r.URL.Query().Get("sortDir"),
	}

	switch r.URL.Query().Get("type") {
	case "1":
		movie := catalog.Movie
		params.Type = &movie
	case "2":
		tv := catalog.TVShow
		params.Type = &tv
	}

	page, err := s.catalog.List(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, page)
}

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	show, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, show)
}
