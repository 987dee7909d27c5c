package web

import (
	"net/http"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/flexnit/flexnit/internal/logging"
)

// messageResponse is the body of auth endpoints that only confirm success.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var params auth.RegisterParams
	if err := decodeJSON(r, &params); err != nil {
		respondError(w, r, &catalog.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	user, err := s.auth.Register(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.sessions.Issue(w, r, user); err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("user registered", "user_id", user.ID)
	writeJSONStatus(w, http.StatusCreated, messageResponse{Message: "Registered successfully."})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, &catalog.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.sessions.Issue(w, r, user); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, messageResponse{Message: "Login successful."})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(w, r); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, messageResponse{Message: "Logged out successfully"})
}
