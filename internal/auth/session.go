package auth

import (
	"net/http"

	"github.com/flexnit/flexnit/internal/config"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// Claims is the identity carried by a session cookie. Age is embedded so
// list requests never need a user lookup to apply the age gate.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Age    int
}

// Sessions issues, reads, and clears the signed session cookie.
//
// The cookie is backed by a gorilla CookieStore: values are serialized and
// HMAC-signed with the configured secret, so the client cannot forge or
// alter claims without invalidating the signature.
type Sessions struct {
	store *sessions.CookieStore
	name  string
}

// NewSessions builds the session manager from auth configuration.
func NewSessions(cfg config.AuthConfig) *Sessions {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	sameSite := http.SameSiteStrictMode
	if cfg.SecureCookie {
		// The SPA is served from a different origin in production.
		sameSite = http.SameSiteNoneMode
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: sameSite,
	}

	return &Sessions{store: store, name: cfg.SessionName}
}

// Issue writes a session cookie for the user onto the response.
func (s *Sessions) Issue(w http.ResponseWriter, r *http.Request, user *User) error {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		// An undecodable stale cookie still yields a fresh session; issuing
		// over it replaces the cookie.
		session, _ = s.store.New(r, s.name)
	}

	session.Values["user_id"] = user.ID.String()
	session.Values["email"] = user.Email
	session.Values["age"] = user.Age

	return session.Save(r, w)
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		session, _ = s.store.New(r, s.name)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Current returns the claims from the request's session cookie, or
// ErrNoSession when the cookie is absent, expired, or tampered with.
func (s *Sessions) Current(r *http.Request) (*Claims, error) {
	session, err := s.store.Get(r, s.name)
	if err != nil || session.IsNew {
		return nil, ErrNoSession
	}

	rawID, ok := session.Values["user_id"].(string)
	if !ok {
		return nil, ErrNoSession
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNoSession
	}

	email, _ := session.Values["email"].(string)
	age, ok := session.Values["age"].(int)
	if !ok {
		return nil, ErrNoSession
	}

	return &Claims{UserID: userID, Email: email, Age: age}, nil
}
