// Package auth implements credential handling and cookie sessions: user
// registration and login backed by bcrypt hashes, and a signed session
// cookie carrying the viewer's identity and age for the catalog's age gate.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// User is a registered credential holder. Age feeds the catalog age gate.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Age          int
}

// ErrInvalidCredentials is returned when a password check fails.
// It deliberately carries no detail about which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoSession is returned when a request carries no valid session cookie.
var ErrNoSession = errors.New("no active session")

// UserStore is the persistence surface for users.
type UserStore interface {
	// Create persists a new user. A duplicate email yields a ConflictError.
	Create(ctx context.Context, user *User) error

	// GetByEmail fetches a user by unique email, ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID fetches a user by identifier, ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
