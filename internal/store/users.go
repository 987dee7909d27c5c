package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Users is the PostgreSQL-backed auth.UserStore.
type Users struct {
	pool *pgxpool.Pool
}

// NewUsers creates the user store.
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// Create persists a new user, assigning an id when the caller left it zero.
// The unique email constraint maps to a ConflictError.
func (s *Users) Create(ctx context.Context, user *auth.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	const q = `
		INSERT INTO users (id, email, password_hash, age)
		VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, q, user.ID, user.Email, user.PasswordHash, user.Age)
	if err != nil {
		if isUniqueViolation(err) {
			return &catalog.ConflictError{Resource: "user", Message: "user already exists"}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by unique email.
func (s *Users) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	const q = `SELECT id, email, password_hash, age FROM users WHERE email = $1`
	return s.getUser(ctx, q, email)
}

// GetByID fetches a user by identifier.
func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	const q = `SELECT id, email, password_hash, age FROM users WHERE id = $1`
	return s.getUser(ctx, q, id)
}

func (s *Users) getUser(ctx context.Context, q string, arg interface{}) (*auth.User, error) {
	var user auth.User
	err := s.pool.QueryRow(ctx, q, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Age)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
