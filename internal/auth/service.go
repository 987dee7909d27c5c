package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flexnit/flexnit/internal/catalog"
	"golang.org/x/crypto/bcrypt"
)

// Registration age bounds. The lower bound is a product rule, the upper
// bound a sanity check on the input.
const (
	MinRegistrationAge = 12
	MaxRegistrationAge = 120
)

// RegisterParams are the inputs to Register.
type RegisterParams struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Age             int    `json:"age"`
}

// Service implements registration and login on top of a UserStore.
type Service struct {
	users UserStore
}

// NewService creates an auth service.
func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register validates the params, hashes the password, and persists a new
// user. A duplicate email surfaces as a ConflictError.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if err := validateRegistration(p); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, p.Email)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return nil, &catalog.ConflictError{Resource: "user", Message: "user already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Email:        p.Email,
		PasswordHash: string(hash),
		Age:          p.Age,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the matching user.
// An unknown email is reported distinctly from a wrong password, matching
// the product's registration-prompt flow.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, &catalog.ValidationError{
				Field:   "email",
				Message: "provided email does not belong to a registered user",
			}
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func validateRegistration(p RegisterParams) error {
	email := strings.TrimSpace(p.Email)
	if email == "" || !strings.Contains(email, "@") {
		return &catalog.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if err := ValidatePassword(p.Password); err != nil {
		return err
	}
	if p.ConfirmPassword != p.Password {
		return &catalog.ValidationError{Field: "confirmPassword", Message: "must match password"}
	}
	if p.Age < MinRegistrationAge {
		return &catalog.ValidationError{Field: "age", Message: "you must be at least 12 years old to register"}
	}
	if p.Age > MaxRegistrationAge {
		return &catalog.ValidationError{Field: "age", Message: "invalid age"}
	}
	return nil
}
