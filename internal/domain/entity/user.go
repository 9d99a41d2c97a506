package entity

import (
	"fmt"
	"strings"
	"time"

	errs "fintrack/internal/domain/error"
)

// User is the identity anchor; every other entity is scoped to a user
type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a new user after validating the registration fields.
// The password hash is produced by the auth layer, not here.
func NewUser(name, email, passwordHash string, createdAt time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", errs.ErrValidation)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password is required", errs.ErrValidation)
	}

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}
