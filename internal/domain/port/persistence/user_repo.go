package persistence

import (
	"context"

	"fintrack/internal/domain/entity"
)

// UserRepository provides access to user rows
type UserRepository interface {
	// Create inserts a new user and sets its ID.
	//
	// Possible errors:
	// - ErrEmailTaken: if the email is already registered
	// - ErrDatabaseConnection: if the database cannot be reached
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by internal id
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by email, used by login
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// LockByID takes an exclusive row lock on the user inside the current
	// transaction. The cash pool has no row of its own, so the user row is
	// its lock anchor: concurrent cash expenses serialize on it.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrPoolLocked: lock wait timed out or deadlocked
	// - ErrDatabaseConnection
	LockByID(ctx context.Context, id uint64) error
}
