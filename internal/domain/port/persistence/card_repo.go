package persistence

import (
	"context"

	"fintrack/internal/domain/entity"
)

// CardRepository provides owner-scoped access to card rows. A card that
// exists but belongs to another user is reported as ErrCardNotFound so
// ownership is never leaked.
type CardRepository interface {
	// Create inserts a new card and sets its ID
	Create(ctx context.Context, card *entity.Card) error

	// GetByUID resolves the externally exposed card token to a card row
	//
	// Possible errors:
	// - ErrCardNotFound
	// - ErrDatabaseConnection
	GetByUID(ctx context.Context, userID uint64, cardUID string) (*entity.Card, error)

	// ListByUser returns the user's cards, newest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.Card, error)

	// Delete removes a card row
	//
	// Possible errors:
	// - ErrCardNotFound
	// - ErrDatabaseConnection
	Delete(ctx context.Context, userID, cardID uint64) error

	// LockByID takes an exclusive row lock on the card inside the current
	// transaction, serializing concurrent expenses against its pool
	//
	// Possible errors:
	// - ErrCardNotFound
	// - ErrPoolLocked
	// - ErrDatabaseConnection
	LockByID(ctx context.Context, userID, cardID uint64) error
}
