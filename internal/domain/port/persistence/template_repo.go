package persistence

import (
	"context"

	"fintrack/internal/domain/entity"
)

// TemplateRepository provides owner-scoped access to transaction templates
type TemplateRepository interface {
	// Create inserts a new template and sets its ID
	Create(ctx context.Context, tpl *entity.TxTemplate) error

	// GetByID retrieves an owner-scoped template
	//
	// Possible errors:
	// - ErrTemplateNotFound
	GetByID(ctx context.Context, userID, templateID uint64) (*entity.TxTemplate, error)

	// ListByUser returns the user's templates, newest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.TxTemplate, error)

	// Delete removes an owner-scoped template
	//
	// Possible errors:
	// - ErrTemplateNotFound
	Delete(ctx context.Context, userID, templateID uint64) error
}
