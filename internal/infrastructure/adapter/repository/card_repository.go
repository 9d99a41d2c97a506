package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/infrastructure/adapter/model"
)

// CardRepository implements the CardRepository port using GORM. Every
// query is scoped by user_id, so foreign cards surface as not found.
type CardRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCardRepository creates a new CardRepository instance
func NewCardRepository(db *gorm.DB, logger coreport.Logger) *CardRepository {
	return &CardRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func cardModelToEntity(m *model.Card) *entity.Card {
	return &entity.Card{
		ID:          m.ID,
		UserID:      m.UserID,
		CardUID:     m.CardUID,
		Mask:        m.Mask,
		Last4:       m.Last4,
		ExpiryMonth: m.ExpiryMonth,
		ExpiryYear:  m.ExpiryYear,
		Nickname:    m.Nickname,
		Currency:    m.Currency,
		IsMock:      m.IsMock,
		CreatedAt:   m.CreatedAt,
	}
}

func cardEntityToModel(c *entity.Card) *model.Card {
	return &model.Card{
		ID:          c.ID,
		UserID:      c.UserID,
		CardUID:     c.CardUID,
		Mask:        c.Mask,
		Last4:       c.Last4,
		ExpiryMonth: c.ExpiryMonth,
		ExpiryYear:  c.ExpiryYear,
		Nickname:    c.Nickname,
		Currency:    c.Currency,
		IsMock:      c.IsMock,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *CardRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrCardNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrPoolLocked
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new card and sets its ID
func (r *CardRepository) Create(ctx context.Context, card *entity.Card) error {
	m := cardEntityToModel(card)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("creating card", err, card.UserID)
	}
	card.ID = m.ID
	return nil
}

// GetByUID resolves the external card token to a card row
func (r *CardRepository) GetByUID(ctx context.Context, userID uint64, cardUID string) (*entity.Card, error) {
	var m model.Card
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND card_uid = ?", userID, cardUID).
		First(&m).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting card", err, userID)
	}
	return cardModelToEntity(&m), nil
}

// ListByUser returns the user's cards, newest first
func (r *CardRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Card, error) {
	var rows []model.Card
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing cards", err, userID)
	}

	out := make([]entity.Card, 0, len(rows))
	for i := range rows {
		out = append(out, *cardModelToEntity(&rows[i]))
	}
	return out, nil
}

// Delete removes a card row
func (r *CardRepository) Delete(ctx context.Context, userID, cardID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, cardID).
		Delete(&model.Card{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting card", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCardNotFound
	}
	return nil
}

// LockByID takes FOR UPDATE on the card row, serializing concurrent
// expenses against its pool until the surrounding transaction ends
func (r *CardRepository) LockByID(ctx context.Context, userID, cardID uint64) error {
	var m model.Card
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND id = ?", userID, cardID).
		First(&m).Error
	if err != nil {
		return r.handleDatabaseError("locking card", err, userID)
	}
	return nil
}
