package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/infrastructure/adapter/model"
)

// TemplateRepository implements the TemplateRepository port using GORM
type TemplateRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTemplateRepository creates a new TemplateRepository instance
func NewTemplateRepository(db *gorm.DB, logger coreport.Logger) *TemplateRepository {
	return &TemplateRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func templateModelToEntity(m *model.TxTemplate) *entity.TxTemplate {
	return &entity.TxTemplate{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Type:        entity.TransactionType(m.Type),
		AmountCents: m.AmountCents,
		Category:    m.Category,
		Description: m.Description,
		CardUID:     m.CardUID,
		CreatedAt:   m.CreatedAt,
	}
}

func templateEntityToModel(t *entity.TxTemplate) *model.TxTemplate {
	return &model.TxTemplate{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Type:        string(t.Type),
		AmountCents: t.AmountCents,
		Category:    t.Category,
		Description: t.Description,
		CardUID:     t.CardUID,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *TemplateRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTemplateNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new template and sets its ID
func (r *TemplateRepository) Create(ctx context.Context, tpl *entity.TxTemplate) error {
	m := templateEntityToModel(tpl)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("creating template", err, tpl.UserID)
	}
	tpl.ID = m.ID
	return nil
}

// GetByID retrieves an owner-scoped template
func (r *TemplateRepository) GetByID(ctx context.Context, userID, templateID uint64) (*entity.TxTemplate, error) {
	var m model.TxTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, templateID).
		First(&m).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting template", err, userID)
	}
	return templateModelToEntity(&m), nil
}

// ListByUser returns the user's templates, newest first
func (r *TemplateRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.TxTemplate, error) {
	var rows []model.TxTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing templates", err, userID)
	}

	out := make([]entity.TxTemplate, 0, len(rows))
	for i := range rows {
		out = append(out, *templateModelToEntity(&rows[i]))
	}
	return out, nil
}

// Delete removes an owner-scoped template
func (r *TemplateRepository) Delete(ctx context.Context, userID, templateID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, templateID).
		Delete(&model.TxTemplate{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting template", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTemplateNotFound
	}
	return nil
}
