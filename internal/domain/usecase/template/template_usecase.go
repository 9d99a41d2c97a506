package template

import (
	"context"

	"fintrack/internal/domain/entity"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/domain/usecase/ledger"
)

// UseCase implements reusable transaction templates. Instantiating a
// template delegates to the admission pipeline, so template transactions
// go through the same budget and solvency checks as manual entry.
type UseCase struct {
	uow          persistence.UnitOfWork
	pipeline     *ledger.Pipeline
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewUseCase creates a new template use case
func NewUseCase(uow persistence.UnitOfWork, pipeline *ledger.Pipeline, timeProvider core.TimeProvider, logger core.Logger) *UseCase {
	return &UseCase{
		uow:          uow,
		pipeline:     pipeline,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns the user's templates, newest first
func (u *UseCase) List(ctx context.Context, userID uint64) ([]entity.TxTemplate, error) {
	return u.uow.Templates(ctx).ListByUser(ctx, userID)
}

// CreateRequest carries the input for a new template
type CreateRequest struct {
	Title       string
	Type        string
	Amount      string
	Category    string
	Description string
	CardUID     string
}

// Create validates and stores a new template
func (u *UseCase) Create(ctx context.Context, userID uint64, req CreateRequest) (*entity.TxTemplate, error) {
	tpl, err := entity.NewTxTemplate(
		userID, req.Title, req.Type, req.Amount,
		req.Category, req.Description, req.CardUID,
		u.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := u.uow.Templates(ctx).Create(ctx, tpl); err != nil {
		return nil, err
	}

	u.logger.Info("Template created", map[string]any{
		"user_id":     userID,
		"template_id": tpl.ID,
		"title":       tpl.Title,
	})
	return tpl, nil
}

// Delete removes an owned template
func (u *UseCase) Delete(ctx context.Context, userID, templateID uint64) error {
	return u.uow.Templates(ctx).Delete(ctx, userID, templateID)
}

// UseOverrides lets a caller replace template fields at instantiation
// time; nil fields fall back to the stored blueprint.
type UseOverrides struct {
	Type        *string
	Amount      *string
	Category    *string
	Description *string
	CardUID     *string
}

// Use instantiates a template into a fresh transaction through the full
// admission pipeline
func (u *UseCase) Use(ctx context.Context, userID, templateID uint64, overrides UseOverrides) (*entity.Transaction, error) {
	tpl, err := u.uow.Templates(ctx).GetByID(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	req := ledger.AdmitRequest{
		Type:        string(tpl.Type),
		Amount:      tpl.Amount(),
		Category:    tpl.Category,
		Description: tpl.Description,
		CardUID:     tpl.CardUID,
	}
	if overrides.Type != nil {
		req.Type = *overrides.Type
	}
	if overrides.Amount != nil {
		req.Amount = *overrides.Amount
	}
	if overrides.Category != nil {
		req.Category = *overrides.Category
	}
	if overrides.Description != nil {
		req.Description = *overrides.Description
	}
	if overrides.CardUID != nil {
		req.CardUID = *overrides.CardUID
	}

	return u.pipeline.Admit(ctx, userID, req)
}
