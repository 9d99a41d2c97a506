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

// GoalRepository implements the GoalRepository port using GORM
type GoalRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewGoalRepository creates a new GoalRepository instance
func NewGoalRepository(db *gorm.DB, logger coreport.Logger) *GoalRepository {
	return &GoalRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func goalModelToEntity(m *model.Goal) *entity.Goal {
	return &entity.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		TargetCents: m.TargetCents,
		Deadline:    m.Deadline,
		CreatedAt:   m.CreatedAt,
	}
}

func goalEntityToModel(g *entity.Goal) *model.Goal {
	return &model.Goal{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		TargetCents: g.TargetCents,
		Deadline:    g.Deadline,
		CreatedAt:   g.CreatedAt,
	}
}

func (r *GoalRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrGoalNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new goal and sets its ID
func (r *GoalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	m := goalEntityToModel(goal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("creating goal", err, goal.UserID)
	}
	goal.ID = m.ID
	return nil
}

// GetByID retrieves an owner-scoped goal
func (r *GoalRepository) GetByID(ctx context.Context, userID, goalID uint64) (*entity.Goal, error) {
	var m model.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, goalID).
		First(&m).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting goal", err, userID)
	}
	return goalModelToEntity(&m), nil
}

// ListByUser returns the user's goals, newest first
func (r *GoalRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Goal, error) {
	var rows []model.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing goals", err, userID)
	}

	out := make([]entity.Goal, 0, len(rows))
	for i := range rows {
		out = append(out, *goalModelToEntity(&rows[i]))
	}
	return out, nil
}

// Update replaces the mutable fields of a goal
func (r *GoalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.Goal{}).
		Where("user_id = ? AND id = ?", goal.UserID, goal.ID).
		Updates(map[string]any{
			"title":        goal.Title,
			"target_cents": goal.TargetCents,
			"deadline":     goal.Deadline,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating goal", result.Error, goal.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrGoalNotFound
	}
	return nil
}

// Delete removes the goal row only; the usecase drives the compensating
// cascade over contributions and linked transactions
func (r *GoalRepository) Delete(ctx context.Context, userID, goalID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, goalID).
		Delete(&model.Goal{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting goal", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrGoalNotFound
	}
	return nil
}

// AddContribution inserts a contribution row and sets its ID
func (r *GoalRepository) AddContribution(ctx context.Context, c *entity.GoalContribution) error {
	m := &model.GoalContribution{
		UserID:      c.UserID,
		GoalID:      c.GoalID,
		AmountCents: c.AmountCents,
		OccurredAt:  c.OccurredAt,
		TxID:        c.TxID,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("adding contribution", err, c.UserID)
	}
	c.ID = m.ID
	return nil
}

// DeleteContribution removes a single contribution
func (r *GoalRepository) DeleteContribution(ctx context.Context, userID, goalID, contributionID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ? AND id = ?", userID, goalID, contributionID).
		Delete(&model.GoalContribution{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting contribution", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrContributionNotFound
	}
	return nil
}

// DeleteContributions removes all contributions of a goal
func (r *GoalRepository) DeleteContributions(ctx context.Context, userID, goalID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Delete(&model.GoalContribution{}).Error
	if err != nil {
		return r.handleDatabaseError("deleting contributions", err, userID)
	}
	return nil
}

// ContributionTxIDs collects the linked transaction ids of a goal's
// contributions
func (r *GoalRepository) ContributionTxIDs(ctx context.Context, userID, goalID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&model.GoalContribution{}).
		Where("user_id = ? AND goal_id = ? AND tx_id IS NOT NULL", userID, goalID).
		Pluck("tx_id", &ids).Error
	if err != nil {
		return nil, r.handleDatabaseError("collecting contribution transactions", err, userID)
	}
	return ids, nil
}

// savedRow is the scan target for grouped contribution sums
type savedRow struct {
	GoalID uint64
	Total  int64
}

// SavedByGoal returns contribution sums grouped by goal id
func (r *GoalRepository) SavedByGoal(ctx context.Context, userID uint64) (map[uint64]int64, error) {
	var rows []savedRow
	err := r.db.WithContext(ctx).
		Model(&model.GoalContribution{}).
		Select("goal_id, COALESCE(SUM(amount_cents), 0) AS total").
		Where("user_id = ?", userID).
		Group("goal_id").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("computing saved sums", err, userID)
	}

	out := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		out[row.GoalID] = row.Total
	}
	return out, nil
}
