package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
	"fintrack/internal/infrastructure/adapter/model"
)

// LedgerRepository implements the LedgerRepository port using GORM. All
// balance and spend figures are aggregate queries over the transactions
// table; nothing here updates a row in place.
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func txModelToEntity(m *model.Transaction) entity.Transaction {
	return entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		CardID:      m.CardID,
		AmountCents: m.AmountCents,
		Type:        entity.TransactionType(m.Type),
		Category:    m.Category,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
		IsMock:      m.IsMock,
		CreatedAt:   m.CreatedAt,
	}
}

func txEntityToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		CardID:      t.CardID,
		AmountCents: t.AmountCents,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		IsMock:      t.IsMock,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *LedgerRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrPoolLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Insert appends a transaction row and sets its ID
func (r *LedgerRepository) Insert(ctx context.Context, tx *entity.Transaction) error {
	m := txEntityToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleDatabaseError("inserting transaction", err, tx.UserID)
	}
	tx.ID = m.ID
	return nil
}

// Delete removes a single owner-scoped transaction
func (r *LedgerRepository) Delete(ctx context.Context, userID, txID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, txID).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting transaction", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// DeleteByIDs removes the given owner-scoped transactions
func (r *LedgerRepository) DeleteByIDs(ctx context.Context, userID uint64, txIDs []uint64) error {
	if len(txIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, txIDs).
		Delete(&model.Transaction{}).Error
	if err != nil {
		return r.handleDatabaseError("deleting transactions", err, userID)
	}
	return nil
}

// DeleteByCard removes all of a card's transactions
func (r *LedgerRepository) DeleteByCard(ctx context.Context, userID, cardID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Delete(&model.Transaction{}).Error
	if err != nil {
		return r.handleDatabaseError("deleting card transactions", err, userID)
	}
	return nil
}

// CountByCard reports how many transactions reference the card
func (r *LedgerRepository) CountByCard(ctx context.Context, userID, cardID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Count(&count).Error
	if err != nil {
		return 0, r.handleDatabaseError("counting card transactions", err, userID)
	}
	return count, nil
}

// listRow is the scan target for the card-joined listing
type listRow struct {
	model.Transaction
	CardUID  string
	CardMask string
}

// List returns the user's transactions joined with card tokens, newest
// first
func (r *LedgerRepository) List(ctx context.Context, userID uint64, filter persistence.ListFilter) ([]entity.TransactionView, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("transactions.*, cards.card_uid AS card_uid, cards.mask AS card_mask").
		Joins("LEFT JOIN cards ON cards.id = transactions.card_id").
		Where("transactions.user_id = ?", userID)

	if filter.Type != "" {
		q = q.Where("transactions.type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("transactions.category = ?", filter.Category)
	}
	if filter.From != nil {
		q = q.Where("transactions.occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("transactions.occurred_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []listRow
	err := q.Order("transactions.occurred_at DESC, transactions.id DESC").Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing transactions", err, userID)
	}

	out := make([]entity.TransactionView, 0, len(rows))
	for i := range rows {
		out = append(out, entity.TransactionView{
			Transaction: txModelToEntity(&rows[i].Transaction),
			CardUID:     rows[i].CardUID,
			CardMask:    rows[i].CardMask,
		})
	}
	return out, nil
}

// ListByCard returns a single card's transactions, newest first
func (r *LedgerRepository) ListByCard(ctx context.Context, userID, cardID uint64, limit int) ([]entity.Transaction, error) {
	var rows []model.Transaction
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Order("occurred_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing card transactions", err, userID)
	}

	out := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, txModelToEntity(&rows[i]))
	}
	return out, nil
}

// PoolBalance sums signed amounts for one pool. Decision-grade callers
// hold the pool anchor lock; the aggregate itself cannot take FOR UPDATE.
func (r *LedgerRepository) PoolBalance(ctx context.Context, userID uint64, cardID *uint64) (int64, error) {
	var sum int64
	q := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ?", userID)
	if cardID != nil {
		q = q.Where("card_id = ?", *cardID)
	} else {
		q = q.Where("card_id IS NULL")
	}
	if err := q.Scan(&sum).Error; err != nil {
		return 0, r.handleDatabaseError("computing pool balance", err, userID)
	}
	return sum, nil
}

// balanceRow is the scan target for grouped sums
type balanceRow struct {
	CardID uint64
	Total  int64
}

// BalancesByCard returns derived balances grouped by card id
func (r *LedgerRepository) BalancesByCard(ctx context.Context, userID uint64) (map[uint64]int64, error) {
	var rows []balanceRow
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("card_id, COALESCE(SUM(amount_cents), 0) AS total").
		Where("user_id = ? AND card_id IS NOT NULL", userID).
		Group("card_id").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("computing card balances", err, userID)
	}

	out := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		out[row.CardID] = row.Total
	}
	return out, nil
}

// CardsTotal sums signed amounts across all card pools
func (r *LedgerRepository) CardsTotal(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ? AND card_id IS NOT NULL", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, r.handleDatabaseError("computing cards total", err, userID)
	}
	return sum, nil
}

// CategoryExpenseInRange sums expense magnitudes for one category with
// occurred_at in [from, to)
func (r *LedgerRepository) CategoryExpenseInRange(ctx context.Context, userID uint64, category string, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("COALESCE(SUM(-amount_cents), 0)").
		Where("user_id = ? AND type = ? AND category = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, string(entity.TypeExpense), category, from, to).
		Scan(&sum).Error
	if err != nil {
		return 0, r.handleDatabaseError("computing category spend", err, userID)
	}
	return sum, nil
}

// spendRow is the scan target for grouped expense sums
type spendRow struct {
	Category string
	Total    int64
}

// ExpensesByCategoryInRange sums expense magnitudes grouped by category
// with occurred_at in [from, to)
func (r *LedgerRepository) ExpensesByCategoryInRange(ctx context.Context, userID uint64, from, to time.Time) (map[string]int64, error) {
	var rows []spendRow
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("category, COALESCE(SUM(-amount_cents), 0) AS total").
		Where("user_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			userID, string(entity.TypeExpense), from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("computing category spends", err, userID)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Total
	}
	return out, nil
}
