package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// DefaultCardTxLimit caps the per-card recent transactions listing
const DefaultCardTxLimit = 10

// UseCase implements card linking and management. Card balances are always
// derived from the ledger at read time.
type UseCase struct {
	uow          persistence.UnitOfWork
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewUseCase creates a new card use case
func NewUseCase(uow persistence.UnitOfWork, timeProvider core.TimeProvider, logger core.Logger) *UseCase {
	return &UseCase{uow: uow, timeProvider: timeProvider, logger: logger}
}

// CardWithBalance is a card joined with its derived balance
type CardWithBalance struct {
	entity.Card
	BalanceCents int64
}

// Balance returns the derived balance formatted with two decimal places
func (c *CardWithBalance) Balance() string {
	return entity.CentsToString(c.BalanceCents)
}

// List returns the user's cards with derived balances, newest first
func (u *UseCase) List(ctx context.Context, userID uint64) ([]CardWithBalance, error) {
	cards, err := u.uow.Cards(ctx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balances, err := u.uow.Ledger(ctx).BalancesByCard(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CardWithBalance, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardWithBalance{Card: c, BalanceCents: balances[c.ID]})
	}
	return out, nil
}

// MockLinkRequest carries the input for linking a mock card
type MockLinkRequest struct {
	Last4       string
	Nickname    string
	Currency    string
	ExpiryMonth *int
	ExpiryYear  *int
}

// MockLink creates a mock card with a freshly generated external token
func (u *UseCase) MockLink(ctx context.Context, userID uint64, req MockLinkRequest) (*entity.Card, error) {
	card, err := entity.NewMockCard(
		userID, uuid.NewString(),
		req.Last4, req.Nickname, req.Currency,
		req.ExpiryMonth, req.ExpiryYear,
		u.timeProvider.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := u.uow.Cards(ctx).Create(ctx, card); err != nil {
		return nil, err
	}

	u.logger.Info("Mock card linked", map[string]any{
		"user_id":  userID,
		"card_uid": card.CardUID,
		"last4":    card.Last4,
	})
	return card, nil
}

// Delete removes a card. A card that still has transactions is refused
// unless force is set, in which case its transactions are deleted first.
// The check and both deletes run in one unit of work.
func (u *UseCase) Delete(ctx context.Context, userID uint64, cardUID string, force bool) error {
	tctx, err := u.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = u.uow.Rollback(tctx)
		}
	}()

	card, err := u.uow.Cards(tctx).GetByUID(tctx, userID, cardUID)
	if err != nil {
		return err
	}

	count, err := u.uow.Ledger(tctx).CountByCard(tctx, userID, card.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		if !force {
			return errs.ErrCardHasTransactions
		}
		if err := u.uow.Ledger(tctx).DeleteByCard(tctx, userID, card.ID); err != nil {
			return err
		}
	}

	if err := u.uow.Cards(tctx).Delete(tctx, userID, card.ID); err != nil {
		return err
	}

	if err := u.uow.Commit(tctx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	committed = true

	u.logger.Info("Card deleted", map[string]any{
		"user_id":    userID,
		"card_uid":   cardUID,
		"forced":     force,
		"deleted_tx": count,
	})
	return nil
}

// Transactions returns a card's recent transactions, newest first
func (u *UseCase) Transactions(ctx context.Context, userID uint64, cardUID string, limit int) ([]entity.Transaction, error) {
	card, err := u.uow.Cards(ctx).GetByUID(ctx, userID, cardUID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultCardTxLimit
	}
	if limit > 100 {
		limit = 100
	}
	return u.uow.Ledger(ctx).ListByCard(ctx, userID, card.ID, limit)
}
