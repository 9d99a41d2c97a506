// Package usecasetest provides an in-memory store implementing the
// persistence ports for usecase tests. Begin serializes atomic units on a
// mutex, mirroring the pool anchor lock of the real store, and Rollback
// restores a snapshot taken at Begin.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

type unitKey struct{}

type state struct {
	users         []entity.User
	cards         []entity.Card
	transactions  []entity.Transaction
	budgets       []entity.Budget
	goals         []entity.Goal
	contributions []entity.GoalContribution
	templates     []entity.TxTemplate
	nextID        uint64
}

func (s *state) clone() *state {
	c := &state{nextID: s.nextID}
	c.users = append([]entity.User(nil), s.users...)
	c.cards = append([]entity.Card(nil), s.cards...)
	c.transactions = append([]entity.Transaction(nil), s.transactions...)
	c.budgets = append([]entity.Budget(nil), s.budgets...)
	c.goals = append([]entity.Goal(nil), s.goals...)
	c.contributions = append([]entity.GoalContribution(nil), s.contributions...)
	c.templates = append([]entity.TxTemplate(nil), s.templates...)
	return c
}

// Store is the in-memory unit of work. The zero value is not usable; use
// NewStore.
type Store struct {
	mu       sync.Mutex // guards state on every repository call
	unit     sync.Mutex // held from Begin until Commit/Rollback
	state    *state
	snapshot *state
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{state: &state{nextID: 1}}
}

// Begin serializes the new unit against all others and snapshots state
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	s.unit.Lock()
	s.mu.Lock()
	s.snapshot = s.state.clone()
	s.mu.Unlock()
	return context.WithValue(ctx, unitKey{}, true), nil
}

// Commit keeps the mutations made since Begin
func (s *Store) Commit(ctx context.Context) error {
	if ctx.Value(unitKey{}) == nil {
		return errs.ErrInternalServer
	}
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	s.unit.Unlock()
	return nil
}

// Rollback restores the snapshot taken at Begin
func (s *Store) Rollback(ctx context.Context) error {
	if ctx.Value(unitKey{}) == nil {
		return errs.ErrInternalServer
	}
	s.mu.Lock()
	s.state = s.snapshot
	s.snapshot = nil
	s.mu.Unlock()
	s.unit.Unlock()
	return nil
}

// Users returns the user repository
func (s *Store) Users(ctx context.Context) persistence.UserRepository { return &userRepo{s} }

// Cards returns the card repository
func (s *Store) Cards(ctx context.Context) persistence.CardRepository { return &cardRepo{s} }

// Ledger returns the ledger repository
func (s *Store) Ledger(ctx context.Context) persistence.LedgerRepository { return &ledgerRepo{s} }

// Budgets returns the budget repository
func (s *Store) Budgets(ctx context.Context) persistence.BudgetRepository { return &budgetRepo{s} }

// Goals returns the goal repository
func (s *Store) Goals(ctx context.Context) persistence.GoalRepository { return &goalRepo{s} }

// Templates returns the template repository
func (s *Store) Templates(ctx context.Context) persistence.TemplateRepository {
	return &templateRepo{s}
}

func (s *Store) allocID() uint64 {
	id := s.state.nextID
	s.state.nextID++
	return id
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.Email == user.Email {
			return errs.ErrEmailTaken
		}
	}
	user.ID = r.s.allocID()
	r.s.state.users = append(r.s.state.users, *user)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *userRepo) LockByID(ctx context.Context, id uint64) error {
	_, err := r.GetByID(ctx, id)
	return err
}

type cardRepo struct{ s *Store }

func (r *cardRepo) Create(_ context.Context, card *entity.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	card.ID = r.s.allocID()
	r.s.state.cards = append(r.s.state.cards, *card)
	return nil
}

func (r *cardRepo) GetByUID(_ context.Context, userID uint64, cardUID string) (*entity.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.state.cards {
		if c.UserID == userID && c.CardUID == cardUID {
			out := c
			return &out, nil
		}
	}
	return nil, errs.ErrCardNotFound
}

func (r *cardRepo) ListByUser(_ context.Context, userID uint64) ([]entity.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Card, 0)
	for i := len(r.s.state.cards) - 1; i >= 0; i-- {
		if r.s.state.cards[i].UserID == userID {
			out = append(out, r.s.state.cards[i])
		}
	}
	return out, nil
}

func (r *cardRepo) Delete(_ context.Context, userID, cardID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.state.cards {
		if c.UserID == userID && c.ID == cardID {
			r.s.state.cards = append(r.s.state.cards[:i], r.s.state.cards[i+1:]...)
			return nil
		}
	}
	return errs.ErrCardNotFound
}

func (r *cardRepo) LockByID(_ context.Context, userID, cardID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.state.cards {
		if c.UserID == userID && c.ID == cardID {
			return nil
		}
	}
	return errs.ErrCardNotFound
}

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Insert(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx.ID = r.s.allocID()
	r.s.state.transactions = append(r.s.state.transactions, *tx)
	return nil
}

func (r *ledgerRepo) Delete(_ context.Context, userID, txID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.state.transactions {
		if t.UserID == userID && t.ID == txID {
			r.s.state.transactions = append(r.s.state.transactions[:i], r.s.state.transactions[i+1:]...)
			return nil
		}
	}
	return errs.ErrTransactionNotFound
}

func (r *ledgerRepo) DeleteByIDs(_ context.Context, userID uint64, txIDs []uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keep := make(map[uint64]bool, len(txIDs))
	for _, id := range txIDs {
		keep[id] = true
	}
	out := r.s.state.transactions[:0]
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && keep[t.ID] {
			continue
		}
		out = append(out, t)
	}
	r.s.state.transactions = out
	return nil
}

func (r *ledgerRepo) DeleteByCard(_ context.Context, userID, cardID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.s.state.transactions[:0]
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.CardID != nil && *t.CardID == cardID {
			continue
		}
		out = append(out, t)
	}
	r.s.state.transactions = out
	return nil
}

func (r *ledgerRepo) CountByCard(_ context.Context, userID, cardID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.CardID != nil && *t.CardID == cardID {
			n++
		}
	}
	return n, nil
}

func (r *ledgerRepo) List(_ context.Context, userID uint64, filter persistence.ListFilter) ([]entity.TransactionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cards := make(map[uint64]entity.Card, len(r.s.state.cards))
	for _, c := range r.s.state.cards {
		cards[c.ID] = c
	}

	out := make([]entity.TransactionView, 0)
	for _, t := range r.s.state.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && string(t.Type) != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.From != nil && t.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !t.OccurredAt.Before(*filter.To) {
			continue
		}
		v := entity.TransactionView{Transaction: t}
		if t.CardID != nil {
			if c, ok := cards[*t.CardID]; ok {
				v.CardUID = c.CardUID
				v.CardMask = c.Mask
			}
		}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *ledgerRepo) ListByCard(_ context.Context, userID, cardID uint64, limit int) ([]entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Transaction, 0)
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.CardID != nil && *t.CardID == cardID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ledgerRepo) PoolBalance(_ context.Context, userID uint64, cardID *uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, t := range r.s.state.transactions {
		if t.UserID != userID {
			continue
		}
		switch {
		case cardID == nil && t.CardID == nil:
			sum += t.AmountCents
		case cardID != nil && t.CardID != nil && *t.CardID == *cardID:
			sum += t.AmountCents
		}
	}
	return sum, nil
}

func (r *ledgerRepo) BalancesByCard(_ context.Context, userID uint64) (map[uint64]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint64]int64)
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.CardID != nil {
			out[*t.CardID] += t.AmountCents
		}
	}
	return out, nil
}

func (r *ledgerRepo) CardsTotal(_ context.Context, userID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.CardID != nil {
			sum += t.AmountCents
		}
	}
	return sum, nil
}

func (r *ledgerRepo) CategoryExpenseInRange(_ context.Context, userID uint64, category string, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.Type == entity.TypeExpense && t.Category == category &&
			!t.OccurredAt.Before(from) && t.OccurredAt.Before(to) {
			sum += entity.AbsCents(t.AmountCents)
		}
	}
	return sum, nil
}

func (r *ledgerRepo) ExpensesByCategoryInRange(_ context.Context, userID uint64, from, to time.Time) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]int64)
	for _, t := range r.s.state.transactions {
		if t.UserID == userID && t.Type == entity.TypeExpense &&
			!t.OccurredAt.Before(from) && t.OccurredAt.Before(to) {
			out[t.Category] += entity.AbsCents(t.AmountCents)
		}
	}
	return out, nil
}

type budgetRepo struct{ s *Store }

func (r *budgetRepo) Create(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.state.budgets {
		if b.UserID == budget.UserID && b.Category == budget.Category && b.Period == budget.Period {
			return errs.ErrDuplicateBudget
		}
	}
	budget.ID = r.s.allocID()
	r.s.state.budgets = append(r.s.state.budgets, *budget)
	return nil
}

func (r *budgetRepo) GetByID(_ context.Context, userID, budgetID uint64) (*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.state.budgets {
		if b.UserID == userID && b.ID == budgetID {
			out := b
			return &out, nil
		}
	}
	return nil, errs.ErrBudgetNotFound
}

func (r *budgetRepo) GetByCategory(_ context.Context, userID uint64, category string, period entity.BudgetPeriod) (*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.state.budgets {
		if b.UserID == userID && b.Category == category && b.Period == period {
			out := b
			return &out, nil
		}
	}
	return nil, errs.ErrBudgetNotFound
}

func (r *budgetRepo) ListByUser(_ context.Context, userID uint64) ([]entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Budget, 0)
	for i := len(r.s.state.budgets) - 1; i >= 0; i-- {
		if r.s.state.budgets[i].UserID == userID {
			out = append(out, r.s.state.budgets[i])
		}
	}
	return out, nil
}

func (r *budgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.state.budgets {
		if b.UserID == budget.UserID && b.ID != budget.ID &&
			b.Category == budget.Category && b.Period == budget.Period {
			return errs.ErrDuplicateBudget
		}
	}
	for i, b := range r.s.state.budgets {
		if b.UserID == budget.UserID && b.ID == budget.ID {
			r.s.state.budgets[i] = *budget
			return nil
		}
	}
	return errs.ErrBudgetNotFound
}

func (r *budgetRepo) Delete(_ context.Context, userID, budgetID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.state.budgets {
		if b.UserID == userID && b.ID == budgetID {
			r.s.state.budgets = append(r.s.state.budgets[:i], r.s.state.budgets[i+1:]...)
			return nil
		}
	}
	return errs.ErrBudgetNotFound
}

type goalRepo struct{ s *Store }

func (r *goalRepo) Create(_ context.Context, goal *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	goal.ID = r.s.allocID()
	r.s.state.goals = append(r.s.state.goals, *goal)
	return nil
}

func (r *goalRepo) GetByID(_ context.Context, userID, goalID uint64) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.state.goals {
		if g.UserID == userID && g.ID == goalID {
			out := g
			return &out, nil
		}
	}
	return nil, errs.ErrGoalNotFound
}

func (r *goalRepo) ListByUser(_ context.Context, userID uint64) ([]entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Goal, 0)
	for i := len(r.s.state.goals) - 1; i >= 0; i-- {
		if r.s.state.goals[i].UserID == userID {
			out = append(out, r.s.state.goals[i])
		}
	}
	return out, nil
}

func (r *goalRepo) Update(_ context.Context, goal *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.state.goals {
		if g.UserID == goal.UserID && g.ID == goal.ID {
			r.s.state.goals[i] = *goal
			return nil
		}
	}
	return errs.ErrGoalNotFound
}

func (r *goalRepo) Delete(_ context.Context, userID, goalID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.state.goals {
		if g.UserID == userID && g.ID == goalID {
			r.s.state.goals = append(r.s.state.goals[:i], r.s.state.goals[i+1:]...)
			return nil
		}
	}
	return errs.ErrGoalNotFound
}

func (r *goalRepo) AddContribution(_ context.Context, c *entity.GoalContribution) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.allocID()
	r.s.state.contributions = append(r.s.state.contributions, *c)
	return nil
}

func (r *goalRepo) DeleteContribution(_ context.Context, userID, goalID, contributionID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.state.contributions {
		if c.UserID == userID && c.GoalID == goalID && c.ID == contributionID {
			r.s.state.contributions = append(r.s.state.contributions[:i], r.s.state.contributions[i+1:]...)
			return nil
		}
	}
	return errs.ErrContributionNotFound
}

func (r *goalRepo) DeleteContributions(_ context.Context, userID, goalID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.s.state.contributions[:0]
	for _, c := range r.s.state.contributions {
		if c.UserID == userID && c.GoalID == goalID {
			continue
		}
		out = append(out, c)
	}
	r.s.state.contributions = out
	return nil
}

func (r *goalRepo) ContributionTxIDs(_ context.Context, userID, goalID uint64) ([]uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]uint64, 0)
	for _, c := range r.s.state.contributions {
		if c.UserID == userID && c.GoalID == goalID && c.TxID != nil {
			ids = append(ids, *c.TxID)
		}
	}
	return ids, nil
}

func (r *goalRepo) SavedByGoal(_ context.Context, userID uint64) (map[uint64]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint64]int64)
	for _, c := range r.s.state.contributions {
		if c.UserID == userID {
			out[c.GoalID] += c.AmountCents
		}
	}
	return out, nil
}

type templateRepo struct{ s *Store }

func (r *templateRepo) Create(_ context.Context, tpl *entity.TxTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tpl.ID = r.s.allocID()
	r.s.state.templates = append(r.s.state.templates, *tpl)
	return nil
}

func (r *templateRepo) GetByID(_ context.Context, userID, templateID uint64) (*entity.TxTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.state.templates {
		if t.UserID == userID && t.ID == templateID {
			out := t
			return &out, nil
		}
	}
	return nil, errs.ErrTemplateNotFound
}

func (r *templateRepo) ListByUser(_ context.Context, userID uint64) ([]entity.TxTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.TxTemplate, 0)
	for i := len(r.s.state.templates) - 1; i >= 0; i-- {
		if r.s.state.templates[i].UserID == userID {
			out = append(out, r.s.state.templates[i])
		}
	}
	return out, nil
}

func (r *templateRepo) Delete(_ context.Context, userID, templateID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.state.templates {
		if t.UserID == userID && t.ID == templateID {
			r.s.state.templates = append(r.s.state.templates[:i], r.s.state.templates[i+1:]...)
			return nil
		}
	}
	return errs.ErrTemplateNotFound
}

var _ persistence.UnitOfWork = (*Store)(nil)
var _ core.TimeProvider = (*Clock)(nil)
var _ core.Logger = (*NopLogger)(nil)
