package service

import (
	"context"
	"slices"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const defaultRecentLimit = 5

// TransactionService handles ledger reads and mutations.
type TransactionService struct {
	app *app
}

// ListTransactions returns the matching transactions, newest first.
func (s *TransactionService) ListTransactions(_ context.Context, filter ledger.Filter) []ledger.Transaction {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	result := slices.Collect(s.app.state.Ledger.Query(filter))
	if result == nil {
		result = []ledger.Transaction{}
	}
	return result
}

// RecentTransactions returns the newest n entries, 5 when n is not positive.
func (s *TransactionService) RecentTransactions(ctx context.Context, n int) []ledger.Transaction {
	if n <= 0 {
		n = defaultRecentLimit
	}
	return s.ListTransactions(ctx, ledger.Filter{Limit: n})
}

// AddTransaction validates and records draft. A contribution raises the
// baseline by its amount.
func (s *TransactionService) AddTransaction(_ context.Context, draft ledger.Draft) (ledger.Transaction, error) {
	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.state.Ledger.Add(draft)
	if err != nil {
		return ledger.Transaction{}, err
	}

	a.saveTransactions()
	a.reconcile(budget.Mutation{Added: &t})
	return t, nil
}

// DeleteTransaction removes id. An unknown id is a no-op and reports false.
func (s *TransactionService) DeleteTransaction(_ context.Context, id string) bool {
	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	removed, ok := a.state.Ledger.Delete(id)
	if !ok {
		return false
	}

	a.saveTransactions()
	a.reconcile(budget.Mutation{Removed: &removed})
	return true
}

// reconcile recomputes the baseline after a ledger change and saves it if
// it moved. Must be called with mu held.
func (a *app) reconcile(m budget.Mutation) {
	baseline := budget.Reconcile(a.state.Baseline, m)
	if baseline.Equal(a.state.Baseline) {
		return
	}
	a.state.Baseline = baseline
	a.saveBudget()
}
