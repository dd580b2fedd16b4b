package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// BudgetService computes monthly aggregates and owns the baseline.
type BudgetService struct {
	app *app
}

func (s *BudgetService) CurrentMonth() ledger.Month {
	return s.app.currentMonth()
}

func (s *BudgetService) GetBaseline(_ context.Context) decimal.Decimal {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return s.app.state.Baseline
}

func (s *BudgetService) GetMonthlySummary(_ context.Context, month ledger.Month) budget.Summary {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return budget.Summarize(s.app.state.Ledger.All(), s.app.state.Baseline, month)
}

func (s *BudgetService) GetCategoryBreakdown(_ context.Context, month ledger.Month) []budget.CategoryShare {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return budget.Breakdown(s.app.state.Ledger.All(), month)
}

// GetTrend returns the last n months up to and including the current one.
func (s *BudgetService) GetTrend(_ context.Context, n int) []budget.MonthBucket {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return budget.Trend(s.app.state.Ledger.All(), s.app.currentMonth(), n)
}

// GetAllocations splits the baseline by the default plan and compares it
// with what month has spent per category.
func (s *BudgetService) GetAllocations(_ context.Context, month ledger.Month) []budget.Allocation {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	breakdown := budget.Breakdown(s.app.state.Ledger.All(), month)
	return budget.Allocate(budget.DefaultPlan, s.app.state.Baseline, breakdown)
}

// SetBudget replaces the baseline. Negative values are rejected.
func (s *BudgetService) SetBudget(_ context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, &ledger.ValidationError{Field: "budget", Reason: "must not be negative"}
	}

	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Baseline = value
	a.saveBudget()
	return value, nil
}
