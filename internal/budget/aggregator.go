// Package budget derives monthly figures from a ledger snapshot and a
// baseline allowance. Everything here is a pure function of its inputs and is
// recomputed on every read.
package budget

import (
	"cmp"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// DefaultBaseline is the allowance used until the user sets one.
var DefaultBaseline = decimal.NewFromInt(10000)

var hundred = decimal.NewFromInt(100)

// Summary holds the figures for one calendar month.
type Summary struct {
	Month             ledger.Month
	Baseline          decimal.Decimal
	ExpenseTotal      decimal.Decimal
	ContributionTotal decimal.Decimal
	// Available is baseline + contributions - expenses and goes negative when
	// the month is over budget.
	Available decimal.Decimal
	// UtilizationPercent is expenses as a share of the baseline.
	UtilizationPercent float64
}

func Summarize(transactions iter.Seq[ledger.Transaction], baseline decimal.Decimal, month ledger.Month) Summary {
	s := Summary{
		Month:             month,
		Baseline:          baseline,
		ExpenseTotal:      decimal.Zero,
		ContributionTotal: decimal.Zero,
	}
	for t := range transactions {
		if !month.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case ledger.TypeExpense:
			s.ExpenseTotal = s.ExpenseTotal.Add(t.Amount)
		case ledger.TypeBudgetContribution:
			s.ContributionTotal = s.ContributionTotal.Add(t.Amount)
		}
	}
	s.Available = baseline.Add(s.ContributionTotal).Sub(s.ExpenseTotal)
	s.UtilizationPercent = percentOf(s.ExpenseTotal, baseline)
	return s
}

// CategoryShare is the expense total of one category within a month.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  float64
}

// Breakdown sums the month's expenses per category, largest first. Percent is
// truncated to two decimals so the shares never add up to more than 100.
func Breakdown(transactions iter.Seq[ledger.Transaction], month ledger.Month) []CategoryShare {
	totals := map[string]decimal.Decimal{}
	total := decimal.Zero
	for t := range transactions {
		if t.Type != ledger.TypeExpense || !month.Contains(t.Date) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		shares = append(shares, CategoryShare{
			Category: category,
			Amount:   amount,
			Percent:  percentOf(amount, total),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return shares
}

// MonthBucket is the expense total of one month in a trend.
type MonthBucket struct {
	Month   ledger.Month
	Expense decimal.Decimal
}

// Trend returns n buckets ending with through, oldest first. Months with no
// expenses are present with a zero total.
func Trend(transactions iter.Seq[ledger.Transaction], through ledger.Month, n int) []MonthBucket {
	if n <= 0 {
		return []MonthBucket{}
	}
	first := through.AddMonths(-(n - 1))
	buckets := make([]MonthBucket, n)
	index := make(map[ledger.Month]int, n)
	for i := range buckets {
		m := first.AddMonths(i)
		buckets[i] = MonthBucket{Month: m, Expense: decimal.Zero}
		index[m] = i
	}

	for t := range transactions {
		if t.Type != ledger.TypeExpense {
			continue
		}
		if i, ok := index[t.Date.YearMonth()]; ok {
			buckets[i].Expense = buckets[i].Expense.Add(t.Amount)
		}
	}
	return buckets
}

// Mutation describes one ledger change for Reconcile.
type Mutation struct {
	Added   *ledger.Transaction
	Removed *ledger.Transaction
}

// Reconcile returns the baseline after m. Contributions raise the baseline by
// their amount when added and lower it again when removed, never below zero.
func Reconcile(baseline decimal.Decimal, m Mutation) decimal.Decimal {
	if m.Added != nil && m.Added.IsContribution() {
		baseline = baseline.Add(m.Added.Amount)
	}
	if m.Removed != nil && m.Removed.IsContribution() {
		baseline = baseline.Sub(m.Removed.Amount)
		if baseline.IsNegative() {
			baseline = decimal.Zero
		}
	}
	return baseline
}

func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).Truncate(2).InexactFloat64()
}
