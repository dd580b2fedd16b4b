package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
)

func expenseDraft(amount int64, category string) ledger.Draft {
	return ledger.Draft{
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Note:     "",
		Date:     ledger.DateOf(testNow),
		Type:     ledger.TypeExpense,
	}
}

func contributionDraft(amount int64) ledger.Draft {
	return ledger.Draft{
		Amount: decimal.NewFromInt(amount),
		Date:   ledger.DateOf(testNow),
		Type:   ledger.TypeBudgetContribution,
	}
}

// -- AddTransaction tests --

func TestAddTransaction_Expense(t *testing.T) {
	svc, submitter := newTestService(t, nil)
	ctx := context.Background()

	tx, err := svc.Transaction.AddTransaction(ctx, expenseDraft(450, "Food"))

	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "Food transaction", tx.Note)

	listed := svc.Transaction.ListTransactions(ctx, ledger.Filter{})
	require.Len(t, listed, 1)
	assert.Equal(t, tx, listed[0])

	submitted := submitter.submitted()
	require.Len(t, submitted, 1)
	save, ok := submitted[0].(*actions.SaveTransactions)
	require.True(t, ok)
	assert.Equal(t, listed, save.Transactions)
}

func TestAddTransaction_ValidationRejectsWithoutSaving(t *testing.T) {
	svc, submitter := newTestService(t, nil)

	_, err := svc.Transaction.AddTransaction(context.Background(), expenseDraft(0, "Food"))

	var validationErr *ledger.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount", validationErr.Field)
	assert.Empty(t, submitter.submitted())
	assert.Empty(t, svc.Transaction.ListTransactions(context.Background(), ledger.Filter{}))
}

func TestBudgetScenario(t *testing.T) {
	svc, submitter := newTestService(t, nil)
	ctx := context.Background()
	month := svc.Budget.CurrentMonth()

	_, err := svc.Transaction.AddTransaction(ctx, expenseDraft(450, "Food"))
	require.NoError(t, err)

	summary := svc.Budget.GetMonthlySummary(ctx, month)
	assert.True(t, decimal.NewFromInt(450).Equal(summary.ExpenseTotal))
	assert.True(t, decimal.NewFromInt(9550).Equal(summary.Available))

	contribution, err := svc.Transaction.AddTransaction(ctx, contributionDraft(2000))
	require.NoError(t, err)
	assert.Equal(t, ledger.ContributionCategory, contribution.Category)

	summary = svc.Budget.GetMonthlySummary(ctx, month)
	assert.True(t, decimal.NewFromInt(12000).Equal(summary.Baseline))
	assert.True(t, decimal.NewFromInt(13550).Equal(summary.Available))

	assert.True(t, svc.Transaction.DeleteTransaction(ctx, contribution.ID))

	summary = svc.Budget.GetMonthlySummary(ctx, month)
	assert.True(t, decimal.NewFromInt(10000).Equal(summary.Baseline))
	assert.True(t, decimal.NewFromInt(9550).Equal(summary.Available))

	var budgets []string
	for _, a := range submitter.submitted() {
		if save, ok := a.(*actions.SaveBudget); ok {
			budgets = append(budgets, save.Baseline.String())
		}
	}
	assert.Equal(t, []string{"12000", "10000"}, budgets)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_UnknownIsNoop(t *testing.T) {
	svc, submitter := newTestService(t, nil)

	assert.False(t, svc.Transaction.DeleteTransaction(context.Background(), "missing"))
	assert.Empty(t, submitter.submitted())
}

func TestDeleteTransaction_ContributionFloorsAtZero(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	contribution, err := svc.Transaction.AddTransaction(ctx, contributionDraft(2000))
	require.NoError(t, err)
	_, err = svc.Budget.SetBudget(ctx, decimal.NewFromInt(500))
	require.NoError(t, err)

	svc.Transaction.DeleteTransaction(ctx, contribution.ID)

	assert.True(t, decimal.Zero.Equal(svc.Budget.GetBaseline(ctx)))
}

// -- ListTransactions tests --

func TestListTransactions_Filters(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	for _, category := range []string{"Food", "Travel", "Food"} {
		_, err := svc.Transaction.AddTransaction(ctx, expenseDraft(10, category))
		require.NoError(t, err)
	}

	assert.Len(t, svc.Transaction.ListTransactions(ctx, ledger.Filter{Category: "food"}), 2)
	assert.Len(t, svc.Transaction.RecentTransactions(ctx, 2), 2)
	assert.Len(t, svc.Transaction.RecentTransactions(ctx, 0), 3)

	recent := svc.Transaction.RecentTransactions(ctx, 1)
	assert.Equal(t, "tx-3", recent[0].ID)
}

func TestListTransactions_EmptyIsNotNil(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got := svc.Transaction.ListTransactions(context.Background(), ledger.Filter{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewService_UsesLoadedState(t *testing.T) {
	loaded := []ledger.Transaction{{
		ID:       "old",
		Amount:   decimal.NewFromInt(300),
		Category: "Bills",
		Note:     "Power",
		Date:     ledger.NewDate(2024, 3, 1),
		Type:     ledger.TypeExpense,
	}}
	svc, _ := newTestService(t, loaded)
	ctx := context.Background()

	summary := svc.Budget.GetMonthlySummary(ctx, svc.Budget.CurrentMonth())

	assert.True(t, decimal.NewFromInt(300).Equal(summary.ExpenseTotal))
	assert.Equal(t, loaded, svc.Transaction.ListTransactions(ctx, ledger.Filter{}))
}
