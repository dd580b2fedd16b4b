package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadTransactions(ctx context.Context) []ledger.Transaction {
	return m.Called(ctx).Get(0).([]ledger.Transaction)
}

func (m *mockLoader) LoadBudget(ctx context.Context) decimal.Decimal {
	return m.Called(ctx).Get(0).(decimal.Decimal)
}

func (m *mockLoader) LoadSettings(ctx context.Context) slot.Settings {
	return m.Called(ctx).Get(0).(slot.Settings)
}

func (m *mockLoader) LoadCategories(ctx context.Context) []slot.Category {
	return m.Called(ctx).Get(0).([]slot.Category)
}

func newDefaultLoader(transactions []ledger.Transaction) *mockLoader {
	loader := new(mockLoader)
	loader.On("LoadTransactions", mock.Anything).Return(transactions)
	loader.On("LoadBudget", mock.Anything).Return(budget.DefaultBaseline)
	loader.On("LoadSettings", mock.Anything).Return(slot.DefaultSettings())
	loader.On("LoadCategories", mock.Anything).Return(slot.DefaultCategories())
	return loader
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(action actions.IAction) error {
	return m.Called(action).Error(0)
}

func (m *mockSubmitter) DrainFailures() []operator.Failure {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]operator.Failure)
}

// submitted returns the actions passed to Submit, in order.
func (m *mockSubmitter) submitted() []actions.IAction {
	var result []actions.IAction
	for _, call := range m.Calls {
		if call.Method == "Submit" {
			result = append(result, call.Arguments.Get(0).(actions.IAction))
		}
	}
	return result
}

func newAcceptingSubmitter() *mockSubmitter {
	submitter := new(mockSubmitter)
	submitter.On("Submit", mock.Anything).Return(nil)
	submitter.On("DrainFailures").Return(nil).Maybe()
	return submitter
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("tx-%d", n), nil
	}
}

func newTestService(t *testing.T, transactions []ledger.Transaction) (*Service, *mockSubmitter) {
	t.Helper()
	submitter := newAcceptingSubmitter()
	svc := NewService(context.Background(), newDefaultLoader(transactions), submitter,
		WithClock(func() time.Time { return testNow }),
		WithIDSource(sequentialIDs()),
	)
	return svc, submitter
}

var errRefused = errors.New("operator stopped")
