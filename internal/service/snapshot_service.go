package service

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/codec"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

// SnapshotService exports, restores and clears the whole state.
type SnapshotService struct {
	app *app
}

func (s *SnapshotService) ExportSnapshot(_ context.Context) codec.Document {
	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	return codec.Export(codec.Snapshot{
		Transactions: a.state.Ledger.Snapshot(),
		Budget:       a.state.Baseline,
		Settings:     a.state.Settings,
		Categories:   slices.Clone(a.state.Categories),
	}, a.now())
}

// ImportSnapshot restores every slot that passes its check, each wholesale.
// A *codec.FormatError leaves the state untouched.
func (s *SnapshotService) ImportSnapshot(_ context.Context, data []byte) (codec.Plan, error) {
	plan, err := codec.Decode(data)
	if err != nil {
		return codec.Plan{}, err
	}

	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	if plan.Replaces(slot.KeyTransactions) {
		a.state.Ledger.Replace(plan.Transactions)
		a.saveTransactions()
	}
	if plan.Replaces(slot.KeyBudget) {
		a.state.Baseline = plan.Budget
		a.saveBudget()
	}
	if plan.Replaces(slot.KeySettings) {
		a.state.Settings = plan.Settings
		a.saveSettings()
	}
	if plan.Replaces(slot.KeyCategories) {
		a.state.Categories = plan.Categories
		a.saveCategories()
	}

	logrus.WithFields(logrus.Fields{
		"slots":   plan.Keys(),
		"skipped": len(plan.Skipped),
	}).Info("SnapshotService.ImportSnapshot.restored")
	return plan, nil
}

// Reset removes every slot and returns the state to its defaults.
func (s *SnapshotService) Reset(_ context.Context) {
	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = State{
		Ledger:     ledger.New(nil, a.ledgerOpts...),
		Baseline:   budget.DefaultBaseline,
		Settings:   slot.DefaultSettings(),
		Categories: slot.DefaultCategories(),
	}
	a.submit(&actions.ClearSlots{})
}
