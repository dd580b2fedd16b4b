package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

// SaveTransactions replaces the transactions slot with a full copy of the ledger.
type SaveTransactions struct {
	Transactions []ledger.Transaction
}

func (s *SaveTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Slots.SaveTransactions(ctx, s.Transactions)
}

func (s *SaveTransactions) CoalesceKey() string {
	return string(slot.KeyTransactions)
}

type SaveBudget struct {
	Baseline decimal.Decimal
}

func (s *SaveBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Slots.SaveBudget(ctx, s.Baseline)
}

func (s *SaveBudget) CoalesceKey() string {
	return string(slot.KeyBudget)
}

type SaveSettings struct {
	Settings slot.Settings
}

func (s *SaveSettings) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Slots.SaveSettings(ctx, s.Settings)
}

func (s *SaveSettings) CoalesceKey() string {
	return string(slot.KeySettings)
}

type SaveCategories struct {
	Categories []slot.Category
}

func (s *SaveCategories) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Slots.SaveCategories(ctx, s.Categories)
}

func (s *SaveCategories) CoalesceKey() string {
	return string(slot.KeyCategories)
}

// ClearSlots deletes every slot in one transaction.
type ClearSlots struct{}

func (c *ClearSlots) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Slots.Clear(ctx)
}

func (c *ClearSlots) Slot() string {
	return AllSlots
}
