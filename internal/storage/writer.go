package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/slot"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type Writer struct {
	tx    bob.Tx
	Slots *slot.Store
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:    tx,
		Slots: slot.NewStore(sqlconfig.NewSlotsTable(tx)),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
