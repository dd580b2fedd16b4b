package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/slot"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type Reader struct {
	Slots *slot.Store
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Slots: slot.NewStore(sqlconfig.NewSlotsTable(exec)),
	}
}
