package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Coalescer is implemented by actions that overwrite a whole slot. Only the
// newest queued action per key is performed.
type Coalescer interface {
	CoalesceKey() string
}

// AllSlots names the target of actions that touch every slot.
const AllSlots = "all"

// Target names the slot an action writes, for logs and failure reports.
func Target(action IAction) string {
	switch a := action.(type) {
	case Coalescer:
		return a.CoalesceKey()
	case interface{ Slot() string }:
		return a.Slot()
	}
	return AllSlots
}

// Barrier writes nothing. Waiting on it waits for everything queued ahead.
type Barrier struct{}

func (Barrier) Perform(context.Context, *storage.Writer) error {
	return nil
}
