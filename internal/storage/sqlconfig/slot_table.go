package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
)

const slotsTableName = "slots"

var _ ISlotTable = (*SlotsTable)(nil)

type SlotsTable struct {
	exec bob.Executor
}

// NewSlotsTable works over either a bob.DB or a bob.Tx.
func NewSlotsTable(exec bob.Executor) *SlotsTable {
	return &SlotsTable{exec: exec}
}

// Get retrieves the value stored under key.
func (t *SlotsTable) Get(ctx context.Context, key string) (string, bool, error) {
	query := sqlite.Select(
		sm.Columns(sqlite.Quote("value")),
		sm.From(slotsTableName),
		sm.Where(sqlite.Quote("key").EQ(sqlite.Arg(key))),
	)
	value, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[string])
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put replaces the whole value stored under key.
func (t *SlotsTable) Put(ctx context.Context, key, value string) error {
	query := sqlite.Insert(
		im.OrReplace(),
		im.Into(slotsTableName, "key", "value", "updated_at"),
		im.Values(sqlite.Arg(key, value, time.Now().UTC().Format(time.RFC3339Nano))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (t *SlotsTable) Delete(ctx context.Context, key string) error {
	query := sqlite.Delete(
		dm.From(slotsTableName),
		dm.Where(sqlite.Quote("key").EQ(sqlite.Arg(key))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}
