package operator

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

func newTestDelegator(t *testing.T) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "operator.db"))
	require.NoError(t, err)
	d := NewOperatorDelegator(s, 16)
	t.Cleanup(func() {
		d.Stop()
		_ = s.Close()
	})
	return d, s
}

type countingAction struct {
	key       string
	performed *atomic.Int32
	err       error
}

func (c *countingAction) Perform(context.Context, *storage.Writer) error {
	c.performed.Add(1)
	return c.err
}

func (c *countingAction) CoalesceKey() string {
	return c.key
}

type plainAction struct {
	err error
}

func (p *plainAction) Perform(context.Context, *storage.Writer) error {
	return p.err
}

func TestProcess_Commits(t *testing.T) {
	d, s := newTestDelegator(t)
	d.Start()

	err := d.Process(context.Background(), &actions.SaveBudget{Baseline: decimal.NewFromInt(9550)})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9550).Equal(s.Reader.Slots.LoadBudget(context.Background())))
}

func TestProcess_ReturnsActionError(t *testing.T) {
	d, _ := newTestDelegator(t)
	d.Start()

	err := d.Process(context.Background(), &plainAction{err: errors.New("boom")})

	assert.EqualError(t, err, "boom")
	assert.Empty(t, d.DrainFailures())
}

func TestSubmit_LatestValueWins(t *testing.T) {
	d, s := newTestDelegator(t)
	ctx := context.Background()

	require.NoError(t, d.Submit(&actions.SaveBudget{Baseline: decimal.NewFromInt(1)}))
	require.NoError(t, d.Submit(&actions.SaveSettings{Settings: slot.Settings{DarkMode: true, Currency: "USD"}}))
	require.NoError(t, d.Submit(&actions.SaveBudget{Baseline: decimal.NewFromInt(2)}))
	require.NoError(t, d.Submit(&actions.SaveBudget{Baseline: decimal.NewFromInt(3)}))

	d.Start()
	require.NoError(t, d.Flush(ctx))

	assert.True(t, decimal.NewFromInt(3).Equal(s.Reader.Slots.LoadBudget(ctx)))
	assert.Equal(t, slot.Settings{DarkMode: true, Currency: "USD"}, s.Reader.Slots.LoadSettings(ctx))
}

func TestSubmit_SupersededActionsSkipped(t *testing.T) {
	d, _ := newTestDelegator(t)
	var first, second, other atomic.Int32

	require.NoError(t, d.Submit(&countingAction{key: "a", performed: &first}))
	require.NoError(t, d.Submit(&countingAction{key: "b", performed: &other}))
	require.NoError(t, d.Submit(&countingAction{key: "a", performed: &second}))

	d.Start()
	require.NoError(t, d.Flush(context.Background()))

	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
	assert.Equal(t, int32(1), other.Load())
}

func TestSubmit_FailuresAreDrained(t *testing.T) {
	d, _ := newTestDelegator(t)
	var performed atomic.Int32
	d.Start()

	require.NoError(t, d.Submit(&countingAction{key: "budget", performed: &performed, err: errors.New("disk full")}))
	require.NoError(t, d.Flush(context.Background()))

	failures := d.DrainFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, "budget", failures[0].Key)
	assert.EqualError(t, failures[0].Err, "disk full")
	assert.Empty(t, d.DrainFailures())
}

func TestSubmit_FailureOfKeylessActionNamesAllSlots(t *testing.T) {
	d, _ := newTestDelegator(t)
	d.Start()

	require.NoError(t, d.Submit(&plainAction{err: errors.New("database is locked")}))
	require.NoError(t, d.Flush(context.Background()))

	failures := d.DrainFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, actions.AllSlots, failures[0].Key)
}

func TestStop_DrainsQueueThenRejects(t *testing.T) {
	d, s := newTestDelegator(t)
	d.Start()

	require.NoError(t, d.Submit(&actions.SaveBudget{Baseline: decimal.NewFromInt(42)}))
	d.Stop()

	assert.True(t, decimal.NewFromInt(42).Equal(s.Reader.Slots.LoadBudget(context.Background())))
	assert.ErrorIs(t, d.Submit(&actions.SaveBudget{Baseline: decimal.NewFromInt(1)}), ErrStopped)
	assert.ErrorIs(t, d.Flush(context.Background()), ErrStopped)
}

func TestClearSlots(t *testing.T) {
	d, s := newTestDelegator(t)
	ctx := context.Background()
	d.Start()

	require.NoError(t, d.Process(ctx, &actions.SaveCategories{Categories: []slot.Category{{ID: "x", Name: "X"}}}))
	require.NoError(t, d.Process(ctx, &actions.ClearSlots{}))

	assert.Equal(t, slot.DefaultCategories(), s.Reader.Slots.LoadCategories(ctx))
}
