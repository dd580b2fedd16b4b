package operator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

var ErrStopped = errors.New("operator stopped")

// Failure is a submitted action that could not be written.
type Failure struct {
	Key string
	Err error
	At  time.Time
}

// OperatorDelegator owns the queue and its single worker. One worker keeps
// writes in submission order, so a later value of a slot always lands last.
type OperatorDelegator struct {
	storage  *storage.Storage
	queue    chan ActionItem
	tracker  *tracker
	closeMu  sync.RWMutex
	stopped  bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(s *storage.Storage, queueSize int) *OperatorDelegator {
	if queueSize < 1 {
		queueSize = 1
	}
	return &OperatorDelegator{
		storage: s,
		queue:   make(chan ActionItem, queueSize),
		tracker: newTracker(),
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.storage, d.queue, d.tracker)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

// Stop processes everything already queued, then stops the worker.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.closeMu.Lock()
		d.stopped = true
		close(d.queue)
		d.closeMu.Unlock()
		d.wg.Wait()
	})
}

// Submit queues action without waiting for it. Failures are kept for
// DrainFailures.
func (d *OperatorDelegator) Submit(action actions.IAction) error {
	return d.enqueue(context.Background(), action, nil)
}

// Process queues action and waits for its result.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	if err := d.enqueue(ctx, action, respCh); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Flush waits until every action submitted before the call has been handled.
func (d *OperatorDelegator) Flush(ctx context.Context) error {
	return d.Process(ctx, actions.Barrier{})
}

// DrainFailures returns and forgets the failures recorded so far.
func (d *OperatorDelegator) DrainFailures() []Failure {
	return d.tracker.drain()
}

func (d *OperatorDelegator) enqueue(ctx context.Context, action actions.IAction, respCh chan ActionItemResponse) error {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}
	if c, ok := action.(actions.Coalescer); ok {
		item.key = c.CoalesceKey()
		item.generation = d.tracker.next(item.key)
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tracker records the newest generation per coalesce key and the failures
// of fire-and-forget actions.
type tracker struct {
	mu       sync.Mutex
	seq      uint64
	latest   map[string]uint64
	failures []Failure
}

func newTracker() *tracker {
	return &tracker{latest: make(map[string]uint64)}
}

func (t *tracker) next(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.latest[key] = t.seq
	return t.seq
}

func (t *tracker) superseded(item ActionItem) bool {
	if item.key == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[item.key] != item.generation
}

func (t *tracker) fail(item ActionItem, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = append(t.failures, Failure{Key: actions.Target(item.action), Err: err, At: time.Now()})
}

func (t *tracker) drain() []Failure {
	t.mu.Lock()
	defer t.mu.Unlock()
	failures := t.failures
	t.failures = nil
	return failures
}
