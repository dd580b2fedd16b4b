package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

// Loader reads the persisted slots once at startup.
type Loader interface {
	LoadTransactions(ctx context.Context) []ledger.Transaction
	LoadBudget(ctx context.Context) decimal.Decimal
	LoadSettings(ctx context.Context) slot.Settings
	LoadCategories(ctx context.Context) []slot.Category
}

// Submitter accepts fire-and-forget writes.
type Submitter interface {
	Submit(action actions.IAction) error
	DrainFailures() []operator.Failure
}

// State is the whole application state. It is only touched with app.mu held.
type State struct {
	Ledger     *ledger.Ledger
	Baseline   decimal.Decimal
	Settings   slot.Settings
	Categories []slot.Category
}

// Notice is a write that did not reach storage. The in-memory value it
// carried is still in effect.
type Notice struct {
	Slot    string    `json:"slot"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Option func(*app)

// WithClock sets the clock used for "today" and the current month.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		a.now = now
	}
}

// WithIDSource replaces the transaction id generator.
func WithIDSource(newID func() (string, error)) Option {
	return func(a *app) {
		a.ledgerOpts = append(a.ledgerOpts, ledger.WithIDSource(newID))
	}
}

type app struct {
	mu         sync.Mutex
	state      State
	submitter  Submitter
	now        func() time.Time
	ledgerOpts []ledger.Option
	notices    []Notice
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Budget      *BudgetService
	Settings    *SettingsService
	Snapshot    *SnapshotService

	app *app
}

// NewService loads every slot and builds the services over the shared state.
func NewService(ctx context.Context, loader Loader, submitter Submitter, opts ...Option) *Service {
	a := &app{
		submitter: submitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ledgerOpts = append([]ledger.Option{ledger.WithClock(a.now)}, a.ledgerOpts...)

	a.state = State{
		Ledger:     ledger.New(loader.LoadTransactions(ctx), a.ledgerOpts...),
		Baseline:   loader.LoadBudget(ctx),
		Settings:   loader.LoadSettings(ctx),
		Categories: loader.LoadCategories(ctx),
	}

	logrus.WithFields(logrus.Fields{
		"transactions": a.state.Ledger.Len(),
		"baseline":     a.state.Baseline.String(),
	}).Info("Service.NewService.loaded")

	return &Service{
		Transaction: &TransactionService{app: a},
		Budget:      &BudgetService{app: a},
		Settings:    &SettingsService{app: a},
		Snapshot:    &SnapshotService{app: a},
		app:         a,
	}
}

// PersistenceNotices returns and forgets the writes that failed since the
// last call.
func (s *Service) PersistenceNotices() []Notice {
	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	notices := a.notices
	a.notices = nil
	for _, f := range a.submitter.DrainFailures() {
		notices = append(notices, Notice{Slot: f.Key, Message: f.Err.Error(), At: f.At})
	}
	return notices
}

func (a *app) currentMonth() ledger.Month {
	return ledger.DateOf(a.now()).YearMonth()
}

// submit hands action to the writer. A refused submit becomes a notice.
// Must be called with mu held.
func (a *app) submit(action actions.IAction) {
	slotName := actions.Target(action)
	if err := a.submitter.Submit(action); err != nil {
		logrus.WithError(err).WithField("slot", slotName).Error("Service.submit.failed")
		a.notices = append(a.notices, Notice{Slot: slotName, Message: err.Error(), At: a.now()})
	}
}

func (a *app) saveTransactions() {
	a.submit(&actions.SaveTransactions{Transactions: a.state.Ledger.Snapshot()})
}

func (a *app) saveBudget() {
	a.submit(&actions.SaveBudget{Baseline: a.state.Baseline})
}

func (a *app) saveSettings() {
	a.submit(&actions.SaveSettings{Settings: a.state.Settings})
}

func (a *app) saveCategories() {
	a.submit(&actions.SaveCategories{Categories: slices.Clone(a.state.Categories)})
}
