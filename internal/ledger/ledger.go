// Package ledger holds the ordered collection of transactions and the rules
// for adding and removing entries.
package ledger

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Ledger keeps transactions newest-first by insertion. Back-dated entries do
// not reorder the list.
//
// The backing array is never modified in place, so a sequence returned by
// Query keeps seeing the ledger as it was when Query was called.
type Ledger struct {
	transactions []Transaction
	now          func() time.Time
	newID        func() (string, error)
}

type Option func(*Ledger)

// WithClock sets the clock used to reject future-dated entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDSource replaces the UUIDv7 id generator.
func WithIDSource(newID func() (string, error)) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// New builds a ledger over transactions, which must already be newest-first.
func New(transactions []Transaction, opts ...Option) *Ledger {
	l := &Ledger{
		transactions: slices.Clone(transactions),
		now:          time.Now,
		newID:        newTransactionID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Add validates the draft, assigns an id and puts the new transaction first.
func (l *Ledger) Add(draft Draft) (Transaction, error) {
	if err := l.validate(draft); err != nil {
		return Transaction{}, err
	}

	id, err := l.newID()
	if err != nil {
		return Transaction{}, fmt.Errorf("ledger.Add: generate id: %w", err)
	}

	category := strings.TrimSpace(draft.Category)
	if draft.Type == TypeBudgetContribution {
		category = ContributionCategory
	} else if category == "" {
		category = DefaultExpenseCategory
	}

	note := strings.TrimSpace(draft.Note)
	if note == "" {
		note = category + " transaction"
	}

	t := Transaction{
		ID:       id,
		Amount:   draft.Amount,
		Category: category,
		Note:     note,
		Date:     draft.Date,
		Type:     draft.Type,
	}

	next := make([]Transaction, 0, len(l.transactions)+1)
	next = append(next, t)
	l.transactions = append(next, l.transactions...)
	return t, nil
}

func (l *Ledger) validate(draft Draft) error {
	if !draft.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be expense or income"}
	}
	if !draft.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	if draft.Amount.GreaterThan(MaxAmount) {
		return &ValidationError{Field: "amount", Reason: "must not exceed " + MaxAmount.String()}
	}
	if draft.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if draft.Date.After(DateOf(l.now()).Time) {
		return &ValidationError{Field: "date", Reason: "cannot be in the future"}
	}
	return nil
}

// Delete removes the transaction with id. An unknown id is a no-op and
// reports false.
func (l *Ledger) Delete(id string) (Transaction, bool) {
	i := slices.IndexFunc(l.transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	removed := l.transactions[i]

	next := make([]Transaction, 0, len(l.transactions)-1)
	next = append(next, l.transactions[:i]...)
	l.transactions = append(next, l.transactions[i+1:]...)
	return removed, true
}

func (l *Ledger) Find(id string) (Transaction, bool) {
	i := slices.IndexFunc(l.transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

// Query yields the transactions matching f in ledger order. The sequence can
// be ranged over more than once.
func (l *Ledger) Query(f Filter) iter.Seq[Transaction] {
	view := l.transactions
	return func(yield func(Transaction) bool) {
		n := 0
		for _, t := range view {
			if f.Limit > 0 && n >= f.Limit {
				return
			}
			if !f.Matches(t) {
				continue
			}
			n++
			if !yield(t) {
				return
			}
		}
	}
}

// All yields every transaction in ledger order.
func (l *Ledger) All() iter.Seq[Transaction] {
	return l.Query(Filter{})
}

// Snapshot returns an independent copy of the ordered list.
func (l *Ledger) Snapshot() []Transaction {
	return slices.Clone(l.transactions)
}

// Replace swaps the whole list, used when a backup is restored.
func (l *Ledger) Replace(transactions []Transaction) {
	l.transactions = slices.Clone(transactions)
}

func (l *Ledger) Len() int {
	return len(l.transactions)
}
