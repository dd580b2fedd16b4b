// Package slot maps the four persisted records onto a key/value table and
// applies the default-on-missing-or-corrupt policy.
package slot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/expense-tracker/internal/validator"
)

// Store loads and saves typed slot values. Every load decodes a fresh copy.
type Store struct {
	table sqlconfig.ISlotTable
}

func NewStore(table sqlconfig.ISlotTable) *Store {
	return &Store{table: table}
}

// LoadTransactions never fails. Malformed records are dropped individually,
// and so is any record repeating an id seen earlier in the list.
func (s *Store) LoadTransactions(ctx context.Context) []ledger.Transaction {
	transactions := []ledger.Transaction{}
	value, ok := s.read(ctx, KeyTransactions)
	if !ok {
		return transactions
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		logReadError(&ReadError{Key: KeyTransactions, Err: err}, "SlotStore.LoadTransactions.corrupt")
		return transactions
	}

	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		var record TransactionRecord
		if err := json.Unmarshal(item, &record); err != nil {
			logReadError(&ReadError{Key: KeyTransactions, Err: err}, "SlotStore.LoadTransactions.skipRecord")
			continue
		}
		t, err := record.Transaction()
		if err != nil {
			logReadError(&ReadError{Key: KeyTransactions, Err: err}, "SlotStore.LoadTransactions.skipRecord")
			continue
		}
		if seen[t.ID] {
			logReadError(&ReadError{Key: KeyTransactions, Err: errors.New("duplicate id " + t.ID)}, "SlotStore.LoadTransactions.skipDuplicate")
			continue
		}
		seen[t.ID] = true
		transactions = append(transactions, t)
	}
	return transactions
}

// LoadBudget falls back to budget.DefaultBaseline.
func (s *Store) LoadBudget(ctx context.Context) decimal.Decimal {
	value, ok := s.read(ctx, KeyBudget)
	if !ok {
		return budget.DefaultBaseline
	}

	baseline, err := decimal.NewFromString(strings.TrimSpace(value))
	if err == nil && baseline.IsNegative() {
		err = errors.New("negative baseline")
	}
	if err != nil {
		logReadError(&ReadError{Key: KeyBudget, Err: err}, "SlotStore.LoadBudget.corrupt")
		return budget.DefaultBaseline
	}
	return baseline
}

// LoadSettings starts from the defaults so missing fields keep their default.
func (s *Store) LoadSettings(ctx context.Context) Settings {
	settings := DefaultSettings()
	value, ok := s.read(ctx, KeySettings)
	if !ok {
		return settings
	}

	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		logReadError(&ReadError{Key: KeySettings, Err: err}, "SlotStore.LoadSettings.corrupt")
		return DefaultSettings()
	}
	settings.Currency = NormalizeCurrency(settings.Currency)
	if !validator.IsCurrency(settings.Currency) {
		logReadError(&ReadError{Key: KeySettings, Err: errors.New("invalid currency " + settings.Currency)}, "SlotStore.LoadSettings.currency")
		settings.Currency = DefaultCurrency
	}
	return settings
}

func (s *Store) LoadCategories(ctx context.Context) []Category {
	value, ok := s.read(ctx, KeyCategories)
	if !ok {
		return DefaultCategories()
	}

	var categories []Category
	if err := json.Unmarshal([]byte(value), &categories); err != nil || categories == nil {
		if err == nil {
			err = errors.New("not an array")
		}
		logReadError(&ReadError{Key: KeyCategories, Err: err}, "SlotStore.LoadCategories.corrupt")
		return DefaultCategories()
	}
	return categories
}

func (s *Store) SaveTransactions(ctx context.Context, transactions []ledger.Transaction) error {
	return s.write(ctx, KeyTransactions, RecordsOf(transactions))
}

func (s *Store) SaveBudget(ctx context.Context, baseline decimal.Decimal) error {
	return s.write(ctx, KeyBudget, json.Number(baseline.String()))
}

func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	return s.write(ctx, KeySettings, settings)
}

func (s *Store) SaveCategories(ctx context.Context, categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	return s.write(ctx, KeyCategories, categories)
}

// Clear removes every slot so the next load returns defaults.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range AllKeys {
		if err := s.table.Delete(ctx, string(key)); err != nil {
			return &WriteError{Key: key, Err: err}
		}
	}
	return nil
}

func (s *Store) read(ctx context.Context, key Key) (string, bool) {
	value, found, err := s.table.Get(ctx, string(key))
	if err != nil {
		logReadError(&ReadError{Key: key, Err: err}, "SlotStore.read.failed")
		return "", false
	}
	return value, found && strings.TrimSpace(value) != ""
}

func (s *Store) write(ctx context.Context, key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := s.table.Put(ctx, string(key), string(data)); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

func logReadError(err *ReadError, msg string) {
	logrus.WithError(err).WithField("slot", string(err.Key)).Warn(msg)
}
