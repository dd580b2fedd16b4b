package slot

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Key names one independently stored slot.
type Key string

const (
	KeyTransactions Key = "expense_tracker_transactions"
	KeyBudget       Key = "expense_tracker_budget"
	KeySettings     Key = "expense_tracker_settings"
	KeyCategories   Key = "expense_tracker_categories"
)

// AllKeys lists every slot.
var AllKeys = []Key{KeyTransactions, KeyBudget, KeySettings, KeyCategories}

// Settings are the user preferences stored in the settings slot.
type Settings struct {
	DarkMode      bool   `json:"darkMode"`
	BiometricLock bool   `json:"biometricLock"`
	Currency      string `json:"currency" validate:"required,iso4217"`
}

const DefaultCurrency = "INR"

// NormalizeCurrency trims and upper-cases a currency code so "inr" and
// " INR" are accepted as INR.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func DefaultSettings() Settings {
	return Settings{Currency: DefaultCurrency}
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	DarkMode      *bool
	BiometricLock *bool
	Currency      *string
}

func (s Settings) Apply(p SettingsPatch) Settings {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.BiometricLock != nil {
		s.BiometricLock = *p.BiometricLock
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	return s
}

// Category is a presentation label. Transactions refer to it only by name.
type Category struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Icon      string `json:"icon"`
	Color     string `json:"color" validate:"omitempty,hex_color"`
	IsDefault bool   `json:"isDefault"`
}

var defaultCategories = []Category{
	{ID: "food", Name: "Food", Icon: "🍔", Color: "#FF6B6B", IsDefault: true},
	{ID: "travel", Name: "Travel", Icon: "🚌", Color: "#4ECDC4", IsDefault: true},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#95E1D3", IsDefault: true},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#F38181", IsDefault: true},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#6C5CE7", IsDefault: true},
	{ID: "health", Name: "Health", Icon: "⚕️", Color: "#74B9FF", IsDefault: true},
	{ID: "bills", Name: "Bills", Icon: "💡", Color: "#FD79A8", IsDefault: true},
	{ID: "income", Name: "Income", Icon: "💰", Color: "#00B894", IsDefault: true},
	{ID: "other", Name: "Other", Icon: "📌", Color: "#FDCB6E", IsDefault: true},
}

// DefaultCategories returns a fresh copy of the built-in catalog.
func DefaultCategories() []Category {
	return slices.Clone(defaultCategories)
}

// TransactionRecord is the stored and exported shape of a transaction.
type TransactionRecord struct {
	ID       string      `json:"id"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Note     string      `json:"note"`
	Date     string      `json:"date"`
	Type     string      `json:"type"`
}

func RecordOf(t ledger.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:       t.ID,
		Amount:   json.Number(t.Amount.String()),
		Category: t.Category,
		Note:     t.Note,
		Date:     t.Date.String(),
		Type:     string(t.Type),
	}
}

func RecordsOf(transactions []ledger.Transaction) []TransactionRecord {
	records := make([]TransactionRecord, len(transactions))
	for i, t := range transactions {
		records[i] = RecordOf(t)
	}
	return records
}

// Transaction converts the record, rejecting anything that would break the
// ledger invariants.
func (r TransactionRecord) Transaction() (ledger.Transaction, error) {
	if strings.TrimSpace(r.ID) == "" {
		return ledger.Transaction{}, errors.New("missing id")
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s: invalid amount %q", r.ID, r.Amount)
	}
	if !amount.IsPositive() {
		return ledger.Transaction{}, fmt.Errorf("transaction %s: amount must be positive", r.ID)
	}
	date, err := ledger.ParseDate(r.Date)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	typ, err := ledger.ParseType(r.Type)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return ledger.Transaction{
		ID:       r.ID,
		Amount:   amount,
		Category: r.Category,
		Note:     r.Note,
		Date:     date,
		Type:     typ,
	}, nil
}

// ReadError is a slot that could not be read or decoded. Loads recover from
// it with a default and only log it.
type ReadError struct {
	Key Key
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read slot %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is a slot that could not be saved. In-memory state stays
// authoritative.
type WriteError struct {
	Key Key
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write slot %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
