package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
	"github.com/carson-networks/expense-tracker/internal/validator"
)

const (
	fieldTransactions = "transactions"
	fieldBudget       = "budget"
	fieldSettings     = "settings"
	fieldCategories   = "categories"
	fieldVersion      = "version"
)

// SkippedField is a present field that failed its type check and will not
// be imported.
type SkippedField struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Plan is the checked content of an import document. Only slots reported
// by Replaces are overwritten, each wholesale.
type Plan struct {
	Transactions []ledger.Transaction
	Budget       decimal.Decimal
	Settings     slot.Settings
	Categories   []slot.Category
	Skipped      []SkippedField

	replaces map[slot.Key]bool
}

func (p Plan) Replaces(key slot.Key) bool {
	return p.replaces[key]
}

// Keys lists the slots the plan overwrites.
func (p Plan) Keys() []slot.Key {
	var keys []slot.Key
	for _, key := range slot.AllKeys {
		if p.replaces[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// Decode validates an untrusted import document. A *FormatError means the
// document must be rejected without touching any slot.
func Decode(data []byte) (Plan, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Plan{}, &FormatError{Reason: "document is not a JSON object"}
	}

	if !present(fields, fieldTransactions) && !present(fields, fieldBudget) && !present(fields, fieldSettings) {
		return Plan{}, &FormatError{Reason: "document has none of transactions, budget or settings"}
	}

	if err := checkVersion(fields); err != nil {
		return Plan{}, err
	}

	plan := Plan{replaces: make(map[slot.Key]bool)}

	if present(fields, fieldTransactions) {
		if txs, err := decodeTransactions(fields[fieldTransactions]); err != nil {
			plan.skip(fieldTransactions, err)
		} else {
			plan.Transactions = txs
			plan.replaces[slot.KeyTransactions] = true
		}
	}

	if present(fields, fieldBudget) {
		if baseline, err := decodeBudget(fields[fieldBudget]); err != nil {
			plan.skip(fieldBudget, err)
		} else {
			plan.Budget = baseline
			plan.replaces[slot.KeyBudget] = true
		}
	}

	if present(fields, fieldSettings) {
		if settings, err := decodeSettings(fields[fieldSettings]); err != nil {
			plan.skip(fieldSettings, err)
		} else {
			plan.Settings = settings
			plan.replaces[slot.KeySettings] = true
		}
	}

	if present(fields, fieldCategories) {
		if categories, err := decodeCategories(fields[fieldCategories]); err != nil {
			plan.skip(fieldCategories, err)
		} else {
			plan.Categories = categories
			plan.replaces[slot.KeyCategories] = true
		}
	}

	if len(plan.replaces) == 0 {
		return Plan{}, &FormatError{Reason: "no field passed its type check"}
	}
	return plan, nil
}

func (p *Plan) skip(field string, err error) {
	p.Skipped = append(p.Skipped, SkippedField{Field: field, Reason: err.Error()})
}

func present(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func checkVersion(fields map[string]json.RawMessage) error {
	if !present(fields, fieldVersion) {
		return nil
	}
	var version string
	if err := json.Unmarshal(fields[fieldVersion], &version); err != nil {
		return &FormatError{Reason: "version is not a string"}
	}
	major, _, _ := strings.Cut(version, ".")
	if major != "1" {
		return &FormatError{Reason: fmt.Sprintf("unsupported version %q", version)}
	}
	return nil
}

func decodeTransactions(raw json.RawMessage) ([]ledger.Transaction, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New("not an array")
	}

	transactions := make([]ledger.Transaction, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		var record slot.TransactionRecord
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, fmt.Errorf("entry %d: not a transaction object", i)
		}
		t, err := record.Transaction()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("entry %d: duplicate id %s", i, t.ID)
		}
		seen[t.ID] = true
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func decodeBudget(raw json.RawMessage) (decimal.Decimal, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return decimal.Zero, errors.New("not a number")
	}
	number, ok := v.(json.Number)
	if !ok {
		return decimal.Zero, errors.New("not a number")
	}
	baseline, err := decimal.NewFromString(number.String())
	if err != nil {
		return decimal.Zero, errors.New("not a number")
	}
	if baseline.IsNegative() {
		return decimal.Zero, errors.New("must not be negative")
	}
	return baseline, nil
}

func decodeSettings(raw json.RawMessage) (slot.Settings, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return slot.Settings{}, errors.New("not an object")
	}
	settings := slot.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return slot.Settings{}, fmt.Errorf("wrong field type: %w", err)
	}
	settings.Currency = slot.NormalizeCurrency(settings.Currency)
	if err := validator.Struct(settings); err != nil {
		return slot.Settings{}, fieldError(err)
	}
	return settings, nil
}

func decodeCategories(raw json.RawMessage) ([]slot.Category, error) {
	var categories []slot.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, errors.New("not an array of categories")
	}
	if categories == nil {
		categories = []slot.Category{}
	}
	for i, c := range categories {
		if err := validator.Struct(c); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, fieldError(err))
		}
	}
	return categories, nil
}

func fieldError(err error) error {
	if field, tag, ok := validator.FirstFieldError(err); ok {
		return fmt.Errorf("%s failed %s", field, tag)
	}
	return err
}
