package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type tags whether a transaction spends money or makes money available.
type Type string

const (
	TypeExpense Type = "expense"
	// TypeBudgetContribution is stored as "income" so backups written by the
	// older tracker load unchanged.
	TypeBudgetContribution Type = "income"
)

const (
	// ContributionCategory is the fixed category of every budget contribution.
	ContributionCategory = "Income"
	// DefaultExpenseCategory is used when an expense is added without a category.
	DefaultExpenseCategory = "Other"
)

// MaxAmount is the largest amount a single transaction may carry.
var MaxAmount = decimal.NewFromInt(1_000_000)

// ParseType accepts the stored values plus the "budget-contribution" alias.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return TypeExpense, nil
	case "income", "budget-contribution":
		return TypeBudgetContribution, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

func (t Type) Valid() bool {
	return t == TypeExpense || t == TypeBudgetContribution
}

// Transaction is a single dated ledger entry. Amount is always positive; Type
// decides the direction.
type Transaction struct {
	ID       string
	Amount   decimal.Decimal
	Category string
	Note     string
	Date     Date
	Type     Type
}

// IsContribution reports whether the transaction adds to available funds.
func (t Transaction) IsContribution() bool {
	return t.Type == TypeBudgetContribution
}

// Draft is a transaction before it has been accepted by the ledger.
type Draft struct {
	Amount   decimal.Decimal
	Category string
	Note     string
	Date     Date
	Type     Type
}

// ValidationError rejects a single field of user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day, held at UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts a plain date or an RFC 3339 timestamp, keeping the date
// part as written.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// YearMonth returns the calendar month the date falls in.
func (d Date) YearMonth() Month {
	return Month{Year: d.Year(), Month: d.Time.Month()}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
