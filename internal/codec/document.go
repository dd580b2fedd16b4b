// Package codec converts application state to and from the portable
// snapshot document used by export and import.
package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

// Version is written into every exported document.
const Version = "1.0.0"

// Document is the exported JSON shape.
type Document struct {
	Transactions []slot.TransactionRecord `json:"transactions"`
	Budget       json.Number              `json:"budget"`
	Settings     slot.Settings            `json:"settings"`
	Categories   []slot.Category          `json:"categories"`
	ExportDate   time.Time                `json:"exportDate"`
	Version      string                   `json:"version"`
}

// Snapshot is the full application state.
type Snapshot struct {
	Transactions []ledger.Transaction
	Budget       decimal.Decimal
	Settings     slot.Settings
	Categories   []slot.Category
}

func Export(s Snapshot, exportedAt time.Time) Document {
	categories := s.Categories
	if categories == nil {
		categories = []slot.Category{}
	}
	return Document{
		Transactions: slot.RecordsOf(s.Transactions),
		Budget:       json.Number(s.Budget.String()),
		Settings:     s.Settings,
		Categories:   categories,
		ExportDate:   exportedAt.UTC(),
		Version:      Version,
	}
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// FormatError rejects an import document as a whole. Nothing is written.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid import document: " + e.Reason
}
