package transaction

import (
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID       string `json:"id" doc:"Transaction ID"`
	Amount   string `json:"amount" doc:"Decimal amount, always positive"`
	Category string `json:"category" doc:"Category label"`
	Note     string `json:"note" doc:"Free-text note"`
	Date     string `json:"date" format:"date" doc:"Calendar date of the transaction"`
	Type     string `json:"type" enum:"expense,income" doc:"expense or income (budget contribution)"`
}

func fromLedger(t ledger.Transaction) Transaction {
	return Transaction{
		ID:       t.ID,
		Amount:   t.Amount.String(),
		Category: t.Category,
		Note:     t.Note,
		Date:     t.Date.String(),
		Type:     string(t.Type),
	}
}
