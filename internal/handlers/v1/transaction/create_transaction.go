package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Amount   string `json:"amount" required:"true" doc:"Decimal amount, greater than 0"`
	Category string `json:"category,omitempty" doc:"Category label, ignored for income"`
	Note     string `json:"note,omitempty" doc:"Free-text note"`
	Date     string `json:"date" required:"true" format:"date" doc:"Calendar date, not in the future"`
	Type     string `json:"type" required:"true" enum:"expense,income,budget-contribution" doc:"Transaction type"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	AddTransaction(ctx context.Context, draft ledger.Draft) (ledger.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Adds an expense or income entry to the front of the ledger.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput turns the request body into a ledger draft.
func parseCreateTransactionInput(input *CreateTransactionInput) (ledger.Draft, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return ledger.Draft{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	date, err := ledger.ParseDate(input.Body.Date)
	if err != nil {
		return ledger.Draft{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	txType, err := ledger.ParseType(input.Body.Type)
	if err != nil {
		return ledger.Draft{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}

	return ledger.Draft{
		Amount:   amount,
		Category: input.Body.Category,
		Note:     input.Body.Note,
		Date:     date,
		Type:     txType,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	draft, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.TransactionService.AddTransaction(ctx, draft)
	if err != nil {
		return nil, apierror.From(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: fromLedger(created)}, nil
}
