package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// ListTransactionsBody is the request body for listing transactions.
// Every field is optional and an empty body lists everything.
type ListTransactionsBody struct {
	Month    string `json:"month,omitempty" pattern:"^[0-9]{4}-[0-9]{2}$" doc:"Calendar month as YYYY-MM"`
	Type     string `json:"type,omitempty" enum:"expense,income,budget-contribution" doc:"Only this transaction type"`
	Category string `json:"category,omitempty" doc:"Only this category, case-insensitive"`
	Search   string `json:"search,omitempty" doc:"Case-insensitive text matched against note and category"`
	Limit    int    `json:"limit,omitempty" minimum:"0" maximum:"1000" doc:"Maximum number of results, 0 for all"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Matching transactions, newest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, filter ledger.Filter) []ledger.Transaction
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns the ledger entries matching the filter in ledger order.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
func parseListTransactionsInput(input *ListTransactionsInput) (ledger.Filter, error) {
	filter := ledger.Filter{
		Category: input.Body.Category,
		Search:   input.Body.Search,
		Limit:    input.Body.Limit,
	}

	if input.Body.Month != "" {
		month, err := ledger.ParseMonth(input.Body.Month)
		if err != nil {
			return ledger.Filter{}, huma.NewError(http.StatusBadRequest, "invalid month", err)
		}
		filter.Month = &month
	}

	if input.Body.Type != "" {
		txType, err := ledger.ParseType(input.Body.Type)
		if err != nil {
			return ledger.Filter{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
		}
		filter.Type = &txType
	}

	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	transactions := h.TransactionService.ListTransactions(ctx, filter)

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = fromLedger(tx)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
