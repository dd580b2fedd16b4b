package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction ID"`
}

type DeleteTransactionOutput struct {
	Body struct {
		Deleted bool `json:"deleted" doc:"False when no transaction had this ID"`
	}
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id string) bool
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Removes a transaction. Deleting an unknown ID succeeds and changes nothing.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	out := &DeleteTransactionOutput{}
	out.Body.Deleted = h.TransactionService.DeleteTransaction(ctx, input.ID)
	return out, nil
}
