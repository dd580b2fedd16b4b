package baseline

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
)

type SetBudgetBody struct {
	Budget string `json:"budget" required:"true" doc:"Decimal monthly allowance, not negative"`
}

type SetBudgetInput struct {
	Body SetBudgetBody
}

type SetBudgetOutput struct {
	Body SetBudgetBody
}

type budgetSetter interface {
	SetBudget(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error)
}

// SetBudgetHandler handles PUT /v1/budget.
type SetBudgetHandler struct {
	BudgetService budgetSetter
}

func NewSetBudgetHandler(svc budgetSetter) *SetBudgetHandler {
	return &SetBudgetHandler{BudgetService: svc}
}

func (h *SetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set baseline budget",
		Description: "Replaces the monthly allowance.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *SetBudgetHandler) handle(ctx context.Context, input *SetBudgetInput) (*SetBudgetOutput, error) {
	value, err := decimal.NewFromString(input.Body.Budget)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budget", err)
	}

	saved, err := h.BudgetService.SetBudget(ctx, value)
	if err != nil {
		return nil, apierror.From(err, "failed to set budget")
	}

	return &SetBudgetOutput{Body: SetBudgetBody{Budget: saved.String()}}, nil
}
