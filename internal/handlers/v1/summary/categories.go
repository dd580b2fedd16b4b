package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

type CategoryShare struct {
	Category string  `json:"category" doc:"Category label"`
	Amount   string  `json:"amount" doc:"Expense total for the category"`
	Percent  float64 `json:"percent" doc:"Share of the month's expense total"`
}

type GetBreakdownOutput struct {
	Body struct {
		Month      string          `json:"month" doc:"Calendar month as YYYY-MM"`
		Categories []CategoryShare `json:"categories" doc:"Largest first"`
	}
}

type breakdownGetter interface {
	monthService
	GetCategoryBreakdown(ctx context.Context, month ledger.Month) []budget.CategoryShare
}

// GetBreakdownHandler handles GET /v1/summary/{month}/categories.
type GetBreakdownHandler struct {
	BudgetService breakdownGetter
}

func NewGetBreakdownHandler(svc breakdownGetter) *GetBreakdownHandler {
	return &GetBreakdownHandler{BudgetService: svc}
}

func (h *GetBreakdownHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/summary/{month}/categories",
		Summary:     "Get category breakdown",
		Description: "Returns the month's expenses grouped by category.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetBreakdownHandler) handle(ctx context.Context, input *MonthInput) (*GetBreakdownOutput, error) {
	month, err := resolveMonth(h.BudgetService, input.Month)
	if err != nil {
		return nil, err
	}

	shares := h.BudgetService.GetCategoryBreakdown(ctx, month)
	out := &GetBreakdownOutput{}
	out.Body.Month = month.String()
	out.Body.Categories = make([]CategoryShare, len(shares))
	for i, s := range shares {
		out.Body.Categories[i] = CategoryShare{
			Category: s.Category,
			Amount:   s.Amount.String(),
			Percent:  s.Percent,
		}
	}
	return out, nil
}
