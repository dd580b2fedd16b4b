package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

type Allocation struct {
	Category  string  `json:"category" doc:"Planned category"`
	Suggested string  `json:"suggested" doc:"Suggested share of the baseline"`
	Spent     string  `json:"spent" doc:"Expenses recorded against the category"`
	Remaining string  `json:"remaining" doc:"suggested - spent, negative when overspent"`
	Percent   float64 `json:"percent" doc:"Spent as a percentage of suggested"`
}

type GetAllocationsOutput struct {
	Body struct {
		Month       string       `json:"month" doc:"Calendar month as YYYY-MM"`
		Allocations []Allocation `json:"allocations"`
	}
}

type allocationGetter interface {
	monthService
	GetAllocations(ctx context.Context, month ledger.Month) []budget.Allocation
}

// GetAllocationsHandler handles GET /v1/summary/{month}/allocations.
type GetAllocationsHandler struct {
	BudgetService allocationGetter
}

func NewGetAllocationsHandler(svc allocationGetter) *GetAllocationsHandler {
	return &GetAllocationsHandler{BudgetService: svc}
}

func (h *GetAllocationsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-allocations",
		Method:      http.MethodGet,
		Path:        "/v1/summary/{month}/allocations",
		Summary:     "Get suggested allocations",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetAllocationsHandler) handle(ctx context.Context, input *MonthInput) (*GetAllocationsOutput, error) {
	month, err := resolveMonth(h.BudgetService, input.Month)
	if err != nil {
		return nil, err
	}

	allocations := h.BudgetService.GetAllocations(ctx, month)
	out := &GetAllocationsOutput{}
	out.Body.Month = month.String()
	out.Body.Allocations = make([]Allocation, len(allocations))
	for i, a := range allocations {
		out.Body.Allocations[i] = Allocation{
			Category:  a.Category,
			Suggested: a.Suggested.String(),
			Spent:     a.Spent.String(),
			Remaining: a.Remaining.String(),
			Percent:   a.Percent,
		}
	}
	return out, nil
}
