package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/budget"
)

type GetTrendInput struct {
	Months int `query:"months" default:"6" minimum:"1" maximum:"120" doc:"Number of months ending with the current one"`
}

type MonthBucket struct {
	Month   string `json:"month" doc:"Calendar month as YYYY-MM"`
	Expense string `json:"expense" doc:"Expense total, 0 for months without entries"`
}

type GetTrendOutput struct {
	Body struct {
		Months []MonthBucket `json:"months" doc:"Oldest first"`
	}
}

type trendGetter interface {
	GetTrend(ctx context.Context, n int) []budget.MonthBucket
}

// GetTrendHandler handles GET /v1/trend.
type GetTrendHandler struct {
	BudgetService trendGetter
}

func NewGetTrendHandler(svc trendGetter) *GetTrendHandler {
	return &GetTrendHandler{BudgetService: svc}
}

func (h *GetTrendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-trend",
		Method:      http.MethodGet,
		Path:        "/v1/trend",
		Summary:     "Get expense trend",
		Description: "Returns monthly expense totals for charting.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetTrendHandler) handle(ctx context.Context, input *GetTrendInput) (*GetTrendOutput, error) {
	buckets := h.BudgetService.GetTrend(ctx, input.Months)
	out := &GetTrendOutput{}
	out.Body.Months = make([]MonthBucket, len(buckets))
	for i, b := range buckets {
		out.Body.Months[i] = MonthBucket{Month: b.Month.String(), Expense: b.Expense.String()}
	}
	return out, nil
}
