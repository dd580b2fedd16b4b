package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// currentMonth selects the month containing today.
const currentMonth = "current"

// MonthInput is shared by the per-month endpoints.
type MonthInput struct {
	Month string `path:"month" doc:"Calendar month as YYYY-MM, or current"`
}

// monthService is what every summary handler needs to resolve a month.
type monthService interface {
	CurrentMonth() ledger.Month
}

func resolveMonth(svc monthService, raw string) (ledger.Month, error) {
	if raw == currentMonth {
		return svc.CurrentMonth(), nil
	}
	month, err := ledger.ParseMonth(raw)
	if err != nil {
		return ledger.Month{}, huma.NewError(http.StatusBadRequest, "invalid month", err)
	}
	return month, nil
}

// Summary is the API model of one month's figures.
type Summary struct {
	Month              string  `json:"month" doc:"Calendar month as YYYY-MM"`
	Baseline           string  `json:"baseline" doc:"Monthly allowance"`
	ExpenseTotal       string  `json:"expenseTotal" doc:"Sum of expenses in the month"`
	ContributionTotal  string  `json:"contributionTotal" doc:"Sum of income entries in the month"`
	Available          string  `json:"available" doc:"baseline + contributions - expenses, negative when over budget"`
	UtilizationPercent float64 `json:"utilizationPercent" doc:"Expenses as a percentage of the baseline"`
}

type GetSummaryOutput struct {
	Body Summary
}

type summaryGetter interface {
	monthService
	GetMonthlySummary(ctx context.Context, month ledger.Month) budget.Summary
}

// GetSummaryHandler handles GET /v1/summary/{month}.
type GetSummaryHandler struct {
	BudgetService summaryGetter
}

func NewGetSummaryHandler(svc summaryGetter) *GetSummaryHandler {
	return &GetSummaryHandler{BudgetService: svc}
}

func (h *GetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary/{month}",
		Summary:     "Get monthly summary",
		Description: "Returns the expense total, contributions and available balance for a month.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetSummaryHandler) handle(ctx context.Context, input *MonthInput) (*GetSummaryOutput, error) {
	month, err := resolveMonth(h.BudgetService, input.Month)
	if err != nil {
		return nil, err
	}

	s := h.BudgetService.GetMonthlySummary(ctx, month)
	return &GetSummaryOutput{Body: Summary{
		Month:              s.Month.String(),
		Baseline:           s.Baseline.String(),
		ExpenseTotal:       s.ExpenseTotal.String(),
		ContributionTotal:  s.ContributionTotal.String(),
		Available:          s.Available.String(),
		UtilizationPercent: s.UtilizationPercent,
	}}, nil
}
