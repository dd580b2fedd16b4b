package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PlanEntry suggests a share of the baseline for one category.
type PlanEntry struct {
	Category string
	Share    decimal.Decimal
}

// DefaultPlan splits the baseline the way the dashboard suggests it.
var DefaultPlan = []PlanEntry{
	{Category: "Food", Share: decimal.RequireFromString("0.30")},
	{Category: "Travel", Share: decimal.RequireFromString("0.15")},
	{Category: "Rent", Share: decimal.RequireFromString("0.35")},
	{Category: "Shopping", Share: decimal.RequireFromString("0.15")},
	{Category: "Others", Share: decimal.RequireFromString("0.05")},
}

// Allocation compares a suggested amount with what was actually spent.
type Allocation struct {
	Category  string
	Suggested decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   float64
}

func Allocate(plan []PlanEntry, baseline decimal.Decimal, breakdown []CategoryShare) []Allocation {
	allocations := make([]Allocation, 0, len(plan))
	for _, entry := range plan {
		suggested := baseline.Mul(entry.Share)
		spent := decimal.Zero
		for _, share := range breakdown {
			if strings.EqualFold(share.Category, entry.Category) {
				spent = spent.Add(share.Amount)
			}
		}
		allocations = append(allocations, Allocation{
			Category:  entry.Category,
			Suggested: suggested,
			Spent:     spent,
			Remaining: suggested.Sub(spent),
			Percent:   percentOf(spent, suggested),
		})
	}
	return allocations
}
