package analytics

import (
	"strings"

	"github.com/insightdelivered/finance-copilot/internal/models"
)

// Scenario describes percentage adjustments for a what-if simulation.
// Values are percents: +10 means a 10% increase, -50 a halving.
type Scenario struct {
	TopCategoryPct float64 `json:"top_category_pct"` // change to the largest expense category
	SalaryPct      float64 `json:"salary_pct"`       // change to the Salary category
	RevenuePct     float64 `json:"revenue_pct"`      // change to total revenue
}

// ScenarioResult is the projected position after applying a Scenario.
type ScenarioResult struct {
	NewRevenue   float64 `json:"new_revenue"`
	NewExpenses  float64 `json:"new_expenses"`
	NewProfit    float64 `json:"new_profit"`
	ProfitChange float64 `json:"profit_change"`
}

// Simulate applies the scenario to a Summary. It only reads the Summary;
// missing categories contribute nothing.
func Simulate(s models.Summary, sc Scenario) ScenarioResult {
	cats := TopCategories(s)
	var topTotal, salaryTotal float64
	if len(cats) > 0 {
		topTotal = cats[0].Total
	}
	for name, total := range s.CategoryTotals {
		if strings.EqualFold(name, "Salary") {
			salaryTotal = total
			break
		}
	}

	newExpenses := s.TotalExpenses + topTotal*sc.TopCategoryPct/100 + salaryTotal*sc.SalaryPct/100
	newRevenue := s.TotalIncome * (1 + sc.RevenuePct/100)
	newProfit := newRevenue - newExpenses
	return ScenarioResult{
		NewRevenue:   newRevenue,
		NewExpenses:  newExpenses,
		NewProfit:    newProfit,
		ProfitChange: newProfit - s.NetProfit,
	}
}
