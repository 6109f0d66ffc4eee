package models

import "time"

// MonthBucket aggregates income and expenses for one calendar month.
type MonthBucket struct {
	Label    string  `json:"label"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// EntityTotal ranks a counterparty by total volume.
type EntityTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// DateRange describes the calendar span covered by a transaction set.
// Min and Max are zero when no date could be parsed; DaySpan is never
// below 1 so per-day averages stay finite.
type DateRange struct {
	Min     time.Time `json:"min"`
	Max     time.Time `json:"max"`
	DaySpan int       `json:"day_span"`
}

// Summary is a derived view of a transaction collection. It is recomputed
// in full on every invocation and never cached.
type Summary struct {
	TotalIncome      float64            `json:"total_income"`
	TotalExpenses    float64            `json:"total_expenses"` // absolute value
	NetProfit        float64            `json:"net_profit"`
	TransactionCount int                `json:"transaction_count"`
	AvgDailyIncome   float64            `json:"avg_daily_income"`
	AvgDailyExpense  float64            `json:"avg_daily_expense"`
	NetDailyChange   float64            `json:"net_daily_change"`
	Monthly          []MonthBucket      `json:"monthly"`
	CategoryTotals   map[string]float64 `json:"category_breakdown"` // expense categories only
	Customers        []EntityTotal      `json:"customers"`          // income entities, descending by total
	Suppliers        []EntityTotal      `json:"suppliers"`          // expense entities, descending by total
	DateRange        DateRange          `json:"date_range"`
	ProfitMargin     float64            `json:"profit_margin"` // percent; 0 when no income
	ExpenseRatio     float64            `json:"expense_ratio"` // percent; 0 when no income
}

// RecurringPattern describes a group of repeating transactions with a
// stable amount.
type RecurringPattern struct {
	Description string  `json:"description"`
	Count       int     `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
	Category    string  `json:"category"`
	Type        TxType  `json:"type"`
}

// Anomaly is a transaction whose magnitude outsizes its same-type peers.
type Anomaly struct {
	Transaction
	Multiplier float64 `json:"multiplier"` // |amount| / same-type mean
}

// Factor explains one contribution to the health score.
type Factor struct {
	Label    string `json:"label"`
	Points   int    `json:"points"`
	Positive bool   `json:"positive"`
}

// HealthScore is a 0-100 composite metric with explainable factors.
type HealthScore struct {
	Score       int      `json:"score"`
	Status      string   `json:"status"`
	StatusColor string   `json:"status_color"`
	Factors     []Factor `json:"factors"`
}

// Severity ranks insights for display; risk sorts first.
type Severity string

const (
	SeverityRisk        Severity = "risk"
	SeverityWarning     Severity = "warning"
	SeverityOpportunity Severity = "opportunity"
	SeverityInfo        Severity = "info"
)

// Rank returns the sort position of the severity; unknown values sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityRisk:
		return 0
	case SeverityWarning:
		return 1
	case SeverityOpportunity:
		return 2
	default:
		return 3
	}
}

// Insight is one narrative observation about the business.
type Insight struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Icon     string   `json:"icon"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
}

// ForecastPoint is a linear cashflow projection over a fixed horizon.
type ForecastPoint struct {
	Days              int     `json:"days"`
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	NetChange         float64 `json:"net_change"`
}

// GoalType selects how goal progress is measured against a Summary.
type GoalType string

const (
	GoalReduceExpense   GoalType = "reduce_expense"
	GoalIncreaseRevenue GoalType = "increase_revenue"
	GoalSaveProfit      GoalType = "save_profit"
)

// Goal is a session-local target; Progress is recomputed from the latest
// Summary and never persisted by the engine.
type Goal struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Target   float64  `json:"target"`
	Type     GoalType `json:"type"`
	Progress float64  `json:"progress"` // percent
}
