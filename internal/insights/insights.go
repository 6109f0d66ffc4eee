// Package insights turns a Summary and detected patterns into ranked
// narrative observations, plus a short executive summary and a daily tip.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/insightdelivered/finance-copilot/internal/analytics"
	"github.com/insightdelivered/finance-copilot/internal/models"
	"github.com/insightdelivered/finance-copilot/internal/money"
	"github.com/insightdelivered/finance-copilot/internal/patterns"
)

// Generate evaluates the fixed observation sequence and returns the list
// re-sorted by severity (risk first), stable within equal rank.
func Generate(txs []models.Transaction, s models.Summary) []models.Insight {
	var out []models.Insight
	add := func(in models.Insight) { out = append(out, in) }

	// Overall profitability.
	if s.NetProfit >= 0 {
		add(models.Insight{
			Type: "health", Severity: models.SeverityInfo, Icon: "💰",
			Title: "Business is Profitable",
			Text: fmt.Sprintf("Your total profit is %s (%s%% margin). Expenses are %s%% of revenue.",
				money.Format(s.NetProfit), money.Percent(s.ProfitMargin), money.Percent(s.ExpenseRatio)),
		})
	} else {
		add(models.Insight{
			Type: "health", Severity: models.SeverityRisk, Icon: "⚠️",
			Title: "Operating at a Loss",
			Text: fmt.Sprintf("Your total loss is %s. Expenses exceed income by %s.",
				money.Format(s.NetProfit), money.Format(s.NetProfit)),
		})
	}

	// Largest expense category.
	cats := analytics.TopCategories(s)
	if len(cats) > 0 {
		top := cats[0]
		var pct float64
		if s.TotalExpenses > 0 {
			pct = top.Total / s.TotalExpenses * 100
		}
		severity := models.SeverityInfo
		if pct > 30 {
			severity = models.SeverityWarning
		}
		add(models.Insight{
			Type: "expense", Severity: severity, Icon: "📊",
			Title: "Top Expense Category",
			Text: fmt.Sprintf("%s is your largest expense at %s (%s%% of total expenses).",
				top.Name, money.Format(top.Total), money.Percent(pct)),
		})
	}

	// Month-over-month movement, only with at least two buckets.
	if len(s.Monthly) >= 2 {
		prev := s.Monthly[len(s.Monthly)-2]
		curr := s.Monthly[len(s.Monthly)-1]
		var incomeChange, expenseChange float64
		if prev.Income > 0 {
			incomeChange = (curr.Income - prev.Income) / prev.Income * 100
		}
		if prev.Expenses > 0 {
			expenseChange = (curr.Expenses - prev.Expenses) / prev.Expenses * 100
		}

		if incomeChange != 0 {
			direction, title, severity, icon := "increased", "Revenue Increased", models.SeverityOpportunity, "📈"
			if incomeChange < 0 {
				direction, title, severity, icon = "decreased", "Revenue Decreased", models.SeverityWarning, "📉"
			}
			add(models.Insight{
				Type: "trend", Severity: severity, Icon: icon,
				Title: title,
				Text: fmt.Sprintf("Money In %s by %s%% compared to last month.",
					direction, money.Percent(abs(incomeChange))),
			})
		}

		if expenseChange > 0 && incomeChange < expenseChange {
			add(models.Insight{
				Type: "trend", Severity: models.SeverityRisk, Icon: "🔴",
				Title: "Expenses Growing Faster Than Revenue",
				Text: fmt.Sprintf("Expenses grew %s%% while revenue grew %s%%. This trend is unsustainable.",
					money.Percent(expenseChange), money.Percent(incomeChange)),
			})
		}

		// Swings in the top two categories.
		for _, cat := range topN(cats, 2) {
			prevAmt := categoryMonthTotal(txs, cat.Name, prev.Label)
			currAmt := categoryMonthTotal(txs, cat.Name, curr.Label)
			if prevAmt <= 0 || currAmt <= 0 {
				continue
			}
			change := (currAmt - prevAmt) / prevAmt * 100
			if abs(change) <= 15 {
				continue
			}
			direction, word, severity, icon := "increased", "Increased", models.SeverityWarning, "⬆️"
			if change < 0 {
				direction, word, severity, icon = "decreased", "Decreased", models.SeverityOpportunity, "⬇️"
			}
			add(models.Insight{
				Type: "category", Severity: severity, Icon: icon,
				Title: fmt.Sprintf("%s Costs %s", cat.Name, word),
				Text: fmt.Sprintf("%s expenses %s by %s%% compared to last month.",
					cat.Name, direction, money.Percent(abs(change))),
			})
		}
	}

	// Customer concentration.
	if len(s.Customers) > 0 && s.TotalIncome > 0 {
		top := s.Customers[0]
		pct := top.Total / s.TotalIncome * 100
		severity, suffix := models.SeverityInfo, ""
		if pct > 40 {
			severity, suffix = models.SeverityWarning, " High dependency risk!"
		}
		add(models.Insight{
			Type: "customer", Severity: severity, Icon: "👥",
			Title: "Top Customer",
			Text: fmt.Sprintf("%s contributes %s%% of total revenue (%s).%s",
				top.Name, money.Percent(pct), money.Format(top.Total), suffix),
		})
	}

	// 30-day cashflow direction.
	if s.NetDailyChange < 0 {
		add(models.Insight{
			Type: "cashflow", Severity: models.SeverityRisk, Icon: "🔻",
			Title: "Cashflow Risk Detected",
			Text: fmt.Sprintf("At the current rate, your cash balance may decrease by %s over the next 30 days.",
				money.Format(s.NetDailyChange*30)),
		})
	} else {
		add(models.Insight{
			Type: "cashflow", Severity: models.SeverityInfo, Icon: "✅",
			Title: "Positive Cashflow",
			Text: fmt.Sprintf("Your daily net cash flow is +%s. Projected 30-day gain: %s.",
				money.Format(s.NetDailyChange), money.Format(s.NetDailyChange*30)),
		})
	}

	// Recurring expense rollup.
	var expenseOnly []models.Transaction
	for _, tx := range txs {
		if tx.Type == models.TypeExpense {
			expenseOnly = append(expenseOnly, tx)
		}
	}
	if recurring := patterns.Recurring(expenseOnly); len(recurring) > 0 {
		var total float64
		for _, r := range recurring {
			total += r.AvgAmount
		}
		add(models.Insight{
			Type: "recurring", Severity: models.SeverityInfo, Icon: "🔄",
			Title: "Recurring Expenses Detected",
			Text: fmt.Sprintf("You have %d recurring expenses totaling %s per cycle.",
				len(recurring), money.Format(total)),
		})
	}

	// One insight per anomaly.
	for _, a := range patterns.Anomalies(txs) {
		add(models.Insight{
			Type: "anomaly", Severity: models.SeverityWarning, Icon: "🔍",
			Title: "Unusual Transaction",
			Text: fmt.Sprintf("Unusual %s detected: %s for %s. This is %sx higher than average.",
				strings.ToLower(string(a.Type)), money.Format(a.Amount), a.Category,
				money.Percent(a.Multiplier)),
		})
	}

	// Duplicate warning.
	if dups := patterns.Duplicates(txs); len(dups) > 0 {
		add(models.Insight{
			Type: "duplicate", Severity: models.SeverityWarning, Icon: "⚠️",
			Title: "Possible Duplicate Transactions",
			Text:  fmt.Sprintf("%d possible duplicate transaction(s) detected. Please review.", len(dups)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() < out[j].Severity.Rank()
	})
	return out
}

// ExecutiveSummary condenses the summary and health verdict into a few
// plain sentences suitable for the top of a report.
func ExecutiveSummary(s models.Summary, h models.HealthScore) string {
	var sentences []string
	if s.NetProfit >= 0 {
		sentences = append(sentences, fmt.Sprintf("Your business is profitable with a %s%% profit margin.",
			money.Percent(s.ProfitMargin)))
	} else {
		sentences = append(sentences, "Your business is currently operating at a loss — immediate attention is needed.")
	}
	if len(s.Customers) > 0 && s.TotalIncome > 0 {
		topShare := s.Customers[0].Total / s.TotalIncome * 100
		if topShare > 40 {
			sentences = append(sentences, fmt.Sprintf("Revenue is heavily concentrated in one customer (%s%%), which poses a risk.",
				money.Percent(topShare)))
		} else {
			sentences = append(sentences, "Revenue is well-distributed across multiple customers.")
		}
	}
	if cats := analytics.TopCategories(s); len(cats) > 0 && s.TotalExpenses > 0 {
		pct := cats[0].Total / s.TotalExpenses * 100
		sentences = append(sentences, fmt.Sprintf("%s is your biggest cost driver at %s%% of expenses.",
			cats[0].Name, money.Percent(pct)))
	}
	if s.NetDailyChange < 0 {
		sentences = append(sentences, "Cash outflow is exceeding inflow daily — cashflow management needs priority.")
	} else {
		sentences = append(sentences, "Daily cashflow is positive, which indicates good short-term financial health.")
	}
	return strings.Join(sentences, " ")
}

var dailyTips = []string{
	"Review your recurring expenses monthly — they often grow unnoticed.",
	"A 10% cut in your largest expense category can significantly boost monthly profit.",
	"Diversifying your customer base reduces dependency risk.",
	"Track cash flow daily — a profitable business can still fail from poor timing.",
	"Compare supplier costs quarterly. Competitive quotes often save 10-20%.",
	"Set a monthly savings target of at least 5% of revenue for reserves.",
	"Your best customers deserve extra attention — losing one impacts cash flow immediately.",
}

// DailyTip rotates through a fixed tip list keyed by the day of the month.
func DailyTip(now time.Time) string {
	return dailyTips[now.Day()%len(dailyTips)]
}

func topN(cats []models.EntityTotal, n int) []models.EntityTotal {
	if len(cats) < n {
		return cats
	}
	return cats[:n]
}

func categoryMonthTotal(txs []models.Transaction, category, monthLabel string) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == models.TypeExpense && tx.Category == category && strings.HasPrefix(tx.Date, monthLabel) {
			total += abs(tx.Amount)
		}
	}
	return total
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
