package analytics

import "github.com/insightdelivered/finance-copilot/internal/models"

// Status tiers and their color tokens, highest first.
var statusTiers = []struct {
	MinScore int
	Status   string
	Color    string
}{
	{80, "Healthy", "#10b981"},
	{60, "Stable", "#3b82f6"},
	{40, "Needs Attention", "#f59e0b"},
	{0, "At Risk", "#ef4444"},
}

// Score computes the weighted health score from a Summary. Contributions
// are tiered, not interpolated, and the result is clamped to [0,100]. The
// transaction collection is part of the engine surface for future factors
// but does not affect the current model.
func Score(s models.Summary, _ []models.Transaction) models.HealthScore {
	score := 50
	var factors []models.Factor

	add := func(label string, points int) {
		score += points
		factors = append(factors, models.Factor{Label: label, Points: points, Positive: points > 0})
	}

	// Profitability. A loss is a flat penalty regardless of magnitude.
	if s.NetProfit > 0 {
		switch {
		case s.ProfitMargin > 30:
			add("Strong profit margin", 25)
		case s.ProfitMargin > 15:
			add("Healthy profit margin", 15)
		case s.ProfitMargin > 5:
			add("Thin profit margin", 8)
		default:
			// Positive points, but still flagged as a concern.
			score += 2
			factors = append(factors, models.Factor{Label: "Very thin margin", Points: 2, Positive: false})
		}
	} else {
		add("Operating at a loss", -20)
	}

	// Expense discipline.
	switch {
	case s.ExpenseRatio < 50:
		add("Low expense ratio", 15)
	case s.ExpenseRatio < 70:
		add("Moderate expense ratio", 8)
	case s.ExpenseRatio < 85:
		add("High expense ratio", -5)
	default:
		add("Very high expense ratio", -15)
	}

	// Customer concentration, only when any customer is attributed.
	if len(s.Customers) > 0 && s.TotalIncome > 0 {
		topShare := s.Customers[0].Total / s.TotalIncome * 100
		switch {
		case topShare > 60:
			add("High customer concentration risk", -10)
		case topShare > 40:
			add("Moderate concentration risk", -5)
		default:
			add("Diversified customer base", 5)
		}
	}

	// Cashflow direction.
	if s.NetDailyChange > 0 {
		add("Positive daily cash flow", 5)
	} else {
		add("Negative daily cash flow", -5)
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	h := models.HealthScore{Score: score, Factors: factors}
	for _, tier := range statusTiers {
		if score >= tier.MinScore {
			h.Status = tier.Status
			h.StatusColor = tier.Color
			break
		}
	}
	return h
}
