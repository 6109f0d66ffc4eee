package analytics

import "github.com/insightdelivered/finance-copilot/internal/models"

// GoalProgress recomputes a goal's completion percentage from the latest
// Summary. Results are capped at 100; a zero or negative target yields 0.
// Only the reduce-expense goal floors at 0 — a save-profit goal under a net
// loss reports negative progress so the shortfall stays visible.
func GoalProgress(s models.Summary, goalType models.GoalType, target float64) float64 {
	if target <= 0 {
		return 0
	}
	var progress float64
	switch goalType {
	case models.GoalIncreaseRevenue:
		progress = s.TotalIncome / target * 100
	case models.GoalSaveProfit:
		progress = s.NetProfit / target * 100
	case models.GoalReduceExpense:
		progress = ((target-s.TotalExpenses)/target + 1) * 100
		if progress < 0 {
			progress = 0
		}
	default:
		return 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress
}

// RefreshGoals returns a copy of the goals with Progress recomputed against
// the given Summary.
func RefreshGoals(s models.Summary, goals []models.Goal) []models.Goal {
	out := make([]models.Goal, len(goals))
	for i, g := range goals {
		g.Progress = GoalProgress(s, g.Type, g.Target)
		out[i] = g
	}
	return out
}
