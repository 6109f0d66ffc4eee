package analytics

import "github.com/insightdelivered/finance-copilot/internal/models"

// Forecast horizons in days.
var forecastHorizons = []int{7, 30, 90}

// Forecast projects cashflow over the standard horizons by pure linear
// extrapolation of the daily averages. No seasonality, no clamping.
func Forecast(s models.Summary) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, len(forecastHorizons))
	for _, d := range forecastHorizons {
		days := float64(d)
		out = append(out, models.ForecastPoint{
			Days:              d,
			ProjectedIncome:   s.AvgDailyIncome * days,
			ProjectedExpenses: s.AvgDailyExpense * days,
			NetChange:         s.NetDailyChange * days,
		})
	}
	return out
}
