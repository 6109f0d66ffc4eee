// Package analytics reduces transaction collections into summaries, health
// scores, forecasts, and what-if projections. Every function is a pure
// reduction over its inputs; empty collections yield well-defined zero
// results and percentage math never divides by zero.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/insightdelivered/finance-copilot/internal/models"
)

// Summarize recomputes the full Summary from the transaction set. Nothing
// is cached; callers re-invoke after any change to the collection.
func Summarize(txs []models.Transaction) models.Summary {
	s := models.Summary{
		TransactionCount: len(txs),
		CategoryTotals:   map[string]float64{},
		Monthly:          []models.MonthBucket{},
		Customers:        []models.EntityTotal{},
		Suppliers:        []models.EntityTotal{},
		DateRange:        models.DateRange{DaySpan: 1},
	}

	monthly := map[string]*models.MonthBucket{}
	customers := map[string]*models.EntityTotal{}
	suppliers := map[string]*models.EntityTotal{}
	var minDate, maxDate time.Time

	for _, tx := range txs {
		if tx.Type == models.TypeIncome {
			s.TotalIncome += tx.Amount
			if tx.EntityName != "" {
				accumulate(customers, tx.EntityName, tx.Amount)
			}
		} else {
			s.TotalExpenses += math.Abs(tx.Amount)
			s.CategoryTotals[tx.Category] += math.Abs(tx.Amount)
			if tx.EntityName != "" {
				accumulate(suppliers, tx.EntityName, math.Abs(tx.Amount))
			}
		}

		day, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue // unparsed dates count in totals but not in the span
		}
		if minDate.IsZero() || day.Before(minDate) {
			minDate = day
		}
		if maxDate.IsZero() || day.After(maxDate) {
			maxDate = day
		}
		key := day.Format("2006-01")
		b, ok := monthly[key]
		if !ok {
			b = &models.MonthBucket{Label: key}
			monthly[key] = b
		}
		if tx.Type == models.TypeIncome {
			b.Income += tx.Amount
		} else {
			b.Expenses += math.Abs(tx.Amount)
		}
	}

	s.NetProfit = s.TotalIncome - s.TotalExpenses

	if !minDate.IsZero() {
		span := int(maxDate.Sub(minDate).Hours()/24) + 1
		if span < 1 {
			span = 1
		}
		s.DateRange = models.DateRange{Min: minDate, Max: maxDate, DaySpan: span}
	}
	days := float64(s.DateRange.DaySpan)
	s.AvgDailyIncome = s.TotalIncome / days
	s.AvgDailyExpense = s.TotalExpenses / days
	s.NetDailyChange = s.AvgDailyIncome - s.AvgDailyExpense

	for _, b := range monthly {
		s.Monthly = append(s.Monthly, *b)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Label < s.Monthly[j].Label })

	s.Customers = ranked(customers)
	s.Suppliers = ranked(suppliers)

	if s.TotalIncome > 0 {
		s.ProfitMargin = s.NetProfit / s.TotalIncome * 100
		s.ExpenseRatio = s.TotalExpenses / s.TotalIncome * 100
	}
	return s
}

func accumulate(m map[string]*models.EntityTotal, name string, amount float64) {
	e, ok := m[name]
	if !ok {
		e = &models.EntityTotal{Name: name}
		m[name] = e
	}
	e.Total += amount
	e.Count++
}

func ranked(m map[string]*models.EntityTotal) []models.EntityTotal {
	out := make([]models.EntityTotal, 0, len(m))
	for _, e := range m {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopCategories returns expense categories ranked by total, descending,
// with name as a deterministic tie-break.
func TopCategories(s models.Summary) []models.EntityTotal {
	out := make([]models.EntityTotal, 0, len(s.CategoryTotals))
	for name, total := range s.CategoryTotals {
		out = append(out, models.EntityTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}
