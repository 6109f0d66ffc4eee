// Package patterns finds recurring charges, duplicate entries, and
// statistical outliers in a transaction collection.
package patterns

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/insightdelivered/finance-copilot/internal/models"
)

// Amounts within this relative distance of the group mean count as stable.
const recurringTolerance = 0.1

// A magnitude this many times the same-type mean is anomalous.
const anomalyThreshold = 2.5

// At most this many anomalies are reported, across both types combined.
const maxAnomalies = 3

// NormalizeDescription lowercases a description and strips everything
// outside [a-z0-9 ] so case and punctuation variants group together.
func NormalizeDescription(s string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(s) {
		if ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || ch == ' ' {
			b.WriteRune(ch)
		}
	}
	return strings.TrimSpace(b.String())
}

// Recurring groups transactions by normalized description and reports each
// group of two or more whose absolute amounts all sit within 10% of the
// group mean.
func Recurring(txs []models.Transaction) []models.RecurringPattern {
	groups := map[string][]models.Transaction{}
	var order []string // report groups in first-seen order
	for _, tx := range txs {
		key := NormalizeDescription(tx.Description)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], tx)
	}

	var out []models.RecurringPattern
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		var sum float64
		for _, tx := range group {
			sum += math.Abs(tx.Amount)
		}
		avg := sum / float64(len(group))
		stable := true
		for _, tx := range group {
			if avg == 0 || math.Abs(math.Abs(tx.Amount)-avg)/avg >= recurringTolerance {
				stable = false
				break
			}
		}
		if !stable {
			continue
		}
		out = append(out, models.RecurringPattern{
			Description: group[0].Description,
			Count:       len(group),
			AvgAmount:   avg,
			Category:    group[0].Category,
			Type:        group[0].Type,
		})
	}
	return out
}

// Duplicates flags second-and-later occurrences of an identical
// (date, amount, lowercased trimmed description) key. Casing and surrounding
// whitespace are ignored but punctuation is significant, unlike the heavier
// normalization Recurring applies. The first occurrence is never flagged.
func Duplicates(txs []models.Transaction) []models.Transaction {
	seen := map[string]bool{}
	var out []models.Transaction
	for _, tx := range txs {
		key := fmt.Sprintf("%s|%v|%s", tx.Date, tx.Amount, strings.ToLower(strings.TrimSpace(tx.Description)))
		if seen[key] {
			out = append(out, tx)
		} else {
			seen[key] = true
		}
	}
	return out
}

// Anomalies computes, independently per type, each transaction's magnitude
// as a multiple of the same-type mean, keeps multipliers above 2.5, then
// merges both types and truncates to the top 3 overall. Types with fewer
// than 3 transactions report nothing.
func Anomalies(txs []models.Transaction) []models.Anomaly {
	var out []models.Anomaly
	for _, txType := range []models.TxType{models.TypeIncome, models.TypeExpense} {
		var sameType []models.Transaction
		var sum float64
		for _, tx := range txs {
			if tx.Type == txType {
				sameType = append(sameType, tx)
				sum += math.Abs(tx.Amount)
			}
		}
		if len(sameType) < 3 || sum == 0 {
			continue
		}
		mean := sum / float64(len(sameType))
		for _, tx := range sameType {
			if mult := math.Abs(tx.Amount) / mean; mult > anomalyThreshold {
				out = append(out, models.Anomaly{Transaction: tx, Multiplier: mult})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Multiplier > out[j].Multiplier })
	if len(out) > maxAnomalies {
		out = out[:maxAnomalies]
	}
	return out
}
