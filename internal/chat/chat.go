// Package chat answers plain-language questions about a set of
// transactions. Intents are matched in a fixed order, most specific
// first, so "how much did I spend on fuel" hits the category handler
// before the generic spending one.
package chat

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/finance-copilot/internal/analytics"
	"github.com/insightdelivered/finance-copilot/internal/classify"
	"github.com/insightdelivered/finance-copilot/internal/insights"
	"github.com/insightdelivered/finance-copilot/internal/models"
	"github.com/insightdelivered/finance-copilot/internal/money"
)

var categoryPattern = regexp.MustCompile(`(?i)(fuel|rent|salary|tools|supplies|utilities|food|transport|marketing|subscription)`)

const fallbackHelp = `You can ask me: *"How much did I spend on fuel?"*, *"Who is my best customer?"*, *"Why is my profit low?"*, *"What's my cashflow forecast?"*`

// Engine answers queries against an analyzed transaction set.
// Rand picks the fallback insight; pass a fixed-seed source in tests.
type Engine struct {
	Rand *rand.Rand
}

func New() *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Answer resolves the first matching intent for query.
func (e *Engine) Answer(query string, txs []models.Transaction, s models.Summary, h models.HealthScore) string {
	q := strings.ToLower(query)

	if m := categoryPattern.FindStringSubmatch(q); m != nil {
		return e.categorySpend(m[1], txs, s)
	}

	if containsAny(q, "best customer", "top customer", "biggest customer") {
		if len(s.Customers) > 0 {
			top := s.Customers[0]
			return fmt.Sprintf("🏆 Your best customer is **%s** who contributed **%s** across **%d** transactions.",
				top.Name, money.Format(top.Total), top.Count)
		}
		return "🤔 No customer data found. Make sure your income transactions include customer names."
	}

	if containsAny(q, "profit", "why low", "earning") {
		return profitAnswer(s)
	}

	if containsAny(q, "biggest expense", "largest expense", "most money") {
		cats := analytics.TopCategories(s)
		if len(cats) > 0 && s.TotalExpenses > 0 {
			pct := cats[0].Total / s.TotalExpenses * 100
			return fmt.Sprintf("📊 Your biggest expense is **%s** at **%s** (%s%% of total expenses).",
				cats[0].Name, money.Format(cats[0].Total), money.Percent(pct))
		}
		return "🤔 No expense data found yet."
	}

	if containsAny(q, "health", "how is my business", "doing", "status") {
		return fmt.Sprintf("🏥 Your Business Health Score is **%d/100 — %s**. %s",
			h.Score, h.Status, insights.ExecutiveSummary(s, h))
	}

	if containsAny(q, "revenue", "income", "money in", "earn") {
		return fmt.Sprintf("📈 Your total revenue is **%s** from **%d** income transactions.",
			money.Format(s.TotalIncome), countType(txs, models.TypeIncome))
	}

	if containsAny(q, "expense", "spend", "cost", "money out") {
		return fmt.Sprintf("💸 Your total expenses are **%s** from **%d** expense transactions.",
			money.Format(s.TotalExpenses), countType(txs, models.TypeExpense))
	}

	if containsAny(q, "cash", "cashflow", "next month", "forecast") {
		f30 := analytics.Forecast(s)[1]
		direction := "gain"
		if f30.NetChange < 0 {
			direction = "loss"
		}
		return fmt.Sprintf("🔮 Based on current trends: In the next 30 days, expected income is **%s**, expenses **%s**, giving a net %s of **%s**.",
			money.Format(f30.ProjectedIncome), money.Format(f30.ProjectedExpenses),
			direction, money.Format(f30.NetChange))
	}

	if containsAny(q, "supplier", "vendor", "who do i pay") {
		if len(s.Suppliers) > 0 {
			top := s.Suppliers
			if len(top) > 3 {
				top = top[:3]
			}
			parts := make([]string, len(top))
			for i, sup := range top {
				parts[i] = fmt.Sprintf("%s (%s)", sup.Name, money.Format(sup.Total))
			}
			return fmt.Sprintf("🏭 Your top suppliers are: %s.", strings.Join(parts, ", "))
		}
		return "🤔 No supplier data found. Make sure your expense transactions include supplier names."
	}

	return e.fallback(txs, s)
}

func (e *Engine) categorySpend(cat string, txs []models.Transaction, s models.Summary) string {
	var total float64
	for _, tx := range txs {
		if tx.Type == models.TypeExpense && strings.Contains(strings.ToLower(tx.Category), cat) {
			if tx.Amount < 0 {
				total -= tx.Amount
			} else {
				total += tx.Amount
			}
		}
	}
	if total > 0 {
		var pct float64
		if s.TotalExpenses > 0 {
			pct = total / s.TotalExpenses * 100
		}
		return fmt.Sprintf("💡 You spent **%s** on %s, which is **%s%%** of your total expenses.",
			money.Format(total), classify.TitleCase(cat), money.Percent(pct))
	}
	return fmt.Sprintf("🤔 I couldn't find any %s expenses in your data. Try uploading more transactions.", cat)
}

func profitAnswer(s models.Summary) string {
	topCategory := func(fallback string) string {
		if cats := analytics.TopCategories(s); len(cats) > 0 {
			return cats[0].Name
		}
		return fallback
	}
	if s.NetProfit >= 0 {
		advice := "Keep it up!"
		if s.ProfitMargin < 15 {
			advice = fmt.Sprintf("This is relatively thin. Consider reducing %s costs.", topCategory("expenses"))
		}
		return fmt.Sprintf("💰 Your net profit is **%s** — that's a **%s%%** profit margin. %s",
			money.Format(s.NetProfit), money.Percent(s.ProfitMargin), advice)
	}
	return fmt.Sprintf("⚠️ You are operating at a **loss of %s**. Your expenses exceed income by %s. Focus on cutting %s expenses.",
		money.Format(s.NetProfit), money.Format(s.NetProfit), topCategory("major"))
}

func (e *Engine) fallback(txs []models.Transaction, s models.Summary) string {
	all := insights.Generate(txs, s)
	text := "Upload transactions to get personalized insights!"
	if len(all) > 0 {
		idx := 0
		if e.Rand != nil {
			idx = e.Rand.Intn(len(all))
		}
		text = all[idx].Text
	}
	return fmt.Sprintf("💡 **Insight:** %s\n\n%s", text, fallbackHelp)
}

func containsAny(q string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(q, sub) {
			return true
		}
	}
	return false
}

func countType(txs []models.Transaction, typ models.TxType) int {
	var n int
	for _, tx := range txs {
		if tx.Type == typ {
			n++
		}
	}
	return n
}
