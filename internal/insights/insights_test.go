package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/insightdelivered/finance-copilot/internal/analytics"
	"github.com/insightdelivered/finance-copilot/internal/models"
)

func tx(id, date, desc string, amount float64, typ models.TxType, category, entity string) models.Transaction {
	return models.Transaction{
		ID: id, Date: date, Description: desc, Amount: amount,
		Type: typ, Category: category, EntityName: entity,
	}
}

func profitableSet() []models.Transaction {
	return []models.Transaction{
		tx("1", "2026-01-05", "Payment from Ali Electric", 5000, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("2", "2026-01-10", "Shell petrol", -400, models.TypeExpense, "Fuel", "Shell"),
		tx("3", "2026-01-15", "Office rent January", -1000, models.TypeExpense, "Rent", ""),
	}
}

func TestGenerateProfitable(t *testing.T) {
	txs := profitableSet()
	s := analytics.Summarize(txs)
	got := Generate(txs, s)
	if len(got) == 0 {
		t.Fatal("expected insights for profitable data")
	}

	var profit, positiveFlow bool
	for _, in := range got {
		switch in.Title {
		case "Business is Profitable":
			profit = true
			if in.Severity != models.SeverityInfo || in.Icon != "💰" {
				t.Errorf("profit insight shape wrong: %+v", in)
			}
			if !strings.Contains(in.Text, "PKR 3,600") {
				t.Errorf("profit text missing net amount: %q", in.Text)
			}
		case "Positive Cashflow":
			positiveFlow = true
		case "Cashflow Risk Detected":
			t.Errorf("unexpected cashflow risk for positive net flow")
		}
	}
	if !profit {
		t.Error("missing profitability insight")
	}
	if !positiveFlow {
		t.Error("missing positive cashflow insight")
	}
}

func TestGenerateLoss(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2026-01-05", "Payment from Ali Electric", 1000, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("2", "2026-01-10", "Shell petrol", -3000, models.TypeExpense, "Fuel", "Shell"),
	}
	s := analytics.Summarize(txs)
	got := Generate(txs, s)

	if got[0].Title != "Operating at a Loss" {
		t.Fatalf("risk insight should sort first, got %q", got[0].Title)
	}
	if got[0].Severity != models.SeverityRisk {
		t.Errorf("loss severity = %q, want risk", got[0].Severity)
	}
	if !strings.Contains(got[0].Text, "PKR 2,000") {
		t.Errorf("loss text = %q, want PKR 2,000 mentioned", got[0].Text)
	}
}

func TestGenerateTopCategorySeverity(t *testing.T) {
	// Fuel is 100% of expenses, well over the 30% warning threshold.
	txs := profitableSet()[:2]
	s := analytics.Summarize(txs)
	for _, in := range Generate(txs, s) {
		if in.Title == "Top Expense Category" {
			if in.Severity != models.SeverityWarning {
				t.Errorf("dominant category severity = %q, want warning", in.Severity)
			}
			if !strings.Contains(in.Text, "Fuel") {
				t.Errorf("top category text = %q, want Fuel", in.Text)
			}
			return
		}
	}
	t.Fatal("missing top expense category insight")
}

func TestGenerateMonthlyTrends(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2026-01-05", "Payment from Ali Electric", 1000, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("2", "2026-01-10", "Shell petrol", -500, models.TypeExpense, "Fuel", "Shell"),
		tx("3", "2026-02-05", "Payment from Ali Electric", 1100, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("4", "2026-02-10", "Shell petrol", -900, models.TypeExpense, "Fuel", "Shell"),
	}
	s := analytics.Summarize(txs)
	got := Generate(txs, s)

	var revenueUp, fasterExpenses, fuelSwing bool
	for _, in := range got {
		switch in.Title {
		case "Revenue Increased":
			revenueUp = true
			if !strings.Contains(in.Text, "10.0%") {
				t.Errorf("revenue trend text = %q, want 10.0%%", in.Text)
			}
		case "Expenses Growing Faster Than Revenue":
			fasterExpenses = true
			if in.Severity != models.SeverityRisk {
				t.Errorf("faster-expenses severity = %q, want risk", in.Severity)
			}
		case "Fuel Costs Increased":
			// 500 -> 900 is an 80% swing, over the 15% gate.
			fuelSwing = true
		}
	}
	if !revenueUp {
		t.Error("missing revenue trend insight")
	}
	if !fasterExpenses {
		t.Error("missing expenses-growing-faster insight")
	}
	if !fuelSwing {
		t.Error("missing category swing insight")
	}
}

func TestGenerateSingleMonthSkipsTrends(t *testing.T) {
	txs := profitableSet()
	s := analytics.Summarize(txs)
	for _, in := range Generate(txs, s) {
		if in.Type == "trend" {
			t.Fatalf("trend insight emitted with one month of data: %+v", in)
		}
	}
}

func TestGenerateCustomerConcentration(t *testing.T) {
	txs := profitableSet()
	s := analytics.Summarize(txs)
	for _, in := range Generate(txs, s) {
		if in.Title == "Top Customer" {
			if in.Severity != models.SeverityWarning {
				t.Errorf("single-customer concentration severity = %q, want warning", in.Severity)
			}
			if !strings.Contains(in.Text, "High dependency risk!") {
				t.Errorf("concentration text = %q, want dependency warning", in.Text)
			}
			return
		}
	}
	t.Fatal("missing top customer insight")
}

func TestGenerateDuplicates(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2026-01-05", "Shell petrol", -400, models.TypeExpense, "Fuel", "Shell"),
		tx("2", "2026-01-05", "Shell petrol", -400, models.TypeExpense, "Fuel", "Shell"),
		tx("3", "2026-01-06", "Payment from Ali Electric", 5000, models.TypeIncome, "Customer Payment", "Ali Electric"),
	}
	s := analytics.Summarize(txs)
	var found bool
	for _, in := range Generate(txs, s) {
		if in.Title == "Possible Duplicate Transactions" {
			found = true
			if !strings.Contains(in.Text, "1 possible duplicate") {
				t.Errorf("duplicate text = %q", in.Text)
			}
		}
	}
	if !found {
		t.Error("missing duplicate insight")
	}
}

func TestGenerateSeverityOrder(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2026-01-05", "Payment from Ali Electric", 1000, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("2", "2026-01-10", "Shell petrol", -3000, models.TypeExpense, "Fuel", "Shell"),
	}
	s := analytics.Summarize(txs)
	got := Generate(txs, s)
	for i := 1; i < len(got); i++ {
		if got[i-1].Severity.Rank() > got[i].Severity.Rank() {
			t.Fatalf("insights out of severity order at %d: %q before %q",
				i, got[i-1].Severity, got[i].Severity)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	s := analytics.Summarize(nil)
	got := Generate(nil, s)
	// Profitability and cashflow insights always fire, even on zero data.
	if len(got) != 2 {
		t.Fatalf("got %d insights for empty data, want 2", len(got))
	}
}

func TestExecutiveSummary(t *testing.T) {
	txs := profitableSet()
	s := analytics.Summarize(txs)
	h := analytics.Score(s, txs)
	got := ExecutiveSummary(s, h)

	for _, want := range []string{
		"profitable with a",
		"heavily concentrated in one customer",
		"Rent is your biggest cost driver",
		"Daily cashflow is positive",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("executive summary missing %q: %s", want, got)
		}
	}
}

func TestExecutiveSummaryLoss(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2026-01-05", "Payment from Ali Electric", 100, models.TypeIncome, "Customer Payment", "Ali Electric"),
		tx("2", "2026-01-10", "Shell petrol", -3000, models.TypeExpense, "Fuel", "Shell"),
	}
	s := analytics.Summarize(txs)
	h := analytics.Score(s, txs)
	got := ExecutiveSummary(s, h)
	if !strings.Contains(got, "operating at a loss") {
		t.Errorf("loss summary = %q", got)
	}
}

func TestDailyTip(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day8 := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if DailyTip(day1) != DailyTip(day8) {
		t.Error("tips should cycle every seven days")
	}
	if DailyTip(day1) == DailyTip(day1.AddDate(0, 0, 1)) {
		t.Error("consecutive days should rotate the tip")
	}
	if DailyTip(day1) == "" {
		t.Error("tip must not be empty")
	}
}
