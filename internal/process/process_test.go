package process

import (
	"slices"
	"testing"
	"time"

	"github.com/insightdelivered/finance-copilot/internal/ident"
	"github.com/insightdelivered/finance-copilot/internal/models"
)

func row(date, desc string, amount float64) models.RawRow {
	return models.RawRow{Date: date, Description: desc, Amount: amount}
}

func TestRunDerivesTypeFromSign(t *testing.T) {
	p := New()
	txs := p.Run([]models.RawRow{
		row("2026-01-01", "Payment from Ali Electric", 1000),
		row("2026-01-02", "Shell Petrol", -200),
		row("2026-01-03", "Zero adjustment", 0),
	})
	if txs[0].Type != models.TypeIncome {
		t.Errorf("positive amount: got %s, want Income", txs[0].Type)
	}
	if txs[1].Type != models.TypeExpense {
		t.Errorf("negative amount: got %s, want Expense", txs[1].Type)
	}
	// Zero is not an outflow.
	if txs[2].Type != models.TypeIncome {
		t.Errorf("zero amount: got %s, want Income", txs[2].Type)
	}
}

func TestRunClassifies(t *testing.T) {
	p := New()
	txs := p.Run([]models.RawRow{
		row("2026-01-01", "Payment from Ali Electric", 1000),
		row("2026-01-02", "Shell Petrol", -200),
		row("2026-01-03", "Unmatched thing", -50),
	})
	if txs[0].Category != "Customer Payment" || txs[0].EntityName != "Ali Electric" {
		t.Errorf("unexpected classification: %+v", txs[0])
	}
	if txs[1].Category != "Fuel" || txs[1].EntityName != "Shell" {
		t.Errorf("unexpected classification: %+v", txs[1])
	}
	if txs[2].Category != "Miscellaneous" {
		t.Errorf("fallback category missing: %+v", txs[2])
	}
}

func TestRunIDHandling(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	p := New()
	p.IDs = &ident.Sequence{Now: func() time.Time { return fixed }}

	rows := []models.RawRow{
		{ID: "TX-existing", Date: "2026-01-01", Description: "Rent", Amount: -500},
		row("2026-01-02", "Fuel", -100),
	}
	txs := p.Run(rows)
	if txs[0].ID != "TX-existing" {
		t.Errorf("supplied id must be reused, got %q", txs[0].ID)
	}
	if txs[1].ID != "TX-1700000000000-0001" {
		t.Errorf("generated id not deterministic: %q", txs[1].ID)
	}
}

func TestTagThresholds(t *testing.T) {
	// Four expenses with mean 1000: 100, 100, 100 and 3700.
	txs := []models.Transaction{
		{Type: models.TypeExpense, Amount: -100, Category: "Food"},
		{Type: models.TypeExpense, Amount: -100, Category: "Food"},
		{Type: models.TypeExpense, Amount: -100, Category: "Food"},
		{Type: models.TypeExpense, Amount: -3700, Category: "Food"},
	}
	tagged := Tag(txs)
	if slices.Contains(tagged[0].Tags, TagLarge) {
		t.Errorf("small expense wrongly tagged Large: %v", tagged[0].Tags)
	}
	if !slices.Contains(tagged[3].Tags, TagLarge) {
		t.Errorf("outsized expense missing Large: %v", tagged[3].Tags)
	}
	if !slices.Contains(tagged[3].Tags, TagHighPriority) {
		t.Errorf("expense over 3x mean missing High Priority: %v", tagged[3].Tags)
	}
}

func TestTagCategoryTags(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TypeExpense, Amount: -500, Category: "Rent"},
		{Type: models.TypeExpense, Amount: -500, Category: "Fuel"},
		{Type: models.TypeExpense, Amount: -500, Category: "Food"},
	}
	tagged := Tag(txs)
	if !slices.Contains(tagged[0].Tags, TagRecurring) {
		t.Errorf("Rent should tag Recurring: %v", tagged[0].Tags)
	}
	if !slices.Contains(tagged[1].Tags, TagOperational) {
		t.Errorf("Fuel should tag Operational: %v", tagged[1].Tags)
	}
	if len(tagged[2].Tags) != 0 {
		t.Errorf("Food at mean should carry no tags: %v", tagged[2].Tags)
	}
}

func TestTagMeansArePerType(t *testing.T) {
	// Income mean 900, expense mean 125; the 2500 income is Large against
	// the income mean, and expense thresholds must not leak across types.
	txs := []models.Transaction{
		{Type: models.TypeIncome, Amount: 100},
		{Type: models.TypeIncome, Amount: 100},
		{Type: models.TypeIncome, Amount: 2500},
		{Type: models.TypeExpense, Amount: -100},
		{Type: models.TypeExpense, Amount: -150},
	}
	tagged := Tag(txs)
	if !slices.Contains(tagged[2].Tags, TagLarge) {
		t.Errorf("income above 2x income mean missing Large: %v", tagged[2].Tags)
	}
	if slices.Contains(tagged[2].Tags, TagHighPriority) {
		t.Errorf("High Priority applies to expenses only: %v", tagged[2].Tags)
	}
	if slices.Contains(tagged[4].Tags, TagLarge) {
		t.Errorf("expense below 2x expense mean wrongly Large: %v", tagged[4].Tags)
	}
}

func TestTagDoesNotMutateInput(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TypeExpense, Amount: -500, Category: "Rent"},
	}
	_ = Tag(txs)
	if txs[0].Tags != nil {
		t.Errorf("input collection mutated: %v", txs[0].Tags)
	}
}

func TestRunEmpty(t *testing.T) {
	if got := New().Run(nil); len(got) != 0 {
		t.Errorf("got %d transactions, want 0", len(got))
	}
}
