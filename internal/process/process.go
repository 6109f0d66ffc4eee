// Package process assembles canonical transactions from raw statement rows.
// Classification and tagging run as two explicit phases: a per-row classify
// step, then a population-statistics step that attaches tags from whole-set
// means. Neither phase mutates its input.
package process

import (
	"math"

	"github.com/insightdelivered/finance-copilot/internal/classify"
	"github.com/insightdelivered/finance-copilot/internal/ident"
	"github.com/insightdelivered/finance-copilot/internal/models"
)

// Tag labels attached by the population pass.
const (
	TagLarge        = "Large"         // > 2x same-type mean
	TagRecurring    = "Recurring"     // structurally recurring category
	TagHighPriority = "High Priority" // expense > 3x same-type mean
	TagOperational  = "Operational"   // day-to-day operating category
)

var recurringCategories = map[string]bool{
	"Salary": true, "Rent": true, "Subscription": true,
}

var operationalCategories = map[string]bool{
	"Fuel": true, "Supplies": true, "Tools": true, "Utilities": true,
}

// Processor builds transactions from raw rows.
type Processor struct {
	Classifier *classify.Classifier
	IDs        ident.Source
}

// New returns a Processor over the default ruleset and a fresh ID sequence.
func New() *Processor {
	return &Processor{Classifier: classify.Default(), IDs: ident.NewSequence()}
}

// Run converts raw rows into classified, tagged transactions. Row IDs are
// reused when present, otherwise freshly generated.
func (p *Processor) Run(rows []models.RawRow) []models.Transaction {
	txs := make([]models.Transaction, 0, len(rows))
	for _, raw := range rows {
		isExpense := raw.Amount < 0
		txType := models.TypeIncome
		if isExpense {
			txType = models.TypeExpense
		}
		id := raw.ID
		if id == "" {
			id = p.IDs.Next()
		}
		txs = append(txs, models.Transaction{
			ID:            id,
			Date:          raw.Date,
			Description:   raw.Description,
			Amount:        raw.Amount,
			Type:          txType,
			Category:      p.Classifier.Category(raw.Description, isExpense),
			EntityName:    p.Classifier.Entity(raw.Description, isExpense),
			PaymentMethod: raw.PaymentMethod,
			Balance:       raw.Balance,
		})
	}
	return Tag(txs)
}

// Tag returns a new collection with heuristic tags attached. Tags are
// independent booleans; evaluation order never changes the resulting set.
func Tag(txs []models.Transaction) []models.Transaction {
	means := map[models.TxType]float64{
		models.TypeIncome:  meanAbs(txs, models.TypeIncome),
		models.TypeExpense: meanAbs(txs, models.TypeExpense),
	}

	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		mean := means[tx.Type]
		var tags []string
		if math.Abs(tx.Amount) > mean*2 {
			tags = append(tags, TagLarge)
		}
		if recurringCategories[tx.Category] {
			tags = append(tags, TagRecurring)
		}
		if tx.Type == models.TypeExpense && math.Abs(tx.Amount) > mean*3 {
			tags = append(tags, TagHighPriority)
		}
		if operationalCategories[tx.Category] {
			tags = append(tags, TagOperational)
		}
		tx.Tags = tags
		out[i] = tx
	}
	return out
}

func meanAbs(txs []models.Transaction, t models.TxType) float64 {
	var sum float64
	var n int
	for _, tx := range txs {
		if tx.Type == t {
			sum += math.Abs(tx.Amount)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
