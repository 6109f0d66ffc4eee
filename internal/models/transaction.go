package models

// TxType distinguishes money in from money out.
type TxType string

const (
	TypeIncome  TxType = "Income"
	TypeExpense TxType = "Expense"
)

// RawRow is one parsed statement line before classification.
type RawRow struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"` // normalized to YYYY-MM-DD where possible
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"` // signed: negative = money out
	PaymentMethod string   `json:"payment_method,omitempty"`
	Balance       *float64 `json:"balance,omitempty"`
}

// Transaction is the canonical unit of analysis. Type is always derived from
// the amount sign; category and entity are pure functions of the description,
// so re-classifying the same description is idempotent.
type Transaction struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"`
	Type          TxType   `json:"type"`
	Category      string   `json:"category"`
	EntityName    string   `json:"entity_name"` // empty = unattributed
	Tags          []string `json:"tags"`
	PaymentMethod string   `json:"payment_method,omitempty"`
	Balance       *float64 `json:"balance,omitempty"`
}

// IsExpense reports whether the transaction is money out.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }
