// Package classify assigns categories and counterparty names to transaction
// descriptions using ordered keyword and pattern tables. Priority is data:
// rules are scanned in declared order and the first match wins, so ambiguous
// descriptions always resolve to the earliest-declared rule.
package classify

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Fallback buckets when no rule matches. Category is never empty.
const (
	FallbackExpense = "Miscellaneous"
	FallbackIncome  = "Other Income"
)

// CategoryRule maps a category name to the keywords that select it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset holds the ordered classification tables.
type Ruleset struct {
	ExpenseCategories []CategoryRule `yaml:"expense_categories"`
	IncomeCategories  []CategoryRule `yaml:"income_categories"`
	KnownEntities     []string       `yaml:"known_entities"`
}

//go:embed rules.yaml
var defaultRulesYAML []byte

// LoadRuleset parses a YAML ruleset. Rule order in the document is the
// match priority.
func LoadRuleset(b []byte) (Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(b, &rs); err != nil {
		return Ruleset{}, fmt.Errorf("classify: parsing ruleset: %w", err)
	}
	return rs, nil
}

// Classifier resolves categories and entities for descriptions. It holds no
// per-call state; the same description always classifies the same way.
type Classifier struct {
	rules Ruleset
}

// New creates a Classifier over the given ruleset.
func New(rules Ruleset) *Classifier {
	return &Classifier{rules: rules}
}

var defaultOnce = sync.OnceValue(func() *Classifier {
	rs, err := LoadRuleset(defaultRulesYAML)
	if err != nil {
		// The embedded ruleset ships with the binary; failing to parse it
		// is a build defect, not a runtime condition.
		panic(err)
	}
	return New(rs)
})

// Default returns the classifier backed by the embedded ruleset.
func Default() *Classifier { return defaultOnce() }

// Category returns the first matching category for the description, or the
// direction's fallback bucket.
func (c *Classifier) Category(description string, isExpense bool) string {
	desc := strings.ToLower(description)
	table := c.rules.IncomeCategories
	fallback := FallbackIncome
	if isExpense {
		table = c.rules.ExpenseCategories
		fallback = FallbackExpense
	}
	for _, rule := range table {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Name
			}
		}
	}
	return fallback
}

// Entity extracts the counterparty name from a description, or returns the
// empty string when nothing can be attributed.
func (c *Classifier) Entity(description string, isExpense bool) string {
	patterns := incomeEntityPatterns
	if isExpense {
		patterns = expenseEntityPatterns
	}
	for _, p := range patterns {
		m := p.FindStringSubmatch(description)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		entity := strings.TrimSpace(m[1])
		entity = strings.TrimSpace(trailingStopWords.ReplaceAllString(entity, ""))
		if len(entity) > 1 && len(entity) < 40 {
			return TitleCase(entity)
		}
	}
	desc := strings.ToLower(description)
	for _, brand := range c.rules.KnownEntities {
		if strings.Contains(desc, brand) {
			return TitleCase(brand)
		}
	}
	return ""
}

// TitleCase renders each word with a leading capital, e.g. "khan brothers"
// becomes "Khan Brothers".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
