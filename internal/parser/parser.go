// Package parser turns raw delimited statement text into normalized raw
// transaction rows. It resolves columns by header aliases, honors quoted
// fields, and silently drops rows whose date, description, or amount is
// unusable. The only error it returns is a *FormatError for a missing
// required column.
package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/finance-copilot/internal/ident"
	"github.com/insightdelivered/finance-copilot/internal/models"
)

// Ordered header aliases per column. Earlier aliases win.
var (
	dateAliases    = []string{"date", "transaction date", "tx date"}
	descAliases    = []string{"description", "desc", "narration", "details", "particulars"}
	amountAliases  = []string{"amount", "amt", "value", "debit/credit"}
	methodAliases  = []string{"payment method", "method", "mode"}
	balanceAliases = []string{"balance", "bal", "running balance"}
)

// FormatError reports that required columns could not be resolved from the
// header row. It aborts the whole parse attempt; row-level defects never
// produce an error.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("statement must have %s column(s)", strings.Join(e.Missing, ", "))
}

// Parse converts delimited text with a header row into ordered RawRows.
// Each row gets a fresh identifier from ids.
func Parse(text string, ids ident.Source) ([]models.RawRow, error) {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		// Nothing beyond a header (or nothing at all) is an empty
		// statement, not a format problem.
		return nil, nil
	}

	headers := splitLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(stripQuotes(h))
	}

	dateIdx := findColumn(headers, dateAliases)
	descIdx := findColumn(headers, descAliases)
	amtIdx := findColumn(headers, amountAliases)
	methodIdx := findColumn(headers, methodAliases)
	balIdx := findColumn(headers, balanceAliases)

	var missing []string
	if dateIdx == -1 {
		missing = append(missing, "Date")
	}
	if descIdx == -1 {
		missing = append(missing, "Description")
	}
	if amtIdx == -1 {
		missing = append(missing, "Amount")
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}

	rows := make([]models.RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := splitLine(line)
		if len(cols) < 3 {
			continue
		}
		date := stripQuotes(field(cols, dateIdx))
		desc := stripQuotes(field(cols, descIdx))
		amount, err := parseAmount(field(cols, amtIdx))
		if date == "" || desc == "" || err != nil {
			continue // row-level defects are skipped, never fatal
		}

		row := models.RawRow{
			ID:          ids.Next(),
			Date:        NormalizeDate(date),
			Description: desc,
			Amount:      amount,
		}
		if methodIdx != -1 {
			row.PaymentMethod = stripQuotes(field(cols, methodIdx))
		}
		if balIdx != -1 {
			if bal, err := parseAmount(field(cols, balIdx)); err == nil {
				b := bal
				row.Balance = &b
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// findColumn returns the index of the first header matching any alias,
// trying aliases in declared order.
func findColumn(headers []string, aliases []string) int {
	for _, a := range aliases {
		for i, h := range headers {
			if strings.TrimSpace(h) == a {
				return i
			}
		}
	}
	return -1
}

func field(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}

// splitLine splits a delimited line on commas, honoring double quotes so an
// embedded comma inside a quoted field is not a separator.
func splitLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, current.String())
	return result
}

func stripQuotes(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}
