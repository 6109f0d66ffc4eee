// Package writer exports classified transactions back to CSV.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/insightdelivered/finance-copilot/internal/models"
)

// CSVWriter writes classified transactions to CSV format.
type CSVWriter struct {
	IncludeSummary bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txs []models.Transaction, s models.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txs, s)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txs []models.Transaction, s models.Summary) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Write summary lines as comment rows ahead of the data.
	if w.IncludeSummary {
		writer.Write([]string{"# Total Income", formatAmount(s.TotalIncome)})
		writer.Write([]string{"# Total Expenses", formatAmount(s.TotalExpenses)})
		writer.Write([]string{"# Net Profit", formatAmount(s.NetProfit)})
		if !s.DateRange.Min.IsZero() {
			period := s.DateRange.Min.Format("2006-01-02") + " to " + s.DateRange.Max.Format("2006-01-02")
			writer.Write([]string{"# Period", period})
		}
	}

	header := []string{"ID", "Date", "Description", "Amount", "Type", "Category", "Entity", "Tags", "Payment Method", "Balance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range txs {
		balance := ""
		if tx.Balance != nil {
			balance = formatAmount(*tx.Balance)
		}
		row := []string{
			tx.ID,
			tx.Date,
			tx.Description,
			formatAmount(tx.Amount),
			string(tx.Type),
			tx.Category,
			tx.EntityName,
			strings.Join(tx.Tags, ";"),
			tx.PaymentMethod,
			balance,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
