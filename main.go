package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/finance-copilot/internal/analytics"
	"github.com/insightdelivered/finance-copilot/internal/api"
	"github.com/insightdelivered/finance-copilot/internal/chat"
	"github.com/insightdelivered/finance-copilot/internal/extractor"
	"github.com/insightdelivered/finance-copilot/internal/ident"
	"github.com/insightdelivered/finance-copilot/internal/insights"
	"github.com/insightdelivered/finance-copilot/internal/logger"
	"github.com/insightdelivered/finance-copilot/internal/models"
	"github.com/insightdelivered/finance-copilot/internal/money"
	"github.com/insightdelivered/finance-copilot/internal/parser"
	"github.com/insightdelivered/finance-copilot/internal/process"
	"github.com/insightdelivered/finance-copilot/internal/writer"
)

const version = "1.0.0"

func main() {
	inputFlag := flag.String("input", "", "Statement file to analyze (.csv or .pdf)")
	exportFlag := flag.String("export", "", "Write classified transactions to this CSV path")
	queryFlag := flag.String("query", "", "Ask a question about the statement instead of printing the report")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server")
	addrFlag := flag.String("addr", ":8080", "Listen address for -serve")
	logLevelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Finance Copilot
by Insight Delivered

Analyzes small business bank statements: classifies transactions,
scores business health, detects recurring payments, duplicates and
anomalies, and answers plain-language questions about the numbers.

Usage:
  finance-copilot [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze a statement and print the report
  finance-copilot -input statement.csv

  # Analyze a PDF export
  finance-copilot -input statement.pdf

  # Export classified transactions
  finance-copilot -input statement.csv -export classified.csv

  # Ask a question
  finance-copilot -input statement.csv -query "who is my best customer?"

  # Run the API server
  finance-copilot -serve -addr :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("finance-copilot v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || (*inputFlag == "" && !*serveFlag) {
		flag.Usage()
		os.Exit(0)
	}

	log := logger.New(*logLevelFlag)

	if *serveFlag {
		addr := *addrFlag
		if port := os.Getenv("PORT"); port != "" && addr == ":8080" {
			addr = ":" + port
		}

		app := fiber.New(fiber.Config{AppName: "finance-copilot v" + version})
		app.Use(recover.New())
		app.Use(cors.New())
		api.RegisterRoutes(app)

		log.Info().Str("addr", addr).Msg("starting API server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if err := analyzeFile(*inputFlag, *exportFlag, *queryFlag); err != nil {
		log.Error().Err(err).Str("file", *inputFlag).Msg("analysis failed")
		os.Exit(1)
	}
}

func analyzeFile(inputPath, exportPath, query string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	text, err := statementText(inputPath)
	if err != nil {
		return err
	}

	rows, err := parser.Parse(text, ident.NewSequence())
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no transactions found in %s", inputPath)
	}

	txs := process.New().Run(rows)
	summary := analytics.Summarize(txs)
	health := analytics.Score(summary, txs)

	if query != "" {
		answer := chat.New().Answer(query, txs, summary, health)
		fmt.Println(answer)
		return nil
	}

	printReport(txs, summary, health)

	if exportPath != "" {
		w := &writer.CSVWriter{IncludeSummary: true}
		if err := w.WriteToFile(exportPath, txs, summary); err != nil {
			return fmt.Errorf("CSV export failed: %w", err)
		}
		fmt.Printf("\nExported %d transaction(s) to %s\n", len(txs), exportPath)
	}

	return nil
}

// statementText loads the raw statement body, extracting text first when
// the input is a PDF.
func statementText(inputPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(inputPath))
	switch ext {
	case ".csv", ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		return string(data), nil
	case ".pdf":
		pages, err := extractor.ExtractText(inputPath)
		if err != nil {
			return "", fmt.Errorf("PDF extraction failed: %w", err)
		}
		return extractor.RowsAsCSV(pages), nil
	default:
		return "", fmt.Errorf("expected .csv or .pdf file, got %q", ext)
	}
}

func printReport(txs []models.Transaction, summary models.Summary, health models.HealthScore) {
	fmt.Printf("Analyzed %d transaction(s)", summary.TransactionCount)
	if !summary.DateRange.Min.IsZero() {
		fmt.Printf(" from %s to %s",
			summary.DateRange.Min.Format("2006-01-02"), summary.DateRange.Max.Format("2006-01-02"))
	}
	fmt.Println()

	fmt.Printf("\n  Total income:   %s\n", money.Format(summary.TotalIncome))
	fmt.Printf("  Total expenses: %s\n", money.Format(summary.TotalExpenses))
	fmt.Printf("  Net profit:     %s (%s%% margin)\n",
		money.Format(summary.NetProfit), money.Percent(summary.ProfitMargin))

	fmt.Printf("\nHealth Score: %d/100 (%s)\n", health.Score, health.Status)
	for _, f := range health.Factors {
		sign := "+"
		if f.Points < 0 {
			sign = ""
		}
		fmt.Printf("  %s%d  %s\n", sign, f.Points, f.Label)
	}

	fmt.Println("\nForecast:")
	for _, f := range analytics.Forecast(summary) {
		fmt.Printf("  %3d days: income %s, expenses %s, net %s\n",
			f.Days, money.Format(f.ProjectedIncome), money.Format(f.ProjectedExpenses),
			money.Format(f.NetChange))
	}

	fmt.Println("\nInsights:")
	for _, in := range insights.Generate(txs, summary) {
		fmt.Printf("  %s [%s] %s: %s\n", in.Icon, in.Severity, in.Title, in.Text)
	}

	fmt.Printf("\n%s %s\n", "💡", insights.DailyTip(time.Now()))
}
