// Package api exposes the analysis pipeline over HTTP. The server is
// stateless: every request carries its own statement or transactions.
package api

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/finance-copilot/internal/analytics"
	"github.com/insightdelivered/finance-copilot/internal/chat"
	"github.com/insightdelivered/finance-copilot/internal/extractor"
	"github.com/insightdelivered/finance-copilot/internal/ident"
	"github.com/insightdelivered/finance-copilot/internal/insights"
	"github.com/insightdelivered/finance-copilot/internal/models"
	"github.com/insightdelivered/finance-copilot/internal/parser"
	"github.com/insightdelivered/finance-copilot/internal/patterns"
	"github.com/insightdelivered/finance-copilot/internal/process"
)

const version = "1.0.0"

// AnalyzeResponse is the JSON response from the /api/analyze endpoint.
type AnalyzeResponse struct {
	Success          bool                      `json:"success"`
	Error            string                    `json:"error,omitempty"`
	Transactions     []models.Transaction      `json:"transactions"`
	Summary          *models.Summary           `json:"summary,omitempty"`
	Health           *models.HealthScore       `json:"health,omitempty"`
	Insights         []models.Insight          `json:"insights,omitempty"`
	Recurring        []models.RecurringPattern `json:"recurring,omitempty"`
	Duplicates       []models.Transaction      `json:"duplicates,omitempty"`
	Anomalies        []models.Anomaly          `json:"anomalies,omitempty"`
	Forecast         []models.ForecastPoint    `json:"forecast,omitempty"`
	ExecutiveSummary string                    `json:"executive_summary,omitempty"`
	Count            int                       `json:"count"`
	Version          string                    `json:"version,omitempty"`
}

// ChatRequest is the JSON body for /api/chat.
type ChatRequest struct {
	Query        string               `json:"query"`
	Transactions []models.Transaction `json:"transactions"`
}

// ChatResponse is the JSON response from /api/chat.
type ChatResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// RegisterRoutes sets up the HTTP routes.
func RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/analyze", HandleAnalyze)
	app.Post("/api/chat", HandleChat)
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleAnalyze accepts a statement (multipart "file" upload of .csv or
// .pdf, or a raw "text" form value) and returns the full analysis.
func HandleAnalyze(c *fiber.Ctx) error {
	text, err := statementText(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := parser.Parse(text, ident.NewSequence())
	if err != nil {
		return errorResponse(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	txs := process.New().Run(rows)
	summary := analytics.Summarize(txs)
	health := analytics.Score(summary, txs)

	// nil marshals to JSON null, not []
	if txs == nil {
		txs = []models.Transaction{}
	}

	return c.JSON(AnalyzeResponse{
		Success:          true,
		Transactions:     txs,
		Summary:          &summary,
		Health:           &health,
		Insights:         insights.Generate(txs, summary),
		Recurring:        patterns.Recurring(txs),
		Duplicates:       patterns.Duplicates(txs),
		Anomalies:        patterns.Anomalies(txs),
		Forecast:         analytics.Forecast(summary),
		ExecutiveSummary: insights.ExecutiveSummary(summary, health),
		Count:            len(txs),
		Version:          version,
	})
}

// HandleChat answers a question about the transactions supplied in the
// request body.
func HandleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return chatError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if strings.TrimSpace(req.Query) == "" {
		return chatError(c, fiber.StatusBadRequest, "Query is required.")
	}

	summary := analytics.Summarize(req.Transactions)
	health := analytics.Score(summary, req.Transactions)
	answer := chat.New().Answer(req.Query, req.Transactions, summary, health)

	return c.JSON(ChatResponse{Success: true, Answer: answer})
}

// statementText pulls the statement body out of the request: an uploaded
// file (CSV directly, PDF via text extraction) or the "text" form value.
func statementText(c *fiber.Ctx) (string, error) {
	if raw := c.FormValue("text"); strings.TrimSpace(raw) != "" {
		return raw, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("no statement provided; upload form field 'file' or send form field 'text'")
	}

	name := strings.ToLower(header.Filename)
	switch {
	case strings.HasSuffix(name, ".csv"), strings.HasSuffix(name, ".txt"):
		f, err := header.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open upload: %v", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %v", err)
		}
		return string(data), nil

	case strings.HasSuffix(name, ".pdf"):
		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %v", err)
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()

		f, err := header.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open upload: %v", err)
		}
		defer f.Close()
		if _, err := io.Copy(tmp, f); err != nil {
			return "", fmt.Errorf("failed to save upload: %v", err)
		}
		tmp.Close()

		pages, err := extractor.ExtractText(tmp.Name())
		if err != nil {
			return "", fmt.Errorf("PDF extraction failed: %v", err)
		}
		return extractor.RowsAsCSV(pages), nil

	default:
		return "", fmt.Errorf("unsupported file type %q; upload a .csv or .pdf", header.Filename)
	}
}

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{Success: false, Error: msg})
}

func chatError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ChatResponse{Success: false, Error: msg})
}
