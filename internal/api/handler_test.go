package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/finance-copilot/internal/models"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app)
	return app
}

const sampleCSV = `Date,Description,Amount
2026-01-05,Payment from Ali Electric,5000
2026-01-10,Shell petrol,-400
2026-01-15,Office rent January,-1000
`

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}

	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestAnalyzeEndpointWithText(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("text", sampleCSV)
	w.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result AnalyzeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Count != 3 {
		t.Errorf("expected 3 transactions, got %d", result.Count)
	}
	if result.Summary == nil || result.Summary.TotalIncome != 5000 {
		t.Errorf("summary wrong: %+v", result.Summary)
	}
	if result.Health == nil || result.Health.Status == "" {
		t.Errorf("health missing: %+v", result.Health)
	}
	if len(result.Insights) == 0 {
		t.Error("expected insights")
	}
	if len(result.Forecast) != 3 {
		t.Errorf("expected 3 forecast points, got %d", len(result.Forecast))
	}
	if result.ExecutiveSummary == "" {
		t.Error("expected executive summary")
	}

	// Classification ran end to end.
	var fuel bool
	for _, tx := range result.Transactions {
		if tx.Category == "Fuel" {
			fuel = true
		}
	}
	if !fuel {
		t.Error("expected a Fuel transaction from classification")
	}
}

func TestAnalyzeEndpointWithFile(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("file", "statement.csv")
	part.Write([]byte(sampleCSV))
	w.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAnalyzeEndpointRequiresStatement(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAnalyzeEndpointRejectsUnknownFileType(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("file", "statement.xlsx")
	part.Write([]byte("not a statement"))
	w.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAnalyzeEndpointMissingColumns(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("text", "Date,Description\n2026-01-05,Payment\n")
	w.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result AnalyzeResponse
	json.Unmarshal(body, &result)
	if result.Success {
		t.Error("expected failure response")
	}
	if !strings.Contains(result.Error, "Amount") {
		t.Errorf("error should name the missing column: %q", result.Error)
	}
}

func TestChatEndpoint(t *testing.T) {
	app := setupTestApp()

	reqBody, _ := json.Marshal(ChatRequest{
		Query: "who is my best customer?",
		Transactions: []models.Transaction{
			{
				ID: "TX-1", Date: "2026-01-05", Description: "Payment from Ali Electric",
				Amount: 5000, Type: models.TypeIncome, Category: "Customer Payment",
				EntityName: "Ali Electric",
			},
		},
	})

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if !strings.Contains(result.Answer, "Ali Electric") {
		t.Errorf("answer should name the customer: %q", result.Answer)
	}
}

func TestChatEndpointRequiresQuery(t *testing.T) {
	app := setupTestApp()

	reqBody, _ := json.Marshal(ChatRequest{Query: "   "})
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
