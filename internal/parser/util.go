package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date shapes accepted by NormalizeDate, checked in order.
var (
	datePatternISO   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	datePatternSlash = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	datePatternDash  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`)
)

// Layouts tried as a best-effort fallback for dates in other shapes.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"2/1/2006",
	"2-1-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02 Jan 06",
	"2-Jan-2006",
}

var errEmptyAmount = errors.New("empty amount")

// parseAmount converts strings like "1,234.56" or `"-1,200"` to a float64.
// Quotes, apostrophes, and thousands separators are stripped first.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyAmount
	}
	return strconv.ParseFloat(s, 64)
}

// NormalizeDate converts supported date shapes to YYYY-MM-DD. Strings that
// match nothing pass through unchanged; downstream code treats those as a
// data-quality signal, not a failure.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if datePatternISO.MatchString(s) {
		return s[:10]
	}
	if datePatternSlash.MatchString(s) {
		parts := strings.Split(s, "/")
		return parts[2][:4] + "-" + parts[1] + "-" + parts[0]
	}
	if datePatternDash.MatchString(s) {
		parts := strings.Split(s, "-")
		return parts[2][:4] + "-" + parts[1] + "-" + parts[0]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
