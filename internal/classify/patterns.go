package classify

import "regexp"

// Entity extraction patterns, applied in declared order per direction.
// Each captures the counterparty following (or preceding) a verb phrase.
var incomeEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)payment from ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)received from ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)paid by ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)from ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9 &.'-]+) payment`),
}

var expenseEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)purchase from ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)paid to ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)payment to ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)to ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)at ([a-zA-Z0-9 &.'-]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9 &.'-]+) purchase`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9 &.'-]+) bill`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9 &.'-]+) invoice`),
}

// Filler words dropped from the tail of a captured entity.
var trailingStopWords = regexp.MustCompile(`(?i)\b(for|the|a|an|on|in|at|from|to|of)\b$`)
