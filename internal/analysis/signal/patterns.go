package signal

import (
	"regexp"
	"strings"
)

// All patterns are RE2, so evaluation stays linear in the input length.
var (
	budgetPattern = regexp.MustCompile(`(?i)\$?\s?\b(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?` +
		`(?:\s?[km]\b)?` +
		`(?:\s?(?:/\s?mo(?:nth)?\b|per\s+month\b|a\s+month\b|monthly\b|usd\b|dollars\b))?`)

	timelinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnext\s+(?:\d+|a|one|two|three|four|five|six|few|couple(?:\s+of)?)\s+(?:weeks?|months?)\b`),
		regexp.MustCompile(`(?i)\bq[1-4]\s?(?:20)?\d{2}\b`),
		regexp.MustCompile(`(?i)\b(?:this|next)\s+(?:month|quarter|season)\b`),
	}

	contactPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
)

// ExtractBudget returns the first money-like figure in text.
// Any standalone number qualifies, so phone fragments or years can match too.
func ExtractBudget(text string) (string, bool) {
	return firstMatch(budgetPattern, text)
}

// ExtractTimeline tries relative spans, then quarter tokens, then
// this/next month|quarter|season, and returns the first hit.
func ExtractTimeline(text string) (string, bool) {
	for _, pattern := range timelinePatterns {
		if match, ok := firstMatch(pattern, text); ok {
			return match, true
		}
	}
	return "", false
}

// ExtractContact returns the first email address in text.
func ExtractContact(text string) (string, bool) {
	return firstMatch(contactPattern, text)
}

func firstMatch(pattern *regexp.Regexp, text string) (string, bool) {
	match := pattern.FindString(text)
	if match == "" {
		return "", false
	}
	normalized := strings.Join(strings.Fields(match), " ")
	if normalized == "" {
		return "", false
	}
	return normalized, true
}
