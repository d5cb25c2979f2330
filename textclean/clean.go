// Package textclean normalizes free-text notes fields. Notes pasted
// from marketplace listings drag boilerplate along with them; the
// patterns here strip the contamination actually observed in imports.
// This is best-effort pattern matching, nothing more.
package textclean

import (
	"regexp"
	"strings"
)

var contaminationPatterns = []*regexp.Regexp{
	// listing boilerplate
	regexp.MustCompile(`(?i)\b(buy it now|or best offer|best offer accepted|free shipping|fast shipping|ships (fast|free|today)|see photos?|no returns?)\b[.!]*`),
	// price fragments with optional shipping suffix, e.g. "+$4.99 shipping"
	regexp.MustCompile(`(?i)[+]?\s*\$\s*\d[\d,]*(\.\d{1,2})?\s*(shipping|obo)?`),
	// item / lot references, e.g. "Item #123456789"
	regexp.MustCompile(`(?i)\b(item|lot)\s*#?\s*\d+\b`),
	// attention-grabber spam
	regexp.MustCompile(`(?i)(l@@k|wow!+|must see!+|hot!+)`),
	// bracketed seller tags, e.g. "[eBay]" "(see description)"
	regexp.MustCompile(`(?i)[\[(]\s*(ebay|see description|read)\s*[\])]`),
}

var (
	whitespaceRun  = regexp.MustCompile(`\s{2,}`)
	danglingPunct  = regexp.MustCompile(`\s+([,.!?;:])`)
	repeatedCommas = regexp.MustCompile(`([,.!?]){2,}`)
)

// CleanNotes strips known listing contamination from a notes string
// and collapses the whitespace left behind.
func CleanNotes(s string) string {
	cleaned := s
	for _, pattern := range contaminationPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = danglingPunct.ReplaceAllString(cleaned, "$1")
	cleaned = repeatedCommas.ReplaceAllString(cleaned, "$1")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, ",;")
	return strings.TrimSpace(cleaned)
}
