package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Strip passes run in this order. Amount tokens go first so pronoun and
// filler stripping can never eat digits that belong to an amount.
var (
	amountTokens    = regexp.MustCompile(`(?i)\d+(?:[.,]\d{3})*\s*(?:k|tr|triệu|nghìn|ngàn|đ|đồng|vnd|d)?`)
	leadingPronouns = regexp.MustCompile(`(?i)^(?:mình|tôi|em|anh|chị|t|mk|m)\s+`)
	innerPronouns   = regexp.MustCompile(`(?i)\s+(?:mình|tôi|em|anh|chị)\s+`)
	timePhrases     = regexp.MustCompile(`(?i)\s+(?:hôm nay|hôm qua|hôm kia|sáng nay|tối nay|trưa nay)`)
	fillerWords     = regexp.MustCompile(`(?i)\s+(?:vừa|mới|đã|rồi|xong|được|bị|cho|về|ra|vào)`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// CleanDescription reduces the raw message to a human-readable note. When
// stripping leaves fewer than two characters, the matched category name is
// used instead so the description is never empty.
func CleanDescription(message, categoryName string) string {
	d := amountTokens.ReplaceAllString(message, "")
	d = leadingPronouns.ReplaceAllString(d, "")
	d = innerPronouns.ReplaceAllString(d, " ")
	d = timePhrases.ReplaceAllString(d, "")
	d = fillerWords.ReplaceAllString(d, " ")
	d = whitespaceRuns.ReplaceAllString(d, " ")
	d = strings.TrimSpace(d)

	if utf8.RuneCountInString(d) < 2 {
		return categoryName
	}
	return d
}
