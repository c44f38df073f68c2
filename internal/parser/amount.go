package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognizers are tried in priority order; the first match wins. Order
// matters: a bare number would otherwise swallow "50" out of "50k".
var amountPatterns = []*regexp.Regexp{
	// number + currency unit, thousands separators allowed
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{3})*)\s*(?:đ|đồng|vnd|d)`),
	// number + triệu-scale marker, decimal fractions allowed ("1.5tr")
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:tr|triệu|m)`),
	// number + thousand-scale marker ("50k", "200 nghìn")
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:k|nghìn|ngàn)`),
	// bare number with optional thousands separators
	regexp.MustCompile(`(\d+(?:[.,]\d{3})*)`),
}

// Scale markers are re-tested against the matched token only, so "tr" or
// "k" appearing elsewhere in the message never rescales a bare number.
var (
	millionMarker  = regexp.MustCompile(`(?i)tr|triệu|m`)
	thousandMarker = regexp.MustCompile(`(?i)k|nghìn|ngàn`)
)

var separatorStripper = strings.NewReplacer(".", "", ",", "")

// ExtractAmount parses a Vietnamese monetary expression out of text and
// returns the value in VND. The second return is false when no amount was
// found or the parsed value is not strictly positive.
func ExtractAmount(text string) (float64, bool) {
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		token, number := m[0], m[1]

		var amount float64
		switch {
		case millionMarker.MatchString(token):
			v, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return 0, false
			}
			amount = v * 1_000_000
		case thousandMarker.MatchString(token):
			v, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return 0, false
			}
			amount = v * 1_000
		default:
			// Unscaled: "." and "," are thousands separators, not decimals.
			v, err := strconv.ParseFloat(separatorStripper.Replace(number), 64)
			if err != nil {
				return 0, false
			}
			amount = v
		}

		if amount <= 0 {
			return 0, false
		}
		return amount, true
	}

	return 0, false
}
