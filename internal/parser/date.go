package parser

import (
	"strings"

	"cloud.google.com/go/civil"
)

// ResolveDate resolves relative date phrases in the lower-cased message
// against today. "hôm qua" is yesterday, "hôm kia" the day before. When a
// message somehow contains both, "hôm qua" is checked first and wins; the
// precedence is inherited behavior, not an interpretation of intent.
func ResolveDate(lowerMessage string, today civil.Date) civil.Date {
	switch {
	case strings.Contains(lowerMessage, "hôm qua"):
		return today.AddDays(-1)
	case strings.Contains(lowerMessage, "hôm kia"):
		return today.AddDays(-2)
	}
	return today
}
