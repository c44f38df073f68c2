package llm

import "strings"

// FirstJSONObject extracts the first balanced-brace JSON object from free
// text. Models often wrap their JSON in prose or Markdown fences, so the
// scanner skips to the first '{' and walks the braces while respecting
// string literals and escapes. A greedy regex would truncate or over-match
// on nested objects; this does not.
func FirstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	// Unbalanced braces: the object never closed.
	return "", false
}
