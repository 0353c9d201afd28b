package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseAIJSON decodes a JSON object from raw model output. Models asked for
// JSON still wrap it in prose or markdown fences often enough that a direct
// unmarshal is only the first attempt:
//   - pure JSON
//   - JSON inside a ```json (or bare ```) code block
//   - JSON embedded in surrounding text
//   - JSON with common syntax slop (trailing commas, unquoted keys,
//     single quotes, control characters)
func ParseAIJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractJSONObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// The object may itself carry fixable slop.
		if cleaned := cleanAndFixJSON(extracted); cleaned != "" {
			if err := json.Unmarshal([]byte(cleaned), target); err == nil {
				return nil
			}
		}
	}

	if cleaned := cleanAndFixJSON(input); cleaned != "" {
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

var (
	fencedJSONRe  = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedPlainRe = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// extractFromMarkdown pulls the contents of the first fenced code block that
// looks like JSON.
func extractFromMarkdown(input string) string {
	if m := fencedJSONRe.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := fencedPlainRe.FindStringSubmatch(input); len(m) > 1 {
		content := strings.TrimSpace(m[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}
	return ""
}

// extractJSONObject returns the first balanced {...} span, tracking string
// and escape state so braces inside string values do not confuse the depth
// count.
func extractJSONObject(input string) string {
	depth := 0
	inString := false
	escape := false
	start := -1

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case ch == '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// cleanAndFixJSON repairs the malformations models produce most often.
func cleanAndFixJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2"$3`)
	s = fixSingleQuotes(s)
	s = controlChars.ReplaceAllString(s, "")
	return s
}

// fixSingleQuotes rewrites single-quote delimiters to double quotes outside
// of existing double-quoted strings. Apostrophes inside words are left alone.
func fixSingleQuotes(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	inDoubleQuote := false
	escape := false

	for i, ch := range input {
		if escape {
			b.WriteRune(ch)
			escape = false
			continue
		}
		if ch == '\\' {
			b.WriteRune(ch)
			escape = true
			continue
		}
		if ch == '"' {
			inDoubleQuote = !inDoubleQuote
			b.WriteRune(ch)
			continue
		}
		if ch == '\'' && !inDoubleQuote {
			var prev byte
			if i > 0 {
				prev = input[i-1]
			}
			if i == 0 || prev == ':' || prev == ',' || prev == '[' || prev == '{' || prev == ' ' {
				b.WriteRune('"')
				continue
			}
			if i+1 < len(input) {
				next := input[i+1]
				if next == ':' || next == ',' || next == ']' || next == '}' {
					b.WriteRune('"')
					continue
				}
			}
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
