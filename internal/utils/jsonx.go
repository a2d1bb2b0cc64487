package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// DecodeModelJSON parses JSON out of LLM output. Model responses are
// usually clean JSON (JSON mode), but can arrive wrapped in markdown
// fences or prose, or carry a trailing comma. Tries, in order: the raw
// input, a fenced code block, the first balanced object/array found in
// the text, and a trailing-comma-stripped variant.
func DecodeModelJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	candidates := []string{input}
	if m := fencedJSON.FindStringSubmatch(input); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	if b := firstBalanced(input); b != "" {
		candidates = append(candidates, b)
	}

	for _, c := range candidates {
		if err := json.Unmarshal([]byte(c), target); err == nil {
			return nil
		}
		cleaned := trailingComma.ReplaceAllString(c, "$1")
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	if len(input) > 100 {
		input = input[:100] + "..."
	}
	return fmt.Errorf("no parseable JSON in model output: %s", input)
}

// firstBalanced returns the first balanced {...} or [...] span in s,
// respecting string literals and escapes.
func firstBalanced(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
