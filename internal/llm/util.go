package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSONBlock returns the JSON value embedded in a model reply. It drops
// markdown fences, any preamble before the first '{' or '[', and anything
// after the matching close.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// language identifier on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := text[:idx]
			if len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if v := balanced(text[start:]); v != "" {
		return v
	}
	return text
}

// DecodeJSON cleans a model reply and unmarshals it into v.
func DecodeJSON(text string, v any) error {
	cleaned := CleanJSONBlock(text)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}

// balanced returns the prefix of s that closes its opening bracket, or "".
func balanced(s string) string {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
