package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag and attribute; submitted text is stored as
// plain text only. Safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

func sanitizeText(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	cleaned := strings.TrimSpace(strictPolicy.Sanitize(text))
	if maxLength > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLength {
			cleaned = strings.TrimSpace(string(runes[:maxLength]))
		}
	}
	return cleaned
}

// optional maps empty strings to nil for nullable columns.
func optional(text string) *string {
	if text == "" {
		return nil
	}
	return &text
}
