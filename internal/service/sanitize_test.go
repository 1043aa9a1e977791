package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "", sanitizeText("", 100))
	assert.Equal(t, "hola", sanitizeText("  hola  ", 100))
	assert.Equal(t, "Ana", sanitizeText("<script>alert(1)</script>Ana", 100))
	assert.Equal(t, "bold claim", sanitizeText("<b>bold</b> claim", 100))
	assert.Equal(t, "click", sanitizeText(`<a href="https://evil.example">click</a>`, 100))

	// Truncation counts runes, not bytes.
	assert.Equal(t, "ññ", sanitizeText("ñññ", 2))
	assert.Equal(t, strings.Repeat("a", 10), sanitizeText(strings.Repeat("a", 50), 10))
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))

	got := optional("x")
	if assert.NotNil(t, got) {
		assert.Equal(t, "x", *got)
	}
}
