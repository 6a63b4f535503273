package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "exactly10!", Preview("exactly10!", 10))
	assert.Equal(t, "Mo-Fr…", Preview("Mo-Fr 08:00-18:00", 5))
	assert.Equal(t, "Öffn…", Preview("Öffnungszeiten", 4))
	assert.Equal(t, "unbounded", Preview("unbounded", 0))
}

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "abc", tp.TruncateText("abc", 10))
	assert.Equal(t, "ab", tp.TruncateText("abc", 2))
	// "é" is two bytes and must not be split
	assert.Equal(t, "caf", tp.TruncateText("café", 4))
	assert.Equal(t, "abc", tp.TruncateText("abc", 0))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "Mo 08:00\tSa\n", tp.SanitizeUTF8("Mo 08:00\tSa\n"))
	assert.Equal(t, "Mo-Fr", tp.SanitizeUTF8("Mo\x00-Fr\x07"))
	assert.Equal(t, "café", tp.SanitizeUTF8("caf\xffé"))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "weekdays", tp.ProcessText("  weekdays\x00  ", 100))
	assert.Len(t, tp.ProcessText(strings.Repeat("a", 50), 20), 20)
}
