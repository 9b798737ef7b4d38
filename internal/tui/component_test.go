package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "hel...", Truncate("hello world", 6))
	assert.Equal(t, "Pengat...", Truncate("Pengaturan Akun", 9))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestRenderTitle(t *testing.T) {
	out := RenderTitle("Menu", 10, true)
	assert.Contains(t, out, "Menu")
}

func TestRenderBorder(t *testing.T) {
	out := RenderBorder("body", false)
	assert.Contains(t, out, "body")
	assert.True(t, strings.Count(out, "\n") >= 2)
}
