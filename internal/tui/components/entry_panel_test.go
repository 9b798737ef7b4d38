package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryPanel(t *testing.T) {
	e := newTestEditor(t)
	panel := NewEntryPanel(e)

	t.Run("nothing selected", func(t *testing.T) {
		assert.Equal(t, []string{"Nothing selected"}, panel.Lines())
	})

	t.Run("route entry", func(t *testing.T) {
		panel.Show(e.FindByEntryID("menu_home").ID)
		lines := panel.Lines()
		assert.Equal(t, "id     menu_home", lines[0])
		assert.Contains(t, lines, "route  /home")
		assert.Contains(t, strings.Join(lines, "\n"), `"title": "Home"`)
	})

	t.Run("submenu entry shows presentation", func(t *testing.T) {
		panel.Show(e.FindByEntryID("menu_more").ID)
		assert.Contains(t, panel.Lines(), "style  fullscreen/grid")
	})

	t.Run("renders within size", func(t *testing.T) {
		panel.SetSize(40, 12)
		view := panel.View()
		require.NotEmpty(t, view)
		assert.Equal(t, 12, lipgloss.Height(view))
		assert.Contains(t, view, "Entry")
	})
}

func TestHighlightJSON(t *testing.T) {
	plain := func(s string) string {
		// Styles may be disabled without a terminal; either way the text
		// content must survive.
		return stripANSI(s)
	}

	assert.Equal(t, `  "title": "Home",`, plain(HighlightJSON(`  "title": "Home",`)))
	assert.Equal(t, `  "n": -1.5e3,`, plain(HighlightJSON(`  "n": -1.5e3,`)))
	assert.Equal(t, `  "ok": true, "x": null`, plain(HighlightJSON(`  "ok": true, "x": null`)))
	assert.Equal(t, `  "esc": "a\"b"`, plain(HighlightJSON(`  "esc": "a\"b"`)))
	assert.Equal(t, "", HighlightJSON(""))
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
