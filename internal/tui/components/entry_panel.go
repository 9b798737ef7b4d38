package components

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/tui"
	"github.com/charmbracelet/lipgloss"
)

// EntryPanel shows the entry under the tree cursor: a short summary and its
// persisted form. It is read-only.
type EntryPanel struct {
	width  int
	height int
	editor *app.Editor
	node   core.NodeID
}

// NewEntryPanel creates a panel over editor.
func NewEntryPanel(editor *app.Editor) *EntryPanel {
	return &EntryPanel{editor: editor}
}

// Show selects the node to display.
func (p *EntryPanel) Show(id core.NodeID) {
	p.node = id
}

// SetSize sets dimensions.
func (p *EntryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Lines returns the unstyled content of the panel.
func (p *EntryPanel) Lines() []string {
	summary, doc := p.content()
	if len(doc) == 0 {
		return summary
	}
	return append(append(summary, ""), doc...)
}

// content returns the summary lines and the indented JSON of the entry.
func (p *EntryPanel) content() ([]string, []string) {
	n := p.editor.Find(p.node)
	if n == nil {
		return []string{"Nothing selected"}, nil
	}

	summary := []string{
		fmt.Sprintf("id     %s", n.Data.ID),
		fmt.Sprintf("kind   %s", n.Kind),
		fmt.Sprintf("level  %d", n.Level),
	}
	switch t := n.Data.NavigationTarget; t.Kind() {
	case core.TargetRoute:
		summary = append(summary, fmt.Sprintf("route  %s", t.Route))
	case core.TargetURL:
		summary = append(summary, fmt.Sprintf("url    %s", t.URL))
	}
	if n.IsSubmenu() {
		summary = append(summary, fmt.Sprintf("style  %s/%s", n.Data.Submenu.EffectiveStyle(), n.Data.Submenu.EffectiveLayout()))
	}

	data, err := json.MarshalIndent(n.Data, "", "  ")
	if err != nil {
		return summary, nil
	}
	return summary, strings.Split(string(data), "\n")
}

// View renders the panel.
func (p *EntryPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	innerWidth := p.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	height := p.height - 3
	if height < 1 {
		height = 1
	}

	var body []string
	add := func(line string, highlight bool) {
		if len(body) >= height {
			return
		}
		line = tui.Truncate(line, innerWidth)
		if highlight {
			line = HighlightJSON(line)
		}
		body = append(body, tui.PadRight(line, innerWidth))
	}

	summary, doc := p.content()
	for _, line := range summary {
		add(line, false)
	}
	if len(doc) > 0 {
		add("", false)
	}
	for _, line := range doc {
		add(line, true)
	}
	for len(body) < height {
		body = append(body, strings.Repeat(" ", innerWidth))
	}

	title := tui.RenderTitle(" Entry", innerWidth, false)
	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(body, "\n"))
	return tui.RenderBorder(content, false)
}
