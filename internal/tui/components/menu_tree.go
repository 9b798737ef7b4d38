package components

import (
	"fmt"
	"strings"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NewItemTitle is the title given to entries created from the tree.
const NewItemTitle = "Item Menu Baru"

// NewSubmenuTitle is the title given to submenus created from the tree.
const NewSubmenuTitle = "Submenu Baru"

// NoticeMsg asks the parent view to show a short notification.
type NoticeMsg struct {
	Text  string
	Error bool
}

func notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, Error: isErr} }
}

// MenuTree displays and edits the editor's menu tree.
//
// Keys in normal mode: j/k move, g/G jump, h/l collapse and expand, a adds
// an item and A a submenu under the selected submenu, n and N add them at the
// end of the menu, x deletes, c duplicates, m grabs the selected node. While a node is grabbed the cursor picks the drop target and b, a or
// i drop before, after or inside it; esc cancels.
type MenuTree struct {
	title     string
	focused   bool
	width     int
	height    int
	cursor    int
	offset    int
	editor    *app.Editor
	rows      []TreeRow
	collapsed map[core.NodeID]bool
}

// NewMenuTree creates a tree component over editor.
func NewMenuTree(editor *app.Editor) *MenuTree {
	m := &MenuTree{
		title:     "Menu",
		editor:    editor,
		collapsed: make(map[core.NodeID]bool),
	}
	m.Refresh()
	return m
}

// Init initializes the component.
func (m *MenuTree) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *MenuTree) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tui.FocusMsg:
		m.focused = true
	case tui.BlurMsg:
		m.focused = false
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.editor.Dragging() {
			return m.handleGrabKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *MenuTree) handleKey(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.moveCursor(-len(m.rows))
	case "G", "end":
		m.moveCursor(len(m.rows))
	case "l", "right", "enter":
		if row, ok := m.Selected(); ok && row.Expandable {
			m.collapsed = SetCollapsed(m.collapsed, row.ID, false)
			m.Refresh()
		}
	case "h", "left":
		m.collapseOrParent()
	case "a":
		return m, m.add(NewItemTitle, false, true)
	case "A":
		return m, m.add(NewSubmenuTitle, true, true)
	case "n":
		return m, m.add(NewItemTitle, false, false)
	case "N":
		return m, m.add(NewSubmenuTitle, true, false)
	case "x", "delete":
		if row, ok := m.Selected(); ok {
			m.editor.Remove(row.ID)
			m.Refresh()
			return m, notice(fmt.Sprintf("Deleted %q", row.Title), false)
		}
	case "c":
		if row, ok := m.Selected(); ok {
			m.editor.Duplicate(row.ID)
			m.Refresh()
			m.moveCursor(1 + m.hiddenBelow(row))
			return m, notice(fmt.Sprintf("Duplicated %q", row.Title), false)
		}
	case "m":
		if row, ok := m.Selected(); ok {
			m.editor.StartDrag(row.ID)
			return m, notice(fmt.Sprintf("Moving %q: b/a/i to drop, esc to cancel", row.Title), false)
		}
	}
	return m, nil
}

func (m *MenuTree) handleGrabKey(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "esc":
		m.editor.CancelDrag()
		return m, notice("Move cancelled", false)
	case "b":
		return m, m.drop(core.PositionBefore)
	case "a":
		return m, m.drop(core.PositionAfter)
	case "i":
		return m, m.drop(core.PositionInside)
	}
	return m, nil
}

// add creates an entry at the end of the menu, or as the first child of the
// selected row when nested is set and a row is selected. Adding under a leaf
// is rejected with an error notice.
func (m *MenuTree) add(title string, branch, nested bool) tea.Cmd {
	var parent core.NodeID
	if row, ok := m.Selected(); ok && nested {
		parent = row.ID
	}

	add := m.editor.AddItem
	if branch {
		add = m.editor.AddSubmenu
	}
	id, err := add(title, parent)
	if err != nil {
		return notice(err.Error(), true)
	}
	if parent != "" {
		m.collapsed = SetCollapsed(m.collapsed, parent, false)
	}

	m.Refresh()
	m.Select(id)
	return notice(fmt.Sprintf("Added %q", title), false)
}

func (m *MenuTree) drop(pos core.Position) tea.Cmd {
	source := m.editor.DragSource()
	row, ok := m.Selected()
	if !ok {
		m.editor.CancelDrag()
		return nil
	}

	m.editor.DragOver(row.ID, pos)
	moved := m.editor.Drop()
	if pos == core.PositionInside {
		m.collapsed = SetCollapsed(m.collapsed, row.ID, false)
	}
	m.Refresh()
	m.Select(source)

	if !moved {
		return notice("Cannot drop there", true)
	}
	return notice("Moved", false)
}

// collapseOrParent collapses an expanded submenu, otherwise moves the cursor
// to the parent row.
func (m *MenuTree) collapseOrParent() {
	row, ok := m.Selected()
	if !ok {
		return
	}
	if row.Expanded {
		m.collapsed = SetCollapsed(m.collapsed, row.ID, true)
		m.Refresh()
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].Level < row.Level {
			m.cursor = i
			m.offset = AdjustOffset(m.cursor, m.offset, m.visibleHeight())
			return
		}
	}
}

// hiddenBelow counts the rows shown beneath row that belong to its subtree.
func (m *MenuTree) hiddenBelow(row TreeRow) int {
	i := IndexOf(m.rows, row.ID)
	if i < 0 {
		return 0
	}
	n := 0
	for j := i + 1; j < len(m.rows) && m.rows[j].Level > row.Level; j++ {
		n++
	}
	return n
}

func (m *MenuTree) moveCursor(delta int) {
	m.cursor = MoveCursor(m.cursor, delta, len(m.rows))
	m.offset = AdjustOffset(m.cursor, m.offset, m.visibleHeight())
}

// Refresh rebuilds the rows from the editor, keeping the cursor on the same
// node when it still exists.
func (m *MenuTree) Refresh() {
	var current core.NodeID
	if row, ok := m.Selected(); ok {
		current = row.ID
	}

	m.rows = VisibleRows(m.editor.Tree().Nodes, m.collapsed)
	if i := IndexOf(m.rows, current); i >= 0 {
		m.cursor = i
	}
	m.moveCursor(0)
}

// Select moves the cursor to id if it is visible.
func (m *MenuTree) Select(id core.NodeID) {
	if i := IndexOf(m.rows, id); i >= 0 {
		m.cursor = i
		m.offset = AdjustOffset(m.cursor, m.offset, m.visibleHeight())
	}
}

// Selected returns the row under the cursor.
func (m *MenuTree) Selected() (TreeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return TreeRow{}, false
	}
	return m.rows[m.cursor], true
}

// Rows returns the visible rows.
func (m *MenuTree) Rows() []TreeRow {
	return m.rows
}

// Cursor returns the cursor position.
func (m *MenuTree) Cursor() int {
	return m.cursor
}

func (m *MenuTree) visibleHeight() int {
	h := m.height - 3 // border and title
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the component.
func (m *MenuTree) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	innerWidth := m.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	height := m.visibleHeight()

	title := m.title
	if m.editor.Dragging() {
		title += " (moving)"
	}
	parts := []string{tui.RenderTitle(" "+title, innerWidth, m.focused)}

	var lines []string
	if len(m.rows) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(tui.ColorMuted).
			Width(innerWidth).
			Align(lipgloss.Center).
			Render("Empty menu. Press a to add an item."))
	}
	for i := m.offset; i < len(m.rows) && len(lines) < height; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor, innerWidth))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	parts = append(parts, strings.Join(lines, "\n"))
	return tui.RenderBorder(strings.Join(parts, "\n"), m.focused)
}

func (m *MenuTree) renderRow(row TreeRow, selected bool, width int) string {
	indent := strings.Repeat("  ", row.Level)

	marker := "  "
	switch {
	case row.Expandable && row.Expanded:
		marker = "▼ "
	case row.Expandable:
		marker = "▶ "
	}

	label := row.Title
	if label == "" {
		label = "(untitled)"
	}

	var detail string
	switch {
	case row.Expandable:
		detail = fmt.Sprintf("%d items", row.Children)
	case row.Target == core.TargetRoute:
		detail = "route"
	case row.Target == core.TargetURL:
		detail = "url"
	}

	if row.ID == m.editor.DragSource() {
		label = "» " + label
	}

	line := tui.Truncate(indent+marker+label, width-len(detail)-1)
	if detail != "" {
		line = tui.PadRight(line, width-lipgloss.Width(detail)) +
			lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(detail)
	}
	line = tui.PadRight(line, width)

	style := lipgloss.NewStyle()
	if selected {
		if m.focused {
			style = style.Background(tui.ColorAccent).Foreground(tui.ColorBright)
		} else {
			style = style.Background(tui.ColorDim).Foreground(tui.ColorText)
		}
	}
	return style.Render(line)
}

// Title returns the component title.
func (m *MenuTree) Title() string {
	return m.title
}

// Focused returns true if focused.
func (m *MenuTree) Focused() bool {
	return m.focused
}

// Focus sets the component as focused.
func (m *MenuTree) Focus() {
	m.focused = true
}

// Blur removes focus.
func (m *MenuTree) Blur() {
	m.focused = false
}

// SetSize sets dimensions.
func (m *MenuTree) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.offset = AdjustOffset(m.cursor, m.offset, m.visibleHeight())
}
