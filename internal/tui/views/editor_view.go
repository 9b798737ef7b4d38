package views

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/tui"
	"github.com/artpar/menucms/internal/tui/components"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// notifyDuration is how long a notification stays in the status line.
var notifyDuration = 2 * time.Second

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

// EditorView is the top-level model of the menu editor. It lays out the
// tree next to the entry panel above a status line that carries the
// unsaved-changes marker and notifications.
type EditorView struct {
	width        int
	height       int
	editor       *app.Editor
	tree         *components.MenuTree
	panel        *components.EntryPanel
	showHelp     bool
	notification string
	notifyError  bool
	confirmQuit  bool

	// copy writes to the system clipboard; replaced in tests.
	copy func(string) error
}

// NewEditorView creates the editor view. The editor should already be
// loaded.
func NewEditorView(editor *app.Editor) *EditorView {
	v := &EditorView{
		editor: editor,
		tree:   components.NewMenuTree(editor),
		panel:  components.NewEntryPanel(editor),
		copy:   clipboard.WriteAll,
	}
	v.tree.Focus()
	v.syncPanel()
	return v
}

// Init initializes the view.
func (v *EditorView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *EditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc || keyMsg.String() == "?" || keyMsg.String() == "q" {
				v.showHelp = false
			}
		}
		return v, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.updatePaneSizes()
		return v, nil

	case tea.KeyMsg:
		model, cmd := v.handleKeyMsg(msg)
		v.syncPanel()
		return model, cmd

	case components.NoticeMsg:
		return v, v.notify(msg.Text, msg.Error)

	case clearNotificationMsg:
		v.notification = ""
		v.notifyError = false
		return v, nil
	}

	return v, nil
}

func (v *EditorView) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	// Grab mode owns every key until the node is dropped or released.
	if v.editor.Dragging() {
		_, cmd := v.tree.Update(msg)
		return v, cmd
	}

	key := msg.String()
	if key != "q" {
		v.confirmQuit = false
	}

	switch key {
	case "q":
		if v.editor.Dirty() && !v.confirmQuit {
			v.confirmQuit = true
			return v, v.notify("Unsaved changes. Press q again to quit, s to save.", true)
		}
		return v, tea.Quit
	case "?":
		v.showHelp = true
		return v, nil
	case "s", "ctrl+s":
		return v, v.save()
	case "y":
		return v, v.yank()
	case "r":
		return v, v.reload()
	}

	_, cmd := v.tree.Update(msg)
	return v, cmd
}

// minSplitWidth is the narrowest terminal that still shows the entry panel.
const minSplitWidth = 80

func (v *EditorView) updatePaneSizes() {
	height := v.height - 1
	if v.width < minSplitWidth {
		v.tree.SetSize(v.width, height)
		v.panel.SetSize(0, 0)
		return
	}
	treeWidth := v.width * 55 / 100
	v.tree.SetSize(treeWidth, height)
	v.panel.SetSize(v.width-treeWidth, height)
}

func (v *EditorView) syncPanel() {
	if row, ok := v.tree.Selected(); ok {
		v.panel.Show(row.ID)
	} else {
		v.panel.Show("")
	}
}

func (v *EditorView) save() tea.Cmd {
	if !v.editor.Dirty() {
		return v.notify("No changes to save", false)
	}
	if err := v.editor.Save(context.Background()); err != nil {
		return v.notify("Save failed: "+err.Error(), true)
	}
	v.tree.Refresh()
	return v.notify("Saved", false)
}

func (v *EditorView) reload() tea.Cmd {
	if err := v.editor.Load(context.Background()); err != nil {
		return v.notify("Reload failed: "+err.Error(), true)
	}
	v.tree.Refresh()
	return v.notify("Reloaded", false)
}

func (v *EditorView) yank() tea.Cmd {
	data, err := json.MarshalIndent(v.editor.Entries(), "", "  ")
	if err != nil {
		return v.notify("✗ Copy failed", true)
	}
	if err := v.copy(string(data)); err != nil {
		return v.notify("✗ Copy failed", true)
	}

	size := len(data)
	if size > 1024 {
		return v.notify(fmt.Sprintf("✓ Copied %.1fKB", float64(size)/1024), false)
	}
	return v.notify(fmt.Sprintf("✓ Copied %dB", size), false)
}

func (v *EditorView) notify(text string, isErr bool) tea.Cmd {
	v.notification = text
	v.notifyError = isErr
	return tea.Tick(notifyDuration, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

// View renders the view.
func (v *EditorView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	if v.showHelp {
		return v.renderHelp()
	}
	main := v.tree.View()
	if panel := v.panel.View(); panel != "" {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, panel)
	}
	return main + "\n" + v.renderStatusBar()
}

func (v *EditorView) renderStatusBar() string {
	status := v.editor.Status()

	left := fmt.Sprintf(" %s · %d entries", status.Screen, status.Entries)
	if status.Dirty {
		left += " " + lipgloss.NewStyle().Foreground(tui.ColorWarning).Bold(true).Render("● unsaved")
	}

	right := "? help "
	if v.notification != "" {
		color := tui.ColorOK
		if v.notifyError {
			color = tui.ColorError
		}
		right = lipgloss.NewStyle().Foreground(color).Render(v.notification) + " "
	}

	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (v *EditorView) renderHelp() string {
	help := []string{
		"Navigation",
		"  j/k        move down/up",
		"  g/G        first/last",
		"  h/l        collapse/expand",
		"",
		"Editing",
		"  a/A        add item/submenu inside the selected submenu",
		"  n/N        add item/submenu at the end of the menu",
		"  x          delete with children",
		"  c          duplicate",
		"  m          move: then b/a/i to drop before/after/inside, esc cancels",
		"",
		"File",
		"  s          save",
		"  r          reload from disk",
		"  y          copy menu JSON",
		"  q          quit",
	}
	return tui.RenderBorder(tui.RenderTitle(" Help", 70, true)+"\n"+strings.Join(help, "\n"), true)
}

// Tree returns the tree component.
func (v *EditorView) Tree() *components.MenuTree {
	return v.tree
}

// Notification returns the current notification text.
func (v *EditorView) Notification() string {
	return v.notification
}
