package harness

import (
	"strings"
	"testing"
	"time"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// settleTimeout bounds how long a command may run before the session treats
// it as a timer and moves on.
const settleTimeout = 50 * time.Millisecond

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session. The model is driven
// directly; no terminal is involved.
type TUISession struct {
	runner *TUIRunner
	model  *views.EditorView
	editor *app.Editor
	t      *testing.T
	quit   bool
}

// Start starts a new TUI session on a 120x40 terminal.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.StartWithSize(t, 120, 40)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	t.Helper()

	editor := r.harness.OpenEditor(t)
	model := views.NewEditorView(editor)
	model.Update(tea.WindowSizeMsg{Width: width, Height: height})

	return &TUISession{
		runner: r,
		model:  model,
		editor: editor,
		t:      t,
	}
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	s.update(parseKeyMsg(key))
	return s
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

func (s *TUISession) update(msg tea.Msg) {
	if _, ok := msg.(tea.QuitMsg); ok {
		s.quit = true
		return
	}
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.EditorView)
	s.executeCmd(cmd)
}

// executeCmd runs cmd and feeds its message back into Update. Commands that
// do not return within settleTimeout, such as notification timers, are left
// behind.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				s.executeCmd(c)
			}
			return
		}
		if msg != nil {
			s.update(msg)
		}
	case <-time.After(settleTimeout):
	}
}

// WaitForOutput waits for specific text in output.
func (s *TUISession) WaitForOutput(text string) error {
	timeout := s.runner.harness.timeout
	deadline := time.Now().Add(timeout)
	pollInterval := 100 * time.Millisecond

	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(pollInterval)
	}

	return &TimeoutError{text: text, timeout: timeout}
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Quitting reports whether the model asked the program to exit.
func (s *TUISession) Quitting() bool {
	return s.quit
}

// Model returns the underlying EditorView for direct assertions.
func (s *TUISession) Model() *views.EditorView {
	return s.model
}

// Editor returns the editor session behind the view.
func (s *TUISession) Editor() *app.Editor {
	return s.editor
}

// SelectedTitle returns the title of the row under the cursor.
func (s *TUISession) SelectedTitle() string {
	row, ok := s.model.Tree().Selected()
	if !ok {
		return ""
	}
	return row.Title
}

// TimeoutError represents a timeout waiting for output.
type TimeoutError struct {
	text    string
	timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + e.timeout.String() + " waiting for: " + e.text
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
