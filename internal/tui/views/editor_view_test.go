package views

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/artpar/menucms/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	notifyDuration = time.Millisecond
}

type memoryStore struct {
	entries []core.MenuEntry
	saveErr error
}

func (s *memoryStore) Load(ctx context.Context, screen string) ([]core.MenuEntry, error) {
	return core.CloneEntries(s.entries), nil
}

func (s *memoryStore) Save(ctx context.Context, screen string, entries []core.MenuEntry) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = core.CloneEntries(entries)
	return nil
}

func (s *memoryStore) List(ctx context.Context) ([]interfaces.MenuMeta, error) { return nil, nil }

func (s *memoryStore) Delete(ctx context.Context, screen string) error { return nil }

func newTestView(t *testing.T) (*EditorView, *app.Editor, *memoryStore) {
	t.Helper()
	store := &memoryStore{entries: []core.MenuEntry{
		{ID: "menu_home", Title: "Home"},
		{ID: "menu_more", Title: "More", Submenu: &core.Submenu{Items: []core.MenuEntry{
			{ID: "menu_help", Title: "Help"},
		}}},
	}}
	e := app.New(app.WithStore(store))
	require.NoError(t, e.Load(context.Background()))

	v := NewEditorView(e)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return v, e, store
}

func press(v *EditorView, key rune) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	return cmd
}

// deliver runs cmd and feeds its message back, as the bubbletea runtime
// would, unless it is a timer.
func deliver(v *EditorView, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(components.NoticeMsg); ok {
		v.Update(msg)
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEditorView_Render(t *testing.T) {
	v, _, _ := newTestView(t)
	view := v.View()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "main · 3 entries")
	assert.NotContains(t, view, "unsaved")
	assert.Contains(t, view, "menu_home")

	t.Run("loading before size", func(t *testing.T) {
		_, e, _ := newTestView(t)
		assert.Equal(t, "Loading...", NewEditorView(e).View())
	})
}

func TestEditorView_DirtyAndSave(t *testing.T) {
	v, e, store := newTestView(t)

	deliver(v, press(v, 'n'))
	assert.True(t, e.Dirty())
	assert.Contains(t, v.View(), "unsaved")
	assert.Contains(t, v.Notification(), "Item Menu Baru")

	press(v, 's')
	assert.False(t, e.Dirty())
	assert.Equal(t, "Saved", v.Notification())
	assert.Len(t, store.entries, 3)
	assert.NotContains(t, v.View(), "unsaved")

	t.Run("nothing to save", func(t *testing.T) {
		press(v, 's')
		assert.Equal(t, "No changes to save", v.Notification())
	})

	t.Run("save failure keeps marker", func(t *testing.T) {
		press(v, 'x')
		store.saveErr = errors.New("disk full")
		press(v, 's')
		assert.Contains(t, v.Notification(), "disk full")
		assert.True(t, e.Dirty())
	})
}

func TestEditorView_Quit(t *testing.T) {
	t.Run("clean quits immediately", func(t *testing.T) {
		v, _, _ := newTestView(t)
		assert.True(t, isQuit(press(v, 'q')))
	})

	t.Run("dirty asks for confirmation", func(t *testing.T) {
		v, _, _ := newTestView(t)
		press(v, 'x')
		assert.False(t, isQuit(press(v, 'q')))
		assert.Contains(t, v.Notification(), "Unsaved changes")
		assert.True(t, isQuit(press(v, 'q')))
	})

	t.Run("another key resets confirmation", func(t *testing.T) {
		v, _, _ := newTestView(t)
		press(v, 'x')
		press(v, 'q')
		press(v, 'j')
		assert.False(t, isQuit(press(v, 'q')))
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		v, _, _ := newTestView(t)
		press(v, 'x')
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, isQuit(cmd))
	})
}

func TestEditorView_Yank(t *testing.T) {
	v, e, _ := newTestView(t)
	var copied string
	v.copy = func(s string) error {
		copied = s
		return nil
	}

	press(v, 'y')
	var entries []core.MenuEntry
	require.NoError(t, json.Unmarshal([]byte(copied), &entries))
	assert.True(t, core.EntriesEqual(e.Entries(), entries))
	assert.Contains(t, v.Notification(), "Copied")

	v.copy = func(string) error { return errors.New("no clipboard") }
	press(v, 'y')
	assert.Equal(t, "✗ Copy failed", v.Notification())
}

func TestEditorView_GrabModeOwnsKeys(t *testing.T) {
	v, e, _ := newTestView(t)
	press(v, 'm')
	require.True(t, e.Dragging())

	// q and s are not global while a node is grabbed.
	assert.False(t, isQuit(press(v, 'q')))
	press(v, 'j')
	deliver(v, press(v, 'a'))

	assert.False(t, e.Dragging())
	assert.Equal(t, "menu_more", e.Entries()[0].ID)
	assert.Equal(t, "Moved", v.Notification())
}

func TestEditorView_AddUnderLeafShowsError(t *testing.T) {
	v, e, _ := newTestView(t)
	deliver(v, press(v, 'a'))

	assert.False(t, e.Dirty())
	assert.Contains(t, v.Notification(), "items can only be added to a submenu")
}

func TestEditorView_Reload(t *testing.T) {
	v, e, _ := newTestView(t)
	press(v, 'x')
	require.True(t, e.Dirty())

	press(v, 'r')
	assert.False(t, e.Dirty())
	assert.Equal(t, 3, e.Tree().Len())
}

func TestEditorView_Help(t *testing.T) {
	v, _, _ := newTestView(t)
	press(v, '?')
	assert.Contains(t, v.View(), "add submenu")

	// Keys are swallowed while help is shown.
	press(v, 'x')
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Home")
	assert.Contains(t, v.View(), "More")
}
