package components

import (
	"context"
	"testing"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/artpar/menucms/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore implements interfaces.MenuStore for testing.
type memoryStore struct {
	entries []core.MenuEntry
}

func (s *memoryStore) Load(ctx context.Context, screen string) ([]core.MenuEntry, error) {
	return core.CloneEntries(s.entries), nil
}

func (s *memoryStore) Save(ctx context.Context, screen string, entries []core.MenuEntry) error {
	s.entries = core.CloneEntries(entries)
	return nil
}

func (s *memoryStore) List(ctx context.Context) ([]interfaces.MenuMeta, error) { return nil, nil }

func (s *memoryStore) Delete(ctx context.Context, screen string) error { return nil }

func newTestEditor(t *testing.T) *app.Editor {
	t.Helper()
	store := &memoryStore{entries: []core.MenuEntry{
		{ID: "menu_home", Title: "Home", NavigationTarget: &core.NavigationTarget{Route: "/home"}},
		{ID: "menu_more", Title: "More", Submenu: &core.Submenu{Items: []core.MenuEntry{
			{ID: "menu_help", Title: "Help"},
		}}},
	}}
	e := app.New(app.WithStore(store))
	require.NoError(t, e.Load(context.Background()))
	return e
}

func newTestTree(t *testing.T) (*MenuTree, *app.Editor) {
	t.Helper()
	e := newTestEditor(t)
	tree := NewMenuTree(e)
	tree.Focus()
	tree.SetSize(60, 20)
	return tree, e
}

// Test helpers for key event simulation

func pressKey(tree *MenuTree, key rune) (*MenuTree, tea.Cmd) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
	updated, cmd := tree.Update(msg)
	return updated.(*MenuTree), cmd
}

func pressEscape(tree *MenuTree) *MenuTree {
	updated, _ := tree.Update(tea.KeyMsg{Type: tea.KeyEsc})
	return updated.(*MenuTree)
}

func noticeOf(t *testing.T, cmd tea.Cmd) NoticeMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(NoticeMsg)
	require.True(t, ok)
	return msg
}

func selectedEntry(t *testing.T, tree *MenuTree) string {
	t.Helper()
	row, ok := tree.Selected()
	require.True(t, ok)
	return row.EntryID
}

func TestMenuTree_Navigation(t *testing.T) {
	t.Run("starts on first row", func(t *testing.T) {
		tree, _ := newTestTree(t)
		assert.Equal(t, "menu_home", selectedEntry(t, tree))
		assert.Len(t, tree.Rows(), 3)
	})

	t.Run("j and k move within bounds", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'j')
		assert.Equal(t, "menu_help", selectedEntry(t, tree))

		tree, _ = pressKey(tree, 'k')
		assert.Equal(t, "menu_more", selectedEntry(t, tree))
	})

	t.Run("g and G jump", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree, _ = pressKey(tree, 'G')
		assert.Equal(t, 2, tree.Cursor())
		tree, _ = pressKey(tree, 'g')
		assert.Equal(t, 0, tree.Cursor())
	})

	t.Run("h collapses and l expands", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'h')
		assert.Len(t, tree.Rows(), 2)

		tree, _ = pressKey(tree, 'l')
		assert.Len(t, tree.Rows(), 3)
	})

	t.Run("h on a child jumps to parent", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree, _ = pressKey(tree, 'G')
		tree, _ = pressKey(tree, 'h')
		assert.Equal(t, "menu_more", selectedEntry(t, tree))
	})

	t.Run("ignores keys when unfocused", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree.Blur()
		tree, _ = pressKey(tree, 'j')
		assert.Equal(t, 0, tree.Cursor())
	})

	t.Run("focus messages", func(t *testing.T) {
		tree, _ := newTestTree(t)
		updated, _ := tree.Update(tui.BlurMsg{})
		assert.False(t, updated.Focused())
		updated, _ = updated.Update(tui.FocusMsg{})
		assert.True(t, updated.Focused())
	})
}

func TestMenuTree_Editing(t *testing.T) {
	t.Run("a on a leaf is rejected", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, cmd := pressKey(tree, 'a')

		n := noticeOf(t, cmd)
		assert.True(t, n.Error)
		assert.Equal(t, "items can only be added to a submenu", n.Text)
		assert.Len(t, e.Entries(), 2)
		assert.Equal(t, "menu_home", selectedEntry(t, tree))
		assert.False(t, e.Dirty())
	})

	t.Run("n appends at root", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, cmd := pressKey(tree, 'n')

		assert.Contains(t, noticeOf(t, cmd).Text, NewItemTitle)
		entries := e.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "menu_item_menu_baru", entries[2].ID)
		assert.Equal(t, "menu_item_menu_baru", selectedEntry(t, tree))
		assert.True(t, e.Dirty())
	})

	t.Run("a on a submenu prepends inside", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'a')

		more := e.FindByEntryID("menu_more")
		require.Len(t, more.Children, 2)
		assert.Equal(t, NewItemTitle, more.Children[0].Data.Title)
		assert.Equal(t, 1, more.Children[0].Level)
	})

	t.Run("A on a submenu nests a submenu", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		_, _ = pressKey(tree, 'A')
		n := e.FindByEntryID("menu_submenu_baru")
		require.NotNil(t, n)
		assert.True(t, n.IsSubmenu())
		assert.Equal(t, 1, n.Level)
	})

	t.Run("N adds a submenu at root", func(t *testing.T) {
		tree, e := newTestTree(t)
		_, _ = pressKey(tree, 'N')
		n := e.FindByEntryID("menu_submenu_baru")
		require.NotNil(t, n)
		assert.True(t, n.IsSubmenu())
		assert.Equal(t, 0, n.Level)
		assert.Equal(t, 3, len(e.Tree().Nodes))
	})

	t.Run("x deletes with children", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'x')
		assert.Equal(t, 1, e.Tree().Len())
		assert.Equal(t, "menu_home", selectedEntry(t, tree))
	})

	t.Run("c duplicates and selects the copy", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'c')

		entries := e.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "More (Copy)", entries[2].Title)
		row, _ := tree.Selected()
		assert.Equal(t, "More (Copy)", row.Title)
	})
}

func TestMenuTree_Move(t *testing.T) {
	t.Run("grab and drop inside", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'm')
		assert.True(t, e.Dragging())

		tree, _ = pressKey(tree, 'j')
		tree, cmd := pressKey(tree, 'i')
		assert.Equal(t, "Moved", noticeOf(t, cmd).Text)
		assert.False(t, e.Dragging())

		more := e.FindByEntryID("menu_more")
		require.Len(t, more.Children, 2)
		assert.Equal(t, "menu_home", more.Children[0].Data.ID)
		assert.Equal(t, "menu_home", selectedEntry(t, tree))
	})

	t.Run("a while grabbing drops after", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'm')
		tree, _ = pressKey(tree, 'j')
		_, _ = pressKey(tree, 'a')

		entries := e.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "menu_more", entries[0].ID)
		assert.Equal(t, "menu_home", entries[1].ID)
	})

	t.Run("drop into own subtree is refused", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'j')
		tree, _ = pressKey(tree, 'm')
		tree, _ = pressKey(tree, 'j')
		_, cmd := pressKey(tree, 'b')

		assert.True(t, noticeOf(t, cmd).Error)
		assert.False(t, e.Dragging())
		assert.False(t, e.Dirty())
	})

	t.Run("esc cancels", func(t *testing.T) {
		tree, e := newTestTree(t)
		tree, _ = pressKey(tree, 'm')
		tree, _ = pressKey(tree, 'j')
		pressEscape(tree)

		assert.False(t, e.Dragging())
		assert.False(t, e.Dirty())
	})
}

func TestMenuTree_View(t *testing.T) {
	t.Run("renders rows", func(t *testing.T) {
		tree, _ := newTestTree(t)
		view := tree.View()
		assert.Contains(t, view, "Home")
		assert.Contains(t, view, "More")
		assert.Contains(t, view, "Help")
		assert.Contains(t, view, "1 items")
	})

	t.Run("marks grab", func(t *testing.T) {
		tree, _ := newTestTree(t)
		tree, _ = pressKey(tree, 'm')
		assert.Contains(t, tree.View(), "(moving)")
	})

	t.Run("empty without size", func(t *testing.T) {
		tree := NewMenuTree(newTestEditor(t))
		assert.Empty(t, tree.View())
	})

	t.Run("empty menu hint", func(t *testing.T) {
		tree := NewMenuTree(app.New())
		tree.SetSize(60, 10)
		assert.Contains(t, tree.View(), "Empty menu")
	})
}
