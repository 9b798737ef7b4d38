package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, format Format) *MenuStore {
	t.Helper()
	store, err := NewMenuStore(t.TempDir(), format)
	require.NoError(t, err)
	return store
}

func testEntries() []core.MenuEntry {
	return []core.MenuEntry{
		{
			ID:    "menu_home",
			Title: "Home",
			Icon:  "home",
			NavigationTarget: &core.NavigationTarget{
				Route:     "/home",
				Arguments: map[string]any{"tab": "feed"},
			},
		},
		{
			ID:    "menu_more",
			Title: "More",
			Submenu: &core.Submenu{Style: "sheet", Layout: "list", Items: []core.MenuEntry{
				{ID: "menu_help", Title: "Help", NavigationTarget: &core.NavigationTarget{URL: "https://example.com/help"}},
			}},
		},
	}
}

func TestNewMenuStore(t *testing.T) {
	t.Run("creates menus directory if not exists", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "menus")

		_, err := NewMenuStore(dir, FormatYAML)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("defaults to yaml", func(t *testing.T) {
		store, err := NewMenuStore(t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, store.format)
	})
}

func TestMenuStore_SaveLoad(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run("round trips "+string(format), func(t *testing.T) {
			store := newTestStore(t, format)
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "main", testEntries()))

			_, err := os.Stat(store.menuPath("main", format))
			require.NoError(t, err)

			loaded, err := store.Load(ctx, "main")
			require.NoError(t, err)
			assert.True(t, core.EntriesEqual(testEntries(), loaded))
		})
	}

	t.Run("missing screen loads empty", func(t *testing.T) {
		store := newTestStore(t, FormatYAML)
		loaded, err := store.Load(context.Background(), "nothing")
		require.NoError(t, err)
		assert.NotNil(t, loaded)
		assert.Empty(t, loaded)
	})

	t.Run("overwrites previous save", func(t *testing.T) {
		store := newTestStore(t, FormatYAML)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "main", testEntries()))
		require.NoError(t, store.Save(ctx, "main", testEntries()[:1]))

		loaded, err := store.Load(ctx, "main")
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("switching format removes old document", func(t *testing.T) {
		dir := t.TempDir()
		ctx := context.Background()

		yamlStore, err := NewMenuStore(dir, FormatYAML)
		require.NoError(t, err)
		require.NoError(t, yamlStore.Save(ctx, "main", testEntries()))

		jsonStore, err := NewMenuStore(dir, FormatJSON)
		require.NoError(t, err)
		loaded, err := jsonStore.Load(ctx, "main")
		require.NoError(t, err)
		assert.Len(t, loaded, 2)

		require.NoError(t, jsonStore.Save(ctx, "main", loaded))
		_, err = os.Stat(filepath.Join(dir, "main.yaml"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects path-like screen names", func(t *testing.T) {
		store := newTestStore(t, FormatYAML)
		ctx := context.Background()

		for _, screen := range []string{"", "..", "a/b", `a\b`} {
			err := store.Save(ctx, screen, testEntries())
			assert.ErrorIs(t, err, interfaces.ErrInvalidScreen, screen)
			_, err = store.Load(ctx, screen)
			assert.ErrorIs(t, err, interfaces.ErrInvalidScreen, screen)
		}
	})

	t.Run("reports corrupt documents", func(t *testing.T) {
		store := newTestStore(t, FormatJSON)
		require.NoError(t, os.WriteFile(store.menuPath("main", FormatJSON), []byte("{not json"), 0644))

		_, err := store.Load(context.Background(), "main")
		assert.Error(t, err)
	})
}

func TestMenuStore_List(t *testing.T) {
	store := newTestStore(t, FormatYAML)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "main", testEntries()))
	require.NoError(t, store.Save(ctx, "profile", testEntries()[:1]))
	require.NoError(t, os.WriteFile(filepath.Join(store.basePath, "notes.txt"), []byte("x"), 0644))

	menus, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 2)

	counts := map[string]int{}
	for _, m := range menus {
		counts[m.Screen] = m.EntryCount
		assert.False(t, m.UpdatedAt.IsZero())
	}
	assert.Equal(t, 3, counts["main"])
	assert.Equal(t, 1, counts["profile"])
}

func TestMenuStore_Delete(t *testing.T) {
	store := newTestStore(t, FormatYAML)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "main", testEntries()))
	require.NoError(t, store.Delete(ctx, "main"))

	loaded, err := store.Load(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, loaded)

	assert.Error(t, store.Delete(ctx, "main"))
}

func TestReadEntries(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads bare json list", func(t *testing.T) {
		path := filepath.Join(dir, "bare.json")
		content := `[{"id":"menu_a","title":"A"},{"title":"B","submenu":{"items":[{"id":"menu_c","title":"C"}]}}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		entries, err := ReadEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Empty(t, entries[1].ID)
		assert.Equal(t, "menu_c", entries[1].Submenu.Items[0].ID)
	})

	t.Run("reads bare yaml list", func(t *testing.T) {
		path := filepath.Join(dir, "bare.yaml")
		content := "- id: menu_a\n  title: A\n  navigationTarget:\n    route: /a\n    arguments:\n      id: 7\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		entries, err := ReadEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/a", entries[0].NavigationTarget.Route)
		assert.Equal(t, 7, entries[0].NavigationTarget.Arguments["id"])
	})

	t.Run("writes and reads back", func(t *testing.T) {
		for _, format := range []Format{FormatYAML, FormatJSON} {
			data, err := WriteEntries(testEntries(), format)
			require.NoError(t, err)

			path := filepath.Join(dir, "out."+string(format))
			require.NoError(t, os.WriteFile(path, data, 0644))

			entries, err := ReadEntries(path)
			require.NoError(t, err)
			assert.True(t, core.EntriesEqual(testEntries(), entries))
		}
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
