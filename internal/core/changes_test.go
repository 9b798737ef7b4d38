package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasChanges(t *testing.T) {
	t.Run("clean immediately after build", func(t *testing.T) {
		tree := Build(sampleEntries())
		assert.False(t, HasChanges(tree, TakeSnapshot(tree)))
	})

	t.Run("independent of node handles", func(t *testing.T) {
		first := Build(richEntries())
		second := Build(richEntries())
		second.Nodes[0].ID = "renamed"
		assert.False(t, HasChanges(second, TakeSnapshot(first)))
	})

	t.Run("dirty after structural change then clean after new snapshot", func(t *testing.T) {
		tree := Build(sampleEntries())
		ref := TakeSnapshot(tree)

		tree = Move(tree, handleOf(t, tree, "menu_a"), handleOf(t, tree, "menu_b"), PositionAfter)
		assert.True(t, HasChanges(tree, ref))

		ref = TakeSnapshot(tree)
		assert.False(t, HasChanges(tree, ref))
	})

	t.Run("moving back restores clean state", func(t *testing.T) {
		tree := Build(sampleEntries())
		ref := TakeSnapshot(tree)
		a := handleOf(t, tree, "menu_a")
		b := handleOf(t, tree, "menu_b")

		tree = Move(tree, a, b, PositionAfter)
		tree = Move(tree, a, b, PositionBefore)
		assert.False(t, HasChanges(tree, ref))
	})

	t.Run("detects payload edits", func(t *testing.T) {
		tree := Build(richEntries())
		ref := TakeSnapshot(tree)
		icon := "new"
		tree = UpdatePayload(tree, handleOf(t, tree, "menu_help"), EntryPatch{Icon: &icon})
		assert.True(t, HasChanges(tree, ref))
	})

	t.Run("detects argument edits", func(t *testing.T) {
		tree := Build(richEntries())
		ref := TakeSnapshot(tree)
		tree = UpdatePayload(tree, handleOf(t, tree, "menu_home"), EntryPatch{
			NavigationTarget: &NavigationTarget{Route: "/home", Arguments: map[string]any{"tab": "feed", "page": float64(3)}},
		})
		assert.True(t, HasChanges(tree, ref))
	})

	t.Run("no-op mutations stay clean", func(t *testing.T) {
		tree := Build(sampleEntries())
		ref := TakeSnapshot(tree)
		tree = Remove(tree, "node_404")
		tree = Move(tree, "node_0", "node_0", PositionInside)
		assert.False(t, HasChanges(tree, ref))
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("entries are copies", func(t *testing.T) {
		tree := Build(sampleEntries())
		snap := TakeSnapshot(tree)
		entries := snap.Entries()
		entries[0].Title = "changed"
		assert.Equal(t, "A", snap.Entries()[0].Title)
	})

	t.Run("snapshot of flattened entries equals tree snapshot", func(t *testing.T) {
		tree := Build(richEntries())
		assert.True(t, SnapshotOf(Flatten(tree)).Equal(TakeSnapshot(tree)))
	})
}

func TestEntriesEqual(t *testing.T) {
	t.Run("nil and empty lists are equal", func(t *testing.T) {
		assert.True(t, EntriesEqual(nil, []MenuEntry{}))
	})

	t.Run("order matters", func(t *testing.T) {
		a := []MenuEntry{{ID: "1"}, {ID: "2"}}
		b := []MenuEntry{{ID: "2"}, {ID: "1"}}
		assert.False(t, EntriesEqual(a, b))
	})

	t.Run("submenu presence matters", func(t *testing.T) {
		a := []MenuEntry{{ID: "1", Submenu: &Submenu{}}}
		b := []MenuEntry{{ID: "1"}}
		assert.False(t, EntriesEqual(a, b))
	})

	t.Run("nil and empty arguments are equal", func(t *testing.T) {
		a := []MenuEntry{{ID: "1", NavigationTarget: &NavigationTarget{Route: "/x"}}}
		b := []MenuEntry{{ID: "1", NavigationTarget: &NavigationTarget{Route: "/x", Arguments: map[string]any{}}}}
		assert.True(t, EntriesEqual(a, b))
	})

	t.Run("nested items compared", func(t *testing.T) {
		a := sampleEntries()
		b := sampleEntries()
		b[1].Submenu.Items[0].Title = "Other"
		require.False(t, EntriesEqual(a, b))
	})
}
