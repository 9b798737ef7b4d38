package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragState(t *testing.T) {
	t.Run("drop applies move and clears", func(t *testing.T) {
		tree := Build(sampleEntries())
		var drag DragState

		drag.Start(handleOf(t, tree, "menu_c"))
		drag.Over(handleOf(t, tree, "menu_a"), PositionBefore)
		assert.True(t, drag.Active())

		got := drag.Drop(tree)
		assert.Equal(t, []string{"menu_c", "menu_a", "menu_b"}, entryIDs(Flatten(got)))
		assert.False(t, drag.Active())
		assert.Empty(t, drag.Source())
	})

	t.Run("cancel clears without changes", func(t *testing.T) {
		var drag DragState
		drag.Start("node_0")
		drag.Over("node_1", PositionInside)
		drag.Cancel()

		assert.False(t, drag.Active())
		target, pos := drag.Target()
		assert.Empty(t, target)
		assert.Empty(t, pos)
	})

	t.Run("drop without target is a no-op", func(t *testing.T) {
		tree := Build(sampleEntries())
		var drag DragState
		drag.Start(handleOf(t, tree, "menu_a"))

		got := drag.Drop(tree)
		assert.False(t, HasChanges(got, TakeSnapshot(tree)))
		assert.False(t, drag.Active())
	})

	t.Run("over is ignored when idle", func(t *testing.T) {
		var drag DragState
		drag.Over("node_1", PositionAfter)
		target, _ := drag.Target()
		assert.Empty(t, target)
	})

	t.Run("drop onto self clears and leaves tree", func(t *testing.T) {
		tree := Build(sampleEntries())
		var drag DragState
		id := handleOf(t, tree, "menu_b")
		drag.Start(id)
		drag.Over(id, PositionInside)

		got := drag.Drop(tree)
		assert.False(t, HasChanges(got, TakeSnapshot(tree)))
		assert.False(t, drag.Active())
	})

	t.Run("start replaces previous gesture", func(t *testing.T) {
		var drag DragState
		drag.Start("node_0")
		drag.Over("node_1", PositionAfter)
		drag.Start("node_2")

		assert.Equal(t, NodeID("node_2"), drag.Source())
		target, _ := drag.Target()
		assert.Empty(t, target)
	})
}
