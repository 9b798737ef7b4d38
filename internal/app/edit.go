package app

import (
	"context"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/artpar/menucms/internal/metrics"
)

// AddItem inserts a new leaf titled title. An empty parent appends it to the
// root; otherwise it becomes the first child of parent. It returns the new
// node's handle.
func (e *Editor) AddItem(title string, parent core.NodeID) (core.NodeID, error) {
	return e.add("add_item", title, parent, false)
}

// AddSubmenu inserts a new, empty submenu the same way AddItem inserts a leaf.
func (e *Editor) AddSubmenu(title string, parent core.NodeID) (core.NodeID, error) {
	return e.add("add_submenu", title, parent, true)
}

func (e *Editor) add(op, title string, parent core.NodeID, branch bool) (core.NodeID, error) {
	n := core.NewEntryNode(e.tree, title, branch)
	next, err := core.Insert(e.tree, n, parent)
	if err != nil {
		e.recorder.Record(op, metrics.ResultRejected)
		e.logger.Debug("insert rejected", "parent", parent, "error", err)
		return "", err
	}

	e.apply(context.Background(), op, next)
	return n.ID, nil
}

// Remove deletes a node and its subtree.
func (e *Editor) Remove(id core.NodeID) bool {
	return e.apply(context.Background(), "remove", core.Remove(e.tree, id))
}

// Move relocates moved before, after or inside target.
func (e *Editor) Move(moved, target core.NodeID, pos core.Position) bool {
	return e.apply(context.Background(), "move", core.Move(e.tree, moved, target, pos))
}

// Duplicate places a renamed deep copy of the node right after it.
func (e *Editor) Duplicate(id core.NodeID) bool {
	return e.apply(context.Background(), "duplicate", core.Duplicate(e.tree, id))
}

// Update merges patch into the node's entry.
func (e *Editor) Update(id core.NodeID, patch core.EntryPatch) bool {
	return e.apply(context.Background(), "update", core.UpdatePayload(e.tree, id, patch))
}

// StartDrag begins a drag gesture on id.
func (e *Editor) StartDrag(id core.NodeID) {
	e.drag.Start(id)
}

// DragOver records the current drop target of the gesture.
func (e *Editor) DragOver(target core.NodeID, pos core.Position) {
	e.drag.Over(target, pos)
}

// Drop finishes the gesture, applying the move if the target is valid.
func (e *Editor) Drop() bool {
	if !e.drag.Active() {
		return false
	}
	return e.apply(context.Background(), "drop", e.drag.Drop(e.tree))
}

// CancelDrag abandons the gesture.
func (e *Editor) CancelDrag() {
	e.drag.Cancel()
}

// Dragging reports whether a drag gesture is in progress.
func (e *Editor) Dragging() bool {
	return e.drag.Active()
}

// DragSource returns the node being dragged.
func (e *Editor) DragSource() core.NodeID {
	return e.drag.Source()
}

// apply installs next as the working tree and reports whether it differs
// from the previous one. Post-mutation hooks see the new status; their
// errors are logged since the edit has already happened.
func (e *Editor) apply(ctx context.Context, op string, next core.Tree) bool {
	changed := core.HasChanges(next, core.TakeSnapshot(e.tree))
	e.tree = next

	if !changed {
		e.recorder.Record(op, metrics.ResultNoop)
		return false
	}

	e.recorder.Record(op, metrics.ResultOK)
	e.logger.Debug("menu edited", "op", op, "entries", e.tree.Len())

	if _, err := e.ExecuteHooks(ctx, interfaces.HookPostMutation, e.Status()); err != nil {
		e.logger.Warn("post-mutation hook failed", "op", op, "error", err)
	}
	return true
}
