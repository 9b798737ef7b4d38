package components

import "github.com/artpar/menucms/internal/core"

// This file contains pure functions for tree display.
// They take values and return values and never touch the editor.

// TreeRow is one visible line of the menu tree.
type TreeRow struct {
	ID         core.NodeID
	EntryID    string
	Title      string
	Icon       string
	Level      int
	Kind       core.NodeKind
	Target     core.TargetKind
	Children   int
	Expandable bool
	Expanded   bool
}

// VisibleRows flattens nodes into display rows in pre-order. Children of a
// collapsed submenu are skipped.
func VisibleRows(nodes []*core.Node, collapsed map[core.NodeID]bool) []TreeRow {
	var rows []TreeRow
	appendRows(&rows, nodes, collapsed)
	return rows
}

func appendRows(rows *[]TreeRow, nodes []*core.Node, collapsed map[core.NodeID]bool) {
	for _, n := range nodes {
		row := TreeRow{
			ID:         n.ID,
			EntryID:    n.Data.ID,
			Title:      n.Data.Title,
			Icon:       n.Data.Icon,
			Level:      n.Level,
			Kind:       n.Kind,
			Target:     n.Data.NavigationTarget.Kind(),
			Children:   len(n.Children),
			Expandable: n.IsSubmenu(),
		}
		row.Expanded = row.Expandable && !collapsed[n.ID]
		*rows = append(*rows, row)
		if row.Expanded {
			appendRows(rows, n.Children, collapsed)
		}
	}
}

// IndexOf returns the row index of id, or -1.
func IndexOf(rows []TreeRow, id core.NodeID) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// MoveCursor computes new cursor position within bounds.
func MoveCursor(cursor, delta, itemCount int) int {
	if itemCount == 0 {
		return 0
	}
	newCursor := cursor + delta
	if newCursor < 0 {
		return 0
	}
	if newCursor >= itemCount {
		return itemCount - 1
	}
	return newCursor
}

// AdjustOffset ensures cursor is visible within viewport.
func AdjustOffset(cursor, offset, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visibleHeight {
		return cursor - visibleHeight + 1
	}
	return offset
}

// SetCollapsed returns a copy of collapsed with id set to collapse.
// The input map is never modified.
func SetCollapsed(collapsed map[core.NodeID]bool, id core.NodeID, collapse bool) map[core.NodeID]bool {
	result := make(map[core.NodeID]bool, len(collapsed)+1)
	for k, v := range collapsed {
		if v {
			result[k] = v
		}
	}
	if collapse {
		result[id] = true
	} else {
		delete(result, id)
	}
	return result
}
