package core

import "reflect"

// Snapshot is the comparable form of a tree: its flattened entries. Node
// handles are not part of it, so two builds of the same data compare equal.
type Snapshot struct {
	entries []MenuEntry
}

// TakeSnapshot flattens t into a snapshot.
func TakeSnapshot(t Tree) Snapshot {
	return Snapshot{entries: Flatten(t)}
}

// SnapshotOf wraps already flattened entries.
func SnapshotOf(entries []MenuEntry) Snapshot {
	return Snapshot{entries: CloneEntries(entries)}
}

// Entries returns a copy of the snapshot's entries.
func (s Snapshot) Entries() []MenuEntry {
	return CloneEntries(s.entries)
}

// Equal compares two snapshots structurally, preserving order.
func (s Snapshot) Equal(other Snapshot) bool {
	return EntriesEqual(s.entries, other.entries)
}

// HasChanges reports whether t differs from the reference snapshot.
func HasChanges(t Tree, reference Snapshot) bool {
	return !TakeSnapshot(t).Equal(reference)
}

// EntriesEqual compares entry lists field by field. Nil and empty lists are
// equal.
func EntriesEqual(a, b []MenuEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !entryEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func entryEqual(a, b MenuEntry) bool {
	if a.ID != b.ID || a.Title != b.Title || a.Icon != b.Icon {
		return false
	}
	if a.Type != b.Type || a.SubmenuStyle != b.SubmenuStyle || a.SubmenuLayout != b.SubmenuLayout {
		return false
	}
	return targetEqual(a.NavigationTarget, b.NavigationTarget) &&
		submenuEqual(a.Submenu, b.Submenu)
}

func submenuEqual(a, b *Submenu) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Style == b.Style &&
		a.Layout == b.Layout &&
		EntriesEqual(a.Items, b.Items)
}

func targetEqual(a, b *NavigationTarget) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Route != b.Route || a.URL != b.URL {
		return false
	}
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for k, av := range a.Arguments {
		bv, ok := b.Arguments[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
