package core

// Normalize prepares externally loaded entries for editing. It returns a deep
// copy in which every entry has a unique id and every legacy branch has a
// submenu block. The complete id set is gathered before any id is minted so
// that siblings missing ids never receive the same one. An id repeated later
// in the document is re-minted for the later occurrence.
func Normalize(entries []MenuEntry) []MenuEntry {
	result := CloneEntries(entries)
	ids := CollectIDs(result)
	normalizeEntries(result, ids, make(IDSet))
	return result
}

func normalizeEntries(entries []MenuEntry, ids, seen IDSet) {
	for i := range entries {
		e := &entries[i]
		if e.ID == "" || seen.Has(e.ID) {
			e.ID = GenerateID(e.Title, ids)
			ids.Add(e.ID)
		}
		seen.Add(e.ID)
		e.repairSubmenu()
		if e.Submenu != nil {
			normalizeEntries(e.Submenu.Items, ids, seen)
		}
	}
}
