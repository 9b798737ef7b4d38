package core

import (
	"math"
	"strconv"
	"strings"
)

// IDPrefix starts every generated menu identifier.
const IDPrefix = "menu_"

// IDSet is a set of persisted menu identifiers.
type IDSet map[string]struct{}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// GenerateID derives a unique identifier from a display title. The title is
// lowercased, stripped to [a-z0-9 ] and its whitespace runs are joined with
// underscores. When the resulting candidate is already used as a prefix, a
// numeric suffix one above the highest existing suffix is appended.
func GenerateID(title string, existing IDSet) string {
	base := IDPrefix + slugify(title)

	taken := false
	for id := range existing {
		if strings.HasPrefix(id, base) {
			taken = true
			break
		}
	}
	if !taken {
		return base
	}

	highest := 0
	for id := range existing {
		if !strings.HasPrefix(id, base) {
			continue
		}
		// a suffix at MaxInt has no successor
		if n, ok := numericSuffix(id, base); ok && n > highest && n < math.MaxInt {
			highest = n
		}
	}
	return base + "_" + strconv.Itoa(highest+1)
}

// numericSuffix parses N from ids shaped base_N.
func numericSuffix(id, base string) (int, bool) {
	rest, ok := strings.CutPrefix(id, base+"_")
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// CollectIDs gathers every non-empty persisted id in entries and their
// nested items.
func CollectIDs(entries []MenuEntry) IDSet {
	ids := make(IDSet)
	collectIDs(entries, ids)
	return ids
}

func collectIDs(entries []MenuEntry, ids IDSet) {
	for _, e := range entries {
		if e.ID != "" {
			ids.Add(e.ID)
		}
		if e.Submenu != nil {
			collectIDs(e.Submenu.Items, ids)
		}
	}
}
