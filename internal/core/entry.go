package core

// Submenu presentation defaults applied when a submenu block has to be
// synthesized.
const (
	DefaultSubmenuStyle  = "fullscreen"
	DefaultSubmenuLayout = "grid"

	legacyTypeSubmenu = "submenu"
)

// MenuEntry is the persisted form of a menu item. An entry carrying a Submenu
// is a branch; any other entry is a leaf.
type MenuEntry struct {
	ID               string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title            string            `json:"title" yaml:"title"`
	Icon             string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	NavigationTarget *NavigationTarget `json:"navigationTarget,omitempty" yaml:"navigationTarget,omitempty"`
	Submenu          *Submenu          `json:"submenu,omitempty" yaml:"submenu,omitempty"`

	// Fields written by older versions of the console before the submenu
	// block existed. They are kept so documents round-trip unchanged.
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	SubmenuStyle  string `json:"submenuStyle,omitempty" yaml:"submenuStyle,omitempty"`
	SubmenuLayout string `json:"submenuLayout,omitempty" yaml:"submenuLayout,omitempty"`
}

// Submenu holds branch presentation metadata and the ordered children.
type Submenu struct {
	Style  string      `json:"style,omitempty" yaml:"style,omitempty"`
	Layout string      `json:"layout,omitempty" yaml:"layout,omitempty"`
	Items  []MenuEntry `json:"items,omitempty" yaml:"items,omitempty"`
}

// EffectiveStyle returns the style, falling back to the default presentation.
func (s *Submenu) EffectiveStyle() string {
	if s == nil || s.Style == "" {
		return DefaultSubmenuStyle
	}
	return s.Style
}

// EffectiveLayout returns the layout, falling back to the default grid.
func (s *Submenu) EffectiveLayout() string {
	if s == nil || s.Layout == "" {
		return DefaultSubmenuLayout
	}
	return s.Layout
}

// TargetKind identifies which navigation variant a target carries.
type TargetKind string

const (
	TargetNone  TargetKind = "none"
	TargetRoute TargetKind = "route"
	TargetURL   TargetKind = "url"
)

// NavigationTarget is either an internal route with typed arguments or an
// external URL. The editor treats it as opaque and only round-trips it.
type NavigationTarget struct {
	Route     string         `json:"route,omitempty" yaml:"route,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	URL       string         `json:"url,omitempty" yaml:"url,omitempty"`
}

// Kind reports the variant of the target. A route wins over a URL.
func (n *NavigationTarget) Kind() TargetKind {
	switch {
	case n == nil:
		return TargetNone
	case n.Route != "":
		return TargetRoute
	case n.URL != "":
		return TargetURL
	default:
		return TargetNone
	}
}

// IsBranch reports whether the entry carries a submenu block.
func (e MenuEntry) IsBranch() bool {
	return e.Submenu != nil
}

// impliesSubmenu reports whether legacy fields mark the entry as a branch.
func (e MenuEntry) impliesSubmenu() bool {
	return e.Type == legacyTypeSubmenu || e.SubmenuStyle != "" || e.SubmenuLayout != ""
}

// repairSubmenu synthesizes a submenu block from legacy fields when they
// mark the entry as a branch but the block is missing.
func (e *MenuEntry) repairSubmenu() {
	if e.Submenu != nil || !e.impliesSubmenu() {
		return
	}
	e.Submenu = &Submenu{
		Style:  e.SubmenuStyle,
		Layout: e.SubmenuLayout,
	}
	if e.Submenu.Style == "" {
		e.Submenu.Style = DefaultSubmenuStyle
	}
	if e.Submenu.Layout == "" {
		e.Submenu.Layout = DefaultSubmenuLayout
	}
}

// Clone returns a deep copy of the entry, including nested items.
func (e MenuEntry) Clone() MenuEntry {
	clone := e
	clone.NavigationTarget = e.NavigationTarget.Clone()
	if e.Submenu != nil {
		sub := *e.Submenu
		sub.Items = CloneEntries(e.Submenu.Items)
		clone.Submenu = &sub
	}
	return clone
}

// Clone returns a deep copy of the target.
func (n *NavigationTarget) Clone() *NavigationTarget {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Arguments != nil {
		clone.Arguments = make(map[string]any, len(n.Arguments))
		for k, v := range n.Arguments {
			clone.Arguments[k] = cloneValue(v)
		}
	}
	return &clone
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// CloneEntries deep-copies a list of entries. A nil list stays nil.
func CloneEntries(entries []MenuEntry) []MenuEntry {
	if entries == nil {
		return nil
	}
	result := make([]MenuEntry, len(entries))
	for i, e := range entries {
		result[i] = e.Clone()
	}
	return result
}
