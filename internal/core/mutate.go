package core

// Position says where a moved node lands relative to its drop target.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionInside Position = "inside"
)

// Valid reports whether p is one of the known drop positions.
func (p Position) Valid() bool {
	switch p {
	case PositionBefore, PositionAfter, PositionInside:
		return true
	}
	return false
}

// DuplicateSuffix is appended to every cloned title.
const DuplicateSuffix = " (Copy)"

// Every mutation below works on a clone of its input and returns the clone.
// The input tree is never modified, so callers must rebind to the result.

// NewEntryNode creates a node for a new entry titled title, minting its id
// against every id already used in t. A branch starts with an empty submenu
// in the default presentation.
func NewEntryNode(t Tree, title string, branch bool) *Node {
	entry := MenuEntry{
		ID:    GenerateID(title, t.IDs()),
		Title: title,
	}
	if branch {
		entry.Submenu = &Submenu{
			Style:  DefaultSubmenuStyle,
			Layout: DefaultSubmenuLayout,
		}
	}
	return NewNode(entry)
}

// Insert adds n to the tree. With an empty parent the node is appended to the
// root; otherwise it becomes the first child of parent, which must be a
// submenu. Rejections return the input tree and a ValidationError.
func Insert(t Tree, n *Node, parent NodeID) (Tree, error) {
	n = n.Clone()
	if Find(t, n.ID) != nil {
		n.ID = newNodeID()
		reassignIDs(n)
	}

	if parent == "" {
		result := t.Clone()
		result.Nodes = append(result.Nodes, n)
		relevel(result.Nodes, 0)
		return result, nil
	}

	target := Find(t, parent)
	if target == nil {
		return t, validationf(ErrNodeNotFound, "the selected menu no longer exists")
	}
	if !target.IsSubmenu() {
		return t, validationf(ErrNotSubmenu, "items can only be added to a submenu")
	}

	result := t.Clone()
	target = Find(result, parent)
	insertAt(&target.Children, 0, n)
	relevel(result.Nodes, 0)
	return result, nil
}

// Remove deletes the node and its subtree. Removing an unknown id returns an
// unchanged copy, so repeated deletes are safe.
func Remove(t Tree, id NodeID) Tree {
	result := t.Clone()
	if loc, ok := FindWithParent(&result, id); ok {
		loc.detach()
	}
	return result
}

// Move relocates a node next to or inside target. Moving inside a leaf makes
// it a submenu in the default presentation. Moves onto the node itself, into
// its own subtree, onto an unknown node or with an unknown position leave the
// tree unchanged.
func Move(t Tree, moved, target NodeID, pos Position) Tree {
	result := t.Clone()
	if moved == target || !pos.Valid() {
		return result
	}

	src, ok := FindWithParent(&result, moved)
	if !ok {
		return result
	}
	node := src.Node
	if Contains(node, target) {
		return result
	}
	src.detach()

	dst, ok := FindWithParent(&result, target)
	if !ok {
		result.Nodes = append(result.Nodes, node)
		relevel(result.Nodes, 0)
		return result
	}

	switch pos {
	case PositionInside:
		insertAt(&dst.Node.Children, 0, node)
		promote(dst.Node)
	case PositionBefore:
		insertAt(dst.Siblings, dst.Index, node)
	case PositionAfter:
		insertAt(dst.Siblings, dst.Index+1, node)
	}
	relevel(result.Nodes, 0)
	return result
}

// promote turns a leaf that just gained a child into a submenu in the default
// presentation.
func promote(n *Node) {
	if n.Data.Submenu != nil {
		return
	}
	n.Data.Submenu = &Submenu{
		Style:  DefaultSubmenuStyle,
		Layout: DefaultSubmenuLayout,
	}
	n.refreshKind()
}

// Duplicate clones the subtree rooted at id and places the clone directly
// after the original. Every cloned entry gets the copy suffix on its title and
// a freshly generated id; ids minted during the walk are tracked so clones
// never collide with each other.
func Duplicate(t Tree, id NodeID) Tree {
	result := t.Clone()
	loc, ok := FindWithParent(&result, id)
	if !ok {
		return result
	}

	ids := result.IDs()
	clone := loc.Node.Clone()
	clone.ID = newNodeID()
	reassignIDs(clone)
	renameCopies(clone, ids)

	insertAt(loc.Siblings, loc.Index+1, clone)
	relevel(result.Nodes, 0)
	return result
}

func renameCopies(n *Node, ids IDSet) {
	n.Data.Title += DuplicateSuffix
	n.Data.ID = GenerateID(n.Data.Title, ids)
	ids.Add(n.Data.ID)
	for _, child := range n.Children {
		renameCopies(child, ids)
	}
}

// EntryPatch is a partial MenuEntry. Non-nil fields replace the node's
// current values. A NavigationTarget with neither route nor URL clears the
// target. Submenu replaces only the style and layout; items stay with the
// node's children.
type EntryPatch struct {
	ID               *string
	Title            *string
	Icon             *string
	NavigationTarget *NavigationTarget
	Submenu          *Submenu
	Type             *string
	SubmenuStyle     *string
	SubmenuLayout    *string
}

// UpdatePayload merges patch into the node's data and re-derives its kind.
// Children are never touched. Unknown ids leave the tree unchanged.
func UpdatePayload(t Tree, id NodeID, patch EntryPatch) Tree {
	result := t.Clone()
	n := Find(result, id)
	if n == nil {
		return result
	}

	d := &n.Data
	if patch.ID != nil {
		d.ID = *patch.ID
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Icon != nil {
		d.Icon = *patch.Icon
	}
	if patch.NavigationTarget != nil {
		if patch.NavigationTarget.Kind() == TargetNone {
			d.NavigationTarget = nil
		} else {
			d.NavigationTarget = patch.NavigationTarget.Clone()
		}
	}
	if patch.Submenu != nil {
		d.Submenu = &Submenu{
			Style:  patch.Submenu.Style,
			Layout: patch.Submenu.Layout,
		}
	}
	if patch.Type != nil {
		d.Type = *patch.Type
	}
	if patch.SubmenuStyle != nil {
		d.SubmenuStyle = *patch.SubmenuStyle
	}
	if patch.SubmenuLayout != nil {
		d.SubmenuLayout = *patch.SubmenuLayout
	}

	d.repairSubmenu()
	n.refreshKind()
	return result
}
