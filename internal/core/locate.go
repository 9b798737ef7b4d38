package core

// Location describes where a node sits in a tree. Siblings points at the
// slice that owns the node: the tree's root slice or the parent's children.
type Location struct {
	Node     *Node
	Parent   *Node
	Siblings *[]*Node
	Index    int
}

// Walk visits every node in pre-order. Returning false from fn stops the walk.
func Walk(t Tree, fn func(*Node) bool) {
	walkNodes(t.Nodes, fn)
}

func walkNodes(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !walkNodes(n.Children, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given handle, or nil.
func Find(t Tree, id NodeID) *Node {
	var found *Node
	Walk(t, func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByEntryID returns the node whose payload carries the persisted id.
func FindByEntryID(t Tree, entryID string) *Node {
	var found *Node
	Walk(t, func(n *Node) bool {
		if n.Data.ID == entryID {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindWithParent locates a node together with its owning slice and index.
func FindWithParent(t *Tree, id NodeID) (Location, bool) {
	return locate(&t.Nodes, nil, id)
}

func locate(siblings *[]*Node, parent *Node, id NodeID) (Location, bool) {
	for i, n := range *siblings {
		if n.ID == id {
			return Location{Node: n, Parent: parent, Siblings: siblings, Index: i}, true
		}
		if loc, ok := locate(&n.Children, n, id); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// Contains reports whether id is n itself or one of its descendants.
func Contains(n *Node, id NodeID) bool {
	if n.ID == id {
		return true
	}
	for _, child := range n.Children {
		if Contains(child, id) {
			return true
		}
	}
	return false
}

// detach removes the located node from its owning slice.
func (l Location) detach() {
	s := *l.Siblings
	*l.Siblings = append(s[:l.Index:l.Index], s[l.Index+1:]...)
}

// insertAt splices n into the slice at index, clamping index into range.
func insertAt(siblings *[]*Node, index int, n *Node) {
	s := *siblings
	if index < 0 {
		index = 0
	}
	if index > len(s) {
		index = len(s)
	}
	result := make([]*Node, 0, len(s)+1)
	result = append(result, s[:index]...)
	result = append(result, n)
	result = append(result, s[index:]...)
	*siblings = result
}
