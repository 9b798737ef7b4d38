package core

import (
	"strconv"

	"github.com/google/uuid"
)

// rootPrefix starts the synthetic id of every node produced by Build.
const rootPrefix = "node"

// NodeID is the in-memory handle of a tree node. It is derived from the
// node's position when the tree is built and is never persisted, so it must
// not be compared with a MenuEntry id.
type NodeID string

// NodeKind tags a node as a plain item or a submenu.
type NodeKind string

const (
	KindMenu    NodeKind = "menu"
	KindSubmenu NodeKind = "submenu"
)

// Node wraps one MenuEntry for editing. Data never carries submenu items;
// those live in Children.
type Node struct {
	ID       NodeID
	Data     MenuEntry
	Children []*Node
	Level    int
	Kind     NodeKind
}

// NewNode wraps entry in a node with a fresh handle. Nested items of entry
// become child nodes.
func NewNode(entry MenuEntry) *Node {
	return fromEntry(entry.Clone(), newNodeID(), 0)
}

func newNodeID() NodeID {
	return NodeID(rootPrefix + "_" + uuid.New().String())
}

// reassignIDs gives every descendant of n a handle derived from n's.
func reassignIDs(n *Node) {
	for i, child := range n.Children {
		child.ID = NodeID(string(n.ID) + "_" + strconv.Itoa(i))
		reassignIDs(child)
	}
}

// refreshKind derives the node kind from its payload.
func (n *Node) refreshKind() {
	if n.Data.Submenu != nil {
		n.Kind = KindSubmenu
	} else {
		n.Kind = KindMenu
	}
}

// IsSubmenu reports whether the node may hold children.
func (n *Node) IsSubmenu() bool {
	return n.Kind == KindSubmenu
}

// Clone deep-copies the node and its subtree, keeping handles.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:    n.ID,
		Data:  n.Data.Clone(),
		Level: n.Level,
		Kind:  n.Kind,
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// Tree is the editable menu: the ordered root nodes.
type Tree struct {
	Nodes []*Node
}

// Clone deep-copies the tree.
func (t Tree) Clone() Tree {
	clone := Tree{Nodes: make([]*Node, len(t.Nodes))}
	for i, n := range t.Nodes {
		clone.Nodes[i] = n.Clone()
	}
	return clone
}

// Len returns the total number of nodes.
func (t Tree) Len() int {
	count := 0
	Walk(t, func(*Node) bool {
		count++
		return true
	})
	return count
}

// IDs returns the persisted ids of every node in the tree.
func (t Tree) IDs() IDSet {
	ids := make(IDSet)
	Walk(t, func(n *Node) bool {
		if n.Data.ID != "" {
			ids.Add(n.Data.ID)
		}
		return true
	})
	return ids
}

// Build converts persisted entries into an editable tree. Node handles are
// derived from positions, so they are unique within the build but differ
// between builds.
func Build(entries []MenuEntry) Tree {
	return Tree{Nodes: buildNodes(entries, rootPrefix, 0)}
}

func buildNodes(entries []MenuEntry, parentPath string, level int) []*Node {
	nodes := make([]*Node, 0, len(entries))
	for i, e := range entries {
		id := NodeID(parentPath + "_" + strconv.Itoa(i))
		nodes = append(nodes, fromEntry(e.Clone(), id, level))
	}
	return nodes
}

func fromEntry(e MenuEntry, id NodeID, level int) *Node {
	var items []MenuEntry
	if e.Submenu != nil {
		items = e.Submenu.Items
		e.Submenu.Items = nil
	}
	n := &Node{
		ID:       id,
		Data:     e,
		Level:    level,
		Children: buildNodes(items, string(id), level+1),
	}
	n.refreshKind()
	return n
}

// Flatten converts the tree back to persisted entries. Nodes with children
// get a submenu block whose items are their flattened children; an existing
// block keeps its metadata and a missing one is created with the default
// style and layout. Childless nodes never carry a submenu block.
func Flatten(t Tree) []MenuEntry {
	return flattenNodes(t.Nodes)
}

func flattenNodes(nodes []*Node) []MenuEntry {
	entries := make([]MenuEntry, 0, len(nodes))
	for _, n := range nodes {
		e := n.Data.Clone()
		if len(n.Children) > 0 {
			if e.Submenu == nil {
				e.Submenu = &Submenu{
					Style:  DefaultSubmenuStyle,
					Layout: DefaultSubmenuLayout,
				}
			}
			e.Submenu.Items = flattenNodes(n.Children)
		} else {
			e.Submenu = nil
		}
		entries = append(entries, e)
	}
	return entries
}

// relevel recomputes every node's level from its depth.
func relevel(nodes []*Node, level int) {
	for _, n := range nodes {
		n.Level = level
		relevel(n.Children, level+1)
	}
}
