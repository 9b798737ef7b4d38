package core

// DragState tracks one drag-and-drop gesture: the node being dragged and the
// target and position it currently hovers. It only lives between Start and
// Drop or Cancel, and both always leave it cleared.
type DragState struct {
	source   NodeID
	target   NodeID
	position Position
	active   bool
}

// Start begins dragging the node with the given handle, replacing any
// gesture still in progress.
func (d *DragState) Start(id NodeID) {
	*d = DragState{source: id, active: true}
}

// Over records the current hover target. It is ignored when no drag is active.
func (d *DragState) Over(target NodeID, pos Position) {
	if !d.active {
		return
	}
	d.target = target
	d.position = pos
}

// Active reports whether a drag is in progress.
func (d *DragState) Active() bool {
	return d.active
}

// Source returns the dragged node.
func (d *DragState) Source() NodeID {
	return d.source
}

// Target returns the hovered node and position.
func (d *DragState) Target() (NodeID, Position) {
	return d.target, d.position
}

// Drop applies the pending move to t and clears the gesture. A drop without
// an active drag or without a hover target returns an unchanged copy.
func (d *DragState) Drop(t Tree) Tree {
	source, target, pos, active := d.source, d.target, d.position, d.active
	d.Cancel()
	if !active || target == "" {
		return t.Clone()
	}
	return Move(t, source, target, pos)
}

// Cancel abandons the gesture.
func (d *DragState) Cancel() {
	*d = DragState{}
}
