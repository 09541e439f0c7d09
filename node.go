package uicore

// NodeFlags is a bitmask of per-node behavior flags.
type NodeFlags uint8

const (
	// NodeHidden hides the node and its entire subtree from drawing, hit
	// testing and the visible-node list.
	NodeHidden NodeFlags = 1 << iota
	// NodeClip intersects the current clip rectangle with this node's
	// rectangle for the purposes of culling its descendants.
	NodeClip
	// NodeNoEvents excludes the node and its descendants from event
	// dispatch (propagated into visible_event_node_mask).
	NodeNoEvents
	// NodeDisabled marks the node and its descendants as disabled
	// (propagated into visible_enabled_node_mask; drives the visual-layer
	// style machine's disabled transition).
	NodeDisabled
	// NodeFocusable allows the node to become current_focused.
	NodeFocusable
	// NodeNoBlur suppresses the automatic blur that would otherwise occur
	// when a different node becomes pressed.
	NodeNoBlur
	// NodeFallthroughPointerEvents marks the node as a fall-through target:
	// once the initial pointer delivery has been accepted, or while a node
	// is captured, the event is offered again to every such ancestor of
	// the target.
	NodeFallthroughPointerEvents
)

// noOrder is the sentinel order-arena index meaning "not top-level".
const noOrder = ^uint32(0)

// node is the internal payload of a node-arena slot. All fields are
// mutated exclusively through UserInterface methods; node itself carries
// no exported state — the public API lives entirely on UserInterface, not
// on the node.
type node struct {
	parent  NodeHandle
	offset  Vec2
	size    Vec2
	opacity float64
	flags   NodeFlags
	order   uint32 // index into the node-order arena, or noOrder

	// Intrusive child list, needed to turn "parent" pointers into an
	// O(1)-append, O(depth)-walk tree without rescanning the whole arena
	// on every update(); doubly linked so RemoveNode and unlinkChild run
	// in O(1).
	firstChild, lastChild    NodeHandle
	prevSibling, nextSibling NodeHandle
}

// CreateNode allocates a node with the given parent (NullNode for a root),
// input offset/size and flags. Root nodes are always made top-level.
func (ui *UserInterface) CreateNode(parent NodeHandle, offset, size Vec2, flags NodeFlags) (NodeHandle, error) {
	if parent != NullNode && !ui.IsNodeValid(parent) {
		return NullNode, invalidHandleError("node (parent)", uint64(parent))
	}
	index, generation, err := ui.nodes.allocate()
	if err != nil {
		return NullNode, err
	}
	h := makeNodeHandle(index, generation)
	n := ui.nodes.get(index)
	*n = node{
		parent:      parent,
		offset:      offset,
		size:        size,
		opacity:     1,
		flags:       flags,
		order:       noOrder,
		firstChild:  NullNode,
		lastChild:   NullNode,
		prevSibling: NullNode,
		nextSibling: NullNode,
	}

	if parent == NullNode {
		ui.appendTopLevel(h, NullNode)
	} else {
		ui.linkChild(parent, h)
	}

	ui.markDirty(NeedsNodeUpdate)
	return h, nil
}

// linkChild appends child to parent's child list.
func (ui *UserInterface) linkChild(parent, child NodeHandle) {
	p := ui.nodes.get(parent.index())
	c := ui.nodes.get(child.index())
	c.prevSibling = p.lastChild
	c.nextSibling = NullNode
	if p.lastChild != NullNode {
		ui.nodes.get(p.lastChild.index()).nextSibling = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
}

// unlinkChild removes child from its parent's child list without touching
// child.parent.
func (ui *UserInterface) unlinkChild(parent, child NodeHandle) {
	c := ui.nodes.get(child.index())
	if c.prevSibling != NullNode {
		ui.nodes.get(c.prevSibling.index()).nextSibling = c.nextSibling
	} else if parent != NullNode {
		ui.nodes.get(parent.index()).firstChild = c.nextSibling
	}
	if c.nextSibling != NullNode {
		ui.nodes.get(c.nextSibling.index()).prevSibling = c.prevSibling
	} else if parent != NullNode {
		ui.nodes.get(parent.index()).lastChild = c.prevSibling
	}
	c.prevSibling = NullNode
	c.nextSibling = NullNode
}

// IsNodeValid reports whether h currently identifies a live node.
func (ui *UserInterface) IsNodeValid(h NodeHandle) bool {
	return ui.nodes.valid(h.index(), h.generation())
}

// NodeCapacityUsed returns the number of live nodes.
func (ui *UserInterface) NodeCapacityUsed() int { return ui.nodes.usedCount() }

// NodeParent returns h's parent, or NullNode for a root.
func (ui *UserInterface) NodeParent(h NodeHandle) NodeHandle {
	return ui.nodes.get(h.index()).parent
}

// NodeOffset returns h's input offset (before layout).
func (ui *UserInterface) NodeOffset(h NodeHandle) Vec2 {
	return ui.nodes.get(h.index()).offset
}

// SetNodeOffset sets h's input offset and marks the layout dirty.
func (ui *UserInterface) SetNodeOffset(h NodeHandle, offset Vec2) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	ui.nodes.get(h.index()).offset = offset
	ui.markDirty(NeedsLayoutUpdate)
	return nil
}

// NodeSize returns h's input size (before layout).
func (ui *UserInterface) NodeSize(h NodeHandle) Vec2 {
	return ui.nodes.get(h.index()).size
}

// SetNodeSize sets h's input size and marks the layout dirty.
func (ui *UserInterface) SetNodeSize(h NodeHandle, size Vec2) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	ui.nodes.get(h.index()).size = size
	ui.markDirty(NeedsLayoutUpdate)
	return nil
}

// NodeOpacity returns h's local opacity.
func (ui *UserInterface) NodeOpacity(h NodeHandle) float64 {
	return ui.nodes.get(h.index()).opacity
}

// SetNodeOpacity sets h's local opacity and marks opacity propagation dirty.
func (ui *UserInterface) SetNodeOpacity(h NodeHandle, opacity float64) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	ui.nodes.get(h.index()).opacity = opacity
	ui.markDirty(NeedsNodeOpacityUpdate)
	return nil
}

// NodeFlagsOf returns h's current flags.
func (ui *UserInterface) NodeFlagsOf(h NodeHandle) NodeFlags {
	return ui.nodes.get(h.index()).flags
}

// SetNodeFlags replaces h's flags outright.
func (ui *UserInterface) SetNodeFlags(h NodeHandle, flags NodeFlags) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	ui.nodes.get(h.index()).flags = flags
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// AddNodeFlags ORs flags into h's current flags.
func (ui *UserInterface) AddNodeFlags(h NodeHandle, flags NodeFlags) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	n := ui.nodes.get(h.index())
	n.flags |= flags
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// ClearNodeFlags clears flags from h's current flags.
func (ui *UserInterface) ClearNodeFlags(h NodeHandle, flags NodeFlags) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	n := ui.nodes.get(h.index())
	n.flags &^= flags
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// RemoveNode marks h removed: generation++, reparents to null (to prevent
// double-remove cycles) and queues actual child/data cleanup until the next
// Clean() call.
func (ui *UserInterface) RemoveNode(h NodeHandle) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	n := ui.nodes.get(h.index())
	if n.order != noOrder {
		ui.clearNodeOrder(h)
	}
	parent := n.parent
	if parent != NullNode {
		// parent may already be gone (an ancestor removed earlier in the
		// same clean sweep): its own slot is about to be freed regardless,
		// so there is nothing left to unlink from.
		if ui.IsNodeValid(parent) {
			ui.unlinkChild(parent, h)
		}
	} else {
		ui.removeTopLevel(h)
	}
	n.parent = NullNode

	if err := ui.nodes.remove(h.index(), h.generation()); err != nil {
		return err
	}
	ui.markDirty(NeedsNodeClean)
	return nil
}

// nodeGenerations returns the live generation table, passed to
// layer/layouter/animator clean-nodes hooks during Clean.
func (ui *UserInterface) nodeGenerations() func(NodeHandle) bool {
	return ui.IsNodeValid
}
