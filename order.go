package uicore

// orderSlot is one entry of the node-order arena: a cyclic doubly-linked
// list of top-level nodes. lastNested points to the last of a
// top-level node's nested top-level descendants, itself if none.
type orderSlot struct {
	previous, next, lastNested NodeHandle
}

// orderArena is a plain free-listed slice of orderSlot, indexed by the
// uint32 stored in node.order. Unlike the generational arena.go arenas,
// validity here is tied to the owning node's lifetime (the slot is
// allocated and freed in lockstep with SetNodeOrder/ClearNodeOrder/
// RemoveNode), so no generation counter is needed.
type orderArena struct {
	slots []orderSlot
	free  []uint32
}

func (a *orderArena) alloc() uint32 {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return idx
	}
	a.slots = append(a.slots, orderSlot{})
	return uint32(len(a.slots) - 1)
}

func (a *orderArena) release(idx uint32) {
	a.slots[idx] = orderSlot{}
	a.free = append(a.free, idx)
}

func (ui *UserInterface) orderSlotOf(h NodeHandle) *orderSlot {
	idx := ui.nodes.get(h.index()).order
	return &ui.order.slots[idx]
}

// IsNodeTopLevel reports whether h currently has an allocated order slot.
func (ui *UserInterface) IsNodeTopLevel(h NodeHandle) bool {
	return ui.nodes.get(h.index()).order != noOrder
}

// IsNodeOrdered is an alias for IsNodeTopLevel.
func (ui *UserInterface) IsNodeOrdered(h NodeHandle) bool { return ui.IsNodeTopLevel(h) }

// NodeOrderFirst returns the first (bottom-most drawn) top-level node, or
// NullNode if none exist.
func (ui *UserInterface) NodeOrderFirst() NodeHandle { return ui.topLevelHead }

// NodeOrderLast returns the last (top-most drawn) top-level node, or
// NullNode if none exist.
func (ui *UserInterface) NodeOrderLast() NodeHandle {
	if ui.topLevelHead == NullNode {
		return NullNode
	}
	return ui.orderSlotOf(ui.topLevelHead).previous
}

// NodeOrderNext returns the top-level node drawn immediately after h, or
// NullNode if h is not ordered or is the last.
func (ui *UserInterface) NodeOrderNext(h NodeHandle) NodeHandle {
	if !ui.IsNodeTopLevel(h) {
		return NullNode
	}
	next := ui.orderSlotOf(h).next
	if next == ui.topLevelHead {
		return NullNode
	}
	return next
}

// NodeOrderPrevious returns the top-level node drawn immediately before h,
// or NullNode if h is not ordered or is the first.
func (ui *UserInterface) NodeOrderPrevious(h NodeHandle) NodeHandle {
	if !ui.IsNodeTopLevel(h) || h == ui.topLevelHead {
		return NullNode
	}
	return ui.orderSlotOf(h).previous
}

// NodeOrderLastNested returns the last of h's nested top-level descendants,
// or h itself if it has none.
func (ui *UserInterface) NodeOrderLastNested(h NodeHandle) NodeHandle {
	if !ui.IsNodeTopLevel(h) {
		return NullNode
	}
	return ui.orderSlotOf(h).lastNested
}

// nearestTopLevelAncestor walks h's parent chain (not including h) and
// returns the first ancestor that has an order slot, or NullNode.
func (ui *UserInterface) nearestTopLevelAncestor(h NodeHandle) NodeHandle {
	for p := ui.nodes.get(h.index()).parent; p != NullNode; p = ui.nodes.get(p.index()).parent {
		if ui.IsNodeTopLevel(p) {
			return p
		}
	}
	return NullNode
}

// subtreeHasNestedTopLevel reports whether any proper descendant of h is
// currently top-level — the condition under which SetNodeOrder rejects
// the move as unsupported.
func (ui *UserInterface) subtreeHasNestedTopLevel(h NodeHandle) bool {
	if ui.IsNodeTopLevel(h) && ui.orderSlotOf(h).lastNested != h {
		return true
	}
	n := ui.nodes.get(h.index())
	for c := n.firstChild; c != NullNode; c = ui.nodes.get(c.index()).nextSibling {
		if ui.IsNodeTopLevel(c) {
			return true
		}
		if ui.subtreeHasNestedTopLevel(c) {
			return true
		}
	}
	return false
}

// insertAfter splices h into the cyclic list immediately after `after`,
// which must already be in the list. Does not touch topLevelHead.
func (ui *UserInterface) insertAfter(h, after NodeHandle) {
	aSlot := ui.orderSlotOf(after)
	next := aSlot.next
	aSlot.next = h
	hSlot := ui.orderSlotOf(h)
	hSlot.previous = after
	hSlot.next = next
	ui.orderSlotOf(next).previous = h
}

// insertBefore splices h into the cyclic list immediately before `before`,
// which must already be in the list. Reassigns topLevelHead if before was
// the head (h becomes the new first element).
func (ui *UserInterface) insertBefore(h, before NodeHandle) {
	bSlot := ui.orderSlotOf(before)
	prev := bSlot.previous
	ui.orderSlotOf(prev).next = h
	hSlot := ui.orderSlotOf(h)
	hSlot.previous = prev
	hSlot.next = before
	bSlot.previous = h
	if before == ui.topLevelHead {
		ui.topLevelHead = h
	}
}

// removeFromCyclicList unlinks h, which must currently be in the list.
func (ui *UserInterface) removeFromCyclicList(h NodeHandle) {
	hSlot := ui.orderSlotOf(h)
	if hSlot.next == h {
		ui.topLevelHead = NullNode
		return
	}
	ui.orderSlotOf(hSlot.previous).next = hSlot.next
	ui.orderSlotOf(hSlot.next).previous = hSlot.previous
	if ui.topLevelHead == h {
		ui.topLevelHead = hSlot.next
	}
}

// appendTopLevel inserts a brand-new top-level node (no order slot yet) at
// the tail of the list (drawn last / on top). Used by CreateNode for root
// nodes. afterHint is accepted for symmetry with other call sites but is
// currently unused (roots always append at the very end).
func (ui *UserInterface) appendTopLevel(h NodeHandle, _ NodeHandle) {
	n := ui.nodes.get(h.index())
	n.order = ui.order.alloc()
	slot := &ui.order.slots[n.order]
	slot.lastNested = h
	if ui.topLevelHead == NullNode {
		slot.previous = h
		slot.next = h
		ui.topLevelHead = h
		return
	}
	ui.insertAfter(h, ui.orderSlotOf(ui.topLevelHead).previous)
}

// removeTopLevel unlinks h (which must be top-level with no nested range)
// from the order list and frees its slot, fixing up ancestor lastNested
// pointers.
func (ui *UserInterface) removeTopLevel(h NodeHandle) {
	if !ui.IsNodeTopLevel(h) {
		return
	}
	prev := ui.orderSlotOf(h).previous
	replacement := prev
	if replacement == h {
		replacement = NullNode
	}
	if ancestor := ui.nearestTopLevelAncestor(h); ancestor != NullNode {
		ui.propagateLastNestedReplace(ancestor, h, replacement)
	}
	ui.removeFromCyclicList(h)
	idx := ui.nodes.get(h.index()).order
	ui.order.release(idx)
	ui.nodes.get(h.index()).order = noOrder
}

// propagateLastNestedReplace walks from ancestor upward (inclusive),
// replacing lastNested == from with to wherever it appears, stopping at
// the first ancestor whose lastNested isn't from: this adjusts
// lastNested on ancestors whose previous lastNested equaled this node's
// lastNested.
func (ui *UserInterface) propagateLastNestedReplace(ancestor, from, to NodeHandle) {
	for a := ancestor; a != NullNode; a = ui.nearestTopLevelAncestor(a) {
		slot := ui.orderSlotOf(a)
		if slot.lastNested != from {
			break
		}
		if to == NullNode {
			to = a
		}
		slot.lastNested = to
	}
}

// ClearNodeOrder removes a non-root h from the top-level order list
// without removing the node itself; h is then drawn and hit-tested as
// part of its parent's subtree again. A root node always keeps its order
// slot: for a root h this returns nil and changes nothing, so a root
// cannot be excluded from draw/event ordering this way.
func (ui *UserInterface) ClearNodeOrder(h NodeHandle) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	if ui.nodes.get(h.index()).parent == NullNode {
		// Root nodes always keep their order slot; nothing is cleared.
		return nil
	}
	ui.clearNodeOrder(h)
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// clearNodeOrder is the internal, unchecked counterpart used by RemoveNode.
func (ui *UserInterface) clearNodeOrder(h NodeHandle) {
	if !ui.IsNodeTopLevel(h) {
		return
	}
	ui.removeTopLevel(h)
}

// SetNodeOrder makes h top-level (if it wasn't already) and positions it
// immediately before `behind` in draw order, or at the end of the list if
// behind is NullNode. Rejected with ErrNestedTopLevelOrder
// if h's sub-hierarchy already contains other nested top-level nodes —
// the source's intentionally-unsupported splice case.
func (ui *UserInterface) SetNodeOrder(h NodeHandle, behind NodeHandle) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	if behind != NullNode && !ui.IsNodeValid(behind) {
		return invalidHandleError("node (behind)", uint64(behind))
	}
	if ui.subtreeHasNestedTopLevel(h) {
		return ErrNestedTopLevelOrder
	}

	wasTopLevel := ui.IsNodeTopLevel(h)
	if wasTopLevel {
		ui.removeTopLevel(h)
	}
	n := ui.nodes.get(h.index())
	n.order = ui.order.alloc()
	slot := &ui.order.slots[n.order]
	slot.lastNested = h

	switch {
	case ui.topLevelHead == NullNode:
		slot.previous = h
		slot.next = h
		ui.topLevelHead = h
	case behind == NullNode:
		ui.insertAfter(h, ui.orderSlotOf(ui.topLevelHead).previous)
	default:
		ui.insertBefore(h, behind)
	}

	if ancestor := ui.nearestTopLevelAncestor(h); ancestor != NullNode {
		ui.propagateLastNestedReplace(ancestor, ancestor, h)
		// propagateLastNestedReplace only advances while lastNested ==
		// the previous value; seed the direct ancestor explicitly since
		// its lastNested may legitimately have pointed elsewhere.
		ui.orderSlotOf(ancestor).lastNested = h
	}
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// FlattenNodeOrder clears the order slot of every non-root top-level node
// in h's subtree (h included unless it is a root), without removing any
// node; a root keeps its slot. Used to
// collapse a nested top-level range back into implicit tree order.
func (ui *UserInterface) FlattenNodeOrder(h NodeHandle) error {
	if !ui.IsNodeValid(h) {
		return invalidHandleError("node", uint64(h))
	}
	var walk func(NodeHandle)
	walk = func(n NodeHandle) {
		node := ui.nodes.get(n.index())
		for c := node.firstChild; c != NullNode; c = ui.nodes.get(c.index()).nextSibling {
			walk(c)
		}
		if node.parent != NullNode && ui.IsNodeTopLevel(n) {
			ui.clearNodeOrder(n)
		}
	}
	walk(h)
	ui.markDirty(NeedsNodeUpdate)
	return nil
}
