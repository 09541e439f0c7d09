package uicore

// LayouterFeatures is currently empty (geometry solvers have no capability
// variants), but is kept as a distinct named type to mirror LayerFeatures
// and leave room for future solver capabilities without an API break.
type LayouterFeatures uint8

// LayouterStates reuses the UserInterfaceStates bit space the same way
// LayerStates does: a layouter only ever reports NeedsLayoutAssignmentUpdate
// or NeedsLayoutUpdate.
type LayouterStates = UserInterfaceStates

// Layouter is the geometry-solver collaborator. update() calls
// Update once per level of the layout dependency order.
type Layouter interface {
	Features() LayouterFeatures
	State() LayouterStates
	CleanNodes(live func(NodeHandle) bool)

	// Attach registers node with this layouter and returns a
	// layouter-local layout id, analogous to a Layer's Attach: LayoutHandle
	// is a (layouter handle, layouter-local id) pair, mirroring DataHandle.
	Attach(node NodeHandle) (uint32, error)

	// Update is called with the mask of this layouter's visible layout
	// ids, the layout ids themselves, their parent node map, and the
	// offset/size arrays to read and write in place.
	Update(mask []bool, layoutIDs []uint32, parents []NodeHandle, offsets, sizes []Vec2)
}

type layouterSlot struct {
	instance    Layouter
	hasInstance bool
	previous    LayouterHandle
	next        LayouterHandle
}

// CreateLayouter allocates a new layouter slot and appends it to the tail
// of the layouter list.
func (ui *UserInterface) CreateLayouter() (LayouterHandle, error) {
	index, generation, err := ui.layouterArena.allocate()
	if err != nil {
		return NullLayouter, err
	}
	h := makeLayouterHandle(index, generation)
	*ui.layouterArena.get(index) = layouterSlot{previous: h, next: h}
	if ui.layouterHead == NullLayouter {
		ui.layouterHead = h
	} else {
		tail := ui.layouterArena.get(ui.layouterHead.index()).previous
		ui.linkLayouterAfter(h, tail)
	}
	return h, nil
}

func (ui *UserInterface) linkLayouterAfter(h, after LayouterHandle) {
	aSlot := ui.layouterArena.get(after.index())
	next := aSlot.next
	aSlot.next = h
	hSlot := ui.layouterArena.get(h.index())
	hSlot.previous = after
	hSlot.next = next
	ui.layouterArena.get(next.index()).previous = h
}

// SetLayouterInstance installs inst as h's implementation.
func (ui *UserInterface) SetLayouterInstance(h LayouterHandle, inst Layouter) error {
	if !ui.IsLayouterValid(h) {
		return invalidHandleError("layouter", uint64(h))
	}
	slot := ui.layouterArena.get(h.index())
	if slot.hasInstance {
		return ErrAlreadySet
	}
	slot.instance = inst
	slot.hasInstance = true
	ui.markDirty(NeedsLayoutAssignmentUpdate)
	return nil
}

// HasLayouterInstance reports whether h has had SetLayouterInstance called.
func (ui *UserInterface) HasLayouterInstance(h LayouterHandle) bool {
	return ui.IsLayouterValid(h) && ui.layouterArena.get(h.index()).hasInstance
}

// LayouterInstance returns h's installed instance, or ErrNoInstance.
func (ui *UserInterface) LayouterInstance(h LayouterHandle) (Layouter, error) {
	if !ui.IsLayouterValid(h) {
		return nil, invalidHandleError("layouter", uint64(h))
	}
	slot := ui.layouterArena.get(h.index())
	if !slot.hasInstance {
		return nil, ErrNoInstance
	}
	return slot.instance, nil
}

// RemoveLayouter removes h from the layouter arena and list.
func (ui *UserInterface) RemoveLayouter(h LayouterHandle) error {
	if !ui.IsLayouterValid(h) {
		return invalidHandleError("layouter", uint64(h))
	}
	slot := ui.layouterArena.get(h.index())
	if slot.next == h {
		ui.layouterHead = NullLayouter
	} else {
		ui.layouterArena.get(slot.previous.index()).next = slot.next
		ui.layouterArena.get(slot.next.index()).previous = slot.previous
		if ui.layouterHead == h {
			ui.layouterHead = slot.next
		}
	}
	if err := ui.layouterArena.remove(h.index(), h.generation()); err != nil {
		return err
	}
	ui.markDirty(NeedsLayoutAssignmentUpdate)
	return nil
}

// IsLayouterValid reports whether h currently identifies a live layouter.
func (ui *UserInterface) IsLayouterValid(h LayouterHandle) bool {
	return ui.layouterArena.valid(h.index(), h.generation())
}

// LayouterCapacity returns the maximum number of simultaneously live
// layouters.
func (ui *UserInterface) LayouterCapacity() int { return SmallArenaCapacity }

// LayouterUsedCount returns the number of live layouters.
func (ui *UserInterface) LayouterUsedCount() int { return ui.layouterArena.usedCount() }

// LayouterFirst returns the first layouter in creation order, or NullLayouter.
func (ui *UserInterface) LayouterFirst() LayouterHandle { return ui.layouterHead }

// LayouterLast returns the last layouter in creation order, or NullLayouter.
func (ui *UserInterface) LayouterLast() LayouterHandle {
	if ui.layouterHead == NullLayouter {
		return NullLayouter
	}
	return ui.layouterArena.get(ui.layouterHead.index()).previous
}

// LayouterNext returns the layouter after h in creation order.
func (ui *UserInterface) LayouterNext(h LayouterHandle) LayouterHandle {
	next := ui.layouterArena.get(h.index()).next
	if next == ui.layouterHead {
		return NullLayouter
	}
	return next
}

// LayouterPrevious returns the layouter before h in creation order.
func (ui *UserInterface) LayouterPrevious(h LayouterHandle) LayouterHandle {
	if h == ui.layouterHead {
		return NullLayouter
	}
	return ui.layouterArena.get(h.index()).previous
}

// AttachLayout registers node with layouter and records the association
// for use by the next Update() pass's layout-collection step.
func (ui *UserInterface) AttachLayout(layouter LayouterHandle, node NodeHandle) (LayoutHandle, error) {
	if !ui.IsNodeValid(node) {
		return NullLayout, invalidHandleError("node", uint64(node))
	}
	l, err := ui.LayouterInstance(layouter)
	if err != nil {
		return NullLayout, err
	}
	local, err := l.Attach(node)
	if err != nil {
		return NullLayout, err
	}
	lh := LayoutHandle{Layouter: layouter, Local: local}
	ui.nodeLayouts[node] = append(ui.nodeLayouts[node], lh)
	ui.markDirty(NeedsLayoutAssignmentUpdate)
	return lh, nil
}

func (ui *UserInterface) forEachLayouter(fn func(LayouterHandle, Layouter)) {
	if ui.layouterHead == NullLayouter {
		return
	}
	h := ui.layouterHead
	for {
		slot := ui.layouterArena.get(h.index())
		if slot.hasInstance {
			fn(h, slot.instance)
		}
		h = slot.next
		if h == ui.layouterHead {
			return
		}
	}
}
