package uicore

// LayerFeatures is the capability bitmask a Layer reports via Features().
// The core consults it to decide which partitioner/update/event
// hooks a given layer participates in.
type LayerFeatures uint8

const (
	LayerDraw LayerFeatures = 1 << iota
	LayerDrawUsesBlending
	LayerDrawUsesScissor
	LayerComposite
	LayerEvent
)

// LayerStates reuses the UserInterfaceStates bit space: a layer only ever
// reports the subset of bits that are meaningful at its own scope
// (NeedsDataUpdate, NeedsDataClean, and the derivation bits feeding them),
// which State() folds into the UI-wide aggregate via the same lattice.
type LayerStates = UserInterfaceStates

// Layer is the polymorphic data-producer collaborator. A layer owns
// its own data records; the core only ever hands it node-indexed slices
// and handles.
type Layer interface {
	Features() LayerFeatures
	State() LayerStates

	// Attach creates a new data record on this layer for node and returns
	// its layer-local data handle.
	Attach(node NodeHandle) (DataHandle, error)

	// CleanNodes is called during Clean() with a liveness predicate over
	// node handles; the layer must drop attachments to now-invalid nodes.
	CleanNodes(live func(NodeHandle) bool)
	// CleanData is called during Clean() when the layer itself reports
	// NeedsDataClean, with the set of animators that have data attachment
	// to this layer so their corresponding slots can be dropped too.
	CleanData(attachedAnimators []AnimatorHandle)

	PreUpdate(state LayerStates)

	// Update receives the partitioned arrays produced during update for
	// exactly the data this layer owns.
	Update(partition LayerUpdatePartition)

	Composite(r Renderer, compositeRectOffsets, compositeRectSizes []Vec2, drawOffset, drawSize Vec2)
	Draw(r Renderer, partition LayerDrawPartition)

	// AdvanceDataAnimations/AdvanceStyleAnimations are the delegation
	// points for per-layer data/style animators: the driver calls into
	// the layer once per advancing animator, with a one-element handles
	// slice and that animator's own active/factors arrays.
	AdvanceDataAnimations(handles []AnimatorHandle, active []bool, factors []float64)
	AdvanceStyleAnimations(handles []AnimatorHandle, active []bool, factors []float64)

	PointerPressEvent(data DataHandle, ev *PointerEvent) bool
	PointerReleaseEvent(data DataHandle, ev *PointerEvent) bool
	PointerMoveEvent(data DataHandle, ev *PointerEvent) bool
	PointerEnterEvent(data DataHandle, ev *PointerEvent)
	PointerLeaveEvent(data DataHandle, ev *PointerEvent)
	PointerCancelEvent(data DataHandle)
	FocusEvent(data DataHandle) bool
	BlurEvent(data DataHandle)
	KeyPressEvent(data DataHandle, ev *KeyEvent) bool
	KeyReleaseEvent(data DataHandle, ev *KeyEvent) bool
	TextInputEvent(data DataHandle, text string) bool
	VisibilityLostEvent(data DataHandle)
}

// LayerUpdatePartition bundles the slices a layer's Update() receives.
type LayerUpdatePartition struct {
	DataToUpdateIDs               []uint32
	DataToUpdateClipRectIDs       []uint32
	DataToUpdateClipRectDataCount []uint32
	NodeOffsets                   []Vec2
	NodeSizes                     []Vec2
	NodeOpacities                 []float64
	EnabledMask                   []bool
	ClipRectOffsets               []Vec2
	ClipRectSizes                 []Vec2
	CompositeRectOffsets          []Vec2
	CompositeRectSizes            []Vec2
}

// LayerDrawPartition bundles the compacted draw-call slices a layer's
// Draw() receives.
type LayerDrawPartition struct {
	Offsets         []Vec2
	Sizes           []Vec2
	ClipRectOffsets []Vec2
	ClipRectSizes   []Vec2
}

// layerSlot is the arena payload for one layer slot: the owned instance
// (nil until SetLayerInstance), its cached feature bitmask, and this
// component's own cyclic ordered-list links.
type layerSlot struct {
	instance     Layer
	features     LayerFeatures
	hasInstance  bool
	previous     LayerHandle
	next         LayerHandle
}

// CreateLayer allocates a new layer slot with no instance set yet and
// appends it to the tail of the layer list, in creation order.
func (ui *UserInterface) CreateLayer() (LayerHandle, error) {
	index, generation, err := ui.layerArena.allocate()
	if err != nil {
		return NullLayer, err
	}
	h := makeLayerHandle(index, generation)
	*ui.layerArena.get(index) = layerSlot{previous: h, next: h}
	if ui.layerHead == NullLayer {
		ui.layerHead = h
	} else {
		tail := ui.layerArena.get(ui.layerHead.index()).previous
		ui.linkLayerAfter(h, tail)
	}
	ui.reindexAnimatorPartitions()
	return h, nil
}

func (ui *UserInterface) linkLayerAfter(h, after LayerHandle) {
	aSlot := ui.layerArena.get(after.index())
	next := aSlot.next
	aSlot.next = h
	hSlot := ui.layerArena.get(h.index())
	hSlot.previous = after
	hSlot.next = next
	ui.layerArena.get(next.index()).previous = h
}

// SetLayerInstance installs inst as h's implementation. Fails with
// ErrAlreadySet if h already has an instance, or with
// ErrIncompatibleCapabilities if inst reports LayerComposite and a renderer
// is already installed that does not report RendererComposite.
func (ui *UserInterface) SetLayerInstance(h LayerHandle, inst Layer) error {
	if !ui.IsLayerValid(h) {
		return invalidHandleError("layer", uint64(h))
	}
	slot := ui.layerArena.get(h.index())
	if slot.hasInstance {
		return ErrAlreadySet
	}
	features := inst.Features()
	if features&LayerComposite != 0 && ui.hasRenderer && ui.renderer.Features()&RendererComposite == 0 {
		return ErrIncompatibleCapabilities
	}
	slot.instance = inst
	slot.features = features
	slot.hasInstance = true
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// HasLayerInstance reports whether h has had SetLayerInstance called.
func (ui *UserInterface) HasLayerInstance(h LayerHandle) bool {
	return ui.IsLayerValid(h) && ui.layerArena.get(h.index()).hasInstance
}

// LayerInstance returns h's installed instance, or ErrNoInstance.
func (ui *UserInterface) LayerInstance(h LayerHandle) (Layer, error) {
	if !ui.IsLayerValid(h) {
		return nil, invalidHandleError("layer", uint64(h))
	}
	slot := ui.layerArena.get(h.index())
	if !slot.hasInstance {
		return nil, ErrNoInstance
	}
	return slot.instance, nil
}

// RemoveLayer removes h, unlinking it from the layer list and the
// partitioned animator array's layer sub-ranges.
func (ui *UserInterface) RemoveLayer(h LayerHandle) error {
	if !ui.IsLayerValid(h) {
		return invalidHandleError("layer", uint64(h))
	}
	ui.removeAnimatorsForLayer(h)
	slot := ui.layerArena.get(h.index())
	if slot.next == h {
		ui.layerHead = NullLayer
	} else {
		ui.layerArena.get(slot.previous.index()).next = slot.next
		ui.layerArena.get(slot.next.index()).previous = slot.previous
		if ui.layerHead == h {
			ui.layerHead = slot.next
		}
	}
	if err := ui.layerArena.remove(h.index(), h.generation()); err != nil {
		return err
	}
	ui.reindexAnimatorPartitions()
	ui.markDirty(NeedsNodeUpdate)
	return nil
}

// IsLayerValid reports whether h currently identifies a live layer slot.
func (ui *UserInterface) IsLayerValid(h LayerHandle) bool {
	return ui.layerArena.valid(h.index(), h.generation())
}

// LayerCapacity returns the maximum number of simultaneously live layers.
func (ui *UserInterface) LayerCapacity() int { return SmallArenaCapacity }

// LayerUsedCount returns the number of live layers.
func (ui *UserInterface) LayerUsedCount() int { return ui.layerArena.usedCount() }

// LayerFirst returns the first layer in creation order, or NullLayer.
func (ui *UserInterface) LayerFirst() LayerHandle { return ui.layerHead }

// LayerLast returns the last layer in creation order, or NullLayer.
func (ui *UserInterface) LayerLast() LayerHandle {
	if ui.layerHead == NullLayer {
		return NullLayer
	}
	return ui.layerArena.get(ui.layerHead.index()).previous
}

// LayerNext returns the layer after h in creation order, or NullLayer.
func (ui *UserInterface) LayerNext(h LayerHandle) LayerHandle {
	next := ui.layerArena.get(h.index()).next
	if next == ui.layerHead {
		return NullLayer
	}
	return next
}

// LayerPrevious returns the layer before h in creation order, or NullLayer.
func (ui *UserInterface) LayerPrevious(h LayerHandle) LayerHandle {
	if h == ui.layerHead {
		return NullLayer
	}
	return ui.layerArena.get(h.index()).previous
}

// forEachLayer walks all live layers with an instance installed, in
// creation order.
func (ui *UserInterface) forEachLayer(fn func(LayerHandle, Layer)) {
	if ui.layerHead == NullLayer {
		return
	}
	h := ui.layerHead
	for {
		slot := ui.layerArena.get(h.index())
		if slot.hasInstance {
			fn(h, slot.instance)
		}
		h = slot.next
		if h == ui.layerHead {
			return
		}
	}
}
