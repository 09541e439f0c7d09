package uicore

// UserInterface is the engine: one generational arena each for nodes,
// layers, layouters and animators, the top-level order list, the dirty
// lattice, and the per-update derived-state buffers computed by Update.
// Every mutation goes through a method on *UserInterface; nothing is
// exported on the node/layer/layouter/animator payload types themselves.
type UserInterface struct {
	nodes         *arena[node]
	layerArena    *arena[layerSlot]
	layouterArena *arena[layouterSlot]
	animatorArena *arena[animatorSlot]

	order        orderArena
	topLevelHead NodeHandle
	layerHead    LayerHandle
	layouterHead LayouterHandle

	dirty UserInterfaceStates

	animatorOrder                      []AnimatorHandle
	region1End, region2End, region3End int

	dataAttachments map[NodeHandle][]dataAttachment
	nodeLayouts     map[NodeHandle][]LayoutHandle

	currentPressed, currentCaptured NodeHandle
	currentHovered, currentFocused  NodeHandle
	globalPointerPosition           Vec2
	hasGlobalPointerPosition        bool

	animationTime float64

	size, windowSize, framebufferSize Vec2
	renderer                          Renderer
	hasRenderer                       bool

	// Per-update derived state, sized to the node arena and
	// rebuilt wholesale by Update every call; none of it survives across
	// a node-arena reallocation boundary except by being recomputed.
	visibleNodeIDs     []NodeHandle
	visibleChildCounts []int
	visibleDepths      []int
	absoluteOffset     []Vec2
	absoluteOpacity    []float64
	drawVisible        []bool
	eventMask          []bool
	enabledMask        []bool

	clipRectOffsets    []Vec2
	clipRectSizes      []Vec2
	clipRectNodeCounts []int
	clipRunIndex       []int

	layerPartitions     map[LayerHandle]LayerUpdatePartition
	layerDrawPartitions map[LayerHandle]LayerDrawPartition

	injectQueue []syntheticPointerEvent
}

// New creates an empty UserInterface sized to size in UI units, with
// windowSize defaulting to the same value (no coordinate scaling) until
// SetSize is called.
func New(size Vec2) *UserInterface {
	ui := &UserInterface{
		nodes:           newArena[node](NodeCapacity, nodeGenBits),
		layerArena:      newArena[layerSlot](SmallArenaCapacity, smallGenBits),
		layouterArena:   newArena[layouterSlot](SmallArenaCapacity, smallGenBits),
		animatorArena:   newArena[animatorSlot](SmallArenaCapacity, smallGenBits),
		order:           orderArena{},
		dataAttachments: make(map[NodeHandle][]dataAttachment),
		nodeLayouts:     make(map[NodeHandle][]LayoutHandle),
		size:            size,
		windowSize:      size,
	}
	return ui
}

// NoCreate returns a zero-value UserInterface with no arenas allocated,
// matching the source's NoCreateT construction tag: only useful as a
// move-assignment target before first real use. Any method that touches
// the arenas of the result panics, since they are nil.
func NoCreate() *UserInterface { return &UserInterface{} }

// SetSize sets the UI logical size, the window size events are reported
// in, and the framebuffer size the renderer targets, all independently
// scalable.
func (ui *UserInterface) SetSize(size, windowSize, framebufferSize Vec2) {
	ui.size = size
	ui.windowSize = windowSize
	ui.framebufferSize = framebufferSize
	if ui.hasRenderer {
		ui.renderer.SetupFramebuffers(framebufferSize)
	}
	ui.markDirty(NeedsLayoutUpdate)
}

// SetSizeUnscaled sets all three sizes to the same value.
func (ui *UserInterface) SetSizeUnscaled(size Vec2) {
	ui.SetSize(size, size, size)
}

// Size returns the current UI logical size.
func (ui *UserInterface) Size() Vec2 { return ui.size }

// WindowSize returns the current window size used for event coordinate
// mapping.
func (ui *UserInterface) WindowSize() Vec2 { return ui.windowSize }

// FramebufferSize returns the current renderer framebuffer size.
func (ui *UserInterface) FramebufferSize() Vec2 { return ui.framebufferSize }

// SetRendererInstance installs r as the UI's renderer. Fails with
// ErrAlreadySet if one is already installed.
func (ui *UserInterface) SetRendererInstance(r Renderer) error {
	if ui.hasRenderer {
		return ErrAlreadySet
	}
	if r.Features()&RendererComposite == 0 {
		compositeInstalled := false
		ui.forEachLayer(func(h LayerHandle, _ Layer) {
			if ui.layerArena.get(h.index()).features&LayerComposite != 0 {
				compositeInstalled = true
			}
		})
		if compositeInstalled {
			return ErrIncompatibleCapabilities
		}
	}
	ui.renderer = r
	ui.hasRenderer = true
	if ui.framebufferSize.X != 0 || ui.framebufferSize.Y != 0 {
		r.SetupFramebuffers(ui.framebufferSize)
	}
	return nil
}

// HasRendererInstance reports whether SetRendererInstance has been called.
func (ui *UserInterface) HasRendererInstance() bool { return ui.hasRenderer }

// RendererInstance returns the installed renderer, or ErrNoInstance.
func (ui *UserInterface) RendererInstance() (Renderer, error) {
	if !ui.hasRenderer {
		return nil, ErrNoInstance
	}
	return ui.renderer, nil
}

// Draw runs the per-frame compositing/drawing sweep: Update is
// assumed to already have been called this frame. Every layer reporting
// LayerComposite has Composite invoked first (in creation order), then
// every layer reporting LayerDraw has Draw invoked with its compacted
// draw partition.
func (ui *UserInterface) Draw() error {
	if !ui.hasRenderer {
		return ErrNoInstance
	}
	ui.renderer.Transition(RenderStateComposite, 0)
	ui.forEachLayer(func(h LayerHandle, l Layer) {
		slot := ui.layerArena.get(h.index())
		if slot.features&LayerComposite == 0 {
			return
		}
		part := ui.layerPartitions[h]
		l.Composite(ui.renderer, part.CompositeRectOffsets, part.CompositeRectSizes, Vec2{}, ui.size)
	})

	draw := DrawState(0)
	ui.renderer.Transition(RenderStateDraw, draw)
	ui.forEachLayer(func(h LayerHandle, l Layer) {
		slot := ui.layerArena.get(h.index())
		if slot.features&LayerDraw == 0 {
			return
		}
		prev := draw
		if slot.features&LayerDrawUsesBlending != 0 {
			draw |= DrawStateBlending
		}
		if slot.features&LayerDrawUsesScissor != 0 {
			draw |= DrawStateScissor
		}
		if draw != prev {
			ui.renderer.Transition(RenderStateDraw, draw)
		}
		l.Draw(ui.renderer, ui.layerDrawPartitions[h])
	})
	ui.renderer.Transition(RenderStateFinal, 0)
	return nil
}
