package uicore

// clipFrame is one entry of the clip-cull stack used by Update step 9.
// remaining counts how many more pre-order entries (including nested
// subtrees) belong to this frame before it reverts to its parent's clip;
// -1 marks the base frame, which never pops.
type clipFrame struct {
	rect      Rect
	remaining int
}

// Update runs the full tree/layout/partition pipeline: visibility ordering,
// layout solving, offset/opacity propagation, clip culling, partitioning and
// per-layer update dispatch. The UI size must have been set to a non-zero
// value before the first call.
func (ui *UserInterface) Update() error {
	if ui.size.X == 0 || ui.size.Y == 0 {
		return ErrIncompatibleCapabilities
	}
	state := ui.State()
	if state&(NeedsNodeClean|NeedsDataClean) != 0 {
		if err := ui.Clean(); err != nil {
			return err
		}
	}

	ui.forEachLayer(func(_ LayerHandle, l Layer) { l.PreUpdate(state) })

	ui.orderVisibleNodes()
	ui.solveLayouts()
	ui.propagateAbsoluteOffsets()
	ui.propagateAbsoluteOpacities()
	ui.clipCull()
	ui.propagateEventAndEnabledMasks()
	ui.partitionData()
	ui.emitVisibilityLostEvents()
	ui.updateLayers(state)

	ui.clearUpdateBits()
	return nil
}

// orderVisibleNodes performs a depth-first pre-order walk over top-level
// hierarchies in order-list order, skipping any subtree rooted at a Hidden
// node.
func (ui *UserInterface) orderVisibleNodes() {
	ui.visibleNodeIDs = ui.visibleNodeIDs[:0]
	ui.visibleChildCounts = ui.visibleChildCounts[:0]
	ui.visibleDepths = ui.visibleDepths[:0]

	if ui.topLevelHead == NullNode {
		return
	}
	top := ui.topLevelHead
	for {
		if ui.nodeVisible(top) {
			ui.visitVisible(top, 0)
		}
		top = ui.NodeOrderNext(top)
		if top == NullNode {
			break
		}
	}
}

// visitVisible appends h and its non-Hidden descendants in pre-order,
// recording each one's subtree size minus one (its "child count") and its
// depth below the nearest top-level ancestor. depth drives solveLayouts'
// per-level solve order.
func (ui *UserInterface) visitVisible(h NodeHandle, depth int) int {
	n := ui.nodes.get(h.index())
	if n.flags&NodeHidden != 0 {
		return -1
	}
	pos := len(ui.visibleNodeIDs)
	ui.visibleNodeIDs = append(ui.visibleNodeIDs, h)
	ui.visibleChildCounts = append(ui.visibleChildCounts, 0)
	ui.visibleDepths = append(ui.visibleDepths, depth)

	count := 0
	for c := n.firstChild; c != NullNode; c = ui.nodes.get(c.index()).nextSibling {
		if ui.IsNodeTopLevel(c) {
			continue
		}
		sub := ui.visitVisible(c, depth+1)
		if sub >= 0 {
			count += sub + 1
		}
	}
	ui.visibleChildCounts[pos] = count
	return count
}

// FrontToBackTopLevel returns the top-level nodes in reverse draw order
// (topmost/frontmost first), the order event hit-testing walks. Computed
// on demand rather than cached; hitTest walks the same order directly
// and does not call it.
func (ui *UserInterface) FrontToBackTopLevel() []NodeHandle {
	var out []NodeHandle
	if ui.topLevelHead == NullNode {
		return out
	}
	for h := ui.NodeOrderLast(); ; h = ui.NodeOrderPrevious(h) {
		out = append(out, h)
		if h == ui.topLevelHead {
			break
		}
	}
	return out
}

// solveLayouts partitions the visible tree into levels by depth below the
// nearest top-level ancestor (level 0 is every top-level node itself, level
// 1 their children, and so on) and solves one level at a time, shallowest
// first. Within a level every layouter runs in list order over just that
// level's attached nodes. This guarantees a node's layout is only ever
// solved once every ancestor's layout — regardless of which layouter owns
// which node — has already been written back, mirroring the dependency-
// level partition (nodeLayoutLevels/topLevelLayoutLevels) the level-by-level
// solve in the original is built around, without requiring layouters to
// declare explicit cross-layouter dependencies.
func (ui *UserInterface) solveLayouts() {
	visible := make(map[NodeHandle]bool, len(ui.visibleNodeIDs))
	maxDepth := 0
	for i, h := range ui.visibleNodeIDs {
		visible[h] = true
		if d := ui.visibleDepths[i]; d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]NodeHandle, maxDepth+1)
	for i, h := range ui.visibleNodeIDs {
		d := ui.visibleDepths[i]
		levels[d] = append(levels[d], h)
	}

	for _, level := range levels {
		if len(level) == 0 {
			continue
		}
		for lh := ui.layouterHead; lh != NullLayouter; {
			slot := ui.layouterArena.get(lh.index())
			if slot.hasInstance {
				ui.solveOneLayouterLevel(lh, slot.instance, level, visible)
			}
			lh = ui.LayouterNext(lh)
			if lh == ui.layouterHead {
				break
			}
		}
	}
}

func (ui *UserInterface) solveOneLayouterLevel(lh LayouterHandle, inst Layouter, level []NodeHandle, visible map[NodeHandle]bool) {
	var nodes []NodeHandle
	var layoutIDs []uint32
	for _, node := range level {
		if !ui.IsNodeValid(node) {
			continue
		}
		for _, l := range ui.nodeLayouts[node] {
			if l.Layouter == lh {
				nodes = append(nodes, node)
				layoutIDs = append(layoutIDs, l.Local)
			}
		}
	}
	if len(nodes) == 0 {
		return
	}
	mask := make([]bool, len(nodes))
	parents := make([]NodeHandle, len(nodes))
	offsets := make([]Vec2, len(nodes))
	sizes := make([]Vec2, len(nodes))
	for i, node := range nodes {
		mask[i] = visible[node]
		n := ui.nodes.get(node.index())
		parents[i] = n.parent
		offsets[i] = n.offset
		sizes[i] = n.size
	}

	inst.Update(mask, layoutIDs, parents, offsets, sizes)

	for i, node := range nodes {
		if !mask[i] {
			continue
		}
		n := ui.nodes.get(node.index())
		n.offset = offsets[i]
		n.size = sizes[i]
	}
}

// propagateAbsoluteOffsets accumulates each visible node's parent-relative
// offset into an absolute offset via a single pre-order pass.
func (ui *UserInterface) propagateAbsoluteOffsets() {
	ui.ensureNodeScratch()
	for _, h := range ui.visibleNodeIDs {
		n := ui.nodes.get(h.index())
		parentOffset := Vec2{}
		if n.parent != NullNode {
			parentOffset = ui.absoluteOffset[n.parent.index()]
		}
		ui.absoluteOffset[h.index()] = parentOffset.Add(n.offset)
	}
}

// propagateAbsoluteOpacities accumulates each visible node's opacity with
// its parent's, via a single pre-order pass.
func (ui *UserInterface) propagateAbsoluteOpacities() {
	for _, h := range ui.visibleNodeIDs {
		n := ui.nodes.get(h.index())
		parentOpacity := 1.0
		if n.parent != NullNode {
			parentOpacity = ui.absoluteOpacity[n.parent.index()]
		}
		ui.absoluteOpacity[h.index()] = parentOpacity * n.opacity
	}
}

// clipCull walks the visible nodes in pre-order, intersecting each node's
// rectangle against the nearest ancestor clip rectangle and recording which
// nodes survive (drawVisible) along with a run-length-encoded clip-rect
// history (clipRectOffsets/Sizes/NodeCounts, indexed per node by
// clipRunIndex).
func (ui *UserInterface) clipCull() {
	for i := range ui.drawVisible {
		ui.drawVisible[i] = false
	}
	ui.clipRectOffsets = ui.clipRectOffsets[:0]
	ui.clipRectSizes = ui.clipRectSizes[:0]
	ui.clipRectNodeCounts = ui.clipRectNodeCounts[:0]
	ui.clipRunIndex = ui.clipRunIndex[:0]

	stack := []clipFrame{{rect: Rect{Offset: Vec2{}, Size: ui.size}, remaining: -1}}

	i := 0
	for i < len(ui.visibleNodeIDs) {
		h := ui.visibleNodeIDs[i]
		childCount := ui.visibleChildCounts[i]
		n := ui.nodes.get(h.index())
		nodeRect := Rect{Offset: ui.absoluteOffset[h.index()], Size: n.size}

		current := stack[len(stack)-1].rect
		_, visible := current.Intersect(nodeRect)

		if len(ui.clipRectNodeCounts) > 0 && ui.clipRectOffsets[len(ui.clipRectOffsets)-1] == current.Offset && ui.clipRectSizes[len(ui.clipRectSizes)-1] == current.Size {
			ui.clipRectNodeCounts[len(ui.clipRectNodeCounts)-1]++
		} else {
			ui.clipRectOffsets = append(ui.clipRectOffsets, current.Offset)
			ui.clipRectSizes = append(ui.clipRectSizes, current.Size)
			ui.clipRectNodeCounts = append(ui.clipRectNodeCounts, 1)
		}
		runIdx := len(ui.clipRectOffsets) - 1
		ui.clipRunIndex = append(ui.clipRunIndex, runIdx)

		if !visible {
			ui.decrementClipStack(stack, childCount+1)
			stack = ui.popExhausted(stack)
			for k := 1; k <= childCount; k++ {
				ui.clipRunIndex = append(ui.clipRunIndex, runIdx)
			}
			i += childCount + 1
			continue
		}

		ui.drawVisible[h.index()] = true
		ui.decrementClipStack(stack, 1)
		stack = ui.popExhausted(stack)
		if n.flags&NodeClip != 0 && childCount > 0 {
			newRect, ok := current.Intersect(nodeRect)
			if !ok {
				newRect = Rect{}
			}
			stack = append(stack, clipFrame{rect: newRect, remaining: childCount})
		}
		i++
	}
}

func (ui *UserInterface) decrementClipStack(stack []clipFrame, n int) {
	for idx := range stack {
		if stack[idx].remaining >= 0 {
			stack[idx].remaining -= n
		}
	}
}

func (ui *UserInterface) popExhausted(stack []clipFrame) []clipFrame {
	for len(stack) > 1 && stack[len(stack)-1].remaining <= 0 {
		stack = stack[:len(stack)-1]
	}
	return stack
}

// propagateEventAndEnabledMasks combines each visible node's own NoEvents/
// Disabled flags with its parent's already-computed mask.
func (ui *UserInterface) propagateEventAndEnabledMasks() {
	for _, h := range ui.visibleNodeIDs {
		n := ui.nodes.get(h.index())
		parentEvents, parentEnabled := true, true
		if n.parent != NullNode {
			parentEvents = ui.eventMask[n.parent.index()]
			parentEnabled = ui.enabledMask[n.parent.index()]
		}
		ui.eventMask[h.index()] = parentEvents && n.flags&NodeNoEvents == 0
		ui.enabledMask[h.index()] = parentEnabled && n.flags&NodeDisabled == 0
	}
}

// emitVisibilityLostEvents checks the currently pressed, captured, hovered
// and focused nodes against their freshly computed visibility/event-mask/
// focusable state and delivers a visibility-lost event to any that no
// longer qualify.
func (ui *UserInterface) emitVisibilityLostEvents() {
	lost := make(map[NodeHandle]bool, 4)
	check := func(h NodeHandle, needFocusable bool) bool {
		if h == NullNode {
			return false
		}
		if !ui.IsNodeValid(h) {
			return true
		}
		if !ui.drawVisible[h.index()] || !ui.eventMask[h.index()] {
			return true
		}
		if needFocusable && ui.nodes.get(h.index()).flags&NodeFocusable == 0 {
			return true
		}
		return false
	}
	if check(ui.currentPressed, false) {
		lost[ui.currentPressed] = true
		ui.currentPressed = NullNode
	}
	if check(ui.currentCaptured, false) {
		lost[ui.currentCaptured] = true
		ui.currentCaptured = NullNode
	}
	if check(ui.currentHovered, false) {
		lost[ui.currentHovered] = true
		ui.currentHovered = NullNode
	}
	if check(ui.currentFocused, true) {
		lost[ui.currentFocused] = true
		ui.currentFocused = NullNode
	}
	for h := range lost {
		ui.deliverVisibilityLost(h)
	}
}

// updateLayers calls each layer's Update with the partitioned slices built
// by partitionData.
func (ui *UserInterface) updateLayers(state UserInterfaceStates) {
	ui.forEachLayer(func(h LayerHandle, l Layer) {
		l.Update(ui.layerPartitions[h])
	})
}

// ensureNodeScratch grows the per-node derived arrays to the current node
// arena length.
func (ui *UserInterface) ensureNodeScratch() {
	n := ui.nodes.len()
	if len(ui.absoluteOffset) >= n {
		return
	}
	grow := func(nextLen int) {
		for len(ui.absoluteOffset) < nextLen {
			ui.absoluteOffset = append(ui.absoluteOffset, Vec2{})
			ui.absoluteOpacity = append(ui.absoluteOpacity, 1)
			ui.drawVisible = append(ui.drawVisible, false)
			ui.eventMask = append(ui.eventMask, true)
			ui.enabledMask = append(ui.enabledMask, true)
		}
	}
	grow(n)
}
