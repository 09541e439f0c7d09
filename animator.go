package uicore

// NodeAnimations is the set of effects a NodeAnimator's advance step can
// report, aggregated into UI dirty bits by AdvanceAnimations.
type NodeAnimations uint8

const (
	NodeAnimOffsetSize NodeAnimations = 1 << iota
	NodeAnimEnabled
	NodeAnimClip
	NodeAnimRemoval
)

// Animator is the time-driven mutator collaborator. Every
// animator kind implements this; NodeAnimator additionally implements
// AdvanceNode.
type Animator interface {
	// NeedsAdvance reports this animator's local dirty flag: the driver
	// only calls Update for animators where this is true, and State()
	// folds it into NeedsAnimationAdvance for the UI-wide aggregate.
	NeedsAdvance() bool
	// Update is called once per AdvanceAnimations(t) for every animator
	// reporting NeedsAdvance; it returns whether the kind-specific advance
	// and/or clean should run this frame.
	Update(t float64, active []bool, factors []float64, remove []bool) (needsAdvance, needsClean bool)
	// Advance runs for generic animators (region 1/2 and per-layer generic
	// animators in region 4).
	Advance(active []bool, factors []float64)
	Clean(remove []bool)
}

// NodeAnimator additionally mutates node geometry/flags directly and can
// request node removal.
type NodeAnimator interface {
	Animator
	AdvanceNode(active []bool, factors []float64, nodeOffsets, nodeSizes []Vec2, nodeFlags []NodeFlags, nodesRemove []bool) NodeAnimations
}

// AnimatorKind selects which partition region an animator belongs
// to and which advance delegation path AdvanceAnimations uses for it.
type AnimatorKind uint8

const (
	// AnimatorGeneric is a generic animator with no attachment (region 1)
	// or, once attached to a node, region 2. Attached to a layer's data
	// instead, it becomes a region-4 per-layer generic animator.
	AnimatorGeneric AnimatorKind = iota
	// AnimatorNode is always node-attached (region 3).
	AnimatorNode
	// AnimatorData is always layer/data-attached (region 4).
	AnimatorData
	// AnimatorStyle is always layer/data-attached (region 4).
	AnimatorStyle
)

type animatorSlot struct {
	instance    Animator
	hasInstance bool
	kind        AnimatorKind
	node        NodeHandle
	layer       LayerHandle
	data        DataHandle
}

// CreateAnimator allocates a new animator slot of the given kind with no
// instance and no attachment yet.
func (ui *UserInterface) CreateAnimator(kind AnimatorKind) (AnimatorHandle, error) {
	index, generation, err := ui.animatorArena.allocate()
	if err != nil {
		return NullAnimator, err
	}
	h := makeAnimatorHandle(index, generation)
	*ui.animatorArena.get(index) = animatorSlot{kind: kind, node: NullNode, layer: NullLayer, data: NullData}
	ui.reindexAnimatorPartitions()
	return h, nil
}

// SetAnimatorInstance installs inst as h's implementation.
func (ui *UserInterface) SetAnimatorInstance(h AnimatorHandle, inst Animator) error {
	if !ui.IsAnimatorValid(h) {
		return invalidHandleError("animator", uint64(h))
	}
	slot := ui.animatorArena.get(h.index())
	if slot.hasInstance {
		return ErrAlreadySet
	}
	if slot.kind == AnimatorNode {
		if _, ok := inst.(NodeAnimator); !ok {
			return ErrIncompatibleCapabilities
		}
	}
	slot.instance = inst
	slot.hasInstance = true
	return nil
}

// HasAnimatorInstance reports whether h has had SetAnimatorInstance called.
func (ui *UserInterface) HasAnimatorInstance(h AnimatorHandle) bool {
	return ui.IsAnimatorValid(h) && ui.animatorArena.get(h.index()).hasInstance
}

// AnimatorInstance returns h's installed instance, or ErrNoInstance.
func (ui *UserInterface) AnimatorInstance(h AnimatorHandle) (Animator, error) {
	if !ui.IsAnimatorValid(h) {
		return nil, invalidHandleError("animator", uint64(h))
	}
	slot := ui.animatorArena.get(h.index())
	if !slot.hasInstance {
		return nil, ErrNoInstance
	}
	return slot.instance, nil
}

// AttachAnimatorToNode attaches a generic or node animator to node.
func (ui *UserInterface) AttachAnimatorToNode(h AnimatorHandle, node NodeHandle) error {
	if !ui.IsAnimatorValid(h) {
		return invalidHandleError("animator", uint64(h))
	}
	if !ui.IsNodeValid(node) {
		return invalidHandleError("node", uint64(node))
	}
	slot := ui.animatorArena.get(h.index())
	if slot.kind != AnimatorGeneric && slot.kind != AnimatorNode {
		return ErrIncompatibleCapabilities
	}
	slot.node = node
	ui.reindexAnimatorPartitions()
	return nil
}

// AttachAnimatorToData attaches a generic, data or style animator to a
// data record owned by layer. Requires layer to be valid, else returns
// ErrIncompatibleCapabilities: a data/style animator needs a layer set.
func (ui *UserInterface) AttachAnimatorToData(h AnimatorHandle, layer LayerHandle, data DataHandle) error {
	if !ui.IsAnimatorValid(h) {
		return invalidHandleError("animator", uint64(h))
	}
	if !ui.IsLayerValid(layer) {
		return ErrIncompatibleCapabilities
	}
	slot := ui.animatorArena.get(h.index())
	slot.layer = layer
	slot.data = data
	ui.reindexAnimatorPartitions()
	return nil
}

// RemoveAnimator removes h from the partitioned array.
func (ui *UserInterface) RemoveAnimator(h AnimatorHandle) error {
	if !ui.IsAnimatorValid(h) {
		return invalidHandleError("animator", uint64(h))
	}
	if err := ui.animatorArena.remove(h.index(), h.generation()); err != nil {
		return err
	}
	ui.reindexAnimatorPartitions()
	return nil
}

// IsAnimatorValid reports whether h currently identifies a live animator.
func (ui *UserInterface) IsAnimatorValid(h AnimatorHandle) bool {
	return ui.animatorArena.valid(h.index(), h.generation())
}

// AnimatorCapacity returns the maximum number of simultaneously live
// animators.
func (ui *UserInterface) AnimatorCapacity() int { return SmallArenaCapacity }

// AnimatorUsedCount returns the number of live animators.
func (ui *UserInterface) AnimatorUsedCount() int { return ui.animatorArena.usedCount() }

// reindexAnimatorPartitions rebuilds ui.animatorOrder, the canonical
// partitioned ordering: generic/unattached, generic node-attached, node
// animators, then per-layer {generic, data, style} in layer list order.
// O(n) in the number of live animators and layers — mutations stay O(n)
// and benefit from cache locality by keeping this as an explicit index
// slice rather than true array compaction.
func (ui *UserInterface) reindexAnimatorPartitions() {
	var genericFree, genericNode, node []AnimatorHandle
	byLayer := make(map[LayerHandle][3][]AnimatorHandle) // [generic, data, style]

	for i := 0; i < ui.animatorArena.len(); i++ {
		if !ui.animatorArena.isPresent(uint32(i)) {
			continue
		}
		h := makeAnimatorHandle(uint32(i), ui.animatorArena.generationAt(uint32(i)))
		slot := ui.animatorArena.get(uint32(i))
		switch {
		case slot.layer != NullLayer:
			bucket := byLayer[slot.layer]
			switch slot.kind {
			case AnimatorData:
				bucket[1] = append(bucket[1], h)
			case AnimatorStyle:
				bucket[2] = append(bucket[2], h)
			default:
				bucket[0] = append(bucket[0], h)
			}
			byLayer[slot.layer] = bucket
		case slot.kind == AnimatorNode:
			node = append(node, h)
		case slot.node != NullNode:
			genericNode = append(genericNode, h)
		default:
			genericFree = append(genericFree, h)
		}
	}

	order := make([]AnimatorHandle, 0, ui.animatorArena.usedCount())
	order = append(order, genericFree...)
	order = append(order, genericNode...)
	order = append(order, node...)
	ui.region1End = len(genericFree)
	ui.region2End = ui.region1End + len(genericNode)
	ui.region3End = ui.region2End + len(node)

	if ui.layerHead != NullLayer {
		l := ui.layerHead
		for {
			bucket := byLayer[l]
			order = append(order, bucket[0]...)
			order = append(order, bucket[1]...)
			order = append(order, bucket[2]...)
			l = ui.layerArena.get(l.index()).next
			if l == ui.layerHead {
				break
			}
		}
	}
	ui.animatorOrder = order
}

// removeAnimatorsForLayer removes every animator currently attached to
// layer, called from RemoveLayer.
func (ui *UserInterface) removeAnimatorsForLayer(layer LayerHandle) {
	for i := 0; i < ui.animatorArena.len(); i++ {
		if !ui.animatorArena.isPresent(uint32(i)) {
			continue
		}
		if ui.animatorArena.get(uint32(i)).layer == layer {
			ui.animatorArena.remove(uint32(i), ui.animatorArena.generationAt(uint32(i)))
		}
	}
}

func (ui *UserInterface) anyAnimatorNeedsAdvance() bool {
	for i := 0; i < ui.animatorArena.len(); i++ {
		if !ui.animatorArena.isPresent(uint32(i)) {
			continue
		}
		slot := ui.animatorArena.get(uint32(i))
		if slot.hasInstance && slot.instance.NeedsAdvance() {
			return true
		}
	}
	return false
}

// AdvanceAnimations advances every animator reporting NeedsAdvance to
// time t. Requires t >= AnimationTime(); runs Clean() first.
func (ui *UserInterface) AdvanceAnimations(t float64) error {
	if t < ui.animationTime {
		return ErrTimeRegression
	}
	if err := ui.Clean(); err != nil {
		return err
	}

	cap := ui.animatorArena.len()
	active := make([]bool, cap)
	remove := make([]bool, cap)
	factors := make([]float64, cap)

	nodeCount := ui.nodes.len()
	nodesRemove := make([]bool, nodeCount)
	nodeOffsets := make([]Vec2, nodeCount)
	nodeSizes := make([]Vec2, nodeCount)
	nodeFlags := make([]NodeFlags, nodeCount)
	for i := 0; i < nodeCount; i++ {
		if !ui.nodes.isPresent(uint32(i)) {
			continue
		}
		n := ui.nodes.get(uint32(i))
		nodeOffsets[i] = n.offset
		nodeSizes[i] = n.size
		nodeFlags[i] = n.flags
	}

	var dirty UserInterfaceStates
	var nodeAnimatorRan bool
	for _, h := range ui.animatorOrder {
		slot := ui.animatorArena.get(h.index())
		if !slot.hasInstance || !slot.instance.NeedsAdvance() {
			continue
		}
		needsAdvance, needsClean := slot.instance.Update(t, active, factors, remove)
		if needsAdvance {
			switch slot.kind {
			case AnimatorNode:
				nodeAnimatorRan = true
				na := slot.instance.(NodeAnimator).AdvanceNode(active, factors, nodeOffsets, nodeSizes, nodeFlags, nodesRemove)
				if na&NodeAnimOffsetSize != 0 {
					dirty |= NeedsLayoutUpdate
				}
				if na&NodeAnimEnabled != 0 {
					dirty |= NeedsNodeEnabledUpdate
				}
				if na&NodeAnimClip != 0 {
					dirty |= NeedsNodeClipUpdate
				}
				if na&NodeAnimRemoval != 0 {
					dirty |= NeedsNodeClean
				}
			case AnimatorData:
				if layer, err := ui.LayerInstance(slot.layer); err == nil {
					layer.AdvanceDataAnimations([]AnimatorHandle{h}, active, factors)
				}
			case AnimatorStyle:
				if layer, err := ui.LayerInstance(slot.layer); err == nil {
					layer.AdvanceStyleAnimations([]AnimatorHandle{h}, active, factors)
				}
			default:
				slot.instance.Advance(active, factors)
			}
		}
		if needsClean {
			slot.instance.Clean(remove)
		}
	}

	if nodeAnimatorRan {
		for i := 0; i < nodeCount; i++ {
			if !ui.nodes.isPresent(uint32(i)) {
				continue
			}
			n := ui.nodes.get(uint32(i))
			n.offset = nodeOffsets[i]
			n.size = nodeSizes[i]
			n.flags = nodeFlags[i]
		}
	}
	for i, rm := range nodesRemove {
		if rm && ui.nodes.isPresent(uint32(i)) {
			h := makeNodeHandle(uint32(i), ui.nodes.generationAt(uint32(i)))
			ui.RemoveNode(h)
		}
	}
	if dirty != 0 {
		ui.markDirty(dirty)
	}
	ui.animationTime = t
	return nil
}

// AnimationTime returns the last time passed to a successful
// AdvanceAnimations call.
func (ui *UserInterface) AnimationTime() float64 { return ui.animationTime }
