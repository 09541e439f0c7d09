package uicore

// Clean performs the removal sweep: it is always safe to call; it is a
// no-op unless NeedsNodeClean or NeedsDataClean (UI-wide or per-layer) is
// set.
func (ui *UserInterface) Clean() error {
	state := ui.State()
	if state&NeedsNodeClean != 0 {
		ui.cleanNodes()
	}
	if state&NeedsDataClean != 0 {
		ui.cleanData()
	}
	ui.clearCleanBits()
	return nil
}

// cleanNodes repeatedly scans every present node slot by its parent field
// — not the intrusive child list, which a direct RemoveNode call has
// already severed on the removed node's own slot before that slot's
// children are ever looked at — and removes any node whose parent is
// non-null and already invalid. One pass only catches direct children of
// a node removed outside of Clean(); removing those exposes their own
// children as newly orphaned, so the scan repeats until a full pass
// removes nothing. This mirrors the original's approach of rebuilding
// parent/child structure from the flat node array on every clean() call
// instead of trusting a list the removal itself may have torn apart.
func (ui *UserInterface) cleanNodes() {
	for {
		removedAny := false
		for i := 0; i < ui.nodes.len(); i++ {
			if !ui.nodes.isPresent(uint32(i)) {
				continue
			}
			parent := ui.nodes.get(uint32(i)).parent
			if parent == NullNode || ui.IsNodeValid(parent) {
				continue
			}
			h := makeNodeHandle(uint32(i), ui.nodes.generationAt(uint32(i)))
			ui.RemoveNode(h)
			removedAny = true
		}
		if !removedAny {
			break
		}
	}

	live := ui.nodeGenerations()
	ui.forEachLayer(func(_ LayerHandle, l Layer) { l.CleanNodes(live) })
	ui.forEachLayouter(func(_ LayouterHandle, l Layouter) { l.CleanNodes(live) })
	for i := 0; i < ui.animatorArena.len(); i++ {
		if !ui.animatorArena.isPresent(uint32(i)) {
			continue
		}
		slot := ui.animatorArena.get(uint32(i))
		if slot.hasInstance && slot.node != NullNode {
			slot.instance.Clean(nil)
		}
	}
}

// cleanData calls CleanData on every layer whose own State() reports
// NeedsDataClean, passing the animators currently attached to that
// layer's data.
func (ui *UserInterface) cleanData() {
	ui.forEachLayer(func(h LayerHandle, l Layer) {
		if l.State()&NeedsDataClean == 0 {
			return
		}
		l.CleanData(ui.animatorsAttachedToLayer(h))
	})
}

// animatorsAttachedToLayer returns every live animator whose slot is
// attached to layer, in animator-arena slot order.
func (ui *UserInterface) animatorsAttachedToLayer(layer LayerHandle) []AnimatorHandle {
	var out []AnimatorHandle
	for i := 0; i < ui.animatorArena.len(); i++ {
		if !ui.animatorArena.isPresent(uint32(i)) {
			continue
		}
		slot := ui.animatorArena.get(uint32(i))
		if slot.layer == layer {
			out = append(out, makeAnimatorHandle(uint32(i), ui.animatorArena.generationAt(uint32(i))))
		}
	}
	return out
}
