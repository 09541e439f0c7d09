package uicore

// UserInterfaceStates is a bitset describing outstanding work the next
// Update() call needs to perform. Bits form an implication lattice:
// setting a bit for an earlier pipeline stage also sets every bit
// downstream of it (see implication below), so callers only ever need to
// set the bit for the specific change they made and the lattice fills in
// the rest.
type UserInterfaceStates uint32

const (
	// NeedsNodeClean indicates at least one node is pending removal sweep.
	// Implies NeedsNodeUpdate, since a removed node changes the visible
	// set, and NeedsDataClean.
	NeedsNodeClean UserInterfaceStates = 1 << iota
	// NeedsDataClean indicates at least one layer has data pending removal
	// sweep. Implies no other bit.
	NeedsDataClean
	// NeedsLayoutAssignmentUpdate indicates a node's layouter assignment
	// changed. Implies NeedsLayoutUpdate.
	NeedsLayoutAssignmentUpdate
	// NeedsLayoutUpdate indicates at least one node's offset, size or
	// layouter-driven placement needs recomputing. Implies
	// NeedsNodeClipUpdate.
	NeedsLayoutUpdate
	// NeedsNodeOpacityUpdate indicates at least one node's local opacity
	// changed and absolute opacity needs re-propagating. Implies
	// NeedsDataUpdate.
	NeedsNodeOpacityUpdate
	// NeedsNodeClipUpdate indicates a node's NodeClip flag or rectangle
	// changed. Implies NeedsNodeEnabledUpdate.
	NeedsNodeClipUpdate
	// NeedsNodeEnabledUpdate indicates a node's NodeDisabled flag changed.
	// Implies NeedsNodeEventMaskUpdate and NeedsDataAttachmentUpdate.
	NeedsNodeEnabledUpdate
	// NeedsNodeEventMaskUpdate indicates a node's NodeNoEvents flag changed.
	// Implies no other bit.
	NeedsNodeEventMaskUpdate
	// NeedsDataAttachmentUpdate indicates a node's set of attached data
	// handles changed. Implies NeedsDataUpdate.
	NeedsDataAttachmentUpdate
	// NeedsDataUpdate indicates the data/draw partition needs recomputing
	// for at least one layer.
	NeedsDataUpdate
	// NeedsNodeUpdate indicates the visible-node traversal itself needs
	// rerunning: a node was created, removed, reparented, reordered, hidden
	// or had its flags changed.
	NeedsNodeUpdate
	// NeedsAnimationAdvance indicates at least one animator has pending
	// advance work for the current animation time.
	NeedsAnimationAdvance
)

// implication encodes the "setting bit X also sets bits Y..." edges of the
// lattice, applied transitively by markDirty:
//
//	NeedsNodeClean            ⇒ NeedsNodeUpdate, NeedsDataClean
//	NeedsNodeUpdate           ⇒ NeedsLayoutAssignmentUpdate, NeedsNodeOpacityUpdate
//	NeedsLayoutAssignmentUpdate ⇒ NeedsLayoutUpdate
//	NeedsLayoutUpdate         ⇒ NeedsNodeClipUpdate
//	NeedsNodeClipUpdate       ⇒ NeedsNodeEnabledUpdate
//	NeedsNodeEnabledUpdate    ⇒ NeedsNodeEventMaskUpdate, NeedsDataAttachmentUpdate
//	NeedsDataAttachmentUpdate ⇒ NeedsDataUpdate
//	NeedsNodeOpacityUpdate    ⇒ NeedsDataUpdate
//
// NeedsAnimationAdvance is orthogonal and never appears here.
var implication = map[UserInterfaceStates][]UserInterfaceStates{
	NeedsNodeClean:              {NeedsNodeUpdate, NeedsDataClean},
	NeedsNodeUpdate:             {NeedsLayoutAssignmentUpdate, NeedsNodeOpacityUpdate},
	NeedsLayoutAssignmentUpdate: {NeedsLayoutUpdate},
	NeedsLayoutUpdate:           {NeedsNodeClipUpdate},
	NeedsNodeClipUpdate:         {NeedsNodeEnabledUpdate},
	NeedsNodeEnabledUpdate:      {NeedsNodeEventMaskUpdate, NeedsDataAttachmentUpdate},
	NeedsDataAttachmentUpdate:   {NeedsDataUpdate},
	NeedsNodeOpacityUpdate:      {NeedsDataUpdate},
}

// markDirty ORs bit, and transitively every bit it implies, into the
// stored dirty state. Deliberately eager (computes the full closure on
// every call) rather than lazy: an eager bit-OR at the mutation site
// instead of a lazy closure computed at query time.
func (ui *UserInterface) markDirty(bit UserInterfaceStates) {
	if ui.dirty&bit == bit {
		return
	}
	ui.dirty |= bit
	for _, next := range implication[bit] {
		ui.markDirty(next)
	}
}

// State returns the dirty bits accumulated since the last Clean()/Update(),
// unioned with whatever each attached layer, layouter and animator
// currently reports from its own local state — the aggregate is polled,
// not cached, for collaborator-local bits.
func (ui *UserInterface) State() UserInterfaceStates {
	state := ui.dirty
	ui.forEachLayer(func(h LayerHandle, l Layer) {
		state |= l.State()
	})
	ui.forEachLayouter(func(h LayouterHandle, l Layouter) {
		state |= l.State()
	})
	if ui.anyAnimatorNeedsAdvance() {
		state |= NeedsAnimationAdvance
	}
	return state
}

// clearCleanBits clears NeedsNodeClean/NeedsDataClean at the end of Clean().
func (ui *UserInterface) clearCleanBits() {
	ui.dirty &^= NeedsNodeClean | NeedsDataClean
}

// clearUpdateBits clears every bit except NeedsNodeClean/NeedsDataClean at
// the end of Update() (those two are only ever cleared by Clean()).
func (ui *UserInterface) clearUpdateBits() {
	ui.dirty &= NeedsNodeClean | NeedsDataClean
}
