package uicore

// arenaSlot is a tagged Used/Free slot. present distinguishes the two
// variants; instance is only meaningful when present is true. The fields
// deliberately overlap so free-list traversal works without touching the
// instance payload — in Go this just means free-list bookkeeping
// (freeNext) and the live generation share the same struct instead of a
// real union.
type arenaSlot[T any] struct {
	generation uint32 // 0 means "never allocated"; nonzero means a generation has been handed out
	present    bool   // true while the slot holds a live instance
	disabled   bool   // generation wrapped past its maximum; never reallocated
	freeNext   int32  // index of the next free slot, or -1
	instance   T
}

// arena is a generation-indexed slot table with a free list, shared by the
// node, layer, layouter and animator collections. New slots are
// popped from the free-list head if any, else appended; freed slots are
// pushed to the tail, spreading generation churn across the whole index
// space.
type arena[T any] struct {
	slots     []arenaSlot[T]
	freeHead  int32
	freeTail  int32
	maxIndex  uint32 // capacity ceiling (index bits saturated)
	genBits   uint
}

func newArena[T any](maxIndex uint32, genBits uint) *arena[T] {
	return &arena[T]{freeHead: -1, freeTail: -1, maxIndex: maxIndex, genBits: genBits}
}

// allocate pops the free-list head if any, else appends a new slot.
// Returns the slot's index and generation, or ErrCapacityExceeded.
func (a *arena[T]) allocate() (index uint32, generation uint32, err error) {
	if a.freeHead != -1 {
		i := a.freeHead
		slot := &a.slots[i]
		a.freeHead = slot.freeNext
		if a.freeHead == -1 {
			a.freeTail = -1
		}
		slot.freeNext = -1
		slot.present = true
		return uint32(i), slot.generation, nil
	}
	if uint32(len(a.slots)) >= a.maxIndex {
		return 0, 0, ErrCapacityExceeded
	}
	a.slots = append(a.slots, arenaSlot[T]{generation: 1, present: true, freeNext: -1})
	return uint32(len(a.slots) - 1), 1, nil
}

// valid reports whether (index, generation) names a live slot: the index is
// in bounds, the slot's generation matches, and the generation is non-zero.
func (a *arena[T]) valid(index, generation uint32) bool {
	if generation == 0 || index >= uint32(len(a.slots)) {
		return false
	}
	slot := &a.slots[index]
	return slot.present && slot.generation == generation
}

// remove requires (index, generation) to be valid. It increments the
// slot's generation; if that wraps back to zero the slot is disabled and
// never returned to the free list (a deliberate, capacity-bounded leak).
// Otherwise the slot is appended to the free-list tail.
func (a *arena[T]) remove(index, generation uint32) error {
	if !a.valid(index, generation) {
		return invalidHandleError("arena", uint64(index)<<32|uint64(generation))
	}
	slot := &a.slots[index]
	var zero T
	slot.instance = zero
	slot.present = false

	genMod := uint32(1) << a.genBits
	next := (slot.generation + 1) % genMod
	if next == 0 {
		slot.disabled = true
		slot.generation = 0
		return nil
	}
	slot.generation = next
	slot.freeNext = -1
	if a.freeTail == -1 {
		a.freeHead = int32(index)
		a.freeTail = int32(index)
	} else {
		a.slots[a.freeTail].freeNext = int32(index)
		a.freeTail = int32(index)
	}
	return nil
}

// get returns a pointer to the instance at index without checking
// presence or generation (callers are expected to have already validated
// the handle).
func (a *arena[T]) get(index uint32) *T {
	return &a.slots[index].instance
}

// usedCount returns the arena size minus the free-list length. Linear in
// the free-list length.
func (a *arena[T]) usedCount() int {
	free := 0
	for i := a.freeHead; i != -1; i = a.slots[i].freeNext {
		free++
	}
	return len(a.slots) - free
}

// len returns the number of slots ever allocated (including freed and
// disabled ones).
func (a *arena[T]) len() int { return len(a.slots) }

// generationAt returns the current generation stored at index, used by
// clean_nodes(node_generations) style callbacks that need the whole
// generation table.
func (a *arena[T]) generationAt(index uint32) uint32 { return a.slots[index].generation }

// isPresent reports whether the slot at index currently holds a live
// instance, irrespective of generation.
func (a *arena[T]) isPresent(index uint32) bool { return a.slots[index].present }
