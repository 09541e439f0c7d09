package uicore

// Handles are tagged integers carrying an index into an arena and a
// generation. A handle is valid iff its generation equals the current
// generation at the indexed slot and the generation is non-zero.
//
// NodeHandle packs a 20-bit index (low bits) and a 12-bit generation (high
// bits) into a uint32. LayerHandle, LayouterHandle and AnimatorHandle pack
// an 8-bit index and an 8-bit generation into a uint16.
const (
	nodeIndexBits = 20
	nodeGenBits   = 12

	smallIndexBits = 8
	smallGenBits   = 8

	// NodeCapacity is the maximum number of live nodes (index bits
	// saturated).
	NodeCapacity = 1 << nodeIndexBits
	// SmallArenaCapacity is the maximum number of live layers, layouters or
	// animators.
	SmallArenaCapacity = 1 << smallIndexBits
)

// NodeHandle identifies a node. The zero value, NullNode, never identifies
// a live node (generation 0 is always invalid).
type NodeHandle uint32

// NullNode is the handle used for "no node" (e.g. a root node's parent).
const NullNode NodeHandle = 0

func makeNodeHandle(index, generation uint32) NodeHandle {
	return NodeHandle(generation<<nodeIndexBits | (index & (1<<nodeIndexBits - 1)))
}

func (h NodeHandle) index() uint32 {
	return uint32(h) & (1<<nodeIndexBits - 1)
}

func (h NodeHandle) generation() uint32 {
	return uint32(h) >> nodeIndexBits
}

// NodeArrayIndex returns the arena-slot index packed into h. External
// NodeAnimator implementations use it to find their target's position in
// the nodeOffsets/nodeSizes/nodeFlags slices AdvanceNode receives.
func (h NodeHandle) NodeArrayIndex() int { return int(h.index()) }

// LayerHandle identifies a layer instance. The zero value, NullLayer, never
// identifies a live layer.
type LayerHandle uint16

// NullLayer is the handle used for "no layer".
const NullLayer LayerHandle = 0

func makeLayerHandle(index, generation uint32) LayerHandle {
	return LayerHandle(generation<<smallIndexBits | (index & (1<<smallIndexBits - 1)))
}

func (h LayerHandle) index() uint32      { return uint32(h) & (1<<smallIndexBits - 1) }
func (h LayerHandle) generation() uint32 { return uint32(h) >> smallIndexBits }

// LayouterHandle identifies a layouter instance. The zero value, NullLayouter,
// never identifies a live layouter.
type LayouterHandle uint16

// NullLayouter is the handle used for "no layouter".
const NullLayouter LayouterHandle = 0

func makeLayouterHandle(index, generation uint32) LayouterHandle {
	return LayouterHandle(generation<<smallIndexBits | (index & (1<<smallIndexBits - 1)))
}

func (h LayouterHandle) index() uint32      { return uint32(h) & (1<<smallIndexBits - 1) }
func (h LayouterHandle) generation() uint32 { return uint32(h) >> smallIndexBits }

// AnimatorHandle identifies an animator instance. The zero value,
// NullAnimator, never identifies a live animator.
type AnimatorHandle uint16

// NullAnimator is the handle used for "no animator".
const NullAnimator AnimatorHandle = 0

func makeAnimatorHandle(index, generation uint32) AnimatorHandle {
	return AnimatorHandle(generation<<smallIndexBits | (index & (1<<smallIndexBits - 1)))
}

func (h AnimatorHandle) index() uint32      { return uint32(h) & (1<<smallIndexBits - 1) }
func (h AnimatorHandle) generation() uint32 { return uint32(h) >> smallIndexBits }

// DataHandle identifies one attachment owned by a layer: a (layer, layer-
// local data index) pair, where the sub-handle is embedded as an opaque
// field. The layer-local index is opaque to the core; layers are free to
// give it their own generational scheme.
type DataHandle struct {
	Layer LayerHandle
	Local uint32
}

// NullData is the handle used for "no data attachment".
var NullData = DataHandle{}

// IsNull reports whether d is the zero DataHandle.
func (d DataHandle) IsNull() bool { return d == NullData }

// LayoutHandle identifies one node's attachment to a layouter: a
// (layouter handle, layouter-local layout id) pair, mirroring DataHandle.
type LayoutHandle struct {
	Layouter LayouterHandle
	Local    uint32
}

// NullLayout is the handle used for "no layout attachment".
var NullLayout = LayoutHandle{}

// IsNull reports whether l is the zero LayoutHandle.
func (l LayoutHandle) IsNull() bool { return l == NullLayout }
