// Package gweenanim implements uicore.NodeAnimator and uicore.Animator on
// top of github.com/tanema/gween.
package gweenanim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/uicore"
)

// OffsetSize animates a single node's offset and/or size toward a target
// over a fixed duration: up to four gween.Tween instances (offset.X,
// offset.Y, size.X, size.Y) advanced together and written back in one
// AdvanceNode call.
type OffsetSize struct {
	node   uicore.NodeHandle
	tweens [4]*gween.Tween
	count  int
	done   bool
	lastT  float64
	haveT  bool
	dt     float32
}

// NewOffsetSize creates a tween animating node's offset from (fromOffset)
// to (toOffset) and its size from (fromSize) to (toSize), over duration
// seconds using fn. Every AdvanceNode writes all four fields; equal
// from/to for a field holds it at that value.
func NewOffsetSize(node uicore.NodeHandle, fromOffset, toOffset, fromSize, toSize uicore.Vec2, duration float32, fn ease.TweenFunc) *OffsetSize {
	t := &OffsetSize{node: node, count: 4}
	t.tweens[0] = gween.New(float32(fromOffset.X), float32(toOffset.X), duration, fn)
	t.tweens[1] = gween.New(float32(fromOffset.Y), float32(toOffset.Y), duration, fn)
	t.tweens[2] = gween.New(float32(fromSize.X), float32(toSize.X), duration, fn)
	t.tweens[3] = gween.New(float32(fromSize.Y), float32(toSize.Y), duration, fn)
	return t
}

// NeedsAdvance reports whether this tween still has outstanding work.
func (t *OffsetSize) NeedsAdvance() bool { return !t.done }

// Update computes this frame's delta from t against the last time seen
// (1/60s for the very first call, since there is no prior sample), and
// stashes it for AdvanceNode to consume; the actual field writes happen
// there, called right after when needsAdvance is true.
func (t *OffsetSize) Update(tAbs float64, active []bool, factors []float64, _ []bool) (needsAdvance, needsClean bool) {
	if t.done {
		return false, false
	}
	if t.haveT {
		t.dt = float32(tAbs - t.lastT)
	} else {
		t.dt = 1.0 / 60.0
		t.haveT = true
	}
	t.lastT = tAbs
	if len(active) > 0 {
		active[0] = true
	}
	return true, false
}

// Advance is unused: OffsetSize is always node-attached, so the driver
// calls AdvanceNode instead.
func (t *OffsetSize) Advance(active []bool, factors []float64) {}

// Clean is a no-op: OffsetSize holds no layer/data-side state to drop.
func (t *OffsetSize) Clean(remove []bool) {}

// AdvanceNode writes the current tween values into nodeOffsets/nodeSizes
// at this tween's target node's array index, advancing dt seconds worth
// of tween state (dt is the delta Update computed from the absolute
// times passed to it; factors is not read).
func (t *OffsetSize) AdvanceNode(active []bool, factors []float64, nodeOffsets, nodeSizes []uicore.Vec2, nodeFlags []uicore.NodeFlags, nodesRemove []bool) uicore.NodeAnimations {
	idx := t.node.NodeArrayIndex()
	allDone := true
	values := [4]float32{}
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(t.dt)
		values[i] = val
		if !finished {
			allDone = false
		}
	}
	t.done = allDone

	nodeOffsets[idx] = uicore.Vec2{X: float64(values[0]), Y: float64(values[1])}
	nodeSizes[idx] = uicore.Vec2{X: float64(values[2]), Y: float64(values[3])}
	return uicore.NodeAnimOffsetSize
}
