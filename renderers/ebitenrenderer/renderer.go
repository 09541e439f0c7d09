// Package ebitenrenderer implements uicore.Renderer on top of
// github.com/hajimehoshi/ebiten/v2, using offscreen images and
// premultiplied-alpha compositing for composite/draw target management.
package ebitenrenderer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/uicore"
)

// Renderer owns the offscreen composite and draw targets a Layer's
// Composite/Draw hooks render into, and tracks the blend/scissor mode the
// core's Transition calls request.
type Renderer struct {
	screen    *ebiten.Image
	composite *ebiten.Image
	draw      *ebiten.Image
	fbSize    uicore.Vec2

	state uicore.RenderTargetState
	draws uicore.DrawState
}

// New creates a Renderer with no framebuffers allocated yet; SetSize on the
// owning uicore.UserInterface triggers SetupFramebuffers once a size is known.
func New() *Renderer { return &Renderer{} }

// SetScreen must be called at the start of every ebiten Draw callback with
// that frame's screen image, since ebiten hands a fresh one in each time.
func (r *Renderer) SetScreen(screen *ebiten.Image) { r.screen = screen }

// Features reports that this renderer maintains a real composite target
// (see flushToScreen), so layers reporting uicore.LayerComposite are
// compatible with it.
func (r *Renderer) Features() uicore.RendererFeatures { return uicore.RendererComposite }

// SetupFramebuffers (re)allocates the composite and draw offscreen targets
// at the given framebuffer size.
func (r *Renderer) SetupFramebuffers(size uicore.Vec2) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	r.fbSize = size
	r.composite = ebiten.NewImage(int(size.X), int(size.Y))
	r.draw = ebiten.NewImage(int(size.X), int(size.Y))
}

// Transition switches the active render target/blend-scissor mode ahead of
// a batch of Composite/Draw calls.
func (r *Renderer) Transition(target uicore.RenderTargetState, draw uicore.DrawState) {
	r.state = target
	r.draws = draw
	switch target {
	case uicore.RenderStateComposite:
		if r.composite != nil {
			r.composite.Clear()
		}
	case uicore.RenderStateDraw:
		if r.draw != nil {
			r.draw.Clear()
		}
	case uicore.RenderStateFinal:
		r.flushToScreen()
	}
}

// flushToScreen composites the draw target over the screen, then the
// composite target over that, honoring premultiplied alpha
// (ColorScaleModePremultipliedAlpha) throughout.
func (r *Renderer) flushToScreen() {
	if r.screen == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	if r.draw != nil {
		r.screen.DrawImage(r.draw, &op)
	}
	if r.composite != nil {
		r.screen.DrawImage(r.composite, &op)
	}
}

// CurrentTarget returns the offscreen image a Layer's Draw/Composite hook
// should render into for the render target state passed to the last
// Transition call.
func (r *Renderer) CurrentTarget() *ebiten.Image {
	switch r.state {
	case uicore.RenderStateComposite:
		return r.composite
	case uicore.RenderStateDraw:
		return r.draw
	default:
		return r.screen
	}
}

// DrawOptions builds an ebiten.DrawImageOptions positioned at offset with
// scaling derived from size/srcSize, applying the premultiplied-alpha
// color-scale convention. Concrete Layer implementations use this as a
// starting point for their own per-data transforms.
func DrawOptions(offset, size, srcSize uicore.Vec2) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	if srcSize.X > 0 && srcSize.Y > 0 {
		op.GeoM.Scale(size.X/srcSize.X, size.Y/srcSize.Y)
	}
	op.GeoM.Translate(offset.X, offset.Y)
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	return op
}

// ScissorRect clips subsequent draws on target to the given clip rectangle,
// using ebiten's SubImage to restrict the drawable region.
func ScissorRect(target *ebiten.Image, offset, size uicore.Vec2) *ebiten.Image {
	if target == nil {
		return nil
	}
	rect := target.Bounds()
	x0 := max(rect.Min.X, int(offset.X))
	y0 := max(rect.Min.Y, int(offset.Y))
	x1 := min(rect.Max.X, int(offset.X+size.X))
	y1 := min(rect.Max.Y, int(offset.Y+size.Y))
	if x1 <= x0 || y1 <= y0 {
		return nil
	}
	return target.SubImage(image.Rect(x0, y0, x1, y1)).(*ebiten.Image)
}
