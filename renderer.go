package uicore

// RenderTargetState is a phase in the renderer's framebuffer lifecycle
// that Transition moves between.
type RenderTargetState uint8

const (
	RenderStateInitial RenderTargetState = iota
	RenderStateComposite
	RenderStateDraw
	RenderStateFinal
)

// DrawState is a bitmask of GPU pipeline states a renderer may need bound
// before a batch of draw calls.
type DrawState uint8

const (
	DrawStateBlending DrawState = 1 << iota
	DrawStateScissor
)

// RendererFeatures is the capability bitmask a Renderer reports via
// Features(). Mirrors LayerFeatures' role on the Layer side: SetLayerInstance
// consults it to reject a LayerComposite layer paired with a renderer that
// cannot composite.
type RendererFeatures uint8

const (
	// RendererComposite indicates the renderer implements Composite-target
	// transitions meaningfully rather than as a no-op.
	RendererComposite RendererFeatures = 1 << iota
)

// Renderer is the presentation collaborator: it owns framebuffers
// and pipeline state transitions. Composite support is optional — a
// Renderer that doesn't support it reports that via Features(); layers
// with LayerComposite features paired with such a renderer are rejected
// with ErrIncompatibleCapabilities at layer-instance-set time (and at
// renderer-instance-set time, for layers installed first).
type Renderer interface {
	Features() RendererFeatures
	SetupFramebuffers(size Vec2)
	Transition(target RenderTargetState, draw DrawState)
}
