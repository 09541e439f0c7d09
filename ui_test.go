package uicore

import "testing"

type fakeRenderer struct {
	framebufferSizes []Vec2
	transitions      []RenderTargetState
}

func (r *fakeRenderer) Features() RendererFeatures { return RendererComposite }
func (r *fakeRenderer) SetupFramebuffers(size Vec2) {
	r.framebufferSizes = append(r.framebufferSizes, size)
}
func (r *fakeRenderer) Transition(target RenderTargetState, draw DrawState) {
	r.transitions = append(r.transitions, target)
}

func TestNewUIReportsGivenSize(t *testing.T) {
	ui := New(Vec2{X: 320, Y: 240})
	if ui.Size() != (Vec2{X: 320, Y: 240}) {
		t.Fatalf("Size() = %+v, want {320 240}", ui.Size())
	}
	if ui.WindowSize() != (Vec2{X: 320, Y: 240}) {
		t.Fatalf("WindowSize() = %+v, want to default to size", ui.WindowSize())
	}
}

func TestSetSizeUpdatesAllThreeDimensions(t *testing.T) {
	ui := newTestUI()
	ui.SetSize(Vec2{X: 100, Y: 100}, Vec2{X: 200, Y: 200}, Vec2{X: 400, Y: 400})
	if ui.Size() != (Vec2{X: 100, Y: 100}) {
		t.Fatalf("Size() = %+v", ui.Size())
	}
	if ui.WindowSize() != (Vec2{X: 200, Y: 200}) {
		t.Fatalf("WindowSize() = %+v", ui.WindowSize())
	}
	if ui.FramebufferSize() != (Vec2{X: 400, Y: 400}) {
		t.Fatalf("FramebufferSize() = %+v", ui.FramebufferSize())
	}
}

func TestSetRendererInstanceRejectsDouble(t *testing.T) {
	ui := newTestUI()
	if err := ui.SetRendererInstance(&fakeRenderer{}); err != nil {
		t.Fatalf("SetRendererInstance: %v", err)
	}
	if err := ui.SetRendererInstance(&fakeRenderer{}); err != ErrAlreadySet {
		t.Fatalf("SetRendererInstance second call = %v, want ErrAlreadySet", err)
	}
}

func TestDrawWithoutRendererReturnsErrNoInstance(t *testing.T) {
	ui := newTestUI()
	if err := ui.Draw(); err != ErrNoInstance {
		t.Fatalf("Draw() = %v, want ErrNoInstance", err)
	}
}

func TestDrawRunsCompositeAndDrawPhasesInOrder(t *testing.T) {
	ui := newTestUI()
	r := &fakeRenderer{}
	if err := ui.SetRendererInstance(r); err != nil {
		t.Fatalf("SetRendererInstance: %v", err)
	}
	lh, _ := ui.CreateLayer()
	layer := &fakeLayer{features: LayerDraw | LayerComposite}
	if err := ui.SetLayerInstance(lh, layer); err != nil {
		t.Fatalf("SetLayerInstance: %v", err)
	}

	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := ui.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	want := []RenderTargetState{RenderStateComposite, RenderStateDraw, RenderStateFinal}
	if len(r.transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", r.transitions, want)
	}
	for i := range want {
		if r.transitions[i] != want[i] {
			t.Fatalf("transitions[%d] = %v, want %v", i, r.transitions[i], want[i])
		}
	}
}

type noCompositeRenderer struct {
	fakeRenderer
}

func (r *noCompositeRenderer) Features() RendererFeatures { return 0 }

func TestSetLayerInstanceRejectsCompositeLayerWithNonCompositingRenderer(t *testing.T) {
	ui := newTestUI()
	if err := ui.SetRendererInstance(&noCompositeRenderer{}); err != nil {
		t.Fatalf("SetRendererInstance: %v", err)
	}
	lh, _ := ui.CreateLayer()
	if err := ui.SetLayerInstance(lh, &fakeLayer{features: LayerComposite}); err != ErrIncompatibleCapabilities {
		t.Fatalf("SetLayerInstance = %v, want ErrIncompatibleCapabilities", err)
	}
}

func TestSetRendererInstanceRejectsNonCompositingRendererWithCompositeLayerAlreadyInstalled(t *testing.T) {
	ui := newTestUI()
	lh, _ := ui.CreateLayer()
	if err := ui.SetLayerInstance(lh, &fakeLayer{features: LayerComposite}); err != nil {
		t.Fatalf("SetLayerInstance: %v", err)
	}
	if err := ui.SetRendererInstance(&noCompositeRenderer{}); err != ErrIncompatibleCapabilities {
		t.Fatalf("SetRendererInstance = %v, want ErrIncompatibleCapabilities", err)
	}
}

func TestNoCreateProducesZeroValueUI(t *testing.T) {
	ui := NoCreate()
	if ui.HasRendererInstance() {
		t.Fatalf("expected a fresh NoCreate() UI to have no renderer")
	}
}
