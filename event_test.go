package uicore

import "testing"

// eventLayer is a fakeLayer whose event hooks return a configurable
// accept decision, for exercising the dispatcher without real widgets.
type eventLayer struct {
	fakeLayer
	accept     bool
	focusable  bool
	nextLocal  uint32
	pressCount int
	blurCount  int
}

func (e *eventLayer) Attach(node NodeHandle) (DataHandle, error) {
	local := e.nextLocal
	e.nextLocal++
	return DataHandle{Local: local}, nil
}

func (e *eventLayer) PointerPressEvent(data DataHandle, ev *PointerEvent) bool {
	e.pressCount++
	return e.accept
}
func (e *eventLayer) PointerReleaseEvent(data DataHandle, ev *PointerEvent) bool { return e.accept }
func (e *eventLayer) FocusEvent(data DataHandle) bool                           { return e.focusable }
func (e *eventLayer) BlurEvent(data DataHandle)                                 { e.blurCount++ }

func newEventTestUI(accept bool) (*UserInterface, LayerHandle, NodeHandle, *eventLayer) {
	ui := newTestUI()
	lh, _ := ui.CreateLayer()
	layer := &eventLayer{fakeLayer: fakeLayer{features: LayerEvent}, accept: accept}
	ui.SetLayerInstance(lh, layer)
	n, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	ui.AttachData(lh, n)
	return ui, lh, n, layer
}

func TestPointerPressEventHitsNodeAndAccepts(t *testing.T) {
	ui, _, n, layer := newEventTestUI(true)
	accepted, err := ui.PointerPressEvent(&PointerEvent{Position: Vec2{X: 5, Y: 5}, Primary: true})
	if err != nil {
		t.Fatalf("PointerPressEvent: %v", err)
	}
	if !accepted {
		t.Fatalf("expected press to be accepted")
	}
	if layer.pressCount != 1 {
		t.Fatalf("expected exactly one delivered press, got %d", layer.pressCount)
	}
	if ui.CurrentPressedNode() != n {
		t.Fatalf("expected CurrentPressedNode() = %v, got %v", n, ui.CurrentPressedNode())
	}
}

func TestPointerPressEventMissClearsPressed(t *testing.T) {
	ui, _, _, _ := newEventTestUI(true)
	accepted, err := ui.PointerPressEvent(&PointerEvent{Position: Vec2{X: 500, Y: 500}, Primary: true})
	if err != nil {
		t.Fatalf("PointerPressEvent: %v", err)
	}
	if accepted {
		t.Fatalf("expected a miss to be unaccepted")
	}
	if ui.CurrentPressedNode() != NullNode {
		t.Fatalf("expected no pressed node after a miss")
	}
}

func TestPointerPressEventRejectsAlreadyAccepted(t *testing.T) {
	ui, _, _, _ := newEventTestUI(true)
	_, err := ui.PointerPressEvent(&PointerEvent{Position: Vec2{X: 5, Y: 5}, Primary: true, Accepted: true})
	if err != ErrEventAlreadyAccepted {
		t.Fatalf("PointerPressEvent = %v, want ErrEventAlreadyAccepted", err)
	}
}

func TestPointerReleaseEventClearsCapturedOnPrimary(t *testing.T) {
	ui, _, _, _ := newEventTestUI(true)
	if _, err := ui.PointerPressEvent(&PointerEvent{Position: Vec2{X: 5, Y: 5}, Primary: true}); err != nil {
		t.Fatalf("PointerPressEvent: %v", err)
	}
	if ui.CurrentCapturedNode() == NullNode {
		t.Fatalf("expected press to set a captured node")
	}
	if _, err := ui.PointerReleaseEvent(&PointerEvent{Position: Vec2{X: 5, Y: 5}, Primary: true}); err != nil {
		t.Fatalf("PointerReleaseEvent: %v", err)
	}
	if ui.CurrentCapturedNode() != NullNode {
		t.Fatalf("expected release to clear the captured node")
	}
}

func TestFocusEventRejectsNonFocusableNode(t *testing.T) {
	ui, _, n, _ := newEventTestUI(true)
	if err := ui.FocusEvent(n); err != ErrIncompatibleCapabilities {
		t.Fatalf("FocusEvent = %v, want ErrIncompatibleCapabilities", err)
	}
}

func TestFocusEventAcceptsFocusableNode(t *testing.T) {
	ui := newTestUI()
	lh, _ := ui.CreateLayer()
	layer := &eventLayer{fakeLayer: fakeLayer{features: LayerEvent}, focusable: true}
	ui.SetLayerInstance(lh, layer)
	n, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, NodeFocusable)
	ui.AttachData(lh, n)

	if err := ui.FocusEvent(n); err != nil {
		t.Fatalf("FocusEvent: %v", err)
	}
	if ui.CurrentFocusedNode() != n {
		t.Fatalf("expected CurrentFocusedNode() = %v, got %v", n, ui.CurrentFocusedNode())
	}
}

func TestKeyPressEventWithoutFocusedNodeIsUnaccepted(t *testing.T) {
	ui := newTestUI()
	accepted, err := ui.KeyPressEvent(&KeyEvent{Code: 1})
	if err != nil {
		t.Fatalf("KeyPressEvent: %v", err)
	}
	if accepted {
		t.Fatalf("expected no accept without a focused node")
	}
}

func TestPointerPressEventOnNoBlurNodeLeavesFocusIntact(t *testing.T) {
	ui := newTestUI()
	lh, _ := ui.CreateLayer()
	layer := &eventLayer{fakeLayer: fakeLayer{features: LayerEvent}, accept: true, focusable: true}
	ui.SetLayerInstance(lh, layer)

	focused, _ := ui.CreateNode(NullNode, Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 10}, NodeFocusable)
	ui.AttachData(lh, focused)
	if err := ui.FocusEvent(focused); err != nil {
		t.Fatalf("FocusEvent: %v", err)
	}
	if ui.CurrentFocusedNode() != focused {
		t.Fatalf("expected %v to be focused", focused)
	}

	noBlur, _ := ui.CreateNode(NullNode, Vec2{X: 100, Y: 0}, Vec2{X: 10, Y: 10}, NodeNoBlur)
	ui.AttachData(lh, noBlur)

	if _, err := ui.PointerPressEvent(&PointerEvent{Position: Vec2{X: 105, Y: 5}, Primary: true}); err != nil {
		t.Fatalf("PointerPressEvent: %v", err)
	}
	if layer.blurCount != 0 {
		t.Fatalf("expected no blur delivery when pressing a NodeNoBlur target, got %d", layer.blurCount)
	}
	if ui.CurrentFocusedNode() != focused {
		t.Fatalf("expected focus to remain on %v, got %v", focused, ui.CurrentFocusedNode())
	}
}

func TestHitTestSkipsHiddenAndNoEventsNodes(t *testing.T) {
	ui := newTestUI()
	n, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, NodeNoEvents)
	if got := ui.hitTest(Vec2{X: 5, Y: 5}); got != NullNode {
		t.Fatalf("hitTest = %v, want NullNode for a NoEvents node", got)
	}
	ui.CreateNode(NullNode, Vec2{X: 20}, Vec2{X: 10, Y: 10}, NodeHidden)
	if got := ui.hitTest(Vec2{X: 25, Y: 5}); got != NullNode {
		t.Fatalf("hitTest = %v, want NullNode for a Hidden node", got)
	}
	_ = n
}
