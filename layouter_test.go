package uicore

import "testing"

type fakeLayouter struct {
	state  LayouterStates
	nextID uint32
}

func (f *fakeLayouter) Features() LayouterFeatures { return 0 }
func (f *fakeLayouter) State() LayouterStates      { return f.state }
func (f *fakeLayouter) CleanNodes(live func(NodeHandle) bool) {}
func (f *fakeLayouter) Attach(node NodeHandle) (uint32, error) {
	id := f.nextID
	f.nextID++
	return id, nil
}
func (f *fakeLayouter) Update(mask []bool, layoutIDs []uint32, parents []NodeHandle, offsets, sizes []Vec2) {
}

func TestCreateLayouterAppendsInOrder(t *testing.T) {
	ui := newTestUI()
	a, _ := ui.CreateLayouter()
	b, _ := ui.CreateLayouter()
	if ui.LayouterFirst() != a || ui.LayouterLast() != b {
		t.Fatalf("expected layouter order a, b")
	}
	if ui.LayouterNext(a) != b || ui.LayouterPrevious(b) != a {
		t.Fatalf("expected a -> b traversal")
	}
}

func TestSetLayouterInstanceRejectsDouble(t *testing.T) {
	ui := newTestUI()
	h, _ := ui.CreateLayouter()
	if err := ui.SetLayouterInstance(h, &fakeLayouter{}); err != nil {
		t.Fatalf("SetLayouterInstance: %v", err)
	}
	if err := ui.SetLayouterInstance(h, &fakeLayouter{}); err != ErrAlreadySet {
		t.Fatalf("SetLayouterInstance second call = %v, want ErrAlreadySet", err)
	}
}

func TestAttachLayoutRequiresValidNodeAndLayouter(t *testing.T) {
	ui := newTestUI()
	h, _ := ui.CreateLayouter()
	if err := ui.SetLayouterInstance(h, &fakeLayouter{}); err != nil {
		t.Fatalf("SetLayouterInstance: %v", err)
	}
	if _, err := ui.AttachLayout(h, NodeHandle(0xDEADBEEF)); err == nil {
		t.Fatalf("expected error attaching an invalid node")
	}

	n, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 1, Y: 1}, 0)
	if _, err := ui.AttachLayout(LayouterHandle(0xDEAD), n); err == nil {
		t.Fatalf("expected error attaching via an invalid layouter")
	}
	lh, err := ui.AttachLayout(h, n)
	if err != nil {
		t.Fatalf("AttachLayout: %v", err)
	}
	if lh.Layouter != h {
		t.Fatalf("expected returned handle to reference %v, got %v", h, lh.Layouter)
	}
}

func TestRemoveLayouterUnlinksFromOrder(t *testing.T) {
	ui := newTestUI()
	a, _ := ui.CreateLayouter()
	b, _ := ui.CreateLayouter()
	c, _ := ui.CreateLayouter()

	if err := ui.RemoveLayouter(b); err != nil {
		t.Fatalf("RemoveLayouter: %v", err)
	}
	if ui.LayouterNext(a) != c {
		t.Fatalf("expected a -> c after removing b")
	}
	if ui.IsLayouterValid(b) {
		t.Fatalf("expected b to be invalid after removal")
	}
}
