package uicore

import "testing"

func TestUpdateRequiresNonZeroSize(t *testing.T) {
	ui := New(Vec2{})
	if err := ui.Update(); err != ErrIncompatibleCapabilities {
		t.Fatalf("Update() = %v, want ErrIncompatibleCapabilities", err)
	}
}

func TestUpdatePropagatesAbsoluteOffsets(t *testing.T) {
	ui := newTestUI()
	parent, _ := ui.CreateNode(NullNode, Vec2{X: 10, Y: 10}, Vec2{X: 50, Y: 50}, 0)
	child, _ := ui.CreateNode(parent, Vec2{X: 5, Y: 5}, Vec2{X: 10, Y: 10}, 0)

	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := ui.absoluteOffset[child.index()]; got != (Vec2{X: 15, Y: 15}) {
		t.Fatalf("absoluteOffset(child) = %+v, want {15 15}", got)
	}
	if got := ui.absoluteOffset[parent.index()]; got != (Vec2{X: 10, Y: 10}) {
		t.Fatalf("absoluteOffset(parent) = %+v, want {10 10}", got)
	}
}

func TestUpdateSkipsHiddenSubtree(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 50, Y: 50}, NodeHidden)
	child, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 10, Y: 10}, 0)

	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	for _, id := range ui.visibleNodeIDs {
		if id == root || id == child {
			t.Fatalf("expected hidden subtree to be excluded from visible nodes")
		}
	}
}

func TestUpdateClipCullsOutsideRect(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, NodeClip)
	outside, _ := ui.CreateNode(root, Vec2{X: 100, Y: 100}, Vec2{X: 5, Y: 5}, 0)

	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ui.drawVisible[root.index()] {
		t.Fatalf("expected root to remain draw-visible")
	}
	if ui.drawVisible[outside.index()] {
		t.Fatalf("expected child clipped out of its parent's clip rect to not be draw-visible")
	}
}

func TestUpdatePropagatesOpacity(t *testing.T) {
	ui := newTestUI()
	parent, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	child, _ := ui.CreateNode(parent, Vec2{}, Vec2{X: 5, Y: 5}, 0)
	if err := ui.SetNodeOpacity(parent, 0.5); err != nil {
		t.Fatalf("SetNodeOpacity: %v", err)
	}
	if err := ui.SetNodeOpacity(child, 0.5); err != nil {
		t.Fatalf("SetNodeOpacity: %v", err)
	}
	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := ui.absoluteOpacity[child.index()]; got != 0.25 {
		t.Fatalf("absoluteOpacity(child) = %v, want 0.25", got)
	}
}

func TestUpdatePropagatesDisabledMask(t *testing.T) {
	ui := newTestUI()
	parent, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, NodeDisabled)
	child, _ := ui.CreateNode(parent, Vec2{}, Vec2{X: 5, Y: 5}, 0)
	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ui.enabledMask[child.index()] {
		t.Fatalf("expected child to inherit disabled state from parent")
	}
}

// levelRecordingLayouter records, for each Update call it receives, the set
// of layout ids it was asked to solve — used to check solveLayouts' level
// ordering without needing the Layouter to see another node's resolved
// state directly.
type levelRecordingLayouter struct {
	fakeLayouter
	calls [][]uint32
}

func (l *levelRecordingLayouter) Update(mask []bool, layoutIDs []uint32, parents []NodeHandle, offsets, sizes []Vec2) {
	call := append([]uint32(nil), layoutIDs...)
	l.calls = append(l.calls, call)
}

func TestSolveLayoutsRunsShallowerLevelsBeforeDeeperOnes(t *testing.T) {
	ui := newTestUI()
	lh, _ := ui.CreateLayouter()
	layouter := &levelRecordingLayouter{}
	if err := ui.SetLayouterInstance(lh, layouter); err != nil {
		t.Fatalf("SetLayouterInstance: %v", err)
	}

	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	child, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 5, Y: 5}, 0)
	grandchild, _ := ui.CreateNode(child, Vec2{}, Vec2{X: 2, Y: 2}, 0)

	rootLayout, _ := ui.AttachLayout(lh, root)
	childLayout, _ := ui.AttachLayout(lh, child)
	grandchildLayout, _ := ui.AttachLayout(lh, grandchild)

	if err := ui.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(layouter.calls) != 3 {
		t.Fatalf("expected one Update call per depth level, got %d calls: %v", len(layouter.calls), layouter.calls)
	}
	want := [][]uint32{{rootLayout.Local}, {childLayout.Local}, {grandchildLayout.Local}}
	for i, call := range want {
		if len(layouter.calls[i]) != 1 || layouter.calls[i][0] != call[0] {
			t.Fatalf("calls[%d] = %v, want %v", i, layouter.calls[i], call)
		}
	}
}

func TestFrontToBackTopLevelReversesCreationOrder(t *testing.T) {
	ui := newTestUI()
	a, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 1, Y: 1}, 0)
	b, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 1, Y: 1}, 0)
	c, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 1, Y: 1}, 0)

	got := ui.FrontToBackTopLevel()
	want := []NodeHandle{c, b, a}
	if len(got) != len(want) {
		t.Fatalf("FrontToBackTopLevel() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FrontToBackTopLevel()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
