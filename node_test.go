package uicore

import "testing"

func newTestUI() *UserInterface {
	return New(Vec2{X: 800, Y: 600})
}

func TestCreateNodeRootIsTopLevel(t *testing.T) {
	ui := newTestUI()
	root, err := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 100, Y: 100}, 0)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if !ui.IsNodeValid(root) {
		t.Fatalf("expected root to be valid")
	}
	if !ui.IsNodeTopLevel(root) {
		t.Fatalf("expected root node to be top-level")
	}
	if ui.NodeOrderFirst() != root {
		t.Fatalf("expected root to be the first top-level node")
	}
}

func TestCreateNodeInvalidParent(t *testing.T) {
	ui := newTestUI()
	bogus := NodeHandle(0xDEADBEEF)
	if _, err := ui.CreateNode(bogus, Vec2{}, Vec2{}, 0); err == nil {
		t.Fatalf("expected error creating a node under an invalid parent")
	}
}

func TestNodeChildLinking(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 100, Y: 100}, 0)
	c1, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	c2, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 10, Y: 10}, 0)

	if ui.NodeParent(c1) != root || ui.NodeParent(c2) != root {
		t.Fatalf("expected both children to report root as parent")
	}
	if ui.IsNodeTopLevel(c1) || ui.IsNodeTopLevel(c2) {
		t.Fatalf("children of a node are not themselves top-level")
	}
}

func TestSetNodeOffsetSizeOpacityFlags(t *testing.T) {
	ui := newTestUI()
	n, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)

	if err := ui.SetNodeOffset(n, Vec2{X: 5, Y: 6}); err != nil {
		t.Fatalf("SetNodeOffset: %v", err)
	}
	if got := ui.NodeOffset(n); got != (Vec2{X: 5, Y: 6}) {
		t.Fatalf("NodeOffset = %+v, want {5 6}", got)
	}

	if err := ui.SetNodeSize(n, Vec2{X: 20, Y: 30}); err != nil {
		t.Fatalf("SetNodeSize: %v", err)
	}
	if got := ui.NodeSize(n); got != (Vec2{X: 20, Y: 30}) {
		t.Fatalf("NodeSize = %+v, want {20 30}", got)
	}

	if err := ui.SetNodeOpacity(n, 0.5); err != nil {
		t.Fatalf("SetNodeOpacity: %v", err)
	}
	if got := ui.NodeOpacity(n); got != 0.5 {
		t.Fatalf("NodeOpacity = %v, want 0.5", got)
	}

	if err := ui.AddNodeFlags(n, NodeHidden); err != nil {
		t.Fatalf("AddNodeFlags: %v", err)
	}
	if ui.NodeFlagsOf(n)&NodeHidden == 0 {
		t.Fatalf("expected NodeHidden to be set")
	}
	if err := ui.ClearNodeFlags(n, NodeHidden); err != nil {
		t.Fatalf("ClearNodeFlags: %v", err)
	}
	if ui.NodeFlagsOf(n)&NodeHidden != 0 {
		t.Fatalf("expected NodeHidden to be cleared")
	}
}

func TestSetNodeOffsetInvalidHandle(t *testing.T) {
	ui := newTestUI()
	if err := ui.SetNodeOffset(NodeHandle(12345), Vec2{}); err == nil {
		t.Fatalf("expected error setting offset on an invalid handle")
	}
}

func TestRemoveNodeInvalidatesHandle(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	child, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 5, Y: 5}, 0)

	if err := ui.RemoveNode(child); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if ui.IsNodeValid(child) {
		t.Fatalf("expected handle to be invalid after RemoveNode")
	}
	if err := ui.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
}

func TestRemoveNodeOrphansGrandchildAreCleanedUp(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	mid, _ := ui.CreateNode(root, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	grandchild, _ := ui.CreateNode(mid, Vec2{}, Vec2{X: 5, Y: 5}, 0)

	if err := ui.RemoveNode(mid); err != nil {
		t.Fatalf("RemoveNode(mid): %v", err)
	}
	if !ui.IsNodeValid(grandchild) {
		t.Fatalf("grandchild should still be valid before Clean()")
	}
	if err := ui.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if ui.IsNodeValid(grandchild) {
		t.Fatalf("expected grandchild to be removed as an orphan after Clean()")
	}
	if ui.IsNodeValid(mid) {
		t.Fatalf("expected mid to remain invalid after Clean()")
	}
	if !ui.IsNodeValid(root) {
		t.Fatalf("expected root to remain valid")
	}
}

func TestRemoveTopLevelNodeClearsOrder(t *testing.T) {
	ui := newTestUI()
	root, _ := ui.CreateNode(NullNode, Vec2{}, Vec2{X: 10, Y: 10}, 0)
	if err := ui.RemoveNode(root); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if ui.NodeOrderFirst() != NullNode {
		t.Fatalf("expected no top-level nodes left after removing the only root")
	}
}
