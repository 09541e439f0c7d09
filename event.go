package uicore

// PointerButton identifies the input device/button that produced a
// pointer event. The "default" buttons are the ones that
// drive focus transitions on press.
type PointerButton uint8

const (
	MouseLeft PointerButton = iota
	MouseRight
	MouseMiddle
	Touch
	Pen
)

// IsDefault reports whether b is a "default pointer" button (MouseLeft,
// Touch or Pen), the kind whose accepted press can focus a focusable
// target.
func (b PointerButton) IsDefault() bool {
	switch b {
	case MouseLeft, Touch, Pen:
		return true
	default:
		return false
	}
}

// PointerEvent is the payload passed to every pointer entry point and
// every Layer pointer event hook.
type PointerEvent struct {
	Position    Vec2
	Button      PointerButton
	Primary     bool
	Captured    bool
	Hovered     bool
	Fallthrough bool
	Accepted    bool
}

// Accept marks the event as handled.
func (e *PointerEvent) Accept() { e.Accepted = true }

// KeyEvent is the payload passed to key entry points and hooks.
type KeyEvent struct {
	Code     int
	Accepted bool
}

func (e *KeyEvent) Accept() { e.Accepted = true }

type dataAttachment struct {
	layer LayerHandle
	data  DataHandle
}

// AttachData creates a new data record on layer for node and records the
// node → data association the event dispatcher and partitioner use. The
// layer is asked to create the record and remains the sole owner of its
// actual fields; the core only remembers which node it belongs to.
func (ui *UserInterface) AttachData(layer LayerHandle, node NodeHandle) (DataHandle, error) {
	if !ui.IsNodeValid(node) {
		return NullData, invalidHandleError("node", uint64(node))
	}
	l, err := ui.LayerInstance(layer)
	if err != nil {
		return NullData, err
	}
	dh, err := l.Attach(node)
	if err != nil {
		return NullData, err
	}
	ui.dataAttachments[node] = append(ui.dataAttachments[node], dataAttachment{layer: layer, data: dh})
	ui.markDirty(NeedsDataAttachmentUpdate)
	return dh, nil
}

// CurrentPressedNode, CurrentCapturedNode, CurrentHoveredNode and
// CurrentFocusedNode expose the dispatcher's tracked state for
// introspection.
func (ui *UserInterface) CurrentPressedNode() NodeHandle  { return ui.currentPressed }
func (ui *UserInterface) CurrentCapturedNode() NodeHandle { return ui.currentCaptured }
func (ui *UserInterface) CurrentHoveredNode() NodeHandle  { return ui.currentHovered }
func (ui *UserInterface) CurrentFocusedNode() NodeHandle  { return ui.currentFocused }

// CurrentGlobalPointerPosition returns the last primary pointer position
// in UI coordinates, and whether one has ever been recorded.
func (ui *UserInterface) CurrentGlobalPointerPosition() (Vec2, bool) {
	if ui.hasGlobalPointerPosition {
		return ui.globalPointerPosition, true
	}
	return Vec2{}, false
}

// toUICoordinates scales a window-relative position into UI space, by the
// ratio of UI size to window size.
func (ui *UserInterface) toUICoordinates(pos Vec2) Vec2 {
	if ui.windowSize.X == 0 || ui.windowSize.Y == 0 {
		return pos
	}
	return pos.Scale(Vec2{X: ui.size.X / ui.windowSize.X, Y: ui.size.Y / ui.windowSize.Y})
}

func (ui *UserInterface) nodeAbsoluteOffset(h NodeHandle) Vec2 {
	var offset Vec2
	for n := h; n != NullNode; {
		node := ui.nodes.get(n.index())
		offset = offset.Add(node.offset)
		n = node.parent
	}
	return offset
}

func (ui *UserInterface) nodeVisible(h NodeHandle) bool {
	for n := h; n != NullNode; n = ui.nodes.get(n.index()).parent {
		if ui.nodes.get(n.index()).flags&NodeHidden != 0 {
			return false
		}
	}
	return true
}

func (ui *UserInterface) nodeEventsEnabled(h NodeHandle) bool {
	for n := h; n != NullNode; n = ui.nodes.get(n.index()).parent {
		if ui.nodes.get(n.index()).flags&NodeNoEvents != 0 {
			return false
		}
	}
	return true
}

func (ui *UserInterface) nodeEnabled(h NodeHandle) bool {
	for n := h; n != NullNode; n = ui.nodes.get(n.index()).parent {
		if ui.nodes.get(n.index()).flags&NodeDisabled != 0 {
			return false
		}
	}
	return true
}

// visibleForEvents is the combined predicate used to decide whether a
// node is eligible to receive hit-tested events at all.
func (ui *UserInterface) visibleForEvents(h NodeHandle) bool {
	return ui.IsNodeValid(h) && ui.nodeVisible(h) && ui.nodeEventsEnabled(h)
}

// hitTest walks top-level hierarchies front-to-back (topmost drawn
// first), recursing into children before testing the node's own
// rectangle.
func (ui *UserInterface) hitTest(pos Vec2) NodeHandle {
	if ui.topLevelHead == NullNode {
		return NullNode
	}
	for top := ui.NodeOrderLast(); ; top = ui.NodeOrderPrevious(top) {
		if hit := ui.hitTestSubtree(top, pos); hit != NullNode {
			return hit
		}
		if top == ui.topLevelHead {
			break
		}
	}
	return NullNode
}

func (ui *UserInterface) hitTestSubtree(h NodeHandle, pos Vec2) NodeHandle {
	if !ui.IsNodeValid(h) {
		return NullNode
	}
	n := ui.nodes.get(h.index())
	if n.flags&NodeHidden != 0 || n.flags&NodeNoEvents != 0 {
		return NullNode
	}
	for c := n.lastChild; c != NullNode; c = ui.nodes.get(c.index()).prevSibling {
		if hit := ui.hitTestSubtree(c, pos); hit != NullNode {
			return hit
		}
	}
	rect := Rect{Offset: ui.nodeAbsoluteOffset(h), Size: n.size}
	if rect.Contains(pos) {
		return h
	}
	return NullNode
}

// deliverPointer offers ev to node's event-layer data in reverse
// attachment order (most recently attached first, whichever layer each
// data belongs to), stopping at the first acceptance. Layer draw order
// does not affect this order.
func (ui *UserInterface) deliverPointer(node NodeHandle, ev *PointerEvent, call func(Layer, DataHandle, *PointerEvent) bool) bool {
	attachments := ui.dataAttachments[node]
	for i := len(attachments) - 1; i >= 0; i-- {
		a := attachments[i]
		l, err := ui.LayerInstance(a.layer)
		if err != nil || ui.layerArena.get(a.layer.index()).features&LayerEvent == 0 {
			continue
		}
		if call(l, a.data, ev) {
			return true
		}
	}
	return false
}

func (ui *UserInterface) deliverPointerAll(node NodeHandle, ev *PointerEvent, call func(Layer, DataHandle, *PointerEvent)) {
	attachments := ui.dataAttachments[node]
	for i := len(attachments) - 1; i >= 0; i-- {
		a := attachments[i]
		l, err := ui.LayerInstance(a.layer)
		if err != nil || ui.layerArena.get(a.layer.index()).features&LayerEvent == 0 {
			continue
		}
		call(l, a.data, ev)
	}
}

func (ui *UserInterface) deliverCancel(node NodeHandle) {
	if node == NullNode {
		return
	}
	for _, a := range ui.dataAttachments[node] {
		if l, err := ui.LayerInstance(a.layer); err == nil {
			l.PointerCancelEvent(a.data)
		}
	}
}

func (ui *UserInterface) deliverVisibilityLost(node NodeHandle) {
	if node == NullNode {
		return
	}
	for _, a := range ui.dataAttachments[node] {
		if l, err := ui.LayerInstance(a.layer); err == nil {
			l.VisibilityLostEvent(a.data)
		}
	}
}

// PointerPressEvent runs the press-delivery algorithm: hit-test, then
// capture/pressed/focus bookkeeping and event delivery to the target.
func (ui *UserInterface) PointerPressEvent(ev *PointerEvent) (bool, error) {
	if ev.Accepted {
		return false, ErrEventAlreadyAccepted
	}
	pos := ui.toUICoordinates(ev.Position)
	ev.Position = pos

	if !ev.Primary && ui.currentCaptured != NullNode {
		ev.Captured = true
		rect := Rect{Offset: ui.nodeAbsoluteOffset(ui.currentCaptured), Size: ui.nodes.get(ui.currentCaptured.index()).size}
		ev.Hovered = rect.Contains(pos)
		accepted := ui.deliverPointer(ui.currentCaptured, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerPressEvent(d, e) })
		ev.Accepted = accepted
		if accepted {
			ui.updateCaptureFrom(ev, ui.currentCaptured)
		}
		return accepted, nil
	}

	target := ui.hitTest(pos)
	accepted := false
	if target != NullNode {
		ev.Captured = ev.Primary
		ev.Hovered = true
		accepted = ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerPressEvent(d, e) })
	}
	ev.Accepted = accepted
	if accepted {
		ui.updateCaptureFrom(ev, target)
	}
	if ev.Primary {
		if accepted {
			ui.currentPressed = target
		} else {
			ui.currentPressed = NullNode
		}
		ui.globalPointerPosition = pos
		ui.hasGlobalPointerPosition = true

		if target != ui.currentFocused && !ui.suppressesBlur(target) {
			ui.blur(ui.currentFocused)
		}
		if ev.Button.IsDefault() {
			if accepted && target != NullNode && ui.nodes.get(target.index()).flags&NodeFocusable != 0 && ui.visibleForEvents(target) {
				if ui.focus(target) {
					ui.currentFocused = target
				}
			} else if target == ui.currentFocused {
				// already focused and re-pressed without accept change: no-op
			} else if ui.currentFocused != NullNode && target != ui.currentFocused {
				// handled by blur above
			}
		}
	}

	ui.runFallthrough(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerPressEvent(d, e) })
	return ev.Accepted, nil
}

// suppressesBlur reports whether pressing target should leave the
// currently focused node alone: target itself carries NodeNoBlur, or a
// NodeFallthroughPointerEvents ancestor on target's parent chain does (the
// same chain runFallthrough walks to offer the event a second time).
func (ui *UserInterface) suppressesBlur(target NodeHandle) bool {
	if target == NullNode {
		return false
	}
	n := ui.nodes.get(target.index())
	if n.flags&NodeNoBlur != 0 {
		return true
	}
	for p := n.parent; p != NullNode; p = ui.nodes.get(p.index()).parent {
		pn := ui.nodes.get(p.index())
		if pn.flags&NodeFallthroughPointerEvents == 0 {
			continue
		}
		if pn.flags&NodeNoBlur != 0 {
			return true
		}
	}
	return false
}

// updateCaptureFrom applies "Update current_captured from event's
// captured flag if accepted".
func (ui *UserInterface) updateCaptureFrom(ev *PointerEvent, target NodeHandle) {
	if ev.Captured {
		ui.currentCaptured = target
	} else {
		ui.currentCaptured = NullNode
	}
}

// blur invokes blur_event on node if non-null and clears it as focused.
func (ui *UserInterface) blur(node NodeHandle) {
	if node == NullNode {
		return
	}
	for _, a := range ui.dataAttachments[node] {
		if l, err := ui.LayerInstance(a.layer); err == nil {
			l.BlurEvent(a.data)
		}
	}
	if ui.currentFocused == node {
		ui.currentFocused = NullNode
	}
}

// focus invokes focus_event on node and returns whether any data accepted.
func (ui *UserInterface) focus(node NodeHandle) bool {
	accepted := false
	for _, a := range ui.dataAttachments[node] {
		if l, err := ui.LayerInstance(a.layer); err == nil {
			if l.FocusEvent(a.data) {
				accepted = true
			}
		}
	}
	return accepted
}

// FocusEvent implements the public focus_event API.
func (ui *UserInterface) FocusEvent(node NodeHandle) error {
	if node != NullNode {
		if !ui.IsNodeValid(node) {
			return invalidHandleError("node", uint64(node))
		}
		if ui.nodes.get(node.index()).flags&NodeFocusable == 0 || !ui.visibleForEvents(node) {
			return ErrIncompatibleCapabilities
		}
	}
	old := ui.currentFocused
	if old == node {
		return nil
	}
	if node == NullNode {
		ui.blur(old)
		return nil
	}
	if ui.focus(node) {
		ui.blur(old)
		ui.currentFocused = node
	} else if old != NullNode {
		ui.blur(old)
	}
	return nil
}

// runFallthrough walks the parent chain from target, offering the event
// to each FallthroughPointerEvents ancestor.
func (ui *UserInterface) runFallthrough(target NodeHandle, ev *PointerEvent, call func(Layer, DataHandle, *PointerEvent) bool) {
	if !ev.Accepted && ui.currentCaptured == NullNode {
		return
	}
	start := target
	if start == NullNode {
		start = ui.currentCaptured
	}
	if start == NullNode {
		return
	}
	for p := ui.nodes.get(start.index()).parent; p != NullNode; p = ui.nodes.get(p.index()).parent {
		if ui.nodes.get(p.index()).flags&NodeFallthroughPointerEvents == 0 {
			continue
		}
		fe := *ev
		fe.Fallthrough = true
		fe.Accepted = false
		accepted := ui.deliverPointer(p, &fe, call)
		if !accepted {
			continue
		}
		ui.cancelAndTransfer(p, ev.Primary)
		target = p
		ev.Accepted = true
	}
}

// cancelAndTransfer cancels the previous pressed/hovered/focused/captured
// nodes that differ from newTarget and transfers state to it.
func (ui *UserInterface) cancelAndTransfer(newTarget NodeHandle, primary bool) {
	for _, old := range []NodeHandle{ui.currentPressed, ui.currentHovered, ui.currentFocused, ui.currentCaptured} {
		if old != NullNode && old != newTarget {
			ui.deliverCancel(old)
		}
	}
	ui.currentCaptured = newTarget
	if primary {
		ui.currentPressed = newTarget
		ui.currentHovered = newTarget
	}
	if ui.currentFocused != newTarget {
		ui.currentFocused = NullNode
	}
}

// PointerReleaseEvent runs the release-delivery algorithm.
func (ui *UserInterface) PointerReleaseEvent(ev *PointerEvent) (bool, error) {
	if ev.Accepted {
		return false, ErrEventAlreadyAccepted
	}
	pos := ui.toUICoordinates(ev.Position)
	ev.Position = pos

	var target NodeHandle
	accepted := false
	if ui.currentCaptured != NullNode {
		target = ui.currentCaptured
		ev.Captured = true
		rect := Rect{Offset: ui.nodeAbsoluteOffset(target), Size: ui.nodes.get(target.index()).size}
		ev.Hovered = rect.Contains(pos)
		accepted = ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerReleaseEvent(d, e) })
	} else {
		target = ui.hitTest(pos)
		if target != NullNode {
			ev.Hovered = true
			accepted = ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerReleaseEvent(d, e) })
		}
	}
	ev.Accepted = accepted

	if ev.Primary {
		ui.currentCaptured = NullNode
		ui.currentPressed = NullNode
	} else if accepted {
		ui.updateCaptureFrom(ev, target)
	}

	ui.runFallthrough(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerReleaseEvent(d, e) })
	return ev.Accepted, nil
}

// PointerMoveEvent runs the move-delivery algorithm including enter/leave.
func (ui *UserInterface) PointerMoveEvent(ev *PointerEvent) (bool, error) {
	if ev.Accepted {
		return false, ErrEventAlreadyAccepted
	}
	pos := ui.toUICoordinates(ev.Position)
	ev.Position = pos

	var target NodeHandle
	accepted := false
	if ui.currentCaptured != NullNode {
		target = ui.currentCaptured
		ev.Captured = true
		rect := Rect{Offset: ui.nodeAbsoluteOffset(target), Size: ui.nodes.get(target.index()).size}
		ev.Hovered = rect.Contains(pos)
		accepted = ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerMoveEvent(d, e) })
	} else {
		target = ui.hitTest(pos)
		if target != NullNode {
			ev.Hovered = true
			accepted = ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerMoveEvent(d, e) })
		}
	}
	ev.Accepted = accepted

	if target != ui.currentHovered {
		old := ui.currentHovered
		if old != NullNode {
			leaveEv := &PointerEvent{Position: Vec2{}, Button: ev.Button, Primary: ev.Primary, Captured: old == ui.currentCaptured}
			ui.deliverPointerAll(old, leaveEv, func(l Layer, d DataHandle, e *PointerEvent) { l.PointerLeaveEvent(d, e) })
			if leaveEv.Captured {
				ui.currentCaptured = old
			}
		}
		if target != NullNode {
			enterEv := &PointerEvent{Position: pos, Button: ev.Button, Primary: ev.Primary}
			ui.deliverPointerAll(target, enterEv, func(l Layer, d DataHandle, e *PointerEvent) { l.PointerEnterEvent(d, e) })
			if enterEv.Captured {
				ui.currentCaptured = target
			}
		}
		ui.currentHovered = target
	}

	if ev.Primary {
		ui.globalPointerPosition = pos
		ui.hasGlobalPointerPosition = true
	}

	ui.runFallthrough(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerMoveEvent(d, e) })
	return ev.Accepted, nil
}

// ScrollEvent, KeyPressEvent, KeyReleaseEvent and TextInputEvent are
// directed to a target without hit-test descent into children.

// ScrollEvent delivers to the captured node, else the currently hovered
// node.
func (ui *UserInterface) ScrollEvent(ev *PointerEvent) (bool, error) {
	if ev.Accepted {
		return false, ErrEventAlreadyAccepted
	}
	target := ui.currentCaptured
	if target == NullNode {
		target = ui.currentHovered
	}
	if target == NullNode {
		return false, nil
	}
	accepted := ui.deliverPointer(target, ev, func(l Layer, d DataHandle, e *PointerEvent) bool { return l.PointerMoveEvent(d, e) })
	ev.Accepted = accepted
	return accepted, nil
}

// KeyPressEvent delivers to current_focused.
func (ui *UserInterface) KeyPressEvent(ev *KeyEvent) (bool, error) {
	return ui.deliverKey(ev, func(l Layer, d DataHandle, e *KeyEvent) bool { return l.KeyPressEvent(d, e) })
}

// KeyReleaseEvent delivers to current_focused.
func (ui *UserInterface) KeyReleaseEvent(ev *KeyEvent) (bool, error) {
	return ui.deliverKey(ev, func(l Layer, d DataHandle, e *KeyEvent) bool { return l.KeyReleaseEvent(d, e) })
}

func (ui *UserInterface) deliverKey(ev *KeyEvent, call func(Layer, DataHandle, *KeyEvent) bool) (bool, error) {
	if ev.Accepted {
		return false, ErrEventAlreadyAccepted
	}
	if ui.currentFocused == NullNode {
		return false, nil
	}
	attachments := ui.dataAttachments[ui.currentFocused]
	for i := len(attachments) - 1; i >= 0; i-- {
		a := attachments[i]
		l, err := ui.LayerInstance(a.layer)
		if err != nil {
			continue
		}
		if call(l, a.data, ev) {
			ev.Accepted = true
			return true, nil
		}
	}
	return false, nil
}

// TextInputEvent delivers text to current_focused.
func (ui *UserInterface) TextInputEvent(text string) bool {
	if ui.currentFocused == NullNode {
		return false
	}
	attachments := ui.dataAttachments[ui.currentFocused]
	for i := len(attachments) - 1; i >= 0; i-- {
		a := attachments[i]
		if l, err := ui.LayerInstance(a.layer); err == nil && l.TextInputEvent(a.data, text) {
			return true
		}
	}
	return false
}
