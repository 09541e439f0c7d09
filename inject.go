package uicore

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
)

// syntheticPointerEvent is a single queued injected pointer event, in
// window coordinates exactly as a real input backend would report them.
type syntheticPointerEvent struct {
	position Vec2
	kind     injectKind
	button   PointerButton
}

// InjectPress queues a primary pointer press at the given window
// coordinates, consumed by the next DrainInjectedInput call.
func (ui *UserInterface) InjectPress(x, y float64) {
	ui.injectQueue = append(ui.injectQueue, syntheticPointerEvent{position: Vec2{X: x, Y: y}, kind: injectPress, button: MouseLeft})
}

// InjectMove queues a pointer move at the given window coordinates with
// the button held down, for use between InjectPress and InjectRelease to
// simulate a drag.
func (ui *UserInterface) InjectMove(x, y float64) {
	ui.injectQueue = append(ui.injectQueue, syntheticPointerEvent{position: Vec2{X: x, Y: y}, kind: injectMove, button: MouseLeft})
}

// InjectRelease queues a pointer release at the given window coordinates.
func (ui *UserInterface) InjectRelease(x, y float64) {
	ui.injectQueue = append(ui.injectQueue, syntheticPointerEvent{position: Vec2{X: x, Y: y}, kind: injectRelease, button: MouseLeft})
}

// InjectClick queues a press immediately followed by a release at the
// same coordinates; draining it consumes two queued events.
func (ui *UserInterface) InjectClick(x, y float64) {
	ui.InjectPress(x, y)
	ui.InjectRelease(x, y)
}

// InjectDrag queues a full press/move.../release sequence: press at
// (fromX, fromY), frames-2 linearly interpolated moves, and release at
// (toX, toY). frames is clamped to a minimum of 2.
func (ui *UserInterface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	ui.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		ui.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	ui.InjectRelease(toX, toY)
}

// DrainInjectedInput feeds one queued synthetic event through the normal
// PointerPressEvent/PointerMoveEvent/PointerReleaseEvent entry points and
// reports whether an event was consumed, so a host loop can skip real
// input processing for that frame whenever injected input is pending.
func (ui *UserInterface) DrainInjectedInput() (bool, error) {
	if len(ui.injectQueue) == 0 {
		return false, nil
	}
	evt := ui.injectQueue[0]
	ui.injectQueue = ui.injectQueue[1:]

	ev := &PointerEvent{Position: evt.position, Button: evt.button, Primary: true}
	switch evt.kind {
	case injectPress:
		_, err := ui.PointerPressEvent(ev)
		return true, err
	case injectMove:
		_, err := ui.PointerMoveEvent(ev)
		return true, err
	default:
		_, err := ui.PointerReleaseEvent(ev)
		return true, err
	}
}

// HasInjectedInput reports whether any synthetic events remain queued.
func (ui *UserInterface) HasInjectedInput() bool { return len(ui.injectQueue) > 0 }
