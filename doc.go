// Package uicore is the core of a retained-mode user-interface runtime.
//
// The core owns a hierarchy of nodes (rectangular regions with offset,
// size, opacity and flags) plus auxiliary collections of layers (data
// producers for drawing and events), layouters (geometry solvers) and
// animators (time-driven mutators). It turns user input and wall-clock
// time into a consistent, incrementally-updated view of what must be
// redrawn and which attached piece of data must receive which event.
//
// Concrete GPU renderers, concrete layer/layouter implementations, fonts
// and application/windowing adapters are not part of this package — they
// are external collaborators defined only by the interfaces the core
// consumes (see [Layer], [Layouter], [Animator] and [Renderer]). Two such
// collaborators ship in sibling packages: renderers/ebitenrenderer (an
// Ebitengine-backed Renderer) and animators/gweenanim (gween-backed
// generic and node animators).
//
// # Quick start
//
//	ui := uicore.New(uicore.Vec2{X: 800, Y: 600})
//	root, _ := ui.CreateNode(uicore.NullNode, uicore.Vec2{}, uicore.Vec2{X: 800, Y: 600}, 0)
//	if err := ui.Update(); err != nil {
//		// handle contract violation
//	}
//	ui.Draw()
//
// # Single-threaded
//
// No operation in this package may be invoked concurrently from multiple
// goroutines; there is no internal locking. Callbacks (layer/layouter/
// animator methods, event handlers) run on the calling goroutine and may
// mutate style, offset, size, opacity and flags but must not remove
// nodes/layers/animators, change focus, or resize the UI.
package uicore
