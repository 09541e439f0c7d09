package uicore

// StyleTransitionFunc maps a non-dynamic style index to another
// non-dynamic style index. A nil function is the identity.
type StyleTransitionFunc func(style int) int

// TransitionKind selects one of the six event-driven transition
// functions; ToDisabled is handled separately by CalculatedStyle.
type TransitionKind uint8

const (
	ToInactiveOut TransitionKind = iota
	ToInactiveOver
	ToFocusedOut
	ToFocusedOver
	ToPressedOut
	ToPressedOver
)

// StyleTransitions holds the seven user-registrable transition functions.
type StyleTransitions struct {
	ToInactiveOut, ToInactiveOver StyleTransitionFunc
	ToFocusedOut, ToFocusedOver   StyleTransitionFunc
	ToPressedOut, ToPressedOver   StyleTransitionFunc
	ToDisabled                    StyleTransitionFunc
}

func apply(fn StyleTransitionFunc, style int) int {
	if fn == nil {
		return style
	}
	return fn(style)
}

func (t *StyleTransitions) of(kind TransitionKind) StyleTransitionFunc {
	switch kind {
	case ToInactiveOut:
		return t.ToInactiveOut
	case ToInactiveOver:
		return t.ToInactiveOver
	case ToFocusedOut:
		return t.ToFocusedOut
	case ToFocusedOver:
		return t.ToFocusedOver
	case ToPressedOut:
		return t.ToPressedOut
	case ToPressedOver:
		return t.ToPressedOver
	default:
		return nil
	}
}

// VisualLayerStyles implements the visual-layer style transition state
// machine: a fixed non-dynamic style range plus a pool of dynamic style
// slots, the seven transition functions, and the calculated-style/
// disabled-transition logic. A concrete Layer implementation embeds this
// and calls its methods from its own event hooks and Update(); the
// machinery itself does not implement Layer, since a real visual layer
// also owns its per-data draw/geometry state, which concrete layers are
// left to define for themselves.
type VisualLayerStyles struct {
	styleCount        int
	dynamicStyleCount int
	transitions       StyleTransitions
	dynamicUsed       []bool
	updateStamp       uint64
	observedStamp     uint64
}

// NewVisualLayerStyles creates the machine for styleCount non-dynamic
// styles and dynamicStyleCount dynamic slots.
func NewVisualLayerStyles(styleCount, dynamicStyleCount int) *VisualLayerStyles {
	return &VisualLayerStyles{
		styleCount:        styleCount,
		dynamicStyleCount: dynamicStyleCount,
		dynamicUsed:       make([]bool, dynamicStyleCount),
	}
}

// SetTransition installs fn for kind. It leaves the update stamp alone;
// the to_disabled function is installed by SetDisabledTransition, which
// bumps it.
func (v *VisualLayerStyles) SetTransition(kind TransitionKind, fn StyleTransitionFunc) {
	switch kind {
	case ToInactiveOut:
		v.transitions.ToInactiveOut = fn
	case ToInactiveOver:
		v.transitions.ToInactiveOver = fn
	case ToFocusedOut:
		v.transitions.ToFocusedOut = fn
	case ToFocusedOver:
		v.transitions.ToFocusedOver = fn
	case ToPressedOut:
		v.transitions.ToPressedOut = fn
	case ToPressedOver:
		v.transitions.ToPressedOver = fn
	}
}

// SetDisabledTransition installs the to_disabled function and bumps the
// update stamp.
func (v *VisualLayerStyles) SetDisabledTransition(fn StyleTransitionFunc) {
	v.transitions.ToDisabled = fn
	v.updateStamp++
}

// State reports NeedsDataUpdate if SetDisabledTransition has been called
// since the last Acknowledge.
func (v *VisualLayerStyles) State() LayerStates {
	if v.updateStamp != v.observedStamp {
		return NeedsDataUpdate
	}
	return 0
}

// Acknowledge records that the current update stamp has been observed;
// called by the owning layer's Update() once it has recomputed every
// data's calculated_style.
func (v *VisualLayerStyles) Acknowledge() { v.observedStamp = v.updateStamp }

// IsDynamic reports whether style is a dynamic-pool index.
func (v *VisualLayerStyles) IsDynamic(style int) bool {
	return style >= v.styleCount && style < v.styleCount+v.dynamicStyleCount
}

// AllocateDynamicStyle returns the first free dynamic slot, or false if
// the pool is exhausted.
func (v *VisualLayerStyles) AllocateDynamicStyle() (int, bool) {
	for i, used := range v.dynamicUsed {
		if !used {
			v.dynamicUsed[i] = true
			return v.styleCount + i, true
		}
	}
	return 0, false
}

// RecycleDynamicStyle frees a previously allocated dynamic style index.
func (v *VisualLayerStyles) RecycleDynamicStyle(style int) {
	if v.IsDynamic(style) {
		v.dynamicUsed[style-v.styleCount] = false
	}
}

// CalculatedStyle computes calculated_style for style: the identity if
// enabled or dynamic, else to_disabled(style). style must lie in
// [0, styleCount+dynamicStyleCount).
func (v *VisualLayerStyles) CalculatedStyle(style int, enabled bool) (int, error) {
	if style < 0 || style >= v.styleCount+v.dynamicStyleCount {
		return 0, outOfRangeErr("style", style, v.styleCount+v.dynamicStyleCount)
	}
	if v.IsDynamic(style) {
		return style, nil
	}
	if enabled {
		return style, nil
	}
	out := apply(v.transitions.ToDisabled, style)
	if out < 0 || out >= v.styleCount {
		return 0, outOfRangeErr("style_transition_result", out, v.styleCount)
	}
	return out, nil
}

// Transition applies the transition function for kind against current,
// honoring the dynamic-style/animation-target rule: if current is
// dynamic, the transition runs against *animationTarget
// (when non-nil and itself non-dynamic) purely to validate it stays in
// range, but the live style value is left unchanged — only a non-dynamic
// current style is actually rewritten.
func (v *VisualLayerStyles) Transition(current int, animationTarget *int, kind TransitionKind) (int, error) {
	fn := v.transitions.of(kind)
	if !v.IsDynamic(current) {
		out := apply(fn, current)
		if out < 0 || out >= v.styleCount {
			return current, outOfRangeErr("style_transition_result", out, v.styleCount)
		}
		return out, nil
	}
	if animationTarget == nil || v.IsDynamic(*animationTarget) {
		return current, nil
	}
	out := apply(fn, *animationTarget)
	if out < 0 || out >= v.styleCount {
		return current, outOfRangeErr("style_transition_result", out, v.styleCount)
	}
	return current, nil
}

// The following helpers implement the exact event → transition-kind
// mapping, each taking the data's current hover/focus state as observed
// at the moment of the event.

// OnPress applies the press transition for a default-pointer press.
func (v *VisualLayerStyles) OnPress(style int, animationTarget *int, hovered bool) (int, error) {
	if hovered {
		return v.Transition(style, animationTarget, ToPressedOver)
	}
	return v.Transition(style, animationTarget, ToPressedOut)
}

// OnRelease applies the release transition.
func (v *VisualLayerStyles) OnRelease(style int, animationTarget *int, focused, hovered bool) (int, error) {
	switch {
	case focused && hovered:
		return v.Transition(style, animationTarget, ToFocusedOver)
	case focused:
		return v.Transition(style, animationTarget, ToFocusedOut)
	case hovered:
		return v.Transition(style, animationTarget, ToInactiveOver)
	default:
		return v.Transition(style, animationTarget, ToInactiveOut)
	}
}

// OnPointerEnter applies the enter transition.
func (v *VisualLayerStyles) OnPointerEnter(style int, animationTarget *int, captured, focused bool) (int, error) {
	switch {
	case captured:
		return v.Transition(style, animationTarget, ToPressedOver)
	case focused:
		return v.Transition(style, animationTarget, ToFocusedOver)
	default:
		return v.Transition(style, animationTarget, ToInactiveOver)
	}
}

// OnPointerLeave applies the leave transition (the _out counterpart of
// OnPointerEnter).
func (v *VisualLayerStyles) OnPointerLeave(style int, animationTarget *int, captured, focused bool) (int, error) {
	switch {
	case captured:
		return v.Transition(style, animationTarget, ToPressedOut)
	case focused:
		return v.Transition(style, animationTarget, ToFocusedOut)
	default:
		return v.Transition(style, animationTarget, ToInactiveOut)
	}
}

// OnPointerCancel applies the cancel transition: always to_inactive_out.
func (v *VisualLayerStyles) OnPointerCancel(style int, animationTarget *int) (int, error) {
	return v.Transition(style, animationTarget, ToInactiveOut)
}

// OnFocus applies the focus transition, only called when not pressed.
func (v *VisualLayerStyles) OnFocus(style int, animationTarget *int, hovered bool) (int, error) {
	if hovered {
		return v.Transition(style, animationTarget, ToFocusedOver)
	}
	return v.Transition(style, animationTarget, ToFocusedOut)
}

// OnBlur applies the blur transition, only called when not pressed.
func (v *VisualLayerStyles) OnBlur(style int, animationTarget *int, hovered bool) (int, error) {
	if hovered {
		return v.Transition(style, animationTarget, ToInactiveOver)
	}
	return v.Transition(style, animationTarget, ToInactiveOut)
}

// OnVisibilityLost applies the visibility-lost transition, only called
// when not pressed (same mapping as OnBlur).
func (v *VisualLayerStyles) OnVisibilityLost(style int, animationTarget *int, hovered bool) (int, error) {
	return v.OnBlur(style, animationTarget, hovered)
}
