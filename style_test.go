package uicore

import (
	"errors"
	"testing"
)

func TestCalculatedStyleIdentityWhenEnabled(t *testing.T) {
	v := NewVisualLayerStyles(3, 2)
	got, err := v.CalculatedStyle(1, true)
	if err != nil {
		t.Fatalf("CalculatedStyle: %v", err)
	}
	if got != 1 {
		t.Fatalf("CalculatedStyle = %d, want 1", got)
	}
}

func TestCalculatedStyleAppliesDisabledTransition(t *testing.T) {
	v := NewVisualLayerStyles(3, 2)
	v.SetDisabledTransition(func(style int) int { return 2 })
	got, err := v.CalculatedStyle(0, false)
	if err != nil {
		t.Fatalf("CalculatedStyle: %v", err)
	}
	if got != 2 {
		t.Fatalf("CalculatedStyle = %d, want 2", got)
	}
}

func TestCalculatedStyleRejectsOutOfRangeStyle(t *testing.T) {
	v := NewVisualLayerStyles(3, 2)
	_, err := v.CalculatedStyle(99, true)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("CalculatedStyle = %v, want ErrOutOfRange", err)
	}
}

func TestCalculatedStyleRejectsOutOfRangeDisabledResult(t *testing.T) {
	v := NewVisualLayerStyles(3, 2)
	v.SetDisabledTransition(func(style int) int { return 50 })
	_, err := v.CalculatedStyle(0, false)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("CalculatedStyle = %v, want ErrOutOfRange", err)
	}
}

func TestCalculatedStyleDynamicStyleIsAlwaysIdentity(t *testing.T) {
	v := NewVisualLayerStyles(3, 2)
	dyn, ok := v.AllocateDynamicStyle()
	if !ok {
		t.Fatalf("expected a free dynamic slot")
	}
	got, err := v.CalculatedStyle(dyn, false)
	if err != nil {
		t.Fatalf("CalculatedStyle: %v", err)
	}
	if got != dyn {
		t.Fatalf("CalculatedStyle = %d, want dynamic style unchanged (%d)", got, dyn)
	}
}

func TestAllocateAndRecycleDynamicStyle(t *testing.T) {
	v := NewVisualLayerStyles(2, 1)
	first, ok := v.AllocateDynamicStyle()
	if !ok {
		t.Fatalf("expected a free slot")
	}
	if _, ok := v.AllocateDynamicStyle(); ok {
		t.Fatalf("expected the pool to be exhausted")
	}
	v.RecycleDynamicStyle(first)
	if _, ok := v.AllocateDynamicStyle(); !ok {
		t.Fatalf("expected the recycled slot to be available again")
	}
}

func TestStateReportsDirtyAfterSetDisabledTransition(t *testing.T) {
	v := NewVisualLayerStyles(2, 1)
	if v.State() != 0 {
		t.Fatalf("expected a fresh VisualLayerStyles to report no dirty state")
	}
	v.SetDisabledTransition(func(style int) int { return style })
	if v.State()&NeedsDataUpdate == 0 {
		t.Fatalf("expected NeedsDataUpdate after SetDisabledTransition")
	}
	v.Acknowledge()
	if v.State() != 0 {
		t.Fatalf("expected State() to clear after Acknowledge")
	}
}

func TestTransitionRewritesNonDynamicStyle(t *testing.T) {
	v := NewVisualLayerStyles(3, 1)
	v.SetTransition(ToPressedOver, func(style int) int { return 2 })
	got, err := v.Transition(0, nil, ToPressedOver)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got != 2 {
		t.Fatalf("Transition = %d, want 2", got)
	}
}

func TestTransitionLeavesDynamicStyleUnchanged(t *testing.T) {
	v := NewVisualLayerStyles(3, 1)
	v.SetTransition(ToPressedOver, func(style int) int { return 0 })
	dyn, _ := v.AllocateDynamicStyle()
	got, err := v.Transition(dyn, nil, ToPressedOver)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if got != dyn {
		t.Fatalf("Transition = %d, want dynamic style unchanged (%d)", got, dyn)
	}
}

func TestOnPressSelectsHoveredVariant(t *testing.T) {
	v := NewVisualLayerStyles(3, 0)
	v.SetTransition(ToPressedOver, func(style int) int { return 1 })
	v.SetTransition(ToPressedOut, func(style int) int { return 2 })

	got, err := v.OnPress(0, nil, true)
	if err != nil {
		t.Fatalf("OnPress(hovered): %v", err)
	}
	if got != 1 {
		t.Fatalf("OnPress(hovered) = %d, want 1", got)
	}

	got, err = v.OnPress(0, nil, false)
	if err != nil {
		t.Fatalf("OnPress(not hovered): %v", err)
	}
	if got != 2 {
		t.Fatalf("OnPress(not hovered) = %d, want 2", got)
	}
}

func TestOnReleasePicksFocusedAndHoveredCombination(t *testing.T) {
	v := NewVisualLayerStyles(4, 0)
	v.SetTransition(ToFocusedOver, func(style int) int { return 1 })
	v.SetTransition(ToInactiveOut, func(style int) int { return 3 })

	got, err := v.OnRelease(0, nil, true, true)
	if err != nil {
		t.Fatalf("OnRelease(focused, hovered): %v", err)
	}
	if got != 1 {
		t.Fatalf("OnRelease(focused, hovered) = %d, want 1", got)
	}

	got, err = v.OnRelease(0, nil, false, false)
	if err != nil {
		t.Fatalf("OnRelease(neither): %v", err)
	}
	if got != 3 {
		t.Fatalf("OnRelease(neither) = %d, want 3", got)
	}
}
