package uicore

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's contract-violation taxonomy. Check
// against these with errors.Is; the handle/value-carrying variants below
// wrap one of these so errors.Is still matches.
var (
	// ErrInvalidHandle is returned for any operation on a handle whose
	// generation doesn't match the arena slot's current generation.
	ErrInvalidHandle = errors.New("uicore: invalid handle")
	// ErrCapacityExceeded is returned by create_* when the arena is full.
	ErrCapacityExceeded = errors.New("uicore: arena capacity exceeded")
	// ErrAlreadySet is returned when set_*_instance is called twice for the
	// same handle, or set_renderer_instance is called twice.
	ErrAlreadySet = errors.New("uicore: instance already set")
	// ErrNoInstance is returned by *_instance(h) without a prior
	// set_*_instance call.
	ErrNoInstance = errors.New("uicore: no instance set")
	// ErrOutOfRange is returned when a style-transition function returns an
	// index outside [0, style_count), or set_style/set_transitioned_style
	// is given an out-of-range index.
	ErrOutOfRange = errors.New("uicore: value out of range")
	// ErrIncompatibleCapabilities is returned when a compositing layer is
	// paired with a non-compositing renderer, a data/style animator has no
	// layer set, or focus_event targets a non-Focusable node.
	ErrIncompatibleCapabilities = errors.New("uicore: incompatible capabilities")
	// ErrTimeRegression is returned by AdvanceAnimations when t is before
	// the last recorded animation time.
	ErrTimeRegression = errors.New("uicore: time regression")
	// ErrEventAlreadyAccepted is returned when an event object passed to an
	// entry point already has its Accepted flag set.
	ErrEventAlreadyAccepted = errors.New("uicore: event already accepted")
	// ErrNestedTopLevelOrder is returned by SetNodeOrder when the node's
	// sub-hierarchy already contains other nested top-level nodes — an
	// intentionally unsupported case.
	ErrNestedTopLevelOrder = errors.New("uicore: node has nested top-level descendants")
)

// handleError wraps ErrInvalidHandle with the concrete handle value for
// diagnostics, while still matching errors.Is(err, ErrInvalidHandle).
type handleError struct {
	kind string
	raw  uint64
}

func (e *handleError) Error() string {
	return fmt.Sprintf("uicore: invalid %s handle %#x", e.kind, e.raw)
}

func (e *handleError) Unwrap() error { return ErrInvalidHandle }

func invalidHandleError(kind string, raw uint64) error {
	return &handleError{kind: kind, raw: raw}
}

// outOfRangeError wraps ErrOutOfRange with the offending value.
type outOfRangeError struct {
	what string
	got  int
	max  int
}

func (e *outOfRangeError) Error() string {
	return fmt.Sprintf("uicore: %s %d out of range [0, %d)", e.what, e.got, e.max)
}

func (e *outOfRangeError) Unwrap() error { return ErrOutOfRange }

func outOfRangeErr(what string, got, max int) error {
	return &outOfRangeError{what: what, got: got, max: max}
}
