package uicore

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events across frames, for
// scripted exercising of the event-dispatch state machine without a real
// input backend. The host calls Step with its UserInterface once per frame.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	onLabel   func(label string)
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be driven by Step.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// OnLabel registers a callback invoked for "label" actions, letting a host
// mark a checkpoint (e.g. take a screenshot) without TestRunner depending
// on any particular rendering backend.
func (r *TestRunner) OnLabel(fn func(label string)) { r.onLabel = fn }

// Done reports whether every step in the script has executed.
func (r *TestRunner) Done() bool { return r.done }

// Step advances the runner by one frame: it waits for any previously
// queued injected input to drain, counts down pending "wait" frames, then
// executes the next scripted action against ui.
func (r *TestRunner) Step(ui *UserInterface) {
	if r.done {
		return
	}
	if ui.HasInjectedInput() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "label":
		if r.onLabel != nil {
			r.onLabel(st.Label)
		}
	case "click":
		ui.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		ui.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !ui.HasInjectedInput() {
		r.done = true
	}
}
