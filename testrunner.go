package iris

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Key    string  `json:"key,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Index  *int    `json:"index,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, screenshots and index checks across
// frames for scripted runs. Attach to a Stage via SetTestRunner.
//
// Actions: "wheel" (dy), "key" (key), "swipe" (fromY, toY, frames),
// "wait" (frames), "screenshot" (label), "expect" (index).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses and validates a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "wheel", "swipe", "wait", "screenshot":
		return nil
	case "key":
		if _, ok := ParseKey(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	case "expect":
		if st.Index == nil {
			return fmt.Errorf("expect needs an index")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed "expect" steps.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one frame. Called from Stage.Update.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if s.input.Pending() > 0 {
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
	case "screenshot":
		s.Screenshot(st.Label)
	case "wheel":
		s.input.InjectWheel(st.DY)
	case "key":
		k, _ := ParseKey(st.Key)
		s.input.InjectKey(k)
	case "swipe":
		s.input.InjectSwipe(st.FromY, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		if got := s.nav.Index(); got != *st.Index {
			msg := fmt.Sprintf("step %d: index = %d, want %d", r.cursor-1, got, *st.Index)
			r.failures = append(r.failures, msg)
			s.log.Error("test script expectation failed", "step", r.cursor-1, "index", got, "want", *st.Index)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.input.Pending() == 0 {
		r.done = true
	}
}
