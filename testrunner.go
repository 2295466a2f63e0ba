package sapling

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoSteps is returned when a test script has no steps.
var ErrNoSteps = errors.New("sapling: test script has no steps")

// testStep is one action in a test script.
type testStep struct {
	Action string  `json:"action" toml:"action"`
	Label  string  `json:"label,omitempty" toml:"label"`
	X      float64 `json:"x,omitempty" toml:"x"`
	Y      float64 `json:"y,omitempty" toml:"y"`
	FromX  float64 `json:"fromX,omitempty" toml:"from_x"`
	FromY  float64 `json:"fromY,omitempty" toml:"from_y"`
	ToX    float64 `json:"toX,omitempty" toml:"to_x"`
	ToY    float64 `json:"toY,omitempty" toml:"to_y"`
	Button int     `json:"button,omitempty" toml:"button"`
	Frames int     `json:"frames,omitempty" toml:"frames"`
}

type testScript struct {
	Steps []testStep `json:"steps" toml:"steps"`
}

// TestRunner sequences injected pointer events, waits and screenshots across
// frames for scripted visual tests. Attach it with Scene.SetTestRunner.
//
// Actions: screenshot, click, move, press, release, drag, leave, wait.
// Unknown actions are logged and skipped.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON script:
//
//	{"steps": [{"action": "click", "x": 10, "y": 20}, {"action": "wait", "frames": 3}]}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("sapling: parse test script: %w", err)
	}
	return newTestRunner(script)
}

// LoadTestScriptTOML parses the same script as an array of [[steps]] tables.
// Drag endpoints use snake_case keys (from_x, to_y, ...).
func LoadTestScriptTOML(data []byte) (*TestRunner, error) {
	var script testScript
	if err := toml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("sapling: parse test script: %w", err)
	}
	return newTestRunner(script)
}

func newTestRunner(script testScript) (*TestRunner, error) {
	if len(script.Steps) == 0 {
		return nil, ErrNoSteps
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene. It is stepped at the start of
// every Update. nil detaches.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one action per frame, holding while injected input is
// still queued or a wait is counting down.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
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

	button := MouseButton(st.Button)
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "press":
		s.InjectButtonPress(st.X, st.Y, button)
	case "release":
		s.InjectButtonRelease(st.X, st.Y, button)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		s.InjectLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		logger().Warn("sapling: test script: unknown action", "action", st.Action, "step", r.cursor-1)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
