package sapling

import (
	"errors"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 5}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "screenshot" || st.Label != "initial" {
		t.Errorf("step 0 = %+v", st)
	}
	if st := runner.steps[1]; st.Action != "click" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 1 = %+v", st)
	}
	if st := runner.steps[3]; st.FromX != 1 || st.FromY != 2 || st.ToX != 3 || st.ToY != 4 || st.Frames != 5 {
		t.Errorf("step 3 = %+v", st)
	}
}

func TestLoadTestScriptTOML(t *testing.T) {
	data := []byte(`
[[steps]]
action = "move"
x = 10
y = 20

[[steps]]
action = "press"
x = 10
y = 20
button = 2

[[steps]]
action = "drag"
from_x = 1.5
to_y = 8
frames = 4
`)
	runner, err := LoadTestScriptTOML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[1]; st.Action != "press" || st.Button != 2 {
		t.Errorf("step 1 = %+v", st)
	}
	if st := runner.steps[2]; st.FromX != 1.5 || st.ToY != 8 || st.Frames != 4 {
		t.Errorf("step 2 = %+v", st)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		load   func([]byte) (*TestRunner, error)
		data   string
		noStep bool
	}{
		{"invalid json", LoadTestScript, `not json`, false},
		{"empty json", LoadTestScript, `{"steps": []}`, true},
		{"invalid toml", LoadTestScriptTOML, `[[steps]`, false},
		{"empty toml", LoadTestScriptTOML, `title = "nothing"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.load([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrNoSteps); got != tt.noStep {
				t.Errorf("errors.Is(err, ErrNoSteps) = %v, want %v (err: %v)", got, tt.noStep, err)
			}
		})
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s, btn := injectScene(t)
	clicks := 0
	btn.On(EventClick, func(*EventObject) { clicks++ })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for range 5 {
		s.Update()
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Frame 1 starts the wait; frames 2 and 3 count it down.
	for range 3 {
		s.Update()
	}
	if s.PendingScreenshots() != 0 {
		t.Fatal("screenshot queued during wait")
	}
	s.Update()
	if s.PendingScreenshots() != 1 {
		t.Errorf("PendingScreenshots = %d, want 1", s.PendingScreenshots())
	}
	if !runner.Done() {
		t.Error("runner should be done after its last step")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s, btn := injectScene(t)
	var order []string
	btn.On(EventMouseUp, func(*EventObject) { order = append(order, "up") })

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 20, "toY": 20, "frames": 4},
		{"action": "screenshot", "label": "dropped"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// The first frame queues the drag and dispatches the press.
	for range 3 {
		s.Update()
	}
	if len(order) != 0 || s.PendingScreenshots() != 0 {
		t.Fatal("runner advanced past a drag that has not finished")
	}
	s.Update()
	if len(order) != 1 || s.PendingScreenshots() != 0 {
		t.Fatalf("release or screenshot out of order: ups=%d shots=%d", len(order), s.PendingScreenshots())
	}
	s.Update()
	if s.PendingScreenshots() != 1 {
		t.Errorf("PendingScreenshots = %d, want 1", s.PendingScreenshots())
	}
}

func TestRunnerUnknownActionSkipped(t *testing.T) {
	s := NewScene(SceneConfig{Width: 10, Height: 10})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "dance"}, {"action": "leave"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Update()
	s.Update()
	s.Update()
	if !runner.Done() {
		t.Error("runner stuck on unknown action")
	}
}
