package barchart

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action  string   `yaml:"action"`
	Label   string   `yaml:"label,omitempty"`
	Frames  int      `yaml:"frames,omitempty"`
	Records []Record `yaml:"records,omitempty"`
}

// script is the top-level YAML structure for a script. JSON scripts parse
// too, since JSON is valid YAML.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

const (
	actionData       = "data"
	actionWait       = "wait"
	actionScreenshot = "screenshot"
)

// ScriptRunner sequences data batches, waits and screenshots across frames
// for reproducible runs and visual checks. Attach to a Scene via
// SetScriptRunner.
//
//	steps:
//	  - action: data
//	    records:
//	      - {key: USA, color: red, value: 320}
//	  - action: wait
//	    frames: 60
//	  - action: screenshot
//	    label: settled
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	onData    func([]Record) error
}

// LoadScript parses a YAML or JSON script and returns a ScriptRunner ready
// to be attached to a Scene via SetScriptRunner.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case actionData, actionWait, actionScreenshot:
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetDataFunc sets the function receiving each data step's records.
func (r *ScriptRunner) SetDataFunc(fn func([]Record) error) {
	r.onData = fn
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Step.
func (r *ScriptRunner) step(s *Scene) error {
	if r.done {
		return nil
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionData:
		if r.onData != nil {
			if err := r.onData(st.Records); err != nil {
				return fmt.Errorf("script step %d: %w", r.cursor-1, err)
			}
		}
	case actionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}
