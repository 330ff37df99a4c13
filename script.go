package reach

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string    `json:"action"`
	Target string    `json:"target,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Z      float64   `json:"z,omitempty"`
	From   []float64 `json:"from,omitempty"`
	To     []float64 `json:"to,omitempty"`
	Frames int       `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptTarget is what a Script drives: the actor's pose queue, its select
// button, and the interactor itself for forced selections. Nil fields make
// the matching actions no-ops with a logged warning.
type ScriptTarget struct {
	Source     *PoseQueue
	Button     *ButtonPolicy
	Interactor *Interactor
}

// Script sequences synthetic poses, button presses, and forced selections
// across frames for automated interaction tests.
//
// Actions:
//
//	move          {"x","y","z"}            queue one pose
//	path          {"from","to","frames"}   queue an interpolated path
//	press/release                          hold or let go of the button
//	wait          {"frames"}               idle for n frames
//	force         {"target"}               ForceSelect the named interactable
//	release-force                          ForceRelease
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "press", "release", "wait", "force", "release-force":
		case "path":
			if len(st.From) != 3 || len(st.To) != 3 {
				return nil, fmt.Errorf("parse script: step %d: path needs 3-component from and to", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether all steps have been executed.
func (s *Script) Done() bool { return s.done }

// Step advances the script by one frame. Call it once per frame before
// World.Update.
func (s *Script) Step(t ScriptTarget) {
	if s.done {
		return
	}
	// Wait for pending poses to drain before advancing.
	if t.Source != nil && t.Source.Pending() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		if t.Source != nil {
			t.Source.PushPosition(Vec3{st.X, st.Y, st.Z})
		}
	case "path":
		if t.Source != nil {
			from := PoseAt(Vec3{st.From[0], st.From[1], st.From[2]})
			to := PoseAt(Vec3{st.To[0], st.To[1], st.To[2]})
			t.Source.PushPath(from, to, st.Frames)
		}
	case "press":
		if t.Button != nil {
			t.Button.Press()
		}
	case "release":
		if t.Button != nil {
			t.Button.Release()
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "force":
		s.force(t, st.Target)
	case "release-force":
		if t.Interactor != nil {
			t.Interactor.ForceRelease()
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && (t.Source == nil || t.Source.Pending() == 0) {
		s.done = true
	}
}

func (s *Script) force(t ScriptTarget, name string) {
	iv := t.Interactor
	if iv == nil {
		return
	}
	ia := iv.world.FindInteractable(iv.kind, name)
	if ia == nil {
		iv.world.warnf("script: force: no interactable %q of kind %q", name, iv.kind)
		return
	}
	if err := iv.ForceSelect(ia); err != nil {
		iv.world.warnf("script: %v", err)
	}
}

// RunScript steps s and updates w with a fixed dt until the script is done
// and its queued poses are consumed. It fails after maxFrames frames.
func RunScript(w *World, s *Script, t ScriptTarget, dt time.Duration, maxFrames int) error {
	for frame := 0; frame < maxFrames; frame++ {
		s.Step(t)
		w.Update(dt)
		if s.Done() && (t.Source == nil || t.Source.Pending() == 0) {
			return nil
		}
	}
	return fmt.Errorf("run script: not done after %d frames", maxFrames)
}
