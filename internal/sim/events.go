package sim

import (
	"fmt"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

// Event is an input delivered to a session by a frame driver. Events are
// applied between ticks on the session's goroutine.
type Event interface {
	apply(s *Session) error
}

// EntityEvent switches the entity mode and resets the fields.
type EntityEvent struct{ Mode dynamo.EntityMode }

// ViewEvent changes which field is presented.
type ViewEvent struct{ Mode dynamo.ViewMode }

// CycleViewEvent advances to the next view mode.
type CycleViewEvent struct{}

// PauseEvent sets the paused flag.
type PauseEvent struct{ Paused bool }

// TogglePauseEvent flips the paused flag.
type TogglePauseEvent struct{}

// ResetEvent re-enters the current entity mode.
type ResetEvent struct{}

func (e EntityEvent) apply(s *Session) error {
	_, err := s.Reset(e.Mode)
	return err
}

func (e ViewEvent) apply(s *Session) error { return s.SetViewMode(e.Mode) }

func (CycleViewEvent) apply(s *Session) error { return s.SetViewMode(s.view.Next()) }

func (e PauseEvent) apply(s *Session) error {
	s.SetPaused(e.Paused)
	return nil
}

func (TogglePauseEvent) apply(s *Session) error {
	s.TogglePause()
	return nil
}

func (ResetEvent) apply(s *Session) error {
	_, err := s.Reset(s.entity)
	return err
}

// Apply performs the transition for e. Invalid modes are rejected and leave
// the session untouched.
func (s *Session) Apply(e Event) error {
	if e == nil {
		return fmt.Errorf("sim: nil event")
	}
	return e.apply(s)
}

// KeyEvent maps a key name, as reported by the terminal and window drivers,
// to the event it triggers.
func KeyEvent(key string) (Event, bool) {
	switch key {
	case "1", "2", "3", "4", "5":
		return EntityEvent{Mode: dynamo.EntityMode(key[0] - '1')}, true
	case "v", "tab":
		return CycleViewEvent{}, true
	case "space", " ":
		return TogglePauseEvent{}, true
	case "r":
		return ResetEvent{}, true
	case "f1":
		return ViewEvent{Mode: dynamo.Tension}, true
	case "f2":
		return ViewEvent{Mode: dynamo.Curvature}, true
	case "f3":
		return ViewEvent{Mode: dynamo.Coherence}, true
	}
	return nil, false
}
