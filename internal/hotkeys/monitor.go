// Package hotkeys turns the raw global key stream into hold-activation
// events: one HoldStart per continuous hold of the trigger modifiers, one
// HoldEnd on release, and Cancel on the abort key while held.
package hotkeys

import (
	"fmt"

	"pinwheel/internal/input"
	"pinwheel/internal/keys"
)

// Event is a hold-activation event.
type Event int

const (
	HoldStart Event = iota
	HoldEnd
	Cancel
)

func (e Event) String() string {
	switch e {
	case HoldStart:
		return "HoldStart"
	case HoldEnd:
		return "HoldEnd"
	case Cancel:
		return "Cancel"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Config describes the trigger combination.
type Config struct {
	// Trigger is the modifier set that must all be held. Must be non-empty.
	Trigger keys.Modifier
	// CancelKey names the abort key ("escape"), or "" to disable.
	CancelKey string
}

// Monitor tracks global modifier state. It has no goroutines and no
// side effects; feed it key events in arrival order and it emits at most
// one hold event per input event. Key repeat is absorbed: a KeyDown of an
// already-held modifier changes nothing.
type Monitor struct {
	cfg    Config
	held   keys.Modifier
	active bool
	// armed gates re-triggering: after a Cancel the trigger modifiers
	// must be fully released before a new hold can start, otherwise key
	// repeat would reopen the wheel immediately.
	armed bool
}

// NewMonitor returns a monitor for the given trigger configuration.
func NewMonitor(cfg Config) (*Monitor, error) {
	if cfg.Trigger == keys.ModNone {
		return nil, fmt.Errorf("hotkey trigger has no modifiers")
	}
	return &Monitor{cfg: cfg, armed: true}, nil
}

// Active reports whether a hold is currently in progress.
func (m *Monitor) Active() bool {
	return m.active
}

// Process consumes one raw key event and returns the hold event it causes,
// if any. MouseMove events are ignored.
func (m *Monitor) Process(ev input.Event) (Event, bool) {
	switch ev.Kind {
	case input.KeyDown:
		return m.keyDown(ev.Rawcode)
	case input.KeyUp:
		return m.keyUp(ev.Rawcode)
	}
	return 0, false
}

func (m *Monitor) keyDown(rawcode uint16) (Event, bool) {
	if mod, ok := input.ModifierFromRawcode(rawcode); ok {
		m.held = m.held.With(mod)
		if m.armed && !m.active && m.held.Contains(m.cfg.Trigger) {
			m.active = true
			return HoldStart, true
		}
		return 0, false
	}

	if m.active && m.cfg.CancelKey != "" && input.KeyName(rawcode) == m.cfg.CancelKey {
		m.active = false
		m.armed = false
		return Cancel, true
	}
	return 0, false
}

func (m *Monitor) keyUp(rawcode uint16) (Event, bool) {
	mod, ok := input.ModifierFromRawcode(rawcode)
	if !ok {
		return 0, false
	}
	m.held = m.held.Without(mod)

	if !m.armed && m.held&m.cfg.Trigger == keys.ModNone {
		m.armed = true
	}

	if m.active && !m.held.Contains(m.cfg.Trigger) {
		m.active = false
		return HoldEnd, true
	}
	return 0, false
}
