// Package navigator owns the wheel navigation state machine: the stack of
// open wheels, highlight tracking, and the commit decision on release. It
// never mutates the wheel tree and never blocks; all side effects go out
// through the Dispatcher and Sink interfaces.
package navigator

import (
	"fmt"
	"time"

	"pinwheel/internal/geometry"
	"pinwheel/internal/wheel"
)

// Policy decides how Folder slots open.
type Policy int

const (
	// PolicyRelease pushes the folder's wheel when the hotkey is released
	// over it; the session stays open for another hold-free selection.
	PolicyRelease Policy = iota
	// PolicyDwell pushes the folder's wheel after the cursor hovers it
	// for the configured dwell delay; releasing over a folder closes
	// without action.
	PolicyDwell
)

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "release":
		return PolicyRelease, nil
	case "dwell":
		return PolicyDwell, nil
	}
	return PolicyRelease, fmt.Errorf("unknown commit policy %q", s)
}

// Result classifies how a session ended.
type Result int

const (
	// ResultDispatched: a keystroke, command, or launch slot was committed.
	ResultDispatched Result = iota
	// ResultCancelled: the cancel key aborted the session.
	ResultCancelled
	// ResultNoSelection: released over the dead zone or another no-op.
	ResultNoSelection
	// ResultEditRequested: an empty slot was committed; the external
	// editor was pointed at it.
	ResultEditRequested
)

func (r Result) String() string {
	switch r {
	case ResultDispatched:
		return "dispatched"
	case ResultCancelled:
		return "cancelled"
	case ResultNoSelection:
		return "no-selection"
	case ResultEditRequested:
		return "edit-requested"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome summarizes one finished session.
type Outcome struct {
	Result Result
	Action wheel.Kind // valid when Result is ResultDispatched
	Label  string     // committed slot label, if any
	Depth  int        // maximum stack depth reached
	Path   []int      // slot path for ResultEditRequested
}

// Dispatcher executes committed actions fire-and-forget. It must not block.
type Dispatcher interface {
	Dispatch(slot wheel.Slot)
}

// Sink receives the navigator's outward-facing events. Calls happen
// synchronously on whatever goroutine drives the navigator.
type Sink interface {
	// StateChanged fires after any visible change; read Snapshot for the
	// current projection.
	StateChanged()
	// EditRequested fires when an empty slot is committed. path is the
	// slot-index path from the root wheel.
	EditRequested(path []int)
	// SessionEnded fires once per session, after the final StateChanged.
	SessionEnded(Outcome)
}

// Config holds the navigator's tunables.
type Config struct {
	DeadZone   float64
	Policy     Policy
	DwellDelay time.Duration
}

type frame struct {
	wheel     *wheel.Wheel
	origin    geometry.Point
	highlight int
	// dwell tracking (PolicyDwell only): the folder/back slot being
	// hovered and since when.
	dwellSlot  int
	dwellSince time.Time
}

// Navigator is the single owner of navigation state. It is not safe for
// concurrent use; feed it the serialized event stream.
type Navigator struct {
	cfg  Config
	root *wheel.Wheel

	stack       []frame
	path        []int // folder indices entered, root-relative
	maxDepth    int
	lastPointer geometry.Point

	dispatcher Dispatcher
	sink       Sink
}

// New returns a closed navigator over the given wheel tree.
func New(root *wheel.Wheel, cfg Config, d Dispatcher, s Sink) *Navigator {
	return &Navigator{cfg: cfg, root: root, dispatcher: d, sink: s}
}

// SetRoot swaps in a new wheel tree, e.g. after the configuration changed
// externally. An in-flight session keeps its borrowed frames; the new tree
// takes effect at the next HoldStart.
func (n *Navigator) SetRoot(root *wheel.Wheel) {
	n.root = root
}

// IsOpen reports whether a session is active.
func (n *Navigator) IsOpen() bool {
	return len(n.stack) > 0
}

// HoldStart opens the root wheel centered at pos. A HoldStart while already
// open is ignored; the monitor should not produce one, but input hooks have
// been known to glitch.
func (n *Navigator) HoldStart(pos geometry.Point) {
	if n.IsOpen() {
		return
	}
	n.stack = append(n.stack[:0], frame{
		wheel:     n.root,
		origin:    pos,
		highlight: geometry.NoSelection,
		dwellSlot: geometry.NoSelection,
	})
	n.path = n.path[:0]
	n.maxDepth = 1
	n.lastPointer = pos
	n.sink.StateChanged()
}

// PointerUpdate recomputes the top frame's highlight from the new cursor
// position. Lower frames keep their last committed highlight.
func (n *Navigator) PointerUpdate(pos geometry.Point, now time.Time) {
	if !n.IsOpen() {
		return
	}
	n.lastPointer = pos
	top := n.top()
	h := geometry.Resolve(top.origin, pos, n.cfg.DeadZone)
	if h == top.highlight {
		return
	}
	top.highlight = h
	n.resetDwell(top, now)
	n.sink.StateChanged()
}

// Tick advances dwell-based folder opening. It is a no-op unless the dwell
// policy is active and a folder or back slot has been hovered long enough.
func (n *Navigator) Tick(now time.Time) {
	if !n.IsOpen() || n.cfg.Policy != PolicyDwell {
		return
	}
	top := n.top()
	if top.dwellSlot == geometry.NoSelection || now.Sub(top.dwellSince) < n.cfg.DwellDelay {
		return
	}
	slot := top.wheel.Slots[top.dwellSlot]
	idx := top.dwellSlot
	top.dwellSlot = geometry.NoSelection
	switch slot.Kind {
	case wheel.KindFolder:
		n.push(slot.Child, idx, n.lastPointer)
	case wheel.KindBack:
		// A Back slot in the root wheel has nowhere to go; the tree
		// validator allows one there, so guard like HoldEnd does.
		if len(n.stack) == 1 {
			return
		}
		n.pop()
	default:
		return
	}
	n.sink.StateChanged()
}

// HoldEnd commits the slot under pos on the top wheel. The highlight is
// re-resolved from the release position itself, so the committed slot always
// matches where the cursor actually was, independent of sampler timing.
func (n *Navigator) HoldEnd(pos geometry.Point) {
	if !n.IsOpen() {
		return
	}
	top := n.top()
	h := geometry.Resolve(top.origin, pos, n.cfg.DeadZone)
	top.highlight = h

	if h == geometry.NoSelection {
		n.end(Outcome{Result: ResultNoSelection})
		return
	}

	slot := top.wheel.Slots[h]
	switch slot.Kind {
	case wheel.KindEmpty:
		path := append(append([]int(nil), n.path...), h)
		n.sink.EditRequested(path)
		n.end(Outcome{Result: ResultEditRequested, Path: path})

	case wheel.KindBack:
		if len(n.stack) == 1 {
			n.end(Outcome{Result: ResultNoSelection})
			return
		}
		n.pop()
		n.sink.StateChanged()

	case wheel.KindFolder:
		if n.cfg.Policy == PolicyDwell {
			// Folders open by hover under this policy; releasing
			// over one just closes the wheel.
			n.end(Outcome{Result: ResultNoSelection})
			return
		}
		n.push(slot.Child, h, pos)
		n.sink.StateChanged()

	default:
		n.dispatcher.Dispatch(slot)
		n.end(Outcome{Result: ResultDispatched, Action: slot.Kind, Label: slot.Label})
	}
}

// Cancel discards the session without dispatching.
func (n *Navigator) Cancel() {
	if !n.IsOpen() {
		return
	}
	n.end(Outcome{Result: ResultCancelled})
}

func (n *Navigator) top() *frame {
	return &n.stack[len(n.stack)-1]
}

func (n *Navigator) push(w *wheel.Wheel, enterIdx int, origin geometry.Point) {
	n.stack = append(n.stack, frame{
		wheel:     w,
		origin:    origin,
		highlight: geometry.NoSelection,
		dwellSlot: geometry.NoSelection,
	})
	n.path = append(n.path, enterIdx)
	if len(n.stack) > n.maxDepth {
		n.maxDepth = len(n.stack)
	}
}

func (n *Navigator) pop() {
	n.stack = n.stack[:len(n.stack)-1]
	n.path = n.path[:len(n.path)-1]
	// The revealed frame's dwell clock is stale; restart it from the next
	// pointer update.
	n.top().dwellSlot = geometry.NoSelection
}

func (n *Navigator) resetDwell(top *frame, now time.Time) {
	top.dwellSlot = geometry.NoSelection
	if n.cfg.Policy != PolicyDwell || top.highlight == geometry.NoSelection {
		return
	}
	switch top.wheel.Slots[top.highlight].Kind {
	case wheel.KindBack:
		if len(n.stack) == 1 {
			return
		}
		fallthrough
	case wheel.KindFolder:
		top.dwellSlot = top.highlight
		top.dwellSince = now
	}
}

func (n *Navigator) end(out Outcome) {
	out.Depth = n.maxDepth
	n.stack = n.stack[:0]
	n.path = n.path[:0]
	n.sink.StateChanged()
	n.sink.SessionEnded(out)
}
