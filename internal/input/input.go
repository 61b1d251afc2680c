// Package input abstracts global keyboard and pointer observation behind a
// Source interface so the interaction engine stays portable and testable
// without a real OS hook.
package input

// Kind classifies a raw input event.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	MouseMove
)

// Event is one raw global input event. Rawcode is the platform virtual key
// code for key events; X and Y are absolute screen coordinates for pointer
// events.
type Event struct {
	Kind    Kind
	Rawcode uint16
	X       int
	Y       int
}

// Source delivers global input events. Implementations must keep delivering
// input to other applications normally; observation is non-intrusive.
type Source interface {
	// Start begins observation. A non-nil error means global input
	// hooking is unavailable; the wheel feature cannot work without it.
	Start() error
	// Events returns the stream of observed events. The channel closes
	// when the source stops.
	Events() <-chan Event
	// Stop ends observation and releases the hook.
	Stop()
}
