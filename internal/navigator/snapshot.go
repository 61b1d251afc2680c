package navigator

import (
	"pinwheel/internal/geometry"
	"pinwheel/internal/wheel"
)

// FrameView is the read-only projection of one open wheel level.
type FrameView struct {
	Wheel     *wheel.Wheel
	Origin    geometry.Point
	Highlight int // geometry.NoSelection when nothing is highlighted
}

// Snapshot is everything a renderer needs to draw the current state.
type Snapshot struct {
	Open   bool
	Frames []FrameView
}

// Snapshot returns the current projection. The wheel pointers are shared
// with the live tree; callers must treat them as read-only.
func (n *Navigator) Snapshot() Snapshot {
	if !n.IsOpen() {
		return Snapshot{}
	}
	frames := make([]FrameView, len(n.stack))
	for i, f := range n.stack {
		frames[i] = FrameView{Wheel: f.wheel, Origin: f.origin, Highlight: f.highlight}
	}
	return Snapshot{Open: true, Frames: frames}
}
