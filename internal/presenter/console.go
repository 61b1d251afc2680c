package presenter

import (
	"fmt"
	"strings"

	"pinwheel/internal/geometry"
	"pinwheel/internal/navigator"
	"pinwheel/internal/terminal"
	"pinwheel/internal/wheel"
)

// Console renders the open wheel stack as in-place console lines: one line
// per level with the highlighted direction and slot label.
type Console struct {
	term   *terminal.Control
	radius float64
}

// NewConsole returns a console presenter writing through term. radius is the
// configured wheel radius in pixels, shown so the user knows how far out the
// slots sit.
func NewConsole(term *terminal.Control, radius float64) *Console {
	return &Console{term: term, radius: radius}
}

// Update implements Presenter.
func (c *Console) Update(snap navigator.Snapshot) {
	if !snap.Open {
		c.term.Reset()
		return
	}

	lines := make([]string, 0, len(snap.Frames)+1)
	lines = append(lines, c.headerLine(len(snap.Frames)))
	for i, f := range snap.Frames {
		lines = append(lines, frameLine(i, f, i == len(snap.Frames)-1))
	}
	c.term.Update(lines)
}

func (c *Console) headerLine(depth int) string {
	return fmt.Sprintf("🎡 Wheel open (depth %d, radius %.0fpx)", depth, c.radius)
}

func frameLine(level int, f navigator.FrameView, isTop bool) string {
	indent := strings.Repeat("  ", level+1)
	marker := "·"
	if isTop {
		marker = "→"
	}
	if f.Highlight == geometry.NoSelection {
		return fmt.Sprintf("%s%s level %d: (no selection)", indent, marker, level+1)
	}
	slot := f.Wheel.Slots[f.Highlight]
	label := slot.Label
	if label == "" || label == wheel.EmptyLabel {
		label = slot.Kind.String()
	}
	return fmt.Sprintf("%s%s level %d: %s (%s)", indent, marker, level+1,
		geometry.SectorName(f.Highlight), label)
}
