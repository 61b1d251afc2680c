// Package terminal provides in-place multi-line console updates via ANSI
// escape sequences, used for the live wheel status and session summaries.
package terminal

import (
	"fmt"
	"os"
)

// Control rewrites a block of console lines in place.
type Control struct {
	lastLines int
}

// NewControl returns a terminal control instance.
func NewControl() *Control {
	return &Control{}
}

// IsTerminal reports whether stdout is attached to a terminal.
func (c *Control) IsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Update replaces the previously printed block with lines. On the first
// call (or when not attached to a terminal) it just prints.
func (c *Control) Update(lines []string) {
	if !c.IsTerminal() {
		for _, line := range lines {
			fmt.Println(line)
		}
		return
	}

	if c.lastLines > 0 {
		fmt.Printf("\033[%dA", c.lastLines)
	}
	for _, line := range lines {
		fmt.Print("\033[2K\r")
		fmt.Println(line)
	}
	// Wipe leftovers when the new block is shorter than the old one.
	for i := len(lines); i < c.lastLines; i++ {
		fmt.Print("\033[2K\r\n")
	}
	if extra := c.lastLines - len(lines); extra > 0 {
		fmt.Printf("\033[%dA", extra)
	}
	c.lastLines = len(lines)
}

// Reset makes the next Update print below the current cursor position
// instead of overwriting the previous block.
func (c *Control) Reset() {
	c.lastLines = 0
}
