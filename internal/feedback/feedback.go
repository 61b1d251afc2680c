// Package feedback gives the user audible and notification feedback for
// wheel events.
package feedback

import (
	"log"

	"github.com/gen2brain/beeep"
)

// Beeper plays short tones on wheel open and commit. Disabled instances are
// silent no-ops.
type Beeper struct {
	enabled bool
}

// NewBeeper returns a beeper; pass false to silence all tones.
func NewBeeper(enabled bool) *Beeper {
	return &Beeper{enabled: enabled}
}

// Open plays the wheel-opened tone.
func (b *Beeper) Open() {
	if !b.enabled {
		return
	}
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration/2); err != nil {
		log.Printf("[FEEDBACK] beep failed: %v", err)
	}
}

// Commit plays the action-committed tone, a shorter higher blip.
func (b *Beeper) Commit() {
	if !b.enabled {
		return
	}
	if err := beeep.Beep(beeep.DefaultFreq*2, beeep.DefaultDuration/3); err != nil {
		log.Printf("[FEEDBACK] beep failed: %v", err)
	}
}

// Notify shows a desktop notification. Used for launch failures and
// unconfigured-slot hints; failures to notify are only logged.
func Notify(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("[FEEDBACK] notification failed: %v", err)
	}
}
