// Package dispatch executes committed wheel actions fire-and-forget:
// keystroke synthesis through robotgo, shell commands and program launches
// as detached background processes. Only launch failures are ever reported;
// execution outcome is nobody's business here.
package dispatch

import (
	"fmt"
	"log"
	"time"

	"github.com/go-vgo/robotgo"

	"pinwheel/internal/keys"
	"pinwheel/internal/wheel"
)

// Config holds dispatcher tunables.
type Config struct {
	// KeystrokeDelay is how long to wait before synthesizing a combo so
	// the user's held trigger modifiers have cleared.
	KeystrokeDelay time.Duration
}

// Dispatcher runs actions in the background. Safe to call from the
// navigator's event loop; Dispatch never blocks on the action itself.
type Dispatcher struct {
	cfg      Config
	failures chan error
}

// New returns a dispatcher. Read Failures to observe launch errors.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		failures: make(chan error, 8),
	}
}

// Failures delivers launch failures (process creation errors, bad combos).
// Failures are non-fatal and reported at most once per dispatch.
func (d *Dispatcher) Failures() <-chan error {
	return d.failures
}

// Dispatch executes the slot's action asynchronously. Folder, Back, and
// Empty slots never reach the dispatcher; they are handled by the navigator.
func (d *Dispatcher) Dispatch(slot wheel.Slot) {
	switch slot.Kind {
	case wheel.KindKeystroke:
		go d.keystroke(slot.Value)
	case wheel.KindCommand:
		go d.command(slot.Value)
	case wheel.KindLaunch:
		go d.launch(slot.Value, slot.Args)
	default:
		log.Printf("[DISPATCH] ignoring non-executable slot kind %s", slot.Kind)
	}
}

func (d *Dispatcher) keystroke(spec string) {
	combo, err := keys.ParseCombo(spec)
	if err != nil {
		d.report(fmt.Errorf("keystroke %q: %w", spec, err))
		return
	}

	// Let the held trigger modifiers clear before typing, otherwise the
	// synthesized combo picks them up.
	if d.cfg.KeystrokeDelay > 0 {
		time.Sleep(d.cfg.KeystrokeDelay)
	}

	log.Printf("[DISPATCH] keystroke %s", combo)
	if err := robotgo.KeyTap(robotKey(combo.Key), robotMods(combo.Mods)); err != nil {
		d.report(fmt.Errorf("keystroke %q: %v", spec, err))
	}
}

func (d *Dispatcher) command(cmdline string) {
	log.Printf("[DISPATCH] command %q", cmdline)
	if err := startDetached(shellCommand(cmdline)); err != nil {
		d.report(fmt.Errorf("command %q: %v", cmdline, err))
	}
}

func (d *Dispatcher) launch(path string, args []string) {
	log.Printf("[DISPATCH] launch %q %v", path, args)
	if err := startDetached(launchCommand(path, args)); err != nil {
		d.report(fmt.Errorf("launch %q: %v", path, err))
	}
}

func (d *Dispatcher) report(err error) {
	log.Printf("[DISPATCH] %v", err)
	select {
	case d.failures <- err:
	default:
		// Nobody is draining; dropping beats blocking the dispatch
		// goroutine.
	}
}

// robotKey translates our key names to robotgo's where they differ.
func robotKey(key string) string {
	switch key {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return key
}

// robotMods translates a modifier set to robotgo's tap arguments.
func robotMods(m keys.Modifier) []string {
	var mods []string
	if m.Has(keys.ModCtrl) {
		mods = append(mods, "ctrl")
	}
	if m.Has(keys.ModShift) {
		mods = append(mods, "shift")
	}
	if m.Has(keys.ModAlt) {
		mods = append(mods, "alt")
	}
	if m.Has(keys.ModSuper) {
		mods = append(mods, "cmd")
	}
	return mods
}
