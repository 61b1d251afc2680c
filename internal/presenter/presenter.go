// Package presenter defines the renderer contract. The core only reports
// what is open and highlighted; pixel drawing is a downstream concern. The
// shipped implementation renders to the launching terminal, which doubles
// as the debug view when no graphical overlay is attached.
package presenter

import "pinwheel/internal/navigator"

// Presenter consumes navigation snapshots. Update is called synchronously
// from the event loop after every visible state change; implementations
// must return quickly.
type Presenter interface {
	Update(snap navigator.Snapshot)
}

// Nop is a presenter that renders nothing.
type Nop struct{}

func (Nop) Update(navigator.Snapshot) {}
