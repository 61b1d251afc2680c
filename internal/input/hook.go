package input

import (
	"fmt"
	"sync"

	hook "github.com/robotn/gohook"
)

// HookSource observes global input through the gohook OS hook. gohook owns
// a single process-wide hook, so at most one HookSource may be started.
type HookSource struct {
	events  chan Event
	stopped chan struct{}
	once    sync.Once
	started bool
}

// NewHookSource returns an unstarted hook source.
func NewHookSource() *HookSource {
	return &HookSource{
		events:  make(chan Event, 64),
		stopped: make(chan struct{}),
	}
}

// Start installs the global hook and begins translating its events. Key
// repeat is collapsed into plain KeyDown events; downstream consumers
// debounce on state, not event counts.
func (h *HookSource) Start() error {
	if h.started {
		return fmt.Errorf("input hook already started")
	}
	h.started = true

	raw := hook.Start()
	go h.translate(raw)
	return nil
}

func (h *HookSource) translate(raw chan hook.Event) {
	defer close(h.events)
	for {
		select {
		case <-h.stopped:
			return
		case ev, ok := <-raw:
			if !ok {
				return
			}
			out, keep := convert(ev)
			if !keep {
				continue
			}
			select {
			case h.events <- out:
			case <-h.stopped:
				return
			}
		}
	}
}

func convert(ev hook.Event) (Event, bool) {
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		return Event{Kind: KeyDown, Rawcode: ev.Rawcode}, true
	case hook.KeyUp:
		return Event{Kind: KeyUp, Rawcode: ev.Rawcode}, true
	case hook.MouseMove, hook.MouseDrag:
		return Event{Kind: MouseMove, X: int(ev.X), Y: int(ev.Y)}, true
	}
	return Event{}, false
}

// Events implements Source.
func (h *HookSource) Events() <-chan Event {
	return h.events
}

// Stop implements Source.
func (h *HookSource) Stop() {
	h.once.Do(func() {
		close(h.stopped)
		hook.End()
	})
}
