package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinwheel/internal/geometry"
	"pinwheel/internal/input"
	"pinwheel/internal/keys"
	"pinwheel/internal/navigator"
	"pinwheel/internal/wheel"
)

// fakeSource feeds scripted events through the input.Source interface.
type fakeSource struct {
	events chan input.Event
	once   sync.Once
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan input.Event, 64)}
}

func (f *fakeSource) Start() error               { return nil }
func (f *fakeSource) Events() <-chan input.Event { return f.events }
func (f *fakeSource) Stop()                      { f.once.Do(func() { close(f.events) }) }

// fakeCursor is a settable cursor position for driving hold start/end.
type fakeCursor struct {
	mu  sync.Mutex
	pos geometry.Point
}

func (c *fakeCursor) set(p geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = p
}

func (c *fakeCursor) get() geometry.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// capturePresenter records the latest snapshot the run loop publishes. The
// tests read navigation state only through it, never from the navigator
// directly, because the loop goroutine owns the navigator.
type capturePresenter struct {
	mu   sync.Mutex
	last navigator.Snapshot
}

func (p *capturePresenter) Update(s navigator.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = s
}

func (p *capturePresenter) snapshot() navigator.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *capturePresenter) open() bool   { return p.snapshot().Open }
func (p *capturePresenter) closed() bool { return !p.snapshot().Open }

func rawcodeFor(t *testing.T, mod keys.Modifier) uint16 {
	t.Helper()
	for code := 0; code <= 0xFFFF; code++ {
		if m, ok := input.ModifierFromRawcode(uint16(code)); ok && m == mod {
			return uint16(code)
		}
	}
	t.Fatalf("no rawcode maps to modifier %s", mod)
	return 0
}

// newTestDaemon builds a daemon over a scripted source, a settable cursor,
// and a temp config dir. A non-nil root is written as the wheel file before
// the daemon loads it.
func newTestDaemon(t *testing.T, root *wheel.Wheel) (*Daemon, *fakeSource, *fakeCursor, *capturePresenter) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PINWHEEL_CONFIG", dir)
	err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("feedback = false\n"), 0o644)
	require.NoError(t, err)
	if root != nil {
		require.NoError(t, wheel.Save(filepath.Join(dir, "wheel.json"), root))
	}

	src := newFakeSource()
	cursor := &fakeCursor{}

	d := NewDaemon()
	d.source = src
	d.cursorPos = cursor.get
	require.NoError(t, d.Initialize())

	pres := &capturePresenter{}
	d.pres = pres
	return d, src, cursor, pres
}

func startTestDaemon(t *testing.T, d *Daemon) {
	t.Helper()
	go d.route()
	go d.loop()
	t.Cleanup(d.Cleanup)
}

func holdTrigger(src *fakeSource, super, alt uint16) {
	src.events <- input.Event{Kind: input.KeyDown, Rawcode: super}
	src.events <- input.Event{Kind: input.KeyDown, Rawcode: alt}
}

func sessionResults(d *Daemon) []string {
	today, err := d.metricsMgr.GetTodayMetrics()
	if err != nil {
		return nil
	}
	results := make([]string, 0, len(today.Sessions))
	for _, s := range today.Sessions {
		results = append(results, s.Result)
	}
	return results
}

func TestHoldOpensAndReleaseOnEmptySlotEndsSession(t *testing.T) {
	d, src, cursor, pres := newTestDaemon(t, nil)
	startTestDaemon(t, d)
	super := rawcodeFor(t, keys.ModSuper)
	alt := rawcodeFor(t, keys.ModAlt)

	cursor.set(geometry.Point{X: 500, Y: 500})
	holdTrigger(src, super, alt)
	require.Eventually(t, pres.open, time.Second, 5*time.Millisecond)

	// Release straight up from the origin. The default wheel has no
	// actions configured, so this asks for the slot to be set up.
	cursor.set(geometry.Point{X: 500, Y: 200})
	src.events <- input.Event{Kind: input.KeyUp, Rawcode: alt}
	require.Eventually(t, pres.closed, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(sessionResults(d)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"edit-requested"}, sessionResults(d))
}

func TestReleaseInDeadZoneRecordsNoSelection(t *testing.T) {
	d, src, cursor, pres := newTestDaemon(t, nil)
	startTestDaemon(t, d)
	super := rawcodeFor(t, keys.ModSuper)
	alt := rawcodeFor(t, keys.ModAlt)

	cursor.set(geometry.Point{X: 500, Y: 500})
	holdTrigger(src, super, alt)
	require.Eventually(t, pres.open, time.Second, 5*time.Millisecond)

	cursor.set(geometry.Point{X: 510, Y: 505})
	src.events <- input.Event{Kind: input.KeyUp, Rawcode: super}
	require.Eventually(t, pres.closed, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(sessionResults(d)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"no-selection"}, sessionResults(d))

	// Nothing was dispatched, so no action kind may be recorded.
	today, err := d.metricsMgr.GetTodayMetrics()
	require.NoError(t, err)
	assert.Empty(t, today.Sessions[0].Action)
	assert.Empty(t, today.ByAction)
}

func TestPointerMovesFlowThroughSampler(t *testing.T) {
	d, src, cursor, pres := newTestDaemon(t, nil)
	startTestDaemon(t, d)
	super := rawcodeFor(t, keys.ModSuper)
	alt := rawcodeFor(t, keys.ModAlt)

	cursor.set(geometry.Point{X: 500, Y: 500})
	holdTrigger(src, super, alt)
	require.Eventually(t, pres.open, time.Second, 5*time.Millisecond)

	// A burst of moves ending to the right of the origin.
	for x := 510; x <= 800; x += 10 {
		src.events <- input.Event{Kind: input.MouseMove, X: x, Y: 500}
	}
	require.Eventually(t, func() bool {
		snap := pres.snapshot()
		return snap.Open && snap.Frames[0].Highlight == 2
	}, time.Second, 5*time.Millisecond)
}

func TestReloadAcceptsValidAndRejectsMalformed(t *testing.T) {
	// No goroutines here; the reload path is driven directly.
	d, _, _, _ := newTestDaemon(t, nil)

	updated := wheel.New()
	require.NoError(t, updated.SetSlot(0, wheel.Slot{
		Label: "Terminal",
		Kind:  wheel.KindCommand,
		Value: "xterm",
	}))
	require.NoError(t, wheel.Save(d.wheelPath, updated))
	d.reloadWheel()

	d.nav.HoldStart(geometry.Point{X: 500, Y: 500})
	snap := d.nav.Snapshot()
	require.True(t, snap.Open)
	assert.Equal(t, "Terminal", snap.Frames[0].Wheel.Slots[0].Label)
	d.nav.Cancel()

	// A malformed rewrite must leave the previous tree in place.
	require.NoError(t, os.WriteFile(d.wheelPath, []byte("not json"), 0o644))
	d.reloadWheel()

	d.nav.HoldStart(geometry.Point{X: 500, Y: 500})
	snap = d.nav.Snapshot()
	require.True(t, snap.Open)
	assert.Equal(t, "Terminal", snap.Frames[0].Wheel.Slots[0].Label)
	d.nav.Cancel()
}

func TestFolderReleaseKeepsSessionAndEscapeCancels(t *testing.T) {
	root := wheel.New()
	folder := wheel.Slot{Label: "Tools", Kind: wheel.KindFolder, Child: wheel.NewSubfolder()}
	require.NoError(t, root.SetSlot(2, folder))

	d, src, cursor, pres := newTestDaemon(t, root)
	startTestDaemon(t, d)
	super := rawcodeFor(t, keys.ModSuper)
	alt := rawcodeFor(t, keys.ModAlt)

	cursor.set(geometry.Point{X: 500, Y: 500})
	holdTrigger(src, super, alt)
	require.Eventually(t, pres.open, time.Second, 5*time.Millisecond)

	// Release to the right: the folder opens and the session survives the
	// end of the hold.
	cursor.set(geometry.Point{X: 800, Y: 500})
	src.events <- input.Event{Kind: input.KeyUp, Rawcode: alt}
	src.events <- input.Event{Kind: input.KeyUp, Rawcode: super}
	require.Eventually(t, func() bool {
		return len(pres.snapshot().Frames) == 2
	}, time.Second, 5*time.Millisecond)

	// Escape arrives with no hold in progress and must still cancel.
	var esc uint16
	for code := 0; code <= 0xFFFF; code++ {
		if input.KeyName(uint16(code)) == "escape" {
			esc = uint16(code)
			break
		}
	}
	src.events <- input.Event{Kind: input.KeyDown, Rawcode: esc}
	require.Eventually(t, pres.closed, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(sessionResults(d)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"cancelled"}, sessionResults(d))
}

func TestInitializeRejectsBadHotkey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PINWHEEL_CONFIG", dir)
	err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("hotkey = \"bogus\"\n"), 0o644)
	require.NoError(t, err)

	d := NewDaemon()
	d.source = newFakeSource()
	assert.Error(t, d.Initialize())
}
