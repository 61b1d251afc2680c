package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-vgo/robotgo"
	koanffile "github.com/knadh/koanf/providers/file"

	"pinwheel/internal/config"
	"pinwheel/internal/dispatch"
	"pinwheel/internal/feedback"
	"pinwheel/internal/geometry"
	"pinwheel/internal/hotkeys"
	"pinwheel/internal/input"
	"pinwheel/internal/keys"
	"pinwheel/internal/metrics"
	"pinwheel/internal/navigator"
	"pinwheel/internal/pointer"
	"pinwheel/internal/presenter"
	"pinwheel/internal/terminal"
	"pinwheel/internal/wheel"
)

// Daemon wires the interaction engine together: raw input fans out to the
// hotkey monitor and pointer sampler, and everything that touches navigation
// state is serialized through the single run loop.
type Daemon struct {
	cfg     *config.Config
	trigger keys.Modifier

	source     input.Source
	monitor    *hotkeys.Monitor
	sampler    *pointer.Sampler
	nav        *navigator.Navigator
	dispatcher *dispatch.Dispatcher
	pres       presenter.Presenter
	beeper     *feedback.Beeper
	metricsMgr *metrics.Manager
	term       *terminal.Control

	// cursorPos queries the current cursor position; swapped in tests.
	cursorPos func() geometry.Point

	keyEvents   chan input.Event
	pointerKick chan struct{}
	reloads     chan struct{}
	done        chan struct{}
	stopOnce    sync.Once

	wheelPath    string
	sessionStart time.Time
	wasOpen      bool
	dwellTicker  *time.Ticker
	dwellC       <-chan time.Time
}

func NewDaemon() *Daemon {
	return &Daemon{
		cursorPos: func() geometry.Point {
			x, y := robotgo.Location()
			return geometry.Point{X: float64(x), Y: float64(y)}
		},
		keyEvents:   make(chan input.Event, 16),
		pointerKick: make(chan struct{}, 1),
		reloads:     make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

func (d *Daemon) Initialize() error {
	var err error
	d.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %v", err)
	}

	d.trigger, err = keys.ParseModifiers(d.cfg.Hotkey)
	if err != nil {
		return fmt.Errorf("invalid hotkey %q: %v", d.cfg.Hotkey, err)
	}

	d.wheelPath, err = config.WheelPath()
	if err != nil {
		return err
	}
	root, err := wheel.Load(d.wheelPath)
	if err != nil {
		return fmt.Errorf("failed to load wheel config: %v", err)
	}

	d.monitor, err = hotkeys.NewMonitor(hotkeys.Config{
		Trigger:   d.trigger,
		CancelKey: d.cfg.CancelKey,
	})
	if err != nil {
		return err
	}

	policy, err := navigator.ParsePolicy(d.cfg.CommitPolicy)
	if err != nil {
		return err
	}

	d.sampler = pointer.NewSampler()
	d.dispatcher = dispatch.New(dispatch.Config{KeystrokeDelay: d.cfg.KeystrokeDelay()})
	d.term = terminal.NewControl()
	d.pres = presenter.NewConsole(d.term, d.cfg.WheelRadius)
	d.beeper = feedback.NewBeeper(d.cfg.Feedback)

	metricsDir, err := config.MetricsDir()
	if err != nil {
		return fmt.Errorf("failed to get metrics directory: %v", err)
	}
	d.metricsMgr, err = metrics.NewManager(metricsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %v", err)
	}

	d.nav = navigator.New(root, navigator.Config{
		DeadZone:   d.cfg.DeadZone,
		Policy:     policy,
		DwellDelay: d.cfg.DwellDelay(),
	}, d.dispatcher, d)

	if d.source == nil {
		d.source = input.NewHookSource()
	}
	return nil
}

func (d *Daemon) Run() error {
	if err := d.source.Start(); err != nil {
		// Without the global hook there is no wheel; surface it and
		// bail rather than running a daemon that can do nothing.
		return fmt.Errorf("global input hook unavailable: %v", err)
	}

	d.watchWheelFile()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	fmt.Println("🎡 Pinwheel daemon started")
	fmt.Printf("📋 Hold %s to open the wheel, release over a slot to commit\n", d.trigger)
	if d.cfg.CancelKey != "" {
		fmt.Printf("🚫 Press %s while open to cancel\n", d.cfg.CancelKey)
	}
	fmt.Println("🛑 Press Ctrl+C to exit")
	fmt.Println()

	go d.route()
	go d.loop()

	<-c
	fmt.Println("\n🛑 Shutting down...")
	d.Cleanup()
	return nil
}

func (d *Daemon) Cleanup() {
	d.stopOnce.Do(func() {
		close(d.done)
		if d.source != nil {
			d.source.Stop()
		}
		if d.dwellTicker != nil {
			d.dwellTicker.Stop()
		}
	})
}

// route splits the raw input stream: key events keep their order through
// keyEvents, pointer samples collapse into the sampler's single slot with a
// non-blocking kick so the loop knows to look.
func (d *Daemon) route() {
	for ev := range d.source.Events() {
		if ev.Kind == input.MouseMove {
			p := geometry.Point{X: float64(ev.X), Y: float64(ev.Y)}
			if d.sampler.Offer(p) {
				select {
				case d.pointerKick <- struct{}{}:
				default:
				}
			}
			continue
		}
		select {
		case d.keyEvents <- ev:
		case <-d.done:
			return
		}
	}
}

// loop is the single consumer of everything that mutates navigation state.
func (d *Daemon) loop() {
	for {
		select {
		case <-d.done:
			return

		case ev := <-d.keyEvents:
			hk, ok := d.monitor.Process(ev)
			if !ok {
				// After a release-commit into a folder the wheel is open
				// with no hold in progress, so the cancel key arrives
				// outside the monitor's active window.
				if d.isCancelKey(ev) && d.nav.IsOpen() {
					log.Printf("[SESSION] cancelled")
					d.nav.Cancel()
				}
				continue
			}
			d.handleHotkey(hk)

		case <-d.pointerKick:
			if p, ok := d.sampler.Take(); ok {
				d.nav.PointerUpdate(p, time.Now())
			}

		case <-d.dwellC:
			d.nav.Tick(time.Now())

		case err := <-d.dispatcher.Failures():
			fmt.Printf("❌ Action failed to start: %v\n", err)
			feedback.Notify("Pinwheel", fmt.Sprintf("Action failed to start: %v", err))

		case <-d.reloads:
			d.reloadWheel()
		}
	}
}

func (d *Daemon) isCancelKey(ev input.Event) bool {
	return ev.Kind == input.KeyDown && d.cfg.CancelKey != "" &&
		input.KeyName(ev.Rawcode) == d.cfg.CancelKey
}

func (d *Daemon) handleHotkey(hk hotkeys.Event) {
	switch hk {
	case hotkeys.HoldStart:
		if d.nav.IsOpen() {
			// Re-hold during an open session (release policy, after a
			// folder commit); the session is already running.
			return
		}
		pos := d.cursorPos()
		log.Printf("[SESSION] hold start at (%.0f, %.0f)", pos.X, pos.Y)
		d.sessionStart = time.Now()
		d.beeper.Open()
		d.nav.HoldStart(pos)
	case hotkeys.HoldEnd:
		pos := d.cursorPos()
		log.Printf("[SESSION] hold end at (%.0f, %.0f)", pos.X, pos.Y)
		d.nav.HoldEnd(pos)
	case hotkeys.Cancel:
		log.Printf("[SESSION] cancelled")
		d.nav.Cancel()
	}
}

// StateChanged implements navigator.Sink.
func (d *Daemon) StateChanged() {
	open := d.nav.IsOpen()
	if open != d.wasOpen {
		d.sampler.SetActive(open)
		d.setDwellTicker(open)
		d.wasOpen = open
	}
	d.pres.Update(d.nav.Snapshot())
}

// EditRequested implements navigator.Sink.
func (d *Daemon) EditRequested(path []int) {
	spec := pathSpec(path)
	log.Printf("[SESSION] edit requested for slot %s", spec)
	fmt.Printf("🛠️  Slot %s is unconfigured. Configure it with: pinwheel --set-slot %s\n", spec, spec)
	feedback.Notify("Pinwheel", fmt.Sprintf("Slot %s is unconfigured. Run: pinwheel --set-slot %s", spec, spec))
}

// SessionEnded implements navigator.Sink.
func (d *Daemon) SessionEnded(out navigator.Outcome) {
	duration := time.Since(d.sessionStart)
	log.Printf("[SESSION] ended: %s (depth %d) after %v", out.Result, out.Depth, duration)

	if out.Result == navigator.ResultDispatched {
		d.beeper.Commit()
	}

	// Action is only meaningful for dispatched sessions; anything else
	// would persist a bogus "empty" action in the metrics.
	action := ""
	if out.Result == navigator.ResultDispatched {
		action = out.Action.String()
	}
	session, err := d.metricsMgr.RecordSession(out.Result.String(), action, out.Depth, duration)
	if err != nil {
		fmt.Printf("⚠️  Warning: failed to record session metrics: %v\n", err)
		return
	}
	if out.Result != navigator.ResultDispatched {
		return
	}

	today, err := d.metricsMgr.GetTodayMetrics()
	if err != nil {
		today = nil
	}
	formatter := metrics.NewStatsFormatter()
	d.term.Update(formatter.FormatSessionSummaryLines(session, today))
	d.term.Reset()
}

func (d *Daemon) setDwellTicker(open bool) {
	if d.dwellTicker != nil {
		d.dwellTicker.Stop()
		d.dwellTicker = nil
		d.dwellC = nil
	}
	if open && d.cfg.CommitPolicy == "dwell" {
		d.dwellTicker = time.NewTicker(d.cfg.DwellDelay() / 4)
		d.dwellC = d.dwellTicker.C
	}
}

// watchWheelFile reloads the wheel tree when the external editor (or the
// CLI) rewrites it.
func (d *Daemon) watchWheelFile() {
	provider := koanffile.Provider(d.wheelPath)
	err := provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		select {
		case d.reloads <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.Printf("[CONFIG] wheel file watch unavailable: %v", err)
	}
}

func (d *Daemon) reloadWheel() {
	root, err := wheel.Load(d.wheelPath)
	if err != nil {
		log.Printf("[CONFIG] ignoring malformed wheel config: %v", err)
		fmt.Printf("⚠️  Wheel config change rejected: %v\n", err)
		return
	}
	d.nav.SetRoot(root)
	log.Printf("[CONFIG] wheel config reloaded")
	fmt.Println("🔄 Wheel configuration reloaded")
}

func pathSpec(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}
