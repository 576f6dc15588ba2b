package barchart

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Feed produces record batches. Next is called once per feed interval.
type Feed interface {
	Next() []Record
}

// FeedFunc adapts a function to the Feed interface.
type FeedFunc func() []Record

// Next calls f.
func (f FeedFunc) Next() []Record { return f() }

// AppOptions configures an App.
type AppOptions struct {
	Chart ChartOptions
	// FeedInterval is the time between feed polls in seconds. Zero means
	// DefaultFeedInterval.
	FeedInterval float32
	// Initial is joined by Start. When empty, Start polls the feed instead.
	Initial []Record
	// Follow pans the camera to the middle of the bars after every join.
	Follow bool
	// Interactive enables keyboard shortcuts and orbit controls.
	Interactive bool
	ShowFPS     bool
	Logger      *slog.Logger
}

// App ties a Scene, a Chart and a Feed together and owns the demo's
// lifecycle: Start joins the first batch, the feed is polled on a fixed
// interval while updates are running, and Stop clears the chart.
type App struct {
	scene    *Scene
	chart    *Chart
	feed     Feed
	controls *OrbitControls
	fps      *FPSOverlay
	logger   *slog.Logger

	interval    float32
	elapsed     float32
	initial     []Record
	follow      bool
	interactive bool

	started bool
	running bool
}

// NewApp creates an app drawing into scene. feed may be nil, in which case
// the chart only changes through Apply.
func NewApp(scene *Scene, feed Feed, opts AppOptions) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Chart.Logger == nil {
		opts.Chart.Logger = logger
	}
	interval := opts.FeedInterval
	if interval <= 0 {
		interval = DefaultFeedInterval
	}
	chart := NewChart(scene.Root(), opts.Chart)
	fps := NewFPSOverlay(chart)
	fps.Visible = opts.ShowFPS
	scene.AddOverlay(fps)

	return &App{
		scene:       scene,
		chart:       chart,
		feed:        feed,
		controls:    NewOrbitControls(scene.Camera()),
		fps:         fps,
		logger:      logger,
		interval:    interval,
		initial:     opts.Initial,
		follow:      opts.Follow,
		interactive: opts.Interactive,
	}
}

// Scene returns the app's scene.
func (a *App) Scene() *Scene { return a.scene }

// Chart returns the app's chart.
func (a *App) Chart() *Chart { return a.chart }

// Controls returns the orbit controls. They are only polled when the app is
// interactive.
func (a *App) Controls() *OrbitControls { return a.controls }

// Start joins the initial batch, registers the app as the scene's update
// function and starts polling the feed. Calling Start on a started app is a
// no-op.
func (a *App) Start() error {
	if a.started {
		return nil
	}
	a.started = true
	a.running = true
	a.elapsed = 0
	a.scene.SetUpdateFunc(a.Update)

	first := a.initial
	if len(first) == 0 && a.feed != nil {
		first = a.feed.Next()
	}
	if len(first) > 0 {
		if _, err := a.Apply(first); err != nil && a.chart.Pass() == 0 {
			return err
		}
	}
	a.logger.Info("started", "bars", a.chart.Len(), "interval", a.interval)
	return nil
}

// Stop detaches the app from the scene and disposes every bar.
func (a *App) Stop() {
	if !a.started {
		return
	}
	a.started = false
	a.running = false
	a.scene.SetUpdateFunc(nil)
	a.chart.Reset()
	a.logger.Info("stopped")
}

// PauseUpdates stops polling the feed. Running transitions continue.
func (a *App) PauseUpdates() {
	if a.running {
		a.running = false
		a.logger.Info("updates paused")
	}
}

// ResumeUpdates restarts polling the feed.
func (a *App) ResumeUpdates() {
	if a.started && !a.running {
		a.running = true
		a.logger.Info("updates resumed")
	}
}

// Running reports whether the feed is being polled.
func (a *App) Running() bool { return a.running }

// AttachScript feeds the runner's data steps into the app and attaches it to
// the scene. A batch the chart rejects aborts the script.
func (a *App) AttachScript(r *ScriptRunner) {
	r.SetDataFunc(func(records []Record) error {
		res, err := a.Apply(records)
		if err != nil && res.Pass == 0 {
			return err
		}
		return nil
	})
	a.scene.SetScriptRunner(r)
}

// Apply joins records into the chart and, when following, pans the camera to
// the middle of the bars.
func (a *App) Apply(records []Record) (JoinResult, error) {
	res, err := a.chart.Join(records)
	if res.Pass == 0 {
		return res, err
	}
	if a.follow {
		opts := a.chart.Options()
		a.scene.Camera().PanTo(Vec3{X: a.chart.Center(), Y: 0.5}, opts.Duration, opts.Easing)
	}
	return res, err
}

// Update advances the app by dt seconds. It is registered as the scene's
// update function by Start.
func (a *App) Update(dt float32) error {
	if !a.started {
		return nil
	}
	if a.interactive {
		a.handleKeys()
		a.controls.Update()
	}
	if a.running && a.feed != nil {
		a.elapsed += dt
		for a.elapsed >= a.interval {
			a.elapsed -= a.interval
			// Record errors are logged by the chart and never stop the loop.
			_, _ = a.Apply(a.feed.Next())
		}
	}
	a.chart.Update(dt)
	return nil
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if a.running {
			a.PauseUpdates()
		} else {
			a.ResumeUpdates()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.scene.Screenshot("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.fps.Visible = !a.fps.Visible
	}
}
