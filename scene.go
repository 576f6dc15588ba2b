package barchart

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the camera, the light,
// and render buffers. It is the render surface: Draw renders one frame and
// Resize handles viewport changes.
type Scene struct {
	root   *Node
	camera *Camera
	logger *slog.Logger
	debug  bool

	// Light shades box faces.
	Light Light
	// ClearColor fills the screen before each frame.
	ClearColor Color
	// AntiAlias enables anti-aliasing of face edges.
	AntiAlias bool
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	// Render state
	commands   []faceCommand
	sortBuf    []faceCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint32

	updateFunc      func(dt float32) error
	overlays        []Overlay
	screenshotQueue []string
	script          *ScriptRunner
	failed          bool // an update returned an error
}

// Overlay is drawn in screen space on top of the scene.
type Overlay interface {
	Update(dt float32)
	Draw(screen *ebiten.Image)
}

// NewScene creates a new scene with a pre-created root container, a default
// camera, and the default light.
func NewScene() *Scene {
	w, h := StageSize(MaxStageSize, MaxStageSize)
	return &Scene{
		root:          NewContainer("root"),
		camera:        NewCamera(Rect{Width: float64(w), Height: float64(h)}),
		logger:        slog.Default(),
		Light:         DefaultLight(),
		ClearColor:    ColorWhite,
		ScreenshotDir: "screenshots",
		commands:      make([]faceCommand, 0, defaultCommandCap),
		sortBuf:       make([]faceCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetLogger sets the logger used for debug stats and screenshot errors.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetUpdateFunc registers fn to be called once per tick with the tick's
// duration in seconds, after the camera and script advance.
func (s *Scene) SetUpdateFunc(fn func(dt float32) error) {
	s.updateFunc = fn
}

// AddOverlay appends a screen-space overlay drawn after the scene.
func (s *Scene) AddOverlay(o Overlay) {
	s.overlays = append(s.overlays, o)
}

// SetScriptRunner attaches a ScriptRunner. Its step method runs at the start
// of every Step.
func (s *Scene) SetScriptRunner(r *ScriptRunner) {
	s.script = r
}

// Update advances the scene by one tick at the configured TPS.
func (s *Scene) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	if err := s.Step(float32(1.0 / float64(tps))); err != nil {
		s.failed = true
		return err
	}
	return nil
}

// Step advances the scene by dt seconds: the script runner, camera
// animations, the registered update function, and overlays.
func (s *Scene) Step(dt float32) error {
	if s.script != nil {
		if err := s.script.step(s); err != nil {
			return err
		}
	}
	s.camera.update(dt)
	if s.updateFunc != nil {
		if err := s.updateFunc(dt); err != nil {
			return err
		}
	}
	for _, o := range s.overlays {
		o.Update(dt)
	}
	return nil
}

// Resize is the render surface's resize notification. The stage is clamped to
// MaxStageSize in both dimensions and the camera's aspect follows it. Returns
// the clamped size.
func (s *Scene) Resize(outsideWidth, outsideHeight int) (int, int) {
	w, h := StageSize(outsideWidth, outsideHeight)
	s.camera.SetViewportSize(w, h)
	return w, h
}

// Draw renders one frame onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())
	calls := s.submitBatches(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = calls
		s.debugLog(stats)
	}

	for _, o := range s.overlays {
		o.Draw(screen)
	}
	s.flushScreenshots(screen)
}

// buildCommands refreshes world transforms, emits face commands for the
// current camera, and sorts them into painter's order.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, Vec3{}, identityScale, 1, false)
	treeOrder := 0
	s.traverse(s.root, s.camera, &treeOrder)
	s.mergeSort()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, child count warnings are logged, and per-frame timing stats
// are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	globalLogger = s.logger
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var (
	globalDebug  bool
	globalLogger = slog.Default()
)
