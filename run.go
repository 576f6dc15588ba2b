package barchart

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the tick rate. Zero keeps ebiten.DefaultTPS.
	TPS int
	// Resizable lets the user resize the window. The stage stays clamped to
	// MaxStageSize.
	Resizable bool
	// ShowFPS adds an FPS overlay to the scene.
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(w, h int) (int, int) { return g.scene.Resize(w, h) }

// Run opens a window and runs scene until the window is closed or an update
// returns an error. Failures to start the window wrap ErrSurfaceUnavailable.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = MaxStageSize, MaxStageSize
	}
	ebiten.SetWindowSize(w, h)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.AddOverlay(NewFPSOverlay(nil))
	}
	scene.Resize(w, h)

	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		if scene.failed {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	return nil
}
