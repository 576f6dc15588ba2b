package barchart

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSOverlay displays the current FPS and TPS and the number of live bars in
// the top-left corner. The text is refreshed roughly every 0.5 seconds.
type FPSOverlay struct {
	// Visible toggles drawing; the overlay keeps sampling while hidden.
	Visible bool

	chart      *Chart
	img        *ebiten.Image
	lastUpdate float32
	text       string
}

// NewFPSOverlay creates a visible FPS overlay. chart may be nil.
func NewFPSOverlay(chart *Chart) *FPSOverlay {
	return &FPSOverlay{Visible: true, chart: chart}
}

// Update accumulates dt and refreshes the text every half second.
func (o *FPSOverlay) Update(dt float32) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 && o.text != "" {
		return
	}
	o.lastUpdate = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if o.chart != nil {
		o.text += fmt.Sprintf("\nBars: %d", o.chart.Len())
	}
}

// Draw renders the overlay onto screen.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	if !o.Visible || o.text == "" {
		return
	}
	if o.img == nil {
		// 100x48 is enough for three short lines.
		o.img = ebiten.NewImage(100, 48)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
