package barchart

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// OrbitControls rotates and zooms a Camera from pointer input: dragging with
// the left mouse button or one finger orbits around the camera target, the
// mouse wheel zooms. Call Update once per tick.
type OrbitControls struct {
	Enabled bool
	// RotateSpeed is the orbit angle per dragged pixel, in radians.
	RotateSpeed float64
	// ZoomSpeed is the zoom factor change per wheel notch.
	ZoomSpeed float64
	// MinZoom and MaxZoom clamp Camera.Zoom.
	MinZoom, MaxZoom float64

	camera *Camera

	dragging     bool
	lastX, lastY int
	touchID      ebiten.TouchID
	touchBuf     []ebiten.TouchID
}

// NewOrbitControls creates enabled controls for cam.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Enabled:     true,
		RotateSpeed: 0.01,
		ZoomSpeed:   0.1,
		MinZoom:     0.25,
		MaxZoom:     8,
		camera:      cam,
	}
}

// Update reads the mouse, wheel and touch state and applies it to the camera.
func (c *OrbitControls) Update() {
	if !c.Enabled {
		c.dragging = false
		return
	}

	c.touchBuf = ebiten.AppendTouchIDs(c.touchBuf[:0])
	switch {
	case len(c.touchBuf) > 0:
		id := c.touchBuf[0]
		x, y := ebiten.TouchPosition(id)
		c.pointer(true, id, x, y)
	default:
		x, y := ebiten.CursorPosition()
		c.pointer(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), -1, x, y)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		c.wheel(wy)
	}
}

// pointer tracks one pointer. A change of touch ID restarts the drag so a new
// finger does not cause a jump.
func (c *OrbitControls) pointer(pressed bool, id ebiten.TouchID, x, y int) {
	if !pressed {
		c.dragging = false
		return
	}
	if !c.dragging || id != c.touchID {
		c.dragging = true
		c.touchID = id
		c.lastX, c.lastY = x, y
		return
	}
	c.drag(float64(x-c.lastX), float64(y-c.lastY))
	c.lastX, c.lastY = x, y
}

// drag orbits the camera by a pointer movement in pixels. Moving right
// orbits left around the target; moving down raises the camera.
func (c *OrbitControls) drag(dx, dy float64) {
	c.camera.Orbit(-dx*c.RotateSpeed, dy*c.RotateSpeed)
}

// wheel zooms by the given number of notches; positive zooms in.
func (c *OrbitControls) wheel(notches float64) {
	z := c.camera.Zoom * math.Pow(1+c.ZoomSpeed, notches)
	c.camera.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}
