package barchart

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pitch limits keep the view basis well defined.
const (
	minPitch = -1.5
	maxPitch = 1.5
)

// DefaultHalfHeight is the default half-height of the orthographic frustum
// in world units.
const DefaultHalfHeight = 3.0

// panAnim holds active pan tweens for the camera target.
type panAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is an orthographic camera orbiting a target point. Yaw rotates around
// the world Y axis; pitch raises the camera above the XZ plane. The default
// orientation looks from (1, 1, 1) toward the origin.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Yaw and Pitch are orbit angles in radians.
	Yaw, Pitch float64
	// HalfHeight is half the visible height in world units at Zoom 1.
	HalfHeight float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	right, up, forward   Vec3
	basisYaw, basisPitch float64
	basisValid           bool

	pan *panAnim
}

// NewCamera creates a camera with the isometric default orientation and the
// given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Yaw:        math.Pi / 4,
		Pitch:      math.Asin(1 / math.Sqrt(3)),
		HalfHeight: DefaultHalfHeight,
		Zoom:       1,
		Viewport:   viewport,
	}
}

// Aspect returns the viewport's width divided by its height, or 1 for an
// empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Height <= 0 || c.Viewport.Width <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// SetViewportSize resizes the viewport, keeping its origin.
func (c *Camera) SetViewportSize(w, h int) {
	c.Viewport.Width = float64(w)
	c.Viewport.Height = float64(h)
}

// Orbit rotates the camera by the given yaw and pitch deltas (radians).
// Pitch is clamped so the camera never passes over the poles.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch = math.Max(minPitch, math.Min(maxPitch, c.Pitch+dPitch))
}

// PanTo animates the camera target to p over duration seconds.
func (c *Camera) PanTo(p Vec3, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.pan = &panAnim{tweens: [3]*gween.Tween{
		gween.New(float32(c.Target.X), float32(p.X), duration, easeFn),
		gween.New(float32(c.Target.Y), float32(p.Y), duration, easeFn),
		gween.New(float32(c.Target.Z), float32(p.Z), duration, easeFn),
	}}
}

// Panning reports whether a PanTo animation is in progress.
func (c *Camera) Panning() bool {
	return c.pan != nil
}

// update advances the pan animation. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.pan == nil {
		return
	}
	fields := [3]*float64{&c.Target.X, &c.Target.Y, &c.Target.Z}
	all := true
	for i, tw := range c.pan.tweens {
		if c.pan.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		*fields[i] = float64(val)
		c.pan.done[i] = done
		if !done {
			all = false
		}
	}
	if all {
		c.pan = nil
	}
}

// basis recomputes the view basis if Yaw or Pitch changed since the last call.
func (c *Camera) basis() (right, up, forward Vec3) {
	if !c.basisValid || c.basisYaw != c.Yaw || c.basisPitch != c.Pitch {
		sp, cp := math.Sincos(c.Pitch)
		sy, cy := math.Sincos(c.Yaw)
		eye := Vec3{cp * sy, sp, cp * cy}
		c.forward = eye.Scale(-1)
		c.right = c.forward.Cross(Vec3{0, 1, 0}).Normalize()
		c.up = c.right.Cross(c.forward)
		c.basisYaw, c.basisPitch = c.Yaw, c.Pitch
		c.basisValid = true
	}
	return c.right, c.up, c.forward
}

// Eye returns the unit direction from the target toward the camera.
func (c *Camera) Eye() Vec3 {
	_, _, f := c.basis()
	return f.Scale(-1)
}

// Project maps a world-space point to screen coordinates. depth grows with
// distance from the camera along the view direction.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64) {
	right, up, forward := c.basis()
	rel := p.Sub(c.Target)
	vx := rel.Dot(right)
	vy := rel.Dot(up)
	depth = rel.Dot(forward)

	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfH := c.HalfHeight / zoom
	halfW := halfH * c.Aspect()
	vp := c.Viewport
	sx = vp.X + (vx/halfW+1)*vp.Width/2
	sy = vp.Y + (1-vy/halfH)*vp.Height/2
	return sx, sy, depth
}

// Facing reports whether a surface with world-space normal n faces the camera.
func (c *Camera) Facing(n Vec3) bool {
	_, _, f := c.basis()
	return n.Dot(f) < 0
}
