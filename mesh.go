package barchart

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// boxFace is one side of the unit cube centred on the origin.
type boxFace struct {
	normal  Vec3
	corners [4]Vec3 // perimeter order
}

var boxFaces = [6]boxFace{
	{Vec3{1, 0, 0}, [4]Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{Vec3{-1, 0, 0}, [4]Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{Vec3{0, 1, 0}, [4]Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{Vec3{0, -1, 0}, [4]Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	{Vec3{0, 0, 1}, [4]Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{Vec3{0, 0, -1}, [4]Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
}

// Light is a single point light. Faces are lit with a Lambert term on top of
// a constant ambient floor.
type Light struct {
	Position Vec3
	// Ambient is the fraction of the base color a face keeps when it faces
	// away from the light, in [0, 1].
	Ambient float64
}

// DefaultLight returns a white point light at (10, 10, 10).
func DefaultLight() Light {
	return Light{Position: Vec3{10, 10, 10}, Ambient: 0.55}
}

// intensity returns the light factor for a surface at p with normal n.
func (l Light) intensity(n, p Vec3) float64 {
	dir := l.Position.Sub(p).Normalize()
	lambert := math.Max(0, n.Dot(dir))
	a := clamp01(l.Ambient)
	return a + (1-a)*lambert
}

// shadeColor scales c by k in linear RGB, keeping alpha.
func shadeColor(c Color, k float64) Color {
	lr, lg, lb := colorful.Color{R: c.R, G: c.G, B: c.B}.LinearRgb()
	out := colorful.LinearRgb(lr*k, lg*k, lb*k).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// --- White pixel singleton (no sync.Once, barchart is single-threaded) ---

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhiteSubImage returns the centre pixel of a lazily created 3x3 white
// image. Sampling the centre keeps filtering from bleeding transparent edges
// into solid faces.
func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// whiteSrc are the source coordinates of the white sub-image's corners, in
// the same perimeter order as boxFace.corners.
var whiteSrc = [4][2]float32{{1, 1}, {2, 1}, {2, 2}, {1, 2}}
