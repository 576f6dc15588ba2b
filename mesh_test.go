package barchart

import "testing"

func TestBoxFacesAreUnitCube(t *testing.T) {
	for i, f := range boxFaces {
		for j, c := range f.corners {
			// Every corner lies on the face's plane.
			assertNear(t, "corner plane", c.Dot(f.normal), 0.5)
			for _, v := range []float64{c.X, c.Y, c.Z} {
				if v != 0.5 && v != -0.5 {
					t.Errorf("face %d corner %d = %v, not a unit cube corner", i, j, c)
				}
			}
		}
		// Perimeter order winds counter-clockwise seen from outside.
		e1 := f.corners[1].Sub(f.corners[0])
		e2 := f.corners[2].Sub(f.corners[1])
		if e1.Cross(e2).Dot(f.normal) <= 0 {
			t.Errorf("face %d winds the wrong way", i)
		}
	}
}

func TestLightIntensity(t *testing.T) {
	l := Light{Position: Vec3{0, 10, 0}, Ambient: 0.5}
	assertNear(t, "facing light", l.intensity(Vec3{0, 1, 0}, Vec3{}), 1)
	assertNear(t, "facing away", l.intensity(Vec3{0, -1, 0}, Vec3{}), 0.5)
	assertNear(t, "perpendicular", l.intensity(Vec3{1, 0, 0}, Vec3{}), 0.5)

	full := Light{Position: Vec3{0, 10, 0}, Ambient: 2}
	assertNear(t, "ambient clamped", full.intensity(Vec3{0, -1, 0}, Vec3{}), 1)
}

func TestDefaultLightShadesVisibleFacesDifferently(t *testing.T) {
	l := DefaultLight()
	top := l.intensity(Vec3{0, 1, 0}, Vec3{0, 0.5, 0})
	side := l.intensity(Vec3{1, 0, 0}, Vec3{0.5, 0, 0})
	if top <= l.Ambient || side <= l.Ambient {
		t.Errorf("lit faces should exceed ambient: top %v side %v", top, side)
	}
}

func TestShadeColor(t *testing.T) {
	red := Color{1, 0, 0, 0.5}
	if got := shadeColor(red, 1); !approxEqual(got.R, 1, 1e-9) || got.G != 0 || got.A != 0.5 {
		t.Errorf("shadeColor(red, 1) = %v", got)
	}
	if got := shadeColor(red, 0); got.R != 0 || got.A != 0.5 {
		t.Errorf("shadeColor(red, 0) = %v", got)
	}
	dim := shadeColor(red, 0.5)
	if dim.R <= 0.5 || dim.R >= 1 {
		t.Errorf("half-lit red in sRGB = %v, want in (0.5, 1)", dim.R)
	}
}
