package barchart

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestBar(x, y, h, alpha float64) *Bar {
	n := NewBox("bar", ColorWhite)
	n.SetPosition(x, y, 0)
	n.SetScale(1, h, 1)
	n.Alpha = alpha
	return &Bar{Key: "bar", id: n.ID, node: n}
}

// --- Lerp ---

func TestLerpBoundaries(t *testing.T) {
	for _, tc := range []struct{ a, b float64 }{
		{0, 1}, {3, -7}, {0.1, 0.7}, {1e9, 1e-9},
	} {
		if got := Lerp(tc.a, tc.b, 0); got != tc.a {
			t.Errorf("Lerp(%v, %v, 0) = %v, want exactly %v", tc.a, tc.b, got, tc.a)
		}
		if got := Lerp(tc.a, tc.b, 1); got != tc.b {
			t.Errorf("Lerp(%v, %v, 1) = %v, want exactly %v", tc.a, tc.b, got, tc.b)
		}
	}
	assertNear(t, "Lerp(0, 10, 0.25)", Lerp(0, 10, 0.25), 2.5)
}

// --- Position transition ---

func TestTweenPositionReachesTarget(t *testing.T) {
	b := newTestBar(0, 0, 0, 1)
	b.Target = BarTarget{X: 2, Y: 0.5, Height: 1, Opacity: 1, HasX: true}
	tr := TweenPosition(b, 1, ease.Linear)

	for range 10 {
		tr.Update(0.1)
	}
	if !tr.Done {
		t.Fatal("transition should be done after its duration")
	}
	assertNear(t, "X", b.node.X, 2)
	assertNear(t, "Y", b.node.Y, 0.5)
	assertNear(t, "Height", b.Height(), 1)
}

func TestTweenPositionInterpolatesFromCurrent(t *testing.T) {
	b := newTestBar(0, 0, 0, 1)
	b.Target = BarTarget{X: 4, HasX: true}
	tr := TweenPosition(b, 2, ease.Linear)

	tr.Update(1) // t = 0.5
	assertNear(t, "X after half", b.node.X, 2)
	// The next frame interpolates from 2, not from 0.
	tr.Update(0.5) // t = 0.75
	assertNear(t, "X after three quarters", b.node.X, Lerp(2, 4, 0.75))
}

func TestTweenPositionSkipsXWithoutTarget(t *testing.T) {
	b := newTestBar(1.5, 0, 0, 1)
	b.Target = BarTarget{X: 9, Y: 1, Height: 2}
	tr := TweenPosition(b, 1, ease.Linear)
	tr.Update(1)
	assertNear(t, "X", b.node.X, 1.5)
	assertNear(t, "Height", b.Height(), 2)
}

func TestTweenPositionSkipsNonFiniteX(t *testing.T) {
	for _, target := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		b := newTestBar(1, 0, 0, 1)
		b.Target = BarTarget{X: target, Y: 0.5, Height: 1, HasX: true}
		tr := TweenPosition(b, 1, ease.Linear)
		tr.Update(0.5)
		if b.node.X != 1 {
			t.Errorf("target %v: X = %v, want 1", target, b.node.X)
		}
		assertNear(t, "Y", b.node.Y, 0.25)
	}
}

// --- Opacity transition ---

func TestTweenOpacity(t *testing.T) {
	b := newTestBar(0, 0, 1, 1)
	b.Target.Opacity = 0
	tr := TweenOpacity(b, 2, ease.Linear)
	tr.Update(1)
	assertNear(t, "Alpha at half", b.Opacity(), 0.5)
	tr.Update(1)
	if b.Opacity() != 0 {
		t.Errorf("Alpha = %v, want exactly 0", b.Opacity())
	}
}

func TestTransitionOnCompleteOnce(t *testing.T) {
	b := newTestBar(0, 0, 1, 1)
	tr := TweenOpacity(b, 0.5, ease.Linear)
	calls := 0
	tr.OnComplete = func() { calls++ }
	for range 5 {
		tr.Update(0.25)
	}
	if calls != 1 {
		t.Errorf("OnComplete called %d times, want 1", calls)
	}
}

func TestTransitionStopsOnDisposedNode(t *testing.T) {
	b := newTestBar(0, 0, 1, 1)
	b.Target.Opacity = 0
	tr := TweenOpacity(b, 1, ease.Linear)
	called := false
	tr.OnComplete = func() { called = true }
	b.node.Dispose()
	tr.Update(2)
	if !tr.Done {
		t.Error("transition should stop")
	}
	if called {
		t.Error("OnComplete should not run for a disposed node")
	}
}

func TestSupersedeCancelsPrevious(t *testing.T) {
	b := newTestBar(0, 0, 1, 1)
	first := TweenOpacity(b, 1, ease.Linear)
	fired := false
	first.OnComplete = func() { fired = true }
	b.opacity = first

	supersede(&b.opacity, TweenOpacity(b, 1, ease.Linear))
	if !first.Done {
		t.Error("superseded transition should be done")
	}
	first.Update(1)
	if fired {
		t.Error("superseded transition fired OnComplete")
	}
	if b.opacity == first {
		t.Error("slot still holds the old transition")
	}
}

func TestNilEasingDefaultsToLinear(t *testing.T) {
	b := newTestBar(0, 0, 0, 1)
	b.Target = BarTarget{X: 1, HasX: true}
	tr := TweenPosition(b, 1, nil)
	tr.Update(0.5)
	assertNear(t, "X", b.node.X, 0.5)
}
