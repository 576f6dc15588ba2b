package barchart

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is the length of every bar transition, in seconds.
const DefaultDuration float32 = 2

// Lerp interpolates linearly between a and b. The result is exactly a at
// t = 0 and exactly b at t = 1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type transitionKind uint8

const (
	transitionPosition transitionKind = iota // Position.X, Position.Y, Scale.Y
	transitionOpacity                        // Alpha
)

// Transition animates one attribute group of a Bar toward the bar's stored
// targets. The gween tween is used as a clock producing normalized time; each
// frame interpolates from the attribute's current value, so re-arming a
// transition mid-flight continues from what is on screen without jumping.
//
// Call Update(dt) each frame. If the bar's node is disposed, the transition
// stops immediately without firing OnComplete.
type Transition struct {
	kind  transitionKind
	bar   *Bar
	clock *gween.Tween

	// OnComplete, when set, runs once after the final frame is applied.
	OnComplete func()
	Done       bool
}

func newTransition(kind transitionKind, b *Bar, duration float32, fn ease.TweenFunc) *Transition {
	if fn == nil {
		fn = ease.Linear
	}
	return &Transition{
		kind:  kind,
		bar:   b,
		clock: gween.New(0, 1, duration, fn),
	}
}

// TweenPosition creates a Transition that moves the bar's X and Y and stretches
// its height toward Target over duration seconds.
func TweenPosition(b *Bar, duration float32, fn ease.TweenFunc) *Transition {
	return newTransition(transitionPosition, b, duration, fn)
}

// TweenOpacity creates a Transition that fades the bar's alpha toward
// Target.Opacity over duration seconds.
func TweenOpacity(b *Bar, duration float32, fn ease.TweenFunc) *Transition {
	return newTransition(transitionOpacity, b, duration, fn)
}

// Update advances the clock by dt seconds and writes interpolated values to
// the bar's node.
func (tr *Transition) Update(dt float32) {
	if tr.Done {
		return
	}
	n := tr.bar.node
	if n == nil || n.IsDisposed() {
		tr.Done = true
		return
	}

	v, finished := tr.clock.Update(dt)
	t := float64(v)
	switch tr.kind {
	case transitionPosition:
		tr.bar.stepPosition(t)
	case transitionOpacity:
		n.Alpha = Lerp(n.Alpha, tr.bar.Target.Opacity, t)
	}
	n.MarkDirty()

	if finished {
		tr.Done = true
		if tr.OnComplete != nil {
			tr.OnComplete()
		}
	}
}

// cancel stops the transition without running OnComplete.
func (tr *Transition) cancel() {
	tr.Done = true
	tr.OnComplete = nil
}
