package barchart

// BarTarget holds the values a bar's transitions move toward.
type BarTarget struct {
	X       float64
	Y       float64
	Height  float64
	Opacity float64
	// HasX is false until an X target has been assigned. The X step is
	// skipped while it is false.
	HasX bool
}

// Bar is the visual object bound to one record key. The bar's identity is
// stable across joins: a key that keeps appearing keeps the same Bar, and a
// key that exits and later re-enters gets a new one.
type Bar struct {
	// Key is the record key the bar is bound to.
	Key string
	// Value and Index are the record's value and batch position from the
	// most recent join that matched this bar.
	Value float64
	Index int
	// Target is what the transitions animate toward.
	Target BarTarget

	id      uint32
	node    *Node
	exiting bool

	position *Transition
	opacity  *Transition
}

// ID returns the bar's identity. It equals the ID its node had at creation
// and does not change when the node is disposed.
func (b *Bar) ID() uint32 { return b.id }

// Node returns the box node that renders the bar.
func (b *Bar) Node() *Node { return b.node }

// Exiting reports whether the bar's key has left the data and the bar is
// fading out.
func (b *Bar) Exiting() bool { return b.exiting }

// Position returns the bar's current local center.
func (b *Bar) Position() Vec3 { return Vec3{b.node.X, b.node.Y, b.node.Z} }

// Height returns the bar's current height (its Y scale).
func (b *Bar) Height() float64 { return b.node.ScaleY }

// Opacity returns the bar's current alpha.
func (b *Bar) Opacity() float64 { return b.node.Alpha }

// Animating reports whether either of the bar's transitions is running.
func (b *Bar) Animating() bool {
	return (b.position != nil && !b.position.Done) || (b.opacity != nil && !b.opacity.Done)
}

// stepPosition applies one frame of the position/scale transition.
func (b *Bar) stepPosition(t float64) {
	n := b.node
	if b.Target.HasX {
		if x := Lerp(n.X, b.Target.X, t); isFinite(x) {
			n.X = x
		}
	}
	n.Y = Lerp(n.Y, b.Target.Y, t)
	n.ScaleY = Lerp(n.ScaleY, b.Target.Height, t)
}

// supersede installs next in slot, cancelling whatever ran there before.
func supersede(slot **Transition, next *Transition) {
	if *slot != nil {
		(*slot).cancel()
	}
	*slot = next
}
