package barchart

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec3) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon || math.Abs(got.Z-want.Z) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- composeWorld ---

func TestComposeWorldIdentity(t *testing.T) {
	n := NewContainer("test")
	pos, scale := composeWorld(Vec3{}, identityScale, n)
	assertVec(t, "pos", pos, Vec3{})
	assertVec(t, "scale", scale, Vec3{1, 1, 1})
}

func TestComposeWorldParentScaleAppliesToPosition(t *testing.T) {
	n := NewBox("b", ColorWhite)
	n.SetPosition(1, 2, 3)
	n.SetScale(0.5, 1, 2)
	pos, scale := composeWorld(Vec3{10, 0, 0}, Vec3{2, 3, 1}, n)
	assertVec(t, "pos", pos, Vec3{12, 6, 3})
	assertVec(t, "scale", scale, Vec3{1, 3, 2})
}

// --- updateWorldTransform ---

func TestUpdateWorldTransformChain(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewBox("leaf", ColorWhite)
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.SetPosition(5, 0, 0)
	mid.SetScale(2, 2, 2)
	mid.SetAlpha(0.5)
	leaf.SetPosition(1, 1, 0)
	leaf.SetAlpha(0.5)

	updateWorldTransform(root, Vec3{}, identityScale, 1, false)

	assertVec(t, "leaf pos", leaf.WorldPosition(), Vec3{7, 2, 0})
	assertVec(t, "leaf scale", leaf.WorldScale(), Vec3{2, 2, 2})
	assertNear(t, "leaf alpha", leaf.worldAlpha, 0.25)
	assertVec(t, "LocalToWorld", leaf.LocalToWorld(Vec3{0.5, 0, 0}), Vec3{8, 2, 0})
}

func TestUpdateWorldTransformClearsDirty(t *testing.T) {
	root := NewContainer("root")
	child := NewBox("child", ColorWhite)
	root.AddChild(child)

	updateWorldTransform(root, Vec3{}, identityScale, 1, false)
	if root.transformDirty || child.transformDirty {
		t.Fatal("nodes should be clean after update")
	}

	child.X = 3
	// Not marked dirty: world position keeps the old value.
	updateWorldTransform(root, Vec3{}, identityScale, 1, false)
	assertNear(t, "stale X", child.WorldPosition().X, 0)

	child.MarkDirty()
	updateWorldTransform(root, Vec3{}, identityScale, 1, false)
	assertNear(t, "fresh X", child.WorldPosition().X, 3)
}

func TestParentDirtyPropagates(t *testing.T) {
	root := NewContainer("root")
	child := NewBox("child", ColorWhite)
	child.SetPosition(1, 0, 0)
	root.AddChild(child)
	updateWorldTransform(root, Vec3{}, identityScale, 1, false)

	root.SetPosition(0, 4, 0)
	updateWorldTransform(root, Vec3{}, identityScale, 1, false)
	assertVec(t, "child pos", child.WorldPosition(), Vec3{1, 4, 0})
}

func TestSettersMarkDirty(t *testing.T) {
	n := NewBox("n", ColorWhite)
	for name, set := range map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2, 3) },
		"SetScale":    func() { n.SetScale(1, 2, 3) },
		"SetAlpha":    func() { n.SetAlpha(0.3) },
	} {
		n.transformDirty = false
		set()
		if !n.transformDirty {
			t.Errorf("%s did not mark the node dirty", name)
		}
	}
}
