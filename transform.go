package barchart

// identityScale is the root scale passed into world transform updates.
var identityScale = Vec3{1, 1, 1}

// composeWorld combines a parent's world position and scale with a child's
// local transform. Nodes carry no rotation, so composition is
//
//	worldPos   = parentPos + parentScale ⊙ localPos
//	worldScale = parentScale ⊙ localScale
func composeWorld(parentPos, parentScale Vec3, n *Node) (Vec3, Vec3) {
	local := Vec3{n.X, n.Y, n.Z}
	pos := parentPos.Add(parentScale.Mul(local))
	scale := parentScale.Mul(Vec3{n.ScaleX, n.ScaleY, n.ScaleZ})
	return pos, scale
}

// updateWorldTransform recomputes a node's world position, scale and alpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentPos, parentScale Vec3, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldPos, n.worldScale = composeWorld(parentPos, parentScale, n)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldPos, n.worldScale, n.worldAlpha, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.X = x
	n.Y = y
	n.Z = z
	n.transformDirty = true
}

// SetScale sets the node's scale factors and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.ScaleZ = sz
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldPosition returns the node's world-space position as of the last
// transform update.
func (n *Node) WorldPosition() Vec3 {
	return n.worldPos
}

// WorldScale returns the node's world-space scale as of the last transform
// update.
func (n *Node) WorldScale() Vec3 {
	return n.worldScale
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldPos.Add(n.worldScale.Mul(p))
}
