package barchart

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// faceCommand is one visible box face emitted during scene traversal, already
// projected to screen space.
type faceCommand struct {
	corners     [4][2]float32
	Color       color32 // straight alpha; premultiplied at submission
	depth       float64 // mean view depth of the corners
	RenderLayer uint8
	treeOrder   int // assigned during traversal for stable sort
}

// traverse walks the node tree depth-first and emits a command per
// camera-facing face of every visible box. World transforms must be current.
func (s *Scene) traverse(n *Node, cam *Camera, treeOrder *int) {
	if !n.Visible {
		return
	}
	if n.Renderable && n.Type == NodeTypeBox {
		s.emitBox(n, cam, treeOrder)
	}
	for _, child := range n.children {
		s.traverse(child, cam, treeOrder)
	}
}

// emitBox projects the faces of a box node. Boxes with a non-positive extent
// or zero alpha emit nothing.
func (s *Scene) emitBox(n *Node, cam *Camera, treeOrder *int) {
	size := n.worldScale
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return
	}
	alpha := n.Color.A * n.worldAlpha
	if alpha <= 0 {
		return
	}

	for i := range boxFaces {
		f := &boxFaces[i]
		if !cam.Facing(f.normal) {
			continue
		}
		var cmd faceCommand
		var depth float64
		for j, c := range f.corners {
			sx, sy, d := cam.Project(n.worldPos.Add(size.Mul(c)))
			cmd.corners[j] = [2]float32{float32(sx), float32(sy)}
			depth += d
		}
		center := n.worldPos.Add(size.Mul(f.normal.Scale(0.5)))
		shaded := shadeColor(n.Color, s.Light.intensity(f.normal, center))

		*treeOrder++
		cmd.Color = color32{float32(shaded.R), float32(shaded.G), float32(shaded.B), float32(alpha)}
		cmd.depth = depth / 4
		cmd.RenderLayer = n.RenderLayer
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should be drawn before or at the same
// position as b: lower layers first, then farther faces first. Using <= for
// treeOrder ensures stability.
func commandLessOrEqual(a, b *faceCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]faceCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []faceCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
