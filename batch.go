package barchart

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchQuads bounds the vertex buffer of a single DrawTriangles32 call.
const maxBatchQuads = 4096

// submitBatches draws the sorted face commands, coalescing consecutive faces
// into as few DrawTriangles32 calls as possible. All faces share the white
// sub-image and source-over blending, so only the buffer limit splits
// batches.
func (s *Scene) submitBatches(target *ebiten.Image) int {
	if len(s.commands) == 0 {
		return 0
	}

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
	calls := 0

	for i := range s.commands {
		if len(s.batchVerts) >= maxBatchQuads*4 {
			calls += s.flushBatch(target)
		}
		s.appendFaceQuad(&s.commands[i])
	}
	calls += s.flushBatch(target)
	return calls
}

// appendFaceQuad appends 4 vertices and 6 indices for one projected face.
func (s *Scene) appendFaceQuad(cmd *faceCommand) {
	// Premultiplied RGBA.
	ca := cmd.Color.A
	cr := cmd.Color.R * ca
	cg := cmd.Color.G * ca
	cb := cmd.Color.B * ca

	base := uint32(len(s.batchVerts))
	for i := 0; i < 4; i++ {
		s.batchVerts = append(s.batchVerts, ebiten.Vertex{
			DstX:   cmd.corners[i][0],
			DstY:   cmd.corners[i][1],
			SrcX:   whiteSrc[i][0],
			SrcY:   whiteSrc[i][1],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles around the perimeter: 0-1-2, 0-2-3.
	s.batchInds = append(s.batchInds,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

// flushBatch submits accumulated vertices as a single DrawTriangles32 call
// and reports how many calls were made.
func (s *Scene) flushBatch(target *ebiten.Image) int {
	if len(s.batchVerts) == 0 {
		return 0
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = ebiten.BlendSourceOver
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = s.AntiAlias

	target.DrawTriangles32(s.batchVerts, s.batchInds, ensureWhiteSubImage(), &triOp)

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
	return 1
}
