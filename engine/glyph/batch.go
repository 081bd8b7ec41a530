package glyph

import "github.com/go-gl/mathgl/mgl32"

// Batch is the quad geometry of one atlas page. Positions and TexCoords run in
// parallel, four vertices per quad; Indices draw each quad as two triangles.
type Batch struct {
	Page      int
	Texture   Texture
	Positions []mgl32.Vec2
	TexCoords []mgl32.Vec2
	Indices   []uint32
}

// QuadCount returns the number of glyph quads in the batch.
func (b *Batch) QuadCount() int {
	return len(b.Positions) / 4
}

// Interleaved returns x, y, u, v per vertex, ready for a position/texCoord
// vertex format.
func (b *Batch) Interleaved() []float32 {
	data := make([]float32, 0, len(b.Positions)*4)
	for i, pos := range b.Positions {
		uv := b.TexCoords[i]
		data = append(data, pos.X(), pos.Y(), uv.X(), uv.Y())
	}
	return data
}

// addQuad appends corners in the order top-left, top-right, bottom-right,
// bottom-left.
func (b *Batch) addQuad(topLeft, size mgl32.Vec2, uv Rect) {
	i := uint32(len(b.Positions))
	b.Indices = append(b.Indices, i, i+1, i+3, i+3, i+1, i+2)
	b.Positions = append(b.Positions,
		topLeft,
		topLeft.Add(mgl32.Vec2{size.X(), 0}),
		topLeft.Add(size),
		topLeft.Add(mgl32.Vec2{0, size.Y()}),
	)
	b.TexCoords = append(b.TexCoords,
		uv.Min,
		mgl32.Vec2{uv.Max.X(), uv.Min.Y()},
		uv.Max,
		mgl32.Vec2{uv.Min.X(), uv.Max.Y()},
	)
}
