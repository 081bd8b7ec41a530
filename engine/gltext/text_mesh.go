package gltext

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
)

// TextMesh is a laid out string on the GPU: one indexed vertex array per
// atlas page, drawn with that page's texture bound.
type TextMesh struct {
	shader  *glhf.Shader
	batches []meshBatch
	pos     mgl32.Vec3
	color   mgl32.Vec4
	text    *glyph.Text
}

type meshBatch struct {
	vertices *glhf.VertexSlice[glhf.GlFloat]
	texture  *glhf.Texture
}

// NewTextMesh uploads every batch of text. All batch textures must have been
// allocated by a glhf.GlyphTextures.
func NewTextMesh(shader *glhf.Shader, text *glyph.Text) (*TextMesh, error) {
	t := &TextMesh{
		shader: shader,
		color:  mgl32.Vec4{1, 1, 1, 1},
		text:   text,
	}
	for _, batch := range text.Batches {
		texture, ok := batch.Texture.(*glhf.Texture)
		if !ok {
			return nil, errors.Errorf("text mesh: page %d texture is %T, not an OpenGL texture", batch.Page, batch.Texture)
		}
		data := batchVertices(batch)
		count := len(batch.Positions)
		vertices := glhf.MakeIndexedVertexSlice(shader, count, count, batch.Indices)
		vertices.Begin()
		err := vertices.SetVertexData(data)
		vertices.End()
		if err != nil {
			return nil, errors.Wrapf(err, "text mesh: page %d", batch.Page)
		}
		t.batches = append(t.batches, meshBatch{vertices: vertices, texture: texture})
	}
	return t, nil
}

// batchVertices interleaves a batch into the position/texCoord vertex format.
func batchVertices(b *glyph.Batch) []glhf.GlFloat {
	flat := b.Interleaved()
	data := make([]glhf.GlFloat, len(flat))
	for i, v := range flat {
		data[i] = glhf.GlFloat(v)
	}
	return data
}

func (t *TextMesh) SetPosition(pos mgl32.Vec3) {
	t.pos = pos
}

func (t *TextMesh) SetColor(color mgl32.Vec4) {
	t.color = color
}

// Text returns the layout the mesh was built from.
func (t *TextMesh) Text() *glyph.Text {
	return t.text
}

// Size returns the pixel extent of the laid out quads.
func (t *TextMesh) Size() mgl32.Vec2 {
	return t.text.Bounds.Max.Sub(t.text.Bounds.Min)
}

// Draw issues one draw call per page. The text shader must be bound.
func (t *TextMesh) Draw() {
	t.shader.SetUniformAttr(uniformModel, t.GetTransformMatrix())
	t.shader.SetUniformAttr(uniformColor, t.color)

	for _, batch := range t.batches {
		batch.texture.Begin()

		batch.vertices.Begin()
		batch.vertices.Draw()
		batch.vertices.End()

		batch.texture.End()
	}
}

func (t *TextMesh) GetTransformMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.pos.X(), t.pos.Y(), t.pos.Z())
}
