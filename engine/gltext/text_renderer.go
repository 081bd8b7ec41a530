package gltext

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
)

//go:embed shaders/text.vert
var textVertexShader string

//go:embed shaders/text.frag
var textFragmentShader string

const (
	uniformProjection = iota
	uniformModel
	uniformColor
)

var (
	VertexFormat = glhf.AttrFormat{
		{Name: "position", Type: glhf.Vec2},
		{Name: "texCoord", Type: glhf.Vec2},
	}
	UniformFormat = glhf.AttrFormat{
		{Name: "projection", Type: glhf.Mat4},
		{Name: "model", Type: glhf.Mat4},
		{Name: "textColor", Type: glhf.Vec4},
	}
)

// NewTextShader compiles the glyph shader. It samples coverage from the red
// channel of the page texture.
func NewTextShader() (*glhf.Shader, error) {
	shader, err := glhf.NewShader(VertexFormat, UniformFormat, textVertexShader, textFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "text shader")
	}
	return shader, nil
}

// Renderer turns strings into TextMeshes using one Font whose pages live in
// OpenGL textures.
type Renderer struct {
	shader  *glhf.Shader
	font    *glyph.Font
	options glyph.Options
	color   mgl32.Vec4
}

func NewRenderer(shader *glhf.Shader, font *glyph.Font) *Renderer {
	return &Renderer{
		shader:  shader,
		font:    font,
		options: glyph.Options{LineBreaks: true},
		color:   mgl32.Vec4{1, 1, 1, 1},
	}
}

// NewRendererForFace creates the Font for face with an OpenGL page uploader.
func NewRendererForFace(shader *glhf.Shader, face *glyph.Face) *Renderer {
	return NewRenderer(shader, glyph.NewFont(face, glhf.NewGlyphTextures(false)))
}

func (r *Renderer) Font() *glyph.Font {
	return r.font
}

func (r *Renderer) Shader() *glhf.Shader {
	return r.shader
}

func (r *Renderer) SetOptions(options glyph.Options) {
	r.options = options
}

func (r *Renderer) SetColor(color mgl32.Vec4) {
	r.color = color
}

// SetProjection sets the projection uniform. The shader must be bound.
func (r *Renderer) SetProjection(projection mgl32.Mat4) {
	r.shader.SetUniformAttr(uniformProjection, projection)
}

// DrawText lays out text with the baseline of the first line at pen and
// uploads the result. Pages needed by the text are loaded on the way.
func (r *Renderer) DrawText(text string, pen mgl32.Vec2) (*TextMesh, error) {
	layout, err := glyph.LayoutWithOptions(text, pen, r.font, r.options)
	if err != nil {
		return nil, errors.Wrap(err, "draw text")
	}
	mesh, err := NewTextMesh(r.shader, layout)
	if err != nil {
		return nil, err
	}
	mesh.SetColor(r.color)
	return mesh, nil
}

// Begin binds the text shader for 2D drawing: alpha blending on, depth test
// and face culling off.
func (r *Renderer) Begin() {
	r.shader.Begin()
	glhf.BlendAlpha(true)
	glhf.DepthTest(false)
	glhf.CullFaces(false)
}

// End restores the 3D state.
func (r *Renderer) End() {
	glhf.CullFaces(true)
	glhf.DepthTest(true)
	glhf.BlendAlpha(false)
	r.shader.End()
}
