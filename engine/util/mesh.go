package util

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
	"github.com/pkg/errors"
)

// MeshVertexFormat is the vertex layout of every sandbox mesh.
var MeshVertexFormat = glhf.AttrFormat{
	{Name: "position", Type: glhf.Vec3},
	{Name: "texCoord", Type: glhf.Vec2},
	{Name: "normal", Type: glhf.Vec3},
}

const meshStride = 8

// MeshData is an indexed triangle list in MeshVertexFormat, kept on the CPU.
type MeshData struct {
	Vertices []glhf.GlFloat
	Indices  []uint32
}

func (d *MeshData) VertexCount() int {
	return len(d.Vertices) / meshStride
}

func (d *MeshData) appendVertex(pos mgl32.Vec3, uv mgl32.Vec2, normal mgl32.Vec3) {
	d.Vertices = append(d.Vertices,
		glhf.GlFloat(pos[0]), glhf.GlFloat(pos[1]), glhf.GlFloat(pos[2]),
		glhf.GlFloat(uv[0]), glhf.GlFloat(uv[1]),
		glhf.GlFloat(normal[0]), glhf.GlFloat(normal[1]), glhf.GlFloat(normal[2]),
	)
}

// Position returns the position of vertex i.
func (d *MeshData) Position(i int) mgl32.Vec3 {
	v := d.Vertices[i*meshStride:]
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// QuadMeshData is a width x height rectangle centered on the origin in the
// YZ plane, facing +X. Triangles wind counter-clockwise seen from +X.
func QuadMeshData(width, height float32) MeshData {
	w, h := width/2, height/2
	normal := mgl32.Vec3{1, 0, 0}
	var d MeshData
	d.appendVertex(mgl32.Vec3{0, -w, h}, mgl32.Vec2{0, 0}, normal)
	d.appendVertex(mgl32.Vec3{0, w, h}, mgl32.Vec2{1, 0}, normal)
	d.appendVertex(mgl32.Vec3{0, w, -h}, mgl32.Vec2{1, 1}, normal)
	d.appendVertex(mgl32.Vec3{0, -w, -h}, mgl32.Vec2{0, 1}, normal)
	d.Indices = []uint32{0, 3, 1, 1, 3, 2}
	return d
}

// Mesh is MeshData uploaded to the GPU with an optional texture.
type Mesh struct {
	vertices    *glhf.VertexSlice[glhf.GlFloat]
	texture     *glhf.Texture
	transform   mgl32.Mat4
	DoubleSided bool
}

func NewMesh(shader *glhf.Shader, data MeshData) (*Mesh, error) {
	if len(data.Indices) == 0 {
		return nil, errors.New("new mesh: no triangles")
	}
	count := data.VertexCount()
	vertices := glhf.MakeIndexedVertexSlice(shader, count, count, data.Indices)
	vertices.Begin()
	err := vertices.SetVertexData(data.Vertices)
	vertices.End()
	if err != nil {
		return nil, errors.Wrap(err, "new mesh")
	}
	return &Mesh{
		vertices:  vertices,
		transform: mgl32.Ident4(),
	}, nil
}

// NewQuadMesh uploads QuadMeshData. The quad is visible from both sides.
func NewQuadMesh(shader *glhf.Shader, width, height float32) (*Mesh, error) {
	m, err := NewMesh(shader, QuadMeshData(width, height))
	if err != nil {
		return nil, err
	}
	m.DoubleSided = true
	return m, nil
}

func (m *Mesh) SetTexture(texture *glhf.Texture) {
	m.texture = texture
}

func (m *Mesh) SetTransform(transform mgl32.Mat4) {
	m.transform = transform
}

func (m *Mesh) GetTransformMatrix() mgl32.Mat4 {
	return m.transform
}

// Draw draws the mesh with its transform in the given uniform. The shader
// must be bound.
func (m *Mesh) Draw(shader *glhf.Shader, modelTransformUniformIndex int) {
	shader.SetUniformAttr(modelTransformUniformIndex, m.transform)
	if m.DoubleSided {
		glhf.CullFaces(false)
		defer glhf.CullFaces(true)
	}
	if m.texture != nil {
		m.texture.Begin()
		defer m.texture.End()
	}
	m.vertices.Begin()
	m.vertices.Draw()
	m.vertices.End()
}
