package util

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func TestQuadMeshData(t *testing.T) {
	d := QuadMeshData(1, 2)
	if d.VertexCount() != 4 || len(d.Indices) != 6 {
		t.Fatalf("%d vertices, %d indices", d.VertexCount(), len(d.Indices))
	}
	for i := 0; i < 4; i++ {
		p := d.Position(i)
		if p.X() != 0 || (p.Y() != 0.5 && p.Y() != -0.5) || (p.Z() != 1 && p.Z() != -1) {
			t.Errorf("vertex %d at %v", i, p)
		}
	}
	// both triangles face +X
	for tri := 0; tri < 2; tri++ {
		a := d.Position(int(d.Indices[tri*3]))
		b := d.Position(int(d.Indices[tri*3+1]))
		c := d.Position(int(d.Indices[tri*3+2]))
		n := b.Sub(a).Cross(c.Sub(a))
		if n.X() <= 0 {
			t.Errorf("triangle %d normal %v faces away from +X", tri, n)
		}
	}
}

func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uvs := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indices),
			Attributes: map[string]uint32{
				gltf.POSITION:   positions,
				gltf.TEXCOORD_0: uvs,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "parent", Translation: [3]float32{0, 0, 5}, Children: []uint32{1}},
		{Name: "child", Mesh: gltf.Index(0), Scale: [3]float32{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []uint32{0}
	return doc
}

func TestLoadGLTFDocumentBakesTransforms(t *testing.T) {
	model, err := loadGLTFDocument(triangleDocument(), "")
	if err != nil {
		t.Fatal(err)
	}
	d := model.Data
	if d.VertexCount() != 3 || len(d.Indices) != 3 {
		t.Fatalf("%d vertices, %d indices", d.VertexCount(), len(d.Indices))
	}
	want := []mgl32.Vec3{{0, 0, 5}, {2, 0, 5}, {0, 2, 5}}
	for i, w := range want {
		if !d.Position(i).ApproxEqual(w) {
			t.Errorf("vertex %d = %v, want %v", i, d.Position(i), w)
		}
	}
	if model.BaseColor != nil {
		t.Error("untextured document produced a base color image")
	}
}

func TestLoadGLTFDocumentEmptyScene(t *testing.T) {
	if _, err := loadGLTFDocument(gltf.NewDocument(), ""); err == nil {
		t.Error("empty scene accepted")
	}
}

func TestToNRGBAFlip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(3, 3, 5, 6))
	img.Set(3, 3, color.NRGBA{R: 255, A: 255})
	img.Set(4, 5, color.NRGBA{B: 255, A: 255})

	plain := ToNRGBA(img, false)
	if plain.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds %v", plain.Bounds())
	}
	if plain.NRGBAAt(0, 0).R != 255 || plain.NRGBAAt(1, 2).B != 255 {
		t.Error("copy moved pixels")
	}
	flipped := ToNRGBA(img, true)
	if flipped.NRGBAAt(0, 2).R != 255 || flipped.NRGBAAt(1, 0).B != 255 {
		t.Error("flip did not mirror rows")
	}
}
