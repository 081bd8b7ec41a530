package util

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFModel is the static geometry of a glTF scene flattened into one mesh,
// plus the base color image of the first textured material.
type GLTFModel struct {
	Data      MeshData
	BaseColor image.Image
}

// LoadGLTF reads the default scene of a .gltf or .glb file. Node transforms
// are baked into the vertices; animations and skins are ignored.
func LoadGLTF(filename string) (*GLTFModel, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "load gltf %s", filename)
	}
	model, err := loadGLTFDocument(doc, filepath.Dir(filename))
	if err != nil {
		return nil, errors.Wrapf(err, "load gltf %s", filename)
	}
	return model, nil
}

func loadGLTFDocument(doc *gltf.Document, dir string) (*GLTFModel, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("document has no scene")
	}
	defaultSceneIndex := 0
	if doc.Scene != nil {
		defaultSceneIndex = int(*doc.Scene)
	}
	model := &GLTFModel{}
	textureIndex := -1
	for _, nodeIndex := range doc.Scenes[defaultSceneIndex].Nodes {
		if err := appendNode(doc, nodeIndex, mgl32.Ident4(), &model.Data, &textureIndex); err != nil {
			return nil, err
		}
	}
	if len(model.Data.Indices) == 0 {
		return nil, errors.New("scene has no triangles")
	}
	if textureIndex >= 0 {
		img, err := loadTextureImage(doc, uint32(textureIndex), dir)
		if err != nil {
			LogIOError("gltf: base color texture: " + err.Error())
		} else {
			model.BaseColor = img
		}
	}
	return model, nil
}

func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	m := mgl32.Mat4(node.MatrixOrDefault())
	if m != mgl32.Ident4() {
		return m
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rotation := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
	return mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

func appendNode(doc *gltf.Document, nodeIndex uint32, parent mgl32.Mat4, data *MeshData, textureIndex *int) error {
	node := doc.Nodes[nodeIndex]
	world := parent.Mul4(nodeMatrix(node))
	if node.Mesh != nil {
		if err := appendMesh(doc, doc.Meshes[*node.Mesh], world, data, textureIndex); err != nil {
			return errors.Wrapf(err, "node %q", node.Name)
		}
	}
	for _, child := range node.Children {
		if err := appendNode(doc, child, world, data, textureIndex); err != nil {
			return err
		}
	}
	return nil
}

func appendMesh(doc *gltf.Document, mesh *gltf.Mesh, world mgl32.Mat4, data *MeshData, textureIndex *int) error {
	normalMatrix := world.Mat3()
	for _, primitive := range mesh.Primitives {
		if primitive.Mode != gltf.PrimitiveTriangles {
			LogIOError("gltf: skipping non-triangle primitive in mesh " + mesh.Name)
			continue
		}
		positionIndex, ok := primitive.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], nil)
		if err != nil {
			return errors.Wrap(err, "positions")
		}
		var uvs [][2]float32
		if uvIndex, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIndex], nil); err != nil {
				return errors.Wrap(err, "texture coordinates")
			}
		}
		var normals [][3]float32
		if normalIndex, ok := primitive.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIndex], nil); err != nil {
				return errors.Wrap(err, "normals")
			}
		}
		var indices []uint32
		if primitive.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil); err != nil {
				return errors.Wrap(err, "indices")
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(data.VertexCount())
		for i, p := range positions {
			pos := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
			var uv mgl32.Vec2
			if i < len(uvs) {
				uv = uvs[i]
			}
			normal := mgl32.Vec3{0, 0, 1}
			if i < len(normals) {
				normal = normalMatrix.Mul3x1(normals[i]).Normalize()
			}
			data.appendVertex(pos, uv, normal)
		}
		for _, index := range indices {
			if int(index) >= len(positions) {
				return errors.Errorf("index %d out of %d vertices", index, len(positions))
			}
			data.Indices = append(data.Indices, base+index)
		}

		if *textureIndex < 0 && primitive.Material != nil {
			material := doc.Materials[*primitive.Material]
			if pbr := material.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
				*textureIndex = int(pbr.BaseColorTexture.Index)
			}
		}
	}
	return nil
}

func loadTextureImage(doc *gltf.Document, textureIndex uint32, dir string) (image.Image, error) {
	texture := doc.Textures[textureIndex]
	if texture.Source == nil {
		return nil, errors.New("texture has no source image")
	}
	imageSource := doc.Images[*texture.Source]
	var data []byte
	switch {
	case imageSource.BufferView != nil:
		bufferView := doc.BufferViews[*imageSource.BufferView]
		buffer := doc.Buffers[bufferView.Buffer]
		data = buffer.Data[bufferView.ByteOffset : bufferView.ByteOffset+bufferView.ByteLength]
	case imageSource.IsEmbeddedResource():
		var err error
		if data, err = imageSource.MarshalData(); err != nil {
			return nil, err
		}
	default:
		var err error
		if data, err = os.ReadFile(filepath.Join(dir, imageSource.URI)); err != nil {
			return nil, err
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// LoadTexture decodes a PNG or JPEG file into an RGBA texture.
func LoadTexture(filePath string) (*glhf.Texture, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "load texture")
	}
	defer file.Close()
	texture, err := NewTextureFromReader(file, false)
	if err != nil {
		return nil, errors.Wrapf(err, "load texture %s", filePath)
	}
	return texture, nil
}

// NewTextureFromReader creates a new texture from an io.Reader.
func NewTextureFromReader(r io.Reader, flipY bool) (*glhf.Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(img, flipY), nil
}

func NewTextureFromImage(img image.Image, flipY bool) *glhf.Texture {
	nrgba := ToNRGBA(img, flipY)
	return glhf.NewTexture(
		nrgba.Bounds().Dx(),
		nrgba.Bounds().Dy(),
		false,
		nrgba.Pix,
	)
}

// ToNRGBA copies img into a tightly packed NRGBA image anchored at (0,0),
// optionally flipped on the Y axis.
func ToNRGBA(img image.Image, flipY bool) *image.NRGBA {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	if flipY {
		stride := nrgba.Stride
		row := make([]uint8, stride)
		for y := 0; y < bounds.Dy()/2; y++ {
			top := nrgba.Pix[y*stride : (y+1)*stride]
			bottom := nrgba.Pix[(bounds.Dy()-y-1)*stride : (bounds.Dy()-y)*stride]
			copy(row, top)
			copy(top, bottom)
			copy(bottom, row)
		}
	}
	return nrgba
}
