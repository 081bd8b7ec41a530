package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// GlFloat is the element type of vertex data.
type GlFloat float32

// VertexSlice points to a portion of (or possibly whole) vertex array. It is used as a pointer,
// contrary to Go's builtin slices, so that Begin/End-ing a VertexSlice stays unambiguous.
//
// Note that you need to Begin a VertexSlice before getting or updating it's elements or drawing it.
// After you're done with it, you need to End it.
type VertexSlice[V any] struct {
	va                   *vertexArray[V]
	startIndex, endIndex int
}

// MakeVertexSlice allocates a new vertex array with specified capacity and returns a VertexSlice
// that points to it's first len elements.
//
// Note, that a vertex array is specialized for a specific shader and can't be used with another
// shader.
func MakeVertexSlice(shader *Shader, len, cap int) *VertexSlice[GlFloat] {
	return MakeIndexedVertexSlice(shader, len, cap, nil)
}

// MakeIndexedVertexSlice is MakeVertexSlice with an element buffer. Drawing an indexed slice
// draws all of its indices as triangles.
func MakeIndexedVertexSlice(shader *Shader, len, cap int, indices []uint32) *VertexSlice[GlFloat] {
	if len > cap {
		panic("failed to make vertex slice: len > cap")
	}
	return &VertexSlice[GlFloat]{
		va:         newIndexedVertexArray[GlFloat](shader, cap, indices),
		startIndex: 0,
		endIndex:   len,
	}
}

// VertexFormat returns the format of vertex attributes inside the underlying vertex array of this
// VertexSlice.
func (vs *VertexSlice[V]) VertexFormat() AttrFormat {
	return vs.va.format
}

// Stride returns the number of float32 elements occupied by one vertex.
func (vs *VertexSlice[V]) Stride() int {
	return vs.va.stride / SizeOfFloat32
}

// Len returns the length of the VertexSlice (number of vertices).
func (vs *VertexSlice[V]) Len() int {
	return vs.endIndex - vs.startIndex
}

// Cap returns the capacity of an underlying vertex array.
func (vs *VertexSlice[V]) Cap() int {
	return vs.va.cap - vs.startIndex
}

// IndexCount returns the number of indices drawn, or zero for a non-indexed slice.
func (vs *VertexSlice[V]) IndexCount() int {
	return len(vs.va.indices)
}

// Slice returns a sub-slice of this VertexSlice covering the range [i, j) (relative to this
// VertexSlice).
//
// Note, that the returned VertexSlice shares an underlying vertex array with the original
// VertexSlice. Modifying the contents of one modifies corresponding contents of the other.
func (vs *VertexSlice[V]) Slice(i, j int) *VertexSlice[V] {
	if i < 0 || j < i || j > vs.va.cap {
		panic("failed to slice vertex slice: index out of range")
	}
	return &VertexSlice[V]{
		va:         vs.va,
		startIndex: vs.startIndex + i,
		endIndex:   vs.startIndex + j,
	}
}

// SetVertexData sets the contents of the VertexSlice.
//
// The data is a slice of float32's, where each vertex attribute occupies a certain number of
// elements. Namely, Float occupies 1, Vec2 occupies 2, Vec3 occupies 3 and Vec4 occupies 4. The
// attribues in the data slice must be in the same order as in the vertex format of this Vertex
// Slice.
func (vs *VertexSlice[V]) SetVertexData(data []V) error {
	if len(data)/vs.Stride() != vs.Len() {
		return errors.Errorf("set vertex data: %d vertices for a slice of %d", len(data)/vs.Stride(), vs.Len())
	}
	vs.va.setVertexData(vs.startIndex, vs.endIndex, data)
	return checkError("set vertex data")
}

// SetIndices replaces the element buffer of an indexed VertexSlice. The VertexSlice must be bound.
func (vs *VertexSlice[V]) SetIndices(indices []uint32) error {
	if vs.va.ibo.obj == 0 {
		return errors.New("set indices: vertex slice is not indexed")
	}
	vs.va.indices = indices
	if len(indices) == 0 {
		return nil
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	return checkError("set indices")
}

// VertexData returns the contents of the VertexSlice.
//
// The data is in the same format as with SetVertexData.
func (vs *VertexSlice[V]) VertexData() []V {
	return vs.va.vertexData(vs.startIndex, vs.endIndex)
}

// Draw draws the content of the VertexSlice.
func (vs *VertexSlice[V]) Draw() {
	vs.va.draw(vs.startIndex, vs.endIndex)
}

// Begin binds the underlying vertex array. Calling this method is necessary before using the VertexSlice.
func (vs *VertexSlice[V]) Begin() {
	vs.va.begin()
}

// End unbinds the underlying vertex array. Call this method when you're done with VertexSlice.
func (vs *VertexSlice[V]) End() {
	vs.va.end()
}

func (vs *VertexSlice[V]) SetPrimitiveType(glPrimitiveType uint32) {
	vs.va.primitiveType = glPrimitiveType
}

type vertexArray[V any] struct {
	vao, vbo      binder
	cap           int
	format        AttrFormat
	stride        int
	offset        []int
	shader        *Shader
	indices       []uint32
	ibo           binder
	primitiveType uint32
}

const vertexArrayMinCap = 4

func newIndexedVertexArray[V any](shader *Shader, cap int, indices []uint32) *vertexArray[V] {
	if cap < vertexArrayMinCap {
		cap = vertexArrayMinCap
	}

	va := &vertexArray[V]{
		primitiveType: gl.TRIANGLES,
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vbo: binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		},
		ibo: binder{
			restoreLoc: gl.ELEMENT_ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, obj)
			},
		},
		indices: indices,
		cap:     cap,
		format:  shader.VertexFormat(),
		stride:  shader.VertexFormat().Size(),
		offset:  make([]int, len(shader.VertexFormat())),
		shader:  shader,
	}

	offset := 0
	for i, attr := range va.format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			panic(errors.New("failed to create vertex array: invalid attribute type"))
		}
		va.offset[i] = offset
		offset += attr.Type.Size()
	}

	gl.GenVertexArrays(1, &va.vao.obj)

	va.vao.bind()

	gl.GenBuffers(1, &va.vbo.obj)
	defer va.vbo.bind().restore()

	emptyData := make([]byte, cap*va.stride)
	gl.BufferData(gl.ARRAY_BUFFER, len(emptyData), gl.Ptr(emptyData), gl.STATIC_DRAW)

	va.setAttributesForArray()

	// the element buffer binding is part of the vertex array state
	if indices != nil {
		gl.GenBuffers(1, &va.ibo.obj)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ibo.obj)
		if len(indices) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		}
	}

	va.vao.restore()

	runtime.SetFinalizer(va, (*vertexArray[V]).delete)

	return va
}

func (va *vertexArray[V]) setAttributesForArray() {
	for i, attr := range va.format {
		loc := gl.GetAttribLocation(va.shader.program.obj, gl.Str(attr.Name+"\x00"))
		if loc < 0 {
			// optimized out by the shader compiler
			continue
		}
		gl.VertexAttribPointerWithOffset(
			uint32(loc),
			int32(attr.Type.Components()),
			gl.FLOAT,
			false,
			int32(va.stride),
			uintptr(va.offset[i]),
		)
		gl.EnableVertexAttribArray(uint32(loc))
	}
}

func (va *vertexArray[V]) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va.vao.obj)
		gl.DeleteBuffers(1, &va.vbo.obj)
		if va.ibo.obj != 0 {
			gl.DeleteBuffers(1, &va.ibo.obj)
		}
	})
}

func (va *vertexArray[V]) begin() {
	va.vao.bind()
	va.vbo.bind()
}

func (va *vertexArray[V]) end() {
	va.vbo.restore()
	va.vao.restore()
}

func (va *vertexArray[V]) draw(startIndex, endIndex int) {
	if va.ibo.obj != 0 {
		if len(va.indices) > 0 {
			gl.DrawElementsWithOffset(va.primitiveType, int32(len(va.indices)), gl.UNSIGNED_INT, 0)
		}
		return
	}
	gl.DrawArrays(va.primitiveType, int32(startIndex), int32(endIndex-startIndex))
}

func (va *vertexArray[V]) setVertexData(i, j int, data []V) {
	if j-i == 0 {
		// avoid setting 0 bytes of buffer data
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, i*va.stride, len(data)*SizeOfFloat32, gl.Ptr(data))
}

func (va *vertexArray[V]) vertexData(i, j int) []V {
	if j-i == 0 {
		// avoid getting 0 bytes of buffer data
		return nil
	}
	data := make([]V, (j-i)*va.stride/SizeOfFloat32)
	gl.GetBufferSubData(gl.ARRAY_BUFFER, i*va.stride, len(data)*SizeOfFloat32, gl.Ptr(data))
	return data
}
