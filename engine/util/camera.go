package util

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the up axis of the sandbox scene.
var WorldUp = mgl32.Vec3{0, 0, 1}

// FlyCamera is a free camera: a position and an orientation quaternion that
// maps camera space (looking down -Z) to world space.
type FlyCamera struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	fov         float32
	near, far   float32
	aspect      float32
}

func NewFlyCamera(pos mgl32.Vec3, orientation mgl32.Quat, windowWidth, windowHeight int) *FlyCamera {
	c := &FlyCamera{
		Position:    pos,
		Orientation: orientation.Normalize(),
		fov:         math.Pi / 3,
		near:        0.1,
		far:         100,
	}
	c.SetScreenSize(windowWidth, windowHeight)
	return c
}

// NewDefaultFlyCamera places the camera on the +X axis looking back at the
// origin with +Z up.
func NewDefaultFlyCamera(windowWidth, windowHeight int) *FlyCamera {
	orientation := mgl32.QuatRotate(2*math.Pi/3, mgl32.Vec3{1, 1, 1}.Normalize())
	return NewFlyCamera(mgl32.Vec3{2, 0, 0}, orientation, windowWidth, windowHeight)
}

func (c *FlyCamera) SetScreenSize(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.aspect = float32(width) / float32(height)
}

func (c *FlyCamera) SetFOV(fov float32) {
	c.fov = fov
}

func (c *FlyCamera) GetViewMatrix() mgl32.Mat4 {
	// inverse of translate * rotate
	return c.Orientation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

func (c *FlyCamera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *FlyCamera) GetProjectionViewMatrix() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

// Forward is the world direction the camera looks at.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Rotate turns the camera by angle radians around a world axis.
func (c *FlyCamera) Rotate(axis mgl32.Vec3, angle float32) {
	c.Orientation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(c.Orientation).Normalize()
}

// FlyController moves a FlyCamera with WASD, Q/E for up and down, and the
// mouse for looking around. It only acts while active.
type FlyController struct {
	Speed       float32
	Sensitivity float32
	active      bool
	lastCursor  mgl32.Vec2
	hasCursor   bool
}

func NewFlyController(speed float32) *FlyController {
	return &FlyController{
		Speed:       speed,
		Sensitivity: 0.005,
	}
}

func (f *FlyController) IsActive() bool {
	return f.active
}

// Activate starts steering. The first cursor sample after activation only
// records the position.
func (f *FlyController) Activate() {
	f.active = true
	f.hasCursor = false
}

func (f *FlyController) Deactivate() {
	f.active = false
	f.hasCursor = false
}

// Update applies one frame of input. isPressed reports key state, cursor is
// the current cursor position in window pixels.
func (f *FlyController) Update(cam *FlyCamera, elapsed float64, isPressed func(glfw.Key) bool, cursor mgl32.Vec2) {
	if !f.active {
		return
	}
	up := WorldUp
	forward := cam.Forward()
	right := cam.Right()

	var dir mgl32.Vec3
	if isPressed(glfw.KeyW) {
		dir = dir.Add(forward)
	}
	if isPressed(glfw.KeyS) {
		dir = dir.Sub(forward)
	}
	if isPressed(glfw.KeyA) {
		dir = dir.Sub(right)
	}
	if isPressed(glfw.KeyD) {
		dir = dir.Add(right)
	}
	if isPressed(glfw.KeyQ) {
		dir = dir.Add(up)
	}
	if isPressed(glfw.KeyE) {
		dir = dir.Sub(up)
	}
	cam.Position = cam.Position.Add(dir.Mul(f.Speed * float32(elapsed)))

	if f.hasCursor {
		offset := cursor.Sub(f.lastCursor)
		cam.Rotate(right, -f.Sensitivity*offset.Y())
		cam.Rotate(up, -f.Sensitivity*offset.X())
	}
	f.lastCursor = cursor
	f.hasCursor = true
}
