package glyph

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/fixed"
)

// fractionBits is the number of fractional bits in a 26.6 value.
const fractionBits = 6

// CeilToInt rounds a 26.6 measurement up to the next whole pixel.
// Packing slots are sized with it so a glyph bitmap never exceeds its region.
func CeilToInt(x fixed.Int26_6) int {
	res := int(x >> fractionBits)
	if x&(1<<fractionBits-1) != 0 {
		res++
	}
	return res
}

// ToFloat converts a 26.6 value to pixels, keeping precision fractional bits.
// The remaining bits are truncated, not rounded: with precision 0 the result
// is biased towards negative infinity by up to one pixel.
func ToFloat(x fixed.Int26_6, precision uint) float32 {
	if precision > fractionBits {
		precision = fractionBits
	}
	return float32(x>>(fractionBits-precision)) / float32(int32(1)<<precision)
}

// PointToVec converts a 26.6 point with ToFloat.
func PointToVec(p fixed.Point26_6, precision uint) mgl32.Vec2 {
	return mgl32.Vec2{ToFloat(p.X, precision), ToFloat(p.Y, precision)}
}
