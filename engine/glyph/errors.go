package glyph

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrGlyphNotFound is returned when the face has no renderable glyph for a
	// code point. Callers treat the code point as unmapped.
	ErrGlyphNotFound = errors.New("glyph: glyph not found")

	// ErrNoKerningData is returned when there is no kerning pair for two code
	// points. Callers treat it as a zero adjustment.
	ErrNoKerningData = errors.New("glyph: no kerning data")

	// ErrRegionOverflow marks a rasterizer that rendered a bitmap larger than
	// the region reserved for it during the measure pass.
	ErrRegionOverflow = errors.New("glyph: rendered bitmap exceeds reserved region")

	// ErrPageOutOfRange is returned for page numbers outside the Basic
	// Multilingual Plane.
	ErrPageOutOfRange = errors.New("glyph: page outside the basic multilingual plane")
)

// RegionOverflowError describes a measure/render mismatch. The page load that
// hit it is aborted and nothing is cached. Cause is set when a glyph that
// measured fine failed to render at all; Width and Rows are zero then.
type RegionOverflowError struct {
	CodePoint rune
	Reserved  image.Rectangle
	Width     int
	Rows      int
	Cause     error
}

func (e *RegionOverflowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("glyph: U+%04X measured into a %dx%d region but failed to render: %v",
			e.CodePoint, e.Reserved.Dx(), e.Reserved.Dy(), e.Cause)
	}
	return fmt.Sprintf("glyph: U+%04X rendered %dx%d into a %dx%d region",
		e.CodePoint, e.Width, e.Rows, e.Reserved.Dx(), e.Reserved.Dy())
}

// Is reports whether target is ErrRegionOverflow.
func (e *RegionOverflowError) Is(target error) bool {
	return target == ErrRegionOverflow
}
