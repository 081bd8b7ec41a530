package util

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// CheckForGLError logs and returns the pending OpenGL error, if any.
func CheckForGLError(context string) error {
	errorCodeOfGL := gl.GetError()

	if errorCodeOfGL != gl.NO_ERROR {
		err := errors.Errorf("%s: GL error 0x%04X", context, errorCodeOfGL)
		LogGlError(err.Error())
		return err
	}
	return nil
}
