package load

import (
	"errors"
	"fmt"
)

// Sentinel errors for model loading.
var (
	// ErrUnsupportedFormat indicates a model file with an unknown extension.
	ErrUnsupportedFormat = errors.New("umlgql: unsupported model format")
	// ErrInvalidModel indicates a model file that could not be decoded.
	ErrInvalidModel = errors.New("umlgql: invalid model")
)

// Error reports a failure to load a model file.
type Error struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("umlgql: load model: %v", e.Err)
	}
	return fmt.Sprintf("umlgql: load model %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is a load Error.
func IsError(err error) bool {
	var loadErr *Error
	return errors.As(err, &loadErr)
}
