package common

import (
	"errors"
	"fmt"
)

// ErrEmptyRegion is returned when the crop leaves no pixels to work with
var ErrEmptyRegion = errors.New("crop region is empty")

// LoadError reports a source image that could not be read or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load source image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError reports an icon that could not be written
type WriteError struct {
	Path string
	Size int
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %dx%d icon %s: %v", e.Size, e.Size, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
