package rawhdr

import (
	"errors"
	"fmt"
)

var(
	ErrShapeMismatch           = errors.New("captures do not share a shape")
	ErrUnsupportedSampleLayout = errors.New("unsupported sample layout")
	ErrAllSamplesExcluded      = errors.New("all samples excluded")
)

// ShapeMismatchError is returned before any blending starts, if the
// captures (or their exposure values) can't be lined up pixel for pixel.
type ShapeMismatchError struct {
	Capture int     // index of the offending capture, or -1 for the set as a whole
	Reason  string
}

func (e *ShapeMismatchError)Error() string {
	if e.Capture < 0 {
		return fmt.Sprintf("%v: %s", ErrShapeMismatch, e.Reason)
	}
	return fmt.Sprintf("%v: capture %d: %s", ErrShapeMismatch, e.Capture, e.Reason)
}

func (e *ShapeMismatchError)Unwrap() error { return ErrShapeMismatch }

// UnsupportedSampleLayoutError means the decoded pixel data was not an
// unsigned integer mosaic.
type UnsupportedSampleLayoutError struct {
	Filename string
	Layout   string
}

func (e *UnsupportedSampleLayoutError)Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%v: %s", ErrUnsupportedSampleLayout, e.Layout)
	}
	return fmt.Sprintf("%v: '%s' is %s", ErrUnsupportedSampleLayout, e.Filename, e.Layout)
}

func (e *UnsupportedSampleLayoutError)Unwrap() error { return ErrUnsupportedSampleLayout }

// AllSamplesExcludedError is only returned under PolicyError, when some
// pixel clipped in every capture.
type AllSamplesExcludedError struct {
	Pixel int
}

func (e *AllSamplesExcludedError)Error() string {
	return fmt.Sprintf("%v: pixel %d clipped in every capture", ErrAllSamplesExcluded, e.Pixel)
}

func (e *AllSamplesExcludedError)Unwrap() error { return ErrAllSamplesExcluded }
