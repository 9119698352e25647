package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrGridTooShort is returned when a wavelength grid has fewer than two points.
	ErrGridTooShort = errors.New("wavelength grid needs at least two points")
	// ErrZeroResponse is returned when a response curve cannot be normalised because
	// its summed weight is zero.
	ErrZeroResponse = errors.New("response curve sums to zero")
	ErrGridMismatch = errors.New("grid and stack lengths do not match")
	ErrGridBounds   = errors.New("dense grid lies outside the coarse grid")
	ErrGridOrder    = errors.New("grid is not strictly increasing")
	ErrShape        = errors.New("grids have different dimensions")
	ErrConfig       = errors.New("invalid configuration")
)

// GridError describes a failed precondition on a wavelength grid or a band stack.
//
//	Op     the operation that rejected its input (resample, integrate, ...)
//	Index  the offending position, or -1 when the error is not positional
//	Want   what was expected at that position
//	Got    what was found
type GridError struct {
	Op    string
	Index int
	Want  string
	Got   string
	Err   error
}

func (e *GridError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v: want %s, got %s", e.Op, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %v at index %d: want %s, got %s", e.Op, e.Err, e.Index, e.Want, e.Got)
}

func (e *GridError) Unwrap() error {
	return e.Err
}

func gridError(op string, index int, err error, want, got string) error {
	return &GridError{Op: op, Index: index, Want: want, Got: got, Err: err}
}
