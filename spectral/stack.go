package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Stack is an ordered set of same-sized band planes indexed (band, row, col).
type Stack []*mat.Dense

// NewUniformStack creates n bands of rows x cols filled with v.
func NewUniformStack(n, rows, cols int, v float64) Stack {
	s := make(Stack, n)
	for i := range s {
		data := make([]float64, rows*cols)
		for j := range data {
			data[j] = v
		}
		s[i] = mat.NewDense(rows, cols, data)
	}
	return s
}

// Dims returns the number of bands and the size of each band plane.
func (s Stack) Dims() (bands, rows, cols int) {
	if len(s) == 0 || s[0] == nil {
		return len(s), 0, 0
	}
	rows, cols = s[0].Dims()
	return len(s), rows, cols
}

// Validate checks that every band is present and shaped like the first one.
func (s Stack) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty stack: %w", ErrShape)
	}
	_, rows, cols := s.Dims()
	for i, band := range s {
		if band == nil {
			return gridError("stack", i, ErrShape, fmt.Sprintf("%dx%d band", rows, cols), "nil band")
		}
		r, c := band.Dims()
		if r != rows || c != cols {
			return gridError("stack", i, ErrShape, fmt.Sprintf("%dx%d", rows, cols), fmt.Sprintf("%dx%d", r, c))
		}
	}
	return nil
}

// Bytes estimates the memory held by the band planes.
func (s Stack) Bytes() int64 {
	bands, rows, cols := s.Dims()
	return StackBytes(bands, rows, cols)
}

// StackBytes estimates the memory of a float64 stack of the given shape.
func StackBytes(bands, rows, cols int) int64 {
	return int64(bands) * int64(rows) * int64(cols) * 8
}
