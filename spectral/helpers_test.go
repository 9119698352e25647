package spectral

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// requireDenseNear fails t if the matrices differ in shape or any element differs by more than eps.
func requireDenseNear(t *testing.T, got, want mat.Matrix, eps float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			if d := math.Abs(got.At(i, j) - want.At(i, j)); d > eps {
				t.Fatalf("(%d,%d): got %v, want %v (diff %v > eps %v)", i, j, got.At(i, j), want.At(i, j), d, eps)
			}
		}
	}
}

// requireUniform fails t unless every element of m is within eps of v.
func requireUniform(t *testing.T, m mat.Matrix, v, eps float64) {
	t.Helper()
	r, c := m.Dims()
	requireDenseNear(t, m, uniform(r, c, v), eps)
}

func uniform(rows, cols int, v float64) *mat.Dense {
	return NewUniformStack(1, rows, cols, v)[0]
}

// ramp fills a rows x cols plane with offset + row*cols + col.
func ramp(rows, cols int, offset float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, offset+float64(i*cols+j))
		}
	}
	return m
}

func cloneStack(s Stack) Stack {
	out := make(Stack, len(s))
	for i, m := range s {
		out[i] = mat.DenseCopyOf(m)
	}
	return out
}
