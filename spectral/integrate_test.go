package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIntegrateZeroStack(t *testing.T) {
	dense := NewUniformStack(6, 4, 5, 0)
	for _, c := range []Curve{
		{1, 2, 3, 4, 5, 6},
		{-1, 0.5, 1e9, 0, 3, 7},
		{0, 0, 0, 0, 0, 0},
	} {
		for _, p := range []Policy{ExcludeLast, IncludeLast} {
			sum, err := Integrate(dense, c, p)
			require.NoError(t, err)
			assert.True(t, mat.Equal(sum, mat.NewDense(4, 5, nil)))
		}
	}
}

func TestIntegrateWeightsBands(t *testing.T) {
	dense := Stack{uniform(2, 3, 1), uniform(2, 3, 2), uniform(2, 3, 3)}
	c := Curve{0.5, 0.25, 100}

	sum, err := Integrate(dense, c, ExcludeLast)
	require.NoError(t, err)
	requireUniform(t, sum, 1*0.5+2*0.25, 1e-12)

	sum, err = Integrate(dense, c, IncludeLast)
	require.NoError(t, err)
	requireUniform(t, sum, 1*0.5+2*0.25+3*100, 1e-12)
}

func TestIntegratePerPixel(t *testing.T) {
	dense := Stack{ramp(2, 2, 0), ramp(2, 2, 1), ramp(2, 2, 2)}
	sum, err := Integrate(dense, Curve{1, 2, 4}, ExcludeLast)
	require.NoError(t, err)
	// pixel p holds p, p+1, p+2 across the bands
	want := mat.NewDense(2, 2, []float64{2, 5, 8, 11})
	requireDenseNear(t, sum, want, 1e-12)
}

func TestIntegrateRejectsMismatch(t *testing.T) {
	dense := NewUniformStack(3, 2, 2, 1)
	_, err := Integrate(dense, Curve{1, 2}, ExcludeLast)
	assert.ErrorIs(t, err, ErrGridMismatch)

	_, err = Integrate(nil, Curve{}, ExcludeLast)
	assert.ErrorIs(t, err, ErrShape)

	_, err = IntegrateRGB(dense, Curve{1, 1, 1}, Curve{1}, Curve{1, 1, 1}, ExcludeLast)
	assert.ErrorIs(t, err, ErrGridMismatch)
	assert.Contains(t, err.Error(), "green")
}

func TestIntegrateRGB(t *testing.T) {
	dense := NewUniformStack(3, 2, 2, 2)
	out, err := IntegrateRGB(dense, Curve{1, 0, 0}, Curve{0, 1, 0}, Curve{0.5, 0.5, 9}, ExcludeLast)
	require.NoError(t, err)
	requireUniform(t, out.R, 2, 1e-12)
	requireUniform(t, out.G, 2, 1e-12)
	requireUniform(t, out.B, 2, 1e-12)
}

func TestPolicyText(t *testing.T) {
	for _, p := range []Policy{ExcludeLast, IncludeLast} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var got Policy
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ExcludeLast, p)

	_, err = ParsePolicy("trapezoid")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, "Policy(7)", Policy(7).String())
}
