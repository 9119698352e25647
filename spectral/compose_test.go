package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestComposeScalesByGridStep(t *testing.T) {
	r, g, b := uniform(3, 2, 1), uniform(3, 2, 0.5), ramp(3, 2, 0)
	c, err := Compose(r, g, b, 310, 400, 700)
	require.NoError(t, err)

	k := 255 / (300.0 / 310)
	requireUniform(t, c.R, k, 1e-9)
	requireUniform(t, c.G, 0.5*k, 1e-9)
	var want mat.Dense
	want.Scale(k, b)
	requireDenseNear(t, c.B, &want, 1e-9)

	rows, cols := c.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	// inputs are left alone
	requireUniform(t, r, 1, 0)
}

func TestComposeDoesNotClamp(t *testing.T) {
	c, err := Compose(uniform(1, 1, 10), uniform(1, 1, -1), uniform(1, 1, 0), 3, 400, 700)
	require.NoError(t, err)
	red, green, blue := c.At(0, 0)
	assert.InDelta(t, 25.5, red, 1e-12)
	assert.InDelta(t, -2.55, green, 1e-12)
	assert.Zero(t, blue)
}

func TestComposeRejects(t *testing.T) {
	one := uniform(2, 2, 1)
	_, err := Compose(one, one, one, 0, 400, 700)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = Compose(one, one, one, 10, 700, 400)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = Compose(one, uniform(2, 3, 1), one, 10, 400, 700)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Compose(one, nil, one, 10, 400, 700)
	assert.ErrorIs(t, err, ErrShape)
}

func TestCompositeClampAndRescale(t *testing.T) {
	c := Composite{
		R: mat.NewDense(1, 3, []float64{-10, 100, 300}),
		G: mat.NewDense(1, 3, []float64{0, 255, 256}),
		B: mat.NewDense(1, 3, []float64{50, 50, 50}),
	}
	lo, hi := c.Range()
	assert.Equal(t, -10.0, lo)
	assert.Equal(t, 300.0, hi)

	clipped := c.Clamp(0, 255)
	assert.Equal(t, []float64{0, 100, 255}, clipped.R.RawRowView(0))
	assert.Equal(t, []float64{0, 255, 255}, clipped.G.RawRowView(0))
	assert.Equal(t, -10.0, c.R.At(0, 0), "clamp must copy")

	scaled := c.Rescale(255)
	lo, hi = scaled.Range()
	assert.InDelta(t, 0, lo, 1e-12)
	assert.InDelta(t, 255, hi, 1e-12)
	// one factor for all channels keeps the blue plane flat
	assert.InDelta(t, 60.0/310*255, scaled.B.At(0, 1), 1e-9)

	flat := Composite{R: uniform(1, 2, 7), G: uniform(1, 2, 7), B: uniform(1, 2, 7)}.Rescale(255)
	requireUniform(t, flat.G, 0, 0)

	assert.Equal(t, c, c.Fit(ClampNone, 255))
	assert.Equal(t, clipped, c.Fit(ClampClip, 255))
	assert.Equal(t, scaled, c.Fit(ClampRescale, 255))
}

func TestParseClampPolicy(t *testing.T) {
	for s, want := range map[string]ClampPolicy{"none": ClampNone, "clip": ClampClip, "": ClampClip, " Rescale ": ClampRescale} {
		got, err := ParseClampPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, s)
	}
	_, err := ParseClampPolicy("wrap")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestCompositeStats(t *testing.T) {
	c := Composite{R: uniform(2, 2, 3), G: mat.NewDense(2, 2, []float64{0, 2, 0, 2}), B: uniform(2, 2, 0)}
	stats := c.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, "red", stats[0].Name)
	assert.InDelta(t, 3, stats[0].Mean, 1e-12)
	assert.InDelta(t, 0, stats[0].Std, 1e-12)
	assert.InDelta(t, 1, stats[1].Mean, 1e-12)
	assert.Equal(t, 2.0, stats[1].Max)
	assert.Equal(t, 0.0, stats[1].Min)
}
