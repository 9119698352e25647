package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWavelengthToRGBOutsideRangeIsBlack(t *testing.T) {
	for _, l := range []float64{-50, 0, 350, 399.999, 700, 700.001, 780, 1e6, math.Inf(1), math.Inf(-1), math.NaN()} {
		r, g, b := WavelengthToRGB(l)
		assert.Zero(t, r, "red at %v", l)
		assert.Zero(t, g, "green at %v", l)
		assert.Zero(t, b, "blue at %v", l)
	}
}

func TestWavelengthToRGBBranchStarts(t *testing.T) {
	// at t=0 every branch reduces to its constant term
	tests := []struct {
		l       float64
		r, g, b float64
	}{
		{400, 0, 0, 0},
		{410, 0.14, 0, 2.20*(10.0/75) - 1.50*(10.0/75)*(10.0/75)},
		{475, 0, 0.8, 0.7},
		{545, 0, 0.8 + 0.76*(70.0/115) - 0.80*(70.0/115)*(70.0/115), 0.7 - 70.0/85 + 0.30*(70.0/85)*(70.0/85)},
		{560, 1.98*(15.0/50) - (15.0/50)*(15.0/50), 0.8 + 0.76*(85.0/115) - 0.80*(85.0/115)*(85.0/115), 0},
		{595, 0.98, 0.84 - 0.84*(10.0/54), 0},
		{639, 0.98 + 0.06*(44.0/55) - 0.40*(44.0/55)*(44.0/55), 0, 0},
		{650, 0.65, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := WavelengthToRGB(tt.l)
		assert.InDelta(t, tt.r, r, 1e-12, "red at %v", tt.l)
		assert.InDelta(t, tt.g, g, 1e-12, "green at %v", tt.l)
		assert.InDelta(t, tt.b, b, 1e-12, "blue at %v", tt.l)
	}
}

func TestWavelengthToRGBBranchEnds(t *testing.T) {
	// the upper bound is excluded, so t=1 is checked on the segment itself
	for _, tt := range []struct {
		name   string
		pieces []piece
		want   []float64
	}{
		{"red", redPieces, []float64{0.33 - 0.20, 0.14 - 0.13, 1.98 - 1, 0.98 + 0.06 - 0.40, 0.65 - 0.84 + 0.20}},
		{"green", greenPieces, []float64{0.80, 0.8 + 0.76 - 0.80, 0}},
		{"blue", bluePieces, []float64{2.20 - 1.50, 0.7 - 1 + 0.30}},
	} {
		for i, p := range tt.pieces {
			assert.InDelta(t, tt.want[i], p.eval(p.hi), 1e-12, "%s segment [%g,%g)", tt.name, p.lo, p.hi)
			assert.False(t, p.contains(p.hi))
			assert.True(t, p.contains(p.lo))
		}
	}
}

func TestWavelengthToRGBOverlapTakesLaterSegment(t *testing.T) {
	for _, l := range []float64{585, 587.5, 589.999} {
		_, g, _ := WavelengthToRGB(l)
		tt := (l - 585) / (639 - 585)
		assert.InDelta(t, 0.84-0.84*tt, g, 1e-12, "green at %v", l)
	}
	// just below the overlap the earlier segment still applies
	_, g, _ := WavelengthToRGB(584)
	tt := (584.0 - 475) / (590 - 475)
	assert.InDelta(t, 0.8+0.76*tt-0.80*tt*tt, g, 1e-12)
}

func TestWavelengthToRGBIsNonNegative(t *testing.T) {
	for l := 400.0; l < 700; l += 0.25 {
		r, g, b := WavelengthToRGB(l)
		assert.GreaterOrEqual(t, r, 0.0, "red at %v", l)
		assert.GreaterOrEqual(t, g, 0.0, "green at %v", l)
		assert.GreaterOrEqual(t, b, -1e-12, "blue at %v", l)
	}
}
