// Package spectral turns a stack of per-wavelength grayscale frames into an RGB composite.
//
// The pipeline is
//
//	SampleCurves  analytic colour-matching curves on a dense wavelength grid
//	Resample      linear interpolation of the measured bands onto that grid
//	Integrate     weighted sum of the dense bands against each curve
//	Compose       the three channel sums scaled into an RGB composite
//
// Band planes are gonum matrices; every stage returns new matrices and leaves its inputs alone.
package spectral

// piece is one quadratic segment of a channel response on the half-open interval [lo, hi).
// With t = (l-lo)/(hi-lo) the value is c0 + c1*t + c2*t*t.
type piece struct {
	lo, hi     float64
	c0, c1, c2 float64
}

// segments are listed in precedence order: when intervals overlap, the later segment wins.
var (
	redPieces = []piece{
		{400, 410, 0, 0.33, -0.20},
		{410, 475, 0.14, 0, -0.13},
		{545, 595, 0, 1.98, -1},
		{595, 650, 0.98, 0.06, -0.40},
		{650, 700, 0.65, -0.84, 0.20},
	}
	greenPieces = []piece{
		{415, 475, 0, 0, 0.80},
		{475, 590, 0.8, 0.76, -0.80},
		{585, 639, 0.84, -0.84, 0},
	}
	bluePieces = []piece{
		{400, 475, 0, 2.20, -1.50},
		{475, 560, 0.7, -1, 0.30},
	}
)

func (p piece) contains(l float64) bool {
	return l >= p.lo && l < p.hi
}

func (p piece) eval(l float64) float64 {
	t := (l - p.lo) / (p.hi - p.lo)
	return p.c0 + p.c1*t + p.c2*t*t
}

func evalPieces(pieces []piece, l float64) float64 {
	v := 0.0
	for _, p := range pieces {
		if p.contains(l) {
			v = p.eval(l)
		}
	}
	return v
}

// WavelengthToRGB maps a wavelength in nanometres to its analytic red, green and blue responses.
// Values are not limited to [0,1]. Outside [400,700) all three are zero, as is NaN input.
func WavelengthToRGB(l float64) (r, g, b float64) {
	return evalPieces(redPieces, l), evalPieces(greenPieces, l), evalPieces(bluePieces, l)
}
