package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Curve is a response weight per sample of a wavelength grid.
type Curve []float64

// Sum adds the weights that take part in an integral under the given policy.
func (c Curve) Sum(p Policy) float64 {
	n := p.span(len(c))
	if n <= 0 {
		return 0
	}
	return floats.Sum(c[:n])
}

// Peak returns the index and value of the largest weight, or -1 for an empty curve.
func (c Curve) Peak() (int, float64) {
	if len(c) == 0 {
		return -1, 0
	}
	i := floats.MaxIdx(c)
	return i, c[i]
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("linspace of %d points: %w", n, ErrGridTooShort)
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

// RawCurves evaluates WavelengthToRGB at every wavelength without normalising.
func RawCurves(wavelengths []float64) (r, g, b Curve) {
	r = make(Curve, len(wavelengths))
	g = make(Curve, len(wavelengths))
	b = make(Curve, len(wavelengths))
	for i, l := range wavelengths {
		r[i], g[i], b[i] = WavelengthToRGB(l)
	}
	return r, g, b
}

// SampleCurves evaluates the response model over the grid and normalises each channel so the
// weights before the last sample add up to one.
func SampleCurves(wavelengths []float64) (r, g, b Curve, err error) {
	return SampleCurvesWith(wavelengths, ExcludeLast)
}

// SampleCurvesWith is SampleCurves with the normalising sum taken under policy p, so that
// Integrate with the same policy sees unit-weight curves.
func SampleCurvesWith(wavelengths []float64, p Policy) (r, g, b Curve, err error) {
	if len(wavelengths) < 2 {
		return nil, nil, nil, fmt.Errorf("sample curves: %w", ErrGridTooShort)
	}
	r, g, b = RawCurves(wavelengths)
	for _, ch := range []struct {
		name  string
		curve Curve
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if err := normalize(ch.curve, p); err != nil {
			return nil, nil, nil, fmt.Errorf("sample curves: %s channel: %w", ch.name, err)
		}
	}
	return r, g, b, nil
}

// normalize divides c in place by its policy sum.
func normalize(c Curve, p Policy) error {
	sum := c.Sum(p)
	if sum == 0 {
		return ErrZeroResponse
	}
	for i := range c {
		c[i] /= sum
	}
	return nil
}
