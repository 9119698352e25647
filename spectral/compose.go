package spectral

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Composite holds the red, green and blue planes of an RGB image, indexed (row, col).
type Composite struct {
	R, G, B *mat.Dense
}

// Planes returns the channels in R, G, B order.
func (c Composite) Planes() []*mat.Dense {
	return []*mat.Dense{c.R, c.G, c.B}
}

// Dims returns the size of the channel planes.
func (c Composite) Dims() (rows, cols int) {
	if c.R == nil {
		return 0, 0
	}
	return c.R.Dims()
}

// At returns the three channel values of one pixel.
func (c Composite) At(row, col int) (r, g, b float64) {
	return c.R.At(row, col), c.G.At(row, col), c.B.At(row, col)
}

// Compose stacks the channel sums into a composite and scales them by 255/dWavelength, where
// dWavelength is the width of one dense grid step. Values are not clamped.
func Compose(r, g, b *mat.Dense, netSize int, minNM, maxNM float64) (Composite, error) {
	if netSize <= 0 {
		return Composite{}, fmt.Errorf("compose: net size %d: %w", netSize, ErrConfig)
	}
	if !(maxNM > minNM) {
		return Composite{}, fmt.Errorf("compose: range [%g, %g]: %w", minNM, maxNM, ErrConfig)
	}
	if r == nil || g == nil || b == nil {
		return Composite{}, fmt.Errorf("compose: missing channel: %w", ErrShape)
	}
	rows, cols := r.Dims()
	for _, ch := range []*mat.Dense{g, b} {
		if rr, cc := ch.Dims(); rr != rows || cc != cols {
			return Composite{}, gridError("compose", -1, ErrShape, fmt.Sprintf("%dx%d", rows, cols), fmt.Sprintf("%dx%d", rr, cc))
		}
	}

	dWavelength := (maxNM - minNM) / float64(netSize)
	scale := func(m *mat.Dense) *mat.Dense {
		var out mat.Dense
		out.Apply(func(_, _ int, v float64) float64 { return v * 255 / dWavelength }, m)
		return &out
	}
	return Composite{R: scale(r), G: scale(g), B: scale(b)}, nil
}

// Clamp returns a copy with every value limited to [lo, hi].
func (c Composite) Clamp(lo, hi float64) Composite {
	clamp := func(m *mat.Dense) *mat.Dense {
		var out mat.Dense
		out.Apply(func(_, _ int, v float64) float64 { return math.Max(lo, math.Min(hi, v)) }, m)
		return &out
	}
	return Composite{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// Range returns the smallest and largest value over all three channels.
func (c Composite) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, m := range c.Planes() {
		lo = math.Min(lo, mat.Min(m))
		hi = math.Max(hi, mat.Max(m))
	}
	return lo, hi
}

// Rescale maps the overall range of the composite linearly onto [0, hi]. The same factor is
// applied to every channel so hues are preserved. A flat composite maps to zero.
func (c Composite) Rescale(hi float64) Composite {
	mn, mx := c.Range()
	scope := mx - mn
	rescale := func(m *mat.Dense) *mat.Dense {
		var out mat.Dense
		out.Apply(func(_, _ int, v float64) float64 {
			if scope == 0 {
				return 0
			}
			return (v - mn) / scope * hi
		}, m)
		return &out
	}
	return Composite{R: rescale(c.R), G: rescale(c.G), B: rescale(c.B)}
}

// ClampPolicy decides how out-of-range composite values are brought into the output range.
type ClampPolicy int

const (
	// ClampNone leaves values as they are; the writer still truncates to the pixel range.
	ClampNone ClampPolicy = iota
	// ClampClip limits each value to [0, max].
	ClampClip
	// ClampRescale stretches the overall range of the composite onto [0, max].
	ClampRescale
)

func (p ClampPolicy) String() string {
	switch p {
	case ClampNone:
		return "none"
	case ClampClip:
		return "clip"
	case ClampRescale:
		return "rescale"
	}
	return fmt.Sprintf("ClampPolicy(%d)", int(p))
}

func ParseClampPolicy(s string) (ClampPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ClampNone, nil
	case "", "clip":
		return ClampClip, nil
	case "rescale":
		return ClampRescale, nil
	}
	return ClampNone, fmt.Errorf("unknown clamp policy %q: %w", s, ErrConfig)
}

func (p ClampPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *ClampPolicy) UnmarshalText(b []byte) error {
	v, err := ParseClampPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Fit applies the policy for an output whose largest pixel value is max.
func (c Composite) Fit(p ClampPolicy, max float64) Composite {
	switch p {
	case ClampClip:
		return c.Clamp(0, max)
	case ClampRescale:
		return c.Rescale(max)
	}
	return c
}

// ChannelStats summarises the values of one channel.
type ChannelStats struct {
	Name      string
	Mean, Std float64
	Min, Max  float64
}

// Stats summarises each channel of the composite.
func (c Composite) Stats() []ChannelStats {
	names := []string{"red", "green", "blue"}
	out := make([]ChannelStats, 0, 3)
	for i, m := range c.Planes() {
		data := mat.DenseCopyOf(m).RawMatrix().Data
		mean, std := stat.MeanStdDev(data, nil)
		out = append(out, ChannelStats{Name: names[i], Mean: mean, Std: std, Min: mat.Min(m), Max: mat.Max(m)})
	}
	return out
}
