package spectral

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Policy selects which grid samples take part in a discrete integral.
type Policy int

const (
	// ExcludeLast drops the final sample from both the integral and the curve normalisation.
	// It is the default.
	ExcludeLast Policy = iota
	// IncludeLast sums over every sample.
	IncludeLast
)

func (p Policy) String() string {
	switch p {
	case ExcludeLast:
		return "exclude-last"
	case IncludeLast:
		return "include-last"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy reads the names produced by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclude-last":
		return ExcludeLast, nil
	case "include-last":
		return IncludeLast, nil
	}
	return ExcludeLast, fmt.Errorf("unknown integration policy %q: %w", s, ErrConfig)
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// span is the number of leading samples of an n-point grid the policy integrates over.
func (p Policy) span(n int) int {
	if p == IncludeLast {
		return n
	}
	return n - 1
}

// Integrate returns, for every pixel, the sum over bands of dense[i]*c[i] for the samples
// selected by the policy.
func Integrate(dense Stack, c Curve, p Policy) (*mat.Dense, error) {
	const op = "integrate"
	if err := dense.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(dense) != len(c) {
		return nil, gridError(op, -1, ErrGridMismatch, fmt.Sprintf("%d curve samples", len(dense)), fmt.Sprintf("%d", len(c)))
	}
	_, rows, cols := dense.Dims()
	sum := mat.NewDense(rows, cols, nil)
	var term mat.Dense
	for i := 0; i < p.span(len(dense)); i++ {
		if c[i] == 0 {
			continue
		}
		term.Scale(c[i], dense[i])
		sum.Add(sum, &term)
	}
	return sum, nil
}

// IntegrateRGB integrates the dense stack against all three channel curves.
func IntegrateRGB(dense Stack, r, g, b Curve, p Policy) (Composite, error) {
	var out Composite
	var err error
	if out.R, err = Integrate(dense, r, p); err != nil {
		return Composite{}, fmt.Errorf("red: %w", err)
	}
	if out.G, err = Integrate(dense, g, p); err != nil {
		return Composite{}, fmt.Errorf("green: %w", err)
	}
	if out.B, err = Integrate(dense, b, p); err != nil {
		return Composite{}, fmt.Errorf("blue: %w", err)
	}
	return out, nil
}
