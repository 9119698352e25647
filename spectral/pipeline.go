package spectral

import (
	"fmt"
	"image"
	"time"
)

// Loader reads count frames of rows x cols from dir into a coarse stack, band i being the i-th
// frame in wavelength order.
type Loader interface {
	LoadStack(dir string, count, rows, cols int) (Stack, error)
}

// Writer stores a composite, whose values are in 8-bit pixel units, at the given bit depth.
type Writer interface {
	WriteComposite(path string, c Composite, depth int) error
	WriteImage(path string, im image.Image) error
}

// CurveSet is the normalised response of each channel on a wavelength grid.
type CurveSet struct {
	Wavelengths []float64
	R, G, B     Curve
}

// NewCurveSet samples the response curves on n evenly spaced wavelengths from lo to hi.
func NewCurveSet(lo, hi float64, n int, p Policy) (CurveSet, error) {
	grid, err := Linspace(lo, hi, n)
	if err != nil {
		return CurveSet{}, err
	}
	r, g, b, err := SampleCurvesWith(grid, p)
	if err != nil {
		return CurveSet{}, err
	}
	return CurveSet{Wavelengths: grid, R: r, G: g, B: b}, nil
}

// Result is what a run produced before the output was fitted to the pixel range.
type Result struct {
	Curves    CurveSet
	Composite Composite
	Frames    int
}

// Run loads the stack described by cfg, converts it to an RGB composite and writes it.
func Run(cfg Config, load Loader, write Writer) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	log := cfg.logger()
	netSize := cfg.DenseSize()
	log.Info("starting run",
		"input", cfg.InputDir, "frames", cfg.Count, "net_size", netSize,
		"policy", cfg.Policy, "estimated_bytes", cfg.EstimatedBytes())

	coarseGrid, err := Linspace(cfg.MinNM, cfg.MaxNM, cfg.Count)
	if err != nil {
		return Result{}, err
	}
	curves, err := NewCurveSet(cfg.MinNM, cfg.MaxNM, netSize, cfg.Policy)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	coarse, err := load.LoadStack(cfg.InputDir, cfg.Count, cfg.Height, cfg.Width)
	if err != nil {
		return Result{}, fmt.Errorf("load stack: %w", err)
	}
	log.Info("loaded stack", "bands", len(coarse), "bytes", coarse.Bytes(), "elapsed", time.Since(start))

	start = time.Now()
	dense, err := resample(coarse, coarseGrid, curves.Wavelengths, cfg.Progress)
	if err != nil {
		return Result{}, err
	}
	log.Info("resampled stack", "bands", len(dense), "elapsed", time.Since(start))

	start = time.Now()
	sums, err := IntegrateRGB(dense, curves.R, curves.G, curves.B, cfg.Policy)
	if err != nil {
		return Result{}, err
	}
	composite, err := Compose(sums.R, sums.G, sums.B, netSize, cfg.MinNM, cfg.MaxNM)
	if err != nil {
		return Result{}, err
	}
	log.Info("integrated channels", "elapsed", time.Since(start))
	for _, s := range composite.Stats() {
		log.Debug("channel", "name", s.Name, "mean", s.Mean, "std", s.Std, "min", s.Min, "max", s.Max)
	}

	if err := write.WriteComposite(cfg.Output, composite.Fit(cfg.Clamp, 255), cfg.Depth); err != nil {
		return Result{}, fmt.Errorf("write composite: %w", err)
	}
	log.Info("wrote composite", "path", cfg.Output, "depth", cfg.Depth, "clamp", cfg.Clamp)

	if cfg.Legend != "" {
		if err := write.WriteImage(cfg.Legend, Legend(curves.Wavelengths, 32)); err != nil {
			return Result{}, fmt.Errorf("write legend: %w", err)
		}
		log.Info("wrote legend", "path", cfg.Legend)
	}
	return Result{Curves: curves, Composite: composite, Frames: len(coarse)}, nil
}
