package proxy

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"gonum.org/v1/gonum/mat"

	"github.com/larisahax/spectrorgb/spectral"
)

var (
	ErrNotImage   = errors.New("not an image file")
	ErrNotPNG     = errors.New("frame is not a PNG image")
	ErrFrameCount = errors.New("unexpected number of frames")
	ErrFrameSize  = errors.New("frame has the wrong size")
)

// FrameScale maps a 16-bit gray level onto [0,1].
const FrameScale = 1.0 / (1<<16 - 1)

// lists the .png files in dir in natural name order, which is the wavelength order of the
// frames: digit runs compare by value, so img_2.png comes before img_10.png.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(natural.StringSlice(names))
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// FrameLoader reads a directory of grayscale PNG frames into a spectral stack.
type FrameLoader struct {
	Logger *slog.Logger
}

func (fl FrameLoader) logger() *slog.Logger {
	if fl.Logger != nil {
		return fl.Logger
	}
	return slog.Default()
}

// LoadStack loads exactly count frames of rows x cols from dir. Band i is the i-th frame in
// name order, with gray levels scaled by FrameScale.
func (fl FrameLoader) LoadStack(dir string, count, rows, cols int) (spectral.Stack, error) {
	paths, err := ListFrames(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) != count {
		return nil, fmt.Errorf("%s holds %d frames, want %d: %w", dir, len(paths), count, ErrFrameCount)
	}
	stack := make(spectral.Stack, count)
	for i, p := range paths {
		m, err := LoadFrame(p, rows, cols)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		stack[i] = m
		fl.logger().Debug("loaded frame", "band", i, "file", filepath.Base(p))
	}
	return stack, nil
}

// LoadFrame reads one PNG frame and returns its gray levels scaled onto [0,1].
func LoadFrame(path string, rows, cols int) (*mat.Dense, error) {
	ip := new(ImageProxy)
	if err := ip.LoadFromFile(path); err != nil {
		return nil, err
	}
	if ip.Format != "png" {
		return nil, fmt.Errorf("%s is %s: %w", path, ip.Format, ErrNotPNG)
	}
	b := ip.Bounds()
	if b.Dy() != rows || b.Dx() != cols {
		return nil, fmt.Errorf("%s is %dx%d, want %dx%d: %w", path, b.Dy(), b.Dx(), rows, cols, ErrFrameSize)
	}
	return ip.LuminanceAsMatrix(FrameScale), nil
}

// CompositeWriter saves composites and auxiliary images through ImageProxy.
type CompositeWriter struct {
	Logger *slog.Logger
}

// WriteComposite encodes the three channel planes at the given depth and saves them to path.
func (cw CompositeWriter) WriteComposite(path string, c spectral.Composite, depth int) error {
	ip := new(ImageProxy)
	if err := ip.CreateFromRGB([]mat.Matrix{c.R, c.G, c.B}, depth); err != nil {
		return err
	}
	if err := ip.SaveToFile(path); err != nil {
		return err
	}
	if cw.Logger != nil {
		cw.Logger.Debug("saved composite", "type", ip.Type(), "history", ip.LastMetadata())
	}
	return nil
}

func (cw CompositeWriter) WriteImage(path string, im image.Image) error {
	ip := &ImageProxy{Image: im}
	return ip.SaveToFile(path)
}
