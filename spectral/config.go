package spectral

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	// MinWavelength and MaxWavelength bound the supported spectral range in nanometres.
	MinWavelength = 400.0
	MaxWavelength = 700.0
	// FrameSize is the default width and height of an input frame.
	FrameSize = 512
	// DefaultDensity is the dense grid size per input frame when NetSize is unset.
	DefaultDensity = 10
)

// Config describes one run of the pipeline. It can be read from a TOML file; fields tagged "-"
// are runtime hooks and are only set in code.
type Config struct {
	InputDir string      `toml:"input_dir"`
	Count    int         `toml:"count"`
	NetSize  int         `toml:"net_size"`
	Output   string      `toml:"output"`
	Legend   string      `toml:"legend"`
	MinNM    float64     `toml:"min_nm"`
	MaxNM    float64     `toml:"max_nm"`
	Width    int         `toml:"width"`
	Height   int         `toml:"height"`
	Depth    int         `toml:"depth"`
	Policy   Policy      `toml:"policy"`
	Clamp    ClampPolicy `toml:"clamp"`

	Logger   *slog.Logger   `toml:"-"`
	Progress chan<- float64 `toml:"-"`
}

// DefaultConfig returns the settings of the reference run: 512x512 frames over 400-700nm,
// written as 8-bit answer.png with values clipped to the pixel range.
func DefaultConfig() Config {
	return Config{
		Output: "answer.png",
		MinNM:  MinWavelength,
		MaxNM:  MaxWavelength,
		Width:  FrameSize,
		Height: FrameSize,
		Depth:  8,
		Policy: ExcludeLast,
		Clamp:  ClampClip,
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders the file-backed fields as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// DenseSize is NetSize, or DefaultDensity points per frame when NetSize is zero.
func (c Config) DenseSize() int {
	if c.NetSize > 0 {
		return c.NetSize
	}
	return DefaultDensity * c.Count
}

// EstimatedBytes is the peak memory of a run: the coarse and dense stacks plus the three
// channel sums and the three scaled composite planes.
func (c Config) EstimatedBytes() int64 {
	return StackBytes(c.Count+c.DenseSize()+6, c.Height, c.Width)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConfig)
	}
	switch {
	case c.InputDir == "":
		return bad("input directory is not set")
	case c.Output == "":
		return bad("output path is not set")
	case c.Count < 2:
		return bad("need at least 2 frames, got %d", c.Count)
	case c.NetSize < 0:
		return bad("net size %d is negative", c.NetSize)
	case c.DenseSize() < 2:
		return bad("net size %d is too small", c.DenseSize())
	case c.MinNM < MinWavelength || c.MaxNM > MaxWavelength:
		return bad("range [%g, %g] leaves [%g, %g]", c.MinNM, c.MaxNM, MinWavelength, MaxWavelength)
	case !(c.MaxNM > c.MinNM):
		return bad("range [%g, %g] is empty", c.MinNM, c.MaxNM)
	case c.Width <= 0 || c.Height <= 0:
		return bad("frame size %dx%d", c.Width, c.Height)
	case c.Depth != 8 && c.Depth != 16:
		return bad("depth %d, want 8 or 16", c.Depth)
	}
	return nil
}
