package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/larisahax/spectrorgb/proxy"
	"github.com/larisahax/spectrorgb/spectral"
)

type composeFlags struct {
	config  string
	policy  string
	clamp   string
	printed bool
	cfg     spectral.Config
}

func newComposeCmd(logger func() *slog.Logger) *cobra.Command {
	f := &composeFlags{cfg: spectral.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Resample the frames, integrate the colour responses and write the composite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if f.printed {
				b, err := cfg.Encode()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			log := logger()
			cfg.Logger = log
			res, err := spectral.Run(cfg, proxy.FrameLoader{Logger: log}, proxy.CompositeWriter{Logger: log})
			if err != nil {
				return err
			}
			lo, hi := res.Composite.Range()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d samples, composite range [%.2f, %.2f]\n",
				cfg.Output, res.Frames, len(res.Curves.Wavelengths), lo, hi)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "TOML file with run settings; flags override it")
	fs.StringVarP(&f.cfg.InputDir, "input", "i", "", "directory of PNG frames")
	fs.IntVarP(&f.cfg.Count, "count", "n", 0, "number of frames in the directory")
	fs.IntVarP(&f.cfg.NetSize, "net-size", "m", 0, "dense grid size (default 10 per frame)")
	fs.StringVarP(&f.cfg.Output, "output", "o", f.cfg.Output, "composite file (.png, .tif, .jpg)")
	fs.StringVar(&f.cfg.Legend, "legend", "", "also write a wavelength legend strip to this file")
	fs.IntVar(&f.cfg.Width, "width", f.cfg.Width, "frame width")
	fs.IntVar(&f.cfg.Height, "height", f.cfg.Height, "frame height")
	fs.IntVar(&f.cfg.Depth, "depth", f.cfg.Depth, "output bits per channel, 8 or 16")
	fs.StringVar(&f.policy, "policy", f.cfg.Policy.String(), "integration range: exclude-last or include-last")
	fs.StringVar(&f.clamp, "clamp", f.cfg.Clamp.String(), "out of range values: none, clip or rescale")
	fs.BoolVar(&f.printed, "print-config", false, "print the resolved settings as TOML and exit")
	return cmd
}

// resolve starts from the config file, if any, and applies the flags the user set.
func (f *composeFlags) resolve(fs *pflag.FlagSet) (spectral.Config, error) {
	cfg := spectral.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = spectral.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	var err error
	fs.Visit(func(fl *pflag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "input":
			cfg.InputDir = f.cfg.InputDir
		case "count":
			cfg.Count = f.cfg.Count
		case "net-size":
			cfg.NetSize = f.cfg.NetSize
		case "output":
			cfg.Output = f.cfg.Output
		case "legend":
			cfg.Legend = f.cfg.Legend
		case "width":
			cfg.Width = f.cfg.Width
		case "height":
			cfg.Height = f.cfg.Height
		case "depth":
			cfg.Depth = f.cfg.Depth
		case "policy":
			cfg.Policy, err = spectral.ParsePolicy(f.policy)
		case "clamp":
			cfg.Clamp, err = spectral.ParseClampPolicy(f.clamp)
		}
	})
	return cfg, err
}
