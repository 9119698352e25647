// Command spectrorgb turns a directory of monochrome spectral frames into an RGB image.
//
// Usage:
//
//	spectrorgb compose --input DIR --count N [--net-size M] [--output FILE] [--config FILE]
//	                   [--policy exclude-last|include-last] [--clamp none|clip|rescale]
//	                   [--depth 8|16] [--legend FILE] [--width W --height H] [--verbose]
//	spectrorgb curves --net-size M [--policy exclude-last|include-last]
//
// Frames are read in name order, the first being taken at 400nm and the last at 700nm.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "spectrorgb",
		Short:         "Convert a stack of spectral frames to an RGB composite",
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every frame and channel statistics")
	root.AddCommand(newComposeCmd(func() *slog.Logger { return newLogger(root, verbose) }))
	root.AddCommand(newCurvesCmd())
	return root
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
