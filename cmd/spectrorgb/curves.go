package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/larisahax/spectrorgb/spectral"
)

func newCurvesCmd() *cobra.Command {
	var (
		netSize int
		policy  string
	)
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Print the normalised colour response curves on the dense grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := spectral.ParsePolicy(policy)
			if err != nil {
				return err
			}
			cs, err := spectral.NewCurveSet(spectral.MinWavelength, spectral.MaxWavelength, netSize, p)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "nm\tred\tgreen\tblue\t")
			for i, l := range cs.Wavelengths {
				fmt.Fprintf(tw, "%.2f\t%.6f\t%.6f\t%.6f\t\n", l, cs.R[i], cs.G[i], cs.B[i])
			}
			for _, c := range []struct {
				name string
				c    spectral.Curve
			}{{"red", cs.R}, {"green", cs.G}, {"blue", cs.B}} {
				k, _ := c.c.Peak()
				fmt.Fprintf(tw, "peak %s\t%.2f\t\t\t\n", c.name, cs.Wavelengths[k])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&netSize, "net-size", "m", 310, "dense grid size")
	cmd.Flags().StringVar(&policy, "policy", spectral.ExcludeLast.String(), "integration range: exclude-last or include-last")
	return cmd
}
