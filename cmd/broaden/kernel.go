package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stellar/broaden"
	"github.com/cwbudde/algo-stellar/internal/config"
)

func newKernelCmd() *cobra.Command {
	var wave, step float64

	cmd := &cobra.Command{
		Use:       "kernel macroturbulence|rotation",
		Short:     "Print a broadening kernel",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"macroturbulence", "rotation"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !(wave > 0) || !(step > 0) {
				return fmt.Errorf("wave and step must be positive")
			}

			var lags, weights []float64
			switch args[0] {
			case "macroturbulence":
				lags, weights, err = macroturbulenceTable(cfg, wave, step)
			case "rotation":
				lags, weights, err = rotationTable(cfg, wave, step)
			}
			if err != nil {
				return err
			}
			return printKernel(cmd.OutOrStdout(), lags, weights, step)
		},
	}

	cmd.Flags().Float64Var(&wave, "wave", 5000, "central wavelength")
	cmd.Flags().Float64Var(&step, "step", 0.01, "wavelength step")
	return cmd
}

func macroturbulenceTable(cfg *config.Config, wave, step float64) ([]float64, []float64, error) {
	vmac := cfg.Broadening.Macroturbulence
	if !(vmac > 0) {
		return nil, nil, fmt.Errorf("--%s must be positive", config.FlagVMac)
	}

	z := wave * vmac / broaden.SpeedOfLight
	m := broaden.MacroturbulenceWidth(z, step)
	kernel, err := broaden.MacroturbulenceKernel(z, step, m)
	if err != nil {
		return nil, nil, err
	}

	// Unwrap into lag order -half..half.
	half := (m - 1) / 2
	lags := make([]float64, m)
	weights := make([]float64, m)
	for k := -half; k <= half; k++ {
		lags[k+half] = float64(k)
		weights[k+half] = kernel[(k+m)%m]
	}
	return lags, weights, nil
}

func rotationTable(cfg *config.Config, wave, step float64) ([]float64, []float64, error) {
	vsini := cfg.Broadening.VSini
	if vsini < broaden.MinVSini {
		return nil, nil, fmt.Errorf("--%s must be at least %g", config.FlagVSini, broaden.MinVSini)
	}

	nd := broaden.RotationHalfWidth(wave, vsini, step)
	dlc := wave * vsini / broaden.SpeedOfLight
	weights := broaden.RotationKernel(dlc, step, nd, cfg.Broadening.LimbDarkening)

	lags := make([]float64, len(weights))
	for i := range lags {
		lags[i] = float64(i - nd)
	}
	return lags, weights, nil
}

func printKernel(w io.Writer, lags, weights []float64, step float64) error {
	norm := floats.Sum(weights)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Lag\tOffset\tWeight\tNormalized\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t------\t------\t----------\n"); err != nil {
		return err
	}
	for i, lag := range lags {
		if _, err := fmt.Fprintf(tw, "%.0f\t%.4f\t%.6g\t%.6f\n", lag, lag*step, weights[i], weights[i]/norm); err != nil {
			return err
		}
	}
	return tw.Flush()
}
