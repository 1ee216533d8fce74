package main

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stellar/spectrum"
	"github.com/cwbudde/algo-stellar/synth"
)

func newSynthCmd() *cobra.Command {
	var start, end, step float64

	cmd := &cobra.Command{
		Use:   "synth <model.yaml> <output>",
		Short: "Synthesize an analytic line spectrum and broaden it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			wave, err := uniformWave(start, end, step)
			if err != nil {
				return err
			}
			model, err := synth.LoadFile(args[0])
			if err != nil {
				return err
			}

			out, err := newPipeline(cfg).Synthesize(wave, model, cfg.Broadening)
			if err != nil {
				return err
			}
			if err := spectrum.WriteFile(args[1], out); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":    args[1],
				"samples": out.Len(),
				"lines":   len(model.Lines),
			}).Info("wrote synthetic spectrum")
			return nil
		},
	}

	cmd.Flags().Float64Var(&start, "start", 0, "first wavelength")
	cmd.Flags().Float64Var(&end, "end", 0, "last wavelength")
	cmd.Flags().Float64Var(&step, "step", 0.01, "wavelength step")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// uniformWave returns the grid start, start+step, ... up to end.
func uniformWave(start, end, step float64) ([]float64, error) {
	if !(step > 0) || !(end > start) {
		return nil, fmt.Errorf("invalid grid: start %g, end %g, step %g", start, end, step)
	}
	n := int(math.Floor((end-start)/step+1e-9)) + 1
	if n < 2 {
		return nil, fmt.Errorf("invalid grid: step %g exceeds range %g", step, end-start)
	}

	wave := make([]float64, n)
	for i := range wave {
		wave[i] = start + float64(i)*step
	}
	return wave, nil
}
