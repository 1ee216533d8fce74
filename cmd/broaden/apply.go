package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stellar/spectrum"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <input> <output>",
		Short: "Broaden a spectrum file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, err := spectrum.ReadFile(args[0])
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": args[0], "samples": s.Len()}).Debug("read spectrum")

			start := time.Now()
			out, err := newPipeline(cfg).Apply(s, cfg.Broadening)
			if err != nil {
				return fmt.Errorf("broaden %s: %w", args[0], err)
			}

			if err := spectrum.WriteFile(args[1], out); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":    args[1],
				"samples": out.Len(),
				"elapsed": time.Since(start),
			}).Info("wrote broadened spectrum")
			return nil
		},
	}
}
