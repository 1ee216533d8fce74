package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stellar/internal/config"
	"github.com/cwbudde/algo-stellar/pipeline"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "broaden",
		Short:        "Broaden synthetic stellar spectra",
		Long:         "Apply macroturbulence, rotation and instrumental resolution to synthetic stellar spectra.",
		SilenceUsage: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newApplyCmd(), newSynthCmd(), newKernelCmd())
	return root
}

// loadConfig resolves the run configuration and configures logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	opts := append(cfg.PipelineOptions(),
		pipeline.WithLogger(log.StandardLogger()),
		pipeline.WithProgress(func(percent float64) {
			log.WithField("percent", percent).Debug("progress")
		}),
	)
	return pipeline.New(opts...)
}
