package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/config"
	"github.com/monicapserrano/text-to-cad/internal/dataset"
	datasetrepo "github.com/monicapserrano/text-to-cad/internal/repository/dataset"
	"github.com/monicapserrano/text-to-cad/internal/transport/llm"
	generateuc "github.com/monicapserrano/text-to-cad/internal/usecase/generate"
)

func newGenerateCmd() *cobra.Command {
	var (
		shapes        []string
		numDatapoints int
		outputDir     string
		augment       bool
		seed          int64
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic training datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newCommandLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			gen := dataset.New(rand.New(rand.NewSource(seed)))

			svc := generateuc.New(gen, datasetrepo.New(), log)
			if augment {
				cfg, err := config.Load(config.GetEnv())
				if err != nil {
					return err
				}
				svc = svc.WithParaphraser(llm.NewParaphraser(&llm.Config{
					APIKey:      cfg.Augment.APIKey,
					BaseURL:     cfg.Augment.BaseURL,
					Model:       cfg.Augment.Model,
					Temperature: cfg.Augment.Temperature,
					Logger:      log,
				}))
				log.Info("Augmentation enabled", zap.String("model", cfg.Augment.Model))
			}

			return svc.Run(cmd.Context(), generateuc.Options{
				Shapes:        shapes,
				NumDatapoints: numDatapoints,
				OutputDir:     outputDir,
			})
		},
	}

	cmd.Flags().StringSliceVar(&shapes, "shape", []string{"all"}, "shape generators to run (or \"all\")")
	cmd.Flags().IntVar(&numDatapoints, "num-datapoints", 1000000, "datapoints per shape")
	cmd.Flags().StringVar(&outputDir, "output-dir", "datasets", "directory for the dataset files")
	cmd.Flags().BoolVar(&augment, "augment", false, "paraphrase descriptions via the configured LLM")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override")
	return cmd
}
