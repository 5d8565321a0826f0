package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	datasetrepo "github.com/monicapserrano/text-to-cad/internal/repository/dataset"
	trainuc "github.com/monicapserrano/text-to-cad/internal/usecase/train"
)

func newTrainCmd() *cobra.Command {
	var (
		opts     trainuc.Options
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the regression model on generated datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newCommandLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc := trainuc.New(datasetrepo.New(), artifact.NewStore(), log)
			result, err := svc.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			log.Info("Training finished",
				zap.Int("examples", result.Examples),
				zap.Float64("train_loss", result.TrainLoss),
				zap.Float64("valid_loss", result.ValidLoss),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DatasetsDir, "datasets-dir", "", "directory with dataset files (required)")
	cmd.Flags().StringVar(&opts.ModelFile, "model-file", "model.json", "output path for the model weights")
	cmd.Flags().StringVar(&opts.VectorizerFile, "vectorizer-file", "vectorizer.json", "output path for the vectorizer")
	cmd.Flags().StringVar(&opts.ConfigFile, "config-file", "config.yaml", "output path for the model dimensions")
	cmd.Flags().IntVar(&opts.NumEpochs, "num-epochs", 5, "training epochs")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 32, "minibatch size")
	cmd.Flags().IntVar(&opts.HiddenDim, "hidden-dimension", 128, "hidden layer width")
	cmd.Flags().BoolVar(&opts.Retrain, "retrain", false, "continue from stored artifacts")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed for shuffling and weight init")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override")
	_ = cmd.MarkFlagRequired("datasets-dir")
	return cmd
}
