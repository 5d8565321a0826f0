package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	predictuc "github.com/monicapserrano/text-to-cad/internal/usecase/predict"
)

func newPredictCmd() *cobra.Command {
	var (
		textInput      string
		outputFile     string
		modelFile      string
		vectorizerFile string
		configFile     string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict shape parameters for a description and write a CAD document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newCommandLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc, err := predictuc.Load(artifact.NewStore(), modelFile, vectorizerFile, configFile, log)
			if err != nil {
				return err
			}

			path, obj, err := svc.Materialize(cmd.Context(), textInput, outputFile)
			if err != nil {
				return err
			}

			log.Info("Prediction complete",
				zap.String("shape", obj.Kind.String()),
				zap.Float64s("parameters", obj.Parameters),
				zap.String("output", path),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&textInput, "text-input", "", "description of the shape (required)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "path for the CAD document (required)")
	cmd.Flags().StringVar(&modelFile, "model-file", "model.json", "path to the model weights")
	cmd.Flags().StringVar(&vectorizerFile, "vectorizer-file", "vectorizer.json", "path to the vectorizer")
	cmd.Flags().StringVar(&configFile, "config-file", "config.yaml", "path to the model dimensions")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override")
	_ = cmd.MarkFlagRequired("text-input")
	_ = cmd.MarkFlagRequired("output-file")
	return cmd
}
