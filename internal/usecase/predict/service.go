// Package predict turns free-text descriptions into parameter vectors
// and materialized CAD documents using the stored artifacts.
package predict

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/cad"
	"github.com/monicapserrano/text-to-cad/internal/domain"
	"github.com/monicapserrano/text-to-cad/internal/metrics"
	"github.com/monicapserrano/text-to-cad/internal/model"
	"github.com/monicapserrano/text-to-cad/internal/textenc"
)

// Service runs inference with a loaded model and vectorizer.
type Service struct {
	predictor  *model.Predictor
	vectorizer *textenc.Vectorizer
	logger     *zap.Logger
}

// Load restores the artifacts and verifies they fit together. Any
// inconsistency between the three files fails the load.
func Load(store ArtifactLoader, modelFile, vectorizerFile, configFile string, logger *zap.Logger) (*Service, error) {
	predictor, cfg, err := store.LoadPredictor(modelFile, configFile)
	if err != nil {
		return nil, err
	}
	vectorizer, err := store.LoadVectorizer(vectorizerFile)
	if err != nil {
		return nil, err
	}
	if vectorizer.Dim() != cfg.InputDim {
		return nil, fmt.Errorf("vectorizer %s produces %d features, model expects %d",
			vectorizerFile, vectorizer.Dim(), cfg.InputDim)
	}

	logger.Info("Model artifacts loaded",
		zap.String("model", modelFile),
		zap.String("vectorizer", vectorizerFile),
		zap.Int("input_dim", cfg.InputDim),
		zap.Int("hidden_dim", cfg.HiddenDim),
		zap.Int("output_dim", cfg.OutputDim),
	)
	return &Service{predictor: predictor, vectorizer: vectorizer, logger: logger}, nil
}

// Predict returns the raw output vector for a description, with each
// slot clamped to its magnitude.
func (s *Service) Predict(ctx context.Context, description string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("prediction interrupted: %w", err)
	}
	if description == "" {
		return nil, fmt.Errorf("description is empty")
	}

	start := time.Now()
	features := s.vectorizer.Transform(textenc.Preprocess(description))
	out, err := s.predictor.Predict(features)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("predict: %w", err)
	}
	for i, v := range out {
		out[i] = math.Abs(v)
	}

	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	return out, nil
}

// Materialize predicts the parameters for a description and writes the
// resulting object as a CAD document. An empty output path writes to a
// temporary file.
func (s *Service) Materialize(ctx context.Context, description, outputFile string) (string, domain.Object3D, error) {
	vec, err := s.Predict(ctx, description)
	if err != nil {
		return "", domain.Object3D{}, err
	}

	obj, err := domain.DecodeOutputVector(vec)
	if err != nil {
		return "", domain.Object3D{}, fmt.Errorf("decode prediction: %w", err)
	}

	path, err := cad.Write([]domain.Object3D{obj}, outputFile)
	if err != nil {
		return "", domain.Object3D{}, fmt.Errorf("write document: %w", err)
	}

	s.logger.Info("Document written",
		zap.String("shape", obj.Kind.String()),
		zap.String("path", path),
	)
	return path, obj, nil
}
