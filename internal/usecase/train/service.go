// Package train fits the regression network on the generated datasets
// and persists the resulting artifacts.
package train

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/monicapserrano/text-to-cad/internal/domain"
	"github.com/monicapserrano/text-to-cad/internal/metrics"
	"github.com/monicapserrano/text-to-cad/internal/model"
	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	"github.com/monicapserrano/text-to-cad/internal/textenc"
)

const learningRate = 0.001

// Options configures a training run.
type Options struct {
	DatasetsDir    string
	ModelFile      string
	VectorizerFile string
	ConfigFile     string
	NumEpochs      int
	BatchSize      int
	HiddenDim      int
	Retrain        bool
	Seed           int64
}

// Result reports the final epoch of a training run.
type Result struct {
	Examples  int
	TrainLoss float64
	ValidLoss float64
}

// Service trains the predictor.
type Service struct {
	datasets  Repository
	artifacts ArtifactStore
	logger    *zap.Logger
}

// New creates a train service.
func New(datasets Repository, artifacts ArtifactStore, logger *zap.Logger) *Service {
	return &Service{datasets: datasets, artifacts: artifacts, logger: logger}
}

// Run loads every dataset file, fits (or refits) the network and writes
// the model, vectorizer and dimension artifacts.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.NumEpochs <= 0 {
		return Result{}, fmt.Errorf("num epochs must be positive, got %d", opts.NumEpochs)
	}
	if opts.BatchSize <= 0 {
		return Result{}, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}

	examples, err := s.datasets.LoadDir(opts.DatasetsDir)
	if err != nil {
		return Result{}, err
	}

	descriptions, targets, err := canonicalize(examples)
	if err != nil {
		return Result{}, err
	}

	vectorizer, err := s.buildVectorizer(opts, descriptions)
	if err != nil {
		return Result{}, err
	}
	inputDim := vectorizer.Dim()

	rng := rand.New(rand.NewSource(opts.Seed))
	perm := rng.Perm(len(examples))
	numValid := len(examples) / 5
	numTrain := len(examples) - numValid
	if opts.BatchSize > numTrain {
		return Result{}, fmt.Errorf("batch size %d exceeds training split of %d examples",
			opts.BatchSize, numTrain)
	}

	predictor, err := s.buildPredictor(opts, inputDim, rng)
	if err != nil {
		return Result{}, err
	}

	xTrain, yTrain := buildMatrices(vectorizer, descriptions, targets, perm[:numTrain])
	var xValid, yValid *mat.Dense
	if numValid > 0 {
		xValid, yValid = buildMatrices(vectorizer, descriptions, targets, perm[numTrain:])
	}

	opt := model.NewAdam(learningRate)
	result := Result{Examples: len(examples), ValidLoss: math.NaN()}

	for epoch := 1; epoch <= opts.NumEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("training interrupted: %w", err)
		}

		result.TrainLoss = predictor.TrainEpoch(xTrain, yTrain, opt, opts.BatchSize)
		metrics.TrainingEpochsTotal.Inc()
		metrics.TrainingLoss.WithLabelValues("train").Set(result.TrainLoss)

		fields := []zap.Field{
			zap.Int("epoch", epoch),
			zap.Int("epochs", opts.NumEpochs),
			zap.Float64("train_loss", result.TrainLoss),
		}
		if numValid > 0 {
			evalBatch := opts.BatchSize
			if evalBatch > numValid {
				evalBatch = numValid
			}
			result.ValidLoss = predictor.Evaluate(xValid, yValid, evalBatch)
			metrics.TrainingLoss.WithLabelValues("valid").Set(result.ValidLoss)
			fields = append(fields, zap.Float64("valid_loss", result.ValidLoss))
		}
		s.logger.Info("Epoch finished", fields...)
	}

	if err := s.saveArtifacts(opts, predictor, vectorizer); err != nil {
		return Result{}, err
	}
	return result, nil
}

// canonicalize re-derives each target vector from its shape kind so a
// malformed record fails the run instead of poisoning the fit.
func canonicalize(examples []domain.TrainingExample) ([]string, [][]float64, error) {
	descriptions := make([]string, len(examples))
	targets := make([][]float64, len(examples))
	for i, ex := range examples {
		kind, err := domain.ParseShapeKind(ex.Shape)
		if err != nil {
			return nil, nil, fmt.Errorf("example %d: %w", i, err)
		}
		p, err := domain.ParametersFromVector(kind, ex.CADParameters)
		if err != nil {
			return nil, nil, fmt.Errorf("example %d (%s): %w", i, ex.Shape, err)
		}
		descriptions[i] = textenc.Preprocess(ex.Description)
		targets[i] = p.Vector()
	}
	return descriptions, targets, nil
}

// buildVectorizer fits a fresh vocabulary, or reuses the stored one
// when retraining so feature indices stay aligned with the weights.
func (s *Service) buildVectorizer(opts Options, descriptions []string) (*textenc.Vectorizer, error) {
	if opts.Retrain {
		v, err := s.artifacts.LoadVectorizer(opts.VectorizerFile)
		if err != nil {
			return nil, fmt.Errorf("retrain requires the stored vectorizer: %w", err)
		}
		return v, nil
	}
	v := textenc.NewVectorizer()
	v.Fit(descriptions)
	return v, nil
}

func (s *Service) buildPredictor(opts Options, inputDim int, rng *rand.Rand) (*model.Predictor, error) {
	if opts.Retrain {
		p, cfg, err := s.artifacts.LoadPredictor(opts.ModelFile, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("retrain requires the stored model: %w", err)
		}
		if cfg.InputDim != inputDim {
			return nil, fmt.Errorf("stored model expects %d input features, vectorizer produces %d",
				cfg.InputDim, inputDim)
		}
		return p, nil
	}
	if opts.HiddenDim <= 0 {
		return nil, fmt.Errorf("hidden dimension must be positive, got %d", opts.HiddenDim)
	}
	return model.NewPredictor(inputDim, opts.HiddenDim, domain.VectorLen, rng)
}

func buildMatrices(
	v *textenc.Vectorizer, descriptions []string, targets [][]float64, idx []int,
) (*mat.Dense, *mat.Dense) {
	x := mat.NewDense(len(idx), v.Dim(), nil)
	y := mat.NewDense(len(idx), domain.VectorLen, nil)
	for row, i := range idx {
		x.SetRow(row, v.Transform(descriptions[i]))
		y.SetRow(row, targets[i])
	}
	return x, y
}

func (s *Service) saveArtifacts(opts Options, p *model.Predictor, v *textenc.Vectorizer) error {
	inputDim, hiddenDim, outputDim := p.Dims()

	if err := s.artifacts.SaveModel(opts.ModelFile, p.StateDict()); err != nil {
		return err
	}
	if err := s.artifacts.SaveModelConfig(opts.ConfigFile, artifact.ModelConfig{
		InputDim:  inputDim,
		HiddenDim: hiddenDim,
		OutputDim: outputDim,
	}); err != nil {
		return err
	}
	if err := s.artifacts.SaveVectorizer(opts.VectorizerFile, v); err != nil {
		return err
	}

	s.logger.Info("Artifacts saved",
		zap.String("model", opts.ModelFile),
		zap.String("vectorizer", opts.VectorizerFile),
		zap.String("config", opts.ConfigFile),
		zap.Int("input_dim", inputDim),
		zap.Int("hidden_dim", hiddenDim),
		zap.Int("output_dim", outputDim),
	)
	return nil
}
