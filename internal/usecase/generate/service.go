// Package generate drives synthetic dataset generation, one output
// file per shape generator.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/dataset"
	"github.com/monicapserrano/text-to-cad/internal/domain"
	"github.com/monicapserrano/text-to-cad/internal/metrics"
)

// Options selects what to generate and where to put it.
type Options struct {
	Shapes        []string // empty or containing "all" means every generator
	NumDatapoints int
	OutputDir     string
}

// Service generates datasets and writes them through the repository.
type Service struct {
	gen         Generator
	repo        Repository
	paraphraser Paraphraser
	logger      *zap.Logger
}

// New creates a generate service.
func New(gen Generator, repo Repository, logger *zap.Logger) *Service {
	return &Service{gen: gen, repo: repo, logger: logger}
}

// WithParaphraser enables description augmentation. Paraphrase failures
// keep the original description.
func (s *Service) WithParaphraser(p Paraphraser) *Service {
	s.paraphraser = p
	return s
}

// Run generates the requested datasets. Each generator writes its own
// file in the output directory.
func (s *Service) Run(ctx context.Context, opts Options) error {
	if opts.NumDatapoints <= 0 {
		return fmt.Errorf("num datapoints must be positive, got %d", opts.NumDatapoints)
	}

	names, err := resolveShapes(opts.Shapes)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation interrupted: %w", err)
		}

		examples, err := s.gen.Generate(name, opts.NumDatapoints)
		if err != nil {
			return fmt.Errorf("generate %s dataset: %w", name, err)
		}

		if s.paraphraser != nil {
			s.augment(ctx, name, examples)
		}

		fileName, err := dataset.FileName(name)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.OutputDir, fileName)
		if err := s.repo.Save(path, examples); err != nil {
			return fmt.Errorf("save %s dataset: %w", name, err)
		}

		metrics.DatapointsGeneratedTotal.WithLabelValues(name).Add(float64(len(examples)))
		s.logger.Info("Dataset generated",
			zap.String("shape", name),
			zap.Int("datapoints", len(examples)),
			zap.String("path", path),
		)
	}
	return nil
}

// augment rewrites descriptions in place, keeping the original wording
// when the paraphraser fails.
func (s *Service) augment(ctx context.Context, name string, examples []domain.TrainingExample) {
	for i := range examples {
		rewritten, err := s.paraphraser.Paraphrase(ctx, examples[i].Description)
		if err != nil {
			s.logger.Warn("Paraphrase failed, keeping original description",
				zap.String("shape", name),
				zap.Error(err),
			)
			continue
		}
		examples[i].Description = rewritten
	}
}

// resolveShapes expands "all" and validates the remaining names.
func resolveShapes(shapes []string) ([]string, error) {
	if len(shapes) == 0 {
		return dataset.Names(), nil
	}
	for _, s := range shapes {
		if s == "all" {
			return dataset.Names(), nil
		}
	}
	for _, s := range shapes {
		if _, err := dataset.FileName(s); err != nil {
			return nil, err
		}
	}
	return shapes, nil
}
