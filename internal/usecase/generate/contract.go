package generate

import (
	"context"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

// Generator produces synthetic training examples for a named shape
// generator.
type Generator interface {
	Generate(name string, n int) ([]domain.TrainingExample, error)
}

// Repository persists a generated dataset to a file.
type Repository interface {
	Save(path string, examples []domain.TrainingExample) error
}

// Paraphraser rewrites a generated description in different words.
type Paraphraser interface {
	Paraphrase(ctx context.Context, description string) (string, error)
}
