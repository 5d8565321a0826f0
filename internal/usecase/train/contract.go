package train

import (
	"github.com/monicapserrano/text-to-cad/internal/domain"
	"github.com/monicapserrano/text-to-cad/internal/model"
	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	"github.com/monicapserrano/text-to-cad/internal/textenc"
)

// Repository loads training datasets.
type Repository interface {
	LoadDir(dir string) ([]domain.TrainingExample, error)
}

// ArtifactStore persists and restores model artifacts.
type ArtifactStore interface {
	SaveModel(path string, state map[string][]float64) error
	SaveModelConfig(path string, cfg artifact.ModelConfig) error
	SaveVectorizer(path string, v *textenc.Vectorizer) error
	LoadVectorizer(path string) (*textenc.Vectorizer, error)
	LoadPredictor(modelPath, configPath string) (*model.Predictor, artifact.ModelConfig, error)
}
