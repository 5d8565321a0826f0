package predict

import (
	"github.com/monicapserrano/text-to-cad/internal/model"
	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	"github.com/monicapserrano/text-to-cad/internal/textenc"
)

// ArtifactLoader restores the trained artifacts.
type ArtifactLoader interface {
	LoadPredictor(modelPath, configPath string) (*model.Predictor, artifact.ModelConfig, error)
	LoadVectorizer(path string) (*textenc.Vectorizer, error)
}
