// Package artifact persists and restores the trained model weights,
// the model-dimension config and the fitted vectorizer.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/monicapserrano/text-to-cad/internal/model"
	"github.com/monicapserrano/text-to-cad/internal/textenc"
)

// ModelConfig records the network dimensions next to the weights. The
// recorded values must match the stored weight shapes at load time.
type ModelConfig struct {
	InputDim  int `yaml:"input_dim"`
	HiddenDim int `yaml:"hidden_dim"`
	OutputDim int `yaml:"output_dim"`
}

// vectorizerArtifact is the on-disk form of a fitted vectorizer.
type vectorizerArtifact struct {
	Tokenizer  string   `json:"tokenizer"`
	Vocabulary []string `json:"vocabulary"`
}

// Store reads and writes model artifacts on the local filesystem.
type Store struct{}

// NewStore creates an artifact store.
func NewStore() *Store {
	return &Store{}
}

// SaveModel writes the weight state keyed by layer name.
func (s *Store) SaveModel(path string, state map[string][]float64) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode model state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// LoadModel reads a weight state saved by SaveModel.
func (s *Store) LoadModel(path string) (map[string][]float64, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var state map[string][]float64
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return state, nil
}

// SaveModelConfig writes the dimension record as YAML.
func (s *Store) SaveModelConfig(path string, cfg ModelConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode model config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model config: %w", err)
	}
	return nil
}

// LoadModelConfig reads a dimension record saved by SaveModelConfig.
func (s *Store) LoadModelConfig(path string) (ModelConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ModelConfig{}, fmt.Errorf("read model config: %w", err)
	}
	var cfg ModelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ModelConfig{}, fmt.Errorf("parse model config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveVectorizer writes the fitted vocabulary with its tokenizer name.
func (s *Store) SaveVectorizer(path string, v *textenc.Vectorizer) error {
	data, err := json.Marshal(vectorizerArtifact{
		Tokenizer:  textenc.TokenizerName,
		Vocabulary: v.Vocabulary(),
	})
	if err != nil {
		return fmt.Errorf("encode vectorizer: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write vectorizer: %w", err)
	}
	return nil
}

// LoadVectorizer restores a fitted vectorizer, rejecting artifacts that
// record an unknown tokenizer.
func (s *Store) LoadVectorizer(path string) (*textenc.Vectorizer, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read vectorizer: %w", err)
	}
	var art vectorizerArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse vectorizer %s: %w", path, err)
	}
	if art.Tokenizer != textenc.TokenizerName {
		return nil, fmt.Errorf("vectorizer %s was fitted with tokenizer %q, this build supports %q",
			path, art.Tokenizer, textenc.TokenizerName)
	}
	return textenc.NewFromVocabulary(art.Vocabulary), nil
}

// LoadPredictor restores the network from the weights and config files,
// verifying the recorded dimensions against the actual weight shapes.
// A mismatch is an error rather than a silent misconstruction.
func (s *Store) LoadPredictor(modelPath, configPath string) (*model.Predictor, ModelConfig, error) {
	cfg, err := s.LoadModelConfig(configPath)
	if err != nil {
		return nil, ModelConfig{}, err
	}
	state, err := s.LoadModel(modelPath)
	if err != nil {
		return nil, ModelConfig{}, err
	}
	p, err := model.NewFromState(cfg.InputDim, cfg.HiddenDim, cfg.OutputDim, state)
	if err != nil {
		return nil, ModelConfig{}, fmt.Errorf("model %s does not match config %s: %w",
			modelPath, configPath, err)
	}
	return p, cfg, nil
}
