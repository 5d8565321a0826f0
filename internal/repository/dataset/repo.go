// Package dataset persists training datasets as JSON array files, one
// file per shape kind.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

// ErrEmptyDataset is returned when a directory yields no training
// examples at all.
var ErrEmptyDataset = errors.New("dataset: no training examples found")

// Repository reads and writes dataset files.
type Repository struct{}

// New creates a dataset repository.
func New() *Repository {
	return &Repository{}
}

// Save writes the examples as a single indented JSON array.
func (r *Repository) Save(path string, examples []domain.TrainingExample) error {
	data, err := json.MarshalIndent(examples, "", "    ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// LoadDir concatenates every regular file in dir, in directory order.
// A missing directory or an empty result is an error.
func (r *Repository) LoadDir(dir string) ([]domain.TrainingExample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read datasets dir: %w", err)
	}

	var all []domain.TrainingExample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", entry.Name(), err)
		}

		var batch []domain.TrainingExample
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", entry.Name(), err)
		}
		all = append(all, batch...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyDataset, dir)
	}
	return all, nil
}
