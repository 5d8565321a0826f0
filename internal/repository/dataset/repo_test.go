package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

func sample(shape string, vec ...float64) domain.TrainingExample {
	return domain.TrainingExample{
		Shape:         shape,
		Description:   "A " + shape + ".",
		CADParameters: vec,
	}
}

func TestSaveLoadDir_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := New()

	spheres := []domain.TrainingExample{
		sample("sphere", 5, 0, 0, 0, 3, 0, 0, 0, 0),
		sample("sphere", 5, 0, 0, 0, 1.5, 0, 0, 0, 0),
	}
	tori := []domain.TrainingExample{
		sample("torus", 7, 0, 0, 0, 0, 10, 2, 0, 0),
	}

	if err := repo.Save(filepath.Join(dir, "sphere_dataset.json"), spheres); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(filepath.Join(dir, "torus_dataset.json"), tori); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("loaded %d examples, want 3 (concatenated across files)", len(got))
	}

	// Directory order is lexicographic: spheres before tori.
	if !reflect.DeepEqual(got[:2], spheres) {
		t.Errorf("first file contents = %+v, want %+v", got[:2], spheres)
	}
	if !reflect.DeepEqual(got[2], tori[0]) {
		t.Errorf("second file contents = %+v, want %+v", got[2], tori[0])
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	if _, err := New().LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestLoadDir_EmptyDirectory(t *testing.T) {
	_, err := New().LoadDir(t.TempDir())
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("err = %v, want ErrEmptyDataset", err)
	}
}

func TestLoadDir_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New().LoadDir(dir); err == nil {
		t.Error("expected error for a malformed dataset file")
	}
}
