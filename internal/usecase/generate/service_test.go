package generate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

type fakeGenerator struct {
	calls []string
}

func (g *fakeGenerator) Generate(name string, n int) ([]domain.TrainingExample, error) {
	g.calls = append(g.calls, name)
	examples := make([]domain.TrainingExample, n)
	for i := range examples {
		examples[i] = domain.TrainingExample{
			Shape:       name,
			Description: "A small sphere",
			CADParameters: []float64{
				float64(domain.KindSphere), 0, 0, 0, 2, 0, 0, 0, 0,
			},
		}
	}
	return examples, nil
}

type fakeRepo struct {
	saved map[string][]domain.TrainingExample
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saved: make(map[string][]domain.TrainingExample)}
}

func (r *fakeRepo) Save(path string, examples []domain.TrainingExample) error {
	r.saved[path] = examples
	return nil
}

type fakeParaphraser struct {
	out string
	err error
}

func (p *fakeParaphraser) Paraphrase(_ context.Context, _ string) (string, error) {
	return p.out, p.err
}

func TestRun_SingleShape(t *testing.T) {
	gen := &fakeGenerator{}
	repo := newFakeRepo()
	svc := New(gen, repo, zap.NewNop())

	dir := t.TempDir()
	err := svc.Run(context.Background(), Options{
		Shapes:        []string{"sphere"},
		NumDatapoints: 5,
		OutputDir:     dir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := filepath.Join(dir, "sphere_dataset.json")
	examples, ok := repo.saved[want]
	if !ok {
		t.Fatalf("nothing saved at %s, saved: %v", want, repo.saved)
	}
	if len(examples) != 5 {
		t.Errorf("saved %d examples, want 5", len(examples))
	}
}

func TestRun_AllShapes(t *testing.T) {
	gen := &fakeGenerator{}
	repo := newFakeRepo()
	svc := New(gen, repo, zap.NewNop())

	err := svc.Run(context.Background(), Options{
		Shapes:        []string{"all"},
		NumDatapoints: 1,
		OutputDir:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(gen.calls) != 8 {
		t.Errorf("generator called for %d shapes, want 8: %v", len(gen.calls), gen.calls)
	}
}

func TestRun_UnknownShape(t *testing.T) {
	svc := New(&fakeGenerator{}, newFakeRepo(), zap.NewNop())

	err := svc.Run(context.Background(), Options{
		Shapes:        []string{"pyramid"},
		NumDatapoints: 1,
		OutputDir:     t.TempDir(),
	})
	if !errors.Is(err, domain.ErrUnsupportedShape) {
		t.Fatalf("error = %v, want ErrUnsupportedShape", err)
	}
}

func TestRun_NonPositiveCount(t *testing.T) {
	svc := New(&fakeGenerator{}, newFakeRepo(), zap.NewNop())

	if err := svc.Run(context.Background(), Options{NumDatapoints: 0}); err == nil {
		t.Fatal("expected error for zero datapoints")
	}
}

func TestRun_ParaphraserRewrites(t *testing.T) {
	repo := newFakeRepo()
	svc := New(&fakeGenerator{}, repo, zap.NewNop()).
		WithParaphraser(&fakeParaphraser{out: "A tiny ball"})

	dir := t.TempDir()
	err := svc.Run(context.Background(), Options{
		Shapes:        []string{"sphere"},
		NumDatapoints: 2,
		OutputDir:     dir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, ex := range repo.saved[filepath.Join(dir, "sphere_dataset.json")] {
		if ex.Description != "A tiny ball" {
			t.Errorf("description = %q, want paraphrased text", ex.Description)
		}
	}
}

func TestRun_ParaphraserFailureKeepsOriginal(t *testing.T) {
	repo := newFakeRepo()
	svc := New(&fakeGenerator{}, repo, zap.NewNop()).
		WithParaphraser(&fakeParaphraser{err: errors.New("rate limited")})

	dir := t.TempDir()
	err := svc.Run(context.Background(), Options{
		Shapes:        []string{"sphere"},
		NumDatapoints: 1,
		OutputDir:     dir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	examples := repo.saved[filepath.Join(dir, "sphere_dataset.json")]
	if examples[0].Description != "A small sphere" {
		t.Errorf("description = %q, want original kept", examples[0].Description)
	}
}
