package train

import (
	"context"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/monicapserrano/text-to-cad/internal/dataset"
	"github.com/monicapserrano/text-to-cad/internal/repository/artifact"
	datasetrepo "github.com/monicapserrano/text-to-cad/internal/repository/dataset"
)

func writeDataset(t *testing.T, dir, shape string, n int) {
	t.Helper()
	gen := dataset.New(rand.New(rand.NewSource(1)))
	examples, err := gen.Generate(shape, n)
	if err != nil {
		t.Fatalf("generate %s: %v", shape, err)
	}
	fileName, err := dataset.FileName(shape)
	if err != nil {
		t.Fatal(err)
	}
	if err := datasetrepo.New().Save(filepath.Join(dir, fileName), examples); err != nil {
		t.Fatalf("save dataset: %v", err)
	}
}

func testOptions(datasetsDir, artifactsDir string) Options {
	return Options{
		DatasetsDir:    datasetsDir,
		ModelFile:      filepath.Join(artifactsDir, "model.json"),
		VectorizerFile: filepath.Join(artifactsDir, "vectorizer.json"),
		ConfigFile:     filepath.Join(artifactsDir, "config.yaml"),
		NumEpochs:      3,
		BatchSize:      8,
		HiddenDim:      16,
		Seed:           1,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	datasetsDir := t.TempDir()
	writeDataset(t, datasetsDir, "sphere", 30)
	writeDataset(t, datasetsDir, "cylinder", 30)

	artifactsDir := t.TempDir()
	store := artifact.NewStore()
	svc := New(datasetrepo.New(), store, zap.NewNop())

	opts := testOptions(datasetsDir, artifactsDir)
	result, err := svc.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Examples != 60 {
		t.Errorf("Examples = %d, want 60", result.Examples)
	}
	if result.TrainLoss <= 0 {
		t.Errorf("TrainLoss = %v, want > 0", result.TrainLoss)
	}
	if math.IsNaN(result.ValidLoss) {
		t.Error("ValidLoss is NaN, want a validation split")
	}

	p, cfg, err := store.LoadPredictor(opts.ModelFile, opts.ConfigFile)
	if err != nil {
		t.Fatalf("LoadPredictor: %v", err)
	}
	v, err := store.LoadVectorizer(opts.VectorizerFile)
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}
	if v.Dim() != cfg.InputDim {
		t.Errorf("vectorizer dim %d does not match stored input dim %d", v.Dim(), cfg.InputDim)
	}
	if cfg.HiddenDim != opts.HiddenDim {
		t.Errorf("stored hidden dim %d, want %d", cfg.HiddenDim, opts.HiddenDim)
	}
	if _, _, out := p.Dims(); out != 9 {
		t.Errorf("output dim = %d, want 9", out)
	}
}

func TestRun_Retrain(t *testing.T) {
	datasetsDir := t.TempDir()
	writeDataset(t, datasetsDir, "sphere", 30)

	artifactsDir := t.TempDir()
	svc := New(datasetrepo.New(), artifact.NewStore(), zap.NewNop())
	opts := testOptions(datasetsDir, artifactsDir)

	if _, err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("initial Run: %v", err)
	}

	opts.Retrain = true
	if _, err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("retrain Run: %v", err)
	}
}

func TestRun_RetrainWithoutArtifacts(t *testing.T) {
	datasetsDir := t.TempDir()
	writeDataset(t, datasetsDir, "sphere", 30)

	svc := New(datasetrepo.New(), artifact.NewStore(), zap.NewNop())
	opts := testOptions(datasetsDir, t.TempDir())
	opts.Retrain = true

	if _, err := svc.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error when retraining without stored artifacts")
	}
}

func TestRun_BatchSizeExceedsTrainingSplit(t *testing.T) {
	datasetsDir := t.TempDir()
	writeDataset(t, datasetsDir, "sphere", 10)

	svc := New(datasetrepo.New(), artifact.NewStore(), zap.NewNop())
	opts := testOptions(datasetsDir, t.TempDir())
	opts.BatchSize = 100

	if _, err := svc.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for batch size larger than the training split")
	}
}

func TestRun_MissingDatasetsDir(t *testing.T) {
	svc := New(datasetrepo.New(), artifact.NewStore(), zap.NewNop())
	opts := testOptions(filepath.Join(t.TempDir(), "nope"), t.TempDir())

	if _, err := svc.Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing datasets directory")
	}
}
