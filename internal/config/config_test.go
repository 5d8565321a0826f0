package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 70000},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for port out of range")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Artifacts.ModelFile != "model.json" {
		t.Errorf("expected ModelFile='model.json', got %q", cfg.Artifacts.ModelFile)
	}
	if cfg.Artifacts.VectorizerFile != "vectorizer.json" {
		t.Errorf("expected VectorizerFile='vectorizer.json', got %q", cfg.Artifacts.VectorizerFile)
	}
	if cfg.Artifacts.ConfigFile != "config.yaml" {
		t.Errorf("expected ConfigFile='config.yaml', got %q", cfg.Artifacts.ConfigFile)
	}
	if cfg.Cache.TTLSec != 3600 {
		t.Errorf("expected TTLSec=3600, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Cache.ReadinessTimeout)
	}
	if cfg.Augment.Model != "gpt-4o-mini" {
		t.Errorf("expected Model='gpt-4o-mini', got %q", cfg.Augment.Model)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Artifacts: ArtifactsConfig{
			ModelFile:      "artifacts/model.json",
			VectorizerFile: "artifacts/vectorizer.json",
			ConfigFile:     "artifacts/config.yaml",
		},
		Cache:   CacheConfig{TTLSec: 60, ReadinessTimeout: 15},
		Augment: AugmentConfig{Model: "gpt-4o", Temperature: 0.2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Artifacts.ModelFile != "artifacts/model.json" {
		t.Errorf("expected ModelFile='artifacts/model.json', got %q", cfg.Artifacts.ModelFile)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("expected TTLSec=60, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Augment.Model != "gpt-4o" {
		t.Errorf("expected Model='gpt-4o', got %q", cfg.Augment.Model)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	content := []byte(`
http:
  port: 8080
cache:
  addrs: ["${TEST_CACHE_ADDR:-localhost:6379}"]
auth:
  api_keys: ["${TEST_API_KEY}"]
`)
	if err := os.WriteFile(filepath.Join("config", "test.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_API_KEY", "secret-key")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Cache.Addrs) != 1 || cfg.Cache.Addrs[0] != "localhost:6379" {
		t.Errorf("expected default cache addr, got %v", cfg.Cache.Addrs)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "secret-key" {
		t.Errorf("expected api key from env, got %v", cfg.Auth.APIKeys)
	}
}
