package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if len(cfg.Generation.Languages) != 14 {
		t.Fatalf("default language set should cover the registry, got %d", len(cfg.Generation.Languages))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if path == "" {
		t.Fatal("resolved path should be reported")
	}
	if cfg.Workflow.BackupRetention != 20 {
		t.Fatalf("expected default retention, got %d", cfg.Workflow.BackupRetention)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[generation]
primary_model = "alpha"
secondary_model = "beta"
languages = ["ja", "en"]

[workflow]
approval_threshold = 100
backup_retention = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file should be detected")
	}
	if cfg.Generation.PrimaryModel != "alpha" || cfg.Generation.SecondaryModel != "beta" {
		t.Fatalf("model overrides not applied: %+v", cfg.Generation)
	}
	if len(cfg.Generation.Languages) != 2 {
		t.Fatalf("language override not applied: %v", cfg.Generation.Languages)
	}
	if cfg.Workflow.ApprovalThreshold != 100 || cfg.Workflow.BackupRetention != 5 {
		t.Fatalf("workflow overrides not applied: %+v", cfg.Workflow)
	}
}

func TestLoadRejectsUnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[generation]
languages = ["ja", "xx"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation failure for unsupported language")
	}
	if !strings.Contains(err.Error(), "unsupported code") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCatchesBadThresholds(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Workflow.ApprovalThreshold = 0
	cfg.Workflow.BackupRetention = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "approval_threshold") || !strings.Contains(err.Error(), "backup_retention") {
		t.Fatalf("expected both problems reported: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config must validate: %v", err)
	}
}
