package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWhenNoConfigFileIsSet(t *testing.T) {
	t.Setenv("REC_CONFIG_FILE", "")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Name == "" {
		t.Fatalf("expected a default server name")
	}
}

func TestLoadConfig_ReadsConfigFileWhenSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "server:\n  name: test-recommender\n  version: \"9.9.9\"\n  environment: test\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	t.Setenv("REC_CONFIG_FILE", path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Name != "test-recommender" {
		t.Fatalf("expected name from file, got %q", cfg.Server.Name)
	}
}
