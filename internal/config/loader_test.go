package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pickfall.yaml")
	data := []byte("tnt:\n  fuse_seconds: 2.5\n  radius_blocks: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tnt.FuseSeconds != 2.5 {
		t.Errorf("FuseSeconds = %v, want 2.5", cfg.Tnt.FuseSeconds)
	}
	if cfg.Tnt.RadiusBlocks != 5 {
		t.Errorf("RadiusBlocks = %d, want 5", cfg.Tnt.RadiusBlocks)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config path")
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tnt: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEmbeddedDefaultsParse(t *testing.T) {
	// With no custom path and no local config files, Load falls through to
	// the embedded YAML. Run from a temp dir so ./configs is not found.
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(orig)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tnt.FuseSeconds != 4.0 {
		t.Errorf("embedded FuseSeconds = %v, want 4.0", cfg.Tnt.FuseSeconds)
	}
	if cfg.Physics.Gravity <= 0 {
		t.Errorf("embedded Gravity = %v, want > 0", cfg.Physics.Gravity)
	}
	if cfg.Chat.QueuesPopIntervalSeconds != 3.0 {
		t.Errorf("embedded QueuesPopIntervalSeconds = %v, want 3.0", cfg.Chat.QueuesPopIntervalSeconds)
	}
}

func TestDefaultMatchesEmbedded(t *testing.T) {
	// The hardcoded fallback should agree with the embedded YAML on the
	// values gameplay depends on.
	def := Default()
	if def.Tnt.FuseSeconds != 4.0 {
		t.Errorf("Default FuseSeconds = %v, want 4.0", def.Tnt.FuseSeconds)
	}
	if def.Tnt.MegaScale != 2 {
		t.Errorf("Default MegaScale = %d, want 2", def.Tnt.MegaScale)
	}
	if def.Chat.Enabled {
		t.Error("Default chat should be disabled")
	}
}
