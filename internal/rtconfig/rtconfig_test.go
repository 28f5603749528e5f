package rtconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed Validate(): %v", err)
	}
}

func TestLoadFillsInOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "gc:\n  nursery_bytes: 4096\n  tenured_bytes: 1048576\ngensym:\n  salt: build-1\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GC.NurseryBytes != 4096 {
		t.Errorf("NurseryBytes = %d, want 4096", cfg.GC.NurseryBytes)
	}
	if cfg.GC.TenuredBytes != 1048576 {
		t.Errorf("TenuredBytes = %d, want 1048576", cfg.GC.TenuredBytes)
	}
	if cfg.Gensym.Salt != "build-1" {
		t.Errorf("Salt = %q, want build-1", cfg.Gensym.Salt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error loading a nonexistent file")
	}
}

func TestLoadRejectsUndersizedArena(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(path, []byte("gc:\n  nursery_bytes: 8\n  tenured_bytes: 1048576\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Validate() to reject an undersized nursery")
	}
}

func TestValidateRejectsZeroValue(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected the zero Config to fail Validate()")
	}
}
