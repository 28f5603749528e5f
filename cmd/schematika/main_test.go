package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schematika/schematika/internal/rtconfig"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.schematika")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture source: %v", err)
	}
	return path
}

func TestRunFileSucceedsOnWellFormedDefs(t *testing.T) {
	path := writeSource(t, "def x = 1; def y = x + 1;")
	if code := runFile(rtconfig.Default(), path); code != 0 {
		t.Fatalf("runFile() = %d, want 0", code)
	}
}

func TestRunFileReportsParseError(t *testing.T) {
	path := writeSource(t, "def x = ;")
	if code := runFile(rtconfig.Default(), path); code != 1 {
		t.Fatalf("runFile() on malformed source = %d, want 1", code)
	}
}

func TestRunFileMissingPath(t *testing.T) {
	if code := runFile(rtconfig.Default(), filepath.Join(t.TempDir(), "nope.schematika")); code != 1 {
		t.Fatalf("runFile() on a missing path = %d, want 1", code)
	}
}
