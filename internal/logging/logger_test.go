package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewForDirWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewForDir(dir, "info", "json")
	if err != nil {
		t.Fatalf("NewForDir: %v", err)
	}
	logger.Info("snapshot written", "snapshot", "backup_1")

	data, err := os.ReadFile(filepath.Join(dir, "menuforge.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "snapshot written") {
		t.Fatalf("log file missing record: %s", data)
	}
	if !strings.Contains(string(data), `"level":"info"`) {
		t.Fatalf("expected lowercased json level field: %s", data)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("verbose") != parseLevel("info") {
		t.Fatal("unknown levels should fall back to info")
	}
}

func TestWithComponentNilSafe(t *testing.T) {
	logger := WithComponent(nil, "backup")
	logger.Info("must not panic")
}
