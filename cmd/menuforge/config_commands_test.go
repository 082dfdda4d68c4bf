package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"menuforge/internal/config"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected refusal to overwrite without --overwrite")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestResolveLanguagesFlagParsing(t *testing.T) {
	defaults := config.Default()
	cfg := &defaults

	codes, err := resolveLanguages(cfg, " en , zh-cn ")
	if err != nil {
		t.Fatalf("resolveLanguages: %v", err)
	}
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "zh-CN" {
		t.Fatalf("unexpected codes %v", codes)
	}

	if _, err := resolveLanguages(cfg, "xx"); err == nil {
		t.Fatal("expected unsupported language error")
	}

	codes, err = resolveLanguages(cfg, "")
	if err != nil {
		t.Fatalf("resolveLanguages default: %v", err)
	}
	if len(codes) != len(cfg.Generation.Languages) {
		t.Fatalf("expected configured set, got %v", codes)
	}
}
