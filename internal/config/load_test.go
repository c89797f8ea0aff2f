package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadRoundTrip verifies the scaffolded config loads cleanly.
func TestLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAI.Model != DefaultModel {
		t.Fatalf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.Server.WebhookPath != DefaultWebhookPath {
		t.Fatalf("webhook_path = %q", cfg.Server.WebhookPath)
	}
}

// TestLoadRejectsInvalid verifies a config failing validation does not load.
func TestLoadRejectsInvalid(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := []byte("version: 1\ngate:\n  mode: global\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected load to fail on gate.mode")
	}
}

// TestScaffoldRefusesOverwrite verifies an existing file is preserved.
func TestScaffoldRefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("first scaffold: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected second scaffold to fail")
	}
}

// TestFindConfigPath verifies the upward search from a nested directory.
func TestFindConfigPath(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("found = %q, want %q", found, path)
	}
	if got := RootFromConfigPath(found); got != root {
		t.Fatalf("root = %q, want %q", got, root)
	}
}
