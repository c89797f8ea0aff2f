package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

server:
  addr: "0.0.0.0:8080"
  webhook_path: "/alice"

openai:
  model: "gpt-5-mini"
  base_url: "https://api.openai.com/v1"
  api_key_env: "OPENAI_API_KEY"
  max_output_tokens: 150
  token_ceiling: 600
  budget_seconds: 9.0

gate:
  mode: local
  max_concurrent: 4

debug:
  enabled: false
  auth_token_env: "GOVORUN_DEBUG_TOKEN"
  store_path: ".govorun/calls.duckdb"
`

// Scaffold writes a starter config file at configPath. It refuses to
// overwrite an existing file.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
