package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"govorun/internal/config"
	"govorun/internal/gpt"
	"govorun/internal/spec"
)

// gptConfig maps file configuration to the orchestrator's runtime
// config, resolving the API key from the environment.
func gptConfig(cfg spec.Config) (gpt.Config, error) {
	apiKey := strings.TrimSpace(os.Getenv(cfg.OpenAI.APIKeyEnv))
	if apiKey == "" {
		return gpt.Config{}, fmt.Errorf("environment variable %s is not set", cfg.OpenAI.APIKeyEnv)
	}
	return gpt.Config{
		Model:           cfg.OpenAI.Model,
		BaseURL:         cfg.OpenAI.BaseURL,
		APIKey:          apiKey,
		Temperature:     cfg.OpenAI.Temperature,
		MaxOutputTokens: cfg.OpenAI.MaxOutputTokens,
		TokenCeiling:    cfg.OpenAI.TokenCeiling,
		HardBudget:      time.Duration(cfg.OpenAI.BudgetSeconds * float64(time.Second)),
	}, nil
}

// resolveStorePath resolves the call store path against the project
// root derived from the config file location.
func resolveStorePath(configPath, storePath string) string {
	if filepath.IsAbs(storePath) {
		return storePath
	}
	return filepath.Join(config.RootFromConfigPath(configPath), storePath)
}
