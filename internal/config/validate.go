package config

import (
	"fmt"
	"strings"

	"govorun/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		add("server.addr", "is required")
	}
	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		add("server.webhook_path", "must start with /")
	}

	if strings.TrimSpace(cfg.OpenAI.Model) == "" {
		add("openai.model", "is required")
	}
	if strings.TrimSpace(cfg.OpenAI.APIKeyEnv) == "" {
		add("openai.api_key_env", "is required")
	}
	if !strings.HasPrefix(cfg.OpenAI.BaseURL, "http://") && !strings.HasPrefix(cfg.OpenAI.BaseURL, "https://") {
		add("openai.base_url", fmt.Sprintf("must be an http(s) URL, got %q", cfg.OpenAI.BaseURL))
	}
	if cfg.OpenAI.BudgetSeconds <= 0 {
		add("openai.budget_seconds", "must be > 0")
	} else if cfg.OpenAI.BudgetSeconds > 60 {
		add("openai.budget_seconds", "must be <= 60")
	}
	if cfg.OpenAI.MaxOutputTokens < 0 {
		add("openai.max_output_tokens", "must be >= 0")
	}
	if cfg.OpenAI.TokenCeiling < cfg.OpenAI.MaxOutputTokens {
		add("openai.token_ceiling", "must be >= max_output_tokens")
	}
	if temp := cfg.OpenAI.Temperature; temp != nil && (*temp < 0 || *temp > 2) {
		add("openai.temperature", fmt.Sprintf("must be between 0 and 2, got %g", *temp))
	}

	switch cfg.Gate.Mode {
	case "disabled", "local":
	default:
		add("gate.mode", fmt.Sprintf("unsupported mode %q", cfg.Gate.Mode))
	}
	if cfg.Gate.Mode == "local" && cfg.Gate.MaxConcurrent < 1 {
		add("gate.max_concurrent", "must be >= 1")
	}

	if cfg.Debug.Enabled {
		if strings.TrimSpace(cfg.Debug.StorePath) == "" {
			add("debug.store_path", "is required when debug is enabled")
		}
		if strings.TrimSpace(cfg.Debug.AuthTokenEnv) == "" {
			add("debug.auth_token_env", "is required when debug is enabled")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
