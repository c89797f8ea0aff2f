package config

import (
	"testing"

	"govorun/internal/spec"
)

// TestNormalizeFillsDefaults verifies every unset field gets its default.
func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := spec.Config{Version: 1}
	Normalize(&cfg)

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.WebhookPath != DefaultWebhookPath {
		t.Errorf("webhook_path = %q", cfg.Server.WebhookPath)
	}
	if cfg.OpenAI.Model != DefaultModel {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.BudgetSeconds != DefaultBudgetSeconds {
		t.Errorf("budget_seconds = %v", cfg.OpenAI.BudgetSeconds)
	}
	if cfg.OpenAI.MaxOutputTokens != DefaultMaxOutputTokens || cfg.OpenAI.TokenCeiling != DefaultTokenCeiling {
		t.Errorf("tokens = %d/%d", cfg.OpenAI.MaxOutputTokens, cfg.OpenAI.TokenCeiling)
	}
	if cfg.OpenAI.Temperature != nil {
		t.Errorf("temperature should stay nil, got %v", *cfg.OpenAI.Temperature)
	}
	if cfg.Gate.Mode != DefaultGateMode || cfg.Gate.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("gate = %q/%d", cfg.Gate.Mode, cfg.Gate.MaxConcurrent)
	}
}

// TestNormalizeKeepsExplicitValues verifies set fields survive.
func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := spec.Config{Version: 1}
	cfg.Server.Addr = "127.0.0.1:9000"
	cfg.OpenAI.Model = "gpt-4"
	cfg.Gate.Mode = "disabled"
	Normalize(&cfg)

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.OpenAI.Model != "gpt-4" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.Gate.Mode != "disabled" {
		t.Errorf("gate mode = %q", cfg.Gate.Mode)
	}
}
