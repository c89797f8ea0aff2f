package config

import "govorun/internal/spec"

// Defaults applied by Normalize for fields the file leaves unset.
const (
	DefaultAddr            = "0.0.0.0:8080"
	DefaultWebhookPath     = "/alice"
	DefaultModel           = "gpt-5-mini"
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultAPIKeyEnv       = "OPENAI_API_KEY"
	DefaultBudgetSeconds   = 9.0
	DefaultMaxOutputTokens = 150
	DefaultTokenCeiling    = 600
	DefaultGateMode        = "local"
	DefaultMaxConcurrent   = 4
	DefaultAuthTokenEnv    = "GOVORUN_DEBUG_TOKEN"
	DefaultStorePath       = ".govorun/calls.duckdb"
)

// Normalize fills in defaults so the rest of the program never checks
// for zero values. Temperature is deliberately left alone: absent means
// "do not send the parameter".
func Normalize(cfg *spec.Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.WebhookPath == "" {
		cfg.Server.WebhookPath = DefaultWebhookPath
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = DefaultModel
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = DefaultBaseURL
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = DefaultAPIKeyEnv
	}
	if cfg.OpenAI.BudgetSeconds == 0 {
		cfg.OpenAI.BudgetSeconds = DefaultBudgetSeconds
	}
	if cfg.OpenAI.MaxOutputTokens == 0 {
		cfg.OpenAI.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if cfg.OpenAI.TokenCeiling == 0 {
		cfg.OpenAI.TokenCeiling = DefaultTokenCeiling
	}
	if cfg.Gate.Mode == "" {
		cfg.Gate.Mode = DefaultGateMode
	}
	if cfg.Gate.MaxConcurrent == 0 {
		cfg.Gate.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.Debug.AuthTokenEnv == "" {
		cfg.Debug.AuthTokenEnv = DefaultAuthTokenEnv
	}
	if cfg.Debug.StorePath == "" {
		cfg.Debug.StorePath = DefaultStorePath
	}
}
