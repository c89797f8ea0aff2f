package spec

// Config mirrors the YAML configuration file verbatim. Defaults and
// validation happen later, in internal/config; parsed values keep
// their zero values so normalization can tell "absent" from "set".
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	OpenAI  OpenAIConfig `yaml:"openai"`
	Gate    GateConfig   `yaml:"gate"`
	Debug   DebugConfig  `yaml:"debug"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	WebhookPath string `yaml:"webhook_path"`
}

type OpenAIConfig struct {
	Model           string   `yaml:"model"`
	BaseURL         string   `yaml:"base_url"`
	APIKeyEnv       string   `yaml:"api_key_env"`
	Temperature     *float64 `yaml:"temperature"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
	TokenCeiling    int      `yaml:"token_ceiling"`
	BudgetSeconds   float64  `yaml:"budget_seconds"`
}

type GateConfig struct {
	Mode          string `yaml:"mode"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type DebugConfig struct {
	Enabled      bool   `yaml:"enabled"`
	AuthTokenEnv string `yaml:"auth_token_env"`
	StorePath    string `yaml:"store_path"`
}
