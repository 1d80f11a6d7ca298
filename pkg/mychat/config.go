// Configuration loading and normalization.
package mychat

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a chat session.
type Config struct {
	Model      string               `yaml:"model"`
	APIKey     string               `yaml:"openai_api_key"`
	APIKeyEnv  string               `yaml:"openai_api_key_env"`
	Prompts    map[string][]Message `yaml:"prompts"`
	PromptsDir string               `yaml:"prompts_dir"`

	// Runtime settings, not sourced from the YAML file.
	BaseURL        string `yaml:"-"`
	TranscriptPath string `yaml:"-"`
	LedgerPath     string `yaml:"-"`
	Verbose        bool   `yaml:"-"`
	Logger         Logger `yaml:"-"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		TranscriptPath: "logs/questions_yml.log",
		LedgerPath:     "logs/current_conv.csv",
		Logger:         NopLogger{},
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func normalizeConfig(cfg Config) Config {
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APIKeyEnv = strings.TrimSpace(cfg.APIKeyEnv)
	cfg.PromptsDir = strings.TrimSpace(cfg.PromptsDir)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.TranscriptPath = strings.TrimSpace(cfg.TranscriptPath)
	cfg.LedgerPath = strings.TrimSpace(cfg.LedgerPath)
	if cfg.TranscriptPath == "" {
		cfg.TranscriptPath = DefaultConfig().TranscriptPath
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = DefaultConfig().LedgerPath
	}
	// The catalog map is copied so session construction never mutates the
	// caller's Config, even when prompts_dir templates are merged in.
	prompts := make(map[string][]Message, len(cfg.Prompts))
	for name, msgs := range cfg.Prompts {
		prompts[name] = msgs
	}
	cfg.Prompts = prompts
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}
	return cfg
}

// resolveAPIKey resolves the completion service secret. A direct key in the
// configuration wins; otherwise the named environment variable is consulted.
// Exactly one of the two must yield a non-empty value.
func resolveAPIKey(cfg Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if cfg.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(cfg.APIKeyEnv)); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("environment variable %s is empty", cfg.APIKeyEnv)
	}
	return "", fmt.Errorf("there is no API key setup")
}
