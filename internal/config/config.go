package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL     string `yaml:"base_url"`
	Token       string `yaml:"token"`
	Environment string `yaml:"environment"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// Timers for the coordination core. Zero values fall back to the
	// defaults in limits.go; tests inject short intervals directly.
	AutoSaveDelay time.Duration `yaml:"auto_save_delay"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

// Load builds the configuration from the optional YAML config file overlaid
// by environment variables. Environment always wins.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:       "http://localhost:8000",
		Environment:   "dev",
		AutoSaveDelay: DefaultAutoSaveDelay,
		PollInterval:  DefaultPollInterval,
		HTTPTimeout:   DefaultHTTPTimeout,
	}

	if path := configFilePath(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.BaseURL = getEnv("QUILL_API_URL", cfg.BaseURL)
	cfg.Token = getEnv("QUILL_TOKEN", cfg.Token)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.Debug = getEnv("DEBUG", getDefaultDebug(cfg.Environment)) == "true"

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
	)
}

// configFilePath returns the config file location, or "" when the home
// directory cannot be resolved. QUILL_CONFIG overrides the default.
func configFilePath() string {
	if path := os.Getenv("QUILL_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "config.yaml")
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no config file is fine, env alone may be enough
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
