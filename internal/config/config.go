// Package config loads filewright settings from the workspace config file,
// .env.local, and environment variables. Precedence from lowest to highest:
// built-in defaults, <workspace>/.filewright/config.yaml, environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Engine    EngineConfig    `yaml:"engine"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig configures the OpenRouter client.
type APIConfig struct {
	Key        string `yaml:"key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
	SiteURL    string `yaml:"site_url"`
	SiteName   string `yaml:"site_name"`
}

// EngineConfig configures the conversation loop.
type EngineConfig struct {
	MaxIterations  int  `yaml:"max_iterations"`
	SaveTranscript bool `yaml:"save_transcript"`
}

// WorkspaceConfig configures path confinement.
type WorkspaceConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://openrouter.ai/api/v1",
			Model:      "z-ai/glm-4.5",
			TimeoutSec: 120,
			SiteName:   "filewright",
		},
		Engine: EngineConfig{
			MaxIterations:  10,
			SaveTranscript: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective config for workspaceDir. A missing config file
// is not an error; defaults and the environment still apply.
func Load(workspaceDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Workspace.Dir = workspaceDir

	// .env.local is the one dotfile the sandbox rules let the model touch,
	// so the CLI honors it too.
	_ = godotenv.Load(filepath.Join(workspaceDir, ".env.local"))

	path := filepath.Join(workspaceDir, ".filewright", "config.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.API.Key = v
	} else if v := os.Getenv("OPEN_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("FILEWRIGHT_MODEL"); v != "" {
		c.API.Model = v
	}
	if v := os.Getenv("FILEWRIGHT_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if os.Getenv("FILEWRIGHT_DEBUG") == "1" {
		c.Logging.Debug = true
	}
}

// APITimeout returns the request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSec <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// Validate checks the settings a run cannot proceed without.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("no API key configured: set OPENROUTER_API_KEY or api.key in config.yaml")
	}
	if c.Engine.MaxIterations <= 0 {
		return fmt.Errorf("engine.max_iterations must be positive, got %d", c.Engine.MaxIterations)
	}
	return nil
}
