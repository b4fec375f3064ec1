// Package config loads and saves the application configuration from
// ~/.config/tmuxtutor/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// TmuxConf is the tmux configuration file to analyze and merge into.
	TmuxConf string `yaml:"tmux_conf"`
	// BackupDir holds timestamped config backups.
	BackupDir string `yaml:"backup_dir"`
	// DatabasePath is the SQLite progress database location.
	DatabasePath string `yaml:"database_path"`

	AI struct {
		Model     string `yaml:"model"`      // Anthropic model name
		MaxTokens int    `yaml:"max_tokens"` // Completion token limit
	} `yaml:"ai"`

	Sandbox struct {
		Image         string `yaml:"image"`          // Docker image for the practice sandbox
		ContainerName string `yaml:"container_name"` // Container name, one sandbox per user
		AttachSession string `yaml:"attach_session"` // tmux session name inside the container
	} `yaml:"sandbox"`

	Discovery struct {
		GithubTimeout int `yaml:"github_timeout"` // Seconds before giving up on a fetch
	} `yaml:"discovery"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration from the default location
// (~/.config/tmuxtutor/config.yaml).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "tmuxtutor", "config.yaml")
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.TmuxConf != "" {
		cfg.TmuxConf = tempCfg.TmuxConf
	}
	if tempCfg.BackupDir != "" {
		cfg.BackupDir = tempCfg.BackupDir
	}
	if tempCfg.DatabasePath != "" {
		cfg.DatabasePath = tempCfg.DatabasePath
	}
	if tempCfg.AI.Model != "" {
		cfg.AI.Model = tempCfg.AI.Model
	}
	if tempCfg.AI.MaxTokens > 0 {
		cfg.AI.MaxTokens = tempCfg.AI.MaxTokens
	}
	if tempCfg.Sandbox.Image != "" {
		cfg.Sandbox.Image = tempCfg.Sandbox.Image
	}
	if tempCfg.Sandbox.ContainerName != "" {
		cfg.Sandbox.ContainerName = tempCfg.Sandbox.ContainerName
	}
	if tempCfg.Sandbox.AttachSession != "" {
		cfg.Sandbox.AttachSession = tempCfg.Sandbox.AttachSession
	}
	if tempCfg.Discovery.GithubTimeout > 0 {
		cfg.Discovery.GithubTimeout = tempCfg.Discovery.GithubTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	cfg := &Config{
		TmuxConf:     filepath.Join(home, ".tmux.conf"),
		BackupDir:    filepath.Join(home, ".local", "share", "tmuxtutor", "backups"),
		DatabasePath: filepath.Join(home, ".local", "share", "tmuxtutor", "progress.db"),
	}

	cfg.AI.Model = "claude-sonnet-4-20250514"
	cfg.AI.MaxTokens = 2048

	cfg.Sandbox.Image = "tmuxtutor-sandbox"
	cfg.Sandbox.ContainerName = "tmuxtutor-sandbox"
	cfg.Sandbox.AttachSession = "practice"

	cfg.Discovery.GithubTimeout = 15

	return cfg
}

// Save saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if c.TmuxConf == "" {
		return fmt.Errorf("tmux_conf path is required")
	}
	if c.AI.MaxTokens < 1 {
		return fmt.Errorf("ai.max_tokens must be >= 1")
	}
	if c.Sandbox.ContainerName == "" {
		return fmt.Errorf("sandbox.container_name is required")
	}
	if c.Discovery.GithubTimeout < 1 {
		return fmt.Errorf("discovery.github_timeout must be >= 1 second")
	}
	return nil
}
