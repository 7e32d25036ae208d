package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendRemote = "remote"
)

// Config holds user preferences
type Config struct {
	DataDir       string `yaml:"data_dir" json:"data_dir"`             // Where local backends keep their files
	Backend       string `yaml:"backend" json:"backend"`               // file, sqlite, s3 or remote
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for CLI delete

	// Chart
	Zoom         string `yaml:"zoom" json:"zoom"`                   // quarter, month, week, day
	ThrottleMS   int    `yaml:"throttle_ms" json:"throttle_ms"`     // Minimum interval between drag previews
	DefaultColor string `yaml:"default_color" json:"default_color"` // Color for new tasks

	// Remote snapshot server
	RemoteURL        string `yaml:"remote_url" json:"remote_url"`
	RemoteToken      string `yaml:"remote_token" json:"remote_token"`
	RemotePassphrase string `yaml:"remote_passphrase" json:"-"` // Encrypts snapshots before upload

	// S3
	S3Bucket  string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Region  string `yaml:"s3_region" json:"s3_region"`
	S3Profile string `yaml:"s3_profile" json:"s3_profile"`
	S3Prefix  string `yaml:"s3_prefix" json:"s3_prefix"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.irongantt
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".irongantt"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath := ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "irongantt.log")
	}

	return &Config{
		DataDir:          getEnv("IRONGANTT_DATA_DIR", dir),
		Backend:          getEnv("IRONGANTT_BACKEND", BackendFile),
		ConfirmDelete:    true,
		Zoom:             getEnv("IRONGANTT_ZOOM", "week"),
		ThrottleMS:       getEnvInt("IRONGANTT_THROTTLE_MS", 16),
		DefaultColor:     "#4CAF50",
		RemoteURL:        getEnv("IRONGANTT_REMOTE_URL", "http://localhost:8080"),
		RemoteToken:      getEnv("IRONGANTT_REMOTE_TOKEN", ""),
		RemotePassphrase: getEnv("IRONGANTT_REMOTE_PASSPHRASE", ""),
		S3Bucket:         getEnv("IRONGANTT_S3_BUCKET", ""),
		S3Region:         getEnv("IRONGANTT_S3_REGION", "us-east-1"),
		S3Profile:        getEnv("IRONGANTT_S3_PROFILE", ""),
		S3Prefix:         getEnv("IRONGANTT_S3_PREFIX", "irongantt/"),
		LogLevel:         getEnv("IRONGANTT_LOG_LEVEL", "INFO"),
		LogFile:          getEnv("IRONGANTT_LOG_FILE", logPath),
		LogConsole:       getEnv("IRONGANTT_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 backend")
		}
	case BackendRemote:
		if c.RemoteURL == "" {
			return fmt.Errorf("remote_url is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.ThrottleMS < 0 {
		return fmt.Errorf("throttle_ms must not be negative")
	}
	return nil
}

// Path returns the config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.irongantt/config.yaml
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.irongantt/config.yaml
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
