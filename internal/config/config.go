package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	APIURL         string `json:"apiUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	CachePath      string `json:"cachePath"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		TimeoutSeconds: 30,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads config from the JSON file, applies defaults for missing fields
// and environment overrides on top. Creates the file with defaults if it
// doesn't exist. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	config, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if url := os.Getenv("SMARK_API_URL"); url != "" {
		config.APIURL = url
	}
	if timeout := os.Getenv("SMARK_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			config.TimeoutSeconds = seconds
		}
	}

	return config, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if config.APIURL == "" {
		config.APIURL = defaults.APIURL
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return &config, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultFilePath returns the default config path: ~/.config/smark/config.json
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "smark", "config.json"), nil
}

// DefaultCachePath returns the default snapshot cache path:
// ~/.config/smark/cache.db
func DefaultCachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "smark", "cache.db"), nil
}
