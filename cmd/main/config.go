package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// GenerationConfig holds default sampling settings for generation.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
}

// Config is the top-level configuration for the command.
type Config struct {
	LogLevel     string            `json:"log_level"`
	DatabasePath string            `json:"database_path"`
	RecordRuns   bool              `json:"record_runs"`
	ServerAddr   string            `json:"server_addr"`
	Generation   *GenerationConfig `json:"generation"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		DatabasePath: defaultDBPath(),
		RecordRuns:   true,
		ServerAddr:   ":7279",
		Generation: &GenerationConfig{
			Temperature: 1.0,
			TopK:        0,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	// Initialize with default configurations
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				err = atomic.WriteFile(path, bytes.NewReader(data))
			}
			if err != nil {
				// Warn instead of failing, as the command can still run with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal the JSON from the file into the config struct.
	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Generation == nil {
		config.Generation = DefaultConfig().Generation
	}

	return config, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger logs to stderr; stdout is reserved for generated text.
func newLogger(config *Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
}
