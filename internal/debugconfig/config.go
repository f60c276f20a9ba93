// Package debugconfig holds the on-disk configuration for the debugger
// CLI: logging, default timeout, cache size, and metrics exposition,
// loaded from a YAML file.
package debugconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Logger mirrors the shape of a typical node logger block: encoding,
// level, and an optional file path.
type Logger struct {
	LogEncoding string `yaml:"LogEncoding"`
	LogLevel    string `yaml:"LogLevel"`
	LogPath     string `yaml:"LogPath"`
}

// Validate returns an error if the logger configuration is not valid.
func (l Logger) Validate() error {
	if l.LogEncoding != "" && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	if l.LogLevel != "" {
		switch l.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid LogLevel: %s", l.LogLevel)
		}
	}
	return nil
}

// Config is the full debugger configuration document.
type Config struct {
	Logger Logger `yaml:"Logger"`

	// DefaultTimeoutSeconds is used whenever a command omits --timeout.
	// Zero means "no timeout".
	DefaultTimeoutSeconds int `yaml:"DefaultTimeoutSeconds"`

	// CacheSize bounds the in-memory bytecode parse-result cache.
	CacheSize int `yaml:"CacheSize"`

	// MetricsAddr, when non-empty, is the address the Prometheus
	// exposition endpoint listens on (e.g. "127.0.0.1:2406"). Empty
	// disables metrics serving.
	MetricsAddr string `yaml:"MetricsAddr"`
}

// Validate returns an error describing the first invalid field found.
func (c Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if c.DefaultTimeoutSeconds < 0 {
		return fmt.Errorf("DefaultTimeoutSeconds must not be negative, got %d", c.DefaultTimeoutSeconds)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CacheSize must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Logger:                Logger{LogEncoding: "console", LogLevel: "info"},
		DefaultTimeoutSeconds: 30,
		CacheSize:             256,
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
