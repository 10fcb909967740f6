// Package config loads reel's YAML configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// ServerConfig holds catalog API configuration
type ServerConfig struct {
	URL    string `mapstructure:"url" validate:"required,url"`
	APIKey string `mapstructure:"api_key"`
	// Language is sent with every request, e.g. "en-US"
	Language string        `mapstructure:"language" validate:"omitempty,min=2,max=16"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	// Dir holds the bolt database; empty means memory only
	Dir string `mapstructure:"dir"`
	// DedupeTags skips re-appending a category tag a row already carries
	DedupeTags bool `mapstructure:"dedupe_tags"`
	// MaxAge is how long cached rows count as fresh; 0 always refreshes
	MaxAge time.Duration `mapstructure:"max_age" validate:"gte=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"loglevel"`
}

// UIConfig holds output configuration
type UIConfig struct {
	Plain bool `mapstructure:"plain"` // Never start the interactive view
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:      "https://api.themoviedb.org/3",
			Language: "en-US",
			Timeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			Dir:        defaultCachePath(),
			DedupeTags: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "cache")
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.api_key", cfg.Server.APIKey)
	v.SetDefault("server.language", cfg.Server.Language)
	v.SetDefault("server.timeout", cfg.Server.Timeout)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.dedupe_tags", cfg.Cache.DedupeTags)
	v.SetDefault("cache.max_age", cfg.Cache.MaxAge)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetDefault("ui.plain", cfg.UI.Plain)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Environment variable overrides: REEL_SERVER_API_KEY -> server.api_key
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory for
// config.yaml; a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.api_key", cfg.Server.APIKey)
	v.Set("server.language", cfg.Server.Language)
	v.Set("server.timeout", cfg.Server.Timeout.String())

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.dedupe_tags", cfg.Cache.DedupeTags)
	v.Set("cache.max_age", cfg.Cache.MaxAge.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("ui.plain", cfg.UI.Plain)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the server URL and API key are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.APIKey != ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
