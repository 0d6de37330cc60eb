package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default notice durations in milliseconds.
const (
	DefaultInfoNoticeMs  = 3000
	DefaultErrorNoticeMs = 5000
)

// Config represents the application configuration
type Config struct {
	Tracker struct {
		Host  string `koanf:"host"`
		Token string `koanf:"token"`
	} `koanf:"tracker"`

	Vault struct {
		Path string `koanf:"path"`
	} `koanf:"vault"`

	// Notice durations are filled in per-key after unmarshalling so that
	// malformed values fall back to the defaults instead of failing the load.
	Notices struct {
		InfoMs  int
		ErrorMs int
	} `koanf:"-"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"tracker.host":     "",
		"tracker.token":    "",
		"notices.info_ms":  DefaultInfoNoticeMs,
		"notices.error_ms": DefaultErrorNoticeMs,
		"vault.path":       ".",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./issuegloss.toml", "$HOME/.issuegloss.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix ISSUEGLOSS_
	k.Load(env.Provider("ISSUEGLOSS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "ISSUEGLOSS_")), "_", ".", -1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	config.Notices.InfoMs = durationMs(k, "notices.info_ms", DefaultInfoNoticeMs)
	config.Notices.ErrorMs = durationMs(k, "notices.error_ms", DefaultErrorNoticeMs)

	return &config, nil
}

// durationMs reads a millisecond duration key, falling back when the value is
// missing, malformed or non-positive.
func durationMs(k *koanf.Koanf, key string, fallback int) int {
	if v := k.Int(key); v > 0 {
		return v
	}
	return fallback
}

// NoticeDuration returns how long transient notices stay visible.
func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.Notices.InfoMs) * time.Millisecond
}

// ErrorNoticeDuration returns how long error notices stay visible.
func (c *Config) ErrorNoticeDuration() time.Duration {
	return time.Duration(c.Notices.ErrorMs) * time.Millisecond
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create sample configuration
	sampleConfig := `# IssueGloss Configuration

[tracker]
host = "youtrack.example.com"
token = "perm:your-api-token"

[notices]
info_ms = 3000
error_ms = 5000

[vault]
path = "."
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Tracker.Host == "" {
		return fmt.Errorf("tracker host is required")
	}

	if config.Tracker.Token == "" {
		return fmt.Errorf("tracker token is required")
	}

	return nil
}
