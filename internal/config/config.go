package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ai8future/actual-model/internal/config/envutil"
)

// Config holds the tool's own settings
type Config struct {
	Transcript TranscriptConfig `yaml:"transcript"`
	Router     RouterConfig     `yaml:"router"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TranscriptConfig controls the transcript lookup tier
type TranscriptConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RouterConfig controls the claude-code-router lookup tier
type RouterConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ConfigPath string `yaml:"config_path"` // empty means ~/.claude-code-router/config.json
}

// OutputConfig holds status line formatting settings
type OutputConfig struct {
	Color      string `yaml:"color"`
	ShowSource bool   `yaml:"show_source"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LevelOff disables diagnostics entirely.
const LevelOff = "off"

// Colors lists the names accepted by output.color.
var Colors = []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := envutil.GetStringEnv("ACTUAL_MODEL_CONFIG", DefaultPath())

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist - continue with defaults
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.expandEnvVars()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns ~/.config/actual-model/config.yaml, or "" when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "actual-model", "config.yaml")
}

// Default returns the built-in configuration, used when Load fails.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns configuration matching the plain three-tier lookup
func defaultConfig() *Config {
	return &Config{
		Transcript: TranscriptConfig{
			Enabled: true,
		},
		Router: RouterConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  LevelOff,
			Format: "text",
		},
	}
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	c.Transcript.Enabled = envutil.GetBoolEnv("ACTUAL_MODEL_TRANSCRIPT_ENABLED", c.Transcript.Enabled)
	c.Router.Enabled = envutil.GetBoolEnv("ACTUAL_MODEL_ROUTER_ENABLED", c.Router.Enabled)
	c.Router.ConfigPath = envutil.GetStringEnv("ACTUAL_MODEL_ROUTER_CONFIG", c.Router.ConfigPath)

	c.Output.Color = envutil.GetStringEnv("ACTUAL_MODEL_COLOR", c.Output.Color)
	c.Output.ShowSource = envutil.GetBoolEnv("ACTUAL_MODEL_SHOW_SOURCE", c.Output.ShowSource)

	c.Logging.Level = envutil.GetStringEnv("ACTUAL_MODEL_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envutil.GetStringEnv("ACTUAL_MODEL_LOG_FORMAT", c.Logging.Format)
}

// expandEnvVars expands ${VAR} patterns in path fields
func (c *Config) expandEnvVars() {
	c.Router.ConfigPath = expandEnv(c.Router.ConfigPath)
}

// expandEnv expands ${VAR} patterns in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	return os.ExpandEnv(s)
}

// validate checks configuration validity
func (c *Config) validate() error {
	if err := ValidateLevel(c.Logging.Level); err != nil {
		return err
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}

	return ValidateColor(c.Output.Color)
}

// ValidateLevel checks a logging level name.
func ValidateLevel(level string) error {
	switch strings.ToLower(level) {
	case LevelOff, "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid logging.level: %q", level)
}

// ValidateColor checks an output color name. Empty means no color.
func ValidateColor(name string) error {
	if name == "" {
		return nil
	}
	for _, c := range Colors {
		if strings.EqualFold(name, c) {
			return nil
		}
	}
	return fmt.Errorf("invalid output.color: %q (want one of %s)", name, strings.Join(Colors, ", "))
}
