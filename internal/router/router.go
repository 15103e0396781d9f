// Package router reads the claude-code-router configuration to find the
// model its default route points at.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/ai8future/actual-model/internal/status"
)

const (
	configDirName  = ".claude-code-router"
	configFileName = "config.json"
)

// HomeFunc resolves the user's home directory.
type HomeFunc func() (string, error)

// Config is the subset of the router configuration this tool reads.
type Config struct {
	Router Routes
}

// Routes maps route names to "<provider>,<model>" specs. Only the default
// route is consulted.
type Routes struct {
	Default string
}

// Config keys are matched case-sensitively.
const (
	keyRouter  = "Router"
	keyDefault = "default"
)

// DefaultPath returns <home>/.claude-code-router/config.json.
func DefaultPath(home HomeFunc) (string, error) {
	if home == nil {
		home = os.UserHomeDir
	}
	dir, err := home()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("home directory is empty")
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads and decodes the router configuration at path. The file may use
// JSON5 syntax.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read router config: %w", err)
	}
	var raw map[string]interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse router config: %w", err)
	}

	var cfg Config
	if routes, ok := raw[keyRouter].(map[string]interface{}); ok {
		// A non-string default names no route.
		cfg.Router.Default, _ = routes[keyDefault].(string)
	}
	return &cfg, nil
}

// ModelFromRoute extracts the model from a "<provider>,<model>" route spec.
// Only the second segment is used; anything after it is ignored.
func ModelFromRoute(route string) (string, bool) {
	parts := strings.Split(route, ",")
	if len(parts) < 2 {
		return "", false
	}
	model := strings.TrimSpace(parts[1])
	if model == "" {
		return "", false
	}
	return model, true
}

// Reader resolves the router's default model.
type Reader struct {
	// Path overrides the config location. A leading "~" expands to the
	// home directory. Empty means DefaultPath.
	Path string
	Home HomeFunc
}

// NewReader returns a Reader for path, using home to resolve the default
// location. A nil home uses os.UserHomeDir.
func NewReader(path string, home HomeFunc) *Reader {
	if home == nil {
		home = os.UserHomeDir
	}
	return &Reader{Path: path, Home: home}
}

// ConfigPath returns the file the reader will consult.
func (r *Reader) ConfigPath() (string, error) {
	trimmed := strings.TrimSpace(r.Path)
	if trimmed == "" {
		return DefaultPath(r.Home)
	}
	if strings.HasPrefix(trimmed, "~") {
		home := r.Home
		if home == nil {
			home = os.UserHomeDir
		}
		dir, err := home()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(dir, strings.TrimPrefix(trimmed, "~")), nil
	}
	return filepath.Clean(trimmed), nil
}

// DefaultModel returns the model of the default route. Any failure, from a
// missing file to a route without a model segment, reports false.
func (r *Reader) DefaultModel() (string, bool) {
	path, err := r.ConfigPath()
	if err != nil {
		slog.Debug("router config path unavailable", "error", err)
		return "", false
	}

	cfg, err := Load(path)
	if err != nil {
		slog.Debug("router config unavailable", "path", path, "error", err)
		return "", false
	}
	if cfg.Router.Default == "" {
		slog.Debug("router config has no default route", "path", path)
		return "", false
	}

	model, ok := ModelFromRoute(cfg.Router.Default)
	if !ok {
		slog.Debug("default route names no model", "path", path, "route", cfg.Router.Default)
		return "", false
	}
	return model, true
}

// Name implements resolve.Tier.
func (r *Reader) Name() string { return "router" }

// Lookup implements resolve.Tier. The payload is not consulted.
func (r *Reader) Lookup(*status.Record) (string, bool) {
	return r.DefaultModel()
}
