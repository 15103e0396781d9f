package router

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ai8future/actual-model/internal/status"
)

// fakeHome returns a HomeFunc rooted at a fresh temp dir.
func fakeHome(t *testing.T) (string, HomeFunc) {
	t.Helper()
	dir := t.TempDir()
	return dir, func() (string, error) { return dir, nil }
}

func writeRouterConfig(t *testing.T, home, content string) string {
	t.Helper()
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write router config: %v", err)
	}
	return path
}

func TestModelFromRoute(t *testing.T) {
	tests := []struct {
		route  string
		want   string
		wantOK bool
	}{
		{"route1,gpt-x", "gpt-x", true},
		{"openrouter, anthropic/claude-sonnet-4 ", "anthropic/claude-sonnet-4", true},
		{"a,b,c", "b", true},
		{"route1", "", false},
		{"route1,", "", false},
		{"route1,   ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, ok := ModelFromRoute(tt.route)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ModelFromRoute(%q) = (%q, %v), want (%q, %v)", tt.route, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{
			name:    "plain json",
			content: `{"Providers": [], "Router": {"default": "route1,gpt-x", "background": "ollama,qwen"}}`,
			want:    "gpt-x",
			wantOK:  true,
		},
		{
			name: "json5 with comments and trailing commas",
			content: `{
				// hand-edited
				"Router": {
					"default": "deepseek,deepseek-chat",
					"longContextThreshold": 60000,
				},
			}`,
			want:   "deepseek-chat",
			wantOK: true,
		},
		{
			name:    "no model segment",
			content: `{"Router": {"default": "route1"}}`,
			wantOK:  false,
		},
		{
			name:    "no default",
			content: `{"Router": {"think": "a,b"}}`,
			wantOK:  false,
		},
		{
			name:    "no router table",
			content: `{"LOG": true}`,
			wantOK:  false,
		},
		{
			name:    "key names are case-sensitive",
			content: `{"router": {"DEFAULT": "r,case-model"}, "Router": {"Default": "r,other"}}`,
			wantOK:  false,
		},
		{
			name:    "non-string default",
			content: `{"Router": {"default": 42}}`,
			wantOK:  false,
		},
		{
			name:    "non-object router",
			content: `{"Router": "r,flat"}`,
			wantOK:  false,
		},
		{
			name:    "top-level array",
			content: `[{"Router": {"default": "r,m"}}]`,
			wantOK:  false,
		},
		{
			name:    "malformed",
			content: `{"Router": {"default": "a,b"`,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, homeFn := fakeHome(t)
			writeRouterConfig(t, home, tt.content)

			got, ok := NewReader("", homeFn).DefaultModel()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DefaultModel() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultModel_MissingFile(t *testing.T) {
	_, homeFn := fakeHome(t)
	if got, ok := NewReader("", homeFn).DefaultModel(); ok {
		t.Errorf("DefaultModel() = %q, want absent", got)
	}
}

func TestDefaultModel_HomeError(t *testing.T) {
	homeFn := func() (string, error) { return "", errors.New("no home") }
	if got, ok := NewReader("", homeFn).DefaultModel(); ok {
		t.Errorf("DefaultModel() = %q, want absent", got)
	}
}

func TestConfigPath(t *testing.T) {
	home, homeFn := fakeHome(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"default", "", filepath.Join(home, ".claude-code-router", "config.json")},
		{"tilde", "~/router/config.json", filepath.Join(home, "router", "config.json")},
		{"absolute", "/etc/ccr/../ccr/config.json", "/etc/ccr/config.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(tt.path, homeFn).ConfigPath()
			if err != nil {
				t.Fatalf("ConfigPath() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ConfigPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultModel_OverridePath(t *testing.T) {
	_, homeFn := fakeHome(t)
	path := filepath.Join(t.TempDir(), "ccr.json")
	if err := os.WriteFile(path, []byte(`{"Router": {"default": "p,override-model"}}`), 0o644); err != nil {
		t.Fatalf("failed to write router config: %v", err)
	}

	got, ok := NewReader(path, homeFn).DefaultModel()
	if !ok || got != "override-model" {
		t.Errorf("DefaultModel() = (%q, %v), want (%q, true)", got, ok, "override-model")
	}
}

func TestReader_Lookup(t *testing.T) {
	home, homeFn := fakeHome(t)
	writeRouterConfig(t, home, `{"Router": {"default": "r,routed"}}`)

	r := NewReader("", homeFn)
	if r.Name() != "router" {
		t.Errorf("Name() = %q, want %q", r.Name(), "router")
	}
	got, ok := r.Lookup(&status.Record{Model: status.Model{ID: "ignored"}})
	if !ok || got != "routed" {
		t.Errorf("Lookup() = (%q, %v), want (%q, true)", got, ok, "routed")
	}
}
