package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  api_key: "bridge-key"
gemini:
  api_key: "test-key-123"
  model: "gemini-2.5-pro"
  temperature: 0.4
  timeout_seconds: 30
tailscale:
  enabled: true
  hostname: "coach"
  state_dir: "/tmp/tsnet"
sentry:
  dsn: "https://public@sentry.example.com/1"
log:
  level: "debug"
mcp:
  enabled: false
seed:
  demo_plans: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearKeyEnv keeps API keys from the developer's shell out of the test.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LIFTCOACH_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		t.Setenv(name, "")
	}
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	clearKeyEnv(t)
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "bridge-key" {
		t.Errorf("server.api_key = %q, want %q", cfg.Server.APIKey, "bridge-key")
	}
	if cfg.Gemini.APIKey != "test-key-123" {
		t.Errorf("gemini.api_key = %q, want %q", cfg.Gemini.APIKey, "test-key-123")
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("gemini.model = %q, want %q", cfg.Gemini.Model, "gemini-2.5-pro")
	}
	if cfg.Gemini.Timeout() != 30*time.Second {
		t.Errorf("gemini timeout = %v, want 30s", cfg.Gemini.Timeout())
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "coach" {
		t.Errorf("tailscale = %+v", cfg.Tailscale)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.Log.SlogLevel())
	}
	if cfg.MCP.Enabled {
		t.Error("mcp.enabled = true, want false")
	}
	if cfg.Seed.DemoPlans {
		t.Error("seed.demo_plans = true, want false")
	}
}

// TestLoadDefaults verifies that omitted sections keep their defaults.
func TestLoadDefaults(t *testing.T) {
	clearKeyEnv(t)
	cfg, err := Load(writeTemp(t, "gemini:\n  api_key: k\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini.model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Gemini.Temperature != 0.7 {
		t.Errorf("gemini.temperature = %v, want 0.7", cfg.Gemini.Temperature)
	}
	if !cfg.MCP.Enabled || !cfg.Seed.DemoPlans {
		t.Errorf("mcp/seed defaults = %+v %+v, want enabled", cfg.MCP, cfg.Seed)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.Log.SlogLevel())
	}
}

// TestLoadEnvOnly verifies that an empty path builds the config from the environment.
func TestLoadEnvOnly(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("LIFTCOACH_SERVER_PORT", "7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Errorf("gemini.api_key = %q, want %q", cfg.Gemini.APIKey, "from-env")
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("server.port = %d, want 7000", cfg.Server.Port)
	}
}

// TestEnvOverride verifies that LIFTCOACH_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("LIFTCOACH_GEMINI_API_KEY", "env-key")
	t.Setenv("LIFTCOACH_GEMINI_TEMPERATURE", "1.1")
	t.Setenv("LIFTCOACH_TAILSCALE_ENABLED", "false")
	t.Setenv("LIFTCOACH_LOG_LEVEL", "WARN")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("gemini.api_key = %q, want %q", cfg.Gemini.APIKey, "env-key")
	}
	if cfg.Gemini.Temperature != 1.1 {
		t.Errorf("gemini.temperature = %v, want 1.1", cfg.Gemini.Temperature)
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = true, want false")
	}
	if cfg.Log.SlogLevel() != slog.LevelWarn {
		t.Errorf("log level = %v, want warn", cfg.Log.SlogLevel())
	}
	// Unchanged fields should keep YAML values
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("gemini.model = %q, want %q", cfg.Gemini.Model, "gemini-2.5-pro")
	}
}

// TestFallbackKeyDoesNotOverrideFile verifies GEMINI_API_KEY only fills an empty key.
func TestFallbackKeyDoesNotOverrideFile(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("API_KEY", "generic")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "test-key-123" {
		t.Errorf("gemini.api_key = %q, want %q", cfg.Gemini.APIKey, "test-key-123")
	}
}

// TestValidationMissingAPIKey verifies that a missing API key is rejected.
// Without it every suggestion request would fail.
func TestValidationMissingAPIKey(t *testing.T) {
	clearKeyEnv(t)
	_, err := Load(writeTemp(t, "server:\n  port: 8080\n"))
	if err == nil {
		t.Fatal("expected validation error for missing api_key")
	}
}

// TestValidationBadTemperature verifies out-of-range temperatures are rejected.
func TestValidationBadTemperature(t *testing.T) {
	clearKeyEnv(t)
	_, err := Load(writeTemp(t, "gemini:\n  api_key: k\n  temperature: 3\n"))
	if err == nil {
		t.Fatal("expected validation error for temperature")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
