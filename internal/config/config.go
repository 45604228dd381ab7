package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Sentry    SentryConfig    `yaml:"sentry"`
	Log       LogConfig       `yaml:"log"`
	MCP       MCPConfig       `yaml:"mcp"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// APIKey, when set, is required in the X-API-Key header of every API
	// and MCP request.
	APIKey string `yaml:"api_key"`
}

type GeminiConfig struct {
	APIKey            string  `yaml:"api_key"`
	Model             string  `yaml:"model"`
	Endpoint          string  `yaml:"endpoint"`
	Temperature       float64 `yaml:"temperature"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
}

// Timeout returns the per-attempt request timeout.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SeedConfig struct {
	DemoPlans bool `yaml:"demo_plans"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Gemini: GeminiConfig{
			Model:             "gemini-2.5-flash",
			Endpoint:          "https://generativelanguage.googleapis.com/v1beta",
			Temperature:       0.7,
			TimeoutSeconds:    60,
			RequestsPerMinute: 30,
		},
		Tailscale: TailscaleConfig{Hostname: "liftcoach"},
		Sentry:    SentryConfig{Environment: "production"},
		Log:       LogConfig{Level: "info"},
		MCP:       MCPConfig{Enabled: true},
		Seed:      SeedConfig{DemoPlans: true},
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix LIFTCOACH_ and underscore-separated paths:
//
//	LIFTCOACH_SERVER_HOST, LIFTCOACH_SERVER_PORT, LIFTCOACH_SERVER_API_KEY,
//	LIFTCOACH_GEMINI_API_KEY, LIFTCOACH_GEMINI_MODEL,
//	LIFTCOACH_GEMINI_ENDPOINT, LIFTCOACH_GEMINI_TEMPERATURE,
//	LIFTCOACH_TAILSCALE_ENABLED, LIFTCOACH_TAILSCALE_HOSTNAME,
//	LIFTCOACH_SENTRY_DSN, LIFTCOACH_LOG_LEVEL
//
// GEMINI_API_KEY and API_KEY are accepted when LIFTCOACH_GEMINI_API_KEY and
// gemini.api_key are both unset.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTCOACH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTCOACH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTCOACH_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("LIFTCOACH_GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if cfg.Gemini.APIKey == "" {
		for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
			if v := os.Getenv(name); v != "" {
				cfg.Gemini.APIKey = v
				break
			}
		}
	}
	if v := os.Getenv("LIFTCOACH_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("LIFTCOACH_GEMINI_ENDPOINT"); v != "" {
		cfg.Gemini.Endpoint = v
	}
	if v := os.Getenv("LIFTCOACH_GEMINI_TEMPERATURE"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Gemini.Temperature = temp
		}
	}
	if v := os.Getenv("LIFTCOACH_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("LIFTCOACH_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("LIFTCOACH_SENTRY_DSN"); v != "" {
		cfg.Sentry.DSN = v
	}
	if v := os.Getenv("LIFTCOACH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required (or set GEMINI_API_KEY)")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2")
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		return fmt.Errorf("gemini.timeout_seconds must be positive")
	}
	if c.Gemini.RequestsPerMinute < 0 {
		return fmt.Errorf("gemini.requests_per_minute must not be negative")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
