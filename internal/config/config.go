// Package config loads and validates the gateway configuration.
//
// DESIGN: All configuration comes from YAML files. Required fields have
// no defaults; this keeps deployments explicit and auditable. Secrets are
// injected with ${VAR:-default} expansion so config files stay committed.
//
// FILES:
//   - config.go:     Root Config struct, Load(), Validate()
//   - monitoring.go: Logging and telemetry settings
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the triage gateway.
type Config struct {
	Server     ServerConfig     `yaml:"server"`     // HTTP server settings
	Router     RouterConfig     `yaml:"router"`     // Model router collaborator
	Search     SearchConfig     `yaml:"search"`     // Knowledge search collaborator
	Pipeline   PipelineConfig   `yaml:"pipeline"`   // Pipeline tuning
	Monitoring MonitoringConfig `yaml:"monitoring"` // Telemetry and logging
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`           // Port to listen on
	ReadTimeout  time.Duration `yaml:"read_timeout"`   // Max time to read request
	WriteTimeout time.Duration `yaml:"write_timeout"`  // Max time to write response
	RateLimit    int           `yaml:"rate_limit_rps"` // Per-IP requests/second (0 = default)
}

// RouterConfig contains the model router collaborator settings.
type RouterConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Deployment string        `yaml:"deployment"`  // Router deployment name
	APIVersion string        `yaml:"api_version"` // Upstream API version
	MaxTokens  int           `yaml:"max_tokens"`  // Completion cap (0 = default)
	Timeout    time.Duration `yaml:"timeout"`     // Terminal on expiry

	// Auth selects "apikey" (default) or "sigv4" for AWS-fronted routers.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig selects the outbound auth scheme for the router.
type AuthConfig struct {
	Type    string `yaml:"type"`    // apikey, sigv4
	Service string `yaml:"service"` // SigV4 service name
	Region  string `yaml:"region"`  // SigV4 region
}

// SearchConfig contains the knowledge search collaborator settings.
// Disabled search degrades every clinical request to no augmentation.
type SearchConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Index      string        `yaml:"index"`
	APIVersion string        `yaml:"api_version"`
	Timeout    time.Duration `yaml:"timeout"`   // Degrades on expiry, never terminal
	TopK       int           `yaml:"top_k"`     // Passages per query (0 = default 3)
	CacheTTL   time.Duration `yaml:"cache_ttl"` // Retrieval cache TTL (0 = default)
}

// PipelineConfig contains pipeline tuning knobs.
type PipelineConfig struct {
	DocTokenBudget int `yaml:"doc_token_budget"` // Per-document prompt budget (0 = default)
}

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// Load reads configuration from a YAML file.
// Returns an error if the file doesn't exist or is invalid.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion, env overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// This lets deployment tooling redirect log paths without modifying the
// base config files.
func (c *Config) applyEnvOverrides() {
	if envPath := os.Getenv("TRIAGE_TELEMETRY_LOG"); envPath != "" {
		c.Monitoring.TelemetryPath = envPath
	}
	if envPath := os.Getenv("TRIAGE_TELEMETRY_DB"); envPath != "" {
		c.Monitoring.TelemetrySQLitePath = envPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ReadTimeout == 0 {
		return fmt.Errorf("server.read_timeout is required")
	}
	if c.Server.WriteTimeout == 0 {
		return fmt.Errorf("server.write_timeout is required")
	}

	// Router validation
	if c.Router.Endpoint == "" {
		return fmt.Errorf("router.endpoint is required")
	}
	switch c.Router.Auth.Type {
	case "", "apikey":
		if c.Router.APIKey == "" {
			return fmt.Errorf("router.api_key is required with apikey auth")
		}
	case "sigv4":
		// Credentials come from the AWS credential chain.
	default:
		return fmt.Errorf("invalid router.auth.type: %q (want apikey or sigv4)", c.Router.Auth.Type)
	}

	// Search validation (only when enabled)
	if c.Search.Enabled {
		if c.Search.Endpoint == "" {
			return fmt.Errorf("search.endpoint is required when search is enabled")
		}
		if c.Search.APIKey == "" {
			return fmt.Errorf("search.api_key is required when search is enabled")
		}
	}

	return nil
}
