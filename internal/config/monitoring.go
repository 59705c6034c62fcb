// Monitoring configuration - telemetry and logging settings.
//
// DESIGN: Separates logging (zerolog) from telemetry (JSONL/SQLite sinks).
// Logging is for operators, telemetry is for per-request routing analytics.
package config

import "time"

// MonitoringConfig contains all monitoring settings.
type MonitoringConfig struct {
	// Logging settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, console
	LogOutput string `yaml:"log_output"` // stdout, stderr, or file path

	// Telemetry settings
	TelemetryEnabled    bool   `yaml:"telemetry_enabled"`     // Enable telemetry recording
	TelemetryPath       string `yaml:"telemetry_path"`        // Path to telemetry JSONL file
	TelemetrySQLitePath string `yaml:"telemetry_sqlite_path"` // Optional durable SQLite sink
	LogToStdout         bool   `yaml:"log_to_stdout"`         // Also log telemetry to stdout

	// Alerting
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"`
}
