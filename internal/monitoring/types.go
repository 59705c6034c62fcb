// Package monitoring - types.go defines shared types.
//
// DESIGN: These types are used by both gateway/ and triage/ packages.
// Defined here ONCE to avoid duplication and circular imports.
//
// TYPES:
//   - Record:       Telemetry snapshot for each triage request
//   - Config types: TelemetryConfig, LoggerConfig, AlertConfig
package monitoring

import "time"

// =============================================================================
// TELEMETRY RECORD - Structured snapshot of every pipeline decision
// =============================================================================

// Record captures one request through the triage pipeline. It is assembled
// once per request and never mutated after being handed to the Recorder.
//
// Redaction is reported as category names only - raw matched values never
// leave the redactor.
type Record struct {
	RecordID  string    `json:"record_id"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	Intent          string `json:"intent"`
	IntentRationale string `json:"intent_rationale,omitempty"`
	SafetyVerdict   string `json:"safety_verdict"`
	Mode            string `json:"mode"`

	Model            string `json:"model,omitempty"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`
	LatencyMs        int64  `json:"latency_ms,omitempty"`

	PHIDetected   bool     `json:"phi_detected"`
	PHICategories []string `json:"phi_categories,omitempty"`

	HasImage          bool `json:"has_image"`
	DocumentCount     int  `json:"document_count"`
	RetrievalDegraded bool `json:"retrieval_degraded"`

	// Failed is set instead of token/latency fields when the router call
	// is the stage that terminated the request.
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// TelemetryConfig contains telemetry configuration.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	LogPath     string `yaml:"log_path"`    // JSONL sink path
	SQLitePath  string `yaml:"sqlite_path"` // optional durable sink
	LogToStdout bool   `yaml:"log_to_stdout"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// AlertConfig contains alert thresholds.
type AlertConfig struct {
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"`
}
