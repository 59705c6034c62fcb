// Package monitoring - request_logger.go logs HTTP request lifecycle.
//
// DESIGN: Structured logging for request tracing at DEBUG level:
//   - LogIncoming:      Request received from client
//   - LogOutgoing:      Call forwarded to a collaborator (router, search)
//   - LogResponse:      Response sent to client
//   - LogPipelineStage: Stage transitions inside the triage pipeline
package monitoring

import (
	"net/http"
	"time"
)

// RequestLogger logs HTTP request lifecycle events.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new request logger.
func NewRequestLogger(logger *Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// RequestInfo contains incoming request information.
type RequestInfo struct {
	RequestID  string
	Method     string
	Path       string
	RemoteAddr string
	BodySize   int
	StartTime  time.Time
}

// NewRequestInfo creates RequestInfo from an HTTP request.
func NewRequestInfo(r *http.Request, requestID string, bodySize int) *RequestInfo {
	return &RequestInfo{
		RequestID:  requestID,
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		BodySize:   bodySize,
		StartTime:  time.Now(),
	}
}

// LogIncoming logs an incoming request.
func (rl *RequestLogger) LogIncoming(info *RequestInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Str("method", info.Method).
		Str("path", info.Path).
		Int("body_size", info.BodySize).
		Msg("incoming")
}

// OutgoingCallInfo contains outbound collaborator call information.
type OutgoingCallInfo struct {
	RequestID    string
	Collaborator string // "router" or "search"
	BodySize     int
}

// LogOutgoing logs an outbound collaborator call.
func (rl *RequestLogger) LogOutgoing(info *OutgoingCallInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Str("collaborator", info.Collaborator).
		Int("body_size", info.BodySize).
		Msg("outgoing")
}

// ResponseInfo contains response information.
type ResponseInfo struct {
	RequestID  string
	StatusCode int
	Latency    time.Duration
}

// LogResponse logs a response.
func (rl *RequestLogger) LogResponse(info *ResponseInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Int("status", info.StatusCode).
		Dur("latency", info.Latency).
		Msg("response")
}

// PipelineStageInfo contains triage pipeline stage information.
type PipelineStageInfo struct {
	RequestID string
	Stage     string
	Detail    string
}

// LogPipelineStage logs a pipeline stage transition.
func (rl *RequestLogger) LogPipelineStage(info *PipelineStageInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Str("stage", info.Stage).
		Str("detail", info.Detail).
		Msg("pipeline")
}
