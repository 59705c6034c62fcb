// Package triage - errors.go defines the pipeline error taxonomy.
//
// DESIGN: Each variant maps to one caller-visible outcome:
//   - ValidationError:        400, no pipeline stages run
//   - ProhibitedContentError:  400 with generic refusal, no router call
//   - RoutingFailureError:     502, terminal, failure-flagged telemetry
//
// Retrieval degradation and telemetry write failures are deliberately NOT
// errors: the former falls back silently (telemetry flag only), the latter
// is swallowed inside the Recorder.
package triage

import "fmt"

// ValidationError reports an empty or malformed request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// ProhibitedContentError reports a safety screener veto. The matched term
// is kept for logging only and must not be echoed to the caller.
type ProhibitedContentError struct {
	MatchedTerm string
}

func (e *ProhibitedContentError) Error() string {
	return "request blocked by safety screening"
}

// RoutingFailureError reports a terminal model router failure or timeout.
type RoutingFailureError struct {
	Err error
}

func (e *RoutingFailureError) Error() string {
	return fmt.Sprintf("model router call failed: %v", e.Err)
}

func (e *RoutingFailureError) Unwrap() error { return e.Err }
