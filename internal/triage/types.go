// Package triage - types.go defines the per-request pipeline entities.
//
// The orchestrator owns the lifetime of everything here; nothing survives
// past the response except the telemetry record handed to the Recorder.
package triage

import (
	"context"
	"fmt"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/monitoring"
	"github.com/caremesh/triage-gateway/internal/rag"
)

// Mode is the caller-supplied optimization preference. It maps to
// generation parameters, never to a specific model, and is fixed for the
// request's lifetime.
type Mode string

const (
	ModeBalanced Mode = "balanced"
	ModeCost     Mode = "cost"
	ModeQuality  Mode = "quality"
)

// ParseMode validates a mode string. Empty defaults to balanced.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeBalanced, nil
	case ModeBalanced, ModeCost, ModeQuality:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want balanced, cost, or quality)", s)
	}
}

// Request is one triage pipeline invocation.
type Request struct {
	RequestID string
	Message   string
	Mode      Mode

	// ImageData is a base64 data URL, empty when no image is attached.
	ImageData string
}

// HasImage reports whether an image is attached.
func (r *Request) HasImage() bool { return r.ImageData != "" }

// Response is the assembled pipeline result.
type Response struct {
	Text      string
	Warning   string
	Citations map[string]rag.Citation
	Telemetry *monitoring.Record
}

// RouterService is the outbound model-routing collaborator boundary.
type RouterService interface {
	Complete(ctx context.Context, params external.RouteParams) (*external.RouteResult, error)
}
