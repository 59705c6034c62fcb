// Package triage sequences the request-processing pipeline.
//
// DESIGN: A fixed state machine, each stage visited exactly once:
//
//	Received -> Redacted -> Screened -> {Rejected | Classified}
//	  -> (Clinical: Retrieved) -> Routed -> Recorded -> Responded
//
// Rejected is terminal and short-circuits everything downstream,
// including the router call. No stage is retried. A router failure
// transitions straight to the error response; its telemetry carries a
// failure flag instead of token/latency fields. Requests share no
// mutable state, so concurrent invocations need no locking beyond the
// append-safe telemetry sink.
package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/intent"
	"github.com/caremesh/triage-gateway/internal/monitoring"
	"github.com/caremesh/triage-gateway/internal/rag"
	"github.com/caremesh/triage-gateway/internal/redact"
	"github.com/caremesh/triage-gateway/internal/safety"
)

// visionPrompt frames an image request for the vision-completion shape.
const visionPrompt = `Analyze this medical image and provide an educational description.

User Question: %s

Please provide:
1. A detailed description of what you observe
2. Educational information about relevant anatomy or conditions
3. Appropriate confidence levels and limitations
4. Safety language emphasizing this is not a diagnostic tool

Remember: This is for educational purposes only, not for diagnosis.`

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	redactor   *redact.Redactor
	screener   *safety.Screener
	classifier *intent.Classifier
	retriever  *rag.Retriever
	prompts    *rag.PromptBuilder
	router     RouterService
	recorder   *monitoring.Recorder
	metrics    *monitoring.MetricsCollector
	alerts     *monitoring.AlertManager
	requestLog *monitoring.RequestLogger
}

// Deps carries the orchestrator's collaborators.
type Deps struct {
	Redactor   *redact.Redactor
	Screener   *safety.Screener
	Classifier *intent.Classifier
	Retriever  *rag.Retriever
	Prompts    *rag.PromptBuilder
	Router     RouterService
	Recorder   *monitoring.Recorder
	Metrics    *monitoring.MetricsCollector
	Alerts     *monitoring.AlertManager
	RequestLog *monitoring.RequestLogger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(d Deps) *Orchestrator {
	return &Orchestrator{
		redactor:   d.Redactor,
		screener:   d.Screener,
		classifier: d.Classifier,
		retriever:  d.Retriever,
		prompts:    d.Prompts,
		router:     d.Router,
		recorder:   d.Recorder,
		metrics:    d.Metrics,
		alerts:     d.Alerts,
		requestLog: d.RequestLog,
	}
}

// Process runs one request through the pipeline.
func (o *Orchestrator) Process(ctx context.Context, req *Request) (*Response, error) {
	// Received
	if strings.TrimSpace(req.Message) == "" {
		o.alerts.FlagInvalidRequest(req.RequestID, "empty message")
		return nil, &ValidationError{Reason: "message is required"}
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		o.alerts.FlagInvalidRequest(req.RequestID, err.Error())
		return nil, &ValidationError{Reason: err.Error()}
	}
	req.Mode = mode

	// Redacted
	redaction := o.redactor.Redact(req.Message)
	o.stage(req.RequestID, "redacted", strings.Join(redaction.CategoryNames(), ","))

	// Screened
	verdict := o.screener.Screen(redaction.SanitizedText)
	o.stage(req.RequestID, "screened", string(verdict.Level))

	var warning string
	switch verdict.Level {
	case safety.LevelProhibited:
		// Rejected: terminal, nothing downstream runs.
		o.metrics.RecordProhibited()
		o.alerts.FlagProhibited(req.RequestID, verdict.MatchedTerm)
		return nil, &ProhibitedContentError{MatchedTerm: verdict.MatchedTerm}
	case safety.LevelEmergency:
		o.metrics.RecordEmergency()
		warning = safety.EmergencyWarning
	}

	// Classified
	cls := o.classifier.Classify(redaction.SanitizedText, req.HasImage())
	o.stage(req.RequestID, "classified", string(cls.Intent))

	// Retrieved (Clinical only)
	var docs []external.Document
	var degraded bool
	prompt := redaction.SanitizedText
	switch cls.Intent {
	case intent.Clinical:
		o.outgoing(req.RequestID, "search", len(redaction.SanitizedText))
		result := o.retriever.Retrieve(ctx, redaction.SanitizedText)
		docs, degraded = result.Documents, result.Degraded
		o.metrics.RecordRetrieval(degraded)
		prompt = o.prompts.Build(redaction.SanitizedText, docs)
		o.stage(req.RequestID, "retrieved", "")
	case intent.Vision:
		prompt = visionPromptFor(redaction.SanitizedText)
	}

	// Routed: exactly one external call per request.
	o.outgoing(req.RequestID, "router", len(prompt)+len(req.ImageData))
	routed, err := o.router.Complete(ctx, external.RouteParams{
		Prompt:    prompt,
		Mode:      string(req.Mode),
		ImageData: req.ImageData,
	})
	if err != nil {
		o.metrics.RecordRouterFailure()
		o.alerts.FlagRouterError(req.RequestID, string(req.Mode), err)
		o.recorder.Record(o.failureRecord(req, redaction, verdict, cls, degraded, err))
		return nil, &RoutingFailureError{Err: err}
	}
	o.stage(req.RequestID, "routed", routed.Model)

	// Recorded
	record := &monitoring.Record{
		RequestID:         req.RequestID,
		Intent:            string(cls.Intent),
		IntentRationale:   cls.Rationale,
		SafetyVerdict:     string(verdict.Level),
		Mode:              string(req.Mode),
		Model:             routed.Model,
		PromptTokens:      routed.PromptTokens,
		CompletionTokens:  routed.CompletionTokens,
		TotalTokens:       routed.TotalTokens,
		LatencyMs:         routed.LatencyMs,
		PHIDetected:       redaction.HasPHI(),
		PHICategories:     redaction.CategoryNames(),
		HasImage:          req.HasImage(),
		DocumentCount:     len(docs),
		RetrievalDegraded: degraded,
	}
	o.recorder.Record(record)

	// Responded
	return &Response{
		Text:      safety.AddDisclaimer(routed.Text, string(cls.Intent)),
		Warning:   warning,
		Citations: rag.ExtractCitations(routed.Text, docs),
		Telemetry: record,
	}, nil
}

// failureRecord builds the failure-flagged telemetry snapshot for a
// terminal router error: failure flag instead of token/latency fields.
func (o *Orchestrator) failureRecord(req *Request, redaction redact.Result, verdict safety.Verdict, cls intent.Classification, degraded bool, err error) *monitoring.Record {
	return &monitoring.Record{
		RequestID:         req.RequestID,
		Intent:            string(cls.Intent),
		IntentRationale:   cls.Rationale,
		SafetyVerdict:     string(verdict.Level),
		Mode:              string(req.Mode),
		PHIDetected:       redaction.HasPHI(),
		PHICategories:     redaction.CategoryNames(),
		HasImage:          req.HasImage(),
		RetrievalDegraded: degraded,
		Failed:            true,
		Error:             err.Error(),
	}
}

func (o *Orchestrator) stage(requestID, stage, detail string) {
	if o.requestLog == nil {
		return
	}
	o.requestLog.LogPipelineStage(&monitoring.PipelineStageInfo{
		RequestID: requestID,
		Stage:     stage,
		Detail:    detail,
	})
}

func (o *Orchestrator) outgoing(requestID, collaborator string, bodySize int) {
	if o.requestLog == nil {
		return
	}
	o.requestLog.LogOutgoing(&monitoring.OutgoingCallInfo{
		RequestID:    requestID,
		Collaborator: collaborator,
		BodySize:     bodySize,
	})
}

func visionPromptFor(message string) string {
	return fmt.Sprintf(visionPrompt, message)
}
