package gateway

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog/log"

	"github.com/caremesh/triage-gateway/internal/monitoring"
	"github.com/caremesh/triage-gateway/internal/safety"
	"github.com/caremesh/triage-gateway/internal/triage"
)

// handleChat runs one triage pipeline invocation.
func (g *Gateway) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	requestID := monitoring.RequestIDFromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		g.alerts.FlagInvalidRequest(requestID, "body read failed")
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := validateChatBody(body); err != nil {
		g.alerts.FlagInvalidRequest(requestID, err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var chatReq ChatRequest
	if err := json.Unmarshal(body, &chatReq); err != nil {
		g.alerts.FlagInvalidRequest(requestID, "malformed JSON")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	imageData, err := normalizeImage(chatReq.Image)
	if err != nil {
		g.alerts.FlagInvalidRequest(requestID, "invalid image encoding")
		writeError(w, http.StatusBadRequest, "image must be valid base64")
		return
	}

	result, err := g.orchestrator.Process(r.Context(), &triage.Request{
		RequestID: requestID,
		Message:   chatReq.Message,
		Mode:      triage.Mode(chatReq.Mode),
		ImageData: imageData,
	})
	if err != nil {
		g.writeChatError(w, requestID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ChatResponse{
		Response:  result.Text,
		Telemetry: result.Telemetry,
		Citations: result.Citations,
		Warning:   result.Warning,
	}); err != nil {
		g.requestLogger.LogPipelineStage(&monitoring.PipelineStageInfo{
			RequestID: requestID,
			Stage:     "respond",
			Detail:    "response encode failed: " + err.Error(),
		})
	}
}

// writeChatError maps pipeline errors to HTTP statuses. The prohibited
// refusal deliberately carries no detail about what matched.
func (g *Gateway) writeChatError(w http.ResponseWriter, requestID string, err error) {
	var validationErr *triage.ValidationError
	var prohibitedErr *triage.ProhibitedContentError
	var routingErr *triage.RoutingFailureError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Reason)
	case errors.As(err, &prohibitedErr):
		writeError(w, http.StatusBadRequest, safety.RefusalMessage)
	case errors.As(err, &routingErr):
		writeError(w, http.StatusBadGateway, "model routing failed")
	default:
		log.Error().Str("request_id", requestID).Err(err).Msg("unhandled pipeline error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// normalizeImage validates base64 input and wraps it as a data URL for
// the router's vision payload. Empty input passes through.
func normalizeImage(image string) (string, error) {
	if image == "" {
		return "", nil
	}
	if _, err := base64.StdEncoding.DecodeString(image); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + image, nil
}

// handleHealth reports service liveness.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": Version,
	})
}

// handleMetrics exposes pipeline counters as JSON.
func (g *Gateway) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g.metrics.Stats())
}

// handleTelemetryStream streams telemetry records over a websocket as
// they are committed. Slow consumers miss records rather than stalling
// the pipeline.
func (g *Gateway) handleTelemetryStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	records, cancel := g.broadcaster.Subscribe()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "client gone")
			return
		case rec, ok := <-records:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "telemetry shut down")
				return
			}
			if err := wsjson.Write(ctx, conn, rec); err != nil {
				return
			}
		}
	}
}
