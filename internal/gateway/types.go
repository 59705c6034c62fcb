// Package gateway types - wire types for the triage gateway.
//
// DESIGN: The inbound /chat body is validated against a JSON Schema
// before any pipeline stage runs, so malformed payloads fail fast as
// ValidationError without touching the redactor.
package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"

	"github.com/caremesh/triage-gateway/internal/monitoring"
	"github.com/caremesh/triage-gateway/internal/rag"
)

// ChatRequest is the inbound /chat body.
type ChatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"`
	Image   string `json:"image,omitempty"` // base64 encoded image
}

// ChatResponse is the /chat response body.
type ChatResponse struct {
	Response  string                  `json:"response"`
	Telemetry *monitoring.Record      `json:"telemetry"`
	Citations map[string]rag.Citation `json:"citations,omitempty"`
	Warning   string                  `json:"warning,omitempty"`
}

// ErrorResponse carries a plain-text explanation for 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

const chatRequestSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {"type": "string", "minLength": 1},
		"mode": {"type": "string", "enum": ["balanced", "cost", "quality"]},
		"image": {"type": "string", "contentEncoding": "base64"}
	},
	"additionalProperties": false
}`

var chatSchema = mustCompileSchema(chatRequestSchema)

func mustCompileSchema(raw string) *jsonschema.Schema {
	schema, err := jsonschema.NewCompiler().Compile([]byte(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid chat request schema: %v", err))
	}
	return schema
}

// validateChatBody checks the raw body against the chat request schema.
func validateChatBody(body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("body is not valid JSON")
	}
	result := chatSchema.ValidateJSON(body)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
