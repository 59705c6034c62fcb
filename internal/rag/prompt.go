// Package rag - prompt.go assembles the augmented prompt.
//
// Retrieved passages are interleaved with positional citation markers
// ([Source 1], [Source 2], ...) that the model is instructed to echo.
// Document content is trimmed to a token budget so the context never
// starves the completion cap.
package rag

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/caremesh/triage-gateway/external"
)

// DefaultDocTokenBudget is the per-document content budget.
const DefaultDocTokenBudget = 1200

const promptHeader = `You are a helpful healthcare assistant. Answer the following question based on the provided medical knowledge base sources.

IMPORTANT GUIDELINES:
1. Base your answer on the provided sources
2. Include citations in the format [Source N] where N is the source number
3. If the sources don't contain sufficient information, clearly state this
4. Always include a disclaimer that this is for educational purposes only
5. Never provide diagnostic conclusions or specific medical advice
6. Encourage users to consult healthcare professionals`

const fallbackHeader = `You are a helpful healthcare assistant. Answer the following question to the best of your ability.

IMPORTANT GUIDELINES:
1. Provide general, educational information only
2. Never provide diagnostic conclusions or specific medical advice
3. Always encourage users to consult healthcare professionals
4. Include appropriate medical disclaimers`

// PromptBuilder builds augmented prompts with a per-document token budget.
type PromptBuilder struct {
	enc       *tiktoken.Tiktoken
	docBudget int
}

// NewPromptBuilder creates a builder. budget <= 0 uses the default.
func NewPromptBuilder(budget int) (*PromptBuilder, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load token encoding: %w", err)
	}
	if budget <= 0 {
		budget = DefaultDocTokenBudget
	}
	return &PromptBuilder{enc: enc, docBudget: budget}, nil
}

// Build assembles the augmented prompt. With no documents it returns the
// fallback prompt: the sanitized question with guidelines but no context
// and no citation markers.
func (b *PromptBuilder) Build(userQuery string, docs []external.Document) string {
	if len(docs) == 0 {
		return fmt.Sprintf("%s\n\nUSER QUESTION:\n%s\n\nPlease provide a helpful response with appropriate medical disclaimers.",
			fallbackHeader, userQuery)
	}

	var context strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&context, "[Source %d: %s]\n%s\n\n", i+1, doc.Title, b.trim(doc.Content))
	}

	return fmt.Sprintf("%s\n\nMEDICAL KNOWLEDGE BASE SOURCES:\n%s\nUSER QUESTION:\n%s\n\nPlease provide a helpful, well-cited response with appropriate medical disclaimers.",
		promptHeader, context.String(), userQuery)
}

// trim truncates content to the per-document token budget.
func (b *PromptBuilder) trim(content string) string {
	tokens := b.enc.Encode(content, nil, nil)
	if len(tokens) <= b.docBudget {
		return content
	}
	return b.enc.Decode(tokens[:b.docBudget]) + " ..."
}

// CountTokens returns the token count of text. Used for telemetry
// estimates when the router omits usage data.
func (b *PromptBuilder) CountTokens(text string) int {
	return len(b.enc.Encode(text, nil, nil))
}
