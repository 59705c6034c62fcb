// Package external provides clients for the two outbound collaborators:
// the model router and the knowledge search service.
//
// DESIGN: This package owns only the wire boundary. It never decides
// WHICH underlying model answers a request - the router collaborator
// does - and it never ranks documents - the search collaborator does.
// Pipeline logic stays in internal/.
package external

// Document is one retrieved knowledge-base passage, rank-ordered by the
// search collaborator.
type Document struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Source   string  `json:"source"`
	Score    float64 `json:"score,omitempty"`
}

// RouteParams contains parameters for one model router call.
// Prompt and ImageData shape selection is exclusive: when ImageData is
// set the vision-completion shape is used, otherwise the text shape.
type RouteParams struct {
	Prompt string

	// Mode is the caller's optimization preference: balanced, cost, quality.
	Mode string

	// ImageData is a base64 data URL. Empty for text requests.
	ImageData string

	// MaxTokens overrides the client's completion cap when > 0.
	MaxTokens int
}

// RouteResult is the parsed router response.
type RouteResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	LatencyMs        int64
}
