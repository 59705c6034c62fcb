// Model router client.
//
// Complete is the single entry point for generation. Exactly one call is
// made per request: a text-completion shape when no image is present, a
// vision-completion shape otherwise - never both. The mode maps to
// generation parameters and a routing alias; the underlying model is
// chosen by the collaborator and only observed from the response.
package external

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// DefaultRouterTimeout for model router calls. A timeout here is a
	// terminal error for the request.
	DefaultRouterTimeout = 60 * time.Second

	// DefaultMaxTokens is the completion cap. Sized at roughly twice a
	// single-paragraph budget so multi-document clinical answers with
	// citations are not truncated.
	DefaultMaxTokens = 2000

	// maxResponseSize prevents OOM on unexpectedly large API responses (10MB).
	maxResponseSize = 10 * 1024 * 1024

	// maxErrorBodyLen limits error body in error messages to avoid log bloat.
	maxErrorBodyLen = 500
)

// modeParams maps an optimization mode to generation parameters. Lower
// temperature biases the collaborator's selection: cost toward cheaper
// models, quality toward higher-capability ones.
var modeParams = map[string]struct {
	alias       string
	temperature float64
}{
	"balanced": {"balanced", 0.7},
	"cost":     {"cost-optimized", 0.3},
	"quality":  {"quality-optimized", 0.1},
}

// RouterClient calls the model-routing collaborator.
type RouterClient struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	maxTokens  int
	timeout    time.Duration
	httpClient *http.Client
}

// RouterClientConfig configures a RouterClient.
type RouterClientConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	MaxTokens  int
	Timeout    time.Duration

	// HTTPClient overrides the default client (testing, connection
	// pooling, or a SigV4 signing transport for AWS-fronted routers).
	HTTPClient *http.Client
}

// NewRouterClient creates a client for the model router.
func NewRouterClient(cfg RouterClientConfig) (*RouterClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("router endpoint required")
	}
	if cfg.Deployment == "" {
		cfg.Deployment = "model-router"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-15-preview"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRouterTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{} // timeout via context, not client
	}
	return &RouterClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		deployment: cfg.Deployment,
		apiVersion: cfg.APIVersion,
		maxTokens:  cfg.MaxTokens,
		timeout:    cfg.Timeout,
		httpClient: client,
	}, nil
}

// Complete sends one completion request. The collaborator decides which
// model serves it; the returned model name is recorded, never branched on.
func (c *RouterClient) Complete(ctx context.Context, params RouteParams) (*RouteResult, error) {
	mp, ok := modeParams[params.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", params.Mode)
	}

	body, err := c.buildBody(params, mp.alias, mp.temperature)
	if err != nil {
		return nil, fmt.Errorf("failed to build router request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create router request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("router request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read router response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody := string(respBody)
		if len(errBody) > maxErrorBodyLen {
			errBody = errBody[:maxErrorBodyLen] + "... (truncated)"
		}
		return nil, fmt.Errorf("router returned status %d: %s", resp.StatusCode, errBody)
	}

	return parseRouteResult(respBody, time.Since(start))
}

// buildBody assembles the request payload. The vision shape carries the
// prompt and image as content parts; the text shape is a plain message.
func (c *RouterClient) buildBody(params RouteParams, alias string, temperature float64) ([]byte, error) {
	maxTokens := c.maxTokens
	if params.MaxTokens > 0 {
		maxTokens = params.MaxTokens
	}

	body := []byte(`{}`)
	var err error
	for _, set := range []struct {
		path  string
		value any
	}{
		{"model", alias},
		{"max_tokens", maxTokens},
		{"temperature", temperature},
		{"stream", false},
	} {
		if body, err = sjson.SetBytes(body, set.path, set.value); err != nil {
			return nil, err
		}
	}

	if params.ImageData == "" {
		return sjson.SetBytes(body, "messages.0",
			map[string]any{"role": "user", "content": params.Prompt})
	}

	// Vision shape: text part plus image part, one message.
	body, err = sjson.SetBytes(body, "messages.0.role", "user")
	if err != nil {
		return nil, err
	}
	body, err = sjson.SetBytes(body, "messages.0.content.0",
		map[string]any{"type": "text", "text": params.Prompt})
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(body, "messages.0.content.1",
		map[string]any{"type": "image_url", "image_url": map[string]any{"url": params.ImageData}})
}

func parseRouteResult(body []byte, elapsed time.Duration) (*RouteResult, error) {
	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("router response missing choices[0].message.content")
	}

	model := gjson.GetBytes(body, "model").String()
	if model == "" {
		model = "unknown"
	}

	return &RouteResult{
		Text:             content.String(),
		Model:            model,
		PromptTokens:     int(gjson.GetBytes(body, "usage.prompt_tokens").Int()),
		CompletionTokens: int(gjson.GetBytes(body, "usage.completion_tokens").Int()),
		TotalTokens:      int(gjson.GetBytes(body, "usage.total_tokens").Int()),
		LatencyMs:        elapsed.Milliseconds(),
	}, nil
}
