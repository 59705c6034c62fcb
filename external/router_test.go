package external_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/caremesh/triage-gateway/external"
)

const routerResponse = `{
	"model": "gpt-4o-mini",
	"choices": [{"message": {"role": "assistant", "content": "Drink fluids and rest."}}],
	"usage": {"prompt_tokens": 42, "completion_tokens": 18, "total_tokens": 60}
}`

func newRouterServer(t *testing.T, status int, response string) (*httptest.Server, *[]byte) {
	t.Helper()
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = body
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.Contains(t, r.URL.Path, "/openai/deployments/model-router/chat/completions")
		assert.Equal(t, "2024-02-15-preview", r.URL.Query().Get("api-version"))
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func newTestRouterClient(t *testing.T, endpoint string) *external.RouterClient {
	t.Helper()
	c, err := external.NewRouterClient(external.RouterClientConfig{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestRouterClient_Complete_Text(t *testing.T) {
	srv, captured := newRouterServer(t, http.StatusOK, routerResponse)
	c := newTestRouterClient(t, srv.URL)

	result, err := c.Complete(context.Background(), external.RouteParams{
		Prompt: "what helps a mild fever?",
		Mode:   "balanced",
	})
	require.NoError(t, err)

	assert.Equal(t, "Drink fluids and rest.", result.Text)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, 42, result.PromptTokens)
	assert.Equal(t, 18, result.CompletionTokens)
	assert.Equal(t, 60, result.TotalTokens)
	assert.GreaterOrEqual(t, result.LatencyMs, int64(0))

	body := *captured
	assert.Equal(t, "balanced", gjson.GetBytes(body, "model").String())
	assert.InDelta(t, 0.7, gjson.GetBytes(body, "temperature").Float(), 0.001)
	assert.Equal(t, int64(2000), gjson.GetBytes(body, "max_tokens").Int())
	assert.False(t, gjson.GetBytes(body, "stream").Bool())
	assert.Equal(t, "what helps a mild fever?", gjson.GetBytes(body, "messages.0.content").String())
}

func TestRouterClient_Complete_ModeParameters(t *testing.T) {
	tests := []struct {
		mode      string
		wantAlias string
		wantTemp  float64
	}{
		{"balanced", "balanced", 0.7},
		{"cost", "cost-optimized", 0.3},
		{"quality", "quality-optimized", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			srv, captured := newRouterServer(t, http.StatusOK, routerResponse)
			c := newTestRouterClient(t, srv.URL)

			_, err := c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: tt.mode})
			require.NoError(t, err)

			body := *captured
			assert.Equal(t, tt.wantAlias, gjson.GetBytes(body, "model").String())
			assert.InDelta(t, tt.wantTemp, gjson.GetBytes(body, "temperature").Float(), 0.001)
		})
	}
}

func TestRouterClient_Complete_UnknownMode(t *testing.T) {
	c := newTestRouterClient(t, "http://unused.invalid")

	_, err := c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: "turbo"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRouterClient_Complete_VisionShape(t *testing.T) {
	srv, captured := newRouterServer(t, http.StatusOK, routerResponse)
	c := newTestRouterClient(t, srv.URL)

	_, err := c.Complete(context.Background(), external.RouteParams{
		Prompt:    "describe this image",
		Mode:      "quality",
		ImageData: "data:image/jpeg;base64,aGVsbG8=",
	})
	require.NoError(t, err)

	body := *captured
	assert.Equal(t, "user", gjson.GetBytes(body, "messages.0.role").String())
	assert.Equal(t, "text", gjson.GetBytes(body, "messages.0.content.0.type").String())
	assert.Equal(t, "describe this image", gjson.GetBytes(body, "messages.0.content.0.text").String())
	assert.Equal(t, "image_url", gjson.GetBytes(body, "messages.0.content.1.type").String())
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", gjson.GetBytes(body, "messages.0.content.1.image_url.url").String())
}

func TestRouterClient_Complete_UpstreamError(t *testing.T) {
	srv, _ := newRouterServer(t, http.StatusInternalServerError, `{"error": "router exploded"}`)
	c := newTestRouterClient(t, srv.URL)

	_, err := c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: "balanced"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRouterClient_Complete_MissingContent(t *testing.T) {
	srv, _ := newRouterServer(t, http.StatusOK, `{"model": "x", "choices": []}`)
	c := newTestRouterClient(t, srv.URL)

	_, err := c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: "balanced"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing choices[0].message.content")
}

func TestRouterClient_Complete_ModelDefaultsUnknown(t *testing.T) {
	srv, _ := newRouterServer(t, http.StatusOK, `{"choices": [{"message": {"content": "hi"}}]}`)
	c := newTestRouterClient(t, srv.URL)

	result, err := c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: "balanced"})

	require.NoError(t, err)
	assert.Equal(t, "unknown", result.Model)
	assert.Zero(t, result.TotalTokens)
}

func TestRouterClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c, err := external.NewRouterClient(external.RouterClientConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Timeout:  20 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), external.RouteParams{Prompt: "q", Mode: "balanced"})
	assert.Error(t, err)
}
