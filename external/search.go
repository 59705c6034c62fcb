// Knowledge search client.
//
// Queries the external search collaborator for top-k ranked passages and
// provides the index administration calls used by the seed-index command.
// The wire format follows the search service's REST API; callers only see
// Document values.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultSearchTimeout for search calls. A timeout here degrades to the
// no-augmentation fallback, it is never terminal.
const DefaultSearchTimeout = 5 * time.Second

// SearchClient calls the search collaborator.
type SearchClient struct {
	endpoint   string
	apiKey     string
	index      string
	apiVersion string
	timeout    time.Duration
	httpClient *http.Client
}

// SearchClientConfig configures a SearchClient.
type SearchClientConfig struct {
	Endpoint   string
	APIKey     string
	Index      string
	APIVersion string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewSearchClient creates a client for the search service.
func NewSearchClient(cfg SearchClientConfig) (*SearchClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("search endpoint required")
	}
	if cfg.Index == "" {
		cfg.Index = "medical-kb"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-11-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSearchTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &SearchClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		index:      cfg.Index,
		apiVersion: cfg.APIVersion,
		timeout:    cfg.Timeout,
		httpClient: client,
	}, nil
}

// Index returns the configured index name.
func (c *SearchClient) Index() string { return c.index }

// Search returns up to topK documents ranked by relevance.
func (c *SearchClient) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	payload, err := json.Marshal(map[string]any{
		"search": query,
		"top":    topK,
		"select": "id,title,content,category,source",
	})
	if err != nil {
		return nil, err
	}

	respBody, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.endpoint, c.index, c.apiVersion),
		payload, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var docs []Document
	gjson.GetBytes(respBody, "value").ForEach(func(_, item gjson.Result) bool {
		docs = append(docs, Document{
			ID:       item.Get("id").String(),
			Title:    item.Get("title").String(),
			Content:  item.Get("content").String(),
			Category: item.Get("category").String(),
			Source:   item.Get("source").String(),
			Score:    item.Get("\\@search\\.score").Float(),
		})
		return len(docs) < topK
	})
	return docs, nil
}

// EnsureIndex creates or updates the knowledge-base index schema.
func (c *SearchClient) EnsureIndex(ctx context.Context) error {
	schema, err := json.Marshal(map[string]any{
		"name": c.index,
		"fields": []map[string]any{
			{"name": "id", "type": "Edm.String", "key": true},
			{"name": "title", "type": "Edm.String", "searchable": true},
			{"name": "content", "type": "Edm.String", "searchable": true},
			{"name": "category", "type": "Edm.String", "filterable": true},
			{"name": "source", "type": "Edm.String"},
		},
	})
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPut,
		fmt.Sprintf("%s/indexes/%s?api-version=%s", c.endpoint, c.index, c.apiVersion),
		schema, http.StatusCreated, http.StatusNoContent, http.StatusOK)
	if err != nil {
		return fmt.Errorf("failed to ensure index %s: %w", c.index, err)
	}
	return nil
}

// uploadAction wraps a document with the merge-or-upload action marker.
type uploadAction struct {
	Action string `json:"@search.action"`
	Document
}

// UploadDocuments merge-or-uploads documents into the index.
func (c *SearchClient) UploadDocuments(ctx context.Context, docs []Document) error {
	actions := make([]uploadAction, len(docs))
	for i, d := range docs {
		actions[i] = uploadAction{Action: "mergeOrUpload", Document: d}
	}
	payload, err := json.Marshal(map[string]any{"value": actions})
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPost,
		fmt.Sprintf("%s/indexes/%s/docs/index?api-version=%s", c.endpoint, c.index, c.apiVersion),
		payload, http.StatusOK)
	if err != nil {
		return fmt.Errorf("failed to upload %d documents: %w", len(docs), err)
	}
	return nil
}

func (c *SearchClient) do(ctx context.Context, method, url string, body []byte, okStatuses ...int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	for _, ok := range okStatuses {
		if resp.StatusCode == ok {
			return respBody, nil
		}
	}

	errBody := string(respBody)
	if len(errBody) > maxErrorBodyLen {
		errBody = errBody[:maxErrorBodyLen] + "... (truncated)"
	}
	return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, errBody)
}
