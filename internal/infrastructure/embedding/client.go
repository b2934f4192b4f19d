package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"libcatalog-backend/internal/domains/book/service"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/pkg/logger"
)

// Client is the HTTP adapter to the embedding provider. Failures split into
// two kinds: the provider being unreachable (connection refused, timeout)
// raises EmbeddingServiceUnavailable, while a reachable provider answering
// with a non-2xx status, a malformed body or an empty vector raises the
// generic EmbeddingServiceError. Only the first class is worth retrying.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ service.EmbeddingService = (*Client)(nil)

type embeddingRequest struct {
	Text string `json:"text"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Model     string    `json:"model"`
}

func (c *Client) GenerateEmbedding(ctx context.Context, text string) (service.EmbeddingResult, error) {
	payload, err := json.Marshal(embeddingRequest{Text: text})
	if err != nil {
		return service.EmbeddingResult{}, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return service.EmbeddingResult{}, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("embedding request failed", map[string]interface{}{"error": err.Error()})
		return service.EmbeddingResult{}, domainerror.EmbeddingServiceUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn("embedding service returned error", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return service.EmbeddingResult{}, domainerror.EmbeddingServiceError(
			fmt.Errorf("embedding service returned status %d", resp.StatusCode))
	}

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return service.EmbeddingResult{}, domainerror.EmbeddingServiceError(
			fmt.Errorf("malformed embedding response: %w", err))
	}
	if len(out.Embedding) == 0 {
		return service.EmbeddingResult{}, domainerror.EmbeddingServiceError(
			fmt.Errorf("embedding response contained no vector"))
	}

	return service.EmbeddingResult{
		Embedding: out.Embedding,
		Model:     out.Model,
	}, nil
}

// IsAvailable probes the provider's health endpoint. Used by the readiness
// check only; the create pipeline calls GenerateEmbedding directly and
// handles its failure.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
