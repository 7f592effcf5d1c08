package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/config"
	"github.com/spec-kit/rideshare-client/internal/observability"
)

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Gateway is the uniform request/response layer for all backend calls.
// One invocation issues exactly one HTTP call: no retries, no backoff.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	metrics *observability.Metrics
	logger  *zap.Logger
}

// New builds a gateway against the configured backend address.
func New(cfg config.APIConfig, tokens TokenSource, metrics *observability.Metrics, logger *zap.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{},
		tokens:  tokens,
		metrics: metrics,
		logger:  logger,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// HTTPStatusCode exposes the status for error classification.
func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Get issues a GET request and decodes the JSON response into out.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.metrics.RecordFailure(method, path)
		g.logger.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		g.metrics.RecordFailure(method, path)
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	g.metrics.RecordRequest(method, path, resp.StatusCode, time.Since(start))
	g.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
