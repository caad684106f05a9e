package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
)

// SupabaseClient talks to the PostgREST endpoint of a Supabase project with the
// service key. It is shared by all Supabase-backed repositories.
type SupabaseClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewSupabaseClient creates a new Supabase REST client
func NewSupabaseClient(baseURL, apiKey string, logger *zap.Logger) *SupabaseClient {
	return &SupabaseClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// restRequest describes one PostgREST call.
type restRequest struct {
	op     string
	method string
	table  string
	query  url.Values
	body   interface{}
	prefer string
}

// do executes req and decodes a JSON response into out when out is non-nil.
func (c *SupabaseClient) do(ctx context.Context, req restRequest, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, req.table)
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return domainErrors.NewStoreFailureError(req.op, fmt.Errorf("failed to encode body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return domainErrors.NewStoreFailureError(req.op, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("Supabase request failed",
			zap.String("op", req.op),
			zap.String("method", req.method),
			zap.String("table", req.table),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return domainErrors.NewStoreUnavailableError(req.op, fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	c.logger.Debug("Supabase request completed",
		zap.String("op", req.op),
		zap.String("method", req.method),
		zap.String("table", req.table),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Supabase API returned error status",
			zap.String("op", req.op),
			zap.String("table", req.table),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", errorBody))

		cause := fmt.Errorf("supabase API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(errorBody)))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
			resp.StatusCode >= http.StatusInternalServerError {
			return domainErrors.NewStoreUnavailableError(req.op, cause)
		}
		return domainErrors.NewStoreFailureError(req.op, cause)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainErrors.NewStoreFailureError(req.op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func eq(value string) string {
	return "eq." + value
}
