package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"shopify-oms-app/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodySize caps how much of a partner response is read
const maxBodySize = 1 << 20

// httpClient is the shared JSON transport of the realm and OMS clients
type httpClient struct {
	service string
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func newHTTPClient(service, baseURL string, timeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) httpClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return httpClient{
		service: service,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
		logger:  logger.With().Str("service", service).Logger(),
	}
}

// do sends payload as JSON and decodes a 2xx response into out when out is
// non-nil. Any other status becomes an *APIError.
func (c httpClient) do(ctx context.Context, operation, method, url string, headers map[string]string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.PartnerRequest(c.service, operation, "error", time.Since(start))
		c.logger.Error().Err(err).Str("operation", operation).Str("request_id", requestID).Msg("Partner request failed")
		return fmt.Errorf("failed to call %s %s: %w", c.service, operation, err)
	}
	defer resp.Body.Close()
	c.metrics.PartnerRequest(c.service, operation, strconv.Itoa(resp.StatusCode), time.Since(start))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	c.logger.Debug().
		Str("operation", operation).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Partner request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(c.service, operation, resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}
	return nil
}
