package avasho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/metrics"
)

// post sends payload to route and decodes the 2xx response body into out.
// The raw response body is returned alongside so callers can attach it to later ProtocolErrors.
func (c *Client) post(ctx context.Context, route string, payload any, out any) ([]byte, error) {
	start := time.Now()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + route
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.setHeaders(req)

	log.Debug().
		Str("url", url).
		Int("body_size", len(body)).
		Dur("timeout", c.timeout).
		Msg("Making request to Avasho gateway")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GatewayErrors.WithLabelValues(route, "transport").Inc()
		return nil, TransportError{Op: "send request", Err: err}
	}
	defer drainAndClose(resp.Body)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		metrics.GatewayErrors.WithLabelValues(route, "transport").Inc()
		return nil, TransportError{Op: "read response body", Err: err}
	}
	oversized := int64(len(respBody)) > c.maxBody
	if oversized {
		respBody = respBody[:c.maxBody]
	}

	metrics.GatewayRequestTime.WithLabelValues(route).Observe(time.Since(start).Seconds())

	log.Debug().
		Int("status_code", resp.StatusCode).
		Int("response_size", len(respBody)).
		Dur("elapsed", time.Since(start)).
		Msg("Received response from Avasho gateway")

	if !isSuccessStatusCode(resp.StatusCode) {
		metrics.GatewayErrors.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, GatewayError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if oversized {
		metrics.GatewayErrors.WithLabelValues(route, "protocol").Inc()
		return respBody, ProtocolError{
			Reason: fmt.Sprintf("response exceeds %d bytes", c.maxBody),
			Body:   string(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		metrics.GatewayErrors.WithLabelValues(route, "protocol").Inc()
		return respBody, ProtocolError{Reason: fmt.Sprintf("failed to parse response JSON: %v", err), Body: string(respBody)}
	}

	return respBody, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func isSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
