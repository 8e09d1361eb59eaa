package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnauthenticated is returned before any network I/O when a call that
// requires a bearer token is made without one. Never a silent no-op.
var ErrUnauthenticated = errors.New("upstream: missing bearer token")

// APIError is a response the upstream delivered but rejected, either with a
// non-2xx status or with success=false in the envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("upstream: request rejected (status %d)", e.Status)
}

// status is the `{success, message}` pair every upstream envelope carries.
type status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client talks to the marketplace REST API. It holds no token of its own;
// callers pass the token of the session acting.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do issues one request and decodes the envelope into out (which may be
// nil when only the status matters). token may be empty for public reads.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).
			WithError(err).Warn("upstream request failed")
		return fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("upstream: read response: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("upstream request")

	var st status
	// Some error responses are not JSON at all; fold those into APIError.
	if err := json.Unmarshal(raw, &st); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("upstream: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !st.Success {
		return &APIError{Status: resp.StatusCode, Message: st.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("upstream: decode response: %w", err)
		}
	}
	return nil
}

// authed guards token-required calls; see ErrUnauthenticated.
func (c *Client) authed(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	if token == "" {
		return ErrUnauthenticated
	}
	return c.do(ctx, method, path, token, query, body, out)
}
