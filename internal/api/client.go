// Package api is the HTTP client for the StudyBuddy backend: course creation,
// chat, document upload and the document/video catalogues.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Endpoints are the independently configurable base URLs.
type Endpoints struct {
	// API serves /courses, /chat and /documents/upload.
	API string
	// Video serves /api/videos.
	Video string
	// Backend serves /api/documents.
	Backend string
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the given endpoints.
func New(ep Endpoints, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		endpoints: Endpoints{
			API:     strings.TrimRight(ep.API, "/"),
			Video:   strings.TrimRight(ep.Video, "/"),
			Backend: strings.TrimRight(ep.Backend, "/"),
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the normalised base URLs.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

func (c *Client) postJSON(ctx context.Context, op, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) getJSON(ctx context.Context, op, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return c.do(op, req, out)
}

// do sends req and decodes a JSON body into out (when out is non-nil).
func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.send(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// send performs req and returns the response when the status is 2xx. The
// caller owns the body.
func (c *Client) send(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.String("url", req.URL.String()), zap.Error(err))
		return nil, &Error{Op: op, Err: err}
	}
	c.log.Debug("request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &Error{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return resp, nil
}
