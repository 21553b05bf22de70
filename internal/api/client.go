// Package api talks to the todo REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Client wraps http.Client with helpers for JSON requests against one base URL.
// No timeout is configured; a hung request stays pending until ctx is done.
type Client struct {
	baseURL string
	http    *http.Client
	log     *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues one request. body is JSON-encoded when non-nil; out is decoded
// from the response when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return failed(op, err)
		}
		rd = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return failed(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request error", "op", op, "method", method, "path", path, "request_id", reqID, "err", err)
		return failed(op, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request", "op", op, "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: op, Method: method, Path: path, Status: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return failed(op, err)
	}
	return nil
}
