package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minetheflag/mtf/store"
)

// Client is the single chokepoint for calls against the contest
// backend. It resolves the bearer token per call, encodes and decodes
// JSON bodies, and normalizes error responses. It keeps no state
// between calls beyond the token store it reads from.
type Client struct {
	baseURL string
	http    *http.Client
	store   *store.Store
	logger  *slog.Logger
}

// New builds a client for the backend at baseURL, reading credentials
// from st.
func New(baseURL string, st *store.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   st,
		logger:  logger,
	}
}

// Store exposes the backing state store, for callers that need the
// bonus unlock level.
func (c *Client) Store() *store.Store {
	return c.store
}

// RequestOptions control a single backend call.
type RequestOptions struct {
	Method string // default GET
	Body   any    // JSON-encoded when non-nil
	Token  string // explicit bearer override
	Admin  bool   // use the admin slot when no override is given
}

// Request issues one HTTP call to <base>/<path>. On success the JSON
// body is decoded into out (a nil out, or a 204 response, skips
// decoding). On a non-2xx status it returns a *RequestError.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.bearer(opts); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

// postForm issues a form-encoded POST. The login endpoint is the only
// one that refuses JSON bodies.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug("api request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// normalizeError turns a non-2xx response into a *RequestError,
// preferring the backend's own detail message over the raw status.
func normalizeError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		return &RequestError{Status: resp.StatusCode, Message: payload.Detail}
	}
	return genericStatusError(resp.StatusCode)
}

func (c *Client) bearer(opts RequestOptions) (string, bool) {
	if opts.Token != "" {
		return opts.Token, true
	}
	if opts.Admin {
		return c.store.Token(store.Admin)
	}
	return c.store.Token(store.Participant)
}
