// Package authclient talks to the storefront authentication service.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"qkart/internal/log"
	"qkart/internal/registration"
)

// RegisterPath is appended to the configured base URL.
const RegisterPath = "/auth/register"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrMalformedResponse means the service answered with something other than
// the {success, message} envelope.
var ErrMalformedResponse = errors.New("malformed auth response")

// Client calls the auth service over HTTP. It is safe for concurrent use,
// including SetEndpoint while a request is in flight.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the transport timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New returns a client for the service rooted at baseURL, e.g.
// "https://qkart-first.herokuapp.com/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterURL is the full registration endpoint.
func (c *Client) RegisterURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL + RegisterPath
}

// SetEndpoint points later requests at baseURL. A request already in flight
// keeps its original target.
func (c *Client) SetEndpoint(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Register posts creds and classifies the answer. The HTTP status code is
// not consulted; only the body's success field decides.
func (c *Client) Register(ctx context.Context, creds registration.Credentials) registration.Outcome {
	url := c.RegisterURL()
	resp, err := c.post(ctx, url, creds)
	if err != nil {
		log.ErrorErr(log.CatHTTP, "Register request failed", err, "url", url)
		return registration.Failed(err)
	}

	if resp.Success == nil {
		return registration.Failed(fmt.Errorf("%w: missing success field", ErrMalformedResponse))
	}
	if *resp.Success {
		return registration.Succeeded()
	}
	return registration.Rejected(resp.Message)
}

// post sends body as JSON and decodes the response envelope.
func (c *Client) post(ctx context.Context, url string, body any) (*registration.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))
	log.Debug(log.CatHTTP, "Auth service answered",
		"url", url, "status", httpResp.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out registration.Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v (status %d)", ErrMalformedResponse, err, httpResp.StatusCode)
	}
	return &out, nil
}
