package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/httpclient"
)

// Doer executes HTTP requests. Satisfied by both httpclient.Client and
// httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is the typed REST client every feature module goes through. It is
// configured with the backend base URL and attaches a bearer credential to
// every request when one is present.
type Client struct {
	baseURL string
	http    Doer
	token   string
}

// New creates a gateway client for the given API base URL.
func New(baseURL string, doer Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
	}
}

// WithToken returns a copy of the client that authenticates every request
// with the given access token. The zero token means anonymous access.
func (c *Client) WithToken(token string) *Client {
	cpy := *c
	cpy.token = token
	return &cpy
}

// envelope is the JSON envelope the backend wraps every response in.
type envelope[T any] struct {
	Data       T      `json:"data"`
	Message    string `json:"message"`
	TotalPages int    `json:"totalPages"`
}

// newRequest builds a base-URL-relative request with the bearer credential
// attached.
func (c *Client) newRequest(ctx context.Context, method, path string, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doJSON executes the request and decodes the enveloped response into out.
// Non-2xx responses are mapped to AppErrors; out may be nil when the caller
// only cares about success.
func (c *Client) doJSON(ctx context.Context, req *http.Request, endpoint string, out any) error {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, endpoint)
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}

// marshalBody encodes a JSON request body.
func marshalBody(body any, endpoint string) (io.Reader, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", endpoint, err)
	}
	return strings.NewReader(string(payload)), nil
}

// postJSON marshals body and POSTs it to path.
func (c *Client) postJSON(ctx context.Context, path, endpoint string, body any, out any) error {
	payload, err := marshalBody(body, endpoint)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "application/json", payload)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, endpoint, out)
}
