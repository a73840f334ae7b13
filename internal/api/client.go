// ABOUTME: HTTP client for the records API used by the admin console and CLI.
// ABOUTME: Carries its own token, timeout and request pacing instead of ambient session state.

package api

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

	"github.com/2389/realty/internal/listview"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// ClientConfig is everything a Client needs to reach the API.
type ClientConfig struct {
	BaseURL string
	Token   string // sent as a bearer token when set
	Timeout time.Duration

	// RatePerSecond <= 0 disables pacing.
	RatePerSecond float64
	Burst         int

	// Transport overrides the underlying round tripper.
	Transport http.RoundTripper
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status  int
	Code    int
	Reason  string
	Message string
	Field   string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Reason != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Reason, msg)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, msg)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", cfg.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   transport,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Transport: transport, Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}, nil
}

// List fetches the full snapshot of a resource.
func (c *Client) List(ctx context.Context, resource string) ([]listview.Row, error) {
	var env ListEnvelope
	if err := c.do(ctx, http.MethodGet, c.resourcePath(resource), nil, &env); err != nil {
		return nil, err
	}
	if env.Records == nil {
		env.Records = []listview.Row{}
	}
	return env.Records, nil
}

func (c *Client) Get(ctx context.Context, resource, id string) (listview.Row, error) {
	var env RecordEnvelope
	if err := c.do(ctx, http.MethodGet, c.resourcePath(resource, id), nil, &env); err != nil {
		return nil, err
	}
	return env.Record, nil
}

func (c *Client) Create(ctx context.Context, resource string, data map[string]any) (listview.Row, error) {
	var env RecordEnvelope
	if err := c.do(ctx, http.MethodPost, c.resourcePath(resource), data, &env); err != nil {
		return nil, err
	}
	return env.Record, nil
}

func (c *Client) Update(ctx context.Context, resource, id string, data map[string]any) (listview.Row, error) {
	var env RecordEnvelope
	if err := c.do(ctx, http.MethodPut, c.resourcePath(resource, id), data, &env); err != nil {
		return nil, err
	}
	return env.Record, nil
}

func (c *Client) Delete(ctx context.Context, resource, id string) error {
	return c.do(ctx, http.MethodDelete, c.resourcePath(resource, id), nil, nil)
}

func (c *Client) resourcePath(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/api/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "wait for rate limiter")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env errorEnvelope
		if json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&env) == nil {
			apiErr.Code = env.Code
			apiErr.Reason = env.Reason
			apiErr.Message = env.Message
			apiErr.Field = env.Field
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}
