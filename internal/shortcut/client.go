// Package shortcut is a small client for the Shortcut REST API (v3).
//
// The client is a thin verb layer: it attaches the auth and content
// headers, enforces a per-call timeout, encodes request bodies as JSON
// and decodes JSON responses into caller-supplied values. Non-2xx
// responses surface as *HTTPError. There are no retries.
package shortcut

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the public Shortcut API endpoint.
	DefaultBaseURL = "https://api.app.shortcut.com/api/v3"

	// DefaultTimeout bounds every single API call.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "shortcut-mcp"

	// TokenHeader carries the API token on every request.
	TokenHeader = "Shortcut-Token"

	// maxErrorBody caps how much of an error response ends up in HTTPError.
	maxErrorBody = 4096
)

// Config holds the connection settings. It is copied into the Client
// and never changes afterwards.
type Config struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Client calls the Shortcut API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
	log       logrus.FieldLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The configured
// timeout is not applied to a client passed this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New validates cfg and builds a Client. It performs no network I/O.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrMissingToken
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "shortcut: parsing base URL %q", base)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, errors.Newf("shortcut: base URL %q is not absolute", base)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	c := &Client{
		baseURL:   strings.TrimRight(base, "/"),
		token:     cfg.Token,
		userAgent: ua,
		http:      &http.Client{Timeout: timeout},
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, query, nil, out)
	return err
}

// Post issues a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

// Put issues a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

// Delete issues a DELETE request and returns the response status code.
func (c *Client) Delete(ctx context.Context, path string) (int, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, errors.Wrapf(err, "encoding %s %s body", method, path)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %s %s request", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, c.token)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Debug("shortcut request failed")
		return 0, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("shortcut request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrapf(err, "reading %s %s response", method, path)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, errors.Mark(errors.Wrapf(err, "decoding %s %s response", method, path), ErrDecode)
	}
	return resp.StatusCode, nil
}
