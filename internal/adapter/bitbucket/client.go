package bitbucket

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/yourusername/bbrepo/internal/domain"
	"pkt.systems/pslog"
)

// TokenHeader carries the stored BitBucket token to the backend.
const TokenHeader = "X-BitBucket-Token"

// Params are query parameters for a GET request. A key mapped to nil is
// part of the request shape but is left out of the encoded query string.
type Params map[string]any

// Encode renders the non-nil parameters as a sorted query string.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		v := p[k]
		if v == nil {
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// Response is the raw envelope of a completed request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Getter performs GET requests relative to a base URL.
type Getter interface {
	Get(ctx context.Context, path string, params Params) (*Response, error)
}

// Client is the authenticated HTTP client for the BitBucket backend.
type Client struct {
	baseURL    string
	tokens     domain.TokenProvider
	httpClient *http.Client
	logger     pslog.Logger
}

// Option configures the Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger configures request logging.
func WithLogger(l pslog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client rooted at baseURL. The token is read from
// tokens on every request.
func NewClient(baseURL string, tokens domain.TokenProvider, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("bitbucket: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("bitbucket: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		logger:     pslog.Ctx(context.Background()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET to path with params. Transport failures and non-2xx
// statuses are returned as errors without retrying.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if q := params.Encode(); q != "" {
		target += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(TokenHeader, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}

	c.logger.Debug("bitbucket request", "method", http.MethodGet, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: http.MethodGet, Path: path, Status: resp.StatusCode, Body: body}
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}
