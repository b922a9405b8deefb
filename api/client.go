// Package api holds the thin REST clients for the identity provider's
// endpoints. Each endpoint is a simple request/response mapping; all
// authenticated calls share one client that injects the current bearer
// credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/rs/zerolog"
)

const versionHeader = "X-SDK-Version"

// Client is the HTTP client for the provider's REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sdkVersion string
	log        zerolog.Logger

	mu     sync.RWMutex
	bearer string
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

func WithSDKVersion(version string) ClientOption {
	return func(c *Client) {
		c.sdkVersion = version
	}
}

func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetBearerToken swaps the credential attached to outgoing requests.
// Updated atomically alongside every session mutation.
func (c *Client) SetBearerToken(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

// BearerToken returns the currently attached credential.
func (c *Client) BearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// HTTPClient exposes the underlying transport so the token endpoint
// calls reuse the same timeout and version header behavior.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.Wrapf(err, "api: encoding %s body", path)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.Wrapf(err, "api: building %s request", path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sdkVersion != "" {
		req.Header.Set(versionHeader, c.sdkVersion)
	}
	if bearer := c.BearerToken(); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrapf(err, "api: %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		// Expiry-class rejection: the caller refreshes once and retries.
		return errs.ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("api call failed")
		return fmt.Errorf("api: response is unsuccessful for %s: %d %s",
			path, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrapf(err, "api: decoding %s response", path)
	}
	return nil
}
