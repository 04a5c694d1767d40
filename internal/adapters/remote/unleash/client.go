package unleash

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	featuresPath = "/api/admin/features"
	archivePath  = "/api/admin/archive"
	usersPath    = "/api/admin/user-admin"

	maxResponseBytes = 8 << 20
)

// Client talks to the admin API of an Unleash-compatible flag service. It is
// safe for concurrent use; every request passes through one rate limiter.
type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	concurrency int
	logger      ports.Logger
}

var _ ports.RemoteClient = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(ctx context.Context, cfg Config, logger ports.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "remote base URL is required", "Set remote.base_url.")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation, "remote base URL is invalid", "Set remote.base_url to an absolute URL.")
	}
	if cfg.Token == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "remote API token is required", "Set FLAGSYNC_REMOTE_TOKEN.")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     newLimiter(ctx, cfg.RequestsPerSecond, logger),
		concurrency: concurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request. A non-nil body is sent as JSON and a non-nil out
// receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.wait(ctx); err != nil {
		return classifyTransportError(ctx, method, path, err)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to encode %s %s request", method, path))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to create %s %s request", method, path))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf(ctx, "%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return classifyTransportError(ctx, method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return classifyStatusError(method, path, resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, errors.CodeRemoteAPIError, fmt.Sprintf("failed to decode %s %s response", method, path))
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
