package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
)

const (
	DefaultEndpoint = "https://api.backgrounderase.net/v2"
	DefaultTimeout  = 60 * time.Second

	headerAPIKey = "x-api-key"
)

// ClientConfig holds configuration for the removal API client
type ClientConfig struct {
	Endpoint  string
	APIKey    string
	Timeout   time.Duration
	Transport http.RoundTripper // nil means http.DefaultTransport
}

// Client talks to the background removal HTTP API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}, nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// RemoveBackground uploads the request's file and returns the raw API answer.
// Any status code is a valid Response. Transport failures wrap domain.ErrNetwork;
// failures to assemble the request wrap domain.ErrIO.
func (c *Client) RemoveBackground(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	body, err := NewMultipartBody(domain.FormField, req.FileName, req.ContentType, req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: build multipart body: %w", domain.ErrIO, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body.Bytes))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", domain.ErrIO, err)
	}
	httpReq.Header.Set("Content-Type", body.ContentType())
	httpReq.Header.Set(headerAPIKey, c.apiKey)
	httpReq.ContentLength = int64(len(body.Bytes))

	c.logger.Debug("posting image",
		"endpoint", c.endpoint,
		"file_name", req.FileName,
		"content_type", req.ContentType,
		"body_bytes", len(body.Bytes))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrNetwork, err)
	}

	c.logger.Debug("api responded",
		"status", resp.StatusCode,
		"response_bytes", len(data),
		"duration", time.Since(start))

	return &domain.Response{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       data,
	}, nil
}
