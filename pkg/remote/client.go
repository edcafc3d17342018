// Package remote talks to the extraction and summarization endpoints of the
// document summary backend.
package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/google/uuid"
)

const (
	UploadPath    = "/upload/"
	SummarizePath = "/summarize/"

	RequestIDHeader = "X-Request-ID"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 32 << 20
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		userAgent: models.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends req and returns the body of a 2xx response. Every other outcome is
// wrapped in models.ErrTransport.
func (c *Client) do(req *http.Request) ([]byte, error) {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	logger := c.logger.With("request_id", requestID, "method", req.Method, "url", req.URL.String())
	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: failed to send request: %w", models.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Error("failed to read response body", "error", err)
		return nil, fmt.Errorf("%w: failed to read response body: %w", models.ErrTransport, err)
	}

	logger.Info("request complete", "status", resp.StatusCode, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: service returned status %d: %s", models.ErrTransport, resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// Ping checks that the backend root answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	_, err = c.do(req)
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
