package tron

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/metrics"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultMaxRetries  = 3
	DefaultBackoffUnit = time.Second

	apiKeyHeader    = "TRON-PRO-API-KEY"
	maxErrorBodyLen = 256
)

var emptyBody = []byte("{}")

// ClientConfig holds the node connection settings
type ClientConfig struct {
	BaseURL     string
	Endpoint    string
	Timeout     time.Duration // per attempt
	MaxRetries  int           // additional attempts after the first
	BackoffUnit time.Duration // delay before attempt n is BackoffUnit*(n-1)
	APIKey      string
	Headers     map[string]string
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

type Option func(*Client)

// WithSleep replaces the backoff sleep, mainly for tests
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client fetches the head block from a TRON full node over its HTTP API.
// It only holds immutable configuration and is safe for concurrent use.
type Client struct {
	http        *resty.Client
	url         string
	endpoint    string
	maxRetries  int
	backoffUnit time.Duration
	sleep       SleepFunc
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewClient(cfg ClientConfig, logger *slog.Logger, opts ...Option) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = DefaultBackoffUnit
	}
	if logger == nil {
		logger = slog.Default()
	}

	endpoint := strings.TrimPrefix(cfg.Endpoint, "/")
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeaders(cfg.Headers)
	if cfg.APIKey != "" {
		httpClient.SetHeader(apiKeyHeader, cfg.APIKey)
	}

	c := &Client{
		http:        httpClient,
		url:         strings.TrimSuffix(cfg.BaseURL, "/") + "/" + endpoint,
		endpoint:    endpoint,
		maxRetries:  cfg.MaxRetries,
		backoffUnit: cfg.BackoffUnit,
		sleep:       sleepContext,
		logger:      logger.With("component", "tron_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the full node URL requested on every attempt
func (c *Client) URL() string { return c.url }

// FetchLatestBlock posts to the node endpoint and returns the raw body.
// Failed attempts are retried up to MaxRetries times with linear backoff.
// Cancelling ctx stops the retry loop, including a pending backoff sleep.
func (c *Client) FetchLatestBlock(ctx context.Context) (RawBlock, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		if attempt > 1 {
			delay := c.backoffUnit * time.Duration(attempt-1)
			c.logger.Warn("Node request failed, retrying",
				"endpoint", c.endpoint,
				"retry", attempt-1,
				"max_retries", c.maxRetries,
				"delay", delay,
				"error", lastErr,
			)
			c.metrics.IncNodeRetry()
			if err := c.sleep(ctx, delay); err != nil {
				return nil, c.fail(err)
			}
		}

		raw, err := c.post(ctx)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, c.fail(ctx.Err())
		}
	}
	return nil, c.fail(lastErr)
}

func (c *Client) post(ctx context.Context) (RawBlock, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(emptyBody).
		Post(c.url)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveNodeAttempt(metrics.OutcomeFailure, elapsed)
		return nil, errors.Wrapf(err, "POST %s", c.url)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		c.metrics.ObserveNodeAttempt(metrics.OutcomeFailure, elapsed)
		return nil, errors.Errorf("HTTP %d from %s: %s", status, c.url, truncate(resp.String(), maxErrorBodyLen))
	}

	c.metrics.ObserveNodeAttempt(metrics.OutcomeSuccess, elapsed)
	c.logger.Debug("Node request completed", "endpoint", c.endpoint, "elapsed", elapsed, "bytes", len(resp.Body()))
	return RawBlock(resp.Body()), nil
}

func (c *Client) fail(err error) error {
	c.logger.Error("Node request failed", "endpoint", c.endpoint, "error", err)
	c.metrics.IncNodeFailure()
	return apperr.Wrap(apperr.NetworkError, "tron node request failed", err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
