package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the ScraperAPI entry point. Every fetch goes through it;
// the target URL travels as a query parameter.
const DefaultEndpoint = "https://api.scraperapi.com/"

const (
	defaultTimeout = 60 * time.Second
	defaultRetries = 3
)

type OutputFormat string

const (
	// OutputHTML omits the output_format parameter; ScraperAPI returns raw
	// HTML by default.
	OutputHTML     OutputFormat = ""
	OutputMarkdown OutputFormat = "markdown"
	OutputText     OutputFormat = "text"
)

// Options tune a single fetch. The zero value requests raw HTML with the
// default timeout and retry budget.
type Options struct {
	OutputFormat  OutputFormat
	CountryCode   string
	DeviceType    string
	Render        bool
	SessionNumber int
	Timeout       time.Duration
	Retries       int
}

// ExhaustedError is returned once the retry budget is spent. It carries the
// last underlying cause.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("proxy request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Client fetches target URLs through the rendering proxy. The API credential
// is injected by the caller; the client never reads the environment itself.
type Client struct {
	endpoint string
	apiKey   string
	http     *resty.Client
	backoff  func(attempt int) time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		http: resty.New().
			SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)").
			SetHeader("Accept-Language", "en-GB,en;q=0.9"),
		backoff: linearBackoff,
	}
}

// linearBackoff grows by 1.5s per attempt: transient proxy hiccups get room
// to clear without masking persistent failures.
func linearBackoff(attempt int) time.Duration {
	return time.Duration(1.5 * float64(attempt) * float64(time.Second))
}

// Fetch retrieves the target URL's content in the requested output format,
// retrying failed attempts with increasing backoff.
func (c *Client) Fetch(ctx context.Context, targetURL string, opts Options) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Retries <= 0 {
		opts.Retries = defaultRetries
	}

	params := map[string]string{
		"api_key": c.apiKey,
		"url":     targetURL,
	}
	if opts.OutputFormat != OutputHTML {
		params["output_format"] = string(opts.OutputFormat)
	}
	if opts.CountryCode != "" {
		params["country_code"] = opts.CountryCode
	}
	if opts.DeviceType != "" {
		params["device_type"] = opts.DeviceType
	}
	if opts.Render {
		params["render"] = "true"
	}
	if opts.SessionNumber > 0 {
		params["session_number"] = strconv.Itoa(opts.SessionNumber)
	}

	var lastErr error
	for attempt := 1; attempt <= opts.Retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		resp, err := c.http.R().
			SetContext(attemptCtx).
			SetQueryParams(params).
			Get(c.endpoint)
		cancel()

		switch {
		case err != nil:
			lastErr = fmt.Errorf("failed to reach proxy: %w", err)
		case resp.IsError():
			lastErr = fmt.Errorf("HTTP error: %s", resp.Status())
		default:
			return resp.String(), nil
		}

		if attempt < opts.Retries {
			wait := c.backoff(attempt)
			slog.Debug("Proxy request failed, retrying",
				"url", targetURL,
				"attempt", attempt,
				"wait", wait,
				"error", lastErr)
			time.Sleep(wait)
		}
	}

	return "", &ExhaustedError{Attempts: opts.Retries, Err: lastErr}
}
