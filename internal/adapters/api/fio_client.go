package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/infrastructure/config"
)

const (
	defaultBaseURL     = "https://rest.fnar.net"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
)

// FIOClient fetches raw universe and fleet records from the FIO REST API.
// It implements the tracking.RecordSource port: records come back as
// loosely-structured maps, parsing is the engine's concern.
type FIOClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	username    string
	maxRetries  int
	backoffBase time.Duration
}

// NewFIOClient creates a client from configuration.
func NewFIOClient(cfg *config.APIConfig) *FIOClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.Retry.MaxAttempts
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	backoffBase := cfg.Retry.BackoffBase
	if backoffBase == 0 {
		backoffBase = defaultBackoffBase
	}
	requests := cfg.RateLimit.Requests
	if requests == 0 {
		requests = 2
	}
	burst := cfg.RateLimit.Burst
	if burst == 0 {
		burst = 4
	}

	return &FIOClient{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(requests), burst),
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		username:    cfg.Username,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Systems retrieves all star systems.
func (c *FIOClient) Systems(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/systemstars")
}

// Planets retrieves all planets.
func (c *FIOClient) Planets(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/planet/allplanets")
}

// Ships retrieves the configured user's ships.
func (c *FIOClient) Ships(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/ship/ships/"+url.PathEscape(c.username))
}

// Flights retrieves the configured user's flights.
func (c *FIOClient) Flights(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/ship/flights/"+url.PathEscape(c.username))
}

// Storage retrieves the configured user's storage records.
func (c *FIOClient) Storage(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/storage/"+url.PathEscape(c.username))
}

// Contracts retrieves the configured user's contracts.
func (c *FIOClient) Contracts(ctx context.Context) ([]shared.Record, error) {
	return c.getRecords(ctx, "/contract/allcontracts/"+url.PathEscape(c.username))
}

// getRecords performs a GET request and decodes the response as a list of
// raw records. Retries transient failures with exponential backoff + jitter.
func (c *FIOClient) getRecords(ctx context.Context, path string) ([]shared.Record, error) {
	body, err := c.request(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	records := make([]shared.Record, 0, len(raw))
	for _, rec := range raw {
		records = append(records, shared.Record(rec))
	}
	return records, nil
}

func (c *FIOClient) request(ctx context.Context, path string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase * time.Duration(1<<(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(c.backoffBase)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retriable, err := c.do(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retriable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request %s failed after %d attempts: %w", path, c.maxRetries, lastErr)
}

func (c *FIOClient) do(ctx context.Context, path string) (body []byte, retriable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("FIO returned status %d for %s", resp.StatusCode, path)
	default:
		return nil, false, fmt.Errorf("FIO returned status %d for %s", resp.StatusCode, path)
	}
}
