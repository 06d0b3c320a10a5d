package data

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultScheduleURL is the public page endpoint that embeds both the
// daily and tomorrow outage schedules.
const DefaultScheduleURL = "https://api.yasno.com.ua/api/v1/pages/home/schedule-turn-off-electricity"

// maxBodyBytes caps how much of a response we are willing to read.
const maxBodyBytes = 4 << 20

// YasnoClient fetches the raw schedule document.
type YasnoClient struct {
	URL    string
	Client *http.Client
	// Cache is optional; nil disables caching.
	Cache *ResponseCache
}

// NewYasnoClient creates a new client.
// If url is empty, defaults to DefaultScheduleURL.
func NewYasnoClient(url string) *YasnoClient {
	if url == "" {
		url = DefaultScheduleURL
	}
	return &YasnoClient{
		URL: url,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// YasnoError represents a failed fetch of the schedule document.
type YasnoError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *YasnoError) Error() string {
	return e.Message
}

// FetchSchedule downloads the schedule document and returns its raw bytes.
// The body is not validated here; shape problems are the builder's concern.
func (c *YasnoClient) FetchSchedule(ctx context.Context) ([]byte, error) {
	cacheKey := GenerateCacheKey(c.URL)
	if cached, found := c.Cache.Get(cacheKey); found {
		log.Printf("[Yasno] Cache hit: Using cached schedule (%d bytes)", len(cached))
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[Yasno] Request failed: %v (duration: %v)", err, duration)
		return nil, &YasnoError{
			Code:    "REQUEST_FAILED",
			Message: fmt.Sprintf("failed to execute request: %v", err),
		}
	}
	defer resp.Body.Close()

	log.Printf("[Yasno] Response: %s (duration: %v)", resp.Status, duration)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &YasnoError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &YasnoError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &YasnoError{
			StatusCode: resp.StatusCode,
			Code:       "READ_FAILED",
			Message:    fmt.Sprintf("failed to read response: %v", err),
		}
	}
	if len(body) > maxBodyBytes {
		return nil, &YasnoError{
			StatusCode: resp.StatusCode,
			Code:       "RESPONSE_TOO_LARGE",
			Message:    fmt.Sprintf("response exceeds %d bytes", maxBodyBytes),
		}
	}

	c.Cache.Set(cacheKey, body)
	return body, nil
}
