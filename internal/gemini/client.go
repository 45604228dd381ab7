// Package gemini calls the Gemini generateContent API to produce coaching
// feedback for a training plan.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftcoach/internal/models"
	"golang.org/x/time/rate"
)

// Defaults applied by NewClient to zero-valued Config fields.
const (
	DefaultEndpoint    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
)

const maxAttempts = 3

// Config holds Gemini client settings.
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string // base URL override, mostly for tests
	Temperature float64
	Timeout     time.Duration
	// RequestsPerMinute paces outgoing calls; 0 disables pacing.
	RequestsPerMinute int
}

// Client implements suggest.Generator against the Gemini REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	backoff    func(attempt int) time.Duration
}

// NewClient creates a Gemini client.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<uint(attempt-1)) * time.Second
		},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// GenerateSuggestions asks the model for feedback on a plan and returns the
// raw JSON text of its answer.
func (c *Client) GenerateSuggestions(ctx context.Context, planName string, exercises []models.Exercise) ([]byte, error) {
	body, err := json.Marshal(c.buildRequest(planName, exercises))
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	respBody, err := c.post(ctx, body)
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return resp.text()
}

func (c *Client) buildRequest(planName string, exercises []models.Exercise) generateRequest {
	return generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: BuildPrompt(planName, exercises)}},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionsSchema,
			Temperature:      c.cfg.Temperature,
		},
	}
}

// post sends the request, retrying transport errors, 429 and 5xx with
// exponential backoff.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("gemini: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(c.backoff(attempt)):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("gemini: rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gemini: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("gemini: http request: %w", err)
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("gemini: read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}
		lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("gemini: after %d attempts: %w", maxAttempts, lastErr)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: api error (status %d): %s", e.StatusCode, e.Body)
}

// ErrNoContent is returned when the response carries no usable text.
var ErrNoContent = errors.New("gemini: response has no content")
