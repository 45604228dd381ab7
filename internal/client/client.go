// Package client calls the LiftCoach REST API. It backs the stdio MCP binary
// and liftctl, which run locally while the session lives on the server
// (typically reached over Tailscale).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/suggest"
)

// Client talks to a LiftCoach server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client targeting the given base URL. Waiting for
// suggestions can take a while, so the default timeout is generous.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("client: decode %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) view(ctx context.Context, method, path string, in any) (*coach.View, error) {
	var v coach.View
	if err := c.do(ctx, method, path, nil, in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func planPath(planID string) string {
	return "/api/v1/plans/" + url.PathEscape(planID)
}

func exercisePath(planID, exerciseID string) string {
	return planPath(planID) + "/exercises/" + url.PathEscape(exerciseID)
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

func (c *Client) View(ctx context.Context) (*coach.View, error) {
	return c.view(ctx, http.MethodGet, "/api/v1/view", nil)
}

func (c *Client) Plans(ctx context.Context) ([]models.TrainingPlan, error) {
	var plans []models.TrainingPlan
	if err := c.do(ctx, http.MethodGet, "/api/v1/plans", nil, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) AddPlan(ctx context.Context) (*coach.View, error) {
	return c.view(ctx, http.MethodPost, "/api/v1/plans", nil)
}

func (c *Client) RenamePlan(ctx context.Context, planID, name string) (*coach.View, error) {
	return c.view(ctx, http.MethodPatch, planPath(planID), map[string]string{"name": name})
}

func (c *Client) DeletePlan(ctx context.Context, planID string) (*coach.View, error) {
	return c.view(ctx, http.MethodDelete, planPath(planID), nil)
}

func (c *Client) SelectPlan(ctx context.Context, planID string) (*coach.View, error) {
	return c.view(ctx, http.MethodPost, planPath(planID)+"/select", nil)
}

func (c *Client) AddExercise(ctx context.Context, planID, name string) (*coach.View, error) {
	return c.view(ctx, http.MethodPost, planPath(planID)+"/exercises", map[string]string{"name": name})
}

func (c *Client) UpdateExercise(ctx context.Context, planID string, e models.Exercise) (*coach.View, error) {
	return c.view(ctx, http.MethodPut, exercisePath(planID, e.ID), e)
}

func (c *Client) EditExerciseField(ctx context.Context, planID, exerciseID, field, value string) (*coach.View, error) {
	return c.view(ctx, http.MethodPatch, exercisePath(planID, exerciseID),
		map[string]string{"field": field, "value": value})
}

func (c *Client) DeleteExercise(ctx context.Context, planID, exerciseID string) (*coach.View, error) {
	return c.view(ctx, http.MethodDelete, exercisePath(planID, exerciseID), nil)
}

func (c *Client) RequestSuggestions(ctx context.Context, wait bool) (*suggest.RequestState, error) {
	var q url.Values
	if wait {
		q = url.Values{"wait": {"true"}}
	}
	var st suggest.RequestState
	if err := c.do(ctx, http.MethodPost, "/api/v1/suggestions", q, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Suggestions(ctx context.Context) (*suggest.RequestState, error) {
	var st suggest.RequestState
	if err := c.do(ctx, http.MethodGet, "/api/v1/suggestions", nil, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) DismissSuggestions(ctx context.Context) (*coach.View, error) {
	return c.view(ctx, http.MethodPost, "/api/v1/suggestions/dismiss", nil)
}
