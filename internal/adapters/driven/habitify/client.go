// Package habitify provides a HabitTracker adapter for the Habitify API.
package habitify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.HabitTracker = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.habitify.me"
	DefaultTimeout = 30 * time.Second

	habitsPath = "/habits"
	logsPath   = "/logs"

	// logUnitType is the unit Habitify expects for simple done/not-done logs.
	logUnitType = "rep"

	requestsPerSecond = 2.0
	burstSize         = 5
)

// Config holds configuration for the Habitify client.
type Config struct {
	// APIKey is the API key, sent verbatim in the Authorization header
	// (Habitify does not use a Bearer scheme). Required.
	APIKey string

	// BaseURL overrides the API base URL (default: https://api.habitify.me).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client calls the Habitify REST API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// habitsResponse is the GET /habits payload.
type habitsResponse struct {
	Data []habitPayload `json:"data"`
}

type habitPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// logRequest is the POST /logs/{habit_id} body.
type logRequest struct {
	TargetDate string `json:"target_date"`
	Value      int    `json:"value"`
	UnitType   string `json:"unit_type"`
}

// NewClient creates a new Habitify API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("habitify: %w", domain.ErrAuthRequired)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// ListHabits returns all habits for the authenticated account.
func (c *Client) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+habitsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload habitsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode habits: %v", domain.ErrMalformedResponse, err)
	}

	habits := make([]domain.Habit, 0, len(payload.Data))
	for _, h := range payload.Data {
		habits = append(habits, domain.Habit{ID: h.ID, Name: h.Name})
	}
	return habits, nil
}

// LogCompletion records a completion log for a habit. The target date is
// the task's completion instant, formatted with its UTC offset as the API
// requires (e.g. 2021-05-21T07:00:00+07:00).
func (c *Client) LogCompletion(ctx context.Context, habitID string, at time.Time) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(logRequest{
		TargetDate: at.Format(time.RFC3339),
		Value:      1,
		UnitType:   logUnitType,
	})
	if err != nil {
		return fmt.Errorf("marshal log request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+logsPath+"/"+habitID,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// checkStatus maps error responses to domain and API errors.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("habitify: %w", domain.ErrAuthInvalid)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("habitify: %w", domain.ErrRateLimited)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			URL:        resp.Request.URL.Path,
		}
	}
}
