// Package todoist provides a TaskSource adapter for the Todoist Sync API.
package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TaskSource = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.todoist.com"
	DefaultTimeout = 30 * time.Second

	completedPath = "/sync/v9/completed/get_all"

	// windowLayout is the minute-precision timestamp format the Sync API
	// accepts for since/until.
	windowLayout = "2006-01-02T15:04"

	// Sync API allows 450 requests per 15 minutes; throttle well below.
	requestsPerSecond = 0.4
	burstSize         = 3
)

// Config holds configuration for the Todoist client.
type Config struct {
	// Token is the API token. Required.
	Token string

	// BaseURL overrides the API base URL (default: https://api.todoist.com).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client calls the Todoist Sync API.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// completedResponse is the /completed/get_all payload.
type completedResponse struct {
	Items []completedItem `json:"items"`
}

// completedItem is one completion event. ID identifies the event itself;
// TaskID identifies the underlying task and repeats for recurring tasks.
type completedItem struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	Content     string `json:"content"`
	CompletedAt string `json:"completed_at"`
}

// NewClient creates a new Todoist API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("todoist: %w", domain.ErrAuthRequired)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = cfg.Timeout

	return &Client{
		http:    hc,
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// CompletedBetween fetches tasks completed within [since, until].
// Bounds are truncated to minute precision, which the Sync API requires;
// the processed set guards against the resulting window overlap.
func (c *Client) CompletedBetween(
	ctx context.Context, since, until time.Time,
) ([]domain.CompletedTask, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("since", since.Format(windowLayout))
	q.Set("until", until.Format(windowLayout))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+completedPath+"?"+q.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload completedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode completed tasks: %v", domain.ErrMalformedResponse, err)
	}

	tasks := make([]domain.CompletedTask, 0, len(payload.Items))
	for _, item := range payload.Items {
		completedAt, err := time.Parse(time.RFC3339, item.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: completed_at %q: %v", domain.ErrMalformedResponse, item.CompletedAt, err)
		}
		tasks = append(tasks, domain.CompletedTask{
			ID:          item.ID,
			Content:     item.Content,
			CompletedAt: completedAt,
		})
	}

	return tasks, nil
}

// checkStatus maps error responses to domain and API errors.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("todoist: %w", domain.ErrAuthInvalid)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("todoist: %w", domain.ErrRateLimited)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			URL:        resp.Request.URL.Path,
		}
	}
}
