package todoist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Token: "test-token", BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestCompletedBetween(t *testing.T) {
	since := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/v9/completed/get_all", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2025-06-01T11:00", r.URL.Query().Get("since"))
		assert.Equal(t, "2025-06-01T12:00", r.URL.Query().Get("until"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "c1", "task_id": "t1", "content": "Read Book", "completed_at": "2025-06-01T11:30:00Z"},
				{"id": "c2", "task_id": "t2", "content": "Meditate", "completed_at": "2025-06-01T11:45:00+02:00"}
			]
		}`))
	})

	tasks, err := client.CompletedBetween(context.Background(), since, until)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "c1", tasks[0].ID)
	assert.Equal(t, "Read Book", tasks[0].Content)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC), tasks[0].CompletedAt.UTC())

	assert.Equal(t, "c2", tasks[1].ID)
	_, offset := tasks[1].CompletedAt.Zone()
	assert.Equal(t, 2*60*60, offset, "offset from the API is preserved")
}

func TestCompletedBetween_EmptyWindow(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	tasks, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCompletedBetween_AuthFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})

	_, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestCompletedBetween_RateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	})

	_, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestCompletedBetween_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestCompletedBetween_MalformedJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	})

	_, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestCompletedBetween_MalformedTimestamp(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": "c1", "content": "x", "completed_at": "yesterday"}]}`))
	})

	_, err := client.CompletedBetween(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
