// Package api is the transport boundary: a thin JSON client for the
// timesheet REST endpoints. Everything above it works on normalized
// entry values and never sees a wire shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tableflip.dev/punch/pkg/entry"
)

// Task is a unit of work the server knows under a project or team.
type Task struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// Client is what the service layer needs from the remote store.
type Client interface {
	ListEntries(ctx context.Context, from, to time.Time) ([]*entry.Entry, error)
	CreateEntry(ctx context.Context, e *entry.Entry) (*entry.Entry, error)
	UpdateEntry(ctx context.Context, id string, fields map[string]any) error
	SubmitEntries(ctx context.Context, ids []string) (int, error)
	DeleteEntries(ctx context.Context, ids []string) (int, error)
	ListTasks(ctx context.Context, group string) ([]Task, error)
	CreateTask(ctx context.Context, group, name string) (Task, error)
}

// HTTPClient talks to /api/timesheet/* with a bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient returns a client for the given base URL and token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

const dateLayout = "2006-01-02"

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var errRes struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&errRes); err == nil && errRes.Message != "" {
			return fmt.Errorf("api: %s %s: %s", method, path, errRes.Message)
		}
		return fmt.Errorf("api: %s %s: unexpected status %d", method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decoding response: %w", err)
	}
	return nil
}

// ListEntries fetches the entries with dates in [from, to].
func (c *HTTPClient) ListEntries(ctx context.Context, from, to time.Time) ([]*entry.Entry, error) {
	path := fmt.Sprintf("/api/timesheet/entries?from=%s&to=%s",
		from.Format(dateLayout), to.Format(dateLayout))
	var wire []wireEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	entries := make([]*entry.Entry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, w.normalize())
	}
	return entries, nil
}

// CreateEntry persists a brand-new entry and returns the server's copy,
// which may carry a different (durable) ID.
func (c *HTTPClient) CreateEntry(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	var wire wireEntry
	if err := c.do(ctx, http.MethodPost, "/api/timesheet/entries", toWire(e), &wire); err != nil {
		return nil, err
	}
	return wire.normalize(), nil
}

// UpdateEntry sends a partial field update for one entry.
func (c *HTTPClient) UpdateEntry(ctx context.Context, id string, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/api/timesheet/entries/"+id, fields, nil)
}

// SubmitEntries transitions the given entries to pending review.
func (c *HTTPClient) SubmitEntries(ctx context.Context, ids []string) (int, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	var res struct {
		UpdatedCount int `json:"updated_count"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/timesheet/entries/submit", body, &res); err != nil {
		return 0, err
	}
	return res.UpdatedCount, nil
}

// DeleteEntries removes the given entries.
func (c *HTTPClient) DeleteEntries(ctx context.Context, ids []string) (int, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	var res struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/timesheet/entries/delete", body, &res); err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListTasks returns the tasks available under a project or team.
func (c *HTTPClient) ListTasks(ctx context.Context, group string) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/timesheet/tasks?group="+url.QueryEscape(group), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask registers a new task name under a project or team.
func (c *HTTPClient) CreateTask(ctx context.Context, group, name string) (Task, error) {
	body := struct {
		Group string `json:"group"`
		Name  string `json:"name"`
	}{Group: group, Name: name}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/timesheet/tasks", body, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}
