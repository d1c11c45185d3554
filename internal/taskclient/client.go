// Package taskclient talks to the task API that collects sales datasets.
package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// Client issues create/list/fetch-data requests against the task API.
// It never retries: every error is returned to the caller as-is.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API rooted at baseURL (e.g. "http://localhost:5000").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

type createTaskRequest struct {
	Filters models.TaskFilters `json:"filters"`
}

// ListTasks returns every task known to the API, newest first as the API orders them.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask submits a new data-collection task.
func (c *Client) CreateTask(ctx context.Context, filters models.TaskFilters) (models.Task, error) {
	body, err := json.Marshal(createTaskRequest{Filters: filters})
	if err != nil {
		return models.Task{}, fmt.Errorf("encode task filters: %w", err)
	}
	var task models.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/api/tasks", body, &task); err != nil {
		return models.Task{}, err
	}
	if task.Filters == nil {
		task.Filters = &filters
	}
	return task, nil
}

// FetchTaskData downloads the raw records collected by a task. Numbers are
// kept as json.Number so prices are not rounded through float64 twice.
//
// Returns:
//   - *DataNotReadyError when the API answers 202, 404, 409 or 425.
//   - *NetworkError for any other failure.
func (c *Client) FetchTaskData(ctx context.Context, taskID int) ([]models.RawRecord, error) {
	const op = "fetch task data"
	resp, url, err := c.send(ctx, op, http.MethodGet, fmt.Sprintf("/api/tasks/%d/data", taskID), nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if notReadyCodes[resp.StatusCode] {
		return nil, &DataNotReadyError{TaskID: taskID, StatusCode: resp.StatusCode}
	}
	if !success(resp.StatusCode) {
		return nil, &NetworkError{Op: op, URL: url, StatusCode: resp.StatusCode}
	}

	var records []models.RawRecord
	if err := decode(resp.Body, &records); err != nil {
		return nil, &NetworkError{Op: op, URL: url, Err: err}
	}
	if records == nil {
		records = []models.RawRecord{}
	}
	return records, nil
}

// Ping checks that the API is reachable and answering.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/api/tasks", nil, nil)
}

// do sends a request and decodes a 2xx JSON answer into out (skipped when out is nil).
func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	resp, url, err := c.send(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	defer drain(resp)

	if !success(resp.StatusCode) {
		return &NetworkError{Op: op, URL: url, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := decode(resp.Body, out); err != nil {
		return &NetworkError{Op: op, URL: url, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path string, body []byte) (*http.Response, string, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, url, &NetworkError{Op: op, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, url, &NetworkError{Op: op, URL: url, Err: err}
	}
	return resp, url, nil
}

func success(code int) bool {
	return code >= 200 && code < 300
}

func decode(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
