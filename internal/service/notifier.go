package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/octobees/funeral-directory/internal/logger"
)

const notifyPath = "/notify"

// WorkerPoster posts JSON payloads to worker endpoints.
type WorkerPoster interface {
	PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error)
}

// WorkerClient posts to a worker service, authenticating with a Google ID
// token when one can be obtained.
type WorkerClient struct {
	client  *http.Client
	baseURL string
}

// NewWorkerClient builds a worker client, auto-configuring an ID token client when needed.
func NewWorkerClient(client *http.Client, workerBaseURL string) (*WorkerClient, error) {
	workerBaseURL = strings.TrimRight(workerBaseURL, "/")
	if workerBaseURL == "" {
		return nil, fmt.Errorf("worker base url must not be empty")
	}
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), workerBaseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &WorkerClient{client: client, baseURL: workerBaseURL}, nil
}

// PostJSON posts the payload to the worker and returns the "data" object.
func (c *WorkerClient) PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create worker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("worker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("worker error: %s", extractWorkerError(resp.Body))
	}

	var workerResp struct {
		Data  map[string]any `json:"data"`
		Error string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&workerResp); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode worker response: %w", err)
	}
	if workerResp.Error != "" {
		return nil, fmt.Errorf("worker error: %s", workerResp.Error)
	}
	return workerResp.Data, nil
}

func extractWorkerError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "worker returned an error"
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

var _ WorkerPoster = (*WorkerClient)(nil)

// Notification is the payload sent to the worker for each stored submission.
type Notification struct {
	Kind      string    `json:"kind"`
	Reference string    `json:"reference,omitempty"`
	Summary   string    `json:"summary"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier forwards submission notifications to the worker. Failures are
// logged and never returned.
type Notifier struct {
	worker WorkerPoster
	log    *logger.Logger
}

// NewNotifier returns a notifier posting through worker. A nil worker yields
// a notifier that does nothing.
func NewNotifier(worker WorkerPoster, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{worker: worker, log: log}
}

// Notify posts notification to the worker.
func (n *Notifier) Notify(ctx context.Context, notification Notification, requestID string) {
	if n == nil || n.worker == nil {
		return
	}
	if _, err := n.worker.PostJSON(ctx, notifyPath, notification, requestID); err != nil {
		n.log.Warn(ctx, "submission notification failed", err)
	}
}
