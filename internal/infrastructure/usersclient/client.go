package usersclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// ErrNotFound means the users service answered and the user does not exist.
var ErrNotFound = errors.New("user does not exist")

// UpstreamError carries a structured error body returned by the users
// service itself. Its message is forwarded to the caller verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("users service returned %d: %s", e.StatusCode, e.Message)
}

// ExistenceChecker validates that a user id exists in the sibling service.
type ExistenceChecker interface {
	CheckUser(ctx context.Context, userID string) error
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// CheckUser issues GET {baseURL}/api/users/{id} with a bounded timeout.
// Transport failures and timeouts come back wrapped, distinct from both
// ErrNotFound and UpstreamError.
func (c *Client) CheckUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/"+userID, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "payflow-transactions")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach users service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
			slog.Warn("users service returned unexpected status", "status_code", resp.StatusCode, "user_id", userID)
			return fmt.Errorf("unexpected status %d from users service", resp.StatusCode)
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Message: body.Message}
	}
}
