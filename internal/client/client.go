package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aidar/teamhub/internal/domain"
)

// Client is the HTTP client for the teamhub API. It attaches the stored
// bearer credential to authenticated requests and maps failed responses to
// the classified error taxonomy. It never writes to the credential store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialStore
}

// New creates a new API client
func New(baseURL string, creds CredentialStore) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
	}
}

// SetTimeout overrides the default request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// send performs a request and decodes a successful JSON response into out.
// A nil out discards the response body. Failed responses come back as
// classified errors; the caller branches with errors.Is, never on text.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, requiresAuth bool, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requiresAuth {
		token, err := c.creds.Load()
		if err != nil {
			return fmt.Errorf("failed to load credential: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnknown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return classify(resp.StatusCode, payload)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUnknown, err)
	}

	return nil
}

// classify maps a failed response to the error taxonomy
func classify(statusCode int, payload []byte) error {
	message := displayMessage(statusCode, payload)

	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknown, message)
	}
}

// displayMessage extracts a human-readable message from an error payload.
// FastAPI-style bodies carry "detail", this service carries "message";
// anything else falls back to a generic string.
func displayMessage(statusCode int, payload []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
