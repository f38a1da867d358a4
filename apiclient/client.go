package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fooddash/fooddash-go/utils"
)

// requestTimeout is the fixed per-request budget. There is no automatic
// retry; callers decide what to do with a failed call.
const requestTimeout = 10 * time.Second

// TokenProvider yields the current bearer token, or "" when logged out.
type TokenProvider func() string

// Client is a thin wrapper over the backend REST API. It attaches the
// bearer token, enforces the request timeout and decodes the response
// envelope. All business logic stays on the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenProvider
}

func New(baseURL string, token TokenProvider) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		token: token,
	}
}

// Request performs one HTTP call and returns the raw data portion of the
// response envelope. Failures are *NetworkError or *HTTPError.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read " + path, Err: err}
	}

	var envelope utils.JSONResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decode response of %s: %w", path, err)
		}
	}

	if resp.StatusCode >= 400 {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		utils.ErrorLogger.Warnf("%s %s failed: %d %s", method, path, resp.StatusCode, message)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: message}
	}

	return envelope.Data, nil
}

// Get decodes the data portion of a GET response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Post decodes the data portion of a POST response into out, which may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

// Patch decodes the data portion of a PATCH response into out, which may be nil.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE and discards any response data.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	data, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode data of %s: %w", path, err)
	}
	return nil
}
