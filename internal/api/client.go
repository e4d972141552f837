package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client talks to the coffee marketplace REST backend. It is a thin
// adapter: every call returns a typed result or error and holds no state
// besides connection settings.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Entry
}

// NewClient creates a backend API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "api"),
	}
}

// Error represents a non-2xx response from the backend
type Error struct {
	StatusCode int
	Message    string
	// Fields carries field-keyed validation messages when the backend
	// returned them; nil otherwise.
	Fields map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a backend error with the given status
func IsStatus(err error, status int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// do performs one backend request. A non-empty token is attached as a
// bearer credential. A non-nil out receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "create %s %s request", method, path)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s response", method, path)
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrapf(err, "decode %s %s response", method, path)
		}
	}
	return nil
}

// apiError maps an error response body onto *Error. The backend is not
// consistent about its error envelope, so several shapes are tried.
func (c *Client) apiError(status int, body []byte) error {
	apiErr := &Error{StatusCode: status}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	for _, key := range []string{"error", "detail", "message"} {
		if raw, ok := envelope[key]; ok {
			var msg string
			if json.Unmarshal(raw, &msg) == nil {
				apiErr.Message = msg
				return apiErr
			}
		}
	}

	// Field-keyed validation errors: {"username": ["already taken"], ...}
	fields := make(map[string][]string, len(envelope))
	for key, raw := range envelope {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			fields[key] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			fields[key] = []string{msg}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
		apiErr.Message = "validation failed"
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
