// Package api is the single HTTP client for the ssabab backend. It attaches
// the bearer token to every outgoing request and transparently recovers from
// an expired access token by exchanging the refresh token and replaying the
// failed request exactly once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ssabab/internal/logging"
	"ssabab/internal/session"
)

const refreshPath = "/account/refresh"

// validator is implemented by response types that carry a schema check.
type validator interface {
	Validate() error
}

// Client is the backend HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	logger     *zap.Logger
}

// New creates a backend client. The session store supplies bearer tokens and
// receives refreshed access tokens.
func New(baseURL string, sess *session.Store, logger *zap.Logger, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
		logger:     logger,
	}
}

// do performs one request/response cycle, including the one-shot
// refresh-and-retry on 401. out, when non-nil, receives the decoded body and
// is validated if it implements Validate.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, respBody, err := c.send(ctx, method, path, payload, requestID)
	if err != nil {
		return err
	}

	// One-shot refresh-and-retry: only on 401, only when a refresh token is
	// present, and never for the refresh endpoint itself.
	if resp.StatusCode == http.StatusUnauthorized && path != refreshPath && c.session.RefreshToken() != "" {
		if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
			// Refresh failure is swallowed here so the caller's own error
			// handling (redirect to login) decides what the user sees.
			logging.Session("silent refresh failed: %v", refreshErr)
		} else {
			logging.SessionDebug("access token refreshed, replaying request %s", requestID)
			resp, respBody, err = c.send(ctx, method, path, payload, requestID)
			if err != nil {
				return err
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Body:       string(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
	}
	return nil
}

// send issues a single HTTP request, attaching the current bearer token.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, requestID string) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", requestID)

	// Requests without a token proceed unauthenticated.
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request",
		zap.String("id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	logging.APIDebug("%s %s -> %d (%v)", method, path, resp.StatusCode, time.Since(start))

	return resp, respBody, nil
}

// refreshAccessToken exchanges the refresh token for a new access token and
// persists it through the session store.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	var out refreshResponse
	err := c.do(ctx, http.MethodPost, refreshPath,
		refreshRequest{RefreshToken: c.session.RefreshToken()}, &out)
	if err != nil {
		return err
	}
	return c.session.SetToken(out.Token.AccessToken)
}

// TryRefresh attempts a silent token refresh. Used on page mount when the
// persisted session is absent or expired but a refresh token survives.
func (c *Client) TryRefresh(ctx context.Context) error {
	if c.session.RefreshToken() == "" {
		return fmt.Errorf("no refresh token")
	}
	return c.refreshAccessToken(ctx)
}
