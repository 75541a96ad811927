package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"talky-backend/internal/models"
)

const chatPath = "/api/chat"

const (
	msgServerError   = "server error"
	msgMalformed     = "malformed response from server"
	msgNoResponse    = "no response from server, check the connection or backend URL"
	msgRequestSetup  = "failed to set up the request"
	maxErrorBodySize = 1 << 20
)

// ServerError is returned when the relay answered with an error status.
// Message is the relay's error text, or "server error" when it sent none.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }

// ConnectionError is returned when no response was received at all.
type ConnectionError struct{ Err error }

func (e *ConnectionError) Error() string { return msgNoResponse }

func (e *ConnectionError) Unwrap() error { return e.Err }

// RequestSetupError is returned when the request could not be built.
type RequestSetupError struct{ Err error }

func (e *RequestSetupError) Error() string { return msgRequestSetup }

func (e *RequestSetupError) Unwrap() error { return e.Err }

// Client calls the relay's chat endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithLogger(log *zap.Logger) Option {
	return func(cl *Client) { cl.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage posts prompt to the relay and returns the reply. Failures are a
// *ServerError, *ConnectionError or *RequestSetupError.
func (c *Client) SendMessage(ctx context.Context, prompt string) (string, error) {
	req, err := c.newChatRequest(ctx, prompt)
	if err != nil {
		c.log.Error("request setup failed", zap.Error(err))
		return "", &RequestSetupError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("no response from server", zap.String("url", req.URL.String()), zap.Error(err))
		return "", &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := &ServerError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		c.log.Error("server returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("error", serverErr.Message),
		)
		return "", serverErr
	}

	var body models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error("failed to decode reply", zap.Error(err))
		return "", &ServerError{StatusCode: resp.StatusCode, Message: msgMalformed}
	}
	return body.Reply, nil
}

func (c *Client) newChatRequest(ctx context.Context, prompt string) (*http.Request, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", c.baseURL)
	}

	payload, err := json.Marshal(models.ChatRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base.JoinPath(chatPath).String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func errorMessage(body io.Reader) string {
	var payload models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBodySize)).Decode(&payload); err != nil || payload.Error == "" {
		return msgServerError
	}
	return payload.Error
}

// IsConnectionError reports whether err means the server could not be reached.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}
