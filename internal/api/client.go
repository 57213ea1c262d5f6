package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/logger"
)

const maxResponseBytes = 8 << 20

// Actions that are called before a session token exists
var publicActions = map[string]bool{
	ActionGetLoginURL: true,
	ActionGetProfile:  true,
}

type envelope struct {
	OK   *bool  `json:"ok"`
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Client talks to the attendance backend. Every action is a GET against a
// single endpoint with the action name and its parameters in the query string.
type Client struct {
	endpoint string
	http     *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithToken sets the initial session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: constants.DefaultAPITimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token sent with authenticated actions.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes action with params and decodes the response into out.
// It returns *NetworkError when no usable response arrived and
// *ApplicationError when the backend answered ok:false.
func (c *Client) Call(ctx context.Context, action string, params url.Values, out any) error {
	if c.endpoint == "" {
		return &NetworkError{Action: action, Err: fmt.Errorf("no API endpoint configured")}
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return &NetworkError{Action: action, Err: fmt.Errorf("invalid endpoint: %w", err)}
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("action", action)
	if token := c.Token(); token != "" && !publicActions[action] {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &NetworkError{Action: action, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	logger.Debug("Calling backend", "action", action, "request_id", requestID)
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		logger.Error("Backend request failed", "action", action, "request_id", requestID, "error", err)
		return &NetworkError{Action: action, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return &NetworkError{Action: action, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if res.StatusCode != http.StatusOK {
		logger.Error("Backend returned unexpected status", "action", action, "request_id", requestID, "status", res.StatusCode)
		return &NetworkError{Action: action, Err: fmt.Errorf("unexpected status %d", res.StatusCode)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &NetworkError{Action: action, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if env.OK != nil && !*env.OK {
		appErr := &ApplicationError{Action: action, Code: env.Code, Msg: env.Msg}
		logger.Warn("Backend rejected request", "action", action, "request_id", requestID, "code", env.Code, "msg", env.Msg)
		return appErr
	}

	logger.Debug("Backend call completed", "action", action, "request_id", requestID, "elapsed", time.Since(start))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &NetworkError{Action: action, Err: fmt.Errorf("failed to decode %s response: %w", action, err)}
	}
	return nil
}
