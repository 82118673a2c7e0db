// Package client implements the console API collaborator over plain REST:
// JSON payloads in, JSON values or an error body with a human-readable
// message out. The session credential travels as a bearer token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"

	console "github.com/goliatone/go-console"
)

// DefaultTimeout bounds each round trip when no custom http.Client is set.
var DefaultTimeout = 15 * time.Second

var _ console.API = (*Client)(nil)

// Client talks to the console backend.
type Client struct {
	base   string
	http   *http.Client
	logger console.Logger
	debug  bool
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(l console.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebug toggles request/response dumps.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New builds a client for the given base URL, e.g. "https://api.example.com".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func (c *Client) Signup(ctx context.Context, payload console.SignupPayload) (*console.Identity, error) {
	identity := &console.Identity{}
	if err := c.do(ctx, http.MethodPost, "/api/users/signup", "", payload, identity); err != nil {
		return nil, err
	}
	identity.Role = console.RoleUser
	return identity, nil
}

func (c *Client) Login(ctx context.Context, creds console.Credentials) (*console.Identity, error) {
	identity := &console.Identity{}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", creds, identity); err != nil {
		return nil, err
	}
	identity.Role = console.RoleUser
	return identity, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/users/logout", token, nil, nil)
}

func (c *Client) AdminLogin(ctx context.Context, creds console.Credentials) (*console.Identity, error) {
	identity := &console.Identity{}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", "", creds, identity); err != nil {
		return nil, err
	}
	identity.Role = console.RoleAdmin
	return identity, nil
}

func (c *Client) AdminLogout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/logout", token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]console.UserRecord, error) {
	var list []console.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, payload console.CreateUserPayload) (*console.UserRecord, error) {
	record := &console.UserRecord{}
	if err := c.do(ctx, http.MethodPost, "/api/admin/users", token, payload, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, userID string, payload console.UpdateUserPayload) (*console.UserRecord, error) {
	record := &console.UserRecord{}
	path := fmt.Sprintf("/api/admin/users/%s", userID)
	if err := c.do(ctx, http.MethodPut, path, token, payload, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, userID string) error {
	path := fmt.Sprintf("/api/admin/users/%s", userID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// apiError is the backend's error body shape.
type apiError struct {
	Message string `json:"message"`
}

// do performs one round trip. Transport failures and API-reported failures
// surface uniformly as rich errors carrying a displayable message; no retry
// is attempted.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug {
		c.log().Debug("%s %s payload: %s", method, path, print.MaybePrettyJSON(body))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed").
			WithMetadata(map[string]any{"method": method, "path": path})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.responseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode response")
	}

	return nil
}

// responseError maps an error response into a rich error whose message is
// the server-supplied text, falling back to the status text when the body
// carries none.
func (c *Client) responseError(resp *http.Response) error {
	payload := apiError{}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && len(raw) > 0 {
		// A non-JSON error body is fine, we just fall back below.
		_ = json.Unmarshal(raw, &payload)
	}

	message := payload.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	category := goerrors.CategoryInternal
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		category = goerrors.CategoryAuth
	case resp.StatusCode == http.StatusNotFound:
		category = goerrors.CategoryNotFound
	case resp.StatusCode == http.StatusConflict:
		category = goerrors.CategoryConflict
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		category = goerrors.CategoryBadInput
	}

	return goerrors.New(message, category).WithCode(resp.StatusCode)
}

func (c *Client) log() console.Logger {
	if c.logger != nil {
		return c.logger
	}
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
