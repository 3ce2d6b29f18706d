// Package api implements the HTTP client adapter for the portal
// backend: bearer-token attachment, JSON/multipart request encoding and
// normalized error shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/santarita/portal/core"
)

// TokenSource yields the current bearer token, or "" when anonymous.
// The session store implements it with persistent-scope precedence.
type TokenSource interface {
	Token() string
}

// Client is stateless beyond its configuration: it holds no session
// data of its own and reads the token fresh on every request.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    core.Logger
}

func NewClient(conf *core.Config, tokens TokenSource, log core.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(conf.API.BaseURL, "/"),
		http:   &http.Client{Timeout: conf.API.Timeout},
		tokens: tokens,
		log:    log,
	}
}

func (c *Client) url(path string) string {
	return c.base + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s request", method, path)
	}
	if contentType != "" {
		// multipart bodies carry the writer's own content type so the
		// boundary survives; JSON gets the usual header
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(method + " " + c.url(path))
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading %s %s response", method, path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "parsing %s %s response", method, path)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errors.Wrapf(err, "encoding %s %s body", method, path)
		}
	}
	return c.do(ctx, method, path, &buf, "application/json", out)
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// newAPIError extracts the server-supplied message when the body is
// JSON with an "error" or "message" key; otherwise the caller gets the
// generic status-coded message.
func newAPIError(status int, body []byte) *core.APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	var msg string
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}
	return core.NewAPIError(status, msg, body)
}
