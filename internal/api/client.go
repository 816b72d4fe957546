// Package api is the HTTP client for the todo backend.
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

	"github.com/google/uuid"

	"github.com/idilsaglam/todoc/internal/logging"
	"github.com/idilsaglam/todoc/internal/model"
)

const (
	collectionPath = "/api/todos/"
	loginPath      = "/login"
)

// TokenSource supplies the bearer token for outgoing requests. An empty
// string means no Authorization header is sent; the server decides what
// that means.
type TokenSource func() string

// Client talks to one todo collection. Construct with New; the token source
// is injected so the client never reads credentials ambiently.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   TokenSource
}

func New(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		token:   token,
	}
}

// List fetches the whole collection in server order (newest first).
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, collectionPath, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item by id.
func (c *Client) Get(ctx context.Context, id int64) (model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Create posts a new item and returns it with the server-assigned id and
// creation time. The title must be validated by the caller; Create sends
// whatever it is given.
func (c *Client) Create(ctx context.Context, title, description string) (model.Item, error) {
	body := struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}{title, description}

	var item model.Item
	if err := c.do(ctx, http.MethodPost, collectionPath, body, &item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Update applies a partial patch to one item and returns the updated item.
func (c *Client) Update(ctx context.Context, id int64, patch model.UpdatePatch) (model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, itemPath(id), patch, &item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Delete removes one item. The server echoes the deleted item back; we
// discard it.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(ctx, http.MethodPost, loginPath, body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token in response")
	}
	return resp.AccessToken, nil
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s%d", collectionPath, id)
}

// do runs one round trip: marshal body, attach headers, check for 2xx,
// decode into out (skipped when out is nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		logging.L().Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := newStatusError(resp)
		logging.L().Error().
			Int("status", serr.Code).
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Msg(serr.Detail)
		return serr
	}

	if out == nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
