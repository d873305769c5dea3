// Package client is a typed Go client for the blog post API.
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
	"strings"

	"github.com/oapi-codegen/runtime"

	"blogapi/internal/model"
)

// APIError surfaces non-2xx responses from the server.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

//nolint:errorlint
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

var ErrNotFound = errors.New("not found")

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ListOptions mirrors the sort and direction query parameters.
type ListOptions struct {
	Sort      model.SortField
	Direction model.SortDirection
}

func (c *Client) List(ctx context.Context, opts ListOptions) ([]model.Post, error) {
	q := url.Values{}
	if opts.Sort != "" {
		q.Set("sort", string(opts.Sort))
	}
	if opts.Direction != "" {
		q.Set("direction", string(opts.Direction))
	}
	var out []model.Post
	err := c.do(ctx, http.MethodGet, "/api/posts", q, nil, http.StatusOK, &out)
	return out, err
}

// Search returns posts whose title contains title or whose content contains
// content. Empty arguments are not sent.
func (c *Client) Search(ctx context.Context, title, content string) ([]model.Post, error) {
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if content != "" {
		q.Set("content", content)
	}
	var out []model.Post
	err := c.do(ctx, http.MethodGet, "/api/posts/search", q, nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id int) (model.Post, error) {
	path, err := postPath(id)
	if err != nil {
		return model.Post{}, err
	}
	var out model.Post
	err = c.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, title, content string) (model.Post, error) {
	body := map[string]string{"title": title, "content": content}
	var out model.Post
	err := c.do(ctx, http.MethodPost, "/api/posts", nil, body, http.StatusCreated, &out)
	return out, err
}

// Update sends only the non-nil fields of patch.
func (c *Client) Update(ctx context.Context, id int, patch model.PostPatch) (model.Post, error) {
	path, err := postPath(id)
	if err != nil {
		return model.Post{}, err
	}
	body := map[string]string{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Content != nil {
		body["content"] = *patch.Content
	}
	var out model.Post
	err = c.do(ctx, http.MethodPut, path, nil, body, http.StatusOK, &out)
	return out, err
}

// Delete removes a post and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	path, err := postPath(id)
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	err = c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK, &out)
	return out.Message, err
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, http.StatusOK, nil)
}

func postPath(id int) (string, error) {
	p, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("style id: %w", err)
	}
	return "/api/posts/" + p, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, want int, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != want {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	return &APIError{
		StatusCode: status,
		Message:    msg,
		Body:       string(body),
	}
}
