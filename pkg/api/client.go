package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// ResourcePath is the collection path of the remote todo service
const ResourcePath = "/todos"

const maxErrorBody = 512

var queryEncoder = schema.NewEncoder()

// ListOptions narrows a list request. The zero value asks for the full list.
type ListOptions struct {
	IsComplete *bool `schema:"isComplete,omitempty"`
	Limit      int   `schema:"limit,omitempty"`
}

// Client talks to the remote todo service over HTTP
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithToken sends a bearer token with every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the service rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	// Accept a base URL that already points at the collection.
	c.baseURL = strings.TrimSuffix(c.baseURL, ResourcePath)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches the todo collection
func (c *Client) List(ctx context.Context, opts ListOptions) ([]todo.Item, error) {
	query := url.Values{}
	if err := queryEncoder.Encode(opts, query); err != nil {
		return nil, fmt.Errorf("list: encode query: %w", err)
	}

	path := ResourcePath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var env todo.Envelope[[]todo.Item]
	if err := c.do(ctx, "list", http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []todo.Item{}
	}
	return env.Data, nil
}

// Get fetches a single todo by id
func (c *Client) Get(ctx context.Context, id string) (todo.Item, error) {
	var env todo.Envelope[todo.Item]
	if err := c.do(ctx, "get", http.MethodGet, itemPath(id), nil, &env); err != nil {
		return todo.Item{}, err
	}
	return env.Data, nil
}

// Create validates the name and posts a new, incomplete todo
func (c *Client) Create(ctx context.Context, name string) error {
	req, err := todo.NewCreateRequest(name)
	if err != nil {
		return err
	}
	return c.do(ctx, "create", http.MethodPost, ResourcePath, req, nil)
}

// Complete marks a todo as complete
func (c *Client) Complete(ctx context.Context, id string) error {
	return c.do(ctx, "update", http.MethodPut, itemPath(id), todo.CompleteRequest(), nil)
}

// Delete removes a todo
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id string) string {
	return ResourcePath + "/" + url.PathEscape(id)
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		utils.Log("request failed", "op", op, "method", method, "path", path, "err", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	utils.Log("request done", "op", op, "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Body: "invalid response body: " + err.Error()}
	}
	return nil
}
