// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is the web process's typed client for the backend API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/textura/internal/model"
)

// maxResponseBytes caps how much of a backend response body is read.
const maxResponseBytes = 10 << 20

// ErrNotJSON is returned when the backend answers with a non-JSON body.
var ErrNotJSON = errors.New("backend response is not JSON")

// APIError is a backend envelope with success=false.
type APIError struct {
	Status  int
	Message string
	Errors  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client calls the backend API at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. http://localhost:8080/api/v1.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path and query onto the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// NewRequest builds a backend request bound to ctx. A non-empty token is
// sent as a bearer Authorization header.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("building backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Do sends req with the client's HTTP client.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

// Call sends a JSON request and decodes the backend envelope. A response with
// success=false or a status of 400 or above becomes an *APIError.
func Call[T any](ctx context.Context, c *Client, method, path string, query url.Values, in any, token string) (model.Envelope[T], error) {
	var env model.Envelope[T]

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return env, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.NewRequest(ctx, method, path, query, body, token)
	if err != nil {
		return env, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return Decode[T](c.Do(req))
}

// Upload posts a multipart body built by the caller.
func Upload[T any](ctx context.Context, c *Client, path string, body io.Reader, contentType, token string) (model.Envelope[T], error) {
	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, body, token)
	if err != nil {
		return model.Envelope[T]{}, err
	}
	req.Header.Set("Content-Type", contentType)
	return Decode[T](c.Do(req))
}

// Decode reads a backend envelope from the result of Client.Do.
func Decode[T any](resp *http.Response, err error) (model.Envelope[T], error) {
	var env model.Envelope[T]
	if err != nil {
		return env, fmt.Errorf("calling backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !IsJSON(resp.Header.Get("Content-Type")) {
		return env, fmt.Errorf("%w: status %d", ErrNotJSON, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		return env, fmt.Errorf("decoding backend response: %w", err)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return env, &APIError{Status: resp.StatusCode, Message: msg, Errors: env.Errors}
	}
	return env, nil
}

// IsJSON reports whether a Content-Type header names a JSON media type.
func IsJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Page is one page of a list response.
type Page[T any] struct {
	Items      []T               `json:"items"`
	Pagination *model.Pagination `json:"pagination"`
}

// List fetches one page of resource (e.g. "services").
func List[T any](ctx context.Context, c *Client, resource string, q model.ListQuery, token string) (Page[T], error) {
	env, err := Call[[]T](ctx, c, http.MethodGet, resource, q.Values(), nil, token)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: env.Data, Pagination: env.Pagination}, nil
}

// Get fetches one record by id.
func Get[T any](ctx context.Context, c *Client, resource string, id int64, token string) (T, error) {
	env, err := Call[T](ctx, c, http.MethodGet, resource+"/"+strconv.FormatInt(id, 10), nil, nil, token)
	return env.Data, err
}

// BySlug fetches one public record by slug.
func BySlug[T any](ctx context.Context, c *Client, resource, slug string) (T, error) {
	env, err := Call[T](ctx, c, http.MethodGet, resource+"/slug/"+url.PathEscape(slug), nil, nil, "")
	return env.Data, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	env, err := Call[model.LoginResult](ctx, c, http.MethodPost, "auth/login", nil,
		model.LoginInput{Email: email, Password: password}, "")
	return env.Data, err
}

// Settings fetches the public settings map.
func (c *Client) Settings(ctx context.Context) (map[string]json.RawMessage, error) {
	env, err := Call[map[string]json.RawMessage](ctx, c, http.MethodGet, "settings", nil, nil, "")
	return env.Data, err
}
