// Package apiclient is a typed client for the Beach Box HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"beachbox/internal/pkg/response"
)

const DefaultBaseURL = "http://localhost:5001"

type Meta = response.Meta

// Error is any answer the API did not mark as a success.
type Error struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOptions maps to the q/page/limit/sort parameters of every list endpoint.
type ListOptions struct {
	Query string
	Page  int
	Limit int
	Sort  string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Sort != "" {
		v.Set("sort", o.Sort)
	}
	return v
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    *Meta             `json:"meta"`
	Details map[string]string `json:"details"`
	// Erro is the error key older report endpoints answered with.
	Erro string `json:"erro"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp, raw)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status != response.StatusSuccess {
		return nil, decodeError(resp, raw)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("resposta inesperada: %v", err)}
		}
	}
	return env.Meta, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// decodeError builds an *Error from a failed answer, reading the message from
// the envelope, the legacy erro key, or the raw body.
func decodeError(resp *http.Response, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fallbackMessage(resp, raw)}
	}
	msg := env.Message
	if msg == "" {
		msg = env.Erro
	}
	if msg == "" {
		msg = fallbackMessage(resp, nil)
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg, Details: env.Details}
}

func fallbackMessage(resp *http.Response, raw []byte) string {
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) <= 200 {
		return text
	}
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return "resposta inválida"
}

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
