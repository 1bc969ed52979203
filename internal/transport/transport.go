// Package transport performs raw HTTP exchanges for provider clients.
//
// Clients build a Request, hand it to a Doer, and interpret the Response
// themselves; nothing here knows about XML or provider semantics.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Request describes one HTTP exchange.
type Request struct {
	Method string
	// URL is absolute, or a path when the caller has no base URL yet.
	URL    string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	// Reason is the status text, e.g. "Not Found".
	Reason string
	Header http.Header
	Body   []byte
}

// Doer performs a request and returns the complete response. A non-2xx
// status is not an error at this layer.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// HTTP implements Doer on top of net/http.
type HTTP struct {
	client  *http.Client
	baseURL string
}

// NewHTTP returns an HTTP transport with the default timeout.
func NewHTTP() *HTTP {
	return &HTTP{client: &http.Client{Timeout: defaultTimeout}}
}

// NewHTTPWithClient returns an HTTP transport using client. Relative request
// URLs are resolved against baseURL when it is non-empty.
func NewHTTPWithClient(client *http.Client, baseURL string) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTP{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Do sends the request and reads the whole body.
func (h *HTTP) Do(ctx context.Context, r Request) (*Response, error) {
	target, err := h.resolve(r.URL, r.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to build request: %w", err)
	}
	for k, values := range r.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Reason:     http.StatusText(resp.StatusCode),
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (h *HTTP) resolve(raw string, query url.Values) (string, error) {
	if h.baseURL != "" && !strings.Contains(raw, "://") {
		raw = h.baseURL + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("transport: invalid URL %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("transport: URL %q is not absolute", raw)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, values := range query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
