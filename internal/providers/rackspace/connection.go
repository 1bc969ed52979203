package rackspace

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/transport"
	"nathanbeddoewebdev/rscloud/internal/wire"

	"github.com/google/uuid"
)

// Session is an authenticated API session.
type Session struct {
	Token string `json:"token"`
	// ServerURL is the management URL requests are made against, e.g.
	// "https://servers.api.rackspacecloud.com/v1.0/123456". When empty the
	// request path is sent as-is.
	ServerURL string `json:"server_url"`
}

// Authenticator supplies the current session, authenticating on first use.
type Authenticator interface {
	Session(ctx context.Context) (Session, error)
}

// invalidator is implemented by authenticators that can drop a session the
// API has rejected, so the next call authenticates again.
type invalidator interface {
	Invalidate() error
}

// response is a raw API response plus the endpoint it came from.
type response struct {
	*transport.Response
	endpoint Endpoint
}

func (r *response) success() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// connection issues authenticated requests against one variant.
type connection struct {
	doer    transport.Doer
	auth    Authenticator
	decoder wire.Decoder
	nonce   func() string
}

// newNonce returns 16 random hex characters.
func newNonce() string {
	id := uuid.New()
	return hex.EncodeToString(id[:8])
}

// request sends one API call. The body is not interpreted; callers decide
// what the status means.
func (c *connection) request(ctx context.Context, method, action string, body *wire.Element) (*response, error) {
	sess, err := c.auth.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	req := transport.Request{
		Method: method,
		URL:    sess.ServerURL + action,
		Header: http.Header{
			"X-Auth-Token": {sess.Token},
			"Accept":       {"application/xml"},
		},
	}
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", wire.ContentTypeXML)
		if body != nil {
			data, err := wire.Encode(body)
			if err != nil {
				return nil, err
			}
			req.Body = data
		}
	}
	if method == http.MethodGet {
		req.Query = url.Values{"cache-busting": {c.nonce()}}
	}

	start := time.Now()
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, action, err)
	}

	logger.Ctx(ctx).Debug().
		Str("driver", c.decoder.Driver).
		Str("method", method).
		Str("path", action).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode == http.StatusUnauthorized {
		c.dropSession(ctx)
	}

	return &response{Response: resp, endpoint: endpointOf(sess.ServerURL)}, nil
}

func (c *connection) dropSession(ctx context.Context) {
	inv, ok := c.auth.(invalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(); err != nil {
		logger.Ctx(ctx).Debug().Err(err).Msg("failed to drop rejected session")
		return
	}
	logger.Ctx(ctx).Debug().Str("driver", c.decoder.Driver).Msg("session rejected, dropped")
}

// decode parses a successful response that must carry an XML document.
func (c *connection) decode(resp *response) (*wire.Element, error) {
	payload, err := c.decoder.Decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if payload.NoContent() {
		return nil, fmt.Errorf("%s: empty response body (status %d)", c.decoder.Driver, resp.StatusCode)
	}
	if payload.Root == nil {
		return nil, &wire.MalformedResponseError{
			Body:   payload.Raw,
			Driver: c.decoder.Driver,
			Err:    fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type")),
		}
	}
	return payload.Root, nil
}

// fetch sends a request and returns the decoded document of a 2xx
// response. Any other status becomes a *domain.ProviderError.
func (c *connection) fetch(ctx context.Context, method, action string, body *wire.Element) (*wire.Element, Endpoint, error) {
	resp, err := c.request(ctx, method, action, body)
	if err != nil {
		return nil, Endpoint{}, err
	}
	if !resp.success() {
		return nil, Endpoint{}, providerError(resp)
	}
	root, err := c.decode(resp)
	if err != nil {
		return nil, Endpoint{}, err
	}
	return root, resp.endpoint, nil
}

// expect sends a request whose only result is its status code. A status
// other than want is reported as false, not as an error, except a 401,
// which is an auth failure.
func (c *connection) expect(ctx context.Context, method, action string, body *wire.Element, want int) (bool, error) {
	resp, err := c.request(ctx, method, action, body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return false, providerError(resp)
	}
	if resp.StatusCode != want {
		logger.Ctx(ctx).Debug().
			Str("driver", c.decoder.Driver).
			Str("path", action).
			Int("status", resp.StatusCode).
			Int("expected", want).
			Str("message", errorMessage(resp.Body)).
			Msg("unexpected status")
		return false, nil
	}
	return true, nil
}

func providerError(resp *response) error {
	return &domain.ProviderError{
		StatusCode: resp.StatusCode,
		Reason:     resp.Reason,
		Message:    errorMessage(resp.Body),
	}
}

// errorMessage joins the non-empty text of every element in an error
// body. A body that is not XML is returned verbatim.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	root, err := wire.Parse(body)
	if err != nil {
		return string(body)
	}

	var parts []string
	for _, el := range root.Iter() {
		if text := strings.TrimSpace(el.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "; ")
}

func endpointOf(serverURL string) Endpoint {
	if serverURL == "" {
		return Endpoint{}
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return Endpoint{}
	}
	return Endpoint{Host: u.Host, Path: strings.TrimRight(u.Path, "/")}
}
