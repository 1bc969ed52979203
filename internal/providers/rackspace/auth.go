package rackspace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"nathanbeddoewebdev/rscloud/internal/cache"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/retry"
	"nathanbeddoewebdev/rscloud/internal/transport"
)

// SessionTTL is how long a cached session is reused. v1.0 tokens are valid
// for 24 hours.
const SessionTTL = 23 * time.Hour

// KeyAuthenticator exchanges a username and API key for a session using
// the v1.0 auth protocol. Sessions are kept in memory and, when a cache is
// set, on disk so later invocations skip the exchange.
type KeyAuthenticator struct {
	authURL  string
	username string
	apiKey   string
	doer     transport.Doer
	cache    *cache.Cache
	retry    retry.Config

	mu      sync.Mutex
	session *Session
}

// NewKeyAuthenticator returns an authenticator for the given auth endpoint.
// c may be nil to disable the disk cache.
func NewKeyAuthenticator(authURL, username, apiKey string, doer transport.Doer, c *cache.Cache) *KeyAuthenticator {
	if doer == nil {
		doer = transport.NewHTTP()
	}
	return &KeyAuthenticator{
		authURL:  authURL,
		username: username,
		apiKey:   apiKey,
		doer:     doer,
		cache:    c,
		retry:    retry.DefaultConfig(),
	}
}

// Session returns the current session, authenticating when there is none.
func (a *KeyAuthenticator) Session(ctx context.Context) (Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return *a.session, nil
	}

	key := a.cacheKey()
	var cached Session
	if hit, err := a.cache.Get(key, SessionTTL, &cached); err == nil && hit && cached.Token != "" {
		a.session = &cached
		return cached, nil
	}

	var sess Session
	err := retry.Do(ctx, a.retry, retry.IsRetryable, func() error {
		var err error
		sess, err = a.authenticate(ctx)
		return err
	})
	if err != nil {
		return Session{}, err
	}

	if err := a.cache.Set(key, sess); err != nil {
		logger.Ctx(ctx).Debug().Err(err).Msg("failed to cache session")
	}
	a.session = &sess
	return sess, nil
}

// Invalidate drops the current session so the next call authenticates
// again.
func (a *KeyAuthenticator) Invalidate() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	return a.cache.Invalidate(a.cacheKey())
}

func (a *KeyAuthenticator) authenticate(ctx context.Context) (Session, error) {
	if a.authURL == "" {
		return Session{}, errors.New("no auth URL configured")
	}

	resp, err := a.doer.Do(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    a.authURL,
		Header: http.Header{
			"X-Auth-User": {a.username},
			"X-Auth-Key":  {a.apiKey},
		},
	})
	if err != nil {
		return Session{}, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Session{}, fmt.Errorf("auth rejected for user %q: %w", a.username, domain.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Session{}, &retry.StatusError{Code: resp.StatusCode}
	}

	sess := Session{
		Token:     resp.Header.Get("X-Auth-Token"),
		ServerURL: resp.Header.Get("X-Server-Management-Url"),
	}
	if sess.Token == "" {
		return Session{}, errors.New("auth response is missing X-Auth-Token")
	}
	return sess, nil
}

func (a *KeyAuthenticator) cacheKey() string {
	host := a.authURL
	if u, err := url.Parse(a.authURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return "session-" + host + "-" + a.username
}
