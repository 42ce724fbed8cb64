// Package peplink pkg/peplink/client.go

package peplink

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pepwatch/pepwatch/pkg/config"
)

const (
	statOK   = "ok"
	statFail = "fail"

	defaultRequestTimeout = 10 * time.Second

	// The router's embedded web server is easily overwhelmed; pace
	// outbound requests rather than letting a cycle burst at it.
	requestsPerSecond = 20
	requestBurst      = 10
)

// RouterClient implements Client against a router's HTTP(S) management
// API. It owns the session cookie; fetchers share it read-only.
type RouterClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
	now      func() time.Time

	mu   sync.Mutex
	sess session
}

// NewRouterClient creates a client for the configured router. When SSL
// verification is disabled, self-signed certificates are accepted.
func NewRouterClient(cfg *config.RouterConfig) *RouterClient {
	transport := http.DefaultTransport
	if !cfg.SSLVerification() {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // user-supplied toggle
		}
	}

	host := cfg.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	return &RouterClient{
		baseURL:  strings.TrimSuffix(host, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http: &http.Client{
			Transport: transport,
			Timeout:   defaultRequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		now:     time.Now,
	}
}

// Close implements Client.
func (c *RouterClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sess = session{}
	c.http.CloseIdleConnections()
}

// officialEndpoint builds an /api/-style path for a documented function.
func officialEndpoint(fn string) string {
	return "/api/" + fn
}

// unofficialEndpoint builds a CGI path for an undocumented function. The
// "_" parameter is a cache buster the CGI interface requires to keep
// increasing between calls.
func (c *RouterClient) unofficialEndpoint(fn string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}

	params.Set("func", fn)
	params.Set("_", strconv.FormatInt(c.now().UnixMilli(), 10))

	return "/cgi-bin/MANGA/api.cgi?" + params.Encode()
}

// apiGet performs an authenticated GET with the single intra-cycle
// re-auth policy: the first auth failure invalidates the session, forces
// one re-login, and retries the request once. A second consecutive auth
// failure surfaces as ErrAuthFailed with no further retry.
func (c *RouterClient) apiGet(ctx context.Context, op, endpoint string) (json.RawMessage, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, &APIError{Op: op, Endpoint: endpoint, Wrapped: err}
	}

	cookie := c.cookieValue()

	raw, err := c.authedGet(ctx, endpoint, cookie)
	if err == nil {
		return raw, nil
	}

	if !errors.Is(err, ErrAuthFailed) {
		return nil, &APIError{Op: op, Endpoint: endpoint, Wrapped: err}
	}

	// Expire only the cookie this request carried. Concurrent fetchers that
	// hit the same expiry share one re-login: the first through EnsureSession
	// replaces the session, the rest find it valid and just retry.
	c.expireCookie(cookie)

	if err := c.EnsureSession(ctx); err != nil {
		return nil, &APIError{Op: op, Endpoint: endpoint, Wrapped: err}
	}

	raw, err = c.authedGet(ctx, endpoint, c.cookieValue())
	if err != nil {
		return nil, &APIError{Op: op, Endpoint: endpoint, Wrapped: err}
	}

	return raw, nil
}

// authedGet issues one GET with the given cookie attached and unwraps the
// stat envelope. The cookie is passed in rather than read here so a retry
// after re-login sends the replacement, never a half-updated value.
func (c *RouterClient) authedGet(ctx context.Context, endpoint, cookie string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	if cookie != "" {
		req.Header.Set("Cookie", "bauth="+cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d", ErrEndpointUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if env.Stat == statFail && env.Code == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: API code 401", ErrAuthFailed)
	}

	if env.Stat != statOK {
		return nil, fmt.Errorf("%w: stat=%s code=%d message=%q",
			ErrEndpointUnavailable, env.Stat, env.Code, env.Message)
	}

	return env.Response, nil
}
