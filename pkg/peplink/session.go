// Package peplink pkg/peplink/session.go

package peplink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type sessionState int

const (
	sessionUnknown sessionState = iota
	sessionValid
	sessionExpired
)

// session holds the authentication cookie issued at login. It is owned by
// the client and mutated only under the session mutex: concurrent fetchers
// that detect expiry block on the mutex and reuse the cookie produced by
// whichever caller logged in first, instead of racing to re-authenticate.
type session struct {
	cookie    string
	createdAt time.Time
	state     sessionState
}

// EnsureSession implements Client. It is idempotent: while the held
// session is valid no login request is issued.
func (c *RouterClient) EnsureSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.state == sessionValid {
		return nil
	}

	return c.login(ctx)
}

// Invalidate implements Client. The next EnsureSession forces a re-login.
func (c *RouterClient) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sess = session{state: sessionExpired}
}

// expireCookie invalidates the session only while it still holds the given
// cookie. A 401 earned by a stale cookie can arrive after a sibling fetcher
// has already re-logged in; that must not destroy the fresh session.
func (c *RouterClient) expireCookie(cookie string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.cookie == cookie {
		c.sess = session{state: sessionExpired}
	}
}

// login authenticates and captures the bauth cookie. Callers must hold c.mu.
func (c *RouterClient) login(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(loginRequest{
		Username:  c.username,
		Password:  c.password,
		Challenge: "challenge", // required by the login endpoint
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: login: %w", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: login rejected (HTTP %d)", ErrAuthFailed, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: login returned HTTP %d", ErrConnectivity, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: login response: %w", ErrParse, err)
	}

	if env.Stat != statOK {
		return fmt.Errorf("%w: %s", ErrAuthFailed, loginFailMessage(&env))
	}

	cookie := bauthCookie(resp)
	if cookie == "" {
		return ErrNoSessionCookie
	}

	c.sess = session{
		cookie:    cookie,
		createdAt: c.now(),
		state:     sessionValid,
	}

	if err := c.verifySession(ctx); err != nil {
		c.sess = session{state: sessionExpired}
		return err
	}

	return nil
}

// verifySession confirms the fresh cookie against a protected endpoint
// before the session is declared valid. Callers must hold c.mu.
func (c *RouterClient) verifySession(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/status", http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set("Cookie", "bauth="+c.sess.cookie)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: session verification: %w", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: fresh session rejected (HTTP %d)", ErrAuthFailed, resp.StatusCode)
	}

	return nil
}

// cookieValue returns the current session cookie for read-only use by
// outbound requests.
func (c *RouterClient) cookieValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sess.cookie
}

func bauthCookie(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == "bauth" {
			return ck.Value
		}
	}

	return ""
}

func loginFailMessage(env *envelope) string {
	if env.Message != "" {
		return env.Message
	}

	return fmt.Sprintf("login failed (stat=%s code=%d)", env.Stat, env.Code)
}
