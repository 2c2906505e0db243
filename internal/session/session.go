// Package session holds the backend credential for one authenticated user.
// The token lives in an explicitly scoped Context injected into the resource
// client at construction time; there is no ambient process-wide header state.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context carries the bearer token attached to every authenticated backend
// request. Set on successful login, cleared on logout or on any 401 from the
// backend. Safe for concurrent use.
type Context struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	onExpired []func()
}

// NewContext returns an unauthenticated session context.
func NewContext() *Context {
	return &Context{}
}

// Set stores the access token issued by the backend. Expiry is read from the
// token's registered claims without signature verification: the backend is
// the sole authority on token validity, this layer only needs a hint for
// proactive logout.
func (c *Context) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expiresAt = time.Time{}
	if exp, ok := parseExpiry(token); ok {
		c.expiresAt = exp
	}
}

// Clear forgets the stored token. It does not notify expiry listeners; use
// Invalidate for forced logout.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiresAt = time.Time{}
}

// Invalidate clears the token and notifies registered listeners. The
// resource client calls this on any 401 response so the owning view layer
// can redirect to login regardless of which operation triggered it.
func (c *Context) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	listeners := make([]func(), len(c.onExpired))
	copy(listeners, c.onExpired)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnExpired registers a callback fired when the session is invalidated.
func (c *Context) OnExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = append(c.onExpired, fn)
}

// Token returns the stored token and whether one is present.
func (c *Context) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

// Authenticated reports whether a token is present and not known to be
// expired.
func (c *Context) Authenticated(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return false
	}
	if !c.expiresAt.IsZero() && !now.Before(c.expiresAt) {
		return false
	}
	return true
}

// ExpiresAt returns the token expiry, if the token carried one.
func (c *Context) ExpiresAt() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt, !c.expiresAt.IsZero()
}

// parseExpiry extracts the exp claim without verifying the signature.
func parseExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
