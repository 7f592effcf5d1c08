package session

import (
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenCache is the in-memory bearer token shared with the gateway.
// The store writes it whenever the session changes; the gateway reads
// it when attaching the Authorization header.
type TokenCache struct {
	mu    sync.RWMutex
	token string
}

// NewTokenCache creates an empty cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Token returns the current bearer token, empty when logged out.
func (c *TokenCache) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *TokenCache) put(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// tokenExpired reports whether the stored JWT carries an exp claim in
// the past. The signature is not verified here; that is the server's
// job on every request. Tokens without a readable exp are kept.
func tokenExpired(raw string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
