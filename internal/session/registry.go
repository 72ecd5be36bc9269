// Package session keeps per-visitor view state in memory, keyed by a random
// cookie token. Nothing survives a restart.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long an idle visitor's state is kept.
const DefaultTTL = 24 * time.Hour

type entry struct {
	visitor  *Visitor
	lastSeen time.Time
}

// Registry maps tokens to visitor state.
type Registry struct {
	ttl        time.Duration
	newVisitor func() *Visitor
	now        func() time.Time

	mu       sync.Mutex
	visitors map[string]*entry
}

// NewRegistry returns an empty registry. newVisitor builds the state for each
// new token.
func NewRegistry(ttl time.Duration, newVisitor func() *Visitor) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl:        ttl,
		newVisitor: newVisitor,
		now:        time.Now,
		visitors:   make(map[string]*entry),
	}
}

// Create registers a new visitor and returns its token.
func (r *Registry) Create() (string, *Visitor, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	v := r.newVisitor()

	r.mu.Lock()
	r.visitors[token] = &entry{visitor: v, lastSeen: r.now()}
	r.mu.Unlock()

	return token, v, nil
}

// Blank returns fresh visitor state without registering it. Read-only
// requests from callers without a cookie render from it.
func (r *Registry) Blank() *Visitor {
	return r.newVisitor()
}

// Get returns the visitor for token, or nil if unknown or expired. A hit
// extends the visitor's lifetime.
func (r *Registry) Get(token string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.visitors[token]
	if !ok {
		return nil
	}
	now := r.now()
	if now.Sub(e.lastSeen) > r.ttl {
		delete(r.visitors, token)
		return nil
	}
	e.lastSeen = now
	return e.visitor
}

// Delete forgets a visitor.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	delete(r.visitors, token)
	r.mu.Unlock()
}

// Len returns the number of visitors held, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// CleanupExpired removes all idle visitors and returns how many were dropped.
func (r *Registry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for token, e := range r.visitors {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.visitors, token)
			n++
		}
	}
	return n
}

// Sweep calls CleanupExpired every interval until ctx is done.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.CleanupExpired(); n > 0 {
				slog.Debug("dropped idle visitors", "count", n, "remaining", r.Len())
			}
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
