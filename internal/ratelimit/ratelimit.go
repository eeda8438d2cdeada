package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Policy is a per-action limit: at most Limit accepted calls per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

type window struct {
	count int
	start time.Time
}

// Store is a keyed sliding-window counter shared by all form handlers. It is
// injected into the handler App rather than living in ambient session state so
// it can be swapped for a distributed cache later. Stale keys are not evicted;
// the cost is bounded by the set of (action, client) pairs seen.
type Store struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewStore creates an empty in-memory limiter.
func NewStore() *Store {
	return &Store{windows: make(map[string]*window), now: time.Now}
}

// Allow records an attempt for the action/client pair and reports whether it
// is within the policy. The first call in a fresh window counts as 1.
func (s *Store) Allow(action, client string, p Policy) bool {
	key := action + "|" + client

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) > p.Window {
		s.windows[key] = &window{count: 1, start: now}
		return true
	}
	if w.count >= p.Limit {
		return false
	}
	w.count++
	return true
}

// ClientKey derives the rate-limit key for a request from the first valid
// X-Forwarded-For entry, falling back to the remote address.
func ClientKey(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
