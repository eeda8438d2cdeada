package ratelimit

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestStore(start time.Time) (*Store, *time.Time) {
	current := start
	s := NewStore()
	s.now = func() time.Time { return current }
	return s, &current
}

func TestAllowDeniesFourthAttemptInWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	s, clock := newTestStore(now)
	p := Policy{Limit: 3, Window: 300 * time.Second}

	for i := 0; i < 3; i++ {
		*clock = now.Add(time.Duration(i) * time.Second)
		if !s.Allow("contact_form", "203.0.113.1", p) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	*clock = now.Add(10 * time.Second)
	if s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("fourth attempt within the window should be denied")
	}
}

func TestAllowResetsAfterWindowElapses(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	s, clock := newTestStore(now)
	p := Policy{Limit: 3, Window: 300 * time.Second}

	for i := 0; i < 3; i++ {
		if !s.Allow("contact_form", "203.0.113.1", p) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	*clock = now.Add(301 * time.Second)
	if !s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("attempt after the window elapsed should be allowed")
	}
	// The reset counts the accepted attempt as 1, so two more fit.
	if !s.Allow("contact_form", "203.0.113.1", p) || !s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("fresh window should admit the full limit again")
	}
	if s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("fresh window should still enforce the limit")
	}
}

func TestAllowIsScopedPerActionAndClient(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(now)
	p := Policy{Limit: 1, Window: time.Minute}

	if !s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("first attempt should be allowed")
	}
	if s.Allow("contact_form", "203.0.113.1", p) {
		t.Fatal("second attempt for same action/client should be denied")
	}
	if !s.Allow("join_form", "203.0.113.1", p) {
		t.Fatal("different action should have its own window")
	}
	if !s.Allow("contact_form", "203.0.113.2", p) {
		t.Fatal("different client should have its own window")
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "single forwarded ip",
			header:     "203.0.113.1",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "multiple ips use first",
			header:     " 203.0.113.1 , 198.51.100.2 ",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "invalid forwarded falls back",
			header:     "invalid",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "ipv6 remote fallback",
			header:     "",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::2",
		},
		{
			name:       "remote without port",
			header:     "",
			remoteAddr: "203.0.113.1",
			want:       "203.0.113.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientKey(req); got != tc.want {
				t.Fatalf("ClientKey() = %q, want %q", got, tc.want)
			}
		})
	}
}
