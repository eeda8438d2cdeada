package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

type lookupError string

func (e lookupError) Error() string { return string(e) }

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded header wins",
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
			name:       "ipv6 forwarded",
			header:     "2001:db8::1",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientIP(req); got != tc.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWithClientInfo(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		lookup CountryLookup
		want   ClientInfo
	}{
		{
			name: "header hint",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "bj")
				r.Header.Set("User-Agent", "test-agent")
			},
			want: ClientInfo{IP: "203.0.113.4", UserAgent: "test-agent", Country: "BJ"},
		},
		{
			name: "unknown hint skipped",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "XX")
			},
			want: ClientInfo{IP: "203.0.113.4"},
		},
		{
			name: "resolver fallback",
			lookup: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return "fr", nil
			},
			want: ClientInfo{IP: "203.0.113.4", Country: "FR"},
		},
		{
			name: "resolver error leaves country empty",
			lookup: func(ip string) (string, error) {
				return "", lookupError("boom")
			},
			want: ClientInfo{IP: "203.0.113.4"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got ClientInfo
			handler := WithClientInfo(tc.lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ClientInfoFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tc.want {
				t.Fatalf("ClientInfoFromContext() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
