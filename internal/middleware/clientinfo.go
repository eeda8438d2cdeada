package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type clientInfoContextKey struct{}

// ClientInfo carries the request metadata recorded alongside activity log
// entries.
type ClientInfo struct {
	IP        string
	UserAgent string
	Country   string
}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// WithClientInfo resolves the caller's IP, user agent and country once per
// request and stores them in the context.
func WithClientInfo(lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := ClientInfo{
				IP:        ClientIP(r),
				UserAgent: r.UserAgent(),
				Country:   resolveCountry(r, lookup),
			}
			ctx := context.WithValue(r.Context(), clientInfoContextKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientInfoFromContext returns the client metadata stored by WithClientInfo.
func ClientInfoFromContext(ctx context.Context) ClientInfo {
	if v, ok := ctx.Value(clientInfoContextKey{}).(ClientInfo); ok {
		return v
	}
	return ClientInfo{}
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
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
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func resolveCountry(r *http.Request, lookup CountryLookup) string {
	headerHints := []string{"CF-IPCountry", "X-Country-Code", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" && !strings.EqualFold(val, "XX") {
			return strings.ToUpper(val)
		}
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}
