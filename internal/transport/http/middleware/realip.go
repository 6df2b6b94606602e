package middleware

import (
	"net"
	"net/http"
	"strings"
)

// realIP extracts the client IP from X-Forwarded-For (first hop), then
// X-Real-Ip, then RemoteAddr. Returns "unknown" when none can be parsed,
// so rate-limit keys always have an IP component.
func realIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// ClientIP exposes realIP to handler packages.
func ClientIP(r *http.Request) string { return realIP(r) }
