// Package clientip extracts the originating client address from an HTTP
// request, honoring the common proxy headers before falling back to the
// connection's remote address.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP address for r. Proxy headers are checked
// in order: X-Forwarded-For (first valid entry), then X-Real-IP, then the
// connection's RemoteAddr. Invalid entries are skipped, never trusted.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for entry := range strings.SplitSeq(forwarded, ",") {
			if ip := normalize(entry); ip != "" {
				return ip
			}
		}
	}

	if ip := normalize(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, as some proxies produce
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// normalize parses a candidate address and returns its canonical form, or ""
// when the candidate is not a valid IP.
func normalize(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	ip := net.ParseIP(candidate)
	if ip == nil {
		return ""
	}
	return ip.String()
}
