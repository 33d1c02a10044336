package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/jonathan/portfolio-site/internal/contact"
)

// ClientIdentity derives the caller identity used for rate limiting: the
// first X-Forwarded-For entry, then X-Real-IP, then the connection address.
func ClientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if r.RemoteAddr == "" {
		return contact.UnknownIdentity
	}
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
