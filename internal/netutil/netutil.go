package netutil

import (
	"net/http"
	"net/netip"
	"strings"
	"unicode/utf8"
)

// MaxUserAgentLength bounds the User-Agent relayed to the auth backend.
const MaxUserAgentLength = 512

// NormalizeIP accepts a bare address or host:port pair ("192.0.2.4:1234",
// "[2001:db8::1]:443") and returns the IP without port or zone.
func NormalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if ap, err := netip.ParseAddrPort(raw); err == nil {
		return ap.Addr().WithZone("").String(), true
	}
	for _, host := range hostCandidates(raw) {
		if addr, err := netip.ParseAddr(host); err == nil {
			return addr.WithZone("").String(), true
		}
	}
	return raw, false
}

// hostCandidates lists the substrings of raw that may hold the address.
func hostCandidates(raw string) []string {
	out := []string{raw}
	if strings.HasPrefix(raw, "[") {
		if end := strings.LastIndex(raw, "]"); end > 0 {
			out = append(out, raw[1:end])
		}
	}
	if idx := strings.LastIndex(raw, ":"); idx > 0 {
		out = append(out, raw[:idx])
	}
	return out
}

// TruncateUserAgent cuts ua to MaxUserAgentLength runes.
func TruncateUserAgent(ua string) string {
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	n := 0
	for i := range ua {
		if n == MaxUserAgentLength {
			return ua[:i]
		}
		n++
	}
	return ua
}

// ClientIP returns the visitor's address. Forwarding headers are only
// consulted when the portal sits behind a trusted proxy.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip, ok := NormalizeIP(first); ok {
				return ip
			}
		}
		if ip, ok := NormalizeIP(r.Header.Get("X-Real-IP")); ok {
			return ip
		}
	}
	if ip, ok := NormalizeIP(r.RemoteAddr); ok {
		return ip
	}
	return r.RemoteAddr
}

// ForwardedFor builds the X-Forwarded-For value for an outbound call made on
// behalf of r: any trusted incoming chain followed by the peer address.
func ForwardedFor(r *http.Request, trustProxy bool) string {
	peer, ok := NormalizeIP(r.RemoteAddr)
	if !ok {
		peer = ""
	}
	prior := ""
	if trustProxy {
		prior = strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	}
	switch {
	case prior == "":
		return peer
	case peer == "":
		return prior
	default:
		return prior + ", " + peer
	}
}
