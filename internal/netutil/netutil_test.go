package netutil

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "ipv4 with port", input: "192.0.2.4:8080", want: "192.0.2.4", ok: true},
		{name: "ipv6 with port", input: "[2001:db8::1]:443", want: "2001:db8::1", ok: true},
		{name: "ipv6 textual port", input: "[::1]:port", want: "::1", ok: true},
		{name: "plain ipv4", input: " 203.0.113.9 ", want: "203.0.113.9", ok: true},
		{name: "plain ipv6", input: "2001:db8::5", want: "2001:db8::5", ok: true},
		{name: "zone stripped", input: "fe80::1%eth0", want: "fe80::1", ok: true},
		{name: "hostname", input: "not-an-ip", want: "not-an-ip", ok: false},
		{name: "empty", input: "", want: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeIP(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTruncateUserAgent(t *testing.T) {
	long := strings.Repeat("é", MaxUserAgentLength+10)
	got := TruncateUserAgent(long)
	assert.Equal(t, MaxUserAgentLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "curl/8.0", TruncateUserAgent("curl/8.0"))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:5555"
	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")

	assert.Equal(t, "10.0.0.2", ClientIP(r, false))
	assert.Equal(t, "198.51.100.7", ClientIP(r, true))

	r.Header.Del("X-Forwarded-For")
	r.Header.Set("X-Real-IP", "198.51.100.8")
	assert.Equal(t, "198.51.100.8", ClientIP(r, true))
}

func TestForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:5555"
	assert.Equal(t, "10.0.0.2", ForwardedFor(r, true))

	r.Header.Set("X-Forwarded-For", "198.51.100.7")
	assert.Equal(t, "10.0.0.2", ForwardedFor(r, false))
	assert.Equal(t, "198.51.100.7, 10.0.0.2", ForwardedFor(r, true))
}
