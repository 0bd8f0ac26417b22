package proxy

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"labportal/internal/netutil"
	obsmw "labportal/internal/observability/middleware"
)

// hop-by-hop headers plus the ones net/http manages itself.
var skipHeaders = map[string]bool{
	"connection":        true,
	"keep-alive":        true,
	"proxy-connection":  true,
	"transfer-encoding": true,
	"upgrade":           true,
	"te":                true,
	"trailer":           true,
	"content-length":    true,
	"host":              true,
}

// Client relays browser API calls to the auth backend unchanged so pages that
// talk to the backend directly can share the portal's origin.
type Client struct {
	baseURL    string
	hc         *http.Client
	trustProxy bool
}

func New(baseURL string, timeout time.Duration, trustProxy bool) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		trustProxy: trustProxy,
	}
}

// Forward relays the request path and query as-is. Bodies are never logged.
func (c *Client) Forward() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		upURL := c.baseURL + r.URL.Path
		if qs := r.URL.RawQuery; qs != "" {
			upURL += "?" + qs
		}

		req, err := http.NewRequestWithContext(r.Context(), r.Method, upURL, r.Body)
		if err != nil {
			http.Error(w, "bad upstream request", http.StatusBadGateway)
			return
		}
		req.Header = make(http.Header, len(r.Header))
		for k, vs := range r.Header {
			if skipHeaders[strings.ToLower(k)] {
				continue
			}
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if req.Header.Get("Content-Type") == "" && r.ContentLength != 0 {
			req.Header.Set("Content-Type", "application/json")
		}
		rid := obsmw.RequestIDFromContext(r.Context())
		if rid != "" {
			req.Header.Set("X-Request-ID", rid)
		}
		req.Header.Set("X-Forwarded-For", netutil.ForwardedFor(r, c.trustProxy))

		resp, err := c.hc.Do(req)
		if err != nil {
			slog.Default().Warn("api passthrough failed", "path", r.URL.Path, "request_id", rid, "error", err)
			http.Error(w, "auth backend unavailable", http.StatusBadGateway)
			return
		}
		defer func() { _ = resp.Body.Close() }()

		for k, vs := range resp.Header {
			if skipHeaders[strings.ToLower(k)] {
				continue
			}
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)

		slog.Default().Debug("api passthrough",
			"method", r.Method,
			"path", r.URL.Path,
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"request_id", rid,
		)
	}
}
