package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"labportal/internal/domain"
	"labportal/internal/dto"
	"labportal/internal/netutil"
	obsmw "labportal/internal/observability/middleware"
	"labportal/internal/observability/metrics"
	"labportal/internal/service"
)

const (
	DefaultPrefix = "/api/auth"
	maxBodyBytes  = 1 << 20
)

type Options struct {
	// Prefix is prepended to /me, /login and /register.
	Prefix  string
	Timeout time.Duration
	// TrustProxy forwards the incoming X-Forwarded-For chain.
	TrustProxy bool
	// SkipCookie names the portal's own session cookie, which is not relayed.
	SkipCookie string
}

// Client talks to the auth backend. It is shared; ForRequest binds it to one
// browser request so cookies travel both ways.
type Client struct {
	baseURL string
	prefix  string
	opts    Options
	http    *http.Client
}

func New(baseURL string, opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost:8081"
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(opts.Prefix), "/")
	if prefix == "/" {
		prefix = DefaultPrefix
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		prefix:  prefix,
		opts:    opts,
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// ForRequest returns an AuthBackend acting on behalf of r. Set-Cookie headers
// from the backend are copied onto w.
func (c *Client) ForRequest(w http.ResponseWriter, r *http.Request) service.AuthBackend {
	return &boundClient{c: c, w: w, r: r}
}

type boundClient struct {
	c *Client
	w http.ResponseWriter
	r *http.Request
}

func (b *boundClient) CurrentUser(ctx context.Context) (dto.SessionResult, error) {
	status, body, err := b.do(ctx, http.MethodGet, "/me", "me", nil)
	if err != nil {
		return dto.SessionResult{}, err
	}
	// no session is an answer, not a failure
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return dto.SessionResult{Success: false}, nil
	}
	if status/100 != 2 {
		return dto.SessionResult{}, upstreamError(status, body)
	}
	var res dto.SessionResult
	if err := json.Unmarshal(body, &res); err != nil {
		return dto.SessionResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
	}
	return res, nil
}

func (b *boundClient) Login(ctx context.Context, req dto.LoginRequest) (service.LoginReply, error) {
	status, body, err := b.do(ctx, http.MethodPost, "/login", "login", dto.Envelope[dto.LoginRequest]{Data: req})
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, upstreamError(status, body)
	}
	return &ResponseReply{Status: status, Body: body}, nil
}

func (b *boundClient) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResult, error) {
	status, body, err := b.do(ctx, http.MethodPost, "/register", "register", dto.Envelope[dto.RegisterRequest]{Data: req})
	if err != nil {
		return dto.RegisterResult{}, err
	}
	if status/100 != 2 {
		return dto.RegisterResult{}, upstreamError(status, body)
	}
	var res dto.RegisterResult
	if err := json.Unmarshal(body, &res); err != nil {
		return dto.RegisterResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
	}
	return res, nil
}

// do sends one request and returns the status and buffered body. Only
// transport failures come back as errors.
func (b *boundClient) do(ctx context.Context, method, path, endpoint string, payload any) (int, []byte, error) {
	start := time.Now()
	status, body, err := b.roundTrip(ctx, method, path, payload)

	label := strconv.Itoa(status)
	if err != nil {
		label = "error"
	}
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, label).Inc()
	metrics.BackendRequestDurationSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	rid := obsmw.RequestIDFromContext(b.r.Context())
	if err != nil {
		slog.Default().Warn("auth backend unreachable",
			"endpoint", endpoint, "request_id", rid, "error", err)
		return 0, nil, &Error{Err: err}
	}
	slog.Default().Debug("auth backend call",
		"endpoint", endpoint, "status", status, "request_id", rid, "duration", time.Since(start))
	return status, body, nil
}

func (b *boundClient) roundTrip(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.c.baseURL+b.c.prefix+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	b.copyRequestHeaders(req)

	resp, err := b.c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	for _, sc := range resp.Header.Values("Set-Cookie") {
		b.w.Header().Add("Set-Cookie", sc)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (b *boundClient) copyRequestHeaders(req *http.Request) {
	for _, ck := range b.r.Cookies() {
		if ck.Name == b.c.opts.SkipCookie {
			continue
		}
		req.AddCookie(ck)
	}
	if xff := netutil.ForwardedFor(b.r, b.c.opts.TrustProxy); xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	if ua := netutil.TruncateUserAgent(b.r.UserAgent()); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	rid := obsmw.RequestIDFromContext(b.r.Context())
	if rid == "" {
		rid = b.r.Header.Get("X-Request-ID")
	}
	if rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
}

// upstreamError turns a non-2xx answer into *Error, lifting the backend's
// message or error field when the body carries one.
func upstreamError(status int, body []byte) error {
	var er dto.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return &Error{Status: status}
	}
	msg := er.Message
	if msg == "" {
		msg = er.Error
	}
	return &Error{Status: status, Message: msg}
}

// IsUnavailable reports whether err is a transport failure rather than an
// answer from the backend.
func IsUnavailable(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Err != nil
}
