package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"labportal/internal/observability/metrics"
)

func TestRequestIDsReachHandlerAndResponse(t *testing.T) {
	var seenReq, seenTrace string
	h := WithRequestAndTrace(PropagateRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenReq = RequestIDFromContext(r.Context())
		seenTrace = TraceIDFromContext(r.Context())
	})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc", seenReq)
	assert.NotEmpty(t, seenTrace)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	assert.Equal(t, seenTrace, w.Header().Get("X-Trace-ID"))
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := WithRequestAndTrace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

func TestWithMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(WithMetrics)
	r.Post("/auth/toggle/{field}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/auth/toggle/{field}", "303"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/auth/toggle/password", nil))
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/auth/toggle/{field}", "303"))

	assert.Equal(t, before+1, after)
}
