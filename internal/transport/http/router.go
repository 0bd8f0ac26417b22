package http

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"labportal/internal/netutil"
	obsmw "labportal/internal/observability/middleware"
)

type RouterConfig struct {
	// SubmitRatePerMin caps login/register posts per client IP; 0 disables.
	SubmitRatePerMin int
	TrustProxy       bool
	RequestTimeout   time.Duration
	// APIProxy serves /api/* when set.
	APIProxy    http.Handler
	CORSOrigins []string
	// Metrics defaults to promhttp.Handler().
	Metrics http.Handler
}

func NewRouter(h *Handler, sessions *scs.SessionManager, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Metrics == nil {
		cfg.Metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)
	r.Use(obsmw.PropagateRequestID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", cfg.Metrics)

	r.Group(func(pr chi.Router) {
		pr.Use(sessions.LoadAndSave)

		pr.Get("/", h.Page)
		pr.Route("/auth", func(ar chi.Router) {
			ar.Group(func(sr chi.Router) {
				if cfg.SubmitRatePerMin > 0 {
					sr.Use(submitLimiter(cfg.SubmitRatePerMin, cfg.TrustProxy))
				}
				sr.Post("/login", h.Login)
				sr.Post("/register", h.Register)
			})
			ar.Post("/mode", h.SwitchMode)
			ar.Post("/toggle/{field}", h.Toggle)
		})
	})

	if cfg.APIProxy != nil {
		r.Route("/api", func(ar chi.Router) {
			ar.Use(cors.Handler(cors.Options{
				AllowedOrigins:   originsOrAll(cfg.CORSOrigins),
				AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
			ar.Handle("/*", cfg.APIProxy)
		})
	}
	return r
}

func submitLimiter(perMin int, trustProxy bool) func(http.Handler) http.Handler {
	return httprate.Limit(perMin, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return netutil.ClientIP(r, trustProxy), nil
		}),
	)
}

func originsOrAll(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}
