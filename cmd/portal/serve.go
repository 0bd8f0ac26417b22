package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/spf13/cobra"

	"labportal/internal/backend"
	"labportal/internal/config"
	"labportal/internal/observability/logging"
	"labportal/internal/observability/metrics"
	"labportal/internal/proxy"
	"labportal/internal/service/impl"
	"labportal/internal/store"
	httptransport "labportal/internal/transport/http"
)

const serviceName = "portal"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv(envFile)
		cfg := config.Load()

		logger := logging.NewLogger(logging.Config{
			ServiceName: serviceName,
			Environment: cfg.Environment,
			Level:       cfg.LogLevel,
		})
		slog.SetDefault(logger)
		metrics.MustRegister(serviceName)

		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Name = cfg.SessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cfg.SecureCookies
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	routes := cfg.Routes()
	views := store.NewViewStore(cfg.ViewIdleTTL)
	go views.Run(ctx, cfg.JanitorInterval)

	authClient := backend.New(cfg.AuthBaseURL, backend.Options{
		Prefix:     cfg.AuthAPIPrefix,
		Timeout:    cfg.BackendTimeout,
		TrustProxy: cfg.TrustProxy,
		SkipCookie: cfg.SessionCookieName,
	})
	h := httptransport.NewHandler(authClient, views, sessions, impl.NewGate(routes), func() *impl.View {
		return impl.NewView(impl.ViewConfig{Routes: routes})
	})

	rc := httptransport.RouterConfig{
		SubmitRatePerMin: cfg.SubmitRatePerMin,
		TrustProxy:       cfg.TrustProxy,
		CORSOrigins:      cfg.CORSOrigins,
	}
	if cfg.APIPassthrough {
		rc.APIProxy = proxy.New(cfg.AuthBaseURL, cfg.BackendTimeout, cfg.TrustProxy).Forward()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httptransport.NewRouter(h, sessions, rc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("portal listening",
			"addr", cfg.Addr,
			"auth_base_url", cfg.AuthBaseURL,
			"api_passthrough", cfg.APIPassthrough,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server exited", "views", views.Len())
	return nil
}
