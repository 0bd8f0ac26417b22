package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"labportal/internal/domain"
)

type Config struct {
	// HTTP
	Addr            string
	TrustProxy      bool
	ShutdownTimeout time.Duration

	// Auth backend
	AuthBaseURL    string
	AuthAPIPrefix  string
	BackendTimeout time.Duration
	APIPassthrough bool
	CORSOrigins    []string

	// Visitor sessions
	SessionCookieName string
	SessionLifetime   time.Duration
	SecureCookies     bool
	ViewIdleTTL       time.Duration
	JanitorInterval   time.Duration

	// Navigation targets
	LabSetupPath      string
	LabManagementPath string

	SubmitRatePerMin int

	// Logging
	Environment string
	LogLevel    string
}

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("could not load env file", "file", f, "error", err)
		}
	}
}

func Load() Config {
	return Config{
		Addr:            getenv("ADDR", ":8080"),
		TrustProxy:      getbool("TRUST_PROXY", false),
		ShutdownTimeout: getdur("SHUTDOWN_TIMEOUT", 10*time.Second),

		AuthBaseURL:    getenv("AUTH_BASE_URL", "http://localhost:8081"),
		AuthAPIPrefix:  getenv("AUTH_API_PREFIX", "/api/auth"),
		BackendTimeout: getdur("BACKEND_TIMEOUT", 10*time.Second),
		APIPassthrough: getbool("API_PASSTHROUGH", false),
		CORSOrigins:    getlist("CORS_ORIGINS", []string{"http://localhost:3000"}),

		SessionCookieName: getenv("SESSION_COOKIE_NAME", "portal_session"),
		SessionLifetime:   getdur("SESSION_LIFETIME", 24*time.Hour),
		SecureCookies:     getbool("SECURE_COOKIES", true),
		ViewIdleTTL:       getdur("VIEW_IDLE_TTL", 30*time.Minute),
		JanitorInterval:   getdur("VIEW_JANITOR_INTERVAL", time.Minute),

		LabSetupPath:      getenv("LAB_SETUP_PATH", domain.DefaultLabSetupPath),
		LabManagementPath: getenv("LAB_MANAGEMENT_PATH", domain.DefaultLabManagementPath),

		SubmitRatePerMin: getint("SUBMIT_RATE_PER_MIN", 20),

		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

// Routes returns the navigation targets as a domain value.
func (c Config) Routes() domain.Routes {
	return domain.Routes{LabSetup: c.LabSetupPath, LabManagement: c.LabManagementPath}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid bool, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid int, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getlist(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
