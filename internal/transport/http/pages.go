package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"labportal/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var authPage = template.Must(template.ParseFS(templateFS, "templates/auth.html"))

const refreshSeconds = 2

type authPageData struct {
	State          domain.ViewState
	Refresh        bool
	RefreshSeconds int
}

// renderAuth writes the auth page. The page reloads itself while a revert
// or a submission is outstanding so the visitor sees the outcome.
func renderAuth(w http.ResponseWriter, s domain.ViewState) {
	data := authPageData{
		State:          s,
		Refresh:        s.RevertScheduled || s.LoginPending || s.RegisterPending,
		RefreshSeconds: refreshSeconds,
	}
	var buf bytes.Buffer
	if err := authPage.Execute(&buf, data); err != nil {
		slog.Default().Error("render auth page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
