package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"labportal/internal/backend"
	"labportal/internal/domain"
	obsmw "labportal/internal/observability/middleware"
	"labportal/internal/service"
	"labportal/internal/service/impl"
	"labportal/internal/store"
)

const visitorKey = "visitor_id"

// BackendBinder produces an AuthBackend acting for one browser request.
type BackendBinder interface {
	ForRequest(w http.ResponseWriter, r *http.Request) service.AuthBackend
}

type Handler struct {
	backend  BackendBinder
	views    *store.ViewStore
	sessions *scs.SessionManager
	gate     *impl.Gate
	newView  func() *impl.View
}

func NewHandler(b BackendBinder, views *store.ViewStore, sessions *scs.SessionManager, gate *impl.Gate, newView func() *impl.View) *Handler {
	return &Handler{backend: b, views: views, sessions: sessions, gate: gate, newView: newView}
}

// visitor returns the caller's view, issuing a visitor id on first contact.
func (h *Handler) visitor(r *http.Request) (string, *impl.View) {
	id := h.sessions.GetString(r.Context(), visitorKey)
	if id == "" {
		id = uuid.NewString()
		h.sessions.Put(r.Context(), visitorKey, id)
	}
	return id, h.views.GetOrCreate(id, h.newView)
}

// Page runs the redirect gate and, when the visitor has no session, renders
// the auth page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	nav := &navigator{}
	if h.gate.Check(r.Context(), h.backend.ForRequest(w, r), nav) {
		nav.redirect(w, r)
		return
	}
	_, v := h.visitor(r)
	renderAuth(w, v.Snapshot())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, v := h.visitor(r)
	nav := &navigator{}
	err := v.SubmitLogin(r.Context(), h.backend.ForRequest(w, r), nav, loginInput(r))
	h.logSubmit(r, "login", err)
	if nav.redirect(w, r) {
		// a full page load leaves the auth page behind
		h.views.Delete(id)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, v := h.visitor(r)
	err := v.SubmitRegister(r.Context(), h.backend.ForRequest(w, r), registerInput(r))
	h.logSubmit(r, "register", err)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	_, v := h.visitor(r)
	v.SwitchMode()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Toggle keeps whatever the visitor typed into the active form, then flips
// the requested mask.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, v := h.visitor(r)
	flip, err := toggleFor(v, chi.URLParam(r, "field"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if v.Snapshot().IsLogin() {
		v.EditLogin(loginInput(r))
	} else {
		v.EditRegister(registerInput(r))
	}
	flip()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func toggleFor(v *impl.View, field string) (func(), error) {
	switch field {
	case "password":
		return v.TogglePasswordVisible, nil
	case "confirm":
		return v.ToggleConfirmPasswordVisible, nil
	}
	return nil, domain.ErrUnknownField
}

func (h *Handler) logSubmit(r *http.Request, form string, err error) {
	rid := obsmw.RequestIDFromContext(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, impl.ErrValidation), errors.Is(err, impl.ErrSubmitPending):
		slog.Default().Debug("submission not sent", "form", form, "request_id", rid, "reason", err)
	case backend.IsUnavailable(err):
		slog.Default().Error("auth backend unavailable", "form", form, "request_id", rid, "error", err)
	default:
		slog.Default().Info("submission rejected", "form", form, "request_id", rid, "error", err)
	}
}

func loginInput(r *http.Request) domain.LoginInput {
	return domain.LoginInput{
		Email:    r.PostForm.Get(domain.FieldEmail),
		Password: r.PostForm.Get(domain.FieldPassword),
	}
}

func registerInput(r *http.Request) domain.RegisterInput {
	return domain.RegisterInput{
		Name:            r.PostForm.Get(domain.FieldName),
		Email:           r.PostForm.Get(domain.FieldEmail),
		Password:        r.PostForm.Get(domain.FieldPassword),
		ConfirmPassword: r.PostForm.Get(domain.FieldConfirmPassword),
		PhoneNumber:     r.PostForm.Get(domain.FieldPhoneNumber),
	}
}
