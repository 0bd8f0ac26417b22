package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"labportal/internal/domain"
	"labportal/internal/dto"
	"labportal/internal/observability/metrics"
	"labportal/internal/service"
	"labportal/internal/validate"
)

// Stopper is the part of *time.Timer the view needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Stopper

func realAfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

type ViewConfig struct {
	Routes      domain.Routes
	RevertDelay time.Duration
	AfterFunc   AfterFunc
	Now         func() time.Time
}

// View is one visitor's auth page: the mode controller plus both submit
// handlers. The lock is never held across a collaborator call.
type View struct {
	mu    sync.Mutex
	state domain.ViewState

	loginSubmitted    bool
	registerSubmitted bool

	routes      domain.Routes
	revertDelay time.Duration
	afterFunc   AfterFunc
	now         func() time.Time

	pendingReverts int
	timers         []Stopper
	lastSeen       time.Time
}

func NewView(cfg ViewConfig) *View {
	if cfg.Routes == (domain.Routes{}) {
		cfg.Routes = domain.DefaultRoutes()
	}
	if cfg.RevertDelay <= 0 {
		cfg.RevertDelay = domain.RevertDelay
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = realAfterFunc
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &View{
		state:       domain.ViewState{Mode: domain.ModeLogin},
		routes:      cfg.Routes,
		revertDelay: cfg.RevertDelay,
		afterFunc:   cfg.AfterFunc,
		now:         cfg.Now,
		lastSeen:    cfg.Now(),
	}
}

// Snapshot returns a copy of the current state for rendering.
func (v *View) Snapshot() domain.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	s := v.state
	s.LoginErrors = v.state.LoginErrors.Clone()
	s.RegisterErrors = v.state.RegisterErrors.Clone()
	s.RevertScheduled = v.pendingReverts > 0
	return s
}

func (v *View) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// SwitchMode flips between login and register and resets everything transient.
// In-flight submissions are not cancelled.
func (v *View) SwitchMode() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	if v.state.Mode == domain.ModeLogin {
		v.state.Mode = domain.ModeRegister
	} else {
		v.state.Mode = domain.ModeLogin
	}
	v.state.ErrorMessage = ""
	v.state.SuccessMessage = ""
	v.state.PasswordVisible = false
	v.state.ConfirmPasswordVisible = false
	v.state.Login = domain.LoginInput{}
	v.state.Register = domain.RegisterInput{}
	v.state.LoginErrors = nil
	v.state.RegisterErrors = nil
	v.loginSubmitted = false
	v.registerSubmitted = false
}

func (v *View) TogglePasswordVisible() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.state.PasswordVisible = !v.state.PasswordVisible
}

func (v *View) ToggleConfirmPasswordVisible() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.state.ConfirmPasswordVisible = !v.state.ConfirmPasswordVisible
}

// EditLogin stores typed values. After the first submit attempt every edit
// re-validates the form.
func (v *View) EditLogin(in domain.LoginInput) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.state.Login = in
	if v.loginSubmitted {
		v.state.LoginErrors = validate.Login(in)
	}
}

func (v *View) EditRegister(in domain.RegisterInput) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.state.Register = in
	if v.registerSubmitted {
		v.state.RegisterErrors = validate.Register(in)
	}
}

// SubmitLogin validates in, calls the login collaborator and, on success,
// sends the browser to the lab page that matches the account's setup state.
func (v *View) SubmitLogin(ctx context.Context, backend service.AuthBackend, nav service.Navigator, in domain.LoginInput) error {
	v.mu.Lock()
	v.lastSeen = v.now()
	if v.state.LoginPending {
		v.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("login", "pending").Inc()
		return ErrSubmitPending
	}
	v.state.Login = in
	v.loginSubmitted = true
	if errs := validate.Login(in); len(errs) > 0 {
		v.state.LoginErrors = errs
		v.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("login", "invalid").Inc()
		return ErrValidation
	}
	v.state.LoginErrors = nil
	v.state.ErrorMessage = ""
	v.state.LoginPending = true
	v.mu.Unlock()

	result, err := login(ctx, backend, dto.LoginRequest{Email: in.Email, Password: in.Password})

	v.mu.Lock()
	v.state.LoginPending = false
	if err != nil {
		v.state.ErrorMessage = failureMessage(err, domain.MsgLoginFailed)
		v.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("login", "failure").Inc()
		slog.Default().Warn("login failed", "error", err)
		return fmt.Errorf("login: %w", err)
	}
	dest := v.routes.Destination(result.User.HasCompletedSetup, result.User.LabID)
	v.mu.Unlock()

	metrics.SubmissionsTotal.WithLabelValues("login", "success").Inc()
	slog.Default().Info("login succeeded", "destination", dest)
	nav.HardNavigate(dest)
	return nil
}

// login is the single seam where the collaborator's reply is normalised.
func login(ctx context.Context, backend service.AuthBackend, req dto.LoginRequest) (dto.AuthResult, error) {
	reply, err := backend.Login(ctx, req)
	if err != nil {
		return dto.AuthResult{}, err
	}
	if reply == nil {
		return dto.AuthResult{}, domain.ErrMalformedReply
	}
	res, err := reply.Decode()
	if err != nil {
		return dto.AuthResult{}, err
	}
	if !res.Success {
		return res, &rejectedError{reason: res.Reason()}
	}
	if res.User == nil {
		return res, domain.ErrMalformedReply
	}
	return res, nil
}

// SubmitRegister validates in and calls the registration collaborator. On
// success the form is cleared, a banner is shown and the view reverts to
// login mode after the revert delay.
func (v *View) SubmitRegister(ctx context.Context, backend service.AuthBackend, in domain.RegisterInput) error {
	v.mu.Lock()
	v.lastSeen = v.now()
	if v.state.RegisterPending {
		v.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("register", "pending").Inc()
		return ErrSubmitPending
	}
	v.state.Register = in
	v.registerSubmitted = true
	if errs := validate.Register(in); len(errs) > 0 {
		v.state.RegisterErrors = errs
		v.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("register", "invalid").Inc()
		return ErrValidation
	}
	v.state.RegisterErrors = nil
	v.state.ErrorMessage = ""
	v.state.SuccessMessage = ""
	v.state.RegisterPending = true
	v.mu.Unlock()

	res, err := backend.Register(ctx, dto.RegisterRequest{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		PhoneNumber:     validate.NormalizePhone(in.PhoneNumber),
	})
	if err == nil && !res.Success {
		err = &rejectedError{reason: res.Reason()}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.RegisterPending = false
	if err != nil {
		v.state.ErrorMessage = failureMessage(err, domain.MsgRegistrationFailed)
		metrics.SubmissionsTotal.WithLabelValues("register", "failure").Inc()
		slog.Default().Warn("registration failed", "error", err)
		return fmt.Errorf("register: %w", err)
	}

	v.state.SuccessMessage = domain.MsgRegistrationSuccess
	v.state.Register = domain.RegisterInput{}
	v.state.RegisterErrors = nil
	v.registerSubmitted = false
	v.state.PasswordVisible = false
	v.state.ConfirmPasswordVisible = false
	v.scheduleRevertLocked()

	metrics.SubmissionsTotal.WithLabelValues("register", "success").Inc()
	slog.Default().Info("registration succeeded", "user_id", res.UserID)
	return nil
}

// scheduleRevertLocked must be called with v.mu held; the timer callback
// takes the same lock, so it can never run before the append below.
func (v *View) scheduleRevertLocked() {
	v.pendingReverts++
	t := v.afterFunc(v.revertDelay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.state.Mode = domain.ModeLogin
		v.state.SuccessMessage = ""
		if v.pendingReverts > 0 {
			v.pendingReverts--
		}
		if v.pendingReverts == 0 {
			v.timers = nil
		}
	})
	v.timers = append(v.timers, t)
}

// Close stops any scheduled revert. The view is not used afterwards.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, t := range v.timers {
		t.Stop()
	}
	v.timers = nil
	v.pendingReverts = 0
}

type rejectedError struct {
	reason string
}

func (e *rejectedError) Error() string {
	if e.reason == "" {
		return "rejected by auth backend"
	}
	return "rejected by auth backend: " + e.reason
}

func (e *rejectedError) UserMessage() string { return e.reason }

// failureMessage picks the banner text for a collaborator failure: the
// error's own message, or fallback when it has none.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, domain.ErrMalformedReply) {
		return fallback
	}
	var uf service.UserFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
