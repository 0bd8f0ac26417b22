package domain

import "time"

type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// RevertDelay is how long the registration success banner stays up before
// the view flips back to login mode.
const RevertDelay = 2 * time.Second

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
}

// FieldErrors maps a form field name to the message shown under it.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

func (fe FieldErrors) Clone() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// ViewState is everything the auth page renders. It is owned by a single
// visitor's view and copied out for rendering.
type ViewState struct {
	Mode                   Mode
	PasswordVisible        bool
	ConfirmPasswordVisible bool
	ErrorMessage           string
	SuccessMessage         string

	Login          LoginInput
	Register       RegisterInput
	LoginErrors    FieldErrors
	RegisterErrors FieldErrors

	LoginPending    bool
	RegisterPending bool
	RevertScheduled bool
}

func (s ViewState) IsLogin() bool { return s.Mode == ModeLogin }
