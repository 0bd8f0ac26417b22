package validate

import "labportal/internal/domain"

const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email address"
	MsgPasswordRequired = "Password is required"
	MsgNameRequired     = "Name is required"
	MsgNameTooShort     = "Name must be at least 2 characters"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordWeak     = "Password must contain uppercase, lowercase, number, and special character"
	MsgConfirmRequired  = "Please confirm your password"
	MsgPasswordMismatch = "Passwords do not match"
)

func emailField() Field {
	return Field{Name: domain.FieldEmail, Rules: []Rule{
		Required(MsgEmailRequired),
		Pattern(emailPattern, MsgEmailInvalid),
	}}
}

// Login checks every login field and reports all failures at once.
func Login(in domain.LoginInput) domain.FieldErrors {
	return run([]checked{
		{emailField(), in.Email},
		{Field{Name: domain.FieldPassword, Rules: []Rule{Required(MsgPasswordRequired)}}, in.Password},
	})
}

// Register checks every registration field. The confirm-password rule reads
// the password from in, so it always compares against the submitted value.
func Register(in domain.RegisterInput) domain.FieldErrors {
	return run([]checked{
		{Field{Name: domain.FieldName, Rules: []Rule{
			Required(MsgNameRequired),
			MinLength(2, MsgNameTooShort),
		}}, in.Name},
		{emailField(), in.Email},
		{Field{Name: domain.FieldPassword, Rules: []Rule{
			Required(MsgPasswordRequired),
			MinLength(8, MsgPasswordTooShort),
			PasswordStrength(MsgPasswordWeak),
		}}, in.Password},
		{Field{Name: domain.FieldConfirmPassword, Rules: []Rule{
			Required(MsgConfirmRequired),
			Equals(func() string { return in.Password }, MsgPasswordMismatch),
		}}, in.ConfirmPassword},
	})
}

type checked struct {
	field Field
	value string
}

func run(fields []checked) domain.FieldErrors {
	var errs domain.FieldErrors
	for _, c := range fields {
		if msg, ok := c.field.Check(c.value); !ok {
			if errs == nil {
				errs = domain.FieldErrors{}
			}
			errs[c.field.Name] = msg
		}
	}
	return errs
}
