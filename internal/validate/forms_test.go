package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labportal/internal/domain"
)

func TestEmailField(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		ok    bool
	}{
		{input: "", msg: MsgEmailRequired, ok: false},
		{input: "notanemail", msg: MsgEmailInvalid, ok: false},
		{input: "a@b.co", ok: true},
		{input: "Lab.Admin+1@Example.ORG", ok: true},
		{input: "a@b.c", msg: MsgEmailInvalid, ok: false},
		{input: "a b@c.io", msg: MsgEmailInvalid, ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			msg, ok := emailField().Check(tc.input)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Equal(t, tc.msg, msg)
			}
		})
	}
}

func TestPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		msg      string
	}{
		{name: "empty", password: "", msg: MsgPasswordRequired},
		{name: "too short", password: "Ab1!", msg: MsgPasswordTooShort},
		{name: "lowercase only", password: "abcdefgh", msg: MsgPasswordWeak},
		{name: "no special", password: "Abcdefg1", msg: MsgPasswordWeak},
		{name: "special outside set", password: "Abcdef1^", msg: MsgPasswordWeak},
		{name: "leading space", password: " Abcdef1!", msg: MsgPasswordWeak},
		{name: "strong", password: "Abcdef1!", msg: ""},
		{name: "strong with hash", password: "#Lab2024x", msg: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Register(domain.RegisterInput{
				Name:            "Ada",
				Email:           "ada@lab.io",
				Password:        tc.password,
				ConfirmPassword: tc.password,
			})
			if tc.msg == "" {
				assert.False(t, errs.Has(domain.FieldPassword), "unexpected error %q", errs[domain.FieldPassword])
				return
			}
			assert.Equal(t, tc.msg, errs[domain.FieldPassword])
		})
	}
}

func TestRegisterReportsEveryField(t *testing.T) {
	errs := Register(domain.RegisterInput{})
	require.Len(t, errs, 4)
	assert.Equal(t, MsgNameRequired, errs[domain.FieldName])
	assert.Equal(t, MsgEmailRequired, errs[domain.FieldEmail])
	assert.Equal(t, MsgPasswordRequired, errs[domain.FieldPassword])
	assert.Equal(t, MsgConfirmRequired, errs[domain.FieldConfirmPassword])
	assert.False(t, errs.Has(domain.FieldPhoneNumber))
}

func TestRegisterNameLength(t *testing.T) {
	errs := Register(domain.RegisterInput{Name: "A"})
	assert.Equal(t, MsgNameTooShort, errs[domain.FieldName])

	errs = Register(domain.RegisterInput{Name: "Øy"})
	assert.False(t, errs.Has(domain.FieldName))
}

func TestConfirmPasswordMismatch(t *testing.T) {
	errs := Register(domain.RegisterInput{
		Name:            "Ada Lovelace",
		Email:           "ada@lab.io",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, MsgPasswordMismatch, errs[domain.FieldConfirmPassword])
}

func TestLoginHasNoStrengthCheck(t *testing.T) {
	errs := Login(domain.LoginInput{Email: "a@b.co", Password: "x"})
	assert.Empty(t, errs)

	errs = Login(domain.LoginInput{})
	assert.Equal(t, MsgEmailRequired, errs[domain.FieldEmail])
	assert.Equal(t, MsgPasswordRequired, errs[domain.FieldPassword])
}
