package domain

// Field names, shared by validators, the form parser and the templates.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhoneNumber     = "phoneNumber"
)

const (
	MsgLoginFailed         = "Login failed. Please try again."
	MsgRegistrationFailed  = "Registration failed. Please try again."
	MsgRegistrationSuccess = "Registration successful! Please login to complete lab setup."
)
