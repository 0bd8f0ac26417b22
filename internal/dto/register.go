package dto

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PhoneNumber     *int64 `json:"phoneNumber,omitempty"`
}

type RegisterResult struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r RegisterResult) Reason() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}
