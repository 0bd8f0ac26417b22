package dto

// Envelope wraps collaborator request payloads as {"data": ...}.
type Envelope[T any] struct {
	Data T `json:"data"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the normalised login reply.
type AuthResult struct {
	Success bool         `json:"success"`
	User    *SessionUser `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Decode lets a direct result stand in wherever a reply still needs decoding.
func (r AuthResult) Decode() (AuthResult, error) { return r, nil }

// Reason is the text the backend gave for an unsuccessful result, if any.
func (r AuthResult) Reason() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}
