package dto

// ErrorResponse is the body shape the backend uses for non-2xx answers.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
