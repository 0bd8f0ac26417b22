package dto

// SessionUser is the slice of the backend's user record the portal routes on.
type SessionUser struct {
	ID                string  `json:"id,omitempty"`
	Email             string  `json:"email,omitempty"`
	Name              string  `json:"name,omitempty"`
	HasCompletedSetup bool    `json:"hasCompletedSetup"`
	LabID             *string `json:"labId"`
}

type SessionResult struct {
	Success bool         `json:"success"`
	User    *SessionUser `json:"user,omitempty"`
}
