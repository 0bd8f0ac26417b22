package backend

import (
	"fmt"
	"net/http"
)

// Error is a failed call to the auth backend. Message is the text the backend
// put in its body, if any; transport failures leave it empty.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("auth backend: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("auth backend %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("auth backend %d %s", e.Status, http.StatusText(e.Status))
	}
}

// UserMessage is the banner text; empty lets the page fall back to its own.
func (e *Error) UserMessage() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }
