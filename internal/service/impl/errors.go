package impl

import "errors"

var (
	ErrValidation    = errors.New("form has invalid fields")
	ErrSubmitPending = errors.New("submission already in progress")
)
