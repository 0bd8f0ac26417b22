package domain

import "errors"

var (
	ErrMalformedReply = errors.New("malformed auth reply")
	ErrUnknownField   = errors.New("unknown field")
)
