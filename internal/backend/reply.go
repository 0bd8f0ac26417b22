package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"labportal/internal/domain"
	"labportal/internal/dto"
)

// ResponseReply is a buffered 2xx login response that has not been parsed yet.
type ResponseReply struct {
	Status int
	Body   []byte
}

// Decode parses the body into the login result shape.
func (r *ResponseReply) Decode() (dto.AuthResult, error) {
	var res dto.AuthResult
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return res, fmt.Errorf("%w: empty body", domain.ErrMalformedReply)
	}
	if err := json.Unmarshal(r.Body, &res); err != nil {
		return dto.AuthResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
	}
	return res, nil
}
