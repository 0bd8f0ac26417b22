package service

import (
	"context"

	"labportal/internal/dto"
)

// AuthBackend is the external auth collaborator.
type AuthBackend interface {
	CurrentUser(ctx context.Context) (dto.SessionResult, error)
	Login(ctx context.Context, r dto.LoginRequest) (LoginReply, error)
	Register(ctx context.Context, r dto.RegisterRequest) (dto.RegisterResult, error)
}

// LoginReply is either a direct result or a transport response that still
// needs decoding. Decode is the only place the two shapes are reconciled.
type LoginReply interface {
	Decode() (dto.AuthResult, error)
}

// UserFacing errors carry text meant for the page banner. An empty message
// means the portal should show its own fallback.
type UserFacing interface {
	UserMessage() string
}
