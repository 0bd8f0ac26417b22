package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"labportal/internal/domain"
	"labportal/internal/dto"
)

func TestGateCheck(t *testing.T) {
	tests := []struct {
		name    string
		result  dto.SessionResult
		err     error
		wantNav []navigation
	}{
		{
			name:    "setup incomplete",
			result:  dto.SessionResult{Success: true, User: &dto.SessionUser{HasCompletedSetup: false}},
			wantNav: []navigation{{path: domain.DefaultLabSetupPath}},
		},
		{
			name:    "setup complete without lab",
			result:  dto.SessionResult{Success: true, User: &dto.SessionUser{HasCompletedSetup: true, LabID: strptr("")}},
			wantNav: []navigation{{path: domain.DefaultLabSetupPath}},
		},
		{
			name:    "setup complete with lab",
			result:  dto.SessionResult{Success: true, User: &dto.SessionUser{HasCompletedSetup: true, LabID: strptr("L1")}},
			wantNav: []navigation{{path: domain.DefaultLabManagementPath}},
		},
		{
			name:   "no session",
			result: dto.SessionResult{Success: false},
		},
		{
			name:   "success without user",
			result: dto.SessionResult{Success: true},
		},
		{
			name: "backend unavailable",
			err:  errors.New("connection refused"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend := &stubBackend{
				currentUserFunc: func(ctx context.Context) (dto.SessionResult, error) {
					return tc.result, tc.err
				},
			}
			nav := &recordingNavigator{}
			navigated := NewGate(domain.Routes{}).Check(context.Background(), backend, nav)

			assert.Equal(t, len(tc.wantNav) > 0, navigated)
			assert.Equal(t, tc.wantNav, nav.calls)
			assert.Equal(t, 1, backend.currentUserCalls)
		})
	}
}

func TestGateUsesConfiguredRoutes(t *testing.T) {
	backend := &stubBackend{
		currentUserFunc: func(ctx context.Context) (dto.SessionResult, error) {
			return dto.SessionResult{Success: true, User: &dto.SessionUser{HasCompletedSetup: true, LabID: strptr("L9")}}, nil
		},
	}
	nav := &recordingNavigator{}
	g := NewGate(domain.Routes{LabSetup: "/setup", LabManagement: "/labs"})

	assert.True(t, g.Check(context.Background(), backend, nav))
	assert.Equal(t, []navigation{{path: "/labs"}}, nav.calls)
}
