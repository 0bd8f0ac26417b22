package impl

import (
	"context"
	"log/slog"

	"labportal/internal/domain"
	"labportal/internal/observability/metrics"
	"labportal/internal/service"
)

// Gate runs before the auth page renders and sends visitors who already have
// a session straight to their lab page.
type Gate struct {
	Routes domain.Routes
}

func NewGate(routes domain.Routes) *Gate {
	if routes == (domain.Routes{}) {
		routes = domain.DefaultRoutes()
	}
	return &Gate{Routes: routes}
}

// Check asks the collaborator once. A failed check is treated exactly like
// "no session": the page renders. It reports whether it navigated away.
func (g *Gate) Check(ctx context.Context, backend service.AuthBackend, nav service.Navigator) bool {
	res, err := backend.CurrentUser(ctx)
	if err != nil {
		metrics.GateDecisionsTotal.WithLabelValues("error").Inc()
		slog.Default().Debug("session check failed", "error", err)
		return false
	}
	if !res.Success || res.User == nil {
		metrics.GateDecisionsTotal.WithLabelValues("anonymous").Inc()
		return false
	}
	dest := g.Routes.Destination(res.User.HasCompletedSetup, res.User.LabID)
	if dest == g.Routes.LabSetup {
		metrics.GateDecisionsTotal.WithLabelValues("lab_setup").Inc()
	} else {
		metrics.GateDecisionsTotal.WithLabelValues("lab_management").Inc()
	}
	nav.RouteNavigate(dest)
	return true
}
