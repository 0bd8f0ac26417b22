package domain

const (
	DefaultLabSetupPath      = "/lab-setup"
	DefaultLabManagementPath = "/lab-management"
)

// Routes are the destinations an authenticated user is sent to.
type Routes struct {
	LabSetup      string
	LabManagement string
}

func DefaultRoutes() Routes {
	return Routes{LabSetup: DefaultLabSetupPath, LabManagement: DefaultLabManagementPath}
}

// Destination picks lab setup for accounts that have not finished onboarding
// or have no lab yet, lab management otherwise.
func (r Routes) Destination(hasCompletedSetup bool, labID *string) string {
	if !hasCompletedSetup || labID == nil || *labID == "" {
		return r.LabSetup
	}
	return r.LabManagement
}
