package view

// DashboardView identifies one of the dashboard's deep-linkable sub-views.
// The displayed view is driven exclusively by this value: every in-page
// transition replaces it through one code path, so the recorded view and
// the rendered view cannot diverge.
type DashboardView string

const (
	ViewOverview       DashboardView = "dashboard"
	ViewChangePassword DashboardView = "changepassword"
	ViewProfile        DashboardView = "viewprofile"
	ViewEditProfile    DashboardView = "editprofile"
)

// ParseDashboardView decodes a view argument. Unknown or empty values fall
// back to the overview.
func ParseDashboardView(s string) DashboardView {
	switch DashboardView(s) {
	case ViewChangePassword, ViewProfile, ViewEditProfile:
		return DashboardView(s)
	default:
		return ViewOverview
	}
}
