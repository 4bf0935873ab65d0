package entity

// Fixed navigation targets used by the route guard.
const (
	PathRoot             = "/"
	PathLogin            = "/login"
	PathStudentDashboard = "/student-dashboard"
	PathCompanyDashboard = "/company-dashboard"

	// ReturnToParam carries the originally requested path through the login page.
	ReturnToParam = "redirect"
)
