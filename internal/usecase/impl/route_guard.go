package impl

import (
	"net/url"
	"strings"

	"internhub/internal/domain/entity"
	"internhub/internal/usecase"
)

// routeGuard implements the RouteGuard interface. It is a pure function of its input.
type routeGuard struct{}

// NewRouteGuard is the constructor for routeGuard.
func NewRouteGuard() usecase.RouteGuard {
	return &routeGuard{}
}

// Decide walks the guard state machine: loading, unauthenticated, then role-known rules.
func (g *routeGuard) Decide(input usecase.GuardInput) usecase.GuardDecision {
	state := input.State

	if state.IsLoading {
		return usecase.GuardDecision{Kind: usecase.GuardLoading}
	}

	if !state.IsAuthenticated() {
		return usecase.GuardDecision{
			Kind:     usecase.GuardRedirectLogin,
			Location: LoginLocation(input.Path),
		}
	}

	if !state.RoleKnown() {
		return usecase.GuardDecision{Kind: usecase.GuardLoading}
	}

	if requestPath(input.Path) == entity.PathRoot {
		return usecase.GuardDecision{
			Kind:     usecase.GuardRedirectRole,
			Location: state.Role.DashboardPath(),
		}
	}

	// A role mismatch is corrected, not denied.
	if input.RequiredRole != "" && input.RequiredRole != state.Role {
		return usecase.GuardDecision{
			Kind:     usecase.GuardRedirectRole,
			Location: state.Role.DashboardPath(),
			Notice: &entity.Notice{
				Level:   entity.NoticeInfo,
				Message: "That page is for " + input.RequiredRole.String() + " accounts.",
			},
		}
	}

	return usecase.GuardDecision{Kind: usecase.GuardRender}
}

// PostLoginDestination returns returnTo when it is a safe local path, else the role dashboard.
func (g *routeGuard) PostLoginDestination(role entity.Role, returnTo string) string {
	if isSafeReturnPath(returnTo) {
		return returnTo
	}

	return role.DashboardPath()
}

// LoginLocation builds the login redirect carrying the originally requested path.
func LoginLocation(original string) string {
	if original == "" || requestPath(original) == entity.PathLogin {
		return entity.PathLogin
	}

	query := url.Values{}
	query.Set(entity.ReturnToParam, original)

	return entity.PathLogin + "?" + query.Encode()
}

func requestPath(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return entity.PathRoot
	}

	return target
}

// isSafeReturnPath accepts same-site absolute paths only, and never the root or login page.
func isSafeReturnPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}

	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return false
	}

	switch requestPath(target) {
	case entity.PathRoot, entity.PathLogin:
		return false
	}

	return true
}
