package usecase

import "internhub/internal/domain/entity"

// GuardDecisionKind is the outcome of a route guard evaluation.
type GuardDecisionKind string

const (
	// GuardLoading means authentication or synchronization is still in progress.
	GuardLoading GuardDecisionKind = "loading"
	// GuardRedirectLogin sends an unauthenticated visitor to the login page.
	GuardRedirectLogin GuardDecisionKind = "redirect_login"
	// GuardRedirectRole sends an authenticated user to their role's dashboard.
	GuardRedirectRole GuardDecisionKind = "redirect_role"
	// GuardRender lets the protected view render.
	GuardRender GuardDecisionKind = "render"
)

// GuardInput is everything a route guard looks at.
type GuardInput struct {
	State        entity.AuthState
	RequiredRole entity.Role // Empty when any authenticated role may view the page.
	Path         string      // Requested path, including any query string.
}

// GuardDecision tells the caller how to respond.
type GuardDecision struct {
	Kind     GuardDecisionKind
	Location string         // Redirect target for the redirect kinds.
	Notice   *entity.Notice // Optional informational notice for role corrections.
}

// RouteGuard decides whether a protected view renders or the visitor is redirected.
type RouteGuard interface {
	Decide(input GuardInput) GuardDecision

	// PostLoginDestination picks where to go after a successful login.
	PostLoginDestination(role entity.Role, returnTo string) string
}
