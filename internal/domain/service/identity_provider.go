package service

import (
	"context"

	"internhub/internal/domain/entity"
)

// SessionEventType names a transition reported by the identity provider.
type SessionEventType string

const (
	// EventInitialSession fires once, after the provider finished checking for a pre-existing session.
	EventInitialSession SessionEventType = "INITIAL_SESSION"
	// EventSignedIn fires when a session is established.
	EventSignedIn SessionEventType = "SIGNED_IN"
	// EventTokenRefreshed fires when the access token was renewed for the same session.
	EventTokenRefreshed SessionEventType = "TOKEN_REFRESHED"
	// EventSignedOut fires when the session ends by sign-out or expiry.
	EventSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent is delivered to subscribers of an identity provider.
// Session is nil for EventSignedOut and for an EventInitialSession without a session.
type SessionEvent struct {
	Type    SessionEventType
	Session *entity.Session
}

// SessionEventHandler receives provider events. Implementations must return
// quickly and must not call back into the provider synchronously.
type SessionEventHandler func(event SessionEvent)

// IdentityProvider is the external service issuing authenticated sessions.
// One instance represents one client (one browser session) of that service.
type IdentityProvider interface {
	// Subscribe registers handler for session events and returns a function that removes it.
	// EventInitialSession is delivered to every new subscriber.
	Subscribe(handler SessionEventHandler) (unsubscribe func())

	// CurrentSession returns the session currently held by the client, or nil.
	CurrentSession(ctx context.Context) (*entity.Session, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)

	// SignUp registers a new identity carrying roleHint in its user metadata.
	SignUp(ctx context.Context, email, password string, roleHint entity.Role) (*entity.Session, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// Close releases background resources held by the client.
	Close() error
}

// IdentityProviderFactory creates a fresh provider client for a new browser session.
type IdentityProviderFactory interface {
	NewClient() IdentityProvider
}
