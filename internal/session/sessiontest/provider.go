// Package sessiontest provides an in-memory identity provider for tests.
package sessiontest

import (
	"context"
	"sync"
	"time"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"

	"github.com/google/uuid"
)

type credential struct {
	password string
	identity *entity.Identity
}

// Provider is a service.IdentityProvider that keeps users in memory and
// delivers events synchronously, the way the real client does.
type Provider struct {
	dispatchMu sync.Mutex

	mu          sync.Mutex
	session     *entity.Session
	handlers    map[int]service.SessionEventHandler
	nextID      int
	credentials map[string]credential
	closed      bool

	// SignInErr, when set, is returned by SignIn and SignUp instead of contacting the fake backend.
	SignInErr error
}

var _ service.IdentityProvider = (*Provider)(nil)

// NewProvider returns an empty provider without a session.
func NewProvider() *Provider {
	return &Provider{
		handlers:    make(map[int]service.SessionEventHandler),
		credentials: make(map[string]credential),
	}
}

// Register adds a user that can sign in with password.
func (p *Provider) Register(email, password string, identity *entity.Identity) {
	var copied entity.Identity
	if identity != nil {
		copied = *identity
	}
	identity = &copied
	if identity.Email == "" {
		identity.Email = email
	}
	if identity.SubjectID == "" {
		identity.SubjectID = uuid.NewString()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.credentials[email] = credential{password: password, identity: identity}
}

// Emit records the event's session and delivers it to all subscribers.
func (p *Provider) Emit(event service.SessionEvent) {
	p.dispatchMu.Lock()
	defer p.dispatchMu.Unlock()

	p.mu.Lock()
	if event.Type != service.EventInitialSession {
		p.session = event.Session
	}
	handlers := make([]service.SessionEventHandler, 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Subscribe implements service.IdentityProvider.
func (p *Provider) Subscribe(handler service.SessionEventHandler) func() {
	p.dispatchMu.Lock()
	defer p.dispatchMu.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.handlers[id] = handler
	current := p.session
	p.mu.Unlock()

	handler(service.SessionEvent{Type: service.EventInitialSession, Session: current})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

// Subscribers returns the number of registered handlers.
func (p *Provider) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.handlers)
}

// CurrentSession implements service.IdentityProvider.
func (p *Provider) CurrentSession(context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.session, nil
}

// SignIn implements service.IdentityProvider.
func (p *Provider) SignIn(_ context.Context, email, password string) (*entity.Session, error) {
	if p.SignInErr != nil {
		return nil, p.SignInErr
	}

	p.mu.Lock()
	cred, ok := p.credentials[email]
	p.mu.Unlock()
	if !ok || cred.password != password {
		return nil, domainerrors.ErrInvalidCredentials
	}

	session := NewSession(cred.identity)
	p.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: session})

	return session, nil
}

// SignUp implements service.IdentityProvider.
func (p *Provider) SignUp(ctx context.Context, email, password string, roleHint entity.Role) (*entity.Session, error) {
	if p.SignInErr != nil {
		return nil, p.SignInErr
	}

	p.mu.Lock()
	_, exists := p.credentials[email]
	p.mu.Unlock()
	if exists {
		return nil, domainerrors.ErrIdentityProviderRejected.WithDetails("User already registered")
	}

	identity := &entity.Identity{Email: email}
	if roleHint != "" {
		identity.UserMetadata = map[string]any{"role": roleHint.String()}
	}
	p.Register(email, password, identity)

	return p.SignIn(ctx, email, password)
}

// SignOut implements service.IdentityProvider.
func (p *Provider) SignOut(context.Context) error {
	p.Emit(service.SessionEvent{Type: service.EventSignedOut})

	return nil
}

// Close implements service.IdentityProvider.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true

	return nil
}

// Closed reports whether Close was called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}

// NewSession builds a one-hour session for identity.
func NewSession(identity *entity.Identity) *entity.Session {
	return &entity.Session{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         identity,
	}
}

// Factory hands out Providers and remembers them. Providers sharing a Factory
// share registered users but not sessions.
type Factory struct {
	mu        sync.Mutex
	users     map[string]credential
	providers []*Provider
	restored  *entity.Session
}

var _ service.IdentityProviderFactory = (*Factory)(nil)

// NewFactory returns a Factory without users.
func NewFactory() *Factory {
	return &Factory{users: make(map[string]credential)}
}

// Register adds a user to every provider created afterwards.
func (f *Factory) Register(email, password string, identity *entity.Identity) {
	var copied entity.Identity
	if identity != nil {
		copied = *identity
	}
	if copied.SubjectID == "" {
		copied.SubjectID = uuid.NewString()
	}
	identity = &copied

	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = credential{password: password, identity: identity}
}

// RestoreNext makes the next provider start out holding session, as a
// provider restoring a persisted session would.
func (f *Factory) RestoreNext(session *entity.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored = session
}

// NewClient implements service.IdentityProviderFactory.
func (f *Factory) NewClient() service.IdentityProvider {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := NewProvider()
	for email, cred := range f.users {
		p.Register(email, cred.password, cred.identity)
	}
	if f.restored != nil {
		p.session = f.restored
		f.restored = nil
	}
	f.providers = append(f.providers, p)

	return p
}

// Providers returns every provider created so far.
func (f *Factory) Providers() []*Provider {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*Provider(nil), f.providers...)
}
