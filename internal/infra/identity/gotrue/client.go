// Package gotrue implements the identity provider port against a
// GoTrue-compatible auth API (the hosted service behind Supabase Auth).
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	minRefreshDelay   = time.Second
	refreshRetryDelay = 10 * time.Second
	maxErrorBodyBytes = 4 << 10
)

// ClientOptions configures one provider client.
type ClientOptions struct {
	BaseURL       string
	APIKey        string
	RefreshMargin time.Duration
	HTTPClient    *http.Client
	Verifier      *TokenVerifier
	Logger        *slog.Logger
}

// Client is one browser session's connection to the auth API. It holds the
// current session, refreshes it before expiry and reports transitions to subscribers.
type Client struct {
	baseURL       string
	apiKey        string
	refreshMargin time.Duration
	httpClient    *http.Client
	verifier      *TokenVerifier
	logger        *slog.Logger
	now           func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	// dispatchMu orders session changes and their delivery to subscribers.
	dispatchMu sync.Mutex

	mu           sync.Mutex
	session      *entity.Session
	handlers     map[int]service.SessionEventHandler
	nextHandler  int
	refreshTimer *time.Timer
	closed       bool
}

// NewClient creates a client without a session.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	verifier := opts.Verifier
	if verifier == nil {
		verifier = NewTokenVerifier("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiKey:        opts.APIKey,
		refreshMargin: opts.RefreshMargin,
		httpClient:    httpClient,
		verifier:      verifier,
		logger:        logger,
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
		handlers:      make(map[int]service.SessionEventHandler),
	}
}

// Subscribe registers handler and immediately reports the current session as INITIAL_SESSION.
func (c *Client) Subscribe(handler service.SessionEventHandler) func() {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return func() {}
	}
	id := c.nextHandler
	c.nextHandler++
	c.handlers[id] = handler
	session := c.session
	c.mu.Unlock()

	handler(service.SessionEvent{Type: service.EventInitialSession, Session: session})

	var once sync.Once

	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.handlers, id)
			c.mu.Unlock()
		})
	}
}

// CurrentSession returns the held session, refreshing it first when the access token expired.
func (c *Client) CurrentSession(ctx context.Context) (*entity.Session, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == nil || !session.Expired(c.now()) {
		return session, nil
	}

	return c.refresh(ctx, session.RefreshToken)
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", passwordGrant{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	session, err := c.sessionFromResponse(&resp)
	if err != nil {
		return nil, err
	}
	c.setSession(session, service.EventSignedIn)

	return session, nil
}

// SignUp registers email with roleHint in its user metadata. When the API
// requires email confirmation no session is returned and none is established.
func (c *Client) SignUp(ctx context.Context, email, password string, roleHint entity.Role) (*entity.Session, error) {
	req := signUpRequest{Email: email, Password: password}
	if roleHint.IsValid() {
		req.Data = map[string]any{"role": roleHint.String()}
	}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/signup", "", req, &resp); err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		c.logger.Info("Sign-up pending email confirmation", slog.String("email", email))

		return nil, nil
	}

	session, err := c.sessionFromResponse(&resp)
	if err != nil {
		return nil, err
	}
	c.setSession(session, service.EventSignedIn)

	return session, nil
}

// SignOut revokes the session remotely and always clears it locally.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil {
		if err := c.do(ctx, http.MethodPost, "/logout", session.AccessToken, nil, nil); err != nil {
			c.logger.Warn("Remote sign-out failed, clearing local session", slog.Any("error", err))
		}
	}

	c.setSession(nil, service.EventSignedOut)

	return nil
}

// Close stops the refresh timer and drops every subscriber.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	c.handlers = nil

	return nil
}

// setSession stores session, reschedules the refresh and notifies subscribers in order.
func (c *Client) setSession(session *entity.Session, eventType service.SessionEventType) {
	c.replaceSession(func(*entity.Session) bool { return true }, session, eventType)
}

// swapSession is setSession for refresh results: next is applied only while
// the held session still carries refreshToken. A sign-out or a newer sign-in
// that happened while the refresh was in flight wins, and the held session is
// returned instead.
func (c *Client) swapSession(refreshToken string, next *entity.Session, eventType service.SessionEventType) (*entity.Session, bool) {
	return c.replaceSession(func(held *entity.Session) bool {
		return held != nil && held.RefreshToken == refreshToken
	}, next, eventType)
}

func (c *Client) replaceSession(
	accept func(held *entity.Session) bool,
	next *entity.Session,
	eventType service.SessionEventType,
) (*entity.Session, bool) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	if c.closed || !accept(c.session) {
		held := c.session
		c.mu.Unlock()

		return held, false
	}
	c.session = next
	c.scheduleRefreshLocked(next)
	handlers := make([]service.SessionEventHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	event := service.SessionEvent{Type: eventType, Session: next}
	for _, h := range handlers {
		h(event)
	}

	return next, true
}

func (c *Client) scheduleRefreshLocked(session *entity.Session) {
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	if session == nil || session.RefreshToken == "" || session.ExpiresAt.IsZero() {
		return
	}

	c.refreshTimer = time.AfterFunc(c.refreshDelay(session), func() {
		c.backgroundRefresh(session.RefreshToken)
	})
}

func (c *Client) refreshDelay(session *entity.Session) time.Duration {
	remaining := session.ExpiresAt.Sub(c.now())
	delay := remaining - c.refreshMargin
	if delay <= 0 {
		delay = remaining / 2
	}

	return max(delay, minRefreshDelay)
}

func (c *Client) backgroundRefresh(refreshToken string) {
	_, err := c.refresh(c.ctx, refreshToken)
	if err == nil || c.ctx.Err() != nil {
		return
	}

	if !retryable(err) {
		if _, applied := c.swapSession(refreshToken, nil, service.EventSignedOut); applied {
			c.logger.Info("Session refresh rejected, signing out", slog.Any("error", err))
		}

		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.session == nil || c.session.RefreshToken != refreshToken {
		return
	}
	c.logger.Warn("Session refresh failed, retrying", slog.Any("error", err))
	c.refreshTimer = time.AfterFunc(refreshRetryDelay, func() {
		c.backgroundRefresh(refreshToken)
	})
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	if refreshToken == "" {
		return nil, domainerrors.ErrInvalidSessionToken.WrapMessage("no refresh token")
	}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", refreshGrant{
		RefreshToken: refreshToken,
	}, &resp); err != nil {
		return nil, err
	}

	session, err := c.sessionFromResponse(&resp)
	if err != nil {
		return nil, err
	}

	held, applied := c.swapSession(refreshToken, session, service.EventTokenRefreshed)
	if !applied {
		c.logger.Debug("Discarding refresh result, session changed while it was in flight")
	}

	return held, nil
}

func (c *Client) sessionFromResponse(resp *tokenResponse) (*entity.Session, error) {
	identity, expiresAt, err := c.verifier.Parse(resp.AccessToken)
	if err != nil {
		return nil, err
	}

	if identity.Email == "" && resp.User != nil {
		identity.Email = resp.User.Email
	}
	if identity.UserMetadata == nil && resp.User != nil {
		identity.UserMetadata = resp.User.UserMetadata
	}
	if identity.AppMetadata == nil && resp.User != nil {
		identity.AppMetadata = resp.User.AppMetadata
	}

	switch {
	case resp.ExpiresAt > 0:
		expiresAt = time.Unix(resp.ExpiresAt, 0)
	case expiresAt.IsZero() && resp.ExpiresIn > 0:
		expiresAt = c.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return &entity.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         identity,
	}, nil
}

// do sends a JSON request. bearer, when set, authenticates as the user instead of the API key.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	switch {
	case bearer != "":
		req.Header.Set("Authorization", "Bearer "+bearer)
	case c.apiKey != "":
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.ErrIdentityProviderUnavailable.WrapMessage(redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ErrIdentityProviderUnavailable.WrapMessage("malformed response: " + err.Error())
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var apiErr apiError
	_ = json.Unmarshal(raw, &apiErr)
	message := apiErr.message()
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode >= 500:
		return domainerrors.ErrIdentityProviderUnavailable.WrapMessage(message)
	case resp.StatusCode == http.StatusTooManyRequests:
		return domainerrors.ErrTooManyRequests.WrapMessage(message)
	case apiErr.Error == "invalid_grant" || apiErr.ErrorCode == "invalid_credentials":
		return domainerrors.ErrInvalidCredentials.WrapMessage(message)
	default:
		return domainerrors.ErrIdentityProviderRejected.WithDetails(message)
	}
}

// retryable reports whether a refresh failure is transient, as opposed to a revoked session.
func retryable(err error) bool {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return true
	}

	switch appErr.HTTPCode() {
	case http.StatusBadGateway, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// redactURL keeps query strings out of logs.
func redactURL(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}

		return urlErr.Error()
	}

	return err.Error()
}
