package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ashidadhich33-source/MY-erp-sub000/api"
	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

// State is the in-memory authentication status. It agrees with the token
// store at every observable moment: no tokens means StateUnauthenticated,
// tokens plus a loaded profile means StateAuthenticated.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateRefreshing      State = "refreshing"
)

var (
	ErrSessionActive = errors.New("session already established")
	ErrNoSession     = errors.New("no session")
)

// AuthAPI is the slice of the endpoint facade the controller needs. The
// tests substitute a fake; production wires *api.AuthGroup.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (api.User, error)
	Refresh(ctx context.Context, refreshToken string) (api.TokenPair, error)
}

var _ AuthAPI = (*api.AuthGroup)(nil)

// Controller drives the session state machine. It is the only component
// that writes credentials (the auth middleware's clear-on-401 aside), and
// the only source of session events besides that same 401 path.
type Controller struct {
	mu          sync.Mutex
	state       State
	profile     *api.User
	established bool // A session-established has been published and not yet ended

	store  tokenstore.Store
	auth   AuthAPI
	events *Events
	log    zerolog.Logger

	refreshing  bool
	refreshDone chan struct{}
	refreshErr  error
}

// NewController creates a controller in StateUnauthenticated. Call Bootstrap
// at process start to reconcile persisted tokens with server reality.
func NewController(auth AuthAPI, store tokenstore.Store, events *Events, log zerolog.Logger) *Controller {
	return &Controller{
		state:  StateUnauthenticated,
		store:  store,
		auth:   auth,
		events: events,
		log:    log,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Profile returns the cached user profile, nil unless authenticated.
func (c *Controller) Profile() *api.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Login authenticates with the platform, persists the token pair, confirms
// the profile via /auth/me, and publishes session-established. There is no
// path from StateAuthenticated back to StateAuthenticating; log out first.
func (c *Controller) Login(ctx context.Context, email, password string) (*api.User, error) {
	c.mu.Lock()
	if c.state != StateUnauthenticated {
		c.mu.Unlock()
		return nil, ErrSessionActive
	}
	c.state = StateAuthenticating
	c.mu.Unlock()

	resp, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return nil, c.failLogin(err)
	}

	creds := tokenstore.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if !creds.Present() {
		return nil, c.failLogin(transport.NewError(transport.ErrProtocol, 0, "login response carried no access token", nil))
	}
	if err := c.store.Write(creds); err != nil {
		return nil, c.failLogin(err)
	}

	profile, err := c.auth.CurrentUser(ctx)
	if err != nil {
		_ = c.store.Clear()
		return nil, c.failLogin(err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.profile = &profile
	c.established = true
	c.mu.Unlock()

	c.log.Info().Str("role", profile.Role).Msg("session established")
	c.events.emit(Event{Type: EventEstablished, Profile: &profile})
	return &profile, nil
}

func (c *Controller) failLogin(err error) error {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.mu.Unlock()
	c.events.emit(Event{Type: EventFailed, Reason: failureReason(err)})
	return err
}

// Register creates an account. Session state is untouched; the caller logs
// in afterwards.
func (c *Controller) Register(ctx context.Context, req api.RegisterRequest) (api.User, error) {
	return c.auth.Register(ctx, req)
}

// Logout ends the session. The server call is best-effort: whatever it
// returns, the store is cleared, the state drops to unauthenticated, and
// session-ended is published, at most once per established session.
func (c *Controller) Logout(ctx context.Context) error {
	_, hadCreds := c.store.Read()
	if hadCreds {
		if err := c.auth.Logout(ctx); err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}
	_ = c.store.Clear()

	c.mu.Lock()
	wasEstablished := c.established
	c.established = false
	c.state = StateUnauthenticated
	c.profile = nil
	c.mu.Unlock()

	if wasEstablished || hadCreds {
		c.events.emit(Event{Type: EventEnded})
	}
	return nil
}

// Bootstrap reconciles persisted tokens with server reality at process
// start. Persisted tokens that the server still accepts become a live
// session; a 401 quietly drops to unauthenticated (the middleware has
// already cleared the store); any other failure keeps the tokens so the
// user can retry, and surfaces the error. Idempotent.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateAuthenticated {
		c.mu.Unlock()
		return nil
	}
	if _, ok := c.store.Read(); !ok {
		c.state = StateUnauthenticated
		c.mu.Unlock()
		return nil
	}
	c.state = StateRefreshing
	c.mu.Unlock()

	profile, err := c.auth.CurrentUser(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateUnauthenticated
		c.mu.Unlock()
		if errors.Is(err, transport.ErrAuthExpired) {
			// Stale tokens are an expected start-of-day condition, not an
			// error the UI should see.
			return nil
		}
		return err
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.profile = &profile
	c.established = true
	c.mu.Unlock()

	c.events.emit(Event{Type: EventEstablished, Profile: &profile})
	return nil
}

// Refresh trades the refresh token for a new access token. Serialized:
// a Refresh that arrives while one is in flight waits for that result
// instead of issuing a second request. Success overwrites the access token
// (and the refresh token when the server rotates it); failure clears the
// store and drops to unauthenticated.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		done := c.refreshDone
		c.mu.Unlock()
		select {
		case <-done:
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.refreshErr
		case <-ctx.Done():
			return transport.NewError(transport.ErrCancelled, 0, "auth.refresh", ctx.Err())
		}
	}

	creds, ok := c.store.Read()
	if !ok || creds.RefreshToken == "" {
		c.state = StateUnauthenticated
		c.mu.Unlock()
		return ErrNoSession
	}

	c.refreshing = true
	c.refreshDone = make(chan struct{})
	prev := c.state
	if prev == StateAuthenticated {
		c.state = StateRefreshing
	}
	c.mu.Unlock()

	pair, err := c.auth.Refresh(ctx, creds.RefreshToken)
	if err == nil {
		next := creds
		next.AccessToken = pair.AccessToken
		if pair.RefreshToken != "" {
			next.RefreshToken = pair.RefreshToken
		}
		err = c.store.Write(next)
	}

	if err != nil {
		c.invalidateAfterFailedRefresh()
	}

	c.mu.Lock()
	if err == nil {
		c.state = prev
	}
	c.refreshing = false
	c.refreshErr = err
	close(c.refreshDone)
	c.mu.Unlock()
	return err
}

// invalidateAfterFailedRefresh clears whatever is left and publishes
// session-invalidated, unless the 401 middleware already did both.
func (c *Controller) invalidateAfterFailedRefresh() {
	_, present := c.store.Read()
	if present {
		_ = c.store.Clear()
	}

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.established = false
	c.profile = nil
	c.mu.Unlock()

	if present {
		c.events.emit(Event{Type: EventInvalidated})
	}
}

func failureReason(err error) string {
	var te *transport.Error
	if errors.As(err, &te) {
		return te.Kind.Error()
	}
	return err.Error()
}
