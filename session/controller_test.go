package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ashidadhich33-source/MY-erp-sub000/api"
	"github.com/ashidadhich33-source/MY-erp-sub000/session"
	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore/storefakes"
	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

const (
	testEmail        = "asha@example.com"
	testPassword     = "password123"
	testAccessToken  = "access-1"
	testRefreshToken = "refresh-1"
)

// fakeAuthAPI substitutes the auth endpoint group. Unset functions fail the
// test if called.
type fakeAuthAPI struct {
	t *testing.T

	loginFn       func(ctx context.Context, email, password string) (api.LoginResponse, error)
	registerFn    func(ctx context.Context, req api.RegisterRequest) (api.User, error)
	logoutFn      func(ctx context.Context) error
	currentUserFn func(ctx context.Context) (api.User, error)
	refreshFn     func(ctx context.Context, refreshToken string) (api.TokenPair, error)

	currentUserCalls int32
	refreshCalls     int32
}

var _ session.AuthAPI = (*fakeAuthAPI)(nil)

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (api.LoginResponse, error) {
	if f.loginFn == nil {
		f.t.Fatal("unexpected Login call")
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthAPI) Register(ctx context.Context, req api.RegisterRequest) (api.User, error) {
	if f.registerFn == nil {
		f.t.Fatal("unexpected Register call")
	}
	return f.registerFn(ctx, req)
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	if f.logoutFn == nil {
		f.t.Fatal("unexpected Logout call")
	}
	return f.logoutFn(ctx)
}

func (f *fakeAuthAPI) CurrentUser(ctx context.Context) (api.User, error) {
	atomic.AddInt32(&f.currentUserCalls, 1)
	if f.currentUserFn == nil {
		f.t.Fatal("unexpected CurrentUser call")
	}
	return f.currentUserFn(ctx)
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (api.TokenPair, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshFn == nil {
		f.t.Fatal("unexpected Refresh call")
	}
	return f.refreshFn(ctx, refreshToken)
}

type testFixture struct {
	auth       *fakeAuthAPI
	store      *storefakes.FakeStore
	events     *session.Events
	controller *session.Controller

	mu       sync.Mutex
	received []session.Event
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		auth:   &fakeAuthAPI{t: t},
		store:  storefakes.NewFakeStore(),
		events: session.NewEvents(),
	}
	f.events.Subscribe(func(ev session.Event) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.received = append(f.received, ev)
	})
	f.controller = session.NewController(f.auth, f.store, f.events, zerolog.Nop())
	return f
}

func (f *testFixture) eventTypes() []session.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]session.EventType, 0, len(f.received))
	for _, ev := range f.received {
		types = append(types, ev.Type)
	}
	return types
}

func (f *testFixture) authOK() {
	f.auth.loginFn = func(ctx context.Context, email, password string) (api.LoginResponse, error) {
		return api.LoginResponse{TokenPair: api.TokenPair{
			AccessToken:  testAccessToken,
			RefreshToken: testRefreshToken,
		}}, nil
	}
	f.auth.currentUserFn = func(ctx context.Context) (api.User, error) {
		return testProfile(), nil
	}
}

func testProfile() api.User {
	return api.User{ID: 7, Name: "Asha", Email: testEmail, Role: "manager", IsActive: true}
}

func seededCredentials() tokenstore.Credentials {
	return tokenstore.Credentials{AccessToken: testAccessToken, RefreshToken: testRefreshToken}
}

func TestLoginEstablishesSession(t *testing.T) {
	f := setupTestFixture(t)
	f.authOK()

	profile, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, testEmail, profile.Email)

	require.Equal(t, session.StateAuthenticated, f.controller.State())
	require.Equal(t, testEmail, f.controller.Profile().Email)

	creds, ok := f.store.Read()
	require.True(t, ok)
	require.Equal(t, seededCredentials(), creds)

	require.Equal(t, []session.EventType{session.EventEstablished}, f.eventTypes())
	require.Equal(t, testEmail, f.received[0].Profile.Email)
}

func TestLoginRejected(t *testing.T) {
	f := setupTestFixture(t)
	f.auth.loginFn = func(ctx context.Context, email, password string) (api.LoginResponse, error) {
		return api.LoginResponse{}, transport.NewError(transport.ErrAuthExpired, 401, "Incorrect email or password", nil)
	}

	_, err := f.controller.Login(context.Background(), testEmail, "wrong")
	require.ErrorIs(t, err, transport.ErrAuthExpired)

	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Zero(t, f.store.Writes)
	require.Equal(t, []session.EventType{session.EventFailed}, f.eventTypes())
	require.Equal(t, "authentication expired", f.received[0].Reason)
}

func TestLoginWhileSessionActive(t *testing.T) {
	f := setupTestFixture(t)
	f.authOK()

	_, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	_, err = f.controller.Login(context.Background(), testEmail, testPassword)
	require.ErrorIs(t, err, session.ErrSessionActive)
	require.Equal(t, []session.EventType{session.EventEstablished}, f.eventTypes())
}

func TestLoginProfileFetchFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.authOK()
	f.auth.currentUserFn = func(ctx context.Context) (api.User, error) {
		return api.User{}, transport.NewError(transport.ErrServer, 500, "auth.current_user", nil)
	}

	_, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.ErrorIs(t, err, transport.ErrServer)

	// The half-written credentials must not survive a failed login.
	_, ok := f.store.Read()
	require.False(t, ok)
	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Equal(t, []session.EventType{session.EventFailed}, f.eventTypes())
}

func TestLoginResponseWithoutToken(t *testing.T) {
	f := setupTestFixture(t)
	f.auth.loginFn = func(ctx context.Context, email, password string) (api.LoginResponse, error) {
		return api.LoginResponse{}, nil
	}

	_, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.ErrorIs(t, err, transport.ErrProtocol)
	require.Equal(t, []session.EventType{session.EventFailed}, f.eventTypes())
}

func TestLogoutClearsDespiteServerError(t *testing.T) {
	f := setupTestFixture(t)
	f.authOK()
	_, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	f.auth.logoutFn = func(ctx context.Context) error {
		return transport.NewError(transport.ErrServer, 500, "auth.logout", nil)
	}

	require.NoError(t, f.controller.Logout(context.Background()))

	_, ok := f.store.Read()
	require.False(t, ok)
	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Nil(t, f.controller.Profile())
	require.Equal(t, []session.EventType{session.EventEstablished, session.EventEnded}, f.eventTypes())
}

func TestLogoutIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	f.authOK()
	f.auth.logoutFn = func(ctx context.Context) error { return nil }

	_, err := f.controller.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.controller.Logout(context.Background()))
	require.NoError(t, f.controller.Logout(context.Background()))

	require.Equal(t, []session.EventType{session.EventEstablished, session.EventEnded}, f.eventTypes())
}

func TestBootstrapWithoutCredentials(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.controller.Bootstrap(context.Background()))
	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Empty(t, f.eventTypes())
}

func TestBootstrapWithValidCredentials(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.currentUserFn = func(ctx context.Context) (api.User, error) {
		return testProfile(), nil
	}

	require.NoError(t, f.controller.Bootstrap(context.Background()))
	require.Equal(t, session.StateAuthenticated, f.controller.State())
	require.Equal(t, []session.EventType{session.EventEstablished}, f.eventTypes())

	// A second bootstrap is a no-op.
	require.NoError(t, f.controller.Bootstrap(context.Background()))
	require.Equal(t, int32(1), atomic.LoadInt32(&f.auth.currentUserCalls))
	require.Equal(t, []session.EventType{session.EventEstablished}, f.eventTypes())
}

func TestBootstrapWithStaleCredentials(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.currentUserFn = func(ctx context.Context) (api.User, error) {
		// The 401 middleware has already cleared the store and published
		// session-invalidated by the time the controller sees this error.
		_ = f.store.Clear()
		return api.User{}, transport.NewError(transport.ErrAuthExpired, 401, "auth.current_user", nil)
	}

	require.NoError(t, f.controller.Bootstrap(context.Background()))
	require.Equal(t, session.StateUnauthenticated, f.controller.State())
}

func TestBootstrapServerUnreachable(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.currentUserFn = func(ctx context.Context) (api.User, error) {
		return api.User{}, transport.NewError(transport.ErrNetwork, 0, "auth.current_user", nil)
	}

	err := f.controller.Bootstrap(context.Background())
	require.ErrorIs(t, err, transport.ErrNetwork)
	require.Equal(t, session.StateUnauthenticated, f.controller.State())

	// Tokens are retained so a later bootstrap can try again.
	_, ok := f.store.Read()
	require.True(t, ok)
	require.Empty(t, f.eventTypes())
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.refreshFn = func(ctx context.Context, refreshToken string) (api.TokenPair, error) {
		require.Equal(t, testRefreshToken, refreshToken)
		return api.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
	}

	require.NoError(t, f.controller.Refresh(context.Background()))

	creds, ok := f.store.Read()
	require.True(t, ok)
	require.Equal(t, "access-2", creds.AccessToken)
	require.Equal(t, "refresh-2", creds.RefreshToken)
	require.Empty(t, f.eventTypes())
}

func TestRefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.refreshFn = func(ctx context.Context, refreshToken string) (api.TokenPair, error) {
		return api.TokenPair{AccessToken: "access-2"}, nil
	}

	require.NoError(t, f.controller.Refresh(context.Background()))

	creds, _ := f.store.Read()
	require.Equal(t, "access-2", creds.AccessToken)
	require.Equal(t, testRefreshToken, creds.RefreshToken)
}

func TestRefreshFailureInvalidatesSession(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())
	f.auth.refreshFn = func(ctx context.Context, refreshToken string) (api.TokenPair, error) {
		return api.TokenPair{}, transport.NewError(transport.ErrAuthExpired, 401, "auth.refresh", nil)
	}

	err := f.controller.Refresh(context.Background())
	require.ErrorIs(t, err, transport.ErrAuthExpired)

	_, ok := f.store.Read()
	require.False(t, ok)
	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Equal(t, []session.EventType{session.EventInvalidated}, f.eventTypes())
}

func TestRefreshWithoutSession(t *testing.T) {
	f := setupTestFixture(t)
	require.ErrorIs(t, f.controller.Refresh(context.Background()), session.ErrNoSession)
}

func TestRefreshSingleFlight(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())

	release := make(chan struct{})
	f.auth.refreshFn = func(ctx context.Context, refreshToken string) (api.TokenPair, error) {
		<-release
		return api.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.controller.Refresh(context.Background())
		}(i)
	}

	// Give the first caller time to claim the flight before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&f.auth.refreshCalls))
	for _, err := range errs {
		require.NoError(t, err)
	}

	creds, _ := f.store.Read()
	require.Equal(t, "access-2", creds.AccessToken)
}

func TestRefreshWaiterHonoursContext(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Seed(seededCredentials())

	started := make(chan struct{})
	release := make(chan struct{})
	f.auth.refreshFn = func(ctx context.Context, refreshToken string) (api.TokenPair, error) {
		close(started)
		<-release
		return api.TokenPair{AccessToken: "access-2"}, nil
	}

	go func() { _ = f.controller.Refresh(context.Background()) }()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.controller.Refresh(ctx)
	require.ErrorIs(t, err, transport.ErrCancelled)
	close(release)
}

func TestRegisterDoesNotTouchSession(t *testing.T) {
	f := setupTestFixture(t)
	f.auth.registerFn = func(ctx context.Context, req api.RegisterRequest) (api.User, error) {
		return api.User{ID: 8, Email: req.Email}, nil
	}

	user, err := f.controller.Register(context.Background(), api.RegisterRequest{Email: testEmail})
	require.NoError(t, err)
	require.Equal(t, int64(8), user.ID)

	require.Equal(t, session.StateUnauthenticated, f.controller.State())
	require.Zero(t, f.store.Writes)
	require.Empty(t, f.eventTypes())
}
