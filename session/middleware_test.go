package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ashidadhich33-source/MY-erp-sub000/session"
	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore/storefakes"
	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

type middlewareFixture struct {
	store  *storefakes.FakeStore
	client *transport.Client

	mu       sync.Mutex
	received []session.Event
}

func setupMiddlewareFixture(t *testing.T, handler http.Handler) *middlewareFixture {
	t.Helper()

	f := &middlewareFixture{store: storefakes.NewFakeStore()}

	events := session.NewEvents()
	events.Subscribe(func(ev session.Event) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.received = append(f.received, ev)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reqMW, respMW := session.Middleware(f.store, events)
	client, err := transport.New(transport.Settings{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	},
		transport.WithRequestMiddleware(reqMW),
		transport.WithResponseMiddleware(respMW),
	)
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *middlewareFixture) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

func listRequest() *transport.Request {
	return &transport.Request{Name: "customers.list", Method: http.MethodGet, Path: "/customers"}
}

func TestMiddlewareInjectsBearer(t *testing.T) {
	var seenAuth string
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	f.store.Seed(seededCredentials())

	_, err := f.client.Do(context.Background(), listRequest())
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testAccessToken, seenAuth)
}

func TestMiddlewareSkipsHeaderWithoutCredentials(t *testing.T) {
	var seenAuth string
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := f.client.Do(context.Background(), listRequest())
	require.NoError(t, err)
	require.Empty(t, seenAuth)
}

func TestMiddlewareReadsStoreAtDispatchTime(t *testing.T) {
	var seenAuth []string
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = append(seenAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))

	f.store.Seed(seededCredentials())
	_, err := f.client.Do(context.Background(), listRequest())
	require.NoError(t, err)

	// A request dispatched after the store is cleared carries no token.
	require.NoError(t, f.store.Clear())
	_, err = f.client.Do(context.Background(), listRequest())
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer " + testAccessToken, ""}, seenAuth)
}

func TestMiddlewareClearsOnUnauthorized(t *testing.T) {
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	f.store.Seed(seededCredentials())

	_, err := f.client.Do(context.Background(), listRequest())
	require.ErrorIs(t, err, transport.ErrAuthExpired)

	_, ok := f.store.Read()
	require.False(t, ok)
	require.Equal(t, 1, f.eventCount())
	require.Equal(t, session.EventInvalidated, f.received[0].Type)
}

func TestMiddlewareCollapsesUnauthorizedBurst(t *testing.T) {
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	f.store.Seed(seededCredentials())

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.client.Do(context.Background(), listRequest())
		}(i)
	}
	wg.Wait()

	// Every caller sees the auth failure, but it is published only once.
	for _, err := range errs {
		require.ErrorIs(t, err, transport.ErrAuthExpired)
	}
	require.Equal(t, 1, f.eventCount())

	_, ok := f.store.Read()
	require.False(t, ok)
}

func TestMiddlewareUnauthorizedWithoutCredentials(t *testing.T) {
	f := setupMiddlewareFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := f.client.Do(context.Background(), listRequest())
	require.ErrorIs(t, err, transport.ErrAuthExpired)

	// Nothing to invalidate, so nothing is published.
	require.Zero(t, f.eventCount())
}
