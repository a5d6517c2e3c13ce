package session

import (
	"net/http"
	"sync"

	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

// Middleware returns the request/response middleware pair that wires the
// token store into a transport client.
//
// Request side: the store is read at the moment the request is dispatched,
// never earlier, so a request queued before an invalidation cannot carry the
// cleared token. Present credentials become "Authorization: Bearer <access>";
// absent credentials leave the header unset.
//
// Response side: a 401 clears the store, publishes session-invalidated, and
// surfaces ErrAuthExpired. A burst of concurrent 401s collapses to a single
// event: only the goroutine that observes the store still populated gets to
// clear it and publish. The middleware never refreshes transparently;
// refresh is an explicit controller operation so failure paths stay
// deterministic.
func Middleware(store tokenstore.Store, events *Events) (transport.RequestMiddleware, transport.ResponseMiddleware) {
	i := &authInterceptor{store: store, events: events}
	return i.injectBearer, i.interceptUnauthorized
}

type authInterceptor struct {
	mu     sync.Mutex
	store  tokenstore.Store
	events *Events
}

func (i *authInterceptor) injectBearer(req *transport.Request) error {
	if creds, ok := i.store.Read(); ok {
		req.SetHeader("Authorization", "Bearer "+creds.AccessToken)
	}
	return nil
}

func (i *authInterceptor) interceptUnauthorized(req *transport.Request, resp *transport.Response) error {
	if resp.StatusCode != http.StatusUnauthorized {
		return nil
	}

	i.mu.Lock()
	_, present := i.store.Read()
	if present {
		_ = i.store.Clear()
	}
	i.mu.Unlock()

	if present {
		i.events.emit(Event{Type: EventInvalidated})
	}
	return transport.NewError(transport.ErrAuthExpired, resp.StatusCode, req.Name, nil)
}
