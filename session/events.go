// Package session owns client-side authentication state: the auth middleware
// that moves bearer tokens on and off the wire, the controller that drives
// the login/logout/refresh state machine, and the event feed the UI layer
// subscribes to. It is the only writer of the token store.
package session

import (
	"sync"

	"github.com/ashidadhich33-source/MY-erp-sub000/api"
)

// EventType identifies a session transition published to the UI layer.
type EventType string

const (
	// EventEstablished fires once per successful login or bootstrap, with
	// the fetched profile attached.
	EventEstablished EventType = "session-established"

	// EventEnded fires at most once per established session, on logout.
	EventEnded EventType = "session-ended"

	// EventInvalidated fires exactly once per actual invalidation: the first
	// 401 of a burst, or a failed refresh. Navigation-to-login is the
	// subscriber's business, not ours.
	EventInvalidated EventType = "session-invalidated"

	// EventFailed fires when a login attempt is rejected, with the reason.
	EventFailed EventType = "session-failed"
)

// Event is one entry in the session feed.
type Event struct {
	Type    EventType
	Profile *api.User // Set on EventEstablished
	Reason  string    // Set on EventFailed
}

// Events is the pub/sub feed for session transitions. Subscribers are
// invoked synchronously in subscription order; exactly-once semantics per
// logical transition are guaranteed by the emitters, not here.
type Events struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewEvents creates an empty feed.
func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers fn for every subsequent event. There is no
// unsubscribe; the feed lives as long as the client does.
func (e *Events) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Events) emit(ev Event) {
	e.mu.RLock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
