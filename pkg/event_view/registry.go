package event_view

import (
	"sync"

	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/pkg/event"
)

// Registry keeps one Session per authenticated user. A session is created
// Unloaded the first time an identity shows up and loads lazily on first use;
// there is no ambient current-user state.
type Registry struct {
	mu       sync.Mutex
	service  event.Service
	sessions map[string]*Session
}

func NewRegistry(service event.Service) *Registry {
	return &Registry{
		service:  service,
		sessions: make(map[string]*Session),
	}
}

// SessionFor returns the session of the given user, creating it on first sight.
func (r *Registry) SessionFor(uid string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[uid]
	if !ok {
		session = NewSession(r.service)
		r.sessions[uid] = session
	}
	return session
}

// Register subscribes the registry to account deletions so a deleted user's
// session is discarded along with their rows. A session surviving the account
// would serve events the store no longer holds.
func (r *Registry) Register(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.UserDeleted](bus, event_bus.UserDeletedType,
		func(e event_bus.EventT[event_bus.UserDeleted]) error {
			r.Drop(e.Data.Uid)
			return nil
		})
}

// Drop discards a user's session; the next request starts Unloaded.
func (r *Registry) Drop(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, uid)
}
