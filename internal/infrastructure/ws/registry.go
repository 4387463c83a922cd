package ws

import "sync"

// Registry is the mutex-guarded set of active sessions. Broadcast iteration
// always works on a snapshot, never on the live set, so registry mutation is
// never blocked on network writes.
type Registry struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*Session]struct{}),
	}
}

// Register adds a session to the set. Registering a session that is already
// present is a silent no-op and reports false.
func (r *Registry) Register(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s]; exists {
		return false
	}
	r.sessions[s] = struct{}{}
	return true
}

// Unregister removes a session from the set. Removing a session that is not
// present is a no-op, so cleanup from the read loop and from a failed
// broadcast can race safely.
func (r *Registry) Unregister(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, s)
}

// Snapshot returns a point-in-time copy of the session set
func (r *Registry) Snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	return snapshot
}

// Len returns the number of registered sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
