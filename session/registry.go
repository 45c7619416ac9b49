package session

import "sync"

// Registry indexes open sessions by order id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Get(orderID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[orderID]
	return s, ok
}

func (r *Registry) put(orderID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[orderID] = s
}

// Close drops the session. The tree is discarded with it and the session
// is marked closed so a draft write already in flight skips it.
func (r *Registry) Close(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[orderID]; ok {
		s.markClosed()
		delete(r.sessions, orderID)
	}
}

func (r *Registry) rekey(oldID, newID string) {
	if oldID == newID {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[oldID]; ok {
		delete(r.sessions, oldID)
		r.sessions[newID] = s
	}
}

// All returns the open sessions in no particular order.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
