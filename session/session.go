// Package session keeps the order trees that are open for editing and
// mirrors them to draft storage.
package session

import (
	"sync"
	"time"

	"serviceorders/services"
)

// AutosaveState is the outcome of the last autosave attempt.
type AutosaveState string

const (
	AutosaveIdle   AutosaveState = "idle"
	AutosaveSaved  AutosaveState = "saved"
	AutosaveFailed AutosaveState = "failed"
)

// AutosaveStatus is shown to the user as a non-fatal indicator.
type AutosaveStatus struct {
	State AutosaveState
	At    time.Time
	Err   error
}

// Session owns one order tree. Every mutation and read runs under its lock,
// so the cascade always completes before anyone else observes the tree.
//
// persist is held for the whole of a draft write or an explicit save, from
// snapshot to the final storage call, so a slower older snapshot can never
// land after a newer one. It is always taken before mu.
type Session struct {
	persist sync.Mutex

	mu       sync.Mutex
	order    *services.Order
	version  uint64
	dirty    bool
	restored bool
	closed   bool
	status   AutosaveStatus
}

func newSession(o *services.Order) *Session {
	return &Session{order: o, status: AutosaveStatus{State: AutosaveIdle}}
}

// ID is the current order id. It changes once, when a first save assigns
// the persistent id.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.ID
}

// Edit runs fn against the tree. A nil error marks the session dirty.
func (s *Session) Edit(fn func(o *services.Order) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.order); err != nil {
		return err
	}
	s.version++
	s.dirty = true
	return nil
}

// Read runs fn against the tree without marking it dirty. fn must not
// mutate the order.
func (s *Session) Read(fn func(o *services.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.order)
}

// Snapshot returns a deep copy of the tree with its version and dirty flag.
func (s *Session) Snapshot() (*services.Order, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Clone(), s.version, s.dirty
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Restored reports whether the tree was opened from an autosaved draft.
func (s *Session) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

func (s *Session) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the session was dropped from its registry.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) AutosaveStatus() AutosaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// markAutosaved records the outcome of writing the snapshot taken at
// version. The tree stays dirty if it changed after the snapshot.
func (s *Session) markAutosaved(version uint64, at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = AutosaveStatus{State: AutosaveFailed, At: at, Err: err}
		return
	}
	s.status = AutosaveStatus{State: AutosaveSaved, At: at}
	if s.version == version {
		s.dirty = false
	}
}

// markSaved applies the ids and number assigned by an explicit save of the
// snapshot taken at version.
func (s *Session) markSaved(version uint64, ids map[string]string, number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.ReassignIDs(ids)
	s.order.Header.Number = number
	s.restored = false
	if s.version == version {
		s.dirty = false
	}
}
