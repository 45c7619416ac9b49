package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"serviceorders/services"
	"serviceorders/store"
)

// ErrNotOpen is returned for an order id with no open session.
var ErrNotOpen = errors.New("order is not open for editing")

// OrderRepository is the persisted side of an order.
type OrderRepository interface {
	Load(orderID string) (*services.Order, error)
	Save(o *services.Order) (store.SaveResult, error)
	Delete(orderID string) error
}

// DraftRepository holds autosaved drafts.
type DraftRepository interface {
	SaveDraft(orderID string, payload []byte) error
	LoadDraft(orderID string) ([]byte, bool, error)
	DeleteDraft(orderID string) error
}

// Manager opens, saves and closes editing sessions.
type Manager struct {
	orders   OrderRepository
	drafts   DraftRepository
	registry *Registry
	policy   services.DeductionPolicy
	log      *zap.Logger
}

func NewManager(orders OrderRepository, drafts DraftRepository, policy services.DeductionPolicy) *Manager {
	return &Manager{
		orders:   orders,
		drafts:   drafts,
		registry: NewRegistry(),
		policy:   policy,
		log:      zap.L().Named("session"),
	}
}

func (m *Manager) Registry() *Registry { return m.registry }

// New opens a session on an empty, unsaved order.
func (m *Manager) New() *Session {
	s := newSession(services.NewOrder("", m.policy))
	m.registry.put(s.order.ID, s)
	return s
}

// Get returns an already open session.
func (m *Manager) Get(orderID string) (*Session, error) {
	s, ok := m.registry.Get(orderID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", orderID, ErrNotOpen)
	}
	return s, nil
}

// Open returns the session for orderID, building it if needed. A stored
// draft wins over the persisted rows; a draft that cannot be read is
// logged and ignored.
func (m *Manager) Open(orderID string) (*Session, error) {
	if s, ok := m.registry.Get(orderID); ok {
		return s, nil
	}

	if o, ok := m.restoreDraft(orderID); ok {
		s := newSession(o)
		s.restored = true
		m.registry.put(orderID, s)
		return s, nil
	}

	o, err := m.orders.Load(orderID)
	if err != nil {
		return nil, err
	}
	s := newSession(o)
	m.registry.put(orderID, s)
	return s, nil
}

func (m *Manager) restoreDraft(orderID string) (*services.Order, bool) {
	payload, ok, err := m.drafts.LoadDraft(orderID)
	if err != nil {
		m.log.Warn("session: could not read draft", zap.String("order", orderID), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	o, err := services.DecodeDraft(payload, orderID, m.policy)
	if err != nil {
		m.log.Warn("session: discarding unreadable draft", zap.String("order", orderID), zap.Error(err))
		return nil, false
	}
	return o, true
}

// Save persists a snapshot of the session's tree. On failure the tree is
// left exactly as it was so the user can retry. On success the assigned ids
// are applied, the session is re-keyed under the persistent id and the
// draft is cleared.
func (m *Manager) Save(orderID string) (*Session, error) {
	s, err := m.Get(orderID)
	if err != nil {
		return nil, err
	}

	s.persist.Lock()
	defer s.persist.Unlock()

	snapshot, version, _ := s.Snapshot()
	res, err := m.orders.Save(snapshot)
	if err != nil {
		m.log.Error("session: save failed", zap.String("order", orderID), zap.Error(err))
		return s, fmt.Errorf("save order %s: %w", orderID, err)
	}

	s.markSaved(version, res.IDs, res.Number)
	m.registry.rekey(orderID, res.OrderID)

	if err := m.drafts.DeleteDraft(orderID); err != nil {
		m.log.Warn("session: could not clear draft", zap.String("order", orderID), zap.Error(err))
	}
	return s, nil
}

// Cancel discards the open tree and its draft.
func (m *Manager) Cancel(orderID string) {
	if s, ok := m.registry.Get(orderID); ok {
		s.persist.Lock()
		defer s.persist.Unlock()
	}
	m.registry.Close(orderID)
	if err := m.drafts.DeleteDraft(orderID); err != nil {
		m.log.Warn("session: could not clear draft", zap.String("order", orderID), zap.Error(err))
	}
}

// Delete removes a persisted order together with any open session and
// draft.
func (m *Manager) Delete(orderID string) error {
	m.Cancel(orderID)
	return m.orders.Delete(orderID)
}
