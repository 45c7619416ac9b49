package session

import (
	"errors"
	"sync"

	"serviceorders/services"
	"serviceorders/store"
)

var errStorage = errors.New("storage unavailable")

type fakeOrders struct {
	mu      sync.Mutex
	orders  map[string]*services.Order
	fail    bool
	saves   int
	nextSeq int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]*services.Order{}}
}

func (f *fakeOrders) Load(orderID string) (*services.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	return o.Clone(), nil
}

func (f *fakeOrders) Save(o *services.Order) (store.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return store.SaveResult{}, errStorage
	}
	f.saves++

	ids := map[string]string{}
	assign := func(id string) {
		if services.IsNewID(id) {
			f.nextSeq++
			ids[id] = "rec" + string(rune('a'+f.nextSeq))
		}
	}
	assign(o.ID)
	for _, it := range o.Items() {
		assign(it.ID)
		for _, m := range it.Materials {
			assign(m.ID)
		}
		for _, l := range it.Labor {
			assign(l.ID)
		}
	}

	saved := o.Clone()
	saved.ReassignIDs(ids)
	if saved.Header.Number == "" {
		saved.Header.Number = "OS-2026-0001"
	}
	f.orders[saved.ID] = saved
	return store.SaveResult{OrderID: saved.ID, Number: saved.Header.Number, IDs: ids}, nil
}

func (f *fakeOrders) Delete(orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[orderID]; !ok {
		return store.ErrOrderNotFound
	}
	delete(f.orders, orderID)
	return nil
}

type fakeDrafts struct {
	mu     sync.Mutex
	slots  map[string][]byte
	fail   bool
	writes int

	// When gate is set, SaveDraft signals entered and waits for gate to close.
	gate    chan struct{}
	entered chan struct{}
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{slots: map[string][]byte{}}
}

func (f *fakeDrafts) SaveDraft(orderID string, payload []byte) error {
	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStorage
	}
	f.writes++
	f.slots[orderID] = append([]byte(nil), payload...)
	return nil
}

func (f *fakeDrafts) LoadDraft(orderID string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.slots[orderID]
	return p, ok, nil
}

func (f *fakeDrafts) DeleteDraft(orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, orderID)
	return nil
}

func (f *fakeDrafts) has(orderID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.slots[orderID]
	return ok
}
