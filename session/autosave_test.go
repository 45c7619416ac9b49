package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviceorders/services"
)

func TestAutosaver_WritesOnlyDirtySessions(t *testing.T) {
	drafts := newFakeDrafts()
	m := NewManager(newFakeOrders(), drafts, services.DeductionsCountAsCost)
	a := NewAutosaver(m.Registry(), drafts)

	clean := m.New()
	dirty := m.New()
	addPricedItem(t, dirty, 1, 10)

	assert.Equal(t, 1, a.Run())
	assert.True(t, drafts.has(dirty.ID()))
	assert.False(t, drafts.has(clean.ID()))
	assert.False(t, dirty.Dirty())
	assert.Equal(t, AutosaveSaved, dirty.AutosaveStatus().State)

	assert.Equal(t, 0, a.Run(), "nothing changed since the last run")
}

func TestAutosaver_FailureIsNonFatal(t *testing.T) {
	drafts := newFakeDrafts()
	drafts.fail = true
	m := NewManager(newFakeOrders(), drafts, services.DeductionsCountAsCost)
	a := NewAutosaver(m.Registry(), drafts)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	s := m.New()
	itemID := addPricedItem(t, s, 2, 30)
	before, _, _ := s.Snapshot()

	assert.Equal(t, 0, a.Run())

	status := s.AutosaveStatus()
	assert.Equal(t, AutosaveFailed, status.State)
	assert.ErrorIs(t, status.Err, errStorage)
	assert.Equal(t, now, status.At)

	after, _, dirty := s.Snapshot()
	assert.True(t, dirty, "still pending for the next run")
	assert.Equal(t, before.Totals(), after.Totals())

	// Editing continues after the failure.
	require.NoError(t, s.Edit(func(o *services.Order) error {
		return o.SetItemField(itemID, services.ItemQuantity, 3)
	}))
	assert.Equal(t, 90.0, subtotal(s))

	drafts.fail = false
	assert.Equal(t, 1, a.Run())
	assert.Equal(t, AutosaveSaved, s.AutosaveStatus().State)
}

func TestAutosaver_EditDuringWriteStaysDirty(t *testing.T) {
	m := NewManager(newFakeOrders(), newFakeDrafts(), services.DeductionsCountAsCost)
	s := m.New()
	addPricedItem(t, s, 1, 10)

	_, version, _ := s.Snapshot()
	addPricedItem(t, s, 1, 10)
	s.markAutosaved(version, time.Now(), nil)

	assert.True(t, s.Dirty())
}

// blockDrafts makes the next SaveDraft wait until the returned func is called.
func blockDrafts(drafts *fakeDrafts) (release func()) {
	drafts.gate = make(chan struct{})
	drafts.entered = make(chan struct{}, 1)
	return func() { close(drafts.gate) }
}

func TestAutosaver_SlowDraftDoesNotOutliveSave(t *testing.T) {
	orders := newFakeOrders()
	drafts := newFakeDrafts()
	m := NewManager(orders, drafts, services.DeductionsCountAsCost)
	a := NewAutosaver(m.Registry(), drafts)

	s := m.New()
	addPricedItem(t, s, 1, 100)
	_, err := m.Save(s.ID())
	require.NoError(t, err)
	orderID := s.ID()
	var itemID string
	s.Read(func(o *services.Order) { itemID = o.Items()[0].ID })
	require.NoError(t, s.Edit(func(o *services.Order) error {
		return o.SetHeaderField(services.HeaderNotes, "levar escada")
	}))

	release := blockDrafts(drafts)
	ran := make(chan int, 1)
	go func() { ran <- a.Run() }()
	<-drafts.entered

	// The draft write holds a snapshot with subtotal 100.
	require.NoError(t, s.Edit(func(o *services.Order) error {
		return o.SetItemField(itemID, services.ItemQuantity, 2)
	}))
	saved := make(chan error, 1)
	go func() {
		_, err := m.Save(orderID)
		saved <- err
	}()

	select {
	case err := <-saved:
		t.Fatalf("save finished while a draft write was in flight: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	release()
	assert.Equal(t, 1, <-ran)
	require.NoError(t, <-saved)

	assert.False(t, drafts.has(orderID), "the later save clears the older draft")
	assert.False(t, s.Dirty())

	reopened, err := NewManager(orders, drafts, services.DeductionsCountAsCost).Open(orderID)
	require.NoError(t, err)
	assert.False(t, reopened.Restored())
	assert.Equal(t, 200.0, subtotal(reopened))
}

func TestAutosaver_CancelDuringDraftWrite(t *testing.T) {
	drafts := newFakeDrafts()
	m := NewManager(newFakeOrders(), drafts, services.DeductionsCountAsCost)
	a := NewAutosaver(m.Registry(), drafts)

	s := m.New()
	addPricedItem(t, s, 1, 10)
	orderID := s.ID()

	release := blockDrafts(drafts)
	ran := make(chan int, 1)
	go func() { ran <- a.Run() }()
	<-drafts.entered

	cancelled := make(chan struct{})
	go func() {
		m.Cancel(orderID)
		close(cancelled)
	}()

	release()
	<-ran
	<-cancelled

	assert.False(t, drafts.has(orderID), "no draft survives a cancel")
	assert.True(t, s.Closed())
	assert.Equal(t, 0, m.Registry().Len())
}

func TestAutosaver_SkipsClosedSession(t *testing.T) {
	drafts := newFakeDrafts()
	m := NewManager(newFakeOrders(), drafts, services.DeductionsCountAsCost)
	a := NewAutosaver(m.Registry(), drafts)

	s := m.New()
	addPricedItem(t, s, 1, 10)
	m.Registry().Close(s.ID())

	ok, err := a.write(s)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, drafts.has(s.ID()))
}
