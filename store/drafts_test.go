package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviceorders/services"
	"serviceorders/testhelpers"
)

func TestDraftSlot(t *testing.T) {
	assert.Equal(t, "order:abc", DraftSlot("abc"))
}

func TestDraftStore_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := NewDraftStore(app)

	_, ok, err := s.LoadDraft("o1")
	require.NoError(t, err)
	assert.False(t, ok)

	o := sampleOrder(t)
	payload, err := services.EncodeDraft(o)
	require.NoError(t, err)

	require.NoError(t, s.SaveDraft(o.ID, payload))
	require.NoError(t, s.SaveDraft(o.ID, payload), "second save overwrites the slot")
	assert.Equal(t, 1, countRecords(t, app, "order_drafts"))

	got, ok, err := s.LoadDraft(o.ID)
	require.NoError(t, err)
	require.True(t, ok)

	restored, err := services.DecodeDraft(got, o.ID, services.DeductionsCountAsCost)
	require.NoError(t, err)
	assert.Equal(t, o.Totals(), restored.Totals())

	require.NoError(t, s.DeleteDraft(o.ID))
	require.NoError(t, s.DeleteDraft(o.ID), "deleting a missing slot is not an error")
	_, ok, err = s.LoadDraft(o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
