package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// DraftStore keeps one autosave payload per order in the order_drafts
// collection.
type DraftStore struct {
	app core.App
}

func NewDraftStore(app core.App) *DraftStore {
	return &DraftStore{app: app}
}

// DraftSlot names the slot an order's draft is stored under.
func DraftSlot(orderID string) string {
	return "order:" + orderID
}

func (s *DraftStore) find(orderID string) (*core.Record, error) {
	rec, err := s.app.FindFirstRecordByData("order_drafts", "slot", DraftSlot(orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("drafts: find %s: %w", orderID, err)
	}
	return rec, nil
}

// SaveDraft creates or overwrites the order's slot.
func (s *DraftStore) SaveDraft(orderID string, payload []byte) error {
	rec, err := s.find(orderID)
	if err != nil {
		return err
	}
	if rec == nil {
		col, err := s.app.FindCollectionByNameOrId("order_drafts")
		if err != nil {
			return fmt.Errorf("drafts: collection error: %w", err)
		}
		rec = core.NewRecord(col)
		rec.Set("slot", DraftSlot(orderID))
	}
	rec.Set("payload", types.JSONRaw(payload))
	if err := s.app.Save(rec); err != nil {
		return fmt.Errorf("drafts: save %s: %w", orderID, err)
	}
	return nil
}

// LoadDraft returns the stored payload and whether one exists.
func (s *DraftStore) LoadDraft(orderID string) ([]byte, bool, error) {
	rec, err := s.find(orderID)
	if err != nil || rec == nil {
		return nil, false, err
	}
	if raw, ok := rec.Get("payload").(types.JSONRaw); ok {
		return []byte(raw), true, nil
	}
	return []byte(rec.GetString("payload")), true, nil
}

// DeleteDraft clears the slot. A missing slot is not an error.
func (s *DraftStore) DeleteDraft(orderID string) error {
	rec, err := s.find(orderID)
	if err != nil || rec == nil {
		return err
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("drafts: delete %s: %w", orderID, err)
	}
	return nil
}
