// Package store persists service orders, drafts and catalog lookups in
// PocketBase collections.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/services"
)

// ErrOrderNotFound is returned when an order id does not resolve.
var ErrOrderNotFound = errors.New("order not found")

// SaveResult reports what a save assigned. IDs maps every unsaved id in the
// tree to its persistent record id.
type SaveResult struct {
	OrderID string
	Number  string
	IDs     map[string]string
}

// OrderSummary is one row of the order listing. The amounts are the derived
// columns written by the last save.
type OrderSummary struct {
	ID           string
	Number       string
	ClientName   string
	Title        string
	ScheduledFor string
	PayableTotal float64
	TotalMargin  float64
	Updated      time.Time
}

// OrderStore loads and saves order trees.
type OrderStore struct {
	app    core.App
	policy services.DeductionPolicy
	log    *zap.Logger
	now    func() time.Time
}

func NewOrderStore(app core.App, policy services.DeductionPolicy) *OrderStore {
	return &OrderStore{
		app:    app,
		policy: policy,
		log:    zap.L().Named("store"),
		now:    time.Now,
	}
}

// Policy is the deduction policy applied to loaded orders.
func (s *OrderStore) Policy() services.DeductionPolicy { return s.policy }

// Load reads the order's records and assembles a recomputed tree.
func (s *OrderStore) Load(orderID string) (*services.Order, error) {
	rs, err := s.loadRows(s.app, orderID)
	if err != nil {
		return nil, err
	}
	o, err := services.Assemble(rs, s.policy)
	if err != nil {
		return nil, fmt.Errorf("store: order %s: %w", orderID, err)
	}
	return o, nil
}

func (s *OrderStore) loadRows(app core.App, orderID string) (services.RowSet, error) {
	var rs services.RowSet

	orderRec, err := app.FindRecordById("service_orders", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rs, fmt.Errorf("store: %s: %w", orderID, ErrOrderNotFound)
		}
		return rs, fmt.Errorf("store: load order %s: %w", orderID, err)
	}
	rs.Order = orderRowFromRecord(orderRec)

	params := map[string]any{"orderId": orderID}

	itemRecs, err := app.FindRecordsByFilter("service_order_items", "order = {:orderId}", "sort_order", 0, 0, params)
	if err != nil {
		return rs, fmt.Errorf("store: load items of %s: %w", orderID, err)
	}
	for _, r := range itemRecs {
		rs.Items = append(rs.Items, itemRowFromRecord(r))
	}

	materialRecs, err := app.FindRecordsByFilter("service_order_materials", "item.order = {:orderId}", "sort_order", 0, 0, params)
	if err != nil {
		return rs, fmt.Errorf("store: load materials of %s: %w", orderID, err)
	}
	for _, r := range materialRecs {
		rs.Materials = append(rs.Materials, materialRowFromRecord(r))
	}

	laborRecs, err := app.FindRecordsByFilter("service_order_labor", "item.order = {:orderId}", "sort_order", 0, 0, params)
	if err != nil {
		return rs, fmt.Errorf("store: load labor of %s: %w", orderID, err)
	}
	for _, r := range laborRecs {
		rs.Labor = append(rs.Labor, laborRowFromRecord(r))
	}

	return rs, nil
}

// Save writes the tree in one transaction. Rows with unsaved ids are
// inserted, persisted rows are updated, and persisted rows missing from the
// tree are deleted. The tree itself is not modified; callers apply the
// returned ids with Order.ReassignIDs.
func (s *OrderStore) Save(o *services.Order) (SaveResult, error) {
	rs := services.Flatten(o)
	result := SaveResult{IDs: make(map[string]string)}

	err := s.app.RunInTransaction(func(txApp core.App) error {
		orderRec, err := s.orderRecord(txApp, rs.Order.ID)
		if err != nil {
			return err
		}
		if rs.Order.Number == "" {
			number, err := services.GenerateOrderNumber(txApp, s.now())
			if err != nil {
				return fmt.Errorf("store: order number: %w", err)
			}
			rs.Order.Number = number
		}
		applyOrderRow(orderRec, rs.Order)
		if err := txApp.Save(orderRec); err != nil {
			return fmt.Errorf("store: save order: %w", err)
		}
		result.OrderID = orderRec.Id
		result.Number = rs.Order.Number
		if rs.Order.ID != orderRec.Id {
			result.IDs[rs.Order.ID] = orderRec.Id
		}

		existing, err := s.existingRecords(txApp, orderRec.Id)
		if err != nil {
			return err
		}

		resolveItem := func(id string) string {
			if next, ok := result.IDs[id]; ok {
				return next
			}
			return id
		}

		for _, row := range rs.Items {
			rec, err := existing.claim(txApp, "service_order_items", existing.items, row.ID)
			if err != nil {
				return err
			}
			applyItemRow(rec, row, orderRec.Id)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("store: save item %s: %w", row.ID, err)
			}
			if rec.Id != row.ID {
				result.IDs[row.ID] = rec.Id
			}
		}

		for _, row := range rs.Materials {
			rec, err := existing.claim(txApp, "service_order_materials", existing.materials, row.ID)
			if err != nil {
				return err
			}
			applyMaterialRow(rec, row, resolveItem(row.ItemID))
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("store: save material %s: %w", row.ID, err)
			}
			if rec.Id != row.ID {
				result.IDs[row.ID] = rec.Id
			}
		}

		for _, row := range rs.Labor {
			rec, err := existing.claim(txApp, "service_order_labor", existing.labor, row.ID)
			if err != nil {
				return err
			}
			applyLaborRow(rec, row, resolveItem(row.ItemID))
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("store: save labor %s: %w", row.ID, err)
			}
			if rec.Id != row.ID {
				result.IDs[row.ID] = rec.Id
			}
		}

		// Lines before items: deleting an item cascades to its lines.
		for _, group := range []map[string]*core.Record{existing.materials, existing.labor, existing.items} {
			for _, rec := range group {
				if err := txApp.Delete(rec); err != nil {
					return fmt.Errorf("store: delete %s %s: %w", rec.Collection().Name, rec.Id, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}

	s.log.Info("store: order saved",
		zap.String("order", result.OrderID),
		zap.String("number", result.Number),
		zap.Int("new_ids", len(result.IDs)),
	)
	return result, nil
}

func (s *OrderStore) orderRecord(app core.App, id string) (*core.Record, error) {
	if services.IsNewID(id) || id == "" {
		col, err := app.FindCollectionByNameOrId("service_orders")
		if err != nil {
			return nil, fmt.Errorf("store: collection error: %w", err)
		}
		return core.NewRecord(col), nil
	}
	rec, err := app.FindRecordById("service_orders", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store: %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("store: load order %s: %w", id, err)
	}
	return rec, nil
}

// persisted holds the records of an order keyed by id. Save claims the ones
// still in the tree; whatever remains is deleted.
type persisted struct {
	items     map[string]*core.Record
	materials map[string]*core.Record
	labor     map[string]*core.Record
}

func (s *OrderStore) existingRecords(app core.App, orderID string) (*persisted, error) {
	p := &persisted{
		items:     map[string]*core.Record{},
		materials: map[string]*core.Record{},
		labor:     map[string]*core.Record{},
	}
	params := map[string]any{"orderId": orderID}
	queries := []struct {
		collection string
		filter     string
		into       map[string]*core.Record
	}{
		{"service_order_items", "order = {:orderId}", p.items},
		{"service_order_materials", "item.order = {:orderId}", p.materials},
		{"service_order_labor", "item.order = {:orderId}", p.labor},
	}
	for _, q := range queries {
		recs, err := app.FindRecordsByFilter(q.collection, q.filter, "", 0, 0, params)
		if err != nil {
			return nil, fmt.Errorf("store: query %s: %w", q.collection, err)
		}
		for _, r := range recs {
			q.into[r.Id] = r
		}
	}
	return p, nil
}

// claim returns the record for a row id: a fresh record for unsaved ids, or
// the persisted one, removed from the deletion set.
func (p *persisted) claim(app core.App, collection string, pool map[string]*core.Record, id string) (*core.Record, error) {
	if services.IsNewID(id) {
		col, err := app.FindCollectionByNameOrId(collection)
		if err != nil {
			return nil, fmt.Errorf("store: collection error: %w", err)
		}
		return core.NewRecord(col), nil
	}
	rec, ok := pool[id]
	if !ok {
		return nil, fmt.Errorf("store: %s %s does not belong to this order: %w", collection, id, services.ErrInvalidPayload)
	}
	delete(pool, id)
	return rec, nil
}

// Delete removes an order; its items and lines cascade.
func (s *OrderStore) Delete(orderID string) error {
	rec, err := s.app.FindRecordById("service_orders", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("store: %s: %w", orderID, ErrOrderNotFound)
		}
		return fmt.Errorf("store: load order %s: %w", orderID, err)
	}
	if err := s.app.Delete(rec); err != nil {
		return fmt.Errorf("store: delete order %s: %w", orderID, err)
	}
	return nil
}

// List returns order summaries, newest first.
func (s *OrderStore) List() ([]OrderSummary, error) {
	var recs []*core.Record
	if err := s.app.RecordQuery("service_orders").OrderBy("created DESC").All(&recs); err != nil {
		return nil, fmt.Errorf("store: list orders: %w", err)
	}
	out := make([]OrderSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, OrderSummary{
			ID:           r.Id,
			Number:       r.GetString("number"),
			ClientName:   r.GetString("client_name"),
			Title:        r.GetString("title"),
			ScheduledFor: r.GetString("scheduled_for"),
			PayableTotal: r.GetFloat("payable_total"),
			TotalMargin:  r.GetFloat("total_margin"),
			Updated:      r.GetDateTime("updated").Time(),
		})
	}
	return out, nil
}

// RecalculateAll reloads every order, reruns the cascade and rewrites the
// derived columns. Orders that fail are logged and skipped.
func (s *OrderStore) RecalculateAll() (int, error) {
	var recs []*core.Record
	if err := s.app.RecordQuery("service_orders").OrderBy("created ASC").All(&recs); err != nil {
		return 0, fmt.Errorf("store: list orders: %w", err)
	}
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.Id)
	}
	return s.Recalculate(ids)
}

// Recalculate rewrites the derived columns of the given orders from their
// stored rows. Orders that fail are logged and skipped.
func (s *OrderStore) Recalculate(orderIDs []string) (int, error) {
	updated, failed := 0, 0
	for _, id := range orderIDs {
		o, err := s.Load(id)
		if err == nil {
			_, err = s.Save(o)
		}
		if err != nil {
			failed++
			s.log.Warn("store: recalculation failed", zap.String("order", id), zap.Error(err))
			continue
		}
		updated++
	}

	if failed > 0 {
		return updated, fmt.Errorf("store: %d of %d orders failed to recalculate", failed, len(orderIDs))
	}
	return updated, nil
}
