package services

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Draft is the autosave payload of an order being edited.
type Draft struct {
	OrderID      string      `json:"orderId"`
	FormData     DraftForm   `json:"formData"`
	ServiceItems []DraftItem `json:"serviceItems"`
	Totals       Totals      `json:"totals"`
}

type DraftForm struct {
	OrderHeader
	DiscountMode     DiscountMode `json:"discountMode"`
	DiscountPercent  float64      `json:"discountPercent"`
	DiscountAbsolute float64      `json:"discountAbsolute"`
	AdditionalExpenses
}

type DraftItem struct {
	ID               string          `json:"id"`
	CatalogRef       string          `json:"catalogRef"`
	Description      string          `json:"description"`
	Quantity         float64         `json:"quantity"`
	UnitPrice        float64         `json:"unitPrice"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	LineTotal        float64         `json:"lineTotal"`
	ItemCost         float64         `json:"itemCost"`
	ItemProfit       float64         `json:"itemProfit"`
	ItemMargin       float64         `json:"itemMargin"`
	Materials        []DraftMaterial `json:"materials"`
	Labor            []DraftLabor    `json:"labor"`
}

type DraftMaterial struct {
	ID            string  `json:"id"`
	MaterialRef   string  `json:"materialRef"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unitCost"`
	UnitSalePrice float64 `json:"unitSalePrice"`
	TotalCost     float64 `json:"totalCost"`
	TotalSale     float64 `json:"totalSale"`
	Profit        float64 `json:"profit"`
}

type DraftLabor struct {
	ID         string  `json:"id"`
	StaffRef   string  `json:"staffRef"`
	Name       string  `json:"name"`
	Minutes    int     `json:"minutes"`
	HourlyRate float64 `json:"hourlyRate"`
	TotalCost  float64 `json:"totalCost"`
}

// EncodeDraft serializes the order. Derived values are included for display
// only; DecodeDraft recomputes them.
func EncodeDraft(o *Order) ([]byte, error) {
	d := o.Discount()
	draft := Draft{
		OrderID: o.ID,
		FormData: DraftForm{
			OrderHeader:        o.Header,
			DiscountMode:       d.Mode(),
			DiscountPercent:    d.Percent(),
			DiscountAbsolute:   d.Absolute(),
			AdditionalExpenses: o.Expenses(),
		},
		ServiceItems: make([]DraftItem, 0, len(o.Items())),
		Totals:       o.Totals().Rounded(),
	}
	for _, it := range o.Items() {
		di := DraftItem{
			ID:               it.ID,
			CatalogRef:       it.CatalogRef,
			Description:      it.Description,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			EstimatedMinutes: it.EstimatedMinutes,
			LineTotal:        Round2(it.LineTotal()),
			ItemCost:         Round2(it.ItemCost()),
			ItemProfit:       Round2(it.ItemProfit()),
			ItemMargin:       Round2(it.ItemMargin()),
			Materials:        make([]DraftMaterial, 0, len(it.Materials)),
			Labor:            make([]DraftLabor, 0, len(it.Labor)),
		}
		for _, m := range it.Materials {
			di.Materials = append(di.Materials, DraftMaterial{
				ID:            m.ID,
				MaterialRef:   m.MaterialRef,
				Name:          m.Name,
				Unit:          m.Unit,
				Quantity:      m.Quantity,
				UnitCost:      m.UnitCost,
				UnitSalePrice: m.UnitSalePrice,
				TotalCost:     Round2(m.TotalCost()),
				TotalSale:     Round2(m.TotalSale()),
				Profit:        Round2(m.Profit()),
			})
		}
		for _, l := range it.Labor {
			di.Labor = append(di.Labor, DraftLabor{
				ID:         l.ID,
				StaffRef:   l.StaffRef,
				Name:       l.Name,
				Minutes:    l.Minutes,
				HourlyRate: l.HourlyRate,
				TotalCost:  Round2(l.TotalCost()),
			})
		}
		draft.ServiceItems = append(draft.ServiceItems, di)
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return data, nil
}

// draftAliases lists every accepted spelling of a draft key, canonical first.
// Drafts written by older clients use the later spellings.
var draftAliases = map[string][]string{
	"orderId":          {"orderId", "order_id", "id"},
	"number":           {"number", "orderNumber", "order_number"},
	"clientName":       {"clientName", "client_name", "client"},
	"title":            {"title"},
	"notes":            {"notes", "observations"},
	"scheduledFor":     {"scheduledFor", "scheduled_for", "scheduledDate"},
	"discountMode":     {"discountMode", "discount_mode", "discountType"},
	"discountPercent":  {"discountPercent", "discount_percent", "discountPercentage"},
	"discountAbsolute": {"discountAbsolute", "discount_absolute", "discountValue", "discountAmount"},
	"travel":           {"travel", "travelExpense", "displacement"},
	"parking":          {"parking", "parkingExpense"},
	"toll":             {"toll", "tollExpense"},
	"other":            {"other", "otherExpense", "otherExpenses"},
	"otherDescription": {"otherDescription", "other_description", "otherExpenseDescription"},
	"id":               {"id"},
	"catalogRef":       {"catalogRef", "serviceId", "service_id"},
	"description":      {"description", "name"},
	"quantity":         {"quantity", "qty"},
	"unitPrice":        {"unitPrice", "unit_price", "price"},
	"estimatedMinutes": {"estimatedMinutes", "estimated_minutes", "estimatedTime"},
	"materials":        {"materials"},
	"labor":            {"labor", "labour", "staff"},
	"materialRef":      {"materialRef", "materialId", "material_id"},
	"name":             {"name", "description"},
	"unit":             {"unit", "unitOfMeasure", "uom"},
	"unitCost":         {"unitCost", "unit_cost", "costPrice"},
	"unitSalePrice":    {"unitSalePrice", "unit_sale_price", "salePrice"},
	"staffRef":         {"staffRef", "staffId", "staff_id"},
	"minutes":          {"minutes", "duration"},
	"hourlyRate":       {"hourlyRate", "hourly_rate", "rate"},
}

// draftField is the single place that resolves a key against its aliases.
// It returns the first present, non-null value.
func draftField(m map[string]any, key string) (any, bool) {
	names, ok := draftAliases[key]
	if !ok {
		names = []string{key}
	}
	for _, name := range names {
		if v, ok := m[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func draftString(m map[string]any, key string) (string, error) {
	v, ok := draftField(m, key)
	if !ok {
		return "", nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return "", fmt.Errorf("%w: %s is not a scalar", ErrInvalidPayload, key)
	}
	return cast.ToStringE(v)
}

func draftNumber(m map[string]any, key string, def float64) (float64, error) {
	v, ok := draftField(m, key)
	if !ok {
		return def, nil
	}
	f, err := parseAmount(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, key, err)
	}
	return f, nil
}

func draftWhole(m map[string]any, key string, def int) (int, error) {
	f, err := draftNumber(m, key, float64(def))
	if err != nil {
		return 0, err
	}
	n, err := parseWholeNumber(f, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, key, err)
	}
	return n, nil
}

func draftObjects(m map[string]any, key string, required bool) ([]map[string]any, error) {
	v, ok := draftField(m, key)
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidPayload, key)
		}
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a list", ErrInvalidPayload, key)
	}
	out := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrInvalidPayload, key, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

// stringFields reads several string keys, stopping at the first error.
func stringFields(m map[string]any, dst map[string]*string) error {
	for key, target := range dst {
		s, err := draftString(m, key)
		if err != nil {
			return err
		}
		*target = s
	}
	return nil
}

func numberFields(m map[string]any, dst map[string]*float64, def float64) error {
	for key, target := range dst {
		f, err := draftNumber(m, key, def)
		if err != nil {
			return err
		}
		*target = f
	}
	return nil
}

// DecodeDraft restores an order from an autosave payload. Unknown shapes are
// rejected; stored derived values are ignored and recomputed. orderID is used
// when the payload does not name its order.
func DecodeDraft(data []byte, orderID string, policy DeductionPolicy) (*Order, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	formRaw, ok := root["formData"]
	if !ok {
		return nil, fmt.Errorf("%w: missing formData", ErrInvalidPayload)
	}
	form, ok := formRaw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: formData is not an object", ErrInvalidPayload)
	}
	items, err := draftObjects(root, "serviceItems", true)
	if err != nil {
		return nil, err
	}

	var rs RowSet
	if id, _ := draftString(root, "orderId"); id != "" {
		rs.Order.ID = id
	} else {
		rs.Order.ID = orderID
	}
	if err := decodeDraftForm(form, &rs.Order); err != nil {
		return nil, err
	}

	for i, im := range items {
		row := ItemRow{OrderID: rs.Order.ID, SortOrder: i}
		if err := stringFields(im, map[string]*string{
			"id":          &row.ID,
			"catalogRef":  &row.CatalogRef,
			"description": &row.Description,
		}); err != nil {
			return nil, err
		}
		if row.ID == "" {
			row.ID = NewLineID()
		}
		if row.Quantity, err = draftNumber(im, "quantity", 1); err != nil {
			return nil, err
		}
		if row.UnitPrice, err = draftNumber(im, "unitPrice", 0); err != nil {
			return nil, err
		}
		if row.EstimatedMinutes, err = draftWhole(im, "estimatedMinutes", 0); err != nil {
			return nil, err
		}
		rs.Items = append(rs.Items, row)

		materials, err := draftObjects(im, "materials", false)
		if err != nil {
			return nil, err
		}
		for j, mm := range materials {
			mr := MaterialRow{ItemID: row.ID, SortOrder: j}
			if err := stringFields(mm, map[string]*string{
				"id":          &mr.ID,
				"materialRef": &mr.MaterialRef,
				"name":        &mr.Name,
				"unit":        &mr.Unit,
			}); err != nil {
				return nil, err
			}
			if mr.ID == "" {
				mr.ID = NewLineID()
			}
			if mr.Quantity, err = draftNumber(mm, "quantity", 1); err != nil {
				return nil, err
			}
			if err := numberFields(mm, map[string]*float64{
				"unitCost":      &mr.UnitCost,
				"unitSalePrice": &mr.UnitSalePrice,
			}, 0); err != nil {
				return nil, err
			}
			rs.Materials = append(rs.Materials, mr)
		}

		labor, err := draftObjects(im, "labor", false)
		if err != nil {
			return nil, err
		}
		for j, lm := range labor {
			lr := LaborRow{ItemID: row.ID, SortOrder: j}
			if err := stringFields(lm, map[string]*string{
				"id":       &lr.ID,
				"staffRef": &lr.StaffRef,
				"name":     &lr.Name,
			}); err != nil {
				return nil, err
			}
			if lr.ID == "" {
				lr.ID = NewLineID()
			}
			minutes, err := draftNumber(lm, "minutes", DefaultLaborMinutes)
			if err != nil {
				return nil, err
			}
			if _, err := parseWholeNumber(minutes, 1); err != nil {
				return nil, fmt.Errorf("%w: labor minutes: %v", ErrInvalidPayload, err)
			}
			lr.Minutes = int(minutes)
			if lr.HourlyRate, err = draftNumber(lm, "hourlyRate", 0); err != nil {
				return nil, err
			}
			rs.Labor = append(rs.Labor, lr)
		}
	}

	return Assemble(rs, policy)
}

func decodeDraftForm(form map[string]any, r *OrderRow) error {
	var mode string
	if err := stringFields(form, map[string]*string{
		"number":           &r.Number,
		"clientName":       &r.ClientName,
		"title":            &r.Title,
		"notes":            &r.Notes,
		"scheduledFor":     &r.ScheduledFor,
		"otherDescription": &r.OtherDescription,
		"discountMode":     &mode,
	}); err != nil {
		return err
	}
	if err := numberFields(form, map[string]*float64{
		"discountPercent":  &r.DiscountPercent,
		"discountAbsolute": &r.DiscountAbsolute,
		"travel":           &r.Travel,
		"parking":          &r.Parking,
		"toll":             &r.Toll,
		"other":            &r.Other,
	}, 0); err != nil {
		return err
	}

	// Drafts without a mode predate the exclusive discount. A positive
	// absolute value wins over the percentage.
	switch {
	case mode != "":
		r.DiscountMode = mode
	case r.DiscountAbsolute > 0:
		r.DiscountMode = string(DiscountAbsolute)
	default:
		r.DiscountMode = string(DiscountPercent)
	}
	return nil
}
