package services

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderRow is the flat record of an order. The total fields are written for
// listings and documents but are ignored on load.
type OrderRow struct {
	ID               string
	Number           string
	ClientName       string
	Title            string
	Notes            string
	ScheduledFor     string
	DiscountMode     string
	DiscountPercent  float64
	DiscountAbsolute float64
	Travel           float64
	Parking          float64
	Toll             float64
	Other            float64
	OtherDescription string
	Totals           Totals
}

type ItemRow struct {
	ID               string
	OrderID          string
	CatalogRef       string
	Description      string
	Quantity         float64
	UnitPrice        float64
	EstimatedMinutes int
	SortOrder        int
	LineTotal        float64
	ItemCost         float64
	ItemProfit       float64
	ItemMargin       float64
}

type MaterialRow struct {
	ID            string
	ItemID        string
	MaterialRef   string
	Name          string
	Unit          string
	Quantity      float64
	UnitCost      float64
	UnitSalePrice float64
	SortOrder     int
	TotalCost     float64
	TotalSale     float64
}

type LaborRow struct {
	ID         string
	ItemID     string
	StaffRef   string
	Name       string
	Minutes    int
	HourlyRate float64
	SortOrder  int
	TotalCost  float64
}

// RowSet is an order flattened into the shape of the persistence layer.
type RowSet struct {
	Order     OrderRow
	Items     []ItemRow
	Materials []MaterialRow
	Labor     []LaborRow
}

// Flatten converts the order tree into row sets. Unsaved rows keep their
// NewIDPrefix ids; the store decides between insert and update by id.
func Flatten(o *Order) RowSet {
	d := o.Discount()
	e := o.Expenses()
	rs := RowSet{
		Order: OrderRow{
			ID:               o.ID,
			Number:           o.Header.Number,
			ClientName:       o.Header.ClientName,
			Title:            o.Header.Title,
			Notes:            o.Header.Notes,
			ScheduledFor:     o.Header.ScheduledFor,
			DiscountMode:     string(d.Mode()),
			DiscountPercent:  d.Percent(),
			DiscountAbsolute: d.Absolute(),
			Travel:           e.Travel,
			Parking:          e.Parking,
			Toll:             e.Toll,
			Other:            e.Other,
			OtherDescription: e.OtherDescription,
			Totals:           o.Totals().Rounded(),
		},
	}

	for i, it := range o.Items() {
		rs.Items = append(rs.Items, ItemRow{
			ID:               it.ID,
			OrderID:          o.ID,
			CatalogRef:       it.CatalogRef,
			Description:      it.Description,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			EstimatedMinutes: it.EstimatedMinutes,
			SortOrder:        i,
			LineTotal:        Round2(it.LineTotal()),
			ItemCost:         Round2(it.ItemCost()),
			ItemProfit:       Round2(it.ItemProfit()),
			ItemMargin:       Round2(it.ItemMargin()),
		})
		for j, m := range it.Materials {
			rs.Materials = append(rs.Materials, MaterialRow{
				ID:            m.ID,
				ItemID:        it.ID,
				MaterialRef:   m.MaterialRef,
				Name:          m.Name,
				Unit:          m.Unit,
				Quantity:      m.Quantity,
				UnitCost:      m.UnitCost,
				UnitSalePrice: m.UnitSalePrice,
				SortOrder:     j,
				TotalCost:     Round2(m.TotalCost()),
				TotalSale:     Round2(m.TotalSale()),
			})
		}
		for j, l := range it.Labor {
			rs.Labor = append(rs.Labor, LaborRow{
				ID:         l.ID,
				ItemID:     it.ID,
				StaffRef:   l.StaffRef,
				Name:       l.Name,
				Minutes:    l.Minutes,
				HourlyRate: l.HourlyRate,
				SortOrder:  j,
				TotalCost:  Round2(l.TotalCost()),
			})
		}
	}
	return rs
}

var finite = validation.By(func(value any) error {
	if f, ok := value.(float64); ok && !inRange(f) {
		return errors.New("must be a finite number within the accepted range")
	}
	return nil
})

func (r OrderRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.DiscountMode, validation.In(string(DiscountPercent), string(DiscountAbsolute))),
		validation.Field(&r.DiscountPercent, finite, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&r.DiscountAbsolute, finite, validation.Min(0.0)),
		validation.Field(&r.Travel, finite, validation.Min(0.0)),
		validation.Field(&r.Parking, finite, validation.Min(0.0)),
		validation.Field(&r.Toll, finite, validation.Min(0.0)),
		validation.Field(&r.Other, finite, validation.Min(0.0)),
	)
}

func (r ItemRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, finite, validation.Min(1.0)),
		validation.Field(&r.UnitPrice, finite, validation.Min(0.0)),
		validation.Field(&r.EstimatedMinutes, validation.Min(0)),
	)
}

func (r MaterialRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.ItemID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, finite, validation.Min(0.0).Exclusive()),
		validation.Field(&r.UnitCost, finite, validation.Min(0.0)),
		validation.Field(&r.UnitSalePrice, finite, validation.Min(0.0)),
	)
}

func (r LaborRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.ItemID, validation.Required),
		validation.Field(&r.Minutes, validation.Required, validation.Min(1)),
		validation.Field(&r.HourlyRate, finite, validation.Min(0.0)),
	)
}

// Assemble rebuilds an order tree from row sets. It fails closed: an invalid
// row, a duplicate id or a line whose item is not in the set rejects the
// whole payload. Stored totals are ignored and the cascade is rerun.
func Assemble(rs RowSet, policy DeductionPolicy) (*Order, error) {
	if err := rs.Order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: order: %v", ErrInvalidPayload, err)
	}

	o := NewOrder(rs.Order.ID, policy)
	o.Header = OrderHeader{
		Number:       rs.Order.Number,
		ClientName:   rs.Order.ClientName,
		Title:        rs.Order.Title,
		Notes:        rs.Order.Notes,
		ScheduledFor: rs.Order.ScheduledFor,
	}
	if err := o.discount.Set(DiscountMode(rs.Order.DiscountMode), discountValue(rs.Order)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	o.expenses = AdditionalExpenses{
		Travel:           rs.Order.Travel,
		Parking:          rs.Order.Parking,
		Toll:             rs.Order.Toll,
		Other:            rs.Order.Other,
		OtherDescription: rs.Order.OtherDescription,
	}

	seen := make(map[string]bool)
	claim := func(kind, id string) error {
		if seen[id] {
			return fmt.Errorf("%w: duplicate %s id %s", ErrInvalidPayload, kind, id)
		}
		seen[id] = true
		return nil
	}

	items := append([]ItemRow(nil), rs.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

	byID := make(map[string]*ServiceItem, len(items))
	for _, r := range items {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: item %s: %v", ErrInvalidPayload, r.ID, err)
		}
		if r.OrderID != "" && r.OrderID != rs.Order.ID {
			return nil, fmt.Errorf("%w: item %s belongs to order %s", ErrInvalidPayload, r.ID, r.OrderID)
		}
		if err := claim("item", r.ID); err != nil {
			return nil, err
		}
		it := &ServiceItem{
			ID:               r.ID,
			CatalogRef:       r.CatalogRef,
			Description:      r.Description,
			Quantity:         r.Quantity,
			UnitPrice:        r.UnitPrice,
			EstimatedMinutes: r.EstimatedMinutes,
		}
		byID[r.ID] = it
		o.items = append(o.items, it)
	}

	materials := append([]MaterialRow(nil), rs.Materials...)
	sort.SliceStable(materials, func(i, j int) bool { return materials[i].SortOrder < materials[j].SortOrder })
	for _, r := range materials {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: material %s: %v", ErrInvalidPayload, r.ID, err)
		}
		it, ok := byID[r.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: material %s references unknown item %s", ErrInvalidPayload, r.ID, r.ItemID)
		}
		if err := claim("material", r.ID); err != nil {
			return nil, err
		}
		it.Materials = append(it.Materials, &MaterialLine{
			ID:            r.ID,
			MaterialRef:   r.MaterialRef,
			Name:          r.Name,
			Unit:          r.Unit,
			Quantity:      r.Quantity,
			UnitCost:      r.UnitCost,
			UnitSalePrice: r.UnitSalePrice,
		})
	}

	labor := append([]LaborRow(nil), rs.Labor...)
	sort.SliceStable(labor, func(i, j int) bool { return labor[i].SortOrder < labor[j].SortOrder })
	for _, r := range labor {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: labor %s: %v", ErrInvalidPayload, r.ID, err)
		}
		it, ok := byID[r.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: labor %s references unknown item %s", ErrInvalidPayload, r.ID, r.ItemID)
		}
		if err := claim("labor", r.ID); err != nil {
			return nil, err
		}
		it.Labor = append(it.Labor, &LaborLine{
			ID:         r.ID,
			StaffRef:   r.StaffRef,
			Name:       r.Name,
			Minutes:    r.Minutes,
			HourlyRate: r.HourlyRate,
		})
	}

	o.Recompute()
	return o, nil
}

// discountValue picks the value of the stored mode. Rows written before the
// exclusive discount carry both values; the mode wins.
func discountValue(r OrderRow) float64 {
	if DiscountMode(r.DiscountMode) == DiscountAbsolute {
		return r.DiscountAbsolute
	}
	return r.DiscountPercent
}
