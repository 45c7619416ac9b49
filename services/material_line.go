package services

import "fmt"

// MaterialField names a stored, user-editable field of a MaterialLine.
type MaterialField string

const (
	MaterialName          MaterialField = "name"
	MaterialQuantity      MaterialField = "quantity"
	MaterialUnitCost      MaterialField = "unit_cost"
	MaterialUnitSalePrice MaterialField = "unit_sale_price"
	MaterialUnit          MaterialField = "unit"
)

// MaterialLine is a material consumed by a service item. Edit it through
// SetField or ApplyCatalogSelection so the derived totals stay current.
type MaterialLine struct {
	ID            string
	MaterialRef   string
	Name          string
	Quantity      float64
	UnitCost      float64
	UnitSalePrice float64
	Unit          string

	totalCost float64
	totalSale float64
	profit    float64
}

// NewMaterialLine returns a line with quantity 1 and zero prices.
func NewMaterialLine(materialRef string) *MaterialLine {
	l := &MaterialLine{
		ID:          NewLineID(),
		MaterialRef: materialRef,
		Quantity:    1,
	}
	l.Recompute()
	return l
}

// ApplyCatalogSelection copies name, unit and prices from the catalog entry.
// The line keeps its id and quantity.
func (l *MaterialLine) ApplyCatalogSelection(m CatalogMaterial) {
	l.MaterialRef = m.ID
	l.Name = m.Name
	l.Unit = m.Unit
	l.UnitCost = m.UnitCost
	l.UnitSalePrice = m.UnitSalePrice
	l.Recompute()
}

// SetField updates one stored field and recomputes the line. Rejected input
// leaves the line unchanged.
func (l *MaterialLine) SetField(field MaterialField, value any) error {
	switch field {
	case MaterialName, MaterialUnit:
		s, err := parseText(value)
		if err != nil {
			return fmt.Errorf("material %s: %w", field, err)
		}
		if field == MaterialName {
			l.Name = s
		} else {
			l.Unit = s
		}
	case MaterialQuantity:
		v, err := parsePositive(value)
		if err != nil {
			return fmt.Errorf("material quantity: %w", err)
		}
		l.Quantity = v
	case MaterialUnitCost:
		v, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("material unit cost: %w", err)
		}
		l.UnitCost = v
	case MaterialUnitSalePrice:
		v, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("material unit sale price: %w", err)
		}
		l.UnitSalePrice = v
	default:
		return fmt.Errorf("material %q: %w", field, ErrUnknownField)
	}
	l.Recompute()
	return nil
}

// Recompute derives totals from the stored fields. Profit may be negative.
func (l *MaterialLine) Recompute() {
	l.totalCost = l.Quantity * l.UnitCost
	l.totalSale = l.Quantity * l.UnitSalePrice
	l.profit = l.totalSale - l.totalCost
}

func (l *MaterialLine) TotalCost() float64 { return l.totalCost }
func (l *MaterialLine) TotalSale() float64 { return l.totalSale }
func (l *MaterialLine) Profit() float64    { return l.profit }

func (l *MaterialLine) clone() *MaterialLine {
	c := *l
	return &c
}
