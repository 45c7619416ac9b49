package services

import "fmt"

// ItemField names a stored, user-editable field of a ServiceItem.
type ItemField string

const (
	ItemDescription      ItemField = "description"
	ItemQuantity         ItemField = "quantity"
	ItemUnitPrice        ItemField = "unit_price"
	ItemEstimatedMinutes ItemField = "estimated_minutes"
)

// ServiceItem is one billable line of an order. It owns its material and
// labor lines; no line is shared between items.
type ServiceItem struct {
	ID               string
	CatalogRef       string
	Description      string
	Quantity         float64
	UnitPrice        float64
	EstimatedMinutes int
	Materials        []*MaterialLine
	Labor            []*LaborLine

	lineTotal    float64
	materialCost float64
	laborCost    float64
	itemCost     float64
	itemProfit   float64
	itemMargin   float64
}

func NewServiceItem() *ServiceItem {
	it := &ServiceItem{
		ID:       NewLineID(),
		Quantity: 1,
	}
	it.Recompute()
	return it
}

// ApplyCatalogService copies description, price and duration from the catalog
// entry, replaces the materials with fresh lines built from its bill of
// materials and clears the labor lines.
func (it *ServiceItem) ApplyCatalogService(svc CatalogService) {
	it.CatalogRef = svc.ID
	it.Description = svc.Name
	it.UnitPrice = svc.UnitPrice
	it.EstimatedMinutes = svc.EstimatedMinutes

	materials := make([]*MaterialLine, 0, len(svc.Materials))
	for _, bom := range svc.Materials {
		line := NewMaterialLine(bom.Material.ID)
		line.ApplyCatalogSelection(bom.Material)
		if bom.Quantity > 0 {
			line.Quantity = bom.Quantity
		}
		line.Recompute()
		materials = append(materials, line)
	}
	it.Materials = materials
	it.Labor = nil
	it.Recompute()
}

// SetField updates one stored field and recomputes the item aggregates.
func (it *ServiceItem) SetField(field ItemField, value any) error {
	switch field {
	case ItemDescription:
		s, err := parseText(value)
		if err != nil {
			return fmt.Errorf("item description: %w", err)
		}
		it.Description = s
	case ItemQuantity:
		v, err := parseAmount(value)
		if err != nil {
			return fmt.Errorf("item quantity: %w", err)
		}
		if v < 1 {
			return fmt.Errorf("item quantity: %w: %v is below 1", ErrInvalidValue, v)
		}
		it.Quantity = v
	case ItemUnitPrice:
		v, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("item unit price: %w", err)
		}
		it.UnitPrice = v
	case ItemEstimatedMinutes:
		v, err := parseWholeNumber(value, 0)
		if err != nil {
			return fmt.Errorf("item estimated minutes: %w", err)
		}
		it.EstimatedMinutes = v
	default:
		return fmt.Errorf("item %q: %w", field, ErrUnknownField)
	}
	it.Recompute()
	return nil
}

func (it *ServiceItem) AddMaterial(materialRef string) *MaterialLine {
	line := NewMaterialLine(materialRef)
	it.Materials = append(it.Materials, line)
	it.Recompute()
	return line
}

func (it *ServiceItem) RemoveMaterial(id string) error {
	for i, m := range it.Materials {
		if m.ID == id {
			it.Materials = append(it.Materials[:i], it.Materials[i+1:]...)
			it.Recompute()
			return nil
		}
	}
	return fmt.Errorf("material %s: %w", id, ErrLineNotFound)
}

func (it *ServiceItem) AddLabor(staffRef string) *LaborLine {
	line := NewLaborLine(staffRef)
	it.Labor = append(it.Labor, line)
	it.Recompute()
	return line
}

func (it *ServiceItem) RemoveLabor(id string) error {
	for i, l := range it.Labor {
		if l.ID == id {
			it.Labor = append(it.Labor[:i], it.Labor[i+1:]...)
			it.Recompute()
			return nil
		}
	}
	return fmt.Errorf("labor %s: %w", id, ErrLineNotFound)
}

// FindMaterial returns the material line with the given id.
func (it *ServiceItem) FindMaterial(id string) (*MaterialLine, error) {
	for _, m := range it.Materials {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("material %s: %w", id, ErrLineNotFound)
}

// FindLabor returns the labor line with the given id.
func (it *ServiceItem) FindLabor(id string) (*LaborLine, error) {
	for _, l := range it.Labor {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("labor %s: %w", id, ErrLineNotFound)
}

// Recompute derives the item aggregates from the current line totals.
// Calling it twice yields the same values.
func (it *ServiceItem) Recompute() {
	it.lineTotal = it.Quantity * it.UnitPrice

	var materialCost, laborCost float64
	for _, m := range it.Materials {
		materialCost += m.TotalCost()
	}
	for _, l := range it.Labor {
		laborCost += l.TotalCost()
	}
	it.materialCost = materialCost
	it.laborCost = laborCost
	it.itemCost = materialCost + laborCost
	it.itemProfit = it.lineTotal - it.itemCost
	it.itemMargin = Percent(it.itemProfit, it.lineTotal)
}

// recomputeAll runs the cascade from every line up to the item.
func (it *ServiceItem) recomputeAll() {
	for _, m := range it.Materials {
		m.Recompute()
	}
	for _, l := range it.Labor {
		l.Recompute()
	}
	it.Recompute()
}

func (it *ServiceItem) LineTotal() float64    { return it.lineTotal }
func (it *ServiceItem) MaterialCost() float64 { return it.materialCost }
func (it *ServiceItem) LaborCost() float64    { return it.laborCost }
func (it *ServiceItem) ItemCost() float64     { return it.itemCost }
func (it *ServiceItem) ItemProfit() float64   { return it.itemProfit }
func (it *ServiceItem) ItemMargin() float64   { return it.itemMargin }

// Clone returns a deep copy that shares nothing with the receiver.
func (it *ServiceItem) Clone() *ServiceItem {
	c := *it
	c.Materials = make([]*MaterialLine, len(it.Materials))
	for i, m := range it.Materials {
		c.Materials[i] = m.clone()
	}
	c.Labor = make([]*LaborLine, len(it.Labor))
	for i, l := range it.Labor {
		c.Labor[i] = l.clone()
	}
	return &c
}
