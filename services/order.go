package services

import "fmt"

// HeaderField names one of the informational order header fields.
type HeaderField string

const (
	HeaderClientName   HeaderField = "client_name"
	HeaderTitle        HeaderField = "title"
	HeaderNotes        HeaderField = "notes"
	HeaderScheduledFor HeaderField = "scheduled_for"
)

// OrderHeader is informational data shown on the order and its documents.
// It never feeds the totals.
type OrderHeader struct {
	Number       string `json:"number"`
	ClientName   string `json:"clientName"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	ScheduledFor string `json:"scheduledFor"`
}

// Order owns the item tree of one service order for the length of an editing
// session. Every mutating method runs the cascade (line, item, totals) before
// it returns; a rejected mutation changes nothing.
type Order struct {
	ID     string
	Header OrderHeader

	items    []*ServiceItem
	discount Discount
	expenses AdditionalExpenses
	policy   DeductionPolicy
	totals   Totals
}

func NewOrder(id string, policy DeductionPolicy) *Order {
	if id == "" {
		id = NewLineID()
	}
	o := &Order{ID: id, policy: policy}
	o.recomputeTotals()
	return o
}

// Items returns the order's items. Callers must not mutate them directly.
func (o *Order) Items() []*ServiceItem        { return o.items }
func (o *Order) Discount() Discount           { return o.discount }
func (o *Order) Expenses() AdditionalExpenses { return o.expenses }
func (o *Order) Policy() DeductionPolicy      { return o.policy }
func (o *Order) Totals() Totals               { return o.totals }

// Item returns the item with the given id.
func (o *Order) Item(id string) (*ServiceItem, error) {
	for _, it := range o.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, fmt.Errorf("item %s: %w", id, ErrItemNotFound)
}

func (o *Order) AddItem() *ServiceItem {
	it := NewServiceItem()
	o.items = append(o.items, it)
	o.recomputeTotals()
	return it
}

func (o *Order) RemoveItem(id string) error {
	for i, it := range o.items {
		if it.ID == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.recomputeTotals()
			return nil
		}
	}
	return fmt.Errorf("item %s: %w", id, ErrItemNotFound)
}

func (o *Order) SetItemField(itemID string, field ItemField, value any) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err := it.SetField(field, value); err != nil {
		return err
	}
	o.recomputeTotals()
	return nil
}

// ApplyCatalogService resolves serviceID and applies it to the item. On a
// catalog miss the item is left untouched.
func (o *Order) ApplyCatalogService(itemID, serviceID string, catalog Catalog) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	svc, err := catalog.FindService(serviceID)
	if err != nil {
		return err
	}
	it.ApplyCatalogService(svc)
	o.recomputeTotals()
	return nil
}

func (o *Order) AddMaterial(itemID, materialRef string) (*MaterialLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	line := it.AddMaterial(materialRef)
	o.recomputeTotals()
	return line, nil
}

// AddCatalogMaterial appends a line filled from the catalog entry. Nothing
// is added when the item or the material cannot be found.
func (o *Order) AddCatalogMaterial(itemID, materialID string, catalog Catalog) (*MaterialLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	m, err := catalog.FindMaterial(materialID)
	if err != nil {
		return nil, err
	}
	line := it.AddMaterial(m.ID)
	line.ApplyCatalogSelection(m)
	o.cascade(it)
	return line, nil
}

func (o *Order) RemoveMaterial(itemID, lineID string) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err := it.RemoveMaterial(lineID); err != nil {
		return err
	}
	o.recomputeTotals()
	return nil
}

func (o *Order) SetMaterialField(itemID, lineID string, field MaterialField, value any) error {
	it, line, err := o.material(itemID, lineID)
	if err != nil {
		return err
	}
	if err := line.SetField(field, value); err != nil {
		return err
	}
	o.cascade(it)
	return nil
}

// ApplyMaterialSelection resolves materialID and copies it into the line,
// keeping the line's quantity.
func (o *Order) ApplyMaterialSelection(itemID, lineID, materialID string, catalog Catalog) error {
	it, line, err := o.material(itemID, lineID)
	if err != nil {
		return err
	}
	m, err := catalog.FindMaterial(materialID)
	if err != nil {
		return err
	}
	line.ApplyCatalogSelection(m)
	o.cascade(it)
	return nil
}

func (o *Order) AddLabor(itemID, staffRef string) (*LaborLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	line := it.AddLabor(staffRef)
	o.recomputeTotals()
	return line, nil
}

// AddStaffLabor appends a labor line priced from the staff record.
func (o *Order) AddStaffLabor(itemID, staffID string, catalog Catalog) (*LaborLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	st, err := catalog.FindStaff(staffID)
	if err != nil {
		return nil, err
	}
	line := it.AddLabor(st.ID)
	line.ApplyStaffSelection(st)
	o.cascade(it)
	return line, nil
}

func (o *Order) RemoveLabor(itemID, lineID string) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err := it.RemoveLabor(lineID); err != nil {
		return err
	}
	o.recomputeTotals()
	return nil
}

func (o *Order) SetLaborField(itemID, lineID string, field LaborField, value any) error {
	it, line, err := o.labor(itemID, lineID)
	if err != nil {
		return err
	}
	if err := line.SetField(field, value); err != nil {
		return err
	}
	o.cascade(it)
	return nil
}

// ApplyStaffSelection resolves staffID and copies name and rate into the
// line, keeping its minutes.
func (o *Order) ApplyStaffSelection(itemID, lineID, staffID string, catalog Catalog) error {
	it, line, err := o.labor(itemID, lineID)
	if err != nil {
		return err
	}
	s, err := catalog.FindStaff(staffID)
	if err != nil {
		return err
	}
	line.ApplyStaffSelection(s)
	o.cascade(it)
	return nil
}

func (o *Order) SetDiscountPercent(v any) error {
	f, err := parseAmount(v)
	if err != nil {
		return fmt.Errorf("discount percent: %w", err)
	}
	if err := o.discount.SetPercent(f); err != nil {
		return err
	}
	o.recomputeTotals()
	return nil
}

func (o *Order) SetDiscountAbsolute(v any) error {
	f, err := parseAmount(v)
	if err != nil {
		return fmt.Errorf("discount absolute: %w", err)
	}
	if err := o.discount.SetAbsolute(f); err != nil {
		return err
	}
	o.recomputeTotals()
	return nil
}

func (o *Order) SetExpense(field ExpenseField, value any) error {
	next := o.expenses
	if err := next.SetField(field, value); err != nil {
		return err
	}
	o.expenses = next
	o.recomputeTotals()
	return nil
}

func (o *Order) SetHeaderField(field HeaderField, value any) error {
	s, err := parseText(value)
	if err != nil {
		return fmt.Errorf("header %s: %w", field, err)
	}
	switch field {
	case HeaderClientName:
		o.Header.ClientName = s
	case HeaderTitle:
		o.Header.Title = s
	case HeaderNotes:
		o.Header.Notes = s
	case HeaderScheduledFor:
		o.Header.ScheduledFor = s
	default:
		return fmt.Errorf("header %q: %w", field, ErrUnknownField)
	}
	return nil
}

// SetPolicy switches the deduction policy and recomputes the totals.
func (o *Order) SetPolicy(p DeductionPolicy) {
	o.policy = p
	o.recomputeTotals()
}

// Recompute runs the full cascade over every line. Use it after building an
// order from stored or restored data.
func (o *Order) Recompute() {
	for _, it := range o.items {
		it.recomputeAll()
	}
	o.recomputeTotals()
}

// Clone returns a deep copy. Autosave and document generation work on clones
// so they never observe or cause a partial edit.
func (o *Order) Clone() *Order {
	c := *o
	c.items = make([]*ServiceItem, len(o.items))
	for i, it := range o.items {
		c.items[i] = it.Clone()
	}
	return &c
}

// ReassignIDs renames the order, items and lines after a save assigned
// persistent ids. Ids missing from the map are kept.
func (o *Order) ReassignIDs(ids map[string]string) {
	rename := func(id string) string {
		if next, ok := ids[id]; ok && next != "" {
			return next
		}
		return id
	}
	o.ID = rename(o.ID)
	for _, it := range o.items {
		it.ID = rename(it.ID)
		for _, m := range it.Materials {
			m.ID = rename(m.ID)
		}
		for _, l := range it.Labor {
			l.ID = rename(l.ID)
		}
	}
}

func (o *Order) cascade(it *ServiceItem) {
	it.Recompute()
	o.recomputeTotals()
}

func (o *Order) recomputeTotals() {
	o.totals = RecomputeTotals(o.items, o.discount, o.expenses, o.policy)
}

func (o *Order) material(itemID, lineID string) (*ServiceItem, *MaterialLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, nil, err
	}
	line, err := it.FindMaterial(lineID)
	if err != nil {
		return nil, nil, err
	}
	return it, line, nil
}

func (o *Order) labor(itemID, lineID string) (*ServiceItem, *LaborLine, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return nil, nil, err
	}
	line, err := it.FindLabor(lineID)
	if err != nil {
		return nil, nil, err
	}
	return it, line, nil
}
