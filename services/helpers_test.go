package services

import (
	"bytes"
	"fmt"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// fakeCatalog is an in-memory Catalog for engine tests.
type fakeCatalog struct {
	services  map[string]CatalogService
	materials map[string]CatalogMaterial
	staff     map[string]StaffRecord
}

func (c fakeCatalog) FindService(id string) (CatalogService, error) {
	if s, ok := c.services[id]; ok {
		return s, nil
	}
	return CatalogService{}, fmt.Errorf("service %s: %w", id, ErrCatalogMiss)
}

func (c fakeCatalog) FindMaterial(id string) (CatalogMaterial, error) {
	if m, ok := c.materials[id]; ok {
		return m, nil
	}
	return CatalogMaterial{}, fmt.Errorf("material %s: %w", id, ErrCatalogMiss)
}

func (c fakeCatalog) FindStaff(id string) (StaffRecord, error) {
	if s, ok := c.staff[id]; ok {
		return s, nil
	}
	return StaffRecord{}, fmt.Errorf("staff %s: %w", id, ErrCatalogMiss)
}

var (
	cable = CatalogMaterial{ID: "mat_cable", Name: "Cable 2.5mm", Unit: "m", UnitCost: 2.5, UnitSalePrice: 4}
	plug  = CatalogMaterial{ID: "mat_plug", Name: "Plug", Unit: "un", UnitCost: 8, UnitSalePrice: 15}

	testCatalog = fakeCatalog{
		services: map[string]CatalogService{
			"svc_outlet": {
				ID:               "svc_outlet",
				Name:             "Install outlet",
				UnitPrice:        120,
				EstimatedMinutes: 45,
				Materials: []BOMEntry{
					{Material: cable, Quantity: 5},
					{Material: plug, Quantity: 1},
				},
			},
		},
		materials: map[string]CatalogMaterial{cable.ID: cable, plug.ID: plug},
		staff: map[string]StaffRecord{
			"staff_ana": {ID: "staff_ana", Name: "Ana", HourlyRate: 50},
		},
	}
)

// orderWithItem returns an order holding one item priced qty x unitPrice.
func orderWithItem(qty, unitPrice float64) (*Order, *ServiceItem) {
	o := NewOrder("", DeductionsCountAsCost)
	it := o.AddItem()
	if err := o.SetItemField(it.ID, ItemQuantity, qty); err != nil {
		panic(err)
	}
	if err := o.SetItemField(it.ID, ItemUnitPrice, unitPrice); err != nil {
		panic(err)
	}
	return o, it
}
