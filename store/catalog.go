package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"serviceorders/services"
)

// Catalog implements services.Catalog over the catalog collections.
type Catalog struct {
	app core.App
}

func NewCatalog(app core.App) *Catalog {
	return &Catalog{app: app}
}

var _ services.Catalog = (*Catalog)(nil)

func (c *Catalog) find(collection, id string) (*core.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", collection, services.ErrCatalogMiss)
	}
	rec, err := c.app.FindRecordById(collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", collection, id, services.ErrCatalogMiss)
		}
		return nil, fmt.Errorf("catalog: %s %s: %w", collection, id, err)
	}
	return rec, nil
}

// FindService resolves a service together with its bill of materials.
func (c *Catalog) FindService(id string) (services.CatalogService, error) {
	rec, err := c.find("catalog_services", id)
	if err != nil {
		return services.CatalogService{}, err
	}
	svc := serviceFromRecord(rec)

	bom, err := c.app.FindRecordsByFilter("catalog_service_materials", "service = {:id}", "sort_order", 0, 0,
		map[string]any{"id": rec.Id})
	if err != nil {
		return services.CatalogService{}, fmt.Errorf("catalog: bill of materials of %s: %w", id, err)
	}
	for _, b := range bom {
		m, err := c.FindMaterial(b.GetString("material"))
		if err != nil {
			return services.CatalogService{}, err
		}
		svc.Materials = append(svc.Materials, services.BOMEntry{Material: m, Quantity: b.GetFloat("quantity")})
	}
	return svc, nil
}

func (c *Catalog) FindMaterial(id string) (services.CatalogMaterial, error) {
	rec, err := c.find("catalog_materials", id)
	if err != nil {
		return services.CatalogMaterial{}, err
	}
	return materialFromRecord(rec), nil
}

func (c *Catalog) FindStaff(id string) (services.StaffRecord, error) {
	rec, err := c.find("staff", id)
	if err != nil {
		return services.StaffRecord{}, err
	}
	return staffFromRecord(rec), nil
}

// ListServices returns active services by name for the item picker. The bill
// of materials is not loaded.
func (c *Catalog) ListServices() ([]services.CatalogService, error) {
	recs, err := c.active("catalog_services")
	if err != nil {
		return nil, err
	}
	out := make([]services.CatalogService, 0, len(recs))
	for _, r := range recs {
		out = append(out, serviceFromRecord(r))
	}
	return out, nil
}

func (c *Catalog) ListMaterials() ([]services.CatalogMaterial, error) {
	recs, err := c.active("catalog_materials")
	if err != nil {
		return nil, err
	}
	out := make([]services.CatalogMaterial, 0, len(recs))
	for _, r := range recs {
		out = append(out, materialFromRecord(r))
	}
	return out, nil
}

func (c *Catalog) ListStaff() ([]services.StaffRecord, error) {
	recs, err := c.active("staff")
	if err != nil {
		return nil, err
	}
	out := make([]services.StaffRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, staffFromRecord(r))
	}
	return out, nil
}

func (c *Catalog) active(collection string) ([]*core.Record, error) {
	recs, err := c.app.FindRecordsByFilter(collection, "active = true", "name", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: list %s: %w", collection, err)
	}
	return recs, nil
}

func serviceFromRecord(r *core.Record) services.CatalogService {
	return services.CatalogService{
		ID:               r.Id,
		Name:             r.GetString("name"),
		UnitPrice:        r.GetFloat("unit_price"),
		EstimatedMinutes: r.GetInt("estimated_minutes"),
	}
}

func materialFromRecord(r *core.Record) services.CatalogMaterial {
	return services.CatalogMaterial{
		ID:            r.Id,
		Name:          r.GetString("name"),
		Unit:          r.GetString("unit"),
		UnitCost:      r.GetFloat("unit_cost"),
		UnitSalePrice: r.GetFloat("unit_sale_price"),
	}
}

func staffFromRecord(r *core.Record) services.StaffRecord {
	return services.StaffRecord{
		ID:         r.Id,
		Name:       r.GetString("name"),
		HourlyRate: r.GetFloat("hourly_rate"),
	}
}
