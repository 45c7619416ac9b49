package services

// CatalogMaterial is a read-only material entry from the catalog.
type CatalogMaterial struct {
	ID            string
	Name          string
	Unit          string
	UnitCost      float64
	UnitSalePrice float64
}

// StaffRecord is a read-only staff entry used to price labor.
type StaffRecord struct {
	ID         string
	Name       string
	HourlyRate float64
}

// BOMEntry is one bill-of-materials line of a catalog service.
type BOMEntry struct {
	Material CatalogMaterial
	Quantity float64
}

// CatalogService is a read-only service entry. Materials is the template
// copied into an item when the service is applied.
type CatalogService struct {
	ID               string
	Name             string
	UnitPrice        float64
	EstimatedMinutes int
	Materials        []BOMEntry
}

// Catalog resolves catalog selections. Implementations return an error
// wrapping ErrCatalogMiss when the id does not resolve.
type Catalog interface {
	FindService(id string) (CatalogService, error)
	FindMaterial(id string) (CatalogMaterial, error)
	FindStaff(id string) (StaffRecord, error)
}
