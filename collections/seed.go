package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	key           string
	name          string
	unit          string
	unitCost      float64
	unitSalePrice float64
}

type staffDef struct {
	name       string
	hourlyRate float64
}

type bomDef struct {
	materialKey string
	quantity    float64
}

type serviceDef struct {
	name             string
	unitPrice        float64
	estimatedMinutes int
	materials        []bomDef
}

var seedMaterials = []materialDef{
	{"cable25", "Cabo flexível 2,5mm²", "m", 2.9, 4.5},
	{"cable4", "Cabo flexível 4mm²", "m", 4.6, 7.2},
	{"outlet", "Tomada 2P+T 10A", "un", 9.8, 18},
	{"switch", "Interruptor simples", "un", 7.5, 14},
	{"breaker20", "Disjuntor DIN 20A", "un", 18.4, 32},
	{"conduit", "Eletroduto corrugado 3/4\"", "m", 1.7, 3.2},
	{"tape", "Fita isolante 20m", "rolo", 6.2, 11},
	{"gas", "Gás refrigerante R410A", "kg", 68, 120},
	{"copper", "Tubo de cobre 1/4\"", "m", 24, 42},
}

var seedStaff = []staffDef{
	{"Carlos Souza", 55},
	{"Mariana Lima", 65},
	{"Ajudante geral", 28},
}

var seedServices = []serviceDef{
	{
		name:             "Instalação de tomada",
		unitPrice:        120,
		estimatedMinutes: 45,
		materials: []bomDef{
			{"cable25", 6},
			{"outlet", 1},
			{"conduit", 4},
			{"tape", 0.2},
		},
	},
	{
		name:             "Troca de disjuntor",
		unitPrice:        150,
		estimatedMinutes: 30,
		materials: []bomDef{
			{"breaker20", 1},
			{"cable4", 1.5},
		},
	},
	{
		name:             "Instalação de interruptor",
		unitPrice:        95,
		estimatedMinutes: 30,
		materials: []bomDef{
			{"switch", 1},
			{"cable25", 4},
		},
	},
	{
		name:             "Carga de gás em split",
		unitPrice:        380,
		estimatedMinutes: 90,
		materials: []bomDef{
			{"gas", 0.8},
		},
	},
	{
		name:             "Visita técnica",
		unitPrice:        90,
		estimatedMinutes: 60,
	},
}

// Seed populates the catalog, staff and service templates. It is safe to
// call on every startup because it returns early if any catalog material
// already exists.
func Seed(app core.App) error {
	log := zap.L().Named("seed")

	materialsCol, err := app.FindCollectionByNameOrId("catalog_materials")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_materials collection: %w", err)
	}
	existing, err := app.FindAllRecords(materialsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_materials: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Info("seed: catalog is empty, inserting seed data")

	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("seed: could not find staff collection: %w", err)
	}
	servicesCol, err := app.FindCollectionByNameOrId("catalog_services")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_services collection: %w", err)
	}
	bomCol, err := app.FindCollectionByNameOrId("catalog_service_materials")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_service_materials collection: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		materialIDs := make(map[string]string, len(seedMaterials))
		for _, d := range seedMaterials {
			r := core.NewRecord(materialsCol)
			r.Set("name", d.name)
			r.Set("unit", d.unit)
			r.Set("unit_cost", d.unitCost)
			r.Set("unit_sale_price", d.unitSalePrice)
			r.Set("active", true)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: material %q: %w", d.name, err)
			}
			materialIDs[d.key] = r.Id
		}

		for _, d := range seedStaff {
			r := core.NewRecord(staffCol)
			r.Set("name", d.name)
			r.Set("hourly_rate", d.hourlyRate)
			r.Set("active", true)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: staff %q: %w", d.name, err)
			}
		}

		for _, d := range seedServices {
			svc := core.NewRecord(servicesCol)
			svc.Set("name", d.name)
			svc.Set("unit_price", d.unitPrice)
			svc.Set("estimated_minutes", d.estimatedMinutes)
			svc.Set("active", true)
			if err := txApp.Save(svc); err != nil {
				return fmt.Errorf("seed: service %q: %w", d.name, err)
			}

			for i, b := range d.materials {
				materialID, ok := materialIDs[b.materialKey]
				if !ok {
					return fmt.Errorf("seed: service %q references unknown material %q", d.name, b.materialKey)
				}
				r := core.NewRecord(bomCol)
				r.Set("service", svc.Id)
				r.Set("material", materialID)
				r.Set("quantity", b.quantity)
				r.Set("sort_order", i)
				if err := txApp.Save(r); err != nil {
					return fmt.Errorf("seed: bill of materials for %q: %w", d.name, err)
				}
			}
		}

		log.Info("seed: catalog inserted",
			zap.Int("materials", len(seedMaterials)),
			zap.Int("staff", len(seedStaff)),
			zap.Int("services", len(seedServices)),
		)
		return nil
	})
}
