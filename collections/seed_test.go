package collections_test

import (
	"testing"

	"serviceorders/collections"
	"serviceorders/testhelpers"
)

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	counts := map[string]int{
		"catalog_materials": 9,
		"staff":             3,
		"catalog_services":  5,
	}
	for name, want := range counts {
		col, _ := app.FindCollectionByNameOrId(name)
		records, err := app.FindAllRecords(col)
		if err != nil {
			t.Fatalf("query %s error: %v", name, err)
		}
		if len(records) != want {
			t.Errorf("%s: expected %d records, got %d", name, want, len(records))
		}
	}

	// The outlet service carries four bill-of-materials lines.
	svc, err := app.FindFirstRecordByData("catalog_services", "name", "Instalação de tomada")
	if err != nil {
		t.Fatalf("outlet service not seeded: %v", err)
	}
	bom, err := app.FindRecordsByFilter("catalog_service_materials", "service = {:id}", "sort_order", 0, 0,
		map[string]any{"id": svc.Id})
	if err != nil {
		t.Fatalf("query bill of materials: %v", err)
	}
	if len(bom) != 4 {
		t.Errorf("expected 4 bill-of-materials lines, got %d", len(bom))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId("catalog_materials")
	records, _ := app.FindAllRecords(col)
	if len(records) != 9 {
		t.Errorf("expected 9 materials after seeding twice, got %d", len(records))
	}
}
