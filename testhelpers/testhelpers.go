// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceorders/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMaterial creates a catalog material and returns it.
func CreateTestMaterial(t *testing.T, app core.App, name, unit string, unitCost, unitSalePrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_materials")
	if err != nil {
		t.Fatalf("failed to find catalog_materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("unit", unit)
	record.Set("unit_cost", unitCost)
	record.Set("unit_sale_price", unitSalePrice)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestStaff creates a staff record with the given hourly rate.
func CreateTestStaff(t *testing.T, app core.App, name string, hourlyRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("hourly_rate", hourlyRate)
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// BOMLine is one bill-of-materials entry for CreateTestService.
type BOMLine struct {
	MaterialID string
	Quantity   float64
}

// CreateTestService creates a catalog service with its bill of materials.
func CreateTestService(t *testing.T, app core.App, name string, unitPrice float64, estimatedMinutes int, bom ...BOMLine) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_services")
	if err != nil {
		t.Fatalf("failed to find catalog_services collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("unit_price", unitPrice)
	record.Set("estimated_minutes", estimatedMinutes)
	record.Set("active", true)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test service: %v", err)
	}

	bomCol, err := app.FindCollectionByNameOrId("catalog_service_materials")
	if err != nil {
		t.Fatalf("failed to find catalog_service_materials collection: %v", err)
	}
	for i, b := range bom {
		line := core.NewRecord(bomCol)
		line.Set("service", record.Id)
		line.Set("material", b.MaterialID)
		line.Set("quantity", b.Quantity)
		line.Set("sort_order", i)
		if err := app.Save(line); err != nil {
			t.Fatalf("failed to save bill of materials line: %v", err)
		}
	}

	return record
}

// CreateTestOrder creates a bare service order record and returns it.
func CreateTestOrder(t *testing.T, app core.App, number, clientName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_orders")
	if err != nil {
		t.Fatalf("failed to find service_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("number", number)
	record.Set("client_name", clientName)
	record.Set("discount_mode", "percent")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order: %v", err)
	}

	return record
}

// CreateTestOrderItem creates an item record under an order.
func CreateTestOrderItem(t *testing.T, app core.App, orderID string, sortOrder int, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_order_items")
	if err != nil {
		t.Fatalf("failed to find service_order_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("order", orderID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order item: %v", err)
	}

	return record
}

// CreateTestOrderMaterial creates a material line record under an item.
func CreateTestOrderMaterial(t *testing.T, app core.App, itemID, name string, qty, unitCost, unitSalePrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_order_materials")
	if err != nil {
		t.Fatalf("failed to find service_order_materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item", itemID)
	record.Set("name", name)
	record.Set("quantity", qty)
	record.Set("unit_cost", unitCost)
	record.Set("unit_sale_price", unitSalePrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order material: %v", err)
	}

	return record
}

// CreateTestOrderLabor creates a labor line record under an item.
func CreateTestOrderLabor(t *testing.T, app core.App, itemID, name string, minutes int, hourlyRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_order_labor")
	if err != nil {
		t.Fatalf("failed to find service_order_labor collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item", itemID)
	record.Set("name", name)
	record.Set("minutes", minutes)
	record.Set("hourly_rate", hourlyRate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order labor: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
