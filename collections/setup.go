package collections

import (
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// Setup programmatically creates/ensures the catalog, staff, service order
// and draft collections exist.
func Setup(app core.App) {
	materials := ensureCollection(app, "catalog_materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit"})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "unit_sale_price", Min: floatPtr(0)})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Min: floatPtr(0)})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	services := ensureCollection(app, "catalog_services", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "estimated_minutes", Min: floatPtr(0), OnlyInt: true})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "catalog_service_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "service",
			Required:      true,
			CollectionId:  services.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			Required:      true,
			CollectionId:  materials.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	orders := ensureCollection(app, "service_orders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "number"})
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.TextField{Name: "title"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.TextField{Name: "scheduled_for"})
		c.Fields.Add(&core.SelectField{
			Name:      "discount_mode",
			Values:    []string{"percent", "absolute"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "discount_percent", Min: floatPtr(0), Max: floatPtr(100)})
		c.Fields.Add(&core.NumberField{Name: "discount_absolute", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "travel", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "parking", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "toll", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "other", Min: floatPtr(0)})
		c.Fields.Add(&core.TextField{Name: "other_description"})
		// Derived totals, written on save for listings and documents.
		c.Fields.Add(&core.NumberField{Name: "subtotal"})
		c.Fields.Add(&core.NumberField{Name: "discount_amount"})
		c.Fields.Add(&core.NumberField{Name: "deductions"})
		c.Fields.Add(&core.NumberField{Name: "payable_total"})
		c.Fields.Add(&core.NumberField{Name: "total_material_cost"})
		c.Fields.Add(&core.NumberField{Name: "total_labor_cost"})
		c.Fields.Add(&core.NumberField{Name: "total_cost"})
		c.Fields.Add(&core.NumberField{Name: "total_profit"})
		c.Fields.Add(&core.NumberField{Name: "total_margin"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	ensureIndex(app, orders, orderNumberIndex, "`number`", "`number` != ''")

	items := ensureCollection(app, "service_order_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "order",
			Required:      true,
			CollectionId:  orders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "catalog_ref"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, Min: floatPtr(1)})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "estimated_minutes", Min: floatPtr(0), OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "line_total"})
		c.Fields.Add(&core.NumberField{Name: "item_cost"})
		c.Fields.Add(&core.NumberField{Name: "item_profit"})
		c.Fields.Add(&core.NumberField{Name: "item_margin"})
	})

	ensureCollection(app, "service_order_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  items.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "material_ref"})
		c.Fields.Add(&core.TextField{Name: "name"})
		c.Fields.Add(&core.TextField{Name: "unit"})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "unit_sale_price", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "total_cost"})
		c.Fields.Add(&core.NumberField{Name: "total_sale"})
	})

	ensureCollection(app, "service_order_labor", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  items.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "staff_ref"})
		c.Fields.Add(&core.TextField{Name: "name"})
		c.Fields.Add(&core.NumberField{Name: "minutes", Required: true, Min: floatPtr(1), OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "total_cost"})
	})

	ensureCollection(app, "order_drafts", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "slot", Required: true})
		c.Fields.Add(&core.JSONField{Name: "payload"})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_order_drafts_slot", true, "slot", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	log := zap.L().Named("collections")

	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug("collection already exists, skipping creation", zap.String("collection", name))
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatal("failed to create collection", zap.String("collection", name), zap.Error(err))
	}

	log.Info("created collection", zap.String("collection", name), zap.String("id", collection.Id))
	return collection
}

// orderNumberIndex keeps assigned order numbers unique. Unsaved orders carry
// an empty number, so they are left out of the index.
const orderNumberIndex = "idx_service_orders_number"

// ensureIndex adds a unique index to a collection created before the index
// existed.
func ensureIndex(app core.App, c *core.Collection, name, columns, where string) {
	if c.GetIndex(name) != "" {
		return
	}
	c.AddIndex(name, true, columns, where)
	if err := app.Save(c); err != nil {
		zap.L().Named("collections").Fatal("failed to add index",
			zap.String("collection", c.Name), zap.String("index", name), zap.Error(err))
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
