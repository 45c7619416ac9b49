package store

import (
	"github.com/pocketbase/pocketbase/core"

	"serviceorders/services"
)

// One mapping function per row type, in both directions. Stored totals are
// read for completeness; services.Assemble recomputes them.

func orderRowFromRecord(r *core.Record) services.OrderRow {
	return services.OrderRow{
		ID:               r.Id,
		Number:           r.GetString("number"),
		ClientName:       r.GetString("client_name"),
		Title:            r.GetString("title"),
		Notes:            r.GetString("notes"),
		ScheduledFor:     r.GetString("scheduled_for"),
		DiscountMode:     r.GetString("discount_mode"),
		DiscountPercent:  r.GetFloat("discount_percent"),
		DiscountAbsolute: r.GetFloat("discount_absolute"),
		Travel:           r.GetFloat("travel"),
		Parking:          r.GetFloat("parking"),
		Toll:             r.GetFloat("toll"),
		Other:            r.GetFloat("other"),
		OtherDescription: r.GetString("other_description"),
		Totals: services.Totals{
			Subtotal:          r.GetFloat("subtotal"),
			DiscountAmount:    r.GetFloat("discount_amount"),
			Deductions:        r.GetFloat("deductions"),
			PayableTotal:      r.GetFloat("payable_total"),
			TotalMaterialCost: r.GetFloat("total_material_cost"),
			TotalLaborCost:    r.GetFloat("total_labor_cost"),
			TotalCost:         r.GetFloat("total_cost"),
			TotalProfit:       r.GetFloat("total_profit"),
			TotalMargin:       r.GetFloat("total_margin"),
		},
	}
}

func applyOrderRow(r *core.Record, row services.OrderRow) {
	r.Set("number", row.Number)
	r.Set("client_name", row.ClientName)
	r.Set("title", row.Title)
	r.Set("notes", row.Notes)
	r.Set("scheduled_for", row.ScheduledFor)
	r.Set("discount_mode", row.DiscountMode)
	r.Set("discount_percent", row.DiscountPercent)
	r.Set("discount_absolute", row.DiscountAbsolute)
	r.Set("travel", row.Travel)
	r.Set("parking", row.Parking)
	r.Set("toll", row.Toll)
	r.Set("other", row.Other)
	r.Set("other_description", row.OtherDescription)
	r.Set("subtotal", row.Totals.Subtotal)
	r.Set("discount_amount", row.Totals.DiscountAmount)
	r.Set("deductions", row.Totals.Deductions)
	r.Set("payable_total", row.Totals.PayableTotal)
	r.Set("total_material_cost", row.Totals.TotalMaterialCost)
	r.Set("total_labor_cost", row.Totals.TotalLaborCost)
	r.Set("total_cost", row.Totals.TotalCost)
	r.Set("total_profit", row.Totals.TotalProfit)
	r.Set("total_margin", row.Totals.TotalMargin)
}

func itemRowFromRecord(r *core.Record) services.ItemRow {
	return services.ItemRow{
		ID:               r.Id,
		OrderID:          r.GetString("order"),
		CatalogRef:       r.GetString("catalog_ref"),
		Description:      r.GetString("description"),
		Quantity:         r.GetFloat("quantity"),
		UnitPrice:        r.GetFloat("unit_price"),
		EstimatedMinutes: r.GetInt("estimated_minutes"),
		SortOrder:        r.GetInt("sort_order"),
		LineTotal:        r.GetFloat("line_total"),
		ItemCost:         r.GetFloat("item_cost"),
		ItemProfit:       r.GetFloat("item_profit"),
		ItemMargin:       r.GetFloat("item_margin"),
	}
}

func applyItemRow(r *core.Record, row services.ItemRow, orderID string) {
	r.Set("order", orderID)
	r.Set("sort_order", row.SortOrder)
	r.Set("catalog_ref", row.CatalogRef)
	r.Set("description", row.Description)
	r.Set("quantity", row.Quantity)
	r.Set("unit_price", row.UnitPrice)
	r.Set("estimated_minutes", row.EstimatedMinutes)
	r.Set("line_total", row.LineTotal)
	r.Set("item_cost", row.ItemCost)
	r.Set("item_profit", row.ItemProfit)
	r.Set("item_margin", row.ItemMargin)
}

func materialRowFromRecord(r *core.Record) services.MaterialRow {
	return services.MaterialRow{
		ID:            r.Id,
		ItemID:        r.GetString("item"),
		MaterialRef:   r.GetString("material_ref"),
		Name:          r.GetString("name"),
		Unit:          r.GetString("unit"),
		Quantity:      r.GetFloat("quantity"),
		UnitCost:      r.GetFloat("unit_cost"),
		UnitSalePrice: r.GetFloat("unit_sale_price"),
		SortOrder:     r.GetInt("sort_order"),
		TotalCost:     r.GetFloat("total_cost"),
		TotalSale:     r.GetFloat("total_sale"),
	}
}

func applyMaterialRow(r *core.Record, row services.MaterialRow, itemID string) {
	r.Set("item", itemID)
	r.Set("sort_order", row.SortOrder)
	r.Set("material_ref", row.MaterialRef)
	r.Set("name", row.Name)
	r.Set("unit", row.Unit)
	r.Set("quantity", row.Quantity)
	r.Set("unit_cost", row.UnitCost)
	r.Set("unit_sale_price", row.UnitSalePrice)
	r.Set("total_cost", row.TotalCost)
	r.Set("total_sale", row.TotalSale)
}

func laborRowFromRecord(r *core.Record) services.LaborRow {
	return services.LaborRow{
		ID:         r.Id,
		ItemID:     r.GetString("item"),
		StaffRef:   r.GetString("staff_ref"),
		Name:       r.GetString("name"),
		Minutes:    r.GetInt("minutes"),
		HourlyRate: r.GetFloat("hourly_rate"),
		SortOrder:  r.GetInt("sort_order"),
		TotalCost:  r.GetFloat("total_cost"),
	}
}

func applyLaborRow(r *core.Record, row services.LaborRow, itemID string) {
	r.Set("item", itemID)
	r.Set("sort_order", row.SortOrder)
	r.Set("staff_ref", row.StaffRef)
	r.Set("name", row.Name)
	r.Set("minutes", row.Minutes)
	r.Set("hourly_rate", row.HourlyRate)
	r.Set("total_cost", row.TotalCost)
}
