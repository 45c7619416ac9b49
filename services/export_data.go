package services

import (
	"fmt"
	"time"
)

// ExportRow represents a single row in the service order export.
type ExportRow struct {
	Level       int    // 0 = service item, 1 = material or labor line
	Index       string // "1", "1.1", "1.2" etc
	Kind        string // "service", "material", "labor"
	Description string
	Qty         float64
	Unit        string
	UnitPrice   float64
	Total       float64
	Cost        float64
}

// ExportData holds all data needed to render a service order document. It is
// built from a clone of the order and never refers back to it.
type ExportData struct {
	Title            string
	OrderNumber      string
	ClientName       string
	ScheduledFor     string
	Notes            string
	CreatedDate      string
	Rows             []ExportRow
	DiscountLabel    string
	Expenses         AdditionalExpenses
	Totals           Totals
	IsPositiveMargin bool
}

// BuildExportData flattens the order into document rows. Amounts are rounded
// here, at the presentation boundary.
func BuildExportData(o *Order, issued time.Time) ExportData {
	snap := o.Clone()
	totals := snap.Totals().Rounded()

	title := snap.Header.Title
	if title == "" {
		title = "Service Order"
	}

	var rows []ExportRow
	for i, it := range snap.Items() {
		rows = append(rows, ExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", i+1),
			Kind:        "service",
			Description: it.Description,
			Qty:         it.Quantity,
			Unit:        "serv",
			UnitPrice:   Round2(it.UnitPrice),
			Total:       Round2(it.LineTotal()),
			Cost:        Round2(it.ItemCost()),
		})

		sub := 1
		for _, m := range it.Materials {
			rows = append(rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, sub),
				Kind:        "material",
				Description: m.Name,
				Qty:         m.Quantity,
				Unit:        m.Unit,
				UnitPrice:   Round2(m.UnitSalePrice),
				Total:       Round2(m.TotalSale()),
				Cost:        Round2(m.TotalCost()),
			})
			sub++
		}
		for _, l := range it.Labor {
			rows = append(rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, sub),
				Kind:        "labor",
				Description: l.Name,
				Qty:         Round2(float64(l.Minutes) / 60),
				Unit:        "h",
				UnitPrice:   Round2(l.HourlyRate),
				Cost:        Round2(l.TotalCost()),
			})
			sub++
		}
	}

	return ExportData{
		Title:            title,
		OrderNumber:      snap.Header.Number,
		ClientName:       snap.Header.ClientName,
		ScheduledFor:     snap.Header.ScheduledFor,
		Notes:            snap.Header.Notes,
		CreatedDate:      issued.Format("02/01/2006"),
		Rows:             rows,
		DiscountLabel:    DiscountLabel(snap.Discount()),
		Expenses:         snap.Expenses(),
		Totals:           totals,
		IsPositiveMargin: totals.TotalProfit >= 0,
	}
}

// DiscountLabel describes the active discount, e.g. "Discount (10,0%)".
func DiscountLabel(d Discount) string {
	if d.Mode() == DiscountAbsolute {
		return "Discount"
	}
	return fmt.Sprintf("Discount (%s)", FormatPercent(d.Percent()))
}
