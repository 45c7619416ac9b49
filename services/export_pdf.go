package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the service order document using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

var mutedText = &props.Color{Red: 80, Green: 80, Blue: 80}

// addHeader adds the title, order number, client and dates.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	info := props.Text{Size: 9, Align: align.Left, Color: mutedText}
	infoRight := info
	infoRight.Align = align.Right

	number := data.OrderNumber
	if number == "" {
		number = "draft"
	}
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Order: "+number, info)),
			col.New(6).Add(text.New("Date: "+data.CreatedDate, infoRight)),
		),
	)
	if data.ClientName != "" || data.ScheduledFor != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New("Client: "+data.ClientName, info)),
				col.New(6).Add(text.New("Scheduled: "+data.ScheduledFor, infoRight)),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row of the item table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	titles := []struct {
		size  int
		label string
		style props.Text
	}{
		{1, "#", headerText},
		{4, "Description", headerTextLeft},
		{1, "Qty", headerText},
		{1, "Unit", headerText},
		{2, "Unit Price", headerText},
		{2, "Total", headerText},
		{1, "Cost", headerText},
	}
	r := row.New(8)
	for _, t := range titles {
		r.Add(col.New(t.size).Add(text.New(t.label, t.style)).WithStyle(&headerCell))
	}
	m.AddRows(r)
}

// addTableRow adds one item or line row, styled by level.
func addTableRow(m core.Maroto, r ExportRow) {
	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch r.Level {
	case 0:
		textStyle = fontstyle.Bold
		textSize = 8
	case 1:
		descPrefix = "  "
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	total := FormatCurrency(r.Total)
	if r.Kind == "labor" {
		total = "-"
	}

	cols := []core.Col{
		col.New(1).Add(text.New(r.Index, baseText)),
		col.New(4).Add(text.New(descPrefix+r.Description, leftText)),
		col.New(1).Add(text.New(formatQty(r.Qty), rightText)),
		col.New(1).Add(text.New(r.Unit, baseText)),
		col.New(2).Add(text.New(FormatCurrency(r.UnitPrice), rightText)),
		col.New(2).Add(text.New(total, rightText)),
		col.New(1).Add(text.New(FormatCurrency(r.Cost), rightText)),
	}
	if cellStyle != nil {
		for i := range cols {
			cols[i] = cols[i].WithStyle(cellStyle)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addSummary adds the totals block: subtotal, discount, deductions, payable,
// cost, profit and margin.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	t := data.Totals
	lines := []struct {
		label string
		value string
	}{
		{"Subtotal", FormatCurrency(t.Subtotal)},
		{data.DiscountLabel, FormatCurrency(-t.DiscountAmount)},
		{"Additional Expenses", FormatCurrency(-t.Deductions)},
		{"Payable Total", FormatCurrency(t.PayableTotal)},
		{"Material Cost", FormatCurrency(t.TotalMaterialCost)},
		{"Labor Cost", FormatCurrency(t.TotalLaborCost)},
		{"Total Cost", FormatCurrency(t.TotalCost)},
		{fmt.Sprintf("Profit (%s)", FormatPercent(t.TotalMargin)), FormatCurrency(t.TotalProfit)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(l.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	if data.Expenses.OtherDescription != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New("Other expenses: "+data.Expenses.OtherDescription, props.Text{
					Size:  7,
					Align: align.Right,
					Color: mutedText,
				})),
			),
		)
	}
}

// addFooter adds the notes and the generated-date line.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	if data.Notes != "" {
		m.AddRows(
			row.New(10).Add(
				col.New(12).Add(text.New("Notes: "+data.Notes, props.Text{Size: 8, Align: align.Left})),
			),
		)
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return brl.Sprintf("%.2f", qty)
}
