package handlers

import (
	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/services"
	"serviceorders/session"
	"serviceorders/templates"
)

func totalsView(t services.Totals) templates.TotalsView {
	return templates.TotalsView{
		Subtotal:          services.FormatCurrency(t.Subtotal),
		DiscountAmount:    services.FormatCurrency(t.DiscountAmount),
		Deductions:        services.FormatCurrency(t.Deductions),
		PayableTotal:      services.FormatCurrency(t.PayableTotal),
		TotalMaterialCost: services.FormatCurrency(t.TotalMaterialCost),
		TotalLaborCost:    services.FormatCurrency(t.TotalLaborCost),
		TotalCost:         services.FormatCurrency(t.TotalCost),
		TotalProfit:       services.FormatCurrency(t.TotalProfit),
		TotalMargin:       services.FormatPercent(t.TotalMargin),
		IsPositiveMargin:  services.Round2(t.TotalProfit) >= 0,
	}
}

// buildOrderEditData reads a snapshot of the session and the catalog options
// for the pickers. A catalog query failure only empties the pickers.
func (env *Env) buildOrderEditData(s *session.Session) templates.OrderEditData {
	o, _, _ := s.Snapshot()
	status := s.AutosaveStatus()
	d := o.Discount()
	e := o.Expenses()

	data := templates.OrderEditData{
		ID:               o.ID,
		Number:           o.Header.Number,
		IsNew:            services.IsNewID(o.ID),
		Restored:         s.Restored(),
		AutosaveState:    string(status.State),
		ClientName:       o.Header.ClientName,
		Title:            o.Header.Title,
		Notes:            o.Header.Notes,
		ScheduledFor:     o.Header.ScheduledFor,
		DiscountMode:     string(d.Mode()),
		DiscountValue:    d.Value(),
		Travel:           e.Travel,
		Parking:          e.Parking,
		Toll:             e.Toll,
		Other:            e.Other,
		OtherDescription: e.OtherDescription,
		Totals:           totalsView(o.Totals()),
		UnitOptions:      services.UnitOptions,
	}
	if !status.At.IsZero() {
		data.AutosaveAt = status.At.Format("15:04")
	}

	for _, m := range services.DiscountModeOptions {
		label := "%"
		if m == services.DiscountAbsolute {
			label = "R$"
		}
		data.DiscountModes = append(data.DiscountModes, templates.Option{Value: string(m), Label: label})
	}

	for i, it := range o.Items() {
		ie := templates.ItemEdit{
			ID:               it.ID,
			Index:            i + 1,
			CatalogRef:       it.CatalogRef,
			Description:      it.Description,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			EstimatedMinutes: it.EstimatedMinutes,
			LineTotal:        services.FormatCurrency(it.LineTotal()),
			MaterialCost:     services.FormatCurrency(it.MaterialCost()),
			LaborCost:        services.FormatCurrency(it.LaborCost()),
			ItemProfit:       services.FormatCurrency(it.ItemProfit()),
			ItemMargin:       services.FormatPercent(it.ItemMargin()),
			IsPositiveMargin: services.Round2(it.ItemProfit()) >= 0,
		}
		for _, m := range it.Materials {
			ie.Materials = append(ie.Materials, templates.MaterialEdit{
				ID:            m.ID,
				Name:          m.Name,
				Unit:          m.Unit,
				Quantity:      m.Quantity,
				UnitCost:      m.UnitCost,
				UnitSalePrice: m.UnitSalePrice,
				TotalCost:     services.FormatCurrency(m.TotalCost()),
				TotalSale:     services.FormatCurrency(m.TotalSale()),
			})
		}
		for _, l := range it.Labor {
			ie.Labor = append(ie.Labor, templates.LaborEdit{
				ID:         l.ID,
				Name:       l.Name,
				Minutes:    l.Minutes,
				HourlyRate: l.HourlyRate,
				TotalCost:  services.FormatCurrency(l.TotalCost()),
			})
		}
		data.Items = append(data.Items, ie)
	}

	if svcs, err := env.Catalog.ListServices(); err != nil {
		env.Log.Warn("order_edit: could not list services", zap.Error(err))
	} else {
		for _, s := range svcs {
			data.ServiceOptions = append(data.ServiceOptions, templates.Option{Value: s.ID, Label: s.Name})
		}
	}
	if mats, err := env.Catalog.ListMaterials(); err != nil {
		env.Log.Warn("order_edit: could not list materials", zap.Error(err))
	} else {
		for _, m := range mats {
			data.MaterialOptions = append(data.MaterialOptions, templates.Option{Value: m.ID, Label: m.Name})
		}
	}
	if staff, err := env.Catalog.ListStaff(); err != nil {
		env.Log.Warn("order_edit: could not list staff", zap.Error(err))
	} else {
		for _, st := range staff {
			data.StaffOptions = append(data.StaffOptions, templates.Option{Value: st.ID, Label: st.Name})
		}
	}

	return data
}

// renderOrderEdit renders the edit page, choosing partial or full page based on HX-Request header.
func renderOrderEdit(e *core.RequestEvent, data templates.OrderEditData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.OrderEditContent(data)
	} else {
		component = templates.OrderEditPage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// editOrder opens the order's session, applies fn and re-renders the edit
// form. Rejected edits leave the tree untouched and answer with a toast.
func (env *Env) editOrder(e *core.RequestEvent, op string, fn func(e *core.RequestEvent, o *services.Order) error) error {
	orderID := e.Request.PathValue("id")
	if orderID == "" {
		return ErrorToast(e, 400, "Missing order ID")
	}
	if err := e.Request.ParseForm(); err != nil {
		return ErrorToast(e, 400, "Invalid form data")
	}

	s, err := env.Sessions.Open(orderID)
	if err != nil {
		return env.respondError(e, op, err)
	}
	if err := s.Edit(func(o *services.Order) error { return fn(e, o) }); err != nil {
		return env.respondError(e, op, err)
	}
	return renderOrderEdit(e, env.buildOrderEditData(s))
}
