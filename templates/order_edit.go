package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func editTitle(data OrderEditData) string {
	if data.Number != "" {
		return "Ordem " + data.Number
	}
	return "Nova ordem de serviço"
}

// OrderEditPage renders the full edit page.
func OrderEditPage(data OrderEditData) templ.Component {
	return Layout(editTitle(data), OrderEditContent(data))
}

// OrderEditContent renders the edit form alone, for HTMX swaps. Every input
// patches one field and the server answers with this fragment recomputed.
func OrderEditContent(data OrderEditData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		base := "/orders/" + data.ID
		swap := `hx-target="#order-edit" hx-swap="outerHTML"`

		w.f(`<section id="order-edit" data-order-id="%s">`, data.ID)
		w.f(`<div class="page-header"><h1>%s</h1>`, editTitle(data))
		if data.Restored {
			w.raw(`<span class="badge badge-warning">Rascunho restaurado</span>`)
		}
		w.f(`<span class="autosave autosave-%s">%s</span></div>`, data.AutosaveState, autosaveLabel(data))

		// Header
		w.f(`<form class="card" hx-patch="%s/header" hx-trigger="change" %s>`, base, swap)
		w.f(`<label>Cliente <input name="client_name" value="%s"></label>`, data.ClientName)
		w.f(`<label>Título <input name="title" value="%s"></label>`, data.Title)
		w.f(`<label>Agendada para <input type="date" name="scheduled_for" value="%s"></label>`, data.ScheduledFor)
		w.f(`<label>Observações <textarea name="notes">%s</textarea></label>`, data.Notes)
		w.raw(`</form>`)

		// Items
		w.raw(`<div class="items">`)
		for _, it := range data.Items {
			itemEdit(w, base, swap, data, it)
		}
		w.raw(`</div>`)
		w.f(`<button class="btn" hx-post="%s/items" %s>Adicionar serviço</button>`, base, swap)

		// Discount and expenses
		w.f(`<form class="card" hx-patch="%s/discount" hx-trigger="change" %s>`, base, swap)
		w.raw(`<label>Desconto <select name="mode">`)
		selectOptions(w, data.DiscountModes, data.DiscountMode)
		w.f(`</select></label><input type="number" step="0.01" min="0" name="value" value="%s"></form>`, num(data.DiscountValue))

		w.f(`<form class="card" hx-patch="%s/expenses" hx-trigger="change" %s>`, base, swap)
		w.f(`<label>Deslocamento <input type="number" step="0.01" min="0" name="travel" value="%s"></label>`, num(data.Travel))
		w.f(`<label>Estacionamento <input type="number" step="0.01" min="0" name="parking" value="%s"></label>`, num(data.Parking))
		w.f(`<label>Pedágio <input type="number" step="0.01" min="0" name="toll" value="%s"></label>`, num(data.Toll))
		w.f(`<label>Outras <input type="number" step="0.01" min="0" name="other" value="%s"></label>`, num(data.Other))
		w.f(`<label>Descrição <input name="other_description" value="%s"></label>`, data.OtherDescription)
		w.raw(`</form>`)

		if w.err != nil {
			return w.err
		}
		if err := TotalsPanel(data.ID, data.Totals).Render(ctx, out); err != nil {
			return err
		}

		w.raw(`<div class="actions">`)
		w.f(`<button class="btn btn-primary" hx-post="%s/save" hx-swap="none">Salvar</button>`, base)
		w.f(`<button class="btn btn-ghost" hx-post="%s/cancel" hx-swap="none" hx-confirm="Descartar alterações?">Cancelar</button>`, base)
		if !data.IsNew {
			w.f(`<a class="btn" href="%s/export/pdf">PDF</a><a class="btn" href="%s/export/excel">Excel</a>`, base, base)
		}
		w.raw(`</div></section>`)
		return w.err
	})
}

func autosaveLabel(data OrderEditData) string {
	switch data.AutosaveState {
	case "saved":
		return "Rascunho salvo às " + data.AutosaveAt
	case "failed":
		return "Falha ao salvar rascunho"
	default:
		return ""
	}
}

func itemEdit(w *writer, base, swap string, data OrderEditData, it ItemEdit) {
	itemURL := fmt.Sprintf("%s/items/%s", base, it.ID)

	w.f(`<article class="card item" id="item-%s">`, it.ID)
	w.f(`<header><span class="index">%d</span>`, it.Index)
	w.f(`<select name="service_id" hx-post="%s/catalog" hx-trigger="change" %s><option value="">Serviço do catálogo…</option>`, itemURL, swap)
	selectOptions(w, data.ServiceOptions, it.CatalogRef)
	w.raw(`</select>`)
	w.f(`<button class="btn btn-ghost" hx-delete="%s" %s>Remover</button></header>`, itemURL, swap)

	w.f(`<form hx-patch="%s" hx-trigger="change" %s>`, itemURL, swap)
	w.f(`<input name="description" value="%s">`, it.Description)
	w.f(`<input type="number" step="any" min="1" name="quantity" value="%s">`, num(it.Quantity))
	w.f(`<input type="number" step="0.01" min="0" name="unit_price" value="%s">`, num(it.UnitPrice))
	w.f(`<input type="number" step="1" min="0" name="estimated_minutes" value="%d">`, it.EstimatedMinutes)
	w.raw(`</form>`)

	w.f(`<dl class="item-totals"><dt>Total</dt><dd>%s</dd><dt>Materiais</dt><dd>%s</dd><dt>Mão de obra</dt><dd>%s</dd>`,
		it.LineTotal, it.MaterialCost, it.LaborCost)
	w.f(`<dt>Lucro</dt><dd class="%s">%s (%s)</dd></dl>`, marginClass(it.IsPositiveMargin), it.ItemProfit, it.ItemMargin)

	w.raw(`<table class="table materials"><tbody>`)
	for _, m := range it.Materials {
		lineURL := fmt.Sprintf("%s/materials/%s", itemURL, m.ID)
		w.f(`<tr id="material-%s"><td><select name="material_id" hx-post="%s/catalog" hx-trigger="change" %s><option value="">Material…</option>`, m.ID, lineURL, swap)
		selectOptions(w, data.MaterialOptions, "")
		w.raw(`</select></td>`)
		w.f(`<td><form hx-patch="%s" hx-trigger="change" %s>`, lineURL, swap)
		w.f(`<input name="name" value="%s">`, m.Name)
		w.raw(`<select name="unit">`)
		for _, u := range data.UnitOptions {
			sel := ""
			if u == m.Unit {
				sel = " selected"
			}
			w.f(`<option value="%s"%s>%s</option>`, u, sel, u)
		}
		w.raw(`</select>`)
		w.f(`<input type="number" step="any" min="0" name="quantity" value="%s">`, num(m.Quantity))
		w.f(`<input type="number" step="0.01" min="0" name="unit_cost" value="%s">`, num(m.UnitCost))
		w.f(`<input type="number" step="0.01" min="0" name="unit_sale_price" value="%s">`, num(m.UnitSalePrice))
		w.raw(`</form></td>`)
		w.f(`<td>%s</td><td>%s</td>`, m.TotalCost, m.TotalSale)
		w.f(`<td><button class="btn btn-ghost" hx-delete="%s" %s>×</button></td></tr>`, lineURL, swap)
	}
	w.raw(`</tbody></table>`)
	w.f(`<button class="btn btn-small" hx-post="%s/materials" %s>Adicionar material</button>`, itemURL, swap)

	w.raw(`<table class="table labor"><tbody>`)
	for _, l := range it.Labor {
		lineURL := fmt.Sprintf("%s/labor/%s", itemURL, l.ID)
		w.f(`<tr id="labor-%s"><td><select name="staff_id" hx-post="%s/catalog" hx-trigger="change" %s><option value="">Técnico…</option>`, l.ID, lineURL, swap)
		selectOptions(w, data.StaffOptions, "")
		w.raw(`</select></td>`)
		w.f(`<td><form hx-patch="%s" hx-trigger="change" %s>`, lineURL, swap)
		w.f(`<input name="name" value="%s">`, l.Name)
		w.f(`<input type="number" step="1" min="1" name="minutes" value="%d">`, l.Minutes)
		w.f(`<input type="number" step="0.01" min="0" name="hourly_rate" value="%s">`, num(l.HourlyRate))
		w.raw(`</form></td>`)
		w.f(`<td>%s</td>`, l.TotalCost)
		w.f(`<td><button class="btn btn-ghost" hx-delete="%s" %s>×</button></td></tr>`, lineURL, swap)
	}
	w.raw(`</tbody></table>`)
	w.f(`<button class="btn btn-small" hx-post="%s/labor" %s>Adicionar mão de obra</button>`, itemURL, swap)
	w.raw(`</article>`)
}

// TotalsPanel renders the order totals. It polls the totals endpoint so a
// restored or autosaved state shows up without a full reload.
func TotalsPanel(orderID string, t TotalsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.f(`<aside class="card totals" id="totals-panel" data-order-id="%s">`, orderID)
		rows := []struct{ label, value string }{
			{"Subtotal", t.Subtotal},
			{"Desconto", t.DiscountAmount},
			{"Despesas", t.Deductions},
			{"Total a receber", t.PayableTotal},
			{"Custo de materiais", t.TotalMaterialCost},
			{"Custo de mão de obra", t.TotalLaborCost},
			{"Custo total", t.TotalCost},
		}
		w.raw(`<dl>`)
		for _, r := range rows {
			w.f(`<dt>%s</dt><dd>%s</dd>`, r.label, r.value)
		}
		w.f(`<dt>Lucro</dt><dd class="%s">%s</dd>`, marginClass(t.IsPositiveMargin), t.TotalProfit)
		w.f(`<dt>Margem</dt><dd class="%s">%s</dd>`, marginClass(t.IsPositiveMargin), t.TotalMargin)
		w.raw(`</dl></aside>`)
		return w.err
	})
}
