package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func OrderListPage(data OrderListData) templ.Component {
	return Layout("Ordens de serviço", OrderListContent(data))
}

func OrderListContent(data OrderListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div class="page-header"><h1>Ordens de serviço</h1>`)
		w.raw(`<a class="btn btn-primary" href="/orders/new">Nova ordem</a></div>`)
		if len(data.Orders) == 0 {
			w.raw(`<p class="empty-state">Nenhuma ordem cadastrada.</p>`)
			return w.err
		}
		w.raw(`<table class="table"><thead><tr><th>Número</th><th>Cliente</th><th>Título</th><th>Agendada</th><th>Total</th><th>Margem</th><th></th></tr></thead><tbody>`)
		for _, o := range data.Orders {
			w.f(`<tr id="order-%s">`, o.ID)
			w.f(`<td><a href="/orders/%s/edit">%s</a></td>`, o.ID, o.Number)
			w.f(`<td>%s</td><td>%s</td><td>%s</td><td>%s</td>`, o.ClientName, o.Title, o.ScheduledFor, o.PayableTotal)
			w.f(`<td class="%s">%s</td>`, marginClass(o.IsPositiveMargin), o.Margin)
			w.f(`<td><button class="btn btn-ghost" hx-delete="/orders/%s" hx-target="#order-%s" hx-swap="outerHTML" hx-confirm="Excluir esta ordem?">Excluir</button></td>`, o.ID, o.ID)
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)
		return w.err
	})
}
