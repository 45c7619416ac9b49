package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestOrderEditContent_EscapesUserInput(t *testing.T) {
	data := OrderEditData{
		ID:         "abc",
		ClientName: `<script>alert("x")</script>`,
		Items: []ItemEdit{{
			ID:          "it1",
			Index:       1,
			Description: "Tomada & plug",
			Quantity:    2,
			UnitPrice:   150,
			LineTotal:   "R$ 300,00",
		}},
		Totals: TotalsView{PayableTotal: "R$ 300,00", IsPositiveMargin: true},
	}

	html := render(t, OrderEditContent(data))

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Tomada &amp; plug")
	assert.Contains(t, html, `hx-patch="/orders/abc/items/it1"`)
	assert.Contains(t, html, `value="150"`)
	assert.Contains(t, html, "R$ 300,00")
	assert.Contains(t, html, `id="totals-panel"`)
}

func TestOrderEditPage_WrapsLayout(t *testing.T) {
	html := render(t, OrderEditPage(OrderEditData{ID: "abc", Number: "OS-2026-0001"}))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Ordem OS-2026-0001</title>")
	assert.Contains(t, html, `href="/orders/abc/export/pdf"`)
}

func TestOrderEditContent_NewOrderHasNoExport(t *testing.T) {
	html := render(t, OrderEditContent(OrderEditData{ID: "new_x", IsNew: true}))
	assert.NotContains(t, html, "/export/pdf")
	assert.Contains(t, html, "Nova ordem de serviço")
}

func TestOrderListContent(t *testing.T) {
	empty := render(t, OrderListContent(OrderListData{}))
	assert.Contains(t, empty, "Nenhuma ordem cadastrada.")

	html := render(t, OrderListContent(OrderListData{Orders: []OrderListRow{
		{ID: "o1", Number: "OS-2026-0001", ClientName: "ACME", PayableTotal: "R$ 250,00", Margin: "64,0%", IsPositiveMargin: true},
	}}))
	assert.Contains(t, html, `href="/orders/o1/edit"`)
	assert.Contains(t, html, "64,0%")
	assert.Contains(t, html, "text-success")
}

func TestSelectOptions_MarksSelected(t *testing.T) {
	var buf bytes.Buffer
	w := &writer{w: &buf}
	selectOptions(w, []Option{{"percent", "%"}, {"absolute", "R$"}}, "absolute")
	require.NoError(t, w.err)
	assert.Equal(t, `<option value="percent">%</option><option value="absolute" selected>R$</option>`, buf.String())
}
