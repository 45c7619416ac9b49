package store

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/require"

	"serviceorders/services"
)

// sampleOrder builds an unsaved order: one item with a material and a labor
// line, a percent discount and a travel expense.
//
//	subtotal 2 x 150 = 300, discount 10% = 30, deductions 20
//	material 4 x 2.5 = 10, labor 90min x 40/h = 60
func sampleOrder(t *testing.T) *services.Order {
	t.Helper()
	o := services.NewOrder("", services.DeductionsCountAsCost)
	require.NoError(t, o.SetHeaderField(services.HeaderClientName, "ACME Ltda"))

	it := o.AddItem()
	require.NoError(t, o.SetItemField(it.ID, services.ItemDescription, "Install outlet"))
	require.NoError(t, o.SetItemField(it.ID, services.ItemQuantity, 2))
	require.NoError(t, o.SetItemField(it.ID, services.ItemUnitPrice, 150))

	m, err := o.AddMaterial(it.ID, "")
	require.NoError(t, err)
	require.NoError(t, o.SetMaterialField(it.ID, m.ID, services.MaterialName, "Cable"))
	require.NoError(t, o.SetMaterialField(it.ID, m.ID, services.MaterialQuantity, 4))
	require.NoError(t, o.SetMaterialField(it.ID, m.ID, services.MaterialUnitCost, 2.5))
	require.NoError(t, o.SetMaterialField(it.ID, m.ID, services.MaterialUnitSalePrice, 4))

	l, err := o.AddLabor(it.ID, "")
	require.NoError(t, err)
	require.NoError(t, o.SetLaborField(it.ID, l.ID, services.LaborName, "Ana"))
	require.NoError(t, o.SetLaborField(it.ID, l.ID, services.LaborMinutes, 90))
	require.NoError(t, o.SetLaborField(it.ID, l.ID, services.LaborHourlyRate, 40))

	require.NoError(t, o.SetDiscountPercent(10))
	require.NoError(t, o.SetExpense(services.ExpenseTravel, 20))
	return o
}

func countRecords(t *testing.T, app core.App, collection string) int {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(collection)
	require.NoError(t, err)
	recs, err := app.FindAllRecords(col)
	require.NoError(t, err)
	return len(recs)
}
