package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(t *testing.T) *Order {
	t.Helper()
	o, it := orderWithItem(2, 100)
	o.Header = OrderHeader{Number: "OS-2026-0001", ClientName: "ACME", Title: "Outlets"}
	require.NoError(t, o.ApplyCatalogService(it.ID, "svc_outlet", testCatalog))
	l, err := o.AddLabor(it.ID, "staff_ana")
	require.NoError(t, err)
	require.NoError(t, o.ApplyStaffSelection(it.ID, l.ID, "staff_ana", testCatalog))
	second := o.AddItem()
	require.NoError(t, o.SetItemField(second.ID, ItemDescription, "Inspection"))
	require.NoError(t, o.SetItemField(second.ID, ItemUnitPrice, 80))
	require.NoError(t, o.SetDiscountAbsolute(15))
	require.NoError(t, o.SetExpense(ExpenseTravel, 22))
	return o
}

func TestFlattenAssemble_RoundTrip(t *testing.T) {
	o := sampleOrder(t)
	rs := Flatten(o)

	assert.Len(t, rs.Items, 2)
	assert.Len(t, rs.Materials, 2)
	assert.Len(t, rs.Labor, 1)
	assert.Equal(t, o.ID, rs.Items[0].OrderID)
	assert.Equal(t, rs.Items[0].ID, rs.Materials[0].ItemID)
	assert.Equal(t, "absolute", rs.Order.DiscountMode)

	back, err := Assemble(rs, DeductionsCountAsCost)
	require.NoError(t, err)
	assert.Equal(t, o, back)
}

func TestAssemble_IgnoresStoredTotals(t *testing.T) {
	rs := Flatten(sampleOrder(t))
	want := rs.Order.Totals
	rs.Order.Totals = Totals{Subtotal: 1e9}
	rs.Items[0].LineTotal = -1
	rs.Materials[0].TotalCost = 12345

	o, err := Assemble(rs, DeductionsCountAsCost)
	require.NoError(t, err)
	assert.Equal(t, want, o.Totals().Rounded())
}

func TestAssemble_SortsBySortOrder(t *testing.T) {
	rs := Flatten(sampleOrder(t))
	rs.Items[0], rs.Items[1] = rs.Items[1], rs.Items[0]

	o, err := Assemble(rs, DeductionsCountAsCost)
	require.NoError(t, err)
	assert.Equal(t, "Install outlet", o.Items()[0].Description)
}

func TestAssemble_FailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rs *RowSet)
	}{
		{"missing order id", func(rs *RowSet) { rs.Order.ID = "" }},
		{"unknown discount mode", func(rs *RowSet) { rs.Order.DiscountMode = "voucher" }},
		{"percent over 100", func(rs *RowSet) { rs.Order.DiscountMode = "percent"; rs.Order.DiscountPercent = 120 }},
		{"negative expense", func(rs *RowSet) { rs.Order.Toll = -1 }},
		{"item quantity zero", func(rs *RowSet) { rs.Items[0].Quantity = 0 }},
		{"item of another order", func(rs *RowSet) { rs.Items[0].OrderID = "other" }},
		{"orphan material", func(rs *RowSet) { rs.Materials[0].ItemID = "ghost" }},
		{"orphan labor", func(rs *RowSet) { rs.Labor[0].ItemID = "ghost" }},
		{"material quantity zero", func(rs *RowSet) { rs.Materials[0].Quantity = 0 }},
		{"negative unit cost", func(rs *RowSet) { rs.Materials[1].UnitCost = -2 }},
		{"labor minutes zero", func(rs *RowSet) { rs.Labor[0].Minutes = 0 }},
		{"duplicate material id", func(rs *RowSet) { rs.Materials[1].ID = rs.Materials[0].ID }},
		{"material id equals item id", func(rs *RowSet) { rs.Materials[0].ID = rs.Items[1].ID }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := Flatten(sampleOrder(t))
			tt.mutate(&rs)
			o, err := Assemble(rs, DeductionsCountAsCost)
			assert.ErrorIs(t, err, ErrInvalidPayload)
			assert.Nil(t, o)
		})
	}
}

func TestAssemble_LegacyDiscountKeepsMode(t *testing.T) {
	rs := Flatten(sampleOrder(t))
	rs.Order.DiscountMode = "percent"
	rs.Order.DiscountPercent = 10
	rs.Order.DiscountAbsolute = 15

	o, err := Assemble(rs, DeductionsCountAsCost)
	require.NoError(t, err)
	assert.Equal(t, DiscountPercent, o.Discount().Mode())
	assert.Zero(t, o.Discount().Absolute())
}

func TestNewLineID(t *testing.T) {
	a, b := NewLineID(), NewLineID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsNewID(a))
	assert.False(t, IsNewID("abc123def456ghi"))
}
