package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceItem_Aggregates(t *testing.T) {
	it := NewServiceItem()
	require.NoError(t, it.SetField(ItemQuantity, 2))
	require.NoError(t, it.SetField(ItemUnitPrice, 100))

	m := it.AddMaterial("")
	require.NoError(t, m.SetField(MaterialQuantity, 3))
	require.NoError(t, m.SetField(MaterialUnitCost, 10))
	l := it.AddLabor("")
	require.NoError(t, l.SetField(LaborHourlyRate, 40))
	it.Recompute()

	assert.Equal(t, 200.0, it.LineTotal())
	assert.Equal(t, 30.0, it.MaterialCost())
	assert.Equal(t, 40.0, it.LaborCost())
	assert.Equal(t, it.MaterialCost()+it.LaborCost(), it.ItemCost())
	assert.Equal(t, 130.0, it.ItemProfit())
	assert.InDelta(t, 65.0, it.ItemMargin(), 1e-9)
}

func TestServiceItem_ZeroLineTotalMargin(t *testing.T) {
	it := NewServiceItem()
	m := it.AddMaterial("")
	require.NoError(t, m.SetField(MaterialUnitCost, 10))
	it.Recompute()

	assert.Equal(t, -10.0, it.ItemProfit())
	assert.Zero(t, it.ItemMargin())
}

func TestServiceItem_QuantityAtLeastOne(t *testing.T) {
	it := NewServiceItem()
	for _, v := range []any{0, 0.5, -2, "abc"} {
		assert.ErrorIs(t, it.SetField(ItemQuantity, v), ErrInvalidValue, "quantity %v", v)
	}
	assert.Equal(t, 1.0, it.Quantity)
	assert.NoError(t, it.SetField(ItemQuantity, 1.5))
}

func TestServiceItem_RecomputeIdempotent(t *testing.T) {
	it := NewServiceItem()
	require.NoError(t, it.SetField(ItemUnitPrice, 99.99))
	m := it.AddMaterial("")
	require.NoError(t, m.SetField(MaterialUnitCost, 33.333))
	it.Recompute()
	first := *it
	it.Recompute()
	it.Recompute()
	assert.Equal(t, first, *it)
}

func TestServiceItem_RemoveLines(t *testing.T) {
	it := NewServiceItem()
	a := it.AddMaterial("")
	b := it.AddMaterial("")
	require.NoError(t, b.SetField(MaterialUnitCost, 9))
	it.Recompute()

	require.NoError(t, it.RemoveMaterial(a.ID))
	assert.Len(t, it.Materials, 1)
	assert.Equal(t, 9.0, it.MaterialCost())

	assert.ErrorIs(t, it.RemoveMaterial(a.ID), ErrLineNotFound)
	assert.ErrorIs(t, it.RemoveLabor("nope"), ErrLineNotFound)
}

func TestServiceItem_CloneIsDeep(t *testing.T) {
	it := NewServiceItem()
	m := it.AddMaterial("")
	c := it.Clone()

	require.NoError(t, m.SetField(MaterialUnitCost, 50))
	it.Recompute()

	assert.Zero(t, c.Materials[0].UnitCost)
	assert.Zero(t, c.MaterialCost())
	assert.NotSame(t, it.Materials[0], c.Materials[0])
}
