package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviceorders/services"
	"serviceorders/testhelpers"
)

func TestCatalog_FindService(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cable := testhelpers.CreateTestMaterial(t, app, "Cable", "m", 2.5, 4)
	plug := testhelpers.CreateTestMaterial(t, app, "Plug", "un", 8, 15)
	svc := testhelpers.CreateTestService(t, app, "Install outlet", 120, 45,
		testhelpers.BOMLine{MaterialID: cable.Id, Quantity: 5},
		testhelpers.BOMLine{MaterialID: plug.Id, Quantity: 1},
	)

	c := NewCatalog(app)
	got, err := c.FindService(svc.Id)
	require.NoError(t, err)

	assert.Equal(t, "Install outlet", got.Name)
	assert.Equal(t, 120.0, got.UnitPrice)
	assert.Equal(t, 45, got.EstimatedMinutes)
	require.Len(t, got.Materials, 2)
	assert.Equal(t, "Cable", got.Materials[0].Material.Name)
	assert.Equal(t, 5.0, got.Materials[0].Quantity)
	assert.Equal(t, 15.0, got.Materials[1].Material.UnitSalePrice)
}

func TestCatalog_Misses(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	c := NewCatalog(app)

	_, err := c.FindService("missing")
	assert.ErrorIs(t, err, services.ErrCatalogMiss)
	_, err = c.FindMaterial("")
	assert.ErrorIs(t, err, services.ErrCatalogMiss)
	_, err = c.FindStaff("missing")
	assert.ErrorIs(t, err, services.ErrCatalogMiss)
}

func TestCatalog_ApplyServiceThroughOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cable := testhelpers.CreateTestMaterial(t, app, "Cable", "m", 2, 4)
	svc := testhelpers.CreateTestService(t, app, "Run cable", 100, 30,
		testhelpers.BOMLine{MaterialID: cable.Id, Quantity: 10})
	ana := testhelpers.CreateTestStaff(t, app, "Ana", 60)

	c := NewCatalog(app)
	o := services.NewOrder("", services.DeductionsCountAsCost)
	it := o.AddItem()
	require.NoError(t, o.ApplyCatalogService(it.ID, svc.Id, c))
	l, err := o.AddLabor(it.ID, "")
	require.NoError(t, err)
	require.NoError(t, o.ApplyStaffSelection(it.ID, l.ID, ana.Id, c))

	assert.Equal(t, 100.0, o.Totals().Subtotal)
	assert.Equal(t, 20.0, o.Totals().TotalMaterialCost)
	assert.Equal(t, 60.0, o.Totals().TotalLaborCost)

	before := o.Totals()
	err = o.ApplyCatalogService(it.ID, "missing", c)
	assert.ErrorIs(t, err, services.ErrCatalogMiss)
	assert.Equal(t, before, o.Totals())
}

func TestCatalog_ListActive(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Tape", "rolo", 6, 11)
	inactive := testhelpers.CreateTestMaterial(t, app, "Old cable", "m", 1, 2)
	inactive.Set("active", false)
	require.NoError(t, app.Save(inactive))
	testhelpers.CreateTestStaff(t, app, "Bruno", 45)
	testhelpers.CreateTestService(t, app, "Visit", 90, 60)

	c := NewCatalog(app)

	materials, err := c.ListMaterials()
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "Tape", materials[0].Name)

	staff, err := c.ListStaff()
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, 45.0, staff[0].HourlyRate)

	svcs, err := c.ListServices()
	require.NoError(t, err)
	require.Len(t, svcs, 1)
	assert.Empty(t, svcs[0].Materials)
}
