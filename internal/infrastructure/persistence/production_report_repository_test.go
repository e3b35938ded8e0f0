package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/testutil"
)

func TestGormProductionReportRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	orders := NewGormProductionOrderRepository(db)
	lineItems := NewGormLineItemRepository(db)
	pivots := NewGormPivotRepository(db)
	repo := NewGormProductionReportRepository(db)

	warehouse := fx.DefaultWarehouse()
	hot := fx.Area("Cocina caliente")
	cold := fx.Area("Cocina fría")
	stew := fx.Product("P-001", "Cazuela", hot, cold)
	loose := fx.Product("P-002", "Servilleta")
	fx.Stock(stew.ID, warehouse.ID, 4)

	regular := fx.Company("Casino Central", false)
	excluded := fx.Company("Minera Norte", true)
	regularOrder := fx.Order("1001", regular.ID, testutil.Date(2025, time.March, 10), sales.OrderStatusProcessed,
		testutil.Line(stew.ID, 10))
	excludedOrder := fx.Order("1002", excluded.ID, testutil.Date(2025, time.March, 10), sales.OrderStatusProcessed,
		testutil.Line(stew.ID, 6))

	o := saveProductionOrder(t, orders, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), false)
	for _, productID := range []uuid.UUID{stew.ID, loose.ID} {
		calc, err := production.Calculate(production.CalculationInput{OrderedQuantity: 16, CurrentStock: 4})
		require.NoError(t, err)
		require.NoError(t, lineItems.Save(ctx, production.NewLineItem(o.ID, productID, calc)))
	}

	window := o.Window
	demand := production.AggregateDemand([]sales.CustomerOrder{*regularOrder, *excludedOrder}, production.DemandFilter{Window: &window})
	require.NoError(t, pivots.Apply(ctx, production.SeedPivot(o, demand, map[uuid.UUID]production.ProductSnapshot{
		stew.ID: {Name: stew.Name, Code: stew.Code},
	}, time.Now().UTC())))

	t.Run("LineItemRows repeats rows per area", func(t *testing.T) {
		rows, err := repo.LineItemRows(ctx, []uuid.UUID{o.ID})
		require.NoError(t, err)
		require.Len(t, rows, 3)

		var stewAreas []string
		for _, r := range rows {
			if r.ProductID == stew.ID {
				stewAreas = append(stewAreas, r.AreaName)
				assert.True(t, r.AreaID.Valid)
				assert.Equal(t, int64(4), r.CurrentStock)
				assert.Equal(t, int64(12), r.TotalToProduce)
				assert.Equal(t, int64(1), r.Sequence)
				continue
			}
			assert.False(t, r.AreaID.Valid)
			assert.Empty(t, r.AreaName)
			assert.Zero(t, r.CurrentStock)
		}
		assert.ElementsMatch(t, []string{"Cocina caliente", "Cocina fría"}, stewAreas)
	})

	t.Run("LineItemRows with no orders", func(t *testing.T) {
		rows, err := repo.LineItemRows(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ExcludedCompanyCoverage only returns excluded companies", func(t *testing.T) {
		rows, err := repo.ExcludedCompanyCoverage(ctx, []uuid.UUID{o.ID})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, excluded.ID, rows[0].CompanyID)
		assert.Equal(t, "Minera Norte", rows[0].CompanyName)
		assert.Equal(t, excludedOrder.Lines[0].ID, rows[0].OrderLineID)
		assert.Equal(t, int64(6), rows[0].QuantityCovered)
	})

	t.Run("ProducedByLine counts executed orders only", func(t *testing.T) {
		produced, err := repo.ProducedByLine(ctx, regularOrder.ID)
		require.NoError(t, err)
		assert.Empty(t, produced)

		setStatus(t, orders, o, production.StatusExecuted)

		produced, err = repo.ProducedByLine(ctx, regularOrder.ID)
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int64{regularOrder.Lines[0].ID: 10}, produced)
	})
}
