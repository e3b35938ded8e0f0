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
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/testutil"
	"gorm.io/gorm"
)

var prepTime = time.Date(2025, time.March, 9, 6, 30, 0, 0, time.UTC)

func saveProductionOrder(t *testing.T, repo *GormProductionOrderRepository, from, to time.Time, explicit bool, areaIDs ...uuid.UUID) *production.ProductionOrder {
	t.Helper()
	ctx := context.Background()

	seq, err := repo.NextSequence(ctx)
	require.NoError(t, err)
	window, err := production.NewDispatchWindow(from, to)
	require.NoError(t, err)

	var o *production.ProductionOrder
	if explicit {
		o, err = production.NewFromOrders(seq, prepTime, window, areaIDs, "")
	} else {
		o, err = production.NewFromDateRange(seq, prepTime, window, areaIDs, "")
	}
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))
	return o
}

func setStatus(t *testing.T, repo *GormProductionOrderRepository, o *production.ProductionOrder, status production.Status) {
	t.Helper()
	_, err := o.ChangeStatus(status, "planner", "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
}

func TestGormProductionOrderRepository_SaveAndFind(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	repo := NewGormProductionOrderRepository(db)

	hot := fx.Area("Cocina caliente")
	cold := fx.Area("Cocina fría")

	o := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 12), true, hot.ID, cold.ID)

	t.Run("round trips the order", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), found.Sequence)
		assert.Equal(t, production.StatusPending, found.Status)
		assert.True(t, found.PreparationDatetime.Equal(prepTime))
		assert.True(t, found.Window.Equal(o.Window))
		assert.ElementsMatch(t, []uuid.UUID{hot.ID, cold.ID}, found.ProductionAreaIDs)
		assert.True(t, found.IsExplicit())
		assert.Equal(t, o.Description, found.Description)
	})

	t.Run("FindByIDForUpdate reads the same order", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			found, err := NewGormProductionOrderRepository(tx).FindByIDForUpdate(ctx, o.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, o.ID, found.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("Save replaces area scope", func(t *testing.T) {
		o.ProductionAreaIDs = []uuid.UUID{cold.ID}
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cold.ID}, found.ProductionAreaIDs)
	})

	t.Run("NextSequence follows the highest sequence", func(t *testing.T) {
		next, err := repo.NextSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), next)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Delete removes the order", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, o.ID))
		_, err := repo.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, o.ID), shared.ErrNotFound)
	})
}

func TestGormProductionOrderRepository_FindAll(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormProductionOrderRepository(db)

	first := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), false)
	saveProductionOrder(t, repo, testutil.Date(2025, time.March, 11), testutil.Date(2025, time.March, 11), false)
	third := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 12), testutil.Date(2025, time.March, 12), false)
	setStatus(t, repo, first, production.StatusExecuted)

	t.Run("pages in descending sequence", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "sequence", OrderDir: "desc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, orders, 2)
		assert.Equal(t, third.ID, orders[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 20,
			Filters: map[string]interface{}{"status": string(production.StatusExecuted)},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("rejects unknown sort fields", func(t *testing.T) {
		orders, _, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 20, OrderBy: "sequence; DROP TABLE production_orders", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, first.ID, orders[0].ID)
	})
}

func TestGormProductionOrderRepository_CoverageQueries(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewGormProductionOrderRepository(db)

	march := func(day int) time.Time { return testutil.Date(2025, time.March, day) }

	wide := saveProductionOrder(t, repo, march(10), march(15), false)
	disjoint := saveProductionOrder(t, repo, march(20), march(21), false)
	cancelled := saveProductionOrder(t, repo, march(12), march(12), false)
	setStatus(t, repo, cancelled, production.StatusCancelled)
	executed := saveProductionOrder(t, repo, march(14), march(16), false)
	setStatus(t, repo, executed, production.StatusExecuted)
	current := saveProductionOrder(t, repo, march(12), march(14), false)
	later := saveProductionOrder(t, repo, march(12), march(14), false)
	setStatus(t, repo, later, production.StatusExecuted)

	t.Run("candidates are earlier, overlapping and not cancelled", func(t *testing.T) {
		candidates, err := repo.FindCoverageCandidates(ctx, current)
		require.NoError(t, err)
		ids := make([]uuid.UUID, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
		}
		assert.Equal(t, []uuid.UUID{wide.ID, executed.ID}, ids)
		assert.NotContains(t, ids, disjoint.ID)
	})

	t.Run("later executed orders share the schedule", func(t *testing.T) {
		found, err := repo.FindExecutedLaterSameSchedule(ctx, current)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, later.ID, found[0].ID)

		found, err = repo.FindExecutedLaterSameSchedule(ctx, wide)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGormProductionOrderRepository_FindPendingByOrderLine(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	repo := NewGormProductionOrderRepository(db)
	pivots := NewGormPivotRepository(db)

	company := fx.Company("Casino Central", false)
	product := fx.Product("P-001", "Cazuela")
	order := fx.Order("1001", company.ID, testutil.Date(2025, time.March, 10), sales.OrderStatusProcessed, testutil.Line(product.ID, 10))
	line := order.Lines[0]

	pending := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), true)
	executed := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), true)
	unrelated := saveProductionOrder(t, repo, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), true)

	for _, o := range []*production.ProductionOrder{pending, executed} {
		require.NoError(t, pivots.Apply(ctx, production.PivotPlan{
			NewLines: []production.PivotOrderLineRef{{
				ID: uuid.New(), ProductionOrderID: o.ID, OrderID: order.ID, OrderLineID: line.ID,
				ProductID: product.ID, QuantityCovered: 10, DispatchDate: order.DispatchDate,
			}},
		}))
	}
	setStatus(t, repo, executed, production.StatusExecuted)

	found, err := repo.FindPendingByOrderLine(ctx, line.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pending.ID, found[0].ID)
	assert.NotEqual(t, unrelated.ID, found[0].ID)
}

func TestGormLineItemRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	orders := NewGormProductionOrderRepository(db)
	repo := NewGormLineItemRepository(db)

	product := fx.Product("P-001", "Cazuela")
	o := saveProductionOrder(t, orders, testutil.Date(2025, time.March, 10), testutil.Date(2025, time.March, 10), false)

	calc, err := production.Calculate(production.CalculationInput{OrderedQuantity: 10, PreviousCoverage: 4, CurrentStock: 1})
	require.NoError(t, err)
	item := production.NewLineItem(o.ID, product.ID, calc)
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindOne(ctx, o.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), found.OrderedQuantity)
	assert.Equal(t, int64(6), found.OrderedQuantityNew)
	assert.Equal(t, int64(5), found.TotalToProduce)

	t.Run("Save with a new id upserts on order and product", func(t *testing.T) {
		calc, err := production.Calculate(production.CalculationInput{OrderedQuantity: 10, ManualQuantity: 20})
		require.NoError(t, err)
		replacement := production.NewLineItem(o.ID, product.ID, calc)
		require.NoError(t, repo.Save(ctx, replacement))

		items, err := repo.FindByProductionOrder(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
		assert.Equal(t, int64(20), items[0].Quantity)
		assert.Equal(t, int64(20), items[0].TotalToProduce)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := repo.FindOne(ctx, o.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("DeleteByProductionOrder", func(t *testing.T) {
		require.NoError(t, repo.DeleteByProductionOrder(ctx, o.ID))
		items, err := repo.FindByProductionOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
