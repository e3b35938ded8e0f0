//go:build integration

package persistence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/migration"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/persistence"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/testutil"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/migrations"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newPostgresDB starts a disposable Postgres, applies the embedded
// migrations and returns a gorm handle on it
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("production_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable", "timezone=UTC")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty)
	require.NotZero(t, version)
	return db
}

func TestPostgres_ExecuteAndCancelLifecycle(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	scope := persistence.NewGormTransactionScope(db)
	svc := appproduction.NewProductionOrderService(scope, zap.NewNop())

	company := fx.Company("Constructora Sur", false)
	stew := fx.Product("P-001", "Cazuela")
	warehouse := fx.DefaultWarehouse()
	fx.Stock(stew.ID, warehouse.ID, 4)
	dispatch := testutil.Date(2025, time.March, 10)
	order := fx.Order("1001", company.ID, dispatch, sales.OrderStatusProcessed, testutil.Line(stew.ID, 10))
	prep := time.Date(2025, time.March, 9, 6, 30, 0, 0, time.UTC)

	first, err := svc.CreateFromOrders(ctx, appproduction.CreateFromOrdersRequest{
		OrderIDs: []uuid.UUID{order.ID}, PreparationDatetime: prep,
	})
	require.NoError(t, err)
	require.Len(t, first.LineItems, 1)
	assert.Equal(t, int64(6), first.LineItems[0].TotalToProduce)

	second, err := svc.CreateFromDateRange(ctx, appproduction.CreateFromDateRangeRequest{
		InitialDispatchDate: "2025-03-10", FinalDispatchDate: "2025-03-10", PreparationDatetime: prep,
	})
	require.NoError(t, err)
	item, err := svc.AddOrUpdateProduct(ctx, second.ID, stew.ID, appproduction.AddOrUpdateProductRequest{Quantity: ptr(int64(15))})
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.OrderedQuantityNew, "first order already covers the demand")
	assert.Equal(t, int64(11), item.TotalToProduce)

	executed, err := svc.SetStatus(ctx, first.ID, appproduction.SetStatusRequest{Status: "EXECUTED"})
	require.NoError(t, err)
	require.NotNil(t, executed.Ledger)
	assert.Equal(t, int64(0), fx.StockOf(stew.ID, warehouse.ID), "produced units are consumed by the claimed demand")

	_, err = svc.SetStatus(ctx, second.ID, appproduction.SetStatusRequest{Status: "EXECUTED"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), fx.StockOf(stew.ID, warehouse.ID))

	_, err = svc.SetStatus(ctx, first.ID, appproduction.SetStatusRequest{Status: "CANCELLED"})
	require.ErrorIs(t, err, production.ErrCancelBlocked)

	_, err = svc.SetStatus(ctx, second.ID, appproduction.SetStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, first.ID, appproduction.SetStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), fx.StockOf(stew.ID, warehouse.ID))

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.GetByID(ctx, first.ID)
	assert.Error(t, err)
}

func TestPostgres_ConcurrentExecutionsSerializeOnStock(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	scope := persistence.NewGormTransactionScope(db)
	svc := appproduction.NewProductionOrderService(scope, zap.NewNop())

	company := fx.Company("Constructora Sur", false)
	stew := fx.Product("P-001", "Cazuela")
	bread := fx.Product("P-002", "Marraqueta")
	warehouse := fx.DefaultWarehouse()
	fx.Stock(stew.ID, warehouse.ID, 0)
	fx.Stock(bread.ID, warehouse.ID, 0)
	prep := time.Date(2025, time.March, 9, 6, 30, 0, 0, time.UTC)

	const orders = 6
	ids := make([]uuid.UUID, orders)
	for i := range orders {
		resp, err := svc.CreateFromDateRange(ctx, appproduction.CreateFromDateRangeRequest{
			InitialDispatchDate: "2025-04-01", FinalDispatchDate: "2025-04-01",
			PreparationDatetime: prep.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		_, err = svc.AddOrUpdateProduct(ctx, resp.ID, stew.ID, appproduction.AddOrUpdateProductRequest{Quantity: ptr(int64(3))})
		require.NoError(t, err)
		_, err = svc.AddOrUpdateProduct(ctx, resp.ID, bread.ID, appproduction.AddOrUpdateProductRequest{Quantity: ptr(int64(2))})
		require.NoError(t, err)
		ids[i] = resp.ID
	}
	fx.Order("2001", company.ID, testutil.Date(2025, time.April, 1), sales.OrderStatusPending)

	var wg sync.WaitGroup
	errs := make([]error, orders)
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.SetStatus(ctx, id, appproduction.SetStatusRequest{Status: "EXECUTED"})
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3*orders), fx.StockOf(stew.ID, warehouse.ID))
	assert.Equal(t, int64(2*orders), fx.StockOf(bread.ID, warehouse.ID))
}

func ptr[T any](v T) *T { return &v }
