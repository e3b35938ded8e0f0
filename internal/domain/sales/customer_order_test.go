package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLine_CountsForProduction(t *testing.T) {
	flagged := OrderLine{Quantity: 8, PartiallyScheduled: true}
	plain := OrderLine{Quantity: 3}

	tests := []struct {
		name   string
		line   OrderLine
		status OrderStatus
		want   bool
	}{
		{"processed counts every line", plain, OrderStatusProcessed, true},
		{"partially scheduled counts flagged line", flagged, OrderStatusPartiallyScheduled, true},
		{"partially scheduled skips unflagged line", plain, OrderStatusPartiallyScheduled, false},
		{"pending never counts", flagged, OrderStatusPending, false},
		{"canceled never counts", flagged, OrderStatusCanceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.CountsForProduction(tt.status))
		})
	}
}

func TestCustomerOrder_ProductionLines(t *testing.T) {
	order, err := NewCustomerOrder("ORD-1", uuid.New(), time.Date(2025, 3, 7, 15, 30, 0, 0, time.UTC), OrderStatusPartiallyScheduled)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), order.DispatchDate)

	_, err = order.AddLine(uuid.New(), 8, true, decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), 3, false, decimal.NewFromInt(1000))
	require.NoError(t, err)

	lines := order.ProductionLines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(8), lines[0].Quantity)
}

func TestCustomerOrder_AddLineValidation(t *testing.T) {
	order, err := NewCustomerOrder("ORD-2", uuid.New(), time.Now(), OrderStatusProcessed)
	require.NoError(t, err)

	_, err = order.AddLine(uuid.Nil, 1, false, decimal.Zero)
	assert.Error(t, err)
	_, err = order.AddLine(uuid.New(), -1, false, decimal.Zero)
	assert.Error(t, err)
	_, err = order.AddLine(uuid.New(), 1, false, decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestNewCustomerOrder_Validation(t *testing.T) {
	_, err := NewCustomerOrder("", uuid.New(), time.Now(), OrderStatusProcessed)
	assert.Error(t, err)
	_, err = NewCustomerOrder("ORD-3", uuid.Nil, time.Now(), OrderStatusProcessed)
	assert.Error(t, err)
	_, err = NewCustomerOrder("ORD-3", uuid.New(), time.Now(), OrderStatus("SHIPPED"))
	assert.Error(t, err)
}

func TestCustomerOrder_ApplyProductionStatus(t *testing.T) {
	order, err := NewCustomerOrder("ORD-4", uuid.New(), time.Now(), OrderStatusProcessed)
	require.NoError(t, err)
	order.ProductionStatusNeedsUpdate = true

	require.NoError(t, order.ApplyProductionStatus(ProductionStatusFullyProduced))
	assert.Equal(t, ProductionStatusFullyProduced, order.ProductionStatus)
	assert.False(t, order.ProductionStatusNeedsUpdate)

	assert.Error(t, order.ApplyProductionStatus(ProductionStatus("DONE")))
}

func TestCompany_DisplayName(t *testing.T) {
	c, err := NewCompany("Servicios Integrales SpA", "Casino Norte", true)
	require.NoError(t, err)
	assert.Equal(t, "Casino Norte", c.DisplayName())

	c.FantasyName = ""
	assert.Equal(t, "Servicios Integrales SpA", c.DisplayName())
}
